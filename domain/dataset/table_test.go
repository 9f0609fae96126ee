package dataset

import (
	"math"
	"reflect"
	"testing"
)

func sampleTable() *Table {
	return &Table{
		Columns: []string{"City", "Water Stress", "Drought Risk", "Notes"},
		Rows: []Row{
			{"City": "Phoenix", "Water Stress": "4.2", "Drought Risk": "3.9", "Notes": "arid"},
			{"City": "Atlanta", "Water Stress": "2.1", "Drought Risk": "1.8", "Notes": ""},
			{"City": "Dallas", "Water Stress": "3.0", "Drought Risk": "n/a", "Notes": "check"},
		},
	}
}

func TestMetricColumns(t *testing.T) {
	tests := []struct {
		name     string
		table    *Table
		expected []string
	}{
		{
			name:     "Nil table has no metrics",
			table:    nil,
			expected: nil,
		},
		{
			name:     "Table without rows has no metrics",
			table:    &Table{Columns: []string{"City", "Water Stress"}},
			expected: nil,
		},
		{
			name:     "Key column alone has no metrics",
			table:    &Table{Columns: []string{"City"}, Rows: []Row{{"City": "Reno"}}},
			expected: nil,
		},
		{
			name:     "Metrics follow key column in order",
			table:    sampleTable(),
			expected: []string{"Water Stress", "Drought Risk", "Notes"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.table.MetricColumns()
			if !reflect.DeepEqual(got, tt.expected) {
				t.Errorf("Expected metrics %v, got %v", tt.expected, got)
			}
		})
	}
}

func TestKeysSortedAndDeduplicated(t *testing.T) {
	table := &Table{
		Columns: []string{"City", "Water Stress"},
		Rows: []Row{
			{"City": "Phoenix", "Water Stress": "4.2"},
			{"City": "Atlanta", "Water Stress": "2.1"},
			{"City": "Phoenix", "Water Stress": "9.9"},
			{"City": "  Dallas ", "Water Stress": "3.0"},
		},
	}

	got := table.Keys()
	expected := []string{"Atlanta", "Dallas", "Phoenix"}
	if !reflect.DeepEqual(got, expected) {
		t.Errorf("Expected keys %v, got %v", expected, got)
	}
}

func TestKeysNilTable(t *testing.T) {
	var table *Table
	if keys := table.Keys(); keys != nil {
		t.Errorf("Expected no keys from nil table, got %v", keys)
	}
}

func TestRowByKey(t *testing.T) {
	table := sampleTable()

	row, ok := table.RowByKey("Atlanta")
	if !ok {
		t.Fatal("Expected to find Atlanta")
	}
	if row["Water Stress"] != "2.1" {
		t.Errorf("Expected Atlanta water stress 2.1, got %s", row["Water Stress"])
	}

	if _, ok := table.RowByKey("Topeka"); ok {
		t.Error("Expected Topeka to be missing")
	}
}

func TestRowByKeyFirstMatchWins(t *testing.T) {
	table := &Table{
		Columns: []string{"City", "Water Stress"},
		Rows: []Row{
			{"City": "Phoenix", "Water Stress": "4.2"},
			{"City": "Phoenix", "Water Stress": "9.9"},
		},
	}

	row, ok := table.RowByKey("Phoenix")
	if !ok {
		t.Fatal("Expected to find Phoenix")
	}
	if row["Water Stress"] != "4.2" {
		t.Errorf("Expected earliest Phoenix row to win, got %s", row["Water Stress"])
	}
}

func TestMetricValuesSkipsNonNumeric(t *testing.T) {
	table := sampleTable()

	got := table.MetricValues("Drought Risk")
	expected := []float64{3.9, 1.8}
	if !reflect.DeepEqual(got, expected) {
		t.Errorf("Expected values %v, got %v", expected, got)
	}

	if got := table.MetricValues("Notes"); len(got) != 0 {
		t.Errorf("Expected no numeric notes, got %v", got)
	}
}

func TestParseCell(t *testing.T) {
	tests := []struct {
		cell     string
		expected float64
		ok       bool
	}{
		{"4.2", 4.2, true},
		{" 3 ", 3, true},
		{"-0.5", -0.5, true},
		{"", 0, false},
		{"   ", 0, false},
		{"n/a", 0, false},
	}

	for _, tt := range tests {
		v, ok := ParseCell(tt.cell)
		if ok != tt.ok {
			t.Errorf("ParseCell(%q): expected ok=%v, got %v", tt.cell, tt.ok, ok)
		}
		if v != tt.expected {
			t.Errorf("ParseCell(%q): expected %v, got %v", tt.cell, tt.expected, v)
		}
	}
}

func TestFingerprintStability(t *testing.T) {
	a := sampleTable()
	b := sampleTable()

	if a.Fingerprint() != b.Fingerprint() {
		t.Error("Expected identical tables to share a fingerprint")
	}

	b.Rows[0]["Water Stress"] = "5.0"
	if a.Fingerprint() == b.Fingerprint() {
		t.Error("Expected changed cell to change the fingerprint")
	}

	var absent *Table
	if !absent.Fingerprint().IsEmpty() {
		t.Error("Expected nil table to have an empty fingerprint")
	}
}

func TestNilTableAccessors(t *testing.T) {
	var table *Table

	if table.Len() != 0 {
		t.Errorf("Expected zero length, got %d", table.Len())
	}
	if table.KeyColumn() != "" {
		t.Errorf("Expected empty key column, got %s", table.KeyColumn())
	}
	if _, ok := table.RowByKey("Phoenix"); ok {
		t.Error("Expected no row from nil table")
	}
	if table.HasMetric("Water Stress") {
		t.Error("Expected no metrics on nil table")
	}
}

func TestSummarize(t *testing.T) {
	table := sampleTable()

	summaries := table.Summarize()
	if len(summaries) != 3 {
		t.Fatalf("Expected 3 summaries, got %d", len(summaries))
	}

	stress := summaries[0]
	if stress.Metric != "Water Stress" {
		t.Errorf("Expected first summary for Water Stress, got %s", stress.Metric)
	}
	if stress.Count != 3 {
		t.Errorf("Expected 3 parsed values, got %d", stress.Count)
	}
	expectedMean := (4.2 + 2.1 + 3.0) / 3
	if math.Abs(stress.Mean-expectedMean) > 1e-9 {
		t.Errorf("Expected mean %.4f, got %.4f", expectedMean, stress.Mean)
	}
	if stress.Min != 2.1 || stress.Max != 4.2 {
		t.Errorf("Expected min 2.1 max 4.2, got %v and %v", stress.Min, stress.Max)
	}
	if stress.Median != 3.0 {
		t.Errorf("Expected median 3.0, got %v", stress.Median)
	}

	notes := summaries[2]
	if notes.Count != 0 {
		t.Errorf("Expected notes to have no numeric cells, got %d", notes.Count)
	}

	var absent *Table
	if absent.Summarize() != nil {
		t.Error("Expected no summaries from nil table")
	}
}
