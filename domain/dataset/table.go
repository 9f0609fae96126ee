package dataset

import (
	"sort"
	"strconv"
	"strings"

	"waterdash/domain/core"
)

// Row holds one city's cells keyed by trimmed column name.
type Row map[string]string

// Table is the normalized slice of the workbook: an ordered column list whose
// first entry is the city key column, and the surviving data rows in source
// order. A nil *Table is the absent state (no workbook on disk); every method
// tolerates a nil receiver so callers can thread it through without guards.
type Table struct {
	Columns []string `json:"columns"`
	Rows    []Row    `json:"rows"`
}

// KeyColumn returns the name of the city column (first in the range).
func (t *Table) KeyColumn() string {
	if t == nil || len(t.Columns) == 0 {
		return ""
	}
	return t.Columns[0]
}

// Len returns the number of data rows.
func (t *Table) Len() int {
	if t == nil {
		return 0
	}
	return len(t.Rows)
}

// MetricColumns returns every column after the key column, in workbook order.
// Absent tables, tables with no rows, and tables with fewer than two columns
// all yield nothing: a key column alone has no metrics to plot.
func (t *Table) MetricColumns() []string {
	if t == nil || len(t.Rows) == 0 || len(t.Columns) < 2 {
		return nil
	}
	return t.Columns[1:]
}

// HasMetric reports whether name is one of the metric columns.
func (t *Table) HasMetric(name string) bool {
	for _, m := range t.MetricColumns() {
		if m == name {
			return true
		}
	}
	return false
}

// Keys returns the distinct city names, sorted alphabetically. Feeds the
// comparison picker; chart row order is a per-view concern.
func (t *Table) Keys() []string {
	if t == nil || len(t.Columns) == 0 {
		return nil
	}
	keyCol := t.Columns[0]
	seen := make(map[string]bool, len(t.Rows))
	keys := make([]string, 0, len(t.Rows))
	for _, row := range t.Rows {
		k := strings.TrimSpace(row[keyCol])
		if k == "" || seen[k] {
			continue
		}
		seen[k] = true
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// RowByKey finds the row for a city. When the workbook repeats a city name the
// earliest row wins; later duplicates are unreachable through this lookup.
func (t *Table) RowByKey(key string) (Row, bool) {
	if t == nil || len(t.Columns) == 0 {
		return nil, false
	}
	keyCol := t.Columns[0]
	want := strings.TrimSpace(key)
	for _, row := range t.Rows {
		if strings.TrimSpace(row[keyCol]) == want {
			return row, true
		}
	}
	return nil, false
}

// MetricValues parses the named column as floats, skipping blank and
// non-numeric cells. Row order is preserved for the cells that parse.
func (t *Table) MetricValues(metric string) []float64 {
	if t == nil {
		return nil
	}
	values := make([]float64, 0, len(t.Rows))
	for _, row := range t.Rows {
		if v, ok := ParseCell(row[metric]); ok {
			values = append(values, v)
		}
	}
	return values
}

// ParseCell interprets a single cell as a number. Cells carry whatever text
// the workbook formatted into them, so this is the one place that decides
// numeric-vs-not for charts and means.
func ParseCell(cell string) (float64, bool) {
	s := strings.TrimSpace(cell)
	if s == "" {
		return 0, false
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

// Fingerprint hashes the table content (columns then rows, cell by cell).
// Two loads of an unchanged workbook produce equal fingerprints even though
// each load gets its own snapshot ID.
func (t *Table) Fingerprint() core.Hash {
	if t == nil {
		return ""
	}
	var data strings.Builder
	for _, col := range t.Columns {
		data.WriteString(col)
		data.WriteByte(0x1f)
	}
	data.WriteByte(0x1e)
	for _, row := range t.Rows {
		for _, col := range t.Columns {
			data.WriteString(row[col])
			data.WriteByte(0x1f)
		}
		data.WriteByte(0x1e)
	}
	return core.NewHash([]byte(data.String()))
}
