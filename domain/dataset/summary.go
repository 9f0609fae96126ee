package dataset

import (
	"github.com/montanaflynn/stats"
)

// MetricSummary holds descriptive statistics for one metric column.
type MetricSummary struct {
	Metric string  `json:"metric"`
	Count  int     `json:"count"`
	Mean   float64 `json:"mean"`
	StdDev float64 `json:"std_dev"`
	Min    float64 `json:"min"`
	Max    float64 `json:"max"`
	Median float64 `json:"median"`
}

// Summarize computes descriptive statistics for every metric column, in
// column order. Metrics whose cells never parse as numbers still appear,
// with a zero count, so the dashboard strip stays aligned with the table.
func (t *Table) Summarize() []MetricSummary {
	metrics := t.MetricColumns()
	if len(metrics) == 0 {
		return nil
	}

	summaries := make([]MetricSummary, 0, len(metrics))
	for _, metric := range metrics {
		values := t.MetricValues(metric)
		summary := MetricSummary{Metric: metric, Count: len(values)}
		if len(values) > 0 {
			summary.Mean, _ = stats.Mean(values)
			summary.StdDev, _ = stats.StandardDeviation(values)
			summary.Min, _ = stats.Min(values)
			summary.Max, _ = stats.Max(values)
			summary.Median, _ = stats.Median(values)
		}
		summaries = append(summaries, summary)
	}
	return summaries
}
