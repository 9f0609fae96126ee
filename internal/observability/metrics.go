package observability

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the Prometheus counters, histograms, and gauges for the
// dashboard's load-per-interaction cycle.
type Metrics struct {
	LoadOutcomes *prometheus.CounterVec // labels: outcome={loaded,absent,error}
	LoadDuration prometheus.Histogram
	RowsLoaded   prometheus.Gauge

	PageViews *prometheus.CounterVec // labels: page={dashboard,overview,comparison}
}

// Load outcome label values.
const (
	OutcomeLoaded = "loaded"
	OutcomeAbsent = "absent"
	OutcomeError  = "error"
)

// NewMetrics creates and registers all dashboard metrics with the default
// Prometheus registry.
func NewMetrics() *Metrics {
	m := &Metrics{
		LoadOutcomes: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "waterdash",
			Name:      "loads_total",
			Help:      "Workbook load attempts by outcome.",
		}, []string{"outcome"}),
		LoadDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "waterdash",
			Name:      "load_duration_seconds",
			Help:      "Duration of one full workbook read and normalization.",
			Buckets:   []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1, 2.5},
		}),
		RowsLoaded: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "waterdash",
			Name:      "rows_loaded",
			Help:      "City rows in the current snapshot, 0 when no workbook is present.",
		}),
		PageViews: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "waterdash",
			Name:      "page_views_total",
			Help:      "Page renders by view.",
		}, []string{"page"}),
	}

	prometheus.MustRegister(
		m.LoadOutcomes,
		m.LoadDuration,
		m.RowsLoaded,
		m.PageViews,
	)

	return m
}

// NewMetricsForTesting creates Metrics with a fresh registry to avoid
// "already registered" panics when called from multiple tests.
func NewMetricsForTesting() *Metrics {
	return &Metrics{
		LoadOutcomes: prometheus.NewCounterVec(prometheus.CounterOpts{Namespace: "waterdash", Name: "loads_total"}, []string{"outcome"}),
		LoadDuration: prometheus.NewHistogram(prometheus.HistogramOpts{Namespace: "waterdash", Name: "load_duration_seconds"}),
		RowsLoaded:   prometheus.NewGauge(prometheus.GaugeOpts{Namespace: "waterdash", Name: "rows_loaded"}),
		PageViews:    prometheus.NewCounterVec(prometheus.CounterOpts{Namespace: "waterdash", Name: "page_views_total"}, []string{"page"}),
	}
}
