package ui

import (
	stderrors "errors"
	"fmt"
	"html/template"
	"net/http"
	"sort"

	"github.com/go-playground/validator/v10"
	"gonum.org/v1/gonum/stat"

	"waterdash/domain/dataset"
	"waterdash/internal/errors"
	"waterdash/internal/session"
)

// snapshotBadge identifies the load a page rendered from
type snapshotBadge struct {
	ID          string
	Fingerprint string
	LoadedAt    string
}

// basePage carries the shared chrome: sidebar state, intro copy, load badge
type basePage struct {
	Title     string
	Active    string
	Intro     template.HTML
	HasData   bool
	CityCount int
	Snapshot  snapshotBadge
}

type dashboardPage struct {
	basePage
	Notice    template.HTML
	Columns   []string
	Rows      []dataset.Row
	Summaries []dataset.MetricSummary
}

type overviewPage struct {
	basePage
	Warning        string
	Metrics        []string
	SelectedMetric string
	Chart          template.HTML
}

type cityChart struct {
	City string
	SVG  template.HTML
}

type comparisonPage struct {
	basePage
	Warning         string
	Prompt          string
	Metrics         []string
	Cities          []string
	SelectedCities  []string
	SelectedMetrics []string
	Charts          []cityChart
	GridCols        int
}

type errorPage struct {
	basePage
	Status  int
	Message string
}

// comparisonSelection bounds what the comparison view accepts
type comparisonSelection struct {
	Cities  []string `validate:"max=4"`
	Metrics []string `validate:"max=6"`
}

// refresh reloads the workbook for this interaction. A failed load keeps the
// previous snapshot current; the handler renders the failure instead of
// serving charts it cannot trust.
func (a *App) refresh(w http.ResponseWriter, r *http.Request) (session.Snapshot, bool) {
	snap, err := a.store.Refresh(r.Context())
	if err != nil {
		a.renderAppError(w, err)
		return snap, false
	}
	return snap, true
}

// renderAppError maps a typed application error onto the error page: invalid
// input renders as a 400, everything else as a 500 for that cycle only. An
// error with no AppError in its chain is presented as a generic load failure
// rather than leaking its raw text.
func (a *App) renderAppError(w http.ResponseWriter, err error) {
	var appErr *errors.AppError
	if !stderrors.As(err, &appErr) {
		appErr = errors.InternalError("Failed to load the workbook.")
	}
	status := http.StatusInternalServerError
	if appErr.Code == errors.CodeInvalidInput {
		status = http.StatusBadRequest
	}
	a.renderError(w, status, appErr.Message)
}

func (a *App) basePageFor(title, active string, snap session.Snapshot) basePage {
	page := basePage{
		Title:   title,
		Active:  active,
		HasData: !snap.Absent(),
	}
	if page.HasData {
		page.CityCount = snap.Table.Len()
	}
	if !snap.ID.IsEmpty() {
		page.Snapshot = snapshotBadge{
			ID:          shortID(snap.ID.String()),
			Fingerprint: snap.Fingerprint.Short(),
			LoadedAt:    snap.LoadedAt.Format("15:04:05"),
		}
	}
	return page
}

// shortID keeps the leading uuid group for display
func shortID(s string) string {
	if len(s) > 8 {
		return s[:8]
	}
	return s
}

// handleDashboard renders the raw data table with per-metric summaries
func (a *App) handleDashboard(w http.ResponseWriter, r *http.Request) {
	snap, ok := a.refresh(w, r)
	if !ok {
		return
	}
	a.metrics.PageViews.WithLabelValues("dashboard").Inc()

	page := dashboardPage{basePage: a.basePageFor("Data Center Water Risk Dashboard", "dashboard", snap)}
	page.Intro = renderMarkdown(dashboardIntro)

	if snap.Table.Len() == 0 {
		page.Notice = renderMarkdown(absentDashboardNotice(a.dataFile))
	} else {
		page.Columns = snap.Table.Columns
		page.Rows = snap.Table.Rows
		page.Summaries = snap.Table.Summarize()
	}
	a.renderTemplate(w, http.StatusOK, "dashboard", page)
}

// handleOverview renders the single-metric scatter across all cities
func (a *App) handleOverview(w http.ResponseWriter, r *http.Request) {
	snap, ok := a.refresh(w, r)
	if !ok {
		return
	}
	a.metrics.PageViews.WithLabelValues("overview").Inc()

	page := overviewPage{basePage: a.basePageFor("Overview Chart", "overview", snap)}
	page.Intro = renderMarkdown(overviewIntro)

	table := snap.Table
	if table.Len() == 0 {
		page.Warning = absentChartWarning(a.dataFile)
		a.renderTemplate(w, http.StatusOK, "overview", page)
		return
	}

	metrics := table.MetricColumns()
	if len(metrics) == 0 {
		page.Warning = noMetricsWarning
		a.renderTemplate(w, http.StatusOK, "overview", page)
		return
	}
	page.Metrics = metrics

	metric := r.URL.Query().Get("metric")
	if metric == "" {
		metric = metrics[0]
	} else if !table.HasMetric(metric) {
		a.renderAppError(w, errors.InvalidInput(fmt.Sprintf("Unknown metric %q.", metric)))
		return
	}
	page.SelectedMetric = metric

	points, values := scatterData(table, metric)
	var mean float64
	if len(values) > 0 {
		mean = stat.Mean(values, nil)
	}
	page.Chart = template.HTML(ScatterChart(points, metric, mean, DefaultChartConfig()))

	a.renderTemplate(w, http.StatusOK, "overview", page)
}

// scatterData returns one point per row sorted alphabetically by city, plus
// the parseable values backing the mean. Non-numeric cells keep their slot
// with Valid=false.
func scatterData(table *dataset.Table, metric string) ([]ScatterPoint, []float64) {
	key := table.KeyColumn()
	rows := make([]dataset.Row, len(table.Rows))
	copy(rows, table.Rows)
	sort.SliceStable(rows, func(i, j int) bool {
		return rows[i][key] < rows[j][key]
	})

	points := make([]ScatterPoint, 0, len(rows))
	values := make([]float64, 0, len(rows))
	for _, row := range rows {
		point := ScatterPoint{Label: row[key]}
		if v, ok := dataset.ParseCell(row[metric]); ok {
			point.Value = v
			point.Valid = true
			values = append(values, v)
		}
		points = append(points, point)
	}
	return points, values
}

// handleComparison renders one bar chart per selected city
func (a *App) handleComparison(w http.ResponseWriter, r *http.Request) {
	snap, ok := a.refresh(w, r)
	if !ok {
		return
	}
	a.metrics.PageViews.WithLabelValues("comparison").Inc()

	page := comparisonPage{basePage: a.basePageFor("City Comparison", "comparison", snap)}
	page.Intro = renderMarkdown(comparisonIntro)

	table := snap.Table
	if table.Len() == 0 {
		page.Warning = absentChartWarning(a.dataFile)
		a.renderTemplate(w, http.StatusOK, "comparison", page)
		return
	}

	metrics := table.MetricColumns()
	cities := table.Keys()
	if len(metrics) == 0 || len(cities) == 0 {
		page.Warning = noCitiesWarning
		a.renderTemplate(w, http.StatusOK, "comparison", page)
		return
	}
	page.Metrics = metrics
	page.Cities = cities

	q := r.URL.Query()
	sel := comparisonSelection{Cities: q["cities"], Metrics: q["metrics"]}
	// First visit pre-selects the leading metrics; a submitted form with
	// everything cleared stays cleared.
	if len(sel.Metrics) == 0 && q.Get("apply") == "" {
		sel.Metrics = metrics[:min(6, len(metrics))]
	}

	if err := a.validate.Struct(sel); err != nil {
		a.renderAppError(w, errors.InvalidInput(selectionBoundsMessage(err)))
		return
	}
	for _, city := range sel.Cities {
		if _, found := table.RowByKey(city); !found {
			a.renderAppError(w, errors.InvalidInput(fmt.Sprintf("Unknown city %q.", city)))
			return
		}
	}
	for _, metric := range sel.Metrics {
		if !table.HasMetric(metric) {
			a.renderAppError(w, errors.InvalidInput(fmt.Sprintf("Unknown metric %q.", metric)))
			return
		}
	}
	page.SelectedCities = sel.Cities
	page.SelectedMetrics = sel.Metrics

	if len(sel.Cities) == 0 || len(sel.Metrics) == 0 {
		page.Prompt = emptySelectionPrompt
		a.renderTemplate(w, http.StatusOK, "comparison", page)
		return
	}

	page.Charts = make([]cityChart, 0, len(sel.Cities))
	for _, city := range sel.Cities {
		row, _ := table.RowByKey(city)
		items := make([]BarItem, 0, len(sel.Metrics))
		for i, metric := range sel.Metrics {
			item := BarItem{Label: metric, Color: metricColors[i%len(metricColors)]}
			if v, parsed := dataset.ParseCell(row[metric]); parsed {
				item.Value = v
				item.Text = fmt.Sprintf("%.2f", v)
			} else {
				item.Text = row[metric]
			}
			items = append(items, item)
		}
		page.Charts = append(page.Charts, cityChart{
			City: city,
			SVG:  template.HTML(CityBarChart(items, barChartConfig(city))),
		})
	}
	page.GridCols = 2
	if len(page.Charts) == 1 {
		page.GridCols = 1
	}

	a.renderTemplate(w, http.StatusOK, "comparison", page)
}

func selectionBoundsMessage(err error) string {
	if verrs, ok := err.(validator.ValidationErrors); ok && len(verrs) > 0 {
		switch verrs[0].Field() {
		case "Cities":
			return "Select at most 4 cities."
		case "Metrics":
			return "Select at most 6 metrics."
		}
	}
	return "Invalid selection."
}
