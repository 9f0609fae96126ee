package ui

import (
	"fmt"
	"html/template"

	"github.com/gomarkdown/markdown"
	"github.com/gomarkdown/markdown/html"
	"github.com/gomarkdown/markdown/parser"
)

// Page copy is authored as markdown and rendered server-side so notices can
// bold the workbook filename the same way everywhere.
const (
	dashboardIntro  = "A decision-support tool for evaluating US cities for data center facility placement based on water risk and climate data."
	overviewIntro   = "Compare all cities on a single metric. Cities are sorted alphabetically on the X-axis."
	comparisonIntro = "Select up to 4 cities and up to 6 metrics to compare side by side."

	emptySelectionPrompt = "Select at least one city and one metric to see charts."
	noMetricsWarning     = "No metric columns found in the data."
	noCitiesWarning      = "No cities or metric columns in the data."
)

func absentDashboardNotice(dataFile string) string {
	return fmt.Sprintf("No data loaded. Add **%s** to this folder.", dataFile)
}

func absentChartWarning(dataFile string) string {
	return fmt.Sprintf("No data loaded. Ensure %s is in the app folder.", dataFile)
}

// renderMarkdown converts trusted, app-authored copy to HTML. Parser
// instances are single-use, so each call builds its own.
func renderMarkdown(md string) template.HTML {
	p := parser.NewWithExtensions(parser.CommonExtensions)
	renderer := html.NewRenderer(html.RendererOptions{Flags: html.CommonFlags})
	return template.HTML(markdown.ToHTML([]byte(md), p, renderer))
}
