package ui

import (
	"fmt"
	"math"
	"strings"
)

// Monochromatic grayscale palette for the comparison charts, one shade per
// selected metric position.
var metricColors = []string{
	"#FFFFFF",
	"#CCCCCC",
	"#999999",
	"#666666",
	"#444444",
	"#2A2A2A",
}

// ChartConfig holds rendering parameters for SVG charts.
type ChartConfig struct {
	Width        int
	Height       int
	MarginTop    int
	MarginRight  int
	MarginBottom int
	MarginLeft   int
	BgColor      string
	GridColor    string
	TextColor    string
	FontSize     int
	Title        string
}

// DefaultChartConfig sizes the overview scatter: charts render as white
// panels on the dark page, with room at the bottom for rotated city labels.
func DefaultChartConfig() ChartConfig {
	return ChartConfig{
		Width:        860,
		Height:       500,
		MarginTop:    30,
		MarginRight:  80,
		MarginBottom: 130,
		MarginLeft:   70,
		BgColor:      "#FFFFFF",
		GridColor:    "#E0E0E0",
		TextColor:    "#000000",
		FontSize:     12,
	}
}

// barChartConfig sizes one comparison panel.
func barChartConfig(title string) ChartConfig {
	return ChartConfig{
		Width:        420,
		Height:       320,
		MarginTop:    40,
		MarginRight:  20,
		MarginBottom: 80,
		MarginLeft:   20,
		BgColor:      "#FFFFFF",
		GridColor:    "#E0E0E0",
		TextColor:    "#000000",
		FontSize:     11,
		Title:        title,
	}
}

// plotArea returns the usable drawing area dimensions.
func (c ChartConfig) plotArea() (x, y, w, h int) {
	return c.MarginLeft, c.MarginTop,
		c.Width - c.MarginLeft - c.MarginRight,
		c.Height - c.MarginTop - c.MarginBottom
}

// ScatterPoint is one city on the overview chart. A city whose cell is not
// numeric keeps its slot on the X-axis but draws no marker, so Valid is false.
type ScatterPoint struct {
	Label string
	Value float64
	Valid bool
}

// ScatterChart renders the overview: every city as a marker in the caller's
// order, with a dashed mean reference line across the full plot width. The
// mean is computed over the whole column, never over a selection.
func ScatterChart(points []ScatterPoint, metric string, mean float64, cfg ChartConfig) string {
	valid := 0
	for _, p := range points {
		if p.Valid {
			valid++
		}
	}
	if valid == 0 {
		return emptySVG(cfg, "No data points")
	}
	if cfg.Width == 0 {
		cfg = DefaultChartConfig()
	}

	px, py, pw, ph := cfg.plotArea()

	first := true
	var minVal, maxVal float64
	for _, p := range points {
		if !p.Valid {
			continue
		}
		if first {
			minVal, maxVal = p.Value, p.Value
			first = false
			continue
		}
		if p.Value < minVal {
			minVal = p.Value
		}
		if p.Value > maxVal {
			maxVal = p.Value
		}
	}
	if mean < minVal {
		minVal = mean
	}
	if mean > maxVal {
		maxVal = mean
	}
	vRange := maxVal - minVal
	if vRange < 0.001 {
		vRange = 1
	}
	minVal -= vRange * 0.05
	maxVal += vRange * 0.05
	vRange = maxVal - minVal

	valueToY := func(v float64) float64 {
		return float64(py+ph) - ((v - minVal) / vRange * float64(ph))
	}

	var sb strings.Builder
	sb.WriteString(svgHeader(cfg))
	sb.WriteString(fmt.Sprintf(`<rect x="0" y="0" width="%d" height="%d" fill="%s"/>`,
		cfg.Width, cfg.Height, cfg.BgColor))

	// Y-axis grid lines and labels
	gridLines := 5
	for i := 0; i <= gridLines; i++ {
		val := minVal + vRange*float64(i)/float64(gridLines)
		y := valueToY(val)
		sb.WriteString(fmt.Sprintf(`<line x1="%d" y1="%.1f" x2="%d" y2="%.1f" stroke="%s"/>`,
			px, y, px+pw, y, cfg.GridColor))
		sb.WriteString(fmt.Sprintf(`<text x="%d" y="%.1f" font-size="%d" fill="%s" text-anchor="end">%s</text>`,
			px-8, y+4, cfg.FontSize-1, cfg.TextColor, formatTick(val)))
	}

	// Axis lines
	sb.WriteString(fmt.Sprintf(`<line x1="%d" y1="%d" x2="%d" y2="%d" stroke="%s"/>`,
		px, py+ph, px+pw, py+ph, cfg.TextColor))
	sb.WriteString(fmt.Sprintf(`<line x1="%d" y1="%d" x2="%d" y2="%d" stroke="%s"/>`,
		px, py, px, py+ph, cfg.TextColor))

	// City markers: white circles with a gray outline, native tooltips
	n := len(points)
	slot := float64(pw) / float64(n)
	for i, p := range points {
		cx := float64(px) + slot*float64(i) + slot/2
		if p.Valid {
			cy := valueToY(p.Value)
			sb.WriteString(fmt.Sprintf(`<circle cx="%.1f" cy="%.1f" r="5" fill="#FFFFFF" stroke="#555555" stroke-width="1"><title>%s: %s</title></circle>`,
				cx, cy, escapeXML(p.Label), formatTick(p.Value)))
		}

		labelY := py + ph + 12
		sb.WriteString(fmt.Sprintf(`<text x="%.1f" y="%d" font-size="%d" fill="%s" text-anchor="end" transform="rotate(-45,%.1f,%d)">%s</text>`,
			cx, labelY, cfg.FontSize-1, cfg.TextColor, cx, labelY, escapeXML(p.Label)))
	}

	// Dashed mean reference line with its annotation on the right
	meanY := valueToY(mean)
	sb.WriteString(fmt.Sprintf(`<line x1="%d" y1="%.1f" x2="%d" y2="%.1f" stroke="#000000" stroke-dasharray="6,4"/>`,
		px, meanY, px+pw, meanY))
	sb.WriteString(fmt.Sprintf(`<text x="%d" y="%.1f" font-size="11" fill="#000000" text-anchor="end">Average: %.2f</text>`,
		px+pw-4, meanY-6, mean))

	// Axis titles
	sb.WriteString(fmt.Sprintf(`<text x="%d" y="%d" font-size="%d" fill="%s" text-anchor="middle">City</text>`,
		px+pw/2, cfg.Height-12, cfg.FontSize, cfg.TextColor))
	titleX := 20
	titleY := py + ph/2
	sb.WriteString(fmt.Sprintf(`<text x="%d" y="%d" font-size="%d" fill="%s" text-anchor="middle" transform="rotate(-90,%d,%d)">%s</text>`,
		titleX, titleY, cfg.FontSize, cfg.TextColor, titleX, titleY, escapeXML(metric)))

	sb.WriteString("</svg>")
	return sb.String()
}

// BarItem is one metric bar in a city's comparison panel. Text is rendered
// above the bar; non-numeric cells keep a zero-height bar and show their raw
// text instead of a formatted number.
type BarItem struct {
	Label string
	Value float64
	Text  string
	Color string
}

// CityBarChart renders one city's panel for the comparison view.
func CityBarChart(items []BarItem, cfg ChartConfig) string {
	if len(items) == 0 {
		return emptySVG(cfg, "No metrics selected")
	}
	if cfg.Width == 0 {
		cfg = barChartConfig(cfg.Title)
	}

	px, py, pw, ph := cfg.plotArea()

	minVal, maxVal := 0.0, 0.0
	for _, item := range items {
		if item.Value < minVal {
			minVal = item.Value
		}
		if item.Value > maxVal {
			maxVal = item.Value
		}
	}
	vRange := maxVal - minVal
	if vRange < 0.001 {
		vRange = 1
	}
	// Headroom for the outside value labels.
	maxVal += vRange * 0.15
	if minVal < 0 {
		minVal -= vRange * 0.15
	}
	vRange = maxVal - minVal

	valueToY := func(v float64) float64 {
		return float64(py+ph) - ((v - minVal) / vRange * float64(ph))
	}
	baseY := valueToY(0)

	var sb strings.Builder
	sb.WriteString(svgHeader(cfg))
	sb.WriteString(fmt.Sprintf(`<rect x="0" y="0" width="%d" height="%d" fill="%s"/>`,
		cfg.Width, cfg.Height, cfg.BgColor))

	if cfg.Title != "" {
		sb.WriteString(fmt.Sprintf(`<text x="%d" y="24" font-size="14" fill="%s" text-anchor="middle">%s</text>`,
			cfg.Width/2, cfg.TextColor, escapeXML(cfg.Title)))
	}

	// Baseline in the same tone as the original axis line
	sb.WriteString(fmt.Sprintf(`<line x1="%d" y1="%.1f" x2="%d" y2="%.1f" stroke="%s"/>`,
		px, baseY, px+pw, baseY, cfg.GridColor))

	slot := float64(pw) / float64(len(items))
	barW := slot * 0.6
	if barW > 80 {
		barW = 80
	}

	for i, item := range items {
		cx := float64(px) + slot*float64(i) + slot/2
		topY := valueToY(item.Value)

		barTop, barH := topY, baseY-topY
		if barH < 0 {
			barTop = baseY
			barH = -barH
		}
		sb.WriteString(fmt.Sprintf(`<rect x="%.1f" y="%.1f" width="%.1f" height="%.1f" fill="%s"><title>%s: %s</title></rect>`,
			cx-barW/2, barTop, barW, barH, item.Color, escapeXML(item.Label), escapeXML(item.Text)))

		// Value label outside the bar: above positive bars, below negatives
		textY := topY - 6
		if item.Value < 0 {
			textY = topY + 14
		}
		sb.WriteString(fmt.Sprintf(`<text x="%.1f" y="%.1f" font-size="11" fill="%s" text-anchor="middle">%s</text>`,
			cx, textY, cfg.TextColor, escapeXML(item.Text)))

		labelY := py + ph + 14
		sb.WriteString(fmt.Sprintf(`<text x="%.1f" y="%d" font-size="%d" fill="%s" text-anchor="end" transform="rotate(-30,%.1f,%d)">%s</text>`,
			cx, labelY, cfg.FontSize, cfg.TextColor, cx, labelY, escapeXML(item.Label)))
	}

	sb.WriteString("</svg>")
	return sb.String()
}

// formatTick keeps axis labels readable across metric magnitudes.
func formatTick(v float64) string {
	if math.Abs(v) >= 1000 {
		return fmt.Sprintf("%.0f", v)
	}
	return fmt.Sprintf("%.2f", v)
}

func svgHeader(cfg ChartConfig) string {
	return fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d" font-family="'Space Grotesk', sans-serif">`,
		cfg.Width, cfg.Height, cfg.Width, cfg.Height)
}

func emptySVG(cfg ChartConfig, msg string) string {
	if cfg.Width == 0 {
		cfg.Width = 400
	}
	if cfg.Height == 0 {
		cfg.Height = 200
	}
	return fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d"><rect width="%d" height="%d" fill="#FFFFFF"/><text x="%d" y="%d" text-anchor="middle" fill="#999999" font-size="14">%s</text></svg>`,
		cfg.Width, cfg.Height, cfg.Width, cfg.Height, cfg.Width/2, cfg.Height/2, escapeXML(msg))
}

func escapeXML(s string) string {
	s = strings.ReplaceAll(s, "&", "&amp;")
	s = strings.ReplaceAll(s, "<", "&lt;")
	s = strings.ReplaceAll(s, ">", "&gt;")
	s = strings.ReplaceAll(s, `"`, "&quot;")
	return s
}
