package components

import (
	"fmt"
	"html"
	"math"
	"strings"

	"github.com/imgrooty/roi-calculator/internal/website"
	"github.com/imgrooty/roi-calculator/pkg/calculator"
)

// Chart geometry in SVG user units.
const (
	chartWidth  = 600
	chartHeight = 320

	chartTop    = 30
	chartRight  = 30
	chartBottom = 40
	chartLeft   = 70

	chartTicks = 4
)

// ChartOptions configures the result chart.
type ChartOptions struct {
	Theme website.Theme
	Bars  []calculator.Bar
}

// RenderChart draws bars as an SVG bar chart with a zero baseline, dashed
// horizontal grid lines and axis ticks formatted with calculator.FormatAxis.
// The last bar is treated as the ROI and coloured by its sign.
func RenderChart(opts ChartOptions) string {
	var sb strings.Builder

	sb.WriteString(`<div class="chart">`)
	if opts.Theme.ChartBadge != "" {
		sb.WriteString(fmt.Sprintf(`<div class="chart-badge">%s</div>`, html.EscapeString(opts.Theme.ChartBadge)))
	}
	sb.WriteString(fmt.Sprintf(`<svg viewBox="0 0 %d %d" xmlns="http://www.w3.org/2000/svg" role="img" aria-label="ROI chart">`,
		chartWidth, chartHeight))

	if len(opts.Bars) == 0 {
		sb.WriteString(`</svg></div>`)
		return sb.String()
	}

	ticks := axisTicks(opts.Bars, chartTicks)
	lo, hi := ticks[0], ticks[len(ticks)-1]
	plotH := float64(chartHeight - chartTop - chartBottom)
	plotW := float64(chartWidth - chartLeft - chartRight)
	// Halved so amounts near the float64 limit do not overflow.
	y := func(v float64) float64 {
		return float64(chartTop) + (hi/2-v/2)/(hi/2-lo/2)*plotH
	}

	pal := opts.Theme.Chart
	mono := `font-family="monospace" font-size="12"`

	for _, t := range ticks {
		ty := y(t)
		sb.WriteString(fmt.Sprintf(`<line x1="%d" y1="%.1f" x2="%d" y2="%.1f" stroke="%s" stroke-dasharray="3 3"/>`,
			chartLeft, ty, chartWidth-chartRight, ty, pal.Grid))
		sb.WriteString(fmt.Sprintf(`<text x="%d" y="%.1f" text-anchor="end" dominant-baseline="middle" fill="%s" %s>%s</text>`,
			chartLeft-8, ty, pal.Axis, mono, html.EscapeString(calculator.FormatAxis(t))))
	}
	sb.WriteString(fmt.Sprintf(`<line x1="%d" y1="%d" x2="%d" y2="%d" stroke="%s"/>`,
		chartLeft, chartTop, chartLeft, chartHeight-chartBottom, pal.Axis))

	band := plotW / float64(len(opts.Bars))
	barW := band * 0.6
	for i, b := range opts.Bars {
		color := barColor(pal, i, len(opts.Bars), b.Value)
		x := float64(chartLeft) + band*float64(i) + (band-barW)/2
		top, bottom := y(math.Max(b.Value, 0)), y(math.Min(b.Value, 0))
		sb.WriteString(fmt.Sprintf(`<rect class="bar" x="%.1f" y="%.1f" width="%.1f" height="%.1f" rx="4" fill="%s" color="%s"><title>%s %s</title></rect>`,
			x, top, barW, bottom-top, color, color,
			html.EscapeString(opts.Theme.Caption(b.Label)),
			html.EscapeString(calculator.FormatCurrency(b.Value))))
		sb.WriteString(fmt.Sprintf(`<text x="%.1f" y="%d" text-anchor="middle" fill="%s" %s>%s</text>`,
			x+barW/2, chartHeight-chartBottom+20, pal.Axis, mono, html.EscapeString(b.Label)))
	}

	zero := y(0)
	sb.WriteString(fmt.Sprintf(`<line x1="%d" y1="%.1f" x2="%d" y2="%.1f" stroke="%s"/>`,
		chartLeft, zero, chartWidth-chartRight, zero, pal.Axis))

	sb.WriteString(`</svg></div>`)
	return sb.String()
}

func barColor(p website.ChartPalette, i, n int, v float64) string {
	switch {
	case i == n-1:
		return p.ROI(v >= 0)
	case i == 0:
		return p.Revenue
	default:
		return p.Cost
	}
}

// axisTicks returns evenly spaced "nice" tick values covering every bar
// value and zero, lowest first. At least two ticks are returned. When
// rounding out to nice values would leave the float64 range, the ticks are
// the extremes and zero.
func axisTicks(bars []calculator.Bar, n int) []float64 {
	lo, hi := 0.0, 0.0
	for _, b := range bars {
		lo = math.Min(lo, b.Value)
		hi = math.Max(hi, b.Value)
	}
	if hi == lo {
		hi = lo + 1
	}

	step := niceStep(hi/float64(n) - lo/float64(n))
	start := math.Floor(lo/step) * step
	end := math.Ceil(hi/step) * step
	if !finite(step) || !finite(start) || !finite(end) || step <= 0 {
		if lo < 0 && hi > 0 {
			return []float64{lo, 0, hi}
		}
		return []float64{lo, hi}
	}

	ticks := make([]float64, 0, n+2)
	for v := start; v <= end+step/2; v += step {
		ticks = append(ticks, roundTick(v, step))
	}
	return ticks
}

// niceStep rounds raw up to 1, 2, 2.5 or 5 times a power of ten.
func niceStep(raw float64) float64 {
	mag := math.Pow(10, math.Floor(math.Log10(raw)))
	switch f := raw / mag; {
	case f <= 1:
		return mag
	case f <= 2:
		return 2 * mag
	case f <= 2.5:
		return 2.5 * mag
	case f <= 5:
		return 5 * mag
	default:
		return 10 * mag
	}
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

func roundTick(v, step float64) float64 {
	r := math.Round(v/step) * step
	if r == 0 {
		return 0
	}
	return r
}
