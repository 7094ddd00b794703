package tui

import (
	"fmt"
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/imgrooty/roi-calculator/internal/website"
	"github.com/imgrooty/roi-calculator/pkg/calculator"
)

const (
	barWidth   = 32
	labelWidth = 18
)

// RenderBars draws bars as horizontal block bars scaled to the largest
// magnitude. Negative values extend with a lighter block.
func RenderBars(t website.Theme, bars []calculator.Bar) string {
	peak := 0.0
	for _, b := range bars {
		peak = math.Max(peak, math.Abs(b.Value))
	}

	var sb strings.Builder
	for i, b := range bars {
		n := 0
		if peak > 0 {
			n = int(math.Round(math.Abs(b.Value) / peak * barWidth))
		}
		block := "█"
		if b.Value < 0 {
			block = "▓"
		}
		color := barColor(t.Chart, i, len(bars), b.Value)
		bar := lipgloss.NewStyle().Foreground(lipgloss.Color(color)).Render(strings.Repeat(block, n))

		fmt.Fprintf(&sb, "%-*s %s%s %s\n",
			labelWidth, t.Caption(b.Label), bar, strings.Repeat(" ", barWidth-n), calculator.FormatCurrency(b.Value))
	}
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
