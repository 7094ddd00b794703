package calculator

import (
	"math"
	"strconv"
	"strings"
)

// Tone classifies a result for presentation.
type Tone string

const (
	ToneFavorable   Tone = "favorable"
	ToneUnfavorable Tone = "unfavorable"
)

// Bar is one chart datum.
type Bar struct {
	Label string
	Value float64
}

// Result is the outcome shown on the last step.
type Result struct {
	Revenue float64
	Cost    float64
}

// NewResult builds a result from the two amounts.
func NewResult(revenue, cost float64) Result {
	return Result{Revenue: revenue, Cost: cost}
}

// ROI returns revenue minus cost.
func (r Result) ROI() float64 {
	return r.Revenue - r.Cost
}

// Favorable reports whether the ROI is zero or positive.
func (r Result) Favorable() bool {
	return r.ROI() >= 0
}

// Tone returns the presentation tone of the ROI.
func (r Result) Tone() Tone {
	if r.Favorable() {
		return ToneFavorable
	}
	return ToneUnfavorable
}

// Bars returns the chart data: revenue, cost, ROI.
func (r Result) Bars() []Bar {
	return []Bar{
		{Label: "Revenue", Value: r.Revenue},
		{Label: "Cost", Value: r.Cost},
		{Label: "ROI", Value: r.ROI()},
	}
}

// FormatCurrency renders v as US dollars with thousands separators and at
// most three fraction digits: 5000 is "$5,000", -3000 is "-$3,000".
func FormatCurrency(v float64) string {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return "$0"
	}
	sign := ""
	if v < 0 {
		sign = "-"
		v = -v
	}
	s := strconv.FormatFloat(v, 'f', 3, 64)
	whole, frac, _ := strings.Cut(s, ".")
	frac = strings.TrimRight(frac, "0")

	var b strings.Builder
	b.WriteString(sign)
	b.WriteByte('$')
	b.WriteString(group(whole))
	if frac != "" {
		b.WriteByte('.')
		b.WriteString(frac)
	}
	if b.String() == "-$0" {
		return "$0"
	}
	return b.String()
}

// FormatAxis renders a chart tick: "$5k" from 1000 up, "$500" below.
func FormatAxis(v float64) string {
	if v >= 1000 {
		return "$" + strconv.FormatFloat(v/1000, 'f', -1, 64) + "k"
	}
	return "$" + strconv.FormatFloat(v, 'f', -1, 64)
}

func group(digits string) string {
	if len(digits) <= 3 {
		return digits
	}
	var b strings.Builder
	lead := len(digits) % 3
	if lead > 0 {
		b.WriteString(digits[:lead])
	}
	for i := lead; i < len(digits); i += 3 {
		if b.Len() > 0 {
			b.WriteByte(',')
		}
		b.WriteString(digits[i : i+3])
	}
	return b.String()
}
