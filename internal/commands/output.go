package commands

import (
	"fmt"
	"io"

	"github.com/fatih/color"

	"github.com/imgrooty/roi-calculator/pkg/calculator"
)

var (
	bold  = color.New(color.Bold).SprintFunc()
	green = color.New(color.FgGreen, color.Bold).SprintFunc()
	red   = color.New(color.FgRed, color.Bold).SprintFunc()
	cyan  = color.New(color.FgCyan).SprintFunc()
	faint = color.New(color.Faint).SprintFunc()
)

func printResult(w io.Writer, r calculator.Result) {
	roi := green
	if !r.Favorable() {
		roi = red
	}
	fmt.Fprintf(w, "%s %s\n", faint("Monthly Revenue:"), calculator.FormatCurrency(r.Revenue))
	fmt.Fprintf(w, "%s %s\n", faint("Monthly Cost:   "), calculator.FormatCurrency(r.Cost))
	fmt.Fprintf(w, "%s %s\n", faint("Monthly ROI:    "), roi(calculator.FormatCurrency(r.ROI())))
}

func printOK(w io.Writer, format string, args ...any) {
	fmt.Fprintf(w, "%s %s\n", green("✓"), fmt.Sprintf(format, args...))
}

func printWarn(w io.Writer, format string, args ...any) {
	fmt.Fprintf(w, "%s %s\n", red("✗"), fmt.Sprintf(format, args...))
}
