package components

import (
	"fmt"
	"html"
	"strings"

	"github.com/imgrooty/roi-calculator/internal/website"
	"github.com/imgrooty/roi-calculator/pkg/calculator"
	"github.com/imgrooty/roi-calculator/pkg/forms"
)

// Copy of the result step.
const (
	ResultTitle      = "Thank You!"
	ResultLead       = "We've received your information. Here's your ROI calculation:"
	ConsultLead      = "Want to discuss how we can help you improve your ROI even further?"
	ConsultButton    = "Get a Personalized Consultation"
	ConsultThanks    = "Thank you for your interest! Our team will contact you soon."
	SubmittingLabel  = "Submitting..."
	calculatorTitle  = "Calculate Your ROI"
	calculatorLead   = "Fill out the form below to see how much you could save"
	submitButtonText = "Submit"
)

// CalculatorOptions configures the calculator card.
type CalculatorOptions struct {
	Theme  website.Theme
	Wizard calculator.Snapshot
	// Consulted replaces the consultation button with a thank-you note
	Consulted bool
}

// RenderCalculatorSection generates the calculator section: heading, lead
// and the wizard card.
func RenderCalculatorSection(opts CalculatorOptions) string {
	var sb strings.Builder

	sb.WriteString(`<section id="calculator" class="section" aria-labelledby="calculator-title">`)
	sb.WriteString("\n")
	sb.WriteString(`<div class="container container-narrow">`)
	sb.WriteString("\n")
	sb.WriteString(fmt.Sprintf(`<h2 id="calculator-title" class="text-center">%s</h2>`, calculatorTitle))
	sb.WriteString("\n")
	sb.WriteString(fmt.Sprintf(`<p class="text-center muted">%s</p>`, calculatorLead))
	sb.WriteString("\n")
	sb.WriteString(`<br>`)
	sb.WriteString(RenderCalculator(opts))
	sb.WriteString(`</div>`)
	sb.WriteString("\n")
	sb.WriteString(`</section>`)
	sb.WriteString("\n")

	return sb.String()
}

// RenderCalculator generates the wizard card for the current snapshot:
// the step indicator and the step's form, or the result once submitted.
func RenderCalculator(opts CalculatorOptions) string {
	var sb strings.Builder
	snap := opts.Wizard

	sb.WriteString(`<div class="calc-card">`)
	sb.WriteString("\n")
	sb.WriteString(`<div class="calc-body">`)
	sb.WriteString("\n")

	if snap.Step.Terminal() {
		sb.WriteString(renderResult(opts))
	} else {
		sb.WriteString(renderSteps(opts.Theme, snap.Step))
		sb.WriteString(renderStepForm(snap))
	}

	sb.WriteString(`</div>`)
	sb.WriteString("\n")

	if snap.SubmitError != "" {
		sb.WriteString(fmt.Sprintf(`<div class="banner-error" role="alert"><p>%s</p></div>`, html.EscapeString(snap.SubmitError)))
		sb.WriteString("\n")
	}

	sb.WriteString(`</div>`)
	sb.WriteString("\n")

	return sb.String()
}

// renderSteps draws the indicator of the input steps and the progress bar.
func renderSteps(theme website.Theme, current calculator.Step) string {
	var sb strings.Builder

	sb.WriteString(`<ol class="steps" aria-label="Progress">`)
	for s := calculator.StepRevenue; s <= calculator.StepContact; s++ {
		class := "step"
		dot := fmt.Sprintf("%d", int(s))
		aria := ""
		switch {
		case s < current:
			class += " done"
			dot = website.Icon(website.IconCheck, 18)
		case s == current:
			class += " current"
			aria = ` aria-current="step"`
		}
		sb.WriteString(fmt.Sprintf(`<li class="%s"%s><span class="step-dot">%s</span><span>%s</span></li>`,
			class, aria, dot, html.EscapeString(theme.Caption(s.Label()))))
	}
	sb.WriteString(`</ol>`)
	sb.WriteString("\n")

	sb.WriteString(fmt.Sprintf(`<progress class="wizard-progress" value="%d" max="%d" aria-label="Completed steps">%d%%</progress>`,
		int(current)-1, calculator.InputSteps, int(current.Progress()*100)))
	sb.WriteString("\n")

	return sb.String()
}

func renderStepForm(snap calculator.Snapshot) string {
	prompt, ok := calculator.PromptFor(snap)
	if !ok {
		return ""
	}

	var sb strings.Builder

	event := "next_step"
	if snap.Step == calculator.StepContact {
		event = "submit"
	}
	sb.WriteString(fmt.Sprintf(`<form class="step-form animate-fade-in" lv-submit="%s" novalidate>`, event))
	sb.WriteString("\n")
	sb.WriteString(fmt.Sprintf(`<h3 class="step-heading">%s</h3>`, html.EscapeString(prompt.Heading)))
	sb.WriteString("\n")
	sb.WriteString(RenderField(prompt.Field))

	sb.WriteString(`<div class="wizard-actions">`)
	if snap.Step > calculator.StepRevenue {
		sb.WriteString(`<button type="button" class="btn btn-outline" lv-click="prev_step">Back</button>`)
	}
	switch {
	case snap.Step < calculator.StepContact:
		sb.WriteString(`<button type="submit" class="btn btn-primary next">Next</button>`)
	case snap.Submitting:
		sb.WriteString(fmt.Sprintf(`<button type="submit" class="btn btn-primary next" disabled><span class="spinner" aria-hidden="true"></span>%s</button>`, SubmittingLabel))
	default:
		sb.WriteString(fmt.Sprintf(`<button type="submit" class="btn btn-primary next">%s</button>`, submitButtonText))
	}
	sb.WriteString(`</div>`)
	sb.WriteString("\n")

	sb.WriteString(`</form>`)
	sb.WriteString("\n")

	return sb.String()
}

// RenderField renders a labelled input with its prefix, inline error and
// hint. Typing sends update_field with the field name and value.
func RenderField(f forms.Field) string {
	var sb strings.Builder
	id := f.ID()

	sb.WriteString(`<div class="field">`)
	sb.WriteString(fmt.Sprintf(`<label for="%s" class="field-label">%s</label>`, id, html.EscapeString(f.Label)))

	sb.WriteString(`<div class="input-wrap">`)
	class := "input"
	if f.Prefix != "" {
		class += " prefixed"
		sb.WriteString(fmt.Sprintf(`<span class="input-prefix">%s</span>`, html.EscapeString(f.Prefix)))
	}
	if f.HasError() {
		class += " has-error"
	}

	attrs := []string{
		fmt.Sprintf(`id="%s"`, id),
		fmt.Sprintf(`name="%s"`, html.EscapeString(f.Name)),
		fmt.Sprintf(`type="%s"`, f.Type),
		fmt.Sprintf(`class="%s"`, class),
		fmt.Sprintf(`value="%s"`, html.EscapeString(f.Value)),
		fmt.Sprintf(`placeholder="%s"`, html.EscapeString(f.Placeholder)),
		`autocomplete="off"`,
		`lv-input="update_field"`,
		fmt.Sprintf(`lv-value-field="%s"`, html.EscapeString(f.Name)),
	}
	if f.Type == forms.FieldNumber {
		attrs = append(attrs, `step="any"`, `inputmode="decimal"`)
		if f.Min != "" {
			attrs = append(attrs, fmt.Sprintf(`min="%s"`, html.EscapeString(f.Min)))
		}
	}
	if f.HasError() {
		attrs = append(attrs, `aria-invalid="true"`, fmt.Sprintf(`aria-describedby="%s-error"`, id))
	}
	sb.WriteString(`<input ` + strings.Join(attrs, " ") + `>`)
	sb.WriteString(`</div>`)

	if f.HasError() {
		sb.WriteString(fmt.Sprintf(`<p id="%s-error" class="field-error" role="alert">%s</p>`, id, html.EscapeString(f.Error)))
	}
	if f.Hint != "" {
		sb.WriteString(fmt.Sprintf(`<p class="field-hint">%s</p>`, html.EscapeString(f.Hint)))
	}
	sb.WriteString(`</div>`)
	sb.WriteString("\n")

	return sb.String()
}

func renderResult(opts CalculatorOptions) string {
	var sb strings.Builder
	theme := opts.Theme
	result := calculator.NewResult(opts.Wizard.Data.Revenue, opts.Wizard.Data.Cost)

	sb.WriteString(`<div class="result animate-fade-in">`)
	sb.WriteString("\n")

	sb.WriteString(`<div class="text-center">`)
	sb.WriteString(`<div class="result-icon">`)
	sb.WriteString(website.Icon(website.IconCircleOK, 32))
	sb.WriteString(`</div>`)
	sb.WriteString(fmt.Sprintf(`<h3>%s</h3><p>%s</p>`, ResultTitle, html.EscapeString(ResultLead)))
	sb.WriteString(`</div>`)
	sb.WriteString("\n")

	sb.WriteString(`<div class="result-panel">`)
	sb.WriteString(`<div class="tiles">`)
	sb.WriteString(renderTile(theme.Caption("Monthly Revenue"), calculator.FormatCurrency(result.Revenue), ""))
	sb.WriteString(renderTile(theme.Caption("Monthly Cost"), calculator.FormatCurrency(result.Cost), ""))
	sb.WriteString(renderTile(theme.Caption("Monthly ROI"), calculator.FormatCurrency(result.ROI()), string(result.Tone())))
	sb.WriteString(`</div>`)
	sb.WriteString("\n")
	sb.WriteString(RenderChart(ChartOptions{Theme: theme, Bars: result.Bars()}))
	sb.WriteString(`</div>`)
	sb.WriteString("\n")

	sb.WriteString(`<div class="text-center">`)
	if opts.Consulted {
		sb.WriteString(fmt.Sprintf(`<p role="status">%s</p>`, html.EscapeString(ConsultThanks)))
	} else {
		sb.WriteString(fmt.Sprintf(`<p>%s</p><br>`, html.EscapeString(ConsultLead)))
		sb.WriteString(fmt.Sprintf(`<button type="button" class="btn btn-primary" lv-click="request_consultation">%s</button>`, ConsultButton))
	}
	sb.WriteString(`</div>`)
	sb.WriteString("\n")

	sb.WriteString(`</div>`)
	sb.WriteString("\n")

	return sb.String()
}

func renderTile(label, value, tone string) string {
	class := "tile-value"
	if tone != "" {
		class += " " + tone
	}
	return fmt.Sprintf(`<div class="tile"><p class="tile-label">%s</p><p class="%s">%s</p></div>`,
		html.EscapeString(label), class, html.EscapeString(value))
}
