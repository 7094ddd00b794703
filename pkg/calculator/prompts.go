package calculator

import (
	"strconv"

	"github.com/imgrooty/roi-calculator/pkg/forms"
)

// Prompt is the copy shown for one input step.
type Prompt struct {
	Heading string
	Field   forms.Field
}

var prompts = map[Step]Prompt{
	StepRevenue: {
		Heading: "What is your monthly revenue?",
		Field: forms.Field{
			Name:        string(FieldRevenue),
			Type:        forms.FieldNumber,
			Label:       "Monthly Revenue ($)",
			Placeholder: "0",
			Prefix:      "$",
			Min:         "1",
			Hint:        "Enter your monthly revenue to calculate potential ROI.",
		},
	},
	StepCost: {
		Heading: "What are your monthly costs?",
		Field: forms.Field{
			Name:        string(FieldCost),
			Type:        forms.FieldNumber,
			Label:       "Monthly Cost ($)",
			Placeholder: "0",
			Prefix:      "$",
			Min:         "1",
			Hint:        "Enter your monthly operational costs to calculate your ROI.",
		},
	},
	StepContact: {
		Heading: "Get your ROI calculation",
		Field: forms.Field{
			Name:        string(FieldEmail),
			Type:        forms.FieldEmail,
			Label:       "Email Address",
			Placeholder: "your@email.com",
			Hint:        "Enter your email to receive a detailed ROI analysis.",
		},
	},
}

// PromptFor returns the copy for an input step with the field populated
// from snap. The second result is false for the result step.
func PromptFor(snap Snapshot) (Prompt, bool) {
	p, ok := prompts[snap.Step]
	if !ok {
		return Prompt{}, false
	}
	switch snap.Step {
	case StepRevenue:
		p.Field.Value = amountText(snap.Data.Revenue)
	case StepCost:
		p.Field.Value = amountText(snap.Data.Cost)
	case StepContact:
		p.Field.Value = snap.Data.Email
	}
	p.Field.Error = snap.Errors.Get(p.Field.Name)
	return p, true
}

// amountText renders an amount for an input box; zero shows as empty so
// the placeholder is visible.
func amountText(v float64) string {
	if v == 0 {
		return ""
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}
