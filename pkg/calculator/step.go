// Package calculator implements the ROI wizard: per-step validation, the
// navigation state machine, submission to a recorder and result
// formatting. It has no knowledge of how the wizard is presented.
package calculator

import "strconv"

// Step is a position in the wizard.
type Step int

const (
	StepRevenue Step = iota + 1
	StepCost
	StepContact
	StepResult
)

// InputSteps is the number of steps that collect input.
const InputSteps = 3

// String returns the lowercase step name.
func (s Step) String() string {
	switch s {
	case StepRevenue:
		return "revenue"
	case StepCost:
		return "cost"
	case StepContact:
		return "contact"
	case StepResult:
		return "result"
	default:
		return "step(" + strconv.Itoa(int(s)) + ")"
	}
}

// Label returns the title shown in the step indicator.
func (s Step) Label() string {
	switch s {
	case StepRevenue:
		return "Revenue"
	case StepCost:
		return "Cost"
	case StepContact:
		return "Contact"
	case StepResult:
		return "Result"
	default:
		return ""
	}
}

// Valid reports whether s is one of the four wizard steps.
func (s Step) Valid() bool {
	return s >= StepRevenue && s <= StepResult
}

// Terminal reports whether s has no outgoing transitions.
func (s Step) Terminal() bool {
	return s == StepResult
}

// Progress returns the completed fraction of the input steps, 0 to 1.
func (s Step) Progress() float64 {
	p := float64(s-1) / InputSteps
	if p < 0 {
		return 0
	}
	if p > 1 {
		return 1
	}
	return p
}
