package calculator

import "github.com/imgrooty/roi-calculator/pkg/forms"

// User-facing validation messages.
const (
	MsgInvalidRevenue = "Please enter a valid revenue amount (greater than 0)"
	MsgInvalidCost    = "Please enter a valid cost amount (greater than 0)"
	MsgInvalidEmail   = "Please enter a valid email address"
)

var (
	revenueRules = []forms.Validator{forms.Positive(MsgInvalidRevenue)}
	costRules    = []forms.Validator{forms.Positive(MsgInvalidCost)}
	emailRules   = []forms.Validator{forms.Required(MsgInvalidEmail), forms.Email(MsgInvalidEmail)}
)

// Validate checks the field belonging to step and returns a fresh error
// set containing at most that field. The result step has nothing to
// validate.
func Validate(step Step, data FormData) forms.Errors {
	errs := forms.Errors{}
	switch step {
	case StepRevenue:
		errs.Validate(string(FieldRevenue), data.Revenue, revenueRules...)
	case StepCost:
		errs.Validate(string(FieldCost), data.Cost, costRules...)
	case StepContact:
		errs.Validate(string(FieldEmail), data.Email, emailRules...)
	}
	return errs
}

// ErrFor returns the sentinel error for a failing field, or nil.
func ErrFor(errs forms.Errors) error {
	switch {
	case errs.Has(string(FieldRevenue)):
		return ErrInvalidRevenue
	case errs.Has(string(FieldCost)):
		return ErrInvalidCost
	case errs.Has(string(FieldEmail)):
		return ErrInvalidEmail
	default:
		return nil
	}
}
