package calculator

import "errors"

// Validation errors, one per field.
var (
	ErrInvalidRevenue = errors.New("invalid revenue")
	ErrInvalidCost    = errors.New("invalid cost")
	ErrInvalidEmail   = errors.New("invalid email")
)

// State and input errors.
var (
	ErrUnknownField     = errors.New("unknown field")
	ErrInvalidValue     = errors.New("invalid field value")
	ErrNotANumber       = errors.New("not a number")
	ErrNotSubmittable   = errors.New("submission is only possible from the contact step")
	ErrSubmitInProgress = errors.New("submission already in progress")
	ErrNotSubmitting    = errors.New("no submission in progress")
)

// SubmitErrorMessage is shown whenever recording the entry fails.
const SubmitErrorMessage = "There was an error submitting your data. Please try again."

// TransportError wraps a recorder failure.
type TransportError struct {
	Err error
}

func (e *TransportError) Error() string {
	if e.Err == nil {
		return "record entry failed"
	}
	return "record entry: " + e.Err.Error()
}

func (e *TransportError) Unwrap() error {
	return e.Err
}
