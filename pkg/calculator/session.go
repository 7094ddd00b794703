package calculator

import (
	"sync"

	"github.com/imgrooty/roi-calculator/pkg/forms"
)

// Observer receives state machine events. Implementations must not call
// back into the Session.
type Observer interface {
	StepChanged(from, to Step)
	ValidationFailed(field string)
}

type nopObserver struct{}

func (nopObserver) StepChanged(Step, Step)  {}
func (nopObserver) ValidationFailed(string) {}

// Option configures a Session.
type Option func(*Session)

// WithObserver sets the observer notified of transitions and failures.
func WithObserver(o Observer) Option {
	return func(s *Session) {
		if o != nil {
			s.observer = o
		}
	}
}

// WithData seeds the session with already entered values.
func WithData(d FormData) Option {
	return func(s *Session) {
		s.data = d
	}
}

// Session is one wizard instance. It is safe for concurrent use.
type Session struct {
	mu sync.Mutex

	step        Step
	data        FormData
	errors      forms.Errors
	submitting  bool
	submitError string

	observer Observer
}

// NewSession creates a wizard positioned at the revenue step.
func NewSession(opts ...Option) *Session {
	s := &Session{
		step:     StepRevenue,
		errors:   forms.Errors{},
		observer: nopObserver{},
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// UpdateField overwrites one field. Amounts accept numbers or strings,
// which are coerced with ParseAmount. No validation is performed.
func (s *Session) UpdateField(key Field, value any) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	switch key {
	case FieldRevenue, FieldCost:
		v, err := amountOf(value)
		if err != nil {
			return err
		}
		if key == FieldRevenue {
			s.data.Revenue = v
		} else {
			s.data.Cost = v
		}
	case FieldEmail:
		v, ok := value.(string)
		if !ok {
			return ErrInvalidValue
		}
		s.data.Email = v
	default:
		return ErrUnknownField
	}
	return nil
}

// Advance validates the current step and moves forward on success. The
// contact step is validated but never left here; only Submit reaches the
// result step. It reports whether the step changed.
func (s *Session) Advance() bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.step.Terminal() {
		return false
	}
	if !s.validateLocked() {
		return false
	}
	if s.step >= StepContact {
		return false
	}
	s.moveLocked(s.step + 1)
	return true
}

// Retreat moves back one step without validation. It does nothing on the
// first step or once the result is shown.
func (s *Session) Retreat() bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.step <= StepRevenue || s.step.Terminal() {
		return false
	}
	s.moveLocked(s.step - 1)
	return true
}

// Step returns the current step.
func (s *Session) Step() Step {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.step
}

// Data returns a copy of the entered values.
func (s *Session) Data() FormData {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.data
}

// Errors returns a copy of the last validation result.
func (s *Session) Errors() forms.Errors {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.errors.Clone()
}

// Submitting reports whether a submission is in flight.
func (s *Session) Submitting() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.submitting
}

// SubmitError returns the banner message of the last failed submission,
// or "".
func (s *Session) SubmitError() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.submitError
}

// Result returns the computed result of the current data.
func (s *Session) Result() Result {
	s.mu.Lock()
	defer s.mu.Unlock()
	return NewResult(s.data.Revenue, s.data.Cost)
}

// Snapshot is a consistent view of the whole session.
type Snapshot struct {
	Step        Step
	Data        FormData
	Errors      forms.Errors
	Submitting  bool
	SubmitError string
}

// Snapshot returns the session state under a single lock.
func (s *Session) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return Snapshot{
		Step:        s.step,
		Data:        s.data,
		Errors:      s.errors.Clone(),
		Submitting:  s.submitting,
		SubmitError: s.submitError,
	}
}

func (s *Session) validateLocked() bool {
	s.errors = Validate(s.step, s.data)
	for _, f := range s.errors.Fields() {
		s.observer.ValidationFailed(f)
	}
	return s.errors.Empty()
}

func (s *Session) moveLocked(to Step) {
	from := s.step
	s.step = to
	s.observer.StepChanged(from, to)
}
