package calculator

import "context"

// Recorder forwards a submitted entry to the logging collaborator.
type Recorder interface {
	Record(ctx context.Context, e Entry) error
}

// RecorderFunc adapts a function to Recorder.
type RecorderFunc func(ctx context.Context, e Entry) error

// Record calls f.
func (f RecorderFunc) Record(ctx context.Context, e Entry) error {
	return f(ctx, e)
}

// Submit validates the contact step, records the entry and moves to the
// result step on success. On failure the step and data are kept, the
// banner message is set and a *TransportError is returned. A second call
// while one is in flight returns ErrSubmitInProgress without touching the
// recorder.
func (s *Session) Submit(ctx context.Context, rec Recorder) error {
	entry, err := s.BeginSubmit()
	if err != nil {
		return err
	}
	return s.FinishSubmit(rec.Record(ctx, entry))
}

// BeginSubmit runs the guards and validation of a submission and marks it
// in flight. The caller must record the returned entry and pass the
// outcome to FinishSubmit.
func (s *Session) BeginSubmit() (Entry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.step != StepContact {
		return Entry{}, ErrNotSubmittable
	}
	if s.submitting {
		return Entry{}, ErrSubmitInProgress
	}
	if !s.validateLocked() {
		return Entry{}, ErrFor(s.errors)
	}

	s.submitting = true
	s.submitError = ""
	return s.data.Entry(), nil
}

// FinishSubmit completes a submission started with BeginSubmit.
func (s *Session) FinishSubmit(recordErr error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.submitting {
		return ErrNotSubmitting
	}
	s.submitting = false

	if recordErr != nil {
		s.submitError = SubmitErrorMessage
		return &TransportError{Err: recordErr}
	}
	s.moveLocked(StepResult)
	return nil
}
