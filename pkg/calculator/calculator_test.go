package calculator

import (
	"context"
	"errors"
	"math"
	"sync"
	"sync/atomic"
	"testing"
	"time"
)

func TestValidate(t *testing.T) {
	tests := []struct {
		name  string
		step  Step
		data  FormData
		field string
		msg   string
	}{
		{"revenue zero", StepRevenue, FormData{}, "revenue", MsgInvalidRevenue},
		{"revenue negative", StepRevenue, FormData{Revenue: -1}, "revenue", MsgInvalidRevenue},
		{"revenue NaN", StepRevenue, FormData{Revenue: math.NaN()}, "revenue", MsgInvalidRevenue},
		{"revenue ok", StepRevenue, FormData{Revenue: 0.01}, "", ""},
		{"cost zero", StepCost, FormData{Revenue: 10}, "cost", MsgInvalidCost},
		{"cost ok", StepCost, FormData{Cost: 3000}, "", ""},
		{"email empty", StepContact, FormData{}, "email", MsgInvalidEmail},
		{"email no tld", StepContact, FormData{Email: "a@b"}, "email", MsgInvalidEmail},
		{"email space", StepContact, FormData{Email: "a b@c.de"}, "email", MsgInvalidEmail},
		{"email no-break space", StepContact, FormData{Email: "a\u00a0b@c.com"}, "email", MsgInvalidEmail},
		{"email vertical tab", StepContact, FormData{Email: "a\vb@c.com"}, "email", MsgInvalidEmail},
		{"email line separator", StepContact, FormData{Email: "a@b.c\u2028om"}, "email", MsgInvalidEmail},
		{"email ideographic space", StepContact, FormData{Email: "a\u3000@b.com"}, "email", MsgInvalidEmail},
		{"email ok", StepContact, FormData{Email: "a@b.co"}, "", ""},
		{"result", StepResult, FormData{}, "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			errs := Validate(tt.step, tt.data)
			if tt.field == "" {
				if !errs.Empty() {
					t.Fatalf("expected no errors, got %v", errs)
				}
				return
			}
			if len(errs) != 1 {
				t.Fatalf("expected exactly one error, got %v", errs)
			}
			if got := errs.Get(tt.field); got != tt.msg {
				t.Errorf("errs[%s] = %q, want %q", tt.field, got, tt.msg)
			}
		})
	}
}

func TestValidateScopedToStep(t *testing.T) {
	// Everything is invalid, but only the active step's field is reported.
	errs := Validate(StepCost, FormData{})
	if errs.Has("revenue") || errs.Has("email") || !errs.Has("cost") {
		t.Errorf("errors not scoped to step: %v", errs)
	}
}

func TestParseAmount(t *testing.T) {
	tests := []struct {
		in   string
		want float64
	}{
		{"", 0},
		{"abc", 0},
		{"12abc", 12},
		{"1e3", 1000},
		{"-5", -5},
		{"  42.5", 42.5},
		{".5", 0.5},
		{"5.", 5},
		{"1e999", 0},
		{"Infinity", 0},
	}
	for _, tt := range tests {
		if got := ParseAmount(tt.in); got != tt.want {
			t.Errorf("ParseAmount(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestParseAmountStrict(t *testing.T) {
	if v, err := ParseAmountStrict(" 5000 "); err != nil || v != 5000 {
		t.Errorf("ParseAmountStrict(5000) = %v, %v", v, err)
	}
	for _, in := range []string{"", "12abc", "NaN", "Inf"} {
		if _, err := ParseAmountStrict(in); !errors.Is(err, ErrNotANumber) {
			t.Errorf("ParseAmountStrict(%q) err = %v, want ErrNotANumber", in, err)
		}
	}
}

func TestUpdateField(t *testing.T) {
	s := NewSession()

	if err := s.UpdateField(FieldRevenue, "5000"); err != nil {
		t.Fatal(err)
	}
	if err := s.UpdateField(FieldCost, 3000); err != nil {
		t.Fatal(err)
	}
	if err := s.UpdateField(FieldEmail, "a@b.co"); err != nil {
		t.Fatal(err)
	}

	want := FormData{Revenue: 5000, Cost: 3000, Email: "a@b.co"}
	if got := s.Data(); got != want {
		t.Errorf("Data() = %+v, want %+v", got, want)
	}

	if err := s.UpdateField("phone", "x"); !errors.Is(err, ErrUnknownField) {
		t.Errorf("unknown field err = %v", err)
	}
	if err := s.UpdateField(FieldEmail, 12); !errors.Is(err, ErrInvalidValue) {
		t.Errorf("non-string email err = %v", err)
	}
	if err := s.UpdateField(FieldRevenue, "junk"); err != nil || s.Data().Revenue != 0 {
		t.Errorf("junk revenue should coerce to 0, got %v (%v)", s.Data().Revenue, err)
	}
}

func TestAdvanceRetreat(t *testing.T) {
	s := NewSession()

	if s.Advance() {
		t.Fatal("advanced with empty revenue")
	}
	if s.Step() != StepRevenue || s.Errors().Get("revenue") != MsgInvalidRevenue {
		t.Fatalf("expected revenue error at step 1, got step %v errors %v", s.Step(), s.Errors())
	}

	s.UpdateField(FieldRevenue, 5000.0)
	if !s.Advance() || s.Step() != StepCost {
		t.Fatalf("expected step 2, got %v", s.Step())
	}
	if !s.Errors().Empty() {
		t.Errorf("errors should be recomputed on success, got %v", s.Errors())
	}

	if !s.Retreat() || s.Step() != StepRevenue {
		t.Fatalf("retreat should go to step 1, got %v", s.Step())
	}
	if s.Retreat() || s.Step() != StepRevenue {
		t.Fatal("retreat at step 1 must be a no-op")
	}
	if s.Data().Revenue != 5000 {
		t.Error("retreat must not clear data")
	}

	s.Advance()
	s.UpdateField(FieldCost, 3000.0)
	s.Advance()
	if s.Step() != StepContact {
		t.Fatalf("expected step 3, got %v", s.Step())
	}

	s.UpdateField(FieldEmail, "a@b.co")
	if s.Advance() {
		t.Error("advance from step 3 must not reach the result")
	}
	if s.Step() != StepContact {
		t.Errorf("step = %v, want contact", s.Step())
	}
}

func TestAdvanceFromContactValidates(t *testing.T) {
	s := NewSession(WithData(FormData{Revenue: 1, Cost: 1}))
	s.Advance()
	s.Advance()

	s.Advance()
	if s.Errors().Get("email") != MsgInvalidEmail {
		t.Errorf("expected email error, got %v", s.Errors())
	}
}

type recordingObserver struct {
	mu       sync.Mutex
	moves    [][2]Step
	failures []string
}

func (o *recordingObserver) StepChanged(from, to Step) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.moves = append(o.moves, [2]Step{from, to})
}

func (o *recordingObserver) ValidationFailed(field string) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.failures = append(o.failures, field)
}

func TestObserver(t *testing.T) {
	obs := &recordingObserver{}
	s := NewSession(WithObserver(obs))

	s.Advance()
	s.UpdateField(FieldRevenue, 10.0)
	s.Advance()
	s.Retreat()

	if len(obs.failures) != 1 || obs.failures[0] != "revenue" {
		t.Errorf("failures = %v", obs.failures)
	}
	want := [][2]Step{{StepRevenue, StepCost}, {StepCost, StepRevenue}}
	if len(obs.moves) != len(want) {
		t.Fatalf("moves = %v", obs.moves)
	}
	for i := range want {
		if obs.moves[i] != want[i] {
			t.Errorf("move %d = %v, want %v", i, obs.moves[i], want[i])
		}
	}
}

func atContact(t *testing.T, email string) *Session {
	t.Helper()
	s := NewSession(WithData(FormData{Revenue: 5000, Cost: 3000, Email: email}))
	if !s.Advance() || !s.Advance() {
		t.Fatal("failed to reach contact step")
	}
	return s
}

func TestSubmitSuccess(t *testing.T) {
	s := atContact(t, "a@b.co")

	var got Entry
	rec := RecorderFunc(func(ctx context.Context, e Entry) error {
		if !s.Submitting() {
			t.Error("Submitting() should be true during the call")
		}
		got = e
		return nil
	})

	if err := s.Submit(context.Background(), rec); err != nil {
		t.Fatalf("Submit: %v", err)
	}
	want := Entry{Email: "a@b.co", Revenue: 5000, Cost: 3000, ROI: 2000}
	if got != want {
		t.Errorf("entry = %+v, want %+v", got, want)
	}
	if s.Step() != StepResult || s.Submitting() || s.SubmitError() != "" {
		t.Errorf("unexpected state after success: step=%v submitting=%v err=%q",
			s.Step(), s.Submitting(), s.SubmitError())
	}

	if s.Retreat() {
		t.Error("result step must be terminal")
	}
	if s.Advance() {
		t.Error("result step must be terminal")
	}
}

func TestSubmitFailure(t *testing.T) {
	s := atContact(t, "a@b.co")
	cause := errors.New("boom")

	err := s.Submit(context.Background(), RecorderFunc(func(context.Context, Entry) error {
		return cause
	}))

	var te *TransportError
	if !errors.As(err, &te) || !errors.Is(err, cause) {
		t.Fatalf("expected TransportError wrapping cause, got %v", err)
	}
	if s.Step() != StepContact {
		t.Errorf("step = %v, want contact", s.Step())
	}
	if s.SubmitError() != SubmitErrorMessage {
		t.Errorf("SubmitError() = %q", s.SubmitError())
	}
	if s.Submitting() {
		t.Error("Submitting() should be false after failure")
	}
	if s.Data().Email != "a@b.co" {
		t.Error("data must be kept after failure")
	}

	// A retry clears the banner up front and succeeds.
	if err := s.Submit(context.Background(), RecorderFunc(func(context.Context, Entry) error {
		if s.SubmitError() != "" {
			t.Error("banner should be cleared when a new attempt starts")
		}
		return nil
	})); err != nil {
		t.Fatal(err)
	}
	if s.Step() != StepResult {
		t.Errorf("step = %v, want result", s.Step())
	}
}

func TestSubmitInvalidEmail(t *testing.T) {
	s := atContact(t, "not-an-email")
	var calls int32

	err := s.Submit(context.Background(), RecorderFunc(func(context.Context, Entry) error {
		atomic.AddInt32(&calls, 1)
		return nil
	}))

	if !errors.Is(err, ErrInvalidEmail) {
		t.Errorf("err = %v, want ErrInvalidEmail", err)
	}
	if calls != 0 {
		t.Error("recorder must not be called for invalid input")
	}
	if s.Errors().Get("email") != MsgInvalidEmail {
		t.Errorf("errors = %v", s.Errors())
	}
}

func TestSubmitWrongStep(t *testing.T) {
	s := NewSession()
	if err := s.Submit(context.Background(), RecorderFunc(func(context.Context, Entry) error { return nil })); !errors.Is(err, ErrNotSubmittable) {
		t.Errorf("err = %v, want ErrNotSubmittable", err)
	}
}

func TestSubmitReentrancy(t *testing.T) {
	s := atContact(t, "a@b.co")
	var calls int32
	release := make(chan struct{})
	started := make(chan struct{})

	rec := RecorderFunc(func(context.Context, Entry) error {
		atomic.AddInt32(&calls, 1)
		close(started)
		<-release
		return nil
	})

	done := make(chan error, 1)
	go func() { done <- s.Submit(context.Background(), rec) }()

	select {
	case <-started:
	case <-time.After(time.Second):
		t.Fatal("first submission never started")
	}

	if err := s.Submit(context.Background(), rec); !errors.Is(err, ErrSubmitInProgress) {
		t.Errorf("second submit err = %v, want ErrSubmitInProgress", err)
	}

	close(release)
	if err := <-done; err != nil {
		t.Fatal(err)
	}
	if calls != 1 {
		t.Errorf("recorder called %d times, want 1", calls)
	}
}

func TestFinishWithoutBegin(t *testing.T) {
	s := NewSession()
	if err := s.FinishSubmit(nil); !errors.Is(err, ErrNotSubmitting) {
		t.Errorf("err = %v, want ErrNotSubmitting", err)
	}
}

func TestResult(t *testing.T) {
	r := NewResult(5000, 3000)
	if r.ROI() != 2000 || !r.Favorable() || r.Tone() != ToneFavorable {
		t.Errorf("unexpected result %+v", r)
	}

	neg := NewResult(3000, 6000)
	if neg.ROI() != -3000 || neg.Favorable() || neg.Tone() != ToneUnfavorable {
		t.Errorf("unexpected negative result %+v", neg)
	}

	if !NewResult(100, 100).Favorable() {
		t.Error("zero ROI counts as favorable")
	}

	bars := r.Bars()
	if len(bars) != 3 || bars[0].Label != "Revenue" || bars[1].Label != "Cost" || bars[2].Label != "ROI" {
		t.Fatalf("bars = %+v", bars)
	}
	if bars[2].Value != 2000 {
		t.Errorf("ROI bar = %v", bars[2].Value)
	}
}

func TestFormatCurrency(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{5000, "$5,000"},
		{3000, "$3,000"},
		{2000, "$2,000"},
		{-3000, "-$3,000"},
		{0, "$0"},
		{999, "$999"},
		{1234.5, "$1,234.5"},
		{1234567.891, "$1,234,567.891"},
		{0.12345, "$0.123"},
		{-0.0001, "$0"},
	}
	for _, tt := range tests {
		if got := FormatCurrency(tt.in); got != tt.want {
			t.Errorf("FormatCurrency(%v) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestFormatAxis(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{5000, "$5k"},
		{1500, "$1.5k"},
		{500, "$500"},
		{0, "$0"},
		{-2000, "$-2000"},
	}
	for _, tt := range tests {
		if got := FormatAxis(tt.in); got != tt.want {
			t.Errorf("FormatAxis(%v) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestStep(t *testing.T) {
	if StepContact.Progress() != 2.0/3.0 || StepRevenue.Progress() != 0 || StepResult.Progress() != 1 {
		t.Error("unexpected progress values")
	}
	if !StepResult.Terminal() || StepContact.Terminal() {
		t.Error("only the result step is terminal")
	}
	if Step(9).Valid() || !StepCost.Valid() {
		t.Error("Valid() mismatch")
	}
	if StepCost.Label() != "Cost" || StepCost.String() != "cost" {
		t.Error("label mismatch")
	}
}

func TestPromptFor(t *testing.T) {
	s := NewSession(WithData(FormData{Revenue: 5000}))
	s.Advance()
	s.Advance()

	p, ok := PromptFor(s.Snapshot())
	if !ok || p.Heading != "What are your monthly costs?" {
		t.Fatalf("prompt = %+v", p)
	}
	if p.Field.Value != "" || p.Field.Error != MsgInvalidCost {
		t.Errorf("field = %+v", p.Field)
	}

	if _, ok := PromptFor(Snapshot{Step: StepResult}); ok {
		t.Error("result step has no prompt")
	}
}
