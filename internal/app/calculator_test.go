package app

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/imgrooty/roi-calculator/internal/website"
	"github.com/imgrooty/roi-calculator/internal/website/components"
	"github.com/imgrooty/roi-calculator/pkg/calculator"
	"github.com/imgrooty/roi-calculator/pkg/core"
	"github.com/imgrooty/roi-calculator/pkg/livetest"
	"github.com/imgrooty/roi-calculator/pkg/logging"
	"github.com/imgrooty/roi-calculator/pkg/metrics"
	"github.com/imgrooty/roi-calculator/pkg/router"
)

// fakeRecorder records entries and can be made to fail or block.
type fakeRecorder struct {
	mu      sync.Mutex
	entries []calculator.Entry
	err     error
	release chan struct{}
}

func (f *fakeRecorder) Record(ctx context.Context, e calculator.Entry) error {
	if f.release != nil {
		<-f.release
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.entries = append(f.entries, e)
	return f.err
}

func (f *fakeRecorder) calls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.entries)
}

func newView(rec calculator.Recorder) *CalculatorView {
	return NewCalculatorView(Options{
		Recorder: rec,
		Logger:   logging.NopLogger{},
		Now:      func() time.Time { return time.Date(2026, 1, 2, 0, 0, 0, 0, time.UTC) },
	})
}

func fillWizard(lvt *livetest.LiveViewTest, revenue, cost, email string) {
	lvt.Event(EventUpdateField, map[string]any{"field": "revenue", "value": revenue})
	lvt.Event(EventNextStep, nil)
	lvt.Event(EventUpdateField, map[string]any{"field": "cost", "value": cost})
	lvt.Event(EventNextStep, nil)
	lvt.Event(EventUpdateField, map[string]any{"field": "email", "value": email})
}

func TestCalculatorView_Mount(t *testing.T) {
	lvt := livetest.Mount(t, newView(&fakeRecorder{}))

	lvt.HTML().
		HasClass("skin-corporate").
		HasSlot("calculator").
		HasSlot("nav").
		HasText("What is your monthly revenue?").
		HasText("Why Our Calculator Works").
		HasText("&copy; 2026 ROICalculator").
		HasID("field-revenue").
		NoText("CHART_ACTIVE")
	lvt.AssertText(`aria-pressed="true" title="Corporate"`)
}

func TestCalculatorView_ThemeParam(t *testing.T) {
	lvt := livetest.Mount(t, newView(&fakeRecorder{}),
		livetest.WithParams(core.Params{ParamTheme: "cyberpunk"}))

	lvt.HTML().HasClass("skin-cyberpunk").NoText("skin-corporate").HasText("[REVENUE]")

	lvt = livetest.Mount(t, newView(&fakeRecorder{}),
		livetest.WithParams(core.Params{ParamTheme: "neon"}))
	lvt.HTML().HasClass("skin-corporate")
}

func TestCalculatorView_Validation(t *testing.T) {
	m := metrics.NewMetrics("test")
	view := NewCalculatorView(Options{Recorder: &fakeRecorder{}, Observer: m, Logger: logging.NopLogger{}})
	lvt := livetest.Mount(t, view)

	lvt.Event(EventNextStep, nil)
	lvt.AssertText(calculator.MsgInvalidRevenue).AssertText(`aria-invalid="true"`)
	if got := view.Wizard().Step(); got != calculator.StepRevenue {
		t.Fatalf("step = %v, want revenue", got)
	}

	lvt.Event(EventUpdateField, map[string]any{"field": "revenue", "value": "12abc"})
	lvt.Event(EventNextStep, nil)
	lvt.AssertNoText(calculator.MsgInvalidRevenue).AssertText("What are your monthly costs?")
	if got := view.Wizard().Data().Revenue; got != 12 {
		t.Errorf("revenue = %v, want 12", got)
	}

	if got := testutil.ToFloat64(m.ValidationFailures.WithLabelValues("revenue")); got != 1 {
		t.Errorf("validation failures = %v", got)
	}
	if got := testutil.ToFloat64(m.StepTransitions.WithLabelValues("revenue", "cost")); got != 1 {
		t.Errorf("transitions = %v", got)
	}
}

func TestCalculatorView_Navigation(t *testing.T) {
	view := newView(&fakeRecorder{})
	lvt := livetest.Mount(t, view)

	lvt.Event(EventPrevStep, nil)
	if view.Wizard().Step() != calculator.StepRevenue {
		t.Fatal("prev_step moved off the first step")
	}

	lvt.Event(EventUpdateField, map[string]any{"field": "revenue", "value": 5000.0})
	lvt.Event(EventNextStep, nil)
	lvt.AssertText(`<progress class="wizard-progress" value="1" max="3"`).AssertText("Back")

	lvt.Event(EventPrevStep, nil)
	lvt.AssertText("What is your monthly revenue?").AssertText(`value="5000"`)
}

func TestCalculatorView_SubmitSynchronous(t *testing.T) {
	rec := &fakeRecorder{}
	view := newView(rec)
	lvt := livetest.Mount(t, view, livetest.WithoutSocket())

	fillWizard(lvt, "5000", "3000", "a@b.co")
	lvt.Event(EventSubmit, nil)

	lvt.HTML().
		HasText(`Thank You!`).
		HasText("$5,000").
		HasText("$3,000").
		HasText(`<p class="tile-value favorable">$2,000</p>`).
		HasText("<svg")
	want := calculator.Entry{Email: "a@b.co", Revenue: 5000, Cost: 3000, ROI: 2000}
	if rec.calls() != 1 || rec.entries[0] != want {
		t.Errorf("entries = %+v", rec.entries)
	}
}

func TestCalculatorView_SubmitAsync(t *testing.T) {
	rec := &fakeRecorder{release: make(chan struct{})}
	view := newView(rec)
	lvt := livetest.Mount(t, view)

	fillWizard(lvt, "2000", "5000", "a@b.co")
	lvt.Event(EventSubmit, nil)
	lvt.AssertText("Submitting...").AssertText("disabled")

	// A second click while recording is a no-op.
	lvt.Event(EventSubmit, nil)

	close(rec.release)
	lvt.AwaitInfo()

	lvt.HTML().
		HasText("Thank You!").
		HasText(`<p class="tile-value unfavorable">-$3,000</p>`)
	if rec.calls() != 1 {
		t.Errorf("recorder called %d times, want 1", rec.calls())
	}
}

func TestCalculatorView_SubmitFailure(t *testing.T) {
	rec := &fakeRecorder{err: errors.New("sheet unavailable")}
	view := newView(rec)
	lvt := livetest.Mount(t, view)

	fillWizard(lvt, "100", "50", "a@b.co")
	lvt.Event(EventSubmit, nil)
	lvt.AwaitInfo()

	lvt.AssertText(calculator.SubmitErrorMessage).AssertText("Get your ROI calculation")
	if view.Wizard().Step() != calculator.StepContact {
		t.Errorf("step = %v, want contact", view.Wizard().Step())
	}
	if got := view.Wizard().Data().Email; got != "a@b.co" {
		t.Errorf("email lost: %q", got)
	}
}

func TestCalculatorView_SubmitInvalidEmail(t *testing.T) {
	rec := &fakeRecorder{}
	lvt := livetest.Mount(t, newView(rec))

	fillWizard(lvt, "100", "50", "nope")
	lvt.Event(EventSubmit, nil)

	lvt.AssertText(calculator.MsgInvalidEmail)
	if rec.calls() != 0 {
		t.Error("recorder called for an invalid email")
	}
}

func TestCalculatorView_SetTheme(t *testing.T) {
	view := newView(&fakeRecorder{})
	lvt := livetest.Mount(t, view)

	lvt.Click(EventSetTheme, "theme", "cyberpunk")
	lvt.HTML().HasClass("skin-cyberpunk").HasText("ROI_CALC")
	if view.Theme().Name != website.ThemeCyberpunk {
		t.Errorf("theme = %q", view.Theme().Name)
	}

	err := lvt.TryEvent(EventSetTheme, map[string]any{"theme": "vaporwave"})
	if !errors.Is(err, ErrUnknownTheme) {
		t.Errorf("err = %v, want ErrUnknownTheme", err)
	}
	lvt.HTML().HasClass("skin-cyberpunk")
}

func TestCalculatorView_EventErrors(t *testing.T) {
	lvt := livetest.Mount(t, newView(&fakeRecorder{}))
	a := livetest.NewAssert(t)

	a.ErrorIs(lvt.TryEvent("explode", nil), ErrUnknownEvent)
	a.ErrorIs(lvt.TryEvent(EventUpdateField, map[string]any{"value": "1"}), ErrMissingField)
	a.ErrorIs(lvt.TryEvent(EventUpdateField, map[string]any{"field": "salary", "value": "1"}), calculator.ErrUnknownField)
	a.ErrorIs(lvt.TryEvent(EventUpdateField, map[string]any{"field": "email", "value": 42.0}), calculator.ErrInvalidValue)
	a.ErrorIs(lvt.TryEvent(EventSubmit, nil), calculator.ErrNotSubmittable)
}

func TestCalculatorView_Consultation(t *testing.T) {
	lvt := livetest.Mount(t, newView(&fakeRecorder{}), livetest.WithoutSocket())

	lvt.Event(EventConsultation, nil)
	lvt.AssertNoText(components.ConsultThanks)

	fillWizard(lvt, "10", "5", "a@b.co")
	lvt.Event(EventSubmit, nil)
	lvt.AssertText("Get a Personalized Consultation")

	lvt.Event(EventConsultation, nil)
	lvt.AssertText(components.ConsultThanks).AssertNoText("Get a Personalized Consultation")
}

func TestLayout_ThroughRouter(t *testing.T) {
	r := router.New()
	r.Use(router.SecureHeaders())
	r.Live("/", New(Options{Recorder: &fakeRecorder{}, Theme: "cyberpunk"}),
		router.WithLayout(Layout(website.DefaultPageConfig())))

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest("GET", "/", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}

	body := rec.Body.String()
	csp := rec.Header().Get("Content-Security-Policy")
	start := strings.Index(csp, "'nonce-")
	if start == -1 {
		t.Fatalf("no nonce in CSP %q", csp)
	}
	nonce := csp[start+len("'nonce-"):]
	nonce = nonce[:strings.IndexByte(nonce, '\'')]

	a := livetest.NewHTMLAssert(t, body)
	a.HasText("<!DOCTYPE html>").
		HasText(`<style nonce="` + nonce + `">`).
		HasText(`<script src="/_live/roicalc.js" defer nonce="` + nonce + `">`).
		HasClass("skin-cyberpunk").
		HasSlot("calculator")
	if n := a.Count("<body>"); n != 1 {
		t.Errorf("body tags = %d", n)
	}
}
