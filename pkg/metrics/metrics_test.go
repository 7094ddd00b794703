package metrics

import (
	"errors"
	"io"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/imgrooty/roi-calculator/pkg/calculator"
)

func TestObserveSubmission(t *testing.T) {
	m := NewMetrics("test")

	m.ObserveSubmission(10*time.Millisecond, nil)
	m.ObserveSubmission(20*time.Millisecond, errors.New("down"))
	m.ObserveSubmission(5*time.Millisecond, nil)

	if got := testutil.ToFloat64(m.Submissions.WithLabelValues(OutcomeSuccess)); got != 2 {
		t.Errorf("success = %v, want 2", got)
	}
	if got := testutil.ToFloat64(m.Submissions.WithLabelValues(OutcomeFailure)); got != 1 {
		t.Errorf("failure = %v, want 1", got)
	}
}

func TestObserver(t *testing.T) {
	m := NewMetrics("test")
	s := calculator.NewSession(calculator.WithObserver(m))

	s.Advance()
	s.UpdateField(calculator.FieldRevenue, 100.0)
	s.Advance()

	if got := testutil.ToFloat64(m.ValidationFailures.WithLabelValues("revenue")); got != 1 {
		t.Errorf("revenue failures = %v, want 1", got)
	}
	if got := testutil.ToFloat64(m.StepTransitions.WithLabelValues("revenue", "cost")); got != 1 {
		t.Errorf("transitions = %v, want 1", got)
	}
}

func TestHandler(t *testing.T) {
	m := NewMetrics("roicalc")
	m.LiveSessions.Inc()

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest("GET", "/metrics", nil))

	body, _ := io.ReadAll(rec.Body)
	if !strings.Contains(string(body), "roicalc_live_sessions 1") {
		t.Errorf("metrics output missing live sessions gauge:\n%s", body)
	}
}

func TestTimer(t *testing.T) {
	m := NewMetrics("test")
	timer := NewTimer()
	if d := timer.ObserveDuration(m.RenderDuration); d < 0 {
		t.Errorf("negative duration %v", d)
	}
	if n := testutil.CollectAndCount(m.RenderDuration); n != 1 {
		t.Errorf("collected %d series, want 1", n)
	}
}

func TestRequestRejected(t *testing.T) {
	m := NewMetrics("test")
	m.RequestRejected("rate")
	m.RequestRejected("rate")
	m.RequestRejected("connections")

	if got := testutil.ToFloat64(m.RequestsRejected.WithLabelValues("rate")); got != 2 {
		t.Errorf("rate rejections = %v, want 2", got)
	}
}
