package health

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestChecker_AllPass(t *testing.T) {
	hc := NewChecker("1.0.0")
	hc.AddCheck("recorder", func(ctx context.Context) error { return nil }, time.Second)
	hc.AddCheck("sessions", func(ctx context.Context) error { return nil }, time.Second)

	report := hc.Run(context.Background())

	if report.Status != StatusHealthy {
		t.Errorf("expected healthy, got %s", report.Status)
	}
	if len(report.Checks) != 2 {
		t.Errorf("expected 2 checks, got %d", len(report.Checks))
	}
	for name, r := range report.Checks {
		if r.Status != StatusHealthy || r.Error != "" {
			t.Errorf("check %s = %+v", name, r)
		}
	}
	if report.Version != "1.0.0" {
		t.Errorf("version = %s", report.Version)
	}
}

func TestChecker_NonCriticalFailureDegrades(t *testing.T) {
	hc := NewChecker("")
	hc.AddCheck("passing", func(ctx context.Context) error { return nil }, time.Second)
	hc.AddCheck("failing", func(ctx context.Context) error { return errors.New("spreadsheet unreachable") }, time.Second)

	report := hc.Run(context.Background())

	if report.Status != StatusDegraded {
		t.Errorf("expected degraded, got %s", report.Status)
	}
	if report.Checks["failing"].Error != "spreadsheet unreachable" {
		t.Errorf("failing check = %+v", report.Checks["failing"])
	}
}

func TestChecker_CriticalFailure(t *testing.T) {
	hc := NewChecker("")
	hc.AddCriticalCheck("journal", func(ctx context.Context) error { return errors.New("closed") }, time.Second)

	if report := hc.Run(context.Background()); report.Status != StatusUnhealthy {
		t.Errorf("expected unhealthy, got %s", report.Status)
	}
}

func TestChecker_Timeout(t *testing.T) {
	hc := NewChecker("")
	hc.AddCheck("slow", func(ctx context.Context) error {
		<-ctx.Done()
		return ctx.Err()
	}, 20*time.Millisecond)

	report := hc.Run(context.Background())
	if report.Checks["slow"].Status != StatusUnhealthy {
		t.Errorf("slow check = %+v", report.Checks["slow"])
	}
}

func TestChecker_PanicIsUnhealthy(t *testing.T) {
	hc := NewChecker("")
	hc.AddCheck("panics", func(ctx context.Context) error { panic("nil map") }, time.Second)

	if r := hc.Run(context.Background()).Checks["panics"]; r.Status != StatusUnhealthy {
		t.Errorf("panicking check = %+v", r)
	}
}

func TestLivenessHandler(t *testing.T) {
	rec := httptest.NewRecorder()
	NewChecker("").LivenessHandler().ServeHTTP(rec, httptest.NewRequest("GET", "/healthz", nil))

	if rec.Code != http.StatusOK {
		t.Errorf("status = %d", rec.Code)
	}
	var body map[string]any
	json.NewDecoder(rec.Body).Decode(&body)
	if body["status"] != "alive" {
		t.Errorf("body = %v", body)
	}
}

func TestReadinessHandler(t *testing.T) {
	healthy := NewChecker("")
	healthy.AddCriticalCheck("ok", func(ctx context.Context) error { return nil }, time.Second)

	rec := httptest.NewRecorder()
	healthy.ReadinessHandler().ServeHTTP(rec, httptest.NewRequest("GET", "/readyz", nil))
	if rec.Code != http.StatusOK {
		t.Errorf("healthy status = %d", rec.Code)
	}

	broken := NewChecker("")
	broken.AddCriticalCheck("down", func(ctx context.Context) error { return errors.New("down") }, time.Second)

	rec = httptest.NewRecorder()
	broken.ReadinessHandler().ServeHTTP(rec, httptest.NewRequest("GET", "/readyz", nil))
	if rec.Code != http.StatusServiceUnavailable {
		t.Errorf("unhealthy status = %d", rec.Code)
	}
}

func TestHealthHandlerAlwaysOK(t *testing.T) {
	hc := NewChecker("2.0.0")
	hc.AddCriticalCheck("down", func(ctx context.Context) error { return errors.New("down") }, time.Second)

	rec := httptest.NewRecorder()
	hc.HealthHandler().ServeHTTP(rec, httptest.NewRequest("GET", "/health", nil))

	if rec.Code != http.StatusOK {
		t.Errorf("status = %d", rec.Code)
	}
	var report Report
	if err := json.NewDecoder(rec.Body).Decode(&report); err != nil {
		t.Fatal(err)
	}
	if report.Status != StatusUnhealthy || report.Version != "2.0.0" {
		t.Errorf("report = %+v", report)
	}
}

func TestSessionCapacityCheck(t *testing.T) {
	current := 5
	check := SessionCapacityCheck(func() int { return current }, 10)

	if err := check(context.Background()); err != nil {
		t.Errorf("below capacity: %v", err)
	}

	current = 10
	err := check(context.Background())
	var de *DetailedError
	if !errors.As(err, &de) || de.Details["current"] != 10 {
		t.Errorf("at capacity: %v", err)
	}

	hc := NewChecker("")
	hc.AddCheck("sessions", check, time.Second)
	if r := hc.Run(context.Background()).Checks["sessions"]; r.Details == nil {
		t.Error("details not reported")
	}
}

func TestMemoryCheck(t *testing.T) {
	if err := MemoryCheck(0)(context.Background()); err != nil {
		t.Errorf("unlimited memory check failed: %v", err)
	}
	if err := MemoryCheck(1)(context.Background()); err == nil {
		t.Error("1 byte limit should fail")
	}
}
