package recorder

import (
	"errors"
	"testing"
	"time"
)

func TestBreakerOpensAfterFailures(t *testing.T) {
	b := NewBreaker(BreakerConfig{MaxFailures: 3, ResetTimeout: time.Minute})

	for i := 0; i < 3; i++ {
		if err := b.Allow(); err != nil {
			t.Fatalf("call %d rejected: %v", i, err)
		}
		b.Failure()
	}

	if b.State() != CircuitOpen {
		t.Fatalf("state = %v, want open", b.State())
	}
	if err := b.Allow(); !errors.Is(err, ErrCircuitOpen) {
		t.Errorf("Allow() = %v, want ErrCircuitOpen", err)
	}
}

func TestBreakerSuccessResetsFailures(t *testing.T) {
	b := NewBreaker(BreakerConfig{MaxFailures: 2, ResetTimeout: time.Minute})
	b.Failure()
	b.Success()
	b.Failure()
	if b.State() != CircuitClosed {
		t.Errorf("state = %v, want closed", b.State())
	}
}

func TestBreakerHalfOpenRecovery(t *testing.T) {
	now := time.Unix(0, 0)
	var changes []string
	b := NewBreaker(BreakerConfig{
		MaxFailures:      1,
		ResetTimeout:     time.Second,
		SuccessThreshold: 2,
		OnStateChange: func(from, to CircuitState) {
			changes = append(changes, from.String()+">"+to.String())
		},
	})
	b.now = func() time.Time { return now }

	b.Failure()
	now = now.Add(2 * time.Second)

	if err := b.Allow(); err != nil {
		t.Fatalf("Allow() after timeout = %v", err)
	}
	if b.State() != CircuitHalfOpen {
		t.Fatalf("state = %v, want half-open", b.State())
	}

	b.Success()
	if b.State() != CircuitHalfOpen {
		t.Fatalf("one success should not close, state = %v", b.State())
	}
	b.Success()
	if b.State() != CircuitClosed {
		t.Fatalf("state = %v, want closed", b.State())
	}

	want := []string{"closed>open", "open>half-open", "half-open>closed"}
	if len(changes) != len(want) {
		t.Fatalf("changes = %v", changes)
	}
	for i := range want {
		if changes[i] != want[i] {
			t.Errorf("change %d = %s, want %s", i, changes[i], want[i])
		}
	}
}

func TestBreakerHalfOpenFailureReopens(t *testing.T) {
	now := time.Unix(0, 0)
	b := NewBreaker(BreakerConfig{MaxFailures: 1, ResetTimeout: time.Second})
	b.now = func() time.Time { return now }

	b.Failure()
	now = now.Add(2 * time.Second)
	b.Allow()
	b.Failure()

	if b.State() != CircuitOpen {
		t.Errorf("state = %v, want open", b.State())
	}
}

func TestBreakerExecute(t *testing.T) {
	b := NewBreaker(BreakerConfig{MaxFailures: 1, ResetTimeout: time.Hour})
	boom := errors.New("boom")

	if err := b.Execute(func() error { return boom }); err != boom {
		t.Errorf("err = %v", err)
	}
	called := false
	if err := b.Execute(func() error { called = true; return nil }); !errors.Is(err, ErrCircuitOpen) || called {
		t.Errorf("open breaker should short-circuit, err = %v called = %v", err, called)
	}
}
