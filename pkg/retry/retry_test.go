package retry

import (
	"context"
	"errors"
	"testing"
	"time"
)

func fastConfig(retries int) *Config {
	return &Config{
		MaxRetries:   retries,
		InitialDelay: time.Millisecond,
		MaxDelay:     5 * time.Millisecond,
		Multiplier:   2,
	}
}

func TestRetrySucceedsEventually(t *testing.T) {
	calls := 0
	err := Retry(context.Background(), fastConfig(3), func(context.Context) error {
		calls++
		if calls < 3 {
			return errors.New("transient")
		}
		return nil
	})
	if err != nil {
		t.Fatalf("Retry: %v", err)
	}
	if calls != 3 {
		t.Errorf("calls = %d, want 3", calls)
	}
}

func TestRetryExhausted(t *testing.T) {
	cause := errors.New("down")
	var retries []int
	cfg := fastConfig(2)
	cfg.OnRetry = func(attempt int, err error, d time.Duration) {
		retries = append(retries, attempt)
	}

	err := Retry(context.Background(), cfg, func(context.Context) error { return cause })

	if !errors.Is(err, ErrMaxRetriesExceeded) || !errors.Is(err, cause) {
		t.Errorf("err = %v", err)
	}
	if len(retries) != 2 || retries[0] != 1 || retries[1] != 2 {
		t.Errorf("OnRetry attempts = %v", retries)
	}
}

func TestRetryZeroRetriesReturnsCause(t *testing.T) {
	cause := errors.New("once")
	err := Retry(context.Background(), fastConfig(0), func(context.Context) error { return cause })
	if err != cause {
		t.Errorf("err = %v, want the bare cause", err)
	}
}

func TestRetryPermanent(t *testing.T) {
	calls := 0
	cause := errors.New("bad request")
	err := Retry(context.Background(), fastConfig(5), func(context.Context) error {
		calls++
		return Permanent(cause)
	})
	if calls != 1 {
		t.Errorf("calls = %d, want 1", calls)
	}
	if !IsPermanentError(err) || !errors.Is(err, cause) {
		t.Errorf("err = %v", err)
	}
}

func TestRetryContextCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cfg := fastConfig(10)
	cfg.InitialDelay = time.Second
	cfg.MaxDelay = time.Second

	err := Retry(ctx, cfg, func(context.Context) error {
		cancel()
		return errors.New("x")
	})
	if !errors.Is(err, ErrContextCanceled) || !errors.Is(err, context.Canceled) {
		t.Errorf("err = %v", err)
	}
}

func TestBackoff(t *testing.T) {
	cfg := &Config{InitialDelay: 100 * time.Millisecond, MaxDelay: time.Second, Multiplier: 2}
	want := []time.Duration{100 * time.Millisecond, 200 * time.Millisecond, 400 * time.Millisecond, 800 * time.Millisecond, time.Second}
	for i, w := range want {
		if got := Backoff(i, cfg); got != w {
			t.Errorf("Backoff(%d) = %v, want %v", i, got, w)
		}
	}
}

func TestPermanentNil(t *testing.T) {
	if Permanent(nil) != nil {
		t.Error("Permanent(nil) should be nil")
	}
}

func TestRetryIfStopsEarly(t *testing.T) {
	fatal := errors.New("fatal")
	calls := 0
	cfg := fastConfig(4)
	cfg.RetryIf = func(err error) bool { return !errors.Is(err, fatal) }

	err := Retry(context.Background(), cfg, func(context.Context) error {
		calls++
		if calls == 2 {
			return fatal
		}
		return errors.New("transient")
	})
	if err != fatal || calls != 2 {
		t.Errorf("err = %v after %d calls", err, calls)
	}
}
