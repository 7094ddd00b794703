// Package retry retries transient failures with exponential backoff.
package retry

import (
	"context"
	"errors"
	"math"
	"math/rand"
	"time"
)

var (
	ErrMaxRetriesExceeded = errors.New("max retries exceeded")
	ErrContextCanceled    = errors.New("context canceled during retry")
)

// Config controls Retry. The zero value makes a single attempt.
type Config struct {
	// MaxRetries is the number of attempts after the first.
	MaxRetries int

	InitialDelay time.Duration
	MaxDelay     time.Duration
	Multiplier   float64
	// Jitter spreads each delay by up to this fraction either way.
	Jitter float64

	// RetryIf reports whether err is worth another attempt. Errors
	// wrapped with Permanent are never retried.
	RetryIf func(error) bool

	// OnRetry runs before the wait preceding attempt (1-based).
	OnRetry func(attempt int, err error, delay time.Duration)
}

// DefaultConfig returns settings sized for one outbound HTTP call.
func DefaultConfig() *Config {
	return &Config{
		MaxRetries:   2,
		InitialDelay: 200 * time.Millisecond,
		MaxDelay:     5 * time.Second,
		Multiplier:   2,
		Jitter:       0.1,
	}
}

func (c *Config) retryable(err error) bool {
	if IsPermanentError(err) {
		return false
	}
	return c.RetryIf == nil || c.RetryIf(err)
}

// Retry calls fn until it succeeds, fails permanently, runs out of
// retries or ctx ends. Exhaustion wraps the last error with
// ErrMaxRetriesExceeded, unless no retries were configured.
func Retry(ctx context.Context, cfg *Config, fn func(ctx context.Context) error) error {
	if cfg == nil {
		cfg = DefaultConfig()
	}

	for attempt := 0; ; attempt++ {
		if err := ctx.Err(); err != nil {
			return errors.Join(ErrContextCanceled, err)
		}

		err := fn(ctx)
		switch {
		case err == nil:
			return nil
		case !cfg.retryable(err):
			return err
		case attempt >= cfg.MaxRetries:
			if cfg.MaxRetries == 0 {
				return err
			}
			return errors.Join(ErrMaxRetriesExceeded, err)
		}

		delay := Backoff(attempt, cfg)
		if cfg.OnRetry != nil {
			cfg.OnRetry(attempt+1, err, delay)
		}
		if err := sleep(ctx, delay); err != nil {
			return errors.Join(ErrContextCanceled, err)
		}
	}
}

func sleep(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

// Backoff returns the wait after the given zero-based attempt:
// InitialDelay * Multiplier^attempt, capped at MaxDelay, then jittered.
func Backoff(attempt int, cfg *Config) time.Duration {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	d := float64(cfg.InitialDelay) * math.Pow(cfg.Multiplier, float64(attempt))
	if cfg.MaxDelay > 0 {
		d = math.Min(d, float64(cfg.MaxDelay))
	}
	if cfg.Jitter > 0 {
		d += d * cfg.Jitter * (2*rand.Float64() - 1)
	}
	return time.Duration(d)
}

type permanent struct{ err error }

func (p permanent) Error() string { return p.err.Error() }
func (p permanent) Unwrap() error { return p.err }

// Permanent marks err so Retry returns it without another attempt.
func Permanent(err error) error {
	if err == nil {
		return nil
	}
	return permanent{err}
}

// IsPermanentError reports whether err was marked with Permanent.
func IsPermanentError(err error) bool {
	var p permanent
	return errors.As(err, &p)
}
