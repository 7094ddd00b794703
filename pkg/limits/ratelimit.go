// Package limits bounds how hard a single client can push the server:
// concurrent live connections and request rate per address.
package limits

import (
	"context"
	"math"
	"net/http"
	"strconv"
	"sync"
	"time"
)

// Rejection reasons passed to the onReject callbacks.
const (
	ReasonRate        = "rate"
	ReasonConnections = "connections"
)

// TokenBucket is a per-key token bucket.
type TokenBucket struct {
	rate     float64
	burst    float64
	onReject func(reason string)
	now      func() time.Time

	mu      sync.Mutex
	buckets map[string]*bucket
}

type bucket struct {
	tokens float64
	last   time.Time
}

// NewTokenBucket allows rate operations per second per key with bursts
// of up to burst.
func NewTokenBucket(rate float64, burst int, onReject func(reason string)) *TokenBucket {
	if burst < 1 {
		burst = 1
	}
	return &TokenBucket{
		rate:     rate,
		burst:    float64(burst),
		onReject: onReject,
		now:      time.Now,
		buckets:  make(map[string]*bucket),
	}
}

// Allow takes a token for key.
func (tb *TokenBucket) Allow(key string) bool {
	ok, _ := tb.take(key)
	return ok
}

// take takes a token for key, or reports how long until one is free.
func (tb *TokenBucket) take(key string) (bool, time.Duration) {
	now := tb.now()

	tb.mu.Lock()
	defer tb.mu.Unlock()

	b, ok := tb.buckets[key]
	if !ok {
		b = &bucket{tokens: tb.burst, last: now}
		tb.buckets[key] = b
	}
	b.tokens = math.Min(tb.burst, b.tokens+now.Sub(b.last).Seconds()*tb.rate)
	b.last = now

	if b.tokens >= 1 {
		b.tokens--
		return true, 0
	}
	if tb.rate <= 0 {
		return false, time.Second
	}
	return false, time.Duration((1 - b.tokens) / tb.rate * float64(time.Second))
}

// Sweep drops buckets that have been full for longer than idle.
func (tb *TokenBucket) Sweep(idle time.Duration) int {
	now := tb.now()
	tb.mu.Lock()
	defer tb.mu.Unlock()

	n := 0
	for key, b := range tb.buckets {
		if now.Sub(b.last) > idle {
			delete(tb.buckets, key)
			n++
		}
	}
	return n
}

// Len returns the number of tracked keys.
func (tb *TokenBucket) Len() int {
	tb.mu.Lock()
	defer tb.mu.Unlock()
	return len(tb.buckets)
}

// StartSweeper runs Sweep every interval until ctx is done.
func (tb *TokenBucket) StartSweeper(ctx context.Context, interval, idle time.Duration) {
	ticker := time.NewTicker(interval)
	go func() {
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				tb.Sweep(idle)
			case <-ctx.Done():
				return
			}
		}
	}()
}

// Middleware answers 429 with Retry-After once key(r) runs out of tokens.
// WebSocket upgrades count as one request; messages on the connection do
// not.
func (tb *TokenBucket) Middleware(key func(*http.Request) string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ok, wait := tb.take(key(r))
			if !ok {
				if tb.onReject != nil {
					tb.onReject(ReasonRate)
				}
				secs := int(math.Ceil(wait.Seconds()))
				w.Header().Set("Retry-After", strconv.Itoa(max(secs, 1)))
				http.Error(w, "Too Many Requests", http.StatusTooManyRequests)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
