package recorder

import (
	"context"
	"errors"

	"github.com/tidwall/buntdb"
)

// Pinger is implemented by backends that can report their health.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Ping checks the first backend in b's chain that can report health.
// Backends without a health signal count as healthy.
func Ping(ctx context.Context, b Backend) error {
	for b != nil {
		if p, ok := b.(Pinger); ok {
			return p.Ping(ctx)
		}
		u, ok := b.(unwrapper)
		if !ok {
			break
		}
		b = u.Unwrap()
	}
	return nil
}

// Ping fails while the circuit is open.
func (h *HTTP) Ping(ctx context.Context) error {
	if h.breaker.State() == CircuitOpen {
		return ErrCircuitOpen
	}
	return nil
}

// Ping runs an empty read transaction.
func (j *Journal) Ping(ctx context.Context) error {
	j.mu.Lock()
	closed := j.closed
	j.mu.Unlock()
	if closed {
		return ErrClosed
	}
	return j.db.View(func(tx *buntdb.Tx) error { return nil })
}

// Ping checks both sides of the tee.
func (t *Tee) Ping(ctx context.Context) error {
	return errors.Join(Ping(ctx, t.primary), t.mirror.Ping(ctx))
}
