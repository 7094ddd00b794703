// Package shutdown runs ordered cleanup hooks when the server stops.
package shutdown

import (
	"cmp"
	"context"
	"errors"
	"os"
	"os/signal"
	"slices"
	"sync"
	"syscall"
	"time"

	"github.com/imgrooty/roi-calculator/pkg/logging"
)

// Common shutdown errors.
var (
	ErrShutdownTimeout = errors.New("shutdown timed out")
	ErrAlreadyClosed   = errors.New("shutdown handler already closed")
)

// Hook priorities, lower runs first.
const (
	PriorityHTTP     = 100
	PrioritySessions = 200
	PriorityRecorder = 300
	PriorityLast     = 1000
)

// Hook is a named cleanup step.
type Hook struct {
	Name     string
	Priority int
	Fn       func(ctx context.Context) error
}

// Config configures the shutdown handler.
type Config struct {
	// Timeout bounds the whole shutdown.
	Timeout time.Duration

	// Signals trigger shutdown in Wait.
	Signals []os.Signal

	Logger logging.Logger
}

// DefaultConfig returns sensible defaults.
func DefaultConfig() Config {
	return Config{
		Timeout: 30 * time.Second,
		Signals: []os.Signal{os.Interrupt, syscall.SIGTERM},
	}
}

// Handler manages graceful shutdown.
type Handler struct {
	cfg    Config
	log    logging.Logger
	hooks  []Hook
	done   chan struct{}
	closed bool
	mu     sync.Mutex
}

// NewHandler creates a new shutdown handler.
func NewHandler(cfg Config) *Handler {
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultConfig().Timeout
	}
	if len(cfg.Signals) == 0 {
		cfg.Signals = DefaultConfig().Signals
	}
	log := cfg.Logger
	if log == nil {
		log = logging.NopLogger{}
	}
	return &Handler{cfg: cfg, log: log, done: make(chan struct{})}
}

// Register adds a shutdown hook.
func (h *Handler) Register(name string, priority int, fn func(ctx context.Context) error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.hooks = append(h.hooks, Hook{Name: name, Priority: priority, Fn: fn})
}

// RegisterCloser registers anything with a Close method.
func (h *Handler) RegisterCloser(name string, priority int, c interface{ Close() error }) {
	h.Register(name, priority, func(context.Context) error { return c.Close() })
}

// Wait blocks until a signal arrives or ctx is done, then shuts down.
// It returns nil without running hooks if Shutdown was already called.
func (h *Handler) Wait(ctx context.Context) error {
	ctx, stop := signal.NotifyContext(ctx, h.cfg.Signals...)
	defer stop()

	select {
	case <-ctx.Done():
		h.log.Info("shutdown requested")
	case <-h.done:
		return nil
	}
	return h.Shutdown()
}

// Shutdown runs the hooks in priority order. Hooks registered with equal
// priority run in registration order. Errors are joined.
func (h *Handler) Shutdown() error {
	h.mu.Lock()
	if h.closed {
		h.mu.Unlock()
		return ErrAlreadyClosed
	}
	h.closed = true
	close(h.done)
	hooks := slices.Clone(h.hooks)
	h.mu.Unlock()

	slices.SortStableFunc(hooks, func(a, b Hook) int { return cmp.Compare(a.Priority, b.Priority) })

	ctx, cancel := context.WithTimeout(context.Background(), h.cfg.Timeout)
	defer cancel()

	var errs []error
	for _, hook := range hooks {
		start := time.Now()
		err := hook.Fn(ctx)
		fields := []logging.Field{logging.String("hook", hook.Name), logging.Duration("duration", time.Since(start))}
		if err != nil {
			h.log.Error("shutdown hook failed", append(fields, logging.Err(err))...)
			errs = append(errs, err)
		} else {
			h.log.Debug("shutdown hook done", fields...)
		}

		if ctx.Err() != nil {
			return errors.Join(append(errs, ErrShutdownTimeout)...)
		}
	}
	return errors.Join(errs...)
}

// Done is closed once shutdown has started.
func (h *Handler) Done() <-chan struct{} {
	return h.done
}
