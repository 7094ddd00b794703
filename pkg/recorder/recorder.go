// Package recorder provides the transports that forward submitted
// calculator entries to the spreadsheet endpoint or a local store.
package recorder

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/imgrooty/roi-calculator/pkg/calculator"
	"github.com/imgrooty/roi-calculator/pkg/logging"
	"github.com/imgrooty/roi-calculator/pkg/metrics"
)

// Recorder kinds selectable by configuration.
const (
	KindSimulated = "simulated"
	KindHTTP      = "http"
	KindJournal   = "journal"
	KindSQLite    = "sqlite"
	KindTee       = "tee"
)

// Common recorder errors.
var (
	ErrUnknownKind = errors.New("unknown recorder kind")
	ErrMissingURL  = errors.New("recorder url is required")
	ErrNotListable = errors.New("recorder does not keep entries")
	ErrClosed      = errors.New("recorder is closed")
)

// Backend is a calculator.Recorder that owns resources.
type Backend interface {
	calculator.Recorder
	Close() error
}

// Lister is implemented by backends that keep what they record.
type Lister interface {
	// List returns up to limit entries, newest first. A limit <= 0 means all.
	List(ctx context.Context, limit int) ([]Stored, error)
}

// Stored is an entry as kept by a local backend.
type Stored struct {
	ID         string    `json:"id"`
	RecordedAt time.Time `json:"recorded_at"`
	calculator.Entry
}

// Config selects and configures a backend.
type Config struct {
	Kind       string
	URL        string
	Timeout    time.Duration
	Retries    int
	Delay      time.Duration
	FailRate   float64
	Path       string
	MirrorPath string
}

// DefaultConfig returns the simulated recorder with the original delay.
func DefaultConfig() Config {
	return Config{
		Kind:       KindSimulated,
		Timeout:    10 * time.Second,
		Delay:      1500 * time.Millisecond,
		Path:       "roicalc.db",
		MirrorPath: "roicalc-journal.db",
	}
}

// New builds the backend named by cfg.Kind, wrapped with logging and,
// when m is non-nil, metrics.
func New(cfg Config, log logging.Logger, m *metrics.Metrics) (Backend, error) {
	if log == nil {
		log = logging.NopLogger{}
	}
	log = log.With(logging.String("recorder", kindOrDefault(cfg.Kind)))

	b, err := open(cfg, log)
	if err != nil {
		return nil, err
	}
	return Instrument(b, log, m), nil
}

func open(cfg Config, log logging.Logger) (Backend, error) {
	switch kindOrDefault(cfg.Kind) {
	case KindSimulated:
		return NewSimulated(cfg.Delay, cfg.FailRate, log), nil
	case KindHTTP:
		return NewHTTP(HTTPConfig{URL: cfg.URL, Timeout: cfg.Timeout, Retries: cfg.Retries}, log)
	case KindJournal:
		return OpenJournal(cfg.Path)
	case KindSQLite:
		return OpenSQLite(cfg.Path)
	case KindTee:
		var primary Backend
		if cfg.URL != "" {
			h, err := NewHTTP(HTTPConfig{URL: cfg.URL, Timeout: cfg.Timeout, Retries: cfg.Retries}, log)
			if err != nil {
				return nil, err
			}
			primary = h
		} else {
			primary = NewSimulated(cfg.Delay, cfg.FailRate, log)
		}
		mirror, err := OpenJournal(cfg.MirrorPath)
		if err != nil {
			primary.Close()
			return nil, err
		}
		return NewTee(primary, mirror, log), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownKind, cfg.Kind)
	}
}

func kindOrDefault(kind string) string {
	if kind == "" {
		return KindSimulated
	}
	return strings.ToLower(kind)
}

type unwrapper interface {
	Unwrap() Backend
}

// Entries lists stored entries from b or the first backend it wraps that
// keeps them.
func Entries(ctx context.Context, b Backend, limit int) ([]Stored, error) {
	for b != nil {
		if l, ok := b.(Lister); ok {
			return l.List(ctx, limit)
		}
		u, ok := b.(unwrapper)
		if !ok {
			break
		}
		b = u.Unwrap()
	}
	return nil, ErrNotListable
}
