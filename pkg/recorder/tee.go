package recorder

import (
	"context"
	"errors"

	"github.com/imgrooty/roi-calculator/pkg/calculator"
	"github.com/imgrooty/roi-calculator/pkg/logging"
)

// Tee records to a primary backend and mirrors successful entries into a
// local journal. Only primary failures are reported.
type Tee struct {
	primary Backend
	mirror  *Journal
	log     logging.Logger
}

// NewTee creates a tee recorder.
func NewTee(primary Backend, mirror *Journal, log logging.Logger) *Tee {
	if log == nil {
		log = logging.NopLogger{}
	}
	return &Tee{primary: primary, mirror: mirror, log: log}
}

// Record forwards e to the primary, then to the mirror.
func (t *Tee) Record(ctx context.Context, e calculator.Entry) error {
	if err := t.primary.Record(ctx, e); err != nil {
		return err
	}
	if err := t.mirror.Record(context.WithoutCancel(ctx), e); err != nil {
		t.log.Warn("mirror write failed", logging.Err(err))
	}
	return nil
}

// List reads from the mirror.
func (t *Tee) List(ctx context.Context, limit int) ([]Stored, error) {
	return t.mirror.List(ctx, limit)
}

// Close closes both backends.
func (t *Tee) Close() error {
	return errors.Join(t.primary.Close(), t.mirror.Close())
}
