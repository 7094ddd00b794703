package recorder

import (
	"context"
	"time"

	"github.com/imgrooty/roi-calculator/pkg/calculator"
	"github.com/imgrooty/roi-calculator/pkg/logging"
	"github.com/imgrooty/roi-calculator/pkg/metrics"
)

type instrumented struct {
	Backend
	log     logging.Logger
	metrics *metrics.Metrics
}

// Instrument wraps b so every call is logged and, if m is non-nil,
// counted.
func Instrument(b Backend, log logging.Logger, m *metrics.Metrics) Backend {
	if log == nil {
		log = logging.NopLogger{}
	}
	return &instrumented{Backend: b, log: log, metrics: m}
}

func (i *instrumented) Record(ctx context.Context, e calculator.Entry) error {
	start := time.Now()
	err := i.Backend.Record(ctx, e)
	d := time.Since(start)

	if i.metrics != nil {
		i.metrics.ObserveSubmission(d, err)
	}
	if err != nil {
		i.log.Error("submission failed", logging.Duration("duration", d), logging.Err(err))
	} else {
		i.log.Info("submission recorded", logging.Duration("duration", d))
	}
	return err
}

func (i *instrumented) Unwrap() Backend {
	return i.Backend
}
