package recorder

import (
	"context"
	"errors"
	"math/rand"
	"time"

	"github.com/imgrooty/roi-calculator/pkg/calculator"
	"github.com/imgrooty/roi-calculator/pkg/logging"
)

// ErrSimulatedFailure is returned when the simulated recorder injects a
// failure.
var ErrSimulatedFailure = errors.New("simulated submission failure")

// Simulated stands in for the spreadsheet endpoint: it waits, logs the
// entry and succeeds, or fails at the configured rate.
type Simulated struct {
	delay    time.Duration
	failRate float64
	log      logging.Logger
	roll     func() float64
}

// NewSimulated creates a simulated recorder. failRate is clamped to [0, 1].
func NewSimulated(delay time.Duration, failRate float64, log logging.Logger) *Simulated {
	if log == nil {
		log = logging.NopLogger{}
	}
	failRate = max(0, min(1, failRate))
	return &Simulated{delay: delay, failRate: failRate, log: log, roll: rand.Float64}
}

// Record waits for the configured delay and logs e.
func (s *Simulated) Record(ctx context.Context, e calculator.Entry) error {
	if s.delay > 0 {
		timer := time.NewTimer(s.delay)
		defer timer.Stop()
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-timer.C:
		}
	}

	if s.failRate > 0 && s.roll() < s.failRate {
		return ErrSimulatedFailure
	}

	s.log.Info("data that would be sent to the spreadsheet",
		logging.String("email", e.Email),
		logging.Float64("revenue", e.Revenue),
		logging.Float64("cost", e.Cost),
		logging.Float64("roi", e.ROI),
	)
	return nil
}

func (s *Simulated) Close() error { return nil }
