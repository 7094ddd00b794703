package recorder

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/imgrooty/roi-calculator/pkg/calculator"
	"github.com/imgrooty/roi-calculator/pkg/logging"
	"github.com/imgrooty/roi-calculator/pkg/retry"
)

// StatusError reports a non-2xx answer from the endpoint.
type StatusError struct {
	Code int
	Body string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("failed to submit data: %d %s", e.Code, http.StatusText(e.Code))
}

// HTTPConfig configures the HTTP recorder.
type HTTPConfig struct {
	// URL is the web app endpoint receiving the JSON entry.
	URL string

	// Timeout bounds each attempt. Zero means no timeout.
	Timeout time.Duration

	// Retries is the number of extra attempts on network errors and 5xx.
	Retries int

	// Breaker overrides the default breaker settings.
	Breaker *BreakerConfig
}

// HTTP posts entries as JSON to a web endpoint such as a spreadsheet
// script.
type HTTP struct {
	url     string
	client  *resty.Client
	retry   *retry.Config
	breaker *Breaker
	log     logging.Logger
}

// NewHTTP creates an HTTP recorder.
func NewHTTP(cfg HTTPConfig, log logging.Logger) (*HTTP, error) {
	if cfg.URL == "" {
		return nil, ErrMissingURL
	}
	if log == nil {
		log = logging.NopLogger{}
	}

	client := resty.New().
		SetTimeout(cfg.Timeout).
		SetHeader("Content-Type", "application/json").
		SetHeader("Accept", "application/json")

	bc := DefaultBreakerConfig()
	if cfg.Breaker != nil {
		bc = *cfg.Breaker
	}
	bc.OnStateChange = func(from, to CircuitState) {
		log.Warn("circuit state changed",
			logging.String("from", from.String()),
			logging.String("to", to.String()),
		)
	}

	rc := retry.DefaultConfig()
	rc.MaxRetries = cfg.Retries
	rc.OnRetry = func(attempt int, err error, delay time.Duration) {
		log.Warn("retrying submission",
			logging.Int("attempt", attempt),
			logging.Duration("delay", delay),
			logging.Err(err),
		)
	}

	return &HTTP{
		url:     cfg.URL,
		client:  client,
		retry:   rc,
		breaker: NewBreaker(bc),
		log:     log,
	}, nil
}

// Record posts e to the endpoint.
func (h *HTTP) Record(ctx context.Context, e calculator.Entry) error {
	return h.breaker.Execute(func() error {
		return retry.Retry(ctx, h.retry, func(ctx context.Context) error {
			return h.post(ctx, e)
		})
	})
}

func (h *HTTP) post(ctx context.Context, e calculator.Entry) error {
	resp, err := h.client.R().
		SetContext(ctx).
		SetBody(e).
		Post(h.url)
	if err != nil {
		return err
	}
	if resp.IsError() {
		serr := &StatusError{Code: resp.StatusCode(), Body: resp.String()}
		if resp.StatusCode() < http.StatusInternalServerError {
			return retry.Permanent(serr)
		}
		return serr
	}
	return nil
}

// Breaker exposes the circuit breaker guarding the endpoint.
func (h *HTTP) Breaker() *Breaker {
	return h.breaker
}

// Close releases idle connections.
func (h *HTTP) Close() error {
	h.client.GetClient().CloseIdleConnections()
	return nil
}
