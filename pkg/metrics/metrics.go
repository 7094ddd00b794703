// Package metrics exposes the calculator's Prometheus metrics.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/imgrooty/roi-calculator/pkg/calculator"
)

// Submission outcomes.
const (
	OutcomeSuccess = "success"
	OutcomeFailure = "failure"
)

// Metrics holds all application metrics on a private registry.
type Metrics struct {
	// Connections
	LiveSessions prometheus.Gauge

	// Messages
	MessagesReceived *prometheus.CounterVec
	RenderDuration   prometheus.Histogram
	PanicsTotal      prometheus.Counter

	// Wizard
	Submissions        *prometheus.CounterVec
	SubmissionDuration prometheus.Histogram
	StepTransitions    *prometheus.CounterVec
	ValidationFailures *prometheus.CounterVec

	// Limits
	RequestsRejected *prometheus.CounterVec

	registry *prometheus.Registry
}

// NewMetrics creates and registers the metrics under namespace.
func NewMetrics(namespace string) *Metrics {
	m := &Metrics{
		LiveSessions: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "live_sessions",
			Help:      "Number of connected calculator sessions.",
		}),
		MessagesReceived: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "messages_received_total",
			Help:      "Client messages received, by event.",
		}, []string{"event"}),
		RenderDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "render_duration_seconds",
			Help:      "Time spent rendering and diffing a view.",
			Buckets:   []float64{.0005, .001, .0025, .005, .01, .025, .05, .1},
		}),
		PanicsTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "panics_total",
			Help:      "Panics recovered in handlers.",
		}),
		Submissions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "submissions_total",
			Help:      "Recorded submissions, by outcome.",
		}, []string{"outcome"}),
		SubmissionDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "submission_duration_seconds",
			Help:      "Time spent recording a submission.",
			Buckets:   prometheus.DefBuckets,
		}),
		StepTransitions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "step_transitions_total",
			Help:      "Wizard step changes.",
		}, []string{"from", "to"}),
		ValidationFailures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "validation_failures_total",
			Help:      "Rejected field values, by field.",
		}, []string{"field"}),
		RequestsRejected: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "requests_rejected_total",
			Help:      "Requests refused by the per-client limits, by reason.",
		}, []string{"reason"}),
		registry: prometheus.NewRegistry(),
	}

	m.registry.MustRegister(
		m.LiveSessions,
		m.MessagesReceived,
		m.RenderDuration,
		m.PanicsTotal,
		m.Submissions,
		m.SubmissionDuration,
		m.StepTransitions,
		m.ValidationFailures,
		m.RequestsRejected,
		collectors.NewGoCollector(),
	)
	return m
}

// Handler returns an HTTP handler serving the registry in the Prometheus
// text format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// Registry returns the underlying registry.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// ObserveSubmission records one recorder call.
func (m *Metrics) ObserveSubmission(d time.Duration, err error) {
	outcome := OutcomeSuccess
	if err != nil {
		outcome = OutcomeFailure
	}
	m.Submissions.WithLabelValues(outcome).Inc()
	m.SubmissionDuration.Observe(d.Seconds())
}

// StepChanged implements calculator.Observer.
func (m *Metrics) StepChanged(from, to calculator.Step) {
	m.StepTransitions.WithLabelValues(from.String(), to.String()).Inc()
}

// ValidationFailed implements calculator.Observer.
func (m *Metrics) ValidationFailed(field string) {
	m.ValidationFailures.WithLabelValues(field).Inc()
}

// RequestRejected counts a request refused by a limiter.
func (m *Metrics) RequestRejected(reason string) {
	m.RequestsRejected.WithLabelValues(reason).Inc()
}

// Timer measures elapsed time.
type Timer struct {
	start time.Time
}

// NewTimer starts a timer.
func NewTimer() *Timer {
	return &Timer{start: time.Now()}
}

// ObserveDuration records the elapsed time on h.
func (t *Timer) ObserveDuration(h prometheus.Observer) time.Duration {
	d := time.Since(t.start)
	h.Observe(d.Seconds())
	return d
}

var _ calculator.Observer = (*Metrics)(nil)
