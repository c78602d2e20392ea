// Package metrics holds the prometheus collectors for the account service.
package metrics

import (
	"net/http"
	"time"

	"github.com/dmitrijs2005/accounts/internal/cryptox"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Outcome labels for request counters.
const (
	OutcomeOK           = "ok"
	OutcomeInvalid      = "invalid"
	OutcomeUnauthorized = "unauthorized"
	OutcomeForbidden    = "forbidden"
	OutcomeError        = "error"
)

type Metrics struct {
	requests *prometheus.CounterVec
	duration *prometheus.HistogramVec
	hashing  *prometheus.HistogramVec

	gatherer prometheus.Gatherer
}

// New creates the collectors and registers them with reg. Passing a fresh
// prometheus.NewRegistry keeps tests independent of the global registry.
func New(reg *prometheus.Registry) *Metrics {
	m := &Metrics{
		requests: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "accounts_requests_total",
				Help: "Total number of account API requests",
			},
			[]string{"transport", "method", "outcome"},
		),
		duration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "accounts_request_duration_seconds",
				Help:    "Account API request duration in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"transport", "method"},
		),
		hashing: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "accounts_password_hash_duration_seconds",
				Help:    "Time spent hashing and verifying passwords",
				Buckets: []float64{.005, .01, .025, .05, .1, .25, .5, 1, 2.5},
			},
			[]string{"op"},
		),
		gatherer: reg,
	}

	reg.MustRegister(m.requests, m.duration, m.hashing)
	return m
}

// ObserveRequest records one finished request.
func (m *Metrics) ObserveRequest(transport, method, outcome string, d time.Duration) {
	m.requests.WithLabelValues(transport, method, outcome).Inc()
	m.duration.WithLabelValues(transport, method).Observe(d.Seconds())
}

// Handler serves the registry in the prometheus text format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.gatherer, promhttp.HandlerOpts{})
}

// InstrumentHasher wraps h so every Hash and Verify call is timed.
func (m *Metrics) InstrumentHasher(h cryptox.Hasher) cryptox.Hasher {
	return &timedHasher{next: h, hist: m.hashing}
}

type timedHasher struct {
	next cryptox.Hasher
	hist *prometheus.HistogramVec
}

func (t *timedHasher) Hash(plaintext string) (string, error) {
	defer t.observe("hash", time.Now())
	return t.next.Hash(plaintext)
}

func (t *timedHasher) Verify(plaintext, stored string) (bool, error) {
	defer t.observe("verify", time.Now())
	return t.next.Verify(plaintext, stored)
}

func (t *timedHasher) observe(op string, start time.Time) {
	t.hist.WithLabelValues(op).Observe(time.Since(start).Seconds())
}
