// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package observability

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Outcome label values.
const (
	OutcomeOK      = "ok"
	OutcomeEmpty   = "empty"
	OutcomeError   = "error"
	OutcomeSkipped = "skipped"
)

// Metrics groups the Prometheus collectors for one process. A nil *Metrics
// is valid and records nothing, so tests and library callers can omit it.
type Metrics struct {
	// Fetches counts paper fetches by backend and outcome (ok, empty, error, skipped).
	Fetches *prometheus.CounterVec

	// PapersPerFetch observes the number of papers returned per fetch.
	PapersPerFetch *prometheus.HistogramVec

	// Generations counts prose generations by provider and outcome.
	Generations *prometheus.CounterVec

	// ComposeDuration observes end-to-end compose duration in seconds.
	ComposeDuration prometheus.Histogram
}

// NewMetrics creates the collectors and registers them with reg. Passing
// prometheus.DefaultRegisterer exposes them on the default /metrics handler.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		Fetches: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "citation_composer",
			Subsystem: "search",
			Name:      "fetches_total",
			Help:      "Paper fetches by backend and outcome.",
		}, []string{"backend", "outcome"}),
		PapersPerFetch: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "citation_composer",
			Subsystem: "search",
			Name:      "papers_per_fetch",
			Help:      "Number of papers returned per fetch.",
			Buckets:   []float64{0, 1, 2, 4, 8, 16, 32, 50},
		}, []string{"backend"}),
		Generations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "citation_composer",
			Subsystem: "prose",
			Name:      "generations_total",
			Help:      "Prose generations by provider and outcome.",
		}, []string{"provider", "outcome"}),
		ComposeDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "citation_composer",
			Name:      "compose_duration_seconds",
			Help:      "End-to-end compose duration.",
			Buckets:   prometheus.DefBuckets,
		}),
	}
	if reg != nil {
		reg.MustRegister(m.Fetches, m.PapersPerFetch, m.Generations, m.ComposeDuration)
	}
	return m
}

// ObserveFetch records one fetch.
func (m *Metrics) ObserveFetch(backend, outcome string, papers int) {
	if m == nil {
		return
	}
	m.Fetches.WithLabelValues(backend, outcome).Inc()
	if outcome != OutcomeSkipped {
		m.PapersPerFetch.WithLabelValues(backend).Observe(float64(papers))
	}
}

// ObserveGeneration records one prose generation.
func (m *Metrics) ObserveGeneration(provider, outcome string) {
	if m == nil {
		return
	}
	m.Generations.WithLabelValues(provider, outcome).Inc()
}

// ObserveCompose records the duration of a compose action started at start.
func (m *Metrics) ObserveCompose(start time.Time) {
	if m == nil {
		return
	}
	m.ComposeDuration.Observe(time.Since(start).Seconds())
}
