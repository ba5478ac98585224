// Package metrics exposes Prometheus instrumentation for the dispatch
// path. All methods are nil-receiver safe so instrumentation stays
// optional for callers and tests.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the dispatch-path collectors.
type Metrics struct {
	dispatches *prometheus.CounterVec
	failures   *prometheus.CounterVec
	duration   *prometheus.HistogramVec
}

// New creates the collectors and registers them on reg.
// A nil reg falls back to the default registerer.
func New(reg prometheus.Registerer) *Metrics {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}

	m := &Metrics{
		dispatches: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "lenox",
			Name:      "dispatches_total",
			Help:      "Completed dispatches by classified intent.",
		}, []string{"intent"}),
		failures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "lenox",
			Name:      "collaborator_failures_total",
			Help:      "Collaborator failures converted to error envelopes.",
		}, []string{"collaborator"}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "lenox",
			Name:      "dispatch_duration_seconds",
			Help:      "End-to-end dispatch latency by classified intent.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"intent"}),
	}

	reg.MustRegister(m.dispatches, m.failures, m.duration)
	return m
}

// RecordDispatch counts one completed dispatch and its latency.
func (m *Metrics) RecordDispatch(intentTag string, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.dispatches.WithLabelValues(intentTag).Inc()
	m.duration.WithLabelValues(intentTag).Observe(elapsed.Seconds())
}

// RecordFailure counts one collaborator failure.
func (m *Metrics) RecordFailure(collaborator string) {
	if m == nil {
		return
	}
	m.failures.WithLabelValues(collaborator).Inc()
}

// RecordedDispatches returns the dispatch counter for an intent label,
// for test assertions.
func (m *Metrics) RecordedDispatches(intentTag string) prometheus.Counter {
	return m.dispatches.WithLabelValues(intentTag)
}

// RecordedFailures returns the failure counter for a collaborator
// label, for test assertions.
func (m *Metrics) RecordedFailures(collaborator string) prometheus.Counter {
	return m.failures.WithLabelValues(collaborator)
}
