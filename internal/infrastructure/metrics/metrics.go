// Package metrics contains Prometheus metrics for the media bot
package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus metrics for the media bot
type Metrics struct {
	// Link detection
	URLsMatched prometheus.Counter

	// Fetch outcomes
	FetchesTotal  *prometheus.CounterVec
	FetchFailures prometheus.Counter
	AttemptErrors *prometheus.CounterVec

	// Fetch distributions
	FetchAttempts prometheus.Histogram
	FetchDuration prometheus.Histogram
}

var (
	// DefaultMetrics is the default metrics instance
	DefaultMetrics *Metrics
	once           sync.Once
)

// GetDefaultMetrics returns the singleton metrics instance
func GetDefaultMetrics() *Metrics {
	once.Do(func() {
		DefaultMetrics = NewMetrics(prometheus.DefaultRegisterer)
	})
	return DefaultMetrics
}

// NewMetrics creates all collectors and registers them with reg
func NewMetrics(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)

	return &Metrics{
		URLsMatched: factory.NewCounter(prometheus.CounterOpts{
			Name: "mediabot_urls_matched_total",
			Help: "Total number of supported links found in incoming messages",
		}),

		FetchesTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "mediabot_fetches_total",
				Help: "Total number of links delivered to chats",
			},
			[]string{"media_kind"},
		),
		FetchFailures: factory.NewCounter(prometheus.CounterOpts{
			Name: "mediabot_fetch_failures_total",
			Help: "Total number of links given up on after all attempts",
		}),
		AttemptErrors: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "mediabot_attempt_errors_total",
				Help: "Total number of failed fetch attempts",
			},
			[]string{"stage"},
		),

		FetchAttempts: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "mediabot_fetch_attempts",
			Help:    "Number of attempts a successful fetch needed",
			Buckets: []float64{1, 2, 3},
		}),
		FetchDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "mediabot_fetch_duration_seconds",
			Help:    "Duration of a link fetch across all attempts in seconds",
			Buckets: []float64{1, 2.5, 5, 10, 30, 60, 120, 300, 600},
		}),
	}
}

// RecordURLsMatched records links found in a single message
func (m *Metrics) RecordURLsMatched(count int) {
	if count > 0 {
		m.URLsMatched.Add(float64(count))
	}
}

// RecordFetch records a delivered link
func (m *Metrics) RecordFetch(kind string, attempts int, duration float64) {
	if kind == "" {
		kind = "unknown"
	}
	m.FetchesTotal.WithLabelValues(kind).Inc()
	m.FetchAttempts.Observe(float64(attempts))
	m.FetchDuration.Observe(duration)
}

// RecordAttemptError records a failed attempt at the given stage
func (m *Metrics) RecordAttemptError(stage string) {
	if stage == "" {
		stage = "unknown"
	}
	m.AttemptErrors.WithLabelValues(stage).Inc()
}

// RecordFetchFailure records a link that exhausted its attempts
func (m *Metrics) RecordFetchFailure(duration float64) {
	m.FetchFailures.Inc()
	m.FetchDuration.Observe(duration)
}
