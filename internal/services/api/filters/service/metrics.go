package service

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	perr "github.com/kweimann/poe-stash-filter/internal/platform/errors"
)

// synthMetrics records synthesis outcomes. A nil registerer keeps the collectors unregistered
type synthMetrics struct {
	requests *prometheus.CounterVec
	duration prometheus.Histogram
	parts    prometheus.Histogram
}

func newSynthMetrics(reg prometheus.Registerer) *synthMetrics {
	f := promauto.With(reg)
	return &synthMetrics{
		requests: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: "stashfilter",
			Subsystem: "filters",
			Name:      "synthesize_requests_total",
			Help:      "Filter synthesis requests by outcome.",
		}, []string{"outcome"}),
		duration: f.NewHistogram(prometheus.HistogramOpts{
			Namespace: "stashfilter",
			Subsystem: "filters",
			Name:      "synthesize_duration_seconds",
			Help:      "Wall time of successful synthesize requests.",
			Buckets:   prometheus.ExponentialBuckets(0.0005, 4, 8),
		}),
		parts: f.NewHistogram(prometheus.HistogramOpts{
			Namespace: "stashfilter",
			Subsystem: "filters",
			Name:      "synthesize_parts",
			Help:      "Number of substrings in synthesized filters.",
			Buckets:   prometheus.LinearBuckets(1, 2, 10),
		}),
	}
}

// outcome labels an error by the class of caller action it calls for
func outcome(err error) string {
	if err == nil {
		return "ok"
	}
	switch perr.CodeOf(err) {
	case perr.ErrorCodeValidation, perr.ErrorCodeInvalidArgument:
		return "rejected"
	case perr.ErrorCodeUnavailable:
		return "unavailable"
	default:
		return "error"
	}
}

func (m *synthMetrics) observe(err error, parts int, elapsed time.Duration) {
	m.requests.WithLabelValues(outcome(err)).Inc()
	if err != nil {
		return
	}
	m.duration.Observe(elapsed.Seconds())
	m.parts.Observe(float64(parts))
}
