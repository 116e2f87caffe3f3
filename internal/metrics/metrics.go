// Package metrics exposes the prometheus instrumentation for the
// processing core.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	RequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "pixelmill_requests_total",
			Help: "Total number of processing requests by result code",
		},
		[]string{"code"},
	)

	RequestDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "pixelmill_request_duration_seconds",
			Help:    "End-to-end processing duration in seconds",
			Buckets: []float64{.005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10},
		},
	)

	SourceBytes = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "pixelmill_source_bytes",
			Help:    "Source image size in bytes",
			Buckets: prometheus.ExponentialBuckets(1024, 4, 10),
		},
	)

	OutputBytes = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "pixelmill_output_bytes",
			Help:    "Encoded output size in bytes",
			Buckets: prometheus.ExponentialBuckets(1024, 4, 10),
		},
	)
)

// ObserveRequest records the outcome of one processing request.
func ObserveRequest(code string, seconds float64) {
	RequestsTotal.WithLabelValues(code).Inc()
	RequestDuration.Observe(seconds)
}
