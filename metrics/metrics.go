// Package metrics exposes Prometheus instrumentation for the API layer.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// Computations counts completed schedule computations by kind
	// (payment, schedule, comparison, multi).
	Computations = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "mortgage_computations_total",
			Help: "Completed schedule computations.",
		},
		[]string{"kind"},
	)

	// ComputeDuration observes how long each computation takes.
	ComputeDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "mortgage_compute_duration_seconds",
			Help:    "Schedule computation latency.",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"kind"},
	)

	// CacheResults counts cache lookups by outcome (hit, miss).
	CacheResults = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "mortgage_cache_lookups_total",
			Help: "Result cache lookups by outcome.",
		},
		[]string{"kind", "outcome"},
	)
)

// Handler serves the Prometheus scrape endpoint.
func Handler() http.Handler {
	return promhttp.Handler()
}
