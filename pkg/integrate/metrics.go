package integrate

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// invalidLabel stands in for a schedule or sync kind that failed validation.
const invalidLabel = "invalid"

var (
	runsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "integrate_runs_total",
			Help: "The total number of integration runs, by policy and outcome",
		},
		[]string{"schedule", "sync", "status"},
	)
	runDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "integrate_run_duration_seconds",
			Help:    "Wall time of successful integration runs in seconds",
			Buckets: prometheus.ExponentialBuckets(0.0001, 4, 12),
		},
		[]string{"schedule", "sync"},
	)
	rangesClaimed = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "integrate_ranges_claimed_total",
			Help: "The total number of sample ranges claimed by workers",
		},
		[]string{"schedule"},
	)
)
