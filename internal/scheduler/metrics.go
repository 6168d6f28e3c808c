package scheduler

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

//nolint:gochecknoglobals // Prometheus metrics
var (
	// JobRunsTotal tracks finished job runs by outcome.
	JobRunsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "tradehauls_scheduler_job_runs_total",
			Help: "Total number of scheduled job runs by result",
		},
		[]string{"job", "result"},
	)

	// JobPanicsTotal tracks jobs that panicked.
	JobPanicsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "tradehauls_scheduler_job_panics_total",
			Help: "Total number of recovered panics in scheduled jobs",
		},
		[]string{"job"},
	)

	// JobDurationSeconds tracks job run time.
	JobDurationSeconds = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "tradehauls_scheduler_job_duration_seconds",
			Help:    "Duration of scheduled job runs",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"job"},
	)
)
