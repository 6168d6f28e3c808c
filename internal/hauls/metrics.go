package hauls

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

//nolint:gochecknoglobals // Prometheus metrics
var (
	// HaulsEmittedTotal tracks hauls produced by sells.
	HaulsEmittedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "tradehauls_hauls_emitted_total",
		Help: "Total number of hauls produced by matching sells against lots",
	})

	// UnmatchedQuantityTotal tracks sells and moves that exceeded open inventory.
	UnmatchedQuantityTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "tradehauls_hauls_unmatched_total",
			Help: "Total number of sells or moves with a remainder that matched no lot",
		},
		[]string{"operation"},
	)

	// ReplayDuration tracks the time to feed one event batch through an engine.
	ReplayDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "tradehauls_hauls_replay_duration_seconds",
		Help:    "Time to replay a sorted event batch through the haul engine",
		Buckets: prometheus.ExponentialBuckets(0.0005, 2, 14),
	})
)
