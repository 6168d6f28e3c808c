package names

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

//nolint:gochecknoglobals // Prometheus metrics
var (
	// StoreLoadsTotal tracks name tables loaded from the backing store.
	StoreLoadsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "tradehauls_names_store_loads_total",
			Help: "Total number of name tables loaded from storage",
		},
		[]string{"table"},
	)

	// StoreErrorsTotal tracks failed name table loads.
	StoreErrorsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "tradehauls_names_store_errors_total",
			Help: "Total number of failed name table loads",
		},
		[]string{"table"},
	)
)
