package scan

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

//nolint:gochecknoglobals // Prometheus metrics
var (
	// ScansTotal tracks scan attempts.
	ScansTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "tradehauls_scan_runs_total",
		Help: "Total number of log scans started",
	})

	// ScanErrorsTotal tracks failed scans by reason.
	ScanErrorsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "tradehauls_scan_errors_total",
			Help: "Total number of log scans that produced no snapshot",
		},
		[]string{"reason"},
	)

	// ScanDurationSeconds tracks end-to-end scan time.
	ScanDurationSeconds = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "tradehauls_scan_duration_seconds",
		Help:    "Time to collect, parse, match and analyse the logs",
		Buckets: prometheus.ExponentialBuckets(0.005, 2, 12),
	})

	// FilesScanned is the number of log files in the latest snapshot.
	FilesScanned = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "tradehauls_scan_files",
		Help: "Number of log files read by the latest successful scan",
	})

	// EventsScanned is the number of events in the latest snapshot.
	EventsScanned = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "tradehauls_scan_events",
		Help: "Number of trade events parsed by the latest successful scan",
	})

	// HaulsMatched is the number of hauls in the latest snapshot.
	HaulsMatched = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "tradehauls_scan_hauls",
		Help: "Number of hauls matched by the latest successful scan",
	})

	// UnbalancedResources counts resources with dropped sell or move quantity.
	UnbalancedResources = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "tradehauls_scan_unbalanced_resources",
		Help: "Number of resources whose sells or moves exceeded open inventory",
	})
)
