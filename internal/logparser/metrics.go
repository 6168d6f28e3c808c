package logparser

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

//nolint:gochecknoglobals // Prometheus metrics
var (
	// FilesReadTotal tracks log files opened for reading.
	FilesReadTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "tradehauls_logparser_files_read_total",
		Help: "Total number of log files opened for reading",
	})

	// FileErrorsTotal tracks log files that could not be opened or read.
	FileErrorsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "tradehauls_logparser_file_errors_total",
		Help: "Total number of log files skipped due to open or read errors",
	})

	// LinesScannedTotal tracks raw lines read from log files.
	LinesScannedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "tradehauls_logparser_lines_scanned_total",
		Help: "Total number of log lines scanned",
	})

	// EventsParsedTotal tracks trade events recognized by operation.
	EventsParsedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "tradehauls_logparser_events_parsed_total",
			Help: "Total number of trade events parsed",
		},
		[]string{"operation"},
	)
)
