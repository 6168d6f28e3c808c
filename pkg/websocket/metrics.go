package websocket

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

//nolint:gochecknoglobals // Prometheus metrics
var (
	// ActiveConnections tracks connected dashboard clients.
	ActiveConnections = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "tradehauls_ws_active_connections",
		Help: "Number of connected dashboard websocket clients",
	})

	// BroadcastsTotal tracks payload broadcasts.
	BroadcastsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "tradehauls_ws_broadcasts_total",
		Help: "Total number of payload broadcasts to dashboard clients",
	})

	// MessagesSentTotal tracks messages written to clients.
	MessagesSentTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "tradehauls_ws_messages_sent_total",
		Help: "Total number of websocket messages written to clients",
	})

	// MessagesDroppedTotal tracks messages that could not be delivered.
	MessagesDroppedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "tradehauls_ws_messages_dropped_total",
			Help: "Total number of websocket messages not delivered",
		},
		[]string{"reason"},
	)

	// ConnectionDuration tracks client connection lifetime.
	ConnectionDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "tradehauls_ws_connection_duration_seconds",
		Help:    "Duration of dashboard websocket connections",
		Buckets: []float64{1, 10, 60, 300, 600, 1800, 3600, 7200, 14400, 28800},
	})
)
