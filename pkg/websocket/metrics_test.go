package websocket

import (
	"testing"
)

// TestMetrics_Registration tests all metrics are initialized
func TestMetrics_Registration(t *testing.T) {
	if ActiveConnections == nil {
		t.Error("ActiveConnections not registered")
	}

	if BroadcastsTotal == nil {
		t.Error("BroadcastsTotal not registered")
	}

	if MessagesSentTotal == nil {
		t.Error("MessagesSentTotal not registered")
	}

	if MessagesDroppedTotal == nil {
		t.Error("MessagesDroppedTotal not registered")
	}

	if ConnectionDuration == nil {
		t.Error("ConnectionDuration not registered")
	}
}

// TestMetrics_LabelledCounters tests labelled counters accept their labels
func TestMetrics_LabelledCounters(t *testing.T) {
	MessagesDroppedTotal.WithLabelValues("client_slow").Inc()
	MessagesDroppedTotal.WithLabelValues("write_error").Inc()
}
