package healthprobe

import (
	"net/http"
	"sync/atomic"
	"time"

	json "github.com/goccy/go-json"
)

// HealthChecker provides health and readiness checks. The application is
// ready once the first log scan has produced a snapshot.
type HealthChecker struct {
	startTime time.Time
	ready     atomic.Bool
	lastScan  atomic.Pointer[ScanInfo]
}

// ScanInfo identifies the most recent successful scan.
type ScanInfo struct {
	RunID string    `json:"run_id"`
	At    time.Time `json:"at"`
}

// New creates a new HealthChecker.
func New() *HealthChecker {
	return &HealthChecker{
		startTime: time.Now(),
	}
}

// SetReady marks the application as ready to serve traffic.
func (h *HealthChecker) SetReady(ready bool) {
	h.ready.Store(ready)
}

// MarkScanned records a completed scan and marks the application ready.
func (h *HealthChecker) MarkScanned(runID string, at time.Time) {
	h.lastScan.Store(&ScanInfo{RunID: runID, At: at})
	h.ready.Store(true)
}

// LastScan returns the most recent scan, or nil before the first one.
func (h *HealthChecker) LastScan() *ScanInfo {
	return h.lastScan.Load()
}

// HealthResponse represents the health check response.
type HealthResponse struct {
	Status   string    `json:"status"`
	Uptime   string    `json:"uptime"`
	Message  string    `json:"message,omitempty"`
	LastScan *ScanInfo `json:"last_scan,omitempty"`
}

// Health returns an HTTP handler for liveness checks.
// Always returns 200 OK if the application is running.
func (h *HealthChecker) Health() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, HealthResponse{
			Status:   "healthy",
			Uptime:   time.Since(h.startTime).String(),
			LastScan: h.LastScan(),
		})
	}
}

// Ready returns an HTTP handler for readiness checks.
// Returns 200 OK if ready, 503 Service Unavailable if not.
func (h *HealthChecker) Ready() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if !h.ready.Load() {
			writeJSON(w, http.StatusServiceUnavailable, HealthResponse{
				Status:  "not_ready",
				Message: "waiting for first log scan",
			})
			return
		}

		writeJSON(w, http.StatusOK, HealthResponse{
			Status:   "ready",
			Uptime:   time.Since(h.startTime).String(),
			LastScan: h.LastScan(),
		})
	}
}

func writeJSON(w http.ResponseWriter, status int, resp HealthResponse) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(resp)
}
