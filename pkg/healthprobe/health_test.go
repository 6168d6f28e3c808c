package healthprobe

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"
)

func serve(t *testing.T, handler http.HandlerFunc, path string) (int, HealthResponse) {
	t.Helper()

	w := httptest.NewRecorder()
	handler(w, httptest.NewRequest(http.MethodGet, path, nil))

	if ct := w.Header().Get("Content-Type"); ct != "application/json" {
		t.Errorf("Content-Type = %s, want application/json", ct)
	}

	var resp HealthResponse
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
	return w.Code, resp
}

func TestNew(t *testing.T) {
	hc := New()

	if time.Since(hc.startTime) > time.Second {
		t.Errorf("Start time is too old: %v", hc.startTime)
	}
	if hc.ready.Load() {
		t.Error("HealthChecker should not be ready by default")
	}
	if hc.LastScan() != nil {
		t.Error("LastScan() should be nil before the first scan")
	}
}

func TestHealth_AlwaysOK(t *testing.T) {
	for _, ready := range []bool{false, true} {
		hc := New()
		hc.SetReady(ready)

		code, resp := serve(t, hc.Health(), "/health")
		if code != http.StatusOK {
			t.Errorf("Health status = %d, want %d (ready=%v)", code, http.StatusOK, ready)
		}
		if resp.Status != "healthy" {
			t.Errorf("Status = %s, want healthy", resp.Status)
		}
		if resp.Uptime == "" {
			t.Error("Uptime is empty")
		}
	}
}

func TestReady_Transitions(t *testing.T) {
	hc := New()
	handler := hc.Ready()

	tests := []struct {
		name       string
		setReady   bool
		wantStatus int
		wantBody   string
	}{
		{name: "initial", wantStatus: http.StatusServiceUnavailable, wantBody: "not_ready"},
		{name: "ready", setReady: true, wantStatus: http.StatusOK, wantBody: "ready"},
		{name: "not-ready-again", setReady: false, wantStatus: http.StatusServiceUnavailable, wantBody: "not_ready"},
	}

	for _, tt := range tests {
		if tt.name != "initial" {
			hc.SetReady(tt.setReady)
		}

		code, resp := serve(t, handler, "/ready")
		if code != tt.wantStatus {
			t.Errorf("%s: status = %d, want %d", tt.name, code, tt.wantStatus)
		}
		if resp.Status != tt.wantBody {
			t.Errorf("%s: Status = %s, want %s", tt.name, resp.Status, tt.wantBody)
		}
		if code == http.StatusServiceUnavailable && resp.Message == "" {
			t.Errorf("%s: Message is empty for not_ready state", tt.name)
		}
	}
}

func TestMarkScanned(t *testing.T) {
	hc := New()

	at := time.Date(2025, 6, 21, 22, 0, 0, 0, time.UTC)
	hc.MarkScanned("run-1", at)

	code, resp := serve(t, hc.Ready(), "/ready")
	if code != http.StatusOK {
		t.Fatalf("Ready status = %d, want %d", code, http.StatusOK)
	}
	if resp.LastScan == nil {
		t.Fatal("LastScan missing from ready response")
	}
	if resp.LastScan.RunID != "run-1" || !resp.LastScan.At.Equal(at) {
		t.Errorf("LastScan = %+v, want run-1 at %v", resp.LastScan, at)
	}

	_, health := serve(t, hc.Health(), "/health")
	if health.LastScan == nil || health.LastScan.RunID != "run-1" {
		t.Errorf("Health LastScan = %+v, want run-1", health.LastScan)
	}

	hc.MarkScanned("run-2", at.Add(time.Minute))
	if got := hc.LastScan().RunID; got != "run-2" {
		t.Errorf("LastScan().RunID = %s, want run-2", got)
	}
}

func TestHealthChecker_ConcurrentAccess(t *testing.T) {
	hc := New()
	ready := hc.Ready()

	var wg sync.WaitGroup
	wg.Add(2)

	go func() {
		defer wg.Done()
		for i := 0; i < 100; i++ {
			hc.MarkScanned("run", time.Now())
			hc.SetReady(i%2 == 0)
		}
	}()

	go func() {
		defer wg.Done()
		for i := 0; i < 100; i++ {
			ready(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/ready", nil))
		}
	}()

	wg.Wait()
}
