package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func validConfig() *Config {
	return &Config{
		LogFormat:       "json",
		HTTPPort:        "8080",
		LogRoot:         "/tmp/logs",
		ScanInterval:    10 * time.Second,
		ReportTopRoutes: 5,
		WSPushInterval:  5 * time.Second,
		WSPingInterval:  30 * time.Second,
		NamesCacheTTL:   10 * time.Minute,
		StorageMode:     "memory",
	}
}

func TestLoadFromEnv_Defaults(t *testing.T) {
	for _, key := range []string{"HTTP_PORT", "LOG_ROOT", "SCAN_INTERVAL", "STORAGE_MODE", "REPORT_TOP_ROUTES", "WS_PUSH_INTERVAL"} {
		t.Setenv(key, "")
	}

	cfg, err := LoadFromEnv()
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	if cfg.HTTPPort != "8080" {
		t.Errorf("HTTPPort = %q, want 8080", cfg.HTTPPort)
	}
	if cfg.ScanInterval != 10*time.Second {
		t.Errorf("ScanInterval = %v, want 10s", cfg.ScanInterval)
	}
	if cfg.WSPushInterval != 5*time.Second {
		t.Errorf("WSPushInterval = %v, want 5s", cfg.WSPushInterval)
	}
	if cfg.StorageMode != "memory" {
		t.Errorf("StorageMode = %q, want memory", cfg.StorageMode)
	}
	if cfg.ReportTopRoutes != 5 {
		t.Errorf("ReportTopRoutes = %d, want 5", cfg.ReportTopRoutes)
	}
	if !strings.HasSuffix(cfg.LogRoot, filepath.Join("StarCitizen", "LIVE")) {
		t.Errorf("LogRoot = %q, want suffix StarCitizen/LIVE", cfg.LogRoot)
	}
	if strings.HasPrefix(cfg.LogRoot, "~") {
		t.Errorf("LogRoot = %q, home directory not expanded", cfg.LogRoot)
	}
}

func TestLoadFromEnv_Overrides(t *testing.T) {
	t.Setenv("HTTP_PORT", "9090")
	t.Setenv("LOG_ROOT", "/var/log/game")
	t.Setenv("SCAN_INTERVAL", "1m")
	t.Setenv("SCAN_WORKERS", "4")
	t.Setenv("STORAGE_MODE", "postgres")
	t.Setenv("NAMES_CACHE_TTL", "30s")

	cfg, err := LoadFromEnv()
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	if cfg.HTTPPort != "9090" {
		t.Errorf("HTTPPort = %q, want 9090", cfg.HTTPPort)
	}
	if cfg.LogRoot != "/var/log/game" {
		t.Errorf("LogRoot = %q, want /var/log/game", cfg.LogRoot)
	}
	if cfg.ScanInterval != time.Minute {
		t.Errorf("ScanInterval = %v, want 1m", cfg.ScanInterval)
	}
	if cfg.ScanWorkers != 4 {
		t.Errorf("ScanWorkers = %d, want 4", cfg.ScanWorkers)
	}
	if cfg.StorageMode != "postgres" {
		t.Errorf("StorageMode = %q, want postgres", cfg.StorageMode)
	}
	if cfg.NamesCacheTTL != 30*time.Second {
		t.Errorf("NamesCacheTTL = %v, want 30s", cfg.NamesCacheTTL)
	}
}

func TestLoadFromEnv_InvalidStorageMode(t *testing.T) {
	t.Setenv("STORAGE_MODE", "console")

	_, err := LoadFromEnv()
	if err == nil {
		t.Fatal("expected error for unknown storage mode")
	}
	if !strings.Contains(err.Error(), "STORAGE_MODE") {
		t.Errorf("error %q does not name STORAGE_MODE", err)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr string
	}{
		{name: "valid", mutate: func(c *Config) {}},
		{name: "empty-port", mutate: func(c *Config) { c.HTTPPort = "" }, wantErr: "HTTP_PORT"},
		{name: "console-format", mutate: func(c *Config) { c.LogFormat = "console" }},
		{name: "bad-log-format", mutate: func(c *Config) { c.LogFormat = "xml" }, wantErr: "LOG_FORMAT"},
		{name: "empty-log-root", mutate: func(c *Config) { c.LogRoot = "" }, wantErr: "LOG_ROOT"},
		{name: "zero-scan-interval", mutate: func(c *Config) { c.ScanInterval = 0 }, wantErr: "SCAN_INTERVAL"},
		{name: "negative-workers", mutate: func(c *Config) { c.ScanWorkers = -1 }, wantErr: "SCAN_WORKERS"},
		{name: "zero-top-routes", mutate: func(c *Config) { c.ReportTopRoutes = 0 }, wantErr: "REPORT_TOP_ROUTES"},
		{name: "zero-push-interval", mutate: func(c *Config) { c.WSPushInterval = 0 }, wantErr: "WS_PUSH_INTERVAL"},
		{name: "zero-ping-interval", mutate: func(c *Config) { c.WSPingInterval = 0 }, wantErr: "WS_PING_INTERVAL"},
		{name: "negative-cache-ttl", mutate: func(c *Config) { c.NamesCacheTTL = -time.Second }, wantErr: "NAMES_CACHE_TTL"},
		{name: "postgres-mode", mutate: func(c *Config) { c.StorageMode = "postgres" }},
		{name: "bad-storage-mode", mutate: func(c *Config) { c.StorageMode = "sqlite" }, wantErr: "STORAGE_MODE"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(cfg)

			err := cfg.Validate()
			if tt.wantErr == "" {
				if err != nil {
					t.Errorf("expected no error, got %v", err)
				}
				return
			}
			if err == nil {
				t.Fatalf("expected error containing %q, got nil", tt.wantErr)
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("error %q does not contain %q", err, tt.wantErr)
			}
		})
	}
}

func TestExpandHome(t *testing.T) {
	home, err := os.UserHomeDir()
	if err != nil {
		t.Skipf("no home directory: %v", err)
	}

	tests := []struct {
		in   string
		want string
	}{
		{in: "~", want: home},
		{in: "~/StarCitizen/LIVE", want: filepath.Join(home, "StarCitizen", "LIVE")},
		{in: "/abs/path", want: "/abs/path"},
		{in: "relative/~dir", want: "relative/~dir"},
		{in: "~other/logs", want: "~other/logs"},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			if got := expandHome(tt.in); got != tt.want {
				t.Errorf("expandHome(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestGetIntOrDefault(t *testing.T) {
	tests := []struct {
		name     string
		envValue string
		want     int
	}{
		{name: "valid", envValue: "42", want: 42},
		{name: "invalid", envValue: "abc", want: 7},
		{name: "empty", envValue: "", want: 7},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("TEST_INT_VAR", tt.envValue)

			if got := getIntOrDefault("TEST_INT_VAR", 7); got != tt.want {
				t.Errorf("expected %d, got %d", tt.want, got)
			}
		})
	}
}

func TestGetDurationOrDefault(t *testing.T) {
	tests := []struct {
		name     string
		envValue string
		want     time.Duration
	}{
		{name: "parse-1h", envValue: "1h", want: time.Hour},
		{name: "parse-5s", envValue: "5s", want: 5 * time.Second},
		{name: "missing-unit", envValue: "30", want: 5 * time.Minute},
		{name: "invalid-format", envValue: "abc", want: 5 * time.Minute},
		{name: "empty-string", envValue: "", want: 5 * time.Minute},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("TEST_DUR_VAR", tt.envValue)

			if got := getDurationOrDefault("TEST_DUR_VAR", 5*time.Minute); got != tt.want {
				t.Errorf("expected %v, got %v", tt.want, got)
			}
		})
	}
}

func TestNewLogger(t *testing.T) {
	tests := []struct {
		name    string
		level   string
		format  string
		wantErr bool
	}{
		{name: "default", level: "", format: ""},
		{name: "debug", level: "debug", format: "json"},
		{name: "warn-console", level: "warn", format: "console"},
		{name: "invalid-level", level: "verbose", wantErr: true},
		{name: "invalid-format", level: "info", format: "xml", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("LOG_LEVEL", tt.level)
			t.Setenv("LOG_FORMAT", tt.format)

			logger, err := NewLogger()
			if tt.wantErr {
				if err == nil {
					t.Error("expected error, got nil")
				}
				return
			}
			if err != nil {
				t.Fatalf("expected no error, got %v", err)
			}
			if logger == nil {
				t.Fatal("NewLogger() returned nil logger")
			}
		})
	}
}
