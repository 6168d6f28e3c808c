package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"
)

// Config holds all application configuration.
type Config struct {
	// Application
	LogLevel  string
	LogFormat string // "json" or "console"
	HTTPPort  string

	// Log scanning
	LogRoot         string
	ScanInterval    time.Duration
	ScanWorkers     int
	ReportTopRoutes int

	// Dashboard WebSocket
	WSPushInterval time.Duration
	WSPingInterval time.Duration

	// Names
	NamesCacheTTL time.Duration

	// Storage
	StorageMode  string // "memory" or "postgres"
	PostgresHost string
	PostgresPort string
	PostgresUser string
	PostgresPass string
	PostgresDB   string
	PostgresSSL  string
}

// LoadFromEnv loads configuration from environment variables with defaults.
func LoadFromEnv() (*Config, error) {
	cfg := &Config{
		// Application defaults
		LogLevel:  getEnvOrDefault("LOG_LEVEL", "info"),
		LogFormat: getEnvOrDefault("LOG_FORMAT", "json"),
		HTTPPort:  getEnvOrDefault("HTTP_PORT", "8080"),

		// Scan defaults
		LogRoot:         expandHome(getEnvOrDefault("LOG_ROOT", "~/StarCitizen/LIVE")),
		ScanInterval:    getDurationOrDefault("SCAN_INTERVAL", 10*time.Second),
		ScanWorkers:     getIntOrDefault("SCAN_WORKERS", 0), // 0 = GOMAXPROCS
		ReportTopRoutes: getIntOrDefault("REPORT_TOP_ROUTES", 5),

		// WebSocket defaults
		WSPushInterval: getDurationOrDefault("WS_PUSH_INTERVAL", 5*time.Second),
		WSPingInterval: getDurationOrDefault("WS_PING_INTERVAL", 30*time.Second),

		NamesCacheTTL: getDurationOrDefault("NAMES_CACHE_TTL", 10*time.Minute),

		// Storage defaults
		StorageMode:  getEnvOrDefault("STORAGE_MODE", "memory"),
		PostgresHost: getEnvOrDefault("POSTGRES_HOST", "localhost"),
		PostgresPort: getEnvOrDefault("POSTGRES_PORT", "5432"),
		PostgresUser: getEnvOrDefault("POSTGRES_USER", "hauls"),
		PostgresPass: getEnvOrDefault("POSTGRES_PASSWORD", "hauls123"),
		PostgresDB:   getEnvOrDefault("POSTGRES_DB", "trade_hauls"),
		PostgresSSL:  getEnvOrDefault("POSTGRES_SSLMODE", "disable"),
	}

	err := cfg.Validate()
	if err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}

	return cfg, nil
}

// Validate checks that configuration values are valid.
func (c *Config) Validate() error {
	if c.HTTPPort == "" {
		return fmt.Errorf("HTTP_PORT cannot be empty")
	}

	if c.LogFormat != "json" && c.LogFormat != "console" {
		return fmt.Errorf("LOG_FORMAT must be 'json' or 'console', got %q", c.LogFormat)
	}

	if c.LogRoot == "" {
		return fmt.Errorf("LOG_ROOT cannot be empty")
	}

	if c.ScanInterval <= 0 {
		return fmt.Errorf("SCAN_INTERVAL must be positive, got %v", c.ScanInterval)
	}

	if c.ScanWorkers < 0 {
		return fmt.Errorf("SCAN_WORKERS must be non-negative, got %d", c.ScanWorkers)
	}

	if c.ReportTopRoutes <= 0 {
		return fmt.Errorf("REPORT_TOP_ROUTES must be positive, got %d", c.ReportTopRoutes)
	}

	if c.WSPushInterval <= 0 {
		return fmt.Errorf("WS_PUSH_INTERVAL must be positive, got %v", c.WSPushInterval)
	}

	if c.WSPingInterval <= 0 {
		return fmt.Errorf("WS_PING_INTERVAL must be positive, got %v", c.WSPingInterval)
	}

	if c.NamesCacheTTL < 0 {
		return fmt.Errorf("NAMES_CACHE_TTL must be non-negative, got %v", c.NamesCacheTTL)
	}

	if c.StorageMode != "memory" && c.StorageMode != "postgres" {
		return fmt.Errorf("STORAGE_MODE must be 'memory' or 'postgres', got %q", c.StorageMode)
	}

	return nil
}

// expandHome replaces a leading ~ with the user's home directory.
func expandHome(path string) string {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, strings.TrimPrefix(path, "~"))
}

func getEnvOrDefault(key string, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func getIntOrDefault(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	intVal, err := strconv.Atoi(value)
	if err != nil {
		return defaultValue
	}

	return intVal
}

func getDurationOrDefault(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	duration, err := time.ParseDuration(value)
	if err != nil {
		return defaultValue
	}

	return duration
}
