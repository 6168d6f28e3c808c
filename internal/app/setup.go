package app

import (
	"context"
	"fmt"

	"github.com/mselser95/trade-hauls/internal/names"
	"github.com/mselser95/trade-hauls/internal/report"
	"github.com/mselser95/trade-hauls/internal/scan"
	"github.com/mselser95/trade-hauls/internal/scheduler"
	"github.com/mselser95/trade-hauls/internal/storage"
	"github.com/mselser95/trade-hauls/pkg/cache"
	"github.com/mselser95/trade-hauls/pkg/config"
	"github.com/mselser95/trade-hauls/pkg/healthprobe"
	"github.com/mselser95/trade-hauls/pkg/httpserver"
	"github.com/mselser95/trade-hauls/pkg/websocket"
	"go.uber.org/zap"
)

const scanJobName = "log-scan"

// New creates a new application instance.
func New(cfg *config.Config, logger *zap.Logger, opts *Options) (*App, error) {
	if opts == nil {
		opts = &Options{}
	}
	if opts.LogRoot != "" {
		cfg.LogRoot = opts.LogRoot
	}

	ctx, cancel := context.WithCancel(context.Background())

	// Initialize components
	healthChecker := setupHealthChecker()

	nameStore, err := setupStorage(ctx, cfg, logger)
	if err != nil {
		cancel()
		return nil, fmt.Errorf("setup storage: %w", err)
	}

	nameCache, err := setupCache(logger)
	if err != nil {
		cancel()
		nameStore.Close()
		return nil, fmt.Errorf("setup cache: %w", err)
	}

	resolver := names.NewResolver(nameStore, nameCache, names.Config{
		TTL:    cfg.NamesCacheTTL,
		Logger: logger,
	})

	scanner := setupScanner(cfg, logger)
	hub := setupHub(cfg, logger, scanner)

	scanner.Subscribe(func(snap *scan.Snapshot) {
		healthChecker.MarkScanned(snap.RunID, snap.GeneratedAt)
		hub.Broadcast(snap)
	})

	httpServer := httpserver.New(newHTTPConfig(cfg, logger, healthChecker, scanner, resolver, hub))

	a := &App{
		cfg:           cfg,
		logger:        logger,
		healthChecker: healthChecker,
		httpServer:    httpServer,
		hub:           hub,
		scanner:       scanner,
		storage:       nameStore,
		nameCache:     nameCache,
		names:         resolver,
		ctx:           ctx,
		cancel:        cancel,
	}

	a.scheduler, err = setupScheduler(cfg, logger, a.scanOnce)
	if err != nil {
		cancel()
		nameCache.Close()
		nameStore.Close()
		return nil, fmt.Errorf("setup scheduler: %w", err)
	}

	return a, nil
}

func setupHealthChecker() *healthprobe.HealthChecker {
	return healthprobe.New()
}

func setupStorage(ctx context.Context, cfg *config.Config, logger *zap.Logger) (storage.NameStore, error) {
	if cfg.StorageMode == "postgres" {
		pgStorage, err := storage.NewPostgresStorage(ctx, &storage.PostgresConfig{
			Host:     cfg.PostgresHost,
			Port:     cfg.PostgresPort,
			User:     cfg.PostgresUser,
			Password: cfg.PostgresPass,
			Database: cfg.PostgresDB,
			SSLMode:  cfg.PostgresSSL,
			Logger:   logger,
		})
		if err != nil {
			return nil, fmt.Errorf("create postgres storage: %w", err)
		}
		return pgStorage, nil
	}

	return storage.NewMemoryStorage(logger), nil
}

func setupCache(logger *zap.Logger) (*cache.RistrettoCache, error) {
	return cache.NewRistrettoCache(cache.DefaultRistrettoConfig("names", logger))
}

func setupScanner(cfg *config.Config, logger *zap.Logger) *scan.Scanner {
	return scan.New(scan.Config{
		Inputs:    []string{cfg.LogRoot},
		Workers:   cfg.ScanWorkers,
		TopRoutes: cfg.ReportTopRoutes,
		Logger:    logger,
	})
}

func setupHub(cfg *config.Config, logger *zap.Logger, scanner *scan.Scanner) *websocket.Hub {
	return websocket.New(websocket.Config{
		PushInterval: cfg.WSPushInterval,
		PingInterval: cfg.WSPingInterval,
		Payload: func() any {
			// Untyped nil keeps the hub's empty-object fallback.
			if snap := scanner.Latest(); snap != nil {
				return snap
			}
			return nil
		},
		Logger: logger,
	})
}

func setupScheduler(cfg *config.Config, logger *zap.Logger, task scheduler.TaskFunc) (*scheduler.Scheduler, error) {
	s, err := scheduler.New(logger)
	if err != nil {
		return nil, err
	}

	err = s.NewIntervalJob(scanJobName, task, cfg.ScanInterval, true)
	if err != nil {
		_ = s.Stop()
		return nil, err
	}
	return s, nil
}

func newHTTPConfig(
	cfg *config.Config,
	logger *zap.Logger,
	healthChecker *healthprobe.HealthChecker,
	scanner *scan.Scanner,
	resolver *names.Resolver,
	hub *websocket.Hub,
) *httpserver.Config {
	return &httpserver.Config{
		Port:          cfg.HTTPPort,
		Logger:        logger,
		HealthChecker: healthChecker,
		Snapshots:     scanner,
		Names:         resolver,
		Dashboard:     report.NewDashboard(scanner, logger),
		WebSocket:     hub,
	}
}
