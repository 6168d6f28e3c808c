package app

import (
	"context"
	"sync"

	"github.com/mselser95/trade-hauls/internal/names"
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

// App is the dashboard server orchestrator: it rescans the game logs on an
// interval and serves the latest result over HTTP and websocket.
type App struct {
	cfg           *config.Config
	logger        *zap.Logger
	healthChecker *healthprobe.HealthChecker
	httpServer    *httpserver.Server
	hub           *websocket.Hub
	scanner       *scan.Scanner
	scheduler     *scheduler.Scheduler
	storage       storage.NameStore
	nameCache     *cache.RistrettoCache
	names         *names.Resolver
	ctx           context.Context
	cancel        context.CancelFunc
	wg            sync.WaitGroup
}

// Options holds application options.
type Options struct {
	LogRoot string // Overrides cfg.LogRoot when set
}
