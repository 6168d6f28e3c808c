package app

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"
)

const shutdownTimeout = 10 * time.Second

// Shutdown stops rescanning, drains HTTP and websocket clients, and closes
// the name store. Every step runs even when an earlier one fails.
func (a *App) Shutdown() error {
	a.logger.Info("application-shutting-down")

	a.healthChecker.SetReady(false)
	a.cancel()

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	// Hijacked websocket connections outlive http.Server.Shutdown, so the hub
	// is closed separately after it.
	steps := []struct {
		component string
		stop      func() error
	}{
		{"scheduler", a.scheduler.Stop},
		{"http-server", func() error { return a.httpServer.Shutdown(ctx) }},
		{"websocket-hub", a.hub.Close},
		{"name-cache", func() error { a.nameCache.Close(); return nil }},
		{"storage", a.storage.Close},
	}

	var errs []error
	for _, step := range steps {
		if err := step.stop(); err != nil {
			a.logger.Error("component-shutdown-failed",
				zap.String("component", step.component),
				zap.Error(err))
			errs = append(errs, err)
		}
	}

	a.wg.Wait()

	a.logger.Info("application-shutdown-complete")
	return errors.Join(errs...)
}
