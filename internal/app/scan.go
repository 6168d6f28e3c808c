package app

import (
	"context"
	"errors"

	"github.com/mselser95/trade-hauls/internal/logparser"
	"github.com/mselser95/trade-hauls/internal/scan"
	"go.uber.org/zap"
)

// scanOnce runs one rescan of the log root. A missing or empty log root keeps
// the previous snapshot and is not treated as a job failure.
func (a *App) scanOnce(ctx context.Context) error {
	_, err := a.scanner.Run(ctx)
	switch {
	case err == nil:
		return nil
	case errors.Is(err, logparser.ErrNoLogFiles), errors.Is(err, scan.ErrNoEvents):
		a.logger.Warn("scan-skipped",
			zap.String("log-root", a.cfg.LogRoot),
			zap.Bool("has-snapshot", a.scanner.Latest() != nil),
			zap.Error(err))
		return nil
	default:
		return err
	}
}
