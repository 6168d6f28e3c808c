package logparser

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"iter"
	"os"
	"runtime"

	"github.com/mselser95/trade-hauls/pkg/types"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// Events yields the trade events found in r, one line at a time. Lines that
// are not events are skipped. A read error ends the sequence early.
func Events(r io.Reader) iter.Seq[types.TradeEvent] {
	return func(yield func(types.TradeEvent) bool) {
		_ = scanEvents(r, yield)
	}
}

// scanEvents feeds every parsed event to yield and reports the read error,
// if any, that ended the scan.
func scanEvents(r io.Reader, yield func(types.TradeEvent) bool) error {
	br := bufio.NewReader(r)
	for {
		line, err := br.ReadBytes('\n')
		if len(line) > 0 {
			LinesScannedTotal.Inc()
			if ev, ok := ParseLine(line); ok {
				EventsParsedTotal.WithLabelValues(ev.Operation.String()).Inc()
				if !yield(ev) {
					return nil
				}
			}
		}
		if err != nil {
			if errors.Is(err, io.EOF) {
				return nil
			}
			return err
		}
	}
}

// IterEvents yields events from files in file order, then line order. A file
// that cannot be opened or read is logged and skipped.
func IterEvents(files []string, logger *zap.Logger) iter.Seq[types.TradeEvent] {
	if logger == nil {
		logger = zap.NewNop()
	}
	return func(yield func(types.TradeEvent) bool) {
		for _, path := range files {
			stopped := false
			err := readFile(path, func(ev types.TradeEvent) bool {
				if !yield(ev) {
					stopped = true
					return false
				}
				return true
			})
			if err != nil {
				FileErrorsTotal.Inc()
				logger.Warn("log-file-read-failed", zap.String("path", path), zap.Error(err))
			}
			if stopped {
				return
			}
		}
	}
}

// LoadEvents reads files concurrently and returns their events concatenated
// in file order. Unreadable files are logged and skipped; only context
// cancellation is returned as an error. A non-positive workers count means
// GOMAXPROCS.
func LoadEvents(ctx context.Context, files []string, workers int, logger *zap.Logger) ([]types.TradeEvent, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	workers = loadWorkers(workers)

	perFile := make([][]types.TradeEvent, len(files))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)

	for i, path := range files {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}

			var events []types.TradeEvent
			err := readFile(path, func(ev types.TradeEvent) bool {
				events = append(events, ev)
				return gctx.Err() == nil
			})
			if err != nil {
				FileErrorsTotal.Inc()
				logger.Warn("log-file-read-failed", zap.String("path", path), zap.Error(err))
			}
			perFile[i] = events
			return gctx.Err()
		})
	}

	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("load events: %w", err)
	}

	total := 0
	for _, events := range perFile {
		total += len(events)
	}
	all := make([]types.TradeEvent, 0, total)
	for _, events := range perFile {
		all = append(all, events...)
	}

	return all, nil
}

func readFile(path string, yield func(types.TradeEvent) bool) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("open log file: %w", err)
	}
	defer f.Close()

	FilesReadTotal.Inc()

	if err := scanEvents(f, yield); err != nil {
		return fmt.Errorf("read log file: %w", err)
	}
	return nil
}

func loadWorkers(n int) int {
	if n <= 0 {
		return runtime.GOMAXPROCS(0)
	}
	return n
}
