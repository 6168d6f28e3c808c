package hauls

import (
	"context"
	"slices"
	"time"

	"github.com/mselser95/trade-hauls/pkg/types"
)

// SortEvents returns a copy of events ordered by timestamp. Events with equal
// timestamps keep their input order.
func SortEvents(events []types.TradeEvent) []types.TradeEvent {
	sorted := slices.Clone(events)
	slices.SortStableFunc(sorted, func(a, b types.TradeEvent) int {
		return a.Timestamp.Compare(b.Timestamp)
	})
	return sorted
}

// Replay feeds already sorted events into engine. Cancellation is checked
// between events; on cancel the engine holds the state of the events applied
// so far and ctx.Err() is returned.
func Replay(ctx context.Context, engine *Engine, events []types.TradeEvent) error {
	start := time.Now()
	defer func() {
		ReplayDuration.Observe(time.Since(start).Seconds())
	}()

	for _, ev := range events {
		if err := ctx.Err(); err != nil {
			return err
		}
		engine.Process(ev)
	}
	return nil
}

// TrackHauls sorts events and runs them through a fresh engine.
func TrackHauls(events []types.TradeEvent) []types.Haul {
	engine := New(Config{})
	for _, ev := range SortEvents(events) {
		engine.Process(ev)
	}
	return engine.CompletedHauls()
}
