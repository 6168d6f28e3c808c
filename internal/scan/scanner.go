package scan

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/mselser95/trade-hauls/internal/analysis"
	"github.com/mselser95/trade-hauls/internal/hauls"
	"github.com/mselser95/trade-hauls/internal/logparser"
	"go.uber.org/zap"
)

// ErrNoEvents is returned when the collected files hold no trade events.
var ErrNoEvents = errors.New("no trade events found")

// Config holds scanner configuration.
type Config struct {
	Inputs    []string // Files, directories or glob patterns
	Workers   int      // Parallel file readers
	TopRoutes int
	Logger    *zap.Logger
}

// Scanner runs the collect, parse, match and analyse pipeline over a fixed
// set of inputs. Every Run builds a fresh haul engine.
type Scanner struct {
	config Config
	logger *zap.Logger

	latest atomic.Pointer[Snapshot]

	mu          sync.Mutex
	subscribers []func(*Snapshot)
}

// New creates a new scanner.
func New(cfg Config) *Scanner {
	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Scanner{
		config: cfg,
		logger: logger,
	}
}

// Subscribe registers fn to be called with every new snapshot. Callbacks run
// on the scanning goroutine and must not block.
func (s *Scanner) Subscribe(fn func(*Snapshot)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.subscribers = append(s.subscribers, fn)
}

// Latest returns the most recent successful snapshot, or nil before the first.
func (s *Scanner) Latest() *Snapshot {
	return s.latest.Load()
}

// Run scans the inputs once. On success the snapshot becomes Latest and is
// passed to subscribers; on failure the previous snapshot is kept.
func (s *Scanner) Run(ctx context.Context) (*Snapshot, error) {
	start := time.Now()
	ScansTotal.Inc()

	snap, err := s.run(ctx)
	ScanDurationSeconds.Observe(time.Since(start).Seconds())
	if err != nil {
		ScanErrorsTotal.WithLabelValues(errorReason(err)).Inc()
		return nil, err
	}

	s.latest.Store(snap)
	s.publish(snap)

	s.logger.Info("scan-complete",
		zap.String("run-id", snap.RunID),
		zap.Int("files", snap.LogInfo.FileCount),
		zap.Int("events", snap.LogInfo.EventCount),
		zap.Int("hauls", len(snap.Hauls)),
		zap.Int("unbalanced-resources", len(snap.Unbalanced())),
		zap.Duration("duration", time.Since(start)))

	return snap, nil
}

func (s *Scanner) run(ctx context.Context) (*Snapshot, error) {
	path := strings.Join(s.config.Inputs, ", ")

	files := logparser.CollectFiles(s.config.Inputs, s.logger)
	if len(files) == 0 {
		return nil, fmt.Errorf("scan %s: %w", path, logparser.ErrNoLogFiles)
	}

	events, err := logparser.LoadEvents(ctx, files, s.config.Workers, s.logger)
	if err != nil {
		return nil, fmt.Errorf("scan %s: %w", path, err)
	}
	if len(events) == 0 {
		return nil, fmt.Errorf("scan %s: %w", path, ErrNoEvents)
	}

	engine := hauls.New(hauls.Config{Logger: s.logger})
	if err := hauls.Replay(ctx, engine, hauls.SortEvents(events)); err != nil {
		return nil, fmt.Errorf("replay events: %w", err)
	}
	matched := engine.CompletedHauls()
	balances := engine.Balances()

	snap := &Snapshot{
		RunID:       uuid.NewString(),
		GeneratedAt: time.Now().UTC(),
		LogInfo: LogInfo{
			Path:       path,
			FileCount:  len(files),
			EventCount: len(events),
		},
		Report:    analysis.Analyse(events, matched, analysis.Options{TopRoutes: s.config.TopRoutes}),
		Hauls:     matched,
		Inventory: engine.Inventory(),
		Balances:  balances,
	}

	FilesScanned.Set(float64(len(files)))
	EventsScanned.Set(float64(len(events)))
	HaulsMatched.Set(float64(len(matched)))
	UnbalancedResources.Set(float64(len(snap.Unbalanced())))

	return snap, nil
}

func (s *Scanner) publish(snap *Snapshot) {
	s.mu.Lock()
	subscribers := make([]func(*Snapshot), len(s.subscribers))
	copy(subscribers, s.subscribers)
	s.mu.Unlock()

	for _, fn := range subscribers {
		fn(snap)
	}
}

func errorReason(err error) string {
	switch {
	case errors.Is(err, logparser.ErrNoLogFiles):
		return "no_files"
	case errors.Is(err, ErrNoEvents):
		return "no_events"
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return "cancelled"
	default:
		return "other"
	}
}
