package scheduler

import (
	"context"
	"fmt"
	"runtime/debug"
	"time"

	"github.com/go-co-op/gocron/v2"
	"go.uber.org/zap"
)

// TaskFunc is a unit of scheduled work.
type TaskFunc func(ctx context.Context) error

// Scheduler runs named jobs on a gocron scheduler. A job never overlaps with
// itself: a run that is due while the previous one is still going is skipped
// until the next interval.
type Scheduler struct {
	scheduler gocron.Scheduler
	logger    *zap.Logger
}

// New creates a new scheduler.
func New(logger *zap.Logger) (*Scheduler, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	s, err := gocron.NewScheduler()
	if err != nil {
		return nil, fmt.Errorf("create scheduler: %w", err)
	}

	return &Scheduler{scheduler: s, logger: logger}, nil
}

// Start starts running registered jobs.
func (s *Scheduler) Start() {
	s.scheduler.Start()
	s.logger.Info("scheduler-started", zap.Int("jobs", len(s.scheduler.Jobs())))
}

// Stop waits for running jobs to return and stops the scheduler.
func (s *Scheduler) Stop() error {
	err := s.scheduler.Shutdown()
	if err != nil {
		return fmt.Errorf("shutdown scheduler: %w", err)
	}
	s.logger.Info("scheduler-stopped")
	return nil
}

// NewIntervalJob registers fn to run every interval, first run immediately on
// Start when startImmediately is set.
func (s *Scheduler) NewIntervalJob(name string, fn TaskFunc, interval time.Duration, startImmediately bool) error {
	opts := []gocron.JobOption{
		gocron.WithName(name),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
	}
	if startImmediately {
		opts = append(opts, gocron.WithStartAt(gocron.WithStartImmediately()))
	}

	_, err := s.scheduler.NewJob(
		gocron.DurationJob(interval),
		gocron.NewTask(s.withRecover(name, fn)),
		opts...,
	)
	if err != nil {
		return fmt.Errorf("create job %s: %w", name, err)
	}

	s.logger.Info("job-registered",
		zap.String("job", name),
		zap.Duration("interval", interval),
		zap.Bool("start-immediately", startImmediately))
	return nil
}

func (s *Scheduler) withRecover(name string, fn TaskFunc) func(ctx context.Context) {
	return func(ctx context.Context) {
		defer func() {
			if r := recover(); r != nil {
				JobPanicsTotal.WithLabelValues(name).Inc()
				s.logger.Error("job-panic-recovered",
					zap.String("job", name),
					zap.Any("panic", r),
					zap.String("stacktrace", string(debug.Stack())))
			}
		}()

		start := time.Now()
		s.logger.Debug("job-started", zap.String("job", name))

		err := fn(ctx)
		JobDurationSeconds.WithLabelValues(name).Observe(time.Since(start).Seconds())
		if err != nil {
			JobRunsTotal.WithLabelValues(name, "error").Inc()
			s.logger.Warn("job-failed", zap.String("job", name), zap.Error(err))
			return
		}

		JobRunsTotal.WithLabelValues(name, "ok").Inc()
		s.logger.Debug("job-completed", zap.String("job", name), zap.Duration("duration", time.Since(start)))
	}
}
