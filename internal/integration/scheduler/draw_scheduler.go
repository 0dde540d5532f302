// Package scheduler runs the periodic prize draw sweep.
package scheduler

import (
	"context"
	"log/slog"
	"time"

	"github.com/goalguard/backend/internal/application/usecase/draw"
)

// Scheduler ticks on a fixed interval and hands every due draw to the
// use case layer. Overlapping ticks and multiple instances are safe: the
// draw claim decides who actually executes.
type Scheduler struct {
	runner       *draw.RunDueDrawsUseCase
	tickInterval time.Duration
}

// Config holds configuration for the draw scheduler.
type Config struct {
	TickInterval time.Duration
}

// DefaultConfig returns the default scheduler configuration.
func DefaultConfig() Config {
	return Config{
		TickInterval: time.Minute,
	}
}

// NewScheduler creates a new draw scheduler.
func NewScheduler(runner *draw.RunDueDrawsUseCase, config Config) *Scheduler {
	return &Scheduler{
		runner:       runner,
		tickInterval: config.TickInterval,
	}
}

// Start begins the scheduler loop. It blocks until the context is cancelled.
func (s *Scheduler) Start(ctx context.Context) {
	slog.Info("Draw scheduler started", "tick_interval", s.tickInterval)

	ticker := time.NewTicker(s.tickInterval)
	defer ticker.Stop()

	// Sweep immediately on start, then on ticker
	s.sweep(ctx)

	for {
		select {
		case <-ctx.Done():
			slog.Info("Draw scheduler shutting down")
			return
		case <-ticker.C:
			s.sweep(ctx)
		}
	}
}

// sweep runs one pass over the due draws.
func (s *Scheduler) sweep(ctx context.Context) {
	out, err := s.runner.Execute(ctx)
	if err != nil {
		slog.Error("Draw sweep failed", "error", err)
		return
	}

	if out.Due > 0 {
		slog.Info("Draw sweep finished",
			"due", out.Due,
			"executed", out.Executed,
			"skipped", out.Skipped,
			"failed", out.Failed,
		)
	}
}

// SweepNow runs a single sweep immediately (useful for testing).
func (s *Scheduler) SweepNow(ctx context.Context) {
	s.sweep(ctx)
}
