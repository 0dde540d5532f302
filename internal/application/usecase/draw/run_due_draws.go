// Package draw contains prize draw use cases.
package draw

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/goalguard/backend/internal/application/adapter"
	domainerror "github.com/goalguard/backend/internal/domain/error"
)

// RunDueDrawsOutput summarizes one scheduler sweep.
type RunDueDrawsOutput struct {
	Due      int
	Executed int
	Skipped  int
	Failed   int
}

// RunDueDrawsUseCase finds every due draw and executes each in turn. A draw
// claimed by a concurrent run counts as skipped, not failed; duplicate and
// overlapping schedules are therefore harmless.
type RunDueDrawsUseCase struct {
	drawRepo adapter.DrawRepository
	executor *ExecuteDrawUseCase
	clock    adapter.Clock
	logger   *slog.Logger
}

// NewRunDueDrawsUseCase creates a new RunDueDrawsUseCase instance.
func NewRunDueDrawsUseCase(
	drawRepo adapter.DrawRepository,
	executor *ExecuteDrawUseCase,
	clock adapter.Clock,
	logger *slog.Logger,
) *RunDueDrawsUseCase {
	return &RunDueDrawsUseCase{
		drawRepo: drawRepo,
		executor: executor,
		clock:    clock,
		logger:   logger,
	}
}

// Execute runs one sweep over the due draws.
func (uc *RunDueDrawsUseCase) Execute(ctx context.Context) (*RunDueDrawsOutput, error) {
	due, err := uc.drawRepo.FindDue(ctx, uc.clock.Now())
	if err != nil {
		return nil, fmt.Errorf("failed to list due draws: %w", err)
	}

	out := &RunDueDrawsOutput{Due: len(due)}
	for _, d := range due {
		_, err := uc.executor.Execute(ctx, ExecuteDrawInput{DrawID: d.ID})
		switch {
		case err == nil:
			out.Executed++
		case errors.Is(err, domainerror.ErrDrawAlreadyClaimed):
			out.Skipped++
		default:
			out.Failed++
			uc.logger.Error("draw execution failed", "draw_id", d.ID, "draw_name", d.Name, "error", err)
		}
	}

	return out, nil
}
