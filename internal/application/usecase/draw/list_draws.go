// Package draw contains prize draw use cases.
package draw

import (
	"context"
	"fmt"

	"github.com/goalguard/backend/internal/application/adapter"
	"github.com/goalguard/backend/internal/domain/entity"
)

// ListDrawsInput represents the input for listing draws.
type ListDrawsInput struct {
	// PastLimit caps how many completed draws come back. Zero uses the
	// default of 10.
	PastLimit int
}

// ListDrawsOutput represents the output of listing draws.
type ListDrawsOutput struct {
	Current []*entity.Draw
	Past    []*entity.Draw
}

// ListDrawsUseCase lists upcoming draws and recent completed draws with
// their winner lists.
type ListDrawsUseCase struct {
	drawRepo adapter.DrawRepository
	clock    adapter.Clock
}

// NewListDrawsUseCase creates a new ListDrawsUseCase instance.
func NewListDrawsUseCase(drawRepo adapter.DrawRepository, clock adapter.Clock) *ListDrawsUseCase {
	return &ListDrawsUseCase{
		drawRepo: drawRepo,
		clock:    clock,
	}
}

// Execute lists the draws.
func (uc *ListDrawsUseCase) Execute(ctx context.Context, input ListDrawsInput) (*ListDrawsOutput, error) {
	current, err := uc.drawRepo.FindCurrent(ctx, uc.clock.Now())
	if err != nil {
		return nil, fmt.Errorf("failed to list current draws: %w", err)
	}

	limit := input.PastLimit
	if limit <= 0 {
		limit = 10
	}
	past, err := uc.drawRepo.FindCompleted(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list completed draws: %w", err)
	}

	return &ListDrawsOutput{
		Current: current,
		Past:    past,
	}, nil
}
