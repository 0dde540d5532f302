// Package draw contains prize draw use cases.
package draw

import (
	"context"

	"github.com/google/uuid"

	"github.com/goalguard/backend/internal/application/adapter"
	domainerror "github.com/goalguard/backend/internal/domain/error"
)

// GetEntriesInput represents the input for fetching a user's draw entries.
type GetEntriesInput struct {
	UserID uuid.UUID
	DrawID uuid.UUID
}

// GetEntriesOutput represents the output of fetching a user's draw entries.
type GetEntriesOutput struct {
	TotalEntries   int
	TasksCompleted int
	Eligible       bool
	MinimumTasks   int
}

// GetEntriesUseCase reports how many entries a user currently holds for a
// draw and whether they meet its minimum task threshold.
type GetEntriesUseCase struct {
	drawRepo    adapter.DrawRepository
	eligibility *EligibilityUseCase
}

// NewGetEntriesUseCase creates a new GetEntriesUseCase instance.
func NewGetEntriesUseCase(drawRepo adapter.DrawRepository, eligibility *EligibilityUseCase) *GetEntriesUseCase {
	return &GetEntriesUseCase{
		drawRepo:    drawRepo,
		eligibility: eligibility,
	}
}

// Execute fetches the user's entries for the draw.
func (uc *GetEntriesUseCase) Execute(ctx context.Context, input GetEntriesInput) (*GetEntriesOutput, error) {
	draw, err := uc.drawRepo.FindByID(ctx, input.DrawID)
	if err != nil {
		return nil, domainerror.NewDrawError(
			domainerror.ErrCodeDrawNotFound,
			"draw not found",
			domainerror.ErrDrawNotFound,
		)
	}

	entrant, err := uc.eligibility.Entries(ctx, draw, input.UserID)
	if err != nil {
		return nil, err
	}

	return &GetEntriesOutput{
		TotalEntries:   entrant.TotalEntries,
		TasksCompleted: entrant.TasksCompleted,
		Eligible:       entrant.TasksCompleted >= draw.MinimumTasks,
		MinimumTasks:   draw.MinimumTasks,
	}, nil
}
