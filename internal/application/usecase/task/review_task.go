// Package task contains ad task use cases.
package task

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/goalguard/backend/internal/application/adapter"
	"github.com/goalguard/backend/internal/domain/entity"
	domainerror "github.com/goalguard/backend/internal/domain/error"
)

// ReviewTaskInput represents the input for reviewing a submitted completion.
type ReviewTaskInput struct {
	CompletionID uuid.UUID
	Approve      bool
}

// ReviewTaskOutput represents the output of reviewing a completion.
type ReviewTaskOutput struct {
	Completion *entity.TaskCompletion
}

// ReviewTaskUseCase approves or rejects a submitted completion. Only
// approved completions count toward draw eligibility, so this is the gate
// between task answers and prize entries.
type ReviewTaskUseCase struct {
	completionRepo adapter.CompletionRepository
	userRepo       adapter.UserRepository
	clock          adapter.Clock
}

// NewReviewTaskUseCase creates a new ReviewTaskUseCase instance.
func NewReviewTaskUseCase(
	completionRepo adapter.CompletionRepository,
	userRepo adapter.UserRepository,
	clock adapter.Clock,
) *ReviewTaskUseCase {
	return &ReviewTaskUseCase{
		completionRepo: completionRepo,
		userRepo:       userRepo,
		clock:          clock,
	}
}

// Execute reviews the completion.
func (uc *ReviewTaskUseCase) Execute(ctx context.Context, input ReviewTaskInput) (*ReviewTaskOutput, error) {
	completion, err := uc.completionRepo.FindByID(ctx, input.CompletionID)
	if err != nil {
		return nil, domainerror.NewTaskError(
			domainerror.ErrCodeCompletionNotFound,
			"completion not found",
			domainerror.ErrCompletionNotFound,
		)
	}

	if completion.Status != entity.CompletionStatusCompleted {
		return nil, domainerror.NewTaskError(
			domainerror.ErrCodeInvalidCompletionState,
			"completion is not awaiting review",
			domainerror.ErrInvalidCompletionState,
		)
	}

	now := uc.clock.Now()
	if input.Approve {
		completion.Approve(now)
	} else {
		completion.Reject(now)
	}

	if err := uc.completionRepo.Update(ctx, completion); err != nil {
		return nil, fmt.Errorf("failed to save completion: %w", err)
	}

	if input.Approve {
		user, err := uc.userRepo.FindByID(ctx, completion.UserID)
		if err != nil {
			return nil, fmt.Errorf("failed to find user: %w", err)
		}
		user.RecordTaskCompletion()
		if err := uc.userRepo.Update(ctx, user); err != nil {
			return nil, fmt.Errorf("failed to update user stats: %w", err)
		}
	}

	return &ReviewTaskOutput{Completion: completion}, nil
}
