// Package task contains ad task use cases.
package task

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/goalguard/backend/internal/application/adapter"
	"github.com/goalguard/backend/internal/domain/entity"
)

// ListUserTasksInput represents the input for listing a user's completions.
type ListUserTasksInput struct {
	UserID uuid.UUID
}

// ListUserTasksOutput represents the output of listing a user's completions.
type ListUserTasksOutput struct {
	Completions []*entity.TaskCompletion
}

// ListUserTasksUseCase lists every completion record for a user, newest
// first, across all statuses.
type ListUserTasksUseCase struct {
	completionRepo adapter.CompletionRepository
}

// NewListUserTasksUseCase creates a new ListUserTasksUseCase instance.
func NewListUserTasksUseCase(completionRepo adapter.CompletionRepository) *ListUserTasksUseCase {
	return &ListUserTasksUseCase{completionRepo: completionRepo}
}

// Execute lists the user's completions.
func (uc *ListUserTasksUseCase) Execute(ctx context.Context, input ListUserTasksInput) (*ListUserTasksOutput, error) {
	completions, err := uc.completionRepo.FindByUserID(ctx, input.UserID)
	if err != nil {
		return nil, fmt.Errorf("failed to list completions: %w", err)
	}

	return &ListUserTasksOutput{Completions: completions}, nil
}
