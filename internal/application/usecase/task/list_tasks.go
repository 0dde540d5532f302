// Package task contains ad task use cases.
package task

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/goalguard/backend/internal/application/adapter"
	"github.com/goalguard/backend/internal/domain/entity"
)

// ListTasksInput represents the input for listing available tasks.
type ListTasksInput struct {
	UserID uuid.UUID
}

// ListTasksOutput represents the output of listing available tasks.
type ListTasksOutput struct {
	Tasks []*entity.AdTask
}

// ListTasksUseCase lists tasks open for completion, excluding tasks the user
// has already started or submitted.
type ListTasksUseCase struct {
	taskRepo       adapter.TaskRepository
	completionRepo adapter.CompletionRepository
	clock          adapter.Clock
}

// NewListTasksUseCase creates a new ListTasksUseCase instance.
func NewListTasksUseCase(
	taskRepo adapter.TaskRepository,
	completionRepo adapter.CompletionRepository,
	clock adapter.Clock,
) *ListTasksUseCase {
	return &ListTasksUseCase{
		taskRepo:       taskRepo,
		completionRepo: completionRepo,
		clock:          clock,
	}
}

// Execute lists the available tasks.
func (uc *ListTasksUseCase) Execute(ctx context.Context, input ListTasksInput) (*ListTasksOutput, error) {
	open, err := uc.taskRepo.FindOpen(ctx, uc.clock.Now())
	if err != nil {
		return nil, fmt.Errorf("failed to list open tasks: %w", err)
	}

	completions, err := uc.completionRepo.FindByUserID(ctx, input.UserID)
	if err != nil {
		return nil, fmt.Errorf("failed to list user completions: %w", err)
	}

	taken := make(map[uuid.UUID]bool, len(completions))
	for _, c := range completions {
		taken[c.TaskID] = true
	}

	available := make([]*entity.AdTask, 0, len(open))
	for _, t := range open {
		if !taken[t.ID] {
			available = append(available, t)
		}
	}

	return &ListTasksOutput{Tasks: available}, nil
}
