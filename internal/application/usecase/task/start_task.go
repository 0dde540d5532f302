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

// StartTaskInput represents the input for starting a task.
type StartTaskInput struct {
	UserID uuid.UUID
	TaskID uuid.UUID
}

// StartTaskOutput represents the output of starting a task.
type StartTaskOutput struct {
	Completion *entity.TaskCompletion
}

// StartTaskUseCase assigns a task to a user by creating the completion
// record. The unique (user, task) constraint on the store prevents a second
// assignment for the same pair.
type StartTaskUseCase struct {
	taskRepo       adapter.TaskRepository
	completionRepo adapter.CompletionRepository
	clock          adapter.Clock
}

// NewStartTaskUseCase creates a new StartTaskUseCase instance.
func NewStartTaskUseCase(
	taskRepo adapter.TaskRepository,
	completionRepo adapter.CompletionRepository,
	clock adapter.Clock,
) *StartTaskUseCase {
	return &StartTaskUseCase{
		taskRepo:       taskRepo,
		completionRepo: completionRepo,
		clock:          clock,
	}
}

// Execute starts the task for the user.
func (uc *StartTaskUseCase) Execute(ctx context.Context, input StartTaskInput) (*StartTaskOutput, error) {
	task, err := uc.taskRepo.FindByID(ctx, input.TaskID)
	if err != nil {
		return nil, domainerror.NewTaskError(
			domainerror.ErrCodeTaskNotFound,
			"task not found",
			domainerror.ErrTaskNotFound,
		)
	}

	now := uc.clock.Now()
	if !task.IsOpen(now) {
		return nil, domainerror.NewTaskError(
			domainerror.ErrCodeTaskNotOpen,
			"task is not open for completion",
			domainerror.ErrTaskNotOpen,
		)
	}

	existing, err := uc.completionRepo.FindByUserAndTask(ctx, input.UserID, input.TaskID)
	if err != nil {
		return nil, fmt.Errorf("failed to check existing completion: %w", err)
	}
	if existing != nil {
		return nil, domainerror.NewTaskError(
			domainerror.ErrCodeTaskAlreadyCompleted,
			"task was already started by this user",
			domainerror.ErrTaskAlreadyCompleted,
		)
	}

	completion := entity.NewTaskCompletion(input.UserID, input.TaskID, now)
	if err := uc.completionRepo.Create(ctx, completion); err != nil {
		return nil, err
	}

	return &StartTaskOutput{Completion: completion}, nil
}
