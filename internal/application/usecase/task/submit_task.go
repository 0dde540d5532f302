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

// SubmitTaskInput represents the input for submitting a task.
type SubmitTaskInput struct {
	UserID           uuid.UUID
	TaskID           uuid.UUID
	Answers          []entity.TaskAnswer
	TimeSpentMinutes int
}

// SubmitTaskOutput represents the output of submitting a task.
type SubmitTaskOutput struct {
	Completion *entity.TaskCompletion
}

// SubmitTaskUseCase records a user's answers for a started task. The
// submission is checked against the task's requirements and the completion's
// entry value is taken from the task's reward.
type SubmitTaskUseCase struct {
	taskRepo       adapter.TaskRepository
	completionRepo adapter.CompletionRepository
	clock          adapter.Clock
}

// NewSubmitTaskUseCase creates a new SubmitTaskUseCase instance.
func NewSubmitTaskUseCase(
	taskRepo adapter.TaskRepository,
	completionRepo adapter.CompletionRepository,
	clock adapter.Clock,
) *SubmitTaskUseCase {
	return &SubmitTaskUseCase{
		taskRepo:       taskRepo,
		completionRepo: completionRepo,
		clock:          clock,
	}
}

// Execute submits the task.
func (uc *SubmitTaskUseCase) Execute(ctx context.Context, input SubmitTaskInput) (*SubmitTaskOutput, error) {
	task, err := uc.taskRepo.FindByID(ctx, input.TaskID)
	if err != nil {
		return nil, domainerror.NewTaskError(
			domainerror.ErrCodeTaskNotFound,
			"task not found",
			domainerror.ErrTaskNotFound,
		)
	}

	completion, err := uc.completionRepo.FindByUserAndTask(ctx, input.UserID, input.TaskID)
	if err != nil {
		return nil, fmt.Errorf("failed to find completion: %w", err)
	}
	if completion == nil {
		return nil, domainerror.NewTaskError(
			domainerror.ErrCodeCompletionNotFound,
			"task was not started by this user",
			domainerror.ErrCompletionNotFound,
		)
	}

	if completion.Status != entity.CompletionStatusAssigned && completion.Status != entity.CompletionStatusInProgress {
		return nil, domainerror.NewTaskError(
			domainerror.ErrCodeTaskAlreadyCompleted,
			"task was already submitted",
			domainerror.ErrTaskAlreadyCompleted,
		)
	}

	if input.TimeSpentMinutes < task.Requirements.MinTimeMinutes {
		return nil, domainerror.NewTaskError(
			domainerror.ErrCodeRequirementsNotMet,
			fmt.Sprintf("task requires at least %d minutes", task.Requirements.MinTimeMinutes),
			domainerror.ErrRequirementsNotMet,
		)
	}

	if len(input.Answers) == 0 {
		return nil, domainerror.NewTaskError(
			domainerror.ErrCodeRequirementsNotMet,
			"at least one answer is required",
			domainerror.ErrRequirementsNotMet,
		)
	}

	now := uc.clock.Now()
	completion.Submit(input.Answers, input.TimeSpentMinutes, task.Reward.Entries, now)

	if err := uc.completionRepo.Update(ctx, completion); err != nil {
		return nil, fmt.Errorf("failed to save completion: %w", err)
	}

	task.RecordCompletion(input.TimeSpentMinutes)
	if err := uc.taskRepo.Update(ctx, task); err != nil {
		return nil, fmt.Errorf("failed to update task analytics: %w", err)
	}

	return &SubmitTaskOutput{Completion: completion}, nil
}
