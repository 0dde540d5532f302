// Package task contains ad task use cases.
package task

import (
	"context"
	"fmt"

	"github.com/goalguard/backend/internal/application/adapter"
	"github.com/goalguard/backend/internal/domain/entity"
	domainerror "github.com/goalguard/backend/internal/domain/error"
)

// CreateTaskInput represents the input for creating an ad task.
type CreateTaskInput struct {
	Title        string
	Description  string
	SponsorName  string
	Type         entity.TaskType
	Requirements entity.TaskRequirements
	Reward       entity.TaskReward
	Schedule     entity.TaskSchedule

	// Activate publishes the task immediately instead of leaving it draft.
	Activate bool
}

// CreateTaskOutput represents the output of creating an ad task.
type CreateTaskOutput struct {
	Task *entity.AdTask
}

// CreateTaskUseCase handles admin creation of sponsored tasks.
type CreateTaskUseCase struct {
	taskRepo adapter.TaskRepository
}

// NewCreateTaskUseCase creates a new CreateTaskUseCase instance.
func NewCreateTaskUseCase(taskRepo adapter.TaskRepository) *CreateTaskUseCase {
	return &CreateTaskUseCase{taskRepo: taskRepo}
}

// Execute creates the task.
func (uc *CreateTaskUseCase) Execute(ctx context.Context, input CreateTaskInput) (*CreateTaskOutput, error) {
	if input.Title == "" || input.SponsorName == "" {
		return nil, domainerror.NewTaskError(
			domainerror.ErrCodeMissingTaskFields,
			"title and sponsor name are required",
			nil,
		)
	}

	if !input.Schedule.EndDate.After(input.Schedule.StartDate) {
		return nil, domainerror.NewTaskError(
			domainerror.ErrCodeMissingTaskFields,
			"schedule end date must be after start date",
			nil,
		)
	}

	task := entity.NewAdTask(
		input.Title,
		input.Description,
		input.SponsorName,
		input.Type,
		input.Requirements,
		input.Reward,
		input.Schedule,
	)
	if input.Activate {
		task.Status = entity.TaskStatusActive
	}

	if err := uc.taskRepo.Create(ctx, task); err != nil {
		return nil, fmt.Errorf("failed to create task: %w", err)
	}

	return &CreateTaskOutput{Task: task}, nil
}
