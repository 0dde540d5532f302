// Package adapter defines interfaces that will be implemented in the integration layer.
package adapter

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/goalguard/backend/internal/domain/entity"
)

// TaskRepository defines the interface for ad task persistence.
type TaskRepository interface {
	// Create creates a new ad task.
	Create(ctx context.Context, task *entity.AdTask) error

	// FindByID retrieves a task by its ID.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.AdTask, error)

	// FindOpen retrieves tasks that are active and inside their schedule
	// window at the given time.
	FindOpen(ctx context.Context, now time.Time) ([]*entity.AdTask, error)

	// Update persists changes to a task (status, analytics).
	Update(ctx context.Context, task *entity.AdTask) error
}

// CompletionRepository defines the interface for task completion persistence.
type CompletionRepository interface {
	// Create creates a new completion record. Returns
	// ErrTaskAlreadyCompleted if one exists for the (user, task) pair.
	Create(ctx context.Context, completion *entity.TaskCompletion) error

	// FindByID retrieves a completion by its ID.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.TaskCompletion, error)

	// FindByUserAndTask retrieves the completion for a (user, task) pair,
	// or nil when none exists.
	FindByUserAndTask(ctx context.Context, userID, taskID uuid.UUID) (*entity.TaskCompletion, error)

	// FindByUserID retrieves all completions for a user, newest first.
	FindByUserID(ctx context.Context, userID uuid.UUID) ([]*entity.TaskCompletion, error)

	// FindApprovedInPeriod retrieves approved completions whose CompletedAt
	// falls inside [start, end]. This is the aggregator's read-only view.
	FindApprovedInPeriod(ctx context.Context, start, end time.Time) ([]*entity.TaskCompletion, error)

	// Update persists changes to a completion.
	Update(ctx context.Context, completion *entity.TaskCompletion) error
}
