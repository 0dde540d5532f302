// Package persistence implements repository interfaces for database operations.
package persistence

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/goalguard/backend/internal/application/adapter"
	"github.com/goalguard/backend/internal/domain/entity"
	domainerror "github.com/goalguard/backend/internal/domain/error"
	"github.com/goalguard/backend/internal/integration/persistence/model"
)

// taskRepository implements the adapter.TaskRepository interface.
type taskRepository struct {
	db *gorm.DB
}

// NewTaskRepository creates a new task repository instance.
func NewTaskRepository(db *gorm.DB) adapter.TaskRepository {
	return &taskRepository{
		db: db,
	}
}

// Create creates a new ad task.
func (r *taskRepository) Create(ctx context.Context, task *entity.AdTask) error {
	taskModel := model.AdTaskFromEntity(task)
	result := r.db.WithContext(ctx).Create(taskModel)
	if result.Error != nil {
		return result.Error
	}
	return nil
}

// FindByID retrieves a task by its ID.
func (r *taskRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.AdTask, error) {
	var taskModel model.AdTaskModel
	result := r.db.WithContext(ctx).Where("id = ?", id).First(&taskModel)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, domainerror.ErrTaskNotFound
		}
		return nil, result.Error
	}
	return taskModel.ToEntity(), nil
}

// FindOpen retrieves active tasks inside their schedule window.
func (r *taskRepository) FindOpen(ctx context.Context, now time.Time) ([]*entity.AdTask, error) {
	var taskModels []model.AdTaskModel
	result := r.db.WithContext(ctx).
		Where("status = ? AND start_date <= ? AND end_date >= ?", string(entity.TaskStatusActive), now, now).
		Order("end_date ASC").
		Find(&taskModels)
	if result.Error != nil {
		return nil, result.Error
	}

	tasks := make([]*entity.AdTask, len(taskModels))
	for i, m := range taskModels {
		tasks[i] = m.ToEntity()
	}
	return tasks, nil
}

// Update persists changes to a task.
func (r *taskRepository) Update(ctx context.Context, task *entity.AdTask) error {
	taskModel := model.AdTaskFromEntity(task)
	result := r.db.WithContext(ctx).Save(taskModel)
	if result.Error != nil {
		return result.Error
	}
	return nil
}

// completionRepository implements the adapter.CompletionRepository interface.
type completionRepository struct {
	db *gorm.DB
}

// NewCompletionRepository creates a new completion repository instance.
func NewCompletionRepository(db *gorm.DB) adapter.CompletionRepository {
	return &completionRepository{
		db: db,
	}
}

// Create creates a new completion record. The unique (user, task) index
// turns a duplicate start into ErrTaskAlreadyCompleted.
func (r *completionRepository) Create(ctx context.Context, completion *entity.TaskCompletion) error {
	completionModel := model.TaskCompletionFromEntity(completion)
	result := r.db.WithContext(ctx).Create(completionModel)
	if result.Error != nil {
		if isUniqueViolation(result.Error) {
			return domainerror.ErrTaskAlreadyCompleted
		}
		return result.Error
	}
	return nil
}

// FindByID retrieves a completion by its ID.
func (r *completionRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.TaskCompletion, error) {
	var completionModel model.TaskCompletionModel
	result := r.db.WithContext(ctx).Where("id = ?", id).First(&completionModel)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, domainerror.ErrCompletionNotFound
		}
		return nil, result.Error
	}
	return completionModel.ToEntity(), nil
}

// FindByUserAndTask retrieves the completion for a (user, task) pair, or nil
// when none exists.
func (r *completionRepository) FindByUserAndTask(ctx context.Context, userID, taskID uuid.UUID) (*entity.TaskCompletion, error) {
	var completionModel model.TaskCompletionModel
	result := r.db.WithContext(ctx).
		Where("user_id = ? AND task_id = ?", userID, taskID).
		First(&completionModel)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, result.Error
	}
	return completionModel.ToEntity(), nil
}

// FindByUserID retrieves all completions for a user, newest first.
func (r *completionRepository) FindByUserID(ctx context.Context, userID uuid.UUID) ([]*entity.TaskCompletion, error) {
	var completionModels []model.TaskCompletionModel
	result := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("started_at DESC").
		Find(&completionModels)
	if result.Error != nil {
		return nil, result.Error
	}
	return toCompletionEntities(completionModels), nil
}

// FindApprovedInPeriod retrieves approved completions inside [start, end].
func (r *completionRepository) FindApprovedInPeriod(ctx context.Context, start, end time.Time) ([]*entity.TaskCompletion, error) {
	var completionModels []model.TaskCompletionModel
	result := r.db.WithContext(ctx).
		Where("status = ? AND completed_at >= ? AND completed_at <= ?", string(entity.CompletionStatusApproved), start, end).
		Order("completed_at ASC").
		Find(&completionModels)
	if result.Error != nil {
		return nil, result.Error
	}
	return toCompletionEntities(completionModels), nil
}

// Update persists changes to a completion.
func (r *completionRepository) Update(ctx context.Context, completion *entity.TaskCompletion) error {
	completionModel := model.TaskCompletionFromEntity(completion)
	result := r.db.WithContext(ctx).Save(completionModel)
	if result.Error != nil {
		return result.Error
	}
	return nil
}

func toCompletionEntities(models []model.TaskCompletionModel) []*entity.TaskCompletion {
	out := make([]*entity.TaskCompletion, len(models))
	for i, m := range models {
		out[i] = m.ToEntity()
	}
	return out
}

// isUniqueViolation matches the duplicate-key errors raised by postgres and
// by the sqlite driver used in tests.
func isUniqueViolation(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	msg := err.Error()
	return strings.Contains(msg, "duplicate key") || strings.Contains(msg, "UNIQUE constraint")
}
