// Package persistence implements repository interfaces for database operations.
package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/goalguard/backend/internal/application/adapter"
	"github.com/goalguard/backend/internal/domain/entity"
	domainerror "github.com/goalguard/backend/internal/domain/error"
	"github.com/goalguard/backend/internal/integration/persistence/model"
)

// goalRepository implements the adapter.GoalRepository interface.
type goalRepository struct {
	db *gorm.DB
}

// NewGoalRepository creates a new goal repository instance.
func NewGoalRepository(db *gorm.DB) adapter.GoalRepository {
	return &goalRepository{
		db: db,
	}
}

// Create creates a new goal in the database.
func (r *goalRepository) Create(ctx context.Context, goal *entity.SavingsGoal) error {
	goalModel := model.SavingsGoalFromEntity(goal)
	result := r.db.WithContext(ctx).Create(goalModel)
	if result.Error != nil {
		return result.Error
	}
	return nil
}

// FindByID retrieves a goal by its ID.
func (r *goalRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.SavingsGoal, error) {
	var goalModel model.SavingsGoalModel
	result := r.db.WithContext(ctx).Where("id = ?", id).First(&goalModel)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, domainerror.ErrGoalNotFound
		}
		return nil, result.Error
	}
	return goalModel.ToEntity(), nil
}

// FindByUserID retrieves all goals for a given user.
func (r *goalRepository) FindByUserID(ctx context.Context, userID uuid.UUID) ([]*entity.SavingsGoal, error) {
	var goalModels []model.SavingsGoalModel
	result := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&goalModels)
	if result.Error != nil {
		return nil, result.Error
	}

	goals := make([]*entity.SavingsGoal, len(goalModels))
	for i, gm := range goalModels {
		goals[i] = gm.ToEntity()
	}
	return goals, nil
}

// SaveWithTransactions persists a balance change and its ledger entries in a
// single database transaction. The goal row update is conditional on the
// version the caller read; zero affected rows means another writer won and
// the whole unit rolls back with ErrConcurrentUpdate.
func (r *goalRepository) SaveWithTransactions(ctx context.Context, goal *entity.SavingsGoal, transactions []*entity.Transaction) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		goalModel := model.SavingsGoalFromEntity(goal)
		goalModel.Version = goal.Version + 1

		result := tx.Model(&model.SavingsGoalModel{}).
			Where("id = ? AND version = ?", goal.ID, goal.Version).
			Updates(map[string]interface{}{
				"current_amount":      goalModel.CurrentAmount,
				"status":              goalModel.Status,
				"progress_percentage": goalModel.ProgressPercentage,
				"days_remaining":      goalModel.DaysRemaining,
				"monthly_target":      goalModel.MonthlyTarget,
				"version":             goalModel.Version,
				"updated_at":          goalModel.UpdatedAt,
			})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return domainerror.ErrConcurrentUpdate
		}

		for _, t := range transactions {
			if err := tx.Create(model.TransactionFromEntity(t)).Error; err != nil {
				return err
			}
		}

		goal.Version = goalModel.Version
		return nil
	})
}

// Update updates non-balance fields of an existing goal.
func (r *goalRepository) Update(ctx context.Context, goal *entity.SavingsGoal) error {
	goalModel := model.SavingsGoalFromEntity(goal)
	result := r.db.WithContext(ctx).Save(goalModel)
	if result.Error != nil {
		return result.Error
	}
	return nil
}
