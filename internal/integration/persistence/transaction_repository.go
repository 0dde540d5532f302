// Package persistence implements repository interfaces for database operations.
package persistence

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/goalguard/backend/internal/application/adapter"
	"github.com/goalguard/backend/internal/domain/entity"
	"github.com/goalguard/backend/internal/integration/persistence/model"
)

// transactionRepository implements the adapter.TransactionRepository interface.
type transactionRepository struct {
	db *gorm.DB
}

// NewTransactionRepository creates a new transaction repository instance.
func NewTransactionRepository(db *gorm.DB) adapter.TransactionRepository {
	return &transactionRepository{
		db: db,
	}
}

// Create appends a ledger entry.
func (r *transactionRepository) Create(ctx context.Context, tx *entity.Transaction) error {
	txModel := model.TransactionFromEntity(tx)
	result := r.db.WithContext(ctx).Create(txModel)
	if result.Error != nil {
		return result.Error
	}
	return nil
}

// FindByGoalID retrieves all entries for a goal, newest first.
func (r *transactionRepository) FindByGoalID(ctx context.Context, goalID uuid.UUID) ([]*entity.Transaction, error) {
	var txModels []model.TransactionModel
	result := r.db.WithContext(ctx).
		Where("goal_id = ?", goalID).
		Order("created_at DESC").
		Find(&txModels)
	if result.Error != nil {
		return nil, result.Error
	}
	return toTransactionEntities(txModels), nil
}

// FindByUserID retrieves all entries for a user, newest first.
func (r *transactionRepository) FindByUserID(ctx context.Context, userID uuid.UUID) ([]*entity.Transaction, error) {
	var txModels []model.TransactionModel
	result := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&txModels)
	if result.Error != nil {
		return nil, result.Error
	}
	return toTransactionEntities(txModels), nil
}

func toTransactionEntities(models []model.TransactionModel) []*entity.Transaction {
	out := make([]*entity.Transaction, len(models))
	for i, m := range models {
		out[i] = m.ToEntity()
	}
	return out
}
