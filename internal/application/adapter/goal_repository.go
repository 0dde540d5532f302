// Package adapter defines interfaces that will be implemented in the integration layer.
package adapter

import (
	"context"

	"github.com/google/uuid"

	"github.com/goalguard/backend/internal/domain/entity"
)

// GoalRepository defines the interface for savings goal persistence.
type GoalRepository interface {
	// Create creates a new goal in the store.
	Create(ctx context.Context, goal *entity.SavingsGoal) error

	// FindByID retrieves a goal by its ID.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.SavingsGoal, error)

	// FindByUserID retrieves all goals for a given user, newest first.
	FindByUserID(ctx context.Context, userID uuid.UUID) ([]*entity.SavingsGoal, error)

	// SaveWithTransactions persists a balance change and its audit entries as
	// one atomic unit. The write is conditional on the goal's version as read:
	// if another writer got there first it returns ErrConcurrentUpdate and
	// nothing is written.
	SaveWithTransactions(ctx context.Context, goal *entity.SavingsGoal, transactions []*entity.Transaction) error

	// Update persists non-balance changes to a goal (status, plan).
	Update(ctx context.Context, goal *entity.SavingsGoal) error
}
