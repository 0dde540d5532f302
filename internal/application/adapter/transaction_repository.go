// Package adapter defines interfaces that will be implemented in the integration layer.
package adapter

import (
	"context"

	"github.com/google/uuid"

	"github.com/goalguard/backend/internal/domain/entity"
)

// TransactionRepository defines the interface for ledger entry persistence.
// Transactions are immutable: there is no update or delete.
type TransactionRepository interface {
	// Create appends a ledger entry.
	Create(ctx context.Context, transaction *entity.Transaction) error

	// FindByGoalID retrieves all entries for a goal, newest first.
	FindByGoalID(ctx context.Context, goalID uuid.UUID) ([]*entity.Transaction, error)

	// FindByUserID retrieves all entries for a user, newest first.
	FindByUserID(ctx context.Context, userID uuid.UUID) ([]*entity.Transaction, error)
}
