package goal

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/goalguard/backend/internal/application/adapter"
	"github.com/goalguard/backend/internal/domain/entity"
	domainerror "github.com/goalguard/backend/internal/domain/error"
)

// ListTransactionsInput represents the input for listing ledger entries.
// GoalID narrows the listing to a single goal when set.
type ListTransactionsInput struct {
	UserID uuid.UUID
	GoalID *uuid.UUID
}

// ListTransactionsOutput represents the output of listing ledger entries.
type ListTransactionsOutput struct {
	Transactions []*entity.Transaction
}

// ListTransactionsUseCase handles listing a user's ledger entries, newest
// first.
type ListTransactionsUseCase struct {
	goalRepo adapter.GoalRepository
	txRepo   adapter.TransactionRepository
}

// NewListTransactionsUseCase creates a new ListTransactionsUseCase instance.
func NewListTransactionsUseCase(goalRepo adapter.GoalRepository, txRepo adapter.TransactionRepository) *ListTransactionsUseCase {
	return &ListTransactionsUseCase{
		goalRepo: goalRepo,
		txRepo:   txRepo,
	}
}

// Execute lists the transactions.
func (uc *ListTransactionsUseCase) Execute(ctx context.Context, input ListTransactionsInput) (*ListTransactionsOutput, error) {
	if input.GoalID == nil {
		transactions, err := uc.txRepo.FindByUserID(ctx, input.UserID)
		if err != nil {
			return nil, fmt.Errorf("failed to list transactions: %w", err)
		}
		return &ListTransactionsOutput{Transactions: transactions}, nil
	}

	goal, err := uc.goalRepo.FindByID(ctx, *input.GoalID)
	if err != nil {
		return nil, domainerror.NewGoalError(
			domainerror.ErrCodeGoalNotFound,
			"goal not found",
			domainerror.ErrGoalNotFound,
		)
	}
	if goal.UserID != input.UserID {
		return nil, domainerror.NewGoalError(
			domainerror.ErrCodeUnauthorizedGoalAccess,
			"goal does not belong to user",
			domainerror.ErrUnauthorizedGoalAccess,
		)
	}

	transactions, err := uc.txRepo.FindByGoalID(ctx, *input.GoalID)
	if err != nil {
		return nil, fmt.Errorf("failed to list goal transactions: %w", err)
	}
	return &ListTransactionsOutput{Transactions: transactions}, nil
}
