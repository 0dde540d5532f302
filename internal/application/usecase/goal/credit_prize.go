// Package goal contains savings goal use cases.
package goal

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/goalguard/backend/internal/application/adapter"
	"github.com/goalguard/backend/internal/domain/entity"
	domainerror "github.com/goalguard/backend/internal/domain/error"
)

// CreditPrizeInput represents the input for crediting a draw prize.
type CreditPrizeInput struct {
	UserID        uuid.UUID
	Amount        decimal.Decimal
	DrawName      string
	PoolAccountID string
}

// CreditPrizeOutput represents the output of crediting a draw prize.
type CreditPrizeOutput struct {
	Transaction *entity.Transaction
}

// CreditPrizeUseCase pays a draw prize into the winner's primary account and
// records the ledger entry. Draw prizes are not tied to a goal, so the entry
// carries no goal id. The winner's aggregate stats are updated here so the
// draw engine never touches user rows directly.
type CreditPrizeUseCase struct {
	userRepo adapter.UserRepository
	txRepo   adapter.TransactionRepository
	gateway  adapter.PaymentGateway
	clock    adapter.Clock
}

// NewCreditPrizeUseCase creates a new CreditPrizeUseCase instance.
func NewCreditPrizeUseCase(
	userRepo adapter.UserRepository,
	txRepo adapter.TransactionRepository,
	gateway adapter.PaymentGateway,
	clock adapter.Clock,
) *CreditPrizeUseCase {
	return &CreditPrizeUseCase{
		userRepo: userRepo,
		txRepo:   txRepo,
		gateway:  gateway,
		clock:    clock,
	}
}

// Execute credits the prize.
func (uc *CreditPrizeUseCase) Execute(ctx context.Context, input CreditPrizeInput) (*CreditPrizeOutput, error) {
	if !input.Amount.IsPositive() {
		return nil, domainerror.NewGoalError(
			domainerror.ErrCodeInvalidAmount,
			"prize amount must be greater than zero",
			domainerror.ErrInvalidAmount,
		)
	}

	user, err := uc.userRepo.FindByID(ctx, input.UserID)
	if err != nil {
		return nil, fmt.Errorf("failed to find user: %w", err)
	}

	result, err := uc.gateway.Transfer(ctx, adapter.TransferRequest{
		FromAccountID:  input.PoolAccountID,
		ToAccountID:    user.PrimaryAccountID,
		Amount:         input.Amount,
		Reference:      fmt.Sprintf("prize: %s", input.DrawName),
		IdempotencyKey: uuid.NewString(),
	})
	if err != nil {
		return nil, err
	}

	now := uc.clock.Now()
	tx := entity.NewTransaction(
		input.UserID,
		nil,
		entity.TransactionTypePrize,
		input.Amount,
		fmt.Sprintf("Prize win: %s", input.DrawName),
		result.TransferID,
		now,
	)

	if err := uc.txRepo.Create(ctx, tx); err != nil {
		return nil, fmt.Errorf("failed to record prize transaction: %w", err)
	}

	user.RecordPrize(input.Amount)
	if err := uc.userRepo.Update(ctx, user); err != nil {
		return nil, fmt.Errorf("failed to update user stats: %w", err)
	}

	return &CreditPrizeOutput{Transaction: tx}, nil
}
