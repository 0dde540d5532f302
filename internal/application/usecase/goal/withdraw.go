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
	"github.com/goalguard/backend/internal/domain/valueobject"
)

// WithdrawInput represents the input for a goal withdrawal.
type WithdrawInput struct {
	UserID      uuid.UUID
	GoalID      uuid.UUID
	Amount      decimal.Decimal
	IsEmergency bool
}

// WithdrawOutput represents the output of a goal withdrawal.
type WithdrawOutput struct {
	Goal *entity.SavingsGoal

	// NetAmount is what the user actually receives. Fee is zero unless the
	// goal was locked and the withdrawal was an emergency one.
	NetAmount    decimal.Decimal
	Fee          decimal.Decimal
	Transactions []*entity.Transaction
}

// WithdrawUseCase handles withdrawals from a goal's sub-account. Inside the
// lock window only emergency withdrawals pass, subject to a tier fee. The fee
// is deducted from the withdrawn amount, so the balance drops by the gross
// amount while the user receives net.
type WithdrawUseCase struct {
	goalRepo adapter.GoalRepository
	userRepo adapter.UserRepository
	gateway  adapter.PaymentGateway
	clock    adapter.Clock
}

// NewWithdrawUseCase creates a new WithdrawUseCase instance.
func NewWithdrawUseCase(
	goalRepo adapter.GoalRepository,
	userRepo adapter.UserRepository,
	gateway adapter.PaymentGateway,
	clock adapter.Clock,
) *WithdrawUseCase {
	return &WithdrawUseCase{
		goalRepo: goalRepo,
		userRepo: userRepo,
		gateway:  gateway,
		clock:    clock,
	}
}

// Execute performs the withdrawal.
func (uc *WithdrawUseCase) Execute(ctx context.Context, input WithdrawInput) (*WithdrawOutput, error) {
	if !input.Amount.IsPositive() {
		return nil, domainerror.NewGoalError(
			domainerror.ErrCodeInvalidAmount,
			"withdrawal amount must be greater than zero",
			domainerror.ErrInvalidAmount,
		)
	}

	goal, err := uc.goalRepo.FindByID(ctx, input.GoalID)
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

	if goal.Status != entity.GoalStatusActive && goal.Status != entity.GoalStatusCompleted {
		return nil, domainerror.NewGoalError(
			domainerror.ErrCodeGoalNotActive,
			"withdrawals require an active or completed goal",
			domainerror.ErrGoalNotActive,
		)
	}

	if input.Amount.GreaterThan(goal.CurrentAmount) {
		return nil, domainerror.NewGoalError(
			domainerror.ErrCodeInsufficientFunds,
			"withdrawal amount exceeds goal balance",
			domainerror.ErrInsufficientFunds,
		)
	}

	now := uc.clock.Now()
	locked := goal.IsLocked(now)

	if locked && !input.IsEmergency {
		return nil, domainerror.NewGoalError(
			domainerror.ErrCodeGoalLocked,
			fmt.Sprintf("goal is locked for %d more days", goal.DaysUntilWithdrawal(now)),
			domainerror.ErrGoalLocked,
		)
	}

	user, err := uc.userRepo.FindByID(ctx, input.UserID)
	if err != nil {
		return nil, fmt.Errorf("failed to find user: %w", err)
	}

	fee := decimal.Zero
	if locked {
		fee = valueobject.EarlyWithdrawalFee(input.Amount, string(user.Tier))
	}
	net := input.Amount.Sub(fee)

	// Gateway transfer of the net amount precedes any balance mutation.
	result, err := uc.gateway.Transfer(ctx, adapter.TransferRequest{
		FromAccountID:  goal.AccountID,
		ToAccountID:    user.PrimaryAccountID,
		Amount:         net,
		Reference:      fmt.Sprintf("withdrawal from %s", goal.Name),
		IdempotencyKey: uuid.NewString(),
	})
	if err != nil {
		return nil, err
	}

	// The balance drops by the gross amount, the fee being retained out of
	// the withdrawn sum.
	goal.ApplyWithdrawal(input.Amount, now)

	transactions := []*entity.Transaction{
		entity.NewTransaction(
			input.UserID,
			&goal.ID,
			entity.TransactionTypeWithdrawal,
			net,
			fmt.Sprintf("Withdrawal from %s", goal.Name),
			result.TransferID,
			now,
		),
	}
	if fee.IsPositive() {
		feeTx := entity.NewTransaction(
			input.UserID,
			&goal.ID,
			entity.TransactionTypeFee,
			fee,
			fmt.Sprintf("Early withdrawal fee (%s tier)", user.Tier),
			result.TransferID,
			now,
		)
		feeTx.IsEmergency = true
		transactions[0].IsEmergency = true
		transactions = append(transactions, feeTx)
	}

	if err := uc.goalRepo.SaveWithTransactions(ctx, goal, transactions); err != nil {
		return nil, err
	}

	return &WithdrawOutput{
		Goal:         goal,
		NetAmount:    net,
		Fee:          fee,
		Transactions: transactions,
	}, nil
}
