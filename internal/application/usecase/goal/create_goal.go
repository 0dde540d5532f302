// Package goal contains savings goal use cases.
package goal

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/goalguard/backend/internal/application/adapter"
	"github.com/goalguard/backend/internal/domain/entity"
	domainerror "github.com/goalguard/backend/internal/domain/error"
)

// CreateGoalInput represents the input for goal creation.
type CreateGoalInput struct {
	UserID       uuid.UUID
	Name         string
	TargetAmount decimal.Decimal
	Category     entity.GoalCategory
	EndDate      time.Time
	Plan         entity.ContributionPlan
}

// CreateGoalOutput represents the output of goal creation.
type CreateGoalOutput struct {
	Goal *entity.SavingsGoal
}

// CreateGoalUseCase handles goal creation. Creation is a two-phase sequence:
// the gateway sub-account is opened first and the goal record is persisted
// only after that succeeds. A persist failure leaves an orphaned sub-account,
// which is logged for reconciliation rather than silently dropped.
type CreateGoalUseCase struct {
	goalRepo adapter.GoalRepository
	userRepo adapter.UserRepository
	gateway  adapter.PaymentGateway
	clock    adapter.Clock
	logger   *slog.Logger
}

// NewCreateGoalUseCase creates a new CreateGoalUseCase instance.
func NewCreateGoalUseCase(
	goalRepo adapter.GoalRepository,
	userRepo adapter.UserRepository,
	gateway adapter.PaymentGateway,
	clock adapter.Clock,
	logger *slog.Logger,
) *CreateGoalUseCase {
	return &CreateGoalUseCase{
		goalRepo: goalRepo,
		userRepo: userRepo,
		gateway:  gateway,
		clock:    clock,
		logger:   logger,
	}
}

// Execute performs the goal creation.
func (uc *CreateGoalUseCase) Execute(ctx context.Context, input CreateGoalInput) (*CreateGoalOutput, error) {
	now := uc.clock.Now()

	// Validate target amount
	if !input.TargetAmount.IsPositive() {
		return nil, domainerror.NewGoalError(
			domainerror.ErrCodeInvalidTargetAmount,
			"target amount must be greater than zero",
			domainerror.ErrInvalidTargetAmount,
		)
	}

	// Validate end date
	if !input.EndDate.After(now) {
		return nil, domainerror.NewGoalError(
			domainerror.ErrCodeInvalidEndDate,
			"end date must be in the future",
			domainerror.ErrInvalidEndDate,
		)
	}

	if input.Name == "" {
		return nil, domainerror.NewGoalError(
			domainerror.ErrCodeMissingGoalFields,
			"goal name is required",
			nil,
		)
	}

	user, err := uc.userRepo.FindByID(ctx, input.UserID)
	if err != nil {
		return nil, fmt.Errorf("failed to find user: %w", err)
	}

	// Phase one: open the segregated sub-account. If this fails the goal is
	// not persisted and no partial state exists.
	account, err := uc.gateway.CreateSubAccount(ctx, user.ModulrCustomerID, input.Name)
	if err != nil {
		return nil, err
	}

	goal := entity.NewSavingsGoal(
		input.UserID,
		input.Name,
		input.TargetAmount,
		input.Category,
		input.EndDate,
		input.Plan,
		account.AccountID,
		now,
	)

	// Phase two: persist the goal. A failure here orphans the sub-account,
	// so record it for reconciliation.
	if err := uc.goalRepo.Create(ctx, goal); err != nil {
		uc.logger.Error("goal persist failed after sub-account creation, orphaned account",
			"user_id", input.UserID,
			"account_id", account.AccountID,
			"error", err,
		)
		return nil, fmt.Errorf("failed to create goal: %w", err)
	}

	return &CreateGoalOutput{
		Goal: goal,
	}, nil
}
