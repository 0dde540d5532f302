// Package goal contains savings goal use cases.
package goal

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/goalguard/backend/internal/application/adapter"
	"github.com/goalguard/backend/internal/domain/entity"
	domainerror "github.com/goalguard/backend/internal/domain/error"
)

// ContributeInput represents the input for a goal contribution.
type ContributeInput struct {
	UserID uuid.UUID
	GoalID uuid.UUID
	Amount decimal.Decimal

	// SourceAccountID overrides the user's primary account as the funding
	// source when set.
	SourceAccountID string
}

// ContributeOutput represents the output of a goal contribution.
type ContributeOutput struct {
	Goal        *entity.SavingsGoal
	Transaction *entity.Transaction
}

// ContributeUseCase handles contributions into a goal's sub-account. The
// gateway transfer precedes the balance mutation; the balance update and its
// ledger entry are written as one atomic unit, conditional on the goal
// version read at the start.
type ContributeUseCase struct {
	goalRepo adapter.GoalRepository
	userRepo adapter.UserRepository
	gateway  adapter.PaymentGateway
	notifier adapter.Notifier
	clock    adapter.Clock
	logger   *slog.Logger
}

// NewContributeUseCase creates a new ContributeUseCase instance.
func NewContributeUseCase(
	goalRepo adapter.GoalRepository,
	userRepo adapter.UserRepository,
	gateway adapter.PaymentGateway,
	notifier adapter.Notifier,
	clock adapter.Clock,
	logger *slog.Logger,
) *ContributeUseCase {
	return &ContributeUseCase{
		goalRepo: goalRepo,
		userRepo: userRepo,
		gateway:  gateway,
		notifier: notifier,
		clock:    clock,
		logger:   logger,
	}
}

// Execute performs the contribution.
func (uc *ContributeUseCase) Execute(ctx context.Context, input ContributeInput) (*ContributeOutput, error) {
	if !input.Amount.IsPositive() {
		return nil, domainerror.NewGoalError(
			domainerror.ErrCodeInvalidAmount,
			"contribution amount must be greater than zero",
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

	if goal.Status != entity.GoalStatusActive {
		return nil, domainerror.NewGoalError(
			domainerror.ErrCodeGoalNotActive,
			"contributions require an active goal",
			domainerror.ErrGoalNotActive,
		)
	}

	user, err := uc.userRepo.FindByID(ctx, input.UserID)
	if err != nil {
		return nil, fmt.Errorf("failed to find user: %w", err)
	}

	source := input.SourceAccountID
	if source == "" {
		source = user.PrimaryAccountID
	}

	// Move the money first. No balance mutation happens unless the gateway
	// confirms the transfer.
	result, err := uc.gateway.Transfer(ctx, adapter.TransferRequest{
		FromAccountID:  source,
		ToAccountID:    goal.AccountID,
		Amount:         input.Amount,
		Reference:      fmt.Sprintf("contribution to %s", goal.Name),
		IdempotencyKey: uuid.NewString(),
	})
	if err != nil {
		return nil, err
	}

	now := uc.clock.Now()
	goal.ApplyContribution(input.Amount, now)

	tx := entity.NewTransaction(
		input.UserID,
		&goal.ID,
		entity.TransactionTypeContribution,
		input.Amount,
		fmt.Sprintf("Contribution to %s", goal.Name),
		result.TransferID,
		now,
	)

	if err := uc.goalRepo.SaveWithTransactions(ctx, goal, []*entity.Transaction{tx}); err != nil {
		return nil, err
	}

	user.RecordSaving(input.Amount)
	completed := goal.Status == entity.GoalStatusCompleted
	if completed {
		user.RecordGoalCompletion()
	}
	if err := uc.userRepo.Update(ctx, user); err != nil {
		return nil, fmt.Errorf("failed to update user stats: %w", err)
	}

	if completed {
		// Best effort: a queue failure never fails the contribution.
		err := uc.notifier.NotifyGoalCompleted(ctx, adapter.NotifyGoalCompletedInput{
			UserID:       user.ID.String(),
			UserEmail:    user.Email,
			UserName:     user.Name,
			GoalName:     goal.Name,
			TargetAmount: goal.TargetAmount,
		})
		if err != nil {
			uc.logger.Warn("failed to queue goal completed email",
				"goal_id", goal.ID,
				"error", err,
			)
		}
	}

	return &ContributeOutput{
		Goal:        goal,
		Transaction: tx,
	}, nil
}
