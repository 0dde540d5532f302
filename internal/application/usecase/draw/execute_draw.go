// Package draw contains prize draw use cases.
package draw

import (
	"context"
	"fmt"
	"log/slog"
	"math/rand"

	"github.com/google/uuid"

	"github.com/goalguard/backend/internal/application/adapter"
	"github.com/goalguard/backend/internal/application/usecase/goal"
	"github.com/goalguard/backend/internal/domain/entity"
	domainerror "github.com/goalguard/backend/internal/domain/error"
)

// PrizeCrediter pays a single winner through the goal ledger. Implemented by
// goal.CreditPrizeUseCase.
type PrizeCrediter interface {
	Execute(ctx context.Context, input goal.CreditPrizeInput) (*goal.CreditPrizeOutput, error)
}

// ExecuteDrawInput represents the input for executing a draw.
type ExecuteDrawInput struct {
	DrawID uuid.UUID
}

// ExecuteDrawOutput represents the output of executing a draw.
type ExecuteDrawOutput struct {
	Draw *entity.Draw

	// PayoutFailures counts winners whose disbursement failed. Those winners
	// are still recorded, with Paid=false and the failure reason.
	PayoutFailures int
}

// ExecuteDrawUseCase runs one due draw to completion. The conditional
// upcoming→in_progress claim is the sole concurrency guard: exactly one
// execution proceeds no matter how many schedulers fire the same draw.
// Once claimed, entrants are gathered, shuffled uniformly, and winners are
// allocated by tier quota; a disbursement failure for one winner never aborts
// the others. The winner list and completed status persist as the terminal
// atomic step.
type ExecuteDrawUseCase struct {
	drawRepo      adapter.DrawRepository
	userRepo      adapter.UserRepository
	eligibility   *EligibilityUseCase
	crediter      PrizeCrediter
	notifier      adapter.Notifier
	clock         adapter.Clock
	rng           *rand.Rand
	poolAccountID string
	logger        *slog.Logger
}

// NewExecuteDrawUseCase creates a new ExecuteDrawUseCase instance. The rand
// source is injectable so selection is reproducible in tests.
func NewExecuteDrawUseCase(
	drawRepo adapter.DrawRepository,
	userRepo adapter.UserRepository,
	eligibility *EligibilityUseCase,
	crediter PrizeCrediter,
	notifier adapter.Notifier,
	clock adapter.Clock,
	rng *rand.Rand,
	poolAccountID string,
	logger *slog.Logger,
) *ExecuteDrawUseCase {
	return &ExecuteDrawUseCase{
		drawRepo:      drawRepo,
		userRepo:      userRepo,
		eligibility:   eligibility,
		crediter:      crediter,
		notifier:      notifier,
		clock:         clock,
		rng:           rng,
		poolAccountID: poolAccountID,
		logger:        logger,
	}
}

// Execute runs the draw.
func (uc *ExecuteDrawUseCase) Execute(ctx context.Context, input ExecuteDrawInput) (*ExecuteDrawOutput, error) {
	draw, err := uc.drawRepo.FindByID(ctx, input.DrawID)
	if err != nil {
		return nil, domainerror.NewDrawError(
			domainerror.ErrCodeDrawNotFound,
			"draw not found",
			domainerror.ErrDrawNotFound,
		)
	}

	now := uc.clock.Now()
	if !draw.IsDue(now) {
		return nil, domainerror.NewDrawError(
			domainerror.ErrCodeDrawNotDue,
			"draw is not due for execution",
			domainerror.ErrDrawNotDue,
		)
	}

	claimed, err := uc.drawRepo.Claim(ctx, draw.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to claim draw: %w", err)
	}
	if !claimed {
		return nil, domainerror.NewDrawError(
			domainerror.ErrCodeDrawAlreadyClaimed,
			"draw already claimed for execution",
			domainerror.ErrDrawAlreadyClaimed,
		)
	}

	entrants, err := uc.eligibility.Execute(ctx, draw)
	if err != nil {
		// A failed read is fatal to this run only. Releasing the claim lets
		// the next scheduler tick retry.
		if relErr := uc.drawRepo.Release(ctx, draw.ID); relErr != nil {
			uc.logger.Error("failed to release claimed draw", "draw_id", draw.ID, "error", relErr)
		}
		return nil, err
	}

	if len(entrants) == 0 {
		draw.Complete(nil, now)
		if err := uc.drawRepo.Complete(ctx, draw); err != nil {
			// No money has moved, so the claim can go back for the next
			// scheduler tick to retry.
			if relErr := uc.drawRepo.Release(ctx, draw.ID); relErr != nil {
				uc.logger.Error("failed to release claimed draw", "draw_id", draw.ID, "error", relErr)
			}
			return nil, fmt.Errorf("failed to complete empty draw: %w", err)
		}
		uc.logger.Info("draw completed with no eligible entrants", "draw_id", draw.ID, "draw_name", draw.Name)
		return &ExecuteDrawOutput{Draw: draw}, nil
	}

	uc.rng.Shuffle(len(entrants), func(i, j int) {
		entrants[i], entrants[j] = entrants[j], entrants[i]
	})

	winners := allocateWinners(draw, entrants)

	failures := 0
	for i := range winners {
		w := &winners[i]
		out, err := uc.crediter.Execute(ctx, goal.CreditPrizeInput{
			UserID:        w.UserID,
			Amount:        w.PrizeAmount,
			DrawName:      draw.Name,
			PoolAccountID: uc.poolAccountID,
		})
		if err != nil {
			w.Paid = false
			w.PayoutError = err.Error()
			failures++
			uc.logger.Error("prize disbursement failed",
				"draw_id", draw.ID,
				"user_id", w.UserID,
				"amount", w.PrizeAmount,
				"error", err,
			)
			continue
		}
		w.Paid = true
		w.PayoutRef = out.Transaction.ExternalRef
		uc.notifyWinner(ctx, draw, w)
	}

	draw.Complete(winners, now)
	if err := uc.drawRepo.Complete(ctx, draw); err != nil {
		// Prizes are already disbursed. Releasing the claim would let a retry
		// pay every winner again, so the draw stays in_progress and the
		// outcome is logged for manual reconciliation.
		uc.logger.Error("failed to persist draw results after disbursement",
			"draw_id", draw.ID,
			"draw_name", draw.Name,
			"winners", len(winners),
			"payout_failures", failures,
			"error", err,
		)
		return nil, fmt.Errorf("failed to persist draw results: %w", err)
	}

	uc.logger.Info("draw executed",
		"draw_id", draw.ID,
		"draw_name", draw.Name,
		"entrants", len(entrants),
		"winners", len(winners),
		"payout_failures", failures,
	)

	return &ExecuteDrawOutput{
		Draw:           draw,
		PayoutFailures: failures,
	}, nil
}

// allocateWinners walks the shuffled entrant order and fills each prize tier
// in fixed sequence, grand prize first. A tier short of entrants fills
// partially; no entrant wins twice because each consumes one shuffle slot.
func allocateWinners(draw *entity.Draw, shuffled []Entrant) []entity.Winner {
	winners := make([]entity.Winner, 0, draw.PrizeStructure.TotalQuota())
	next := 0
	position := 1

	if next < len(shuffled) {
		winners = append(winners, entity.Winner{
			UserID:      shuffled[next].UserID,
			PrizeAmount: draw.PrizeStructure.GrandPrizeAmount(draw.PrizePool),
			Position:    position,
			Tier:        "grand_prize",
		})
		next++
		position++
	}

	for _, tier := range draw.PrizeStructure.Tiers {
		for n := 0; n < tier.Count && next < len(shuffled); n++ {
			winners = append(winners, entity.Winner{
				UserID:      shuffled[next].UserID,
				PrizeAmount: tier.Amount,
				Position:    position,
				Tier:        tier.Label,
			})
			next++
			position++
		}
	}

	return winners
}

// notifyWinner queues the prize win email. Best effort: a queue failure is
// logged and the winner stays unnotified.
func (uc *ExecuteDrawUseCase) notifyWinner(ctx context.Context, draw *entity.Draw, w *entity.Winner) {
	user, err := uc.userRepo.FindByID(ctx, w.UserID)
	if err != nil {
		uc.logger.Warn("failed to load winner for notification", "user_id", w.UserID, "error", err)
		return
	}
	err = uc.notifier.NotifyPrizeWin(ctx, adapter.NotifyPrizeWinInput{
		UserID:      user.ID.String(),
		UserEmail:   user.Email,
		UserName:    user.Name,
		DrawName:    draw.Name,
		PrizeAmount: w.PrizeAmount,
		PrizeTier:   w.Tier,
	})
	if err != nil {
		uc.logger.Warn("failed to queue prize win email", "user_id", w.UserID, "error", err)
		return
	}
	w.Notified = true
}
