// Package adapter defines interfaces that will be implemented in the integration layer.
package adapter

import (
	"context"

	"github.com/shopspring/decimal"
)

// Notifier defines the interface for queueing user-facing notification emails.
// Delivery is best-effort: callers treat failures as non-fatal and the queue
// worker retries on its own schedule.
type Notifier interface {
	// NotifyWelcome queues the onboarding welcome email.
	NotifyWelcome(ctx context.Context, input NotifyWelcomeInput) error

	// NotifyPrizeWin queues a prize win email for a draw winner.
	NotifyPrizeWin(ctx context.Context, input NotifyPrizeWinInput) error

	// NotifyGoalCompleted queues a goal completion email.
	NotifyGoalCompleted(ctx context.Context, input NotifyGoalCompletedInput) error
}

// NotifyWelcomeInput represents the input for queueing a welcome email.
type NotifyWelcomeInput struct {
	UserID    string
	UserEmail string
	UserName  string
}

// NotifyPrizeWinInput represents the input for queueing a prize win email.
type NotifyPrizeWinInput struct {
	UserID      string
	UserEmail   string
	UserName    string
	DrawName    string
	PrizeAmount decimal.Decimal
	PrizeTier   string
}

// NotifyGoalCompletedInput represents the input for queueing a goal completion email.
type NotifyGoalCompletedInput struct {
	UserID       string
	UserEmail    string
	UserName     string
	GoalName     string
	TargetAmount decimal.Decimal
}
