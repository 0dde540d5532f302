// Package entity defines the core business entities for the domain layer.
package entity

import (
	"math"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// GoalStatus represents the lifecycle state of a savings goal.
type GoalStatus string

const (
	GoalStatusActive    GoalStatus = "active"
	GoalStatusCompleted GoalStatus = "completed"
	GoalStatusCancelled GoalStatus = "cancelled"
	GoalStatusPaused    GoalStatus = "paused"
	GoalStatusWithdrawn GoalStatus = "withdrawn"
)

// GoalCategory classifies what the user is saving for.
type GoalCategory string

const (
	CategoryHoliday   GoalCategory = "holiday"
	CategoryEmergency GoalCategory = "emergency"
	CategoryDeposit   GoalCategory = "deposit"
	CategoryEducation GoalCategory = "education"
	CategoryVehicle   GoalCategory = "vehicle"
	CategoryWedding   GoalCategory = "wedding"
	CategoryOther     GoalCategory = "other"
)

// ContributionFrequency represents how often the user plans to contribute.
type ContributionFrequency string

const (
	FrequencyWeekly      ContributionFrequency = "weekly"
	FrequencyFortnightly ContributionFrequency = "fortnightly"
	FrequencyMonthly     ContributionFrequency = "monthly"
	FrequencyCustom      ContributionFrequency = "custom"
)

// ContributionPlan holds the user's intended contribution cadence.
type ContributionPlan struct {
	Frequency        ContributionFrequency
	Amount           decimal.Decimal
	NextContribution time.Time
}

// GoalProgress holds derived progress fields, recomputed on every save.
type GoalProgress struct {
	Percentage    decimal.Decimal
	DaysRemaining int
	MonthlyTarget decimal.Decimal
}

// SavingsGoal represents one savings goal with its segregated sub-account
// balance and withdrawal lock. The Version field backs optimistic concurrency
// on balance updates.
type SavingsGoal struct {
	ID                    uuid.UUID
	UserID                uuid.UUID
	Name                  string
	TargetAmount          decimal.Decimal
	CurrentAmount         decimal.Decimal
	Category              GoalCategory
	StartDate             time.Time
	EndDate               time.Time
	Plan                  ContributionPlan
	Status                GoalStatus
	AccountID             string
	AllowedWithdrawalDate time.Time
	Progress              GoalProgress
	Version               int64
	CreatedAt             time.Time
	UpdatedAt             time.Time
}

// NewSavingsGoal creates an active goal with a zero balance. The withdrawal
// lock runs until the goal's end date.
func NewSavingsGoal(userID uuid.UUID, name string, target decimal.Decimal, category GoalCategory, endDate time.Time, plan ContributionPlan, accountID string, now time.Time) *SavingsGoal {
	g := &SavingsGoal{
		ID:                    uuid.New(),
		UserID:                userID,
		Name:                  name,
		TargetAmount:          target,
		CurrentAmount:         decimal.Zero,
		Category:              category,
		StartDate:             now,
		EndDate:               endDate,
		Plan:                  plan,
		Status:                GoalStatusActive,
		AccountID:             accountID,
		AllowedWithdrawalDate: endDate,
		CreatedAt:             now,
		UpdatedAt:             now,
	}
	g.Recalculate(now)
	return g
}

// IsLocked reports whether ordinary withdrawal is currently disallowed.
func (g *SavingsGoal) IsLocked(now time.Time) bool {
	return now.Before(g.AllowedWithdrawalDate)
}

// DaysUntilWithdrawal returns the number of days until the lock expires,
// rounded up. Zero once the lock has passed.
func (g *SavingsGoal) DaysUntilWithdrawal(now time.Time) int {
	if !g.IsLocked(now) {
		return 0
	}
	return int(math.Ceil(g.AllowedWithdrawalDate.Sub(now).Hours() / 24))
}

// Recalculate refreshes the derived progress fields. The monthly target uses
// the original system's month approximation of 30 days.
func (g *SavingsGoal) Recalculate(now time.Time) {
	if g.TargetAmount.IsPositive() {
		g.Progress.Percentage = g.CurrentAmount.Div(g.TargetAmount).Mul(decimal.NewFromInt(100)).Round(2)
	} else {
		g.Progress.Percentage = decimal.Zero
	}

	g.Progress.DaysRemaining = int(math.Ceil(g.EndDate.Sub(now).Hours() / 24))

	monthsRemaining := float64(g.Progress.DaysRemaining) / 30
	if monthsRemaining > 0 {
		remaining := g.TargetAmount.Sub(g.CurrentAmount)
		if remaining.IsNegative() {
			remaining = decimal.Zero
		}
		g.Progress.MonthlyTarget = remaining.Div(decimal.NewFromFloat(monthsRemaining)).Round(2)
	} else {
		g.Progress.MonthlyTarget = decimal.Zero
	}

	g.UpdatedAt = now
}

// ApplyContribution increments the balance and transitions the goal to
// completed once the target is reached.
func (g *SavingsGoal) ApplyContribution(amount decimal.Decimal, now time.Time) {
	g.CurrentAmount = g.CurrentAmount.Add(amount)
	if g.CurrentAmount.GreaterThanOrEqual(g.TargetAmount) {
		g.Status = GoalStatusCompleted
	}
	g.Recalculate(now)
}

// ApplyWithdrawal decrements the balance by the gross amount and transitions
// the goal to withdrawn when fully drained.
func (g *SavingsGoal) ApplyWithdrawal(amount decimal.Decimal, now time.Time) {
	g.CurrentAmount = g.CurrentAmount.Sub(amount)
	if g.CurrentAmount.IsZero() {
		g.Status = GoalStatusWithdrawn
	}
	g.Recalculate(now)
}
