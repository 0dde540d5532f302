package entity

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func newTestGoal(t *testing.T, target string, endInDays int) *SavingsGoal {
	t.Helper()
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	return NewSavingsGoal(
		uuid.New(),
		"Holiday fund",
		decimal.RequireFromString(target),
		CategoryHoliday,
		now.AddDate(0, 0, endInDays),
		ContributionPlan{Frequency: FrequencyMonthly, Amount: decimal.NewFromInt(100)},
		"A0000001",
		now,
	)
}

func TestNewSavingsGoal(t *testing.T) {
	g := newTestGoal(t, "1200", 300)

	assert.Equal(t, GoalStatusActive, g.Status)
	assert.True(t, g.CurrentAmount.IsZero())
	assert.Equal(t, g.EndDate, g.AllowedWithdrawalDate)
	assert.Equal(t, int64(0), g.Version)
	assert.True(t, g.Progress.Percentage.IsZero())
	assert.Equal(t, 300, g.Progress.DaysRemaining)
	// 1200 over 10 months
	assert.True(t, g.Progress.MonthlyTarget.Equal(decimal.NewFromInt(120)), "got %s", g.Progress.MonthlyTarget)
}

func TestApplyContribution(t *testing.T) {
	t.Run("partial contribution keeps goal active", func(t *testing.T) {
		g := newTestGoal(t, "1000", 100)
		g.ApplyContribution(decimal.NewFromInt(400), g.StartDate.AddDate(0, 0, 10))

		assert.Equal(t, GoalStatusActive, g.Status)
		assert.True(t, g.CurrentAmount.Equal(decimal.NewFromInt(400)))
		assert.True(t, g.Progress.Percentage.Equal(decimal.NewFromInt(40)))
	})

	t.Run("reaching target completes the goal", func(t *testing.T) {
		g := newTestGoal(t, "1000", 100)
		g.ApplyContribution(decimal.NewFromInt(1000), g.StartDate.AddDate(0, 0, 10))

		assert.Equal(t, GoalStatusCompleted, g.Status)
		assert.True(t, g.Progress.Percentage.Equal(decimal.NewFromInt(100)))
	})

	t.Run("overpay completes and exceeds 100 percent", func(t *testing.T) {
		g := newTestGoal(t, "1000", 100)
		g.ApplyContribution(decimal.NewFromInt(1100), g.StartDate.AddDate(0, 0, 10))

		assert.Equal(t, GoalStatusCompleted, g.Status)
		assert.True(t, g.Progress.Percentage.Equal(decimal.NewFromInt(110)))
	})
}

func TestApplyWithdrawal(t *testing.T) {
	t.Run("partial withdrawal keeps goal active", func(t *testing.T) {
		g := newTestGoal(t, "1000", 100)
		g.ApplyContribution(decimal.NewFromInt(500), g.StartDate)
		g.ApplyWithdrawal(decimal.NewFromInt(200), g.StartDate)

		assert.Equal(t, GoalStatusActive, g.Status)
		assert.True(t, g.CurrentAmount.Equal(decimal.NewFromInt(300)))
	})

	t.Run("draining the balance transitions to withdrawn", func(t *testing.T) {
		g := newTestGoal(t, "1000", 100)
		g.ApplyContribution(decimal.NewFromInt(500), g.StartDate)
		g.ApplyWithdrawal(decimal.NewFromInt(500), g.StartDate)

		assert.Equal(t, GoalStatusWithdrawn, g.Status)
		assert.True(t, g.CurrentAmount.IsZero())
	})
}

func TestLockWindow(t *testing.T) {
	g := newTestGoal(t, "1000", 30)

	assert.True(t, g.IsLocked(g.StartDate))
	assert.Equal(t, 30, g.DaysUntilWithdrawal(g.StartDate))

	dayBefore := g.AllowedWithdrawalDate.Add(-time.Hour)
	assert.True(t, g.IsLocked(dayBefore))
	assert.Equal(t, 1, g.DaysUntilWithdrawal(dayBefore))

	assert.False(t, g.IsLocked(g.AllowedWithdrawalDate))
	assert.Equal(t, 0, g.DaysUntilWithdrawal(g.AllowedWithdrawalDate))
}
