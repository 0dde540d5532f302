package goal

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/goalguard/backend/internal/domain/entity"
	domainerror "github.com/goalguard/backend/internal/domain/error"
)

func TestCreateGoal(t *testing.T) {
	now := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	user := testUser(entity.TierBasic)

	t.Run("creates goal after opening a sub-account", func(t *testing.T) {
		repo := newFakeGoalRepo()
		gw := &fakeGateway{}

		uc := NewCreateGoalUseCase(repo, newFakeUserRepo(user), gw, &fakeClock{now: now}, testLogger())
		out, err := uc.Execute(context.Background(), CreateGoalInput{
			UserID:       user.ID,
			Name:         "House deposit",
			TargetAmount: decimal.NewFromInt(20000),
			Category:     entity.CategoryDeposit,
			EndDate:      now.AddDate(2, 0, 0),
			Plan:         entity.ContributionPlan{Frequency: entity.FrequencyMonthly, Amount: decimal.NewFromInt(800)},
		})
		require.NoError(t, err)

		assert.Equal(t, 1, gw.subAccounts)
		assert.Equal(t, "A-SUB-1", out.Goal.AccountID)
		assert.Equal(t, entity.GoalStatusActive, out.Goal.Status)
		assert.True(t, out.Goal.CurrentAmount.IsZero())
		assert.Equal(t, out.Goal.EndDate, out.Goal.AllowedWithdrawalDate)

		stored, err := repo.FindByID(context.Background(), out.Goal.ID)
		require.NoError(t, err)
		assert.Equal(t, "House deposit", stored.Name)
	})

	t.Run("gateway failure persists nothing", func(t *testing.T) {
		repo := newFakeGoalRepo()
		gw := &fakeGateway{failSubAccount: domainerror.NewGatewayError(
			domainerror.ErrCodeGatewayRejected, "create_sub_account", "customer not verified", nil,
		)}

		uc := NewCreateGoalUseCase(repo, newFakeUserRepo(user), gw, &fakeClock{now: now}, testLogger())
		_, err := uc.Execute(context.Background(), CreateGoalInput{
			UserID:       user.ID,
			Name:         "House deposit",
			TargetAmount: decimal.NewFromInt(20000),
			Category:     entity.CategoryDeposit,
			EndDate:      now.AddDate(2, 0, 0),
		})

		assert.ErrorIs(t, err, domainerror.ErrGatewayRejected)
		assert.Empty(t, repo.goals)
	})

	t.Run("rejects non-positive target", func(t *testing.T) {
		uc := NewCreateGoalUseCase(newFakeGoalRepo(), newFakeUserRepo(user), &fakeGateway{}, &fakeClock{now: now}, testLogger())
		_, err := uc.Execute(context.Background(), CreateGoalInput{
			UserID:       user.ID,
			Name:         "Nope",
			TargetAmount: decimal.Zero,
			EndDate:      now.AddDate(1, 0, 0),
		})
		assert.ErrorIs(t, err, domainerror.ErrInvalidTargetAmount)
	})

	t.Run("rejects past end date", func(t *testing.T) {
		uc := NewCreateGoalUseCase(newFakeGoalRepo(), newFakeUserRepo(user), &fakeGateway{}, &fakeClock{now: now}, testLogger())
		_, err := uc.Execute(context.Background(), CreateGoalInput{
			UserID:       user.ID,
			Name:         "Nope",
			TargetAmount: decimal.NewFromInt(100),
			EndDate:      now.AddDate(0, 0, -1),
		})
		assert.ErrorIs(t, err, domainerror.ErrInvalidEndDate)
	})
}
