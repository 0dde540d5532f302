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

func seedGoal(t *testing.T, repo *fakeGoalRepo, user *entity.User, balance string, endInDays int, now time.Time) *entity.SavingsGoal {
	t.Helper()
	g := entity.NewSavingsGoal(
		user.ID,
		"Emergency fund",
		decimal.NewFromInt(5000),
		entity.CategoryEmergency,
		now.AddDate(0, 0, endInDays),
		entity.ContributionPlan{Frequency: entity.FrequencyMonthly, Amount: decimal.NewFromInt(100)},
		"A-SUB-1",
		now,
	)
	g.CurrentAmount = decimal.RequireFromString(balance)
	require.NoError(t, repo.Create(context.Background(), g))
	return g
}

func TestWithdraw_UnlockedNoFee(t *testing.T) {
	now := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	user := testUser(entity.TierBasic)
	repo := newFakeGoalRepo()
	gw := &fakeGateway{}
	// Goal ended 10 days ago, lock expired.
	goal := seedGoal(t, repo, user, "500", -10, now.AddDate(0, 0, -100))

	uc := NewWithdrawUseCase(repo, newFakeUserRepo(user), gw, &fakeClock{now: now})
	out, err := uc.Execute(context.Background(), WithdrawInput{
		UserID: user.ID,
		GoalID: goal.ID,
		Amount: decimal.NewFromInt(200),
	})
	require.NoError(t, err)

	assert.True(t, out.Fee.IsZero())
	assert.True(t, out.NetAmount.Equal(decimal.NewFromInt(200)))
	require.Len(t, out.Transactions, 1)
	assert.Equal(t, entity.TransactionTypeWithdrawal, out.Transactions[0].Type)
	assert.True(t, out.Goal.CurrentAmount.Equal(decimal.NewFromInt(300)))

	require.Len(t, gw.transfers, 1)
	assert.True(t, gw.transfers[0].req.Amount.Equal(decimal.NewFromInt(200)))
}

func TestWithdraw_LockedEmergencyFees(t *testing.T) {
	tests := []struct {
		name    string
		tier    entity.SubscriptionTier
		wantFee string
		wantNet string
	}{
		{name: "basic tier pays 3 percent", tier: entity.TierBasic, wantFee: "3", wantNet: "97"},
		{name: "plus tier pays 1.5 percent", tier: entity.TierPlus, wantFee: "1.5", wantNet: "98.5"},
		{name: "pro tier pays nothing", tier: entity.TierPro, wantFee: "0", wantNet: "100"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			now := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
			user := testUser(tt.tier)
			repo := newFakeGoalRepo()
			gw := &fakeGateway{}
			goal := seedGoal(t, repo, user, "500", 90, now)

			uc := NewWithdrawUseCase(repo, newFakeUserRepo(user), gw, &fakeClock{now: now})
			out, err := uc.Execute(context.Background(), WithdrawInput{
				UserID:      user.ID,
				GoalID:      goal.ID,
				Amount:      decimal.NewFromInt(100),
				IsEmergency: true,
			})
			require.NoError(t, err)

			assert.True(t, out.Fee.Equal(decimal.RequireFromString(tt.wantFee)), "fee %s", out.Fee)
			assert.True(t, out.NetAmount.Equal(decimal.RequireFromString(tt.wantNet)), "net %s", out.NetAmount)

			// The balance drops by gross, whatever the fee.
			assert.True(t, out.Goal.CurrentAmount.Equal(decimal.NewFromInt(400)))

			// The gateway moves net, not gross.
			require.Len(t, gw.transfers, 1)
			assert.True(t, gw.transfers[0].req.Amount.Equal(decimal.RequireFromString(tt.wantNet)))

			if out.Fee.IsPositive() {
				require.Len(t, out.Transactions, 2)
				assert.Equal(t, entity.TransactionTypeWithdrawal, out.Transactions[0].Type)
				assert.Equal(t, entity.TransactionTypeFee, out.Transactions[1].Type)
				assert.True(t, out.Transactions[1].Amount.Equal(out.Fee))
				assert.True(t, out.Transactions[0].IsEmergency)
			} else {
				require.Len(t, out.Transactions, 1)
			}
		})
	}
}

func TestWithdraw_LockedNonEmergencyRejected(t *testing.T) {
	now := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	user := testUser(entity.TierBasic)
	repo := newFakeGoalRepo()
	gw := &fakeGateway{}
	goal := seedGoal(t, repo, user, "500", 90, now)

	uc := NewWithdrawUseCase(repo, newFakeUserRepo(user), gw, &fakeClock{now: now})
	_, err := uc.Execute(context.Background(), WithdrawInput{
		UserID: user.ID,
		GoalID: goal.ID,
		Amount: decimal.NewFromInt(100),
	})

	assert.ErrorIs(t, err, domainerror.ErrGoalLocked)
	// No gateway call, no ledger entries, no balance change.
	assert.Empty(t, gw.transfers)
	assert.Empty(t, repo.txs)
	stored, _ := repo.FindByID(context.Background(), goal.ID)
	assert.True(t, stored.CurrentAmount.Equal(decimal.NewFromInt(500)))
}

func TestWithdraw_InsufficientFunds(t *testing.T) {
	now := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	user := testUser(entity.TierBasic)
	repo := newFakeGoalRepo()
	gw := &fakeGateway{}
	goal := seedGoal(t, repo, user, "50", -1, now.AddDate(0, 0, -30))

	uc := NewWithdrawUseCase(repo, newFakeUserRepo(user), gw, &fakeClock{now: now})
	_, err := uc.Execute(context.Background(), WithdrawInput{
		UserID: user.ID,
		GoalID: goal.ID,
		Amount: decimal.NewFromInt(100),
	})

	assert.ErrorIs(t, err, domainerror.ErrInsufficientFunds)
	assert.Empty(t, gw.transfers)
}

func TestWithdraw_InvalidAmount(t *testing.T) {
	now := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	user := testUser(entity.TierBasic)
	repo := newFakeGoalRepo()

	uc := NewWithdrawUseCase(repo, newFakeUserRepo(user), &fakeGateway{}, &fakeClock{now: now})
	_, err := uc.Execute(context.Background(), WithdrawInput{
		UserID: user.ID,
		GoalID: user.ID,
		Amount: decimal.Zero,
	})

	assert.ErrorIs(t, err, domainerror.ErrInvalidAmount)
}

func TestWithdraw_DrainTransitionsToWithdrawn(t *testing.T) {
	now := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	user := testUser(entity.TierBasic)
	repo := newFakeGoalRepo()
	goal := seedGoal(t, repo, user, "300", -1, now.AddDate(0, 0, -30))

	uc := NewWithdrawUseCase(repo, newFakeUserRepo(user), &fakeGateway{}, &fakeClock{now: now})
	out, err := uc.Execute(context.Background(), WithdrawInput{
		UserID: user.ID,
		GoalID: goal.ID,
		Amount: decimal.NewFromInt(300),
	})
	require.NoError(t, err)

	assert.Equal(t, entity.GoalStatusWithdrawn, out.Goal.Status)
	assert.True(t, out.Goal.CurrentAmount.IsZero())
}

func TestWithdraw_ConcurrentUpdateSurfaces(t *testing.T) {
	now := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	user := testUser(entity.TierBasic)
	repo := newFakeGoalRepo()
	repo.failSave = true
	goal := seedGoal(t, repo, user, "500", -1, now.AddDate(0, 0, -30))

	uc := NewWithdrawUseCase(repo, newFakeUserRepo(user), &fakeGateway{}, &fakeClock{now: now})
	_, err := uc.Execute(context.Background(), WithdrawInput{
		UserID: user.ID,
		GoalID: goal.ID,
		Amount: decimal.NewFromInt(100),
	})

	assert.ErrorIs(t, err, domainerror.ErrConcurrentUpdate)
}
