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

func TestContribute_IncrementsBalanceAndLedger(t *testing.T) {
	now := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	user := testUser(entity.TierBasic)
	repo := newFakeGoalRepo()
	gw := &fakeGateway{}
	notifier := &fakeNotifier{}
	goal := seedGoal(t, repo, user, "0", 90, now)

	uc := NewContributeUseCase(repo, newFakeUserRepo(user), gw, notifier, &fakeClock{now: now}, testLogger())
	out, err := uc.Execute(context.Background(), ContributeInput{
		UserID: user.ID,
		GoalID: goal.ID,
		Amount: decimal.NewFromInt(250),
	})
	require.NoError(t, err)

	assert.True(t, out.Goal.CurrentAmount.Equal(decimal.NewFromInt(250)))
	assert.Equal(t, entity.GoalStatusActive, out.Goal.Status)
	assert.Equal(t, entity.TransactionTypeContribution, out.Transaction.Type)
	assert.Equal(t, "T0001", out.Transaction.ExternalRef)

	// Funds moved from the user's primary account into the sub-account.
	require.Len(t, gw.transfers, 1)
	assert.Equal(t, "A0001", gw.transfers[0].req.FromAccountID)
	assert.Equal(t, "A-SUB-1", gw.transfers[0].req.ToAccountID)
	assert.NotEmpty(t, gw.transfers[0].req.IdempotencyKey)

	// Aggregate stats track total saved.
	assert.True(t, user.Stats.TotalSaved.Equal(decimal.NewFromInt(250)))
	assert.Empty(t, notifier.goalsCompleted)
}

func TestContribute_ReachingTargetCompletesAndNotifies(t *testing.T) {
	now := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	user := testUser(entity.TierBasic)
	repo := newFakeGoalRepo()
	notifier := &fakeNotifier{}
	goal := seedGoal(t, repo, user, "4900", 90, now)

	uc := NewContributeUseCase(repo, newFakeUserRepo(user), &fakeGateway{}, notifier, &fakeClock{now: now}, testLogger())
	out, err := uc.Execute(context.Background(), ContributeInput{
		UserID: user.ID,
		GoalID: goal.ID,
		Amount: decimal.NewFromInt(100),
	})
	require.NoError(t, err)

	assert.Equal(t, entity.GoalStatusCompleted, out.Goal.Status)
	assert.Equal(t, 1, user.Stats.GoalsCompleted)
	require.Len(t, notifier.goalsCompleted, 1)
	assert.Equal(t, "Emergency fund", notifier.goalsCompleted[0].GoalName)
}

func TestContribute_GatewayFailureLeavesNoState(t *testing.T) {
	now := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	user := testUser(entity.TierBasic)
	repo := newFakeGoalRepo()
	gw := &fakeGateway{failTransfer: domainerror.NewGatewayError(
		domainerror.ErrCodeGatewayUnavailable, "transfer", "connection refused", domainerror.ErrGatewayUnavailable,
	)}
	goal := seedGoal(t, repo, user, "100", 90, now)

	uc := NewContributeUseCase(repo, newFakeUserRepo(user), gw, &fakeNotifier{}, &fakeClock{now: now}, testLogger())
	_, err := uc.Execute(context.Background(), ContributeInput{
		UserID: user.ID,
		GoalID: goal.ID,
		Amount: decimal.NewFromInt(50),
	})

	assert.ErrorIs(t, err, domainerror.ErrGatewayUnavailable)
	stored, _ := repo.FindByID(context.Background(), goal.ID)
	assert.True(t, stored.CurrentAmount.Equal(decimal.NewFromInt(100)))
	assert.Empty(t, repo.txs)
}

func TestContribute_RejectsInactiveGoal(t *testing.T) {
	now := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	user := testUser(entity.TierBasic)
	repo := newFakeGoalRepo()
	goal := seedGoal(t, repo, user, "100", 90, now)
	goal.Status = entity.GoalStatusPaused
	require.NoError(t, repo.Update(context.Background(), goal))

	uc := NewContributeUseCase(repo, newFakeUserRepo(user), &fakeGateway{}, &fakeNotifier{}, &fakeClock{now: now}, testLogger())
	_, err := uc.Execute(context.Background(), ContributeInput{
		UserID: user.ID,
		GoalID: goal.ID,
		Amount: decimal.NewFromInt(50),
	})

	assert.ErrorIs(t, err, domainerror.ErrGoalNotActive)
}

func TestContribute_RejectsForeignGoal(t *testing.T) {
	now := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	owner := testUser(entity.TierBasic)
	other := testUser(entity.TierBasic)
	repo := newFakeGoalRepo()
	goal := seedGoal(t, repo, owner, "100", 90, now)

	uc := NewContributeUseCase(repo, newFakeUserRepo(owner, other), &fakeGateway{}, &fakeNotifier{}, &fakeClock{now: now}, testLogger())
	_, err := uc.Execute(context.Background(), ContributeInput{
		UserID: other.ID,
		GoalID: goal.ID,
		Amount: decimal.NewFromInt(50),
	})

	assert.ErrorIs(t, err, domainerror.ErrUnauthorizedGoalAccess)
}
