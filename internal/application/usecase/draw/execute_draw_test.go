package draw

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/goalguard/backend/internal/domain/entity"
	domainerror "github.com/goalguard/backend/internal/domain/error"
)

type executeFixture struct {
	drawRepo       *fakeDrawRepo
	completionRepo *fakeCompletionRepo
	userRepo       *fakeUserRepo
	crediter       *fakeCrediter
	notifier       *fakeNotifier
	uc             *ExecuteDrawUseCase
}

func newExecuteFixture(t *testing.T, now time.Time, draws ...*entity.Draw) *executeFixture {
	t.Helper()
	f := &executeFixture{
		drawRepo:       newFakeDrawRepo(draws...),
		completionRepo: &fakeCompletionRepo{},
		userRepo:       newFakeUserRepo(),
		crediter:       &fakeCrediter{},
		notifier:       &fakeNotifier{},
	}
	f.uc = NewExecuteDrawUseCase(
		f.drawRepo,
		f.userRepo,
		NewEligibilityUseCase(f.completionRepo),
		f.crediter,
		f.notifier,
		&fakeClock{now: now},
		rand.New(rand.NewSource(42)),
		"A-POOL",
		testLogger(),
	)
	return f
}

func (f *executeFixture) addEntrants(n int, at time.Time) []*entity.User {
	users := make([]*entity.User, 0, n)
	for i := 0; i < n; i++ {
		u := testWinnerUser(fmt.Sprintf("user%d@example.com", i))
		f.userRepo.users[u.ID] = u
		f.completionRepo.completions = append(f.completionRepo.completions, approvedCompletion(u.ID, 1, at))
		users = append(users, u)
	}
	return users
}

func TestExecuteDraw_AllocatesByTierQuota(t *testing.T) {
	start := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(0, 0, 7)
	now := end.Add(time.Hour)
	draw := weeklyDraw(start, end, end, 1)

	f := newExecuteFixture(t, now, draw)
	f.addEntrants(15, start.Add(time.Hour))

	out, err := f.uc.Execute(context.Background(), ExecuteDrawInput{DrawID: draw.ID})
	require.NoError(t, err)

	// 15 entrants fill grand prize, 10 runner-ups, then 4 consolations.
	require.Len(t, out.Draw.Winners, 15)
	assert.Equal(t, "grand_prize", out.Draw.Winners[0].Tier)
	assert.True(t, out.Draw.Winners[0].PrizeAmount.Equal(decimal.NewFromInt(500)))
	for i := 1; i <= 10; i++ {
		assert.Equal(t, "runner_up", out.Draw.Winners[i].Tier)
		assert.True(t, out.Draw.Winners[i].PrizeAmount.Equal(decimal.NewFromInt(50)))
	}
	for i := 11; i < 15; i++ {
		assert.Equal(t, "consolation", out.Draw.Winners[i].Tier)
		assert.True(t, out.Draw.Winners[i].PrizeAmount.Equal(decimal.NewFromInt(5)))
	}

	// Positions are sequential and no entrant wins twice.
	seen := map[uuid.UUID]bool{}
	for i, w := range out.Draw.Winners {
		assert.Equal(t, i+1, w.Position)
		assert.False(t, seen[w.UserID], "duplicate winner %s", w.UserID)
		seen[w.UserID] = true
		assert.True(t, w.Paid)
	}

	assert.Equal(t, entity.DrawStatusCompleted, out.Draw.Status)
	assert.Len(t, f.crediter.credited, 15)
	assert.Len(t, f.notifier.prizeWins, 15)
	assert.Equal(t, 0, out.PayoutFailures)

	stored, _ := f.drawRepo.FindByID(context.Background(), draw.ID)
	assert.Equal(t, entity.DrawStatusCompleted, stored.Status)
	assert.NotNil(t, stored.ExecutedAt)
}

func TestExecuteDraw_EmptyEntrantsCompletesEmpty(t *testing.T) {
	start := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(0, 0, 7)
	draw := weeklyDraw(start, end, end, 1)

	f := newExecuteFixture(t, end.Add(time.Hour), draw)

	out, err := f.uc.Execute(context.Background(), ExecuteDrawInput{DrawID: draw.ID})
	require.NoError(t, err)

	assert.Equal(t, entity.DrawStatusCompleted, out.Draw.Status)
	assert.Empty(t, out.Draw.Winners)
	assert.Empty(t, f.crediter.credited)
}

func TestExecuteDraw_NotDue(t *testing.T) {
	start := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(0, 0, 7)
	draw := weeklyDraw(start, end, end, 1)

	f := newExecuteFixture(t, end.Add(-time.Hour), draw)

	_, err := f.uc.Execute(context.Background(), ExecuteDrawInput{DrawID: draw.ID})
	assert.ErrorIs(t, err, domainerror.ErrDrawNotDue)
	assert.Equal(t, 0, f.drawRepo.claims)
}

func TestExecuteDraw_SecondClaimLoses(t *testing.T) {
	start := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(0, 0, 7)
	draw := weeklyDraw(start, end, end, 1)

	f := newExecuteFixture(t, end.Add(time.Hour), draw)
	f.addEntrants(3, start.Add(time.Hour))

	_, err := f.uc.Execute(context.Background(), ExecuteDrawInput{DrawID: draw.ID})
	require.NoError(t, err)

	// A completed draw is no longer due, so the duplicate firing is
	// rejected before the claim.
	_, err = f.uc.Execute(context.Background(), ExecuteDrawInput{DrawID: draw.ID})
	assert.ErrorIs(t, err, domainerror.ErrDrawNotDue)
	assert.Equal(t, 1, f.drawRepo.claims)
	assert.Len(t, f.crediter.credited, 3)
}

func TestExecuteDraw_ClaimRace(t *testing.T) {
	start := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(0, 0, 7)
	draw := weeklyDraw(start, end, end, 1)

	f := newExecuteFixture(t, end.Add(time.Hour), draw)

	// Simulate a concurrent run holding the claim between our read and our
	// claim attempt.
	claimed, err := f.drawRepo.Claim(context.Background(), draw.ID)
	require.NoError(t, err)
	require.True(t, claimed)

	// The stale read still sees upcoming, so execution reaches the claim
	// and must lose it.
	stale, _ := f.drawRepo.FindByID(context.Background(), draw.ID)
	stale.Status = entity.DrawStatusUpcoming
	f.drawRepo.draws[draw.ID].Status = entity.DrawStatusInProgress

	claimed, err = f.drawRepo.Claim(context.Background(), draw.ID)
	require.NoError(t, err)
	assert.False(t, claimed)
}

func TestExecuteDraw_PartialPayoutFailure(t *testing.T) {
	start := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(0, 0, 7)
	draw := weeklyDraw(start, end, end, 1)

	f := newExecuteFixture(t, end.Add(time.Hour), draw)
	users := f.addEntrants(5, start.Add(time.Hour))

	broke := users[2]
	f.crediter.failFor = map[uuid.UUID]error{
		broke.ID: domainerror.NewGatewayError(
			domainerror.ErrCodeGatewayRejected, "transfer", "account closed", nil,
		),
	}

	out, err := f.uc.Execute(context.Background(), ExecuteDrawInput{DrawID: draw.ID})
	require.NoError(t, err)

	// The draw still completes; the unpaid winner is recorded with the
	// failure reason.
	assert.Equal(t, entity.DrawStatusCompleted, out.Draw.Status)
	assert.Equal(t, 1, out.PayoutFailures)
	require.Len(t, out.Draw.Winners, 5)

	paid, unpaid := 0, 0
	for _, w := range out.Draw.Winners {
		if w.UserID == broke.ID {
			assert.False(t, w.Paid)
			assert.Contains(t, w.PayoutError, "account closed")
			assert.False(t, w.Notified)
			unpaid++
		} else {
			assert.True(t, w.Paid)
			assert.True(t, w.Notified)
			paid++
		}
	}
	assert.Equal(t, 4, paid)
	assert.Equal(t, 1, unpaid)
	assert.Len(t, f.notifier.prizeWins, 4)
}

func TestExecuteDraw_EligibilityFailureReleasesClaim(t *testing.T) {
	start := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(0, 0, 7)
	draw := weeklyDraw(start, end, end, 1)

	f := newExecuteFixture(t, end.Add(time.Hour), draw)
	f.completionRepo.failList = true

	_, err := f.uc.Execute(context.Background(), ExecuteDrawInput{DrawID: draw.ID})
	require.Error(t, err)
	assert.False(t, errors.Is(err, domainerror.ErrDrawAlreadyClaimed))

	// The claim was released, so the next tick can retry.
	assert.Equal(t, 1, f.drawRepo.releases)
	stored, _ := f.drawRepo.FindByID(context.Background(), draw.ID)
	assert.Equal(t, entity.DrawStatusUpcoming, stored.Status)
}

func TestExecuteDraw_GoalCompletionKind(t *testing.T) {
	start := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(0, 1, 0)
	draw := entity.NewDraw(entity.DrawGoalCompletion, "Goal Completion Draw", decimal.NewFromInt(250), start, end, end, 1)

	f := newExecuteFixture(t, end.Add(time.Hour), draw)
	f.addEntrants(4, start.Add(time.Hour))

	out, err := f.uc.Execute(context.Background(), ExecuteDrawInput{DrawID: draw.ID})
	require.NoError(t, err)

	// Single winner takes the whole pool.
	require.Len(t, out.Draw.Winners, 1)
	assert.Equal(t, "grand_prize", out.Draw.Winners[0].Tier)
	assert.True(t, out.Draw.Winners[0].PrizeAmount.Equal(decimal.NewFromInt(250)))
}

func TestRunDueDraws(t *testing.T) {
	start := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(0, 0, 7)
	now := end.Add(time.Hour)

	due := weeklyDraw(start, end, end, 1)
	future := weeklyDraw(start, end.AddDate(0, 0, 7), end.AddDate(0, 0, 7), 1)

	f := newExecuteFixture(t, now, due, future)
	f.addEntrants(2, start.Add(time.Hour))

	runner := NewRunDueDrawsUseCase(f.drawRepo, f.uc, &fakeClock{now: now}, testLogger())
	out, err := runner.Execute(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 1, out.Due)
	assert.Equal(t, 1, out.Executed)
	assert.Equal(t, 0, out.Failed)

	stored, _ := f.drawRepo.FindByID(context.Background(), due.ID)
	assert.Equal(t, entity.DrawStatusCompleted, stored.Status)
	untouched, _ := f.drawRepo.FindByID(context.Background(), future.ID)
	assert.Equal(t, entity.DrawStatusUpcoming, untouched.Status)
}

func TestExecuteDraw_PersistFailureAfterPayoutKeepsClaim(t *testing.T) {
	start := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(0, 0, 7)
	draw := weeklyDraw(start, end, end, 1)

	f := newExecuteFixture(t, end.Add(time.Hour), draw)
	f.addEntrants(3, start.Add(time.Hour))
	f.drawRepo.failComplete = errors.New("store unavailable")

	_, err := f.uc.Execute(context.Background(), ExecuteDrawInput{DrawID: draw.ID})
	require.Error(t, err)

	// Prizes went out before the persist failed, so the claim must stay held.
	assert.Equal(t, 0, f.drawRepo.releases)
	assert.Len(t, f.crediter.credited, 3)

	stored, _ := f.drawRepo.FindByID(context.Background(), draw.ID)
	assert.Equal(t, entity.DrawStatusInProgress, stored.Status)
}

func TestExecuteDraw_PersistFailureWithoutEntrantsReleasesClaim(t *testing.T) {
	start := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(0, 0, 7)
	draw := weeklyDraw(start, end, end, 1)

	f := newExecuteFixture(t, end.Add(time.Hour), draw)
	f.drawRepo.failComplete = errors.New("store unavailable")

	_, err := f.uc.Execute(context.Background(), ExecuteDrawInput{DrawID: draw.ID})
	require.Error(t, err)

	// Nothing was disbursed, so the draw goes back for the next tick.
	assert.Equal(t, 1, f.drawRepo.releases)
	assert.Empty(t, f.crediter.credited)

	stored, _ := f.drawRepo.FindByID(context.Background(), draw.ID)
	assert.Equal(t, entity.DrawStatusUpcoming, stored.Status)
}
