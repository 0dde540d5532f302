package draw

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/goalguard/backend/internal/application/adapter"
	"github.com/goalguard/backend/internal/application/usecase/goal"
	"github.com/goalguard/backend/internal/domain/entity"
	domainerror "github.com/goalguard/backend/internal/domain/error"
)

type fakeClock struct {
	now time.Time
}

func (c *fakeClock) Now() time.Time { return c.now }

type fakeDrawRepo struct {
	mu    sync.Mutex
	draws map[uuid.UUID]*entity.Draw

	claims       int
	releases     int
	failComplete error
}

func newFakeDrawRepo(draws ...*entity.Draw) *fakeDrawRepo {
	r := &fakeDrawRepo{draws: make(map[uuid.UUID]*entity.Draw)}
	for _, d := range draws {
		r.draws[d.ID] = d
	}
	return r
}

func (r *fakeDrawRepo) Create(_ context.Context, d *entity.Draw) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.draws[d.ID] = d
	return nil
}

func (r *fakeDrawRepo) FindByID(_ context.Context, id uuid.UUID) (*entity.Draw, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	d, ok := r.draws[id]
	if !ok {
		return nil, domainerror.ErrDrawNotFound
	}
	cp := *d
	return &cp, nil
}

func (r *fakeDrawRepo) FindDue(_ context.Context, now time.Time) ([]*entity.Draw, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*entity.Draw
	for _, d := range r.draws {
		if d.IsDue(now) {
			cp := *d
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r *fakeDrawRepo) FindCurrent(_ context.Context, now time.Time) ([]*entity.Draw, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*entity.Draw
	for _, d := range r.draws {
		if d.Status == entity.DrawStatusUpcoming {
			cp := *d
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r *fakeDrawRepo) FindCompleted(_ context.Context, limit int) ([]*entity.Draw, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*entity.Draw
	for _, d := range r.draws {
		if d.Status == entity.DrawStatusCompleted && len(out) < limit {
			cp := *d
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r *fakeDrawRepo) Claim(_ context.Context, id uuid.UUID) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	d, ok := r.draws[id]
	if !ok {
		return false, domainerror.ErrDrawNotFound
	}
	if d.Status != entity.DrawStatusUpcoming {
		return false, nil
	}
	d.Status = entity.DrawStatusInProgress
	r.claims++
	return true, nil
}

func (r *fakeDrawRepo) Release(_ context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	d, ok := r.draws[id]
	if !ok {
		return domainerror.ErrDrawNotFound
	}
	d.Status = entity.DrawStatusUpcoming
	r.releases++
	return nil
}

func (r *fakeDrawRepo) Complete(_ context.Context, d *entity.Draw) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.failComplete != nil {
		return r.failComplete
	}
	cp := *d
	r.draws[d.ID] = &cp
	return nil
}

type fakeCompletionRepo struct {
	completions []*entity.TaskCompletion
	failList    bool
}

func (r *fakeCompletionRepo) Create(_ context.Context, c *entity.TaskCompletion) error {
	r.completions = append(r.completions, c)
	return nil
}

func (r *fakeCompletionRepo) FindByID(_ context.Context, id uuid.UUID) (*entity.TaskCompletion, error) {
	for _, c := range r.completions {
		if c.ID == id {
			return c, nil
		}
	}
	return nil, domainerror.ErrCompletionNotFound
}

func (r *fakeCompletionRepo) FindByUserAndTask(_ context.Context, userID, taskID uuid.UUID) (*entity.TaskCompletion, error) {
	for _, c := range r.completions {
		if c.UserID == userID && c.TaskID == taskID {
			return c, nil
		}
	}
	return nil, nil
}

func (r *fakeCompletionRepo) FindByUserID(_ context.Context, userID uuid.UUID) ([]*entity.TaskCompletion, error) {
	var out []*entity.TaskCompletion
	for _, c := range r.completions {
		if c.UserID == userID {
			out = append(out, c)
		}
	}
	return out, nil
}

func (r *fakeCompletionRepo) FindApprovedInPeriod(_ context.Context, start, end time.Time) ([]*entity.TaskCompletion, error) {
	if r.failList {
		return nil, errors.New("store unavailable")
	}
	var out []*entity.TaskCompletion
	for _, c := range r.completions {
		if c.Status != entity.CompletionStatusApproved || c.CompletedAt == nil {
			continue
		}
		at := *c.CompletedAt
		if !at.Before(start) && !at.After(end) {
			out = append(out, c)
		}
	}
	return out, nil
}

func (r *fakeCompletionRepo) Update(_ context.Context, c *entity.TaskCompletion) error {
	return nil
}

type fakeUserRepo struct {
	users map[uuid.UUID]*entity.User
}

func newFakeUserRepo(users ...*entity.User) *fakeUserRepo {
	r := &fakeUserRepo{users: make(map[uuid.UUID]*entity.User)}
	for _, u := range users {
		r.users[u.ID] = u
	}
	return r
}

func (r *fakeUserRepo) Create(_ context.Context, u *entity.User) error {
	r.users[u.ID] = u
	return nil
}

func (r *fakeUserRepo) FindByID(_ context.Context, id uuid.UUID) (*entity.User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, domainerror.ErrUserNotFound
	}
	return u, nil
}

func (r *fakeUserRepo) FindByEmail(_ context.Context, email string) (*entity.User, error) {
	for _, u := range r.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, domainerror.ErrUserNotFound
}

func (r *fakeUserRepo) ExistsByEmail(_ context.Context, email string) (bool, error) {
	_, err := r.FindByEmail(context.Background(), email)
	return err == nil, nil
}

func (r *fakeUserRepo) Update(_ context.Context, u *entity.User) error {
	r.users[u.ID] = u
	return nil
}

// fakeCrediter records payouts and can fail for chosen users.
type fakeCrediter struct {
	credited []goal.CreditPrizeInput
	failFor  map[uuid.UUID]error
}

func (c *fakeCrediter) Execute(_ context.Context, input goal.CreditPrizeInput) (*goal.CreditPrizeOutput, error) {
	if err, ok := c.failFor[input.UserID]; ok {
		return nil, err
	}
	c.credited = append(c.credited, input)
	tx := entity.NewTransaction(input.UserID, nil, entity.TransactionTypePrize, input.Amount, "Prize", "T-PRIZE", time.Now().UTC())
	return &goal.CreditPrizeOutput{Transaction: tx}, nil
}

type fakeNotifier struct {
	prizeWins []adapter.NotifyPrizeWinInput
}

func (n *fakeNotifier) NotifyWelcome(_ context.Context, in adapter.NotifyWelcomeInput) error {
	return nil
}

func (n *fakeNotifier) NotifyPrizeWin(_ context.Context, in adapter.NotifyPrizeWinInput) error {
	n.prizeWins = append(n.prizeWins, in)
	return nil
}

func (n *fakeNotifier) NotifyGoalCompleted(_ context.Context, in adapter.NotifyGoalCompletedInput) error {
	return nil
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// approvedCompletion builds an approved completion inside the given window.
func approvedCompletion(userID uuid.UUID, entries int, at time.Time) *entity.TaskCompletion {
	c := entity.NewTaskCompletion(userID, uuid.New(), at.Add(-time.Hour))
	c.Submit(
		[]entity.TaskAnswer{{QuestionID: "q1", Answer: "a"}},
		10,
		entries,
		at,
	)
	c.Approve(at)
	return c
}

func testWinnerUser(email string) *entity.User {
	u := entity.NewUser(email, "Entrant", "hash", time.Now().UTC())
	u.PrimaryAccountID = "A-" + email
	return u
}
