package goal

import (
	"context"
	"io"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/goalguard/backend/internal/application/adapter"
	"github.com/goalguard/backend/internal/domain/entity"
	domainerror "github.com/goalguard/backend/internal/domain/error"
)

type fakeClock struct {
	now time.Time
}

func (c *fakeClock) Now() time.Time { return c.now }

type fakeGoalRepo struct {
	mu    sync.Mutex
	goals map[uuid.UUID]*entity.SavingsGoal
	txs   []*entity.Transaction

	failSave bool
}

func newFakeGoalRepo() *fakeGoalRepo {
	return &fakeGoalRepo{goals: make(map[uuid.UUID]*entity.SavingsGoal)}
}

func (r *fakeGoalRepo) Create(_ context.Context, g *entity.SavingsGoal) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *g
	r.goals[g.ID] = &cp
	return nil
}

func (r *fakeGoalRepo) FindByID(_ context.Context, id uuid.UUID) (*entity.SavingsGoal, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	g, ok := r.goals[id]
	if !ok {
		return nil, domainerror.ErrGoalNotFound
	}
	cp := *g
	return &cp, nil
}

func (r *fakeGoalRepo) FindByUserID(_ context.Context, userID uuid.UUID) ([]*entity.SavingsGoal, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*entity.SavingsGoal
	for _, g := range r.goals {
		if g.UserID == userID {
			cp := *g
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r *fakeGoalRepo) SaveWithTransactions(_ context.Context, g *entity.SavingsGoal, txs []*entity.Transaction) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.failSave {
		return domainerror.ErrConcurrentUpdate
	}
	stored, ok := r.goals[g.ID]
	if !ok {
		return domainerror.ErrGoalNotFound
	}
	if stored.Version != g.Version {
		return domainerror.ErrConcurrentUpdate
	}
	cp := *g
	cp.Version++
	r.goals[g.ID] = &cp
	r.txs = append(r.txs, txs...)
	return nil
}

func (r *fakeGoalRepo) Update(_ context.Context, g *entity.SavingsGoal) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *g
	r.goals[g.ID] = &cp
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

type transferCall struct {
	req adapter.TransferRequest
}

type fakeGateway struct {
	transfers   []transferCall
	subAccounts int

	failTransfer   error
	failSubAccount error
}

func (g *fakeGateway) CreateCustomer(_ context.Context, name, email string) (*adapter.GatewayCustomer, error) {
	return &adapter.GatewayCustomer{CustomerID: "C0001", PrimaryAccountID: "A0001"}, nil
}

func (g *fakeGateway) CreateSubAccount(_ context.Context, customerID, label string) (*adapter.GatewayAccount, error) {
	if g.failSubAccount != nil {
		return nil, g.failSubAccount
	}
	g.subAccounts++
	return &adapter.GatewayAccount{AccountID: "A-SUB-1"}, nil
}

func (g *fakeGateway) Transfer(_ context.Context, req adapter.TransferRequest) (*adapter.TransferResult, error) {
	if g.failTransfer != nil {
		return nil, g.failTransfer
	}
	g.transfers = append(g.transfers, transferCall{req: req})
	return &adapter.TransferResult{TransferID: "T0001", Status: "settled"}, nil
}

func (g *fakeGateway) GetBalance(_ context.Context, accountID string) (decimal.Decimal, error) {
	return decimal.Zero, nil
}

type fakeTxRepo struct {
	txs []*entity.Transaction
}

func (r *fakeTxRepo) Create(_ context.Context, tx *entity.Transaction) error {
	r.txs = append(r.txs, tx)
	return nil
}

func (r *fakeTxRepo) FindByGoalID(_ context.Context, goalID uuid.UUID) ([]*entity.Transaction, error) {
	var out []*entity.Transaction
	for _, tx := range r.txs {
		if tx.GoalID != nil && *tx.GoalID == goalID {
			out = append(out, tx)
		}
	}
	return out, nil
}

func (r *fakeTxRepo) FindByUserID(_ context.Context, userID uuid.UUID) ([]*entity.Transaction, error) {
	var out []*entity.Transaction
	for _, tx := range r.txs {
		if tx.UserID == userID {
			out = append(out, tx)
		}
	}
	return out, nil
}

type fakeNotifier struct {
	welcomes       []adapter.NotifyWelcomeInput
	prizeWins      []adapter.NotifyPrizeWinInput
	goalsCompleted []adapter.NotifyGoalCompletedInput
}

func (n *fakeNotifier) NotifyWelcome(_ context.Context, in adapter.NotifyWelcomeInput) error {
	n.welcomes = append(n.welcomes, in)
	return nil
}

func (n *fakeNotifier) NotifyPrizeWin(_ context.Context, in adapter.NotifyPrizeWinInput) error {
	n.prizeWins = append(n.prizeWins, in)
	return nil
}

func (n *fakeNotifier) NotifyGoalCompleted(_ context.Context, in adapter.NotifyGoalCompletedInput) error {
	n.goalsCompleted = append(n.goalsCompleted, in)
	return nil
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func testUser(tier entity.SubscriptionTier) *entity.User {
	u := entity.NewUser("jo@example.com", "Jo", "hash", time.Now().UTC())
	u.Tier = tier
	u.ModulrCustomerID = "C0001"
	u.PrimaryAccountID = "A0001"
	return u
}
