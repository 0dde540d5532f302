package email

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/goalguard/backend/internal/application/adapter"
	"github.com/goalguard/backend/internal/domain/entity"
	"github.com/goalguard/backend/internal/integration/email/templates"
)

// fakeQueue keeps email jobs in memory.
type fakeQueue struct {
	jobs []*entity.EmailJob
}

func (q *fakeQueue) Create(_ context.Context, job *entity.EmailJob) error {
	q.jobs = append(q.jobs, job)
	return nil
}

func (q *fakeQueue) GetPendingJobs(_ context.Context, limit int) ([]*entity.EmailJob, error) {
	var pending []*entity.EmailJob
	for _, job := range q.jobs {
		if job.Status == entity.EmailStatusPending && len(pending) < limit {
			pending = append(pending, job)
		}
	}
	return pending, nil
}

func (q *fakeQueue) Update(_ context.Context, job *entity.EmailJob) error {
	for i, existing := range q.jobs {
		if existing.ID == job.ID {
			q.jobs[i] = job
			return nil
		}
	}
	return errors.New("job not found")
}

func (q *fakeQueue) GetByID(_ context.Context, id uuid.UUID) (*entity.EmailJob, error) {
	for _, job := range q.jobs {
		if job.ID == id {
			return job, nil
		}
	}
	return nil, errors.New("job not found")
}

func (q *fakeQueue) GetByRecipient(_ context.Context, email string) ([]*entity.EmailJob, error) {
	var out []*entity.EmailJob
	for _, job := range q.jobs {
		if job.RecipientEmail == email {
			out = append(out, job)
		}
	}
	return out, nil
}

func (q *fakeQueue) DeleteOldSentJobs(_ context.Context, olderThanDays int) (int64, error) {
	return 0, nil
}

func newTestWorker(t *testing.T, queue *fakeQueue, sender adapter.EmailSender) *Worker {
	t.Helper()
	renderer, err := templates.NewRenderer()
	require.NoError(t, err)
	return NewWorker(queue, sender, renderer, DefaultWorkerConfig())
}

func TestWorkerSendsQueuedPrizeWinEmail(t *testing.T) {
	queue := &fakeQueue{}
	sender := NewMockEmailSender()
	service := NewService(queue, "https://app.goalguard.test")

	err := service.NotifyPrizeWin(context.Background(), adapter.NotifyPrizeWinInput{
		UserID:      uuid.NewString(),
		UserEmail:   "alice@example.com",
		UserName:    "Alice",
		DrawName:    "Weekly Draw",
		PrizeAmount: decimal.NewFromInt(50),
		PrizeTier:   "runner_up",
	})
	require.NoError(t, err)

	worker := newTestWorker(t, queue, sender)
	worker.ProcessNow(context.Background())

	require.Len(t, sender.SentEmails, 1)
	sent := sender.SentEmails[0]
	assert.Equal(t, "alice@example.com", sent.To)
	assert.Contains(t, sent.Subject, "50.00")
	assert.Contains(t, sent.HTML, "Weekly Draw")
	assert.Contains(t, sent.Text, "runner_up")

	require.Len(t, queue.jobs, 1)
	assert.Equal(t, entity.EmailStatusSent, queue.jobs[0].Status)
}

func TestWorkerRendersWelcomeAndGoalCompleted(t *testing.T) {
	queue := &fakeQueue{}
	sender := NewMockEmailSender()
	service := NewService(queue, "https://app.goalguard.test")
	ctx := context.Background()

	require.NoError(t, service.NotifyWelcome(ctx, adapter.NotifyWelcomeInput{
		UserID:    uuid.NewString(),
		UserEmail: "bob@example.com",
		UserName:  "Bob",
	}))
	require.NoError(t, service.NotifyGoalCompleted(ctx, adapter.NotifyGoalCompletedInput{
		UserID:       uuid.NewString(),
		UserEmail:    "bob@example.com",
		UserName:     "Bob",
		GoalName:     "Emergency fund",
		TargetAmount: decimal.NewFromInt(5000),
	}))

	worker := newTestWorker(t, queue, sender)
	worker.ProcessNow(ctx)

	require.Len(t, sender.SentEmails, 2)
	assert.Contains(t, sender.SentEmails[0].HTML, "Bob")
	assert.Contains(t, sender.SentEmails[1].HTML, "Emergency fund")
	assert.Contains(t, sender.SentEmails[1].Text, "5000.00")
}

func TestWorkerRetriesTemporaryFailure(t *testing.T) {
	queue := &fakeQueue{}
	sender := NewMockEmailSender()
	sender.SetFailure(errors.New("rate limited"), false)
	service := NewService(queue, "https://app.goalguard.test")
	ctx := context.Background()

	require.NoError(t, service.NotifyWelcome(ctx, adapter.NotifyWelcomeInput{
		UserID:    uuid.NewString(),
		UserEmail: "carol@example.com",
		UserName:  "Carol",
	}))

	worker := newTestWorker(t, queue, sender)
	worker.ProcessNow(ctx)

	require.Len(t, queue.jobs, 1)
	job := queue.jobs[0]
	assert.Equal(t, entity.EmailStatusPending, job.Status)
	assert.Equal(t, 1, job.Attempts)
	assert.NotEmpty(t, job.LastError)
}

func TestWorkerMarksPermanentFailure(t *testing.T) {
	queue := &fakeQueue{}
	sender := NewMockEmailSender()
	sender.SetFailure(errors.New("invalid recipient"), true)
	service := NewService(queue, "https://app.goalguard.test")
	ctx := context.Background()

	require.NoError(t, service.NotifyWelcome(ctx, adapter.NotifyWelcomeInput{
		UserID:    uuid.NewString(),
		UserEmail: "bad@example.com",
		UserName:  "Bad",
	}))

	worker := newTestWorker(t, queue, sender)
	worker.ProcessNow(ctx)

	require.Len(t, queue.jobs, 1)
	assert.Equal(t, entity.EmailStatusFailed, queue.jobs[0].Status)
}
