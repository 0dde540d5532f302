package task

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/goalguard/backend/internal/domain/entity"
	domainerror "github.com/goalguard/backend/internal/domain/error"
)

type fakeClock struct {
	now time.Time
}

func (c *fakeClock) Now() time.Time { return c.now }

type fakeTaskRepo struct {
	tasks map[uuid.UUID]*entity.AdTask
}

func newFakeTaskRepo(tasks ...*entity.AdTask) *fakeTaskRepo {
	r := &fakeTaskRepo{tasks: make(map[uuid.UUID]*entity.AdTask)}
	for _, task := range tasks {
		r.tasks[task.ID] = task
	}
	return r
}

func (r *fakeTaskRepo) Create(_ context.Context, task *entity.AdTask) error {
	r.tasks[task.ID] = task
	return nil
}

func (r *fakeTaskRepo) FindByID(_ context.Context, id uuid.UUID) (*entity.AdTask, error) {
	task, ok := r.tasks[id]
	if !ok {
		return nil, domainerror.ErrTaskNotFound
	}
	return task, nil
}

func (r *fakeTaskRepo) FindOpen(_ context.Context, now time.Time) ([]*entity.AdTask, error) {
	var out []*entity.AdTask
	for _, task := range r.tasks {
		if task.IsOpen(now) {
			out = append(out, task)
		}
	}
	return out, nil
}

func (r *fakeTaskRepo) Update(_ context.Context, task *entity.AdTask) error {
	r.tasks[task.ID] = task
	return nil
}

type fakeCompletionRepo struct {
	mu          sync.Mutex
	completions []*entity.TaskCompletion
}

func (r *fakeCompletionRepo) Create(_ context.Context, c *entity.TaskCompletion) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.completions {
		if existing.UserID == c.UserID && existing.TaskID == c.TaskID {
			return domainerror.ErrTaskAlreadyCompleted
		}
	}
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
	return nil, nil
}

func (r *fakeCompletionRepo) Update(_ context.Context, c *entity.TaskCompletion) error {
	return nil
}

func activeTask(t *testing.T, now time.Time, minMinutes, entries int) *entity.AdTask {
	t.Helper()
	task := entity.NewAdTask(
		"Savings habits survey",
		"Ten questions about saving habits",
		"Acme Research",
		entity.TaskSurvey,
		entity.TaskRequirements{MinTimeMinutes: minMinutes, SkillLevel: entity.SkillBeginner},
		entity.TaskReward{Entries: entries},
		entity.TaskSchedule{StartDate: now.AddDate(0, 0, -1), EndDate: now.AddDate(0, 0, 7)},
	)
	task.Status = entity.TaskStatusActive
	return task
}

func TestSubmitTask(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	userID := uuid.New()
	answers := []entity.TaskAnswer{{QuestionID: "q1", Answer: "weekly"}}

	t.Run("submission records answers and entry value", func(t *testing.T) {
		task := activeTask(t, now, 5, 3)
		taskRepo := newFakeTaskRepo(task)
		completionRepo := &fakeCompletionRepo{}

		start := NewStartTaskUseCase(taskRepo, completionRepo, &fakeClock{now: now})
		_, err := start.Execute(context.Background(), StartTaskInput{UserID: userID, TaskID: task.ID})
		require.NoError(t, err)

		uc := NewSubmitTaskUseCase(taskRepo, completionRepo, &fakeClock{now: now.Add(10 * time.Minute)})
		out, err := uc.Execute(context.Background(), SubmitTaskInput{
			UserID:           userID,
			TaskID:           task.ID,
			Answers:          answers,
			TimeSpentMinutes: 8,
		})
		require.NoError(t, err)

		assert.Equal(t, entity.CompletionStatusCompleted, out.Completion.Status)
		assert.Equal(t, 3, out.Completion.EntryValue)
		assert.Equal(t, answers, out.Completion.Answers)
		require.NotNil(t, out.Completion.CompletedAt)

		// Analytics pick up the completion.
		assert.Equal(t, 1, task.Analytics.Completions)
		assert.Equal(t, float64(8), task.Analytics.AvgCompletionMins)
	})

	t.Run("below minimum time is rejected", func(t *testing.T) {
		task := activeTask(t, now, 15, 1)
		taskRepo := newFakeTaskRepo(task)
		completionRepo := &fakeCompletionRepo{}

		start := NewStartTaskUseCase(taskRepo, completionRepo, &fakeClock{now: now})
		_, err := start.Execute(context.Background(), StartTaskInput{UserID: userID, TaskID: task.ID})
		require.NoError(t, err)

		uc := NewSubmitTaskUseCase(taskRepo, completionRepo, &fakeClock{now: now})
		_, err = uc.Execute(context.Background(), SubmitTaskInput{
			UserID:           userID,
			TaskID:           task.ID,
			Answers:          answers,
			TimeSpentMinutes: 5,
		})
		assert.ErrorIs(t, err, domainerror.ErrRequirementsNotMet)
	})

	t.Run("submitting without starting fails", func(t *testing.T) {
		task := activeTask(t, now, 5, 1)
		uc := NewSubmitTaskUseCase(newFakeTaskRepo(task), &fakeCompletionRepo{}, &fakeClock{now: now})
		_, err := uc.Execute(context.Background(), SubmitTaskInput{
			UserID:           userID,
			TaskID:           task.ID,
			Answers:          answers,
			TimeSpentMinutes: 10,
		})
		assert.ErrorIs(t, err, domainerror.ErrCompletionNotFound)
	})

	t.Run("double submission fails", func(t *testing.T) {
		task := activeTask(t, now, 5, 1)
		taskRepo := newFakeTaskRepo(task)
		completionRepo := &fakeCompletionRepo{}

		start := NewStartTaskUseCase(taskRepo, completionRepo, &fakeClock{now: now})
		_, err := start.Execute(context.Background(), StartTaskInput{UserID: userID, TaskID: task.ID})
		require.NoError(t, err)

		uc := NewSubmitTaskUseCase(taskRepo, completionRepo, &fakeClock{now: now})
		_, err = uc.Execute(context.Background(), SubmitTaskInput{
			UserID: userID, TaskID: task.ID, Answers: answers, TimeSpentMinutes: 10,
		})
		require.NoError(t, err)

		_, err = uc.Execute(context.Background(), SubmitTaskInput{
			UserID: userID, TaskID: task.ID, Answers: answers, TimeSpentMinutes: 10,
		})
		assert.ErrorIs(t, err, domainerror.ErrTaskAlreadyCompleted)
	})
}

func TestStartTask(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	userID := uuid.New()

	t.Run("cannot start the same task twice", func(t *testing.T) {
		task := activeTask(t, now, 5, 1)
		taskRepo := newFakeTaskRepo(task)
		completionRepo := &fakeCompletionRepo{}

		uc := NewStartTaskUseCase(taskRepo, completionRepo, &fakeClock{now: now})
		_, err := uc.Execute(context.Background(), StartTaskInput{UserID: userID, TaskID: task.ID})
		require.NoError(t, err)

		_, err = uc.Execute(context.Background(), StartTaskInput{UserID: userID, TaskID: task.ID})
		assert.ErrorIs(t, err, domainerror.ErrTaskAlreadyCompleted)
	})

	t.Run("cannot start a draft task", func(t *testing.T) {
		task := activeTask(t, now, 5, 1)
		task.Status = entity.TaskStatusDraft
		uc := NewStartTaskUseCase(newFakeTaskRepo(task), &fakeCompletionRepo{}, &fakeClock{now: now})
		_, err := uc.Execute(context.Background(), StartTaskInput{UserID: userID, TaskID: task.ID})
		assert.ErrorIs(t, err, domainerror.ErrTaskNotOpen)
	})

	t.Run("max completions closes the task", func(t *testing.T) {
		task := activeTask(t, now, 5, 1)
		task.Schedule.MaxCompletions = 1
		task.RecordCompletion(10)
		uc := NewStartTaskUseCase(newFakeTaskRepo(task), &fakeCompletionRepo{}, &fakeClock{now: now})
		_, err := uc.Execute(context.Background(), StartTaskInput{UserID: uuid.New(), TaskID: task.ID})
		assert.ErrorIs(t, err, domainerror.ErrTaskNotOpen)
	})
}
