package entity

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

// The stored string values are compared against raw status columns in task
// queries; renaming a constant must never change them.
func TestCompletionStatusValues(t *testing.T) {
	assert.Equal(t, CompletionStatus("assigned"), CompletionStatusAssigned)
	assert.Equal(t, CompletionStatus("in_progress"), CompletionStatusInProgress)
	assert.Equal(t, CompletionStatus("completed"), CompletionStatusCompleted)
	assert.Equal(t, CompletionStatus("approved"), CompletionStatusApproved)
	assert.Equal(t, CompletionStatus("rejected"), CompletionStatusRejected)
}

func TestTaskCompletionLifecycle(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	c := NewTaskCompletion(uuid.New(), uuid.New(), now)

	assert.Equal(t, CompletionStatusInProgress, c.Status)
	assert.Equal(t, now, c.StartedAt)
	assert.Nil(t, c.CompletedAt)

	submittedAt := now.Add(10 * time.Minute)
	c.Submit([]TaskAnswer{{QuestionID: "q1", Answer: "a1"}}, 10, 3, submittedAt)

	assert.Equal(t, CompletionStatusCompleted, c.Status)
	assert.Equal(t, 3, c.EntryValue)
	assert.Equal(t, &submittedAt, c.CompletedAt)

	reviewedAt := submittedAt.Add(time.Hour)
	c.Approve(reviewedAt)

	assert.Equal(t, CompletionStatusApproved, c.Status)
	assert.Equal(t, &reviewedAt, c.ReviewedAt)
}

func TestTaskCompletionReject(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	c := NewTaskCompletion(uuid.New(), uuid.New(), now)
	c.Submit([]TaskAnswer{{QuestionID: "q1", Answer: "a1"}}, 10, 3, now.Add(10*time.Minute))

	c.Reject(now.Add(time.Hour))

	assert.Equal(t, CompletionStatusRejected, c.Status)
	assert.NotNil(t, c.ReviewedAt)
}
