// Package entity defines the core business entities for the domain layer.
package entity

import (
	"time"

	"github.com/google/uuid"
)

// CompletionStatus represents the lifecycle state of a user's task attempt.
type CompletionStatus string

const (
	CompletionStatusAssigned   CompletionStatus = "assigned"
	CompletionStatusInProgress CompletionStatus = "in_progress"
	CompletionStatusCompleted  CompletionStatus = "completed"
	CompletionStatusApproved   CompletionStatus = "approved"
	CompletionStatusRejected   CompletionStatus = "rejected"
)

// TaskAnswer holds one answer in a task submission.
type TaskAnswer struct {
	QuestionID string `json:"question_id"`
	Answer     string `json:"answer"`
}

// TaskCompletion records one user's attempt at one ad task. At most one
// completion exists per (user, task) pair. Entries count toward a draw only
// once the completion is approved and its CompletedAt falls inside the draw's
// entry period.
type TaskCompletion struct {
	ID               uuid.UUID
	UserID           uuid.UUID
	TaskID           uuid.UUID
	Status           CompletionStatus
	Answers          []TaskAnswer
	TimeSpentMinutes int
	EntryValue       int
	StartedAt        time.Time
	CompletedAt      *time.Time
	ReviewedAt       *time.Time
	CreatedAt        time.Time
}

// NewTaskCompletion creates an in-progress completion for a started task.
func NewTaskCompletion(userID, taskID uuid.UUID, now time.Time) *TaskCompletion {
	return &TaskCompletion{
		ID:        uuid.New(),
		UserID:    userID,
		TaskID:    taskID,
		Status:    CompletionStatusInProgress,
		StartedAt: now,
		CreatedAt: now,
	}
}

// Submit records the user's answers and marks the completion as completed,
// pending review.
func (c *TaskCompletion) Submit(answers []TaskAnswer, timeSpentMinutes, entryValue int, now time.Time) {
	c.Answers = answers
	c.TimeSpentMinutes = timeSpentMinutes
	c.EntryValue = entryValue
	c.Status = CompletionStatusCompleted
	c.CompletedAt = &now
}

// Approve marks a completed submission as approved, making its entries count.
func (c *TaskCompletion) Approve(now time.Time) {
	c.Status = CompletionStatusApproved
	c.ReviewedAt = &now
}

// Reject marks a completed submission as rejected.
func (c *TaskCompletion) Reject(now time.Time) {
	c.Status = CompletionStatusRejected
	c.ReviewedAt = &now
}
