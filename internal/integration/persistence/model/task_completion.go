// Package model defines database models for persistence layer.
package model

import (
	"database/sql"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/goalguard/backend/internal/domain/entity"
)

// TaskCompletionModel represents the task_completions table in the database.
// The composite unique index enforces one completion per (user, task) pair.
type TaskCompletionModel struct {
	ID               uuid.UUID    `gorm:"type:uuid;primaryKey"`
	UserID           uuid.UUID    `gorm:"type:uuid;not null;uniqueIndex:idx_user_task;index"`
	TaskID           uuid.UUID    `gorm:"type:uuid;not null;uniqueIndex:idx_user_task"`
	Status           string       `gorm:"type:varchar(20);not null;default:'assigned';index"`
	Answers          string       `gorm:"type:jsonb;not null;default:'[]'"`
	TimeSpentMinutes int          `gorm:"not null;default:0"`
	EntryValue       int          `gorm:"not null;default:0"`
	StartedAt        time.Time    `gorm:"not null"`
	CompletedAt      sql.NullTime `gorm:"index"`
	ReviewedAt       sql.NullTime
	CreatedAt        time.Time `gorm:"not null"`
}

// TableName returns the table name for the TaskCompletionModel.
func (TaskCompletionModel) TableName() string {
	return "task_completions"
}

// ToEntity converts a TaskCompletionModel to a domain TaskCompletion entity.
func (m *TaskCompletionModel) ToEntity() *entity.TaskCompletion {
	var answers []entity.TaskAnswer
	if m.Answers != "" {
		if err := json.Unmarshal([]byte(m.Answers), &answers); err != nil {
			slog.Warn("Failed to unmarshal completion answers", "error", err, "id", m.ID)
		}
	}

	var completedAt, reviewedAt *time.Time
	if m.CompletedAt.Valid {
		completedAt = &m.CompletedAt.Time
	}
	if m.ReviewedAt.Valid {
		reviewedAt = &m.ReviewedAt.Time
	}

	return &entity.TaskCompletion{
		ID:               m.ID,
		UserID:           m.UserID,
		TaskID:           m.TaskID,
		Status:           entity.CompletionStatus(m.Status),
		Answers:          answers,
		TimeSpentMinutes: m.TimeSpentMinutes,
		EntryValue:       m.EntryValue,
		StartedAt:        m.StartedAt,
		CompletedAt:      completedAt,
		ReviewedAt:       reviewedAt,
		CreatedAt:        m.CreatedAt,
	}
}

// TaskCompletionFromEntity creates a TaskCompletionModel from a domain TaskCompletion entity.
func TaskCompletionFromEntity(c *entity.TaskCompletion) *TaskCompletionModel {
	answersJSON, err := json.Marshal(c.Answers)
	if err != nil {
		slog.Error("Failed to marshal completion answers", "error", err, "id", c.ID)
		answersJSON = []byte("[]")
	}

	var completedAt, reviewedAt sql.NullTime
	if c.CompletedAt != nil {
		completedAt = sql.NullTime{Time: *c.CompletedAt, Valid: true}
	}
	if c.ReviewedAt != nil {
		reviewedAt = sql.NullTime{Time: *c.ReviewedAt, Valid: true}
	}

	return &TaskCompletionModel{
		ID:               c.ID,
		UserID:           c.UserID,
		TaskID:           c.TaskID,
		Status:           string(c.Status),
		Answers:          string(answersJSON),
		TimeSpentMinutes: c.TimeSpentMinutes,
		EntryValue:       c.EntryValue,
		StartedAt:        c.StartedAt,
		CompletedAt:      completedAt,
		ReviewedAt:       reviewedAt,
		CreatedAt:        c.CreatedAt,
	}
}
