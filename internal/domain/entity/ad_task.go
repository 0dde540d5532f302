// Package entity defines the core business entities for the domain layer.
package entity

import (
	"time"

	"github.com/google/uuid"
)

// TaskType represents the kind of sponsored ad task.
type TaskType string

const (
	TaskSurvey            TaskType = "survey"
	TaskProductFeedback   TaskType = "product_feedback"
	TaskCreativeChallenge TaskType = "creative_challenge"
	TaskEducational       TaskType = "educational"
	TaskMarketResearch    TaskType = "market_research"
)

// TaskStatus represents the publication state of an ad task.
type TaskStatus string

const (
	TaskStatusDraft     TaskStatus = "draft"
	TaskStatusActive    TaskStatus = "active"
	TaskStatusPaused    TaskStatus = "paused"
	TaskStatusCompleted TaskStatus = "completed"
)

// SkillLevel qualifies who a task is aimed at.
type SkillLevel string

const (
	SkillBeginner     SkillLevel = "beginner"
	SkillIntermediate SkillLevel = "intermediate"
	SkillAdvanced     SkillLevel = "advanced"
)

// TaskRequirements enumerates the concrete completion criteria a submission
// is checked against.
type TaskRequirements struct {
	MinTimeMinutes int
	SkillLevel     SkillLevel
}

// TaskReward holds what a completed task earns toward prize draws.
type TaskReward struct {
	Entries int
}

// TaskSchedule bounds when a task is open for completion.
type TaskSchedule struct {
	StartDate      time.Time
	EndDate        time.Time
	MaxCompletions int // 0 means unlimited
}

// TaskAnalytics holds running completion statistics.
type TaskAnalytics struct {
	Completions       int
	AvgCompletionMins float64
}

// AdTask represents a sponsored task users complete to earn prize entries.
type AdTask struct {
	ID           uuid.UUID
	Title        string
	Description  string
	SponsorName  string
	Type         TaskType
	Requirements TaskRequirements
	Reward       TaskReward
	Schedule     TaskSchedule
	Status       TaskStatus
	Analytics    TaskAnalytics
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// NewAdTask creates a draft ad task.
func NewAdTask(title, description, sponsorName string, taskType TaskType, requirements TaskRequirements, reward TaskReward, schedule TaskSchedule) *AdTask {
	now := time.Now().UTC()
	if requirements.SkillLevel == "" {
		requirements.SkillLevel = SkillBeginner
	}
	if reward.Entries <= 0 {
		reward.Entries = 1
	}
	return &AdTask{
		ID:           uuid.New(),
		Title:        title,
		Description:  description,
		SponsorName:  sponsorName,
		Type:         taskType,
		Requirements: requirements,
		Reward:       reward,
		Schedule:     schedule,
		Status:       TaskStatusDraft,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
}

// IsOpen reports whether the task accepts completions at the given time.
func (t *AdTask) IsOpen(now time.Time) bool {
	if t.Status != TaskStatusActive {
		return false
	}
	if now.Before(t.Schedule.StartDate) || now.After(t.Schedule.EndDate) {
		return false
	}
	if t.Schedule.MaxCompletions > 0 && t.Analytics.Completions >= t.Schedule.MaxCompletions {
		return false
	}
	return true
}

// RecordCompletion updates the task's rolling completion analytics.
func (t *AdTask) RecordCompletion(timeSpentMinutes int) {
	prior := t.Analytics.AvgCompletionMins * float64(t.Analytics.Completions)
	t.Analytics.Completions++
	t.Analytics.AvgCompletionMins = (prior + float64(timeSpentMinutes)) / float64(t.Analytics.Completions)
	t.UpdatedAt = time.Now().UTC()
}
