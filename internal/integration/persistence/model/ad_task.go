// Package model defines database models for persistence layer.
package model

import (
	"time"

	"github.com/google/uuid"

	"github.com/goalguard/backend/internal/domain/entity"
)

// AdTaskModel represents the ad_tasks table in the database.
type AdTaskModel struct {
	ID                uuid.UUID `gorm:"type:uuid;primaryKey"`
	Title             string    `gorm:"type:varchar(200);not null"`
	Description       string    `gorm:"type:text"`
	SponsorName       string    `gorm:"type:varchar(100);not null"`
	Type              string    `gorm:"type:varchar(30);not null"`
	MinTimeMinutes    int       `gorm:"not null;default:0"`
	SkillLevel        string    `gorm:"type:varchar(20);not null;default:'beginner'"`
	RewardEntries     int       `gorm:"not null;default:1"`
	StartDate         time.Time `gorm:"not null"`
	EndDate           time.Time `gorm:"not null"`
	MaxCompletions    int       `gorm:"not null;default:0"`
	Status            string    `gorm:"type:varchar(20);not null;default:'draft';index"`
	Completions       int       `gorm:"not null;default:0"`
	AvgCompletionMins float64   `gorm:"not null;default:0"`
	CreatedAt         time.Time `gorm:"not null"`
	UpdatedAt         time.Time `gorm:"not null"`
}

// TableName returns the table name for the AdTaskModel.
func (AdTaskModel) TableName() string {
	return "ad_tasks"
}

// ToEntity converts an AdTaskModel to a domain AdTask entity.
func (m *AdTaskModel) ToEntity() *entity.AdTask {
	return &entity.AdTask{
		ID:          m.ID,
		Title:       m.Title,
		Description: m.Description,
		SponsorName: m.SponsorName,
		Type:        entity.TaskType(m.Type),
		Requirements: entity.TaskRequirements{
			MinTimeMinutes: m.MinTimeMinutes,
			SkillLevel:     entity.SkillLevel(m.SkillLevel),
		},
		Reward: entity.TaskReward{Entries: m.RewardEntries},
		Schedule: entity.TaskSchedule{
			StartDate:      m.StartDate,
			EndDate:        m.EndDate,
			MaxCompletions: m.MaxCompletions,
		},
		Status: entity.TaskStatus(m.Status),
		Analytics: entity.TaskAnalytics{
			Completions:       m.Completions,
			AvgCompletionMins: m.AvgCompletionMins,
		},
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
}

// AdTaskFromEntity creates an AdTaskModel from a domain AdTask entity.
func AdTaskFromEntity(task *entity.AdTask) *AdTaskModel {
	return &AdTaskModel{
		ID:                task.ID,
		Title:             task.Title,
		Description:       task.Description,
		SponsorName:       task.SponsorName,
		Type:              string(task.Type),
		MinTimeMinutes:    task.Requirements.MinTimeMinutes,
		SkillLevel:        string(task.Requirements.SkillLevel),
		RewardEntries:     task.Reward.Entries,
		StartDate:         task.Schedule.StartDate,
		EndDate:           task.Schedule.EndDate,
		MaxCompletions:    task.Schedule.MaxCompletions,
		Status:            string(task.Status),
		Completions:       task.Analytics.Completions,
		AvgCompletionMins: task.Analytics.AvgCompletionMins,
		CreatedAt:         task.CreatedAt,
		UpdatedAt:         task.UpdatedAt,
	}
}
