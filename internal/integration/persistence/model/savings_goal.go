// Package model defines database models for persistence layer.
package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/goalguard/backend/internal/domain/entity"
)

// SavingsGoalModel represents the savings_goals table in the database. The
// version column backs the optimistic concurrency check on balance updates.
type SavingsGoalModel struct {
	ID                    uuid.UUID       `gorm:"type:uuid;primaryKey"`
	UserID                uuid.UUID       `gorm:"type:uuid;not null;index"`
	Name                  string          `gorm:"type:varchar(100);not null"`
	TargetAmount          decimal.Decimal `gorm:"type:decimal(15,2);not null"`
	CurrentAmount         decimal.Decimal `gorm:"type:decimal(15,2);not null;default:0"`
	Category              string          `gorm:"type:varchar(30);not null"`
	StartDate             time.Time       `gorm:"not null"`
	EndDate               time.Time       `gorm:"not null"`
	PlanFrequency         string          `gorm:"type:varchar(20)"`
	PlanAmount            decimal.Decimal `gorm:"type:decimal(15,2)"`
	PlanNextContribution  time.Time
	Status                string          `gorm:"type:varchar(20);not null;default:'active';index"`
	AccountID             string          `gorm:"type:varchar(100);not null"`
	AllowedWithdrawalDate time.Time       `gorm:"not null"`
	ProgressPercentage    decimal.Decimal `gorm:"type:decimal(7,2);not null;default:0"`
	DaysRemaining         int             `gorm:"not null;default:0"`
	MonthlyTarget         decimal.Decimal `gorm:"type:decimal(15,2);not null;default:0"`
	Version               int64           `gorm:"not null;default:0"`
	CreatedAt             time.Time       `gorm:"not null"`
	UpdatedAt             time.Time       `gorm:"not null"`
}

// TableName returns the table name for the SavingsGoalModel.
func (SavingsGoalModel) TableName() string {
	return "savings_goals"
}

// ToEntity converts a SavingsGoalModel to a domain SavingsGoal entity.
func (m *SavingsGoalModel) ToEntity() *entity.SavingsGoal {
	return &entity.SavingsGoal{
		ID:            m.ID,
		UserID:        m.UserID,
		Name:          m.Name,
		TargetAmount:  m.TargetAmount,
		CurrentAmount: m.CurrentAmount,
		Category:      entity.GoalCategory(m.Category),
		StartDate:     m.StartDate,
		EndDate:       m.EndDate,
		Plan: entity.ContributionPlan{
			Frequency:        entity.ContributionFrequency(m.PlanFrequency),
			Amount:           m.PlanAmount,
			NextContribution: m.PlanNextContribution,
		},
		Status:                entity.GoalStatus(m.Status),
		AccountID:             m.AccountID,
		AllowedWithdrawalDate: m.AllowedWithdrawalDate,
		Progress: entity.GoalProgress{
			Percentage:    m.ProgressPercentage,
			DaysRemaining: m.DaysRemaining,
			MonthlyTarget: m.MonthlyTarget,
		},
		Version:   m.Version,
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
}

// SavingsGoalFromEntity creates a SavingsGoalModel from a domain SavingsGoal entity.
func SavingsGoalFromEntity(goal *entity.SavingsGoal) *SavingsGoalModel {
	return &SavingsGoalModel{
		ID:                    goal.ID,
		UserID:                goal.UserID,
		Name:                  goal.Name,
		TargetAmount:          goal.TargetAmount,
		CurrentAmount:         goal.CurrentAmount,
		Category:              string(goal.Category),
		StartDate:             goal.StartDate,
		EndDate:               goal.EndDate,
		PlanFrequency:         string(goal.Plan.Frequency),
		PlanAmount:            goal.Plan.Amount,
		PlanNextContribution:  goal.Plan.NextContribution,
		Status:                string(goal.Status),
		AccountID:             goal.AccountID,
		AllowedWithdrawalDate: goal.AllowedWithdrawalDate,
		ProgressPercentage:    goal.Progress.Percentage,
		DaysRemaining:         goal.Progress.DaysRemaining,
		MonthlyTarget:         goal.Progress.MonthlyTarget,
		Version:               goal.Version,
		CreatedAt:             goal.CreatedAt,
		UpdatedAt:             goal.UpdatedAt,
	}
}
