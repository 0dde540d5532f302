// Package model defines database models for persistence layer.
package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/goalguard/backend/internal/domain/entity"
)

// UserModel represents the users table in the database.
type UserModel struct {
	ID               uuid.UUID       `gorm:"type:uuid;primaryKey"`
	Email            string          `gorm:"type:varchar(255);uniqueIndex;not null"`
	Name             string          `gorm:"type:varchar(100);not null"`
	PasswordHash     string          `gorm:"type:varchar(255);not null"`
	Tier             string          `gorm:"type:varchar(20);not null;default:'basic'"`
	ModulrCustomerID string          `gorm:"type:varchar(100)"`
	PrimaryAccountID string          `gorm:"type:varchar(100)"`
	TotalSaved       decimal.Decimal `gorm:"type:decimal(15,2);not null;default:0"`
	TotalPrizesWon   decimal.Decimal `gorm:"type:decimal(15,2);not null;default:0"`
	TasksCompleted   int             `gorm:"not null;default:0"`
	GoalsCompleted   int             `gorm:"not null;default:0"`
	TermsAcceptedAt  time.Time       `gorm:"not null"`
	CreatedAt        time.Time       `gorm:"not null"`
	UpdatedAt        time.Time       `gorm:"not null"`
}

// TableName returns the table name for the UserModel.
func (UserModel) TableName() string {
	return "users"
}

// ToEntity converts a UserModel to a domain User entity.
func (m *UserModel) ToEntity() *entity.User {
	return &entity.User{
		ID:               m.ID,
		Email:            m.Email,
		Name:             m.Name,
		PasswordHash:     m.PasswordHash,
		Tier:             entity.SubscriptionTier(m.Tier),
		ModulrCustomerID: m.ModulrCustomerID,
		PrimaryAccountID: m.PrimaryAccountID,
		Stats: entity.UserStats{
			TotalSaved:     m.TotalSaved,
			TotalPrizesWon: m.TotalPrizesWon,
			TasksCompleted: m.TasksCompleted,
			GoalsCompleted: m.GoalsCompleted,
		},
		TermsAcceptedAt: m.TermsAcceptedAt,
		CreatedAt:       m.CreatedAt,
		UpdatedAt:       m.UpdatedAt,
	}
}

// UserFromEntity creates a UserModel from a domain User entity.
func UserFromEntity(user *entity.User) *UserModel {
	return &UserModel{
		ID:               user.ID,
		Email:            user.Email,
		Name:             user.Name,
		PasswordHash:     user.PasswordHash,
		Tier:             string(user.Tier),
		ModulrCustomerID: user.ModulrCustomerID,
		PrimaryAccountID: user.PrimaryAccountID,
		TotalSaved:       user.Stats.TotalSaved,
		TotalPrizesWon:   user.Stats.TotalPrizesWon,
		TasksCompleted:   user.Stats.TasksCompleted,
		GoalsCompleted:   user.Stats.GoalsCompleted,
		TermsAcceptedAt:  user.TermsAcceptedAt,
		CreatedAt:        user.CreatedAt,
		UpdatedAt:        user.UpdatedAt,
	}
}

// RefreshTokenModel represents the refresh_tokens table for token invalidation tracking.
type RefreshTokenModel struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey"`
	Token       string    `gorm:"type:varchar(500);uniqueIndex;not null"`
	UserID      uuid.UUID `gorm:"type:uuid;index;not null"`
	Invalidated bool      `gorm:"default:false"`
	ExpiresAt   time.Time `gorm:"not null"`
	CreatedAt   time.Time `gorm:"not null"`
}

// TableName returns the table name for the RefreshTokenModel.
func (RefreshTokenModel) TableName() string {
	return "refresh_tokens"
}
