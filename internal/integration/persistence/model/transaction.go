// Package model defines database models for persistence layer.
package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/goalguard/backend/internal/domain/entity"
)

// TransactionModel represents the transactions table in the database.
// Rows are append-only; there is no update path.
type TransactionModel struct {
	ID          uuid.UUID       `gorm:"type:uuid;primaryKey"`
	UserID      uuid.UUID       `gorm:"type:uuid;not null;index"`
	GoalID      *uuid.UUID      `gorm:"type:uuid;index"`
	Type        string          `gorm:"type:varchar(20);not null"`
	Amount      decimal.Decimal `gorm:"type:decimal(15,2);not null"`
	Description string          `gorm:"type:varchar(255)"`
	ExternalRef string          `gorm:"type:varchar(100)"`
	IsEmergency bool            `gorm:"not null;default:false"`
	CreatedAt   time.Time       `gorm:"not null;index"`
}

// TableName returns the table name for the TransactionModel.
func (TransactionModel) TableName() string {
	return "transactions"
}

// ToEntity converts a TransactionModel to a domain Transaction entity.
func (m *TransactionModel) ToEntity() *entity.Transaction {
	return &entity.Transaction{
		ID:          m.ID,
		UserID:      m.UserID,
		GoalID:      m.GoalID,
		Type:        entity.TransactionType(m.Type),
		Amount:      m.Amount,
		Description: m.Description,
		ExternalRef: m.ExternalRef,
		IsEmergency: m.IsEmergency,
		CreatedAt:   m.CreatedAt,
	}
}

// TransactionFromEntity creates a TransactionModel from a domain Transaction entity.
func TransactionFromEntity(tx *entity.Transaction) *TransactionModel {
	return &TransactionModel{
		ID:          tx.ID,
		UserID:      tx.UserID,
		GoalID:      tx.GoalID,
		Type:        string(tx.Type),
		Amount:      tx.Amount,
		Description: tx.Description,
		ExternalRef: tx.ExternalRef,
		IsEmergency: tx.IsEmergency,
		CreatedAt:   tx.CreatedAt,
	}
}
