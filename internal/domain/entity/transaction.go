// Package entity defines the core business entities for the domain layer.
package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// TransactionType represents the type of a ledger entry.
type TransactionType string

const (
	TransactionTypeContribution TransactionType = "contribution"
	TransactionTypeWithdrawal   TransactionType = "withdrawal"
	TransactionTypeFee          TransactionType = "fee"
	TransactionTypePrize        TransactionType = "prize"
)

// Transaction is an immutable audit entry. Every balance-changing ledger
// operation writes exactly one transaction (two for fee-bearing withdrawals)
// in the same unit of work as the balance update.
type Transaction struct {
	ID          uuid.UUID
	UserID      uuid.UUID
	GoalID      *uuid.UUID // nil for draw-level prize credits
	Type        TransactionType
	Amount      decimal.Decimal
	Description string
	ExternalRef string // gateway transfer id
	IsEmergency bool
	CreatedAt   time.Time
}

// NewTransaction creates a ledger entry for a goal-scoped operation.
func NewTransaction(userID uuid.UUID, goalID *uuid.UUID, txType TransactionType, amount decimal.Decimal, description, externalRef string, now time.Time) *Transaction {
	return &Transaction{
		ID:          uuid.New(),
		UserID:      userID,
		GoalID:      goalID,
		Type:        txType,
		Amount:      amount,
		Description: description,
		ExternalRef: externalRef,
		CreatedAt:   now,
	}
}
