package entity

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

// The stored string values are the ledger's wire format; renaming a constant
// must never change what lands in the type column.
func TestTransactionTypeValues(t *testing.T) {
	assert.Equal(t, TransactionType("contribution"), TransactionTypeContribution)
	assert.Equal(t, TransactionType("withdrawal"), TransactionTypeWithdrawal)
	assert.Equal(t, TransactionType("fee"), TransactionTypeFee)
	assert.Equal(t, TransactionType("prize"), TransactionTypePrize)
}

func TestNewTransaction(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	userID := uuid.New()
	goalID := uuid.New()

	tx := NewTransaction(userID, &goalID, TransactionTypeContribution, decimal.NewFromInt(40), "Contribution to Holiday fund", "T0001", now)

	assert.NotEqual(t, uuid.Nil, tx.ID)
	assert.Equal(t, userID, tx.UserID)
	assert.Equal(t, &goalID, tx.GoalID)
	assert.Equal(t, TransactionTypeContribution, tx.Type)
	assert.Equal(t, now, tx.CreatedAt)
	assert.False(t, tx.IsEmergency)
}
