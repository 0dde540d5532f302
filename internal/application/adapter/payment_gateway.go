// Package adapter defines interfaces that will be implemented in the integration layer.
package adapter

import (
	"context"

	"github.com/shopspring/decimal"
)

// GatewayCustomer is the provider-side identity created during onboarding.
type GatewayCustomer struct {
	CustomerID       string
	PrimaryAccountID string
}

// GatewayAccount is a provider sub-account holding funds for a single goal.
type GatewayAccount struct {
	AccountID string
}

// TransferRequest describes a single money movement between gateway accounts.
// IdempotencyKey makes retried submissions safe against double execution.
type TransferRequest struct {
	FromAccountID  string
	ToAccountID    string
	Amount         decimal.Decimal
	Reference      string
	IdempotencyKey string
}

// TransferResult carries the provider's reference for a settled transfer.
type TransferResult struct {
	TransferID string
	Status     string
}

// PaymentGateway defines the interface for the external payments provider.
// Implementations return GatewayError values so callers can distinguish
// provider rejections from transport failures.
type PaymentGateway interface {
	// CreateCustomer onboards a user with the provider and opens their
	// primary account.
	CreateCustomer(ctx context.Context, name, email string) (*GatewayCustomer, error)

	// CreateSubAccount opens a segregated account under the customer for
	// a single savings goal.
	CreateSubAccount(ctx context.Context, customerID, label string) (*GatewayAccount, error)

	// Transfer moves money between two gateway accounts.
	Transfer(ctx context.Context, req TransferRequest) (*TransferResult, error)

	// GetBalance returns the current balance of a gateway account.
	GetBalance(ctx context.Context, accountID string) (decimal.Decimal, error)
}
