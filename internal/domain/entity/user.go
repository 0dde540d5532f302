// Package entity defines the core business entities for the domain layer.
package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// SubscriptionTier represents the user's subscription level, which drives
// the early-withdrawal fee schedule.
type SubscriptionTier string

const (
	TierBasic SubscriptionTier = "basic"
	TierPlus  SubscriptionTier = "plus"
	TierPro   SubscriptionTier = "pro"
)

// UserStats holds running aggregates updated by ledger and draw operations.
type UserStats struct {
	TotalSaved     decimal.Decimal
	TotalPrizesWon decimal.Decimal
	TasksCompleted int
	GoalsCompleted int
}

// User represents a user in the GoalGuard system.
type User struct {
	ID               uuid.UUID
	Email            string
	Name             string
	PasswordHash     string
	Tier             SubscriptionTier
	ModulrCustomerID string
	PrimaryAccountID string
	Stats            UserStats
	TermsAcceptedAt  time.Time
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// NewUser creates a new User with default values. The Modulr customer and
// primary account ids are filled in after the gateway onboarding step.
func NewUser(email, name, passwordHash string, termsAcceptedAt time.Time) *User {
	now := time.Now().UTC()
	return &User{
		ID:              uuid.New(),
		Email:           email,
		Name:            name,
		PasswordHash:    passwordHash,
		Tier:            TierBasic,
		TermsAcceptedAt: termsAcceptedAt,
		Stats: UserStats{
			TotalSaved:     decimal.Zero,
			TotalPrizesWon: decimal.Zero,
		},
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// RecordSaving adds a contribution to the user's saved total.
func (u *User) RecordSaving(amount decimal.Decimal) {
	u.Stats.TotalSaved = u.Stats.TotalSaved.Add(amount)
	u.UpdatedAt = time.Now().UTC()
}

// RecordPrize adds a prize win to the user's aggregates.
func (u *User) RecordPrize(amount decimal.Decimal) {
	u.Stats.TotalPrizesWon = u.Stats.TotalPrizesWon.Add(amount)
	u.UpdatedAt = time.Now().UTC()
}

// RecordTaskCompletion bumps the user's completed-task counter.
func (u *User) RecordTaskCompletion() {
	u.Stats.TasksCompleted++
	u.UpdatedAt = time.Now().UTC()
}

// RecordGoalCompletion bumps the user's completed-goal counter.
func (u *User) RecordGoalCompletion() {
	u.Stats.GoalsCompleted++
	u.UpdatedAt = time.Now().UTC()
}
