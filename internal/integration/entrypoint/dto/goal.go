// Package dto defines data transfer objects for API requests and responses.
package dto

import (
	"time"

	"github.com/goalguard/backend/internal/domain/entity"
)

// CreateGoalRequest represents the request body for goal creation.
type CreateGoalRequest struct {
	Name         string       `json:"name" binding:"required,min=1,max=100"`
	TargetAmount string       `json:"target_amount" binding:"required"`
	Category     string       `json:"category" binding:"omitempty,oneof=holiday emergency deposit education vehicle wedding other"`
	EndDate      string       `json:"end_date" binding:"required"`
	Plan         *PlanRequest `json:"plan,omitempty"`
}

// PlanRequest represents the contribution plan in goal creation.
type PlanRequest struct {
	Frequency string `json:"frequency" binding:"required,oneof=weekly fortnightly monthly custom"`
	Amount    string `json:"amount" binding:"required"`
}

// ContributeRequest represents the request body for a goal contribution.
type ContributeRequest struct {
	Amount          string `json:"amount" binding:"required"`
	SourceAccountID string `json:"source_account_id,omitempty"`
}

// WithdrawRequest represents the request body for a goal withdrawal.
type WithdrawRequest struct {
	Amount      string `json:"amount" binding:"required"`
	IsEmergency bool   `json:"is_emergency"`
}

// PlanResponse represents the contribution plan in API responses.
type PlanResponse struct {
	Frequency        string `json:"frequency"`
	Amount           string `json:"amount"`
	NextContribution string `json:"next_contribution"`
}

// GoalResponse represents a single savings goal in API responses.
type GoalResponse struct {
	ID                    string       `json:"id"`
	UserID                string       `json:"user_id"`
	Name                  string       `json:"name"`
	TargetAmount          string       `json:"target_amount"`
	CurrentAmount         string       `json:"current_amount"`
	Category              string       `json:"category"`
	Status                string       `json:"status"`
	AccountID             string       `json:"account_id"`
	Plan                  PlanResponse `json:"plan"`
	StartDate             string       `json:"start_date"`
	EndDate               string       `json:"end_date"`
	AllowedWithdrawalDate string       `json:"allowed_withdrawal_date"`
	Locked                bool         `json:"locked"`
	DaysUntilWithdrawal   int          `json:"days_until_withdrawal"`
	ProgressPercentage    string       `json:"progress_percentage"`
	DaysRemaining         int          `json:"days_remaining"`
	MonthlyTarget         string       `json:"monthly_target"`
	CreatedAt             time.Time    `json:"created_at"`
	UpdatedAt             time.Time    `json:"updated_at"`
}

// GoalListResponse represents the response for listing goals.
type GoalListResponse struct {
	Goals []GoalResponse `json:"goals"`
}

// TransactionResponse represents a ledger entry in API responses.
type TransactionResponse struct {
	ID          string    `json:"id"`
	GoalID      *string   `json:"goal_id,omitempty"`
	Type        string    `json:"type"`
	Amount      string    `json:"amount"`
	Description string    `json:"description"`
	IsEmergency bool      `json:"is_emergency"`
	CreatedAt   time.Time `json:"created_at"`
}

// WithdrawResponse represents the response for a goal withdrawal.
type WithdrawResponse struct {
	Goal         GoalResponse          `json:"goal"`
	NetAmount    string                `json:"net_amount"`
	Fee          string                `json:"fee"`
	Transactions []TransactionResponse `json:"transactions"`
}

// ContributeResponse represents the response for a goal contribution.
type ContributeResponse struct {
	Goal        GoalResponse        `json:"goal"`
	Transaction TransactionResponse `json:"transaction"`
}

// ToGoalResponse converts a domain SavingsGoal entity to a GoalResponse DTO.
func ToGoalResponse(g *entity.SavingsGoal, now time.Time) GoalResponse {
	return GoalResponse{
		ID:            g.ID.String(),
		UserID:        g.UserID.String(),
		Name:          g.Name,
		TargetAmount:  g.TargetAmount.StringFixed(2),
		CurrentAmount: g.CurrentAmount.StringFixed(2),
		Category:      string(g.Category),
		Status:        string(g.Status),
		AccountID:     g.AccountID,
		Plan: PlanResponse{
			Frequency:        string(g.Plan.Frequency),
			Amount:           g.Plan.Amount.StringFixed(2),
			NextContribution: g.Plan.NextContribution.Format("2006-01-02"),
		},
		StartDate:             g.StartDate.Format("2006-01-02"),
		EndDate:               g.EndDate.Format("2006-01-02"),
		AllowedWithdrawalDate: g.AllowedWithdrawalDate.Format("2006-01-02"),
		Locked:                g.IsLocked(now),
		DaysUntilWithdrawal:   g.DaysUntilWithdrawal(now),
		ProgressPercentage:    g.Progress.Percentage.StringFixed(2),
		DaysRemaining:         g.Progress.DaysRemaining,
		MonthlyTarget:         g.Progress.MonthlyTarget.StringFixed(2),
		CreatedAt:             g.CreatedAt,
		UpdatedAt:             g.UpdatedAt,
	}
}

// ToGoalListResponse converts a list of goals to GoalListResponse.
func ToGoalListResponse(goals []*entity.SavingsGoal, now time.Time) GoalListResponse {
	out := make([]GoalResponse, len(goals))
	for i, g := range goals {
		out[i] = ToGoalResponse(g, now)
	}
	return GoalListResponse{Goals: out}
}

// ToTransactionResponse converts a domain Transaction to its DTO.
func ToTransactionResponse(tx *entity.Transaction) TransactionResponse {
	response := TransactionResponse{
		ID:          tx.ID.String(),
		Type:        string(tx.Type),
		Amount:      tx.Amount.StringFixed(2),
		Description: tx.Description,
		IsEmergency: tx.IsEmergency,
		CreatedAt:   tx.CreatedAt,
	}
	if tx.GoalID != nil {
		id := tx.GoalID.String()
		response.GoalID = &id
	}
	return response
}

// ToTransactionListResponse converts a list of transactions to DTOs.
func ToTransactionListResponse(txs []*entity.Transaction) []TransactionResponse {
	out := make([]TransactionResponse, len(txs))
	for i, tx := range txs {
		out[i] = ToTransactionResponse(tx)
	}
	return out
}
