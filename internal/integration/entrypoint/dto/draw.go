package dto

import (
	"time"

	"github.com/goalguard/backend/internal/domain/entity"
)

// CreateDrawRequest represents the request body for scheduling a draw.
type CreateDrawRequest struct {
	Kind         string `json:"kind" binding:"required,oneof=weekly monthly goal_completion"`
	Name         string `json:"name" binding:"required,min=1,max=200"`
	PrizePool    string `json:"prize_pool" binding:"required"`
	EntryStart   string `json:"entry_start" binding:"required"`
	EntryEnd     string `json:"entry_end" binding:"required"`
	DrawDate     string `json:"draw_date" binding:"required"`
	MinimumTasks int    `json:"minimum_tasks" binding:"omitempty,gte=0"`
}

// WinnerResponse represents one draw winner in API responses.
type WinnerResponse struct {
	UserID      string `json:"user_id"`
	PrizeAmount string `json:"prize_amount"`
	Position    int    `json:"position"`
	Tier        string `json:"tier"`
	Paid        bool   `json:"paid"`
}

// DrawResponse represents a prize draw in API responses.
type DrawResponse struct {
	ID           string           `json:"id"`
	Kind         string           `json:"kind"`
	Name         string           `json:"name"`
	PrizePool    string           `json:"prize_pool"`
	EntryStart   time.Time        `json:"entry_start"`
	EntryEnd     time.Time        `json:"entry_end"`
	DrawDate     time.Time        `json:"draw_date"`
	Status       string           `json:"status"`
	MinimumTasks int              `json:"minimum_tasks"`
	Winners      []WinnerResponse `json:"winners,omitempty"`
	ExecutedAt   *time.Time       `json:"executed_at,omitempty"`
}

// DrawListResponse represents the response for listing draws.
type DrawListResponse struct {
	Current []DrawResponse `json:"current"`
	Past    []DrawResponse `json:"past"`
}

// EntriesResponse represents a user's entry count for a draw.
type EntriesResponse struct {
	DrawID         string `json:"draw_id"`
	TotalEntries   int    `json:"total_entries"`
	TasksCompleted int    `json:"tasks_completed"`
	MinimumTasks   int    `json:"minimum_tasks"`
	Eligible       bool   `json:"eligible"`
}

// ToDrawResponse converts a domain Draw entity to its DTO.
func ToDrawResponse(d *entity.Draw) DrawResponse {
	response := DrawResponse{
		ID:           d.ID.String(),
		Kind:         string(d.Kind),
		Name:         d.Name,
		PrizePool:    d.PrizePool.StringFixed(2),
		EntryStart:   d.EntryStart,
		EntryEnd:     d.EntryEnd,
		DrawDate:     d.DrawDate,
		Status:       string(d.Status),
		MinimumTasks: d.MinimumTasks,
		ExecutedAt:   d.ExecutedAt,
	}
	for _, w := range d.Winners {
		response.Winners = append(response.Winners, WinnerResponse{
			UserID:      w.UserID.String(),
			PrizeAmount: w.PrizeAmount.StringFixed(2),
			Position:    w.Position,
			Tier:        w.Tier,
			Paid:        w.Paid,
		})
	}
	return response
}

// ToDrawListResponse converts current and past draws to DrawListResponse.
func ToDrawListResponse(current, past []*entity.Draw) DrawListResponse {
	response := DrawListResponse{
		Current: make([]DrawResponse, len(current)),
		Past:    make([]DrawResponse, len(past)),
	}
	for i, d := range current {
		response.Current[i] = ToDrawResponse(d)
	}
	for i, d := range past {
		response.Past[i] = ToDrawResponse(d)
	}
	return response
}
