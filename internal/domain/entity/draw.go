// Package entity defines the core business entities for the domain layer.
package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/goalguard/backend/internal/domain/valueobject"
)

// DrawKind represents the kind of prize draw.
type DrawKind string

const (
	DrawWeekly         DrawKind = "weekly"
	DrawMonthly        DrawKind = "monthly"
	DrawGoalCompletion DrawKind = "goal_completion"
)

// DrawStatus represents the lifecycle state of a draw. InProgress is a
// transient claim state, not an observable resting state: a claimed draw
// either completes or is released back to upcoming.
type DrawStatus string

const (
	DrawStatusUpcoming   DrawStatus = "upcoming"
	DrawStatusInProgress DrawStatus = "in_progress"
	DrawStatusCompleted  DrawStatus = "completed"
	DrawStatusCancelled  DrawStatus = "cancelled"
)

// Winner is one selected entrant with their allocated prize. Paid records
// whether the disbursement actually went through; a draw completes even when
// some winners could not be paid.
type Winner struct {
	UserID      uuid.UUID       `json:"user_id"`
	PrizeAmount decimal.Decimal `json:"prize_amount"`
	Position    int             `json:"position"`
	Tier        string          `json:"tier"`
	Paid        bool            `json:"paid"`
	PayoutRef   string          `json:"payout_ref,omitempty"`
	PayoutError string          `json:"payout_error,omitempty"`
	Notified    bool            `json:"notified"`
}

// Draw represents one scheduled prize draw with its entry window and prize
// structure. Winners is populated atomically with the completed transition,
// exactly once.
type Draw struct {
	ID             uuid.UUID
	Kind           DrawKind
	Name           string
	PrizePool      decimal.Decimal
	EntryStart     time.Time
	EntryEnd       time.Time
	DrawDate       time.Time
	Status         DrawStatus
	MinimumTasks   int
	PrizeStructure valueobject.PrizeStructure
	Winners        []Winner
	ExecutedAt     *time.Time
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// NewDraw creates an upcoming draw with the default prize structure for its
// kind.
func NewDraw(kind DrawKind, name string, prizePool decimal.Decimal, entryStart, entryEnd, drawDate time.Time, minimumTasks int) *Draw {
	now := time.Now().UTC()
	return &Draw{
		ID:             uuid.New(),
		Kind:           kind,
		Name:           name,
		PrizePool:      prizePool,
		EntryStart:     entryStart,
		EntryEnd:       entryEnd,
		DrawDate:       drawDate,
		Status:         DrawStatusUpcoming,
		MinimumTasks:   minimumTasks,
		PrizeStructure: valueobject.StructureForKind(string(kind)),
		CreatedAt:      now,
		UpdatedAt:      now,
	}
}

// IsDue reports whether the draw is ready to execute.
func (d *Draw) IsDue(now time.Time) bool {
	return d.Status == DrawStatusUpcoming && !d.DrawDate.After(now)
}

// Complete records the winner list and the terminal completed state.
func (d *Draw) Complete(winners []Winner, now time.Time) {
	d.Winners = winners
	d.Status = DrawStatusCompleted
	d.ExecutedAt = &now
	d.UpdatedAt = now
}
