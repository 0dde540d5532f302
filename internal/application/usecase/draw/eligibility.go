// Package draw contains prize draw use cases.
package draw

import (
	"context"
	"fmt"
	"sort"

	"github.com/google/uuid"

	"github.com/goalguard/backend/internal/application/adapter"
	"github.com/goalguard/backend/internal/domain/entity"
)

// Entrant is one user eligible for a draw, with their aggregated entries.
type Entrant struct {
	UserID         uuid.UUID
	TotalEntries   int
	TasksCompleted int
}

// EligibilityUseCase converts approved task completions inside a draw's entry
// window into the draw's entrant set. Read-only and deterministic for a given
// snapshot of completions: entrants come back ordered by user id so repeated
// runs over the same data agree.
type EligibilityUseCase struct {
	completionRepo adapter.CompletionRepository
}

// NewEligibilityUseCase creates a new EligibilityUseCase instance.
func NewEligibilityUseCase(completionRepo adapter.CompletionRepository) *EligibilityUseCase {
	return &EligibilityUseCase{completionRepo: completionRepo}
}

// Execute returns the eligible entrants for the draw.
func (uc *EligibilityUseCase) Execute(ctx context.Context, draw *entity.Draw) ([]Entrant, error) {
	completions, err := uc.completionRepo.FindApprovedInPeriod(ctx, draw.EntryStart, draw.EntryEnd)
	if err != nil {
		return nil, fmt.Errorf("failed to load approved completions: %w", err)
	}

	byUser := make(map[uuid.UUID]*Entrant)
	for _, c := range completions {
		e, ok := byUser[c.UserID]
		if !ok {
			e = &Entrant{UserID: c.UserID}
			byUser[c.UserID] = e
		}
		e.TotalEntries += c.EntryValue
		e.TasksCompleted++
	}

	entrants := make([]Entrant, 0, len(byUser))
	for _, e := range byUser {
		if e.TasksCompleted >= draw.MinimumTasks {
			entrants = append(entrants, *e)
		}
	}

	sort.Slice(entrants, func(i, j int) bool {
		return entrants[i].UserID.String() < entrants[j].UserID.String()
	})

	return entrants, nil
}

// Entries returns one user's aggregate for the draw's entry window without
// the minimum-tasks filter, so users below the threshold still see their
// running count.
func (uc *EligibilityUseCase) Entries(ctx context.Context, draw *entity.Draw, userID uuid.UUID) (Entrant, error) {
	completions, err := uc.completionRepo.FindApprovedInPeriod(ctx, draw.EntryStart, draw.EntryEnd)
	if err != nil {
		return Entrant{}, fmt.Errorf("failed to load approved completions: %w", err)
	}

	e := Entrant{UserID: userID}
	for _, c := range completions {
		if c.UserID == userID {
			e.TotalEntries += c.EntryValue
			e.TasksCompleted++
		}
	}
	return e, nil
}
