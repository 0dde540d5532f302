// Package adapter defines interfaces that will be implemented in the integration layer.
package adapter

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/goalguard/backend/internal/domain/entity"
)

// DrawRepository defines the interface for prize draw persistence.
type DrawRepository interface {
	// Create creates a new draw.
	Create(ctx context.Context, draw *entity.Draw) error

	// FindByID retrieves a draw by its ID.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Draw, error)

	// FindDue retrieves upcoming draws whose drawDate has passed.
	FindDue(ctx context.Context, now time.Time) ([]*entity.Draw, error)

	// FindCurrent retrieves upcoming draws ordered by draw date.
	FindCurrent(ctx context.Context, now time.Time) ([]*entity.Draw, error)

	// FindCompleted retrieves the most recent completed draws with winners.
	FindCompleted(ctx context.Context, limit int) ([]*entity.Draw, error)

	// Claim atomically transitions the draw from upcoming to in_progress.
	// It reports whether this caller won the claim; a false return with nil
	// error means another execution already holds or held it. This single
	// conditional update is the draw engine's sole concurrency guard.
	Claim(ctx context.Context, id uuid.UUID) (bool, error)

	// Release returns a claimed draw to upcoming after a failed run so the
	// next scheduler tick retries it.
	Release(ctx context.Context, id uuid.UUID) error

	// Complete persists the winner list and the completed status as the
	// terminal atomic step of draw execution.
	Complete(ctx context.Context, draw *entity.Draw) error
}
