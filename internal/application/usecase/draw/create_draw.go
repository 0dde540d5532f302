// Package draw contains prize draw use cases.
package draw

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/goalguard/backend/internal/application/adapter"
	"github.com/goalguard/backend/internal/domain/entity"
	domainerror "github.com/goalguard/backend/internal/domain/error"
)

// CreateDrawInput represents the input for creating a draw.
type CreateDrawInput struct {
	Kind         entity.DrawKind
	Name         string
	PrizePool    decimal.Decimal
	EntryStart   time.Time
	EntryEnd     time.Time
	DrawDate     time.Time
	MinimumTasks int
}

// CreateDrawOutput represents the output of creating a draw.
type CreateDrawOutput struct {
	Draw *entity.Draw
}

// CreateDrawUseCase handles admin creation of scheduled draws. The prize
// structure is defaulted from the draw kind and stored on the draw itself.
type CreateDrawUseCase struct {
	drawRepo adapter.DrawRepository
}

// NewCreateDrawUseCase creates a new CreateDrawUseCase instance.
func NewCreateDrawUseCase(drawRepo adapter.DrawRepository) *CreateDrawUseCase {
	return &CreateDrawUseCase{drawRepo: drawRepo}
}

// Execute creates the draw.
func (uc *CreateDrawUseCase) Execute(ctx context.Context, input CreateDrawInput) (*CreateDrawOutput, error) {
	if !input.PrizePool.IsPositive() {
		return nil, domainerror.NewDrawError(
			domainerror.ErrCodeInvalidPrizePool,
			"prize pool must be greater than zero",
			domainerror.ErrInvalidPrizePool,
		)
	}

	if !input.EntryEnd.After(input.EntryStart) {
		return nil, domainerror.NewDrawError(
			domainerror.ErrCodeInvalidEntryPeriod,
			"entry period end must be after start",
			domainerror.ErrInvalidEntryPeriod,
		)
	}

	if input.Name == "" {
		return nil, domainerror.NewDrawError(
			domainerror.ErrCodeMissingDrawFields,
			"draw name is required",
			nil,
		)
	}

	draw := entity.NewDraw(
		input.Kind,
		input.Name,
		input.PrizePool,
		input.EntryStart,
		input.EntryEnd,
		input.DrawDate,
		input.MinimumTasks,
	)

	if err := uc.drawRepo.Create(ctx, draw); err != nil {
		return nil, fmt.Errorf("failed to create draw: %w", err)
	}

	return &CreateDrawOutput{Draw: draw}, nil
}
