// Package user contains user profile use cases.
package user

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/goalguard/backend/internal/application/adapter"
	"github.com/goalguard/backend/internal/domain/entity"
	domainerror "github.com/goalguard/backend/internal/domain/error"
)

// UpdateTierInput represents the input for changing a subscription tier.
type UpdateTierInput struct {
	UserID uuid.UUID
	Tier   entity.SubscriptionTier
}

// UpdateTierOutput represents the output of changing a subscription tier.
type UpdateTierOutput struct {
	User *entity.User
}

// UpdateTierUseCase changes a user's subscription tier. The tier drives the
// early-withdrawal fee rate, so only known tiers are accepted.
type UpdateTierUseCase struct {
	userRepo adapter.UserRepository
}

// NewUpdateTierUseCase creates a new UpdateTierUseCase instance.
func NewUpdateTierUseCase(userRepo adapter.UserRepository) *UpdateTierUseCase {
	return &UpdateTierUseCase{userRepo: userRepo}
}

// Execute updates the tier.
func (uc *UpdateTierUseCase) Execute(ctx context.Context, input UpdateTierInput) (*UpdateTierOutput, error) {
	if input.Tier != entity.TierBasic && input.Tier != entity.TierPlus && input.Tier != entity.TierPro {
		return nil, domainerror.NewAuthError(
			domainerror.ErrCodeMissingFields,
			fmt.Sprintf("unknown subscription tier %q", input.Tier),
			nil,
		)
	}

	user, err := uc.userRepo.FindByID(ctx, input.UserID)
	if err != nil {
		return nil, domainerror.NewAuthError(
			domainerror.ErrCodeUserNotFound,
			"user not found",
			domainerror.ErrUserNotFound,
		)
	}

	user.Tier = input.Tier
	if err := uc.userRepo.Update(ctx, user); err != nil {
		return nil, fmt.Errorf("failed to update user: %w", err)
	}

	return &UpdateTierOutput{User: user}, nil
}
