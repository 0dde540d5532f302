// Package dto defines data transfer objects for API requests and responses.
package dto

import (
	"time"

	"github.com/goalguard/backend/internal/domain/entity"
)

// RegisterRequest represents the request body for user registration.
type RegisterRequest struct {
	Email         string `json:"email" binding:"required,email"`
	Name          string `json:"name" binding:"required,min=1,max=100"`
	Password      string `json:"password" binding:"required,min=8"`
	TermsAccepted bool   `json:"terms_accepted" binding:"required"`
}

// LoginRequest represents the request body for user login.
type LoginRequest struct {
	Email      string `json:"email" binding:"required,email"`
	Password   string `json:"password" binding:"required"`
	RememberMe bool   `json:"remember_me"`
}

// RefreshTokenRequest represents the request body for token refresh.
type RefreshTokenRequest struct {
	RefreshToken string `json:"refresh_token" binding:"required"`
}

// LogoutRequest represents the request body for user logout.
type LogoutRequest struct {
	RefreshToken string `json:"refresh_token" binding:"required"`
}

// AuthResponse represents the response for authentication endpoints.
type AuthResponse struct {
	AccessToken  string       `json:"access_token"`
	RefreshToken string       `json:"refresh_token"`
	User         UserResponse `json:"user"`
}

// TokenResponse represents the response for token refresh.
type TokenResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

// UpdateTierRequest represents the request body for changing subscription tier.
type UpdateTierRequest struct {
	Tier string `json:"tier" binding:"required,oneof=basic plus pro"`
}

// UserStatsResponse represents the user's aggregate statistics.
type UserStatsResponse struct {
	TotalSaved     string `json:"total_saved"`
	TotalPrizesWon string `json:"total_prizes_won"`
	TasksCompleted int    `json:"tasks_completed"`
	GoalsCompleted int    `json:"goals_completed"`
}

// UserResponse represents the user data in API responses.
type UserResponse struct {
	ID               string            `json:"id"`
	Email            string            `json:"email"`
	Name             string            `json:"name"`
	Tier             string            `json:"tier"`
	PrimaryAccountID string            `json:"primary_account_id"`
	Stats            UserStatsResponse `json:"stats"`
	CreatedAt        time.Time         `json:"created_at"`
}

// ToUserResponse converts a domain User entity to a UserResponse DTO.
func ToUserResponse(user *entity.User) UserResponse {
	return UserResponse{
		ID:               user.ID.String(),
		Email:            user.Email,
		Name:             user.Name,
		Tier:             string(user.Tier),
		PrimaryAccountID: user.PrimaryAccountID,
		Stats: UserStatsResponse{
			TotalSaved:     user.Stats.TotalSaved.StringFixed(2),
			TotalPrizesWon: user.Stats.TotalPrizesWon.StringFixed(2),
			TasksCompleted: user.Stats.TasksCompleted,
			GoalsCompleted: user.Stats.GoalsCompleted,
		},
		CreatedAt: user.CreatedAt,
	}
}
