// Package auth contains authentication-related use cases.
package auth

import (
	"context"
	"fmt"
	"log/slog"
	"regexp"

	"github.com/goalguard/backend/internal/application/adapter"
	"github.com/goalguard/backend/internal/domain/entity"
	domainerror "github.com/goalguard/backend/internal/domain/error"
)

// RegisterUserInput represents the input for user registration.
type RegisterUserInput struct {
	Email         string
	Name          string
	Password      string
	TermsAccepted bool
}

// RegisterUserOutput represents the output of user registration.
type RegisterUserOutput struct {
	AccessToken  string
	RefreshToken string
	User         *entity.User
}

// RegisterUserUseCase handles user registration. Registration onboards the
// user with the payment gateway (customer plus primary account) before the
// user row is persisted; a gateway failure means no user is created.
type RegisterUserUseCase struct {
	userRepo        adapter.UserRepository
	passwordService adapter.PasswordService
	tokenService    adapter.TokenService
	gateway         adapter.PaymentGateway
	notifier        adapter.Notifier
	clock           adapter.Clock
	logger          *slog.Logger
}

// NewRegisterUserUseCase creates a new RegisterUserUseCase instance.
func NewRegisterUserUseCase(
	userRepo adapter.UserRepository,
	passwordService adapter.PasswordService,
	tokenService adapter.TokenService,
	gateway adapter.PaymentGateway,
	notifier adapter.Notifier,
	clock adapter.Clock,
	logger *slog.Logger,
) *RegisterUserUseCase {
	return &RegisterUserUseCase{
		userRepo:        userRepo,
		passwordService: passwordService,
		tokenService:    tokenService,
		gateway:         gateway,
		notifier:        notifier,
		clock:           clock,
		logger:          logger,
	}
}

// Execute performs the user registration.
func (uc *RegisterUserUseCase) Execute(ctx context.Context, input RegisterUserInput) (*RegisterUserOutput, error) {
	// Validate terms acceptance
	if !input.TermsAccepted {
		return nil, domainerror.NewAuthError(
			domainerror.ErrCodeTermsNotAccepted,
			"terms of service must be accepted",
			domainerror.ErrTermsNotAccepted,
		)
	}

	// Validate email format
	if !isValidEmail(input.Email) {
		return nil, domainerror.NewAuthError(
			domainerror.ErrCodeInvalidEmail,
			"invalid email format",
			domainerror.ErrInvalidEmail,
		)
	}

	// Validate password strength
	if err := uc.passwordService.ValidatePasswordStrength(input.Password); err != nil {
		return nil, domainerror.NewAuthError(
			domainerror.ErrCodeWeakPassword,
			"password does not meet minimum requirements",
			domainerror.ErrWeakPassword,
		)
	}

	// Check if email already exists
	exists, err := uc.userRepo.ExistsByEmail(ctx, input.Email)
	if err != nil {
		return nil, fmt.Errorf("failed to check email existence: %w", err)
	}
	if exists {
		return nil, domainerror.NewAuthError(
			domainerror.ErrCodeEmailExists,
			"email already exists",
			domainerror.ErrEmailAlreadyExists,
		)
	}

	// Hash password
	passwordHash, err := uc.passwordService.HashPassword(input.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	// Onboard with the payment gateway before persisting anything locally.
	customer, err := uc.gateway.CreateCustomer(ctx, input.Name, input.Email)
	if err != nil {
		return nil, domainerror.NewAuthError(
			domainerror.ErrCodeOnboardingFailed,
			"payment account setup failed",
			err,
		)
	}

	user := entity.NewUser(input.Email, input.Name, passwordHash, uc.clock.Now())
	user.ModulrCustomerID = customer.CustomerID
	user.PrimaryAccountID = customer.PrimaryAccountID

	if err := uc.userRepo.Create(ctx, user); err != nil {
		uc.logger.Error("user persist failed after gateway onboarding, orphaned customer",
			"email", input.Email,
			"customer_id", customer.CustomerID,
			"error", err,
		)
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	// Generate tokens
	tokenPair, err := uc.tokenService.GenerateTokenPair(ctx, user.ID, user.Email, false)
	if err != nil {
		return nil, fmt.Errorf("failed to generate tokens: %w", err)
	}

	// Best effort: a queue failure never fails registration.
	if err := uc.notifier.NotifyWelcome(ctx, adapter.NotifyWelcomeInput{
		UserID:    user.ID.String(),
		UserEmail: user.Email,
		UserName:  user.Name,
	}); err != nil {
		uc.logger.Warn("failed to queue welcome email", "user_id", user.ID, "error", err)
	}

	return &RegisterUserOutput{
		AccessToken:  tokenPair.AccessToken,
		RefreshToken: tokenPair.RefreshToken,
		User:         user,
	}, nil
}

// isValidEmail validates email format using a simple regex.
func isValidEmail(email string) bool {
	emailRegex := regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)
	return emailRegex.MatchString(email)
}
