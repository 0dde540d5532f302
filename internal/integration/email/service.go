// Package email provides email queueing and sending functionality.
package email

import (
	"context"
	"fmt"

	"github.com/goalguard/backend/internal/application/adapter"
	"github.com/goalguard/backend/internal/domain/entity"
	domainerror "github.com/goalguard/backend/internal/domain/error"
)

// Service queues notification emails for the background worker. It implements
// the adapter.Notifier interface.
type Service struct {
	queue      adapter.EmailQueueRepository
	appBaseURL string
}

// NewService creates a new email service.
func NewService(queue adapter.EmailQueueRepository, appBaseURL string) *Service {
	return &Service{
		queue:      queue,
		appBaseURL: appBaseURL,
	}
}

// NotifyWelcome queues the onboarding welcome email.
func (s *Service) NotifyWelcome(ctx context.Context, input adapter.NotifyWelcomeInput) error {
	subject := "Welcome to GoalGuard"

	templateData := map[string]interface{}{
		"user_name": input.UserName,
		"app_url":   s.appBaseURL,
	}

	job := entity.NewEmailJob(
		entity.TemplateWelcome,
		input.UserEmail,
		input.UserName,
		subject,
		templateData,
	)

	if err := s.queue.Create(ctx, job); err != nil {
		return domainerror.NewEmailError(
			domainerror.ErrCodeEmailQueueFailed,
			"failed to queue welcome email",
			err,
		)
	}

	return nil
}

// NotifyPrizeWin queues a prize win email for a draw winner.
func (s *Service) NotifyPrizeWin(ctx context.Context, input adapter.NotifyPrizeWinInput) error {
	subject := fmt.Sprintf("You won £%s in the %s!", input.PrizeAmount.StringFixed(2), input.DrawName)

	templateData := map[string]interface{}{
		"user_name":    input.UserName,
		"draw_name":    input.DrawName,
		"prize_amount": input.PrizeAmount.StringFixed(2),
		"prize_tier":   input.PrizeTier,
		"app_url":      s.appBaseURL,
	}

	job := entity.NewEmailJob(
		entity.TemplatePrizeWin,
		input.UserEmail,
		input.UserName,
		subject,
		templateData,
	)

	if err := s.queue.Create(ctx, job); err != nil {
		return domainerror.NewEmailError(
			domainerror.ErrCodeEmailQueueFailed,
			"failed to queue prize win email",
			err,
		)
	}

	return nil
}

// NotifyGoalCompleted queues a goal completion email.
func (s *Service) NotifyGoalCompleted(ctx context.Context, input adapter.NotifyGoalCompletedInput) error {
	subject := fmt.Sprintf("You reached your %s goal!", input.GoalName)

	templateData := map[string]interface{}{
		"user_name":     input.UserName,
		"goal_name":     input.GoalName,
		"target_amount": input.TargetAmount.StringFixed(2),
		"app_url":       s.appBaseURL,
	}

	job := entity.NewEmailJob(
		entity.TemplateGoalCompleted,
		input.UserEmail,
		input.UserName,
		subject,
		templateData,
	)

	if err := s.queue.Create(ctx, job); err != nil {
		return domainerror.NewEmailError(
			domainerror.ErrCodeEmailQueueFailed,
			"failed to queue goal completion email",
			err,
		)
	}

	return nil
}

// Ensure Service implements adapter.Notifier.
var _ adapter.Notifier = (*Service)(nil)
