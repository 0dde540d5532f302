// Package error defines domain-specific errors for the GoalGuard application.
package error

import "errors"

// Savings goal domain errors.
var (
	// ErrGoalNotFound is returned when a goal is not found in the system.
	ErrGoalNotFound = errors.New("goal not found")

	// ErrInvalidAmount is returned for zero or negative operation amounts.
	ErrInvalidAmount = errors.New("amount must be greater than zero")

	// ErrInvalidTargetAmount is returned when the target amount is invalid.
	ErrInvalidTargetAmount = errors.New("target amount must be greater than zero")

	// ErrInvalidEndDate is returned when the goal end date is not in the future.
	ErrInvalidEndDate = errors.New("end date must be in the future")

	// ErrGoalNotActive is returned when an operation requires an active goal.
	ErrGoalNotActive = errors.New("goal is not active")

	// ErrGoalLocked is returned for ordinary withdrawals inside the lock window.
	ErrGoalLocked = errors.New("goal is locked until the allowed withdrawal date")

	// ErrInsufficientFunds is returned when a withdrawal exceeds the balance.
	ErrInsufficientFunds = errors.New("insufficient funds")

	// ErrConcurrentUpdate is returned when an optimistic-lock write loses the
	// race. The caller may retry the whole read-modify-write.
	ErrConcurrentUpdate = errors.New("goal was modified concurrently")

	// ErrUnauthorizedGoalAccess is returned when a user is not the goal owner.
	ErrUnauthorizedGoalAccess = errors.New("unauthorized access to goal")
)

// GoalErrorCode defines error codes for goal errors.
// Format: GOL-XXYYYY where XX is category and YYYY is specific error.
type GoalErrorCode string

const (
	// Validation errors (01XXXX)
	ErrCodeGoalNotFound        GoalErrorCode = "GOL-010001"
	ErrCodeInvalidAmount       GoalErrorCode = "GOL-010002"
	ErrCodeInvalidTargetAmount GoalErrorCode = "GOL-010003"
	ErrCodeInvalidEndDate      GoalErrorCode = "GOL-010004"
	ErrCodeMissingGoalFields   GoalErrorCode = "GOL-010005"

	// State errors (02XXXX)
	ErrCodeGoalNotActive     GoalErrorCode = "GOL-020001"
	ErrCodeGoalLocked        GoalErrorCode = "GOL-020002"
	ErrCodeInsufficientFunds GoalErrorCode = "GOL-020003"
	ErrCodeConcurrentUpdate  GoalErrorCode = "GOL-020004"

	// Access errors (03XXXX)
	ErrCodeUnauthorizedGoalAccess GoalErrorCode = "GOL-030001"
)

// GoalError represents a goal error with code and message.
type GoalError struct {
	Code    GoalErrorCode
	Message string
	Err     error
}

// Error implements the error interface.
func (e *GoalError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

// Unwrap returns the underlying error.
func (e *GoalError) Unwrap() error {
	return e.Err
}

// NewGoalError creates a new GoalError with the given code and message.
func NewGoalError(code GoalErrorCode, message string, err error) *GoalError {
	return &GoalError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}
