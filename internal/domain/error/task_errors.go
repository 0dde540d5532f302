// Package error defines domain-specific errors for the GoalGuard application.
package error

import "errors"

// Ad task domain errors.
var (
	// ErrTaskNotFound is returned when an ad task is not found.
	ErrTaskNotFound = errors.New("task not found")

	// ErrTaskNotOpen is returned when a task is not accepting completions.
	ErrTaskNotOpen = errors.New("task is not open for completion")

	// ErrTaskAlreadyCompleted is returned when the user already submitted
	// this task. Completions are unique per (user, task).
	ErrTaskAlreadyCompleted = errors.New("task already completed")

	// ErrCompletionNotFound is returned when no completion record exists.
	ErrCompletionNotFound = errors.New("task completion not found")

	// ErrRequirementsNotMet is returned when a submission fails the task's
	// completion criteria.
	ErrRequirementsNotMet = errors.New("submission does not meet task requirements")

	// ErrInvalidCompletionState is returned for review actions on a
	// completion that is not awaiting review.
	ErrInvalidCompletionState = errors.New("completion is not awaiting review")
)

// TaskErrorCode defines error codes for task errors.
// Format: TSK-XXYYYY where XX is category and YYYY is specific error.
type TaskErrorCode string

const (
	// Validation errors (01XXXX)
	ErrCodeTaskNotFound       TaskErrorCode = "TSK-010001"
	ErrCodeCompletionNotFound TaskErrorCode = "TSK-010002"
	ErrCodeRequirementsNotMet TaskErrorCode = "TSK-010003"
	ErrCodeMissingTaskFields  TaskErrorCode = "TSK-010004"

	// State errors (02XXXX)
	ErrCodeTaskNotOpen            TaskErrorCode = "TSK-020001"
	ErrCodeTaskAlreadyCompleted   TaskErrorCode = "TSK-020002"
	ErrCodeInvalidCompletionState TaskErrorCode = "TSK-020003"
)

// TaskError represents a task error with code and message.
type TaskError struct {
	Code    TaskErrorCode
	Message string
	Err     error
}

// Error implements the error interface.
func (e *TaskError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

// Unwrap returns the underlying error.
func (e *TaskError) Unwrap() error {
	return e.Err
}

// NewTaskError creates a new TaskError with the given code and message.
func NewTaskError(code TaskErrorCode, message string, err error) *TaskError {
	return &TaskError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}
