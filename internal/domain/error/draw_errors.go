// Package error defines domain-specific errors for the GoalGuard application.
package error

import "errors"

// Prize draw domain errors.
var (
	// ErrDrawNotFound is returned when a draw is not found in the system.
	ErrDrawNotFound = errors.New("draw not found")

	// ErrDrawAlreadyClaimed is returned when the atomic claim transition
	// finds the draw no longer upcoming. The losing invocation is a no-op.
	ErrDrawAlreadyClaimed = errors.New("draw already claimed for execution")

	// ErrDrawNotDue is returned when execution is requested before drawDate.
	ErrDrawNotDue = errors.New("draw is not due for execution")

	// ErrInvalidPrizePool is returned when a draw's prize pool is invalid.
	ErrInvalidPrizePool = errors.New("prize pool must be greater than zero")

	// ErrInvalidEntryPeriod is returned when a draw's entry period is
	// inverted or empty.
	ErrInvalidEntryPeriod = errors.New("entry period end must be after start")
)

// DrawErrorCode defines error codes for draw errors.
// Format: DRW-XXYYYY where XX is category and YYYY is specific error.
type DrawErrorCode string

const (
	// Validation errors (01XXXX)
	ErrCodeDrawNotFound       DrawErrorCode = "DRW-010001"
	ErrCodeInvalidPrizePool   DrawErrorCode = "DRW-010002"
	ErrCodeInvalidEntryPeriod DrawErrorCode = "DRW-010003"
	ErrCodeMissingDrawFields  DrawErrorCode = "DRW-010004"

	// State errors (02XXXX)
	ErrCodeDrawAlreadyClaimed DrawErrorCode = "DRW-020001"
	ErrCodeDrawNotDue         DrawErrorCode = "DRW-020002"
)

// DrawError represents a draw error with code and message.
type DrawError struct {
	Code    DrawErrorCode
	Message string
	Err     error
}

// Error implements the error interface.
func (e *DrawError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

// Unwrap returns the underlying error.
func (e *DrawError) Unwrap() error {
	return e.Err
}

// NewDrawError creates a new DrawError with the given code and message.
func NewDrawError(code DrawErrorCode, message string, err error) *DrawError {
	return &DrawError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}
