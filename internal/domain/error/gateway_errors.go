// Package error defines domain-specific errors for the GoalGuard application.
package error

import "errors"

// Payment gateway errors.
var (
	// ErrGatewayUnavailable is returned when the payment rail cannot be
	// reached or responds with a server error. Retryable by the caller.
	ErrGatewayUnavailable = errors.New("payment gateway unavailable")

	// ErrGatewayRejected is returned when the payment rail rejects the
	// request (insufficient funds, invalid account). Not retryable.
	ErrGatewayRejected = errors.New("payment gateway rejected the request")
)

// GatewayErrorCode defines error codes for payment gateway errors.
type GatewayErrorCode string

const (
	ErrCodeGatewayUnavailable GatewayErrorCode = "GWY-010001"
	ErrCodeGatewayRejected    GatewayErrorCode = "GWY-010002"
)

// GatewayError represents a payment gateway failure, carrying the operation
// that failed for logging and the partial-failure reports of draw execution.
type GatewayError struct {
	Code    GatewayErrorCode
	Op      string
	Message string
	Err     error
}

// Error implements the error interface.
func (e *GatewayError) Error() string {
	if e.Err != nil {
		return e.Op + ": " + e.Message + ": " + e.Err.Error()
	}
	return e.Op + ": " + e.Message
}

// Unwrap returns the underlying error.
func (e *GatewayError) Unwrap() error {
	if e.Err != nil {
		return e.Err
	}
	if e.Code == ErrCodeGatewayRejected {
		return ErrGatewayRejected
	}
	return ErrGatewayUnavailable
}

// NewGatewayError creates a new GatewayError.
func NewGatewayError(code GatewayErrorCode, op, message string, err error) *GatewayError {
	return &GatewayError{
		Code:    code,
		Op:      op,
		Message: message,
		Err:     err,
	}
}

// IsGatewayRejected reports whether err is a gateway rejection.
func IsGatewayRejected(err error) bool {
	var gwErr *GatewayError
	if errors.As(err, &gwErr) {
		return gwErr.Code == ErrCodeGatewayRejected
	}
	return errors.Is(err, ErrGatewayRejected)
}
