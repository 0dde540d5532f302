// Package adapter defines interfaces that will be implemented in the integration layer.
package adapter

import (
	"context"
	"time"
)

// IdempotencyStore defines the interface for short-lived idempotency key
// reservations guarding gateway submissions against duplicate execution.
type IdempotencyStore interface {
	// Reserve claims the key for the given TTL. It returns false when the
	// key is already held, meaning the operation was already submitted.
	Reserve(ctx context.Context, key string, ttl time.Duration) (bool, error)

	// Release frees a reserved key after a failed submission so the
	// operation can be retried.
	Release(ctx context.Context, key string) error
}
