// Package adapters implements adapter interfaces from the application layer.
package adapters

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/goalguard/backend/internal/application/adapter"
)

const idempotencyKeyPrefix = "idempotency:transfer:"

// redisIdempotencyStore implements the adapter.IdempotencyStore interface
// using SET NX with a TTL, so reservations survive process restarts and
// expire on their own.
type redisIdempotencyStore struct {
	client *redis.Client
}

// NewRedisIdempotencyStore creates a new Redis-backed idempotency store.
func NewRedisIdempotencyStore(client *redis.Client) adapter.IdempotencyStore {
	return &redisIdempotencyStore{
		client: client,
	}
}

// Reserve claims the key for the given TTL. A false return means the key is
// already held by a previous submission.
func (s *redisIdempotencyStore) Reserve(ctx context.Context, key string, ttl time.Duration) (bool, error) {
	return s.client.SetNX(ctx, idempotencyKeyPrefix+key, "1", ttl).Result()
}

// Release frees a reserved key so the operation can be retried.
func (s *redisIdempotencyStore) Release(ctx context.Context, key string) error {
	return s.client.Del(ctx, idempotencyKeyPrefix+key).Err()
}
