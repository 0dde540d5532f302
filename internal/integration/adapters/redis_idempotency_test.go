package adapters

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testRedisStore(t *testing.T) (*miniredis.Miniredis, *redisIdempotencyStore) {
	t.Helper()
	server := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: server.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return server, &redisIdempotencyStore{client: client}
}

func TestReserveClaimsKeyOnce(t *testing.T) {
	_, store := testRedisStore(t)
	ctx := context.Background()

	reserved, err := store.Reserve(ctx, "key-1", time.Hour)
	require.NoError(t, err)
	assert.True(t, reserved)

	reserved, err = store.Reserve(ctx, "key-1", time.Hour)
	require.NoError(t, err)
	assert.False(t, reserved)

	reserved, err = store.Reserve(ctx, "key-2", time.Hour)
	require.NoError(t, err)
	assert.True(t, reserved)
}

func TestReleaseFreesKey(t *testing.T) {
	_, store := testRedisStore(t)
	ctx := context.Background()

	reserved, err := store.Reserve(ctx, "key-1", time.Hour)
	require.NoError(t, err)
	require.True(t, reserved)

	require.NoError(t, store.Release(ctx, "key-1"))

	reserved, err = store.Reserve(ctx, "key-1", time.Hour)
	require.NoError(t, err)
	assert.True(t, reserved)
}

func TestReservationExpires(t *testing.T) {
	server, store := testRedisStore(t)
	ctx := context.Background()

	reserved, err := store.Reserve(ctx, "key-1", time.Minute)
	require.NoError(t, err)
	require.True(t, reserved)

	server.FastForward(2 * time.Minute)

	reserved, err = store.Reserve(ctx, "key-1", time.Minute)
	require.NoError(t, err)
	assert.True(t, reserved)
}
