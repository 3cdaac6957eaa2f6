//go:build integration

package lock

import (
	"context"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	tcRedis "github.com/testcontainers/testcontainers-go/modules/redis"

	"hotelbooking/internal/domain"
)

func startRedis(t *testing.T) *redis.Client {
	t.Helper()
	ctx := context.Background()

	rdC, err := tcRedis.RunContainer(ctx,
		testcontainers.WithImage("redis:7-alpine"),
	)
	require.NoError(t, err)
	t.Cleanup(func() { _ = rdC.Terminate(ctx) })

	rdURL, err := rdC.ConnectionString(ctx)
	require.NoError(t, err)
	opts, err := redis.ParseURL(rdURL)
	require.NoError(t, err)

	rdb := redis.NewClient(opts)
	t.Cleanup(func() { _ = rdb.Close() })
	require.NoError(t, rdb.Ping(ctx).Err())
	return rdb
}

func TestRedisLockIsExclusive(t *testing.T) {
	rdb := startRedis(t)
	l := NewRedis(rdb, 5*time.Second)
	l.retry = nil // fail fast for the contended acquire

	ctx := context.Background()
	release, err := l.Acquire(ctx, RoomKey(1))
	require.NoError(t, err)

	_, err = l.Acquire(ctx, RoomKey(1))
	assert.ErrorIs(t, err, domain.ErrBusy)

	other, err := l.Acquire(ctx, RoomKey(2))
	require.NoError(t, err)
	other()

	release()
	again, err := l.Acquire(ctx, RoomKey(1))
	require.NoError(t, err)
	again()
}
