package lock

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/bsm/redislock"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"

	"hotelbooking/internal/domain"
)

// Locker serialises writers of one room or booking across replicas.
type Locker interface {
	Acquire(ctx context.Context, key string) (release func(), err error)
}

func RoomKey(roomID int64) string       { return fmt.Sprintf("lock:room:%d", roomID) }
func BookingKey(bookingID int64) string { return fmt.Sprintf("lock:booking:%d", bookingID) }

type Noop struct{}

func (Noop) Acquire(context.Context, string) (func(), error) { return func() {}, nil }

type Redis struct {
	client *redislock.Client
	ttl    time.Duration
	retry  redislock.RetryStrategy
}

func NewRedis(rdb redis.UniversalClient, ttl time.Duration) *Redis {
	return &Redis{
		client: redislock.New(rdb),
		ttl:    ttl,
		retry:  redislock.LimitRetry(redislock.LinearBackoff(50*time.Millisecond), 40),
	}
}

// Acquire waits briefly for the lock. A lock still held by someone else is
// ErrBusy. On a Redis outage the caller proceeds unlocked.
func (r *Redis) Acquire(ctx context.Context, key string) (func(), error) {
	l, err := r.client.Obtain(ctx, key, r.ttl, &redislock.Options{RetryStrategy: r.retry})
	if errors.Is(err, redislock.ErrNotObtained) {
		return nil, domain.ErrBusy
	}
	if err != nil {
		log.Warn().Err(err).Str("key", key).Msg("error obtaining redis lock; proceeding without it")
		return func() {}, nil
	}
	return func() {
		if err := l.Release(context.Background()); err != nil && !errors.Is(err, redislock.ErrLockNotHeld) {
			log.Warn().Err(err).Str("key", key).Msg("failed to release redis lock")
		}
	}, nil
}
