package lock

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/SscSPs/books_ledger/internal/apperrors"
	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRedis(t *testing.T) (*miniredis.Miniredis, *redis.Client) {
	t.Helper()
	mr := miniredis.RunT(t)
	rdb, err := NewRedisClient(context.Background(), mr.Addr(), "", 0)
	require.NoError(t, err)
	t.Cleanup(func() { _ = rdb.Close() })
	return mr, rdb
}

func TestRedisLockerExcludesConcurrentHolder(t *testing.T) {
	mr, rdb := newTestRedis(t)
	first := NewRedisLocker(rdb)
	second := NewRedisLocker(rdb)
	ctx := context.Background()

	ran := false
	err := first.WithLock(ctx, "ledger:backfill", time.Minute, func(ctx context.Context) error {
		assert.True(t, mr.Exists("ledger:backfill"))

		inner := second.WithLock(ctx, "ledger:backfill", time.Minute, func(context.Context) error {
			t.Fatal("second holder must not run")
			return nil
		})
		assert.ErrorIs(t, inner, apperrors.ErrLocked)
		ran = true
		return nil
	})
	require.NoError(t, err)
	assert.True(t, ran)
	assert.False(t, mr.Exists("ledger:backfill"), "lock is released after fn returns")

	// free again
	require.NoError(t, second.WithLock(ctx, "ledger:backfill", time.Minute, func(context.Context) error { return nil }))
}

func TestRedisLockerReturnsFnError(t *testing.T) {
	mr, rdb := newTestRedis(t)
	locker := NewRedisLocker(rdb)
	boom := errors.New("boom")

	err := locker.WithLock(context.Background(), "k", time.Minute, func(context.Context) error { return boom })
	assert.ErrorIs(t, err, boom)
	assert.False(t, mr.Exists("k"))
}

func TestRedisLockerExpiredLockCanBeTaken(t *testing.T) {
	mr, rdb := newTestRedis(t)
	locker := NewRedisLocker(rdb)

	require.NoError(t, mr.Set("k", "stale-token"))
	mr.SetTTL("k", time.Second)
	err := locker.WithLock(context.Background(), "k", time.Minute, func(context.Context) error { return nil })
	assert.ErrorIs(t, err, apperrors.ErrLocked)

	mr.FastForward(2 * time.Second)
	err = locker.WithLock(context.Background(), "k", time.Minute, func(context.Context) error { return nil })
	assert.NoError(t, err)
}

func TestNewRedisClientFailsWithoutServer(t *testing.T) {
	mr := miniredis.RunT(t)
	addr := mr.Addr()
	mr.Close()

	_, err := NewRedisClient(context.Background(), addr, "", 0)
	assert.Error(t, err)
}

func TestLocalLocker(t *testing.T) {
	locker := NewLocalLocker()
	ctx := context.Background()

	err := locker.WithLock(ctx, "k", 0, func(ctx context.Context) error {
		inner := locker.WithLock(ctx, "k", 0, func(context.Context) error { return nil })
		assert.ErrorIs(t, inner, apperrors.ErrLocked)
		assert.NoError(t, locker.WithLock(ctx, "other", 0, func(context.Context) error { return nil }))
		return nil
	})
	require.NoError(t, err)
	assert.NoError(t, locker.WithLock(ctx, "k", 0, func(context.Context) error { return nil }))
}

func TestOpenPicksLockerByAddress(t *testing.T) {
	ctx := context.Background()

	locker, closeFn, err := Open(ctx, "", "", 0)
	require.NoError(t, err)
	closeFn()
	assert.IsType(t, &LocalLocker{}, locker)

	mr := miniredis.RunT(t)
	addr := mr.Addr()
	locker, closeFn, err = Open(ctx, addr, "", 0)
	require.NoError(t, err)
	defer closeFn()
	assert.IsType(t, &RedisLocker{}, locker)

	mr.Close()
	_, _, err = Open(ctx, addr, "", 0)
	assert.Error(t, err)
}

func TestRedisLockerRefreshesWhileHeld(t *testing.T) {
	mr, rdb := newTestRedis(t)
	locker := NewRedisLocker(rdb)
	ttl := 400 * time.Millisecond

	err := locker.WithLock(context.Background(), "k", ttl, func(ctx context.Context) error {
		// only a refresh can bring the ttl back above what is left after this
		mr.FastForward(300 * time.Millisecond)
		assert.Eventually(t, func() bool {
			return mr.TTL("k") > 300*time.Millisecond
		}, 2*time.Second, 20*time.Millisecond)
		assert.NoError(t, ctx.Err())
		return nil
	})
	require.NoError(t, err)
	assert.False(t, mr.Exists("k"))
}

func TestRedisLockerCancelsWorkWhenLockIsLost(t *testing.T) {
	mr, rdb := newTestRedis(t)
	locker := NewRedisLocker(rdb)

	err := locker.WithLock(context.Background(), "k", 200*time.Millisecond, func(ctx context.Context) error {
		mr.Del("k")
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(2 * time.Second):
			t.Fatal("context was not cancelled after the lock was lost")
			return nil
		}
	})
	assert.ErrorIs(t, err, apperrors.ErrLocked)
}
