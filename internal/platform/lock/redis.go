package lock

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/SscSPs/books_ledger/internal/apperrors"
	portssvc "github.com/SscSPs/books_ledger/internal/core/ports/services"
	"github.com/SscSPs/books_ledger/internal/platform/logctx"
	"github.com/bsm/redislock"
	"github.com/redis/go-redis/v9"
)

// RedisLocker serializes work across processes with a redis lock.
type RedisLocker struct {
	client *redislock.Client
}

var _ portssvc.Locker = (*RedisLocker)(nil)

// NewRedisClient connects to redis and checks the connection.
func NewRedisClient(ctx context.Context, addr, password string, db int) (*redis.Client, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("failed to ping redis at %s: %w", addr, err)
	}
	return rdb, nil
}

// NewRedisLocker wraps a redis client.
func NewRedisLocker(rdb redis.UniversalClient) *RedisLocker {
	return &RedisLocker{client: redislock.New(rdb)}
}

// WithLock obtains key without retrying, runs fn and releases the lock.
// The lock is refreshed every ttl/2 while fn runs. If a refresh fails the
// context passed to fn is cancelled and WithLock returns apperrors.ErrLocked.
func (l *RedisLocker) WithLock(ctx context.Context, key string, ttl time.Duration, fn func(ctx context.Context) error) error {
	lock, err := l.client.Obtain(ctx, key, ttl, nil)
	if errors.Is(err, redislock.ErrNotObtained) {
		return fmt.Errorf("%w: %s", apperrors.ErrLocked, key)
	}
	if err != nil {
		return fmt.Errorf("failed to obtain lock %s: %w", key, err)
	}
	defer func() {
		// the release must not depend on fn's context having survived
		if rerr := lock.Release(context.WithoutCancel(ctx)); rerr != nil && !errors.Is(rerr, redislock.ErrLockNotHeld) {
			logctx.FromContext(ctx).Warn("Failed to release lock",
				slog.String("key", key), slog.String("error", rerr.Error()))
		}
	}()

	runCtx, cancel := context.WithCancelCause(ctx)
	defer cancel(nil)
	if interval := ttl / 2; interval > 0 {
		stop := make(chan struct{})
		var wg sync.WaitGroup
		wg.Add(1)
		go func() {
			defer wg.Done()
			keepAlive(runCtx, lock, key, ttl, interval, stop, cancel)
		}()
		// stop refreshing before the lock is released
		defer func() {
			close(stop)
			wg.Wait()
		}()
	}

	err = fn(runCtx)
	if cause := context.Cause(runCtx); errors.Is(cause, apperrors.ErrLocked) {
		return cause
	}
	return err
}

func keepAlive(ctx context.Context, lock *redislock.Lock, key string, ttl, interval time.Duration, stop <-chan struct{}, cancel context.CancelCauseFunc) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-stop:
			return
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := lock.Refresh(ctx, ttl, nil); err != nil {
				logctx.FromContext(ctx).Error("Lost lock while holding it",
					slog.String("key", key), slog.String("error", err.Error()))
				cancel(fmt.Errorf("%w: lost %s: %v", apperrors.ErrLocked, key, err))
				return
			}
		}
	}
}
