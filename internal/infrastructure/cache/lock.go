package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/bsm/redislock"
	"github.com/redis/go-redis/v9"

	"ricemill/internal/core/id"
	"ricemill/pkg/logger"
)

// MillLocker serializes per-mill background work across worker processes.
type MillLocker struct {
	locker *redislock.Client
	ttl    time.Duration
}

// NewMillLocker creates a locker whose locks expire after ttl.
func NewMillLocker(client redis.UniversalClient, ttl time.Duration) *MillLocker {
	return &MillLocker{locker: redislock.New(client), ttl: ttl}
}

func lockKey(job string, millID id.ID) string {
	return fmt.Sprintf("%slock:%s:%s", keyPrefix, job, millID)
}

// WithLock runs fn while holding the (job, mill) lock. It returns ran=false
// without calling fn when another process holds the lock.
func (l *MillLocker) WithLock(ctx context.Context, job string, millID id.ID, fn func(ctx context.Context) error) (ran bool, err error) {
	lock, err := l.locker.Obtain(ctx, lockKey(job, millID), l.ttl, nil)
	if errors.Is(err, redislock.ErrNotObtained) {
		logger.Debug(ctx, "lock held elsewhere, skipping", "job", job, "mill_id", millID)
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("obtain lock: %w", err)
	}
	defer func() {
		if releaseErr := lock.Release(context.WithoutCancel(ctx)); releaseErr != nil && !errors.Is(releaseErr, redislock.ErrLockNotHeld) {
			logger.Warn(ctx, "failed to release lock", "job", job, "mill_id", millID, "error", releaseErr)
		}
	}()

	return true, fn(ctx)
}
