package redis

import (
	"context"
	"time"

	"github.com/bsm/redislock"
	"github.com/redis/go-redis/v9"

	"github.com/iho/backoffice/internal/usecase"
)

// LockManager implements usecase.LockManager with redislock. Approvals
// contend rarely, so a short linear retry is enough to ride out a
// competing holder.
type LockManager struct {
	client *redislock.Client
	prefix string
}

// NewLockManager creates a new LockManager.
func NewLockManager(client *redis.Client) *LockManager {
	return &LockManager{
		client: redislock.New(client),
		prefix: "lock:",
	}
}

// Obtain acquires a lock on the key, retrying briefly when it is held.
func (m *LockManager) Obtain(ctx context.Context, key string, ttl time.Duration) (usecase.Lock, error) {
	lock, err := m.client.Obtain(ctx, m.prefix+key, ttl, &redislock.Options{
		RetryStrategy: redislock.LimitRetry(redislock.LinearBackoff(50*time.Millisecond), 10),
	})
	if err != nil {
		return nil, err
	}

	return &heldLock{lock: lock}, nil
}

type heldLock struct {
	lock *redislock.Lock
}

// Release releases the lock.
func (l *heldLock) Release(ctx context.Context) error {
	return l.lock.Release(ctx)
}
