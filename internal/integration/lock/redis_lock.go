// Package lock provides a Redis-backed per-split write lock.
package lock

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/splitledger/backend/internal/application/adapter"
	domainerror "github.com/splitledger/backend/internal/domain/error"
)

const (
	lockKeyPrefix = "split:lock:"

	// defaultExpiration caps how long a crashed holder can block other
	// writers.
	defaultExpiration = 10 * time.Second

	defaultRetryInterval = 50 * time.Millisecond
	defaultMaxRetries    = 40
)

// releaseScript deletes the lock key only when the caller's token still owns
// it, so a holder whose lock expired cannot delete a successor's lock.
const releaseScript = `
	if redis.call("GET", KEYS[1]) == ARGV[1] then
		return redis.call("DEL", KEYS[1])
	else
		return 0
	end
`

// redisSplitLocker implements the adapter.SplitLocker interface.
type redisSplitLocker struct {
	client        *redis.Client
	expiration    time.Duration
	retryInterval time.Duration
	maxRetries    int
}

// NewRedisSplitLocker creates a split locker backed by the given Redis client.
func NewRedisSplitLocker(client *redis.Client) adapter.SplitLocker {
	return &redisSplitLocker{
		client:        client,
		expiration:    defaultExpiration,
		retryInterval: defaultRetryInterval,
		maxRetries:    defaultMaxRetries,
	}
}

// Lock acquires the split's lock with SET NX, retrying while it is held.
func (l *redisSplitLocker) Lock(ctx context.Context, splitID uuid.UUID) (string, error) {
	key := lockKeyPrefix + splitID.String()
	token := uuid.NewString()

	for i := 0; i < l.maxRetries; i++ {
		acquired, err := l.client.SetNX(ctx, key, token, l.expiration).Result()
		if err != nil {
			return "", err
		}
		if acquired {
			return token, nil
		}

		select {
		case <-ctx.Done():
			return "", ctx.Err()
		case <-time.After(l.retryInterval):
		}
	}

	return "", domainerror.ErrSplitLockUnavailable
}

// Unlock releases the lock when the token still owns it.
func (l *redisSplitLocker) Unlock(ctx context.Context, splitID uuid.UUID, token string) error {
	key := lockKeyPrefix + splitID.String()
	_, err := l.client.Eval(ctx, releaseScript, []string{key}, token).Result()
	return err
}
