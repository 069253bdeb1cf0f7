package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/aretw0/formwise/pkg/ports"
	backend "github.com/redis/go-redis/v9"
)

// ErrLockAcquire is returned when the lock cannot be acquired.
var ErrLockAcquire = errors.New("failed to acquire distributed lock")

// Locker implements ports.DistributedLocker using Redis. It lets the
// session manager coordinate double-submits across replicas.
type Locker struct {
	client *backend.Client
	prefix string
}

// NewLocker creates a new Redis locker.
func NewLocker(client *backend.Client, prefix string) *Locker {
	return &Locker{
		client: client,
		prefix: prefix,
	}
}

// Lock acquires a distributed lock for the given key using Redis SET NX PX.
func (l *Locker) Lock(ctx context.Context, key string, ttl time.Duration) (ports.UnlockFunc, error) {
	lockKey := l.prefix + "lock:" + key

	// The value ties the unlock to this acquisition so a lock that
	// expired and was re-acquired elsewhere is never released by us.
	val := fmt.Sprintf("%d", time.Now().UnixNano())

	unlock := func(ctx context.Context) error {
		// Safe unlock: delete only if the value still matches.
		script := `
			if redis.call("get", KEYS[1]) == ARGV[1] then
				return redis.call("del", KEYS[1])
			else
				return 0
			end
		`
		return l.client.Eval(ctx, script, []string{lockKey}, val).Err()
	}

	acquire := func() (bool, error) {
		success, err := l.client.SetNX(ctx, lockKey, val, ttl).Result()
		if err != nil {
			return false, fmt.Errorf("redis error acquiring lock: %w", err)
		}
		return success, nil
	}

	// Uncontended locks resolve on the first attempt, without waiting
	// for a tick.
	success, err := acquire()
	if err != nil {
		return nil, err
	}
	if success {
		return unlock, nil
	}

	ticker := time.NewTicker(100 * time.Millisecond)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-ticker.C:
			success, err := acquire()
			if err != nil {
				return nil, err
			}
			if success {
				return unlock, nil
			}
			// Retry...
		}
	}
}
