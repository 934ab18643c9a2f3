package lock

import (
	"context"
	"errors"
	"time"

	"github.com/beka-birhanu/minesweeper-api/service/i"
	"github.com/go-redsync/redsync/v4"
	"github.com/go-redsync/redsync/v4/redis/goredis/v9"
	"github.com/redis/go-redis/v9"
)

// ErrLockLost is returned on unlock when the lock expired before release.
var ErrLockLost = errors.New("lock expired before release")

// RedisLocker hands out redsync mutexes so that moves on one game are applied
// one at a time across API instances.
type RedisLocker struct {
	rs  *redsync.Redsync
	ttl time.Duration
}

// NewRedisLocker returns a Locker whose locks expire after ttlSeconds.
func NewRedisLocker(client *redis.Client, ttlSeconds int) *RedisLocker {
	pool := goredis.NewPool(client)
	return &RedisLocker{
		rs:  redsync.New(pool),
		ttl: time.Duration(ttlSeconds) * time.Second,
	}
}

var _ i.Locker = &RedisLocker{}

// Lock acquires key, retrying until ctx is done.
func (l *RedisLocker) Lock(ctx context.Context, key string) (i.Unlock, error) {
	mutex := l.rs.NewMutex(key,
		redsync.WithExpiry(l.ttl),
		redsync.WithTries(64),
		redsync.WithRetryDelay(50*time.Millisecond),
	)
	if err := mutex.LockContext(ctx); err != nil {
		return nil, err
	}

	return func() error {
		ok, err := mutex.Unlock()
		if err != nil {
			return err
		}
		if !ok {
			return ErrLockLost
		}
		return nil
	}, nil
}
