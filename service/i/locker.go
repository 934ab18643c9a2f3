package i

import "context"

// Unlock releases a lock obtained from a Locker.
type Unlock func() error

// Locker serializes work on a key across processes.
type Locker interface {
	// Lock blocks until the key is held or ctx is done.
	Lock(ctx context.Context, key string) (Unlock, error)
}
