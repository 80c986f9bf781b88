package ports

import (
	"context"
	"time"
)

// UnlockFunc is a function that releases a lock.
type UnlockFunc func(ctx context.Context) error

// Locker guards the cursor against concurrent runs.
type Locker interface {
	// Lock acquires the lock for key, or fails with domain.ErrRunLocked when
	// another holder keeps it past the context deadline.
	// Returns an UnlockFunc that MUST be called to release the lock.
	Lock(ctx context.Context, key string, ttl time.Duration) (UnlockFunc, error)
}
