// Package lock serializes writers of one courrier across service instances.
package lock

import (
	"context"
	"errors"
	"time"
)

// ErrLockAcquire is returned when the lock backend fails while acquiring.
var ErrLockAcquire = errors.New("failed to acquire courrier lock")

// UnlockFunc releases a lock obtained from a Locker.
type UnlockFunc func(ctx context.Context) error

// Locker grants exclusive access to a key until the returned UnlockFunc is
// called or ttl elapses. Lock blocks until acquisition or ctx is done.
type Locker interface {
	Lock(ctx context.Context, key string, ttl time.Duration) (UnlockFunc, error)
}
