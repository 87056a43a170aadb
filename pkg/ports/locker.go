package ports

import (
	"context"
	"time"
)

// UnlockFunc releases a lock taken by DistributedLocker.Lock.
type UnlockFunc func(ctx context.Context) error

// DistributedLocker lets replicas sharing a CurveCache agree on which of them
// samples a missing curve, so that a popular grid is computed once.
type DistributedLocker interface {
	// Lock blocks until the lock on key (a curve key) is held or ctx is done.
	// The lock expires after ttl if the holder never calls the UnlockFunc.
	Lock(ctx context.Context, key string, ttl time.Duration) (UnlockFunc, error)
}
