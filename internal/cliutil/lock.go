package cliutil

import (
	"context"
	"time"

	"github.com/gofrs/flock"

	"github.com/salesdash/salesdash/salesdash"
)

// LockRetryInterval is how often a held lock is re-polled.
const LockRetryInterval = 100 * time.Millisecond

// AcquireLock takes the cross-process write lock for the SQLite database at
// dbPath, waiting up to wait. The returned func releases it.
func AcquireLock(ctx context.Context, dbPath string, wait time.Duration) (func() error, error) {
	lockPath := dbPath + ".lock"
	fl := flock.New(lockPath)

	lockCtx, cancel := context.WithTimeout(ctx, wait)
	defer cancel()

	locked, err := fl.TryLockContext(lockCtx, LockRetryInterval)
	if err != nil && ctx.Err() != nil {
		return nil, ctx.Err()
	}
	if err != nil || !locked {
		return nil, salesdash.LockedError(lockPath)
	}
	return fl.Unlock, nil
}
