// Package adapter defines interfaces that will be implemented in the integration layer.
package adapter

import (
	"context"

	"github.com/google/uuid"
)

// SplitLocker serializes writers on a single split across instances. The
// lock narrows the race window; the split's revision check inside the
// database transaction is the authoritative guard, so losing a lock is an
// availability problem, never a correctness one.
type SplitLocker interface {
	// Lock acquires the lock for the split, retrying briefly when it is
	// held. It returns a token that must be passed to Unlock.
	Lock(ctx context.Context, splitID uuid.UUID) (token string, err error)

	// Unlock releases the lock if the token still owns it. Releasing a
	// lock that expired or was taken over is a no-op.
	Unlock(ctx context.Context, splitID uuid.UUID, token string) error
}
