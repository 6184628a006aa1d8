// Package adapter defines interfaces that will be implemented in the integration layer.
package adapter

import (
	"context"

	"github.com/google/uuid"

	"github.com/splitledger/backend/internal/domain/entity"
)

// SplitRepository defines the interface for bill split persistence operations.
type SplitRepository interface {
	// Create creates a split and its participant rows in one transaction.
	Create(ctx context.Context, split *entity.BillSplit) error

	// FindByID retrieves a split with its participants ordered by position.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.BillSplit, error)

	// FindByGroup retrieves all splits of a group, most recent first.
	FindByGroup(ctx context.Context, groupID uuid.UUID) ([]*entity.BillSplit, error)

	// FindLiveByUser retrieves every split the user participates in whose
	// group still exists. Splits of deleted groups are excluded so they
	// stop counting toward balances.
	FindLiveByUser(ctx context.Context, userID uuid.UUID) ([]*entity.BillSplit, error)

	// Replace overwrites a split's fields and participant set in one
	// transaction, guarded by the expected revision. Returns
	// error.ErrSplitConflict when the revision no longer matches.
	Replace(ctx context.Context, split *entity.BillSplit, expectedRevision int64) error

	// Delete removes a split and its participant rows. Settlements that
	// reference it keep their row with a detached split ID.
	Delete(ctx context.Context, id uuid.UUID) error
}
