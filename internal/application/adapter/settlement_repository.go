// Package adapter defines interfaces that will be implemented in the integration layer.
package adapter

import (
	"context"

	"github.com/google/uuid"

	"github.com/splitledger/backend/internal/domain/entity"
)

// SettlementRepository defines the interface for settlement persistence operations.
type SettlementRepository interface {
	// RecordAgainstSplit inserts the settlement, increments the payer's
	// paid amount on the split, and bumps the split's revision, all in one
	// transaction guarded by the expected revision. Returns
	// error.ErrSplitConflict when the revision no longer matches.
	RecordAgainstSplit(ctx context.Context, settlement *entity.Settlement, expectedRevision int64) error

	// Create inserts a free-form settlement not tied to any split.
	Create(ctx context.Context, settlement *entity.Settlement) error

	// FindByUser retrieves settlements where the user is payer or payee,
	// most recent first.
	FindByUser(ctx context.Context, userID uuid.UUID) ([]*entity.Settlement, error)

	// FindLiveByUser retrieves the user's settlements that still count
	// toward balances: those attached to a split whose group still
	// exists. Detached settlements stay visible in history but their
	// debt source is gone, so they no longer offset anything.
	FindLiveByUser(ctx context.Context, userID uuid.UUID) ([]*entity.Settlement, error)

	// FindBySplit retrieves all settlements recorded against a split.
	FindBySplit(ctx context.Context, splitID uuid.UUID) ([]*entity.Settlement, error)
}
