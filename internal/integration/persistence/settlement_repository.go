// Package persistence implements repository interfaces for database operations.
package persistence

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/splitledger/backend/internal/application/adapter"
	"github.com/splitledger/backend/internal/domain/entity"
	domainerror "github.com/splitledger/backend/internal/domain/error"
	"github.com/splitledger/backend/internal/integration/persistence/model"
)

// settlementRepository implements the adapter.SettlementRepository interface.
type settlementRepository struct {
	db *gorm.DB
}

// NewSettlementRepository creates a new settlement repository instance.
func NewSettlementRepository(db *gorm.DB) adapter.SettlementRepository {
	return &settlementRepository{
		db: db,
	}
}

// RecordAgainstSplit inserts the settlement, credits the payer's paid amount
// on the split, and bumps the split's revision, all in one transaction. The
// revision bump carries the expected-revision predicate; zero rows affected
// means another writer got there first and the whole transaction rolls back.
func (r *settlementRepository) RecordAgainstSplit(ctx context.Context, settlement *entity.Settlement, expectedRevision int64) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Model(&model.SplitModel{}).
			Where("id = ? AND revision = ?", settlement.SplitID, expectedRevision).
			Update("revision", gorm.Expr("revision + 1"))
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return domainerror.ErrSplitConflict
		}

		if err := tx.Model(&model.ParticipantModel{}).
			Where("split_id = ? AND user_id = ?", settlement.SplitID, settlement.PayerID).
			Update("paid_amount", gorm.Expr("paid_amount + ?", settlement.Amount)).Error; err != nil {
			return err
		}

		return tx.Create(model.SettlementFromEntity(settlement)).Error
	})
}

// Create inserts a free-form settlement not tied to any split.
func (r *settlementRepository) Create(ctx context.Context, settlement *entity.Settlement) error {
	result := r.db.WithContext(ctx).Create(model.SettlementFromEntity(settlement))
	return result.Error
}

// FindByUser retrieves settlements where the user is payer or payee, most
// recent first. Includes settlements whose split has since been deleted.
func (r *settlementRepository) FindByUser(ctx context.Context, userID uuid.UUID) ([]*entity.Settlement, error) {
	var settlementModels []model.SettlementModel
	result := r.db.WithContext(ctx).
		Where("payer_id = ? OR payee_id = ?", userID, userID).
		Order("created_at DESC").
		Find(&settlementModels)
	if result.Error != nil {
		return nil, result.Error
	}
	return toSettlementEntities(settlementModels), nil
}

// FindLiveByUser retrieves the user's settlements that count toward
// balances: direct settlements, detached settlements, and settlements whose
// split's group still exists. Only settlements of orphaned splits (split
// alive, group gone) are dropped, mirroring the split-side filtering.
func (r *settlementRepository) FindLiveByUser(ctx context.Context, userID uuid.UUID) ([]*entity.Settlement, error) {
	var settlementModels []model.SettlementModel
	result := r.db.WithContext(ctx).
		Select("settlements.*").
		Joins("LEFT JOIN bill_splits bs ON bs.id = settlements.split_id").
		Joins("LEFT JOIN groups g ON g.id = bs.group_id").
		Where("bs.id IS NULL OR g.id IS NOT NULL").
		Where("settlements.payer_id = ? OR settlements.payee_id = ?", userID, userID).
		Order("settlements.created_at DESC").
		Find(&settlementModels)
	if result.Error != nil {
		return nil, result.Error
	}
	return toSettlementEntities(settlementModels), nil
}

// FindBySplit retrieves all settlements recorded against a split, oldest
// first.
func (r *settlementRepository) FindBySplit(ctx context.Context, splitID uuid.UUID) ([]*entity.Settlement, error) {
	var settlementModels []model.SettlementModel
	result := r.db.WithContext(ctx).
		Where("split_id = ?", splitID).
		Order("created_at ASC").
		Find(&settlementModels)
	if result.Error != nil {
		return nil, result.Error
	}
	return toSettlementEntities(settlementModels), nil
}

func toSettlementEntities(settlementModels []model.SettlementModel) []*entity.Settlement {
	settlements := make([]*entity.Settlement, len(settlementModels))
	for i := range settlementModels {
		settlements[i] = settlementModels[i].ToEntity()
	}
	return settlements
}
