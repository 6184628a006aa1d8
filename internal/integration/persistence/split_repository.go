// Package persistence implements repository interfaces for database operations.
package persistence

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/splitledger/backend/internal/application/adapter"
	"github.com/splitledger/backend/internal/domain/entity"
	domainerror "github.com/splitledger/backend/internal/domain/error"
	"github.com/splitledger/backend/internal/integration/persistence/model"
)

// splitRepository implements the adapter.SplitRepository interface.
type splitRepository struct {
	db *gorm.DB
}

// NewSplitRepository creates a new split repository instance.
func NewSplitRepository(db *gorm.DB) adapter.SplitRepository {
	return &splitRepository{
		db: db,
	}
}

// Create creates a split and its participant rows in one transaction.
func (r *splitRepository) Create(ctx context.Context, split *entity.BillSplit) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(model.SplitFromEntity(split)).Error; err != nil {
			return err
		}
		for i := range split.Participants {
			if err := tx.Create(model.ParticipantFromEntity(split.ID, &split.Participants[i])).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

// FindByID retrieves a split with its participants ordered by position.
func (r *splitRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.BillSplit, error) {
	var splitModel model.SplitModel
	result := r.db.WithContext(ctx).
		Preload("Participants", func(db *gorm.DB) *gorm.DB {
			return db.Order("position ASC")
		}).
		Where("id = ?", id).
		First(&splitModel)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, domainerror.ErrSplitNotFound
		}
		return nil, result.Error
	}
	return splitModel.ToEntity(), nil
}

// FindByGroup retrieves all splits of a group, most recent first.
func (r *splitRepository) FindByGroup(ctx context.Context, groupID uuid.UUID) ([]*entity.BillSplit, error) {
	var splitModels []model.SplitModel
	result := r.db.WithContext(ctx).
		Preload("Participants", func(db *gorm.DB) *gorm.DB {
			return db.Order("position ASC")
		}).
		Where("group_id = ?", groupID).
		Order("created_at DESC").
		Find(&splitModels)
	if result.Error != nil {
		return nil, result.Error
	}
	return toEntities(splitModels), nil
}

// FindLiveByUser retrieves every split the user participates in or created
// whose group still exists. The inner join on groups is what drops orphaned
// splits out of balance and candidate computation.
func (r *splitRepository) FindLiveByUser(ctx context.Context, userID uuid.UUID) ([]*entity.BillSplit, error) {
	var splitModels []model.SplitModel
	result := r.db.WithContext(ctx).
		Preload("Participants", func(db *gorm.DB) *gorm.DB {
			return db.Order("position ASC")
		}).
		Select("bill_splits.*").
		Joins("INNER JOIN groups g ON g.id = bill_splits.group_id").
		Where(
			"bill_splits.creator_id = ? OR bill_splits.id IN (SELECT split_id FROM split_participants WHERE user_id = ?)",
			userID, userID,
		).
		Order("bill_splits.created_at DESC").
		Find(&splitModels)
	if result.Error != nil {
		return nil, result.Error
	}
	return toEntities(splitModels), nil
}

// Replace overwrites a split's fields and participant set, guarded by the
// expected revision. The UPDATE carries the revision predicate; zero rows
// affected means another writer won and the caller should retry.
func (r *splitRepository) Replace(ctx context.Context, split *entity.BillSplit, expectedRevision int64) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		splitModel := model.SplitFromEntity(split)
		splitModel.UpdatedAt = time.Now().UTC()

		result := tx.Model(&model.SplitModel{}).
			Where("id = ? AND revision = ?", split.ID, expectedRevision).
			Updates(map[string]any{
				"name":         splitModel.Name,
				"total_amount": splitModel.TotalAmount,
				"category":     splitModel.Category,
				"notes":        splitModel.Notes,
				"revision":     splitModel.Revision,
				"updated_at":   splitModel.UpdatedAt,
			})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return domainerror.ErrSplitConflict
		}

		if err := tx.Delete(&model.ParticipantModel{}, "split_id = ?", split.ID).Error; err != nil {
			return err
		}
		for i := range split.Participants {
			if err := tx.Create(model.ParticipantFromEntity(split.ID, &split.Participants[i])).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

// Delete removes a split and its participant rows, detaching settlements
// that reference it.
func (r *splitRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&model.SettlementModel{}).
			Where("split_id = ?", id).
			Update("split_id", nil).Error; err != nil {
			return err
		}
		if err := tx.Delete(&model.ParticipantModel{}, "split_id = ?", id).Error; err != nil {
			return err
		}
		return tx.Delete(&model.SplitModel{}, "id = ?", id).Error
	})
}

func toEntities(splitModels []model.SplitModel) []*entity.BillSplit {
	splits := make([]*entity.BillSplit, len(splitModels))
	for i := range splitModels {
		splits[i] = splitModels[i].ToEntity()
	}
	return splits
}
