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

// groupRepository implements the adapter.GroupRepository interface.
type groupRepository struct {
	db *gorm.DB
}

// NewGroupRepository creates a new group repository instance.
func NewGroupRepository(db *gorm.DB) adapter.GroupRepository {
	return &groupRepository{
		db: db,
	}
}

// Create creates a group and its member rows in one transaction.
func (r *groupRepository) Create(ctx context.Context, group *entity.Group, members []entity.GroupMember) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(model.GroupFromEntity(group)).Error; err != nil {
			return err
		}
		for i := range members {
			if err := tx.Create(model.GroupMemberFromEntity(&members[i])).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

// FindByID retrieves a group with its members ordered by position.
func (r *groupRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.GroupWithMembers, error) {
	var groupModel model.GroupModel
	result := r.db.WithContext(ctx).Where("id = ?", id).First(&groupModel)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, domainerror.ErrGroupNotFound
		}
		return nil, result.Error
	}

	var memberRows []struct {
		model.GroupMemberModel
		UserName  string
		UserEmail string
	}
	query := `
		SELECT gm.*, u.name AS user_name, u.email AS user_email
		FROM group_members gm
		INNER JOIN users u ON u.id = gm.user_id
		WHERE gm.group_id = ?
		ORDER BY gm.position ASC
	`
	if err := r.db.WithContext(ctx).Raw(query, id).Scan(&memberRows).Error; err != nil {
		return nil, err
	}

	members := make([]*entity.GroupMember, len(memberRows))
	for i, row := range memberRows {
		m := row.GroupMemberModel
		m.UserName = row.UserName
		m.UserEmail = row.UserEmail
		members[i] = m.ToEntity()
	}

	return &entity.GroupWithMembers{
		Group:       groupModel.ToEntity(),
		Members:     members,
		MemberCount: len(members),
	}, nil
}

// FindByUser retrieves all groups the user is a member of, most recently
// created first.
func (r *groupRepository) FindByUser(ctx context.Context, userID uuid.UUID) ([]*entity.GroupListItem, error) {
	var results []struct {
		ID          uuid.UUID
		Name        string
		Type        string
		MemberCount int
		CreatedAt   time.Time
	}

	query := `
		SELECT
			g.id,
			g.name,
			g.type,
			(SELECT COUNT(*) FROM group_members gm2 WHERE gm2.group_id = g.id) AS member_count,
			g.created_at
		FROM groups g
		INNER JOIN group_members gm ON gm.group_id = g.id
		WHERE gm.user_id = ?
		ORDER BY g.created_at DESC
	`

	if err := r.db.WithContext(ctx).Raw(query, userID).Scan(&results).Error; err != nil {
		return nil, err
	}

	groups := make([]*entity.GroupListItem, len(results))
	for i, res := range results {
		groups[i] = &entity.GroupListItem{
			ID:          res.ID,
			Name:        res.Name,
			Type:        entity.GroupType(res.Type),
			MemberCount: res.MemberCount,
			CreatedAt:   res.CreatedAt,
		}
	}

	return groups, nil
}

// Update updates a group's fields and replaces its member set in one
// transaction.
func (r *groupRepository) Update(ctx context.Context, group *entity.Group, members []entity.GroupMember) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Save(model.GroupFromEntity(group)).Error; err != nil {
			return err
		}
		if err := tx.Delete(&model.GroupMemberModel{}, "group_id = ?", group.ID).Error; err != nil {
			return err
		}
		for i := range members {
			if err := tx.Create(model.GroupMemberFromEntity(&members[i])).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

// Delete removes a group and its membership rows. Splits referencing the
// group are kept; aggregation queries exclude them by joining on groups.
func (r *groupRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Delete(&model.GroupMemberModel{}, "group_id = ?", id).Error; err != nil {
			return err
		}
		return tx.Delete(&model.GroupModel{}, "id = ?", id).Error
	})
}

// IsMember checks whether the user belongs to the group.
func (r *groupRepository) IsMember(ctx context.Context, groupID, userID uuid.UUID) (bool, error) {
	var count int64
	result := r.db.WithContext(ctx).
		Model(&model.GroupMemberModel{}).
		Where("group_id = ? AND user_id = ?", groupID, userID).
		Count(&count)
	if result.Error != nil {
		return false, result.Error
	}
	return count > 0, nil
}
