// Package adapter defines interfaces that will be implemented in the integration layer.
package adapter

import (
	"context"

	"github.com/google/uuid"

	"github.com/splitledger/backend/internal/domain/entity"
)

// GroupRepository defines the interface for group persistence operations.
type GroupRepository interface {
	// Create creates a group and its member rows in one transaction.
	Create(ctx context.Context, group *entity.Group, members []entity.GroupMember) error

	// FindByID retrieves a group with its members ordered by position.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.GroupWithMembers, error)

	// FindByUser retrieves all groups the user is a member of, most
	// recently created first.
	FindByUser(ctx context.Context, userID uuid.UUID) ([]*entity.GroupListItem, error)

	// Update updates a group's name and type and replaces its member set.
	Update(ctx context.Context, group *entity.Group, members []entity.GroupMember) error

	// Delete removes a group and its membership rows. Splits recorded
	// against the group are kept but drop out of balance queries.
	Delete(ctx context.Context, id uuid.UUID) error

	// IsMember checks whether the user belongs to the group.
	IsMember(ctx context.Context, groupID, userID uuid.UUID) (bool, error)
}
