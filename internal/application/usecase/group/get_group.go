// Package group contains group-related use cases.
package group

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/splitledger/backend/internal/application/adapter"
	"github.com/splitledger/backend/internal/domain/entity"
	domainerror "github.com/splitledger/backend/internal/domain/error"
)

// GetGroupInput represents the input for retrieving a group.
type GetGroupInput struct {
	GroupID uuid.UUID
	UserID  uuid.UUID
}

// GetGroupOutput represents the output of retrieving a group.
type GetGroupOutput struct {
	Group *entity.GroupWithMembers
}

// GetGroupUseCase handles group retrieval logic.
type GetGroupUseCase struct {
	groupRepo adapter.GroupRepository
}

// NewGetGroupUseCase creates a new GetGroupUseCase instance.
func NewGetGroupUseCase(groupRepo adapter.GroupRepository) *GetGroupUseCase {
	return &GetGroupUseCase{
		groupRepo: groupRepo,
	}
}

// Execute retrieves a group with its ordered member list. Only members may
// see a group.
func (uc *GetGroupUseCase) Execute(ctx context.Context, input GetGroupInput) (*GetGroupOutput, error) {
	group, err := uc.groupRepo.FindByID(ctx, input.GroupID)
	if err != nil {
		return nil, domainerror.NewGroupError(
			domainerror.ErrCodeGroupNotFound,
			"group not found",
			domainerror.ErrGroupNotFound,
		)
	}

	isMember, err := uc.groupRepo.IsMember(ctx, input.GroupID, input.UserID)
	if err != nil {
		return nil, fmt.Errorf("failed to check membership: %w", err)
	}
	if !isMember {
		return nil, domainerror.NewGroupError(
			domainerror.ErrCodeNotGroupMember,
			"user is not a member of this group",
			domainerror.ErrNotGroupMember,
		)
	}

	return &GetGroupOutput{Group: group}, nil
}
