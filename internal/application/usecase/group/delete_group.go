// Package group contains group-related use cases.
package group

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/splitledger/backend/internal/application/adapter"
	domainerror "github.com/splitledger/backend/internal/domain/error"
)

// DeleteGroupInput represents the input for group deletion.
type DeleteGroupInput struct {
	GroupID uuid.UUID
	UserID  uuid.UUID
}

// DeleteGroupOutput represents the output of group deletion.
type DeleteGroupOutput struct {
	Message string
}

// DeleteGroupUseCase handles group deletion logic.
type DeleteGroupUseCase struct {
	groupRepo adapter.GroupRepository
}

// NewDeleteGroupUseCase creates a new DeleteGroupUseCase instance.
func NewDeleteGroupUseCase(groupRepo adapter.GroupRepository) *DeleteGroupUseCase {
	return &DeleteGroupUseCase{
		groupRepo: groupRepo,
	}
}

// Execute performs the group deletion. Splits recorded against the group are
// kept as history but stop counting toward balances once the group is gone.
func (uc *DeleteGroupUseCase) Execute(ctx context.Context, input DeleteGroupInput) (*DeleteGroupOutput, error) {
	group, err := uc.groupRepo.FindByID(ctx, input.GroupID)
	if err != nil {
		return nil, domainerror.NewGroupError(
			domainerror.ErrCodeGroupNotFound,
			"group not found",
			domainerror.ErrGroupNotFound,
		)
	}

	if group.Group.CreatedBy != input.UserID {
		return nil, domainerror.NewGroupError(
			domainerror.ErrCodeNotGroupCreator,
			"only the group creator can delete the group",
			domainerror.ErrNotGroupCreator,
		)
	}

	if err := uc.groupRepo.Delete(ctx, input.GroupID); err != nil {
		return nil, fmt.Errorf("failed to delete group: %w", err)
	}

	return &DeleteGroupOutput{
		Message: "Group deleted successfully",
	}, nil
}
