// Package split contains bill-split-related use cases.
package split

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/splitledger/backend/internal/application/adapter"
	"github.com/splitledger/backend/internal/domain/entity"
	domainerror "github.com/splitledger/backend/internal/domain/error"
)

// ListGroupSplitsInput represents the input for listing a group's splits.
type ListGroupSplitsInput struct {
	GroupID uuid.UUID
	UserID  uuid.UUID
}

// ListGroupSplitsOutput represents the output of listing a group's splits.
type ListGroupSplitsOutput struct {
	Splits []*entity.BillSplit
}

// ListGroupSplitsUseCase handles group split listing logic.
type ListGroupSplitsUseCase struct {
	splitRepo adapter.SplitRepository
	groupRepo adapter.GroupRepository
}

// NewListGroupSplitsUseCase creates a new ListGroupSplitsUseCase instance.
func NewListGroupSplitsUseCase(splitRepo adapter.SplitRepository, groupRepo adapter.GroupRepository) *ListGroupSplitsUseCase {
	return &ListGroupSplitsUseCase{
		splitRepo: splitRepo,
		groupRepo: groupRepo,
	}
}

// Execute lists the group's splits, most recent first. Only members may
// see a group's splits.
func (uc *ListGroupSplitsUseCase) Execute(ctx context.Context, input ListGroupSplitsInput) (*ListGroupSplitsOutput, error) {
	if _, err := uc.groupRepo.FindByID(ctx, input.GroupID); err != nil {
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

	splits, err := uc.splitRepo.FindByGroup(ctx, input.GroupID)
	if err != nil {
		return nil, fmt.Errorf("failed to list splits: %w", err)
	}

	return &ListGroupSplitsOutput{Splits: splits}, nil
}
