// Package group contains group-related use cases.
package group

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/splitledger/backend/internal/application/adapter"
	"github.com/splitledger/backend/internal/domain/entity"
	domainerror "github.com/splitledger/backend/internal/domain/error"
)

// UpdateGroupInput represents the input for group update. Nil fields are
// left unchanged; a non-nil MemberIDs replaces the member set.
type UpdateGroupInput struct {
	GroupID   uuid.UUID
	UserID    uuid.UUID
	Name      *string
	Type      *entity.GroupType
	MemberIDs []uuid.UUID
}

// UpdateGroupOutput represents the output of group update.
type UpdateGroupOutput struct {
	Group *entity.GroupWithMembers
}

// UpdateGroupUseCase handles group update logic.
type UpdateGroupUseCase struct {
	groupRepo adapter.GroupRepository
	userRepo  adapter.UserRepository
}

// NewUpdateGroupUseCase creates a new UpdateGroupUseCase instance.
func NewUpdateGroupUseCase(groupRepo adapter.GroupRepository, userRepo adapter.UserRepository) *UpdateGroupUseCase {
	return &UpdateGroupUseCase{
		groupRepo: groupRepo,
		userRepo:  userRepo,
	}
}

// Execute performs the group update. Only the creator may change a group,
// and the creator always remains at position 0 of the member list.
func (uc *UpdateGroupUseCase) Execute(ctx context.Context, input UpdateGroupInput) (*UpdateGroupOutput, error) {
	existing, err := uc.groupRepo.FindByID(ctx, input.GroupID)
	if err != nil {
		return nil, domainerror.NewGroupError(
			domainerror.ErrCodeGroupNotFound,
			"group not found",
			domainerror.ErrGroupNotFound,
		)
	}

	if existing.Group.CreatedBy != input.UserID {
		return nil, domainerror.NewGroupError(
			domainerror.ErrCodeNotGroupCreator,
			"only the group creator can update the group",
			domainerror.ErrNotGroupCreator,
		)
	}

	group := existing.Group

	if input.Name != nil {
		name := strings.TrimSpace(*input.Name)
		if name == "" {
			return nil, domainerror.NewGroupError(
				domainerror.ErrCodeGroupNameRequired,
				"group name is required",
				domainerror.ErrGroupNameRequired,
			)
		}
		if len(name) > MaxGroupNameLength {
			return nil, domainerror.NewGroupError(
				domainerror.ErrCodeGroupNameTooLong,
				fmt.Sprintf("group name must not exceed %d characters", MaxGroupNameLength),
				domainerror.ErrGroupNameTooLong,
			)
		}
		group.Name = name
	}

	if input.Type != nil {
		if !entity.ValidGroupType(*input.Type) {
			return nil, domainerror.NewGroupError(
				domainerror.ErrCodeInvalidGroupType,
				"group type must be 'trip', 'home', 'event' or 'custom'",
				domainerror.ErrInvalidGroupType,
			)
		}
		group.Type = *input.Type
	}

	var memberIDs []uuid.UUID
	if input.MemberIDs != nil {
		memberIDs = orderedMemberIDs(group.CreatedBy, input.MemberIDs)
	} else {
		for _, m := range existing.Members {
			memberIDs = append(memberIDs, m.UserID)
		}
	}

	users, err := uc.userRepo.FindByIDs(ctx, memberIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to load members: %w", err)
	}
	usersByID := make(map[uuid.UUID]*entity.User, len(users))
	for _, u := range users {
		usersByID[u.ID] = u
	}
	for _, id := range memberIDs {
		if _, ok := usersByID[id]; !ok {
			return nil, domainerror.NewAuthError(
				domainerror.ErrCodeUserNotFound,
				fmt.Sprintf("user %s not found", id),
				domainerror.ErrUserNotFound,
			)
		}
	}

	members := make([]entity.GroupMember, len(memberIDs))
	for i, id := range memberIDs {
		m := entity.NewGroupMember(group.ID, id, i)
		m.UserName = usersByID[id].Name
		m.UserEmail = usersByID[id].Email
		members[i] = *m
	}

	group.UpdatedAt = time.Now().UTC()

	if err := uc.groupRepo.Update(ctx, group, members); err != nil {
		return nil, fmt.Errorf("failed to update group: %w", err)
	}

	updated, err := uc.groupRepo.FindByID(ctx, group.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to reload group: %w", err)
	}

	return &UpdateGroupOutput{Group: updated}, nil
}
