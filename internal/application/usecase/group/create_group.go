// Package group contains group-related use cases.
package group

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/splitledger/backend/internal/application/adapter"
	"github.com/splitledger/backend/internal/domain/entity"
	domainerror "github.com/splitledger/backend/internal/domain/error"
)

const (
	// MaxGroupNameLength is the maximum allowed length for group names.
	MaxGroupNameLength = 100
)

// CreateGroupInput represents the input for group creation.
type CreateGroupInput struct {
	Name      string
	Type      entity.GroupType
	UserID    uuid.UUID
	MemberIDs []uuid.UUID
}

// CreateGroupOutput represents the output of group creation.
type CreateGroupOutput struct {
	Group   *entity.Group
	Members []*entity.GroupMember
}

// CreateGroupUseCase handles group creation logic.
type CreateGroupUseCase struct {
	groupRepo adapter.GroupRepository
	userRepo  adapter.UserRepository
}

// NewCreateGroupUseCase creates a new CreateGroupUseCase instance.
func NewCreateGroupUseCase(groupRepo adapter.GroupRepository, userRepo adapter.UserRepository) *CreateGroupUseCase {
	return &CreateGroupUseCase{
		groupRepo: groupRepo,
		userRepo:  userRepo,
	}
}

// Execute performs the group creation. The creator always occupies position 0
// of the member list; the remaining members keep their input order.
func (uc *CreateGroupUseCase) Execute(ctx context.Context, input CreateGroupInput) (*CreateGroupOutput, error) {
	input.Name = strings.TrimSpace(input.Name)

	if input.Name == "" {
		return nil, domainerror.NewGroupError(
			domainerror.ErrCodeGroupNameRequired,
			"group name is required",
			domainerror.ErrGroupNameRequired,
		)
	}

	if len(input.Name) > MaxGroupNameLength {
		return nil, domainerror.NewGroupError(
			domainerror.ErrCodeGroupNameTooLong,
			fmt.Sprintf("group name must not exceed %d characters", MaxGroupNameLength),
			domainerror.ErrGroupNameTooLong,
		)
	}

	if input.Type == "" {
		input.Type = entity.GroupTypeCustom
	}
	if !entity.ValidGroupType(input.Type) {
		return nil, domainerror.NewGroupError(
			domainerror.ErrCodeInvalidGroupType,
			"group type must be 'trip', 'home', 'event' or 'custom'",
			domainerror.ErrInvalidGroupType,
		)
	}

	memberIDs := orderedMemberIDs(input.UserID, input.MemberIDs)

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

	group := entity.NewGroup(input.Name, input.Type, input.UserID)

	members := make([]entity.GroupMember, len(memberIDs))
	for i, id := range memberIDs {
		m := entity.NewGroupMember(group.ID, id, i)
		m.UserName = usersByID[id].Name
		m.UserEmail = usersByID[id].Email
		members[i] = *m
	}

	if err := uc.groupRepo.Create(ctx, group, members); err != nil {
		return nil, fmt.Errorf("failed to create group: %w", err)
	}

	out := make([]*entity.GroupMember, len(members))
	for i := range members {
		out[i] = &members[i]
	}

	return &CreateGroupOutput{
		Group:   group,
		Members: out,
	}, nil
}

// orderedMemberIDs puts the creator first and drops duplicates while
// preserving the order of the remaining IDs.
func orderedMemberIDs(creatorID uuid.UUID, memberIDs []uuid.UUID) []uuid.UUID {
	ordered := make([]uuid.UUID, 0, len(memberIDs)+1)
	seen := map[uuid.UUID]bool{creatorID: true}
	ordered = append(ordered, creatorID)
	for _, id := range memberIDs {
		if seen[id] {
			continue
		}
		seen[id] = true
		ordered = append(ordered, id)
	}
	return ordered
}
