// Package dto defines data transfer objects for API requests and responses.
package dto

import (
	"time"

	"github.com/splitledger/backend/internal/domain/entity"
)

// CreateGroupRequest represents the request body for group creation.
type CreateGroupRequest struct {
	Name      string   `json:"name" binding:"required,min=1,max=100"`
	Type      string   `json:"type,omitempty" binding:"omitempty,oneof=trip home event custom"`
	MemberIDs []string `json:"member_ids,omitempty"`
}

// UpdateGroupRequest represents the request body for group update. Omitted
// fields are left unchanged; member_ids, when present, replaces the member set.
type UpdateGroupRequest struct {
	Name      *string   `json:"name,omitempty" binding:"omitempty,min=1,max=100"`
	Type      *string   `json:"type,omitempty" binding:"omitempty,oneof=trip home event custom"`
	MemberIDs *[]string `json:"member_ids,omitempty"`
}

// GroupMemberResponse represents a group member in API responses.
type GroupMemberResponse struct {
	UserID   string    `json:"user_id"`
	Name     string    `json:"name"`
	Email    string    `json:"email"`
	Position int       `json:"position"`
	JoinedAt time.Time `json:"joined_at"`
}

// GroupResponse represents a group with its members in API responses.
type GroupResponse struct {
	ID          string                `json:"id"`
	Name        string                `json:"name"`
	Type        string                `json:"type"`
	CreatedBy   string                `json:"created_by"`
	MemberCount int                   `json:"member_count"`
	Members     []GroupMemberResponse `json:"members"`
	CreatedAt   time.Time             `json:"created_at"`
	UpdatedAt   time.Time             `json:"updated_at"`
}

// GroupListItemResponse represents a group in list responses.
type GroupListItemResponse struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Type        string    `json:"type"`
	MemberCount int       `json:"member_count"`
	CreatedAt   time.Time `json:"created_at"`
}

// GroupListResponse represents the response for listing a user's groups.
type GroupListResponse struct {
	Groups []GroupListItemResponse `json:"groups"`
}

// ToGroupResponse converts a GroupWithMembers entity to a GroupResponse DTO.
func ToGroupResponse(group *entity.GroupWithMembers) GroupResponse {
	members := make([]GroupMemberResponse, len(group.Members))
	for i, m := range group.Members {
		members[i] = GroupMemberResponse{
			UserID:   m.UserID.String(),
			Name:     m.UserName,
			Email:    m.UserEmail,
			Position: m.Position,
			JoinedAt: m.JoinedAt,
		}
	}

	return GroupResponse{
		ID:          group.Group.ID.String(),
		Name:        group.Group.Name,
		Type:        string(group.Group.Type),
		CreatedBy:   group.Group.CreatedBy.String(),
		MemberCount: group.MemberCount,
		Members:     members,
		CreatedAt:   group.Group.CreatedAt,
		UpdatedAt:   group.Group.UpdatedAt,
	}
}

// ToCreatedGroupResponse assembles a GroupResponse from a freshly created
// group and its member rows.
func ToCreatedGroupResponse(group *entity.Group, members []*entity.GroupMember) GroupResponse {
	return ToGroupResponse(&entity.GroupWithMembers{
		Group:       group,
		Members:     members,
		MemberCount: len(members),
	})
}

// ToGroupListResponse converts group list items to a GroupListResponse DTO.
func ToGroupListResponse(groups []*entity.GroupListItem) GroupListResponse {
	items := make([]GroupListItemResponse, len(groups))
	for i, g := range groups {
		items[i] = GroupListItemResponse{
			ID:          g.ID.String(),
			Name:        g.Name,
			Type:        string(g.Type),
			MemberCount: g.MemberCount,
			CreatedAt:   g.CreatedAt,
		}
	}
	return GroupListResponse{Groups: items}
}
