// Package entity defines the core business entities for the domain layer.
package entity

import (
	"time"

	"github.com/google/uuid"
)

// GroupType classifies what a group is used for.
type GroupType string

const (
	GroupTypeTrip   GroupType = "trip"
	GroupTypeHome   GroupType = "home"
	GroupTypeEvent  GroupType = "event"
	GroupTypeCustom GroupType = "custom"
)

// ValidGroupType reports whether t is one of the known group types.
func ValidGroupType(t GroupType) bool {
	switch t {
	case GroupTypeTrip, GroupTypeHome, GroupTypeEvent, GroupTypeCustom:
		return true
	}
	return false
}

// Group represents a set of users who share expenses.
// Only the creator may rename, retype, change membership, or delete a group.
type Group struct {
	ID        uuid.UUID
	Name      string
	Type      GroupType
	CreatedBy uuid.UUID
	CreatedAt time.Time
	UpdatedAt time.Time
}

// NewGroup creates a new Group entity.
func NewGroup(name string, groupType GroupType, createdBy uuid.UUID) *Group {
	now := time.Now().UTC()

	return &Group{
		ID:        uuid.New(),
		Name:      name,
		Type:      groupType,
		CreatedBy: createdBy,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// GroupMember represents a member of a group. Position preserves the order in
// which members were added; the creator always occupies position 0.
type GroupMember struct {
	ID       uuid.UUID
	GroupID  uuid.UUID
	UserID   uuid.UUID
	Position int
	JoinedAt time.Time
	// User information (populated when needed)
	UserName  string
	UserEmail string
}

// NewGroupMember creates a new GroupMember entity.
func NewGroupMember(groupID, userID uuid.UUID, position int) *GroupMember {
	return &GroupMember{
		ID:       uuid.New(),
		GroupID:  groupID,
		UserID:   userID,
		Position: position,
		JoinedAt: time.Now().UTC(),
	}
}

// GroupWithMembers represents a group with its ordered member list.
type GroupWithMembers struct {
	Group       *Group
	Members     []*GroupMember
	MemberCount int
}

// GroupListItem represents a group in a list view.
type GroupListItem struct {
	ID          uuid.UUID
	Name        string
	Type        GroupType
	MemberCount int
	CreatedAt   time.Time
}
