// Package error defines domain-specific errors for the SplitLedger application.
package error

import "errors"

// Group domain errors.
var (
	// ErrGroupNotFound is returned when a group is not found in the system.
	ErrGroupNotFound = errors.New("group not found")

	// ErrGroupNameRequired is returned when the group name is empty.
	ErrGroupNameRequired = errors.New("group name is required")

	// ErrGroupNameTooLong is returned when the group name exceeds the maximum length.
	ErrGroupNameTooLong = errors.New("group name too long")

	// ErrInvalidGroupType is returned when an unknown group type is provided.
	ErrInvalidGroupType = errors.New("invalid group type")

	// ErrGroupMembersRequired is returned when a group has no members.
	ErrGroupMembersRequired = errors.New("group must have at least one member")

	// ErrNotGroupCreator is returned when a non-creator attempts a creator-only action.
	ErrNotGroupCreator = errors.New("only the group creator can perform this action")

	// ErrNotGroupMember is returned when a user is not a member of the group.
	ErrNotGroupMember = errors.New("user is not a member of this group")
)

// GroupErrorCode defines error codes for group errors.
// Format: GRP-XXYYYY where XX is category and YYYY is specific error.
type GroupErrorCode string

const (
	// Resource not found errors (01XXXX)
	ErrCodeGroupNotFound GroupErrorCode = "GRP-010001"

	// Validation errors (02XXXX)
	ErrCodeGroupNameRequired    GroupErrorCode = "GRP-020001"
	ErrCodeGroupNameTooLong     GroupErrorCode = "GRP-020002"
	ErrCodeInvalidGroupType     GroupErrorCode = "GRP-020003"
	ErrCodeGroupMembersRequired GroupErrorCode = "GRP-020004"
	ErrCodeMissingGroupFields   GroupErrorCode = "GRP-020005"

	// Authorization errors (04XXXX)
	ErrCodeNotGroupCreator GroupErrorCode = "GRP-040001"
	ErrCodeNotGroupMember  GroupErrorCode = "GRP-040002"
)

// GroupError represents a group error with code and message.
type GroupError struct {
	Code    GroupErrorCode
	Message string
	Err     error
}

// Error implements the error interface.
func (e *GroupError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

// Unwrap returns the underlying error.
func (e *GroupError) Unwrap() error {
	return e.Err
}

// NewGroupError creates a new GroupError with the given code and message.
func NewGroupError(code GroupErrorCode, message string, err error) *GroupError {
	return &GroupError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}
