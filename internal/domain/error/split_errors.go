// Package error defines domain-specific errors for the SplitLedger application.
package error

import "errors"

// Split domain errors.
var (
	// ErrSplitNotFound is returned when a split is not found in the system.
	ErrSplitNotFound = errors.New("split not found")

	// ErrSplitNameRequired is returned when the split name is empty.
	ErrSplitNameRequired = errors.New("split name is required")

	// ErrInvalidSplitAmount is returned when the total amount is not positive.
	ErrInvalidSplitAmount = errors.New("split amount must be positive")

	// ErrInvalidSplitMethod is returned when an unknown split method is provided.
	ErrInvalidSplitMethod = errors.New("invalid split method")

	// ErrInvalidSplitCategory is returned when an unknown category is provided.
	ErrInvalidSplitCategory = errors.New("invalid split category")

	// ErrParticipantsRequired is returned when a split has no participants.
	ErrParticipantsRequired = errors.New("split must have at least one participant")

	// ErrInvalidSplitValues is returned when percentage split values do not
	// add up to a positive total.
	ErrInvalidSplitValues = errors.New("split values must sum to a positive total")

	// ErrSharesMismatch is returned when client-supplied shares do not sum
	// to the split total within the allowed epsilon.
	ErrSharesMismatch = errors.New("participant shares do not sum to the split total")

	// ErrNotSplitCreator is returned when a non-creator attempts replace or delete.
	ErrNotSplitCreator = errors.New("only the split creator can perform this action")

	// ErrSplitConflict is returned when concurrent writes to the same split
	// exhaust the bounded retry.
	ErrSplitConflict = errors.New("split was modified concurrently")

	// ErrSplitLockUnavailable is returned when the per-split lock cannot be
	// acquired within the retry window.
	ErrSplitLockUnavailable = errors.New("split is locked by another writer")
)

// SplitErrorCode defines error codes for split errors.
// Format: SPL-XXYYYY where XX is category and YYYY is specific error.
type SplitErrorCode string

const (
	// Resource not found errors (01XXXX)
	ErrCodeSplitNotFound SplitErrorCode = "SPL-010001"

	// Validation errors (02XXXX)
	ErrCodeSplitNameRequired    SplitErrorCode = "SPL-020001"
	ErrCodeInvalidSplitAmount   SplitErrorCode = "SPL-020002"
	ErrCodeInvalidSplitMethod   SplitErrorCode = "SPL-020003"
	ErrCodeInvalidSplitCategory SplitErrorCode = "SPL-020004"
	ErrCodeParticipantsRequired SplitErrorCode = "SPL-020005"
	ErrCodeInvalidSplitValues   SplitErrorCode = "SPL-020006"
	ErrCodeSharesMismatch       SplitErrorCode = "SPL-020007"
	ErrCodeMissingSplitFields   SplitErrorCode = "SPL-020008"

	// Conflict errors (03XXXX)
	ErrCodeSplitConflict        SplitErrorCode = "SPL-030001"
	ErrCodeSplitLockUnavailable SplitErrorCode = "SPL-030002"

	// Authorization errors (04XXXX)
	ErrCodeNotSplitCreator SplitErrorCode = "SPL-040001"
)

// SplitError represents a split error with code and message.
type SplitError struct {
	Code    SplitErrorCode
	Message string
	Err     error
}

// Error implements the error interface.
func (e *SplitError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

// Unwrap returns the underlying error.
func (e *SplitError) Unwrap() error {
	return e.Err
}

// NewSplitError creates a new SplitError with the given code and message.
func NewSplitError(code SplitErrorCode, message string, err error) *SplitError {
	return &SplitError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}
