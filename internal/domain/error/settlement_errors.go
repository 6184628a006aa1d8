// Package error defines domain-specific errors for the SplitLedger application.
package error

import "errors"

// Settlement domain errors.
var (
	// ErrSettlementNotFound is returned when a settlement is not found.
	ErrSettlementNotFound = errors.New("settlement not found")

	// ErrInvalidSettlementAmount is returned when the amount is not positive.
	ErrInvalidSettlementAmount = errors.New("settlement amount must be positive")

	// ErrSettlementExceedsOwed is returned when the amount exceeds the live
	// candidate computed for the payer/payee/split triple. Never clamped:
	// clamping would mask a race between the client's cached view and the
	// server's authoritative one.
	ErrSettlementExceedsOwed = errors.New("settlement amount exceeds outstanding debt")

	// ErrSettlementSelfPayment is returned when payer and payee are the same user.
	ErrSettlementSelfPayment = errors.New("payer and payee must be different users")

	// ErrSettlementNotParticipants is returned when payer or payee is not a
	// participant of the referenced split.
	ErrSettlementNotParticipants = errors.New("payer and payee must be participants of the split")

	// ErrSettlementNotParty is returned when the user recording a settlement
	// is neither its payer nor its payee.
	ErrSettlementNotParty = errors.New("settlements can only be recorded by their payer or payee")
)

// SettlementErrorCode defines error codes for settlement errors.
// Format: STL-XXYYYY where XX is category and YYYY is specific error.
type SettlementErrorCode string

const (
	// Resource not found errors (01XXXX)
	ErrCodeSettlementNotFound SettlementErrorCode = "STL-010001"

	// Validation errors (02XXXX)
	ErrCodeInvalidSettlementAmount   SettlementErrorCode = "STL-020001"
	ErrCodeSettlementExceedsOwed     SettlementErrorCode = "STL-020002"
	ErrCodeSettlementSelfPayment     SettlementErrorCode = "STL-020003"
	ErrCodeSettlementNotParticipants SettlementErrorCode = "STL-020004"
	ErrCodeMissingSettlementFields   SettlementErrorCode = "STL-020005"

	// Authorization errors (04XXXX)
	ErrCodeSettlementNotParty SettlementErrorCode = "STL-040001"
)

// SettlementError represents a settlement error with code and message.
type SettlementError struct {
	Code    SettlementErrorCode
	Message string
	Err     error
}

// Error implements the error interface.
func (e *SettlementError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

// Unwrap returns the underlying error.
func (e *SettlementError) Unwrap() error {
	return e.Err
}

// NewSettlementError creates a new SettlementError with the given code and message.
func NewSettlementError(code SettlementErrorCode, message string, err error) *SettlementError {
	return &SettlementError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}
