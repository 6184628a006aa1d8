// Package error defines domain-specific errors for the SplitLedger application.
package error

import "errors"

// Auth domain errors.
var (
	// ErrInvalidCredentials is returned when email or password is wrong.
	ErrInvalidCredentials = errors.New("invalid email or password")

	// ErrEmailAlreadyRegistered is returned when the email is taken.
	ErrEmailAlreadyRegistered = errors.New("email already registered")

	// ErrWeakPassword is returned when a password fails the strength check.
	ErrWeakPassword = errors.New("password does not meet minimum requirements")

	// ErrInvalidEmail is returned when an email address is malformed.
	ErrInvalidEmail = errors.New("invalid email address")

	// ErrMissingToken is returned when no token is supplied.
	ErrMissingToken = errors.New("authentication token is required")

	// ErrInvalidToken is returned when a token is malformed or expired.
	ErrInvalidToken = errors.New("invalid or expired token")

	// ErrUserNotFound is returned when a user does not exist.
	ErrUserNotFound = errors.New("user not found")

	// ErrMissingAuthFields is returned when a required field is empty.
	ErrMissingAuthFields = errors.New("missing required fields")

	// ErrRateLimited is returned when too many attempts arrive from one source.
	ErrRateLimited = errors.New("too many attempts, try again later")
)

// AuthErrorCode defines error codes for auth errors.
// Format: AUT-XXYYYY where XX is category and YYYY is specific error.
type AuthErrorCode string

const (
	// Resource not found errors (01XXXX)
	ErrCodeUserNotFound AuthErrorCode = "AUT-010001"

	// Validation errors (02XXXX)
	ErrCodeInvalidEmail      AuthErrorCode = "AUT-020001"
	ErrCodeWeakPassword      AuthErrorCode = "AUT-020002"
	ErrCodeMissingAuthFields AuthErrorCode = "AUT-020003"

	// Conflict errors (03XXXX)
	ErrCodeEmailAlreadyRegistered AuthErrorCode = "AUT-030001"

	// Authorization errors (04XXXX)
	ErrCodeInvalidCredentials AuthErrorCode = "AUT-040001"
	ErrCodeMissingToken       AuthErrorCode = "AUT-040002"
	ErrCodeInvalidToken       AuthErrorCode = "AUT-040003"
	ErrCodeRateLimited        AuthErrorCode = "AUT-040004"
)

// AuthError represents an auth error with code and message.
type AuthError struct {
	Code    AuthErrorCode
	Message string
	Err     error
}

// Error implements the error interface.
func (e *AuthError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

// Unwrap returns the underlying error.
func (e *AuthError) Unwrap() error {
	return e.Err
}

// NewAuthError creates a new AuthError with the given code and message.
func NewAuthError(code AuthErrorCode, message string, err error) *AuthError {
	return &AuthError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}
