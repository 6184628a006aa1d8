// Package error defines domain-specific errors for the SplitLedger application.
package error

import "errors"

// Notification domain errors.
var (
	// ErrNotificationJobNotFound is returned when a queued job does not exist.
	ErrNotificationJobNotFound = errors.New("notification job not found")

	// ErrNotificationQueueFailed is returned when a job cannot be enqueued.
	ErrNotificationQueueFailed = errors.New("failed to enqueue notification")

	// ErrInvalidTemplate is returned when a job references an unknown template.
	ErrInvalidTemplate = errors.New("unknown notification template")

	// ErrPermanentSendFailure is returned when the provider rejects a
	// notification in a way that retrying cannot fix.
	ErrPermanentSendFailure = errors.New("notification permanently rejected")
)

// NotificationErrorCode defines error codes for notification errors.
// Format: NTF-XXYYYY where XX is category and YYYY is specific error.
type NotificationErrorCode string

const (
	// Validation errors (02XXXX)
	ErrCodeInvalidTemplate NotificationErrorCode = "NTF-020001"

	// Delivery errors (05XXXX)
	ErrCodeNotificationQueueFailed NotificationErrorCode = "NTF-050001"
	ErrCodePermanentSendFailure    NotificationErrorCode = "NTF-050002"
	ErrCodeTransientSendFailure    NotificationErrorCode = "NTF-050003"
)

// NotificationError represents a notification error with code and message.
type NotificationError struct {
	Code    NotificationErrorCode
	Message string
	Err     error
}

// Error implements the error interface.
func (e *NotificationError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

// Unwrap returns the underlying error.
func (e *NotificationError) Unwrap() error {
	return e.Err
}

// NewNotificationError creates a new NotificationError with the given code and message.
func NewNotificationError(code NotificationErrorCode, message string, err error) *NotificationError {
	return &NotificationError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}
