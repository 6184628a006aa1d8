// Package adapter defines interfaces that will be implemented in the integration layer.
package adapter

import (
	"context"

	"github.com/google/uuid"
)

// SendNotificationInput represents the input for delivering a notification.
type SendNotificationInput struct {
	To      string
	Name    string
	Subject string
	HTML    string
	Text    string
}

// SendNotificationResult represents the result of delivering a notification.
type SendNotificationResult struct {
	ProviderID string
}

// NotificationSender delivers a rendered notification via an external provider.
type NotificationSender interface {
	// Send sends a notification via the provider (e.g., Resend).
	Send(ctx context.Context, input SendNotificationInput) (*SendNotificationResult, error)
}

// NotificationService defines the interface for enqueueing ledger event notifications.
// Enqueueing is best effort: failures are logged and never fail the write
// that triggered them.
type NotificationService interface {
	// NotifySplitCreated queues notifications to a new split's participants.
	NotifySplitCreated(ctx context.Context, input NotifySplitInput) error

	// NotifySplitReplaced queues notifications when a split is replaced.
	NotifySplitReplaced(ctx context.Context, input NotifySplitInput) error

	// NotifySettlementRecorded queues a notification to the settlement's payee.
	NotifySettlementRecorded(ctx context.Context, input NotifySettlementInput) error
}

// NotifySplitInput represents the input for queueing split notifications.
type NotifySplitInput struct {
	SplitName   string
	GroupName   string
	CreatorName string
	TotalAmount string
	Recipients  []NotificationRecipient
}

// NotifySettlementInput represents the input for queueing a settlement notification.
type NotifySettlementInput struct {
	SplitName string
	PayerName string
	Amount    string
	Recipient NotificationRecipient
}

// NotificationRecipient identifies who receives a queued notification.
type NotificationRecipient struct {
	UserID uuid.UUID
	Email  string
	Name   string
	Share  string
}
