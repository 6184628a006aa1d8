// Package entity defines the core business entities for the domain layer.
package entity

import (
	"time"

	"github.com/google/uuid"
)

// NotificationEvent identifies what happened in the ledger.
type NotificationEvent string

const (
	EventSplitCreated       NotificationEvent = "split.created"
	EventSplitReplaced      NotificationEvent = "split.replaced"
	EventSettlementRecorded NotificationEvent = "settlement.recorded"
)

// NotificationStatus is the delivery state of a queued notification.
type NotificationStatus string

const (
	NotificationStatusPending    NotificationStatus = "pending"
	NotificationStatusProcessing NotificationStatus = "processing"
	NotificationStatusSent       NotificationStatus = "sent"
	NotificationStatusFailed     NotificationStatus = "failed"
)

const (
	// maxNotificationAttempts bounds delivery retries before a job is
	// marked permanently failed.
	maxNotificationAttempts = 3
	// notificationRetryDelay is the base delay between delivery attempts.
	notificationRetryDelay = 30 * time.Second
)

// NotificationJob is an outbox row describing a ledger event to deliver to a
// user. Jobs are enqueued after the ledger write commits and delivered by a
// polling worker; delivery failure never affects the ledger.
type NotificationJob struct {
	ID             uuid.UUID
	Event          NotificationEvent
	RecipientID    uuid.UUID
	RecipientEmail string
	RecipientName  string
	Subject        string
	TemplateData   map[string]any
	Status         NotificationStatus
	Attempts       int
	LastError      string
	ScheduledAt    time.Time
	SentAt         *time.Time
	CreatedAt      time.Time
}

// NewNotificationJob creates a pending NotificationJob scheduled immediately.
func NewNotificationJob(
	event NotificationEvent,
	recipientID uuid.UUID,
	recipientEmail, recipientName, subject string,
	templateData map[string]any,
) *NotificationJob {
	now := time.Now().UTC()

	return &NotificationJob{
		ID:             uuid.New(),
		Event:          event,
		RecipientID:    recipientID,
		RecipientEmail: recipientEmail,
		RecipientName:  recipientName,
		Subject:        subject,
		TemplateData:   templateData,
		Status:         NotificationStatusPending,
		ScheduledAt:    now,
		CreatedAt:      now,
	}
}

// MarkProcessing transitions the job into the processing state.
func (j *NotificationJob) MarkProcessing() {
	j.Status = NotificationStatusProcessing
	j.Attempts++
}

// MarkSent records a successful delivery.
func (j *NotificationJob) MarkSent() {
	now := time.Now().UTC()
	j.Status = NotificationStatusSent
	j.SentAt = &now
}

// MarkFailed records a failed delivery attempt. Permanent failures and jobs
// out of attempts are marked failed; everything else is rescheduled with a
// linear backoff.
func (j *NotificationJob) MarkFailed(err error, permanent bool) {
	j.LastError = err.Error()

	if permanent || j.Attempts >= maxNotificationAttempts {
		j.Status = NotificationStatusFailed
		return
	}

	j.Status = NotificationStatusPending
	j.ScheduledAt = time.Now().UTC().Add(notificationRetryDelay * time.Duration(j.Attempts))
}
