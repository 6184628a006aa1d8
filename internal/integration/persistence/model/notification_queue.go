// Package model defines database models for persistence layer.
package model

import (
	"encoding/json"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/splitledger/backend/internal/domain/entity"
)

// NotificationQueueModel represents the notification_queue table in the database.
type NotificationQueueModel struct {
	ID             uuid.UUID  `gorm:"type:uuid;primaryKey"`
	Event          string     `gorm:"type:varchar(50);not null"`
	RecipientID    uuid.UUID  `gorm:"type:uuid;not null;index"`
	RecipientEmail string     `gorm:"type:varchar(255);not null;index"`
	RecipientName  string     `gorm:"type:varchar(255)"`
	Subject        string     `gorm:"type:varchar(500);not null"`
	TemplateData   string     `gorm:"type:jsonb;not null;default:'{}'"`
	Status         string     `gorm:"type:varchar(20);not null;default:'pending';index"`
	Attempts       int        `gorm:"not null;default:0"`
	LastError      string     `gorm:"type:text"`
	ScheduledAt    time.Time  `gorm:"not null;index"`
	SentAt         *time.Time `gorm:"type:timestamptz"`
	CreatedAt      time.Time  `gorm:"not null"`
}

// TableName returns the table name for the NotificationQueueModel.
func (NotificationQueueModel) TableName() string {
	return "notification_queue"
}

// ToEntity converts a NotificationQueueModel to a domain NotificationJob entity.
func (m *NotificationQueueModel) ToEntity() *entity.NotificationJob {
	var templateData map[string]any
	if m.TemplateData != "" {
		if err := json.Unmarshal([]byte(m.TemplateData), &templateData); err != nil {
			slog.Warn("Failed to unmarshal notification template data", "error", err, "id", m.ID)
		}
	}
	if templateData == nil {
		templateData = make(map[string]any)
	}

	return &entity.NotificationJob{
		ID:             m.ID,
		Event:          entity.NotificationEvent(m.Event),
		RecipientID:    m.RecipientID,
		RecipientEmail: m.RecipientEmail,
		RecipientName:  m.RecipientName,
		Subject:        m.Subject,
		TemplateData:   templateData,
		Status:         entity.NotificationStatus(m.Status),
		Attempts:       m.Attempts,
		LastError:      m.LastError,
		ScheduledAt:    m.ScheduledAt,
		SentAt:         m.SentAt,
		CreatedAt:      m.CreatedAt,
	}
}

// NotificationQueueFromEntity creates a NotificationQueueModel from a domain NotificationJob entity.
func NotificationQueueFromEntity(job *entity.NotificationJob) *NotificationQueueModel {
	templateData := "{}"
	if len(job.TemplateData) > 0 {
		if data, err := json.Marshal(job.TemplateData); err != nil {
			slog.Warn("Failed to marshal notification template data", "error", err, "id", job.ID)
		} else {
			templateData = string(data)
		}
	}

	return &NotificationQueueModel{
		ID:             job.ID,
		Event:          string(job.Event),
		RecipientID:    job.RecipientID,
		RecipientEmail: job.RecipientEmail,
		RecipientName:  job.RecipientName,
		Subject:        job.Subject,
		TemplateData:   templateData,
		Status:         string(job.Status),
		Attempts:       job.Attempts,
		LastError:      job.LastError,
		ScheduledAt:    job.ScheduledAt,
		SentAt:         job.SentAt,
		CreatedAt:      job.CreatedAt,
	}
}
