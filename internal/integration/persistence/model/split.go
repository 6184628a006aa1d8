// Package model defines database models for persistence layer.
package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/splitledger/backend/internal/domain/entity"
)

// SplitModel represents the bill_splits table in the database.
type SplitModel struct {
	ID          uuid.UUID       `gorm:"type:uuid;primaryKey"`
	Name        string          `gorm:"type:varchar(150);not null"`
	TotalAmount decimal.Decimal `gorm:"type:decimal(15,2);not null"`
	GroupID     uuid.UUID       `gorm:"type:uuid;not null;index"`
	Category    *string         `gorm:"type:varchar(30)"`
	Notes       string          `gorm:"type:text"`
	CreatorID   uuid.UUID       `gorm:"type:uuid;not null;index"`
	Revision    int64           `gorm:"not null;default:1"`
	CreatedAt   time.Time       `gorm:"not null"`
	UpdatedAt   time.Time       `gorm:"not null"`

	Participants []ParticipantModel `gorm:"foreignKey:SplitID;references:ID"`
}

// TableName returns the table name for the SplitModel.
func (SplitModel) TableName() string {
	return "bill_splits"
}

// ToEntity converts a SplitModel to a domain BillSplit entity.
func (m *SplitModel) ToEntity() *entity.BillSplit {
	var category *entity.SplitCategory
	if m.Category != nil {
		c := entity.SplitCategory(*m.Category)
		category = &c
	}

	participants := make([]entity.Participant, len(m.Participants))
	for i := range m.Participants {
		participants[i] = m.Participants[i].ToEntity()
	}

	return &entity.BillSplit{
		ID:           m.ID,
		Name:         m.Name,
		TotalAmount:  m.TotalAmount,
		GroupID:      m.GroupID,
		Category:     category,
		Notes:        m.Notes,
		CreatorID:    m.CreatorID,
		Revision:     m.Revision,
		Participants: participants,
		CreatedAt:    m.CreatedAt,
		UpdatedAt:    m.UpdatedAt,
	}
}

// SplitFromEntity creates a SplitModel from a domain BillSplit entity.
// Participant rows are converted separately so transactional writes can
// control their lifecycle.
func SplitFromEntity(split *entity.BillSplit) *SplitModel {
	var category *string
	if split.Category != nil {
		c := string(*split.Category)
		category = &c
	}

	return &SplitModel{
		ID:          split.ID,
		Name:        split.Name,
		TotalAmount: split.TotalAmount,
		GroupID:     split.GroupID,
		Category:    category,
		Notes:       split.Notes,
		CreatorID:   split.CreatorID,
		Revision:    split.Revision,
		CreatedAt:   split.CreatedAt,
		UpdatedAt:   split.UpdatedAt,
	}
}

// ParticipantModel represents the split_participants table in the database.
type ParticipantModel struct {
	ID          uuid.UUID       `gorm:"type:uuid;primaryKey"`
	SplitID     uuid.UUID       `gorm:"type:uuid;not null;index"`
	UserID      uuid.UUID       `gorm:"type:uuid;not null;index"`
	ShareAmount decimal.Decimal `gorm:"type:decimal(15,2);not null"`
	PaidAmount  decimal.Decimal `gorm:"type:decimal(15,2);not null;default:0"`
	SplitMethod string          `gorm:"type:varchar(20);not null"`
	SplitValue  decimal.Decimal `gorm:"type:decimal(15,4);not null;default:1"`
	Position    int             `gorm:"not null;default:0"`
}

// TableName returns the table name for the ParticipantModel.
func (ParticipantModel) TableName() string {
	return "split_participants"
}

// ToEntity converts a ParticipantModel to a domain Participant value.
func (m *ParticipantModel) ToEntity() entity.Participant {
	return entity.Participant{
		UserID:      m.UserID,
		ShareAmount: m.ShareAmount,
		PaidAmount:  m.PaidAmount,
		SplitMethod: entity.SplitMethod(m.SplitMethod),
		SplitValue:  m.SplitValue,
		Position:    m.Position,
	}
}

// ParticipantFromEntity creates a ParticipantModel from a domain Participant value.
func ParticipantFromEntity(splitID uuid.UUID, p *entity.Participant) *ParticipantModel {
	return &ParticipantModel{
		ID:          uuid.New(),
		SplitID:     splitID,
		UserID:      p.UserID,
		ShareAmount: p.ShareAmount,
		PaidAmount:  p.PaidAmount,
		SplitMethod: string(p.SplitMethod),
		SplitValue:  p.SplitValue,
		Position:    p.Position,
	}
}
