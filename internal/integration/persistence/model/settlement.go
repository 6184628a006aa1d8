// Package model defines database models for persistence layer.
package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/splitledger/backend/internal/domain/entity"
)

// SettlementModel represents the settlements table in the database.
// Rows are append-only; split deletion nulls SplitID but keeps the row.
type SettlementModel struct {
	ID        uuid.UUID       `gorm:"type:uuid;primaryKey"`
	SplitID   *uuid.UUID      `gorm:"type:uuid;index"`
	SplitName string          `gorm:"type:varchar(150)"`
	Amount    decimal.Decimal `gorm:"type:decimal(15,2);not null"`
	PayerID   uuid.UUID       `gorm:"type:uuid;not null;index"`
	PayeeID   uuid.UUID       `gorm:"type:uuid;not null;index"`
	Method    string          `gorm:"type:varchar(30)"`
	Notes     string          `gorm:"type:text"`
	CreatedAt time.Time       `gorm:"not null"`
}

// TableName returns the table name for the SettlementModel.
func (SettlementModel) TableName() string {
	return "settlements"
}

// ToEntity converts a SettlementModel to a domain Settlement entity.
func (m *SettlementModel) ToEntity() *entity.Settlement {
	return &entity.Settlement{
		ID:        m.ID,
		SplitID:   m.SplitID,
		SplitName: m.SplitName,
		Amount:    m.Amount,
		PayerID:   m.PayerID,
		PayeeID:   m.PayeeID,
		Method:    m.Method,
		Notes:     m.Notes,
		CreatedAt: m.CreatedAt,
	}
}

// SettlementFromEntity creates a SettlementModel from a domain Settlement entity.
func SettlementFromEntity(settlement *entity.Settlement) *SettlementModel {
	return &SettlementModel{
		ID:        settlement.ID,
		SplitID:   settlement.SplitID,
		SplitName: settlement.SplitName,
		Amount:    settlement.Amount,
		PayerID:   settlement.PayerID,
		PayeeID:   settlement.PayeeID,
		Method:    settlement.Method,
		Notes:     settlement.Notes,
		CreatedAt: settlement.CreatedAt,
	}
}
