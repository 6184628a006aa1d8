// Package entity defines the core business entities for the domain layer.
package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Settlement records a transfer of Amount from payer to payee, attributed to
// a specific split or free-standing when SplitID is nil. Settlements are
// append-only: once recorded they are never edited or deleted, and they are
// the only way a participant's PaidAmount increases after creation.
type Settlement struct {
	ID      uuid.UUID
	SplitID *uuid.UUID
	// SplitName is denormalized for display so settlements of deleted
	// splits still render.
	SplitName string
	Amount    decimal.Decimal
	PayerID   uuid.UUID
	PayeeID   uuid.UUID
	Method    string
	Notes     string
	CreatedAt time.Time
}

// NewSettlement creates a new Settlement entity.
func NewSettlement(
	splitID *uuid.UUID,
	splitName string,
	amount decimal.Decimal,
	payerID, payeeID uuid.UUID,
	method, notes string,
) *Settlement {
	return &Settlement{
		ID:        uuid.New(),
		SplitID:   splitID,
		SplitName: splitName,
		Amount:    amount,
		PayerID:   payerID,
		PayeeID:   payeeID,
		Method:    method,
		Notes:     notes,
		CreatedAt: time.Now().UTC(),
	}
}
