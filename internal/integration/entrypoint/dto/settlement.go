// Package dto defines data transfer objects for API requests and responses.
package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/splitledger/backend/internal/domain/calculator"
	"github.com/splitledger/backend/internal/domain/entity"
)

// RecordSettlementRequest represents the request body for recording a
// settlement. PayerID defaults to the authenticated user; a payee recording
// money they received sends the payer explicitly. Either way the
// authenticated user must be one of the two parties.
type RecordSettlementRequest struct {
	PayerID *string         `json:"payer_id,omitempty" binding:"omitempty,uuid"`
	PayeeID string          `json:"payee_id" binding:"required,uuid"`
	SplitID *string         `json:"split_id,omitempty" binding:"omitempty,uuid"`
	Amount  decimal.Decimal `json:"amount" binding:"required"`
	Method  string          `json:"method,omitempty" binding:"omitempty,max=30"`
	Notes   string          `json:"notes,omitempty" binding:"omitempty,max=1000"`
}

// SettlementResponse represents a settlement in API responses.
type SettlementResponse struct {
	ID        string    `json:"id"`
	SplitID   *string   `json:"split_id,omitempty"`
	SplitName string    `json:"split_name,omitempty"`
	Amount    string    `json:"amount"`
	PayerID   string    `json:"payer_id"`
	PayeeID   string    `json:"payee_id"`
	Method    string    `json:"method,omitempty"`
	Notes     string    `json:"notes,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// SettlementListResponse represents the response for listing settlements.
type SettlementListResponse struct {
	Settlements []SettlementResponse `json:"settlements"`
}

// CandidateResponse represents one settlement candidate in API responses.
type CandidateResponse struct {
	SplitID   string `json:"split_id"`
	SplitName string `json:"split_name"`
	PayerID   string `json:"payer_id"`
	PayeeID   string `json:"payee_id"`
	Amount    string `json:"amount"`
}

// CandidateListResponse represents the response for listing settlement candidates.
type CandidateListResponse struct {
	Direction  string              `json:"direction"`
	Candidates []CandidateResponse `json:"candidates"`
}

// ToSettlementResponse converts a Settlement entity to a SettlementResponse DTO.
func ToSettlementResponse(settlement *entity.Settlement) SettlementResponse {
	response := SettlementResponse{
		ID:        settlement.ID.String(),
		SplitName: settlement.SplitName,
		Amount:    settlement.Amount.StringFixed(2),
		PayerID:   settlement.PayerID.String(),
		PayeeID:   settlement.PayeeID.String(),
		Method:    settlement.Method,
		Notes:     settlement.Notes,
		CreatedAt: settlement.CreatedAt,
	}

	if settlement.SplitID != nil {
		splitID := settlement.SplitID.String()
		response.SplitID = &splitID
	}

	return response
}

// ToSettlementListResponse converts Settlement entities to a SettlementListResponse DTO.
func ToSettlementListResponse(settlements []*entity.Settlement) SettlementListResponse {
	items := make([]SettlementResponse, len(settlements))
	for i, s := range settlements {
		items[i] = ToSettlementResponse(s)
	}
	return SettlementListResponse{Settlements: items}
}

// ToCandidateListResponse converts settlement candidates to a CandidateListResponse DTO.
func ToCandidateListResponse(direction calculator.Direction, candidates []calculator.Candidate) CandidateListResponse {
	items := make([]CandidateResponse, len(candidates))
	for i, c := range candidates {
		items[i] = CandidateResponse{
			SplitID:   c.SplitID.String(),
			SplitName: c.SplitName,
			PayerID:   c.PayerID.String(),
			PayeeID:   c.PayeeID.String(),
			Amount:    c.Amount.StringFixed(2),
		}
	}
	return CandidateListResponse{
		Direction:  string(direction),
		Candidates: items,
	}
}
