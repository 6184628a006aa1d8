// Package dto defines data transfer objects for API requests and responses.
package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/splitledger/backend/internal/domain/entity"
)

// SplitParticipantRequest represents one participant row in a split
// submission. Amounts bind as decimals straight off the wire so no value
// ever passes through a binary float.
type SplitParticipantRequest struct {
	UserID string `json:"user_id" binding:"required,uuid"`
	// SplitValue is the weight for the percentage method; ignored otherwise.
	SplitValue decimal.Decimal `json:"split_value,omitempty"`
	// PaidAmount is what the participant fronted toward the bill.
	PaidAmount decimal.Decimal `json:"paid_amount,omitempty"`
	// ShareAmount is advisory; the server recomputes shares and only checks
	// that the submitted ones sum to the total.
	ShareAmount *decimal.Decimal `json:"share_amount,omitempty"`
}

// CreateSplitRequest represents the request body for split creation. The same
// body replaces a split in full via PUT.
type CreateSplitRequest struct {
	GroupID      string                    `json:"group_id" binding:"required,uuid"`
	Name         string                    `json:"name" binding:"required,min=1,max=150"`
	TotalAmount  decimal.Decimal           `json:"total_amount" binding:"required"`
	Method       string                    `json:"method" binding:"required,oneof=equal exact percentage"`
	Category     *string                   `json:"category,omitempty" binding:"omitempty,oneof=food travel rent utilities entertainment other"`
	Notes        string                    `json:"notes,omitempty" binding:"omitempty,max=1000"`
	Participants []SplitParticipantRequest `json:"participants" binding:"required,min=1,dive"`
}

// ParticipantResponse represents a participant's stake in API responses.
type ParticipantResponse struct {
	UserID      string `json:"user_id"`
	ShareAmount string `json:"share_amount"`
	PaidAmount  string `json:"paid_amount"`
	AmountOwed  string `json:"amount_owed"`
	SplitValue  string `json:"split_value"`
	Position    int    `json:"position"`
}

// SplitResponse represents a bill split in API responses.
type SplitResponse struct {
	ID           string                `json:"id"`
	Name         string                `json:"name"`
	TotalAmount  string                `json:"total_amount"`
	GroupID      string                `json:"group_id"`
	Method       string                `json:"method"`
	Category     *string               `json:"category,omitempty"`
	Notes        string                `json:"notes,omitempty"`
	CreatorID    string                `json:"creator_id"`
	Revision     int64                 `json:"revision"`
	Participants []ParticipantResponse `json:"participants"`
	CreatedAt    time.Time             `json:"created_at"`
	UpdatedAt    time.Time             `json:"updated_at"`
}

// SplitListResponse represents the response for listing a group's splits.
type SplitListResponse struct {
	Splits []SplitResponse `json:"splits"`
}

// ToSplitResponse converts a BillSplit entity to a SplitResponse DTO.
func ToSplitResponse(split *entity.BillSplit) SplitResponse {
	participants := make([]ParticipantResponse, len(split.Participants))
	method := ""
	for i := range split.Participants {
		p := &split.Participants[i]
		method = string(p.SplitMethod)
		participants[i] = ParticipantResponse{
			UserID:      p.UserID.String(),
			ShareAmount: p.ShareAmount.StringFixed(2),
			PaidAmount:  p.PaidAmount.StringFixed(2),
			AmountOwed:  p.AmountOwed().StringFixed(2),
			SplitValue:  p.SplitValue.String(),
			Position:    p.Position,
		}
	}

	var category *string
	if split.Category != nil {
		c := string(*split.Category)
		category = &c
	}

	return SplitResponse{
		ID:           split.ID.String(),
		Name:         split.Name,
		TotalAmount:  split.TotalAmount.StringFixed(2),
		GroupID:      split.GroupID.String(),
		Method:       method,
		Category:     category,
		Notes:        split.Notes,
		CreatorID:    split.CreatorID.String(),
		Revision:     split.Revision,
		Participants: participants,
		CreatedAt:    split.CreatedAt,
		UpdatedAt:    split.UpdatedAt,
	}
}

// ToSplitListResponse converts BillSplit entities to a SplitListResponse DTO.
func ToSplitListResponse(splits []*entity.BillSplit) SplitListResponse {
	items := make([]SplitResponse, len(splits))
	for i, s := range splits {
		items[i] = ToSplitResponse(s)
	}
	return SplitListResponse{Splits: items}
}
