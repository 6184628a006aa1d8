// Package entity defines the core business entities for the domain layer.
package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// SplitMethod describes how a split's total is allocated across participants.
type SplitMethod string

const (
	// SplitMethodEqual divides the total evenly across all participants.
	SplitMethodEqual SplitMethod = "equal"
	// SplitMethodExact divides evenly like equal; it differs only in UI
	// intent (the client may override individual shares afterwards).
	SplitMethodExact SplitMethod = "exact"
	// SplitMethodPercentage allocates proportionally to each participant's
	// split value.
	SplitMethodPercentage SplitMethod = "percentage"
)

// ValidSplitMethod reports whether m is one of the known split methods.
func ValidSplitMethod(m SplitMethod) bool {
	switch m {
	case SplitMethodEqual, SplitMethodExact, SplitMethodPercentage:
		return true
	}
	return false
}

// SplitCategory is an optional label describing what a split was for.
type SplitCategory string

const (
	SplitCategoryFood          SplitCategory = "food"
	SplitCategoryTravel        SplitCategory = "travel"
	SplitCategoryRent          SplitCategory = "rent"
	SplitCategoryUtilities     SplitCategory = "utilities"
	SplitCategoryEntertainment SplitCategory = "entertainment"
	SplitCategoryOther         SplitCategory = "other"
)

// ValidSplitCategory reports whether c is one of the known categories.
func ValidSplitCategory(c SplitCategory) bool {
	switch c {
	case SplitCategoryFood, SplitCategoryTravel, SplitCategoryRent,
		SplitCategoryUtilities, SplitCategoryEntertainment, SplitCategoryOther:
		return true
	}
	return false
}

// ShareEpsilon is the tolerance used when checking that participant shares
// sum to the split total. Amounts are 2-decimal fixed point, so one cent.
var ShareEpsilon = decimal.NewFromFloat(0.01)

// BillSplit represents a shared expense allocated across participants.
//
// Invariant: the participants' share amounts sum to TotalAmount within
// ShareEpsilon after every create or replace. Settlements only ever increase
// a participant's PaidAmount; ShareAmount is untouched outside of a full
// replace by the creator.
type BillSplit struct {
	ID          uuid.UUID
	Name        string
	TotalAmount decimal.Decimal
	GroupID     uuid.UUID
	Category    *SplitCategory
	Notes       string
	CreatorID   uuid.UUID
	// Revision is the optimistic-lock counter bumped on every mutation.
	Revision     int64
	Participants []Participant
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// NewBillSplit creates a new BillSplit entity.
func NewBillSplit(
	name string,
	totalAmount decimal.Decimal,
	groupID uuid.UUID,
	category *SplitCategory,
	notes string,
	creatorID uuid.UUID,
	participants []Participant,
) *BillSplit {
	now := time.Now().UTC()

	return &BillSplit{
		ID:           uuid.New(),
		Name:         name,
		TotalAmount:  totalAmount,
		GroupID:      groupID,
		Category:     category,
		Notes:        notes,
		CreatorID:    creatorID,
		Revision:     1,
		Participants: participants,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
}

// Participant is a user's stake in a split. Position preserves input order,
// which matters: the allocation calculator assigns rounding residuals to the
// first participant.
type Participant struct {
	UserID uuid.UUID
	// ShareAmount is what this participant owes toward the split.
	ShareAmount decimal.Decimal
	// PaidAmount is what this participant has contributed, initialized to
	// the amount fronted at creation and increased only by settlements.
	PaidAmount  decimal.Decimal
	SplitMethod SplitMethod
	// SplitValue is the raw input used by the percentage method; 1 for
	// equal and exact.
	SplitValue decimal.Decimal
	Position   int
}

// AmountOwed returns how much this participant still owes into the split.
// Positive means they owe; negative means they fronted more than their share
// and are owed back.
func (p *Participant) AmountOwed() decimal.Decimal {
	return p.ShareAmount.Sub(p.PaidAmount)
}

// FindParticipant returns the participant row for userID, or nil.
func (s *BillSplit) FindParticipant(userID uuid.UUID) *Participant {
	for i := range s.Participants {
		if s.Participants[i].UserID == userID {
			return &s.Participants[i]
		}
	}
	return nil
}

// SharesSumToTotal reports whether the participants' shares sum to the
// split's total within ShareEpsilon.
func (s *BillSplit) SharesSumToTotal() bool {
	sum := decimal.Zero
	for i := range s.Participants {
		sum = sum.Add(s.Participants[i].ShareAmount)
	}
	return sum.Sub(s.TotalAmount).Abs().LessThanOrEqual(ShareEpsilon)
}
