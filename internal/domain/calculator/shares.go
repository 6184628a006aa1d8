// Package calculator implements the pure ledger engine: share allocation,
// balance aggregation, and proportional settlement allocation. Nothing in
// this package performs I/O or holds state; every function is deterministic
// over its inputs so callers can retry idempotently.
package calculator

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/splitledger/backend/internal/domain/entity"
)

// ShareInput is one participant's raw allocation input.
type ShareInput struct {
	UserID uuid.UUID
	// SplitValue is the participant's weight for the percentage method;
	// it is ignored (treated as 1) for equal and exact.
	SplitValue decimal.Decimal
}

// Share is one participant's computed share of a split total.
type Share struct {
	UserID      uuid.UUID
	ShareAmount decimal.Decimal
}

// ComputeShares turns a total amount, a split method, and per-participant
// weights into per-participant share amounts rounded to 2 decimal places.
//
// equal and exact divide the total evenly; they differ only in UI intent.
// percentage allocates total * (value / sum(values)); when the values sum to
// zero or less every share is zero and the caller must reject the submission
// before persisting. A non-positive total or an empty participant list also
// yields all-zero shares.
//
// Because independent rounding can leave sum(shares) a few cents off the
// total, the full signed residual is assigned to the first participant in
// input order. This is a deliberate tie-break, not an error: it guarantees
// the shares sum to the total exactly after every computation.
func ComputeShares(total decimal.Decimal, method entity.SplitMethod, participants []ShareInput) []Share {
	shares := make([]Share, len(participants))
	for i, p := range participants {
		shares[i] = Share{UserID: p.UserID, ShareAmount: decimal.Zero}
	}

	if len(participants) == 0 || !total.IsPositive() {
		return shares
	}

	switch method {
	case entity.SplitMethodPercentage:
		valueSum := decimal.Zero
		for _, p := range participants {
			valueSum = valueSum.Add(p.SplitValue)
		}
		if !valueSum.IsPositive() {
			return shares
		}
		for i, p := range participants {
			shares[i].ShareAmount = p.SplitValue.Div(valueSum).Mul(total).Round(2)
		}
	default:
		// equal and exact: an even division.
		perHead := total.Div(decimal.NewFromInt(int64(len(participants)))).Round(2)
		for i := range shares {
			shares[i].ShareAmount = perHead
		}
	}

	// Rounding residual goes to the first participant.
	sum := decimal.Zero
	for i := range shares {
		sum = sum.Add(shares[i].ShareAmount)
	}
	if residual := total.Sub(sum); !residual.IsZero() {
		shares[0].ShareAmount = shares[0].ShareAmount.Add(residual)
	}

	return shares
}
