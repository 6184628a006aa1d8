package calculator

import (
	"log/slog"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/splitledger/backend/internal/domain/entity"
)

// Aggregate computes a user's balance from the current set of splits and
// settlements. It runs on every balance read, so it is total over its input:
// malformed participant rows count as zero and are logged as consistency
// warnings, never surfaced as errors.
//
// The creator of a split is modeled as its sole collection point: only the
// creator accrues TotalOwing from a split's unpaid participants. Settlements
// reduce the payer's TotalOwed and the payee's TotalOwing, and both totals
// are clamped at zero since overpayment is rejected before it is recorded.
func Aggregate(splits []*entity.BillSplit, settlements []*entity.Settlement, userID uuid.UUID) entity.UserBalance {
	totalOwed := decimal.Zero
	totalOwing := decimal.Zero

	for _, split := range splits {
		if split == nil {
			continue
		}
		for i := range split.Participants {
			p := &split.Participants[i]
			share := sanitizeAmount(p.ShareAmount, split.ID, p.UserID, "share_amount")
			paid := sanitizeAmount(p.PaidAmount, split.ID, p.UserID, "paid_amount")
			owed := share.Sub(paid)
			if !owed.IsPositive() {
				continue
			}
			if p.UserID == userID {
				totalOwed = totalOwed.Add(owed)
			} else if split.CreatorID == userID {
				totalOwing = totalOwing.Add(owed)
			}
		}
	}

	for _, s := range settlements {
		if s == nil || !s.Amount.IsPositive() {
			continue
		}
		if s.PayerID == userID {
			totalOwed = totalOwed.Sub(s.Amount)
		}
		if s.PayeeID == userID {
			totalOwing = totalOwing.Sub(s.Amount)
		}
	}

	if totalOwed.IsNegative() {
		totalOwed = decimal.Zero
	}
	if totalOwing.IsNegative() {
		totalOwing = decimal.Zero
	}

	return entity.UserBalance{
		TotalOwed:  totalOwed,
		TotalOwing: totalOwing,
		NetBalance: totalOwing.Sub(totalOwed),
	}
}

// sanitizeAmount defaults negative amounts to zero. Balance computation must
// always produce an answer, so bad rows are logged and neutralized.
func sanitizeAmount(v decimal.Decimal, splitID, userID uuid.UUID, field string) decimal.Decimal {
	if v.IsNegative() {
		slog.Warn("Malformed participant record, treating as zero",
			"split_id", splitID,
			"user_id", userID,
			"field", field,
			"value", v.String(),
		)
		return decimal.Zero
	}
	return v
}
