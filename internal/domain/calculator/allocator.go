package calculator

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/splitledger/backend/internal/domain/entity"
)

// Direction selects which side of the ledger AllocateSettlements works from.
type Direction string

const (
	// DirectionPay allocates the amounts a debtor should pay out, split by split.
	DirectionPay Direction = "pay"
	// DirectionCollect allocates the amounts a creditor should collect, split by split.
	DirectionCollect Direction = "collect"
)

// ValidDirection reports whether d is a known allocation direction.
func ValidDirection(d Direction) bool {
	return d == DirectionPay || d == DirectionCollect
}

// Candidate is a suggested settlement: who pays whom how much, against
// which split. Candidates are recomputed from live data on every request
// and are never stored.
type Candidate struct {
	SplitID   uuid.UUID
	SplitName string
	PayerID   uuid.UUID
	PayeeID   uuid.UUID
	Amount    decimal.Decimal
}

// AllocateSettlements proposes per-counterparty settlement amounts for a user
// across the given splits. The two directions are mirror images of the same
// proportional allocation:
//
//   - pay: the user is a debtor. Their outstanding debt on a split is spread
//     across the split's out-of-pocket counterparties in proportion to each
//     counterparty's remaining stake (paid minus share minus settlements the
//     user already sent them against that split).
//   - collect: the user is a creditor. Their remaining out-of-pocket stake on
//     a split (paid minus share minus settlements already received against
//     that split) is spread across the split's debtors in proportion to each
//     debtor's outstanding debt.
//
// In both directions an allocation is capped at the pool being distributed,
// rounded to 2 decimal places, and splits whose counterparty stakes sum to
// zero or less are skipped entirely.
func AllocateSettlements(splits []*entity.BillSplit, settlements []*entity.Settlement, userID uuid.UUID, direction Direction) []Candidate {
	candidates := make([]Candidate, 0)

	for _, split := range splits {
		if split == nil {
			continue
		}
		self := split.FindParticipant(userID)
		if self == nil {
			continue
		}

		var pool decimal.Decimal
		var stakes []stake

		switch direction {
		case DirectionPay:
			// paid_amount already reflects settlements the user sent,
			// so the debt needs no further adjustment.
			pool = self.AmountOwed()
			if !pool.IsPositive() {
				continue
			}
			for i := range split.Participants {
				other := &split.Participants[i]
				if other.UserID == userID {
					continue
				}
				s := other.PaidAmount.Sub(other.ShareAmount).
					Sub(settledBetween(settlements, split.ID, userID, other.UserID))
				if s.IsPositive() {
					stakes = append(stakes, stake{userID: other.UserID, amount: s})
				}
			}
		case DirectionCollect:
			// Settlements received do not touch the creditor's own
			// paid_amount, so they are subtracted here instead.
			pool = self.PaidAmount.Sub(self.ShareAmount).
				Sub(settledTo(settlements, split.ID, userID))
			if !pool.IsPositive() {
				continue
			}
			for i := range split.Participants {
				other := &split.Participants[i]
				if other.UserID == userID {
					continue
				}
				if s := other.AmountOwed(); s.IsPositive() {
					stakes = append(stakes, stake{userID: other.UserID, amount: s})
				}
			}
		default:
			continue
		}

		totalStake := decimal.Zero
		for _, s := range stakes {
			totalStake = totalStake.Add(s.amount)
		}
		if !totalStake.IsPositive() {
			continue
		}

		for _, s := range stakes {
			amount := decimal.Min(pool, pool.Mul(s.amount).Div(totalStake)).Round(2)
			if !amount.IsPositive() {
				continue
			}
			c := Candidate{
				SplitID:   split.ID,
				SplitName: split.Name,
				Amount:    amount,
			}
			if direction == DirectionPay {
				c.PayerID, c.PayeeID = userID, s.userID
			} else {
				c.PayerID, c.PayeeID = s.userID, userID
			}
			candidates = append(candidates, c)
		}
	}

	return candidates
}

type stake struct {
	userID uuid.UUID
	amount decimal.Decimal
}

// settledBetween sums settlements from payer to payee recorded against splitID.
func settledBetween(settlements []*entity.Settlement, splitID, payerID, payeeID uuid.UUID) decimal.Decimal {
	sum := decimal.Zero
	for _, s := range settlements {
		if s == nil || s.SplitID == nil || *s.SplitID != splitID {
			continue
		}
		if s.PayerID == payerID && s.PayeeID == payeeID {
			sum = sum.Add(s.Amount)
		}
	}
	return sum
}

// settledTo sums settlements received by payeeID against splitID.
func settledTo(settlements []*entity.Settlement, splitID, payeeID uuid.UUID) decimal.Decimal {
	sum := decimal.Zero
	for _, s := range settlements {
		if s == nil || s.SplitID == nil || *s.SplitID != splitID {
			continue
		}
		if s.PayeeID == payeeID {
			sum = sum.Add(s.Amount)
		}
	}
	return sum
}
