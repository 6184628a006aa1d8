package calculator

import (
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/splitledger/backend/internal/domain/entity"
)

func TestComputeShares(t *testing.T) {
	alice := uuid.New()
	bob := uuid.New()
	carol := uuid.New()

	tests := []struct {
		name         string
		total        decimal.Decimal
		method       entity.SplitMethod
		participants []ShareInput
		validateFunc func(t *testing.T, shares []Share)
	}{
		{
			name:   "equal split divides evenly",
			total:  decimal.NewFromInt(90),
			method: entity.SplitMethodEqual,
			participants: []ShareInput{
				{UserID: alice}, {UserID: bob}, {UserID: carol},
			},
			validateFunc: func(t *testing.T, shares []Share) {
				for _, s := range shares {
					if !s.ShareAmount.Equal(decimal.NewFromInt(30)) {
						t.Errorf("share = %v, want 30", s.ShareAmount)
					}
				}
			},
		},
		{
			name:   "equal split assigns rounding residual to first participant",
			total:  decimal.NewFromInt(100),
			method: entity.SplitMethodEqual,
			participants: []ShareInput{
				{UserID: alice}, {UserID: bob}, {UserID: carol},
			},
			validateFunc: func(t *testing.T, shares []Share) {
				if !shares[0].ShareAmount.Equal(decimal.NewFromFloat(33.34)) {
					t.Errorf("first share = %v, want 33.34", shares[0].ShareAmount)
				}
				if !shares[1].ShareAmount.Equal(decimal.NewFromFloat(33.33)) {
					t.Errorf("second share = %v, want 33.33", shares[1].ShareAmount)
				}
				if !shares[2].ShareAmount.Equal(decimal.NewFromFloat(33.33)) {
					t.Errorf("third share = %v, want 33.33", shares[2].ShareAmount)
				}
			},
		},
		{
			name:   "exact split behaves like equal",
			total:  decimal.NewFromInt(50),
			method: entity.SplitMethodExact,
			participants: []ShareInput{
				{UserID: alice}, {UserID: bob},
			},
			validateFunc: func(t *testing.T, shares []Share) {
				for _, s := range shares {
					if !s.ShareAmount.Equal(decimal.NewFromInt(25)) {
						t.Errorf("share = %v, want 25", s.ShareAmount)
					}
				}
			},
		},
		{
			name:   "percentage split allocates proportionally",
			total:  decimal.NewFromInt(100),
			method: entity.SplitMethodPercentage,
			participants: []ShareInput{
				{UserID: alice, SplitValue: decimal.NewFromInt(50)},
				{UserID: bob, SplitValue: decimal.NewFromInt(30)},
				{UserID: carol, SplitValue: decimal.NewFromInt(20)},
			},
			validateFunc: func(t *testing.T, shares []Share) {
				want := []int64{50, 30, 20}
				for i, s := range shares {
					if !s.ShareAmount.Equal(decimal.NewFromInt(want[i])) {
						t.Errorf("share[%d] = %v, want %d", i, s.ShareAmount, want[i])
					}
				}
			},
		},
		{
			name:   "percentage weights need not sum to 100",
			total:  decimal.NewFromInt(60),
			method: entity.SplitMethodPercentage,
			participants: []ShareInput{
				{UserID: alice, SplitValue: decimal.NewFromInt(2)},
				{UserID: bob, SplitValue: decimal.NewFromInt(1)},
			},
			validateFunc: func(t *testing.T, shares []Share) {
				if !shares[0].ShareAmount.Equal(decimal.NewFromInt(40)) {
					t.Errorf("first share = %v, want 40", shares[0].ShareAmount)
				}
				if !shares[1].ShareAmount.Equal(decimal.NewFromInt(20)) {
					t.Errorf("second share = %v, want 20", shares[1].ShareAmount)
				}
			},
		},
		{
			name:   "zero percentage sum yields all-zero shares",
			total:  decimal.NewFromInt(100),
			method: entity.SplitMethodPercentage,
			participants: []ShareInput{
				{UserID: alice, SplitValue: decimal.Zero},
				{UserID: bob, SplitValue: decimal.Zero},
			},
			validateFunc: func(t *testing.T, shares []Share) {
				for _, s := range shares {
					if !s.ShareAmount.IsZero() {
						t.Errorf("share = %v, want 0", s.ShareAmount)
					}
				}
			},
		},
		{
			name:   "non-positive total yields all-zero shares",
			total:  decimal.NewFromInt(-10),
			method: entity.SplitMethodEqual,
			participants: []ShareInput{
				{UserID: alice}, {UserID: bob},
			},
			validateFunc: func(t *testing.T, shares []Share) {
				for _, s := range shares {
					if !s.ShareAmount.IsZero() {
						t.Errorf("share = %v, want 0", s.ShareAmount)
					}
				}
			},
		},
		{
			name:         "empty participants yields empty result",
			total:        decimal.NewFromInt(100),
			method:       entity.SplitMethodEqual,
			participants: nil,
			validateFunc: func(t *testing.T, shares []Share) {
				if len(shares) != 0 {
					t.Errorf("len(shares) = %d, want 0", len(shares))
				}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			shares := ComputeShares(tt.total, tt.method, tt.participants)
			if len(shares) != len(tt.participants) {
				t.Fatalf("len(shares) = %d, want %d", len(shares), len(tt.participants))
			}
			tt.validateFunc(t, shares)
		})
	}
}

// Shares must always sum to the total exactly, whatever the rounding did.
func TestComputeSharesSumInvariant(t *testing.T) {
	totals := []decimal.Decimal{
		decimal.NewFromFloat(100.00),
		decimal.NewFromFloat(99.99),
		decimal.NewFromFloat(0.01),
		decimal.NewFromFloat(7.77),
		decimal.NewFromFloat(1234.56),
	}
	for _, total := range totals {
		for n := 1; n <= 7; n++ {
			participants := make([]ShareInput, n)
			for i := range participants {
				participants[i] = ShareInput{
					UserID:     uuid.New(),
					SplitValue: decimal.NewFromInt(int64(i + 1)),
				}
			}
			for _, method := range []entity.SplitMethod{
				entity.SplitMethodEqual,
				entity.SplitMethodExact,
				entity.SplitMethodPercentage,
			} {
				shares := ComputeShares(total, method, participants)
				sum := decimal.Zero
				for _, s := range shares {
					sum = sum.Add(s.ShareAmount)
				}
				if !sum.Equal(total) {
					t.Errorf("%s total=%v n=%d: sum(shares) = %v", method, total, n, sum)
				}
			}
		}
	}
}
