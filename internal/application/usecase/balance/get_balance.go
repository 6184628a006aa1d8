// Package balance contains balance-related use cases.
package balance

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/splitledger/backend/internal/application/adapter"
	"github.com/splitledger/backend/internal/domain/calculator"
	"github.com/splitledger/backend/internal/domain/entity"
)

// GetBalanceInput represents the input for computing a user's balance.
type GetBalanceInput struct {
	UserID uuid.UUID
}

// GetBalanceOutput represents the output of computing a user's balance.
type GetBalanceOutput struct {
	Balance entity.UserBalance
}

// GetBalanceUseCase handles balance computation logic.
type GetBalanceUseCase struct {
	splitRepo      adapter.SplitRepository
	settlementRepo adapter.SettlementRepository
}

// NewGetBalanceUseCase creates a new GetBalanceUseCase instance.
func NewGetBalanceUseCase(
	splitRepo adapter.SplitRepository,
	settlementRepo adapter.SettlementRepository,
) *GetBalanceUseCase {
	return &GetBalanceUseCase{
		splitRepo:      splitRepo,
		settlementRepo: settlementRepo,
	}
}

// Execute recomputes the user's balance from live splits and settlements.
// Balances are never cached or persisted; splits whose group was deleted
// have already been filtered out by the repository queries.
func (uc *GetBalanceUseCase) Execute(ctx context.Context, input GetBalanceInput) (*GetBalanceOutput, error) {
	splits, err := uc.splitRepo.FindLiveByUser(ctx, input.UserID)
	if err != nil {
		return nil, fmt.Errorf("failed to load splits: %w", err)
	}
	settlements, err := uc.settlementRepo.FindLiveByUser(ctx, input.UserID)
	if err != nil {
		return nil, fmt.Errorf("failed to load settlements: %w", err)
	}

	balance := calculator.Aggregate(splits, settlements, input.UserID)

	return &GetBalanceOutput{Balance: balance}, nil
}
