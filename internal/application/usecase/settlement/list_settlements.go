// Package settlement contains settlement-related use cases.
package settlement

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/splitledger/backend/internal/application/adapter"
	"github.com/splitledger/backend/internal/domain/entity"
)

// ListSettlementsInput represents the input for listing a user's settlements.
type ListSettlementsInput struct {
	UserID uuid.UUID
}

// ListSettlementsOutput represents the output of listing a user's settlements.
type ListSettlementsOutput struct {
	Settlements []*entity.Settlement
}

// ListSettlementsUseCase handles settlement listing logic.
type ListSettlementsUseCase struct {
	settlementRepo adapter.SettlementRepository
}

// NewListSettlementsUseCase creates a new ListSettlementsUseCase instance.
func NewListSettlementsUseCase(settlementRepo adapter.SettlementRepository) *ListSettlementsUseCase {
	return &ListSettlementsUseCase{
		settlementRepo: settlementRepo,
	}
}

// Execute lists every settlement where the user is payer or payee, most
// recent first, including settlements of deleted splits.
func (uc *ListSettlementsUseCase) Execute(ctx context.Context, input ListSettlementsInput) (*ListSettlementsOutput, error) {
	settlements, err := uc.settlementRepo.FindByUser(ctx, input.UserID)
	if err != nil {
		return nil, fmt.Errorf("failed to list settlements: %w", err)
	}

	return &ListSettlementsOutput{Settlements: settlements}, nil
}
