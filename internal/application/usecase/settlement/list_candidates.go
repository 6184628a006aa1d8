// Package settlement contains settlement-related use cases.
package settlement

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/splitledger/backend/internal/application/adapter"
	"github.com/splitledger/backend/internal/domain/calculator"
	domainerror "github.com/splitledger/backend/internal/domain/error"
)

// ListCandidatesInput represents the input for listing settlement candidates.
type ListCandidatesInput struct {
	UserID    uuid.UUID
	Direction calculator.Direction
}

// ListCandidatesOutput represents the output of listing settlement candidates.
type ListCandidatesOutput struct {
	Candidates []calculator.Candidate
}

// ListCandidatesUseCase handles settlement candidate listing logic.
type ListCandidatesUseCase struct {
	splitRepo      adapter.SplitRepository
	settlementRepo adapter.SettlementRepository
}

// NewListCandidatesUseCase creates a new ListCandidatesUseCase instance.
func NewListCandidatesUseCase(
	splitRepo adapter.SplitRepository,
	settlementRepo adapter.SettlementRepository,
) *ListCandidatesUseCase {
	return &ListCandidatesUseCase{
		splitRepo:      splitRepo,
		settlementRepo: settlementRepo,
	}
}

// Execute computes the user's settlement candidates from live data. Nothing
// is persisted; the client records the ones it acts on one by one.
func (uc *ListCandidatesUseCase) Execute(ctx context.Context, input ListCandidatesInput) (*ListCandidatesOutput, error) {
	if !calculator.ValidDirection(input.Direction) {
		return nil, domainerror.NewSettlementError(
			domainerror.ErrCodeMissingSettlementFields,
			"direction must be 'pay' or 'collect'",
			domainerror.ErrSettlementNotParticipants,
		)
	}

	splits, err := uc.splitRepo.FindLiveByUser(ctx, input.UserID)
	if err != nil {
		return nil, fmt.Errorf("failed to load splits: %w", err)
	}
	settlements, err := uc.settlementRepo.FindLiveByUser(ctx, input.UserID)
	if err != nil {
		return nil, fmt.Errorf("failed to load settlements: %w", err)
	}

	candidates := calculator.AllocateSettlements(splits, settlements, input.UserID, input.Direction)

	return &ListCandidatesOutput{Candidates: candidates}, nil
}
