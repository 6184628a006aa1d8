// Package split contains bill-split-related use cases.
package split

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/splitledger/backend/internal/application/adapter"
	domainerror "github.com/splitledger/backend/internal/domain/error"
)

// DeleteSplitInput represents the input for split deletion.
type DeleteSplitInput struct {
	SplitID uuid.UUID
	UserID  uuid.UUID
}

// DeleteSplitOutput represents the output of split deletion.
type DeleteSplitOutput struct {
	Message string
}

// DeleteSplitUseCase handles split deletion logic.
type DeleteSplitUseCase struct {
	splitRepo adapter.SplitRepository
}

// NewDeleteSplitUseCase creates a new DeleteSplitUseCase instance.
func NewDeleteSplitUseCase(splitRepo adapter.SplitRepository) *DeleteSplitUseCase {
	return &DeleteSplitUseCase{
		splitRepo: splitRepo,
	}
}

// Execute performs the split deletion. Settlements recorded against the
// split keep their rows but are detached from it.
func (uc *DeleteSplitUseCase) Execute(ctx context.Context, input DeleteSplitInput) (*DeleteSplitOutput, error) {
	split, err := uc.splitRepo.FindByID(ctx, input.SplitID)
	if err != nil {
		if errors.Is(err, domainerror.ErrSplitNotFound) {
			return nil, domainerror.NewSplitError(
				domainerror.ErrCodeSplitNotFound,
				"split not found",
				domainerror.ErrSplitNotFound,
			)
		}
		return nil, fmt.Errorf("failed to load split: %w", err)
	}

	if split.CreatorID != input.UserID {
		return nil, domainerror.NewSplitError(
			domainerror.ErrCodeNotSplitCreator,
			"only the split creator can delete the split",
			domainerror.ErrNotSplitCreator,
		)
	}

	if err := uc.splitRepo.Delete(ctx, input.SplitID); err != nil {
		return nil, fmt.Errorf("failed to delete split: %w", err)
	}

	return &DeleteSplitOutput{
		Message: "Split deleted successfully",
	}, nil
}
