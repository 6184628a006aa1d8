// Package split contains bill-split-related use cases.
package split

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/splitledger/backend/internal/application/adapter"
	"github.com/splitledger/backend/internal/domain/entity"
	domainerror "github.com/splitledger/backend/internal/domain/error"
)

// maxWriteAttempts bounds the retry loop when concurrent writers race on the
// same split's revision.
const maxWriteAttempts = 3

// ReplaceSplitInput represents the input for a full split replace.
type ReplaceSplitInput struct {
	SplitID uuid.UUID
	CreateSplitInput
}

// ReplaceSplitOutput represents the output of a split replace.
type ReplaceSplitOutput struct {
	Split *entity.BillSplit
}

// ReplaceSplitUseCase handles split replacement logic.
type ReplaceSplitUseCase struct {
	splitRepo           adapter.SplitRepository
	groupRepo           adapter.GroupRepository
	splitLocker         adapter.SplitLocker
	notificationService adapter.NotificationService
}

// NewReplaceSplitUseCase creates a new ReplaceSplitUseCase instance.
func NewReplaceSplitUseCase(
	splitRepo adapter.SplitRepository,
	groupRepo adapter.GroupRepository,
	splitLocker adapter.SplitLocker,
	notificationService adapter.NotificationService,
) *ReplaceSplitUseCase {
	return &ReplaceSplitUseCase{
		splitRepo:           splitRepo,
		groupRepo:           groupRepo,
		splitLocker:         splitLocker,
		notificationService: notificationService,
	}
}

// Execute performs the split replace: a creator-only full overwrite of the
// split's fields and participant set. The write is serialized per split via
// the distributed lock and guarded by the revision check in the repository;
// on revision conflicts it re-reads and retries a bounded number of times.
func (uc *ReplaceSplitUseCase) Execute(ctx context.Context, input ReplaceSplitInput) (*ReplaceSplitOutput, error) {
	if err := validateSplitInput(&input.CreateSplitInput); err != nil {
		return nil, err
	}

	var replaced *entity.BillSplit

	for attempt := 0; attempt < maxWriteAttempts; attempt++ {
		split, err := uc.replaceOnce(ctx, input)
		if err != nil {
			if errors.Is(err, domainerror.ErrSplitConflict) {
				continue
			}
			return nil, err
		}
		replaced = split
		break
	}
	if replaced == nil {
		return nil, domainerror.NewSplitError(
			domainerror.ErrCodeSplitConflict,
			"split was modified concurrently, try again",
			domainerror.ErrSplitConflict,
		)
	}

	group, err := uc.groupRepo.FindByID(ctx, replaced.GroupID)
	if err == nil {
		if err := uc.notificationService.NotifySplitReplaced(ctx, splitNotification(group, replaced)); err != nil {
			slog.Warn("Failed to queue split notifications", "split_id", replaced.ID, "error", err)
		}
	}

	return &ReplaceSplitOutput{Split: replaced}, nil
}

// replaceOnce runs one lock-read-validate-write cycle.
func (uc *ReplaceSplitUseCase) replaceOnce(ctx context.Context, input ReplaceSplitInput) (*entity.BillSplit, error) {
	token, err := uc.splitLocker.Lock(ctx, input.SplitID)
	if err != nil {
		return nil, fmt.Errorf("failed to lock split: %w", err)
	}
	defer func() {
		if err := uc.splitLocker.Unlock(ctx, input.SplitID, token); err != nil {
			slog.Warn("Failed to release split lock", "split_id", input.SplitID, "error", err)
		}
	}()

	existing, err := uc.splitRepo.FindByID(ctx, input.SplitID)
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

	if existing.CreatorID != input.UserID {
		return nil, domainerror.NewSplitError(
			domainerror.ErrCodeNotSplitCreator,
			"only the split creator can replace the split",
			domainerror.ErrNotSplitCreator,
		)
	}

	group, err := uc.groupRepo.FindByID(ctx, existing.GroupID)
	if err != nil {
		if errors.Is(err, domainerror.ErrGroupNotFound) {
			return nil, domainerror.NewGroupError(
				domainerror.ErrCodeGroupNotFound,
				"group not found",
				domainerror.ErrGroupNotFound,
			)
		}
		return nil, fmt.Errorf("failed to load group: %w", err)
	}
	if err := requireGroupMembers(group, input.UserID, input.Participants); err != nil {
		return nil, err
	}

	replacement := &entity.BillSplit{
		ID:           existing.ID,
		Name:         input.Name,
		TotalAmount:  input.TotalAmount,
		GroupID:      existing.GroupID,
		Category:     input.Category,
		Notes:        input.Notes,
		CreatorID:    existing.CreatorID,
		Revision:     existing.Revision + 1,
		Participants: buildParticipants(input.TotalAmount, input.Method, input.Participants),
		CreatedAt:    existing.CreatedAt,
		UpdatedAt:    existing.UpdatedAt,
	}

	if err := uc.splitRepo.Replace(ctx, replacement, existing.Revision); err != nil {
		return nil, err
	}

	return replacement, nil
}
