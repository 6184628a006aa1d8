// Package settlement contains settlement-related use cases.
package settlement

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/splitledger/backend/internal/application/adapter"
	"github.com/splitledger/backend/internal/domain/calculator"
	"github.com/splitledger/backend/internal/domain/entity"
	domainerror "github.com/splitledger/backend/internal/domain/error"
)

// maxWriteAttempts bounds the retry loop when concurrent writers race on the
// same split's revision.
const maxWriteAttempts = 3

// RecordSettlementInput represents the input for recording a settlement.
// ActorID is the authenticated user doing the recording; it must match the
// payer or the payee, so a creditor can log a payment they received.
type RecordSettlementInput struct {
	ActorID uuid.UUID
	PayerID uuid.UUID
	PayeeID uuid.UUID
	SplitID *uuid.UUID
	Amount  decimal.Decimal
	Method  string
	Notes   string
}

// RecordSettlementOutput represents the output of recording a settlement.
type RecordSettlementOutput struct {
	Settlement *entity.Settlement
}

// RecordSettlementUseCase handles settlement recording logic.
type RecordSettlementUseCase struct {
	settlementRepo      adapter.SettlementRepository
	splitRepo           adapter.SplitRepository
	userRepo            adapter.UserRepository
	splitLocker         adapter.SplitLocker
	notificationService adapter.NotificationService
}

// NewRecordSettlementUseCase creates a new RecordSettlementUseCase instance.
func NewRecordSettlementUseCase(
	settlementRepo adapter.SettlementRepository,
	splitRepo adapter.SplitRepository,
	userRepo adapter.UserRepository,
	splitLocker adapter.SplitLocker,
	notificationService adapter.NotificationService,
) *RecordSettlementUseCase {
	return &RecordSettlementUseCase{
		settlementRepo:      settlementRepo,
		splitRepo:           splitRepo,
		userRepo:            userRepo,
		splitLocker:         splitLocker,
		notificationService: notificationService,
	}
}

// Execute records a settlement. When the settlement targets a split, the
// amount is validated against the candidate computed from live data under
// the split's lock; an amount above the candidate is rejected rather than
// clamped, so a client working from a stale view finds out instead of
// silently paying something else. The insert, the payer's paid_amount
// increment and the revision bump commit in one transaction.
func (uc *RecordSettlementUseCase) Execute(ctx context.Context, input RecordSettlementInput) (*RecordSettlementOutput, error) {
	if !input.Amount.IsPositive() {
		return nil, domainerror.NewSettlementError(
			domainerror.ErrCodeInvalidSettlementAmount,
			"settlement amount must be positive",
			domainerror.ErrInvalidSettlementAmount,
		)
	}
	if input.PayerID == input.PayeeID {
		return nil, domainerror.NewSettlementError(
			domainerror.ErrCodeSettlementSelfPayment,
			"payer and payee must be different users",
			domainerror.ErrSettlementSelfPayment,
		)
	}
	if input.ActorID != input.PayerID && input.ActorID != input.PayeeID {
		return nil, domainerror.NewSettlementError(
			domainerror.ErrCodeSettlementNotParty,
			"settlements can only be recorded by their payer or payee",
			domainerror.ErrSettlementNotParty,
		)
	}

	var settlement *entity.Settlement
	var err error
	if input.SplitID == nil {
		settlement, err = uc.recordDirect(ctx, input)
	} else {
		settlement, err = uc.recordAgainstSplit(ctx, input)
	}
	if err != nil {
		return nil, err
	}

	uc.notifyPayee(ctx, settlement)

	return &RecordSettlementOutput{Settlement: settlement}, nil
}

// recordDirect inserts a settlement not tied to any split. There is no
// candidate to validate against, so only the basic checks apply.
func (uc *RecordSettlementUseCase) recordDirect(ctx context.Context, input RecordSettlementInput) (*entity.Settlement, error) {
	settlement := entity.NewSettlement(nil, "", input.Amount, input.PayerID, input.PayeeID, input.Method, input.Notes)
	if err := uc.settlementRepo.Create(ctx, settlement); err != nil {
		return nil, fmt.Errorf("failed to record settlement: %w", err)
	}
	return settlement, nil
}

// recordAgainstSplit runs the lock-read-validate-write cycle with bounded
// retries on revision conflicts.
func (uc *RecordSettlementUseCase) recordAgainstSplit(ctx context.Context, input RecordSettlementInput) (*entity.Settlement, error) {
	for attempt := 0; attempt < maxWriteAttempts; attempt++ {
		settlement, err := uc.recordOnce(ctx, input)
		if err != nil {
			if errors.Is(err, domainerror.ErrSplitConflict) {
				continue
			}
			return nil, err
		}
		return settlement, nil
	}
	return nil, domainerror.NewSplitError(
		domainerror.ErrCodeSplitConflict,
		"split was modified concurrently, try again",
		domainerror.ErrSplitConflict,
	)
}

func (uc *RecordSettlementUseCase) recordOnce(ctx context.Context, input RecordSettlementInput) (*entity.Settlement, error) {
	splitID := *input.SplitID

	token, err := uc.splitLocker.Lock(ctx, splitID)
	if err != nil {
		return nil, fmt.Errorf("failed to lock split: %w", err)
	}
	defer func() {
		if err := uc.splitLocker.Unlock(ctx, splitID, token); err != nil {
			slog.Warn("Failed to release split lock", "split_id", splitID, "error", err)
		}
	}()

	split, err := uc.splitRepo.FindByID(ctx, splitID)
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

	if split.FindParticipant(input.PayerID) == nil || split.FindParticipant(input.PayeeID) == nil {
		return nil, domainerror.NewSettlementError(
			domainerror.ErrCodeSettlementNotParticipants,
			"payer and payee must be participants of the split",
			domainerror.ErrSettlementNotParticipants,
		)
	}

	candidate, err := uc.liveCandidate(ctx, split, input.PayerID, input.PayeeID)
	if err != nil {
		return nil, err
	}
	if input.Amount.GreaterThan(candidate) {
		return nil, domainerror.NewSettlementError(
			domainerror.ErrCodeSettlementExceedsOwed,
			fmt.Sprintf("settlement amount exceeds outstanding debt of %s", candidate.StringFixed(2)),
			domainerror.ErrSettlementExceedsOwed,
		)
	}

	settlement := entity.NewSettlement(&split.ID, split.Name, input.Amount, input.PayerID, input.PayeeID, input.Method, input.Notes)

	if err := uc.settlementRepo.RecordAgainstSplit(ctx, settlement, split.Revision); err != nil {
		return nil, err
	}

	return settlement, nil
}

// liveCandidate recomputes the payer's candidate toward the payee for this
// split from current data.
func (uc *RecordSettlementUseCase) liveCandidate(ctx context.Context, split *entity.BillSplit, payerID, payeeID uuid.UUID) (decimal.Decimal, error) {
	settlements, err := uc.settlementRepo.FindBySplit(ctx, split.ID)
	if err != nil {
		return decimal.Zero, fmt.Errorf("failed to load split settlements: %w", err)
	}

	candidates := calculator.AllocateSettlements(
		[]*entity.BillSplit{split}, settlements, payerID, calculator.DirectionPay,
	)
	for _, c := range candidates {
		if c.PayeeID == payeeID {
			return c.Amount, nil
		}
	}
	return decimal.Zero, nil
}

// notifyPayee queues a settlement notification, best effort.
func (uc *RecordSettlementUseCase) notifyPayee(ctx context.Context, settlement *entity.Settlement) {
	payee, err := uc.userRepo.FindByID(ctx, settlement.PayeeID)
	if err != nil {
		slog.Warn("Failed to load payee for notification", "settlement_id", settlement.ID, "error", err)
		return
	}
	payerName := ""
	if payer, err := uc.userRepo.FindByID(ctx, settlement.PayerID); err == nil {
		payerName = payer.Name
	}

	err = uc.notificationService.NotifySettlementRecorded(ctx, adapter.NotifySettlementInput{
		SplitName: settlement.SplitName,
		PayerName: payerName,
		Amount:    settlement.Amount.StringFixed(2),
		Recipient: adapter.NotificationRecipient{
			UserID: payee.ID,
			Email:  payee.Email,
			Name:   payee.Name,
		},
	})
	if err != nil {
		slog.Warn("Failed to queue settlement notification", "settlement_id", settlement.ID, "error", err)
	}
}
