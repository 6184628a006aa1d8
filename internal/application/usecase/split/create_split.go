// Package split contains bill-split-related use cases.
package split

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/splitledger/backend/internal/application/adapter"
	"github.com/splitledger/backend/internal/domain/calculator"
	"github.com/splitledger/backend/internal/domain/entity"
	domainerror "github.com/splitledger/backend/internal/domain/error"
)

const (
	// MaxSplitNameLength is the maximum allowed length for split names.
	MaxSplitNameLength = 150
	// MaxNotesLength is the maximum allowed length for split notes.
	MaxNotesLength = 1000
)

// ParticipantInput represents one participant row as submitted by the client.
type ParticipantInput struct {
	UserID uuid.UUID
	// SplitValue is the raw weight for the percentage method.
	SplitValue decimal.Decimal
	// PaidAmount is what the participant fronted toward the bill.
	PaidAmount decimal.Decimal
	// ShareAmount is the client's advisory share, only checked against the
	// sum invariant for the exact method and never trusted.
	ShareAmount *decimal.Decimal
}

// CreateSplitInput represents the input for split creation.
type CreateSplitInput struct {
	UserID       uuid.UUID
	GroupID      uuid.UUID
	Name         string
	TotalAmount  decimal.Decimal
	Method       entity.SplitMethod
	Category     *entity.SplitCategory
	Notes        string
	Participants []ParticipantInput
}

// CreateSplitOutput represents the output of split creation.
type CreateSplitOutput struct {
	Split *entity.BillSplit
}

// CreateSplitUseCase handles split creation logic.
type CreateSplitUseCase struct {
	splitRepo           adapter.SplitRepository
	groupRepo           adapter.GroupRepository
	notificationService adapter.NotificationService
}

// NewCreateSplitUseCase creates a new CreateSplitUseCase instance.
func NewCreateSplitUseCase(
	splitRepo adapter.SplitRepository,
	groupRepo adapter.GroupRepository,
	notificationService adapter.NotificationService,
) *CreateSplitUseCase {
	return &CreateSplitUseCase{
		splitRepo:           splitRepo,
		groupRepo:           groupRepo,
		notificationService: notificationService,
	}
}

// Execute performs the split creation. Shares are always recomputed on the
// server; paid amounts are taken as submitted and default to zero, never
// inferred.
func (uc *CreateSplitUseCase) Execute(ctx context.Context, input CreateSplitInput) (*CreateSplitOutput, error) {
	if err := validateSplitInput(&input); err != nil {
		return nil, err
	}

	group, err := uc.groupRepo.FindByID(ctx, input.GroupID)
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

	participants := buildParticipants(input.TotalAmount, input.Method, input.Participants)

	split := entity.NewBillSplit(
		input.Name,
		input.TotalAmount,
		input.GroupID,
		input.Category,
		input.Notes,
		input.UserID,
		participants,
	)

	if err := uc.splitRepo.Create(ctx, split); err != nil {
		return nil, fmt.Errorf("failed to create split: %w", err)
	}

	if err := uc.notificationService.NotifySplitCreated(ctx, splitNotification(group, split)); err != nil {
		slog.Warn("Failed to queue split notifications", "split_id", split.ID, "error", err)
	}

	return &CreateSplitOutput{Split: split}, nil
}

// validateSplitInput checks the shape of a create/replace submission.
func validateSplitInput(input *CreateSplitInput) error {
	input.Name = strings.TrimSpace(input.Name)

	if input.Name == "" {
		return domainerror.NewSplitError(
			domainerror.ErrCodeSplitNameRequired,
			"split name is required",
			domainerror.ErrSplitNameRequired,
		)
	}
	if len(input.Name) > MaxSplitNameLength {
		return domainerror.NewSplitError(
			domainerror.ErrCodeSplitNameRequired,
			fmt.Sprintf("split name must not exceed %d characters", MaxSplitNameLength),
			domainerror.ErrSplitNameRequired,
		)
	}
	if len(input.Notes) > MaxNotesLength {
		return domainerror.NewSplitError(
			domainerror.ErrCodeMissingSplitFields,
			fmt.Sprintf("notes must not exceed %d characters", MaxNotesLength),
			domainerror.ErrSplitNameRequired,
		)
	}

	if !input.TotalAmount.IsPositive() {
		return domainerror.NewSplitError(
			domainerror.ErrCodeInvalidSplitAmount,
			"split amount must be positive",
			domainerror.ErrInvalidSplitAmount,
		)
	}

	if !entity.ValidSplitMethod(input.Method) {
		return domainerror.NewSplitError(
			domainerror.ErrCodeInvalidSplitMethod,
			"split method must be 'equal', 'exact' or 'percentage'",
			domainerror.ErrInvalidSplitMethod,
		)
	}

	if input.Category != nil && !entity.ValidSplitCategory(*input.Category) {
		return domainerror.NewSplitError(
			domainerror.ErrCodeInvalidSplitCategory,
			"unknown split category",
			domainerror.ErrInvalidSplitCategory,
		)
	}

	if len(input.Participants) == 0 {
		return domainerror.NewSplitError(
			domainerror.ErrCodeParticipantsRequired,
			"split must have at least one participant",
			domainerror.ErrParticipantsRequired,
		)
	}

	seen := make(map[uuid.UUID]bool, len(input.Participants))
	for _, p := range input.Participants {
		if seen[p.UserID] {
			return domainerror.NewSplitError(
				domainerror.ErrCodeMissingSplitFields,
				fmt.Sprintf("duplicate participant %s", p.UserID),
				domainerror.ErrParticipantsRequired,
			)
		}
		seen[p.UserID] = true
		if p.PaidAmount.IsNegative() {
			return domainerror.NewSplitError(
				domainerror.ErrCodeInvalidSplitAmount,
				"paid amount must not be negative",
				domainerror.ErrInvalidSplitAmount,
			)
		}
		if p.SplitValue.IsNegative() {
			return domainerror.NewSplitError(
				domainerror.ErrCodeInvalidSplitValues,
				"split value must not be negative",
				domainerror.ErrInvalidSplitValues,
			)
		}
	}

	if input.Method == entity.SplitMethodPercentage {
		sum := decimal.Zero
		for _, p := range input.Participants {
			sum = sum.Add(p.SplitValue)
		}
		if !sum.IsPositive() {
			return domainerror.NewSplitError(
				domainerror.ErrCodeInvalidSplitValues,
				"split values must sum to a positive total",
				domainerror.ErrInvalidSplitValues,
			)
		}
	}

	// For exact splits the client may send its own share amounts; they are
	// checked against the sum invariant and then recomputed server-side.
	if input.Method == entity.SplitMethodExact {
		sum := decimal.Zero
		provided := false
		for _, p := range input.Participants {
			if p.ShareAmount != nil {
				provided = true
				sum = sum.Add(*p.ShareAmount)
			}
		}
		if provided && sum.Sub(input.TotalAmount).Abs().GreaterThan(entity.ShareEpsilon) {
			return domainerror.NewSplitError(
				domainerror.ErrCodeSharesMismatch,
				"participant shares do not sum to the split total",
				domainerror.ErrSharesMismatch,
			)
		}
	}

	return nil
}

// requireGroupMembers verifies the creator and every participant belong to
// the group.
func requireGroupMembers(group *entity.GroupWithMembers, creatorID uuid.UUID, participants []ParticipantInput) error {
	members := make(map[uuid.UUID]bool, len(group.Members))
	for _, m := range group.Members {
		members[m.UserID] = true
	}

	if !members[creatorID] {
		return domainerror.NewGroupError(
			domainerror.ErrCodeNotGroupMember,
			"user is not a member of this group",
			domainerror.ErrNotGroupMember,
		)
	}
	for _, p := range participants {
		if !members[p.UserID] {
			return domainerror.NewGroupError(
				domainerror.ErrCodeNotGroupMember,
				fmt.Sprintf("participant %s is not a member of this group", p.UserID),
				domainerror.ErrNotGroupMember,
			)
		}
	}
	return nil
}

// buildParticipants computes server-side shares and assembles participant
// rows in input order. Paid amounts come straight from the submission; a
// participant who fronted nothing stays at zero.
func buildParticipants(
	total decimal.Decimal,
	method entity.SplitMethod,
	inputs []ParticipantInput,
) []entity.Participant {
	shareInputs := make([]calculator.ShareInput, len(inputs))
	for i, p := range inputs {
		shareInputs[i] = calculator.ShareInput{UserID: p.UserID, SplitValue: p.SplitValue}
	}
	shares := calculator.ComputeShares(total, method, shareInputs)

	participants := make([]entity.Participant, len(inputs))
	for i, p := range inputs {
		splitValue := p.SplitValue
		if method != entity.SplitMethodPercentage {
			splitValue = decimal.NewFromInt(1)
		}
		participants[i] = entity.Participant{
			UserID:      p.UserID,
			ShareAmount: shares[i].ShareAmount,
			PaidAmount:  p.PaidAmount,
			SplitMethod: method,
			SplitValue:  splitValue,
			Position:    i,
		}
	}
	return participants
}

// splitNotification assembles the notification input for a split's
// participants, excluding the creator.
func splitNotification(group *entity.GroupWithMembers, split *entity.BillSplit) adapter.NotifySplitInput {
	byID := make(map[uuid.UUID]*entity.GroupMember, len(group.Members))
	creatorName := ""
	for _, m := range group.Members {
		byID[m.UserID] = m
		if m.UserID == split.CreatorID {
			creatorName = m.UserName
		}
	}

	recipients := make([]adapter.NotificationRecipient, 0, len(split.Participants))
	for _, p := range split.Participants {
		if p.UserID == split.CreatorID {
			continue
		}
		m, ok := byID[p.UserID]
		if !ok {
			continue
		}
		recipients = append(recipients, adapter.NotificationRecipient{
			UserID: p.UserID,
			Email:  m.UserEmail,
			Name:   m.UserName,
			Share:  p.ShareAmount.StringFixed(2),
		})
	}

	return adapter.NotifySplitInput{
		SplitName:   split.Name,
		GroupName:   group.Group.Name,
		CreatorName: creatorName,
		TotalAmount: split.TotalAmount.StringFixed(2),
		Recipients:  recipients,
	}
}
