// Package split contains bill-split-related use cases.
package split

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/splitledger/backend/internal/domain/entity"
	domainerror "github.com/splitledger/backend/internal/domain/error"
)

type fakeLocker struct {
	locks   int
	unlocks int
}

func (l *fakeLocker) Lock(_ context.Context, _ uuid.UUID) (string, error) {
	l.locks++
	return "token", nil
}

func (l *fakeLocker) Unlock(_ context.Context, _ uuid.UUID, _ string) error {
	l.unlocks++
	return nil
}

func TestReplaceSplitUseCase_Execute(t *testing.T) {
	creator := uuid.New()
	bob := uuid.New()

	setup := func() (*ReplaceSplitUseCase, *fakeSplitRepo, *fakeLocker, *fakeNotificationService, *entity.BillSplit, uuid.UUID) {
		splitRepo := newFakeSplitRepo()
		groupRepo := newFakeGroupRepo()
		locker := &fakeLocker{}
		notifier := &fakeNotificationService{}
		group := groupRepo.add(creator, bob)

		split := entity.NewBillSplit(
			"Dinner",
			decimal.NewFromInt(50),
			group.ID,
			nil,
			"",
			creator,
			buildParticipants(decimal.NewFromInt(50), entity.SplitMethodEqual, []ParticipantInput{
				{UserID: creator, PaidAmount: decimal.NewFromInt(50)}, {UserID: bob},
			}),
		)
		splitRepo.splits[split.ID] = split

		uc := NewReplaceSplitUseCase(splitRepo, groupRepo, locker, notifier)
		return uc, splitRepo, locker, notifier, split, group.ID
	}

	replaceInput := func(splitID uuid.UUID, groupID uuid.UUID, userID uuid.UUID) ReplaceSplitInput {
		return ReplaceSplitInput{
			SplitID: splitID,
			CreateSplitInput: CreateSplitInput{
				UserID:      userID,
				GroupID:     groupID,
				Name:        "Dinner (corrected)",
				TotalAmount: decimal.NewFromInt(80),
				Method:      entity.SplitMethodEqual,
				Participants: []ParticipantInput{
					{UserID: creator}, {UserID: bob},
				},
			},
		}
	}

	t.Run("replaces fields and bumps revision", func(t *testing.T) {
		uc, splitRepo, locker, notifier, split, groupID := setup()

		out, err := uc.Execute(context.Background(), replaceInput(split.ID, groupID, creator))
		if err != nil {
			t.Fatalf("Execute() error = %v", err)
		}

		if out.Split.Revision != 2 {
			t.Errorf("revision = %d, want 2", out.Split.Revision)
		}
		if !out.Split.TotalAmount.Equal(decimal.NewFromInt(80)) {
			t.Errorf("total = %v, want 80", out.Split.TotalAmount)
		}
		stored, _ := splitRepo.FindByID(context.Background(), split.ID)
		if stored.Name != "Dinner (corrected)" {
			t.Errorf("stored name = %q", stored.Name)
		}
		if locker.locks != 1 || locker.unlocks != 1 {
			t.Errorf("locks/unlocks = %d/%d, want 1/1", locker.locks, locker.unlocks)
		}
		if len(notifier.replaced) != 1 {
			t.Errorf("len(replace notifications) = %d, want 1", len(notifier.replaced))
		}
	})

	t.Run("rejects non-creator", func(t *testing.T) {
		uc, _, _, _, split, groupID := setup()

		_, err := uc.Execute(context.Background(), replaceInput(split.ID, groupID, bob))
		if !errors.Is(err, domainerror.ErrNotSplitCreator) {
			t.Errorf("Execute() error = %v, want ErrNotSplitCreator", err)
		}
	})

	t.Run("retries through a revision conflict", func(t *testing.T) {
		uc, splitRepo, locker, _, split, groupID := setup()
		splitRepo.replaceConflicts = 1

		out, err := uc.Execute(context.Background(), replaceInput(split.ID, groupID, creator))
		if err != nil {
			t.Fatalf("Execute() error = %v", err)
		}
		if locker.locks != 2 {
			t.Errorf("locks = %d, want 2 (one retry)", locker.locks)
		}
		if out.Split.Revision != 2 {
			t.Errorf("revision = %d, want 2", out.Split.Revision)
		}
	})

	t.Run("surfaces conflict after exhausting retries", func(t *testing.T) {
		uc, splitRepo, locker, _, split, groupID := setup()
		splitRepo.replaceConflicts = maxWriteAttempts

		_, err := uc.Execute(context.Background(), replaceInput(split.ID, groupID, creator))
		if !errors.Is(err, domainerror.ErrSplitConflict) {
			t.Errorf("Execute() error = %v, want ErrSplitConflict", err)
		}
		if locker.locks != maxWriteAttempts {
			t.Errorf("locks = %d, want %d", locker.locks, maxWriteAttempts)
		}
	})

	t.Run("rejects unknown split", func(t *testing.T) {
		uc, _, _, _, _, groupID := setup()

		_, err := uc.Execute(context.Background(), replaceInput(uuid.New(), groupID, creator))
		if !errors.Is(err, domainerror.ErrSplitNotFound) {
			t.Errorf("Execute() error = %v, want ErrSplitNotFound", err)
		}
	})

	t.Run("wraps transient split lookup failures", func(t *testing.T) {
		uc, splitRepo, _, _, split, groupID := setup()
		splitRepo.findErr = errors.New("connection reset")

		_, err := uc.Execute(context.Background(), replaceInput(split.ID, groupID, creator))
		if !errors.Is(err, splitRepo.findErr) {
			t.Errorf("Execute() error = %v, want wrapped lookup failure", err)
		}
		if errors.Is(err, domainerror.ErrSplitNotFound) {
			t.Error("transient failure reported as not-found")
		}
	})
}
