// Package split contains bill-split-related use cases.
package split

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/splitledger/backend/internal/application/adapter"
	"github.com/splitledger/backend/internal/domain/entity"
	domainerror "github.com/splitledger/backend/internal/domain/error"
)

type fakeSplitRepo struct {
	splits map[uuid.UUID]*entity.BillSplit
	// replaceConflicts makes the next N guarded writes fail with a
	// revision conflict, simulating competing writers.
	replaceConflicts int
	// findErr simulates a transient lookup failure.
	findErr error
}

func newFakeSplitRepo() *fakeSplitRepo {
	return &fakeSplitRepo{splits: make(map[uuid.UUID]*entity.BillSplit)}
}

func (r *fakeSplitRepo) Create(_ context.Context, split *entity.BillSplit) error {
	r.splits[split.ID] = split
	return nil
}

func (r *fakeSplitRepo) FindByID(_ context.Context, id uuid.UUID) (*entity.BillSplit, error) {
	if r.findErr != nil {
		return nil, r.findErr
	}
	s, ok := r.splits[id]
	if !ok {
		return nil, domainerror.ErrSplitNotFound
	}
	return s, nil
}

func (r *fakeSplitRepo) FindByGroup(_ context.Context, groupID uuid.UUID) ([]*entity.BillSplit, error) {
	var out []*entity.BillSplit
	for _, s := range r.splits {
		if s.GroupID == groupID {
			out = append(out, s)
		}
	}
	return out, nil
}

func (r *fakeSplitRepo) FindLiveByUser(_ context.Context, userID uuid.UUID) ([]*entity.BillSplit, error) {
	var out []*entity.BillSplit
	for _, s := range r.splits {
		if s.FindParticipant(userID) != nil || s.CreatorID == userID {
			out = append(out, s)
		}
	}
	return out, nil
}

func (r *fakeSplitRepo) Replace(_ context.Context, split *entity.BillSplit, expectedRevision int64) error {
	existing, ok := r.splits[split.ID]
	if !ok {
		return domainerror.ErrSplitNotFound
	}
	if r.replaceConflicts > 0 {
		r.replaceConflicts--
		return domainerror.ErrSplitConflict
	}
	if existing.Revision != expectedRevision {
		return domainerror.ErrSplitConflict
	}
	r.splits[split.ID] = split
	return nil
}

func (r *fakeSplitRepo) Delete(_ context.Context, id uuid.UUID) error {
	delete(r.splits, id)
	return nil
}

type fakeGroupRepo struct {
	groups map[uuid.UUID]*entity.GroupWithMembers
	// findErr simulates a transient lookup failure.
	findErr error
}

func newFakeGroupRepo() *fakeGroupRepo {
	return &fakeGroupRepo{groups: make(map[uuid.UUID]*entity.GroupWithMembers)}
}

func (r *fakeGroupRepo) add(creatorID uuid.UUID, memberIDs ...uuid.UUID) *entity.Group {
	group := entity.NewGroup("Trip to Serra", entity.GroupTypeTrip, creatorID)
	members := make([]*entity.GroupMember, 0, len(memberIDs)+1)
	members = append(members, entity.NewGroupMember(group.ID, creatorID, 0))
	for i, id := range memberIDs {
		members = append(members, entity.NewGroupMember(group.ID, id, i+1))
	}
	r.groups[group.ID] = &entity.GroupWithMembers{
		Group:       group,
		Members:     members,
		MemberCount: len(members),
	}
	return group
}

func (r *fakeGroupRepo) Create(_ context.Context, group *entity.Group, members []entity.GroupMember) error {
	ms := make([]*entity.GroupMember, len(members))
	for i := range members {
		ms[i] = &members[i]
	}
	r.groups[group.ID] = &entity.GroupWithMembers{Group: group, Members: ms, MemberCount: len(ms)}
	return nil
}

func (r *fakeGroupRepo) FindByID(_ context.Context, id uuid.UUID) (*entity.GroupWithMembers, error) {
	if r.findErr != nil {
		return nil, r.findErr
	}
	g, ok := r.groups[id]
	if !ok {
		return nil, domainerror.ErrGroupNotFound
	}
	return g, nil
}

func (r *fakeGroupRepo) FindByUser(_ context.Context, userID uuid.UUID) ([]*entity.GroupListItem, error) {
	var out []*entity.GroupListItem
	for _, g := range r.groups {
		for _, m := range g.Members {
			if m.UserID == userID {
				out = append(out, &entity.GroupListItem{
					ID:          g.Group.ID,
					Name:        g.Group.Name,
					Type:        g.Group.Type,
					MemberCount: g.MemberCount,
					CreatedAt:   g.Group.CreatedAt,
				})
				break
			}
		}
	}
	return out, nil
}

func (r *fakeGroupRepo) Update(_ context.Context, group *entity.Group, members []entity.GroupMember) error {
	return r.Create(context.Background(), group, members)
}

func (r *fakeGroupRepo) Delete(_ context.Context, id uuid.UUID) error {
	delete(r.groups, id)
	return nil
}

func (r *fakeGroupRepo) IsMember(_ context.Context, groupID, userID uuid.UUID) (bool, error) {
	g, ok := r.groups[groupID]
	if !ok {
		return false, nil
	}
	for _, m := range g.Members {
		if m.UserID == userID {
			return true, nil
		}
	}
	return false, nil
}

type fakeNotificationService struct {
	created  []adapter.NotifySplitInput
	replaced []adapter.NotifySplitInput
}

func (s *fakeNotificationService) NotifySplitCreated(_ context.Context, input adapter.NotifySplitInput) error {
	s.created = append(s.created, input)
	return nil
}

func (s *fakeNotificationService) NotifySplitReplaced(_ context.Context, input adapter.NotifySplitInput) error {
	s.replaced = append(s.replaced, input)
	return nil
}

func (s *fakeNotificationService) NotifySettlementRecorded(_ context.Context, _ adapter.NotifySettlementInput) error {
	return nil
}

func TestCreateSplitUseCase_Execute(t *testing.T) {
	creator := uuid.New()
	bob := uuid.New()
	carol := uuid.New()

	newUseCase := func() (*CreateSplitUseCase, *fakeSplitRepo, *fakeGroupRepo, *fakeNotificationService, uuid.UUID) {
		splitRepo := newFakeSplitRepo()
		groupRepo := newFakeGroupRepo()
		notifier := &fakeNotificationService{}
		group := groupRepo.add(creator, bob, carol)
		uc := NewCreateSplitUseCase(splitRepo, groupRepo, notifier)
		return uc, splitRepo, groupRepo, notifier, group.ID
	}

	t.Run("creates equal split with server-computed shares", func(t *testing.T) {
		uc, splitRepo, _, notifier, groupID := newUseCase()

		out, err := uc.Execute(context.Background(), CreateSplitInput{
			UserID:      creator,
			GroupID:     groupID,
			Name:        "Dinner",
			TotalAmount: decimal.NewFromInt(90),
			Method:      entity.SplitMethodEqual,
			Participants: []ParticipantInput{
				{UserID: creator, PaidAmount: decimal.NewFromInt(90)}, {UserID: bob}, {UserID: carol},
			},
		})
		if err != nil {
			t.Fatalf("Execute() error = %v", err)
		}

		split := out.Split
		if len(split.Participants) != 3 {
			t.Fatalf("len(participants) = %d, want 3", len(split.Participants))
		}
		for _, p := range split.Participants {
			if !p.ShareAmount.Equal(decimal.NewFromInt(30)) {
				t.Errorf("share = %v, want 30", p.ShareAmount)
			}
		}
		if !split.Participants[0].PaidAmount.Equal(decimal.NewFromInt(90)) {
			t.Errorf("creator paid = %v, want 90", split.Participants[0].PaidAmount)
		}
		if split.Revision != 1 {
			t.Errorf("revision = %d, want 1", split.Revision)
		}
		if _, err := splitRepo.FindByID(context.Background(), split.ID); err != nil {
			t.Errorf("split not persisted: %v", err)
		}
		if len(notifier.created) != 1 {
			t.Fatalf("len(notifications) = %d, want 1", len(notifier.created))
		}
		if got := len(notifier.created[0].Recipients); got != 2 {
			t.Errorf("len(recipients) = %d, want 2 (creator excluded)", got)
		}
	})

	t.Run("paid amounts default to zero when nobody fronted", func(t *testing.T) {
		uc, _, _, _, groupID := newUseCase()

		out, err := uc.Execute(context.Background(), CreateSplitInput{
			UserID:      creator,
			GroupID:     groupID,
			Name:        "Dinner",
			TotalAmount: decimal.NewFromInt(90),
			Method:      entity.SplitMethodEqual,
			Participants: []ParticipantInput{
				{UserID: creator}, {UserID: bob}, {UserID: carol},
			},
		})
		if err != nil {
			t.Fatalf("Execute() error = %v", err)
		}

		// Nothing is inferred: who fronted what is only ever what the
		// client submitted, creator included.
		for i, p := range out.Split.Participants {
			if !p.PaidAmount.IsZero() {
				t.Errorf("paid[%d] = %v, want 0", i, p.PaidAmount)
			}
		}
	})

	t.Run("percentage split uses weights and sums to total", func(t *testing.T) {
		uc, _, _, _, groupID := newUseCase()

		out, err := uc.Execute(context.Background(), CreateSplitInput{
			UserID:      creator,
			GroupID:     groupID,
			Name:        "Hotel",
			TotalAmount: decimal.NewFromInt(100),
			Method:      entity.SplitMethodPercentage,
			Participants: []ParticipantInput{
				{UserID: creator, SplitValue: decimal.NewFromInt(50)},
				{UserID: bob, SplitValue: decimal.NewFromInt(30)},
				{UserID: carol, SplitValue: decimal.NewFromInt(20)},
			},
		})
		if err != nil {
			t.Fatalf("Execute() error = %v", err)
		}

		want := []int64{50, 30, 20}
		for i, p := range out.Split.Participants {
			if !p.ShareAmount.Equal(decimal.NewFromInt(want[i])) {
				t.Errorf("share[%d] = %v, want %d", i, p.ShareAmount, want[i])
			}
		}
		if !out.Split.SharesSumToTotal() {
			t.Error("shares do not sum to total")
		}
	})

	t.Run("rejects non-positive amount", func(t *testing.T) {
		uc, _, _, _, groupID := newUseCase()

		_, err := uc.Execute(context.Background(), CreateSplitInput{
			UserID:       creator,
			GroupID:      groupID,
			Name:         "Dinner",
			TotalAmount:  decimal.Zero,
			Method:       entity.SplitMethodEqual,
			Participants: []ParticipantInput{{UserID: creator}},
		})
		if !errors.Is(err, domainerror.ErrInvalidSplitAmount) {
			t.Errorf("Execute() error = %v, want ErrInvalidSplitAmount", err)
		}
	})

	t.Run("rejects zero percentage weights", func(t *testing.T) {
		uc, _, _, _, groupID := newUseCase()

		_, err := uc.Execute(context.Background(), CreateSplitInput{
			UserID:      creator,
			GroupID:     groupID,
			Name:        "Hotel",
			TotalAmount: decimal.NewFromInt(100),
			Method:      entity.SplitMethodPercentage,
			Participants: []ParticipantInput{
				{UserID: creator, SplitValue: decimal.Zero},
				{UserID: bob, SplitValue: decimal.Zero},
			},
		})
		if !errors.Is(err, domainerror.ErrInvalidSplitValues) {
			t.Errorf("Execute() error = %v, want ErrInvalidSplitValues", err)
		}
	})

	t.Run("rejects exact shares that miss the total", func(t *testing.T) {
		uc, _, _, _, groupID := newUseCase()

		thirty := decimal.NewFromInt(30)
		_, err := uc.Execute(context.Background(), CreateSplitInput{
			UserID:      creator,
			GroupID:     groupID,
			Name:        "Dinner",
			TotalAmount: decimal.NewFromInt(100),
			Method:      entity.SplitMethodExact,
			Participants: []ParticipantInput{
				{UserID: creator, ShareAmount: &thirty},
				{UserID: bob, ShareAmount: &thirty},
			},
		})
		if !errors.Is(err, domainerror.ErrSharesMismatch) {
			t.Errorf("Execute() error = %v, want ErrSharesMismatch", err)
		}
	})

	t.Run("rejects participant outside the group", func(t *testing.T) {
		uc, _, _, _, groupID := newUseCase()

		_, err := uc.Execute(context.Background(), CreateSplitInput{
			UserID:      creator,
			GroupID:     groupID,
			Name:        "Dinner",
			TotalAmount: decimal.NewFromInt(50),
			Method:      entity.SplitMethodEqual,
			Participants: []ParticipantInput{
				{UserID: creator}, {UserID: uuid.New()},
			},
		})
		if !errors.Is(err, domainerror.ErrNotGroupMember) {
			t.Errorf("Execute() error = %v, want ErrNotGroupMember", err)
		}
	})

	t.Run("rejects unknown group", func(t *testing.T) {
		uc, _, _, _, _ := newUseCase()

		_, err := uc.Execute(context.Background(), CreateSplitInput{
			UserID:       creator,
			GroupID:      uuid.New(),
			Name:         "Dinner",
			TotalAmount:  decimal.NewFromInt(50),
			Method:       entity.SplitMethodEqual,
			Participants: []ParticipantInput{{UserID: creator}},
		})
		if !errors.Is(err, domainerror.ErrGroupNotFound) {
			t.Errorf("Execute() error = %v, want ErrGroupNotFound", err)
		}
	})

	t.Run("wraps transient group lookup failures", func(t *testing.T) {
		uc, _, groupRepo, _, groupID := newUseCase()
		groupRepo.findErr = errors.New("connection reset")

		_, err := uc.Execute(context.Background(), CreateSplitInput{
			UserID:       creator,
			GroupID:      groupID,
			Name:         "Dinner",
			TotalAmount:  decimal.NewFromInt(50),
			Method:       entity.SplitMethodEqual,
			Participants: []ParticipantInput{{UserID: creator}},
		})
		if !errors.Is(err, groupRepo.findErr) {
			t.Errorf("Execute() error = %v, want wrapped lookup failure", err)
		}
		if errors.Is(err, domainerror.ErrGroupNotFound) {
			t.Error("transient failure reported as not-found")
		}
	})
}
