// Package persistence implements repository interfaces for database operations.
package persistence

import (
	"context"
	"database/sql"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/splitledger/backend/internal/domain/calculator"
	"github.com/splitledger/backend/internal/domain/entity"
	"github.com/splitledger/backend/internal/integration/persistence/model"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dbSQL, err := sql.Open("sqlite", "file::memory:")
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	// A single connection keeps the in-memory database alive for the test.
	dbSQL.SetMaxOpenConns(1)

	db, err := gorm.Open(sqlite.Dialector{Conn: dbSQL}, &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open gorm: %v", err)
	}
	if err := db.AutoMigrate(
		&model.GroupModel{}, &model.SplitModel{}, &model.ParticipantModel{}, &model.SettlementModel{},
	); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

// seedSplit persists a group and a 100 split where debtor owes creditor 50.
func seedSplit(t *testing.T, db *gorm.DB, creditor, debtor uuid.UUID) *entity.BillSplit {
	t.Helper()

	group := entity.NewGroup("Trip", entity.GroupTypeTrip, creditor)
	if err := db.Create(model.GroupFromEntity(group)).Error; err != nil {
		t.Fatalf("seed group: %v", err)
	}

	split := entity.NewBillSplit("Dinner", decimal.NewFromInt(100), group.ID, nil, "", creditor, []entity.Participant{
		{UserID: creditor, ShareAmount: decimal.NewFromInt(50), PaidAmount: decimal.NewFromInt(100), SplitMethod: entity.SplitMethodEqual, SplitValue: decimal.NewFromInt(1), Position: 0},
		{UserID: debtor, ShareAmount: decimal.NewFromInt(50), SplitMethod: entity.SplitMethodEqual, SplitValue: decimal.NewFromInt(1), Position: 1},
	})
	if err := NewSplitRepository(db).Create(context.Background(), split); err != nil {
		t.Fatalf("seed split: %v", err)
	}
	return split
}

func TestSettlementRepository_FindLiveByUser(t *testing.T) {
	alice := uuid.New()
	bob := uuid.New()

	t.Run("direct settlements count toward balances", func(t *testing.T) {
		db := newTestDB(t)
		repo := NewSettlementRepository(db)
		splitRepo := NewSplitRepository(db)
		seedSplit(t, db, alice, bob)

		direct := entity.NewSettlement(nil, "", decimal.NewFromInt(30), bob, alice, "cash", "")
		if err := repo.Create(context.Background(), direct); err != nil {
			t.Fatalf("Create() error = %v", err)
		}

		live, err := repo.FindLiveByUser(context.Background(), bob)
		if err != nil {
			t.Fatalf("FindLiveByUser() error = %v", err)
		}
		if len(live) != 1 {
			t.Fatalf("len(live) = %d, want 1", len(live))
		}

		splits, err := splitRepo.FindLiveByUser(context.Background(), bob)
		if err != nil {
			t.Fatalf("FindLiveByUser(splits) error = %v", err)
		}
		balance := calculator.Aggregate(splits, live, bob)
		if !balance.TotalOwed.Equal(decimal.NewFromInt(20)) {
			t.Errorf("TotalOwed = %v, want 20 (50 owed minus direct 30)", balance.TotalOwed)
		}
	})

	t.Run("keeps settlements of live splits and detached ones", func(t *testing.T) {
		db := newTestDB(t)
		repo := NewSettlementRepository(db)
		split := seedSplit(t, db, alice, bob)

		attached := entity.NewSettlement(&split.ID, split.Name, decimal.NewFromInt(10), bob, alice, "", "")
		if err := repo.RecordAgainstSplit(context.Background(), attached, split.Revision); err != nil {
			t.Fatalf("RecordAgainstSplit() error = %v", err)
		}

		live, err := repo.FindLiveByUser(context.Background(), bob)
		if err != nil {
			t.Fatalf("FindLiveByUser() error = %v", err)
		}
		if len(live) != 1 {
			t.Fatalf("len(live) = %d, want 1", len(live))
		}

		// Deleting the split detaches the settlement; the row keeps counting.
		if err := NewSplitRepository(db).Delete(context.Background(), split.ID); err != nil {
			t.Fatalf("Delete() error = %v", err)
		}
		live, err = repo.FindLiveByUser(context.Background(), bob)
		if err != nil {
			t.Fatalf("FindLiveByUser() error = %v", err)
		}
		if len(live) != 1 {
			t.Fatalf("len(live) after split deletion = %d, want 1", len(live))
		}
		if live[0].SplitID != nil {
			t.Errorf("split ID = %v, want nil after detachment", live[0].SplitID)
		}
	})

	t.Run("drops settlements of orphaned splits", func(t *testing.T) {
		db := newTestDB(t)
		repo := NewSettlementRepository(db)
		split := seedSplit(t, db, alice, bob)

		attached := entity.NewSettlement(&split.ID, split.Name, decimal.NewFromInt(10), bob, alice, "", "")
		if err := repo.RecordAgainstSplit(context.Background(), attached, split.Revision); err != nil {
			t.Fatalf("RecordAgainstSplit() error = %v", err)
		}

		// Delete the group out from under the split: the split is orphaned
		// and its settlements stop counting.
		if err := db.Delete(&model.GroupModel{}, "id = ?", split.GroupID).Error; err != nil {
			t.Fatalf("delete group: %v", err)
		}

		live, err := repo.FindLiveByUser(context.Background(), bob)
		if err != nil {
			t.Fatalf("FindLiveByUser() error = %v", err)
		}
		if len(live) != 0 {
			t.Errorf("len(live) = %d, want 0 for orphaned split", len(live))
		}
	})
}
