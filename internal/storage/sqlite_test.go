package storage

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/finchley/penny/internal/common"
	"github.com/finchley/penny/internal/model"
	"github.com/finchley/penny/internal/service"
)

// Helper function to create test storage.
func createTestStorage(t *testing.T) (*SQLiteStorage, func()) {
	t.Helper()
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "test.db")

	store, err := NewSQLiteStorage(dbPath)
	if err != nil {
		t.Fatalf("Failed to create storage: %v", err)
	}

	ctx := context.Background()
	if err := store.Migrate(ctx); err != nil {
		_ = store.Close()
		t.Fatalf("Failed to migrate: %v", err)
	}

	return store, func() { _ = store.Close() }
}

// Helper function to create test transactions.
func createTestTransactions(count int) []model.Transaction {
	txns := make([]model.Transaction, count)
	baseTime := time.Date(2024, 5, 1, 9, 0, 0, 0, time.UTC)

	for i := 0; i < count; i++ {
		txns[i] = model.Transaction{
			ID:       fmt.Sprintf("txn%d", i+1),
			Date:     baseTime.Add(time.Duration(i) * time.Hour),
			Category: "food",
			Note:     fmt.Sprintf("Lunch %d", i+1),
			Source:   "cash",
			Amount:   decimal.NewFromInt(int64(i + 1)).Mul(decimal.RequireFromString("-10.50")),
		}
	}
	return txns
}

func TestSaveAndGetTransactions(t *testing.T) {
	store, cleanup := createTestStorage(t)
	defer cleanup()
	ctx := context.Background()

	mood := 4
	txns := createTestTransactions(3)
	txns[1].Mood = &mood

	if err := store.SaveTransactions(ctx, txns); err != nil {
		t.Fatalf("SaveTransactions() error = %v", err)
	}

	got, err := store.GetTransactions(ctx, service.TransactionFilter{})
	if err != nil {
		t.Fatalf("GetTransactions() error = %v", err)
	}
	if len(got) != 3 {
		t.Fatalf("got %d transactions, want 3", len(got))
	}

	// Most recent first.
	if got[0].ID != "txn3" {
		t.Errorf("first result = %s, want txn3", got[0].ID)
	}

	// Decimal amounts survive the round-trip exactly.
	if !got[2].Amount.Equal(decimal.RequireFromString("-10.50")) {
		t.Errorf("amount = %s, want -10.50", got[2].Amount)
	}

	byID, err := store.GetTransactionByID(ctx, "txn2")
	if err != nil {
		t.Fatalf("GetTransactionByID() error = %v", err)
	}
	if byID.Mood == nil || *byID.Mood != 4 {
		t.Errorf("mood = %v, want 4", byID.Mood)
	}
	if byID.Source != "cash" {
		t.Errorf("source = %q, want cash", byID.Source)
	}
	if byID.Date.UnixMilli() != txns[1].Date.UnixMilli() {
		t.Errorf("date = %v, want %v", byID.Date, txns[1].Date)
	}
}

func TestGetTransactions_Filters(t *testing.T) {
	store, cleanup := createTestStorage(t)
	defer cleanup()
	ctx := context.Background()

	base := time.Date(2024, 5, 1, 9, 0, 0, 0, time.UTC)
	txns := []model.Transaction{
		{ID: "t1", Date: base, Category: "food", Amount: decimal.RequireFromString("-10")},
		{ID: "t2", Date: base.AddDate(0, 0, 1), Category: "transport", Amount: decimal.RequireFromString("-5")},
		{ID: "t3", Date: base.AddDate(0, 0, 2), Category: "food", Amount: decimal.RequireFromString("-20")},
	}
	if err := store.SaveTransactions(ctx, txns); err != nil {
		t.Fatalf("SaveTransactions() error = %v", err)
	}

	t.Run("by category", func(t *testing.T) {
		got, err := store.GetTransactions(ctx, service.TransactionFilter{Category: "food"})
		if err != nil {
			t.Fatalf("GetTransactions() error = %v", err)
		}
		if len(got) != 2 {
			t.Errorf("got %d food transactions, want 2", len(got))
		}
	})

	t.Run("by date range", func(t *testing.T) {
		start := base.AddDate(0, 0, 1)
		end := base.AddDate(0, 0, 2)
		got, err := store.GetTransactions(ctx, service.TransactionFilter{StartDate: &start, EndDate: &end})
		if err != nil {
			t.Fatalf("GetTransactions() error = %v", err)
		}
		if len(got) != 1 || got[0].ID != "t2" {
			t.Errorf("got %v, want only t2", got)
		}
	})

	t.Run("with limit", func(t *testing.T) {
		got, err := store.GetTransactions(ctx, service.TransactionFilter{Limit: 1})
		if err != nil {
			t.Fatalf("GetTransactions() error = %v", err)
		}
		if len(got) != 1 || got[0].ID != "t3" {
			t.Errorf("got %v, want only the most recent t3", got)
		}
	})

	t.Run("inverted range rejected", func(t *testing.T) {
		start := base.AddDate(0, 0, 2)
		end := base
		_, err := store.GetTransactions(ctx, service.TransactionFilter{StartDate: &start, EndDate: &end})
		if !errors.Is(err, ErrInvalidDateRange) {
			t.Errorf("error = %v, want ErrInvalidDateRange", err)
		}
	})
}

func TestSoftDeleteAndRestore(t *testing.T) {
	store, cleanup := createTestStorage(t)
	defer cleanup()
	ctx := context.Background()

	if err := store.SaveTransactions(ctx, createTestTransactions(2)); err != nil {
		t.Fatalf("SaveTransactions() error = %v", err)
	}

	if err := store.DeleteTransaction(ctx, "txn1"); err != nil {
		t.Fatalf("DeleteTransaction() error = %v", err)
	}

	got, err := store.GetTransactions(ctx, service.TransactionFilter{})
	if err != nil {
		t.Fatalf("GetTransactions() error = %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("got %d transactions after delete, want 1", len(got))
	}

	withDeleted, err := store.GetTransactions(ctx, service.TransactionFilter{IncludeDeleted: true})
	if err != nil {
		t.Fatalf("GetTransactions() error = %v", err)
	}
	if len(withDeleted) != 2 {
		t.Fatalf("got %d transactions including deleted, want 2", len(withDeleted))
	}

	// Deleted rows remain fetchable by ID.
	deleted, err := store.GetTransactionByID(ctx, "txn1")
	if err != nil {
		t.Fatalf("GetTransactionByID() error = %v", err)
	}
	if !deleted.Deleted {
		t.Error("transaction should carry the deleted flag")
	}

	if err := store.RestoreTransaction(ctx, "txn1"); err != nil {
		t.Fatalf("RestoreTransaction() error = %v", err)
	}
	got, err = store.GetTransactions(ctx, service.TransactionFilter{})
	if err != nil {
		t.Fatalf("GetTransactions() error = %v", err)
	}
	if len(got) != 2 {
		t.Errorf("got %d transactions after restore, want 2", len(got))
	}
}

func TestPurgeDeleted(t *testing.T) {
	store, cleanup := createTestStorage(t)
	defer cleanup()
	ctx := context.Background()

	if err := store.SaveTransactions(ctx, createTestTransactions(3)); err != nil {
		t.Fatalf("SaveTransactions() error = %v", err)
	}
	if err := store.DeleteTransaction(ctx, "txn1"); err != nil {
		t.Fatalf("DeleteTransaction() error = %v", err)
	}
	if err := store.DeleteTransaction(ctx, "txn3"); err != nil {
		t.Fatalf("DeleteTransaction() error = %v", err)
	}

	purged, err := store.PurgeDeleted(ctx)
	if err != nil {
		t.Fatalf("PurgeDeleted() error = %v", err)
	}
	if purged != 2 {
		t.Errorf("purged = %d, want 2", purged)
	}

	if _, err := store.GetTransactionByID(ctx, "txn1"); !errors.Is(err, common.ErrNotFound) {
		t.Errorf("purged transaction lookup error = %v, want ErrNotFound", err)
	}
}

func TestDeleteTransaction_NotFound(t *testing.T) {
	store, cleanup := createTestStorage(t)
	defer cleanup()

	err := store.DeleteTransaction(context.Background(), "missing")
	if !errors.Is(err, common.ErrNotFound) {
		t.Errorf("error = %v, want ErrNotFound", err)
	}
}

func TestHasTransactionHash(t *testing.T) {
	store, cleanup := createTestStorage(t)
	defer cleanup()
	ctx := context.Background()

	txns := createTestTransactions(1)
	if err := store.SaveTransactions(ctx, txns); err != nil {
		t.Fatalf("SaveTransactions() error = %v", err)
	}

	found, err := store.HasTransactionHash(ctx, txns[0].GenerateHash())
	if err != nil {
		t.Fatalf("HasTransactionHash() error = %v", err)
	}
	if !found {
		t.Error("expected stored hash to be found")
	}

	missing, err := store.HasTransactionHash(ctx, "no-such-hash")
	if err != nil {
		t.Fatalf("HasTransactionHash() error = %v", err)
	}
	if missing {
		t.Error("unexpected match for unknown hash")
	}
}

func TestSaveTransactions_Validation(t *testing.T) {
	store, cleanup := createTestStorage(t)
	defer cleanup()
	ctx := context.Background()

	tests := []struct {
		name string
		txns []model.Transaction
	}{
		{"nil slice", nil},
		{"empty slice", []model.Transaction{}},
		{"missing id", []model.Transaction{{Date: time.Now(), Amount: decimal.NewFromInt(-5), Category: "food"}}},
		{"zero amount", []model.Transaction{{ID: "x", Date: time.Now(), Category: "food"}}},
		{"mood out of range", func() []model.Transaction {
			mood := 9
			return []model.Transaction{{ID: "x", Date: time.Now(), Amount: decimal.NewFromInt(-5), Category: "food", Mood: &mood}}
		}()},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := store.SaveTransactions(ctx, tt.txns); err == nil {
				t.Error("SaveTransactions() should have failed validation")
			}
		})
	}
}
