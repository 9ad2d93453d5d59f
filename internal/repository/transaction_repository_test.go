package repository_test

import (
	"context"
	"errors"
	"testing"

	"github.com/ndewijer/InvestPro-Backend/internal/apperrors"
	"github.com/ndewijer/InvestPro-Backend/internal/model"
	"github.com/ndewijer/InvestPro-Backend/internal/repository"
	"github.com/ndewijer/InvestPro-Backend/internal/testutil"
)

// TestTransactionRepository_GetTransactions tests ledger ordering.
//
// WHY: same-date transactions are aggregated in the order they were written,
// so listing must follow insertion order, not date.
func TestTransactionRepository_GetTransactions(t *testing.T) {
	t.Run("returns empty slice for empty ledger", func(t *testing.T) {
		repo := repository.NewTransactionRepository(testutil.SetupTestDB(t))

		txs, err := repo.GetTransactions()
		if err != nil {
			t.Fatalf("GetTransactions() returned unexpected error: %v", err)
		}
		if txs == nil || len(txs) != 0 {
			t.Errorf("Expected empty non-nil slice, got %v", txs)
		}
	})

	t.Run("returns transactions in insertion order with all fields", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		repo := repository.NewTransactionRepository(db)

		late := testutil.NewTransaction().WithTicker("SAPR11").OnDate("2026-02-01").WithFees(1.5).Build(t, db)
		early := testutil.NewTransaction().WithTicker("CPLE6").OnDate("2025-12-15").Sell(3, 9.9).Build(t, db)

		txs, err := repo.GetTransactions()
		if err != nil {
			t.Fatalf("GetTransactions() returned unexpected error: %v", err)
		}
		if len(txs) != 2 || txs[0].ID != late.ID || txs[1].ID != early.ID {
			t.Fatalf("Expected insertion order, got %+v", txs)
		}

		got := txs[1]
		if !got.Date.Equal(testutil.MustDate("2025-12-15")) {
			t.Errorf("Expected date 2025-12-15, got %v", got.Date)
		}
		if got.Type != model.TransactionSell || got.Quantity != 3 || got.Price != 9.9 {
			t.Errorf("Unexpected transaction: %+v", got)
		}
		if txs[0].Fees != 1.5 || txs[0].Broker != "Test Broker" {
			t.Errorf("Unexpected fees or broker: %+v", txs[0])
		}
		if got.CreatedAt.IsZero() {
			t.Error("Expected createdAt to be read back")
		}
	})
}

func TestTransactionRepository_GetTransaction(t *testing.T) {
	db := testutil.SetupTestDB(t)
	repo := repository.NewTransactionRepository(db)
	tx := testutil.NewTransaction().WithAssetType(model.AssetBDR).Build(t, db)

	got, err := repo.GetTransaction(tx.ID)
	if err != nil {
		t.Fatalf("GetTransaction() returned unexpected error: %v", err)
	}
	if got.ID != tx.ID || got.AssetType != model.AssetBDR {
		t.Errorf("Unexpected transaction: %+v", got)
	}

	if _, err := repo.GetTransaction(testutil.MakeID()); !errors.Is(err, apperrors.ErrTransactionNotFound) {
		t.Errorf("Expected ErrTransactionNotFound, got %v", err)
	}
}

func TestTransactionRepository_InsertTransaction(t *testing.T) {
	t.Run("duplicate id is rejected", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		repo := repository.NewTransactionRepository(db)
		tx := testutil.NewTransaction().Build(t, db)

		dup := testutil.NewTransaction().WithID(tx.ID).Value()
		if err := repo.InsertTransaction(context.Background(), &dup); !errors.Is(err, apperrors.ErrDuplicateEntry) {
			t.Errorf("Expected ErrDuplicateEntry, got %v", err)
		}
	})
}

func TestTransactionRepository_DeleteTransaction(t *testing.T) {
	db := testutil.SetupTestDB(t)
	repo := repository.NewTransactionRepository(db)
	tx := testutil.NewTransaction().Build(t, db)

	if err := repo.DeleteTransaction(context.Background(), tx.ID); err != nil {
		t.Fatalf("DeleteTransaction() returned unexpected error: %v", err)
	}
	if err := repo.DeleteTransaction(context.Background(), tx.ID); !errors.Is(err, apperrors.ErrTransactionNotFound) {
		t.Errorf("Expected ErrTransactionNotFound, got %v", err)
	}
}

func TestTransactionRepository_ReplaceAll(t *testing.T) {
	t.Run("replaces ledger in the given order", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		repo := repository.NewTransactionRepository(db)
		testutil.NewTransaction().WithTicker("OLD3").Build(t, db)

		replacement := []model.Transaction{
			testutil.NewTransaction().WithTicker("B").OnDate("2026-02-01").Value(),
			testutil.NewTransaction().WithTicker("A").OnDate("2026-01-01").Value(),
		}
		if err := repo.ReplaceAll(context.Background(), replacement); err != nil {
			t.Fatalf("ReplaceAll() returned unexpected error: %v", err)
		}

		txs, _ := repo.GetTransactions()
		if len(txs) != 2 || txs[0].Ticker != "B" || txs[1].Ticker != "A" {
			t.Errorf("Unexpected ledger after replace: %+v", txs)
		}
	})

	t.Run("duplicate ids roll back", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		repo := repository.NewTransactionRepository(db)
		existing := testutil.NewTransaction().WithTicker("KEEP3").Build(t, db)

		id := testutil.MakeID()
		replacement := []model.Transaction{
			testutil.NewTransaction().WithID(id).Value(),
			testutil.NewTransaction().WithID(id).Value(),
		}
		if err := repo.ReplaceAll(context.Background(), replacement); !errors.Is(err, apperrors.ErrDuplicateEntry) {
			t.Fatalf("Expected ErrDuplicateEntry, got %v", err)
		}

		txs, _ := repo.GetTransactions()
		if len(txs) != 1 || txs[0].ID != existing.ID {
			t.Errorf("Expected ledger to be unchanged, got %+v", txs)
		}
	})
}

func TestParseTime(t *testing.T) {
	tests := []string{
		"2026-01-02",
		"2026-01-02T15:04:05Z",
		"2026-01-02T15:04:05.123456789Z",
	}
	for _, in := range tests {
		t.Run(in, func(t *testing.T) {
			got, err := repository.ParseTime(in)
			if err != nil {
				t.Fatalf("ParseTime(%q) returned unexpected error: %v", in, err)
			}
			if got.Year() != 2026 || got.Month() != 1 || got.Day() != 2 {
				t.Errorf("ParseTime(%q) = %v", in, got)
			}
		})
	}

	if _, err := repository.ParseTime("yesterday"); err == nil {
		t.Error("Expected error for unparseable time")
	}
}
