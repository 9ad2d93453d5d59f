package testutil

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/ndewijer/InvestPro-Backend/internal/model"
	"github.com/ndewijer/InvestPro-Backend/internal/repository"
)

// TransactionBuilder provides a fluent interface for creating test transactions.
//
// Example usage:
//
//	// Simple creation with defaults (BUY 100 PETR4 at 10.00 on 2026-01-02)
//	tx := testutil.NewTransaction().Build(t, db)
//
//	// Customized transaction
//	tx := testutil.NewTransaction().
//	    WithTicker("MXRF11").
//	    WithAssetType(model.AssetRealEstateFund).
//	    Sell(50, 10.5).
//	    OnDate("2026-02-10").
//	    Build(t, db)
type TransactionBuilder struct {
	tx model.Transaction
}

// NewTransaction creates a TransactionBuilder with sensible defaults.
func NewTransaction() *TransactionBuilder {
	return &TransactionBuilder{
		tx: model.Transaction{
			ID:        MakeID(),
			Date:      time.Date(2026, time.January, 2, 0, 0, 0, 0, time.UTC),
			Ticker:    "PETR4",
			Type:      model.TransactionBuy,
			AssetType: model.AssetEquity,
			Quantity:  100,
			Price:     10,
			Fees:      0,
			Broker:    "Test Broker",
		},
	}
}

// WithID sets a custom ID.
func (b *TransactionBuilder) WithID(id string) *TransactionBuilder {
	b.tx.ID = id
	return b
}

// WithTicker sets the ticker.
func (b *TransactionBuilder) WithTicker(ticker string) *TransactionBuilder {
	b.tx.Ticker = ticker
	return b
}

// WithAssetType sets the asset classification.
func (b *TransactionBuilder) WithAssetType(assetType model.AssetType) *TransactionBuilder {
	b.tx.AssetType = assetType
	return b
}

// OnDate sets the transaction date from a YYYY-MM-DD string.
func (b *TransactionBuilder) OnDate(date string) *TransactionBuilder {
	b.tx.Date = MustDate(date)
	return b
}

// Buy makes the transaction a purchase of quantity units at price.
func (b *TransactionBuilder) Buy(quantity, price float64) *TransactionBuilder {
	b.tx.Type = model.TransactionBuy
	b.tx.Quantity = quantity
	b.tx.Price = price
	return b
}

// Sell makes the transaction a sale of quantity units at price.
func (b *TransactionBuilder) Sell(quantity, price float64) *TransactionBuilder {
	b.tx.Type = model.TransactionSell
	b.tx.Quantity = quantity
	b.tx.Price = price
	return b
}

// WithFees sets the transaction fees.
func (b *TransactionBuilder) WithFees(fees float64) *TransactionBuilder {
	b.tx.Fees = fees
	return b
}

// Value returns the transaction without storing it.
func (b *TransactionBuilder) Value() model.Transaction {
	return b.tx
}

// Build stores the transaction in the database and returns it.
func (b *TransactionBuilder) Build(t *testing.T, db *sql.DB) model.Transaction {
	t.Helper()

	tx := b.tx
	tx.CreatedAt = time.Now().UTC()

	if err := repository.NewTransactionRepository(db).InsertTransaction(context.Background(), &tx); err != nil {
		t.Fatalf("Failed to create test transaction: %v", err)
	}
	return tx
}

// SaveSnapshot stores a market snapshot with the given quotes and projections.
func SaveSnapshot(t *testing.T, db *sql.DB, quotes []model.Quote, projections []model.DividendProjection) model.MarketSnapshot {
	t.Helper()

	updatedAt := time.Date(2026, time.March, 10, 12, 0, 0, 0, time.UTC)
	snapshot := model.MarketSnapshot{
		Quotes:      quotes,
		Projections: projections,
		Month:       "2026-03",
		UpdatedAt:   &updatedAt,
	}

	if err := repository.NewMarketRepository(db).SaveSnapshot(context.Background(), snapshot); err != nil {
		t.Fatalf("Failed to save test snapshot: %v", err)
	}
	return snapshot
}

// MakeID returns a new random UUID string.
func MakeID() string {
	return uuid.New().String()
}

// MustDate parses a YYYY-MM-DD date and panics on malformed input.
func MustDate(date string) time.Time {
	d, err := time.Parse("2006-01-02", date)
	if err != nil {
		panic(err)
	}
	return d
}
