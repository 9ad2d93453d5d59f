package testutil

import (
	"database/sql"
	"testing"

	"github.com/ndewijer/InvestPro-Backend/internal/backup"
	"github.com/ndewijer/InvestPro-Backend/internal/market"
	"github.com/ndewijer/InvestPro-Backend/internal/repository"
	"github.com/ndewijer/InvestPro-Backend/internal/service"
)

// NewTestPortfolioService creates a PortfolioService over db.
func NewTestPortfolioService(t *testing.T, db *sql.DB) *service.PortfolioService {
	t.Helper()

	return service.NewPortfolioService(
		repository.NewTransactionRepository(db),
		repository.NewMarketRepository(db),
	)
}

// NewTestTransactionService creates a TransactionService over db. An empty key disables sealing.
func NewTestTransactionService(t *testing.T, db *sql.DB, backupKey string) *service.TransactionService {
	t.Helper()

	sealer, err := backup.NewSealer(backupKey)
	if err != nil {
		t.Fatalf("Failed to create sealer: %v", err)
	}

	return service.NewTransactionService(repository.NewTransactionRepository(db), sealer)
}

// NewTestMarketService creates a MarketService over db and gateway.
func NewTestMarketService(t *testing.T, db *sql.DB, gateway market.Gateway) *service.MarketService {
	t.Helper()

	return service.NewMarketService(
		NewTestPortfolioService(t, db),
		repository.NewMarketRepository(db),
		gateway,
	)
}

// NewTestDividendService creates a DividendService over db.
func NewTestDividendService(t *testing.T, db *sql.DB) *service.DividendService {
	t.Helper()
	return service.NewDividendService(NewTestPortfolioService(t, db))
}

// NewTestNewsService creates a NewsService over db and gateway.
func NewTestNewsService(t *testing.T, db *sql.DB, gateway market.Gateway) *service.NewsService {
	t.Helper()
	return service.NewNewsService(NewTestPortfolioService(t, db), gateway)
}

// NewTestTaxService creates a TaxService over db and gateway.
func NewTestTaxService(t *testing.T, db *sql.DB, gateway market.Gateway) *service.TaxService {
	t.Helper()
	return service.NewTaxService(NewTestPortfolioService(t, db), gateway)
}

// NewTestSystemService creates a SystemService over db.
func NewTestSystemService(t *testing.T, db *sql.DB) *service.SystemService {
	t.Helper()
	return service.NewSystemService(db, map[string]bool{"gemini": true})
}
