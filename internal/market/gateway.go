// Package market defines the boundary to external market data providers and
// the composition of a primary provider with a quote fallback.
package market

import (
	"context"
	"errors"
	"time"

	"github.com/ndewijer/InvestPro-Backend/internal/model"
)

// ErrNotConfigured is returned by Offline for calls that have no empty answer.
var ErrNotConfigured = errors.New("market data provider is not configured")

// QuoteSource returns live quotes for a set of tickers.
type QuoteSource interface {
	LiveQuotes(ctx context.Context, tickers []string) ([]model.Quote, error)
}

// Gateway is the full set of market data operations the application consumes.
// Every list operation returns an empty result without calling out when tickers is empty.
type Gateway interface {
	QuoteSource
	// DividendCalendar returns the dividend payments expected for the given month.
	DividendCalendar(ctx context.Context, tickers []string, month time.Time) ([]model.DividendProjection, error)
	// News returns recent headlines about the tickers.
	News(ctx context.Context, tickers []string) ([]model.NewsItem, error)
	// TaxReport returns a "Bens e Direitos" declaration text for the given positions.
	TaxReport(ctx context.Context, summaries []model.AssetSummary) (string, error)
}

// Offline is the Gateway used when no provider credentials are configured.
// It answers every list call with no data.
type Offline struct{}

// LiveQuotes implements QuoteSource.
func (Offline) LiveQuotes(context.Context, []string) ([]model.Quote, error) {
	return []model.Quote{}, nil
}

// DividendCalendar implements Gateway.
func (Offline) DividendCalendar(context.Context, []string, time.Time) ([]model.DividendProjection, error) {
	return []model.DividendProjection{}, nil
}

// News implements Gateway.
func (Offline) News(context.Context, []string) ([]model.NewsItem, error) {
	return []model.NewsItem{}, nil
}

// TaxReport implements Gateway.
func (Offline) TaxReport(context.Context, []model.AssetSummary) (string, error) {
	return "", ErrNotConfigured
}
