package market

import (
	"context"
	"time"

	"github.com/phuslu/log"

	"github.com/ndewijer/InvestPro-Backend/internal/model"
)

// Composite asks a primary Gateway first and fills the quotes it could not
// provide from a fallback QuoteSource. Errors from either side are logged and
// treated as "no data" so a caller always gets whatever could be collected.
type Composite struct {
	primary  Gateway
	fallback QuoteSource
}

// NewComposite creates a Composite. fallback may be nil.
func NewComposite(primary Gateway, fallback QuoteSource) *Composite {
	return &Composite{primary: primary, fallback: fallback}
}

// LiveQuotes returns the primary quotes for the tickers it knows, completed from the fallback.
func (c *Composite) LiveQuotes(ctx context.Context, tickers []string) ([]model.Quote, error) {
	if len(tickers) == 0 {
		return []model.Quote{}, nil
	}

	quotes, err := c.primary.LiveQuotes(ctx, tickers)
	if err != nil {
		log.Warn().Err(err).Int("tickers", len(tickers)).Msg("Primary quote source failed")
		quotes = nil
	}
	quotes = SanitizeQuotes(quotes)

	if c.fallback == nil {
		return quotes, nil
	}

	missing := MissingTickers(tickers, quotes)
	if len(missing) == 0 {
		return quotes, nil
	}

	extra, err := c.fallback.LiveQuotes(ctx, missing)
	if err != nil {
		log.Warn().Err(err).Strs("tickers", missing).Msg("Fallback quote source failed")
		return quotes, nil
	}

	log.Debug().Int("requested", len(missing)).Int("found", len(extra)).Msg("Quotes completed from fallback")
	return append(quotes, SanitizeQuotes(extra)...), nil
}

// DividendCalendar delegates to the primary gateway.
func (c *Composite) DividendCalendar(ctx context.Context, tickers []string, month time.Time) ([]model.DividendProjection, error) {
	if len(tickers) == 0 {
		return []model.DividendProjection{}, nil
	}

	projections, err := c.primary.DividendCalendar(ctx, tickers, month)
	if err != nil {
		return nil, err
	}
	return SanitizeProjections(projections), nil
}

// News delegates to the primary gateway.
func (c *Composite) News(ctx context.Context, tickers []string) ([]model.NewsItem, error) {
	if len(tickers) == 0 {
		return []model.NewsItem{}, nil
	}

	items, err := c.primary.News(ctx, tickers)
	if err != nil {
		return nil, err
	}
	return SanitizeNews(items), nil
}

// TaxReport delegates to the primary gateway.
func (c *Composite) TaxReport(ctx context.Context, summaries []model.AssetSummary) (string, error) {
	return c.primary.TaxReport(ctx, summaries)
}
