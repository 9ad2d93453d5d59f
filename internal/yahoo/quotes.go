package yahoo

import (
	"context"
	"strings"
	"sync"

	"github.com/phuslu/log"
	"golang.org/x/sync/errgroup"

	"github.com/ndewijer/InvestPro-Backend/internal/model"
)

// SourceName tags quotes obtained from Yahoo Finance.
const SourceName = "yahoo"

// maxConcurrentQueries bounds the number of parallel chart requests.
const maxConcurrentQueries = 4

// ChartQuerier is the subset of FinanceClient used to build quotes.
type ChartQuerier interface {
	LatestQuote(ctx context.Context, symbol string) (LatestPrice, error)
}

// QuoteSource serves live quotes for portfolio tickers from Yahoo Finance.
// Tickers are mapped to Yahoo symbols by appending a suffix (".SA" for B3 listings)
// unless they already carry an exchange suffix.
type QuoteSource struct {
	client ChartQuerier
	suffix string
}

// NewQuoteSource creates a QuoteSource over the given client.
func NewQuoteSource(client ChartQuerier, suffix string) *QuoteSource {
	return &QuoteSource{client: client, suffix: suffix}
}

// Symbol maps a portfolio ticker to its Yahoo symbol.
func (s *QuoteSource) Symbol(ticker string) string {
	if s.suffix == "" || strings.Contains(ticker, ".") || strings.Contains(ticker, "-") {
		return ticker
	}
	return ticker + s.suffix
}

// LiveQuotes fetches the latest price of each ticker.
// Tickers Yahoo cannot resolve are logged and left out; the call itself only fails
// when the context is cancelled.
func (s *QuoteSource) LiveQuotes(ctx context.Context, tickers []string) ([]model.Quote, error) {
	if len(tickers) == 0 {
		return []model.Quote{}, nil
	}

	var mu sync.Mutex
	quotes := make(map[string]model.Quote, len(tickers))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(maxConcurrentQueries)

	for _, ticker := range tickers {
		g.Go(func() error {
			latest, err := s.client.LatestQuote(gctx, s.Symbol(ticker))
			if err != nil {
				if gctx.Err() != nil {
					return gctx.Err()
				}
				log.Warn().Err(err).Str("ticker", ticker).Msg("Yahoo quote unavailable")
				return nil
			}

			mu.Lock()
			quotes[ticker] = model.Quote{
				Ticker:        ticker,
				Price:         latest.Price,
				ChangePercent: latest.ChangePercent,
				Source:        SourceName,
			}
			mu.Unlock()
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	// Preserve the requested ticker order.
	result := make([]model.Quote, 0, len(quotes))
	for _, ticker := range tickers {
		if q, ok := quotes[ticker]; ok {
			result = append(result, q)
		}
	}
	return result, nil
}
