package service

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/phuslu/log"
	"golang.org/x/sync/errgroup"

	"github.com/ndewijer/InvestPro-Backend/internal/apperrors"
	"github.com/ndewijer/InvestPro-Backend/internal/market"
	"github.com/ndewijer/InvestPro-Backend/internal/model"
	"github.com/ndewijer/InvestPro-Backend/internal/repository"
)

// MarketService refreshes and serves the market snapshot: live quotes and the
// dividend projections of the current month for every held ticker.
type MarketService struct {
	portfolioService *PortfolioService
	marketRepo       *repository.MarketRepository
	gateway          market.Gateway
	now              func() time.Time

	refreshMu sync.Mutex
}

// NewMarketService creates a new MarketService.
func NewMarketService(
	portfolioService *PortfolioService,
	marketRepo *repository.MarketRepository,
	gateway market.Gateway,
) *MarketService {
	return &MarketService{
		portfolioService: portfolioService,
		marketRepo:       marketRepo,
		gateway:          gateway,
		now:              time.Now,
	}
}

// Refresh fetches quotes and the dividend calendar of the current month for all held
// tickers and replaces the stored snapshot.
//
// Both requests run concurrently. A failing request is logged and contributes no data;
// the snapshot is stored regardless so the refresh time always reflects the last attempt.
// Returns apperrors.ErrRefreshInProgress if another refresh is running.
func (s *MarketService) Refresh(ctx context.Context) (model.RefreshResponse, error) {
	if !s.refreshMu.TryLock() {
		return model.RefreshResponse{}, apperrors.ErrRefreshInProgress
	}
	defer s.refreshMu.Unlock()

	start := s.now()
	tickers, err := s.portfolioService.HeldTickers()
	if err != nil {
		return model.RefreshResponse{}, err
	}

	var (
		quotes      []model.Quote
		projections []model.DividendProjection
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		q, err := s.gateway.LiveQuotes(gctx, tickers)
		if err != nil {
			log.Warn().Err(err).Int("tickers", len(tickers)).Msg("Live quotes unavailable")
			q = nil
		}
		quotes = market.SanitizeQuotes(q)
		return nil
	})
	g.Go(func() error {
		p, err := s.gateway.DividendCalendar(gctx, tickers, start)
		if err != nil {
			log.Warn().Err(err).Int("tickers", len(tickers)).Msg("Dividend calendar unavailable")
			p = nil
		}
		projections = market.SanitizeProjections(p)
		return nil
	})
	_ = g.Wait()

	if err := ctx.Err(); err != nil {
		return model.RefreshResponse{}, fmt.Errorf("market refresh cancelled: %w", err)
	}

	updatedAt := s.now().UTC()
	snapshot := model.MarketSnapshot{
		Quotes:      quotes,
		Projections: projections,
		Month:       start.Format("2006-01"),
		UpdatedAt:   &updatedAt,
	}
	if err := s.marketRepo.SaveSnapshot(ctx, snapshot); err != nil {
		return model.RefreshResponse{}, err
	}

	log.Info().
		Int("tickers", len(tickers)).
		Int("quotes", len(quotes)).
		Int("projections", len(projections)).
		Dur("duration", updatedAt.Sub(start)).
		Msg("Market data refreshed")

	return model.RefreshResponse{
		Tickers:     len(tickers),
		Quotes:      len(quotes),
		Projections: len(projections),
		UpdatedAt:   updatedAt,
	}, nil
}

// GetQuotes returns the quotes of the stored snapshot.
func (s *MarketService) GetQuotes(ctx context.Context) (model.QuotesResponse, error) {
	snapshot, err := s.marketRepo.LoadSnapshot(ctx)
	if err != nil {
		return model.QuotesResponse{}, err
	}

	quotes := make([]model.Quote, 0, len(snapshot.Quotes))
	for _, q := range snapshot.Quotes {
		q.Price = round(q.Price)
		q.ChangePercent = round(q.ChangePercent)
		quotes = append(quotes, q)
	}

	return model.QuotesResponse{
		Quotes:     quotes,
		LastUpdate: snapshot.UpdatedAt,
	}, nil
}
