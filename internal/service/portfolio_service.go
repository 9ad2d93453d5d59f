package service

import (
	"context"
	"fmt"
	"slices"
	"strings"

	"github.com/ndewijer/InvestPro-Backend/internal/model"
	"github.com/ndewijer/InvestPro-Backend/internal/position"
	"github.com/ndewijer/InvestPro-Backend/internal/repository"
)

// PortfolioService derives positions from the transaction ledger and the last market snapshot.
// Nothing it returns is stored; every call re-aggregates the full ledger.
type PortfolioService struct {
	transactionRepo *repository.TransactionRepository
	marketRepo      *repository.MarketRepository
}

// NewPortfolioService creates a new PortfolioService with the provided repository dependencies.
func NewPortfolioService(
	transactionRepo *repository.TransactionRepository,
	marketRepo *repository.MarketRepository,
) *PortfolioService {
	return &PortfolioService{
		transactionRepo: transactionRepo,
		marketRepo:      marketRepo,
	}
}

// LoadPositions aggregates the ledger against the quotes of the last snapshot.
// The snapshot is returned alongside so callers can use its projections and timestamp.
func (s *PortfolioService) LoadPositions(ctx context.Context) ([]model.AssetSummary, model.MarketSnapshot, error) {
	transactions, err := s.transactionRepo.GetTransactions()
	if err != nil {
		return nil, model.MarketSnapshot{}, fmt.Errorf("failed to load transactions: %w", err)
	}

	snapshot, err := s.marketRepo.LoadSnapshot(ctx)
	if err != nil {
		return nil, model.MarketSnapshot{}, fmt.Errorf("failed to load market snapshot: %w", err)
	}

	summaries := position.Aggregate(transactions, snapshot.QuoteMap())
	sortByTicker(summaries)

	return summaries, snapshot, nil
}

// HeldTickers returns the tickers with a positive holding, ignoring market data.
func (s *PortfolioService) HeldTickers() ([]string, error) {
	transactions, err := s.transactionRepo.GetTransactions()
	if err != nil {
		return nil, fmt.Errorf("failed to load transactions: %w", err)
	}

	tickers := position.Tickers(position.Aggregate(transactions, nil))
	slices.Sort(tickers)
	return tickers, nil
}

// GetPortfolioSummary returns every position, the dashboard KPIs and the time of the last market refresh.
func (s *PortfolioService) GetPortfolioSummary(ctx context.Context) (model.PortfolioSummaryResponse, error) {
	summaries, snapshot, err := s.LoadPositions(ctx)
	if err != nil {
		return model.PortfolioSummaryResponse{}, err
	}

	return model.PortfolioSummaryResponse{
		Positions:  newPositionResponses(summaries),
		Totals:     newTotalsResponse(position.Totals(summaries)),
		LastUpdate: snapshot.UpdatedAt,
	}, nil
}

// GetPositions returns every position sorted by ticker.
func (s *PortfolioService) GetPositions(ctx context.Context) ([]model.PositionResponse, error) {
	summaries, _, err := s.LoadPositions(ctx)
	if err != nil {
		return nil, err
	}
	return newPositionResponses(summaries), nil
}

// GetPortfolioCharts returns the series of the analysis view: projected dividends per ticker,
// invested capital per asset type and the largest positions.
func (s *PortfolioService) GetPortfolioCharts(ctx context.Context) (model.ChartsResponse, error) {
	summaries, snapshot, err := s.LoadPositions(ctx)
	if err != nil {
		return model.ChartsResponse{}, err
	}

	dividends := position.DividendsByTicker(snapshot.Projections, summaries)
	byTicker := make([]model.TickerAmount, 0, len(dividends))
	for _, d := range dividends {
		byTicker = append(byTicker, model.TickerAmount{Ticker: d.Ticker, Total: money(d.Total)})
	}

	exposure := position.ExposureByAssetType(summaries)
	segments := make([]model.SegmentExposure, 0, len(exposure))
	for _, e := range exposure {
		segments = append(segments, model.SegmentExposure{AssetType: e.AssetType, Value: money(e.Total)})
	}

	return model.ChartsResponse{
		DividendsByTicker: byTicker,
		Exposure:          segments,
		TopPositions:      newPositionResponses(position.TopPositions(summaries, position.DefaultTopPositions)),
	}, nil
}

func sortByTicker(summaries []model.AssetSummary) {
	slices.SortFunc(summaries, func(a, b model.AssetSummary) int {
		return strings.Compare(a.Ticker, b.Ticker)
	})
}
