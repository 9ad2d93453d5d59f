package service

import (
	"cmp"
	"context"
	"slices"

	"github.com/phuslu/log"

	"github.com/ndewijer/InvestPro-Backend/internal/market"
	"github.com/ndewijer/InvestPro-Backend/internal/model"
)

// UndatedNewsGroup is the group label of news items without a date.
const UndatedNewsGroup = "Recente"

// NewsService serves recent headlines about the held tickers. News is fetched on
// demand and never stored.
type NewsService struct {
	portfolioService *PortfolioService
	gateway          market.Gateway
}

// NewNewsService creates a new NewsService.
func NewNewsService(portfolioService *PortfolioService, gateway market.Gateway) *NewsService {
	return &NewsService{
		portfolioService: portfolioService,
		gateway:          gateway,
	}
}

// GetNews returns the news of the held tickers grouped by date, newest first.
// A gateway failure yields no groups rather than an error.
func (s *NewsService) GetNews(ctx context.Context) ([]model.NewsGroup, error) {
	tickers, err := s.portfolioService.HeldTickers()
	if err != nil {
		return nil, err
	}

	items, err := s.gateway.News(ctx, tickers)
	if err != nil {
		log.Warn().Err(err).Int("tickers", len(tickers)).Msg("News unavailable")
		return []model.NewsGroup{}, nil
	}

	return GroupNews(market.SanitizeNews(items)), nil
}

// GroupNews groups items by their date, newest date first, keeping item order within a group.
// Items without a date are collected in a final UndatedNewsGroup.
func GroupNews(items []model.NewsItem) []model.NewsGroup {
	groups := make([]model.NewsGroup, 0)
	index := make(map[string]int)
	var undated []model.NewsItem

	for _, item := range items {
		if item.Date == "" {
			undated = append(undated, item)
			continue
		}
		i, ok := index[item.Date]
		if !ok {
			i = len(groups)
			index[item.Date] = i
			groups = append(groups, model.NewsGroup{Date: item.Date})
		}
		groups[i].Items = append(groups[i].Items, item)
	}

	// ISO dates sort lexically.
	slices.SortStableFunc(groups, func(a, b model.NewsGroup) int {
		return cmp.Compare(b.Date, a.Date)
	})

	if len(undated) > 0 {
		groups = append(groups, model.NewsGroup{Date: UndatedNewsGroup, Items: undated})
	}
	return groups
}
