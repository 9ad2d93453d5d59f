package service

import (
	"context"

	"github.com/ndewijer/InvestPro-Backend/internal/model"
	"github.com/ndewijer/InvestPro-Backend/internal/position"
)

// DividendService serves the dividend calendar of the stored snapshot joined with current holdings.
type DividendService struct {
	portfolioService *PortfolioService
}

// NewDividendService creates a new DividendService.
func NewDividendService(portfolioService *PortfolioService) *DividendService {
	return &DividendService{
		portfolioService: portfolioService,
	}
}

// GetCalendar returns the days of the snapshot month that have at least one expected payment.
func (s *DividendService) GetCalendar(ctx context.Context) (model.DividendCalendarResponse, error) {
	_, snapshot, err := s.portfolioService.LoadPositions(ctx)
	if err != nil {
		return model.DividendCalendarResponse{}, err
	}

	return model.DividendCalendarResponse{
		Month:       snapshot.Month,
		Days:        position.DividendDays(snapshot.Projections),
		Projections: snapshot.Projections,
		LastUpdate:  snapshot.UpdatedAt,
	}, nil
}

// GetDay returns the payouts expected on day, valued at the quantity currently held.
// A day without projections yields an empty list and a zero total.
func (s *DividendService) GetDay(ctx context.Context, day int) (model.DividendDayResponse, error) {
	summaries, snapshot, err := s.portfolioService.LoadPositions(ctx)
	if err != nil {
		return model.DividendDayResponse{}, err
	}

	payouts, total := position.PayoutsForDay(snapshot.Projections, summaries, day)
	for i := range payouts {
		payouts[i].Total = round(payouts[i].Total)
	}

	return model.DividendDayResponse{
		Day:     day,
		Payouts: payouts,
		Total:   money(total),
	}, nil
}
