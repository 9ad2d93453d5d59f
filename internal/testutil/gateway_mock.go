package testutil

import (
	"context"
	"slices"
	"sync"
	"time"

	"github.com/ndewijer/InvestPro-Backend/internal/model"
)

// MockGateway is a configurable market.Gateway for tests.
// Every call is recorded; configured errors are returned instead of data.
type MockGateway struct {
	mu sync.Mutex

	Quotes      []model.Quote
	Projections []model.DividendProjection
	NewsItems   []model.NewsItem
	Report      string

	QuotesErr    error
	DividendsErr error
	NewsErr      error
	ReportErr    error

	// Block, when set, makes LiveQuotes wait until it is closed or the context ends.
	Block chan struct{}

	QuoteCalls    int
	DividendCalls int
	NewsCalls     int
	ReportCalls   int

	LastTickers []string
	LastMonth   time.Time
}

// NewMockGateway creates a MockGateway that returns no data.
func NewMockGateway() *MockGateway {
	return &MockGateway{}
}

// LiveQuotes returns the configured quotes restricted to the requested tickers.
func (m *MockGateway) LiveQuotes(ctx context.Context, tickers []string) ([]model.Quote, error) {
	m.mu.Lock()
	m.QuoteCalls++
	m.LastTickers = slices.Clone(tickers)
	block := m.Block
	m.mu.Unlock()

	if block != nil {
		select {
		case <-block:
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}

	if m.QuotesErr != nil {
		return nil, m.QuotesErr
	}

	out := []model.Quote{}
	for _, q := range m.Quotes {
		if slices.Contains(tickers, q.Ticker) {
			out = append(out, q)
		}
	}
	return out, nil
}

// DividendCalendar returns the configured projections.
func (m *MockGateway) DividendCalendar(_ context.Context, _ []string, month time.Time) ([]model.DividendProjection, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.DividendCalls++
	m.LastMonth = month
	if m.DividendsErr != nil {
		return nil, m.DividendsErr
	}
	return slices.Clone(m.Projections), nil
}

// News returns the configured news items.
func (m *MockGateway) News(_ context.Context, tickers []string) ([]model.NewsItem, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.NewsCalls++
	m.LastTickers = slices.Clone(tickers)
	if m.NewsErr != nil {
		return nil, m.NewsErr
	}
	return slices.Clone(m.NewsItems), nil
}

// TaxReport returns the configured report.
func (m *MockGateway) TaxReport(_ context.Context, _ []model.AssetSummary) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.ReportCalls++
	if m.ReportErr != nil {
		return "", m.ReportErr
	}
	return m.Report, nil
}

// Calls returns the number of LiveQuotes calls so far.
func (m *MockGateway) Calls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.QuoteCalls
}
