package testutil

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/ndewijer/InvestPro-Backend/internal/yahoo"
)

// MockYahooClient is a mock implementation of yahoo.ChartQuerier for testing.
// It returns predefined prices per symbol instead of making actual API calls.
type MockYahooClient struct {
	mu sync.Mutex
	// Prices maps a Yahoo symbol to the price returned for it
	Prices map[string]yahoo.LatestPrice
	// MockError is returned for every symbol when set
	MockError error
	// Symbols records every requested symbol
	Symbols []string
}

// NewMockYahooClient creates a new mock Yahoo client without prices.
func NewMockYahooClient() *MockYahooClient {
	return &MockYahooClient{Prices: map[string]yahoo.LatestPrice{}}
}

// WithPrice configures the price returned for symbol.
func (m *MockYahooClient) WithPrice(symbol string, price, changePercent float64) *MockYahooClient {
	m.Prices[symbol] = yahoo.LatestPrice{Symbol: symbol, Price: price, ChangePercent: changePercent}
	return m
}

// WithError configures the mock to return the specified error.
func (m *MockYahooClient) WithError(err error) *MockYahooClient {
	m.MockError = err
	return m
}

// LatestQuote returns the configured price of symbol, or an error for unknown symbols.
func (m *MockYahooClient) LatestQuote(_ context.Context, symbol string) (yahoo.LatestPrice, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.Symbols = append(m.Symbols, symbol)
	if m.MockError != nil {
		return yahoo.LatestPrice{}, m.MockError
	}
	p, ok := m.Prices[symbol]
	if !ok {
		return yahoo.LatestPrice{}, fmt.Errorf("no results returned for symbol %s", symbol)
	}
	return p, nil
}

// CreateMockYahooResponse creates a mock Yahoo Finance chart response with `days` daily closes
// ending yesterday. Closes start at 100 and rise by 0.5 per day.
func CreateMockYahooResponse(symbol string, days int) yahoo.Response {
	now := time.Now().UTC()
	yesterday := time.Date(now.Year(), now.Month(), now.Day()-1, 0, 0, 0, 0, time.UTC)

	timestamps := make([]int64, days)
	opens := make([]*float64, days)
	highs := make([]*float64, days)
	lows := make([]*float64, days)
	closes := make([]*float64, days)
	volumes := make([]*int64, days)

	basePrice := 100.0
	for i := 0; i < days; i++ {
		date := yesterday.AddDate(0, 0, -days+i+1)
		timestamps[i] = date.Unix()

		dayPrice := basePrice + float64(i)*0.5
		open := dayPrice - 0.25
		high := dayPrice + 1.0
		low := dayPrice - 0.5
		closePrice := dayPrice
		volume := int64(1000000 + i*10000)

		opens[i] = &open
		highs[i] = &high
		lows[i] = &low
		closes[i] = &closePrice
		volumes[i] = &volume
	}

	return yahoo.Response{
		Chart: yahoo.Chart{
			Result: []yahoo.Result{
				{
					Meta: yahoo.Meta{
						Symbol:       symbol,
						Currency:     "BRL",
						ExchangeName: "SAO",
						LongName:     "Test Company S.A.",
						Shortname:    symbol,
					},
					Timestamp: timestamps,
					Indicators: yahoo.IndicatorsContainer{
						Quote: []yahoo.Quote{
							{
								Open:   opens,
								High:   highs,
								Low:    lows,
								Close:  closes,
								Volume: volumes,
							},
						},
					},
				},
			},
		},
	}
}

// CreateMockYahooErrorResponse creates a mock Yahoo response with an error.
func CreateMockYahooErrorResponse(code, description string) yahoo.Response {
	return yahoo.Response{
		Chart: yahoo.Chart{
			Result: []yahoo.Result{},
			Error:  &yahoo.ChartError{Code: code, Description: description},
		},
	}
}
