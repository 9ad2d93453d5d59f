package yahoo

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"
)

// DefaultBaseURL is the Yahoo Finance chart endpoint.
const DefaultBaseURL = "https://query1.finance.yahoo.com/v8/finance/chart"

// FinanceClient fetches daily price charts from the Yahoo Finance API.
type FinanceClient struct {
	httpClient *http.Client
	baseURL    string
}

// NewFinanceClient creates a new Yahoo Finance client against the public endpoint.
func NewFinanceClient() *FinanceClient {
	return NewFinanceClientWithURL(DefaultBaseURL)
}

// NewFinanceClientWithURL creates a client against a custom chart endpoint.
// Tests point it at an httptest server.
func NewFinanceClientWithURL(baseURL string) *FinanceClient {
	return &FinanceClient{
		httpClient: &http.Client{Timeout: 15 * time.Second},
		baseURL:    baseURL,
	}
}

// QueryYahooFiveDaySymbol fetches the last 5 days of daily price data for a symbol.
// Five days guarantees at least two trading sessions, enough to compute the daily change.
//
// Returns an error if the HTTP request fails, Yahoo reports an error, or no result is returned.
func (c *FinanceClient) QueryYahooFiveDaySymbol(ctx context.Context, symbol string) (Response, error) {
	endpoint := fmt.Sprintf("%s/%s?interval=1d&range=5d", c.baseURL, url.PathEscape(symbol))
	result, err := c.queryYahoo(ctx, endpoint)
	if err != nil {
		return Response{}, err
	}
	if len(result.Chart.Result) == 0 {
		return Response{}, fmt.Errorf("no results returned for symbol %s", symbol)
	}

	return result, nil
}

// ParseChart converts a raw Yahoo Finance response into a PriceChart.
// Days with a null close are skipped; other null fields read as zero.
//
// Returns an error if the response has no result, no timestamps, or mismatched series lengths.
func (c *FinanceClient) ParseChart(yahooResult Response) (PriceChart, error) {
	if len(yahooResult.Chart.Result) == 0 {
		return PriceChart{}, fmt.Errorf("no chart result returned")
	}
	result := yahooResult.Chart.Result[0]

	if len(result.Timestamp) == 0 {
		return PriceChart{}, fmt.Errorf("no price data returned")
	}
	if len(result.Indicators.Quote) == 0 || len(result.Indicators.Quote[0].Close) == 0 {
		return PriceChart{}, fmt.Errorf("no close prices returned")
	}

	series := result.Indicators.Quote[0]
	if len(series.Close) != len(result.Timestamp) {
		return PriceChart{}, fmt.Errorf("mismatched data lengths")
	}

	indicators := make([]Indicators, 0, len(result.Timestamp))
	for i, ts := range result.Timestamp {
		if series.Close[i] == nil {
			continue
		}
		indicators = append(indicators, Indicators{
			Date:       time.Unix(ts, 0).UTC(),
			PriceClose: *series.Close[i],
			PriceOpen:  floatAt(series.Open, i),
			PriceHigh:  floatAt(series.High, i),
			PriceLow:   floatAt(series.Low, i),
			Volume:     intAt(series.Volume, i),
		})
	}

	return PriceChart{
		Symbol:             result.Meta.Symbol,
		Currency:           result.Meta.Currency,
		ExchangeName:       result.Meta.ExchangeName,
		LongName:           result.Meta.LongName,
		RegularMarketPrice: result.Meta.RegularMarketPrice,
		Indicators:         indicators,
	}, nil
}

// Latest returns the current price of the chart and its percent change against the previous session.
// The live market price wins over the last daily close when Yahoo provides one.
func (c PriceChart) Latest(previousCloseHint float64) (LatestPrice, error) {
	n := len(c.Indicators)

	price := c.RegularMarketPrice
	if price <= 0 && n > 0 {
		price = c.Indicators[n-1].PriceClose
	}
	if price <= 0 {
		return LatestPrice{}, fmt.Errorf("no price available for %s", c.Symbol)
	}

	previous := previousCloseHint
	if n >= 2 {
		previous = c.Indicators[n-2].PriceClose
	}

	latest := LatestPrice{
		Symbol:        c.Symbol,
		Price:         price,
		PreviousClose: previous,
	}
	if previous > 0 {
		latest.ChangePercent = (price - previous) / previous * 100
	}
	return latest, nil
}

// LatestQuote fetches a symbol and reduces it to its latest price.
func (c *FinanceClient) LatestQuote(ctx context.Context, symbol string) (LatestPrice, error) {
	resp, err := c.QueryYahooFiveDaySymbol(ctx, symbol)
	if err != nil {
		return LatestPrice{}, err
	}

	chart, err := c.ParseChart(resp)
	if err != nil {
		return LatestPrice{}, fmt.Errorf("failed to parse chart for %s: %w", symbol, err)
	}

	return chart.Latest(resp.Chart.Result[0].Meta.ChartPreviousClose)
}

// queryYahoo executes a GET against Yahoo Finance and decodes the chart response.
// A browser User-Agent is required; Yahoo rejects requests without one.
func (c *FinanceClient) queryYahoo(ctx context.Context, endpoint string) (Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return Response{}, err
	}

	req.Header.Set("User-Agent", "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36")
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return Response{}, err
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return Response{}, err
	}

	var response Response
	if err := json.Unmarshal(data, &response); err != nil {
		return Response{}, fmt.Errorf("failed to decode yahoo response (status %d): %w", resp.StatusCode, err)
	}

	if response.Chart.Error != nil {
		return response, fmt.Errorf("yahoo error: %s: %s", response.Chart.Error.Code, response.Chart.Error.Description)
	}

	return response, nil
}

func floatAt(values []*float64, i int) float64 {
	if i < len(values) && values[i] != nil {
		return *values[i]
	}
	return 0
}

func intAt(values []*int64, i int) int64 {
	if i < len(values) && values[i] != nil {
		return *values[i]
	}
	return 0
}
