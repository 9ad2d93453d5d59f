package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// AssetSummary is the derived position of one ticker after folding its transactions.
// It is recomputed on every aggregation and never persisted.
type AssetSummary struct {
	Ticker        string
	AssetType     AssetType
	TotalQuantity decimal.Decimal
	AveragePrice  decimal.Decimal
	TotalInvested decimal.Decimal
	CurrentPrice  decimal.Decimal // live price, or AveragePrice when no quote is known
	Variation     decimal.Decimal // live daily change in percent, zero when no quote is known
	HasQuote      bool
}

// MarketValue is TotalQuantity valued at CurrentPrice.
func (a AssetSummary) MarketValue() decimal.Decimal {
	return a.TotalQuantity.Mul(a.CurrentPrice)
}

// PortfolioTotals holds the dashboard KPIs derived from a set of summaries.
type PortfolioTotals struct {
	Patrimony        decimal.Decimal
	Invested         decimal.Decimal
	Profit           decimal.Decimal
	ProfitPercentage decimal.Decimal
}

// PositionResponse is the API representation of an AssetSummary.
type PositionResponse struct {
	Ticker           string    `json:"ticker"`
	AssetType        AssetType `json:"assetType"`
	TotalQuantity    float64   `json:"totalQuantity"`
	AveragePrice     float64   `json:"averagePrice"`
	TotalInvested    float64   `json:"totalInvested"`
	CurrentPrice     float64   `json:"currentPrice"`
	Variation        float64   `json:"variation"`
	HasQuote         bool      `json:"hasQuote"`
	MarketValue      float64   `json:"marketValue"`
	Profit           float64   `json:"profit"`
	ProfitPercentage float64   `json:"profitPercentage"`
}

// TotalsResponse is the API representation of PortfolioTotals.
type TotalsResponse struct {
	Patrimony        float64 `json:"patrimony"`
	Invested         float64 `json:"invested"`
	Profit           float64 `json:"profit"`
	ProfitPercentage float64 `json:"profitPercentage"`
}

// PortfolioSummaryResponse is the dashboard payload: positions, KPIs and data freshness.
type PortfolioSummaryResponse struct {
	Positions  []PositionResponse `json:"positions"`
	Totals     TotalsResponse     `json:"totals"`
	LastUpdate *time.Time         `json:"lastUpdate"`
}

// TickerAmount is a single bar of a per-ticker chart.
type TickerAmount struct {
	Ticker string  `json:"ticker"`
	Total  float64 `json:"total"`
}

// SegmentExposure is one slice of the exposure-by-asset-type chart.
type SegmentExposure struct {
	AssetType AssetType `json:"assetType"`
	Value     float64   `json:"value"`
}

// ChartsResponse bundles the chart series shown on the analysis view.
type ChartsResponse struct {
	DividendsByTicker []TickerAmount     `json:"dividendsByTicker"`
	Exposure          []SegmentExposure  `json:"exposure"`
	TopPositions      []PositionResponse `json:"topPositions"`
}
