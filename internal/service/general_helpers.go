package service

import (
	"math"

	"github.com/shopspring/decimal"

	"github.com/ndewijer/InvestPro-Backend/internal/model"
)

// RoundingPrecision is the scale applied to monetary values in API responses.
const RoundingPrecision = 100.0

// quantityPlaces is the number of decimals kept for quantities (fractional crypto units).
const quantityPlaces = 8

// round rounds a float64 value to two decimal places using the package RoundingPrecision constant.
//
// Example:
//
//	round(123.456789)  // returns 123.46
//	round(1.994)       // returns 1.99
func round(value float64) float64 {
	return math.Round(value*RoundingPrecision) / RoundingPrecision
}

// money converts a decimal amount to a float rounded to cents.
func money(d decimal.Decimal) float64 {
	return d.Round(2).InexactFloat64()
}

// quantity converts a decimal quantity to a float rounded to quantityPlaces.
func quantity(d decimal.Decimal) float64 {
	return d.Round(quantityPlaces).InexactFloat64()
}

// newPositionResponse renders an AssetSummary with its derived market value and profit.
func newPositionResponse(s model.AssetSummary) model.PositionResponse {
	marketValue := s.MarketValue()
	profit := marketValue.Sub(s.TotalInvested)

	profitPercentage := decimal.Zero
	if s.TotalInvested.IsPositive() {
		profitPercentage = profit.Div(s.TotalInvested).Mul(decimal.NewFromInt(100))
	}

	return model.PositionResponse{
		Ticker:           s.Ticker,
		AssetType:        s.AssetType,
		TotalQuantity:    quantity(s.TotalQuantity),
		AveragePrice:     money(s.AveragePrice),
		TotalInvested:    money(s.TotalInvested),
		CurrentPrice:     money(s.CurrentPrice),
		Variation:        money(s.Variation),
		HasQuote:         s.HasQuote,
		MarketValue:      money(marketValue),
		Profit:           money(profit),
		ProfitPercentage: money(profitPercentage),
	}
}

func newPositionResponses(summaries []model.AssetSummary) []model.PositionResponse {
	out := make([]model.PositionResponse, 0, len(summaries))
	for _, s := range summaries {
		out = append(out, newPositionResponse(s))
	}
	return out
}

func newTotalsResponse(t model.PortfolioTotals) model.TotalsResponse {
	return model.TotalsResponse{
		Patrimony:        money(t.Patrimony),
		Invested:         money(t.Invested),
		Profit:           money(t.Profit),
		ProfitPercentage: money(t.ProfitPercentage),
	}
}
