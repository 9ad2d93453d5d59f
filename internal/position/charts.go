package position

import (
	"cmp"
	"slices"

	"github.com/shopspring/decimal"

	"github.com/ndewijer/InvestPro-Backend/internal/model"
)

// DefaultTopPositions is the number of positions shown on the largest-positions chart.
const DefaultTopPositions = 5

// TickerTotal is an amount attributed to one ticker.
type TickerTotal struct {
	Ticker string
	Total  decimal.Decimal
}

// AssetTypeTotal is an amount attributed to one asset classification.
type AssetTypeTotal struct {
	AssetType model.AssetType
	Total     decimal.Decimal
}

// DividendsByTicker sums the projected payouts of every held ticker.
// Tickers without a positive total are omitted; the result is sorted by total, descending.
func DividendsByTicker(projections []model.DividendProjection, summaries []model.AssetSummary) []TickerTotal {
	totals := make([]TickerTotal, 0, len(summaries))

	for _, s := range summaries {
		sum := decimal.Zero
		for _, p := range projections {
			if p.Ticker == s.Ticker {
				sum = sum.Add(decimal.NewFromFloat(p.Amount).Mul(s.TotalQuantity))
			}
		}
		if sum.IsPositive() {
			totals = append(totals, TickerTotal{Ticker: s.Ticker, Total: sum})
		}
	}

	slices.SortStableFunc(totals, func(a, b TickerTotal) int {
		return b.Total.Cmp(a.Total)
	})
	return totals
}

// ExposureByAssetType sums invested capital per asset type, sorted by total, descending.
func ExposureByAssetType(summaries []model.AssetSummary) []AssetTypeTotal {
	exposure := make([]AssetTypeTotal, 0)

	for _, s := range summaries {
		idx := slices.IndexFunc(exposure, func(e AssetTypeTotal) bool { return e.AssetType == s.AssetType })
		if idx < 0 {
			exposure = append(exposure, AssetTypeTotal{AssetType: s.AssetType, Total: s.TotalInvested})
			continue
		}
		exposure[idx].Total = exposure[idx].Total.Add(s.TotalInvested)
	}

	slices.SortStableFunc(exposure, func(a, b AssetTypeTotal) int {
		return b.Total.Cmp(a.Total)
	})
	return exposure
}

// TopPositions returns at most n summaries with the largest invested capital.
// Ties are broken by ticker so the result is deterministic.
func TopPositions(summaries []model.AssetSummary, n int) []model.AssetSummary {
	sorted := slices.Clone(summaries)
	slices.SortFunc(sorted, func(a, b model.AssetSummary) int {
		if c := b.TotalInvested.Cmp(a.TotalInvested); c != 0 {
			return c
		}
		return cmp.Compare(a.Ticker, b.Ticker)
	})

	if n >= 0 && len(sorted) > n {
		sorted = sorted[:n]
	}
	return sorted
}
