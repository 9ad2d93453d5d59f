package position

import (
	"github.com/shopspring/decimal"

	"github.com/ndewijer/InvestPro-Backend/internal/model"
)

var hundred = decimal.NewFromInt(100)

// Totals reduces summaries into the dashboard KPIs.
// Patrimony values each holding at its current price; the profit percentage is zero when
// nothing is invested.
func Totals(summaries []model.AssetSummary) model.PortfolioTotals {
	patrimony := decimal.Zero
	invested := decimal.Zero

	for _, s := range summaries {
		patrimony = patrimony.Add(s.MarketValue())
		invested = invested.Add(s.TotalInvested)
	}

	profit := patrimony.Sub(invested)
	percentage := decimal.Zero
	if invested.IsPositive() {
		percentage = profit.Div(invested).Mul(hundred)
	}

	return model.PortfolioTotals{
		Patrimony:        patrimony,
		Invested:         invested,
		Profit:           profit,
		ProfitPercentage: percentage,
	}
}

// Find returns the summary for ticker, if held.
func Find(summaries []model.AssetSummary, ticker string) (model.AssetSummary, bool) {
	for _, s := range summaries {
		if s.Ticker == ticker {
			return s, true
		}
	}
	return model.AssetSummary{}, false
}

// Tickers returns the tickers of the given summaries in the same order.
func Tickers(summaries []model.AssetSummary) []string {
	tickers := make([]string, len(summaries))
	for i, s := range summaries {
		tickers[i] = s.Ticker
	}
	return tickers
}
