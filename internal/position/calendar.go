package position

import (
	"slices"

	"github.com/shopspring/decimal"

	"github.com/ndewijer/InvestPro-Backend/internal/model"
)

// DividendDays returns the distinct days, ascending, that carry at least one projection.
func DividendDays(projections []model.DividendProjection) []int {
	days := make([]int, 0, len(projections))
	for _, p := range projections {
		if !slices.Contains(days, p.Day) {
			days = append(days, p.Day)
		}
	}
	slices.Sort(days)
	return days
}

// GroupByDay indexes projections by calendar day, keeping their input order within a day.
func GroupByDay(projections []model.DividendProjection) map[int][]model.DividendProjection {
	grouped := make(map[int][]model.DividendProjection)
	for _, p := range projections {
		grouped[p.Day] = append(grouped[p.Day], p)
	}
	return grouped
}

// PayoutsForDay computes the expected cash of every projection falling on day.
// The payout is amount per unit times the quantity currently held; tickers that are
// not held (for example sold before the payment) pay zero.
func PayoutsForDay(projections []model.DividendProjection, summaries []model.AssetSummary, day int) ([]model.DividendPayout, decimal.Decimal) {
	payouts := make([]model.DividendPayout, 0)
	total := decimal.Zero

	for _, p := range GroupByDay(projections)[day] {
		quantity := decimal.Zero
		if s, ok := Find(summaries, p.Ticker); ok {
			quantity = s.TotalQuantity
		}
		payout := decimal.NewFromFloat(p.Amount).Mul(quantity)
		total = total.Add(payout)

		payouts = append(payouts, model.DividendPayout{
			Ticker:   p.Ticker,
			Day:      p.Day,
			Amount:   p.Amount,
			Type:     p.Type,
			Status:   p.Status,
			Quantity: quantity.InexactFloat64(),
			Total:    payout.InexactFloat64(),
		})
	}

	return payouts, total
}
