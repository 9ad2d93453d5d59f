package position

import (
	"slices"

	"github.com/shopspring/decimal"

	"github.com/ndewijer/InvestPro-Backend/internal/model"
)

// Aggregate folds transactions into one AssetSummary per ticker with a strictly positive
// holding. The result order is unspecified.
//
// Transactions are processed by ascending date; transactions sharing a date keep their
// input order, so callers should pass the ledger in insertion order.
//
// Fold rules per ticker:
//   - BUY adds price*quantity + fees to the cost basis and quantity to the holding, then
//     recomputes the average price as basis / quantity.
//   - SELL removes averagePrice*quantity from the basis and quantity from the holding.
//     The sale price and fees do not touch the basis and the average price is unchanged.
//   - A SELL for a ticker with no open position is ignored.
//   - A SELL that empties or over-sells the holding resets quantity and basis to zero
//     together, so a later BUY starts from a clean basis.
//
// Quotes are matched by exact ticker. A ticker without a quote (or with a non-positive
// price) is valued at its average price with zero variation. A nil map is valid.
func Aggregate(transactions []model.Transaction, quotes map[string]model.Quote) []model.AssetSummary {
	sorted := slices.Clone(transactions)
	slices.SortStableFunc(sorted, func(a, b model.Transaction) int {
		return a.Date.Compare(b.Date)
	})

	running := make(map[string]*model.AssetSummary)
	order := make([]string, 0)

	for _, tx := range sorted {
		quantity := decimal.NewFromFloat(tx.Quantity)
		existing, known := running[tx.Ticker]

		if !known {
			if tx.Type != model.TransactionBuy {
				continue
			}
			invested := decimal.NewFromFloat(tx.Price).Mul(quantity).Add(decimal.NewFromFloat(tx.Fees))
			running[tx.Ticker] = &model.AssetSummary{
				Ticker:        tx.Ticker,
				AssetType:     tx.AssetType,
				TotalQuantity: quantity,
				TotalInvested: invested,
				AveragePrice:  averagePrice(invested, quantity),
			}
			order = append(order, tx.Ticker)
			continue
		}

		existing.AssetType = tx.AssetType

		switch tx.Type {
		case model.TransactionBuy:
			cost := decimal.NewFromFloat(tx.Price).Mul(quantity).Add(decimal.NewFromFloat(tx.Fees))
			existing.TotalInvested = existing.TotalInvested.Add(cost)
			existing.TotalQuantity = existing.TotalQuantity.Add(quantity)
			existing.AveragePrice = averagePrice(existing.TotalInvested, existing.TotalQuantity)
		case model.TransactionSell:
			existing.TotalQuantity = existing.TotalQuantity.Sub(quantity)
			existing.TotalInvested = existing.TotalInvested.Sub(existing.AveragePrice.Mul(quantity))
			if !existing.TotalQuantity.IsPositive() {
				existing.TotalQuantity = decimal.Zero
				existing.TotalInvested = decimal.Zero
			} else if existing.TotalInvested.IsNegative() {
				existing.TotalInvested = decimal.Zero
			}
		}
	}

	summaries := make([]model.AssetSummary, 0, len(order))
	for _, ticker := range order {
		s := *running[ticker]
		if !s.TotalQuantity.IsPositive() {
			continue
		}

		s.CurrentPrice = s.AveragePrice
		s.Variation = decimal.Zero
		if q, ok := quotes[ticker]; ok && q.Price > 0 {
			s.CurrentPrice = decimal.NewFromFloat(q.Price)
			s.Variation = decimal.NewFromFloat(q.ChangePercent)
			s.HasQuote = true
		}

		summaries = append(summaries, s)
	}

	return summaries
}

// averagePrice guards the division for a zero quantity, which only a zero-quantity BUY
// after a full sale could produce.
func averagePrice(invested, quantity decimal.Decimal) decimal.Decimal {
	if quantity.IsZero() {
		return decimal.Zero
	}
	return invested.Div(quantity)
}
