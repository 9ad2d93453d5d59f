package market

import (
	"math"
	"strings"

	"github.com/ndewijer/InvestPro-Backend/internal/model"
)

// NormalizeTicker trims and upper-cases a ticker.
func NormalizeTicker(ticker string) string {
	return strings.ToUpper(strings.TrimSpace(ticker))
}

// SanitizeQuotes normalises tickers and drops entries without a ticker, with a non-finite number
// or with a price that is not positive. Such a price reads as unknown when aggregating, so
// dropping it lets a fallback source fill the ticker.
// When a ticker appears twice the first entry is kept.
func SanitizeQuotes(quotes []model.Quote) []model.Quote {
	out := make([]model.Quote, 0, len(quotes))
	seen := make(map[string]bool, len(quotes))

	for _, q := range quotes {
		q.Ticker = NormalizeTicker(q.Ticker)
		if q.Ticker == "" || seen[q.Ticker] || !finite(q.Price) || q.Price <= 0 {
			continue
		}
		if !finite(q.ChangePercent) {
			q.ChangePercent = 0
		}
		seen[q.Ticker] = true
		out = append(out, q)
	}
	return out
}

// SanitizeProjections normalises tickers and statuses and drops projections whose
// day is outside 1-31 or whose amount is negative or not finite.
// Any status other than "confirmado" is read as a forecast.
func SanitizeProjections(projections []model.DividendProjection) []model.DividendProjection {
	out := make([]model.DividendProjection, 0, len(projections))

	for _, p := range projections {
		p.Ticker = NormalizeTicker(p.Ticker)
		if p.Ticker == "" || p.Day < 1 || p.Day > 31 || !finite(p.Amount) || p.Amount < 0 {
			continue
		}

		if strings.EqualFold(strings.TrimSpace(string(p.Status)), string(model.DividendConfirmed)) {
			p.Status = model.DividendConfirmed
		} else {
			p.Status = model.DividendForecast
		}
		p.Type = strings.TrimSpace(p.Type)

		out = append(out, p)
	}
	return out
}

// SanitizeNews trims every field and drops items without a title.
func SanitizeNews(items []model.NewsItem) []model.NewsItem {
	out := make([]model.NewsItem, 0, len(items))

	for _, n := range items {
		n.Title = strings.TrimSpace(n.Title)
		if n.Title == "" {
			continue
		}
		n.Ticker = NormalizeTicker(n.Ticker)
		n.Date = strings.TrimSpace(n.Date)
		n.Summary = strings.TrimSpace(n.Summary)
		n.Source = strings.TrimSpace(n.Source)
		out = append(out, n)
	}
	return out
}

// MissingTickers returns the tickers that have no quote, in request order.
func MissingTickers(tickers []string, quotes []model.Quote) []string {
	have := make(map[string]bool, len(quotes))
	for _, q := range quotes {
		have[q.Ticker] = true
	}

	var missing []string
	for _, t := range tickers {
		if !have[t] {
			missing = append(missing, t)
		}
	}
	return missing
}

func finite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}
