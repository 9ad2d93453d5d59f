package model

import "time"

// DividendStatus tells whether a payment date is a forecast or has been announced.
type DividendStatus string

const (
	DividendForecast  DividendStatus = "previsto"
	DividendConfirmed DividendStatus = "confirmado"
)

// Quote is the live price and daily percent change of a ticker.
type Quote struct {
	Ticker        string  `json:"ticker"`
	Price         float64 `json:"price"`
	ChangePercent float64 `json:"changePercent"`
	Source        string  `json:"source,omitempty"`
}

// DividendProjection is an expected cash distribution per unit held.
// Day is relative to the month the projection was fetched for.
type DividendProjection struct {
	Ticker string         `json:"ticker"`
	Day    int            `json:"day"`
	Amount float64        `json:"amount"`
	Type   string         `json:"type"`
	Status DividendStatus `json:"status"`
}

// NewsItem is a recent headline about a ticker.
type NewsItem struct {
	Date    string `json:"date"`
	Ticker  string `json:"ticker"`
	Title   string `json:"title"`
	Summary string `json:"summary"`
	Source  string `json:"source"`
}

// MarketSnapshot is the joined result of the last market refresh.
type MarketSnapshot struct {
	Quotes      []Quote
	Projections []DividendProjection
	Month       string // YYYY-MM the projections refer to
	UpdatedAt   *time.Time
}

// QuoteMap indexes quotes by ticker. Later entries win on duplicates.
func (s MarketSnapshot) QuoteMap() map[string]Quote {
	m := make(map[string]Quote, len(s.Quotes))
	for _, q := range s.Quotes {
		m[q.Ticker] = q
	}
	return m
}

// DividendPayout is the expected cash for one projection given the quantity held.
type DividendPayout struct {
	Ticker   string         `json:"ticker"`
	Day      int            `json:"day"`
	Amount   float64        `json:"amount"`
	Type     string         `json:"type"`
	Status   DividendStatus `json:"status"`
	Quantity float64        `json:"quantity"`
	Total    float64        `json:"total"`
}

// DividendCalendarResponse lists the days of the month that have at least one payment.
type DividendCalendarResponse struct {
	Month       string               `json:"month"`
	Days        []int                `json:"days"`
	Projections []DividendProjection `json:"projections"`
	LastUpdate  *time.Time           `json:"lastUpdate"`
}

// DividendDayResponse lists the payouts of a single calendar day.
type DividendDayResponse struct {
	Day     int              `json:"day"`
	Payouts []DividendPayout `json:"payouts"`
	Total   float64          `json:"total"`
}

// NewsGroup holds the news items published on one date.
type NewsGroup struct {
	Date  string     `json:"date"`
	Items []NewsItem `json:"items"`
}

// TaxReportResponse carries the generated "Bens e Direitos" text.
type TaxReportResponse struct {
	Report    string `json:"report"`
	Generated bool   `json:"generated"`
}

// RefreshResponse reports the outcome of a market refresh.
type RefreshResponse struct {
	Tickers     int       `json:"tickers"`
	Quotes      int       `json:"quotes"`
	Projections int       `json:"projections"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// QuotesResponse lists the stored live quotes.
type QuotesResponse struct {
	Quotes     []Quote    `json:"quotes"`
	LastUpdate *time.Time `json:"lastUpdate"`
}
