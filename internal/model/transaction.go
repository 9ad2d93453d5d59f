package model

import "time"

// TransactionType is the direction of a transaction.
type TransactionType string

const (
	TransactionBuy  TransactionType = "BUY"
	TransactionSell TransactionType = "SELL"
)

// AssetType classifies an instrument for display and grouping. It plays no role in aggregation.
type AssetType string

const (
	AssetEquity         AssetType = "EQUITY"
	AssetRealEstateFund AssetType = "REAL_ESTATE_FUND"
	AssetETF            AssetType = "ETF"
	AssetBDR            AssetType = "BDR"
	AssetCrypto         AssetType = "CRYPTO"
	AssetFixedIncome    AssetType = "FIXED_INCOME"
)

// AssetTypes lists every supported classification in display order.
var AssetTypes = []AssetType{
	AssetEquity,
	AssetRealEstateFund,
	AssetETF,
	AssetBDR,
	AssetCrypto,
	AssetFixedIncome,
}

// Transaction represents a buy or sell of an instrument.
// Transactions are immutable: they are created and deleted, never updated.
type Transaction struct {
	ID        string          `json:"id"`
	Date      time.Time       `json:"date"`
	Ticker    string          `json:"ticker"`
	Type      TransactionType `json:"type"`
	AssetType AssetType       `json:"assetType"`
	Quantity  float64         `json:"quantity"`
	Price     float64         `json:"price"`
	Fees      float64         `json:"fees"`
	Broker    string          `json:"broker"`
	CreatedAt time.Time       `json:"createdAt,omitempty"`
}

// TransactionResponse represents a transaction as returned by the API.
// The date is rendered as YYYY-MM-DD.
type TransactionResponse struct {
	ID        string          `json:"id"`
	Date      string          `json:"date"`
	Ticker    string          `json:"ticker"`
	Type      TransactionType `json:"type"`
	AssetType AssetType       `json:"assetType"`
	Quantity  float64         `json:"quantity"`
	Price     float64         `json:"price"`
	Fees      float64         `json:"fees"`
	Total     float64         `json:"total"`
	Broker    string          `json:"broker"`
}

// NewTransactionResponse converts a Transaction into its API representation.
func NewTransactionResponse(t Transaction) TransactionResponse {
	return TransactionResponse{
		ID:        t.ID,
		Date:      t.Date.Format("2006-01-02"),
		Ticker:    t.Ticker,
		Type:      t.Type,
		AssetType: t.AssetType,
		Quantity:  t.Quantity,
		Price:     t.Price,
		Fees:      t.Fees,
		Total:     t.Quantity*t.Price + t.Fees,
		Broker:    t.Broker,
	}
}
