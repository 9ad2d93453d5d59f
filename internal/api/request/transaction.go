package request

// CreateTransactionRequest is the body of POST /api/transaction.
type CreateTransactionRequest struct {
	Date      string  `json:"date"`
	Ticker    string  `json:"ticker"`
	Type      string  `json:"type"`
	AssetType string  `json:"assetType"`
	Quantity  float64 `json:"quantity"`
	Price     float64 `json:"price"`
	Fees      float64 `json:"fees"`
	Broker    string  `json:"broker"`
}

// LedgerImport is the plain JSON form accepted by POST /api/transaction/import.
// ID is kept when it is a valid UUID not used by another entry.
type LedgerImport struct {
	Transactions []ImportedTransaction `json:"transactions"`
}

// ImportedTransaction is a single ledger entry of an import.
type ImportedTransaction struct {
	ID string `json:"id"`
	CreateTransactionRequest
}
