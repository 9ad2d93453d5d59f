package validation

import (
	"fmt"
	"math"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/ndewijer/InvestPro-Backend/internal/api/request"
	"github.com/ndewijer/InvestPro-Backend/internal/model"
)

// maxTickerLength matches the width of the ticker column.
const maxTickerLength = 20

// ValidateCreateTransaction validates a transaction creation request.
// Checks all required fields and validates their formats and constraints.
//
// Required fields:
//   - date: Must be in YYYY-MM-DD format
//   - ticker: Must be non-empty after trimming, at most 20 characters
//   - type: Must be BUY or SELL (case-insensitive)
//   - assetType: Must be one of model.AssetTypes (case-insensitive)
//   - quantity: Must be positive
//   - price: Must not be negative
//
// Optional fields:
//   - fees: Must not be negative (defaults to 0)
//   - broker: Free text, at most 100 characters
//
// Returns a validation Error with field-specific error messages if validation fails.
func ValidateCreateTransaction(req request.CreateTransactionRequest) error {
	errors := make(map[string]string)

	if strings.TrimSpace(req.Date) == "" {
		errors["date"] = "date is required"
	} else if _, err := time.Parse("2006-01-02", req.Date); err != nil {
		errors["date"] = err.Error()
	}

	ticker := strings.TrimSpace(req.Ticker)
	if ticker == "" {
		errors["ticker"] = "ticker is required"
	} else if len(ticker) > maxTickerLength {
		errors["ticker"] = fmt.Sprintf("ticker must be at most %d characters", maxTickerLength)
	}

	if strings.TrimSpace(req.Type) == "" {
		errors["type"] = "type is required"
	} else if !isTransactionType(req.Type) {
		errors["type"] = fmt.Sprintf("invalid type: %s", req.Type)
	}

	if strings.TrimSpace(req.AssetType) == "" {
		errors["assetType"] = "assetType is required"
	} else if !isAssetType(req.AssetType) {
		errors["assetType"] = fmt.Sprintf("invalid assetType: %s", req.AssetType)
	}

	if !finite(req.Quantity) || req.Quantity <= 0.0 {
		errors["quantity"] = "quantity must be positive"
	}

	if !finite(req.Price) || req.Price < 0.0 {
		errors["price"] = "price must not be negative"
	}

	if !finite(req.Fees) || req.Fees < 0.0 {
		errors["fees"] = "fees must not be negative"
	}

	if len(req.Broker) > 100 {
		errors["broker"] = "broker must be at most 100 characters"
	}

	if len(errors) > 0 {
		return &Error{Fields: errors}
	}

	return nil
}

// ValidateDay parses a calendar day of the month (1-31).
func ValidateDay(raw string) (int, error) {
	day, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return 0, &Error{Fields: map[string]string{"day": fmt.Sprintf("invalid day: %s", raw)}}
	}
	if day < 1 || day > 31 {
		return 0, &Error{Fields: map[string]string{"day": "day must be between 1 and 31"}}
	}
	return day, nil
}

func isTransactionType(value string) bool {
	t := model.TransactionType(strings.ToUpper(strings.TrimSpace(value)))
	return t == model.TransactionBuy || t == model.TransactionSell
}

func isAssetType(value string) bool {
	return slices.Contains(model.AssetTypes, model.AssetType(strings.ToUpper(strings.TrimSpace(value))))
}

func finite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}
