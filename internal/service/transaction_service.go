package service

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/phuslu/log"

	"github.com/ndewijer/InvestPro-Backend/internal/api/request"
	"github.com/ndewijer/InvestPro-Backend/internal/apperrors"
	"github.com/ndewijer/InvestPro-Backend/internal/backup"
	"github.com/ndewijer/InvestPro-Backend/internal/model"
	"github.com/ndewijer/InvestPro-Backend/internal/repository"
	"github.com/ndewijer/InvestPro-Backend/internal/validation"
)

// ledgerFormatVersion is written to every export.
const ledgerFormatVersion = 1

// TransactionService handles the transaction ledger: create, delete, list, and whole-ledger export/import.
type TransactionService struct {
	transactionRepo *repository.TransactionRepository
	sealer          *backup.Sealer
}

// NewTransactionService creates a new TransactionService with the provided repository dependencies.
// sealer may be nil, in which case exports are plain JSON.
func NewTransactionService(
	transactionRepo *repository.TransactionRepository,
	sealer *backup.Sealer,
) *TransactionService {
	return &TransactionService{
		transactionRepo: transactionRepo,
		sealer:          sealer,
	}
}

// GetTransactions retrieves every transaction in insertion order.
func (s *TransactionService) GetTransactions() ([]model.TransactionResponse, error) {
	transactions, err := s.transactionRepo.GetTransactions()
	if err != nil {
		return nil, err
	}

	out := make([]model.TransactionResponse, 0, len(transactions))
	for _, t := range transactions {
		out = append(out, model.NewTransactionResponse(t))
	}
	return out, nil
}

// GetTransaction retrieves a single transaction by its ID.
func (s *TransactionService) GetTransaction(transactionID string) (model.TransactionResponse, error) {
	t, err := s.transactionRepo.GetTransaction(transactionID)
	if err != nil {
		return model.TransactionResponse{}, err
	}
	return model.NewTransactionResponse(t), nil
}

// CreateTransaction appends a validated request to the ledger.
// The ticker is trimmed and upper-cased and a fresh UUID is assigned.
func (s *TransactionService) CreateTransaction(ctx context.Context, req request.CreateTransactionRequest) (model.TransactionResponse, error) {
	transaction, err := newTransaction(uuid.New().String(), req)
	if err != nil {
		return model.TransactionResponse{}, err
	}

	if err := s.transactionRepo.InsertTransaction(ctx, &transaction); err != nil {
		return model.TransactionResponse{}, fmt.Errorf("failed to create transaction: %w", err)
	}

	log.Info().
		Str("id", transaction.ID).
		Str("ticker", transaction.Ticker).
		Str("type", string(transaction.Type)).
		Msg("Transaction created")

	return model.NewTransactionResponse(transaction), nil
}

// DeleteTransaction removes a transaction from the ledger.
// Returns apperrors.ErrTransactionNotFound if the ID is unknown.
func (s *TransactionService) DeleteTransaction(ctx context.Context, transactionID string) error {
	if err := s.transactionRepo.DeleteTransaction(ctx, transactionID); err != nil {
		return err
	}

	log.Info().Str("id", transactionID).Msg("Transaction deleted")
	return nil
}

// ledgerExport is the plain JSON form of an export.
type ledgerExport struct {
	Version      int                         `json:"version"`
	ExportedAt   time.Time                   `json:"exportedAt"`
	Transactions []model.TransactionResponse `json:"transactions"`
}

// ExportLedger serialises the whole ledger. When a backup key is configured the
// result is a fernet token and sealed is true; otherwise it is indented JSON.
func (s *TransactionService) ExportLedger() (data []byte, sealed bool, err error) {
	transactions, err := s.GetTransactions()
	if err != nil {
		return nil, false, err
	}

	plain, err := json.MarshalIndent(ledgerExport{
		Version:      ledgerFormatVersion,
		ExportedAt:   time.Now().UTC(),
		Transactions: transactions,
	}, "", "  ")
	if err != nil {
		return nil, false, fmt.Errorf("failed to encode ledger: %w", err)
	}

	if !s.sealer.Enabled() {
		return plain, false, nil
	}

	token, err := s.sealer.Seal(plain)
	if err != nil {
		return nil, false, err
	}
	return token, true, nil
}

// ImportLedger replaces the whole ledger with the content of an export.
//
// Accepted inputs:
//   - a fernet token produced by ExportLedger, when a backup key is configured
//   - plain JSON, either an export object or a bare array of transactions, when no key is configured
//
// Every entry is validated; a single invalid entry rejects the whole import.
// IDs are kept when they are valid and unique, otherwise a new one is assigned.
// Returns the number of imported transactions.
func (s *TransactionService) ImportLedger(ctx context.Context, data []byte) (int, error) {
	plain, err := s.openLedger(data)
	if err != nil {
		return 0, err
	}

	entries, err := decodeLedger(plain)
	if err != nil {
		return 0, err
	}

	transactions := make([]model.Transaction, 0, len(entries))
	seen := make(map[string]bool, len(entries))
	for i, entry := range entries {
		if err := validation.ValidateCreateTransaction(entry.CreateTransactionRequest); err != nil {
			return 0, fmt.Errorf("%w: transaction %d: %w", apperrors.ErrInvalidBackup, i, err)
		}

		id := entry.ID
		if validation.ValidateUUID(id) != nil || seen[id] {
			id = uuid.New().String()
		}
		seen[id] = true

		t, err := newTransaction(id, entry.CreateTransactionRequest)
		if err != nil {
			return 0, fmt.Errorf("%w: transaction %d: %w", apperrors.ErrInvalidBackup, i, err)
		}
		transactions = append(transactions, t)
	}

	if err := s.transactionRepo.ReplaceAll(ctx, transactions); err != nil {
		return 0, fmt.Errorf("failed to import ledger: %w", err)
	}

	log.Info().Int("transactions", len(transactions)).Bool("sealed", s.sealer.Enabled()).Msg("Ledger imported")
	return len(transactions), nil
}

func (s *TransactionService) openLedger(data []byte) ([]byte, error) {
	data = bytes.TrimSpace(data)
	isJSON := len(data) > 0 && (data[0] == '{' || data[0] == '[')

	if s.sealer.Enabled() {
		if isJSON {
			return nil, fmt.Errorf("%w: a sealed backup is required", apperrors.ErrInvalidBackup)
		}
		plain, err := s.sealer.Open(data)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", apperrors.ErrInvalidBackup, err)
		}
		return plain, nil
	}

	if !isJSON {
		return nil, apperrors.ErrBackupKeyRequired
	}
	return data, nil
}

func decodeLedger(plain []byte) ([]request.ImportedTransaction, error) {
	plain = bytes.TrimSpace(plain)

	if len(plain) > 0 && plain[0] == '[' {
		var entries []request.ImportedTransaction
		if err := json.Unmarshal(plain, &entries); err != nil {
			return nil, fmt.Errorf("%w: %w", apperrors.ErrInvalidBackup, err)
		}
		return entries, nil
	}

	var ledger request.LedgerImport
	if err := json.Unmarshal(plain, &ledger); err != nil {
		return nil, fmt.Errorf("%w: %w", apperrors.ErrInvalidBackup, err)
	}
	if ledger.Transactions == nil {
		return nil, fmt.Errorf("%w: missing transactions", apperrors.ErrInvalidBackup)
	}
	return ledger.Transactions, nil
}

// newTransaction builds a ledger entry from an already validated request.
func newTransaction(id string, req request.CreateTransactionRequest) (model.Transaction, error) {
	date, err := time.Parse("2006-01-02", req.Date)
	if err != nil {
		return model.Transaction{}, err
	}

	return model.Transaction{
		ID:        id,
		Date:      date,
		Ticker:    strings.ToUpper(strings.TrimSpace(req.Ticker)),
		Type:      model.TransactionType(strings.ToUpper(strings.TrimSpace(req.Type))),
		AssetType: model.AssetType(strings.ToUpper(strings.TrimSpace(req.AssetType))),
		Quantity:  req.Quantity,
		Price:     req.Price,
		Fees:      req.Fees,
		Broker:    strings.TrimSpace(req.Broker),
		CreatedAt: time.Now().UTC(),
	}, nil
}

// IsImportError reports whether err is caused by the imported content rather than by storage.
func IsImportError(err error) bool {
	return errors.Is(err, apperrors.ErrInvalidBackup) || errors.Is(err, apperrors.ErrBackupKeyRequired)
}
