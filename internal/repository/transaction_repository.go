package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/ndewijer/InvestPro-Backend/internal/apperrors"
	"github.com/ndewijer/InvestPro-Backend/internal/model"
)

// TransactionRepository provides data access methods for the transaction table.
// Rows are always returned in insertion order; the aggregator relies on it to break
// ties between transactions that share a date.
type TransactionRepository struct {
	db *sql.DB
}

// NewTransactionRepository creates a new TransactionRepository with the provided database connection.
func NewTransactionRepository(db *sql.DB) *TransactionRepository {
	return &TransactionRepository{db: db}
}

const transactionColumns = `id, date, ticker, type, asset_type, quantity, price, fees, broker, created_at`

// queryer is satisfied by both *sql.DB and *sql.Tx.
type queryer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

// GetTransactions retrieves every transaction in insertion order.
// Returns an empty slice when the ledger is empty.
func (r *TransactionRepository) GetTransactions() ([]model.Transaction, error) {
	query := `
		SELECT ` + transactionColumns + `
		FROM "transaction"
		ORDER BY rowid ASC
	`

	rows, err := r.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("failed to query transaction table: %w", err)
	}
	defer rows.Close()

	transactions := []model.Transaction{}

	for rows.Next() {
		t, err := scanTransaction(rows)
		if err != nil {
			return nil, err
		}
		transactions = append(transactions, t)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating transaction table: %w", err)
	}

	return transactions, nil
}

// GetTransaction retrieves a single transaction by ID.
// Returns apperrors.ErrTransactionNotFound when no row matches.
func (r *TransactionRepository) GetTransaction(transactionID string) (model.Transaction, error) {
	query := `
		SELECT ` + transactionColumns + `
		FROM "transaction"
		WHERE id = ?
	`

	t, err := scanTransaction(r.db.QueryRow(query, transactionID))
	if errors.Is(err, sql.ErrNoRows) {
		return model.Transaction{}, apperrors.ErrTransactionNotFound
	}
	if err != nil {
		return model.Transaction{}, err
	}
	return t, nil
}

// InsertTransaction appends a transaction to the ledger.
func (r *TransactionRepository) InsertTransaction(ctx context.Context, t *model.Transaction) error {
	return insertTransaction(ctx, r.db, t)
}

// DeleteTransaction removes a transaction by ID.
// Returns apperrors.ErrTransactionNotFound when no row was deleted.
func (r *TransactionRepository) DeleteTransaction(ctx context.Context, transactionID string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM "transaction" WHERE id = ?`, transactionID)
	if err != nil {
		return fmt.Errorf("failed to delete transaction: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read affected rows: %w", err)
	}
	if affected == 0 {
		return apperrors.ErrTransactionNotFound
	}
	return nil
}

// ReplaceAll swaps the whole ledger for the given transactions in a single database transaction.
// The given order becomes the new insertion order.
func (r *TransactionRepository) ReplaceAll(ctx context.Context, transactions []model.Transaction) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	if _, err := tx.ExecContext(ctx, `DELETE FROM "transaction"`); err != nil {
		return fmt.Errorf("failed to clear transaction table: %w", err)
	}

	for i := range transactions {
		if err := insertTransaction(ctx, tx, &transactions[i]); err != nil {
			return err
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction import: %w", err)
	}
	return nil
}

func insertTransaction(ctx context.Context, q queryer, t *model.Transaction) error {
	query := `
		INSERT INTO "transaction" (` + transactionColumns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	_, err := q.ExecContext(ctx, query,
		t.ID,
		t.Date.Format("2006-01-02"),
		t.Ticker,
		string(t.Type),
		string(t.AssetType),
		t.Quantity,
		t.Price,
		t.Fees,
		t.Broker,
		t.CreatedAt.UTC().Format("2006-01-02T15:04:05.000000000Z"),
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: transaction %s", apperrors.ErrDuplicateEntry, t.ID)
		}
		return fmt.Errorf("failed to insert transaction: %w", err)
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanTransaction(row rowScanner) (model.Transaction, error) {
	var dateStr, createdAtStr string
	var txType, assetType string
	var t model.Transaction

	err := row.Scan(
		&t.ID,
		&dateStr,
		&t.Ticker,
		&txType,
		&assetType,
		&t.Quantity,
		&t.Price,
		&t.Fees,
		&t.Broker,
		&createdAtStr,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return model.Transaction{}, err
	}
	if err != nil {
		return model.Transaction{}, fmt.Errorf("failed to scan transaction table results: %w", err)
	}

	t.Type = model.TransactionType(txType)
	t.AssetType = model.AssetType(assetType)

	t.Date, err = ParseTime(dateStr)
	if err != nil || t.Date.IsZero() {
		return model.Transaction{}, fmt.Errorf("failed to parse date: %w", err)
	}

	t.CreatedAt, err = ParseTime(createdAtStr)
	if err != nil {
		return model.Transaction{}, fmt.Errorf("failed to parse created_at: %w", err)
	}

	return t, nil
}
