package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/ndewijer/InvestPro-Backend/internal/model"
)

// MarketRepository persists the result of the last market refresh.
// A snapshot is always replaced as a whole so readers never observe a half-written refresh.
type MarketRepository struct {
	db *sql.DB
}

// NewMarketRepository creates a new MarketRepository with the provided database connection.
func NewMarketRepository(db *sql.DB) *MarketRepository {
	return &MarketRepository{db: db}
}

// SaveSnapshot replaces the stored quotes and dividend projections with the given snapshot.
func (r *MarketRepository) SaveSnapshot(ctx context.Context, snapshot model.MarketSnapshot) error {
	updatedAt := time.Now().UTC()
	if snapshot.UpdatedAt != nil {
		updatedAt = snapshot.UpdatedAt.UTC()
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	if _, err := tx.ExecContext(ctx, `DELETE FROM market_quote`); err != nil {
		return fmt.Errorf("failed to clear market quotes: %w", err)
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM dividend_projection`); err != nil {
		return fmt.Errorf("failed to clear dividend projections: %w", err)
	}

	quoteStmt, err := tx.PrepareContext(ctx, `
		INSERT INTO market_quote (ticker, price, change_percent, source)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(ticker) DO UPDATE SET
			price = excluded.price,
			change_percent = excluded.change_percent,
			source = excluded.source
	`)
	if err != nil {
		return fmt.Errorf("failed to prepare quote insert: %w", err)
	}
	defer quoteStmt.Close()

	for _, q := range snapshot.Quotes {
		if _, err := quoteStmt.ExecContext(ctx, q.Ticker, q.Price, q.ChangePercent, q.Source); err != nil {
			return fmt.Errorf("failed to insert quote for %s: %w", q.Ticker, err)
		}
	}

	projectionStmt, err := tx.PrepareContext(ctx, `
		INSERT INTO dividend_projection (ticker, day, amount, type, status)
		VALUES (?, ?, ?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("failed to prepare projection insert: %w", err)
	}
	defer projectionStmt.Close()

	for _, p := range snapshot.Projections {
		if _, err := projectionStmt.ExecContext(ctx, p.Ticker, p.Day, p.Amount, p.Type, string(p.Status)); err != nil {
			return fmt.Errorf("failed to insert projection for %s: %w", p.Ticker, err)
		}
	}

	_, err = tx.ExecContext(ctx, `
		INSERT INTO market_refresh (id, updated_at, month)
		VALUES (1, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			updated_at = excluded.updated_at,
			month = excluded.month
	`, updatedAt.Format(time.RFC3339Nano), snapshot.Month)
	if err != nil {
		return fmt.Errorf("failed to record refresh time: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit market snapshot: %w", err)
	}
	return nil
}

// LoadSnapshot returns the stored snapshot.
// Before the first refresh it returns an empty snapshot with a nil UpdatedAt.
func (r *MarketRepository) LoadSnapshot(ctx context.Context) (model.MarketSnapshot, error) {
	snapshot := model.MarketSnapshot{
		Quotes:      []model.Quote{},
		Projections: []model.DividendProjection{},
	}

	var updatedAtStr string
	err := r.db.QueryRowContext(ctx, `SELECT updated_at, month FROM market_refresh WHERE id = 1`).
		Scan(&updatedAtStr, &snapshot.Month)
	switch {
	case errors.Is(err, sql.ErrNoRows):
		return snapshot, nil
	case err != nil:
		return model.MarketSnapshot{}, fmt.Errorf("failed to query market_refresh table: %w", err)
	}

	updatedAt, err := ParseTime(updatedAtStr)
	if err != nil {
		return model.MarketSnapshot{}, fmt.Errorf("failed to parse updated_at: %w", err)
	}
	snapshot.UpdatedAt = &updatedAt

	snapshot.Quotes, err = r.loadQuotes(ctx)
	if err != nil {
		return model.MarketSnapshot{}, err
	}

	snapshot.Projections, err = r.loadProjections(ctx)
	if err != nil {
		return model.MarketSnapshot{}, err
	}

	return snapshot, nil
}

func (r *MarketRepository) loadQuotes(ctx context.Context) ([]model.Quote, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT ticker, price, change_percent, source
		FROM market_quote
		ORDER BY ticker ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query market_quote table: %w", err)
	}
	defer rows.Close()

	quotes := []model.Quote{}
	for rows.Next() {
		var q model.Quote
		if err := rows.Scan(&q.Ticker, &q.Price, &q.ChangePercent, &q.Source); err != nil {
			return nil, fmt.Errorf("failed to scan market_quote results: %w", err)
		}
		quotes = append(quotes, q)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating market_quote table: %w", err)
	}
	return quotes, nil
}

func (r *MarketRepository) loadProjections(ctx context.Context) ([]model.DividendProjection, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT ticker, day, amount, type, status
		FROM dividend_projection
		ORDER BY day ASC, id ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query dividend_projection table: %w", err)
	}
	defer rows.Close()

	projections := []model.DividendProjection{}
	for rows.Next() {
		var p model.DividendProjection
		var status string
		if err := rows.Scan(&p.Ticker, &p.Day, &p.Amount, &p.Type, &status); err != nil {
			return nil, fmt.Errorf("failed to scan dividend_projection results: %w", err)
		}
		p.Status = model.DividendStatus(status)
		projections = append(projections, p)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating dividend_projection table: %w", err)
	}
	return projections, nil
}
