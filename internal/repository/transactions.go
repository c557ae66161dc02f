package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/budgetflow/budgetflow/internal/models"
)

// CreateTransaction inserts a transaction and backfills its generated fields.
func (r *Repository) CreateTransaction(ctx context.Context, tx *models.Transaction) error {
	query := `
		INSERT INTO budget.transactions (user_id, date, amount, category, merchant, account, note, import_batch, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, NULLIF($8, ''), CURRENT_TIMESTAMP)
		RETURNING id, created_at`
	err := r.db.QueryRowContext(ctx, query,
		tx.UserID, tx.Date, tx.Amount, tx.Category, tx.Merchant, tx.Account, tx.Note, tx.ImportBatch).
		Scan(&tx.ID, &tx.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to create transaction: %w", err)
	}
	return nil
}

// ListTransactions returns a user's transactions with date >= from and
// date <= to, oldest first. Zero times disable the corresponding bound.
func (r *Repository) ListTransactions(ctx context.Context, userID int64, from, to time.Time) ([]models.Transaction, error) {
	query := `
		SELECT id, user_id, date, amount, category, merchant, account, note, COALESCE(import_batch, ''), created_at
		FROM budget.transactions
		WHERE user_id = $1
		  AND ($2::timestamptz IS NULL OR date >= $2)
		  AND ($3::timestamptz IS NULL OR date <= $3)
		ORDER BY date, id`
	rows, err := r.db.QueryContext(ctx, query, userID, nullTime(from), nullTime(to))
	if err != nil {
		return nil, fmt.Errorf("failed to list transactions: %w", err)
	}
	defer rows.Close()

	var txs []models.Transaction
	for rows.Next() {
		var tx models.Transaction
		if err := rows.Scan(&tx.ID, &tx.UserID, &tx.Date, &tx.Amount, &tx.Category,
			&tx.Merchant, &tx.Account, &tx.Note, &tx.ImportBatch, &tx.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan transaction: %w", err)
		}
		txs = append(txs, tx)
	}
	return txs, rows.Err()
}

// DeleteTransaction removes a user's transaction by id.
func (r *Repository) DeleteTransaction(ctx context.Context, userID, id int64) error {
	res, err := r.db.ExecContext(ctx,
		`DELETE FROM budget.transactions WHERE user_id = $1 AND id = $2`, userID, id)
	if err != nil {
		return fmt.Errorf("failed to delete transaction: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

// ImportBatchExists reports whether a statement batch was already imported
// for this user, keeping statement re-imports idempotent.
func (r *Repository) ImportBatchExists(ctx context.Context, userID int64, batch string) (bool, error) {
	var exists bool
	err := r.db.QueryRowContext(ctx,
		`SELECT EXISTS (SELECT 1 FROM budget.transactions WHERE user_id = $1 AND import_batch = $2)`,
		userID, batch).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check import batch: %w", err)
	}
	return exists, nil
}

func nullTime(t time.Time) sql.NullTime {
	return sql.NullTime{Time: t, Valid: !t.IsZero()}
}
