package repository

import (
	"context"
	"fmt"

	"github.com/budgetflow/budgetflow/internal/models"
)

// CreateRecurringItem inserts a recurring item and backfills its id.
func (r *Repository) CreateRecurringItem(ctx context.Context, item *models.RecurringItem) error {
	query := `
		INSERT INTO budget.recurring_items (user_id, name, amount, category, merchant, account, note, day_of_month, is_active, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, CURRENT_TIMESTAMP)
		RETURNING id, created_at`
	err := r.db.QueryRowContext(ctx, query,
		item.UserID, item.Name, item.Amount, item.Category, item.Merchant,
		item.Account, item.Note, item.DayOfMonth, item.IsActive).
		Scan(&item.ID, &item.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to create recurring item: %w", err)
	}
	return nil
}

// ListRecurringItems returns a user's recurring items, optionally only the
// active ones.
func (r *Repository) ListRecurringItems(ctx context.Context, userID int64, activeOnly bool) ([]models.RecurringItem, error) {
	query := `
		SELECT id, user_id, name, amount, category, merchant, account, note, day_of_month, is_active, created_at
		FROM budget.recurring_items
		WHERE user_id = $1 AND ($2 = false OR is_active)
		ORDER BY day_of_month, id`
	rows, err := r.db.QueryContext(ctx, query, userID, activeOnly)
	if err != nil {
		return nil, fmt.Errorf("failed to list recurring items: %w", err)
	}
	defer rows.Close()

	var items []models.RecurringItem
	for rows.Next() {
		var item models.RecurringItem
		if err := rows.Scan(&item.ID, &item.UserID, &item.Name, &item.Amount, &item.Category,
			&item.Merchant, &item.Account, &item.Note, &item.DayOfMonth, &item.IsActive, &item.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan recurring item: %w", err)
		}
		items = append(items, item)
	}
	return items, rows.Err()
}

// UpdateRecurringItem updates the mutable fields of a user's recurring item.
func (r *Repository) UpdateRecurringItem(ctx context.Context, item *models.RecurringItem) error {
	query := `
		UPDATE budget.recurring_items
		SET name = $3, amount = $4, category = $5, merchant = $6, account = $7,
		    note = $8, day_of_month = $9, is_active = $10
		WHERE user_id = $1 AND id = $2`
	res, err := r.db.ExecContext(ctx, query,
		item.UserID, item.ID, item.Name, item.Amount, item.Category, item.Merchant,
		item.Account, item.Note, item.DayOfMonth, item.IsActive)
	if err != nil {
		return fmt.Errorf("failed to update recurring item: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

// DeleteRecurringItem removes a user's recurring item by id.
func (r *Repository) DeleteRecurringItem(ctx context.Context, userID, id int64) error {
	res, err := r.db.ExecContext(ctx,
		`DELETE FROM budget.recurring_items WHERE user_id = $1 AND id = $2`, userID, id)
	if err != nil {
		return fmt.Errorf("failed to delete recurring item: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}
