package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/budgetflow/budgetflow/internal/models"
)

const subscriptionColumns = `id, user_id, merchant_key, display_name, cadence, expected_amount,
	amount_min, amount_max, last_date, next_date, confidence, is_active, kind, created_at`

// CreateSubscription inserts a subscription and backfills its id. The
// merchant key is unique per user; a duplicate insert fails.
func (r *Repository) CreateSubscription(ctx context.Context, sub *models.Subscription) error {
	query := `
		INSERT INTO budget.subscriptions (user_id, merchant_key, display_name, cadence, expected_amount,
			amount_min, amount_max, last_date, next_date, confidence, is_active, kind, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, CURRENT_TIMESTAMP)
		RETURNING id, created_at`
	err := r.db.QueryRowContext(ctx, query,
		sub.UserID, sub.MerchantKey, sub.DisplayName, sub.Cadence, sub.ExpectedAmount,
		sub.AmountMin, sub.AmountMax, sub.LastDate, sub.NextDate, sub.Confidence,
		sub.IsActive, sub.Kind).
		Scan(&sub.ID, &sub.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to create subscription: %w", err)
	}
	return nil
}

// ListSubscriptions returns a user's subscriptions, optionally only the
// active ones.
func (r *Repository) ListSubscriptions(ctx context.Context, userID int64, activeOnly bool) ([]models.Subscription, error) {
	query := `
		SELECT ` + subscriptionColumns + `
		FROM budget.subscriptions
		WHERE user_id = $1 AND ($2 = false OR is_active)
		ORDER BY display_name, id`
	rows, err := r.db.QueryContext(ctx, query, userID, activeOnly)
	if err != nil {
		return nil, fmt.Errorf("failed to list subscriptions: %w", err)
	}
	defer rows.Close()
	return scanSubscriptions(rows)
}

// ListDueSubscriptions returns active subscriptions across all users whose
// next date is on or before asOf. Used by the nightly advance job.
func (r *Repository) ListDueSubscriptions(ctx context.Context, asOf time.Time) ([]models.Subscription, error) {
	query := `
		SELECT ` + subscriptionColumns + `
		FROM budget.subscriptions
		WHERE is_active AND next_date IS NOT NULL AND next_date <= $1
		ORDER BY user_id, id`
	rows, err := r.db.QueryContext(ctx, query, asOf)
	if err != nil {
		return nil, fmt.Errorf("failed to list due subscriptions: %w", err)
	}
	defer rows.Close()
	return scanSubscriptions(rows)
}

// UpdateSubscription updates the mutable fields of a user's subscription.
func (r *Repository) UpdateSubscription(ctx context.Context, sub *models.Subscription) error {
	query := `
		UPDATE budget.subscriptions
		SET display_name = $3, cadence = $4, expected_amount = $5, amount_min = $6,
		    amount_max = $7, last_date = $8, next_date = $9, confidence = $10,
		    is_active = $11, kind = $12
		WHERE user_id = $1 AND id = $2`
	res, err := r.db.ExecContext(ctx, query,
		sub.UserID, sub.ID, sub.DisplayName, sub.Cadence, sub.ExpectedAmount, sub.AmountMin,
		sub.AmountMax, sub.LastDate, sub.NextDate, sub.Confidence, sub.IsActive, sub.Kind)
	if err != nil {
		return fmt.Errorf("failed to update subscription: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

// DeleteSubscription removes a user's subscription by id.
func (r *Repository) DeleteSubscription(ctx context.Context, userID, id int64) error {
	res, err := r.db.ExecContext(ctx,
		`DELETE FROM budget.subscriptions WHERE user_id = $1 AND id = $2`, userID, id)
	if err != nil {
		return fmt.Errorf("failed to delete subscription: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

// AddIgnoredMerchant records a merchant key the detector must stop
// suggesting for this user. Re-ignoring an ignored key is a no-op.
func (r *Repository) AddIgnoredMerchant(ctx context.Context, userID int64, merchantKey string) error {
	query := `
		INSERT INTO budget.ignored_merchants (user_id, merchant_key, created_at)
		VALUES ($1, $2, CURRENT_TIMESTAMP)
		ON CONFLICT (user_id, merchant_key) DO NOTHING`
	if _, err := r.db.ExecContext(ctx, query, userID, merchantKey); err != nil {
		return fmt.Errorf("failed to add ignored merchant: %w", err)
	}
	return nil
}

// ListIgnoredMerchantKeys returns the merchant keys a user has dismissed.
func (r *Repository) ListIgnoredMerchantKeys(ctx context.Context, userID int64) ([]string, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT merchant_key FROM budget.ignored_merchants WHERE user_id = $1 ORDER BY merchant_key`, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list ignored merchants: %w", err)
	}
	defer rows.Close()

	var keys []string
	for rows.Next() {
		var key string
		if err := rows.Scan(&key); err != nil {
			return nil, fmt.Errorf("failed to scan ignored merchant: %w", err)
		}
		keys = append(keys, key)
	}
	return keys, rows.Err()
}

func scanSubscriptions(rows *sql.Rows) ([]models.Subscription, error) {
	var subs []models.Subscription
	for rows.Next() {
		var sub models.Subscription
		if err := rows.Scan(&sub.ID, &sub.UserID, &sub.MerchantKey, &sub.DisplayName, &sub.Cadence,
			&sub.ExpectedAmount, &sub.AmountMin, &sub.AmountMax, &sub.LastDate, &sub.NextDate,
			&sub.Confidence, &sub.IsActive, &sub.Kind, &sub.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan subscription: %w", err)
		}
		subs = append(subs, sub)
	}
	return subs, rows.Err()
}
