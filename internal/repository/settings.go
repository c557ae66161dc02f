package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/budgetflow/budgetflow/internal/models"
)

// GetUserSettings retrieves a user's settings row. A user who never set a
// balance gets a zero-balance default rather than an error.
func (r *Repository) GetUserSettings(ctx context.Context, userID int64) (*models.UserSettings, error) {
	settings := &models.UserSettings{UserID: userID}
	query := `
		SELECT current_balance
		FROM budget.user_settings
		WHERE user_id = $1`
	err := r.db.QueryRowContext(ctx, query, userID).Scan(&settings.CurrentBalance)
	if err == sql.ErrNoRows {
		return settings, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get user settings: %w", err)
	}
	return settings, nil
}

// UpsertUserSettings stores the user's current balance, inserting the row on
// first write.
func (r *Repository) UpsertUserSettings(ctx context.Context, settings *models.UserSettings) error {
	query := `
		INSERT INTO budget.user_settings (user_id, current_balance, updated_at)
		VALUES ($1, $2, CURRENT_TIMESTAMP)
		ON CONFLICT (user_id)
		DO UPDATE SET current_balance = EXCLUDED.current_balance, updated_at = CURRENT_TIMESTAMP`
	if _, err := r.db.ExecContext(ctx, query, settings.UserID, settings.CurrentBalance); err != nil {
		return fmt.Errorf("failed to upsert user settings: %w", err)
	}
	return nil
}
