package service

import (
	"context"
	"fmt"
	"math"

	"github.com/budgetflow/budgetflow/internal/models"
)

// GetSettings returns the user's settings, defaulting to a zero balance for
// users who never set one.
func (s *Service) GetSettings(ctx context.Context, userID int64) (*models.UserSettings, error) {
	return s.store.GetUserSettings(ctx, userID)
}

// SetCurrentBalance stores the user's current balance, the day-0 anchor of
// every forecast.
func (s *Service) SetCurrentBalance(ctx context.Context, userID int64, balance float64) (*models.UserSettings, error) {
	if math.IsNaN(balance) || math.IsInf(balance, 0) {
		return nil, fmt.Errorf("balance must be a finite number")
	}
	settings := &models.UserSettings{UserID: userID, CurrentBalance: balance}
	if err := s.store.UpsertUserSettings(ctx, settings); err != nil {
		return nil, err
	}
	s.log.Infof("Balance updated for user %d", userID)
	return settings, nil
}
