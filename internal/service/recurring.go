package service

import (
	"context"
	"fmt"

	"github.com/budgetflow/budgetflow/internal/models"
)

// CreateRecurringItem stores a recurring item, clamping its day of month
// into [1,28] so no month is ever skipped.
func (s *Service) CreateRecurringItem(ctx context.Context, item *models.RecurringItem) (*models.RecurringItem, error) {
	if item.Name == "" {
		return nil, fmt.Errorf("name is required")
	}
	item.DayOfMonth = models.ClampDayOfMonth(item.DayOfMonth)
	if err := s.store.CreateRecurringItem(ctx, item); err != nil {
		return nil, err
	}
	s.log.Infof("Recurring item created for user %d: %s (day %d)", item.UserID, item.Name, item.DayOfMonth)
	return item, nil
}

// ListRecurringItems returns all of a user's recurring items.
func (s *Service) ListRecurringItems(ctx context.Context, userID int64) ([]models.RecurringItem, error) {
	return s.store.ListRecurringItems(ctx, userID, false)
}

// UpdateRecurringItem applies user edits, clamping day of month on the way
// in.
func (s *Service) UpdateRecurringItem(ctx context.Context, item *models.RecurringItem) error {
	item.DayOfMonth = models.ClampDayOfMonth(item.DayOfMonth)
	return s.store.UpdateRecurringItem(ctx, item)
}

// DeleteRecurringItem removes a recurring item.
func (s *Service) DeleteRecurringItem(ctx context.Context, userID, id int64) error {
	return s.store.DeleteRecurringItem(ctx, userID, id)
}
