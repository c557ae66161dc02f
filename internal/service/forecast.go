package service

import (
	"context"
	"fmt"

	"github.com/budgetflow/budgetflow/internal/dates"
	"github.com/budgetflow/budgetflow/internal/forecast"
	"github.com/budgetflow/budgetflow/internal/models"
	"github.com/budgetflow/budgetflow/internal/recurrence"
)

// Forecast window bounds. Requests outside the range are clamped, never
// rejected.
const (
	MinForecastDays = 7
	MaxForecastDays = 180

	variableSpendLookbackDays = 90
)

// ClampForecastDays forces a window into [MinForecastDays, MaxForecastDays],
// applying the configured default when the caller passes zero or less.
func (s *Service) ClampForecastDays(days int) int {
	if days <= 0 {
		days = s.config.ForecastDefaultDays
	}
	if days < MinForecastDays {
		return MinForecastDays
	}
	if days > MaxForecastDays {
		return MaxForecastDays
	}
	return days
}

// ComputeForecast projects the user's balance forward windowDays from today.
// It reads the stored balance, active recurring items, active subscriptions
// and the trailing transaction history, and recomputes from scratch on every
// call; nothing is cached.
func (s *Service) ComputeForecast(ctx context.Context, userID int64, windowDays int) (*models.ForecastResult, error) {
	windowDays = s.ClampForecastDays(windowDays)
	today := dates.Midnight(s.now())

	settings, err := s.store.GetUserSettings(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("forecast: %w", err)
	}
	recurring, err := s.store.ListRecurringItems(ctx, userID, true)
	if err != nil {
		return nil, fmt.Errorf("forecast: %w", err)
	}
	subs, err := s.store.ListSubscriptions(ctx, userID, true)
	if err != nil {
		return nil, fmt.Errorf("forecast: %w", err)
	}
	history, err := s.store.ListTransactions(ctx, userID, dates.AddDays(today, -variableSpendLookbackDays), today)
	if err != nil {
		return nil, fmt.Errorf("forecast: %w", err)
	}

	result := forecast.Simulate(forecast.SimulationInput{
		Start:         today,
		Days:          windowDays,
		StartBalance:  settings.CurrentBalance,
		Recurring:     recurring,
		Subscriptions: subs,
		DailyVariable: forecast.EstimateDailyVariable(history, variableSpendLookbackDays),
	})

	s.log.WithFields(map[string]interface{}{
		"user_id": userID,
		"days":    windowDays,
		"lowest":  result.Lowest.Balance,
	}).Debug("forecast computed")
	return &result, nil
}

// ComputeTimeline is the alternate forecast mode: it expands the user's
// active recurring items into dated events, groups them per day and derives
// the next-income / safe-to-spend summary. Subscriptions and the variable
// spend estimate deliberately stay out of this mode; the two strategies are
// not merged.
func (s *Service) ComputeTimeline(ctx context.Context, userID int64, windowDays int) (*models.TimelineResult, error) {
	windowDays = s.ClampForecastDays(windowDays)
	today := dates.Midnight(s.now())
	end := dates.AddDays(today, windowDays)

	settings, err := s.store.GetUserSettings(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("timeline: %w", err)
	}
	recurring, err := s.store.ListRecurringItems(ctx, userID, true)
	if err != nil {
		return nil, fmt.Errorf("timeline: %w", err)
	}

	var events []forecast.Event
	for _, item := range recurring {
		for _, occ := range recurrence.ExpandDayOfMonth(item.DayOfMonth, today, end) {
			events = append(events, forecast.Event{
				Kind:        "recurring",
				RecurringID: item.ID,
				Date:        occ,
				Amount:      item.Amount,
				Description: item.Name,
			})
		}
	}

	result := forecast.BuildTimeline(settings.CurrentBalance, today, windowDays, events)
	return &result, nil
}
