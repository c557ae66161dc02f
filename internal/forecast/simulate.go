// Package forecast projects a user's balance forward day by day from their
// recurring items, confirmed subscriptions and estimated variable spend.
package forecast

import (
	"math"
	"time"

	"github.com/budgetflow/budgetflow/internal/dates"
	"github.com/budgetflow/budgetflow/internal/models"
	"github.com/budgetflow/budgetflow/internal/recurrence"
)

// SimulationInput is a snapshot of everything the simulator reads.
type SimulationInput struct {
	Start         time.Time // day 0 anchor
	Days          int       // window length, days 0..Days inclusive
	StartBalance  float64
	Recurring     []models.RecurringItem
	Subscriptions []models.Subscription
	DailyVariable float64 // from EstimateDailyVariable, always <= 0
}

// Simulate walks the window day by day, applying every projected event due
// that day and tracking the running balance and its lowest point.
//
// Day 0 carries the opening balance as-is: events dated today are assumed to
// be reflected in the user's current balance already, so no delta is applied
// before day 1.
func Simulate(in SimulationInput) models.ForecastResult {
	start := dates.Midnight(in.Start)
	n := in.Days
	if n < 0 {
		n = 0
	}
	end := dates.AddDays(start, n)

	recurringDelta := make([]float64, n+1)
	addOccurrence := func(day time.Time, amount float64) {
		idx := dates.DaysBetween(start, day)
		if idx < 1 || idx > n {
			return
		}
		recurringDelta[idx] += amount
	}

	for _, item := range in.Recurring {
		if !item.IsActive {
			continue
		}
		for _, occ := range recurrence.ExpandDayOfMonth(item.DayOfMonth, start, end) {
			addOccurrence(occ, item.Amount)
		}
	}
	for _, sub := range in.Subscriptions {
		if !sub.IsActive || sub.NextDate == nil {
			continue
		}
		amount := ResolveSubscriptionAmount(sub)
		for _, occ := range recurrence.ExpandCadence(*sub.NextDate, sub.Cadence, start, end) {
			addOccurrence(occ, amount)
		}
	}

	result := models.ForecastResult{
		Days:                   n,
		StartBalance:           in.StartBalance,
		EstimatedDailyVariable: in.DailyVariable,
		Series:                 make([]models.ForecastDay, 0, n+1),
	}

	balance := in.StartBalance
	result.Lowest = models.LowestPoint{Date: dates.ToISODate(start), Balance: balance}
	for i := 0; i <= n; i++ {
		day := models.ForecastDay{Date: dates.ToISODate(dates.AddDays(start, i))}
		if i > 0 {
			day.Breakdown = models.DayBreakdown{
				Recurring: recurringDelta[i],
				Variable:  in.DailyVariable,
			}
			day.Delta = recurringDelta[i] + in.DailyVariable
			balance += day.Delta
		}
		day.Balance = balance
		// strict less-than keeps the earliest date on ties
		if balance < result.Lowest.Balance {
			result.Lowest = models.LowestPoint{Date: day.Date, Balance: balance}
		}
		result.Series = append(result.Series, day)
	}
	return result
}

// ResolveSubscriptionAmount picks the signed amount a subscription occurrence
// contributes to the projection. The fallback order is fixed: the expected
// amount when it is a usable figure, then the observed maximum, then the
// observed minimum, then zero.
func ResolveSubscriptionAmount(sub models.Subscription) float64 {
	for _, v := range []float64{sub.ExpectedAmount, sub.AmountMax, sub.AmountMin} {
		if v != 0 && !math.IsNaN(v) && !math.IsInf(v, 0) {
			return v
		}
	}
	return 0
}
