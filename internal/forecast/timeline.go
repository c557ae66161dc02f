package forecast

import (
	"sort"
	"time"

	"github.com/budgetflow/budgetflow/internal/dates"
	"github.com/budgetflow/budgetflow/internal/models"
)

// Event is an already-expanded dated cash event for the timeline mode.
type Event struct {
	Kind        string
	RecurringID int64
	Date        time.Time
	Amount      float64
	Description string
}

// BuildTimeline is the alternate, lighter-weight forecast mode: it takes a
// flat list of expanded events, groups them per day, and walks the window
// accumulating the balance. On top of the day series it derives the first
// future day carrying any positive (income-like) event, the balance expected
// to remain just before that day, and a naive even-split safe-to-spend
// figure. When the window holds no income day those three fields stay nil;
// the caller never sees Infinity or NaN.
func BuildTimeline(startBalance float64, start time.Time, windowDays int, events []Event) models.TimelineResult {
	startDay := dates.Midnight(start)
	n := windowDays
	if n < 0 {
		n = 0
	}

	byDay := make(map[int][]Event)
	for _, ev := range events {
		idx := dates.DaysBetween(startDay, ev.Date)
		if idx < 0 || idx > n {
			continue
		}
		byDay[idx] = append(byDay[idx], ev)
	}

	result := models.TimelineResult{
		StartBalance: startBalance,
		Days:         make([]models.TimelineDay, 0, n+1),
	}

	balance := startBalance
	incomeIdx := -1
	for i := 0; i <= n; i++ {
		dayEvents := byDay[i]
		// income-like events first within a day
		sort.SliceStable(dayEvents, func(a, b int) bool {
			return dayEvents[a].Amount > dayEvents[b].Amount
		})

		var delta float64
		out := make([]models.TimelineEvent, 0, len(dayEvents))
		for _, ev := range dayEvents {
			delta += ev.Amount
			out = append(out, models.TimelineEvent{
				Kind:        ev.Kind,
				RecurringID: ev.RecurringID,
				Date:        dates.ToISODate(ev.Date),
				Amount:      ev.Amount,
				Description: ev.Description,
			})
		}

		if i > 0 {
			balance += delta
			if incomeIdx == -1 {
				for _, ev := range dayEvents {
					if ev.Amount > 0 {
						incomeIdx = i
						break
					}
				}
			}
		} else {
			// opening day reports the balance as-is
			delta = 0
		}

		result.Days = append(result.Days, models.TimelineDay{
			Date:    dates.ToISODate(dates.AddDays(startDay, i)),
			Delta:   delta,
			Balance: balance,
			Events:  out,
		})
	}

	if incomeIdx > 0 {
		incomeDate := result.Days[incomeIdx].Date
		runway := result.Days[incomeIdx-1].Balance
		daysUntil := incomeIdx
		if daysUntil < 1 {
			daysUntil = 1
		}
		safe := runway / float64(daysUntil)
		result.NextIncomeDate = &incomeDate
		result.BalanceUntilNextIncome = &runway
		result.SafeToSpendPerDay = &safe
	}
	return result
}
