// Package recurrence expands recurring-item and subscription schedules into
// concrete occurrence dates inside a window.
package recurrence

import (
	"time"

	"github.com/budgetflow/budgetflow/internal/dates"
	"github.com/budgetflow/budgetflow/internal/models"
)

// ExpandDayOfMonth enumerates one occurrence per calendar month whose date
// is dayOfMonth of that month, keeping only occurrences inside [from, to].
// The day is clamped to [1,28], so no month is ever skipped.
func ExpandDayOfMonth(dayOfMonth int, from, to time.Time) []time.Time {
	day := models.ClampDayOfMonth(dayOfMonth)
	from = dates.Midnight(from)
	to = dates.Midnight(to)
	if to.Before(from) {
		return nil
	}

	var out []time.Time
	cursor := time.Date(from.Year(), from.Month(), day, 0, 0, 0, 0, from.Location())
	for !cursor.After(to) {
		if !cursor.Before(from) {
			out = append(out, cursor)
		}
		cursor = dates.AddMonths(cursor, 1)
	}
	return out
}

// ExpandCadence advances from anchor using the cadence step until it reaches
// the window, then emits occurrences while cursor <= to. An unrecognized
// cadence yields no occurrences; that is policy, not an error. Callers with
// string anchors should treat an unparseable anchor the same way.
func ExpandCadence(anchor time.Time, cadence string, from, to time.Time) []time.Time {
	step, ok := cadenceStep(cadence)
	if !ok {
		return nil
	}
	from = dates.Midnight(from)
	to = dates.Midnight(to)
	if to.Before(from) {
		return nil
	}

	cursor := dates.Midnight(anchor)
	for cursor.Before(from) {
		cursor = step(cursor)
	}

	var out []time.Time
	for !cursor.After(to) {
		out = append(out, cursor)
		cursor = step(cursor)
	}
	return out
}

// cadenceStep maps a cadence name to its advance function. Unknown cadences
// (including "unknown" itself) report !ok so the expansion stays inert.
func cadenceStep(cadence string) (func(time.Time) time.Time, bool) {
	switch cadence {
	case models.CadenceWeekly:
		return func(t time.Time) time.Time { return dates.AddDays(t, 7) }, true
	case models.CadenceBiweekly:
		return func(t time.Time) time.Time { return dates.AddDays(t, 14) }, true
	case models.CadenceMonthly:
		return func(t time.Time) time.Time { return dates.AddMonths(t, 1) }, true
	case models.CadenceQuarterly:
		return func(t time.Time) time.Time { return dates.AddMonths(t, 3) }, true
	case models.CadenceYearly:
		return func(t time.Time) time.Time { return dates.AddYears(t, 1) }, true
	default:
		return nil, false
	}
}

// NextAfter returns the first occurrence of the cadence strictly after t,
// stepping from anchor. Used by the scheduler to advance overdue next dates.
// The zero time and false are returned for unknown cadences.
func NextAfter(anchor time.Time, cadence string, t time.Time) (time.Time, bool) {
	step, ok := cadenceStep(cadence)
	if !ok {
		return time.Time{}, false
	}
	cursor := dates.Midnight(anchor)
	limit := dates.Midnight(t)
	for !cursor.After(limit) {
		cursor = step(cursor)
	}
	return cursor, true
}
