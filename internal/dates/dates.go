// Package dates provides the calendar arithmetic used by the forecasting
// core. All functions work on local calendar fields (year, month, day) and
// ignore the time-of-day portion entirely.
package dates

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"
)

const isoLayout = "2006-01-02"

// ToISODate formats a date as YYYY-MM-DD using its local calendar fields.
func ToISODate(t time.Time) string {
	return t.Format(isoLayout)
}

// ParseISODate parses a YYYY-MM-DD string into a midnight local time.
// Missing or non-numeric month/day parts default to 1, so "2025" parses as
// 2025-01-01. A string without a valid numeric year is an error.
func ParseISODate(s string) (time.Time, error) {
	parts := strings.SplitN(strings.TrimSpace(s), "-", 3)
	year, err := strconv.Atoi(parts[0])
	if err != nil || year <= 0 {
		return time.Time{}, fmt.Errorf("invalid date %q", s)
	}
	month, day := 1, 1
	if len(parts) > 1 {
		if m, err := strconv.Atoi(parts[1]); err == nil && m >= 1 && m <= 12 {
			month = m
		}
	}
	if len(parts) > 2 {
		if d, err := strconv.Atoi(parts[2]); err == nil && d >= 1 && d <= 31 {
			day = d
		}
	}
	return time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.Local), nil
}

// Midnight truncates a time to the start of its local day.
func Midnight(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// AddDays advances a date by n calendar days.
func AddDays(t time.Time, n int) time.Time {
	return t.AddDate(0, 0, n)
}

// AddYears advances a date by n calendar years.
func AddYears(t time.Time, n int) time.Time {
	return t.AddDate(n, 0, 0)
}

// AddMonths advances a date by n calendar months, clamping the day to the
// last valid day of the target month instead of letting it roll over.
// Jan 31 + 1 month yields the last day of February, never March.
func AddMonths(t time.Time, n int) time.Time {
	first := time.Date(t.Year(), t.Month()+time.Month(n), 1, 0, 0, 0, 0, t.Location())
	day := t.Day()
	if last := DaysInMonth(first.Year(), first.Month()); day > last {
		day = last
	}
	return time.Date(first.Year(), first.Month(), day, 0, 0, 0, 0, t.Location())
}

// DaysInMonth returns the number of days in the given month.
func DaysInMonth(year int, month time.Month) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// SameDay reports whether two times fall on the same local calendar day.
func SameDay(a, b time.Time) bool {
	return a.Year() == b.Year() && a.Month() == b.Month() && a.Day() == b.Day()
}

// DaysBetween returns the whole number of calendar days from a to b.
// Rounding absorbs DST transitions, where a "day" is 23 or 25 hours.
func DaysBetween(a, b time.Time) int {
	return int(math.Round(Midnight(b).Sub(Midnight(a)).Hours() / 24))
}
