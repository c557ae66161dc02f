package recurrence

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/budgetflow/budgetflow/internal/dates"
	"github.com/budgetflow/budgetflow/internal/models"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.Local)
}

func TestExpandDayOfMonth_OnePerMonthNoSkips(t *testing.T) {
	from := date(2025, time.January, 1)
	to := date(2025, time.December, 31)

	occ := ExpandDayOfMonth(28, from, to)
	require.Len(t, occ, 12, "every month must have exactly one occurrence")
	for i, o := range occ {
		assert.Equal(t, time.Month(i+1), o.Month())
		assert.Equal(t, 28, o.Day())
	}
}

func TestExpandDayOfMonth_ClampsOutOfRangeDay(t *testing.T) {
	from := date(2025, time.February, 1)
	to := date(2025, time.March, 31)

	// 31 clamps to 28, so February is not skipped
	occ := ExpandDayOfMonth(31, from, to)
	require.Len(t, occ, 2)
	assert.Equal(t, date(2025, time.February, 28), occ[0])
	assert.Equal(t, date(2025, time.March, 28), occ[1])

	occ = ExpandDayOfMonth(0, from, to)
	require.Len(t, occ, 2)
	assert.Equal(t, 1, occ[0].Day())
}

func TestExpandDayOfMonth_WindowEdges(t *testing.T) {
	// occurrence before the window start in the same month is excluded
	occ := ExpandDayOfMonth(10, date(2025, time.January, 15), date(2025, time.February, 28))
	require.Len(t, occ, 1)
	assert.Equal(t, date(2025, time.February, 10), occ[0])

	// inclusive on both bounds
	occ = ExpandDayOfMonth(10, date(2025, time.January, 10), date(2025, time.February, 10))
	assert.Len(t, occ, 2)

	// inverted window yields nothing
	assert.Empty(t, ExpandDayOfMonth(10, date(2025, time.March, 1), date(2025, time.January, 1)))
}

func TestExpandDayOfMonth_Idempotent(t *testing.T) {
	from, to := date(2025, time.January, 5), date(2025, time.June, 20)
	first := ExpandDayOfMonth(15, from, to)
	second := ExpandDayOfMonth(15, from, to)
	assert.Equal(t, first, second)
}

func TestExpandCadence(t *testing.T) {
	from := date(2025, time.March, 1)
	to := date(2025, time.April, 30)

	tests := []struct {
		name    string
		anchor  time.Time
		cadence string
		want    []time.Time
	}{
		{
			"weekly advances to window then steps by 7",
			date(2025, time.February, 3), models.CadenceWeekly,
			[]time.Time{
				date(2025, time.March, 3), date(2025, time.March, 10), date(2025, time.March, 17),
				date(2025, time.March, 24), date(2025, time.March, 31), date(2025, time.April, 7),
				date(2025, time.April, 14), date(2025, time.April, 21), date(2025, time.April, 28),
			},
		},
		{
			"biweekly",
			date(2025, time.March, 5), models.CadenceBiweekly,
			[]time.Time{
				date(2025, time.March, 5), date(2025, time.March, 19),
				date(2025, time.April, 2), date(2025, time.April, 16), date(2025, time.April, 30),
			},
		},
		{
			"monthly keeps the anchor day",
			date(2025, time.January, 12), models.CadenceMonthly,
			[]time.Time{date(2025, time.March, 12), date(2025, time.April, 12)},
		},
		{
			"quarterly",
			date(2024, time.October, 20), models.CadenceQuarterly,
			[]time.Time{date(2025, time.April, 20)},
		},
		{
			"yearly",
			date(2023, time.April, 11), models.CadenceYearly,
			[]time.Time{date(2025, time.April, 11)},
		},
		{
			"anchor inside window starts at anchor",
			date(2025, time.April, 29), models.CadenceWeekly,
			[]time.Time{date(2025, time.April, 29)},
		},
		{"unknown cadence is inert", date(2025, time.March, 1), models.CadenceUnknown, nil},
		{"unrecognized cadence is inert", date(2025, time.March, 1), "fortnightly-ish", nil},
		{"anchor past window end", date(2025, time.May, 2), models.CadenceWeekly, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ExpandCadence(tt.anchor, tt.cadence, from, to))
		})
	}
}

func TestExpandCadence_MonthlyClampDoesNotDrift(t *testing.T) {
	// A Jan 31 anchor clamps to month ends instead of spilling into March
	occ := ExpandCadence(date(2025, time.January, 31), models.CadenceMonthly,
		date(2025, time.January, 1), date(2025, time.April, 30))
	require.Len(t, occ, 4)
	assert.Equal(t, "2025-02-28", dates.ToISODate(occ[1]))
	assert.Equal(t, "2025-03-28", dates.ToISODate(occ[2]))
}

func TestNextAfter(t *testing.T) {
	next, ok := NextAfter(date(2025, time.March, 1), models.CadenceMonthly, date(2025, time.March, 15))
	require.True(t, ok)
	assert.Equal(t, date(2025, time.April, 1), next)

	// already in the future: still strictly after
	next, ok = NextAfter(date(2025, time.March, 20), models.CadenceWeekly, date(2025, time.March, 20))
	require.True(t, ok)
	assert.Equal(t, date(2025, time.March, 27), next)

	_, ok = NextAfter(date(2025, time.March, 1), models.CadenceUnknown, date(2025, time.March, 15))
	assert.False(t, ok)
}
