//go:build unit

package queries_test

import (
	"testing"
	"time"

	"facility-booking/internal/usecase/queries"

	"github.com/stretchr/testify/assert"
)

func TestNormalizePeriod(t *testing.T) {
	tests := []struct {
		raw      string
		expected queries.Period
	}{
		{raw: "week", expected: queries.PeriodWeek},
		{raw: "7d", expected: queries.PeriodWeek},
		{raw: "month", expected: queries.PeriodMonth},
		{raw: "30d", expected: queries.PeriodMonth},
		{raw: "quarter", expected: queries.PeriodQuarter},
		{raw: "90d", expected: queries.PeriodQuarter},
		{raw: "year", expected: queries.PeriodYear},
		{raw: "1y", expected: queries.PeriodYear},
		{raw: "", expected: queries.PeriodMonth},
		{raw: "fortnight", expected: queries.PeriodMonth},
	}

	for _, tt := range tests {
		t.Run("input "+tt.raw, func(t *testing.T) {
			assert.Equal(t, tt.expected, queries.NormalizePeriod(tt.raw))
		})
	}
}

func TestPeriodDateRange(t *testing.T) {
	// mid-month anchor so week/quarter windows cross boundaries
	now := time.Date(2026, 9, 15, 14, 30, 0, 0, time.UTC)

	day := func(y int, m time.Month, d int) time.Time {
		return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	}

	t.Run("week is a rolling 7 days ending today", func(t *testing.T) {
		from, to := queries.PeriodWeek.DateRange(now)
		assert.Equal(t, day(2026, time.September, 9), from)
		assert.Equal(t, day(2026, time.September, 15), time.Date(to.Year(), to.Month(), to.Day(), 0, 0, 0, 0, time.UTC))
		assert.True(t, to.After(now))
	})

	t.Run("month is the calendar month", func(t *testing.T) {
		from, to := queries.PeriodMonth.DateRange(now)
		assert.Equal(t, day(2026, time.September, 1), from)
		assert.Equal(t, 30, to.Day())
		assert.Equal(t, time.September, to.Month())
	})

	t.Run("month handles February", func(t *testing.T) {
		_, to := queries.PeriodMonth.DateRange(time.Date(2026, 2, 10, 0, 0, 0, 0, time.UTC))
		assert.Equal(t, 28, to.Day())
	})

	t.Run("quarter is a rolling 90 days ending today", func(t *testing.T) {
		from, _ := queries.PeriodQuarter.DateRange(now)
		assert.Equal(t, day(2026, time.June, 18), from)
	})

	t.Run("year is the calendar year", func(t *testing.T) {
		from, to := queries.PeriodYear.DateRange(now)
		assert.Equal(t, day(2026, time.January, 1), from)
		assert.Equal(t, time.December, to.Month())
		assert.Equal(t, 31, to.Day())
	})

	t.Run("range is inclusive of the whole final day", func(t *testing.T) {
		_, to := queries.PeriodWeek.DateRange(now)
		endOfToday := time.Date(2026, 9, 16, 0, 0, 0, 0, time.UTC)
		assert.True(t, to.Before(endOfToday))
		assert.True(t, to.After(time.Date(2026, 9, 15, 23, 59, 58, 0, time.UTC)))
	})
}
