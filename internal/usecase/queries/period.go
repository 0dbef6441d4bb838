package queries

import "time"

type Period string

const (
	PeriodWeek    Period = "week"
	PeriodMonth   Period = "month"
	PeriodQuarter Period = "quarter"
	PeriodYear    Period = "year"
)

// NormalizePeriod maps free-form period input onto one of the four canonical
// buckets. Unrecognized input defaults to month.
func NormalizePeriod(raw string) Period {
	switch raw {
	case "week", "7d":
		return PeriodWeek
	case "month", "30d":
		return PeriodMonth
	case "quarter", "90d":
		return PeriodQuarter
	case "year", "1y":
		return PeriodYear
	default:
		return PeriodMonth
	}
}

func (p Period) String() string {
	return string(p)
}

// DateRange returns the inclusive [from, to] day-clamped range for the
// period, anchored at now:
//   - week: rolling 7 days ending today
//   - month: the current calendar month
//   - quarter: rolling 90 days ending today
//   - year: the current calendar year
func (p Period) DateRange(now time.Time) (time.Time, time.Time) {
	today := startOfDay(now)
	switch p {
	case PeriodWeek:
		return today.AddDate(0, 0, -6), endOfDay(now)
	case PeriodQuarter:
		return today.AddDate(0, 0, -89), endOfDay(now)
	case PeriodYear:
		jan1 := time.Date(now.Year(), time.January, 1, 0, 0, 0, 0, now.Location())
		dec31 := time.Date(now.Year(), time.December, 31, 0, 0, 0, 0, now.Location())
		return jan1, endOfDay(dec31)
	default: // PeriodMonth
		first := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
		last := first.AddDate(0, 1, -1)
		return first, endOfDay(last)
	}
}

func startOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

func endOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 23, 59, 59, int(time.Second-time.Nanosecond), t.Location())
}
