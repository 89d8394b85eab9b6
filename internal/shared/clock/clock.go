// Package clock supplies the current date to services.
package clock

import "time"

type Clock interface {
	Now() time.Time
}

// System reads the wall clock
type System struct{}

func (System) Now() time.Time { return time.Now() }

// Fixed always returns T
type Fixed struct {
	T time.Time
}

func (f Fixed) Now() time.Time { return f.T }

// Today returns the calendar date of c.Now() as midnight UTC
func Today(c Clock) time.Time {
	return DateOf(c.Now())
}

// DateOf drops the time of day from t, keeping its calendar date
func DateOf(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// AddMonths adds n calendar months to t. When the target month is shorter
// than t's day, the result is the last day of that month
// (Jan 31 + 1 month = Feb 28, or Feb 29 in a leap year).
func AddMonths(t time.Time, n int) time.Time {
	y, m, d := t.Date()
	first := time.Date(y, m+time.Month(n), 1, 0, 0, 0, 0, t.Location())
	if last := daysIn(first); d > last {
		d = last
	}
	return time.Date(first.Year(), first.Month(), d, t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), t.Location())
}

// AddYears adds n years, mapping Feb 29 to Feb 28 in non-leap years
func AddYears(t time.Time, n int) time.Time {
	return AddMonths(t, 12*n)
}

func daysIn(firstOfMonth time.Time) int {
	return firstOfMonth.AddDate(0, 1, -1).Day()
}

// DateLayout is the wire format of calendar dates
const DateLayout = "2006-01-02"

// ParseDate parses a YYYY-MM-DD date as midnight UTC
func ParseDate(s string) (time.Time, error) {
	return time.Parse(DateLayout, s)
}
