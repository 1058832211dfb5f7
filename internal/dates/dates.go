// Package dates holds the calendar arithmetic behind the visa timeline. All values
// are civil dates at midnight UTC; the time-of-day part is never meaningful.
package dates

import (
	"time"

	"visa-engine/internal/model"
)

const Layout = "2006-01-02"

// Parse reads a strict zero-padded "YYYY-MM-DD" date without going through
// time.Parse layout handling. The day must exist in the given month.
func Parse(field, s string) (time.Time, error) {
	if len(s) != 10 || s[4] != '-' || s[7] != '-' {
		return time.Time{}, &model.FormatError{Field: field, Value: s}
	}
	for i, c := range []byte(s) {
		if i == 4 || i == 7 {
			continue
		}
		if c < '0' || c > '9' {
			return time.Time{}, &model.FormatError{Field: field, Value: s}
		}
	}
	y := int(s[0]-'0')*1000 + int(s[1]-'0')*100 + int(s[2]-'0')*10 + int(s[3]-'0')
	m := time.Month(int(s[5]-'0')*10 + int(s[6]-'0'))
	d := int(s[8]-'0')*10 + int(s[9]-'0')
	if y < 1 || m < 1 || m > 12 || d < 1 || d > DaysIn(y, m) {
		return time.Time{}, &model.FormatError{Field: field, Value: s}
	}
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC), nil
}

func Format(t time.Time) string {
	return t.Format(Layout)
}

// Day truncates t to its civil date in t's own location.
func Day(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func DaysIn(year int, month time.Month) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// AddMonths moves t by n calendar months, clamping the day to the last day of the
// target month (Jan 31 + 1 month = Feb 28/29).
func AddMonths(t time.Time, n int) time.Time {
	y, m, d := t.Date()
	target := time.Date(y, m+time.Month(n), 1, 0, 0, 0, 0, time.UTC)
	if last := DaysIn(target.Year(), target.Month()); d > last {
		d = last
	}
	return time.Date(target.Year(), target.Month(), d, 0, 0, 0, 0, time.UTC)
}

func AddDays(t time.Time, n int) time.Time {
	return t.AddDate(0, 0, n)
}

// MonthsBetween counts calendar-month boundaries from a to b and ignores the day of
// month, so Jan 31 -> Feb 1 is one month and Jan 1 -> Jan 31 is zero.
func MonthsBetween(a, b time.Time) int {
	return (b.Year()-a.Year())*12 + int(b.Month()-a.Month())
}
