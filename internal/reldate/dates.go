package reldate

import (
	"fmt"
	"math"
	"time"

	"github.com/tartampluch/go-reldate/internal/calendar"
)

const nanosPerMilli = int(time.Millisecond)

func daysIn(m time.Month, year int) int {
	return time.Date(year, m+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// dateOf is time.Date without normalization: out of range fields are
// reported as ErrInvalidDate instead of rolling over.
func dateOf(year int, month time.Month, day, hour, min, sec, nsec int, loc *time.Location) (time.Time, error) {
	if year < 1 || year > 9999 ||
		month < time.January || month > time.December ||
		day < 1 || day > daysIn(month, year) ||
		hour < 0 || hour > 23 || min < 0 || min > 59 || sec < 0 || sec > 59 ||
		nsec < 0 || nsec >= int(time.Second) {
		return time.Time{}, fmt.Errorf("%w: %04d-%02d-%02d %02d:%02d:%02d.%03d",
			ErrInvalidDate, year, int(month), day, hour, min, sec, nsec/nanosPerMilli)
	}
	return time.Date(year, month, day, hour, min, sec, nsec, loc), nil
}

func inRange(t time.Time) error {
	if t.Before(calendar.MinDate) || t.After(calendar.MaxDate) {
		return fmt.Errorf("%w: %s", ErrInvalidDate, t.Format(time.RFC3339))
	}
	return nil
}

func floorDiv(a, b int) int {
	q := a / b
	if a%b != 0 && (a < 0) != (b < 0) {
		q--
	}
	return q
}

// addMonths shifts t by n months, clamping the day to the length of the
// target month (Jan 31 + 1 month is Feb 28/29).
func addMonths(t time.Time, n int) time.Time {
	y, m, d := t.Date()
	total := int(m) - 1 + n
	year := y + floorDiv(total, 12)
	month := time.Month(total - floorDiv(total, 12)*12 + 1)
	if dim := daysIn(month, year); d > dim {
		d = dim
	}
	return time.Date(year, month, d, t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), t.Location())
}

// stepToMonth moves to the |n|th month after t (n > 0) or before t (n < 0)
// whose calendar month is target, clamping the day like addMonths. The
// current month never counts. n == 0 returns t.
func stepToMonth(t time.Time, target time.Month, n int) time.Time {
	switch {
	case n > 0:
		ahead := (int(target) - int(t.Month()) + 12) % 12
		if ahead == 0 {
			ahead = 12
		}
		return addMonths(t, ahead+12*(n-1))
	case n < 0:
		back := (int(t.Month()) - int(target) + 12) % 12
		if back == 0 {
			back = 12
		}
		return addMonths(t, -back+12*(n+1))
	}
	return t
}

// addDuration adds n units of d in steps small enough not to overflow a
// time.Duration.
func addDuration(t time.Time, n int, d time.Duration) time.Time {
	chunk := int(math.MaxInt64 / int64(d))
	for n > chunk {
		t = t.Add(time.Duration(chunk) * d)
		n -= chunk
	}
	for n < -chunk {
		t = t.Add(-time.Duration(chunk) * d)
		n += chunk
	}
	return t.Add(time.Duration(n) * d)
}

// Largest counts per unit that can keep a date within years 1..9999.
// Bigger counts fail before any arithmetic runs.
const (
	maxYearSpan  = 10000
	maxMonthSpan = 12 * maxYearSpan
	maxWeekSpan  = 53 * maxYearSpan
	maxDaySpan   = 366 * maxYearSpan
)

func checkSpan(n, limit int) error {
	if n > limit || n < -limit {
		return fmt.Errorf("%w: count %d", ErrInvalidDate, n)
	}
	return nil
}

// nthWeekday moves to the nth occurrence of wd strictly after t (n > 0) or
// strictly before t (n < 0). n == 0 returns t.
func nthWeekday(t time.Time, wd time.Weekday, n int) time.Time {
	switch {
	case n > 0:
		ahead := (int(wd) - int(t.Weekday()) + 7) % 7
		if ahead == 0 {
			ahead = 7
		}
		return t.AddDate(0, 0, ahead+(n-1)*7)
	case n < 0:
		back := (int(t.Weekday()) - int(wd) + 7) % 7
		if back == 0 {
			back = 7
		}
		return t.AddDate(0, 0, -back+(n+1)*7)
	}
	return t
}

// nthWeekdayFrom counts occurrences of wd starting at t itself.
func nthWeekdayFrom(t time.Time, wd time.Weekday, n int) time.Time {
	ahead := (int(wd) - int(t.Weekday()) + 7) % 7
	return t.AddDate(0, 0, ahead+(n-1)*7)
}

// nthWeekdayBefore counts occurrences of wd backwards from t, excluding t.
func nthWeekdayBefore(t time.Time, wd time.Weekday, n int) time.Time {
	ahead := (int(wd) - int(t.Weekday()) + 7) % 7
	return t.AddDate(0, 0, ahead-n*7)
}

func truncateDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}
