package reldate

import (
	"fmt"
	"strings"
	"time"

	"github.com/tartampluch/go-reldate/internal/calendar"
	"github.com/tartampluch/go-reldate/internal/config"
)

// UnitKind selects the date arithmetic a Unit performs.
type UnitKind int

const (
	UnitYear UnitKind = iota
	UnitMonth
	UnitWeek
	UnitDay
	UnitHour
	UnitMinute
	UnitSecond
	UnitMillisecond
	UnitWeekday
	UnitWeekendDay
	UnitDayOfWeek
	UnitLastDayOfWeek
	UnitMonthOfYear
)

// Calendars backing the weekday (D) and weekend-day (e) units. Neither has
// holidays.
var (
	weekdayCalendar    = calendar.New(config.CalendarWeekday, nil, calendar.MondayToFriday)
	weekendDayCalendar = calendar.New(config.CalendarWeekendDay, nil, calendar.Weekend)
)

// Unit is a named date-arithmetic domain addressed by its key in
// expressions. Weekday is set for day-of-week units and Month for
// month-of-year units.
type Unit struct {
	Key     string
	Kind    UnitKind
	Weekday time.Weekday
	Month   time.Month
}

// CanMove reports whether the unit supports the move-to action.
func (u Unit) CanMove() bool {
	switch u.Kind {
	case UnitWeek, UnitWeekday, UnitWeekendDay, UnitMonthOfYear:
		return false
	}
	return true
}

// CanMatch reports whether the unit can test a date for membership.
func (u Unit) CanMatch() bool {
	switch u.Kind {
	case UnitWeekday, UnitWeekendDay, UnitDayOfWeek, UnitMonthOfYear:
		return true
	}
	return false
}

// Start truncates t to the start of the unit's period.
func (u Unit) Start(t time.Time) time.Time {
	y, m, d := t.Date()
	loc := t.Location()
	switch u.Kind {
	case UnitYear:
		return time.Date(y, time.January, 1, 0, 0, 0, 0, loc)
	case UnitMonth:
		return time.Date(y, m, 1, 0, 0, 0, 0, loc)
	case UnitWeek:
		return truncateDay(t).AddDate(0, 0, -int(t.Weekday()))
	case UnitDay:
		return truncateDay(t)
	case UnitHour:
		return time.Date(y, m, d, t.Hour(), 0, 0, 0, loc)
	case UnitMinute:
		return time.Date(y, m, d, t.Hour(), t.Minute(), 0, 0, loc)
	case UnitSecond:
		return time.Date(y, m, d, t.Hour(), t.Minute(), t.Second(), 0, loc)
	case UnitMillisecond:
		return time.Date(y, m, d, t.Hour(), t.Minute(), t.Second(), t.Nanosecond()/nanosPerMilli*nanosPerMilli, loc)
	case UnitWeekday:
		return calendar.AddBusinessDays(weekdayCalendar, t, 0)
	case UnitWeekendDay:
		return calendar.CurrentOrNextBusinessDay(weekendDayCalendar, t)
	case UnitDayOfWeek, UnitLastDayOfWeek:
		back := (int(t.Weekday()) - int(u.Weekday) + 7) % 7
		return truncateDay(t).AddDate(0, 0, -back)
	case UnitMonthOfYear:
		return time.Date(y, u.Month, 1, 0, 0, 0, 0, loc)
	}
	return t
}

// Add moves t by n units. Negative n moves backwards. Counts that cannot
// stay within years 1..9999 fail with ErrInvalidDate.
func (u Unit) Add(t time.Time, n int) (time.Time, error) {
	if err := checkSpan(n, u.maxSpan()); err != nil {
		return time.Time{}, err
	}
	var out time.Time
	switch u.Kind {
	case UnitYear:
		out = addMonths(t, 12*n)
	case UnitMonth:
		out = addMonths(t, n)
	case UnitWeek:
		out = t.AddDate(0, 0, 7*n)
	case UnitDay:
		out = t.AddDate(0, 0, n)
	case UnitHour:
		out = addDuration(t, n, time.Hour)
	case UnitMinute:
		out = addDuration(t, n, time.Minute)
	case UnitSecond:
		out = addDuration(t, n, time.Second)
	case UnitMillisecond:
		out = addDuration(t, n, time.Millisecond)
	case UnitWeekday:
		out = calendar.AddBusinessDays(weekdayCalendar, t, n)
	case UnitWeekendDay:
		out = calendar.AddBusinessDays(weekendDayCalendar, t, n)
	case UnitDayOfWeek, UnitLastDayOfWeek:
		out = nthWeekday(t, u.Weekday, n)
	case UnitMonthOfYear:
		out = stepToMonth(t, u.Month, n)
	default:
		return time.Time{}, u.unsupported()
	}
	if err := inRange(out); err != nil {
		return time.Time{}, err
	}
	return out, nil
}

// maxSpan is the largest count of the unit worth computing.
func (u Unit) maxSpan() int {
	switch u.Kind {
	case UnitYear, UnitMonthOfYear:
		return maxYearSpan
	case UnitMonth:
		return maxMonthSpan
	case UnitWeek, UnitDayOfWeek, UnitLastDayOfWeek:
		return maxWeekSpan
	case UnitHour:
		return maxDaySpan * 24
	case UnitMinute:
		return maxDaySpan * 24 * 60
	case UnitSecond:
		return maxDaySpan * 24 * 60 * 60
	case UnitMillisecond:
		return maxDaySpan * 24 * 60 * 60 * 1000
	}
	return maxDaySpan
}

// Move sets the unit's component of t to n. Fields are validated rather than
// normalized, so moving to day 31 of a 30-day month fails with
// ErrInvalidDate. Day-of-week units move to the nth occurrence in t's month.
func (u Unit) Move(t time.Time, n int) (time.Time, error) {
	y, m, d := t.Date()
	h, mi, s, ns := t.Hour(), t.Minute(), t.Second(), t.Nanosecond()
	loc := t.Location()
	switch u.Kind {
	case UnitYear:
		return dateOf(n, m, d, h, mi, s, ns, loc)
	case UnitMonth:
		if n < int(time.January) || n > int(time.December) {
			return time.Time{}, fmt.Errorf("%w: month %d", ErrInvalidDate, n)
		}
		return dateOf(y, time.Month(n), d, h, mi, s, ns, loc)
	case UnitDay:
		return dateOf(y, m, n, h, mi, s, ns, loc)
	case UnitHour:
		return dateOf(y, m, d, n, mi, s, ns, loc)
	case UnitMinute:
		return dateOf(y, m, d, h, n, s, ns, loc)
	case UnitSecond:
		return dateOf(y, m, d, h, mi, n, ns, loc)
	case UnitMillisecond:
		if n < 0 || n > 999 {
			return time.Time{}, fmt.Errorf("%w: millisecond %d", ErrInvalidDate, n)
		}
		return dateOf(y, m, d, h, mi, s, n*nanosPerMilli, loc)
	case UnitDayOfWeek:
		if err := checkSpan(n, maxWeekSpan); err != nil {
			return time.Time{}, err
		}
		first := time.Date(y, m, 1, h, mi, s, ns, loc)
		out := nthWeekdayFrom(first, u.Weekday, n)
		return out, inRange(out)
	case UnitLastDayOfWeek:
		if err := checkSpan(n, maxWeekSpan); err != nil {
			return time.Time{}, err
		}
		firstOfNext := time.Date(y, m+1, 1, h, mi, s, ns, loc)
		out := nthWeekdayBefore(firstOfNext, u.Weekday, n)
		return out, inRange(out)
	}
	return time.Time{}, u.unsupported()
}

// IsMatch reports whether t belongs to the unit: a working day for D, a
// weekend day for e, the right day of the week or month of the year.
func (u Unit) IsMatch(t time.Time) (bool, error) {
	switch u.Kind {
	case UnitWeekday:
		return calendar.IsNormalWorkingDay(weekdayCalendar, t), nil
	case UnitWeekendDay:
		return calendar.IsNormalWorkingDay(weekendDayCalendar, t), nil
	case UnitDayOfWeek:
		return t.Weekday() == u.Weekday, nil
	case UnitMonthOfYear:
		return t.Month() == u.Month, nil
	}
	return false, u.unsupported()
}

func (u Unit) unsupported() error {
	return fmt.Errorf("%w: %q", ErrUnsupportedOperation, u.Key)
}

// Description is the unit's display name, such as "Year", "Weekend day",
// "Monday", "Last Friday" or "March".
func (u Unit) Description() string {
	switch u.Kind {
	case UnitDayOfWeek:
		return u.Weekday.String()
	case UnitLastDayOfWeek:
		return localize(config.TKeyUnitLastPrefix, map[string]any{config.TDataDay: u.Weekday.String()})
	case UnitMonthOfYear:
		return u.Month.String()
	}
	return localize(unitMessageIDs[u.Kind], nil)
}

// Describe renders the nth instance of the unit: "year 2020", "March",
// "Day 15", "second Monday", "last Friday".
func (u Unit) Describe(n int) string {
	switch u.Kind {
	case UnitYear:
		return localize(config.TKeyUnitYearNth, map[string]any{config.TDataCount: n})
	case UnitMonth:
		return time.Month(floorMod(n-1, 12) + 1).String()
	case UnitDayOfWeek:
		return localize(config.TKeyUnitDayOfWeekNth, map[string]any{
			config.TDataOrdinal: ordinal(n),
			config.TDataDay:     u.Weekday.String(),
		})
	case UnitLastDayOfWeek:
		if n == 1 {
			return localize(config.TKeyUnitLastDayFirst, map[string]any{config.TDataDay: u.Weekday.String()})
		}
		return localize(config.TKeyUnitLastDayNth, map[string]any{
			config.TDataOrdinal: ordinal(n),
			config.TDataDay:     u.Weekday.String(),
		})
	case UnitMonthOfYear:
		return u.Month.String()
	}
	return localize(config.TKeyUnitNth, map[string]any{
		config.TDataUnit:  u.Description(),
		config.TDataCount: n,
	})
}

func (u Unit) String() string { return u.Key }

var unitMessageIDs = map[UnitKind]string{
	UnitYear:        config.TKeyUnitYear,
	UnitMonth:       config.TKeyUnitMonth,
	UnitWeek:        config.TKeyUnitWeek,
	UnitDay:         config.TKeyUnitDay,
	UnitHour:        config.TKeyUnitHour,
	UnitMinute:      config.TKeyUnitMinute,
	UnitSecond:      config.TKeyUnitSecond,
	UnitMillisecond: config.TKeyUnitMillisecond,
	UnitWeekday:     config.TKeyUnitWeekday,
	UnitWeekendDay:  config.TKeyUnitWeekendDay,
}

func floorMod(a, b int) int {
	return a - floorDiv(a, b)*b
}

// staticKey is the three letter lower-case key of a day or month name.
func staticKey(name string) string {
	return strings.ToLower(name[:config.StaticUnitKeyLen])
}
