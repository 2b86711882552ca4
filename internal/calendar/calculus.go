package calendar

import (
	"fmt"
	"iter"
	"slices"
	"time"
)

// IsHoliday reports whether any holiday of c contains t. The time of day of
// t is significant when the holiday bounds carry one.
func IsHoliday(c Calendar, t time.Time) bool {
	for _, h := range c.Holidays() {
		if h.Dates.Contains(t) {
			return true
		}
	}
	return false
}

// IsNormalWorkingDay reports whether t falls on a working day of the week,
// ignoring holidays.
func IsNormalWorkingDay(c Calendar, t time.Time) bool {
	return c.IsWorkingDay(t.Weekday())
}

// IsBusinessDay reports whether t is a working day of the week and not a
// holiday.
func IsBusinessDay(c Calendar, t time.Time) bool {
	return IsNormalWorkingDay(c, t) && !IsHoliday(c, t)
}

// CurrentOrNextBusinessDay returns t truncated to the day if that is a
// business day, otherwise the first business day after it. The search stops
// at MaxDate; a calendar without any working day will therefore walk all the
// way to MaxDate, which callers must treat as effectively unbounded.
func CurrentOrNextBusinessDay(c Calendar, t time.Time) time.Time {
	d := truncateDay(t)
	for !IsBusinessDay(c, d) && d.Before(MaxDate) {
		d = d.AddDate(0, 0, 1)
	}
	return d
}

// CurrentOrPriorBusinessDay is the mirror of CurrentOrNextBusinessDay,
// stepping backwards and stopping at MinDate.
func CurrentOrPriorBusinessDay(c Calendar, t time.Time) time.Time {
	d := truncateDay(t)
	for !IsBusinessDay(c, d) && d.After(MinDate) {
		d = d.AddDate(0, 0, -1)
	}
	return d
}

// AddBusinessDays moves n business days away from t.
//
// For n > 0 the count starts at the current or prior business day and moves
// forward. For n <= 0 it starts at the current or next business day and
// moves backward |n| business days, so AddBusinessDays(c, t, 0) is
// CurrentOrNextBusinessDay(c, t).
func AddBusinessDays(c Calendar, t time.Time, n int) time.Time {
	step := 1
	var d time.Time
	if n > 0 {
		d = CurrentOrPriorBusinessDay(c, t)
	} else {
		d = CurrentOrNextBusinessDay(c, t)
		step = -1
		n = -n
	}
	for count := 0; count < n && inBounds(d, step); {
		d = d.AddDate(0, 0, step)
		if IsBusinessDay(c, d) {
			count++
		}
	}
	return d
}

// inBounds reports whether d can take another step in the given direction.
func inBounds(d time.Time, step int) bool {
	if step > 0 {
		return d.Before(MaxDate)
	}
	return d.After(MinDate)
}

// BusinessDaysInRange yields each business day from the day of the range's
// begin while strictly before its end, filtered by match when non-nil. The
// returned sequence is lazy and may be iterated more than once.
func BusinessDaysInRange(c Calendar, r DateRange, match func(time.Time) bool) (iter.Seq[time.Time], error) {
	if r.IsInfinite() {
		return nil, fmt.Errorf("%w: %s", ErrInvalidRange, r)
	}
	begin, _ := r.Begin()
	end, _ := r.End()
	return func(yield func(time.Time) bool) {
		for d := truncateDay(begin); d.Before(end); d = d.AddDate(0, 0, 1) {
			if !IsBusinessDay(c, d) || (match != nil && !match(d)) {
				continue
			}
			if !yield(d) {
				return
			}
		}
	}, nil
}

// FirstBusinessDaysOfWeek returns, for every week (Sunday to Saturday)
// touching r, the offset-th business day of that week counted from its
// start, keeping only the days inside r.
func FirstBusinessDaysOfWeek(c Calendar, r DateRange, offset int) ([]time.Time, error) {
	return businessDaysOfWeek(c, r, offset, 1)
}

// LastBusinessDaysOfWeek is like FirstBusinessDaysOfWeek but counts from the
// end of each week. The result is in chronological order.
func LastBusinessDaysOfWeek(c Calendar, r DateRange, offset int) ([]time.Time, error) {
	days, err := businessDaysOfWeek(c, r, offset, -1)
	if err != nil {
		return nil, err
	}
	slices.Reverse(days)
	return days, nil
}

func businessDaysOfWeek(c Calendar, r DateRange, offset, step int) ([]time.Time, error) {
	if r.IsInfinite() {
		return nil, fmt.Errorf("%w: %s", ErrInvalidRange, r)
	}
	if offset < 1 || offset > 7 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidOffset, offset)
	}
	begin, _ := r.Begin()
	end, _ := r.End()

	// Widen to whole Sunday..Saturday weeks.
	weeks := NewDateRange(
		truncateDay(begin).AddDate(0, 0, -int(begin.Weekday())),
		end.AddDate(0, 0, 6-int(end.Weekday())),
	)

	d := truncateDay(weeks.begin)
	reset := time.Sunday
	if step < 0 {
		d = truncateDay(weeks.end)
		reset = time.Saturday
	}

	var out []time.Time
	nth := 0
	for weeks.Contains(d) {
		if IsBusinessDay(c, d) {
			nth++
			if nth == offset && r.Contains(d) {
				out = append(out, d)
			}
		}
		d = d.AddDate(0, 0, step)
		if d.Weekday() == reset {
			nth = 0
		}
	}
	return out, nil
}

// HolidayDates yields each day of each holiday of c that falls on a normal
// working day of the week and lies within r. Days covered by more than one
// holiday are yielded once per holiday.
func HolidayDates(c Calendar, r DateRange) iter.Seq[time.Time] {
	return func(yield func(time.Time) bool) {
		for _, h := range c.Holidays() {
			for d := range h.Dates.Days() {
				if !IsNormalWorkingDay(c, d) || !r.Contains(d) {
					continue
				}
				if !yield(d) {
					return
				}
			}
		}
	}
}
