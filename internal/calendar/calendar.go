package calendar

import (
	"fmt"
	"strings"
	"time"

	"github.com/tartampluch/go-reldate/internal/config"
)

// Holiday is one or more contiguous non-working days.
type Holiday struct {
	Dates       DateRange
	Description string
}

// NewHoliday returns a full-day holiday covering date from midnight up to
// (but excluding) the following midnight.
func NewHoliday(date time.Time, description string) Holiday {
	start := truncateDay(date)
	return Holiday{
		Dates:       NewDateRange(start, start.AddDate(0, 0, 1).Add(-time.Nanosecond)),
		Description: description,
	}
}

// Calendar is the capability set consumed by the business-day calculus.
// Implementations are immutable once constructed.
type Calendar interface {
	// Key identifies the calendar within a Catalog.
	Key() string
	// Holidays returns the non-working date ranges of the calendar.
	Holidays() []Holiday
	// IsWorkingDay reports whether the given day of the week is normally worked.
	IsWorkingDay(time.Weekday) bool
}

// Workweek is a bit set of working days indexed by time.Weekday.
type Workweek uint8

const (
	MondayToFriday Workweek = 1<<time.Monday | 1<<time.Tuesday | 1<<time.Wednesday | 1<<time.Thursday | 1<<time.Friday
	Weekend        Workweek = 1<<time.Saturday | 1<<time.Sunday
	AllWeek                 = MondayToFriday | Weekend
)

// NewWorkweek returns the set containing the given days.
func NewWorkweek(days ...time.Weekday) Workweek {
	var w Workweek
	for _, d := range days {
		w |= 1 << d
	}
	return w
}

// IsWorkingDay reports whether d is in the set.
func (w Workweek) IsWorkingDay(d time.Weekday) bool {
	return w&(1<<d) != 0
}

func (w Workweek) String() string {
	switch w {
	case MondayToFriday:
		return config.WorkweekMonFri
	case Weekend:
		return config.WorkweekWeekend
	case AllWeek:
		return config.WorkweekAll
	}
	var names []string
	for d := time.Sunday; d <= time.Saturday; d++ {
		if w.IsWorkingDay(d) {
			names = append(names, strings.ToLower(d.String()[:3]))
		}
	}
	return strings.Join(names, config.WorkweekSep)
}

// ParseWorkweek accepts the named sets ("mon-fri", "weekend", "all") or a
// comma separated list of three letter day names ("mon,tue,sat").
func ParseWorkweek(s string) (Workweek, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", config.WorkweekMonFri:
		return MondayToFriday, nil
	case config.WorkweekWeekend:
		return Weekend, nil
	case config.WorkweekAll:
		return AllWeek, nil
	}
	var w Workweek
	for _, part := range strings.Split(s, config.WorkweekSep) {
		name := strings.ToLower(strings.TrimSpace(part))
		found := false
		for d := time.Sunday; d <= time.Saturday; d++ {
			if name == strings.ToLower(d.String()[:3]) {
				w |= 1 << d
				found = true
				break
			}
		}
		if !found {
			return 0, fmt.Errorf("%w: %q", ErrInvalidWorkweek, s)
		}
	}
	return w, nil
}

// SimpleCalendar is a Calendar backed by a fixed holiday list and workweek.
type SimpleCalendar struct {
	key      string
	holidays []Holiday
	workweek Workweek
}

// New returns a calendar with the given holidays and working days. The
// holiday slice is copied.
func New(key string, holidays []Holiday, workweek Workweek) *SimpleCalendar {
	return &SimpleCalendar{
		key:      key,
		holidays: append([]Holiday(nil), holidays...),
		workweek: workweek,
	}
}

// FromDateRanges returns a Monday to Friday calendar whose holidays are the
// given ranges, without descriptions.
func FromDateRanges(key string, ranges ...DateRange) *SimpleCalendar {
	holidays := make([]Holiday, len(ranges))
	for i, r := range ranges {
		holidays[i] = Holiday{Dates: r}
	}
	return &SimpleCalendar{key: key, holidays: holidays, workweek: MondayToFriday}
}

func (c *SimpleCalendar) Key() string                      { return c.key }
func (c *SimpleCalendar) Holidays() []Holiday              { return c.holidays }
func (c *SimpleCalendar) IsWorkingDay(d time.Weekday) bool { return c.workweek.IsWorkingDay(d) }

// Workweek returns the working days of the calendar.
func (c *SimpleCalendar) Workweek() Workweek { return c.workweek }

// CompositeCalendar combines calendars: a day is a working day only if every
// child treats it as one, and the holidays are the concatenation of the
// children's holidays. Overlapping or duplicate holidays are preserved.
type CompositeCalendar struct {
	key      string
	children []Calendar
}

// NewComposite returns the composite of the given calendars, in order.
func NewComposite(key string, calendars ...Calendar) *CompositeCalendar {
	return &CompositeCalendar{key: key, children: append([]Calendar(nil), calendars...)}
}

func (c *CompositeCalendar) Key() string { return c.key }

// Calendars returns the child calendars.
func (c *CompositeCalendar) Calendars() []Calendar { return c.children }

func (c *CompositeCalendar) Holidays() []Holiday {
	var out []Holiday
	for _, child := range c.children {
		out = append(out, child.Holidays()...)
	}
	return out
}

func (c *CompositeCalendar) IsWorkingDay(d time.Weekday) bool {
	for _, child := range c.children {
		if !child.IsWorkingDay(d) {
			return false
		}
	}
	return true
}
