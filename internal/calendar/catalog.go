package calendar

import (
	"fmt"
	"iter"
	"log/slog"
	"time"

	"github.com/tartampluch/go-reldate/internal/config"
)

// Catalog is a keyed set of calendars. The built-in CalendarDay and
// BusinessDay calendars are always present. A Catalog is read-only after
// NewCatalog returns and may be shared between goroutines.
type Catalog struct {
	calendars map[string]Calendar
	order     []string
}

// NewCatalog returns a catalog holding the built-in calendars followed by the
// given ones. A later calendar replaces an earlier one with the same key.
func NewCatalog(calendars ...Calendar) *Catalog {
	c := &Catalog{calendars: make(map[string]Calendar)}
	c.add(New(config.CalendarDay, nil, AllWeek))
	c.add(New(config.CalendarBusinessDay, nil, MondayToFriday))
	for _, cal := range calendars {
		c.add(cal)
	}
	return c
}

func (c *Catalog) add(cal Calendar) {
	if _, exists := c.calendars[cal.Key()]; exists {
		slog.Debug(config.MsgCalendarReplaced,
			config.LogKeyComponent, config.CompCalendar,
			config.LogKeyCalendar, cal.Key())
	} else {
		c.order = append(c.order, cal.Key())
	}
	c.calendars[cal.Key()] = cal
}

// Keys returns the calendar keys in registration order.
func (c *Catalog) Keys() []string {
	return append([]string(nil), c.order...)
}

// Lookup returns the calendar registered under key.
func (c *Catalog) Lookup(key string) (Calendar, error) {
	cal, ok := c.calendars[key]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownCalendar, key)
	}
	return cal, nil
}

// Merge returns the calendar for a single key, or the composite of several.
// With no keys it returns the built-in BusinessDay calendar.
func (c *Catalog) Merge(keys ...string) (Calendar, error) {
	switch len(keys) {
	case 0:
		return c.Lookup(config.CalendarBusinessDay)
	case 1:
		return c.Lookup(keys[0])
	}
	children := make([]Calendar, 0, len(keys))
	for _, k := range keys {
		cal, err := c.Lookup(k)
		if err != nil {
			return nil, err
		}
		children = append(children, cal)
	}
	return NewComposite(config.CompositeCalendarKey, children...), nil
}

// NextBusinessDay returns the current or next business day of the merged
// calendars.
func (c *Catalog) NextBusinessDay(t time.Time, keys ...string) (time.Time, error) {
	cal, err := c.Merge(keys...)
	if err != nil {
		return time.Time{}, err
	}
	return CurrentOrNextBusinessDay(cal, t), nil
}

// AddBusinessDays adds n business days of the merged calendars to t.
func (c *Catalog) AddBusinessDays(t time.Time, n int, keys ...string) (time.Time, error) {
	cal, err := c.Merge(keys...)
	if err != nil {
		return time.Time{}, err
	}
	return AddBusinessDays(cal, t, n), nil
}

// BusinessDays enumerates the business days of the calendar key within r.
func (c *Catalog) BusinessDays(key string, r DateRange, match func(time.Time) bool) (iter.Seq[time.Time], error) {
	cal, err := c.Lookup(key)
	if err != nil {
		return nil, err
	}
	return BusinessDaysInRange(cal, r, match)
}

func (c *Catalog) FirstBusinessDaysOfWeek(key string, r DateRange, offset int) ([]time.Time, error) {
	cal, err := c.Lookup(key)
	if err != nil {
		return nil, err
	}
	return FirstBusinessDaysOfWeek(cal, r, offset)
}

func (c *Catalog) LastBusinessDaysOfWeek(key string, r DateRange, offset int) ([]time.Time, error) {
	cal, err := c.Lookup(key)
	if err != nil {
		return nil, err
	}
	return LastBusinessDaysOfWeek(cal, r, offset)
}
