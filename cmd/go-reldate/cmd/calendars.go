package cmd

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/tartampluch/go-reldate/internal/calendar"
	"github.com/tartampluch/go-reldate/internal/config"
	"github.com/tartampluch/go-reldate/internal/engine"
)

// calendarFlags select a calendar and a date range. They are shared by the
// commands that query a catalog.
type calendarFlags struct {
	keys   []string
	preset string
	rules  string
	from   string
	to     string
}

func (f *calendarFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringSliceVar(&f.keys, config.FlagCalendar, nil, config.FlagDescCalendar)
	cmd.Flags().StringVar(&f.preset, config.FlagPreset, "", config.FlagDescPreset)
	cmd.Flags().StringVar(&f.rules, config.FlagRules, "", config.FlagDescRules)
	cmd.Flags().StringVar(&f.from, config.FlagFrom, "", config.FlagDescFrom)
	cmd.Flags().StringVar(&f.to, config.FlagTo, "", config.FlagDescTo)
}

// dateRange returns the selected range with open sides for missing bounds.
// The end is midnight of the last day.
func (f *calendarFlags) dateRange() (calendar.DateRange, error) {
	from, err := parseDay(f.from)
	if err != nil {
		return calendar.DateRange{}, err
	}
	to, err := parseDay(f.to)
	if err != nil {
		return calendar.DateRange{}, err
	}
	switch {
	case from.IsZero() && to.IsZero():
		return calendar.Infinite, nil
	case to.IsZero():
		return calendar.Since(from), nil
	case from.IsZero():
		return calendar.Until(to), nil
	}
	return calendar.NewDateRange(from, to), nil
}

// years returns the span covered by generated holidays: the range's years,
// or the current year widened by config.DefaultPresetYears on open sides.
func years(r calendar.DateRange, now time.Time) (int, int) {
	fromYear := now.Year() - config.DefaultPresetYears
	toYear := now.Year() + config.DefaultPresetYears
	if begin, ok := r.Begin(); ok {
		fromYear = begin.Year()
	}
	if end, ok := r.End(); ok {
		toYear = end.Year()
	}
	return fromYear, toYear
}

// catalog assembles the built-in calendars, the preset named by --preset
// (keyed by the preset name) and the calendar of the --rules file.
func (f *calendarFlags) catalog(ctx context.Context, fromYear, toYear int) (*calendar.Catalog, error) {
	var cals []calendar.Calendar

	if f.preset != "" {
		c, ok := calendar.Preset(f.preset, f.preset, fromYear, toYear, time.Local)
		if !ok {
			return nil, fmt.Errorf("%w: %q", engine.ErrUnknownPreset, f.preset)
		}
		cals = append(cals, c)
	}

	if f.rules != "" {
		rs, err := engine.LoadRules(f.rules)
		if err != nil {
			return nil, err
		}
		c, err := newGenerator().LoadCalendar(ctx, rs.Calendar, fromYear, toYear, time.Local)
		if err != nil {
			return nil, err
		}
		cals = append(cals, c)
	}

	return calendar.NewCatalog(cals...), nil
}

// resolve returns the merged calendar of the --calendar keys and the
// selected range.
func (f *calendarFlags) resolve(ctx context.Context) (calendar.Calendar, calendar.DateRange, error) {
	r, err := f.dateRange()
	if err != nil {
		return nil, r, err
	}
	fromYear, toYear := years(r, time.Now())
	cat, err := f.catalog(ctx, fromYear, toYear)
	if err != nil {
		return nil, r, err
	}
	cal, err := cat.Merge(f.keys...)
	if err != nil {
		return nil, r, err
	}
	return cal, r, nil
}

// parseDay reads a YYYY-MM-DD date in the local time zone. The empty string
// yields the zero time.
func parseDay(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, nil
	}
	t, err := time.ParseInLocation(config.DateFormatFullDash, s, time.Local)
	if err != nil {
		return time.Time{}, fmt.Errorf("%s %q: %w", config.ErrDateParse, s, err)
	}
	return t, nil
}

func newGenerator() *engine.Generator {
	return &engine.Generator{
		Clock:   engine.RealClock{},
		Fetcher: engine.NewHTTPFetcher(),
	}
}
