package engine

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/tartampluch/go-reldate/internal/calendar"
	"github.com/tartampluch/go-reldate/internal/config"
)

// LoadCalendar materializes the holiday calendar described by spec. Preset
// holidays are generated for fromYear..toYear; inline and source holidays
// are taken as declared. Dates are interpreted in loc.
func (g *Generator) LoadCalendar(ctx context.Context, spec CalendarSpec, fromYear, toYear int, loc *time.Location) (*calendar.SimpleCalendar, error) {
	key := spec.Key
	if key == "" {
		key = config.DefaultRulesCalendar
	}
	log := slog.With(config.LogKeyComponent, config.CompEngine, config.LogKeyCalendar, key)

	workweek, err := calendar.ParseWorkweek(spec.Workweek)
	if err != nil {
		return nil, err
	}

	var holidays []calendar.Holiday

	if spec.Preset != "" {
		preset, ok := calendar.Preset(spec.Preset, key, fromYear, toYear, loc)
		if !ok {
			return nil, fmt.Errorf("%w: %q", ErrUnknownPreset, spec.Preset)
		}
		holidays = append(holidays, preset.Holidays()...)
	}

	for _, h := range spec.Holidays {
		holiday, err := parseHoliday(h, loc)
		if err != nil {
			return nil, err
		}
		holidays = append(holidays, holiday)
	}

	if spec.Source != nil {
		imported, err := g.loadSource(ctx, spec.Source, key, loc)
		if err != nil {
			if ctx.Err() != nil {
				return nil, ctx.Err()
			}
			return nil, fmt.Errorf("%s: %w", config.ErrHolidaySource, err)
		}
		holidays = append(holidays, imported.Holidays()...)
	}

	log.Debug(config.MsgHolidaysLoaded, config.LogKeyHolidays, len(holidays))
	return calendar.New(key, holidays, workweek), nil
}

func parseHoliday(h HolidaySpec, loc *time.Location) (calendar.Holiday, error) {
	begin, err := time.ParseInLocation(config.DateFormatFullDash, h.Date, loc)
	if err != nil {
		return calendar.Holiday{}, fmt.Errorf("%w %q: %w", ErrInvalidHoliday, h.Date, err)
	}
	if h.Until == "" {
		return calendar.NewHoliday(begin, h.Description), nil
	}
	last, err := time.ParseInLocation(config.DateFormatFullDash, h.Until, loc)
	if err != nil {
		return calendar.Holiday{}, fmt.Errorf("%w %q: %w", ErrInvalidHoliday, h.Until, err)
	}
	if last.Before(begin) {
		return calendar.Holiday{}, fmt.Errorf("%w: %s before %s", ErrInvalidHoliday, h.Until, h.Date)
	}
	return calendar.Holiday{
		Dates:       calendar.NewDateRange(begin, last.AddDate(0, 0, 1).Add(-time.Nanosecond)),
		Description: h.Description,
	}, nil
}

// loadSource reads the holidays of an iCalendar source. The workweek of the
// result is irrelevant; only its holidays are used.
func (g *Generator) loadSource(ctx context.Context, src *SourceSpec, key string, loc *time.Location) (*calendar.SimpleCalendar, error) {
	slog.Debug(config.MsgSourceOpen,
		config.LogKeyComponent, config.CompEngine,
		config.LogKeyCalendar, key,
		config.LogKeyMode, src.Mode,
	)

	reader, err := g.acquireStream(ctx, src)
	if err != nil {
		return nil, err
	}
	defer func() { _ = reader.Close() }()

	return calendar.ReadICS(reader, key, calendar.MondayToFriday, loc)
}

// acquireStream opens the appropriate data source based on configuration.
func (g *Generator) acquireStream(ctx context.Context, src *SourceSpec) (io.ReadCloser, error) {
	switch src.Mode {
	case config.SourceModeLocal:
		if src.Path == "" {
			return nil, errors.New(config.ErrLocalPathEmpty)
		}
		return os.Open(src.Path)
	case config.SourceModeWeb:
		if src.URL == "" {
			return nil, errors.New(config.ErrWebURLEmpty)
		}
		if g.Fetcher == nil {
			return nil, errors.New(config.ErrFetcherMissing)
		}
		pass := src.Password
		if pass == "" {
			pass = LookupPassword(src.User)
		}
		return g.Fetcher.Fetch(ctx, src.URL, src.User, pass)
	default:
		return nil, fmt.Errorf("%s: %q", config.ErrModeUnsupport, src.Mode)
	}
}
