package engine

import (
	"bytes"
	"cmp"
	"context"
	"fmt"
	"log/slog"
	"slices"
	"time"

	"github.com/emersion/go-ical"
	"github.com/tartampluch/go-reldate/internal/calendar"
	"github.com/tartampluch/go-reldate/internal/config"
)

// Generator evaluates a rule set into an iCalendar observance feed.
type Generator struct {
	Clock   Clock          // Interface for time mocking.
	Fetcher HolidayFetcher // Interface for network abstraction.

	// FormatSummary renders the event title of a rule without an explicit
	// summary. It defaults to config.FallbackSummary.
	FormatSummary func(rule string, date time.Time) string
}

type syncStats struct {
	rules, holidays, occurrences, today int
}

// RunSync loads the holiday calendar, evaluates every rule for the previous,
// current and next year, and renders the feed.
// It returns the ICS data, the occurrences sorted by date, the count of
// occurrences falling today, and any error.
func (g *Generator) RunSync(ctx context.Context, rs *RuleSet) ([]byte, []Occurrence, int, error) {
	start := time.Now()
	log := slog.With(config.LogKeyComponent, config.CompEngine)
	log.InfoContext(ctx, config.MsgSyncStarted)

	rules, err := rs.compile()
	if err != nil {
		return nil, nil, 0, err
	}

	now := g.Clock.Now()
	year := now.Year()

	// One extra year so that rolling past December 31 still sees holidays.
	cal, err := g.LoadCalendar(ctx, rs.Calendar, year-1, year+2, now.Location())
	if err != nil {
		return nil, nil, 0, err
	}

	if err := ctx.Err(); err != nil {
		return nil, nil, 0, err
	}

	occurrences := g.evaluate(rules, cal, now)

	stats := syncStats{rules: len(rules), holidays: len(cal.Holidays()), occurrences: len(occurrences)}
	ty, tm, td := now.Date()
	for _, o := range occurrences {
		if y, m, d := o.Date.Date(); y == ty && m == tm && d == td {
			stats.today++
			slog.Info(config.MsgObservanceToday,
				config.LogKeyComponent, config.CompEngine,
				config.LogKeyName, o.Rule,
				config.LogKeyDate, o.Date.Format(config.DateFormatFullDash))
		}
	}

	ics, err := renderFeed(occurrences, now)
	if err != nil {
		return nil, nil, 0, err
	}

	g.logSuccess(stats)
	log.Debug(config.MsgSyncFinished, config.LogKeyDuration, time.Since(start).Milliseconds())
	return ics, occurrences, stats.today, nil
}

// evaluate applies every rule to January 1st of the years around now and
// rolls the results onto cal. Rules failing for an anchor are skipped for
// that year only.
func (g *Generator) evaluate(rules []compiledRule, cal calendar.Calendar, now time.Time) []Occurrence {
	loc := now.Location()
	seen := make(map[string]bool)
	var out []Occurrence

	for _, r := range rules {
		description := r.pipeline.Description()
		for _, y := range []int{now.Year() - 1, now.Year(), now.Year() + 1} {
			anchor := time.Date(y, time.January, 1, 0, 0, 0, 0, loc)
			computed, err := r.pipeline.Apply(anchor)
			if err != nil {
				slog.Warn(config.MsgSkippedRule,
					config.LogKeyComponent, config.CompEngine,
					config.LogKeyName, r.Name,
					config.LogKeyExpression, r.Expression,
					config.LogKeyDate, anchor.Format(config.DateFormatFullDash),
					config.LogKeyError, err)
				continue
			}
			day := roll(cal, computed, r.Roll)

			uid := calendar.EventUID(cal.Key(), r.Name, day.Format(config.DateFormatFullDash))
			if seen[uid] {
				continue
			}
			seen[uid] = true

			out = append(out, Occurrence{
				UID:         uid,
				Rule:        r.Name,
				Summary:     g.summary(r.Rule, day),
				Description: description,
				Anchor:      anchor,
				Computed:    computed,
				Date:        day,
			})
		}
	}

	slices.SortStableFunc(out, func(a, b Occurrence) int {
		if c := a.Date.Compare(b.Date); c != 0 {
			return c
		}
		return cmp.Compare(a.Rule, b.Rule)
	})
	return out
}

func (g *Generator) summary(r Rule, day time.Time) string {
	if r.Summary != "" {
		return r.Summary
	}
	if g.FormatSummary != nil {
		return g.FormatSummary(r.Name, day)
	}
	return fmt.Sprintf(config.FallbackSummary, r.Name)
}

// roll moves d onto a business day of cal according to the convention and
// drops the time of day.
func roll(cal calendar.Calendar, d time.Time, convention string) time.Time {
	switch convention {
	case config.RollFollowing:
		return calendar.CurrentOrNextBusinessDay(cal, d)
	case config.RollPreceding:
		return calendar.CurrentOrPriorBusinessDay(cal, d)
	}
	y, m, day := d.Date()
	return time.Date(y, m, day, 0, 0, 0, 0, d.Location())
}

// renderFeed encodes the occurrences as all-day events.
func renderFeed(occurrences []Occurrence, now time.Time) ([]byte, error) {
	// An empty VCALENDAR keeps subscribed clients from flagging the feed as
	// invalid.
	if len(occurrences) == 0 {
		return []byte(config.StubVCalendar), nil
	}

	cal := calendar.NewICSCalendar(config.ICalCalName)

	// RFC 7986
	refreshProp := ical.NewProp(config.PropRefresh)
	refreshProp.SetDuration(config.DefaultICalRefresh)
	cal.Props.Set(refreshProp)

	for _, o := range occurrences {
		ev := calendar.NewAllDayEvent(o.UID, o.Summary, o.Date, o.Date.AddDate(0, 0, 1), now)
		if o.Description != "" {
			ev.Props.SetText(config.PropDescription, o.Description)
		}
		cal.Children = append(cal.Children, ev.Component)
	}

	var buf bytes.Buffer
	if err := ical.NewEncoder(&buf).Encode(cal); err != nil {
		return nil, fmt.Errorf("%s: %w", config.ErrICalEncode, err)
	}
	return buf.Bytes(), nil
}

// logSuccess logs the final statistics of the generation process.
func (g *Generator) logSuccess(stats syncStats) {
	slog.Info(config.MsgGenSuccess,
		config.LogKeyComponent, config.CompEngine,
		slog.Group(config.LogKeyStats,
			slog.Int(config.LogKeyRules, stats.rules),
			slog.Int(config.LogKeyHolidays, stats.holidays),
			slog.Int(config.LogKeyOccur, stats.occurrences),
			slog.Int(config.LogKeyToday, stats.today),
		),
	)
}
