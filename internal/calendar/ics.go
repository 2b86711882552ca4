package calendar

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/emersion/go-ical"
	"github.com/google/uuid"
	"github.com/tartampluch/go-reldate/internal/config"
)

// ReadICS builds a calendar from the VEVENTs of an iCalendar stream. Each
// event becomes a holiday spanning DTSTART up to (excluding) DTEND; events
// without DTEND cover the whole start day. Malformed events are skipped.
func ReadICS(r io.Reader, key string, workweek Workweek, loc *time.Location) (*SimpleCalendar, error) {
	log := slog.With(config.LogKeyComponent, config.CompICS, config.LogKeyCalendar, key)
	dec := ical.NewDecoder(r)

	var holidays []Holiday
	for {
		cal, err := dec.Decode()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrICSDecode, err)
		}
		for _, ev := range cal.Events() {
			h, err := holidayFromEvent(ev, loc)
			if err != nil {
				log.Warn(config.MsgSkippedEvent, config.LogKeyError, err)
				continue
			}
			holidays = append(holidays, h)
		}
	}

	log.Debug(config.MsgHolidaysLoaded, config.LogKeyCount, len(holidays))
	return New(key, holidays, workweek), nil
}

func holidayFromEvent(ev ical.Event, loc *time.Location) (Holiday, error) {
	start, err := ev.DateTimeStart(loc)
	if err != nil {
		return Holiday{}, err
	}
	summary, _ := ev.Props.Text(config.PropSummary)

	endProp := ev.Props.Get(config.PropDTEnd)
	if endProp == nil {
		h := NewHoliday(start, summary)
		return h, nil
	}
	end, err := endProp.DateTime(loc)
	if err != nil {
		return Holiday{}, err
	}
	if !end.After(start) {
		return NewHoliday(start, summary), nil
	}
	return Holiday{
		Dates:       NewDateRange(start, end.Add(-time.Nanosecond)),
		Description: summary,
	}, nil
}

// WriteICS encodes the holidays of c that intersect r as all-day events.
// stamp is used for DTSTAMP so that output is reproducible.
func WriteICS(w io.Writer, c Calendar, r DateRange, stamp time.Time) error {
	cal := NewICSCalendar(c.Key())

	for _, h := range c.Holidays() {
		begin, okBegin := h.Dates.Begin()
		end, okEnd := h.Dates.End()
		if !okBegin || !okEnd {
			continue
		}
		if !r.Overlaps(begin, end) {
			continue
		}
		ev := NewAllDayEvent(EventUID(c.Key(), h.Description, begin.Format(config.DateFormatFullDash)),
			h.Description, begin, truncateDay(end).AddDate(0, 0, 1), stamp)
		cal.Children = append(cal.Children, ev.Component)
	}

	if len(cal.Children) == 0 {
		_, err := io.WriteString(w, config.StubVCalendar)
		return err
	}
	if err := ical.NewEncoder(w).Encode(cal); err != nil {
		return fmt.Errorf("%s: %w", config.ErrICalEncode, err)
	}
	return nil
}

// NewICSCalendar returns an empty VCALENDAR carrying the standard headers.
func NewICSCalendar(name string) *ical.Calendar {
	cal := ical.NewCalendar()
	cal.Props.SetText(config.PropVersion, config.ICalVersion)
	cal.Props.SetText(config.PropProdid, config.ICalProdid)
	cal.Props.SetText(config.PropXWRCalName, name)
	cal.Props.SetText(config.PropCalScale, config.ICalScale)
	cal.Props.SetText(config.PropMethod, config.ICalMethod)
	return cal
}

// NewAllDayEvent returns a VEVENT with DATE-valued DTSTART/DTEND; end is
// exclusive.
func NewAllDayEvent(uid, summary string, start, end, stamp time.Time) *ical.Event {
	ev := ical.NewEvent()
	ev.Props.SetText(config.PropUID, uid)
	ev.Props.SetText(config.PropSummary, summary)
	ev.Props.SetDateTime(config.PropDTStamp, stamp.UTC())

	dtStart := ical.NewProp(config.PropDTStart)
	dtStart.SetDate(start)
	ev.Props.Set(dtStart)

	dtEnd := ical.NewProp(config.PropDTEnd)
	dtEnd.SetDate(end)
	ev.Props.Set(dtEnd)
	return ev
}

// EventUID derives a stable UID from the given parts, so that re-generating
// a feed keeps the same identifiers.
func EventUID(parts ...string) string {
	id := uuid.NewSHA1(uuid.NameSpaceOID, []byte(config.UIDSalt+strings.Join(parts, config.UIDSeparator)))
	return id.String() + "@" + config.ICalDomain
}
