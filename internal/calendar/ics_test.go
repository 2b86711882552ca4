package calendar_test

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tartampluch/go-reldate/internal/calendar"
	"github.com/tartampluch/go-reldate/internal/config"
)

var stamp = time.Date(2020, 1, 1, 12, 0, 0, 0, time.UTC)

func TestWriteICS(t *testing.T) {
	c := calendar.New("Office", []calendar.Holiday{
		calendar.NewHoliday(date(2020, 7, 3), "Independence Day"),
		calendar.NewHoliday(date(2021, 7, 5), "Independence Day"),
	}, calendar.MondayToFriday)

	var buf bytes.Buffer
	err := calendar.WriteICS(&buf, c, calendar.NewDateRange(date(2020, 1, 1), date(2020, 12, 31)), stamp)
	require.NoError(t, err)

	out := buf.String()
	assert.Contains(t, out, "BEGIN:VCALENDAR")
	assert.Contains(t, out, config.ICalProdid)
	assert.Contains(t, out, "X-WR-CALNAME:Office")
	assert.Contains(t, out, "SUMMARY:Independence Day")
	assert.Contains(t, out, "DTSTART;VALUE=DATE:20200703")
	assert.Contains(t, out, "DTEND;VALUE=DATE:20200704", "end date is exclusive")
	assert.NotContains(t, out, "20210705", "holidays outside the range are skipped")
	assert.Equal(t, 1, strings.Count(out, "BEGIN:VEVENT"))
}

func TestWriteICS_HolidayCoveringRange(t *testing.T) {
	shutdown := calendar.Holiday{
		Dates:       calendar.NewDateRange(date(2020, 12, 20), date(2020, 12, 29)),
		Description: "Winter shutdown",
	}
	c := calendar.New("Office", []calendar.Holiday{shutdown}, calendar.MondayToFriday)

	var buf bytes.Buffer
	err := calendar.WriteICS(&buf, c, calendar.NewDateRange(date(2020, 12, 23), date(2020, 12, 26)), stamp)
	require.NoError(t, err)

	out := buf.String()
	assert.Contains(t, out, "SUMMARY:Winter shutdown")
	assert.Contains(t, out, "DTSTART;VALUE=DATE:20201220")
	assert.Contains(t, out, "DTEND;VALUE=DATE:20201230")
	assert.Equal(t, 1, strings.Count(out, "BEGIN:VEVENT"))
}

func TestWriteICS_Empty(t *testing.T) {
	var buf bytes.Buffer
	err := calendar.WriteICS(&buf, calendar.New("Empty", nil, calendar.AllWeek), calendar.NewDateRange(date(2020, 1, 1), date(2020, 12, 31)), stamp)
	require.NoError(t, err)
	assert.Equal(t, config.StubVCalendar, buf.String())
}

func TestReadICS_RoundTrip(t *testing.T) {
	src := calendar.New("Office", []calendar.Holiday{
		calendar.NewHoliday(date(2020, 7, 3), "Independence Day"),
		calendar.NewHoliday(date(2020, 12, 25), "Christmas"),
	}, calendar.MondayToFriday)

	var buf bytes.Buffer
	require.NoError(t, calendar.WriteICS(&buf, src, calendar.NewDateRange(date(2020, 1, 1), date(2020, 12, 31)), stamp))

	got, err := calendar.ReadICS(&buf, "Imported", calendar.MondayToFriday, time.UTC)
	require.NoError(t, err)
	assert.Equal(t, "Imported", got.Key())
	require.Len(t, got.Holidays(), 2)
	assert.Equal(t, "Independence Day", got.Holidays()[0].Description)

	assert.True(t, calendar.IsHoliday(got, time.Date(2020, 7, 3, 18, 0, 0, 0, time.UTC)))
	assert.False(t, calendar.IsHoliday(got, date(2020, 7, 4)), "DTEND is exclusive")
	assert.True(t, calendar.IsHoliday(got, date(2020, 12, 25)))
}

func TestReadICS_MultiDayAndMissingEnd(t *testing.T) {
	feed := strings.Join([]string{
		"BEGIN:VCALENDAR",
		"VERSION:2.0",
		"PRODID:-//Test//EN",
		"BEGIN:VEVENT",
		"UID:a@test",
		"DTSTAMP:20200101T000000Z",
		"SUMMARY:Summer shutdown",
		"DTSTART;VALUE=DATE:20200810",
		"DTEND;VALUE=DATE:20200815",
		"END:VEVENT",
		"BEGIN:VEVENT",
		"UID:b@test",
		"DTSTAMP:20200101T000000Z",
		"SUMMARY:Bridge day",
		"DTSTART;VALUE=DATE:20201124",
		"END:VEVENT",
		"END:VCALENDAR",
		"",
	}, "\r\n")

	got, err := calendar.ReadICS(strings.NewReader(feed), "Feed", calendar.MondayToFriday, time.UTC)
	require.NoError(t, err)
	require.Len(t, got.Holidays(), 2)

	assert.True(t, calendar.IsHoliday(got, date(2020, 8, 14)))
	assert.False(t, calendar.IsHoliday(got, date(2020, 8, 15)))
	assert.True(t, calendar.IsHoliday(got, time.Date(2020, 11, 24, 23, 0, 0, 0, time.UTC)))
	assert.False(t, calendar.IsHoliday(got, date(2020, 11, 25)))
}

func TestReadICS_Invalid(t *testing.T) {
	_, err := calendar.ReadICS(strings.NewReader("BEGIN:VCALENDAR\r\nNOT A LINE\r\n"), "Bad", calendar.MondayToFriday, time.UTC)
	assert.ErrorIs(t, err, calendar.ErrICSDecode)
}

func TestEventUID(t *testing.T) {
	a := calendar.EventUID("Office", "Christmas", "2020-12-25")
	b := calendar.EventUID("Office", "Christmas", "2020-12-25")
	c := calendar.EventUID("Office", "Christmas", "2021-12-25")

	assert.Equal(t, a, b)
	assert.NotEqual(t, a, c)
	assert.True(t, strings.HasSuffix(a, "@"+config.ICalDomain))
}
