package calendar_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tartampluch/go-reldate/internal/calendar"
)

func TestUSFederal(t *testing.T) {
	c := calendar.USFederal("US", 2020, 2021, time.UTC)

	tests := []struct {
		name    string
		day     time.Time
		holiday bool
	}{
		{"Independence Day observed on Friday", date(2020, 7, 3), true},
		{"Independence Day itself is a Saturday", date(2020, 7, 4), false},
		{"Thanksgiving", date(2020, 11, 26), true},
		{"Memorial Day", date(2020, 5, 25), true},
		{"Juneteenth not yet in effect", date(2020, 6, 19), false},
		{"Juneteenth observed", date(2021, 6, 18), true},
		{"Ordinary day", date(2020, 6, 3), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.holiday, calendar.IsHoliday(c, tt.day))
		})
	}
	assert.Equal(t, "US", c.Key())
	assert.Equal(t, calendar.MondayToFriday, c.Workweek())
}

func TestPreset(t *testing.T) {
	c, ok := calendar.Preset(calendar.PresetUS, "Holidays", 2020, 2020, time.UTC)
	require.True(t, ok)
	assert.Equal(t, "Holidays", c.Key())
	assert.NotEmpty(t, c.Holidays())

	_, ok = calendar.Preset("xx", "Holidays", 2020, 2020, time.UTC)
	assert.False(t, ok)
}
