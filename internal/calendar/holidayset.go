package calendar

import (
	"time"

	"github.com/rickar/cal/v2"
	"github.com/rickar/cal/v2/us"
)

// USFederalHolidays is the United States federal holiday set.
var USFederalHolidays = []*cal.Holiday{
	us.NewYear,
	us.MlkDay,
	us.PresidentsDay,
	us.MemorialDay,
	us.Juneteenth,
	us.IndependenceDay,
	us.LaborDay,
	us.ColumbusDay,
	us.VeteransDay,
	us.ThanksgivingDay,
	us.ChristmasDay,
}

// FromHolidaySet materializes rule-based holiday definitions into a Monday
// to Friday calendar covering the years fromYear..toYear inclusive. The
// observed date of each holiday is used; years in which a holiday is not in
// effect are skipped. Holidays start at midnight in loc.
func FromHolidaySet(key string, fromYear, toYear int, loc *time.Location, set []*cal.Holiday) *SimpleCalendar {
	var holidays []Holiday
	for year := fromYear; year <= toYear; year++ {
		for _, h := range set {
			_, observed := h.Calc(year)
			if observed.IsZero() {
				continue
			}
			y, m, d := observed.Date()
			holidays = append(holidays, NewHoliday(time.Date(y, m, d, 0, 0, 0, 0, loc), h.Name))
		}
	}
	return New(key, holidays, MondayToFriday)
}

// USFederal returns the US federal holiday calendar for the given years.
func USFederal(key string, fromYear, toYear int, loc *time.Location) *SimpleCalendar {
	return FromHolidaySet(key, fromYear, toYear, loc, USFederalHolidays)
}

// Preset returns the named built-in holiday calendar, if any.
func Preset(name, key string, fromYear, toYear int, loc *time.Location) (*SimpleCalendar, bool) {
	switch name {
	case PresetUS:
		return USFederal(key, fromYear, toYear, loc), true
	}
	return nil, false
}

// PresetUS names the US federal preset.
const PresetUS = "us"
