package reldate_test

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tartampluch/go-reldate/internal/reldate"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// -----------------------------------------------------------------------------
// Expression Evaluation
// -----------------------------------------------------------------------------

func TestApply_Expressions(t *testing.T) {
	thu := date(2020, 7, 16)
	sun := date(2020, 7, 19)
	aug := date(2020, 8, 10)

	tests := []struct {
		name     string
		anchor   time.Time
		expr     string
		expected time.Time
	}{
		{"Empty expression is identity", thu, "", thu},
		{"Start of year", thu, "^y", date(2020, 1, 1)},
		{"Start of month", thu, "^M", date(2020, 7, 1)},
		{"Start of week is Sunday", thu, "^w", date(2020, 7, 12)},
		{"Add three weekdays", thu, "+3D", date(2020, 7, 21)},
		{"Add four weekend days", thu, "+4e", date(2020, 7, 26)},
		{"Add two weeks", thu, "+2w", date(2020, 7, 30)},
		{"Subtract a day", thu, "-d", date(2020, 7, 15)},
		{"Next Saturday", sun, ">sat", date(2020, 7, 25)},
		{"Third Saturday then November", sun, ">3sat>nov", date(2020, 11, 8)},
		{"Fourth Monday of current month", sun, "^M>4mon", date(2020, 7, 27)},
		{"Fourth Monday of next month", sun, "+M^M>4mon", date(2020, 8, 24)},
		{"Back four weekend days from a Sunday", sun, "<4e", date(2020, 7, 11)},
		{"First Friday", sun, "@fri", date(2020, 7, 3)},
		{"Second Friday", sun, "@2fri", date(2020, 7, 10)},
		{"Last Friday", aug, "@!fri", date(2020, 8, 28)},
		{"Second last Friday", aug, "@2!fri", date(2020, 8, 21)},
		{"Last Monday", aug, "@!mon", date(2020, 8, 31)},
		{"Second last Monday", aug, "@2!mon", date(2020, 8, 24)},
		{"Last Wednesday", aug, "@!wed", date(2020, 8, 26)},
		{"Second last Wednesday", aug, "@2!wed", date(2020, 8, 19)},
		{"Matching Saturday stays put", date(2020, 7, 18), ">sat", date(2020, 7, 18)},
		{"Matching Saturday counts as first", date(2020, 7, 18), ">2sat", date(2020, 7, 25)},
		{"Previous Friday", sun, "<fri", date(2020, 7, 17)},
		{"Next Thursday skips today", thu, "+thu", date(2020, 7, 23)},
		{"Previous Thursday skips today", thu, "-thu", date(2020, 7, 9)},
		{"Second Monday after", thu, "+2mon", date(2020, 7, 27)},
		{"Start of Saturday", thu, "^sat", date(2020, 7, 11)},
		{"Start of weekday on a Saturday", date(2020, 7, 18), "^D", date(2020, 7, 20)},
		{"Start of weekend day", thu, "^e", date(2020, 7, 18)},
		{"Start of March", sun, "^mar", date(2020, 3, 1)},
		{"Current November", date(2020, 11, 5), ">nov", date(2020, 11, 5)},
		{"Next January", sun, ">jan", date(2021, 1, 19)},
		{"Previous January", sun, "<jan", date(2020, 1, 19)},
		{"Add January from January", date(2020, 1, 19), "+jan", date(2021, 1, 19)},
		{"Third January ahead", sun, "+3jan", date(2023, 1, 19)},
		{"Second March back", sun, "-2mar", date(2019, 3, 19)},
		{"February ahead clamps once", date(2020, 1, 31), "+feb", date(2020, 2, 29)},
		{"Month end clamps", date(2020, 1, 31), "+M", date(2020, 2, 29)},
		{"Leap day plus a year", date(2020, 2, 29), "+y", date(2021, 2, 28)},
		{"Month end clamps backwards", date(2020, 3, 31), "-M", date(2020, 2, 29)},
		{"Thanksgiving 2019", date(2019, 1, 1), "@11M@4thu", date(2019, 11, 28)},
		{"Thanksgiving 2020", date(2020, 1, 1), "@11M@4thu", date(2020, 11, 26)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := reldate.Apply(tt.anchor, tt.expr)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestApply_TimeOfDay(t *testing.T) {
	anchor := time.Date(2020, 7, 16, 10, 30, 45, 123456789, time.UTC)

	tests := []struct {
		expr     string
		expected time.Time
	}{
		{"^d", date(2020, 7, 16)},
		{"^H", time.Date(2020, 7, 16, 10, 0, 0, 0, time.UTC)},
		{"^m", time.Date(2020, 7, 16, 10, 30, 0, 0, time.UTC)},
		{"^s", time.Date(2020, 7, 16, 10, 30, 45, 0, time.UTC)},
		{"^S", time.Date(2020, 7, 16, 10, 30, 45, 123000000, time.UTC)},
		{"^d+7H", time.Date(2020, 7, 16, 7, 0, 0, 0, time.UTC)},
		{"+90m", time.Date(2020, 7, 16, 12, 0, 45, 123456789, time.UTC)},
		{"@3M@22d@8H@30m@0s@0S", time.Date(2020, 3, 22, 8, 30, 0, 0, time.UTC)},
		{"^s@250S", time.Date(2020, 7, 16, 10, 30, 45, 250000000, time.UTC)},
		{"+fri", time.Date(2020, 7, 17, 10, 30, 45, 123456789, time.UTC)},
		{"^y+3000000H", date(2362, 3, 29)},
		{"^y+200000000m", time.Date(2400, 4, 6, 21, 20, 0, 0, time.UTC)},
		{"^y+10000000000s", time.Date(2336, 11, 20, 17, 46, 40, 0, time.UTC)},
		{"^y+10000000000000S", time.Date(2336, 11, 20, 17, 46, 40, 0, time.UTC)},
		{"^y+200000000m-200000000m", date(2020, 1, 1)},
	}

	for _, tt := range tests {
		t.Run(tt.expr, func(t *testing.T) {
			got, err := reldate.Apply(anchor, tt.expr)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestApply_Conditionals(t *testing.T) {
	rd, err := reldate.Parse("?sat{-d}?sun{+d}")
	require.NoError(t, err)

	tests := []struct {
		name     string
		anchor   time.Time
		expected time.Time
	}{
		{"Saturday rolls back to Friday", date(2020, 7, 18), date(2020, 7, 17)},
		{"Sunday rolls forward to Monday", date(2020, 7, 19), date(2020, 7, 20)},
		{"Friday is unchanged", date(2020, 7, 17), date(2020, 7, 17)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := rd.Apply(tt.anchor)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, got)
		})
	}

	t.Run("Else branch", func(t *testing.T) {
		rd := reldate.MustParse("?sat{+d}{-d}")
		got, err := rd.Apply(date(2020, 7, 16))
		require.NoError(t, err)
		assert.Equal(t, date(2020, 7, 15), got)
	})

	t.Run("Empty branches keep the date", func(t *testing.T) {
		got, err := reldate.Apply(date(2020, 7, 18), "?sat{}{}")
		require.NoError(t, err)
		assert.Equal(t, date(2020, 7, 18), got)
	})

	t.Run("Nested branches", func(t *testing.T) {
		rd := reldate.MustParse("?e{?sat{+2d}{+d}}")
		for anchor, want := range map[time.Time]time.Time{
			date(2020, 7, 18): date(2020, 7, 20),
			date(2020, 7, 19): date(2020, 7, 20),
			date(2020, 7, 16): date(2020, 7, 16),
		} {
			got, err := rd.Apply(anchor)
			require.NoError(t, err)
			assert.Equal(t, want, got, "anchor %s", anchor.Format(time.DateOnly))
		}
	})
}

// -----------------------------------------------------------------------------
// Holiday Rules
// -----------------------------------------------------------------------------

func TestApply_HolidayRules(t *testing.T) {
	newYear := reldate.MustParse("^y>D")
	independence := reldate.MustParse("@7M@4d?sat{<D}?sun{>D}")

	tests := []struct {
		name     string
		rule     *reldate.RelativeDate
		anchor   time.Time
		expected time.Time
	}{
		{"New Year 2000 on a Saturday", newYear, date(2000, 6, 1), date(2000, 1, 3)},
		{"New Year 2017 on a Sunday", newYear, date(2017, 6, 1), date(2017, 1, 2)},
		{"New Year 2020 on a Wednesday", newYear, date(2020, 6, 1), date(2020, 1, 1)},
		{"Independence Day 2020 on a Saturday", independence, date(2020, 1, 1), date(2020, 7, 3)},
		{"Independence Day 2021 on a Sunday", independence, date(2021, 1, 1), date(2021, 7, 5)},
		{"Independence Day 2019 on a Thursday", independence, date(2019, 1, 1), date(2019, 7, 4)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.rule.Apply(tt.anchor)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, got)
		})
	}
}

// -----------------------------------------------------------------------------
// Apply-time Failures
// -----------------------------------------------------------------------------

func TestApply_InvalidDates(t *testing.T) {
	tests := []struct {
		name   string
		anchor time.Time
		expr   string
	}{
		{"Day 31 in April", date(2020, 4, 10), "@31d"},
		{"Day 30 in February", date(2020, 2, 10), "@30d"},
		{"Day zero", date(2020, 4, 10), "@0d"},
		{"Month 13", date(2020, 4, 10), "@13M"},
		{"Hour 24", date(2020, 4, 10), "@24H"},
		{"Minute 60", date(2020, 4, 10), "@60m"},
		{"Millisecond 1000", date(2020, 4, 10), "@1000S"},
		{"Year 10000", date(2020, 4, 10), "@10000y"},
		{"Before the minimum date", date(1, 1, 1), "-d"},
		{"After the maximum date", date(9999, 12, 31), "+d"},
		{"Januaries past year 9999", date(2020, 4, 10), "+9000jan"},
		{"Too many Januaries", date(2020, 4, 10), "+10000000jan"},
		{"Too many months back", date(2020, 4, 10), "-9999999999mar"},
		{"Too many hours", date(2020, 4, 10), "+99999999999999H"},
		{"Too many milliseconds", date(2020, 4, 10), "-9000000000000000000S"},
		{"Too many days", date(2020, 4, 10), "-9999999999d"},
		{"Too many weekdays", date(2020, 4, 10), "+9999999999D"},
		{"Too many Mondays", date(2020, 4, 10), "@9999999999mon"},
		{"Too many years", date(2020, 4, 10), "+9999999999999y"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := reldate.Apply(tt.anchor, tt.expr)
			assert.ErrorIs(t, err, reldate.ErrInvalidDate)
		})
	}
}

func TestApply_HugeCountsFailFast(t *testing.T) {
	start := time.Now()
	for _, expr := range []string{"+9999999999jan", ">9999999999D", "-9999999999e", "+9999999999fri"} {
		_, err := reldate.Apply(date(2020, 1, 1), expr)
		assert.ErrorIs(t, err, reldate.ErrInvalidDate, expr)
	}
	assert.Less(t, time.Since(start), time.Second)
}

func TestApply_FailureAbortsPipeline(t *testing.T) {
	rd := reldate.MustParse("@31d+y")
	got, err := rd.Apply(date(2020, 4, 10))
	require.ErrorIs(t, err, reldate.ErrInvalidDate)
	assert.True(t, got.IsZero())
}

// -----------------------------------------------------------------------------
// Pipeline Properties
// -----------------------------------------------------------------------------

func TestRelativeDate_Accessors(t *testing.T) {
	rd := reldate.MustParse("^M>4mon")
	assert.Equal(t, "^M>4mon", rd.Expression())
	assert.Equal(t, "^M>4mon", rd.String())

	ops := rd.Operations()
	require.Len(t, ops, 2)
	assert.Equal(t, reldate.ActionStart, ops[0].Action.Kind)
	assert.Equal(t, "M", ops[0].Unit.Key)
	assert.Equal(t, reldate.ActionMoveToNext, ops[1].Action.Kind)
	assert.Equal(t, time.Monday, ops[1].Unit.Weekday)
	assert.Equal(t, 4, ops[1].Number)

	// Mutating the copy must not leak into the pipeline.
	ops[1].Number = 1
	assert.Equal(t, 4, rd.Operations()[1].Number)

	var nilRD *reldate.RelativeDate
	got, err := nilRD.Apply(date(2020, 7, 16))
	require.NoError(t, err)
	assert.Equal(t, date(2020, 7, 16), got)
}

func TestRelativeDate_ReparseIsStable(t *testing.T) {
	first := reldate.MustParse("@7M@4d?sat{<D}?sun{>D}")
	second := reldate.MustParse(first.Expression())
	assert.Equal(t, first.Operations(), second.Operations())

	for y := 2015; y <= 2030; y++ {
		a, errA := first.Apply(date(y, 1, 1))
		b, errB := second.Apply(date(y, 1, 1))
		require.NoError(t, errA)
		require.NoError(t, errB)
		assert.Equal(t, a, b)
	}
}

func TestRelativeDate_ConcurrentUse(t *testing.T) {
	rd := reldate.MustParse("^M>4mon")
	want, err := rd.Apply(date(2020, 7, 19))
	require.NoError(t, err)

	const workers = 32
	var wg sync.WaitGroup
	results := make([]time.Time, workers)
	errs := make([]error, workers)
	for i := range workers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if i%2 == 0 {
				results[i], errs[i] = rd.Apply(date(2020, 7, 19))
				return
			}
			results[i], errs[i] = reldate.Apply(date(2020, 7, 19), "^M>4mon")
		}()
	}
	wg.Wait()

	for i := range workers {
		require.NoError(t, errs[i])
		assert.Equal(t, want, results[i])
	}
}
