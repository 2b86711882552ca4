package calendar

import (
	"iter"
	"time"

	"github.com/tartampluch/go-reldate/internal/config"
)

// Representable bounds used by the day-stepping loops of the calculus.
var (
	MinDate = time.Date(1, time.January, 1, 0, 0, 0, 0, time.UTC)
	MaxDate = time.Date(9999, time.December, 31, 23, 59, 59, 999999999, time.UTC)
)

// DateRange is an inclusive range of instants. Either bound may be missing,
// in which case the range is open (infinite) on that side.
// When both bounds are set, begin <= end is assumed but not enforced.
type DateRange struct {
	begin, end       time.Time
	hasBegin, hasEnd bool
}

// Infinite is the range with neither bound set.
var Infinite = DateRange{}

// NewDateRange returns a closed range [begin, end].
func NewDateRange(begin, end time.Time) DateRange {
	return DateRange{begin: begin, end: end, hasBegin: true, hasEnd: true}
}

// Since returns a range open towards the future.
func Since(begin time.Time) DateRange {
	return DateRange{begin: begin, hasBegin: true}
}

// Until returns a range open towards the past.
func Until(end time.Time) DateRange {
	return DateRange{end: end, hasEnd: true}
}

// Begin returns the lower bound and whether it is set.
func (r DateRange) Begin() (time.Time, bool) { return r.begin, r.hasBegin }

// End returns the upper bound and whether it is set.
func (r DateRange) End() (time.Time, bool) { return r.end, r.hasEnd }

// IsInfinite reports whether either bound is missing.
func (r DateRange) IsInfinite() bool {
	return !r.hasBegin || !r.hasEnd
}

// Contains reports whether t lies within the range. A missing bound is
// treated as -inf / +inf.
func (r DateRange) Contains(t time.Time) bool {
	if r.hasBegin && t.Before(r.begin) {
		return false
	}
	if r.hasEnd && t.After(r.end) {
		return false
	}
	return true
}

// Overlaps reports whether the closed interval [begin, end] shares at least
// one instant with the range. Missing bounds never exclude.
func (r DateRange) Overlaps(begin, end time.Time) bool {
	if r.hasBegin && end.Before(r.begin) {
		return false
	}
	if r.hasEnd && begin.After(r.end) {
		return false
	}
	return true
}

// Days yields every day starting at the begin instant, stepping one calendar
// day at a time while the range still contains it. Infinite ranges yield
// nothing.
func (r DateRange) Days() iter.Seq[time.Time] {
	return func(yield func(time.Time) bool) {
		if r.IsInfinite() {
			return
		}
		for d := r.begin; r.Contains(d); d = d.AddDate(0, 0, 1) {
			if !yield(d) {
				return
			}
		}
	}
}

func (r DateRange) String() string {
	from, to := config.RangeOpenBegin, config.RangeOpenEnd
	if r.hasBegin {
		from = r.begin.Format(config.DateFormatFullDash)
	}
	if r.hasEnd {
		to = r.end.Format(config.DateFormatFullDash)
	}
	return from + config.RangeSeparator + to
}

// truncateDay drops the time of day while keeping the location.
func truncateDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}
