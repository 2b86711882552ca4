package reldate

import (
	"fmt"
	"time"

	"github.com/tartampluch/go-reldate/internal/config"
)

// Period names a unit in builder calls.
type Period int

const (
	PeriodMillisecond Period = iota
	PeriodSecond
	PeriodMinute
	PeriodHour
	PeriodDay
	PeriodWeekday
	PeriodWeekend
	PeriodBusinessDay
	PeriodWeek
	PeriodMonth
	PeriodQuarter
	PeriodYear
	PeriodDecade
	PeriodCentury
)

var periodNames = [...]string{
	PeriodMillisecond: "Millisecond",
	PeriodSecond:      "Second",
	PeriodMinute:      "Minute",
	PeriodHour:        "Hour",
	PeriodDay:         "Day",
	PeriodWeekday:     "Weekday",
	PeriodWeekend:     "Weekend",
	PeriodBusinessDay: "BusinessDay",
	PeriodWeek:        "Week",
	PeriodMonth:       "Month",
	PeriodQuarter:     "Quarter",
	PeriodYear:        "Year",
	PeriodDecade:      "Decade",
	PeriodCentury:     "Century",
}

func (p Period) String() string {
	if p >= 0 && int(p) < len(periodNames) {
		return periodNames[p]
	}
	return fmt.Sprintf("Period(%d)", int(p))
}

// unitKey maps a period onto its unit key. Quarter, decade and century have
// none. BusinessDay maps onto a reserved key that no unit claims, so it
// fails the registry lookup.
func (p Period) unitKey() (string, bool) {
	switch p {
	case PeriodMillisecond:
		return config.UnitKeyMillisecond, true
	case PeriodSecond:
		return config.UnitKeySecond, true
	case PeriodMinute:
		return config.UnitKeyMinute, true
	case PeriodHour:
		return config.UnitKeyHour, true
	case PeriodDay:
		return config.UnitKeyDay, true
	case PeriodWeekday:
		return config.UnitKeyWeekday, true
	case PeriodWeekend:
		return config.UnitKeyWeekendDay, true
	case PeriodBusinessDay:
		return config.UnitKeyBusinessDay, true
	case PeriodWeek:
		return config.UnitKeyWeek, true
	case PeriodMonth:
		return config.UnitKeyMonth, true
	case PeriodYear:
		return config.UnitKeyYear, true
	}
	return "", false
}

// Builder assembles a pipeline in code. Methods record the first error and
// turn the rest of the chain into no-ops; Build reports it.
//
//	rd, err := reldate.NewBuilder().
//		MoveTo(reldate.PeriodMonth, 11).
//		MoveToWeekday(time.Thursday, 4).
//		Build()
type Builder struct {
	reg *Registry
	ops []Operation
	err error
}

// NewBuilder returns an empty builder over the default registry.
func NewBuilder() *Builder {
	return DefaultRegistry().NewBuilder()
}

// NewBuilder returns an empty builder over r.
func (r *Registry) NewBuilder() *Builder {
	return &Builder{reg: r}
}

func (b *Builder) periodUnit(p Period) (Unit, bool) {
	key, ok := p.unitKey()
	if !ok {
		b.err = fmt.Errorf("%w: %s", ErrUnsupportedPeriod, p)
		return Unit{}, false
	}
	u, ok := b.reg.Unit(key)
	if !ok {
		b.err = fmt.Errorf("%w: %s", ErrUnsupportedPeriod, p)
		return Unit{}, false
	}
	return u, true
}

func (b *Builder) weekdayUnit(d time.Weekday, last bool) (Unit, bool) {
	if d < time.Sunday || d > time.Saturday {
		b.err = fmt.Errorf("%w: %d", ErrUnknownUnit, int(d))
		return Unit{}, false
	}
	key := staticKey(d.String())
	if last {
		key = config.SymbolLastModifier + key
	}
	u, ok := b.reg.Unit(key)
	if !ok {
		b.err = fmt.Errorf("%w: %q", ErrUnknownUnit, key)
	}
	return u, ok
}

func (b *Builder) push(kind ActionKind, u Unit, n int) *Builder {
	a := actionOf(kind)
	if err := a.check(u, false); err != nil {
		b.err = err
		return b
	}
	b.ops = append(b.ops, Operation{Action: a, Unit: u, Number: n})
	return b
}

func (b *Builder) period(kind ActionKind, p Period, n int) *Builder {
	if b.err != nil {
		return b
	}
	u, ok := b.periodUnit(p)
	if !ok {
		return b
	}
	return b.push(kind, u, n)
}

func (b *Builder) weekday(kind ActionKind, d time.Weekday, last bool, n int) *Builder {
	if b.err != nil {
		return b
	}
	u, ok := b.weekdayUnit(d, last)
	if !ok {
		return b
	}
	return b.push(kind, u, n)
}

// MoveToBeginningOf truncates to the start of the period.
func (b *Builder) MoveToBeginningOf(p Period) *Builder {
	return b.period(ActionStart, p, 1)
}

// MoveTo sets the period's component, for example month 11 or day 4.
func (b *Builder) MoveTo(p Period, index int) *Builder {
	return b.period(ActionMoveTo, p, index)
}

// MoveToWeekday moves to the nth d of the current month.
func (b *Builder) MoveToWeekday(d time.Weekday, nth int) *Builder {
	return b.weekday(ActionMoveTo, d, false, nth)
}

// MoveToLast moves to the nth last d of the current month.
func (b *Builder) MoveToLast(d time.Weekday, nth int) *Builder {
	return b.weekday(ActionMoveTo, d, true, nth)
}

// Add moves n periods forward.
func (b *Builder) Add(p Period, n int) *Builder {
	return b.period(ActionAdd, p, n)
}

// Subtract moves n periods backward.
func (b *Builder) Subtract(p Period, n int) *Builder {
	return b.period(ActionSubtract, p, n)
}

// MoveNext moves to the current or next nth instance of the period.
func (b *Builder) MoveNext(p Period, n int) *Builder {
	return b.period(ActionMoveToNext, p, n)
}

// MovePrevious moves to the current or previous nth instance of the period.
func (b *Builder) MovePrevious(p Period, n int) *Builder {
	return b.period(ActionMoveToPrevious, p, n)
}

// MoveNextWeekday moves to the current or next nth d.
func (b *Builder) MoveNextWeekday(d time.Weekday, n int) *Builder {
	return b.weekday(ActionMoveToNext, d, false, n)
}

// MovePreviousWeekday moves to the current or previous nth d.
func (b *Builder) MovePreviousWeekday(d time.Weekday, n int) *Builder {
	return b.weekday(ActionMoveToPrevious, d, false, n)
}

// If starts a conditional on the period. A nil match uses the unit's own
// membership test, which only weekday and weekend periods have.
func (b *Builder) If(p Period, match Matcher) *Conditional {
	c := &Conditional{parent: b, match: match}
	if b.err != nil {
		return c
	}
	if u, ok := b.periodUnit(p); ok {
		c.unit = u
		if err := actionOf(ActionConditional).check(u, match != nil); err != nil {
			b.err = err
		}
	}
	return c
}

// IfWeekday starts a conditional that matches dates falling on d.
func (b *Builder) IfWeekday(d time.Weekday) *Conditional {
	c := &Conditional{parent: b}
	if b.err != nil {
		return c
	}
	if u, ok := b.weekdayUnit(d, false); ok {
		c.unit = u
	}
	return c
}

// Build returns the pipeline, or the first error recorded by the chain.
func (b *Builder) Build() (*RelativeDate, error) {
	if b.err != nil {
		return nil, b.err
	}
	return &RelativeDate{ops: append([]Operation(nil), b.ops...)}, nil
}

// MustBuild is like Build but panics on error.
func (b *Builder) MustBuild() *RelativeDate {
	rd, err := b.Build()
	if err != nil {
		panic(err)
	}
	return rd
}

// Conditional collects the branches of a Builder.If call. End returns to
// the parent builder.
type Conditional struct {
	parent *Builder
	unit   Unit
	match  Matcher
	then   *RelativeDate
	els    *RelativeDate
}

// Then sets the pipeline applied when the condition holds.
func (c *Conditional) Then(fn func(*Builder)) *Conditional {
	c.then = c.branch(fn)
	return c
}

// Else sets the pipeline applied when the condition does not hold.
func (c *Conditional) Else(fn func(*Builder)) *Conditional {
	c.els = c.branch(fn)
	return c
}

func (c *Conditional) branch(fn func(*Builder)) *RelativeDate {
	if c.parent.err != nil || fn == nil {
		return nil
	}
	sub := c.parent.reg.NewBuilder()
	fn(sub)
	rd, err := sub.Build()
	if err != nil {
		c.parent.err = err
		return nil
	}
	return rd
}

// End appends the conditional to the parent pipeline.
func (c *Conditional) End() *Builder {
	b := c.parent
	if b.err != nil {
		return b
	}
	b.ops = append(b.ops, Operation{
		Action: actionOf(ActionConditional),
		Unit:   c.unit,
		Number: 1,
		Then:   c.then,
		Else:   c.els,
		Match:  c.match,
	})
	return b
}
