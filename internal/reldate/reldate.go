// Package reldate evaluates relative-date expressions such as "^M>4mon"
// (fourth Monday of the current month) or "@7M@4d?sat{<D}?sun{>D}"
// (Independence Day, observed).
//
// An expression is a sequence of operations. Each operation is an action
// symbol, an optional number (default 1) and a unit key:
//
//	^  start of the unit          +  add n units
//	-  subtract n units           @  move to the nth unit
//	>  current or next nth unit   <  current or previous nth unit
//	?  conditional: ?unit{then}{else}
//
// Units are y M w d H m s S (year to millisecond), D (weekday), e (weekend
// day), sun..sat (day of week), !sun..!sat (last day of week in the month)
// and jan..dec (month of year).
package reldate

import (
	"strings"
	"time"
)

// RelativeDate is an immutable pipeline of operations. It is safe for
// concurrent use. A nil *RelativeDate applies as the identity.
type RelativeDate struct {
	expression string
	ops        []Operation
}

// Parse compiles expr against the default registry.
func Parse(expr string) (*RelativeDate, error) {
	return DefaultRegistry().Parse(expr)
}

// MustParse is like Parse but panics on error. It simplifies the
// initialization of package-level pipelines.
func MustParse(expr string) *RelativeDate {
	rd, err := Parse(expr)
	if err != nil {
		panic(err)
	}
	return rd
}

// Apply parses expr and applies it to anchor.
func Apply(anchor time.Time, expr string) (time.Time, error) {
	rd, err := Parse(expr)
	if err != nil {
		return time.Time{}, err
	}
	return rd.Apply(anchor)
}

// Apply folds the operations over anchor from left to right. The first
// failing operation aborts the pipeline.
func (rd *RelativeDate) Apply(anchor time.Time) (time.Time, error) {
	if rd == nil {
		return anchor, nil
	}
	t := anchor
	for _, op := range rd.ops {
		var err error
		if t, err = op.Apply(t); err != nil {
			return time.Time{}, err
		}
	}
	return t, nil
}

// Operations returns a copy of the pipeline steps.
func (rd *RelativeDate) Operations() []Operation {
	if rd == nil {
		return nil
	}
	return append([]Operation(nil), rd.ops...)
}

// Expression returns the source text of a parsed pipeline. Built pipelines
// have none.
func (rd *RelativeDate) Expression() string {
	if rd == nil {
		return ""
	}
	return rd.expression
}

// Description renders the pipeline as English text, one phrase per
// operation.
func (rd *RelativeDate) Description() string {
	if rd == nil {
		return ""
	}
	parts := make([]string, 0, len(rd.ops))
	for _, op := range rd.ops {
		parts = append(parts, op.Describe())
	}
	return strings.Join(strings.Fields(strings.Join(parts, " ")), " ")
}

func (rd *RelativeDate) String() string {
	if rd.Expression() != "" {
		return rd.expression
	}
	return rd.Description()
}
