package engine

import "time"

// Occurrence is one evaluated rule for one anchor year.
type Occurrence struct {
	// UID is the event identifier, stable across regenerations.
	UID string

	// Rule is the name of the rule that produced the occurrence.
	Rule string

	// Summary is the rendered event title.
	Summary string

	// Description is the human-readable form of the rule's expression.
	Description string

	// Anchor is January 1st of the year the expression was applied to.
	Anchor time.Time

	// Computed is the raw pipeline result, before rolling.
	Computed time.Time

	// Date is the calendar day of the event after the roll convention.
	Date time.Time
}

// Rolled reports whether the roll convention moved the occurrence off the
// computed day.
func (o Occurrence) Rolled() bool {
	y1, m1, d1 := o.Computed.Date()
	y2, m2, d2 := o.Date.Date()
	return y1 != y2 || m1 != m2 || d1 != d2
}
