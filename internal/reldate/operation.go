package reldate

import (
	"time"

	"github.com/tartampluch/go-reldate/internal/config"
)

// Matcher decides whether a conditional takes its Then branch.
type Matcher func(time.Time) bool

// Operation is one step of a pipeline: an action applied to a unit with a
// number. Then and Else are only set on conditionals; Match overrides the
// unit's own membership test when a conditional was built in code.
type Operation struct {
	Action Action
	Unit   Unit
	Number int
	Then   *RelativeDate
	Else   *RelativeDate
	Match  Matcher
}

// Apply runs the operation against t.
func (op Operation) Apply(t time.Time) (time.Time, error) {
	switch op.Action.Kind {
	case ActionStart:
		return op.Unit.Start(t), nil
	case ActionAdd:
		return op.Unit.Add(t, op.Number)
	case ActionSubtract:
		return op.Unit.Add(t, -op.Number)
	case ActionMoveTo:
		return op.Unit.Move(t, op.Number)
	case ActionMoveToNext, ActionMoveToPrevious:
		return op.moveToNext(t)
	case ActionConditional:
		return op.conditional(t)
	}
	return time.Time{}, op.Unit.unsupported()
}

// moveToNext counts a matching anchor as the first occurrence, so ">sat" on
// a Saturday stays put and ">2sat" is the following Saturday.
func (op Operation) moveToNext(t time.Time) (time.Time, error) {
	n := op.Number
	match, err := op.Unit.IsMatch(t)
	if err != nil {
		return time.Time{}, err
	}
	if match {
		n--
	}
	if op.Action.Kind == ActionMoveToPrevious {
		n = -n
	}
	return op.Unit.Add(t, n)
}

func (op Operation) conditional(t time.Time) (time.Time, error) {
	var match bool
	if op.Match != nil {
		match = op.Match(t)
	} else {
		var err error
		if match, err = op.Unit.IsMatch(t); err != nil {
			return time.Time{}, err
		}
	}
	switch {
	case match && op.Then != nil:
		return op.Then.Apply(t)
	case !match && op.Else != nil:
		return op.Else.Apply(t)
	}
	return t, nil
}

// Describe renders the operation as English text.
func (op Operation) Describe() string {
	switch op.Action.Kind {
	case ActionStart:
		return localize(config.TKeyStart, map[string]any{config.TDataUnit: op.Unit.Description()})
	case ActionAdd:
		return localizePlural(config.TKeyAdd, op.Number, map[string]any{
			config.TDataUnit:  op.Unit.Description(),
			config.TDataCount: op.Number,
		})
	case ActionSubtract:
		return localizePlural(config.TKeySubtract, op.Number, map[string]any{
			config.TDataUnit:  op.Unit.Description(),
			config.TDataCount: op.Number,
		})
	case ActionMoveTo:
		return localize(config.TKeyMoveTo, map[string]any{config.TDataNth: op.Unit.Describe(op.Number)})
	case ActionMoveToNext:
		return localizePlural(config.TKeyMoveNext, op.Number, map[string]any{config.TDataNth: op.Unit.Describe(op.Number)})
	case ActionMoveToPrevious:
		return localizePlural(config.TKeyMovePrevious, op.Number, map[string]any{config.TDataNth: op.Unit.Describe(op.Number)})
	case ActionConditional:
		return op.describeConditional()
	}
	return ""
}

func (op Operation) describeConditional() string {
	cond := op.Unit.Description()
	if op.Match != nil {
		cond = localize(config.TKeyCustomCondition, map[string]any{config.TDataUnit: cond})
	}
	data := map[string]any{config.TDataUnit: cond}
	id := config.TKeyIf
	switch {
	case op.Then != nil && op.Else != nil:
		id = config.TKeyIfThenElse
		data[config.TDataThen] = op.Then.Description()
		data[config.TDataElse] = op.Else.Description()
	case op.Then != nil:
		id = config.TKeyIfThen
		data[config.TDataThen] = op.Then.Description()
	case op.Else != nil:
		id = config.TKeyIfElse
		data[config.TDataElse] = op.Else.Description()
	}
	return localize(id, data)
}
