package reldate

import (
	"fmt"

	"github.com/tartampluch/go-reldate/internal/config"
)

// ActionKind selects what an operation does with its unit and number.
type ActionKind int

const (
	ActionStart ActionKind = iota
	ActionAdd
	ActionSubtract
	ActionMoveTo
	ActionMoveToNext
	ActionMoveToPrevious
	ActionConditional
)

// Action is a one-character operator of the expression language.
type Action struct {
	Symbol byte
	Name   string
	Kind   ActionKind
}

func (a Action) String() string { return string(a.Symbol) }

// Branches reports whether the action accepts "{...}" branches.
func (a Action) Branches() bool { return a.Kind == ActionConditional }

// check verifies that u has the behavior the action needs. A conditional
// with its own matcher does not need the unit to match.
func (a Action) check(u Unit, customMatch bool) error {
	switch a.Kind {
	case ActionMoveTo:
		if !u.CanMove() {
			return u.unsupported()
		}
	case ActionMoveToNext, ActionMoveToPrevious:
		if !u.CanMatch() {
			return u.unsupported()
		}
	case ActionConditional:
		if !customMatch && !u.CanMatch() {
			return u.unsupported()
		}
	}
	return nil
}

var actionTable = []Action{
	{Symbol: config.SymbolStart, Name: "Start", Kind: ActionStart},
	{Symbol: config.SymbolAdd, Name: "Add", Kind: ActionAdd},
	{Symbol: config.SymbolSubtract, Name: "Subtract", Kind: ActionSubtract},
	{Symbol: config.SymbolMoveTo, Name: "MoveTo", Kind: ActionMoveTo},
	{Symbol: config.SymbolNext, Name: "MoveToNext", Kind: ActionMoveToNext},
	{Symbol: config.SymbolPrevious, Name: "MoveToPrevious", Kind: ActionMoveToPrevious},
	{Symbol: config.SymbolConditional, Name: "Conditional", Kind: ActionConditional},
}

func actionOf(kind ActionKind) Action {
	for _, a := range actionTable {
		if a.Kind == kind {
			return a
		}
	}
	panic(fmt.Sprintf("reldate: no action of kind %d", kind))
}
