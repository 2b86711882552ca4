package reldate

import (
	"cmp"
	"log/slog"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/tartampluch/go-reldate/internal/config"
)

// Registry holds the unit and action tables of the expression language.
// It is built once and never mutated, so it is safe for concurrent use.
type Registry struct {
	units   map[string]Unit
	keys    []string // longest first
	actions map[byte]Action
}

var defaultRegistry = sync.OnceValue(newRegistry)

// DefaultRegistry returns the process-wide registry.
func DefaultRegistry() *Registry {
	return defaultRegistry()
}

func newRegistry() *Registry {
	r := &Registry{
		units:   make(map[string]Unit),
		actions: make(map[byte]Action),
	}

	dynamic := []struct {
		key  string
		kind UnitKind
	}{
		{config.UnitKeyYear, UnitYear},
		{config.UnitKeyMonth, UnitMonth},
		{config.UnitKeyWeek, UnitWeek},
		{config.UnitKeyDay, UnitDay},
		{config.UnitKeyHour, UnitHour},
		{config.UnitKeyMinute, UnitMinute},
		{config.UnitKeySecond, UnitSecond},
		{config.UnitKeyMillisecond, UnitMillisecond},
		{config.UnitKeyWeekday, UnitWeekday},
		{config.UnitKeyWeekendDay, UnitWeekendDay},
	}
	for _, d := range dynamic {
		r.units[d.key] = Unit{Key: d.key, Kind: d.kind}
	}

	for wd := time.Sunday; wd <= time.Saturday; wd++ {
		key := staticKey(wd.String())
		r.units[key] = Unit{Key: key, Kind: UnitDayOfWeek, Weekday: wd}
		last := config.SymbolLastModifier + key
		r.units[last] = Unit{Key: last, Kind: UnitLastDayOfWeek, Weekday: wd}
	}

	for m := time.January; m <= time.December; m++ {
		key := staticKey(m.String())
		r.units[key] = Unit{Key: key, Kind: UnitMonthOfYear, Month: m}
	}

	for key := range r.units {
		r.keys = append(r.keys, key)
	}
	slices.SortFunc(r.keys, func(a, b string) int {
		if c := cmp.Compare(len(b), len(a)); c != 0 {
			return c
		}
		return strings.Compare(a, b)
	})

	for _, a := range actionTable {
		r.actions[a.Symbol] = a
	}

	slog.Debug(config.MsgRegistryBuilt,
		config.LogKeyComponent, config.CompRelDate,
		config.LogKeyUnits, len(r.units),
		config.LogKeyActions, len(r.actions))
	return r
}

// Unit returns the unit registered under key. Keys are case sensitive.
func (r *Registry) Unit(key string) (Unit, bool) {
	u, ok := r.units[key]
	return u, ok
}

// Units returns every registered unit, longest key first.
func (r *Registry) Units() []Unit {
	out := make([]Unit, 0, len(r.keys))
	for _, k := range r.keys {
		out = append(out, r.units[k])
	}
	return out
}

// Action returns the action bound to symbol.
func (r *Registry) Action(symbol byte) (Action, bool) {
	a, ok := r.actions[symbol]
	return a, ok
}

// Actions returns the action table in declaration order.
func (r *Registry) Actions() []Action {
	return slices.Clone(actionTable)
}

// matchUnit resolves the longest unit key that prefixes s.
func (r *Registry) matchUnit(s string) (Unit, bool) {
	for _, k := range r.keys {
		if strings.HasPrefix(s, k) {
			return r.units[k], true
		}
	}
	return Unit{}, false
}
