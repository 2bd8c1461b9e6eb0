package watchers

import (
	"maps"

	"github.com/magefree/mage-goldfish/internal/game/events"
)

// Keys of the standard watchers.
const (
	KeySpellsCast        = "SpellsCastWatcher"
	KeyCommanderCasts    = "CommanderCastsWatcher"
	KeyPermanentsEntered = "PermanentsEnteredWatcher"
	KeyPermanentsLeft    = "PermanentsLeftWatcher"
	KeySourcesTapped     = "SourcesTappedWatcher"
	KeyManaSpent         = "ManaSpentWatcher"
)

// namesWatcher collects event sources of the given types, in order.
type namesWatcher struct {
	*BaseWatcher
	types []events.Type
	names []string
}

func newNamesWatcher(scope Scope, key string, types ...events.Type) *namesWatcher {
	return &namesWatcher{BaseWatcher: NewBaseWatcher(scope, key), types: types}
}

func (w *namesWatcher) Watch(e events.Event) {
	if e.Source == "" {
		return
	}
	for _, t := range w.types {
		if e.Type == t {
			w.names = append(w.names, e.Source)
			w.SetCondition(true)
			return
		}
	}
}

func (w *namesWatcher) Reset() {
	w.BaseWatcher.Reset()
	w.names = nil
}

// Names returns the recorded names in event order.
func (w *namesWatcher) Names() []string {
	return append([]string(nil), w.names...)
}

// Count returns the number of recorded events.
func (w *namesWatcher) Count() int {
	return len(w.names)
}

// SpellsCastWatcher tracks spells cast this turn, commanders included.
type SpellsCastWatcher struct{ *namesWatcher }

// NewSpellsCastWatcher creates a new spells cast watcher.
func NewSpellsCastWatcher() *SpellsCastWatcher {
	return &SpellsCastWatcher{newNamesWatcher(ScopeTurn, KeySpellsCast, events.SpellCast, events.CommanderCast)}
}

// PermanentsEnteredWatcher tracks permanents that entered the battlefield
// this turn.
type PermanentsEnteredWatcher struct{ *namesWatcher }

// NewPermanentsEnteredWatcher creates a new permanents entered watcher.
func NewPermanentsEnteredWatcher() *PermanentsEnteredWatcher {
	return &PermanentsEnteredWatcher{newNamesWatcher(ScopeTurn, KeyPermanentsEntered, events.PermanentEntered)}
}

// PermanentsLeftWatcher tracks permanents that left the battlefield this
// turn, such as sacrificed Treasures.
type PermanentsLeftWatcher struct{ *namesWatcher }

// NewPermanentsLeftWatcher creates a new permanents left watcher.
func NewPermanentsLeftWatcher() *PermanentsLeftWatcher {
	return &PermanentsLeftWatcher{newNamesWatcher(ScopeTurn, KeyPermanentsLeft, events.PermanentLeft)}
}

// SourcesTappedWatcher tracks mana sources activated this turn.
type SourcesTappedWatcher struct{ *namesWatcher }

// NewSourcesTappedWatcher creates a new sources tapped watcher.
func NewSourcesTappedWatcher() *SourcesTappedWatcher {
	return &SourcesTappedWatcher{newNamesWatcher(ScopeTurn, KeySourcesTapped, events.SourceActivated)}
}

// CommanderCastsWatcher counts casts per commander for the whole game.
type CommanderCastsWatcher struct {
	*BaseWatcher
	casts map[string]int
}

// NewCommanderCastsWatcher creates a new commander casts watcher.
func NewCommanderCastsWatcher() *CommanderCastsWatcher {
	return &CommanderCastsWatcher{
		BaseWatcher: NewBaseWatcher(ScopeGame, KeyCommanderCasts),
		casts:       make(map[string]int),
	}
}

// Watch implements the Watcher interface.
func (w *CommanderCastsWatcher) Watch(e events.Event) {
	if e.Type != events.CommanderCast || e.Source == "" {
		return
	}
	w.casts[e.Source]++
	w.SetCondition(true)
}

// Reset clears the watcher's state.
func (w *CommanderCastsWatcher) Reset() {
	w.BaseWatcher.Reset()
	w.casts = make(map[string]int)
}

// Casts returns how often the named commander was cast.
func (w *CommanderCastsWatcher) Casts(name string) int {
	return w.casts[name]
}

// All returns a copy of the per-commander counts.
func (w *CommanderCastsWatcher) All() map[string]int {
	return maps.Clone(w.casts)
}

// ManaSpentWatcher sums mana paid for costs and mana lost when the pool
// empties, this turn.
type ManaSpentWatcher struct {
	*BaseWatcher
	spent int
	lost  int
}

// NewManaSpentWatcher creates a new mana spent watcher.
func NewManaSpentWatcher() *ManaSpentWatcher {
	return &ManaSpentWatcher{BaseWatcher: NewBaseWatcher(ScopeTurn, KeyManaSpent)}
}

// Watch implements the Watcher interface.
func (w *ManaSpentWatcher) Watch(e events.Event) {
	switch e.Type {
	case events.ManaPaid:
		if n := intField(e, "total"); n > 0 {
			w.spent += n
			w.SetCondition(true)
		}
	case events.PoolEmptied:
		w.lost += intField(e, "lost")
	}
}

// Reset clears the watcher's state.
func (w *ManaSpentWatcher) Reset() {
	w.BaseWatcher.Reset()
	w.spent, w.lost = 0, 0
}

// Spent returns the mana paid for costs.
func (w *ManaSpentWatcher) Spent() int { return w.spent }

// Lost returns the mana that emptied out of the pool unused.
func (w *ManaSpentWatcher) Lost() int { return w.lost }

func intField(e events.Event, key string) int {
	switch v := e.Fields[key].(type) {
	case int:
		return v
	case int64:
		return int(v)
	case float64:
		return int(v)
	}
	return 0
}
