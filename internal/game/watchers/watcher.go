// Package watchers tracks what happened during a simulation by listening to
// its events.
package watchers

import (
	"sync"

	"github.com/magefree/mage-goldfish/internal/game/events"
)

// Scope decides when a watcher is reset.
type Scope int

const (
	// ScopeGame watchers keep their state for the whole simulation.
	ScopeGame Scope = iota
	// ScopeTurn watchers are reset when a turn ends.
	ScopeTurn
)

// String returns the string representation of the scope.
func (s Scope) String() string {
	switch s {
	case ScopeGame:
		return "GAME"
	case ScopeTurn:
		return "TURN"
	default:
		return "UNKNOWN"
	}
}

// Watcher observes simulation events and tracks a condition.
type Watcher interface {
	// Watch is called for every event; watchers filter internally.
	Watch(e events.Event)

	// Reset clears the watcher's condition and state.
	Reset()

	// ConditionMet reports whether the tracked condition has occurred.
	ConditionMet() bool

	Scope() Scope

	// Key identifies the watcher within a registry.
	Key() string
}

// BaseWatcher carries the scope, key and condition flag shared by all
// watchers.
type BaseWatcher struct {
	scope     Scope
	key       string
	condition bool
}

// NewBaseWatcher creates a base watcher.
func NewBaseWatcher(scope Scope, key string) *BaseWatcher {
	return &BaseWatcher{scope: scope, key: key}
}

func (bw *BaseWatcher) Scope() Scope { return bw.scope }

func (bw *BaseWatcher) Key() string { return bw.key }

// ConditionMet returns whether the condition has been met.
func (bw *BaseWatcher) ConditionMet() bool {
	return bw.condition
}

// SetCondition sets the condition flag.
func (bw *BaseWatcher) SetCondition(condition bool) {
	bw.condition = condition
}

// Reset clears the condition.
func (bw *BaseWatcher) Reset() {
	bw.condition = false
}

// Registry dispatches events to its watchers in registration order. It is
// an events.Sink, so it can be teed next to a recorder or logger.
type Registry struct {
	mu       sync.RWMutex
	watchers map[string]Watcher
	order    []string
}

// NewRegistry creates a registry holding ws.
func NewRegistry(ws ...Watcher) *Registry {
	r := &Registry{watchers: make(map[string]Watcher)}
	for _, w := range ws {
		r.Add(w)
	}
	return r
}

// Add registers w, replacing any watcher with the same key.
func (r *Registry) Add(w Watcher) {
	if w == nil {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	key := w.Key()
	if _, ok := r.watchers[key]; !ok {
		r.order = append(r.order, key)
	}
	r.watchers[key] = w
}

// Remove unregisters the watcher with the given key.
func (r *Registry) Remove(key string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.watchers[key]; !ok {
		return
	}
	delete(r.watchers, key)
	for i, k := range r.order {
		if k == key {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
}

// Get returns the watcher with the given key, or nil.
func (r *Registry) Get(key string) Watcher {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.watchers[key]
}

// All returns the watchers in registration order.
func (r *Registry) All() []Watcher {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]Watcher, 0, len(r.order))
	for _, k := range r.order {
		out = append(out, r.watchers[k])
	}
	return out
}

// Record notifies every watcher of e. When e ends a turn, turn-scoped
// watchers are reset after seeing it.
func (r *Registry) Record(e events.Event) {
	for _, w := range r.All() {
		w.Watch(e)
	}
	if e.Type == events.TurnEnded {
		r.ResetScope(ScopeTurn)
	}
}

// Reset resets every watcher.
func (r *Registry) Reset() {
	for _, w := range r.All() {
		w.Reset()
	}
}

// ResetScope resets the watchers of one scope.
func (r *Registry) ResetScope(scope Scope) {
	for _, w := range r.All() {
		if w.Scope() == scope {
			w.Reset()
		}
	}
}
