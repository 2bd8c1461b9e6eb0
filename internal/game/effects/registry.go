package effects

import (
	"fmt"
	"sort"
	"strings"

	"github.com/magefree/mage-goldfish/internal/game/board"
	"github.com/magefree/mage-goldfish/internal/game/events"
	"go.uber.org/zap"
)

// Registry stores the currently active static effects, indexed by source
// permanent id. The flat list always holds exactly the union of the
// per-source lists, in registration order.
type Registry struct {
	detector *Detector
	bySource map[string][]*Effect
	effects  []*Effect
	clock    uint64

	logger *zap.Logger
	sink   events.Sink
}

// NewRegistry creates an empty registry.
func NewRegistry(logger *zap.Logger, sink events.Sink) *Registry {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Registry{
		detector: NewDetector(),
		bySource: make(map[string][]*Effect),
		logger:   logger,
		sink:     events.OrDiscard(sink),
	}
}

// Register detects the permanent's static effects and stores them. A
// permanent without an id is given one. Registering the same permanent again
// replaces its previous effects; a different permanent that happens to share
// the id keeps its own. Lands are not scanned for static effects, on entry
// or by ScanBattlefield. Returns the number of effects stored.
func (r *Registry) Register(p *board.Permanent) int {
	if p == nil || p.Category == board.CategoryLand {
		return 0
	}
	detected := r.detector.Detect(p)
	if len(detected) == 0 {
		return 0
	}

	id := p.EnsureID()
	r.remove(p)

	stored := make([]*Effect, 0, len(detected))
	for _, e := range detected {
		r.clock++
		e.Source = p
		e.SourceID = id
		e.SourceName = p.Name
		e.Timestamp = r.clock
		effect := e
		stored = append(stored, &effect)
	}
	r.bySource[id] = append(r.bySource[id], stored...)
	r.effects = append(r.effects, stored...)

	r.logger.Debug("registered static effects",
		zap.String("source", p.Name),
		zap.String("source_id", id),
		zap.Int("count", len(stored)))
	events.Emit(r.sink, events.EffectRegistered, p.Name,
		map[string]any{"source_id": id, "count": len(stored)},
		"registered %d effect(s) from %s", len(stored), p.Name)

	return len(stored)
}

// Unregister removes the permanent's effects. Returns false, changing
// nothing, if the permanent was never registered.
func (r *Registry) Unregister(p *board.Permanent) bool {
	if p == nil || p.ID == "" {
		return false
	}
	removed := r.remove(p)
	if removed == 0 {
		return false
	}

	r.logger.Debug("unregistered static effects",
		zap.String("source", p.Name),
		zap.String("source_id", p.ID),
		zap.Int("count", removed))
	events.Emit(r.sink, events.EffectUnregistered, p.Name,
		map[string]any{"source_id": p.ID, "count": removed},
		"unregistered %d effect(s) from %s", removed, p.Name)

	return true
}

// remove drops the effects p itself registered from both indexes. Effects of
// another permanent sharing p's id are kept.
func (r *Registry) remove(p *board.Permanent) int {
	var mine, others []*Effect
	for _, e := range r.bySource[p.ID] {
		if e.Source == p {
			mine = append(mine, e)
		} else {
			others = append(others, e)
		}
	}
	if len(mine) == 0 {
		return 0
	}
	if len(others) == 0 {
		delete(r.bySource, p.ID)
	} else {
		r.bySource[p.ID] = others
	}

	drop := make(map[*Effect]bool, len(mine))
	for _, e := range mine {
		drop[e] = true
	}
	kept := r.effects[:0]
	for _, e := range r.effects {
		if drop[e] {
			continue
		}
		kept = append(kept, e)
	}
	for i := len(kept); i < len(r.effects); i++ {
		r.effects[i] = nil
	}
	r.effects = kept
	return len(mine)
}

// Clear forgets every effect. Timestamps keep increasing afterwards.
func (r *Registry) Clear() {
	r.bySource = make(map[string][]*Effect)
	r.effects = nil
}

// ScanBattlefield clears the registry and registers every permanent in the
// creature, artifact, enchantment and planeswalker zones. Use it whenever the
// registry may be out of sync with the board.
func (r *Registry) ScanBattlefield(bf *board.Battlefield) int {
	r.Clear()
	if bf == nil {
		return 0
	}
	total := 0
	for _, zone := range bf.PermanentZones() {
		for _, p := range zone {
			total += r.Register(p)
		}
	}

	sources := r.SourceCount()
	r.logger.Debug("scanned battlefield",
		zap.Int("effects", total),
		zap.Int("sources", sources))
	events.Emit(r.sink, events.BattlefieldScanned, "",
		map[string]any{"effects": total, "sources": sources},
		"scanned battlefield: %d effect(s) from %d source(s)", total, sources)

	return total
}

// Effects returns all effects in registration order.
func (r *Registry) Effects() []*Effect {
	if r == nil {
		return nil
	}
	return append([]*Effect(nil), r.effects...)
}

// ByCategory returns the effects of one category in registration order.
func (r *Registry) ByCategory(c Category) []*Effect {
	if r == nil {
		return nil
	}
	var out []*Effect
	for _, e := range r.effects {
		if e.Category == c {
			out = append(out, e)
		}
	}
	return out
}

// ByLayer returns the effects of one layer, oldest first.
func (r *Registry) ByLayer(l Layer) []*Effect {
	if r == nil {
		return nil
	}
	var out []*Effect
	for _, e := range r.effects {
		if e.Layer == l {
			out = append(out, e)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Timestamp < out[j].Timestamp
	})
	return out
}

// EffectsFrom returns the effects owned by a source.
func (r *Registry) EffectsFrom(sourceID string) []*Effect {
	if r == nil {
		return nil
	}
	return append([]*Effect(nil), r.bySource[sourceID]...)
}

// HasEffectsFrom reports whether the source has registered effects.
func (r *Registry) HasEffectsFrom(sourceID string) bool {
	if r == nil {
		return false
	}
	_, ok := r.bySource[sourceID]
	return ok
}

// Count returns the number of active effects.
func (r *Registry) Count() int {
	if r == nil {
		return 0
	}
	return len(r.effects)
}

// SourceCount returns the number of permanents with active effects.
func (r *Registry) SourceCount() int {
	if r == nil {
		return 0
	}
	sources := make(map[*board.Permanent]bool)
	for _, e := range r.effects {
		sources[e.Source] = true
	}
	return len(sources)
}

// CountByCategory returns how many effects each category has.
func (r *Registry) CountByCategory() map[Category]int {
	out := make(map[Category]int)
	if r == nil {
		return out
	}
	for _, e := range r.effects {
		out[e.Category]++
	}
	return out
}

// Summary renders a human-readable overview of the registry.
func (r *Registry) Summary() string {
	if r.Count() == 0 {
		return "No active static effects."
	}
	var b strings.Builder
	fmt.Fprintf(&b, "%d static effect(s) from %d source(s):", len(r.effects), r.SourceCount())
	for _, e := range r.effects {
		b.WriteString("\n- ")
		b.WriteString(e.Describe())
	}
	return b.String()
}
