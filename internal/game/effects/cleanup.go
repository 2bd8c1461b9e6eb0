package effects

import (
	"github.com/magefree/mage-goldfish/internal/game/board"
	"github.com/magefree/mage-goldfish/internal/game/events"
)

// AddTemporary attaches a single-use modification to a permanent, e.g. from
// "target creature gets +3/+3 until end of turn". An empty duration defaults
// to end of turn.
func AddTemporary(p *board.Permanent, mod board.TemporaryModification) {
	if p == nil {
		return
	}
	if mod.Duration == "" {
		mod.Duration = board.DurationEndOfTurn
	}
	p.Temporary = append(p.Temporary, mod)
}

// ExpireTemporary removes temporary modifications with the given duration
// from every permanent and returns how many were dropped.
func ExpireTemporary(bf *board.Battlefield, d board.Duration, sink events.Sink) int {
	if bf == nil {
		return 0
	}
	removed := 0
	for _, p := range bf.All() {
		if len(p.Temporary) == 0 {
			continue
		}
		kept := p.Temporary[:0]
		for _, mod := range p.Temporary {
			if mod.Duration == d {
				removed++
				events.Emit(sink, events.TemporaryExpired, p.Name,
					map[string]any{"from": mod.Source, "duration": string(d)},
					"%s loses %+d/%+d from %s", p.Name, mod.Power, mod.Toughness, mod.Source)
				continue
			}
			kept = append(kept, mod)
		}
		if len(kept) == 0 {
			kept = nil
		}
		p.Temporary = kept
	}
	return removed
}

// ExpireEndOfCombat drops modifications lasting until end of combat.
func ExpireEndOfCombat(bf *board.Battlefield, sink events.Sink) int {
	return ExpireTemporary(bf, board.DurationEndOfCombat, sink)
}

// ExpireEndOfTurn drops modifications lasting until end of turn. Effects that
// end at end of combat are gone by cleanup as well.
func ExpireEndOfTurn(bf *board.Battlefield, sink events.Sink) int {
	return ExpireTemporary(bf, board.DurationEndOfCombat, sink) +
		ExpireTemporary(bf, board.DurationEndOfTurn, sink)
}
