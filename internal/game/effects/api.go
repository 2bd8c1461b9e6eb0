package effects

import (
	"strings"

	"github.com/magefree/mage-goldfish/internal/game/board"
)

// BoostBuilder provides a fluent API for one-shot modifications granted by a
// resolving spell or ability, e.g. Giant Growth or a pump from Overrun.
type BoostBuilder struct {
	mod board.TemporaryModification
}

// NewBoost starts a temporary modification from the named source. It lasts
// until end of turn unless changed.
func NewBoost(source string) *BoostBuilder {
	return &BoostBuilder{mod: board.TemporaryModification{
		Source:   source,
		Duration: board.DurationEndOfTurn,
	}}
}

// Gets sets the power/toughness change.
func (b *BoostBuilder) Gets(power, toughness int) *BoostBuilder {
	b.mod.Power = power
	b.mod.Toughness = toughness
	return b
}

// Granting adds keywords for the duration.
func (b *BoostBuilder) Granting(keywords ...string) *BoostBuilder {
	for _, kw := range keywords {
		b.mod.Keywords = append(b.mod.Keywords, strings.ToLower(strings.TrimSpace(kw)))
	}
	return b
}

// UntilEndOfTurn sets the duration to end of turn.
func (b *BoostBuilder) UntilEndOfTurn() *BoostBuilder {
	b.mod.Duration = board.DurationEndOfTurn
	return b
}

// UntilEndOfCombat sets the duration to end of combat.
func (b *BoostBuilder) UntilEndOfCombat() *BoostBuilder {
	b.mod.Duration = board.DurationEndOfCombat
	return b
}

// Build returns the modification.
func (b *BoostBuilder) Build() board.TemporaryModification {
	mod := b.mod
	mod.Keywords = append([]string(nil), b.mod.Keywords...)
	return mod
}

// ApplyTo attaches a copy of the modification to each permanent.
func (b *BoostBuilder) ApplyTo(targets ...*board.Permanent) {
	for _, p := range targets {
		AddTemporary(p, b.Build())
	}
}
