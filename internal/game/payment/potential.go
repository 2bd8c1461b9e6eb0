// Package payment answers whether a cost can be paid from mana sources that
// have not been activated yet, and commits such a payment to the floating
// pool.
package payment

import (
	"github.com/magefree/mage-goldfish/internal/game/board"
	"github.com/magefree/mage-goldfish/internal/game/mana"
)

// SourceKind is the battlefield zone a potential mana source sits in.
type SourceKind string

const (
	SourceLand        SourceKind = "land"
	SourceArtifact    SourceKind = "artifact"
	SourceCreature    SourceKind = "creature"
	SourceEnchantment SourceKind = "enchantment"
)

// PotentialEntry is one mana ability that could be activated right now. The
// list is rebuilt before each solve and never stored.
type PotentialEntry struct {
	SourceKind SourceKind
	SourceName string
	Ability    mana.Ability
	Permanent  *board.Permanent
}

// BuildPotentialPool lists every mana ability that could be activated this
// instant: the source is untapped, a creature that taps is not summoning
// sick, and the activation needs no mana. Lands come first, then artifacts,
// creatures and enchantments.
func BuildPotentialPool(state *board.GameState) []PotentialEntry {
	if state == nil {
		return nil
	}
	bf := &state.Battlefield
	zones := []struct {
		kind  SourceKind
		perms []*board.Permanent
	}{
		{SourceLand, bf.Lands},
		{SourceArtifact, bf.Artifacts},
		{SourceCreature, bf.Creatures},
		{SourceEnchantment, bf.Enchantments},
	}

	var out []PotentialEntry
	for _, zone := range zones {
		for _, p := range zone.perms {
			if p.Tapped {
				continue
			}
			for _, ability := range state.Manifest.ManaAbilitiesFor(p.Name) {
				if !canActivate(p, ability) {
					continue
				}
				out = append(out, PotentialEntry{
					SourceKind: zone.kind,
					SourceName: p.Name,
					Ability:    ability,
					Permanent:  p,
				})
			}
		}
	}
	return out
}

func canActivate(p *board.Permanent, ability mana.Ability) bool {
	if ability.RequiresMana() {
		return false
	}
	if ability.RequiresTap() && p.SummoningSick {
		return !p.HasType(board.CategoryCreature) || p.HasKeyword("haste")
	}
	return true
}
