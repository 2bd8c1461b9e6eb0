package board

import (
	"github.com/magefree/mage-goldfish/internal/game/mana"
)

// Battlefield groups permanents by zone bucket.
type Battlefield struct {
	Creatures     []*Permanent
	Artifacts     []*Permanent
	Enchantments  []*Permanent
	Planeswalkers []*Permanent
	Lands         []*Permanent
}

// Add places the permanent in the bucket matching its category. Unknown
// categories go with enchantments, the catch-all for non-creature permanents.
func (bf *Battlefield) Add(p *Permanent) {
	if p == nil {
		return
	}
	p.EnsureID()
	switch p.Category {
	case CategoryCreature:
		bf.Creatures = append(bf.Creatures, p)
	case CategoryArtifact:
		bf.Artifacts = append(bf.Artifacts, p)
	case CategoryPlaneswalker:
		bf.Planeswalkers = append(bf.Planeswalkers, p)
	case CategoryLand:
		bf.Lands = append(bf.Lands, p)
	default:
		bf.Enchantments = append(bf.Enchantments, p)
	}
}

// Remove takes the permanent with p's id off the battlefield. Returns false
// if it was not there.
func (bf *Battlefield) Remove(p *Permanent) bool {
	if p == nil || p.ID == "" {
		return false
	}
	for _, zone := range []*[]*Permanent{&bf.Creatures, &bf.Artifacts, &bf.Enchantments, &bf.Planeswalkers, &bf.Lands} {
		for i, candidate := range *zone {
			if candidate.ID == p.ID {
				*zone = append((*zone)[:i], (*zone)[i+1:]...)
				return true
			}
		}
	}
	return false
}

// PermanentZones returns the four zones whose permanents may carry static
// abilities: creatures, artifacts, enchantments, planeswalkers.
func (bf *Battlefield) PermanentZones() [][]*Permanent {
	return [][]*Permanent{bf.Creatures, bf.Artifacts, bf.Enchantments, bf.Planeswalkers}
}

// All returns every permanent, lands last.
func (bf *Battlefield) All() []*Permanent {
	var out []*Permanent
	for _, zone := range bf.PermanentZones() {
		out = append(out, zone...)
	}
	return append(out, bf.Lands...)
}

// Find returns the permanent with the given id.
func (bf *Battlefield) Find(id string) *Permanent {
	for _, p := range bf.All() {
		if p.ID == id {
			return p
		}
	}
	return nil
}

// FindByName returns the first permanent with the given name.
func (bf *Battlefield) FindByName(name string) *Permanent {
	for _, p := range bf.All() {
		if p.Name == name {
			return p
		}
	}
	return nil
}

// BehaviorManifest carries externally parsed card behavior.
type BehaviorManifest struct {
	ManaAbilities map[string]mana.AbilityMetadata
}

// ManaAbilitiesFor returns the parsed mana abilities for a card name.
func (m BehaviorManifest) ManaAbilitiesFor(name string) []mana.Ability {
	if m.ManaAbilities == nil {
		return nil
	}
	return m.ManaAbilities[name].Abilities
}

// CommanderEntry tracks a commander and how many times it has been cast from
// the command zone.
type CommanderEntry struct {
	Card          Card
	CastCount     int
	OnBattlefield bool
}

// GameState is the board/game-state object of a single simulated game.
type GameState struct {
	Battlefield   Battlefield
	Hand          []Card
	CommandZone   []*CommanderEntry
	Manifest      BehaviorManifest
	PrimaryColors []mana.ManaType
	Turn          int
}

// NewGameState creates an empty game state.
func NewGameState() *GameState {
	return &GameState{
		Manifest: BehaviorManifest{ManaAbilities: make(map[string]mana.AbilityMetadata)},
	}
}

// Commander returns the named commander entry, or the first one when name is
// empty.
func (gs *GameState) Commander(name string) *CommanderEntry {
	for _, c := range gs.CommandZone {
		if name == "" || c.Card.Name == name {
			return c
		}
	}
	return nil
}
