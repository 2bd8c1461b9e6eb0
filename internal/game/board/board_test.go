package board

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSplitTypeLine(t *testing.T) {
	types, subtypes := SplitTypeLine("Legendary Creature — Elf Warrior")
	assert.Equal(t, []string{"Legendary", "Creature"}, types)
	assert.Equal(t, []string{"Elf", "Warrior"}, subtypes)

	types, subtypes = SplitTypeLine("Artifact Creature - Golem")
	assert.Equal(t, []string{"Artifact", "Creature"}, types)
	assert.Equal(t, []string{"Golem"}, subtypes)

	types, subtypes = SplitTypeLine("Enchantment")
	assert.Equal(t, []string{"Enchantment"}, types)
	assert.Empty(t, subtypes)
}

func TestCard_ResolveCategory(t *testing.T) {
	assert.Equal(t, CategoryCreature, Card{TypeLine: "Artifact Creature — Golem"}.ResolveCategory())
	assert.Equal(t, CategoryLand, Card{TypeLine: "Basic Land — Forest"}.ResolveCategory())
	assert.Equal(t, CategoryArtifact, Card{Category: "Artifact", TypeLine: "Artifact Creature — Golem"}.ResolveCategory())
	assert.Equal(t, "", Card{}.ResolveCategory())
}

func TestNewPermanent(t *testing.T) {
	p := NewPermanent(Card{
		Name:       "Serra Angel",
		TypeLine:   "Creature — Angel",
		ManaCost:   "{3}{W}{W}",
		Power:      "4",
		Toughness:  "4",
		OracleText: "Flying, vigilance",
	})

	assert.NotEmpty(t, p.ID)
	assert.Equal(t, CategoryCreature, p.Category)
	assert.Equal(t, 4, p.BasePower)
	assert.True(t, p.HasStats)
	assert.True(t, p.SummoningSick)
	assert.Equal(t, []string{"flying", "vigilance"}, p.Keywords)
	assert.True(t, p.HasSubtype("angel"))
	assert.True(t, p.HasType("Creature"))
	assert.False(t, p.HasType("Artifact"))
}

func TestNewPermanent_NonNumericStats(t *testing.T) {
	p := NewPermanent(Card{Name: "Tarmogoyf", TypeLine: "Creature — Lhurgoyf", Power: "*", Toughness: "1+*"})
	assert.Equal(t, 0, p.BasePower)
	assert.Equal(t, 0, p.BaseToughness)
	assert.False(t, p.HasStats)
}

func TestPrintedKeywords_IgnoresMixedLines(t *testing.T) {
	kws := printedKeywords("Flying\nWhen this enters, draw a card.\nTrample, haste")
	assert.Equal(t, []string{"flying", "trample", "haste"}, kws)
}

func TestPermanent_GrantedTypesCount(t *testing.T) {
	p := NewPermanent(Card{Name: "Ornithopter", TypeLine: "Artifact"})
	assert.False(t, p.HasType("creature"))

	p.StaticEffects.AddType("Creature")
	p.StaticEffects.AddType("creature")
	assert.True(t, p.HasType("creature"))
	assert.Len(t, p.StaticEffects.Types, 1)

	p.ResetStaticEffects()
	assert.False(t, p.HasType("creature"))
}

func TestBattlefield_AddRemove(t *testing.T) {
	var bf Battlefield
	elf := NewPermanent(Card{Name: "Llanowar Elves", TypeLine: "Creature — Elf Druid"})
	forest := NewPermanent(Card{Name: "Forest", TypeLine: "Basic Land — Forest"})
	anthem := NewPermanent(Card{Name: "Glorious Anthem", TypeLine: "Enchantment"})
	ring := NewPermanent(Card{Name: "Sol Ring", TypeLine: "Artifact"})

	for _, p := range []*Permanent{elf, forest, anthem, ring} {
		bf.Add(p)
	}

	assert.Len(t, bf.Creatures, 1)
	assert.Len(t, bf.Lands, 1)
	assert.Len(t, bf.Enchantments, 1)
	assert.Len(t, bf.Artifacts, 1)
	assert.Len(t, bf.All(), 4)
	assert.Equal(t, forest, bf.All()[3], "lands come last")
	require.Equal(t, elf, bf.Find(elf.ID))
	assert.Equal(t, ring, bf.FindByName("Sol Ring"))

	assert.True(t, bf.Remove(anthem))
	assert.False(t, bf.Remove(anthem))
	assert.Empty(t, bf.Enchantments)
}

func TestGameState_Commander(t *testing.T) {
	gs := NewGameState()
	gs.CommandZone = append(gs.CommandZone, &CommanderEntry{Card: Card{Name: "Meren of Clan Nel Toth"}})

	assert.NotNil(t, gs.Commander(""))
	assert.NotNil(t, gs.Commander("Meren of Clan Nel Toth"))
	assert.Nil(t, gs.Commander("Atraxa"))
	assert.Nil(t, gs.Manifest.ManaAbilitiesFor("Forest"))
}
