package effects

import (
	"strconv"
	"testing"

	"github.com/magefree/mage-goldfish/internal/game/board"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newCreature(name, typeLine string, power, toughness int, oracle string) *board.Permanent {
	return board.NewPermanent(board.Card{
		Name:       name,
		TypeLine:   typeLine,
		Power:      strconv.Itoa(power),
		Toughness:  strconv.Itoa(toughness),
		OracleText: oracle,
	})
}

func newEnchantment(name, oracle string) *board.Permanent {
	return board.NewPermanent(board.Card{Name: name, TypeLine: "Enchantment", OracleText: oracle})
}

func newArtifact(name, oracle string) *board.Permanent {
	return board.NewPermanent(board.Card{Name: name, TypeLine: "Artifact", OracleText: oracle})
}

func TestDetect_Anthem(t *testing.T) {
	effects := DetectEffects(newEnchantment("Glorious Anthem", "Creatures you control get +1/+1."))
	require.Len(t, effects, 1)

	e := effects[0]
	assert.Equal(t, CategoryPowerToughness, e.Category)
	assert.Equal(t, LayerPowerToughness, e.Layer)
	assert.Equal(t, PowerToughness{Power: 1, Toughness: 1}, e.Modification)
	assert.Equal(t, []string{board.CategoryCreature}, e.Filter.CardTypes)
	assert.Empty(t, e.Filter.Subtypes)
	assert.False(t, e.Filter.ExcludeSelf)
	assert.Equal(t, "Glorious Anthem", e.SourceName)
	assert.Zero(t, e.Timestamp)
}

func TestDetect_SubtypeLord(t *testing.T) {
	lord := newCreature("Elvish Archdruid", "Creature — Elf Druid", 2, 2,
		"Other Elf creatures you control get +1/+1.\n{T}: Add {G} for each Elf you control.")
	effects := DetectEffects(lord)
	require.Len(t, effects, 1)

	assert.Equal(t, []string{"Elf"}, effects[0].Filter.Subtypes)
	assert.True(t, effects[0].Filter.ExcludeSelf)
	assert.Equal(t, "Elvish Archdruid: other Elf creatures get +1/+1", effects[0].Describe())
}

func TestDetect_NegativeAnthem(t *testing.T) {
	effects := DetectEffects(newEnchantment("Cower", "Creatures you control get -1/-0."))
	require.Len(t, effects, 1)
	assert.Equal(t, PowerToughness{Power: -1, Toughness: 0}, effects[0].Modification)
}

func TestDetect_KeywordGrant(t *testing.T) {
	effects := DetectEffects(newEnchantment("Sky Banner", "Creatures you control have flying and first strike."))
	require.Len(t, effects, 2)

	assert.Equal(t, KeywordGrant{Keyword: "flying"}, effects[0].Modification)
	assert.Equal(t, KeywordGrant{Keyword: "first strike"}, effects[1].Modification)
	for _, e := range effects {
		assert.Equal(t, LayerAbility, e.Layer)
		assert.Equal(t, CategoryKeyword, e.Category)
	}
	assert.Equal(t, "Sky Banner: creatures have First Strike", effects[1].Describe())
}

func TestDetect_KeywordGrantIgnoresUnknownWords(t *testing.T) {
	effects := DetectEffects(newEnchantment("Odd Banner", "Creatures you control have shroud and wither."))
	assert.Empty(t, effects)
}

func TestDetect_ArtifactKeywordGrant(t *testing.T) {
	effects := DetectEffects(newArtifact("Sky Forge", "Artifacts you control have hexproof."))
	require.Len(t, effects, 1)
	assert.Equal(t, []string{board.CategoryArtifact}, effects[0].Filter.CardTypes)
}

func TestDetect_AnthemWithKeyword(t *testing.T) {
	effects := DetectEffects(newEnchantment("Always Watching", "Nontoken creatures you control get +1/+1 and have vigilance."))
	assert.Empty(t, effects, "nontoken qualifier is conditional")

	effects = DetectEffects(newEnchantment("Dictate Lite", "Creatures you control get +1/+1 and have vigilance."))
	require.Len(t, effects, 2)
	assert.Equal(t, PowerToughness{Power: 1, Toughness: 1}, effects[0].Modification)
	assert.Equal(t, KeywordGrant{Keyword: "vigilance"}, effects[1].Modification)
}

func TestDetect_SkipsConditionalAndTemporaryClauses(t *testing.T) {
	tests := []struct {
		name string
		text string
	}{
		{"attacking", "Attacking creatures you control get +1/+0."},
		{"until end of turn", "When this enters, creatures you control get +2/+2 until end of turn."},
		{"temporary keyword", "Creatures you control have trample until end of turn."},
		{"no text", ""},
		{"no pattern", "Draw a card."},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Empty(t, DetectEffects(newEnchantment("Test", tt.text)))
		})
	}
}

func TestDetect_CostModification(t *testing.T) {
	tests := []struct {
		name      string
		text      string
		cardTypes []string
		want      CostChange
	}{
		{"creature reduction", "Creature spells you cast cost {1} less to cast.", []string{"creature"}, CostChange{GenericReduction: 1}},
		{"all spells increase", "Spells cost {2} more to cast.", nil, CostChange{GenericIncrease: 2}},
		{"artifact reduction", "Artifact spells cost {1} less to cast.", []string{"artifact"}, CostChange{GenericReduction: 1}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			effects := DetectEffects(newArtifact("Medallion", tt.text))
			require.Len(t, effects, 1)
			assert.Equal(t, CategoryCostModification, effects[0].Category)
			assert.Equal(t, LayerNone, effects[0].Layer)
			assert.Equal(t, tt.cardTypes, effects[0].Filter.CardTypes)
			assert.Equal(t, tt.want, effects[0].Modification)
		})
	}
}

func TestDetect_CostModificationCollectsEverySentence(t *testing.T) {
	text := "Artifact spells you cast cost {1} less to cast. Enchantment spells you cast cost {1} less to cast."
	effects := DetectEffects(newArtifact("Twin Medallion", text))
	require.Len(t, effects, 2)
	assert.Equal(t, []string{"artifact"}, effects[0].Filter.CardTypes)
	assert.Equal(t, []string{"enchantment"}, effects[1].Filter.CardTypes)
}

func TestDetect_NoncreatureQualifierIsSkipped(t *testing.T) {
	assert.Empty(t, DetectEffects(newCreature("Thalia", "Legendary Creature — Human Soldier", 2, 1,
		"First strike\nNoncreature spells cost {1} more to cast.")))
}

func TestDetect_TypeAddition(t *testing.T) {
	effects := DetectEffects(newEnchantment("Mycosynth Haze", "Creatures you control are artifacts in addition to their other types."))
	require.Len(t, effects, 1)
	assert.Equal(t, LayerType, effects[0].Layer)
	assert.Equal(t, TypeAddition{Types: []string{"Artifact"}}, effects[0].Modification)
}

func TestDetect_DoesNotMutatePermanent(t *testing.T) {
	p := newEnchantment("Glorious Anthem", "Creatures you control get +1/+1.")
	before := *p
	DetectEffects(p)
	assert.Equal(t, before, *p)
}

func TestDetect_NilPermanent(t *testing.T) {
	assert.Nil(t, DetectEffects(nil))
}
