package mana

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseCost(t *testing.T) {
	tests := []struct {
		input    string
		expected ManaCost
		err      bool
	}{
		{"", ManaCost{}, false},
		{"{1}", ManaCost{Generic: 1}, false},
		{"{G}", ManaCost{Green: 1}, false},
		{"{1}{G}", ManaCost{Generic: 1, Green: 1}, false},
		{"{2}{R}{R}", ManaCost{Generic: 2, Red: 2}, false},
		{"{X}{R}", ManaCost{X: 1, Red: 1}, false},
		{"{X}{X}{G}", ManaCost{X: 2, Green: 1}, false},
		{"{W}{U}{B}{R}{G}", ManaCost{White: 1, Blue: 1, Black: 1, Red: 1, Green: 1}, false},
		{"{C}", ManaCost{Colorless: 1}, false},
		{"{10}", ManaCost{Generic: 10}, false},
		{"{W/U}{W/U}", ManaCost{Generic: 2}, false},
		{"{3}{u}{b}", ManaCost{Generic: 3, Blue: 1, Black: 1}, false},
		{"{S}", ManaCost{}, true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			result, err := ParseCost(tt.input)
			if tt.err {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, result)
		})
	}
}

func TestBuildCostString_RoundTrip(t *testing.T) {
	for _, input := range []string{"{3}{U}{B}", "{G}", "{X}{R}", "{2}{W}{W}", "{1}{C}", "{0}", "{12}{G}{G}{G}"} {
		t.Run(input, func(t *testing.T) {
			parsed := MustParseCost(input)
			rebuilt := BuildCostString(parsed)
			reparsed := MustParseCost(rebuilt)

			assert.Equal(t, parsed.Total(), reparsed.Total())
			for _, mt := range AllTypes {
				assert.Equal(t, parsed.Pips(mt), reparsed.Pips(mt), "pips for %s", mt)
			}
			assert.Equal(t, parsed, reparsed)
		})
	}
}

func TestManaCost_String(t *testing.T) {
	assert.Equal(t, "{3}{U}{B}", MustParseCost("{U}{3}{B}").String())
	assert.Equal(t, "{0}", ManaCost{}.String())
	assert.Equal(t, "{X}{R}", MustParseCost("{X}{R}").String())
}

func TestManaCost_WithGeneric(t *testing.T) {
	cost := MustParseCost("{3}{G}{G}")

	reduced := cost.WithGeneric(2)
	assert.Equal(t, 2, reduced.Generic)
	assert.Equal(t, 2, reduced.Green)

	floored := cost.WithGeneric(-4)
	assert.Equal(t, 0, floored.Generic)
	assert.Equal(t, 3, cost.Generic, "original cost must not change")
}

func TestAbility_Requirements(t *testing.T) {
	forest := Ability{ActivationCost: []string{"{T}"}, Produces: Production{Fixed: []ManaType{ManaGreen}}}
	signet := Ability{ActivationCost: []string{"{1}", "{T}"}, Produces: Production{Fixed: []ManaType{ManaWhite, ManaBlue}}}
	lotus := Ability{ActivationCost: []string{"{T}", "Sacrifice Lotus Petal"}, Produces: Production{Choice: ColorOrder}}

	assert.True(t, forest.RequiresTap())
	assert.False(t, forest.RequiresMana())
	assert.True(t, signet.RequiresMana())
	assert.True(t, lotus.RequiresSacrifice())
	assert.True(t, lotus.Produces.CanProduce(ManaRed))
	assert.False(t, forest.Produces.CanProduce(ManaRed))
	assert.Equal(t, 1, lotus.Produces.BaseAmount())

	assert.True(t, Production{Choice: []ManaType{ManaGreen}, XRule: "creature_count"}.IsVariable())
	assert.False(t, Production{Fixed: []ManaType{ManaGreen}, XRule: "creature_count"}.IsVariable())
	assert.False(t, Production{Combinations: [][]ManaType{{ManaGreen}}, XRule: "creature_count"}.IsVariable())
	assert.False(t, lotus.Produces.IsVariable())
}
