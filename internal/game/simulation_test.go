package game

import (
	"errors"
	"testing"

	"github.com/magefree/mage-goldfish/internal/game/board"
	"github.com/magefree/mage-goldfish/internal/game/effects"
	"github.com/magefree/mage-goldfish/internal/game/events"
	"github.com/magefree/mage-goldfish/internal/game/mana"
	"github.com/magefree/mage-goldfish/internal/game/watchers"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

var (
	grizzlyBears   = board.Card{Name: "Grizzly Bears", TypeLine: "Creature — Bear", ManaCost: "{1}{G}", CMC: 2, Power: "2", Toughness: "2"}
	gloriousAnthem = board.Card{Name: "Glorious Anthem", TypeLine: "Enchantment", ManaCost: "{1}{W}{W}", CMC: 3, OracleText: "Creatures you control get +1/+1."}
	heraldsHorn    = board.Card{Name: "Herald's Horn", TypeLine: "Artifact", ManaCost: "{3}", CMC: 3, OracleText: "Creature spells you cast cost {1} less to cast."}
	forestCard     = board.Card{Name: "Forest", TypeLine: "Basic Land — Forest"}
	islandCard     = board.Card{Name: "Island", TypeLine: "Basic Land — Island"}
	lightningBolt  = board.Card{Name: "Lightning Bolt", TypeLine: "Instant", ManaCost: "{R}", CMC: 1}
	marwyn         = board.Card{Name: "Marwyn, the Nurturer", TypeLine: "Legendary Creature — Elf Druid", ManaCost: "{2}{G}", CMC: 3, Power: "1", Toughness: "1"}
)

// newTestSimulation builds a simulation that records events and logs to the
// test output.
func newTestSimulation(t *testing.T, state *board.GameState, opts ...Option) (*Simulation, *events.Recorder) {
	t.Helper()
	rec := events.NewRecorder()
	opts = append([]Option{WithLogger(zaptest.NewLogger(t)), WithSink(rec)}, opts...)
	return NewSimulation(state, opts...), rec
}

func basicLandState() *board.GameState {
	state := board.NewGameState()
	state.Manifest.ManaAbilities["Forest"] = mana.AbilityMetadata{Abilities: []mana.Ability{{
		ActivationCost: []string{"{T}"},
		Produces:       mana.Production{Fixed: []mana.ManaType{mana.ManaGreen}},
	}}}
	state.Manifest.ManaAbilities["Island"] = mana.AbilityMetadata{Abilities: []mana.Ability{{
		ActivationCost: []string{"{T}"},
		Produces:       mana.Production{Fixed: []mana.ManaType{mana.ManaBlue}},
	}}}
	return state
}

func TestSimulation_EnterAndLeaveBattlefield(t *testing.T) {
	sim, rec := newTestSimulation(t, nil)

	bears := sim.EnterBattlefield(grizzlyBears)
	assert.Equal(t, 2, sim.Stats(bears).Power)

	anthem := sim.EnterBattlefield(gloriousAnthem)
	stats := sim.Stats(bears)
	assert.Equal(t, 3, stats.Power)
	assert.Equal(t, 3, stats.Toughness)
	assert.Equal(t, 1, sim.Registry.Count())

	require.True(t, sim.LeaveBattlefield(anthem))
	assert.Equal(t, 2, sim.Stats(bears).Power)
	assert.Zero(t, sim.Registry.Count())
	assert.False(t, sim.LeaveBattlefield(anthem), "already gone")

	assert.Len(t, rec.OfType(events.PermanentEntered), 2)
	assert.Len(t, rec.OfType(events.PermanentLeft), 1)
	assert.Len(t, rec.OfType(events.EffectUnregistered), 1)
}

func TestSimulation_ScansStartingBattlefield(t *testing.T) {
	state := board.NewGameState()
	bears := board.NewPermanent(grizzlyBears)
	state.Battlefield.Add(bears)
	state.Battlefield.Add(board.NewPermanent(gloriousAnthem))

	sim, rec := newTestSimulation(t, state)

	assert.Equal(t, 1, sim.Registry.Count())
	assert.Equal(t, 3, sim.Stats(bears).Power)
	assert.Len(t, rec.OfType(events.BattlefieldScanned), 1)
}

func TestSimulation_LandsMatchScan(t *testing.T) {
	sim, _ := newTestSimulation(t, nil)
	bears := sim.EnterBattlefield(grizzlyBears)
	sim.EnterBattlefield(board.Card{
		Name:       "Odd Meadow",
		TypeLine:   "Land",
		OracleText: "Creatures you control get +1/+1.",
	})
	assert.Zero(t, sim.Registry.Count())
	assert.Equal(t, 2, sim.Stats(bears).Power)
	before := sim.Fingerprint()

	sim.Registry.ScanBattlefield(&sim.State.Battlefield)
	sim.Recompute()
	assert.Zero(t, sim.Registry.Count())
	assert.Equal(t, before, sim.Fingerprint())
}

func TestSimulation_SpellCostWithReducer(t *testing.T) {
	sim, _ := newTestSimulation(t, nil)
	sim.EnterBattlefield(heraldsHorn)

	b, err := sim.SpellCost(grizzlyBears)
	require.NoError(t, err)
	assert.Equal(t, "{G}", b.FinalCost)

	b, err = sim.SpellCost(lightningBolt)
	require.NoError(t, err)
	assert.Equal(t, "{R}", b.FinalCost)

	_, err = sim.SpellCost(board.Card{Name: "Bad", ManaCost: "{Q}"})
	assert.Error(t, err)
}

func TestSimulation_CanCastFromPool(t *testing.T) {
	sim, _ := newTestSimulation(t, nil)
	sim.Pool.Add(mana.ManaGreen, 2)

	check, err := sim.CanCast(grizzlyBears)
	require.NoError(t, err)
	assert.True(t, check.Castable)
	assert.True(t, check.FromPool)
	assert.Nil(t, check.Solution)
	assert.Empty(t, check.Sources())
}

func TestSimulation_CanCastFromSources(t *testing.T) {
	state := basicLandState()
	forest := board.NewPermanent(forestCard)
	island := board.NewPermanent(islandCard)
	state.Battlefield.Add(forest)
	state.Battlefield.Add(island)
	sim, _ := newTestSimulation(t, state)

	check, err := sim.CanCast(grizzlyBears)
	require.NoError(t, err)
	assert.True(t, check.Castable)
	assert.False(t, check.FromPool)
	assert.Equal(t, []string{"Forest", "Island"}, check.Sources())
	assert.False(t, forest.Tapped, "checking taps nothing")
	assert.Zero(t, sim.Pool.ActualTotal())

	check, err = sim.CanCast(lightningBolt)
	require.NoError(t, err)
	assert.False(t, check.Castable)
}

func TestSimulation_CanCastCombinesPoolAndSources(t *testing.T) {
	state := basicLandState()
	state.Battlefield.Add(board.NewPermanent(forestCard))
	state.Hand = []board.Card{grizzlyBears}
	sim, _ := newTestSimulation(t, state)
	sim.Pool.Add(mana.ManaBlue, 1)

	check, err := sim.CanCast(grizzlyBears)
	require.NoError(t, err)
	require.True(t, check.Castable)
	assert.Equal(t, "{G}", check.Remaining.String())
	assert.Equal(t, []string{"Forest"}, check.Sources())

	_, err = sim.Cast(grizzlyBears)
	require.NoError(t, err)
	assert.Zero(t, sim.Pool.ActualTotal())
	assert.True(t, sim.Pool.Verify())
}

func TestSimulation_Cast(t *testing.T) {
	state := basicLandState()
	forest := board.NewPermanent(forestCard)
	island := board.NewPermanent(islandCard)
	state.Battlefield.Add(forest)
	state.Battlefield.Add(island)
	state.Hand = []board.Card{grizzlyBears, lightningBolt}
	sim, rec := newTestSimulation(t, state)

	check, err := sim.Cast(grizzlyBears)
	require.NoError(t, err)
	assert.True(t, check.Castable)
	assert.True(t, forest.Tapped)
	assert.True(t, island.Tapped)
	assert.Zero(t, sim.Pool.ActualTotal())
	assert.NotNil(t, state.Battlefield.FindByName("Grizzly Bears"))
	require.Len(t, state.Hand, 1)
	assert.Equal(t, "Lightning Bolt", state.Hand[0].Name)
	assert.Len(t, rec.OfType(events.ManaPaid), 1)
	spells := rec.OfType(events.SpellCast)
	require.Len(t, spells, 1)
	assert.Equal(t, "Grizzly Bears", spells[0].Source)

	_, err = sim.Cast(lightningBolt)
	assert.True(t, errors.Is(err, ErrCannotPay))
	assert.Len(t, state.Hand, 1)
}

func TestSimulation_CastRequiresCardInHand(t *testing.T) {
	state := basicLandState()
	for range 4 {
		state.Battlefield.Add(board.NewPermanent(forestCard))
	}
	state.Hand = []board.Card{grizzlyBears}
	sim, rec := newTestSimulation(t, state)

	_, err := sim.Cast(grizzlyBears)
	require.NoError(t, err)
	assert.Empty(t, state.Hand)
	assert.Len(t, state.Battlefield.Creatures, 1)

	check, err := sim.Cast(grizzlyBears)
	assert.ErrorIs(t, err, ErrNotInHand)
	assert.False(t, check.Castable)
	assert.Len(t, state.Battlefield.Creatures, 1)
	assert.Len(t, sim.Potential(), 2, "nothing was tapped for the second cast")
	assert.Len(t, rec.OfType(events.SpellCast), 1)
	assert.Len(t, rec.OfType(events.ManaPaid), 1)
}

func TestSimulation_CastSacrificesTreasure(t *testing.T) {
	state := board.NewGameState()
	state.Manifest.ManaAbilities["Treasure"] = mana.AbilityMetadata{Abilities: []mana.Ability{{
		ActivationCost: []string{"{T}", "Sacrifice this artifact"},
		Produces:       mana.Production{Choice: mana.ColorOrder},
	}}}
	state.Battlefield.Add(board.NewPermanent(board.Card{Name: "Treasure", TypeLine: "Token Artifact — Treasure"}))
	state.Hand = []board.Card{lightningBolt}
	sim, rec := newTestSimulation(t, state)

	_, err := sim.Cast(lightningBolt)
	require.NoError(t, err)
	assert.Nil(t, state.Battlefield.FindByName("Treasure"))
	assert.Nil(t, state.Battlefield.FindByName("Lightning Bolt"), "instants do not stay on the battlefield")
	assert.Len(t, rec.OfType(events.PermanentLeft), 1)
}

func TestSimulation_CastCommander(t *testing.T) {
	state := board.NewGameState()
	state.CommandZone = []*board.CommanderEntry{{Card: marwyn}}
	sim, rec := newTestSimulation(t, state)
	sim.Pool.Add(mana.ManaGreen, 3)
	sim.Pool.Add(mana.ManaColorless, 2)

	check, err := sim.CastCommander("")
	require.NoError(t, err)
	assert.Equal(t, "{2}{G}", check.Cost.FinalCost)
	assert.Equal(t, 1, state.CommandZone[0].CastCount)
	assert.True(t, state.CommandZone[0].OnBattlefield)
	assert.Equal(t, 2, sim.Pool.Get(mana.ManaGreen))

	cast := rec.OfType(events.CommanderCast)
	require.Len(t, cast, 1)
	assert.Equal(t, 0, cast[0].Fields["tax"])

	_, err = sim.CastCommander("")
	assert.True(t, errors.Is(err, ErrCommanderOnBattlefield))

	require.True(t, sim.LeaveBattlefield(state.Battlefield.FindByName(marwyn.Name)))
	assert.False(t, state.CommandZone[0].OnBattlefield)

	b, err := sim.CommanderCost("")
	require.NoError(t, err)
	assert.Equal(t, "{4}{G}", b.FinalCost)
	assert.Equal(t, 2, b.Tax)

	_, err = sim.CastCommander(marwyn.Name)
	assert.True(t, errors.Is(err, ErrCannotPay))
	assert.Equal(t, 1, state.CommandZone[0].CastCount, "failed cast adds no tax")

	_, err = sim.CastCommander("Somebody Else")
	assert.Error(t, err)
}

func TestSimulation_PhasesAndTurns(t *testing.T) {
	sim, rec := newTestSimulation(t, nil)
	sim.EnterBattlefield(gloriousAnthem)
	bears := sim.EnterBattlefield(grizzlyBears)
	bears.Tapped = true

	sim.AddTemporary(bears, board.TemporaryModification{Source: "Giant Growth", Power: 3, Toughness: 3})
	sim.AddTemporary(bears, board.TemporaryModification{Source: "Trumpet Blast", Power: 2, Duration: board.DurationEndOfCombat})
	assert.Equal(t, 8, sim.Stats(bears).Power)
	assert.Zero(t, effects.TotalPower(sim.CombatData()), "summoning sick")

	assert.Equal(t, 1, sim.EndCombat())
	assert.Equal(t, 6, sim.Stats(bears).Power)

	sim.Pool.Add(mana.ManaRed, 2)
	assert.Equal(t, 1, sim.EndTurn())
	assert.Equal(t, 3, sim.Stats(bears).Power, "anthem stays")
	assert.Zero(t, sim.Pool.ActualTotal())
	assert.False(t, bears.Tapped)
	assert.False(t, bears.SummoningSick)
	assert.Equal(t, 1, sim.State.Turn)
	assert.Equal(t, 3, effects.TotalPower(sim.CombatData()))

	assert.Len(t, rec.OfType(events.TemporaryExpired), 2)
	assert.Len(t, rec.OfType(events.PoolEmptied), 1)
	ended := rec.OfType(events.TurnEnded)
	require.Len(t, ended, 1)
	assert.Equal(t, 1, ended[0].Fields["turn"])
}

func TestSimulation_AIContext(t *testing.T) {
	sim, rec := newTestSimulation(t, nil)
	sim.EnterBattlefield(gloriousAnthem)
	sim.EnterBattlefield(grizzlyBears)

	ctx := sim.AIContext()
	require.Len(t, ctx.BoostedCreatures, 1)
	assert.Equal(t, "Grizzly Bears", ctx.BoostedCreatures[0].Name)
	assert.Empty(t, rec.OfType(events.RegistryMissing))
}

func TestSimulation_WithoutRegistry(t *testing.T) {
	sim, rec := newTestSimulation(t, nil, WithoutRegistry())
	sim.EnterBattlefield(heraldsHorn)
	bears := sim.EnterBattlefield(grizzlyBears)
	sim.EnterBattlefield(gloriousAnthem)

	assert.Nil(t, sim.Registry)
	assert.Equal(t, 2, sim.Stats(bears).Power)

	b, err := sim.SpellCost(grizzlyBears)
	require.NoError(t, err)
	assert.Equal(t, "{1}{G}", b.FinalCost)

	ctx := sim.AIContext()
	assert.Equal(t, "No static effects tracked.", ctx.Summary)
	assert.Len(t, rec.OfType(events.RegistryMissing), 1)
}

func TestSimulation_Fingerprint(t *testing.T) {
	sim, _ := newTestSimulation(t, nil)
	sim.EnterBattlefield(grizzlyBears)
	before := sim.Fingerprint()

	sim.Recompute()
	assert.Equal(t, before, sim.Fingerprint(), "recompute is idempotent")

	anthem := sim.EnterBattlefield(gloriousAnthem)
	assert.NotEqual(t, before, sim.Fingerprint())

	sim.LeaveBattlefield(anthem)
	assert.Equal(t, before, sim.Fingerprint())
}

func TestSimulation_WatchersFollowTurns(t *testing.T) {
	state := basicLandState()
	state.Battlefield.Add(board.NewPermanent(forestCard))
	state.Battlefield.Add(board.NewPermanent(forestCard))
	state.Hand = []board.Card{grizzlyBears}
	watched := watchers.NewStandardRegistry()
	sim := NewSimulation(state, WithLogger(zaptest.NewLogger(t)), WithSink(watched))

	_, err := sim.Cast(grizzlyBears)
	require.NoError(t, err)
	a := watched.Activity()
	assert.Equal(t, []string{"Grizzly Bears"}, a.SpellsCast)
	assert.Equal(t, []string{"Forest", "Forest"}, a.SourcesTapped)
	assert.Equal(t, 2, a.ManaSpent)

	sim.EndTurn()
	a = watched.Activity()
	assert.Empty(t, a.SpellsCast)
	assert.Empty(t, a.SourcesTapped)
	assert.Zero(t, a.ManaSpent)
}
