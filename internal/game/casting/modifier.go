// Package casting computes what a spell actually costs once cost-modifying
// static effects and commander tax are taken into account.
package casting

import (
	"errors"
	"fmt"

	"github.com/magefree/mage-goldfish/internal/game/board"
	"github.com/magefree/mage-goldfish/internal/game/effects"
	"github.com/magefree/mage-goldfish/internal/game/mana"
)

// TaxPerCast is the generic surcharge added for each previous cast of a
// commander from the command zone.
const TaxPerCast = 2

// ErrNoCommander is returned when a commander cost is requested without a
// commander.
var ErrNoCommander = errors.New("no commander")

// ModifierSource is one effect contributing to a spell's cost change.
type ModifierSource struct {
	Name      string `json:"name"`
	SourceID  string `json:"source_id"`
	Reduction int    `json:"reduction,omitempty"`
	Increase  int    `json:"increase,omitempty"`
	Text      string `json:"text,omitempty"`
}

// Modifiers aggregates the cost-modification effects applying to one spell.
type Modifiers struct {
	Reduction int              `json:"reduction"`
	Increase  int              `json:"increase"`
	Sources   []ModifierSource `json:"sources,omitempty"`
}

// Net returns the generic amount removed from the cost; negative when
// increases outweigh reductions.
func (m Modifiers) Net() int {
	return m.Reduction - m.Increase
}

// IsZero reports whether no effect changes the cost.
func (m Modifiers) IsZero() bool {
	return m.Reduction == 0 && m.Increase == 0
}

// GetCostModifiers sums every registered cost-modification effect whose filter
// matches the spell. A nil registry yields no modifiers.
func GetCostModifiers(reg *effects.Registry, spell board.Card) Modifiers {
	var mods Modifiers
	for _, e := range reg.ByCategory(effects.CategoryCostModification) {
		change, ok := e.Modification.(effects.CostChange)
		if !ok || !e.Filter.MatchesCard(spell) {
			continue
		}
		mods.Reduction += change.GenericReduction
		mods.Increase += change.GenericIncrease
		mods.Sources = append(mods.Sources, ModifierSource{
			Name:      e.SourceName,
			SourceID:  e.SourceID,
			Reduction: change.GenericReduction,
			Increase:  change.GenericIncrease,
			Text:      e.Text,
		})
	}
	return mods
}

// CalculateModifiedCost applies reduction minus increase to the generic
// component only. Generic never drops below zero and colored pips are never
// reduced.
func CalculateModifiedCost(cost mana.ManaCost, mods Modifiers) mana.ManaCost {
	return cost.WithGeneric(cost.Generic - mods.Net())
}

// ApplyCommanderTax adds TaxPerCast generic for each prior cast. It is
// applied after cost modifiers, so reducers never discount tax.
func ApplyCommanderTax(cost mana.ManaCost, priorCasts int) mana.ManaCost {
	if priorCasts <= 0 {
		return cost
	}
	return cost.WithGeneric(cost.Generic + TaxPerCast*priorCasts)
}

// Breakdown explains how a spell's final cost was reached.
type Breakdown struct {
	Spell     string        `json:"spell"`
	Base      mana.ManaCost `json:"-"`
	Modified  mana.ManaCost `json:"-"`
	Final     mana.ManaCost `json:"-"`
	Modifiers Modifiers     `json:"modifiers"`
	CastCount int           `json:"cast_count,omitempty"`
	Tax       int           `json:"tax,omitempty"`

	BaseCost  string `json:"base_cost"`
	FinalCost string `json:"final_cost"`
	Total     int    `json:"total"`
}

// Explain renders the breakdown as display lines, e.g.
//
//	Base cost: {4}{B}
//	Herald's Horn: {1} less
//	Commander tax: +{4} (cast 2 times)
//	Final cost: {7}{B} (8 total)
func (b Breakdown) Explain() []string {
	lines := []string{fmt.Sprintf("Base cost: %s", b.Base)}
	for _, src := range b.Modifiers.Sources {
		change := effects.CostChange{GenericReduction: src.Reduction, GenericIncrease: src.Increase}
		lines = append(lines, fmt.Sprintf("%s: %s", src.Name, change.Amount()))
	}
	if b.Tax > 0 {
		lines = append(lines, fmt.Sprintf("Commander tax: +{%d} (cast %d times)", b.Tax, b.CastCount))
	}
	return append(lines, fmt.Sprintf("Final cost: %s (%d total)", b.Final, b.Final.Total()))
}

func newBreakdown(name string, base mana.ManaCost, mods Modifiers) Breakdown {
	modified := CalculateModifiedCost(base, mods)
	return Breakdown{
		Spell:     name,
		Base:      base,
		Modified:  modified,
		Final:     modified,
		Modifiers: mods,
	}
}

func (b *Breakdown) finish() {
	b.BaseCost = b.Base.String()
	b.FinalCost = b.Final.String()
	b.Total = b.Final.Total()
}

// GetSpellCost composes base cost and active modifiers for a spell cast
// from hand.
func GetSpellCost(reg *effects.Registry, spell board.Card) (Breakdown, error) {
	base, err := mana.ParseCost(spell.ManaCost)
	if err != nil {
		return Breakdown{}, fmt.Errorf("spell %q: %w", spell.Name, err)
	}
	b := newBreakdown(spell.Name, base, GetCostModifiers(reg, spell))
	b.finish()
	return b, nil
}

// GetCommanderFinalCost composes base cost, active modifiers and then
// commander tax.
func GetCommanderFinalCost(reg *effects.Registry, commander *board.CommanderEntry) (Breakdown, error) {
	if commander == nil {
		return Breakdown{}, ErrNoCommander
	}
	base, err := mana.ParseCost(commander.Card.ManaCost)
	if err != nil {
		return Breakdown{}, fmt.Errorf("commander %q: %w", commander.Card.Name, err)
	}
	b := newBreakdown(commander.Card.Name, base, GetCostModifiers(reg, commander.Card))
	b.CastCount = commander.CastCount
	b.Final = ApplyCommanderTax(b.Modified, commander.CastCount)
	b.Tax = b.Final.Generic - b.Modified.Generic
	b.finish()
	return b, nil
}

// CanCastWithModifiedCost checks the spell's modified cost against the
// floating mana without changing the pool. Colored pips must be met by
// their own color and the pool total must cover the whole cost.
func CanCastWithModifiedCost(reg *effects.Registry, spell board.Card, pool *mana.Pool) (bool, Breakdown, error) {
	b, err := GetSpellCost(reg, spell)
	if err != nil {
		return false, Breakdown{}, err
	}
	if pool == nil {
		return false, b, nil
	}
	return pool.CanPay(b.Final), b, nil
}
