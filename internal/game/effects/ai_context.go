package effects

import (
	"fmt"
	"sort"
	"strings"

	"github.com/magefree/mage-goldfish/internal/game/board"
)

// AIContext is a compact description of the active static effects, meant to
// be dropped into a prompt or shown to a player.
type AIContext struct {
	Summary          string            `json:"summary"`
	ActiveEffects    []ActiveEffect    `json:"active_effects"`
	BoostedCreatures []BoostedCreature `json:"boosted_creatures"`
	CostModifiers    []string          `json:"cost_modifiers,omitempty"`
}

// ActiveEffect is one registered effect in readable form.
type ActiveEffect struct {
	Source      string `json:"source"`
	Category    string `json:"category"`
	Layer       string `json:"layer"`
	Description string `json:"description"`
}

// BoostedCreature lists a creature whose stats or keywords differ from its
// printed card.
type BoostedCreature struct {
	Name           string   `json:"name"`
	Power          int      `json:"power"`
	Toughness      int      `json:"toughness"`
	BasePower      int      `json:"base_power"`
	BaseToughness  int      `json:"base_toughness"`
	GrantedAbility []string `json:"granted_abilities,omitempty"`
}

// String renders the creature as "Llanowar Elves 2/2 (base 1/1, Flying)".
func (b BoostedCreature) String() string {
	s := fmt.Sprintf("%s %d/%d (base %d/%d", b.Name, b.Power, b.Toughness, b.BasePower, b.BaseToughness)
	if len(b.GrantedAbility) > 0 {
		s += ", " + strings.Join(b.GrantedAbility, ", ")
	}
	return s + ")"
}

// GetAIContext describes the registry and the creatures it currently
// affects. A missing registry yields an empty context.
func GetAIContext(bf *board.Battlefield, reg *Registry) AIContext {
	if reg == nil {
		return AIContext{Summary: "No static effects tracked."}
	}

	ctx := AIContext{Summary: summarizeCounts(reg)}
	for _, e := range reg.Effects() {
		ctx.ActiveEffects = append(ctx.ActiveEffects, ActiveEffect{
			Source:      e.SourceName,
			Category:    string(e.Category),
			Layer:       e.Layer.String(),
			Description: e.Describe(),
		})
		if e.Category == CategoryCostModification {
			ctx.CostModifiers = append(ctx.CostModifiers, e.Describe())
		}
	}

	if bf == nil {
		return ctx
	}
	for _, p := range layerTargets(bf) {
		if !p.HasType(board.CategoryCreature) {
			continue
		}
		stats := CalculateFinalStats(p)
		if stats.StaticPower == 0 && stats.StaticToughness == 0 && len(p.StaticEffects.Keywords) == 0 {
			continue
		}
		boosted := BoostedCreature{
			Name:          p.Name,
			Power:         stats.Power,
			Toughness:     stats.Toughness,
			BasePower:     stats.BasePower,
			BaseToughness: stats.BaseToughness,
		}
		for _, kw := range p.StaticEffects.Keywords {
			boosted.GrantedAbility = append(boosted.GrantedAbility, DisplayKeyword(kw))
		}
		ctx.BoostedCreatures = append(ctx.BoostedCreatures, boosted)
	}
	return ctx
}

func summarizeCounts(reg *Registry) string {
	if reg.Count() == 0 {
		return "No active static effects."
	}
	counts := reg.CountByCategory()
	categories := make([]string, 0, len(counts))
	for c := range counts {
		categories = append(categories, string(c))
	}
	sort.Strings(categories)

	parts := make([]string, 0, len(categories))
	for _, c := range categories {
		parts = append(parts, fmt.Sprintf("%d %s", counts[Category(c)], strings.ReplaceAll(c, "_", " ")))
	}
	return fmt.Sprintf("%d static effect(s) from %d source(s): %s",
		reg.Count(), reg.SourceCount(), strings.Join(parts, ", "))
}
