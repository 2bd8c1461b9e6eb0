package payment

import (
	"strings"

	"github.com/magefree/mage-goldfish/internal/game/board"
	"github.com/magefree/mage-goldfish/internal/game/effects"
	"github.com/magefree/mage-goldfish/internal/game/events"
	"github.com/magefree/mage-goldfish/internal/game/mana"
	"go.uber.org/zap"
)

// Names of the variable-amount rules.
const (
	RuleCreaturesWithKeyword = "creatures_with_keyword"
	RuleSourcePower          = "source_power"
	RuleGreatestPower        = "greatest_power"
	RuleSacrificedCost       = "sacrificed_cost"
	RuleArtifactCount        = "artifact_count"
	RuleCreatureCount        = "creature_count"
)

// RuleContext is what a variable-amount rule may look at.
type RuleContext struct {
	State  *board.GameState
	Source *board.Permanent
	Param  string
}

// VariableRule computes the X of an ability such as "Add {G} for each
// creature you control".
type VariableRule func(ctx RuleContext) int

var variableRules = map[string]VariableRule{
	RuleCreaturesWithKeyword: func(ctx RuleContext) int {
		n := 0
		for _, p := range creaturesOf(ctx.State) {
			if ctx.Param == "" || p.HasKeyword(ctx.Param) || p.HasSubtype(ctx.Param) {
				n++
			}
		}
		return n
	},
	RuleSourcePower: func(ctx RuleContext) int {
		return effects.CalculateFinalStats(ctx.Source).Power
	},
	RuleGreatestPower: func(ctx RuleContext) int {
		best := 0
		for _, p := range creaturesOf(ctx.State) {
			best = max(best, effects.CalculateFinalStats(p).Power)
		}
		return best
	},
	RuleSacrificedCost: func(ctx RuleContext) int {
		sacrificed := ctx.Source
		if ctx.Param != "" && ctx.State != nil {
			if p := ctx.State.Battlefield.FindByName(ctx.Param); p != nil {
				sacrificed = p
			}
		}
		if sacrificed == nil {
			return 0
		}
		if sacrificed.CMC > 0 {
			return sacrificed.CMC
		}
		cost, err := mana.ParseCost(sacrificed.ManaCost)
		if err != nil {
			return 0
		}
		return cost.Total()
	},
	RuleArtifactCount: func(ctx RuleContext) int {
		return countType(ctx.State, board.CategoryArtifact)
	},
	RuleCreatureCount: func(ctx RuleContext) int {
		return len(creaturesOf(ctx.State))
	},
}

func creaturesOf(state *board.GameState) []*board.Permanent {
	if state == nil {
		return nil
	}
	var out []*board.Permanent
	for _, p := range state.Battlefield.All() {
		if p.HasType(board.CategoryCreature) {
			out = append(out, p)
		}
	}
	return out
}

func countType(state *board.GameState, typeName string) int {
	if state == nil {
		return 0
	}
	n := 0
	for _, p := range state.Battlefield.All() {
		if p.HasType(typeName) {
			n++
		}
	}
	return n
}

// IsKnownRule reports whether name is in the rule table.
func IsKnownRule(name string) bool {
	_, ok := variableRules[strings.ToLower(strings.TrimSpace(name))]
	return ok
}

// ResolveVariableAmount evaluates the named rule. An unknown rule yields 1,
// logs a warning and records a variable_rule_unknown event.
func ResolveVariableAmount(rule string, ctx RuleContext, logger *zap.Logger, sink events.Sink) int {
	fn, ok := variableRules[strings.ToLower(strings.TrimSpace(rule))]
	if ok {
		return max(0, fn(ctx))
	}

	source := ""
	if ctx.Source != nil {
		source = ctx.Source.Name
	}
	if logger != nil {
		logger.Warn("unknown variable mana rule, defaulting to 1",
			zap.String("rule", rule),
			zap.String("source", source))
	}
	events.Emit(sink, events.VariableRuleUnknown, source,
		map[string]any{"rule": rule},
		"unknown variable rule %q on %s, using 1", rule, source)
	return 1
}
