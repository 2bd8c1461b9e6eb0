package payment

import (
	"github.com/magefree/mage-goldfish/internal/game/board"
	"github.com/magefree/mage-goldfish/internal/game/mana"
)

// CommanderNeedWeight multiplies the commander's pips while it is not on the
// battlefield.
const CommanderNeedWeight = 3

// HandNeed counts the colored pips of every spell in hand, plus the
// commander's pips weighted by CommanderNeedWeight when it is not on the
// battlefield. Lands and unparsable costs contribute nothing.
func HandNeed(state *board.GameState) map[mana.ManaType]int {
	need := make(map[mana.ManaType]int, len(mana.ColorOrder))
	if state == nil {
		return need
	}
	countPips := func(costStr string, weight int) {
		cost, err := mana.ParseCost(costStr)
		if err != nil {
			return
		}
		for _, t := range mana.ColorOrder {
			need[t] += cost.Pips(t) * weight
		}
	}
	for _, card := range state.Hand {
		if card.IsLand() {
			continue
		}
		countPips(card.ManaCost, 1)
	}
	for _, cmd := range state.CommandZone {
		if !cmd.OnBattlefield {
			countPips(cmd.Card.ManaCost, CommanderNeedWeight)
		}
	}
	return need
}

// ChooseOptimalColor picks the option the hand needs most. Without any need
// it falls back to the first option among the deck's primary colors, then to
// the first option. Ties keep the earlier option.
func ChooseOptimalColor(options []mana.ManaType, state *board.GameState) mana.ManaType {
	if len(options) == 0 {
		return ""
	}
	need := HandNeed(state)
	best, bestNeed := mana.ManaType(""), 0
	for _, opt := range options {
		if need[opt] > bestNeed {
			best, bestNeed = opt, need[opt]
		}
	}
	if best != "" {
		return best
	}
	if state != nil {
		for _, primary := range state.PrimaryColors {
			for _, opt := range options {
				if opt == primary {
					return opt
				}
			}
		}
	}
	return options[0]
}

// ChooseOptimalCombination picks the combination whose colors the hand needs
// most, then the one with the most primary-color units, then the first.
func ChooseOptimalCombination(combos [][]mana.ManaType, state *board.GameState) []mana.ManaType {
	if len(combos) == 0 {
		return nil
	}
	need := HandNeed(state)
	bestIdx, bestScore := -1, 0
	for i, combo := range combos {
		score := 0
		for _, t := range combo {
			score += need[t]
		}
		if score > bestScore {
			bestIdx, bestScore = i, score
		}
	}
	if bestIdx >= 0 {
		return combos[bestIdx]
	}

	if state != nil && len(state.PrimaryColors) > 0 {
		primary := make(map[mana.ManaType]bool, len(state.PrimaryColors))
		for _, t := range state.PrimaryColors {
			primary[t] = true
		}
		for i, combo := range combos {
			score := 0
			for _, t := range combo {
				if primary[t] {
					score++
				}
			}
			if score > bestScore {
				bestIdx, bestScore = i, score
			}
		}
		if bestIdx >= 0 {
			return combos[bestIdx]
		}
	}
	return combos[0]
}
