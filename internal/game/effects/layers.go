package effects

import (
	"github.com/magefree/mage-goldfish/internal/game/board"
	"github.com/magefree/mage-goldfish/internal/game/events"
	"go.uber.org/zap"
)

// layerOrder lists the layers the engine evaluates. Copy, control and text
// changing effects are never produced by the detector.
var layerOrder = []Layer{
	LayerType,
	LayerColor,
	LayerAbility,
	LayerPowerToughness,
}

// LayerResult counts what one ApplyAllLayers pass did.
type LayerResult struct {
	Reset        int
	Applications map[Layer]int
}

// Total returns the number of (effect, permanent) applications.
func (r LayerResult) Total() int {
	total := 0
	for _, n := range r.Applications {
		total += n
	}
	return total
}

// layerTargets returns the permanents whose derived record the engine owns.
func layerTargets(bf *board.Battlefield) []*board.Permanent {
	out := make([]*board.Permanent, 0, len(bf.Creatures)+len(bf.Artifacts))
	out = append(out, bf.Creatures...)
	return append(out, bf.Artifacts...)
}

// ApplyAllLayers recomputes the derived record of every creature and artifact
// from scratch. All records are zeroed first, then each layer is applied in
// full, oldest effect first, before the next layer starts. Calling it again
// without a board change produces the same records.
//
// A nil registry resets the records and applies nothing.
func ApplyAllLayers(bf *board.Battlefield, reg *Registry) LayerResult {
	result := LayerResult{Applications: make(map[Layer]int)}
	if bf == nil {
		return result
	}

	targets := layerTargets(bf)
	for _, p := range targets {
		p.ResetStaticEffects()
	}
	result.Reset = len(targets)

	if reg == nil {
		return result
	}

	for _, layer := range layerOrder {
		for _, effect := range reg.ByLayer(layer) {
			for _, p := range targets {
				if !effect.Filter.Matches(p, effect.SourceID) {
					continue
				}
				effect.Modification.applyTo(&p.StaticEffects)
				result.Applications[layer]++
			}
		}
	}

	reg.logger.Debug("applied layers",
		zap.Int("permanents", result.Reset),
		zap.Int("applications", result.Total()))
	events.Emit(reg.sink, events.LayersApplied, "",
		map[string]any{
			"permanents":   result.Reset,
			"applications": result.Total(),
			"type":         result.Applications[LayerType],
			"color":        result.Applications[LayerColor],
			"ability":      result.Applications[LayerAbility],
			"power":        result.Applications[LayerPowerToughness],
		},
		"applied %d effect application(s) to %d permanent(s)", result.Total(), result.Reset)

	return result
}

// EffectsAffecting returns the registered layer effects that currently apply
// to the permanent, in layer then timestamp order.
func EffectsAffecting(p *board.Permanent, reg *Registry) []*Effect {
	if p == nil || reg == nil {
		return nil
	}
	var out []*Effect
	for _, layer := range layerOrder {
		for _, effect := range reg.ByLayer(layer) {
			if effect.Filter.Matches(p, effect.SourceID) {
				out = append(out, effect)
			}
		}
	}
	return out
}
