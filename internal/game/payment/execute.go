package payment

import (
	"fmt"

	"github.com/magefree/mage-goldfish/internal/game/board"
	"github.com/magefree/mage-goldfish/internal/game/events"
	"github.com/magefree/mage-goldfish/internal/game/mana"
	"go.uber.org/zap"
)

// ExecuteResult reports what committing a solution did.
type ExecuteResult struct {
	Added int
	// Sacrificed lists permanents whose ability sacrificed them. The caller
	// removes them from the battlefield.
	Sacrificed []*board.Permanent
}

// Execute activates every ability of the solution: sources are tapped (or
// marked for sacrifice) and the produced mana goes into the floating pool.
// It fails without changing anything if a source was tapped in the meantime.
func (s *Solver) Execute(sol *Solution, pool *mana.Pool) (ExecuteResult, error) {
	var result ExecuteResult
	if sol == nil || pool == nil {
		return result, fmt.Errorf("nothing to execute")
	}
	for _, a := range sol.Activations {
		if a.Entry.Ability.RequiresTap() && a.Entry.Permanent != nil && a.Entry.Permanent.Tapped {
			return result, fmt.Errorf("source %s is already tapped", a.Entry.SourceName)
		}
	}

	for _, a := range sol.Activations {
		p := a.Entry.Permanent
		if p != nil && a.Entry.Ability.RequiresTap() {
			p.Tapped = true
		}
		if p != nil && a.Entry.Ability.RequiresSacrifice() {
			result.Sacrificed = append(result.Sacrificed, p)
		}
		for _, t := range a.Produced {
			pool.Add(t, 1)
		}
		result.Added += len(a.Produced)

		s.logger.Debug("activated mana source",
			zap.String("source", a.Entry.SourceName),
			zap.Int("produced", len(a.Produced)))
		events.Emit(s.sink, events.SourceActivated, a.Entry.SourceName,
			map[string]any{"produced": len(a.Produced), "kind": string(a.Entry.SourceKind)},
			"activated %s for %d mana", a.Entry.SourceName, len(a.Produced))
	}
	return result, nil
}
