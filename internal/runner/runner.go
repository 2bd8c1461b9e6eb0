// Package runner evaluates board scenarios, each in its own simulation.
package runner

import (
	"context"
	"fmt"

	"github.com/magefree/mage-goldfish/internal/config"
	"github.com/magefree/mage-goldfish/internal/game"
	"github.com/magefree/mage-goldfish/internal/game/effects"
	"github.com/magefree/mage-goldfish/internal/game/events"
	"github.com/magefree/mage-goldfish/internal/game/mana"
	"github.com/magefree/mage-goldfish/internal/game/watchers"
	"github.com/magefree/mage-goldfish/internal/scenario"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// Report is the outcome of one scenario.
type Report struct {
	Scenario    string                `json:"scenario"`
	Path        string                `json:"path,omitempty"`
	Turn        int                   `json:"turn"`
	Effects     effects.AIContext     `json:"effects"`
	Creatures   []effects.CombatData  `json:"creatures"`
	TotalPower  int                   `json:"total_power"`
	Casts       []CastReport          `json:"casts,omitempty"`
	Evaluations []CastReport          `json:"evaluations"`
	Floating    map[mana.ManaType]int `json:"floating,omitempty"`
	Activity    watchers.Activity     `json:"activity"`
	Fingerprint string                `json:"fingerprint"`
	Events      []events.Event        `json:"events,omitempty"`
}

// CastReport describes one cast, or one castability check.
type CastReport struct {
	Spell     string   `json:"spell"`
	Commander bool     `json:"commander,omitempty"`
	FinalCost string   `json:"final_cost,omitempty"`
	Total     int      `json:"total"`
	Castable  bool     `json:"castable"`
	FromPool  bool     `json:"from_pool,omitempty"`
	Sources   []string `json:"sources,omitempty"`
	Breakdown []string `json:"breakdown,omitempty"`
	Error     string   `json:"error,omitempty"`
}

// Options controls a single evaluation.
type Options struct {
	Logger       *zap.Logger
	RecordEvents bool
}

// Run loads and evaluates every scenario, at most cfg.Simulation.Workers at
// a time. Reports come back in the order of paths. The first load or
// evaluation error cancels the remaining work.
func Run(ctx context.Context, cfg *config.Config, logger *zap.Logger, paths []string) ([]Report, error) {
	if cfg == nil {
		cfg = config.Default()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	opts := Options{Logger: logger, RecordEvents: cfg.Simulation.RecordEvents}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(max(1, cfg.Simulation.Workers))

	reports := make([]Report, len(paths))
	for i, path := range paths {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			sc, err := scenario.Load(path)
			if err != nil {
				return err
			}
			rep, err := Evaluate(gctx, sc, opts)
			if err != nil {
				return fmt.Errorf("evaluate %s: %w", path, err)
			}
			reports[i] = rep
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	logger.Info("scenarios evaluated", zap.Int("count", len(reports)))
	return reports, nil
}

// Evaluate plays the scenario's casts in order and then checks every spell
// it lists for evaluation. A failed cast, for example one that cannot be
// paid, is reported rather than returned as an error.
func Evaluate(ctx context.Context, sc *scenario.Scenario, opts Options) (Report, error) {
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	logger = logger.With(zap.String("scenario", sc.Name))

	var rec *events.Recorder
	watched := watchers.NewStandardRegistry()
	sink := events.Tee(watched, events.NewZapSink(logger))
	if opts.RecordEvents {
		rec = events.NewRecorder()
		sink = events.Tee(rec, sink)
	}

	sim := game.NewSimulation(sc.GameState(), game.WithLogger(logger), game.WithSink(sink))
	floating := sc.FloatingMana()
	for _, t := range mana.AllTypes {
		if n := floating[t]; n > 0 {
			sim.Pool.Add(t, n)
		}
	}

	rep := Report{Scenario: sc.Name, Path: sc.Path}
	for _, name := range sc.Cast {
		if err := ctx.Err(); err != nil {
			return Report{}, err
		}
		rep.Casts = append(rep.Casts, cast(sim, sc, name, true))
	}
	for _, name := range sc.Evaluate {
		if err := ctx.Err(); err != nil {
			return Report{}, err
		}
		rep.Evaluations = append(rep.Evaluations, cast(sim, sc, name, false))
	}

	rep.Turn = sim.State.Turn
	rep.Effects = sim.AIContext()
	rep.Creatures = sim.CombatData()
	rep.TotalPower = effects.TotalPower(rep.Creatures)
	rep.Fingerprint = sim.Fingerprint()
	rep.Activity = watched.Activity()
	if sim.Pool.ActualTotal() > 0 {
		rep.Floating = make(map[mana.ManaType]int)
		for t, n := range sim.Pool.Snapshot() {
			if n > 0 {
				rep.Floating[t] = n
			}
		}
	}
	if rec != nil {
		rep.Events = rec.Events()
	}
	return rep, nil
}

// cast casts name when commit is set and only checks it otherwise.
func cast(sim *game.Simulation, sc *scenario.Scenario, name string, commit bool) CastReport {
	var (
		check game.CastCheck
		err   error
	)
	commander := sc.IsCommander(name)
	switch {
	case commander && commit:
		check, err = sim.CastCommander(name)
	case commander:
		check, err = sim.CanCastCommander(name)
	case commit:
		check, err = sim.Cast(*sc.HandCard(name))
	default:
		check, err = sim.CanCast(*sc.HandCard(name))
	}
	cr := castReport(name, commander, check)
	if err != nil {
		cr.Error = err.Error()
	}
	return cr
}

func castReport(name string, commander bool, c game.CastCheck) CastReport {
	cr := CastReport{
		Spell:     name,
		Commander: commander,
		Castable:  c.Castable,
		FromPool:  c.FromPool,
		Sources:   c.Sources(),
	}
	if c.Cost.Spell != "" {
		cr.FinalCost = c.Cost.FinalCost
		cr.Total = c.Cost.Total
		cr.Breakdown = c.Cost.Explain()
	}
	return cr
}
