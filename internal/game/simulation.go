// Package game ties the static-effect engine, cost modification and mana
// payment together into a single goldfish simulation.
package game

import (
	"errors"
	"fmt"

	"github.com/magefree/mage-goldfish/internal/game/board"
	"github.com/magefree/mage-goldfish/internal/game/casting"
	"github.com/magefree/mage-goldfish/internal/game/effects"
	"github.com/magefree/mage-goldfish/internal/game/events"
	"github.com/magefree/mage-goldfish/internal/game/mana"
	"github.com/magefree/mage-goldfish/internal/game/payment"
	"go.uber.org/zap"
)

// ErrCannotPay is returned by Cast and CastCommander when neither the
// floating pool nor the untapped sources can pay the final cost.
var ErrCannotPay = errors.New("cannot pay cost")

// ErrNotInHand is returned when casting a card that is not in hand.
var ErrNotInHand = errors.New("card not in hand")

// ErrCommanderOnBattlefield is returned when casting a commander that is not
// in the command zone.
var ErrCommanderOnBattlefield = errors.New("commander already on the battlefield")

// Simulation is the explicit context of one simulated game. It owns the
// board, the effect registry, the floating pool and the event sink. A
// Simulation is not safe for concurrent use; run one per goroutine.
type Simulation struct {
	State    *board.GameState
	Registry *effects.Registry
	Pool     *mana.Pool
	Events   events.Sink

	logger     *zap.Logger
	solver     *payment.Solver
	noRegistry bool
}

// Option configures a Simulation.
type Option func(*Simulation)

// WithLogger sets the logger shared by every component.
func WithLogger(logger *zap.Logger) Option {
	return func(s *Simulation) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithSink sets the event sink shared by every component.
func WithSink(sink events.Sink) Option {
	return func(s *Simulation) {
		s.Events = events.OrDiscard(sink)
	}
}

// WithoutRegistry runs the simulation with no effect tracking. Layers then
// only reset derived state and cost queries see no modifiers.
func WithoutRegistry() Option {
	return func(s *Simulation) {
		s.noRegistry = true
	}
}

// NewSimulation creates a simulation over state. Permanents already on the
// battlefield are scanned for static effects and the layers are applied, so
// the derived state is current before the first query.
func NewSimulation(state *board.GameState, opts ...Option) *Simulation {
	if state == nil {
		state = board.NewGameState()
	}
	s := &Simulation{
		State:  state,
		Events: events.Discard,
		logger: zap.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}

	if !s.noRegistry {
		s.Registry = effects.NewRegistry(s.logger, s.Events)
		s.Registry.ScanBattlefield(&state.Battlefield)
	}
	s.Pool = mana.NewPool(mana.WithLogger(s.logger), mana.WithSink(s.Events))
	s.solver = payment.NewSolver(state, s.logger, s.Events)
	s.Recompute()

	s.logger.Info("simulation started",
		zap.Int("permanents", len(state.Battlefield.All())),
		zap.Int("effects", s.Registry.Count()),
		zap.Int("turn", state.Turn))
	return s
}

// Recompute reruns the layer engine over the battlefield.
func (s *Simulation) Recompute() effects.LayerResult {
	return effects.ApplyAllLayers(&s.State.Battlefield, s.Registry)
}

// EnterBattlefield puts a new permanent for card onto the battlefield,
// registers its static effects and recomputes the layers.
func (s *Simulation) EnterBattlefield(card board.Card) *board.Permanent {
	p := board.NewPermanent(card)
	s.State.Battlefield.Add(p)
	if cmd := s.commanderNamed(card.Name); cmd != nil {
		cmd.OnBattlefield = true
	}
	registered := 0
	if s.Registry != nil {
		registered = s.Registry.Register(p)
	}
	s.Recompute()

	events.Emit(s.Events, events.PermanentEntered, p.Name,
		map[string]any{"id": p.ID, "category": p.Category, "effects": registered},
		"%s entered the battlefield", p.Name)
	return p
}

// LeaveBattlefield removes p, drops its effects and recomputes the layers.
// A commander goes back to the command zone. Returns false if p was not on
// the battlefield.
func (s *Simulation) LeaveBattlefield(p *board.Permanent) bool {
	if !s.State.Battlefield.Remove(p) {
		return false
	}
	if cmd := s.commanderNamed(p.Name); cmd != nil {
		cmd.OnBattlefield = false
	}
	if s.Registry != nil {
		s.Registry.Unregister(p)
	}
	s.Recompute()

	events.Emit(s.Events, events.PermanentLeft, p.Name,
		map[string]any{"id": p.ID},
		"%s left the battlefield", p.Name)
	return true
}

func (s *Simulation) commanderNamed(name string) *board.CommanderEntry {
	if name == "" {
		return nil
	}
	for _, c := range s.State.CommandZone {
		if c.Card.Name == name {
			return c
		}
	}
	return nil
}

// Stats returns the final power and toughness of p.
func (s *Simulation) Stats(p *board.Permanent) effects.FinalStats {
	return effects.CalculateFinalStats(p)
}

// SpellCost returns the cost of casting card from hand.
func (s *Simulation) SpellCost(card board.Card) (casting.Breakdown, error) {
	return casting.GetSpellCost(s.Registry, card)
}

// CommanderCost returns the next cast cost of the named commander, or of
// the first commander when name is empty.
func (s *Simulation) CommanderCost(name string) (casting.Breakdown, error) {
	return casting.GetCommanderFinalCost(s.Registry, s.State.Commander(name))
}

// CastCheck is the answer to "can this be cast right now".
type CastCheck struct {
	Cost casting.Breakdown
	// FromPool is set when floating mana alone pays the cost.
	FromPool bool
	// Remaining is the part of the cost left after floating mana.
	Remaining mana.ManaCost
	// Solution pays Remaining from untapped sources. Nil when FromPool.
	Solution *payment.Solution
	Castable bool
}

// Sources names the sources the check would activate.
func (c CastCheck) Sources() []string {
	if c.Solution == nil {
		return nil
	}
	return c.Solution.Sources()
}

// CanCast reports whether card can be cast from hand now. The floating pool
// is tried first; whatever it cannot cover is solved against the potential
// pool. Nothing is tapped or spent.
func (s *Simulation) CanCast(card board.Card) (CastCheck, error) {
	b, err := s.SpellCost(card)
	if err != nil {
		return CastCheck{}, err
	}
	return s.check(b), nil
}

func (s *Simulation) check(b casting.Breakdown) CastCheck {
	c := CastCheck{Cost: b}
	if s.Pool.CanPay(b.Final) {
		c.FromPool, c.Castable = true, true
		return c
	}
	c.Remaining = payment.RemainingCost(b.Final, s.Pool)
	sol, ok := s.solver.SolveCost(c.Remaining, payment.BuildPotentialPool(s.State))
	c.Solution, c.Castable = sol, ok
	return c
}

// Cast pays for a copy of card from the hand and resolves it: permanents
// enter the battlefield and the copy leaves the hand. Surplus mana stays
// floating. Nothing is paid when no copy is in hand.
func (s *Simulation) Cast(card board.Card) (CastCheck, error) {
	held := s.handCard(card.Name)
	if held == nil {
		return CastCheck{}, fmt.Errorf("cast %s: %w", card.Name, ErrNotInHand)
	}
	card = *held
	c, err := s.CanCast(card)
	if err != nil {
		return c, err
	}
	if err := s.pay(c); err != nil {
		return c, fmt.Errorf("cast %s: %w", card.Name, err)
	}
	s.removeFromHand(card.Name)
	if isPermanentCard(card) {
		s.EnterBattlefield(card)
	}
	s.logger.Info("spell cast",
		zap.String("spell", card.Name),
		zap.String("cost", c.Cost.FinalCost))
	events.Emit(s.Events, events.SpellCast, card.Name,
		map[string]any{"cost": c.Cost.FinalCost},
		"cast %s for %s", card.Name, c.Cost.FinalCost)
	return c, nil
}

// CanCastCommander reports whether the named commander can be cast from the
// command zone now, tax included. Nothing is tapped or spent.
func (s *Simulation) CanCastCommander(name string) (CastCheck, error) {
	cmd := s.State.Commander(name)
	if cmd != nil && cmd.OnBattlefield {
		return CastCheck{}, fmt.Errorf("cast commander %s: %w", cmd.Card.Name, ErrCommanderOnBattlefield)
	}
	b, err := casting.GetCommanderFinalCost(s.Registry, cmd)
	if err != nil {
		return CastCheck{}, err
	}
	return s.check(b), nil
}

// CastCommander pays the named commander's final cost including tax, puts
// it onto the battlefield and raises its tax for the next cast.
func (s *Simulation) CastCommander(name string) (CastCheck, error) {
	c, err := s.CanCastCommander(name)
	if err != nil {
		return c, err
	}
	cmd, b := s.State.Commander(name), c.Cost
	if err := s.pay(c); err != nil {
		return c, fmt.Errorf("cast commander %s: %w", cmd.Card.Name, err)
	}
	cmd.CastCount++
	s.EnterBattlefield(cmd.Card)

	s.logger.Info("commander cast",
		zap.String("commander", cmd.Card.Name),
		zap.String("cost", b.FinalCost),
		zap.Int("cast_count", cmd.CastCount))
	events.Emit(s.Events, events.CommanderCast, cmd.Card.Name,
		map[string]any{"cast_count": cmd.CastCount, "tax": b.Tax, "cost": b.FinalCost},
		"cast %s for %s", cmd.Card.Name, b.FinalCost)
	return c, nil
}

// pay activates the check's sources and spends the final cost from the pool.
func (s *Simulation) pay(c CastCheck) error {
	if !c.Castable {
		return fmt.Errorf("%w %s", ErrCannotPay, c.Cost.FinalCost)
	}
	if c.Solution != nil {
		result, err := s.solver.Execute(c.Solution, s.Pool)
		if err != nil {
			return err
		}
		for _, p := range result.Sacrificed {
			s.LeaveBattlefield(p)
		}
	}
	if !s.Pool.Pay(c.Cost.Final) {
		return fmt.Errorf("%w %s from pool", ErrCannotPay, c.Cost.FinalCost)
	}
	return nil
}

func (s *Simulation) handCard(name string) *board.Card {
	for i := range s.State.Hand {
		if s.State.Hand[i].Name == name {
			return &s.State.Hand[i]
		}
	}
	return nil
}

func (s *Simulation) removeFromHand(name string) {
	for i, c := range s.State.Hand {
		if c.Name == name {
			s.State.Hand = append(s.State.Hand[:i], s.State.Hand[i+1:]...)
			return
		}
	}
}

func isPermanentCard(card board.Card) bool {
	switch card.ResolveCategory() {
	case board.CategoryInstant, board.CategorySorcery, "":
		return false
	}
	return true
}

// AddTemporary attaches a temporary modification to p.
func (s *Simulation) AddTemporary(p *board.Permanent, mod board.TemporaryModification) {
	effects.AddTemporary(p, mod)
}

// EndPhase empties the floating pool.
func (s *Simulation) EndPhase() {
	s.Pool.Empty()
}

// EndCombat expires end-of-combat modifications and ends the phase.
func (s *Simulation) EndCombat() int {
	n := effects.ExpireEndOfCombat(&s.State.Battlefield, s.Events)
	s.EndPhase()
	return n
}

// EndTurn runs cleanup and the next untap step: temporary modifications
// expire, the pool empties, permanents untap and lose summoning sickness.
func (s *Simulation) EndTurn() int {
	n := effects.ExpireEndOfTurn(&s.State.Battlefield, s.Events)
	s.EndPhase()
	for _, p := range s.State.Battlefield.All() {
		p.Tapped = false
		p.SummoningSick = false
	}
	s.State.Turn++
	s.logger.Info("turn ended",
		zap.Int("turn", s.State.Turn),
		zap.Int("expired", n))
	events.Emit(s.Events, events.TurnEnded, "",
		map[string]any{"turn": s.State.Turn, "expired": n},
		"turn %d begins", s.State.Turn)
	return n
}

// CombatData returns attack-relevant data for every creature.
func (s *Simulation) CombatData() []effects.CombatData {
	return effects.GetAllCombatData(&s.State.Battlefield)
}

// AIContext summarizes the active effects for a decision maker. Without a
// registry it warns and returns an empty context.
func (s *Simulation) AIContext() effects.AIContext {
	if s.Registry == nil {
		s.logger.Warn("no effect registry, static effects are not tracked")
		events.Emit(s.Events, events.RegistryMissing, "", nil, "effect registry missing")
	}
	return effects.GetAIContext(&s.State.Battlefield, s.Registry)
}

// Potential lists the mana abilities that could be activated now.
func (s *Simulation) Potential() []payment.PotentialEntry {
	return payment.BuildPotentialPool(s.State)
}

// Fingerprint hashes the derived board state.
func (s *Simulation) Fingerprint() string {
	return effects.Fingerprint(&s.State.Battlefield)
}
