package payment

import (
	"fmt"
	"strings"

	"github.com/magefree/mage-goldfish/internal/game/board"
	"github.com/magefree/mage-goldfish/internal/game/events"
	"github.com/magefree/mage-goldfish/internal/game/mana"
	"go.uber.org/zap"
)

// pipOrder is the order colored requirements are assigned in. Colorless {C}
// pips need a source of colorless mana too, so they are handled alongside.
var pipOrder = []mana.ManaType{
	mana.ManaWhite, mana.ManaBlue, mana.ManaBlack, mana.ManaRed, mana.ManaGreen, mana.ManaColorless,
}

// surplusOrder is the order leftover units are spent on generic costs.
var surplusOrder = []mana.ManaType{
	mana.ManaColorless, mana.ManaWhite, mana.ManaBlue, mana.ManaBlack, mana.ManaRed, mana.ManaGreen,
}

// Activation is one ability the solution activates and the mana it makes.
type Activation struct {
	Entry    PotentialEntry
	Produced []mana.ManaType
}

// Solution is an assignment of abilities to a cost. Nothing is tapped until
// Execute is called.
type Solution struct {
	Cost        mana.ManaCost
	Activations []Activation
	// Surplus is produced mana the cost does not use; it stays floating
	// after Execute.
	Surplus map[mana.ManaType]int
}

// Sources names the activated sources in activation order.
func (s *Solution) Sources() []string {
	out := make([]string, len(s.Activations))
	for i, a := range s.Activations {
		out[i] = a.Entry.SourceName
	}
	return out
}

// Produced returns how much mana the activations make in total.
func (s *Solution) Produced() int {
	n := 0
	for _, a := range s.Activations {
		n += len(a.Produced)
	}
	return n
}

// String renders the solution, e.g. "{1}{G} via Forest (G), Island (U)".
func (s *Solution) String() string {
	parts := make([]string, len(s.Activations))
	for i, a := range s.Activations {
		symbols := make([]string, len(a.Produced))
		for j, t := range a.Produced {
			symbols[j] = string(t)
		}
		parts[i] = fmt.Sprintf("%s (%s)", a.Entry.SourceName, strings.Join(symbols, ""))
	}
	return fmt.Sprintf("%s via %s", s.Cost, strings.Join(parts, ", "))
}

// Solver assigns potential mana sources to costs for one game state.
type Solver struct {
	state  *board.GameState
	logger *zap.Logger
	sink   events.Sink
}

// NewSolver creates a solver reading hand need, primary colors and board
// counts from state.
func NewSolver(state *board.GameState, logger *zap.Logger, sink events.Sink) *Solver {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Solver{state: state, logger: logger, sink: events.OrDiscard(sink)}
}

// SolveCost runs the default solver.
func SolveCost(cost mana.ManaCost, entries []PotentialEntry, state *board.GameState) (*Solution, bool) {
	return NewSolver(state, nil, nil).SolveCost(cost, entries)
}

// solveRun is the bookkeeping of one SolveCost call.
type solveRun struct {
	solver  *Solver
	entries []PotentialEntry
	claimed []bool
	tapped  map[*board.Permanent]bool
	amounts map[int]int
	surplus map[mana.ManaType]int
	sol     *Solution
}

// SolveCost finds abilities paying cost without activating anything. Colored
// pips are assigned first, in W, U, B, R, G, C order, each to the first
// unclaimed ability able to make that color. The generic remainder then
// claims any unclaimed abilities in list order. Mana left over from an
// ability making several units is used before another ability is claimed.
//
// The search is greedy and never backtracks, so it can miss a payment that
// needs a flexible source saved for a later color. It returns false when the
// cost cannot be paid this way.
func (s *Solver) SolveCost(cost mana.ManaCost, entries []PotentialEntry) (*Solution, bool) {
	run := &solveRun{
		solver:  s,
		entries: entries,
		claimed: make([]bool, len(entries)),
		tapped:  make(map[*board.Permanent]bool),
		amounts: make(map[int]int),
		surplus: make(map[mana.ManaType]int),
		sol:     &Solution{Cost: cost},
	}

	for _, t := range pipOrder {
		for pip := 0; pip < cost.Pips(t); pip++ {
			if run.takeSurplus(t) {
				continue
			}
			if !run.claimFor(t) {
				s.logger.Debug("cost not payable from potential mana",
					zap.String("cost", cost.String()),
					zap.String("missing", string(t)))
				return nil, false
			}
		}
	}

	for remaining := cost.Generic; remaining > 0; remaining-- {
		if run.takeAnySurplus() {
			continue
		}
		if !run.claimGeneric() {
			s.logger.Debug("cost not payable from potential mana",
				zap.String("cost", cost.String()),
				zap.Int("generic_missing", remaining))
			return nil, false
		}
	}

	run.sol.Surplus = make(map[mana.ManaType]int)
	for t, n := range run.surplus {
		if n > 0 {
			run.sol.Surplus[t] = n
		}
	}
	return run.sol, true
}

func (r *solveRun) takeSurplus(t mana.ManaType) bool {
	if r.surplus[t] == 0 {
		return false
	}
	r.surplus[t]--
	return true
}

func (r *solveRun) takeAnySurplus() bool {
	for _, t := range surplusOrder {
		if r.takeSurplus(t) {
			return true
		}
	}
	return false
}

// available reports whether entry i can still be claimed. An ability that
// taps its source is unavailable once another tapping ability of the same
// permanent has been claimed.
func (r *solveRun) available(i int) bool {
	if r.claimed[i] {
		return false
	}
	e := r.entries[i]
	if e.Ability.RequiresTap() && e.Permanent != nil && r.tapped[e.Permanent] {
		return false
	}
	return r.amount(i) > 0
}

// amount is the number of units a Choice production makes, resolving its
// variable rule once per solve. Fixed and Combinations productions never
// resolve a rule.
func (r *solveRun) amount(i int) int {
	prod := r.entries[i].Ability.Produces
	if !prod.IsVariable() {
		return prod.BaseAmount()
	}
	if n, ok := r.amounts[i]; ok {
		return n
	}
	n := ResolveVariableAmount(prod.XRule, RuleContext{
		State:  r.solver.state,
		Source: r.entries[i].Permanent,
		Param:  prod.XParam,
	}, r.solver.logger, r.solver.sink)
	r.amounts[i] = n
	return n
}

// claimFor claims the first available ability able to make t and spends one
// of its units on t.
func (r *solveRun) claimFor(t mana.ManaType) bool {
	for i, e := range r.entries {
		if !r.available(i) || !e.Ability.Produces.CanProduce(t) {
			continue
		}
		produced := r.produceFor(i, t)
		r.claim(i, produced)
		r.surplus[t]--
		return true
	}
	return false
}

// claimGeneric claims the next available ability and spends one unit of it.
func (r *solveRun) claimGeneric() bool {
	for i := range r.entries {
		if !r.available(i) {
			continue
		}
		produced := r.produceGeneric(i)
		if len(produced) == 0 {
			continue
		}
		r.claim(i, produced)
		return r.takeAnySurplus()
	}
	return false
}

func (r *solveRun) claim(i int, produced []mana.ManaType) {
	r.claimed[i] = true
	e := r.entries[i]
	if e.Ability.RequiresTap() && e.Permanent != nil {
		r.tapped[e.Permanent] = true
	}
	for _, t := range produced {
		r.surplus[t]++
	}
	r.sol.Activations = append(r.sol.Activations, Activation{Entry: e, Produced: produced})
}

// produceFor decides what entry i makes when claimed for a pip of color t.
func (r *solveRun) produceFor(i int, t mana.ManaType) []mana.ManaType {
	prod := r.entries[i].Ability.Produces
	for _, f := range prod.Fixed {
		if f == t {
			return append([]mana.ManaType(nil), prod.Fixed...)
		}
	}
	for _, c := range prod.Choice {
		if c == t {
			return repeat(t, r.amount(i))
		}
	}
	var matching [][]mana.ManaType
	for _, combo := range prod.Combinations {
		for _, c := range combo {
			if c == t {
				matching = append(matching, combo)
				break
			}
		}
	}
	return append([]mana.ManaType(nil), ChooseOptimalCombination(matching, r.solver.state)...)
}

// produceGeneric decides what entry i makes when claimed for generic mana.
// A choice including colorless makes colorless.
func (r *solveRun) produceGeneric(i int) []mana.ManaType {
	prod := r.entries[i].Ability.Produces
	switch {
	case len(prod.Fixed) > 0:
		return append([]mana.ManaType(nil), prod.Fixed...)
	case len(prod.Choice) > 0:
		for _, c := range prod.Choice {
			if c == mana.ManaColorless {
				return repeat(mana.ManaColorless, r.amount(i))
			}
		}
		return repeat(ChooseOptimalColor(prod.Choice, r.solver.state), r.amount(i))
	case len(prod.Combinations) > 0:
		return append([]mana.ManaType(nil), ChooseOptimalCombination(prod.Combinations, r.solver.state)...)
	}
	return nil
}

func repeat(t mana.ManaType, n int) []mana.ManaType {
	out := make([]mana.ManaType, n)
	for i := range out {
		out[i] = t
	}
	return out
}

// RemainingCost returns the part of cost the floating pool cannot cover,
// spending pool mana the way Pool.Pay would. The pool is not changed.
func RemainingCost(cost mana.ManaCost, pool *mana.Pool) mana.ManaCost {
	if pool == nil {
		return cost
	}
	have := pool.Snapshot()
	var rest mana.ManaCost
	for _, t := range pipOrder {
		use := min(have[t], cost.Pips(t))
		have[t] -= use
		rest.AddPips(t, cost.Pips(t)-use)
	}
	generic := cost.Generic
	for _, t := range surplusOrder {
		spend := min(generic, have[t])
		have[t] -= spend
		generic -= spend
	}
	rest.Generic = generic
	rest.X = cost.X
	return rest
}
