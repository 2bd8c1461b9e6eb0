package mana

import (
	"fmt"

	"github.com/magefree/mage-goldfish/internal/game/events"
	"go.uber.org/zap"
)

// Pool holds floating mana: mana already produced and waiting to be spent.
// actualTotal always equals the sum of the six counters.
type Pool struct {
	amounts     map[ManaType]int
	actualTotal int

	logger *zap.Logger
	sink   events.Sink
}

// PoolOption configures a Pool.
type PoolOption func(*Pool)

// WithLogger sets the logger used for payment diagnostics.
func WithLogger(logger *zap.Logger) PoolOption {
	return func(p *Pool) {
		if logger != nil {
			p.logger = logger
		}
	}
}

// WithSink sets the event sink.
func WithSink(sink events.Sink) PoolOption {
	return func(p *Pool) {
		p.sink = events.OrDiscard(sink)
	}
}

// NewPool creates an empty mana pool.
func NewPool(opts ...PoolOption) *Pool {
	p := &Pool{
		amounts: make(map[ManaType]int, len(AllTypes)),
		logger:  zap.NewNop(),
		sink:    events.Discard,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

func (p *Pool) recount() {
	total := 0
	for _, t := range AllTypes {
		total += p.amounts[t]
	}
	p.actualTotal = total
}

// Add adds mana to the pool.
func (p *Pool) Add(t ManaType, amount int) {
	if amount <= 0 {
		return
	}
	if _, ok := ParseManaType(string(t)); !ok {
		p.logger.Warn("ignoring unknown mana type", zap.String("type", string(t)))
		return
	}
	p.amounts[t] += amount
	p.recount()
	events.Emit(p.sink, events.ManaAdded, string(t), map[string]any{"amount": amount}, "added %d %s", amount, t)
}

// Get returns the floating amount of a mana type.
func (p *Pool) Get(t ManaType) int {
	return p.amounts[t]
}

// ActualTotal returns the total floating mana.
func (p *Pool) ActualTotal() int {
	return p.actualTotal
}

// Verify re-derives the total from the counters and reports whether it
// matches the cached total.
func (p *Pool) Verify() bool {
	sum := 0
	for _, t := range AllTypes {
		if p.amounts[t] < 0 {
			return false
		}
		sum += p.amounts[t]
	}
	return sum == p.actualTotal
}

// CanPay reports whether the floating mana covers the cost: every colored or
// colorless pip must be met by its own counter and the total must cover the
// whole cost.
func (p *Pool) CanPay(cost ManaCost) bool {
	for _, t := range AllTypes {
		if p.amounts[t] < cost.Pips(t) {
			return false
		}
	}
	return p.actualTotal >= cost.Total()
}

// Pay deducts the cost from the pool. Colored pips come from their own
// counters; the generic remainder is paid from colorless first, then W, U, B,
// R, G. A shortfall is logged and reported as false; the pool is left
// partially paid and callers should treat that as a bug, since CanPay should
// have been checked first.
func (p *Pool) Pay(cost ManaCost) bool {
	defer p.recount()

	ok := true
	for _, t := range AllTypes {
		need := cost.Pips(t)
		if need == 0 {
			continue
		}
		if p.amounts[t] < need {
			p.shortfall(cost, fmt.Sprintf("insufficient %s mana (need %d, have %d)", t, need, p.amounts[t]))
			ok = false
			need = p.amounts[t]
		}
		p.amounts[t] -= need
	}

	remaining := cost.Generic
	for _, t := range append([]ManaType{ManaColorless}, ColorOrder...) {
		if remaining == 0 {
			break
		}
		spend := min(remaining, p.amounts[t])
		p.amounts[t] -= spend
		remaining -= spend
	}
	if remaining > 0 {
		p.shortfall(cost, fmt.Sprintf("insufficient mana for generic cost (need %d more)", remaining))
		ok = false
	}

	if ok {
		events.Emit(p.sink, events.ManaPaid, "", map[string]any{"cost": cost.String(), "total": cost.Total()}, "paid %s", cost)
	}
	return ok
}

func (p *Pool) shortfall(cost ManaCost, reason string) {
	p.logger.Error("mana payment shortfall",
		zap.String("cost", cost.String()),
		zap.String("reason", reason))
	events.Emit(p.sink, events.PaymentShortfall, "", map[string]any{"cost": cost.String()}, "%s", reason)
}

// Empty drains the pool. Called at phase boundaries.
func (p *Pool) Empty() {
	lost := p.actualTotal
	for _, t := range AllTypes {
		p.amounts[t] = 0
	}
	p.recount()
	if lost > 0 {
		events.Emit(p.sink, events.PoolEmptied, "", map[string]any{"lost": lost}, "emptied pool, %d mana lost", lost)
	}
}

// Copy creates a detached copy of the pool's contents. The copy records no
// events.
func (p *Pool) Copy() *Pool {
	cp := NewPool(WithLogger(p.logger))
	for _, t := range AllTypes {
		cp.amounts[t] = p.amounts[t]
	}
	cp.recount()
	return cp
}

// Snapshot returns the six counters keyed by type.
func (p *Pool) Snapshot() map[ManaType]int {
	out := make(map[ManaType]int, len(AllTypes))
	for _, t := range AllTypes {
		out[t] = p.amounts[t]
	}
	return out
}
