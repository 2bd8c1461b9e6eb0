package counters

import (
	"sort"
	"strconv"
	"strings"
)

// Well-known counter names.
const (
	PlusOne  = "+1/+1"
	MinusOne = "-1/-1"
	Loyalty  = "loyalty"
	Charge   = "charge"
)

// Counters tracks named integer counters on a permanent. Counts never go
// below zero; a counter that reaches zero is removed.
type Counters struct {
	counts map[string]int
}

// New creates an empty collection.
func New() *Counters {
	return &Counters{counts: make(map[string]int)}
}

// FromMap builds a collection from name -> count, ignoring non-positive counts.
func FromMap(m map[string]int) *Counters {
	cs := New()
	for name, n := range m {
		cs.Add(name, n)
	}
	return cs
}

func normalize(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

// Add adds amount counters of the given name.
func (cs *Counters) Add(name string, amount int) {
	if cs == nil || amount <= 0 {
		return
	}
	cs.counts[normalize(name)] += amount
}

// Remove removes up to amount counters. Returns true if any were removed.
func (cs *Counters) Remove(name string, amount int) bool {
	if cs == nil || amount <= 0 {
		return false
	}
	name = normalize(name)
	current, ok := cs.counts[name]
	if !ok {
		return false
	}
	if current <= amount {
		delete(cs.counts, name)
	} else {
		cs.counts[name] = current - amount
	}
	return true
}

// Get returns the count for name.
func (cs *Counters) Get(name string) int {
	if cs == nil {
		return 0
	}
	return cs.counts[normalize(name)]
}

// Names returns the counter names in sorted order.
func (cs *Counters) Names() []string {
	if cs == nil {
		return nil
	}
	names := make([]string, 0, len(cs.counts))
	for name := range cs.counts {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// BoostDelta sums the power/toughness change of every boost counter
// ("+1/+1", "-1/-1", "+2/+0", ...), each weighted by its count.
func (cs *Counters) BoostDelta() (power, toughness int) {
	if cs == nil {
		return 0, 0
	}
	for name, count := range cs.counts {
		p, t, ok := ParseBoost(name)
		if !ok {
			continue
		}
		power += p * count
		toughness += t * count
	}
	return power, toughness
}

// Copy creates a deep copy.
func (cs *Counters) Copy() *Counters {
	cp := New()
	if cs == nil {
		return cp
	}
	for name, n := range cs.counts {
		cp.counts[name] = n
	}
	return cp
}

// ParseBoost parses a boost counter name such as "+1/+1" or "-2/-0".
func ParseBoost(name string) (power, toughness int, ok bool) {
	left, right, found := strings.Cut(strings.TrimSpace(name), "/")
	if !found {
		return 0, 0, false
	}
	power, ok = parseSigned(left)
	if !ok {
		return 0, 0, false
	}
	toughness, ok = parseSigned(right)
	if !ok {
		return 0, 0, false
	}
	return power, toughness, true
}

// parseSigned requires an explicit sign so that plain P/T strings are not
// mistaken for counters.
func parseSigned(s string) (int, bool) {
	if len(s) < 2 || (s[0] != '+' && s[0] != '-') {
		return 0, false
	}
	v, err := strconv.Atoi(s[1:])
	if err != nil || v < 0 {
		return 0, false
	}
	if s[0] == '-' {
		v = -v
	}
	return v, true
}
