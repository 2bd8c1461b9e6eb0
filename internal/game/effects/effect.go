package effects

import (
	"fmt"
	"strings"

	"github.com/magefree/mage-goldfish/internal/game/board"
)

// Category groups effects by what they modify.
type Category string

const (
	CategoryPowerToughness   Category = "power_toughness"
	CategoryKeyword          Category = "keyword"
	CategoryCostModification Category = "cost_modification"
	CategoryTypeChange       Category = "type_change"
	CategoryColorChange      Category = "color_change"
)

// Layer corresponds to the comprehensive rules layers for continuous effects.
type Layer int

const (
	// LayerNone is used by effects applied outside the layer system, such as
	// cost modification.
	LayerNone Layer = iota
	LayerCopy
	LayerControl
	LayerText
	LayerType
	LayerColor
	LayerAbility
	LayerPowerToughness
)

// String names the layer the way the rules do ("7c" for P/T modifications).
func (l Layer) String() string {
	switch l {
	case LayerNone:
		return "none"
	case LayerPowerToughness:
		return "7c"
	default:
		return fmt.Sprintf("%d", int(l))
	}
}

// Filter selects the permanents (or spells) an effect applies to. Every
// listed card type and at least one listed subtype must match.
type Filter struct {
	CardTypes   []string
	Subtypes    []string
	ExcludeSelf bool
}

// Matches reports whether the permanent is affected by an effect whose source
// has id sourceID.
func (f Filter) Matches(p *board.Permanent, sourceID string) bool {
	if p == nil {
		return false
	}
	if f.ExcludeSelf && p.ID == sourceID {
		return false
	}
	for _, t := range f.CardTypes {
		if !p.HasType(t) {
			return false
		}
	}
	if len(f.Subtypes) == 0 {
		return true
	}
	for _, s := range f.Subtypes {
		if p.HasSubtype(s) {
			return true
		}
	}
	return false
}

// MatchesCard reports whether a spell is affected. An empty filter matches
// every spell.
func (f Filter) MatchesCard(card board.Card) bool {
	for _, t := range f.CardTypes {
		if !card.HasType(t) {
			return false
		}
	}
	if len(f.Subtypes) == 0 {
		return true
	}
	_, subtypes := board.SplitTypeLine(card.TypeLine)
	for _, s := range f.Subtypes {
		for _, cs := range subtypes {
			if strings.EqualFold(s, cs) {
				return true
			}
		}
	}
	return false
}

// Describe renders the filter as the affected group, e.g. "other Elf creatures".
func (f Filter) Describe() string {
	var parts []string
	if f.ExcludeSelf {
		parts = append(parts, "other")
	}
	parts = append(parts, f.Subtypes...)
	noun := "permanents"
	var adjectives []string
	for _, t := range f.CardTypes {
		if strings.EqualFold(t, board.CategoryCreature) {
			noun = "creatures"
			continue
		}
		adjectives = append(adjectives, strings.ToLower(t))
	}
	if len(adjectives) > 0 && noun == "permanents" {
		noun = adjectives[len(adjectives)-1] + "s"
		adjectives = adjectives[:len(adjectives)-1]
	}
	parts = append(parts, adjectives...)
	return strings.Join(append(parts, noun), " ")
}

// Modification is the category-specific payload of an effect. The set of
// implementations is closed: each variant decides how it changes the derived
// record of a permanent.
type Modification interface {
	Category() Category
	Layer() Layer
	Describe() string
	applyTo(*board.StaticEffects)
}

// PowerToughness adds to power and toughness (layer 7c).
type PowerToughness struct {
	Power     int
	Toughness int
}

func (PowerToughness) Category() Category { return CategoryPowerToughness }
func (PowerToughness) Layer() Layer { return LayerPowerToughness }
func (m PowerToughness) Describe() string { return fmt.Sprintf("%+d/%+d", m.Power, m.Toughness) }
func (m PowerToughness) applyTo(s *board.StaticEffects) {
	s.PowerDelta += m.Power
	s.ToughnessDelta += m.Toughness
}

// KeywordGrant grants a keyword (layer 6).
type KeywordGrant struct {
	Keyword string
}

func (KeywordGrant) Category() Category { return CategoryKeyword }
func (KeywordGrant) Layer() Layer { return LayerAbility }
func (m KeywordGrant) Describe() string { return DisplayKeyword(m.Keyword) }
func (m KeywordGrant) applyTo(s *board.StaticEffects) { s.AddKeyword(m.Keyword) }

// CostChange reduces or increases the generic part of spell costs. It is
// applied by the casting package, never by the layer engine.
type CostChange struct {
	GenericReduction int
	GenericIncrease  int
}

func (CostChange) Category() Category { return CategoryCostModification }
func (CostChange) Layer() Layer { return LayerNone }
func (m CostChange) Describe() string { return "costs " + m.Amount() }

// Amount renders the change, e.g. "{1} less".
func (m CostChange) Amount() string {
	if m.GenericReduction > 0 {
		return fmt.Sprintf("{%d} less", m.GenericReduction)
	}
	return fmt.Sprintf("{%d} more", m.GenericIncrease)
}
func (CostChange) applyTo(*board.StaticEffects) {}

// TypeAddition adds card types (layer 4).
type TypeAddition struct {
	Types []string
}

func (TypeAddition) Category() Category { return CategoryTypeChange }
func (TypeAddition) Layer() Layer { return LayerType }
func (m TypeAddition) Describe() string { return "becomes " + strings.Join(m.Types, " ") }
func (m TypeAddition) applyTo(s *board.StaticEffects) {
	for _, t := range m.Types {
		s.AddType(t)
	}
}

// ColorChange adds colors (layer 5). No text pattern produces it yet.
type ColorChange struct {
	Colors []string
}

func (ColorChange) Category() Category { return CategoryColorChange }
func (ColorChange) Layer() Layer { return LayerColor }
func (m ColorChange) Describe() string { return "is " + strings.Join(m.Colors, " and ") }
func (m ColorChange) applyTo(s *board.StaticEffects) {
	for _, c := range m.Colors {
		s.AddColor(c)
	}
}

// Effect is an immutable static-effect descriptor. Effects are created by the
// detector, stamped and owned by the Registry, and discarded on removal.
type Effect struct {
	Category     Category
	Layer        Layer
	Filter       Filter
	Modification Modification
	Source       *board.Permanent
	SourceID     string
	SourceName   string
	Timestamp    uint64
	Text         string
}

// Describe renders a one-line explanation, e.g.
// "Glorious Anthem: creatures get +1/+1".
func (e *Effect) Describe() string {
	switch m := e.Modification.(type) {
	case CostChange:
		group := "spells"
		if len(e.Filter.CardTypes) > 0 {
			group = strings.ToLower(strings.Join(e.Filter.CardTypes, " ")) + " spells"
		}
		return fmt.Sprintf("%s: %s cost %s", e.SourceName, group, m.Amount())
	case PowerToughness:
		return fmt.Sprintf("%s: %s get %s", e.SourceName, e.Filter.Describe(), m.Describe())
	case KeywordGrant:
		return fmt.Sprintf("%s: %s have %s", e.SourceName, e.Filter.Describe(), m.Describe())
	default:
		return fmt.Sprintf("%s: %s %s", e.SourceName, e.Filter.Describe(), e.Modification.Describe())
	}
}
