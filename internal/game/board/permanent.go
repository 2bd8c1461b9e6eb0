package board

import (
	"strings"

	"github.com/google/uuid"
	"github.com/magefree/mage-goldfish/internal/game/counters"
)

// Duration represents how long a temporary modification lasts.
type Duration string

const (
	// DurationEndOfTurn expires at the cleanup step.
	DurationEndOfTurn Duration = "EndOfTurn"

	// DurationEndOfCombat expires at end of combat.
	DurationEndOfCombat Duration = "EndOfCombat"
)

// StaticEffects is the layer-computed modifier record of a permanent. It is a
// cache: the layer engine zeroes and rebuilds it on every run.
type StaticEffects struct {
	PowerDelta     int
	ToughnessDelta int
	Keywords       []string
	Types          []string
	Colors         []string
}

// AddKeyword grants a keyword; granting it twice has no further effect.
func (s *StaticEffects) AddKeyword(kw string) {
	s.Keywords = appendUnique(s.Keywords, strings.ToLower(kw))
}

// AddType adds a card type; duplicates are ignored.
func (s *StaticEffects) AddType(t string) {
	s.Types = appendUnique(s.Types, t)
}

// AddColor adds a color; duplicates are ignored.
func (s *StaticEffects) AddColor(c string) {
	s.Colors = appendUnique(s.Colors, c)
}

// TemporaryModification is a single-use boost granted by a spell or ability
// resolution, e.g. "target creature gets +3/+3 until end of turn".
type TemporaryModification struct {
	Source    string
	Power     int
	Toughness int
	Keywords  []string
	Duration  Duration
}

// Permanent is a card on the battlefield.
type Permanent struct {
	ID         string
	Name       string
	Category   string
	TypeLine   string
	Types      []string
	Subtypes   []string
	ManaCost   string
	CMC        int
	OracleText string
	Keywords   []string

	BasePower     int
	BaseToughness int
	HasStats      bool

	Tapped        bool
	SummoningSick bool

	Counters      *counters.Counters
	StaticEffects StaticEffects
	Temporary     []TemporaryModification

	Card Card
}

// NewPermanent creates a permanent from a card with a fresh stable id. It
// enters summoning sick.
func NewPermanent(card Card) *Permanent {
	types, subtypes := SplitTypeLine(card.TypeLine)
	power, hasPower := parseStat(card.Power)
	toughness, hasTough := parseStat(card.Toughness)

	return &Permanent{
		ID:            uuid.NewString(),
		Name:          card.Name,
		Category:      card.ResolveCategory(),
		TypeLine:      card.TypeLine,
		Types:         types,
		Subtypes:      subtypes,
		ManaCost:      card.ManaCost,
		CMC:           card.CMC,
		OracleText:    card.OracleText,
		Keywords:      printedKeywords(card.OracleText),
		BasePower:     power,
		BaseToughness: toughness,
		HasStats:      hasPower || hasTough,
		SummoningSick: true,
		Counters:      counters.New(),
		Card:          card,
	}
}

// EnsureID assigns a stable id if the permanent has none and returns it.
func (p *Permanent) EnsureID() string {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	return p.ID
}

// HasType reports whether the permanent is of typeName, checking its zone
// category, explicit types, printed type line and types granted by layer 4.
func (p *Permanent) HasType(typeName string) bool {
	if p == nil {
		return false
	}
	if strings.EqualFold(p.Category, typeName) {
		return true
	}
	if containsFold(p.Types, typeName) || containsFold(p.StaticEffects.Types, typeName) {
		return true
	}
	types, _ := SplitTypeLine(p.TypeLine)
	return containsFold(types, typeName)
}

// HasSubtype reports whether the permanent has the given subtype.
func (p *Permanent) HasSubtype(subtype string) bool {
	if p == nil {
		return false
	}
	if containsFold(p.Subtypes, subtype) {
		return true
	}
	_, subtypes := SplitTypeLine(p.TypeLine)
	return containsFold(subtypes, subtype)
}

// HasKeyword reports whether the permanent has a keyword, printed, granted by
// a static effect or granted until a temporary modification expires.
func (p *Permanent) HasKeyword(kw string) bool {
	if containsFold(p.Keywords, kw) || containsFold(p.StaticEffects.Keywords, kw) {
		return true
	}
	for _, mod := range p.Temporary {
		if containsFold(mod.Keywords, kw) {
			return true
		}
	}
	return false
}

// AllKeywords returns printed keywords followed by granted ones, without
// duplicates.
func (p *Permanent) AllKeywords() []string {
	out := appendUnique(append([]string(nil), p.Keywords...), p.StaticEffects.Keywords...)
	for _, mod := range p.Temporary {
		for _, kw := range mod.Keywords {
			out = appendUnique(out, strings.ToLower(kw))
		}
	}
	return out
}

// ResetStaticEffects zeroes the derived record.
func (p *Permanent) ResetStaticEffects() {
	p.StaticEffects = StaticEffects{}
}
