package mana

import "strings"

// AbilityMetadata is the already-parsed mana-ability data for one card name,
// as supplied by the behavior manifest.
type AbilityMetadata struct {
	Abilities []Ability `yaml:"abilities" json:"abilities"`
}

// Ability is a single mana ability.
type Ability struct {
	// ActivationCost holds cost tokens such as "{T}", "{1}" or "sacrifice".
	ActivationCost []string   `yaml:"cost" json:"cost"`
	Produces       Production `yaml:"produces" json:"produces"`
}

// Production describes what an ability adds. Exactly one of Fixed, Choice or
// Combinations is normally set.
type Production struct {
	// Fixed mana is always produced, one unit per entry (e.g. [G] or [C, C]).
	Fixed []ManaType `yaml:"fixed" json:"fixed,omitempty"`
	// Choice produces Amount mana of one color picked from the list.
	Choice []ManaType `yaml:"choice" json:"choice,omitempty"`
	// Combinations offers alternative sets; one set is produced in full.
	Combinations [][]ManaType `yaml:"combinations" json:"combinations,omitempty"`
	// Amount applies to Choice productions; zero means one.
	Amount int `yaml:"amount" json:"amount,omitempty"`
	// XRule names the rule computing a variable amount for Choice productions.
	// It is ignored when Fixed or Combinations is set: those always produce
	// exactly the listed units.
	XRule  string `yaml:"x_rule" json:"x_rule,omitempty"`
	XParam string `yaml:"x_param" json:"x_param,omitempty"`
}

// RequiresTap reports whether the ability taps its source.
func (a Ability) RequiresTap() bool {
	for _, tok := range a.ActivationCost {
		if strings.EqualFold(strings.TrimSpace(tok), "{T}") || strings.EqualFold(strings.TrimSpace(tok), "T") {
			return true
		}
	}
	return false
}

// RequiresMana reports whether the activation cost includes mana symbols.
func (a Ability) RequiresMana() bool {
	for _, tok := range a.ActivationCost {
		tok = strings.TrimSpace(tok)
		if strings.EqualFold(tok, "{T}") || strings.EqualFold(tok, "{Q}") {
			continue
		}
		if strings.HasPrefix(tok, "{") {
			if cost, err := ParseCost(tok); err == nil && !cost.IsZero() {
				return true
			}
		}
	}
	return false
}

// RequiresSacrifice reports whether the activation sacrifices something.
func (a Ability) RequiresSacrifice() bool {
	for _, tok := range a.ActivationCost {
		if strings.HasPrefix(strings.ToLower(strings.TrimSpace(tok)), "sacrifice") {
			return true
		}
	}
	return false
}

// CanProduce reports whether the ability can yield mana of type t.
func (p Production) CanProduce(t ManaType) bool {
	for _, f := range p.Fixed {
		if f == t {
			return true
		}
	}
	for _, c := range p.Choice {
		if c == t {
			return true
		}
	}
	for _, combo := range p.Combinations {
		for _, c := range combo {
			if c == t {
				return true
			}
		}
	}
	return false
}

// IsVariable reports whether the produced amount depends on board state.
func (p Production) IsVariable() bool {
	return p.XRule != "" && len(p.Choice) > 0 && len(p.Fixed) == 0 && len(p.Combinations) == 0
}

// BaseAmount is the static amount for Choice productions.
func (p Production) BaseAmount() int {
	if p.Amount <= 0 {
		return 1
	}
	return p.Amount
}
