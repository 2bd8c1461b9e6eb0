package mana

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// ManaType represents a type of mana.
type ManaType string

const (
	ManaWhite     ManaType = "W"
	ManaBlue      ManaType = "U"
	ManaBlack     ManaType = "B"
	ManaRed       ManaType = "R"
	ManaGreen     ManaType = "G"
	ManaColorless ManaType = "C"
)

// ColorOrder is the fixed W, U, B, R, G preference order used for colored
// requirements and for spending colored mana on generic costs.
var ColorOrder = []ManaType{ManaWhite, ManaBlue, ManaBlack, ManaRed, ManaGreen}

// AllTypes lists the five colors followed by colorless.
var AllTypes = []ManaType{ManaWhite, ManaBlue, ManaBlack, ManaRed, ManaGreen, ManaColorless}

// ParseManaType converts a single symbol (case-insensitive) into a ManaType.
func ParseManaType(symbol string) (ManaType, bool) {
	switch strings.ToUpper(strings.TrimSpace(symbol)) {
	case "W":
		return ManaWhite, true
	case "U":
		return ManaBlue, true
	case "B":
		return ManaBlack, true
	case "R":
		return ManaRed, true
	case "G":
		return ManaGreen, true
	case "C":
		return ManaColorless, true
	}
	return "", false
}

// ManaCost represents a parsed mana cost.
type ManaCost struct {
	Generic   int
	White     int
	Blue      int
	Black     int
	Red       int
	Green     int
	Colorless int
	X         int // number of {X} symbols
}

var symbolPattern = regexp.MustCompile(`\{([^}]+)\}`)

// ParseCost parses a mana cost string (e.g., "{1}{G}", "{2}{R}{R}", "{X}{R}").
// Hybrid symbols such as {W/U} or {2/B} are counted as one generic mana.
func ParseCost(costStr string) (ManaCost, error) {
	var cost ManaCost
	if strings.TrimSpace(costStr) == "" {
		return cost, nil
	}

	for _, match := range symbolPattern.FindAllStringSubmatch(costStr, -1) {
		symbol := strings.ToUpper(strings.TrimSpace(match[1]))

		if t, ok := ParseManaType(symbol); ok {
			cost.AddPips(t, 1)
			continue
		}
		switch {
		case symbol == "X":
			cost.X++
		case strings.Contains(symbol, "/"):
			cost.Generic++
		default:
			num, err := strconv.Atoi(symbol)
			if err != nil || num < 0 {
				return ManaCost{}, fmt.Errorf("unknown mana symbol: {%s}", symbol)
			}
			cost.Generic += num
		}
	}

	return cost, nil
}

// MustParseCost is ParseCost for literals known to be well formed.
func MustParseCost(costStr string) ManaCost {
	cost, err := ParseCost(costStr)
	if err != nil {
		panic(err)
	}
	return cost
}

// AddPips adds n symbols of type t.
func (mc *ManaCost) AddPips(t ManaType, n int) {
	switch t {
	case ManaWhite:
		mc.White += n
	case ManaBlue:
		mc.Blue += n
	case ManaBlack:
		mc.Black += n
	case ManaRed:
		mc.Red += n
	case ManaGreen:
		mc.Green += n
	case ManaColorless:
		mc.Colorless += n
	}
}

// Pips returns how many symbols of the given type the cost requires.
func (mc ManaCost) Pips(t ManaType) int {
	switch t {
	case ManaWhite:
		return mc.White
	case ManaBlue:
		return mc.Blue
	case ManaBlack:
		return mc.Black
	case ManaRed:
		return mc.Red
	case ManaGreen:
		return mc.Green
	case ManaColorless:
		return mc.Colorless
	}
	return 0
}

// ColoredPips returns the number of W/U/B/R/G symbols.
func (mc ManaCost) ColoredPips() int {
	return mc.White + mc.Blue + mc.Black + mc.Red + mc.Green
}

// Total returns the amount of mana needed to pay the cost with X = 0.
func (mc ManaCost) Total() int {
	return mc.Generic + mc.ColoredPips() + mc.Colorless
}

// IsZero reports whether nothing needs to be paid.
func (mc ManaCost) IsZero() bool {
	return mc.Total() == 0 && mc.X == 0
}

// WithGeneric returns a copy of the cost with the generic component replaced,
// floored at zero. Colored pips are untouched.
func (mc ManaCost) WithGeneric(generic int) ManaCost {
	if generic < 0 {
		generic = 0
	}
	mc.Generic = generic
	return mc
}

// String builds the canonical cost string, e.g. "{2}{U}{B}".
func (mc ManaCost) String() string {
	var b strings.Builder

	for i := 0; i < mc.X; i++ {
		b.WriteString("{X}")
	}
	if mc.Generic > 0 || mc.Total() == 0 && mc.X == 0 {
		fmt.Fprintf(&b, "{%d}", mc.Generic)
	}
	for _, t := range AllTypes {
		for i := 0; i < mc.Pips(t); i++ {
			b.WriteString("{" + string(t) + "}")
		}
	}

	return b.String()
}

// BuildCostString is the inverse of ParseCost.
func BuildCostString(mc ManaCost) string {
	return mc.String()
}
