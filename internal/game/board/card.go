package board

import (
	"strconv"
	"strings"
)

// Card categories as assigned by the deck parser.
const (
	CategoryCreature     = "creature"
	CategoryArtifact     = "artifact"
	CategoryEnchantment  = "enchantment"
	CategoryPlaneswalker = "planeswalker"
	CategoryLand         = "land"
	CategoryInstant      = "instant"
	CategorySorcery      = "sorcery"
)

// categoryPriority decides the category of multi-typed cards whose category
// was not supplied: an artifact creature is a creature.
var categoryPriority = []string{
	CategoryCreature,
	CategoryPlaneswalker,
	CategoryLand,
	CategoryArtifact,
	CategoryEnchantment,
	CategoryInstant,
	CategorySorcery,
}

// Card is one parsed deck entry.
type Card struct {
	Name       string `yaml:"name" json:"name"`
	TypeLine   string `yaml:"type_line" json:"type_line"`
	ManaCost   string `yaml:"mana_cost" json:"mana_cost"`
	CMC        int    `yaml:"cmc" json:"cmc"`
	Power      string `yaml:"power" json:"power,omitempty"`
	Toughness  string `yaml:"toughness" json:"toughness,omitempty"`
	OracleText string `yaml:"oracle_text" json:"oracle_text"`
	Category   string `yaml:"category" json:"category"`
	Quantity   int    `yaml:"quantity" json:"quantity,omitempty"`
}

// SplitTypeLine splits "Legendary Creature — Elf Warrior" into its card
// types and subtypes. Both em-dash and " - " separators are accepted.
func SplitTypeLine(typeLine string) (types, subtypes []string) {
	left, right := typeLine, ""
	if l, r, ok := strings.Cut(typeLine, "—"); ok {
		left, right = l, r
	} else if l, r, ok := strings.Cut(typeLine, " - "); ok {
		left, right = l, r
	}
	return strings.Fields(left), strings.Fields(right)
}

// ResolveCategory returns the card's category, deriving it from the type
// line when the deck parser left it blank.
func (c Card) ResolveCategory() string {
	if c.Category != "" {
		return strings.ToLower(c.Category)
	}
	types, _ := SplitTypeLine(c.TypeLine)
	for _, cat := range categoryPriority {
		for _, t := range types {
			if strings.EqualFold(t, cat) {
				return cat
			}
		}
	}
	return ""
}

// IsLand reports whether the card is a land.
func (c Card) IsLand() bool {
	return c.ResolveCategory() == CategoryLand
}

// HasType reports whether the card's category or type line includes typeName.
func (c Card) HasType(typeName string) bool {
	if strings.EqualFold(c.ResolveCategory(), typeName) {
		return true
	}
	types, _ := SplitTypeLine(c.TypeLine)
	return containsFold(types, typeName)
}

func parseStat(s string) (int, bool) {
	v, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0, false
	}
	return v, true
}

func containsFold(list []string, want string) bool {
	want = strings.TrimSpace(want)
	for _, v := range list {
		if strings.EqualFold(strings.TrimSpace(v), want) {
			return true
		}
	}
	return false
}

// Keywords is the fixed vocabulary of evergreen keywords the engine
// recognises, in display order.
var Keywords = []string{
	"flying",
	"first strike",
	"double strike",
	"deathtouch",
	"lifelink",
	"vigilance",
	"trample",
	"menace",
	"reach",
	"haste",
	"defender",
	"hexproof",
	"indestructible",
}

// IsKeyword reports whether word is in the vocabulary.
func IsKeyword(word string) bool {
	return containsFold(Keywords, word)
}

// printedKeywords extracts keyword-only lines ("Flying, vigilance") from
// rules text.
func printedKeywords(oracle string) []string {
	var out []string
	for _, line := range strings.Split(oracle, "\n") {
		parts := strings.Split(line, ",")
		var found []string
		for _, part := range parts {
			kw := strings.ToLower(strings.TrimSpace(part))
			if !IsKeyword(kw) {
				found = nil
				break
			}
			found = append(found, kw)
		}
		out = appendUnique(out, found...)
	}
	return out
}

func appendUnique(list []string, values ...string) []string {
	for _, v := range values {
		if !containsFold(list, v) {
			list = append(list, v)
		}
	}
	return list
}
