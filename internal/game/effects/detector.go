package effects

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/magefree/mage-goldfish/internal/game/board"
)

// draft is an effect before the registry stamps it with a source and time.
type draft struct {
	filter       Filter
	modification Modification
	text         string
}

// detectionRule pairs a text pattern with the builder turning one match into
// effects. firstOnly rules stop after their first productive match.
type detectionRule struct {
	name      string
	category  Category
	pattern   *regexp.Regexp
	firstOnly bool
	build     func(match []string) []draft
}

// Qualifier words that precede "creatures you control" without being a
// subtype. Clauses qualified this way are conditional and are not modelled.
var nonSubtypeQualifiers = map[string]bool{
	"attacking": true, "blocking": true, "tapped": true, "untapped": true,
	"token": true, "nontoken": true,
	"white": true, "blue": true, "black": true, "red": true, "green": true,
	"colorless": true, "multicolored": true, "monocolored": true,
	"and": true, "the": true, "each": true, "of": true, "your": true,
}

// Effects lasting until end of turn come from resolving spells or triggers,
// not from static abilities.
const untilEndOfTurn = "until end of turn"

var qualifierCardTypes = map[string]bool{
	"artifact": true, "enchantment": true, "legendary": true,
}

var additionTypes = map[string]string{
	"artifact":     "Artifact",
	"artifacts":    "Artifact",
	"creature":     "Creature",
	"creatures":    "Creature",
	"enchantment":  "Enchantment",
	"enchantments": "Enchantment",
	"land":         "Land",
	"lands":        "Land",
}

var (
	typeChangePattern = regexp.MustCompile(`(?i)\b(?:(all|other)[ ]+)?(?:([a-z]+)[ ]+)?(creatures|artifacts|permanents)(?: you control)? are ([a-z ]+?) in addition to their other (?:card )?types`)
	keywordPattern    = regexp.MustCompile(`(?i)\b(?:(all|other)[ ]+)?(?:([a-z]+)[ ]+)?(creatures|artifacts) you control have ([^.\n]+)`)
	anthemPattern     = regexp.MustCompile(`(?i)\b(?:(all|other)[ ]+)?(?:([a-z]+)[ ]+)?creatures you control get ([+-]\d+)/([+-]\d+)([^.\n]*)`)
	costPattern       = regexp.MustCompile(`(?i)(?:\b(non)?(creature|artifact|enchantment|instant|sorcery|planeswalker|legendary)[ ]+)?\bspells(?: you cast)? cost \{(\d+)\} (less|more) to cast`)
	keywordMatchers   = buildKeywordMatchers()
)

func buildKeywordMatchers() []*regexp.Regexp {
	out := make([]*regexp.Regexp, len(board.Keywords))
	for i, kw := range board.Keywords {
		out[i] = regexp.MustCompile(`\b` + regexp.QuoteMeta(kw) + `\b`)
	}
	return out
}

// defaultRules is evaluated in order: type changes, keyword grants,
// power/toughness, cost modification.
var defaultRules = []detectionRule{
	{name: "type-addition", category: CategoryTypeChange, pattern: typeChangePattern, firstOnly: true, build: buildTypeAddition},
	{name: "keyword-grant", category: CategoryKeyword, pattern: keywordPattern, firstOnly: true, build: buildKeywordGrant},
	{name: "anthem", category: CategoryPowerToughness, pattern: anthemPattern, firstOnly: true, build: buildAnthem},
	{name: "cost-modification", category: CategoryCostModification, pattern: costPattern, build: buildCostChange},
}

// Detector scans rules text for static abilities.
type Detector struct {
	rules []detectionRule
}

// NewDetector returns a detector using the built-in rule table.
func NewDetector() *Detector {
	return &Detector{rules: defaultRules}
}

// Detect returns the effects described by the permanent's rules text. The
// permanent is not modified. The returned effects carry the permanent as
// source but no timestamp.
func (d *Detector) Detect(p *board.Permanent) []Effect {
	if p == nil || strings.TrimSpace(p.OracleText) == "" {
		return nil
	}

	var out []Effect
	for _, rule := range d.rules {
		for _, match := range rule.pattern.FindAllStringSubmatch(p.OracleText, -1) {
			drafts := rule.build(match)
			for _, dr := range drafts {
				out = append(out, Effect{
					Category:     dr.modification.Category(),
					Layer:        dr.modification.Layer(),
					Filter:       dr.filter,
					Modification: dr.modification,
					Source:       p,
					SourceID:     p.ID,
					SourceName:   p.Name,
					Text:         dr.text,
				})
			}
			if rule.firstOnly && len(drafts) > 0 {
				break
			}
		}
	}
	return out
}

// DetectEffects runs the default detector.
func DetectEffects(p *board.Permanent) []Effect {
	return NewDetector().Detect(p)
}

// qualifiedFilter builds the filter for "[all|other] [qualifier] <noun> you control".
func qualifiedFilter(scope, qualifier, nounType string) (Filter, bool) {
	f := Filter{ExcludeSelf: strings.EqualFold(scope, "other")}
	if nounType != "" {
		f.CardTypes = []string{nounType}
	}
	q := strings.ToLower(qualifier)
	switch {
	case q == "":
	case qualifierCardTypes[q]:
		f.CardTypes = append(f.CardTypes, q)
	case nonSubtypeQualifiers[q]:
		return Filter{}, false
	default:
		f.Subtypes = []string{qualifier}
	}
	return f, true
}

func buildAnthem(m []string) []draft {
	rest := strings.ToLower(strings.TrimSpace(m[5]))
	if strings.Contains(rest, untilEndOfTurn) {
		return nil
	}
	filter, ok := qualifiedFilter(m[1], m[2], board.CategoryCreature)
	if !ok {
		return nil
	}
	power, _ := strconv.Atoi(m[3])
	toughness, _ := strconv.Atoi(m[4])
	out := []draft{{
		filter:       filter,
		modification: PowerToughness{Power: power, Toughness: toughness},
		text:         m[0],
	}}
	// "get +1/+1 and have vigilance"
	if granted, ok := strings.CutPrefix(rest, "and have "); ok {
		out = append(out, keywordDrafts(filter, granted, m[0])...)
	}
	return out
}

func keywordDrafts(filter Filter, granted, text string) []draft {
	granted = strings.ToLower(granted)
	var out []draft
	for i, matcher := range keywordMatchers {
		if matcher.MatchString(granted) {
			out = append(out, draft{
				filter:       filter,
				modification: KeywordGrant{Keyword: board.Keywords[i]},
				text:         text,
			})
		}
	}
	return out
}

func buildKeywordGrant(m []string) []draft {
	noun := board.CategoryCreature
	if strings.EqualFold(m[3], "artifacts") {
		noun = board.CategoryArtifact
	}
	if strings.Contains(strings.ToLower(m[4]), untilEndOfTurn) {
		return nil
	}
	filter, ok := qualifiedFilter(m[1], m[2], noun)
	if !ok {
		return nil
	}
	return keywordDrafts(filter, m[4], m[0])
}

func buildCostChange(m []string) []draft {
	if m[1] != "" {
		return nil
	}
	amount, err := strconv.Atoi(m[3])
	if err != nil || amount == 0 {
		return nil
	}
	var filter Filter
	if spellType := strings.ToLower(m[2]); spellType != "" {
		filter.CardTypes = []string{spellType}
	}
	mod := CostChange{GenericReduction: amount}
	if strings.EqualFold(m[4], "more") {
		mod = CostChange{GenericIncrease: amount}
	}
	return []draft{{filter: filter, modification: mod, text: m[0]}}
}

func buildTypeAddition(m []string) []draft {
	noun := ""
	switch strings.ToLower(m[3]) {
	case "creatures":
		noun = board.CategoryCreature
	case "artifacts":
		noun = board.CategoryArtifact
	}
	filter, ok := qualifiedFilter(m[1], m[2], noun)
	if !ok {
		return nil
	}
	var types []string
	for _, word := range strings.Fields(strings.ToLower(m[4])) {
		if t, ok := additionTypes[word]; ok {
			types = append(types, t)
		}
	}
	if len(types) == 0 {
		return nil
	}
	return []draft{{filter: filter, modification: TypeAddition{Types: types}, text: m[0]}}
}
