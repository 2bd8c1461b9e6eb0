package effects

import (
	"strings"

	"github.com/magefree/mage-goldfish/internal/game/board"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

var keywordTitle = cases.Title(language.English)

// DisplayKeyword formats a keyword for summaries, e.g. "first strike" becomes
// "First Strike".
func DisplayKeyword(kw string) string {
	return keywordTitle.String(strings.ToLower(strings.TrimSpace(kw)))
}

// CombatData is the combat-ready view of a creature.
type CombatData struct {
	ID            string   `json:"id"`
	Name          string   `json:"name"`
	Power         int      `json:"power"`
	Toughness     int      `json:"toughness"`
	Keywords      []string `json:"keywords,omitempty"`
	Tapped        bool     `json:"tapped"`
	SummoningSick bool     `json:"summoning_sick"`

	Flying         bool `json:"flying"`
	FirstStrike    bool `json:"first_strike"`
	DoubleStrike   bool `json:"double_strike"`
	Deathtouch     bool `json:"deathtouch"`
	Lifelink       bool `json:"lifelink"`
	Vigilance      bool `json:"vigilance"`
	Trample        bool `json:"trample"`
	Menace         bool `json:"menace"`
	Reach          bool `json:"reach"`
	Haste          bool `json:"haste"`
	Defender       bool `json:"defender"`
	Hexproof       bool `json:"hexproof"`
	Indestructible bool `json:"indestructible"`
}

// CanAttack reports whether the creature could be declared as an attacker.
func (c CombatData) CanAttack() bool {
	if c.Tapped || c.Defender {
		return false
	}
	return !c.SummoningSick || c.Haste
}

// GetCombatData summarises a permanent using its current derived record. Run
// the layer engine first for up to date values.
func GetCombatData(p *board.Permanent) CombatData {
	if p == nil {
		return CombatData{}
	}
	stats := CalculateFinalStats(p)
	return CombatData{
		ID:            p.ID,
		Name:          p.Name,
		Power:         stats.Power,
		Toughness:     stats.Toughness,
		Keywords:      p.AllKeywords(),
		Tapped:        p.Tapped,
		SummoningSick: p.SummoningSick,

		Flying:         p.HasKeyword("flying"),
		FirstStrike:    p.HasKeyword("first strike"),
		DoubleStrike:   p.HasKeyword("double strike"),
		Deathtouch:     p.HasKeyword("deathtouch"),
		Lifelink:       p.HasKeyword("lifelink"),
		Vigilance:      p.HasKeyword("vigilance"),
		Trample:        p.HasKeyword("trample"),
		Menace:         p.HasKeyword("menace"),
		Reach:          p.HasKeyword("reach"),
		Haste:          p.HasKeyword("haste"),
		Defender:       p.HasKeyword("defender"),
		Hexproof:       p.HasKeyword("hexproof"),
		Indestructible: p.HasKeyword("indestructible"),
	}
}

// GetAllCombatData summarises every creature on the battlefield, including
// artifacts that a type-changing effect turned into creatures.
func GetAllCombatData(bf *board.Battlefield) []CombatData {
	if bf == nil {
		return nil
	}
	var out []CombatData
	for _, p := range bf.Creatures {
		out = append(out, GetCombatData(p))
	}
	for _, p := range bf.Artifacts {
		if p.HasType(board.CategoryCreature) {
			out = append(out, GetCombatData(p))
		}
	}
	return out
}

// TotalPower sums the power of creatures able to attack.
func TotalPower(data []CombatData) int {
	total := 0
	for _, c := range data {
		if c.CanAttack() {
			total += c.Power
		}
	}
	return total
}
