package effects

import (
	"github.com/magefree/mage-goldfish/internal/game/board"
)

// FinalStats breaks a permanent's power and toughness into its tiers.
type FinalStats struct {
	Power     int `json:"power"`
	Toughness int `json:"toughness"`

	BasePower          int `json:"base_power"`
	BaseToughness      int `json:"base_toughness"`
	CounterPower       int `json:"counter_power"`
	CounterToughness   int `json:"counter_toughness"`
	StaticPower        int `json:"static_power"`
	StaticToughness    int `json:"static_toughness"`
	TemporaryPower     int `json:"temporary_power"`
	TemporaryToughness int `json:"temporary_toughness"`
}

// Boosted reports whether anything beyond printed stats changed the result.
func (s FinalStats) Boosted() bool {
	return s.CounterPower != 0 || s.CounterToughness != 0 ||
		s.StaticPower != 0 || s.StaticToughness != 0 ||
		s.TemporaryPower != 0 || s.TemporaryToughness != 0
}

// CalculateFinalStats computes base, then counters, then static effects,
// then temporary modifications. Neither value goes below zero.
func CalculateFinalStats(p *board.Permanent) FinalStats {
	if p == nil {
		return FinalStats{}
	}
	s := FinalStats{
		BasePower:       p.BasePower,
		BaseToughness:   p.BaseToughness,
		StaticPower:     p.StaticEffects.PowerDelta,
		StaticToughness: p.StaticEffects.ToughnessDelta,
	}
	s.CounterPower, s.CounterToughness = p.Counters.BoostDelta()
	for _, mod := range p.Temporary {
		s.TemporaryPower += mod.Power
		s.TemporaryToughness += mod.Toughness
	}

	s.Power = max(0, s.BasePower+s.CounterPower+s.StaticPower+s.TemporaryPower)
	s.Toughness = max(0, s.BaseToughness+s.CounterToughness+s.StaticToughness+s.TemporaryToughness)
	return s
}
