// Package scenario loads goldfish board scenarios from YAML files.
//
// A scenario describes a board at one moment of a game: what is on the
// battlefield, what is in hand and the command zone, which mana abilities each
// card has, and which spells to cast and evaluate from there.
package scenario

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/magefree/mage-goldfish/internal/game/board"
	"github.com/magefree/mage-goldfish/internal/game/counters"
	"github.com/magefree/mage-goldfish/internal/game/mana"
	"gopkg.in/yaml.v3"
)

// Scenario is the top-level YAML structure.
type Scenario struct {
	Name          string                          `yaml:"name"`
	Turn          int                             `yaml:"turn"`
	PrimaryColors []mana.ManaType                 `yaml:"primary_colors"`
	Commander     *Commander                      `yaml:"commander"`
	Battlefield   []Permanent                     `yaml:"battlefield"`
	Hand          []board.Card                    `yaml:"hand"`
	ManaAbilities map[string]mana.AbilityMetadata `yaml:"mana_abilities"`
	Floating      map[mana.ManaType]int           `yaml:"floating"`
	// Cast lists spells, or the commander by name, to cast in order before
	// evaluation.
	Cast []string `yaml:"cast"`
	// Evaluate lists spells, or the commander by name, whose cost and
	// castability are reported.
	Evaluate []string `yaml:"evaluate"`

	// Path is the file the scenario was loaded from, if any.
	Path string `yaml:"-"`
}

// Permanent is a battlefield entry.
type Permanent struct {
	board.Card    `yaml:",inline"`
	Tapped        bool           `yaml:"tapped"`
	SummoningSick bool           `yaml:"summoning_sick"`
	Counters      map[string]int `yaml:"counters"`
}

// Commander is the command zone entry.
type Commander struct {
	board.Card `yaml:",inline"`
	CastCount  int `yaml:"cast_count"`
}

// Load reads and parses a scenario file. The scenario name defaults to the
// file name without extension.
func Load(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read scenario: %w", err)
	}
	sc, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	sc.Path = path
	if sc.Name == "" {
		sc.Name = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}
	return sc, nil
}

// Parse decodes and validates a scenario.
func Parse(data []byte) (*Scenario, error) {
	var sc Scenario
	if err := yaml.Unmarshal(data, &sc); err != nil {
		return nil, fmt.Errorf("parse scenario YAML: %w", err)
	}
	if err := sc.Validate(); err != nil {
		return nil, err
	}
	return &sc, nil
}

// Validate checks names, mana costs and mana symbols.
func (sc *Scenario) Validate() error {
	for i, p := range sc.Battlefield {
		if strings.TrimSpace(p.Name) == "" {
			return fmt.Errorf("battlefield[%d]: missing name", i)
		}
	}
	for i, c := range sc.Hand {
		if strings.TrimSpace(c.Name) == "" {
			return fmt.Errorf("hand[%d]: missing name", i)
		}
		if _, err := mana.ParseCost(c.ManaCost); err != nil {
			return fmt.Errorf("hand card %q: %w", c.Name, err)
		}
	}
	if sc.Commander != nil {
		if strings.TrimSpace(sc.Commander.Name) == "" {
			return fmt.Errorf("commander: missing name")
		}
		if _, err := mana.ParseCost(sc.Commander.ManaCost); err != nil {
			return fmt.Errorf("commander %q: %w", sc.Commander.Name, err)
		}
		if sc.Commander.CastCount < 0 {
			return fmt.Errorf("commander %q: negative cast_count", sc.Commander.Name)
		}
	}
	for t, n := range sc.Floating {
		if _, ok := mana.ParseManaType(string(t)); !ok {
			return fmt.Errorf("floating: unknown mana type %q", t)
		}
		if n < 0 {
			return fmt.Errorf("floating %s: negative amount", t)
		}
	}
	for _, t := range sc.PrimaryColors {
		if _, ok := mana.ParseManaType(string(t)); !ok {
			return fmt.Errorf("primary_colors: unknown mana type %q", t)
		}
	}
	for _, name := range append(append([]string(nil), sc.Cast...), sc.Evaluate...) {
		if !sc.IsCommander(name) && sc.HandCard(name) == nil {
			return fmt.Errorf("%q is neither in hand nor the commander", name)
		}
	}
	return nil
}

// IsCommander reports whether name is the scenario's commander.
func (sc *Scenario) IsCommander(name string) bool {
	return sc.Commander != nil && sc.Commander.Name == name
}

// HandCard returns the first hand card with the given name.
func (sc *Scenario) HandCard(name string) *board.Card {
	for i := range sc.Hand {
		if sc.Hand[i].Name == name {
			return &sc.Hand[i]
		}
	}
	return nil
}

// FloatingMana returns the floating pool contents keyed by canonical mana
// type.
func (sc *Scenario) FloatingMana() map[mana.ManaType]int {
	out := make(map[mana.ManaType]int, len(sc.Floating))
	for sym, n := range sc.Floating {
		if t, ok := mana.ParseManaType(string(sym)); ok && n > 0 {
			out[t] += n
		}
	}
	return out
}

// GameState builds a fresh game state from the scenario. Each call returns
// new permanents with new ids. Hand entries with a quantity above one are
// expanded into copies.
func (sc *Scenario) GameState() *board.GameState {
	state := board.NewGameState()
	state.Turn = sc.Turn
	for _, c := range sc.PrimaryColors {
		if t, ok := mana.ParseManaType(string(c)); ok {
			state.PrimaryColors = append(state.PrimaryColors, t)
		}
	}
	for name, meta := range sc.ManaAbilities {
		state.Manifest.ManaAbilities[name] = meta
	}

	for _, entry := range sc.Battlefield {
		p := board.NewPermanent(entry.Card)
		p.Tapped = entry.Tapped
		p.SummoningSick = entry.SummoningSick
		if len(entry.Counters) > 0 {
			p.Counters = counters.FromMap(entry.Counters)
		}
		state.Battlefield.Add(p)
	}

	for _, c := range sc.Hand {
		for i := 0; i < max(1, c.Quantity); i++ {
			state.Hand = append(state.Hand, c)
		}
	}

	if sc.Commander != nil {
		state.CommandZone = []*board.CommanderEntry{{
			Card:          sc.Commander.Card,
			CastCount:     sc.Commander.CastCount,
			OnBattlefield: state.Battlefield.FindByName(sc.Commander.Name) != nil,
		}}
	}
	return state
}
