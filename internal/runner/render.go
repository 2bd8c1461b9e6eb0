package runner

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/magefree/mage-goldfish/internal/config"
	"github.com/magefree/mage-goldfish/internal/game/mana"
)

// Write renders reports in the given output format.
func Write(w io.Writer, format string, reports []Report) error {
	switch format {
	case config.FormatJSON:
		return WriteJSON(w, reports)
	case config.FormatText, "":
		return WriteText(w, reports)
	}
	return fmt.Errorf("unknown output format %q", format)
}

// WriteJSON writes the reports as an indented JSON array.
func WriteJSON(w io.Writer, reports []Report) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(reports)
}

// WriteText writes a human-readable summary of every report.
func WriteText(w io.Writer, reports []Report) error {
	var b strings.Builder
	for i, rep := range reports {
		if i > 0 {
			b.WriteString("\n")
		}
		fmt.Fprintf(&b, "== %s (turn %d) ==\n", rep.Scenario, rep.Turn)
		b.WriteString(rep.Effects.Summary + "\n")
		for _, e := range rep.Effects.ActiveEffects {
			fmt.Fprintf(&b, "  - %s\n", e.Description)
		}

		if len(rep.Creatures) > 0 {
			b.WriteString("Creatures:\n")
			for _, c := range rep.Creatures {
				fmt.Fprintf(&b, "  %s %d/%d", c.Name, c.Power, c.Toughness)
				if len(c.Keywords) > 0 {
					fmt.Fprintf(&b, " [%s]", strings.Join(c.Keywords, ", "))
				}
				switch {
				case c.Tapped:
					b.WriteString(" (tapped)")
				case c.SummoningSick:
					b.WriteString(" (summoning sick)")
				}
				b.WriteString("\n")
			}
			fmt.Fprintf(&b, "Power available to attack: %d\n", rep.TotalPower)
		}

		for _, cr := range rep.Casts {
			fmt.Fprintf(&b, "Cast %s\n", castLine(cr))
		}
		if len(rep.Evaluations) > 0 {
			b.WriteString("Castable now:\n")
			for _, cr := range rep.Evaluations {
				fmt.Fprintf(&b, "  %s\n", castLine(cr))
				for _, line := range cr.Breakdown {
					fmt.Fprintf(&b, "      %s\n", line)
				}
			}
		}
		if act := activityLine(rep); act != "" {
			fmt.Fprintf(&b, "Activity: %s\n", act)
		}
		if len(rep.Floating) > 0 {
			fmt.Fprintf(&b, "Floating: %s\n", floatingString(rep.Floating))
		}
		fmt.Fprintf(&b, "Fingerprint: %s\n", rep.Fingerprint)
	}
	_, err := io.WriteString(w, b.String())
	return err
}

func castLine(cr CastReport) string {
	if cr.Error != "" && !cr.Castable {
		return fmt.Sprintf("%s: %s", cr.Spell, cr.Error)
	}
	status := "no"
	switch {
	case cr.FromPool:
		status = "yes, from floating mana"
	case cr.Castable:
		status = "yes, via " + strings.Join(cr.Sources, ", ")
	}
	return fmt.Sprintf("%s %s: %s", cr.Spell, cr.FinalCost, status)
}

func activityLine(rep Report) string {
	var parts []string
	a := rep.Activity
	if len(a.SpellsCast) > 0 {
		parts = append(parts, "cast "+strings.Join(a.SpellsCast, ", "))
	}
	if len(a.SourcesTapped) > 0 {
		parts = append(parts, "tapped "+strings.Join(a.SourcesTapped, ", "))
	}
	if len(a.PermanentsLeft) > 0 {
		parts = append(parts, "lost "+strings.Join(a.PermanentsLeft, ", "))
	}
	if a.ManaSpent > 0 {
		parts = append(parts, fmt.Sprintf("spent %d mana", a.ManaSpent))
	}
	return strings.Join(parts, "; ")
}

func floatingString(pool map[mana.ManaType]int) string {
	var parts []string
	for _, t := range mana.AllTypes {
		if n := pool[t]; n > 0 {
			parts = append(parts, fmt.Sprintf("%d%s", n, t))
		}
	}
	return strings.Join(parts, " ")
}
