package effects

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"sort"
	"strings"

	"github.com/magefree/mage-goldfish/internal/game/board"
)

// Fingerprint computes a deterministic SHA-256 of the board's derived state:
// final stats, granted keywords, granted types and board flags of every
// permanent. Permanent ids are excluded so two boards built from the same
// cards compare equal.
func Fingerprint(bf *board.Battlefield) string {
	sum := sha256.Sum256([]byte(deterministicRepresentation(bf)))
	return hex.EncodeToString(sum[:])
}

// deterministicRepresentation renders the board independent of zone order and
// keyword grant order.
func deterministicRepresentation(bf *board.Battlefield) string {
	if bf == nil {
		return ""
	}
	lines := make([]string, 0, len(bf.All()))
	for _, p := range bf.All() {
		stats := CalculateFinalStats(p)
		var buf bytes.Buffer
		fmt.Fprintf(&buf, "PERMANENT:%s|%s|%d|%d|%t|%t",
			p.Name, p.Category, stats.Power, stats.Toughness, p.Tapped, p.SummoningSick)
		for _, kw := range sortedCopy(p.AllKeywords()) {
			fmt.Fprintf(&buf, "|KW:%s", kw)
		}
		for _, t := range sortedCopy(p.StaticEffects.Types) {
			fmt.Fprintf(&buf, "|TYPE:%s", t)
		}
		for _, c := range sortedCopy(p.StaticEffects.Colors) {
			fmt.Fprintf(&buf, "|COLOR:%s", c)
		}
		for _, name := range p.Counters.Names() {
			fmt.Fprintf(&buf, "|COUNTER:%s=%d", name, p.Counters.Get(name))
		}
		lines = append(lines, buf.String())
	}
	sort.Strings(lines)
	return strings.Join(lines, "\n")
}

func sortedCopy(in []string) []string {
	out := make([]string, len(in))
	for i, s := range in {
		out[i] = strings.ToLower(s)
	}
	sort.Strings(out)
	return out
}
