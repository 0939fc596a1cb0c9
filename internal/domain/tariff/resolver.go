package tariff

import (
	"bytes"
	"time"
)

// ResolveRule selects the rule charged at the given instant. Spot-scoped
// rules always beat zone-wide ones regardless of priority; priority only
// orders rules within the same scope. Equal priorities are broken by the
// smallest rule ID so resolution is deterministic across calls. Returns
// nil when nothing matches; the caller substitutes the default rate.
func ResolveRule(spotRules, zoneRules []*Rule, at time.Time) *Rule {
	if best := pickBest(spotRules, at); best != nil {
		return best
	}
	return pickBest(zoneRules, at)
}

func pickBest(rules []*Rule, at time.Time) *Rule {
	var best *Rule
	for _, r := range rules {
		if !r.AppliesAt(at) {
			continue
		}
		if best == nil || beats(r, best) {
			best = r
		}
	}
	return best
}

func beats(a, b *Rule) bool {
	if a.priority != b.priority {
		return a.priority > b.priority
	}
	return bytes.Compare(a.id[:], b.id[:]) < 0
}
