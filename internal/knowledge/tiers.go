// Package knowledge aggregates valid-state information about entities from
// multiple sources of differing trust and merges them with a fixed
// precedence. The base is deliberately conservative: for domains and
// entities where no source has a confident opinion it reports no opinion at
// all, and the validation engine stays silent.
package knowledge

import (
	apperrors "github.com/home-assistant-tools/automation-lint-go/internal/errors"
)

// Tier identifies one knowledge source. Higher values win on conflict.
type Tier int

const (
	// TierHistorical is states observed in the recorder database.
	TierHistorical Tier = iota
	// TierSchema is states declared by integration schemas or a local
	// schema file.
	TierSchema
	// TierDomainDefault is the built-in whitelist of fixed-vocabulary
	// domains.
	TierDomainDefault
	// TierCapability is states derived from the live entity snapshot, such
	// as input_select options or climate hvac_modes.
	TierCapability
	// TierUserConfirmed is states the user explicitly marked valid by
	// dismissing an issue. Unlike the other tiers it extends the merged set
	// instead of replacing it: a dismissal vouches for one value, not for a
	// whole vocabulary.
	TierUserConfirmed
)

var tierNames = map[Tier]string{
	TierHistorical:    "historical",
	TierSchema:        "schema",
	TierDomainDefault: "domain_default",
	TierCapability:    "capability",
	TierUserConfirmed: "user_confirmed",
}

// String returns the configuration name of the tier.
func (t Tier) String() string {
	if name, ok := tierNames[t]; ok {
		return name
	}
	return "unknown"
}

// DefaultTierOrder returns the standard precedence, lowest first.
func DefaultTierOrder() []Tier {
	return []Tier{TierHistorical, TierSchema, TierDomainDefault, TierCapability, TierUserConfirmed}
}

// ParseTierOrder converts configuration names into a tier order. Every name
// must be recognized and appear at most once; an empty input yields the
// default order.
func ParseTierOrder(names []string) ([]Tier, error) {
	if len(names) == 0 {
		return DefaultTierOrder(), nil
	}
	byName := make(map[string]Tier, len(tierNames))
	for tier, name := range tierNames {
		byName[name] = tier
	}
	seen := make(map[Tier]bool, len(names))
	order := make([]Tier, 0, len(names))
	for _, name := range names {
		tier, ok := byName[name]
		if !ok {
			return nil, apperrors.Create(apperrors.CodeConfigInvalid).WithMessagef("unknown knowledge tier %q", name)
		}
		if seen[tier] {
			return nil, apperrors.Create(apperrors.CodeConfigInvalid).WithMessagef("duplicate knowledge tier %q", name)
		}
		seen[tier] = true
		order = append(order, tier)
	}
	return order, nil
}
