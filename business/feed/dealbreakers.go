package feed

import (
	"localGuide/domain"
	"localGuide/pkg/logger"
)

// DealbreakerRule returns false when the business must be excluded.
type DealbreakerRule func(c domain.BusinessCandidate) bool

// Missing metrics fall back to these values so absent stats never exclude.
const (
	defaultPunctuality       = 80.0
	defaultFriendliness      = 80.0
	defaultCostEffectiveness = 85.0

	minPunctuality       = 70.0
	minFriendliness      = 65.0
	minCostEffectiveness = 75.0
)

var dealbreakerRules = map[string]DealbreakerRule{
	"trustworthiness": func(c domain.BusinessCandidate) bool {
		return c.Verified == nil || *c.Verified
	},
	"punctuality": func(c domain.BusinessCandidate) bool {
		return percentile(c, domain.PercentilePunctuality, defaultPunctuality) >= minPunctuality
	},
	"friendliness": func(c domain.BusinessCandidate) bool {
		return percentile(c, domain.PercentileFriendliness, defaultFriendliness) >= minFriendliness
	},
	"value-for-money": func(c domain.BusinessCandidate) bool {
		if c.PriceRange != "" {
			return c.PriceRange == "$" || c.PriceRange == "$$"
		}
		return percentile(c, domain.PercentileCostEffectiveness, defaultCostEffectiveness) >= minCostEffectiveness
	},
}

// KnownDealbreaker reports whether id has a rule.
func KnownDealbreaker(id string) bool {
	_, ok := dealbreakerRules[id]
	return ok
}

// FilterByDealbreakers drops every candidate failing one of the requested
// rules. Unknown ids are ignored. The input slice is not modified.
func FilterByDealbreakers(candidates []domain.BusinessCandidate, dealbreakerIDs []string) []domain.BusinessCandidate {
	rules := make([]namedRule, 0, len(dealbreakerIDs))
	for _, id := range dealbreakerIDs {
		if rule, ok := dealbreakerRules[id]; ok {
			rules = append(rules, namedRule{id: id, rule: rule})
		}
	}
	if len(rules) == 0 {
		return candidates
	}

	out := make([]domain.BusinessCandidate, 0, len(candidates))
	for _, c := range candidates {
		keep := true
		for _, r := range rules {
			if !r.passes(c) {
				keep = false
				break
			}
		}
		if keep {
			out = append(out, c)
		}
	}

	return out
}

type namedRule struct {
	id   string
	rule DealbreakerRule
}

// passes fails open when the rule panics.
func (r namedRule) passes(c domain.BusinessCandidate) (ok bool) {
	defer func() {
		if rec := recover(); rec != nil {
			logger.Warn("dealbreaker rule panicked", "dealbreaker", r.id, "business_id", c.ID, "panic", rec)
			ok = true
		}
	}()
	return r.rule(c)
}

func percentile(c domain.BusinessCandidate, metric string, fallback float64) float64 {
	if v, ok := c.Percentiles[metric]; ok {
		return v
	}
	return fallback
}
