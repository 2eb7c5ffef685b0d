package feed

import (
	"strings"

	"localGuide/domain"
)

var priceTiers = map[string]bool{
	"$":    true,
	"$$":   true,
	"$$$":  true,
	"$$$$": true,
}

// EffectivePriceRanges unions the primary price range with the preferred
// ones. Unknown tiers are dropped; nil means "no price constraint".
func EffectivePriceRanges(primary string, preferred []string) []string {
	seen := make(map[string]bool)
	var out []string

	add := func(v string) {
		v = strings.TrimSpace(v)
		if !priceTiers[v] || seen[v] {
			return
		}
		seen[v] = true
		out = append(out, v)
	}

	add(primary)
	for _, p := range preferred {
		add(p)
	}

	return out
}

// BuildFilters derives the predicates shared by all three fetchers.
func BuildFilters(req domain.FeedRequest) domain.FeedFilters {
	return domain.FeedFilters{
		Category:     strings.TrimSpace(req.Category),
		Badge:        strings.TrimSpace(req.Badge),
		VerifiedOnly: req.VerifiedOnly,
		PriceRanges:  EffectivePriceRanges(req.PriceRange, req.PreferredPriceRanges),
		Location:     strings.TrimSpace(req.Location),
	}
}

// Matches evaluates the shared filters in memory, for rows that did not come
// through a filtered query (the personalization procedure).
func Matches(f domain.FeedFilters, c domain.BusinessCandidate) bool {
	if f.Category != "" && c.Category != f.Category {
		return false
	}
	if f.Badge != "" && c.Badge != f.Badge {
		return false
	}
	if f.VerifiedOnly && !c.IsVerified() {
		return false
	}
	if len(f.PriceRanges) > 0 && !contains(f.PriceRanges, c.PriceRange) {
		return false
	}
	if f.Location != "" && !strings.Contains(strings.ToLower(c.Location), strings.ToLower(f.Location)) {
		return false
	}
	return true
}

// SplitCSV parses a comma separated query value into trimmed, unique items.
func SplitCSV(raw string) []string {
	if strings.TrimSpace(raw) == "" {
		return nil
	}

	seen := make(map[string]bool)
	var out []string
	for _, part := range strings.Split(raw, ",") {
		part = strings.TrimSpace(part)
		if part == "" || seen[part] {
			continue
		}
		seen[part] = true
		out = append(out, part)
	}

	return out
}

func contains(list []string, v string) bool {
	for _, s := range list {
		if s == v {
			return true
		}
	}
	return false
}
