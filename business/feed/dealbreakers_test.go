//go:build !integration

package feed

import (
	"testing"

	"localGuide/domain"
)

func TestFilterByDealbreakers_Rules(t *testing.T) {
	tests := []struct {
		name        string
		dealbreaker string
		c           domain.BusinessCandidate
		keep        bool
	}{
		{"explicitly unverified", "trustworthiness", domain.BusinessCandidate{Verified: boolPtr(false)}, false},
		{"verified", "trustworthiness", domain.BusinessCandidate{Verified: boolPtr(true)}, true},
		{"verification unknown", "trustworthiness", domain.BusinessCandidate{}, true},

		{"punctual default", "punctuality", domain.BusinessCandidate{}, true},
		{"punctual at threshold", "punctuality", withPercentile("punctuality", 70), true},
		{"late", "punctuality", withPercentile("punctuality", 69.9), false},

		{"friendly default", "friendliness", domain.BusinessCandidate{}, true},
		{"friendly at threshold", "friendliness", withPercentile("friendliness", 65), true},
		{"unfriendly", "friendliness", withPercentile("friendliness", 40), false},

		{"cheap tier", "value-for-money", domain.BusinessCandidate{PriceRange: "$"}, true},
		{"mid tier", "value-for-money", domain.BusinessCandidate{PriceRange: "$$"}, true},
		{"expensive tier", "value-for-money", domain.BusinessCandidate{PriceRange: "$$$"}, false},
		{"tier beats percentile", "value-for-money", domain.BusinessCandidate{
			PriceRange:  "$$$$",
			Percentiles: map[string]float64{"cost-effectiveness": 99},
		}, false},
		{"no tier default", "value-for-money", domain.BusinessCandidate{}, true},
		{"no tier low value", "value-for-money", withPercentile("cost-effectiveness", 74), false},

		{"unknown rule ignored", "must-have-parking", domain.BusinessCandidate{Verified: boolPtr(false)}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.c.ID = "b1"
			got := FilterByDealbreakers([]domain.BusinessCandidate{tt.c}, []string{tt.dealbreaker})
			if kept := len(got) == 1; kept != tt.keep {
				t.Errorf("kept = %v, want %v", kept, tt.keep)
			}
		})
	}
}

func TestFilterByDealbreakers_AllRulesMustPass(t *testing.T) {
	candidates := []domain.BusinessCandidate{
		{ID: "ok", PriceRange: "$", Verified: boolPtr(true)},
		{ID: "pricey", PriceRange: "$$$", Verified: boolPtr(true)},
		{ID: "shady", PriceRange: "$", Verified: boolPtr(false)},
	}

	got := FilterByDealbreakers(candidates, []string{"trustworthiness", "value-for-money"})

	if want := []string{"ok"}; !equalIDs(ids(got), want) {
		t.Fatalf("got %v, want %v", ids(got), want)
	}
	if len(candidates) != 3 {
		t.Fatal("input must not be modified")
	}
}

func TestFilterByDealbreakers_PanickingRuleFailsOpen(t *testing.T) {
	dealbreakerRules["explodes"] = func(c domain.BusinessCandidate) bool {
		var m map[string]*float64
		return *m["missing"] > 0
	}
	t.Cleanup(func() { delete(dealbreakerRules, "explodes") })

	got := FilterByDealbreakers([]domain.BusinessCandidate{{ID: "b1"}}, []string{"explodes"})
	if len(got) != 1 {
		t.Fatal("a panicking rule must let the candidate through")
	}
}

func TestKnownDealbreaker(t *testing.T) {
	for _, id := range []string{"trustworthiness", "punctuality", "friendliness", "value-for-money"} {
		if !KnownDealbreaker(id) {
			t.Errorf("%s should be known", id)
		}
	}
	if KnownDealbreaker("vibes") {
		t.Error("vibes should be unknown")
	}
}

func withPercentile(metric string, v float64) domain.BusinessCandidate {
	return domain.BusinessCandidate{Percentiles: map[string]float64{metric: v}}
}
