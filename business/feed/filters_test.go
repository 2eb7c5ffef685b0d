//go:build !integration

package feed

import (
	"testing"

	"localGuide/domain"
)

func TestEffectivePriceRanges(t *testing.T) {
	tests := []struct {
		name      string
		primary   string
		preferred []string
		want      []string
	}{
		{"none", "", nil, nil},
		{"primary only", "$$", nil, []string{"$$"}},
		{"union with dedup", "$", []string{"$$", "$", " $$$ "}, []string{"$", "$$", "$$$"}},
		{"unknown tiers dropped", "cheap", []string{"$$$$$", "$$$$"}, []string{"$$$$"}},
		{"only unknown tiers", "free", nil, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := EffectivePriceRanges(tt.primary, tt.preferred)
			if !equalIDs(got, tt.want) || (tt.want == nil && got != nil) {
				t.Errorf("EffectivePriceRanges() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestMatches(t *testing.T) {
	c := domain.BusinessCandidate{
		Category:   "food",
		Badge:      "Top Pick",
		Verified:   boolPtr(true),
		PriceRange: "$$",
		Location:   "Cape Town, Western Cape",
	}

	tests := []struct {
		name string
		f    domain.FeedFilters
		want bool
	}{
		{"no filters", domain.FeedFilters{}, true},
		{"category match", domain.FeedFilters{Category: "food"}, true},
		{"category mismatch", domain.FeedFilters{Category: "bars"}, false},
		{"badge mismatch", domain.FeedFilters{Badge: "New"}, false},
		{"verified only", domain.FeedFilters{VerifiedOnly: true}, true},
		{"price in set", domain.FeedFilters{PriceRanges: []string{"$", "$$"}}, true},
		{"price outside set", domain.FeedFilters{PriceRanges: []string{"$$$"}}, false},
		{"location substring any case", domain.FeedFilters{Location: "cape town"}, true},
		{"location miss", domain.FeedFilters{Location: "Durban"}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Matches(tt.f, c); got != tt.want {
				t.Errorf("Matches() = %v, want %v", got, tt.want)
			}
		})
	}

	unverified := domain.BusinessCandidate{}
	if Matches(domain.FeedFilters{VerifiedOnly: true}, unverified) {
		t.Error("unknown verification must not pass verified_only")
	}
}

func TestBuildFilters(t *testing.T) {
	f := BuildFilters(domain.FeedRequest{
		Category:             " food ",
		VerifiedOnly:         true,
		PriceRange:           "$",
		PreferredPriceRanges: []string{"$$"},
		Location:             "Cape Town",
	})

	if f.Category != "food" || !f.VerifiedOnly || f.Location != "Cape Town" {
		t.Errorf("unexpected filters %+v", f)
	}
	if !equalIDs(f.PriceRanges, []string{"$", "$$"}) {
		t.Errorf("price ranges = %v", f.PriceRanges)
	}
}

func TestSplitCSV(t *testing.T) {
	if got := SplitCSV(""); got != nil {
		t.Errorf("empty input should give nil, got %v", got)
	}
	if got := SplitCSV(" cafes, ,bars,cafes "); !equalIDs(got, []string{"cafes", "bars"}) {
		t.Errorf("got %v", got)
	}
}
