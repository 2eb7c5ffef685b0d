//go:build !integration

package postgres

import (
	"encoding/json"
	"testing"
	"time"

	"localGuide/domain"

	"gorm.io/datatypes"
)

func TestTextArray(t *testing.T) {
	tests := []struct {
		in   []string
		want string
	}{
		{nil, "{}"},
		{[]string{"cafes"}, `{"cafes"}`},
		{[]string{"fine-dining", "bars"}, `{"fine-dining","bars"}`},
		{[]string{`a"b`, `c\d`}, `{"a\"b","c\\d"}`},
	}

	for _, tt := range tests {
		if got := textArray(tt.in); got != tt.want {
			t.Errorf("textArray(%q) = %s, want %s", tt.in, got, tt.want)
		}
	}
}

func TestPercentiles_KeepsNumericEntries(t *testing.T) {
	got := percentiles(datatypes.JSONMap{
		"punctuality":        float64(72),
		"friendliness":       json.Number("64.5"),
		"trustworthiness":    "90",
		"cost-effectiveness": nil,
	})

	if got["punctuality"] != 72 || got["friendliness"] != 64.5 || got["trustworthiness"] != 90 {
		t.Errorf("unexpected percentiles: %v", got)
	}
	if _, ok := got["cost-effectiveness"]; ok {
		t.Error("null metric must stay absent")
	}

	if percentiles(nil) != nil {
		t.Error("nil jsonb must map to nil percentiles")
	}
}

func TestToCandidate_FlattensStats(t *testing.T) {
	sub := "coffee-shops"
	price := "$"
	verified := false
	created := time.Date(2026, 10, 1, 9, 0, 0, 0, time.UTC)

	c := toCandidate(domain.Business{
		ID:            "b1",
		Name:          "Bean There",
		Category:      "food",
		SubInterestID: &sub,
		PriceRange:    &price,
		Verified:      &verified,
		CreatedAt:     created,
		Stats: &domain.BusinessStats{
			BusinessID:    "b1",
			TotalReviews:  12,
			AverageRating: 4.3,
			Percentiles:   datatypes.JSONMap{"punctuality": float64(81)},
		},
	})

	if c.SubInterestID != "coffee-shops" || c.PriceRange != "$" || c.InterestID != "" {
		t.Errorf("taxonomy not flattened: %+v", c)
	}
	if c.Verified == nil || *c.Verified {
		t.Error("explicit unverified flag must survive")
	}
	if c.TotalReviews != 12 || c.AverageRating != 4.3 || c.Percentiles["punctuality"] != 81 {
		t.Errorf("stats not flattened: %+v", c)
	}

	bare := toCandidate(domain.Business{ID: "b2"})
	if bare.Verified != nil || bare.TotalReviews != 0 || bare.Percentiles != nil {
		t.Errorf("missing stats must stay absent: %+v", bare)
	}
}
