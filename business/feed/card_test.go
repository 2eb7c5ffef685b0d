//go:build !integration

package feed

import (
	"testing"

	"localGuide/domain"
)

func TestToCard_RoundsAndDefaults(t *testing.T) {
	card := ToCard(domain.BusinessCandidate{
		ID:            "b1",
		Name:          "Bean There",
		SubInterestID: "coffee_shops",
		Category:      "food",
		AverageRating: 4.26,
		TotalReviews:  7,
		Badge:         "Top Pick",
		UploadedImage: "uploads/b1.png",
		Percentiles:   map[string]float64{"punctuality": 91},
	})

	if card.Rating == nil || *card.Rating != 4.5 {
		t.Errorf("rating = %v, want 4.5", card.Rating)
	}
	if card.Badge != "" {
		t.Errorf("badge must be hidden for unverified businesses, got %q", card.Badge)
	}
	if card.PriceRange != "$$" {
		t.Errorf("price range = %q, want $$", card.PriceRange)
	}
	if card.SubInterestLabel != "Coffee Shops" {
		t.Errorf("label = %q, want Coffee Shops", card.SubInterestLabel)
	}
	if card.Image != "uploads/b1.png" {
		t.Errorf("image = %q, want uploaded image fallback", card.Image)
	}
	if card.Percentiles["punctuality"] != 91 || card.Percentiles["friendliness"] != 85 ||
		card.Percentiles["trustworthiness"] != 85 || card.Percentiles["cost-effectiveness"] != 85 {
		t.Errorf("percentiles = %v", card.Percentiles)
	}
}

func TestToCard_VerifiedBadgeAndMissingRating(t *testing.T) {
	card := ToCard(domain.BusinessCandidate{
		ID:         "b2",
		Category:   "fine-dining",
		Verified:   boolPtr(true),
		Badge:      "Local Legend",
		PriceRange: "$$$",
	})

	if card.Rating != nil {
		t.Errorf("rating must be omitted when zero, got %v", *card.Rating)
	}
	if card.Badge != "Local Legend" || !card.Verified {
		t.Errorf("verified badge lost: %+v", card)
	}
	if card.PriceRange != "$$$" {
		t.Errorf("price range = %q", card.PriceRange)
	}
	if card.SubInterestLabel != "Fine Dining" {
		t.Errorf("label = %q, want category-derived Fine Dining", card.SubInterestLabel)
	}
}

func TestToCards_EmptyIsNonNil(t *testing.T) {
	if cards := ToCards(nil); cards == nil || len(cards) != 0 {
		t.Fatalf("expected empty non-nil slice, got %v", cards)
	}
}
