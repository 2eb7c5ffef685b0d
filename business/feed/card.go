package feed

import (
	"math"
	"strings"
	"unicode"

	"localGuide/domain"
)

const (
	defaultCardPriceRange = "$$"
	defaultCardPercentile = 85.0
)

// ToCard maps a candidate to the public listing shape.
func ToCard(c domain.BusinessCandidate) domain.BusinessCard {
	card := domain.BusinessCard{
		ID:                   c.ID,
		Slug:                 c.Slug,
		Name:                 c.Name,
		Image:                c.ImageURL,
		Category:             c.Category,
		InterestID:           c.InterestID,
		SubInterestID:        c.SubInterestID,
		SubInterestLabel:     subInterestLabel(c),
		Location:             c.Location,
		Reviews:              c.TotalReviews,
		Verified:             c.IsVerified(),
		PriceRange:           c.PriceRange,
		Percentiles:          make(map[string]float64, len(domain.PercentileMetrics)),
		PersonalizationScore: c.PersonalizationScore,
		CreatedAt:            c.CreatedAt,
	}

	if card.Image == "" {
		card.Image = c.UploadedImage
	}

	if rating := math.Round(c.AverageRating*2) / 2; rating > 0 {
		card.Rating = &rating
	}

	if card.Verified && c.Badge != "" {
		card.Badge = c.Badge
	}

	if card.PriceRange == "" {
		card.PriceRange = defaultCardPriceRange
	}

	for _, metric := range domain.PercentileMetrics {
		if v, ok := c.Percentiles[metric]; ok {
			card.Percentiles[metric] = v
			continue
		}
		card.Percentiles[metric] = defaultCardPercentile
	}

	return card
}

func ToCards(candidates []domain.BusinessCandidate) []domain.BusinessCard {
	cards := make([]domain.BusinessCard, 0, len(candidates))
	for _, c := range candidates {
		cards = append(cards, ToCard(c))
	}
	return cards
}

// subInterestLabel turns "fine-dining" or "fine_dining" into "Fine Dining".
func subInterestLabel(c domain.BusinessCandidate) string {
	raw := c.SubInterestID
	if raw == "" {
		raw = c.Category
	}

	words := strings.FieldsFunc(raw, func(r rune) bool {
		return r == '-' || r == '_'
	})
	for i, w := range words {
		runes := []rune(w)
		runes[0] = unicode.ToUpper(runes[0])
		words[i] = string(runes)
	}

	return strings.Join(words, " ")
}
