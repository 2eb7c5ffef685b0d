package feed

import (
	"math"
	"sort"
	"time"

	"localGuide/domain"
)

// recencyBoost = multiplier / max(days since created, 1); 0 without a date.
func recencyBoost(createdAt time.Time, multiplier float64, now time.Time) float64 {
	if createdAt.IsZero() {
		return 0
	}
	days := now.Sub(createdAt).Hours() / 24
	if days < 1 {
		days = 1
	}
	return multiplier / days
}

func flag(b bool, weight float64) float64 {
	if b {
		return weight
	}
	return 0
}

func reviewCount(c domain.BusinessCandidate) float64 {
	return math.Max(float64(c.TotalReviews), 1)
}

func personalScore(c domain.BusinessCandidate, now time.Time) float64 {
	return c.AverageRating*2.2 +
		math.Log(reviewCount(c)+1) +
		recencyBoost(c.CreatedAt, 1.2, now) +
		flag(c.IsVerified(), 0.4) +
		flag(c.HasPhoto(), 0.2)
}

func topRatedScore(c domain.BusinessCandidate, _ time.Time) float64 {
	return c.AverageRating*2.5 +
		math.Log(reviewCount(c)+1.5) +
		flag(c.IsVerified(), 0.5)
}

func exploreScore(c domain.BusinessCandidate, now time.Time) float64 {
	return recencyBoost(c.CreatedAt, 2.5, now) +
		flag(c.TotalReviews < 10, 1.2) +
		c.AverageRating*0.8 +
		flag(c.HasPhoto(), 0.4) +
		flag(c.IsVerified(), 0.3)
}

type scoreFunc func(c domain.BusinessCandidate, now time.Time) float64

// sortByScore orders candidates best first. Ties keep storage order.
func sortByScore(candidates []domain.BusinessCandidate, score scoreFunc, now time.Time) []domain.BusinessCandidate {
	scores := make(map[string]float64, len(candidates))
	for _, c := range candidates {
		scores[c.ID] = score(c, now)
	}

	out := make([]domain.BusinessCandidate, len(candidates))
	copy(out, candidates)
	sort.SliceStable(out, func(i, j int) bool {
		return scores[out[i].ID] > scores[out[j].ID]
	})

	return out
}
