package feed

import (
	"context"
	"sort"
	"time"

	"localGuide/domain"
	"localGuide/pkg/logger"
)

// PrioritizeRecentlyReviewed moves businesses the user reviewed inside the
// recency window to the front, most recently reviewed first. The result is
// always a permutation of blended; any lookup failure returns it unchanged.
func (s *Service) PrioritizeRecentlyReviewed(
	ctx context.Context,
	blended []domain.BusinessCandidate,
	userID string,
) []domain.BusinessCandidate {

	if userID == "" || len(blended) == 0 || s.reviewRepo == nil {
		return blended
	}

	since := s.now().Add(-s.cfg.RecentReviewWindow)
	reviews, err := s.reviewRepo.FindRecentByUser(ctx, userID, since)
	if err != nil {
		logger.Warn("recent reviews lookup failed, keeping blended order",
			"trace_id", TraceIDFromContext(ctx),
			"user_id", userID,
			"error", err,
		)
		return blended
	}

	return reorderByReviews(blended, reviews, since)
}

func reorderByReviews(
	blended []domain.BusinessCandidate,
	reviews []domain.RecentReview,
	since time.Time,
) []domain.BusinessCandidate {

	latestByID := make(map[string]time.Time)
	latestBySlug := make(map[string]time.Time)
	for _, r := range reviews {
		if r.CreatedAt.Before(since) {
			continue
		}
		if r.BusinessID != "" && r.CreatedAt.After(latestByID[r.BusinessID]) {
			latestByID[r.BusinessID] = r.CreatedAt
		}
		if r.BusinessSlug != "" && r.CreatedAt.After(latestBySlug[r.BusinessSlug]) {
			latestBySlug[r.BusinessSlug] = r.CreatedAt
		}
	}
	if len(latestByID) == 0 && len(latestBySlug) == 0 {
		return blended
	}

	type reviewed struct {
		candidate  domain.BusinessCandidate
		reviewedAt time.Time
	}

	var front []reviewed
	rest := make([]domain.BusinessCandidate, 0, len(blended))
	for _, c := range blended {
		at, ok := latestByID[c.ID]
		if c.Slug != "" {
			if slugAt, slugOK := latestBySlug[c.Slug]; slugOK && (!ok || slugAt.After(at)) {
				at, ok = slugAt, true
			}
		}
		if ok {
			front = append(front, reviewed{candidate: c, reviewedAt: at})
			continue
		}
		rest = append(rest, c)
	}
	if len(front) == 0 {
		return blended
	}

	sort.SliceStable(front, func(i, j int) bool {
		return front[i].reviewedAt.After(front[j].reviewedAt)
	})

	out := make([]domain.BusinessCandidate, 0, len(blended))
	for _, r := range front {
		out = append(out, r.candidate)
	}
	out = append(out, rest...)

	recencyReorders.Inc()
	return out
}
