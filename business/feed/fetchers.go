package feed

import (
	"context"
	"errors"
	"fmt"

	"localGuide/domain"
	"localGuide/pkg/logger"

	"github.com/sony/gobreaker/v2"
)

const (
	bucketPersonal = "personal"
	bucketTopRated = "top_rated"
	bucketExplore  = "explore"
)

// bucketOptions is what every fetcher needs to retrieve one bucket.
type bucketOptions struct {
	filters        domain.FeedFilters
	userID         string
	interestIDs    []string
	subInterestIDs []string
	dealbreakers   []string
	latitude       *float64
	longitude      *float64
	minRating      float64
	limit          int
}

type fetchFunc func(ctx context.Context, opts bucketOptions) ([]domain.BusinessCandidate, error)

type fetchResult struct {
	items    []domain.BusinessCandidate
	err      error
	panicked bool
}

// fetchBucket runs one fetcher under the per-fetch timeout. It never fails:
// errors, timeouts and panics all resolve to an empty bucket. Results that
// arrive after the deadline are discarded even if the fetcher ignored ctx.
func (s *Service) fetchBucket(ctx context.Context, bucket string, opts bucketOptions, fetch fetchFunc) []domain.BusinessCandidate {
	ctx, cancel := context.WithTimeout(ctx, s.cfg.FetchTimeout)
	defer cancel()

	done := make(chan fetchResult, 1)
	go func() {
		defer func() {
			if rec := recover(); rec != nil {
				logger.Error("candidate fetch panicked",
					"trace_id", TraceIDFromContext(ctx),
					"bucket", bucket,
					"panic", rec,
				)
				done <- fetchResult{panicked: true}
			}
		}()
		items, err := fetch(ctx, opts)
		done <- fetchResult{items: items, err: err}
	}()

	var res fetchResult
	select {
	case res = <-done:
	case <-ctx.Done():
	}
	if res.err == nil && !res.panicked && ctx.Err() != nil {
		res = fetchResult{err: fmt.Errorf("%s bucket: %w", bucket, ctx.Err())}
	}

	switch {
	case res.panicked:
		fetchFailuresTotal.WithLabelValues(bucket, "panic").Inc()
		return []domain.BusinessCandidate{}
	case res.err != nil:
		logger.Warn("candidate fetch failed, serving empty bucket",
			"trace_id", TraceIDFromContext(ctx),
			"bucket", bucket,
			"error", res.err,
		)
		fetchFailuresTotal.WithLabelValues(bucket, failureReason(res.err)).Inc()
		return []domain.BusinessCandidate{}
	}

	items := res.items
	if items == nil {
		items = []domain.BusinessCandidate{}
	}
	bucketCandidates.WithLabelValues(bucket).Observe(float64(len(items)))
	return items
}

// fetchPersonal prefers the personalization procedure and falls back to a
// plain affinity query when it is missing, failing or tripped.
func (s *Service) fetchPersonal(ctx context.Context, opts bucketOptions) ([]domain.BusinessCandidate, error) {
	if len(opts.subInterestIDs) > 0 || len(opts.interestIDs) > 0 {
		rows, err := s.recommendPersonalized(ctx, opts)
		if err == nil {
			rows = filterMatching(rows, opts.filters)
			rows = FilterByDealbreakers(rows, opts.dealbreakers)
			return truncate(rows, opts.limit), nil
		}

		reason := failureReason(err)
		personalizationFallbacks.WithLabelValues(reason).Inc()
		if errors.Is(err, domain.ErrProcedureUnavailable) || errors.Is(err, gobreaker.ErrOpenState) {
			logger.Debug("personalization procedure skipped, using fallback query",
				"trace_id", TraceIDFromContext(ctx),
				"reason", reason,
			)
		} else {
			logger.Warn("personalization procedure failed, using fallback query",
				"trace_id", TraceIDFromContext(ctx),
				"error", err,
			)
		}
		if ctx.Err() != nil {
			return nil, fmt.Errorf("context error: %w", ctx.Err())
		}
	}

	q := domain.CandidateQuery{
		Filters: opts.filters,
		OrderBy: domain.OrderByRating,
		Limit:   opts.limit,
	}
	switch {
	case opts.filters.Category != "":
		// category is already part of the shared filters
	case len(opts.subInterestIDs) > 0:
		q.SubInterestIDs = opts.subInterestIDs
	case len(opts.interestIDs) > 0:
		q.InterestIDs = opts.interestIDs
	}

	rows, err := s.businessRepo.FindCandidates(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("personal matches query: %w", err)
	}

	rows = filterMinRating(rows, opts.minRating)
	rows = FilterByDealbreakers(rows, opts.dealbreakers)

	return truncate(sortByScore(rows, personalScore, s.now()), opts.limit), nil
}

func (s *Service) recommendPersonalized(ctx context.Context, opts bucketOptions) ([]domain.BusinessCandidate, error) {
	params := domain.PersonalizationParams{
		UserID:         opts.userID,
		InterestIDs:    opts.interestIDs,
		SubInterestIDs: opts.subInterestIDs,
		Latitude:       opts.latitude,
		Longitude:      opts.longitude,
		PriceRanges:    opts.filters.PriceRanges,
		MinRating:      opts.minRating,
		Limit:          opts.limit,
	}

	return s.breaker.Execute(func() ([]domain.BusinessCandidate, error) {
		return s.businessRepo.RecommendPersonalized(ctx, s.cfg.PersonalizationProcedure, params)
	})
}

func (s *Service) fetchTopRated(ctx context.Context, opts bucketOptions) ([]domain.BusinessCandidate, error) {
	rows, err := s.businessRepo.FindCandidates(ctx, domain.CandidateQuery{
		Filters: opts.filters,
		OrderBy: domain.OrderByRating,
		Limit:   opts.limit,
	})
	if err != nil {
		return nil, fmt.Errorf("top rated query: %w", err)
	}

	rows = FilterByDealbreakers(rows, opts.dealbreakers)

	return truncate(sortByScore(rows, topRatedScore, s.now()), opts.limit), nil
}

// fetchExplore reads newest first so freshness wins before scoring does.
func (s *Service) fetchExplore(ctx context.Context, opts bucketOptions) ([]domain.BusinessCandidate, error) {
	rows, err := s.businessRepo.FindCandidates(ctx, domain.CandidateQuery{
		Filters: opts.filters,
		OrderBy: domain.OrderByNewest,
		Limit:   opts.limit,
	})
	if err != nil {
		return nil, fmt.Errorf("explore query: %w", err)
	}

	rows = FilterByDealbreakers(rows, opts.dealbreakers)

	return truncate(sortByScore(rows, exploreScore, s.now()), opts.limit), nil
}

func filterMatching(rows []domain.BusinessCandidate, f domain.FeedFilters) []domain.BusinessCandidate {
	out := make([]domain.BusinessCandidate, 0, len(rows))
	for _, r := range rows {
		if Matches(f, r) {
			out = append(out, r)
		}
	}
	return out
}

func filterMinRating(rows []domain.BusinessCandidate, minRating float64) []domain.BusinessCandidate {
	if minRating <= 0 {
		return rows
	}
	out := make([]domain.BusinessCandidate, 0, len(rows))
	for _, r := range rows {
		if r.AverageRating >= minRating {
			out = append(out, r)
		}
	}
	return out
}

func truncate(rows []domain.BusinessCandidate, limit int) []domain.BusinessCandidate {
	if limit >= 0 && len(rows) > limit {
		return rows[:limit]
	}
	return rows
}

func failureReason(err error) string {
	switch {
	case errors.Is(err, context.DeadlineExceeded):
		return "timeout"
	case errors.Is(err, context.Canceled):
		return "canceled"
	case errors.Is(err, gobreaker.ErrOpenState), errors.Is(err, gobreaker.ErrTooManyRequests):
		return "breaker_open"
	case errors.Is(err, domain.ErrProcedureUnavailable):
		return "unavailable"
	default:
		return "error"
	}
}
