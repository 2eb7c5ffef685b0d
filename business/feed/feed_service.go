package feed

import (
	"context"
	"errors"
	"fmt"
	"time"

	"localGuide/domain"
	"localGuide/pkg/logger"

	"github.com/sony/gobreaker/v2"
	"golang.org/x/sync/errgroup"
)

// ---- Repository interfaces ----

type BusinessRepository interface {
	FindCandidates(ctx context.Context, q domain.CandidateQuery) ([]domain.BusinessCandidate, error)
	RecommendPersonalized(ctx context.Context, procedure string, p domain.PersonalizationParams) ([]domain.BusinessCandidate, error)
	FindPage(ctx context.Context, q domain.PageQuery) ([]domain.BusinessCandidate, error)
	FindByID(ctx context.Context, id string) (domain.BusinessCandidate, error)
}

type ReviewRepository interface {
	FindRecentByUser(ctx context.Context, userID string, since time.Time) ([]domain.RecentReview, error)
}

type PreferenceRepository interface {
	GetUserPreferences(ctx context.Context, userID string) (domain.UserPreferences, error)
}

// ---- Service ----

type Service struct {
	businessRepo BusinessRepository
	reviewRepo   ReviewRepository
	prefRepo     PreferenceRepository
	cfg          Config
	breaker      *gobreaker.CircuitBreaker[[]domain.BusinessCandidate]
	now          func() time.Time
}

func NewService(
	businessRepo BusinessRepository,
	reviewRepo ReviewRepository,
	prefRepo PreferenceRepository,
	cfg Config,
) *Service {
	cfg = cfg.withDefaults()

	return &Service{
		businessRepo: businessRepo,
		reviewRepo:   reviewRepo,
		prefRepo:     prefRepo,
		cfg:          cfg,
		breaker:      newPersonalizationBreaker(cfg),
		now:          time.Now,
	}
}

func newPersonalizationBreaker(cfg Config) *gobreaker.CircuitBreaker[[]domain.BusinessCandidate] {
	return gobreaker.NewCircuitBreaker[[]domain.BusinessCandidate](gobreaker.Settings{
		Name:        "personalization-procedure",
		MaxRequests: 1,
		Timeout:     cfg.BreakerCooldown,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= cfg.BreakerFailureThreshold
		},
		// client cancellations do not count against the procedure
		IsSuccessful: func(err error) bool {
			return err == nil || errors.Is(err, context.Canceled)
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			logger.Info("circuit breaker state changed", "breaker", name, "from", from.String(), "to", to.String())
		},
	})
}

// MixedFeed builds one page of the blended for-you feed. Bucket failures
// only thin the page; an error is returned only when the request itself is
// already dead or the pipeline panics.
func (s *Service) MixedFeed(ctx context.Context, req domain.FeedRequest) (out domain.MixedFeed, err error) {
	if err := ctx.Err(); err != nil {
		return domain.MixedFeed{}, fmt.Errorf("context error: %w", err)
	}

	defer func() {
		if rec := recover(); rec != nil {
			logger.Error("mixed feed panicked", "trace_id", TraceIDFromContext(ctx), "panic", rec)
			out = domain.MixedFeed{}
			err = fmt.Errorf("mixed feed: unexpected failure: %v", rec)
		}
	}()

	limit := ClampPageLimit(req.Limit)
	req = s.withStoredPreferences(ctx, req)

	opts := bucketOptions{
		filters:        BuildFilters(req),
		userID:         req.UserID,
		interestIDs:    req.InterestIDs,
		subInterestIDs: req.SubInterestIDs,
		dealbreakers:   req.Dealbreakers,
		latitude:       req.Latitude,
		longitude:      req.Longitude,
		minRating:      req.MinRating,
		limit:          s.cfg.bucketLimit(limit),
	}

	var personal, topRated, explore []domain.BusinessCandidate

	// each branch resolves to a bucket, never to an error
	var g errgroup.Group
	g.Go(func() error {
		personal = s.fetchBucket(ctx, bucketPersonal, opts, s.fetchPersonal)
		return nil
	})
	g.Go(func() error {
		topRated = s.fetchBucket(ctx, bucketTopRated, opts, s.fetchTopRated)
		return nil
	})
	g.Go(func() error {
		explore = s.fetchBucket(ctx, bucketExplore, opts, s.fetchExplore)
		return nil
	})
	_ = g.Wait()

	blended := Mix(personal, topRated, explore, limit)
	prioritized := s.PrioritizeRecentlyReviewed(ctx, blended, req.UserID)

	buckets := domain.BucketCounts{
		PersonalMatches: len(personal),
		TopRated:        len(topRated),
		Explore:         len(explore),
	}

	logger.Info("mixed_feed",
		"trace_id", TraceIDFromContext(ctx),
		"user_id", req.UserID,
		"limit", limit,
		"bucket_limit", opts.limit,
		"personal", buckets.PersonalMatches,
		"top_rated", buckets.TopRated,
		"explore", buckets.Explore,
		"returned", len(prioritized),
	)

	return domain.MixedFeed{
		Data: ToCards(prioritized),
		Meta: domain.MixedFeedMeta{
			FeedStrategy: domain.FeedStrategyMixed,
			Limit:        limit,
			Count:        len(prioritized),
			Buckets:      buckets,
		},
	}, nil
}

// withStoredPreferences fills affinity, dealbreakers and price preferences
// the request left out from what the user saved during onboarding.
func (s *Service) withStoredPreferences(ctx context.Context, req domain.FeedRequest) domain.FeedRequest {
	if req.UserID == "" || s.prefRepo == nil {
		return req
	}

	needAffinity := len(req.InterestIDs) == 0 && len(req.SubInterestIDs) == 0
	needDealbreakers := len(req.Dealbreakers) == 0
	needPrices := len(req.PreferredPriceRanges) == 0
	if !needAffinity && !needDealbreakers && !needPrices {
		return req
	}

	prefs, err := s.prefRepo.GetUserPreferences(ctx, req.UserID)
	if err != nil {
		logger.Warn("user preferences lookup failed",
			"trace_id", TraceIDFromContext(ctx),
			"user_id", req.UserID,
			"error", err,
		)
		return req
	}
	if prefs.IsEmpty() {
		return req
	}

	if needAffinity {
		req.InterestIDs = prefs.InterestIDs
		req.SubInterestIDs = prefs.SubInterestIDs
	}
	if needDealbreakers {
		req.Dealbreakers = prefs.Dealbreakers
	}
	if needPrices {
		req.PreferredPriceRanges = prefs.PreferredPriceRanges
	}

	return req
}

// ListBusinesses serves the standard keyset-paginated listing.
func (s *Service) ListBusinesses(ctx context.Context, req domain.FeedRequest) (domain.BusinessPage, error) {
	if err := ctx.Err(); err != nil {
		return domain.BusinessPage{}, fmt.Errorf("context error: %w", err)
	}

	limit := ClampPageLimit(req.Limit)

	var after *domain.PageCursor
	if req.Cursor != "" {
		c, err := DecodeCursor(req.Cursor)
		if err != nil {
			return domain.BusinessPage{}, err
		}
		after = &c
	}

	rows, err := s.businessRepo.FindPage(ctx, domain.PageQuery{
		Filters:   BuildFilters(req),
		MinRating: req.MinRating,
		After:     after,
		Limit:     limit + 1,
	})
	if err != nil {
		logger.Error("failed to list businesses", "trace_id", TraceIDFromContext(ctx), "error", err)
		return domain.BusinessPage{}, fmt.Errorf("list businesses: %w", err)
	}

	hasMore := len(rows) > limit
	if hasMore {
		rows = rows[:limit]
	}

	meta := domain.PageMeta{
		FeedStrategy: domain.FeedStrategyStandard,
		Limit:        limit,
		Count:        len(rows),
		HasMore:      hasMore,
	}
	if hasMore {
		last := rows[len(rows)-1]
		meta.NextCursor = EncodeCursor(domain.PageCursor{CreatedAt: last.CreatedAt, ID: last.ID})
	}

	return domain.BusinessPage{Data: ToCards(rows), Meta: meta}, nil
}

func (s *Service) GetBusiness(ctx context.Context, id string) (domain.BusinessCard, error) {
	if err := ctx.Err(); err != nil {
		return domain.BusinessCard{}, fmt.Errorf("context error: %w", err)
	}
	if id == "" {
		return domain.BusinessCard{}, domain.ErrBusinessNotFound
	}

	c, err := s.businessRepo.FindByID(ctx, id)
	if err != nil {
		if !errors.Is(err, domain.ErrBusinessNotFound) {
			logger.Error("failed to find business", "trace_id", TraceIDFromContext(ctx), "business_id", id, "error", err)
		}
		return domain.BusinessCard{}, err
	}

	return ToCard(c), nil
}
