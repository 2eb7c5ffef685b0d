package rest

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"localGuide/business/feed"
	"localGuide/domain"
	"localGuide/pkg/logger"
	"localGuide/pkg/metrics"

	"github.com/AMFarhan21/fres"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
)

type (
	BusinessService interface {
		MixedFeed(ctx context.Context, req domain.FeedRequest) (domain.MixedFeed, error)
		ListBusinesses(ctx context.Context, req domain.FeedRequest) (domain.BusinessPage, error)
		GetBusiness(ctx context.Context, id string) (domain.BusinessCard, error)
	}

	BusinessHandler struct {
		businessService BusinessService
		validate        *validator.Validate
		timeout         time.Duration
	}

	// ListBusinessesQuery keeps every field a string so malformed numbers
	// can be handled leniently or rejected by the validator.
	ListBusinessesQuery struct {
		FeedStrategy         string `query:"feed_strategy"`
		Limit                string `query:"limit"`
		Category             string `query:"category"`
		Badge                string `query:"badge"`
		Verified             string `query:"verified"`
		PriceRange           string `query:"price_range"`
		PreferredPriceRanges string `query:"preferred_price_ranges"`
		Location             string `query:"location"`
		MinRating            string `query:"min_rating" validate:"omitempty,numeric"`
		InterestIDs          string `query:"interest_ids"`
		SubInterestIDs       string `query:"sub_interest_ids"`
		Dealbreakers         string `query:"dealbreakers"`
		Lat                  string `query:"lat" validate:"omitempty,latitude"`
		Lng                  string `query:"lng" validate:"omitempty,longitude"`
		Cursor               string `query:"cursor"`
	}
)

func NewBusinessHandler(svc BusinessService, timeout time.Duration) *BusinessHandler {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &BusinessHandler{
		businessService: svc,
		validate:        validator.New(),
		timeout:         timeout,
	}
}

func (q ListBusinessesQuery) toFeedRequest(userID string) domain.FeedRequest {
	req := domain.FeedRequest{
		UserID:               userID,
		Strategy:             strings.ToLower(strings.TrimSpace(q.FeedStrategy)),
		Limit:                feed.ClampPageLimit(parseLimit(q.Limit)),
		Category:             strings.TrimSpace(q.Category),
		Badge:                strings.TrimSpace(q.Badge),
		VerifiedOnly:         q.Verified == "true",
		PriceRange:           strings.TrimSpace(q.PriceRange),
		PreferredPriceRanges: feed.SplitCSV(q.PreferredPriceRanges),
		Location:             strings.TrimSpace(q.Location),
		InterestIDs:          feed.SplitCSV(q.InterestIDs),
		SubInterestIDs:       feed.SplitCSV(q.SubInterestIDs),
		Dealbreakers:         feed.SplitCSV(q.Dealbreakers),
		Cursor:               q.Cursor,
	}
	if req.Strategy != domain.FeedStrategyMixed {
		req.Strategy = domain.FeedStrategyStandard
	}
	if v, err := strconv.ParseFloat(q.MinRating, 64); err == nil && v > 0 {
		req.MinRating = v
	}
	req.Latitude = parseCoordinate(q.Lat)
	req.Longitude = parseCoordinate(q.Lng)

	return req
}

// unknownDealbreakers returns the requested ids the feed has no rule for.
func unknownDealbreakers(ids []string) []string {
	var out []string
	for _, id := range ids {
		if !feed.KnownDealbreaker(id) {
			out = append(out, id)
		}
	}
	return out
}

func logUnknownDealbreakers(req domain.FeedRequest) {
	if unknown := unknownDealbreakers(req.Dealbreakers); len(unknown) > 0 {
		logger.Debug("ignoring unknown dealbreakers", "user_id", req.UserID, "dealbreakers", unknown)
	}
}

func parseLimit(raw string) int {
	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return feed.DefaultPageLimit
	}
	if n < 1 {
		return 1
	}
	return n
}

func parseCoordinate(raw string) *float64 {
	if raw == "" {
		return nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return nil
	}
	return &v
}

func userIDFrom(c echo.Context) string {
	id, _ := c.Get("user_id").(string)
	return id
}

func (h *BusinessHandler) bindQuery(c echo.Context) (ListBusinessesQuery, error) {
	var q ListBusinessesQuery
	if err := (&echo.DefaultBinder{}).BindQueryParams(c, &q); err != nil {
		return q, err
	}
	if err := h.validate.Struct(&q); err != nil {
		return q, err
	}
	return q, nil
}

// ListBusinesses serves both the mixed feed and the keyset-paginated
// standard listing, selected by feed_strategy.
func (h *BusinessHandler) ListBusinesses(c echo.Context) error {
	q, err := h.bindQuery(c)
	if err != nil {
		logger.Error("Invalid listing query", err)
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	req := q.toFeedRequest(userIDFrom(c))
	logUnknownDealbreakers(req)
	if req.Strategy == domain.FeedStrategyMixed {
		return h.mixedFeed(c, req)
	}

	return h.standardListing(c, req)
}

// ForYou always runs the mixed strategy for the authenticated caller.
func (h *BusinessHandler) ForYou(c echo.Context) error {
	userID := userIDFrom(c)
	if userID == "" {
		return c.JSON(http.StatusUnauthorized, ResponseError{Message: "unauthorized"})
	}

	q, err := h.bindQuery(c)
	if err != nil {
		logger.Error("Invalid for-you query", err)
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	req := q.toFeedRequest(userID)
	req.Strategy = domain.FeedStrategyMixed
	logUnknownDealbreakers(req)

	return h.mixedFeed(c, req)
}

func (h *BusinessHandler) mixedFeed(c echo.Context, req domain.FeedRequest) error {
	timer := prometheus.NewTimer(metrics.ListingLatency.WithLabelValues(domain.FeedStrategyMixed))
	defer timer.ObserveDuration()

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	result, err := h.businessService.MixedFeed(ctx, req)
	if err != nil {
		logger.Error("Failed to build mixed feed", err, "trace_id", feed.TraceIDFromContext(ctx))
		metrics.ListingRequests.WithLabelValues(domain.FeedStrategyMixed, "error").Inc()
		return c.JSON(http.StatusInternalServerError, ResponseError{Message: "failed to fetch businesses"})
	}

	metrics.ListingRequests.WithLabelValues(domain.FeedStrategyMixed, "ok").Inc()
	return c.JSON(http.StatusOK, result)
}

func (h *BusinessHandler) standardListing(c echo.Context, req domain.FeedRequest) error {
	timer := prometheus.NewTimer(metrics.ListingLatency.WithLabelValues(domain.FeedStrategyStandard))
	defer timer.ObserveDuration()

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	page, err := h.businessService.ListBusinesses(ctx, req)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidCursor) {
			metrics.ListingRequests.WithLabelValues(domain.FeedStrategyStandard, "bad_request").Inc()
			return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
		}
		logger.Error("Failed to list businesses", err, "trace_id", feed.TraceIDFromContext(ctx))
		metrics.ListingRequests.WithLabelValues(domain.FeedStrategyStandard, "error").Inc()
		return c.JSON(http.StatusInternalServerError, ResponseError{Message: "failed to fetch businesses"})
	}

	metrics.ListingRequests.WithLabelValues(domain.FeedStrategyStandard, "ok").Inc()
	return c.JSON(http.StatusOK, page)
}

func (h *BusinessHandler) GetBusiness(c echo.Context) error {
	id := c.Param("id")
	if _, err := uuid.Parse(id); err != nil {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: "invalid business id"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	card, err := h.businessService.GetBusiness(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrBusinessNotFound) {
			return c.JSON(http.StatusNotFound, ResponseError{Message: err.Error()})
		}
		logger.Error("Failed to find business", err)
		return c.JSON(http.StatusInternalServerError, ResponseError{Message: "failed to fetch business"})
	}

	return c.JSON(http.StatusOK, fres.Response.StatusOK(card))
}
