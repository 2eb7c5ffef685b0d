package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"localGuide/business/feed"
	"localGuide/domain"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

const pgUndefinedFunction = "42883"

var procedureName = regexp.MustCompile(`^[a-z_][a-z0-9_]*$`)

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

type BusinessRepository struct {
	DB *gorm.DB
}

var _ feed.BusinessRepository = (*BusinessRepository)(nil)

func NewBusinessRepository(db *gorm.DB) *BusinessRepository {
	return &BusinessRepository{
		DB: db,
	}
}

// withStats selects businesses LEFT JOINed with business_stats as "Stats".
func (r *BusinessRepository) withStats(ctx context.Context) *gorm.DB {
	return r.DB.WithContext(ctx).Model(&domain.Business{}).Joins("Stats")
}

// commonFilters applies the predicates shared by every listing query.
func commonFilters(f domain.FeedFilters) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if f.Category != "" {
			db = db.Where("businesses.category = ?", f.Category)
		}
		if f.Badge != "" {
			db = db.Where("businesses.badge = ?", f.Badge)
		}
		if f.VerifiedOnly {
			db = db.Where("businesses.verified = ?", true)
		}
		if len(f.PriceRanges) > 0 {
			db = db.Where("businesses.price_range IN ?", f.PriceRanges)
		}
		if f.Location != "" {
			db = db.Where("businesses.location ILIKE ?", "%"+likeEscaper.Replace(f.Location)+"%")
		}
		return db
	}
}

func (r *BusinessRepository) FindCandidates(ctx context.Context, q domain.CandidateQuery) ([]domain.BusinessCandidate, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}

	db := r.withStats(ctx).Scopes(commonFilters(q.Filters))

	if len(q.SubInterestIDs) > 0 {
		db = db.Where("businesses.sub_interest_id IN ?", q.SubInterestIDs)
	} else if len(q.InterestIDs) > 0 {
		db = db.Where("businesses.interest_id IN ?", q.InterestIDs)
	}

	switch q.OrderBy {
	case domain.OrderByNewest:
		db = db.Order("businesses.created_at DESC").Order("businesses.id DESC")
	default:
		db = db.Order(`COALESCE("Stats"."average_rating", 0) DESC`).
			Order(`COALESCE("Stats"."total_reviews", 0) DESC`).
			Order("businesses.id")
	}

	if q.Limit > 0 {
		db = db.Limit(q.Limit)
	}

	var businesses []domain.Business
	if err := db.Find(&businesses).Error; err != nil {
		return nil, fmt.Errorf("failed to query candidates: %w", err)
	}

	return toCandidates(businesses), nil
}

type personalizedRow struct {
	ID                   string            `gorm:"column:id"`
	Name                 string            `gorm:"column:name"`
	Slug                 *string           `gorm:"column:slug"`
	Category             *string           `gorm:"column:category"`
	InterestID           *string           `gorm:"column:interest_id"`
	SubInterestID        *string           `gorm:"column:sub_interest_id"`
	PriceRange           *string           `gorm:"column:price_range"`
	Verified             *bool             `gorm:"column:verified"`
	Badge                *string           `gorm:"column:badge"`
	Location             *string           `gorm:"column:location"`
	ImageURL             *string           `gorm:"column:image_url"`
	UploadedImage        *string           `gorm:"column:uploaded_image"`
	CreatedAt            *time.Time        `gorm:"column:created_at"`
	AverageRating        *float64          `gorm:"column:average_rating"`
	TotalReviews         *int              `gorm:"column:total_reviews"`
	Percentiles          datatypes.JSONMap `gorm:"column:percentiles"`
	PersonalizationScore *float64          `gorm:"column:personalization_score"`
	DiversityRank        *float64          `gorm:"column:diversity_rank"`
}

// RecommendPersonalized calls the ranking procedure. Rows come back already
// ranked; a missing procedure is reported as domain.ErrProcedureUnavailable.
func (r *BusinessRepository) RecommendPersonalized(
	ctx context.Context,
	procedure string,
	p domain.PersonalizationParams,
) ([]domain.BusinessCandidate, error) {

	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}
	if !procedureName.MatchString(procedure) {
		return nil, fmt.Errorf("%w: invalid procedure name %q", domain.ErrProcedureUnavailable, procedure)
	}

	sql := fmt.Sprintf(`SELECT * FROM %s(
		@user_id,
		@interest_ids::text[],
		@sub_interest_ids::text[],
		@latitude,
		@longitude,
		@price_ranges::text[],
		@min_rating,
		@limit
	)`, procedure)

	var userID interface{}
	if p.UserID != "" {
		userID = p.UserID
	}

	var rows []personalizedRow
	err := r.DB.WithContext(ctx).Raw(sql, map[string]interface{}{
		"user_id":          userID,
		"interest_ids":     textArray(p.InterestIDs),
		"sub_interest_ids": textArray(p.SubInterestIDs),
		"latitude":         p.Latitude,
		"longitude":        p.Longitude,
		"price_ranges":     textArray(p.PriceRanges),
		"min_rating":       p.MinRating,
		"limit":            p.Limit,
	}).Scan(&rows).Error
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgUndefinedFunction {
			return nil, fmt.Errorf("%w: %s", domain.ErrProcedureUnavailable, pgErr.Message)
		}
		return nil, fmt.Errorf("failed to call %s: %w", procedure, err)
	}

	out := make([]domain.BusinessCandidate, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toCandidate())
	}

	return out, nil
}

func (r *BusinessRepository) FindPage(ctx context.Context, q domain.PageQuery) ([]domain.BusinessCandidate, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}

	db := r.withStats(ctx).Scopes(commonFilters(q.Filters))

	if q.MinRating > 0 {
		db = db.Where(`COALESCE("Stats"."average_rating", 0) >= ?`, q.MinRating)
	}
	if q.After != nil {
		db = db.Where("(businesses.created_at, businesses.id) < (?, ?::uuid)", q.After.CreatedAt, q.After.ID)
	}

	var businesses []domain.Business
	err := db.Order("businesses.created_at DESC").
		Order("businesses.id DESC").
		Limit(q.Limit).
		Find(&businesses).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list businesses: %w", err)
	}

	return toCandidates(businesses), nil
}

func (r *BusinessRepository) FindByID(ctx context.Context, id string) (domain.BusinessCandidate, error) {
	if err := ctx.Err(); err != nil {
		return domain.BusinessCandidate{}, fmt.Errorf("context error: %w", err)
	}

	var business domain.Business
	err := r.withStats(ctx).Where("businesses.id = ?", id).First(&business).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.BusinessCandidate{}, domain.ErrBusinessNotFound
		}
		return domain.BusinessCandidate{}, fmt.Errorf("failed to find business: %w", err)
	}

	return toCandidate(business), nil
}

func toCandidates(businesses []domain.Business) []domain.BusinessCandidate {
	out := make([]domain.BusinessCandidate, 0, len(businesses))
	for _, b := range businesses {
		out = append(out, toCandidate(b))
	}
	return out
}

func toCandidate(b domain.Business) domain.BusinessCandidate {
	c := domain.BusinessCandidate{
		ID:            b.ID,
		Name:          b.Name,
		Slug:          b.Slug,
		Category:      b.Category,
		InterestID:    deref(b.InterestID),
		SubInterestID: deref(b.SubInterestID),
		PriceRange:    deref(b.PriceRange),
		Verified:      b.Verified,
		Badge:         deref(b.Badge),
		Location:      b.Location,
		ImageURL:      deref(b.ImageURL),
		UploadedImage: deref(b.UploadedImage),
		CreatedAt:     b.CreatedAt,
	}

	if b.Stats != nil {
		c.AverageRating = b.Stats.AverageRating
		c.TotalReviews = b.Stats.TotalReviews
		c.Percentiles = percentiles(b.Stats.Percentiles)
	}

	return c
}

func (row personalizedRow) toCandidate() domain.BusinessCandidate {
	c := domain.BusinessCandidate{
		ID:                   row.ID,
		Name:                 row.Name,
		Slug:                 deref(row.Slug),
		Category:             deref(row.Category),
		InterestID:           deref(row.InterestID),
		SubInterestID:        deref(row.SubInterestID),
		PriceRange:           deref(row.PriceRange),
		Verified:             row.Verified,
		Badge:                deref(row.Badge),
		Location:             deref(row.Location),
		ImageURL:             deref(row.ImageURL),
		UploadedImage:        deref(row.UploadedImage),
		Percentiles:          percentiles(row.Percentiles),
		PersonalizationScore: row.PersonalizationScore,
		DiversityRank:        row.DiversityRank,
	}
	if row.CreatedAt != nil {
		c.CreatedAt = *row.CreatedAt
	}
	if row.AverageRating != nil {
		c.AverageRating = *row.AverageRating
	}
	if row.TotalReviews != nil {
		c.TotalReviews = *row.TotalReviews
	}

	return c
}

// percentiles keeps the numeric entries of the jsonb metrics object.
func percentiles(raw datatypes.JSONMap) map[string]float64 {
	if len(raw) == 0 {
		return nil
	}

	out := make(map[string]float64, len(raw))
	for k, v := range raw {
		switch n := v.(type) {
		case float64:
			out[k] = n
		case int:
			out[k] = float64(n)
		case int64:
			out[k] = float64(n)
		case json.Number:
			if f, err := n.Float64(); err == nil {
				out[k] = f
			}
		case string:
			if f, err := strconv.ParseFloat(n, 64); err == nil {
				out[k] = f
			}
		}
	}

	return out
}

// textArray renders ids as a postgres text[] literal so gorm does not expand
// the slice into a value list.
func textArray(values []string) string {
	quoted := make([]string, 0, len(values))
	for _, v := range values {
		v = strings.ReplaceAll(v, `\`, `\\`)
		v = strings.ReplaceAll(v, `"`, `\"`)
		quoted = append(quoted, `"`+v+`"`)
	}
	return "{" + strings.Join(quoted, ",") + "}"
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
