package postgres

import (
	"context"
	"fmt"
	"time"

	"localGuide/business/feed"
	"localGuide/domain"

	"gorm.io/gorm"
)

type ReviewRepository struct {
	DB *gorm.DB
}

var _ feed.ReviewRepository = (*ReviewRepository)(nil)

func NewReviewRepository(db *gorm.DB) *ReviewRepository {
	return &ReviewRepository{DB: db}
}

// FindRecentByUser returns the user's reviews created at or after since,
// newest first, with the reviewed business slug.
func (r *ReviewRepository) FindRecentByUser(ctx context.Context, userID string, since time.Time) ([]domain.RecentReview, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}

	var rows []domain.RecentReview
	err := r.DB.WithContext(ctx).
		Model(&domain.Review{}).
		Select("reviews.business_id, businesses.slug AS business_slug, reviews.created_at").
		Joins("LEFT JOIN businesses ON businesses.id = reviews.business_id").
		Where("reviews.user_id = ? AND reviews.created_at >= ?", userID, since).
		Order("reviews.created_at DESC").
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to query recent reviews: %w", err)
	}

	return rows, nil
}
