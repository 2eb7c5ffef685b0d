package domain

import "time"

// Review is written by the reviews service; this module only reads it.
type Review struct {
	ID         string    `gorm:"column:id;type:uuid;primaryKey"`
	BusinessID string    `gorm:"column:business_id;type:uuid;not null"`
	UserID     string    `gorm:"column:user_id;type:uuid;not null"`
	Rating     int       `gorm:"column:rating"`
	CreatedAt  time.Time `gorm:"column:created_at"`
}

func (Review) TableName() string {
	return "reviews"
}

// RecentReview is one of the caller's reviews inside the recency window,
// joined with the reviewed business slug.
type RecentReview struct {
	BusinessID   string    `gorm:"column:business_id"`
	BusinessSlug string    `gorm:"column:business_slug"`
	CreatedAt    time.Time `gorm:"column:created_at"`
}
