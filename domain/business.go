package domain

import (
	"time"

	"gorm.io/datatypes"
)

// CREATE TABLE public.businesses (
//     id               UUID PRIMARY KEY DEFAULT gen_random_uuid(),
//     name             TEXT NOT NULL,
//     slug             TEXT UNIQUE,
//     category         TEXT,
//     interest_id      TEXT,
//     sub_interest_id  TEXT,
//     price_range      TEXT,
//     verified         BOOLEAN,
//     badge            TEXT,
//     location         TEXT,
//     image_url        TEXT,
//     uploaded_image   TEXT,
//     owner_id         UUID,
//     created_at       TIMESTAMPTZ DEFAULT NOW()
// );

type Business struct {
	ID            string         `gorm:"column:id;type:uuid;primaryKey"`
	Name          string         `gorm:"column:name;type:text;not null"`
	Slug          string         `gorm:"column:slug;type:text"`
	Category      string         `gorm:"column:category;type:text"`
	InterestID    *string        `gorm:"column:interest_id;type:text"`
	SubInterestID *string        `gorm:"column:sub_interest_id;type:text"`
	PriceRange    *string        `gorm:"column:price_range;type:text"`
	Verified      *bool          `gorm:"column:verified"`
	Badge         *string        `gorm:"column:badge;type:text"`
	Location      string         `gorm:"column:location;type:text"`
	ImageURL      *string        `gorm:"column:image_url;type:text"`
	UploadedImage *string        `gorm:"column:uploaded_image;type:text"`
	OwnerID       *string        `gorm:"column:owner_id;type:uuid"`
	CreatedAt     time.Time      `gorm:"column:created_at"`
	Stats         *BusinessStats `gorm:"foreignKey:BusinessID;references:ID"`
}

func (Business) TableName() string {
	return "businesses"
}

// CREATE TABLE public.business_stats (
//     business_id    UUID PRIMARY KEY REFERENCES businesses(id),
//     total_reviews  INTEGER DEFAULT 0,
//     average_rating NUMERIC DEFAULT 0,
//     percentiles    JSONB
// );

type BusinessStats struct {
	BusinessID    string            `gorm:"column:business_id;type:uuid;primaryKey"`
	TotalReviews  int               `gorm:"column:total_reviews;default:0"`
	AverageRating float64           `gorm:"column:average_rating;type:numeric;default:0"`
	Percentiles   datatypes.JSONMap `gorm:"column:percentiles;type:jsonb"`
}

func (BusinessStats) TableName() string {
	return "business_stats"
}

// Named quality metrics carried in business_stats.percentiles.
const (
	PercentilePunctuality       = "punctuality"
	PercentileFriendliness      = "friendliness"
	PercentileTrustworthiness   = "trustworthiness"
	PercentileCostEffectiveness = "cost-effectiveness"
)

var PercentileMetrics = []string{
	PercentilePunctuality,
	PercentileFriendliness,
	PercentileTrustworthiness,
	PercentileCostEffectiveness,
}

// BusinessCandidate is a read-only snapshot of a business joined with its
// stats. Empty strings mean "absent" for the optional text fields.
type BusinessCandidate struct {
	ID            string
	Name          string
	Slug          string
	Category      string
	InterestID    string
	SubInterestID string
	PriceRange    string
	Verified      *bool
	Badge         string
	Location      string
	ImageURL      string
	UploadedImage string
	AverageRating float64
	TotalReviews  int
	Percentiles   map[string]float64
	CreatedAt     time.Time

	// Only set by the personalization procedure.
	PersonalizationScore *float64
	DiversityRank        *float64
}

// IsVerified reports an explicit true verification flag.
func (c BusinessCandidate) IsVerified() bool {
	return c.Verified != nil && *c.Verified
}

func (c BusinessCandidate) HasPhoto() bool {
	return c.ImageURL != "" || c.UploadedImage != ""
}

// BusinessCard is the public listing shape rendered by clients.
type BusinessCard struct {
	ID                   string             `json:"id"`
	Slug                 string             `json:"slug,omitempty"`
	Name                 string             `json:"name"`
	Image                string             `json:"image,omitempty"`
	Category             string             `json:"category"`
	InterestID           string             `json:"interest_id,omitempty"`
	SubInterestID        string             `json:"sub_interest_id,omitempty"`
	SubInterestLabel     string             `json:"sub_interest_label,omitempty"`
	Location             string             `json:"location"`
	Rating               *float64           `json:"rating,omitempty"`
	Reviews              int                `json:"reviews"`
	Badge                string             `json:"badge,omitempty"`
	Verified             bool               `json:"verified"`
	PriceRange           string             `json:"price_range"`
	Percentiles          map[string]float64 `json:"percentiles"`
	PersonalizationScore *float64           `json:"personalization_score,omitempty"`
	CreatedAt            time.Time          `json:"created_at"`
}
