package domain

import "time"

const (
	FeedStrategyMixed    = "mixed"
	FeedStrategyStandard = "standard"
)

// FeedFilters are the predicates shared by every candidate query.
type FeedFilters struct {
	Category     string
	Badge        string
	VerifiedOnly bool
	PriceRanges  []string
	Location     string
}

type CandidateOrder int

const (
	OrderByRating CandidateOrder = iota
	OrderByNewest
)

// CandidateQuery is a single storage read for one bucket.
type CandidateQuery struct {
	Filters        FeedFilters
	SubInterestIDs []string
	InterestIDs    []string
	OrderBy        CandidateOrder
	Limit          int
}

// PersonalizationParams are the arguments of the personalization procedure.
type PersonalizationParams struct {
	UserID         string
	InterestIDs    []string
	SubInterestIDs []string
	Latitude       *float64
	Longitude      *float64
	PriceRanges    []string
	MinRating      float64
	Limit          int
}

// FeedRequest carries the listing parameters after parsing.
type FeedRequest struct {
	UserID               string
	Strategy             string
	Limit                int
	Category             string
	Badge                string
	VerifiedOnly         bool
	PriceRange           string
	PreferredPriceRanges []string
	Location             string
	MinRating            float64
	InterestIDs          []string
	SubInterestIDs       []string
	Dealbreakers         []string
	Latitude             *float64
	Longitude            *float64
	Cursor               string
}

type BucketCounts struct {
	PersonalMatches int `json:"personalMatches"`
	TopRated        int `json:"topRated"`
	Explore         int `json:"explore"`
}

type MixedFeedMeta struct {
	FeedStrategy string       `json:"feed_strategy"`
	Limit        int          `json:"limit"`
	Count        int          `json:"count"`
	Buckets      BucketCounts `json:"buckets"`
}

type MixedFeed struct {
	Data []BusinessCard `json:"data"`
	Meta MixedFeedMeta  `json:"meta"`
}

// PageCursor is the keyset position of the standard listing.
type PageCursor struct {
	CreatedAt time.Time
	ID        string
}

type PageQuery struct {
	Filters   FeedFilters
	MinRating float64
	After     *PageCursor
	Limit     int
}

type PageMeta struct {
	FeedStrategy string `json:"feed_strategy"`
	Limit        int    `json:"limit"`
	Count        int    `json:"count"`
	NextCursor   string `json:"next_cursor,omitempty"`
	HasMore      bool   `json:"has_more"`
}

type BusinessPage struct {
	Data []BusinessCard `json:"data"`
	Meta PageMeta       `json:"meta"`
}
