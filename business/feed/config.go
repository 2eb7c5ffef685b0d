package feed

import "time"

type Config struct {
	// hard ceiling for any single bucket
	MaxBucketSize int
	// bucket limit = page limit * BucketMultiplier (capped by MaxBucketSize)
	BucketMultiplier int

	FetchTimeout       time.Duration
	RecentReviewWindow time.Duration

	PersonalizationProcedure string

	// consecutive procedure failures before the breaker opens
	BreakerFailureThreshold uint32
	BreakerCooldown         time.Duration
}

const (
	defaultMaxBucketSize           = 150
	defaultBucketMultiplier        = 3
	defaultFetchTimeout            = 3 * time.Second
	defaultRecentReviewWindow      = 24 * time.Hour
	defaultPersonalizationProc     = "recommend_personalized_businesses"
	defaultBreakerFailureThreshold = 5
	defaultBreakerCooldown         = 30 * time.Second

	DefaultPageLimit = 20
	MaxPageLimit     = 50
)

func DefaultConfig() Config {
	return Config{
		MaxBucketSize:            defaultMaxBucketSize,
		BucketMultiplier:         defaultBucketMultiplier,
		FetchTimeout:             defaultFetchTimeout,
		RecentReviewWindow:       defaultRecentReviewWindow,
		PersonalizationProcedure: defaultPersonalizationProc,
		BreakerFailureThreshold:  defaultBreakerFailureThreshold,
		BreakerCooldown:          defaultBreakerCooldown,
	}
}

// withDefaults fills zero fields so a partially populated Config stays usable.
func (c Config) withDefaults() Config {
	d := DefaultConfig()
	if c.MaxBucketSize <= 0 || c.MaxBucketSize > defaultMaxBucketSize {
		c.MaxBucketSize = d.MaxBucketSize
	}
	if c.BucketMultiplier <= 0 {
		c.BucketMultiplier = d.BucketMultiplier
	}
	if c.FetchTimeout <= 0 {
		c.FetchTimeout = d.FetchTimeout
	}
	if c.RecentReviewWindow <= 0 {
		c.RecentReviewWindow = d.RecentReviewWindow
	}
	if c.PersonalizationProcedure == "" {
		c.PersonalizationProcedure = d.PersonalizationProcedure
	}
	if c.BreakerFailureThreshold == 0 {
		c.BreakerFailureThreshold = d.BreakerFailureThreshold
	}
	if c.BreakerCooldown <= 0 {
		c.BreakerCooldown = d.BreakerCooldown
	}
	return c
}

// bucketLimit sizes each candidate bucket for a page of pageLimit items.
func (c Config) bucketLimit(pageLimit int) int {
	limit := pageLimit * c.BucketMultiplier
	if limit < pageLimit {
		limit = pageLimit
	}
	if limit > c.MaxBucketSize {
		limit = c.MaxBucketSize
	}
	return limit
}

// ClampPageLimit maps a requested page size into [1, MaxPageLimit].
func ClampPageLimit(limit int) int {
	if limit <= 0 {
		return DefaultPageLimit
	}
	if limit > MaxPageLimit {
		return MaxPageLimit
	}
	return limit
}
