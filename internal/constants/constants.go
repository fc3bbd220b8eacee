package constants

import "time"

// Recommendation limits
const (
	MaxRecommendedTasks          = 3
	DefaultRecommendationTimeout = 20 * time.Second
	DefaultRecommendationTTL     = 10 * time.Minute
	RecommendationCachePrefix    = "microin:recommendations:"
)

// Task defaults
const (
	DefaultRewardToken = "USDC"
)

// ID prefixes
const (
	TaskIDPrefix            = "task"
	SkillNFTIDPrefix        = "nft"
	RecommendedTaskIDPrefix = "ai"
)

// SkillNFT presentation
const (
	// SkillNFTImageURLFormat takes the originating task ID.
	SkillNFTImageURLFormat = "https://picsum.photos/seed/%s/500/500"
	IssueDateLayout        = "2006-01-02"
)

// Context keys
const (
	ContextKeyRequestID = "request_id"
	HeaderRequestID     = "X-Request-ID"
)
