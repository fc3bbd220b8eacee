package cache

import (
	"context"
	"log"
	"sort"
	"strings"
	"time"

	"github.com/yukikurage/microin-api/internal/constants"
	"github.com/yukikurage/microin-api/internal/models"
)

// Recommender is satisfied by services.AIService
type Recommender interface {
	Recommend(ctx context.Context, skills []string) []models.Task
}

// RecommendationCache is a read-through cache in front of a Recommender.
// Only non-empty results are stored, so a failed upstream call is retried
// on the next request.
type RecommendationCache struct {
	next   Recommender
	redis  *Redis
	ttl    time.Duration
	logger *log.Logger
}

func NewRecommendationCache(next Recommender, redis *Redis, ttl time.Duration, logger *log.Logger) *RecommendationCache {
	if ttl <= 0 {
		ttl = constants.DefaultRecommendationTTL
	}
	if logger == nil {
		logger = log.Default()
	}
	return &RecommendationCache{
		next:   next,
		redis:  redis,
		ttl:    ttl,
		logger: logger,
	}
}

func (c *RecommendationCache) Recommend(ctx context.Context, skills []string) []models.Task {
	key, ok := RecommendationKey(skills)
	if !ok || !c.redis.Available() {
		return c.next.Recommend(ctx, skills)
	}

	var cached []models.Task
	hit, err := c.redis.GetJSON(ctx, key, &cached)
	if err != nil {
		c.logger.Printf("[Cache] recommendation lookup failed key=%s err=%v", key, err)
	}
	if hit && len(cached) > 0 {
		return cached
	}

	tasks := c.next.Recommend(ctx, skills)
	if len(tasks) == 0 {
		return tasks
	}

	if err := c.redis.SetJSON(ctx, key, tasks, c.ttl); err != nil {
		c.logger.Printf("[Cache] recommendation store failed key=%s err=%v", key, err)
	}
	return tasks
}

// RecommendationKey builds the cache key for a skill set. Skills are trimmed,
// lower-cased, de-duplicated and sorted, so order and case do not matter.
// It reports false when no skill remains.
func RecommendationKey(skills []string) (string, bool) {
	seen := make(map[string]struct{}, len(skills))
	normalized := make([]string, 0, len(skills))
	for _, skill := range skills {
		skill = strings.ToLower(strings.TrimSpace(skill))
		if skill == "" {
			continue
		}
		if _, dup := seen[skill]; dup {
			continue
		}
		seen[skill] = struct{}{}
		normalized = append(normalized, skill)
	}
	if len(normalized) == 0 {
		return "", false
	}

	sort.Strings(normalized)
	return constants.RecommendationCachePrefix + strings.Join(normalized, ","), true
}
