package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/comitanigiacomo/life-cockpit/internal/core/domain"
	"github.com/redis/go-redis/v9"
)

const summaryTTL = 5 * time.Minute

// RedisSummaryCache stores precomputed dashboard summaries as JSON under a
// short TTL. The TTL bounds staleness when a background refresh gets
// dropped; a cache miss is not an error.
type RedisSummaryCache struct {
	client *redis.Client
}

func NewRedisSummaryCache(client *redis.Client) *RedisSummaryCache {
	return &RedisSummaryCache{client: client}
}

func (c *RedisSummaryCache) key(userID string) string {
	return fmt.Sprintf("summary:%s", userID)
}

func (c *RedisSummaryCache) Get(ctx context.Context, userID string) (*domain.DashboardSummary, error) {
	val, err := c.client.Get(ctx, c.key(userID)).Result()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("summary cache read: %w", err)
	}

	var summary domain.DashboardSummary
	if err := json.Unmarshal([]byte(val), &summary); err != nil {
		// Corrupted entry: drop it and report a miss.
		c.client.Del(ctx, c.key(userID))
		return nil, nil
	}

	return &summary, nil
}

func (c *RedisSummaryCache) Set(ctx context.Context, userID string, summary *domain.DashboardSummary) error {
	data, err := json.Marshal(summary)
	if err != nil {
		return fmt.Errorf("summary cache encode: %w", err)
	}

	if err := c.client.Set(ctx, c.key(userID), data, summaryTTL).Err(); err != nil {
		return fmt.Errorf("summary cache write: %w", err)
	}
	return nil
}
