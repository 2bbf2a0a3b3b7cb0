package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"ricemill/internal/core/id"
	"ricemill/internal/domain"
)

// SummaryCache stores module summaries per mill and date range.
// Each (mill, module) has a generation counter; values are keyed by the
// current generation, so Invalidate is a single INCR and stale values
// expire with the TTL.
type SummaryCache struct {
	client redis.Cmdable
	ttl    time.Duration
}

// NewSummaryCache creates a summary cache.
func NewSummaryCache(client redis.Cmdable, ttl time.Duration) *SummaryCache {
	return &SummaryCache{client: client, ttl: ttl}
}

func generationKey(millID id.ID, resource string) string {
	return fmt.Sprintf("%ssummary:gen:%s:%s", keyPrefix, millID, resource)
}

func valueKey(millID id.ID, resource string, gen int64, rangeKey string) string {
	return fmt.Sprintf("%ssummary:%s:%s:%d:%s", keyPrefix, millID, resource, gen, rangeKey)
}

func (c *SummaryCache) generation(ctx context.Context, millID id.ID, resource string) (int64, error) {
	gen, err := c.client.Get(ctx, generationKey(millID, resource)).Int64()
	if errors.Is(err, redis.Nil) {
		return 0, nil
	}
	return gen, err
}

// Get returns the cached summary, ok=false on a miss. gen is the generation
// the lookup used; pass it to Set.
func (c *SummaryCache) Get(ctx context.Context, millID id.ID, resource, rangeKey string) (domain.Summary, int64, bool, error) {
	gen, err := c.generation(ctx, millID, resource)
	if err != nil {
		return nil, 0, false, fmt.Errorf("read summary generation: %w", err)
	}

	raw, err := c.client.Get(ctx, valueKey(millID, resource, gen, rangeKey)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, gen, false, nil
	}
	if err != nil {
		return nil, gen, false, fmt.Errorf("read summary: %w", err)
	}

	var s domain.Summary
	if err := json.Unmarshal(raw, &s); err != nil {
		return nil, gen, false, fmt.Errorf("decode summary: %w", err)
	}
	return s, gen, true, nil
}

// Set stores the summary under gen. A summary computed before an Invalidate
// lands on the old generation and is never read.
func (c *SummaryCache) Set(ctx context.Context, millID id.ID, resource string, gen int64, rangeKey string, s domain.Summary) error {
	raw, err := json.Marshal(s)
	if err != nil {
		return fmt.Errorf("encode summary: %w", err)
	}
	return c.client.Set(ctx, valueKey(millID, resource, gen, rangeKey), raw, c.ttl).Err()
}

// Invalidate bumps the generation so every cached range becomes unreachable.
func (c *SummaryCache) Invalidate(ctx context.Context, millID id.ID, resource string) error {
	return c.client.Incr(ctx, generationKey(millID, resource)).Err()
}

var _ domain.SummaryCache = (*SummaryCache)(nil)
