package cache

import (
	"fmt"

	"github.com/redis/go-redis/v9"
	"github.com/ulule/limiter/v3"
	sredis "github.com/ulule/limiter/v3/drivers/store/redis"
)

// NewRateLimitStore keeps rate limit counters in Redis so every API instance
// sees the same budget per client.
func NewRateLimitStore(client *redis.Client) (limiter.Store, error) {
	store, err := sredis.NewStoreWithOptions(client, limiter.StoreOptions{
		Prefix: keyPrefix + "ratelimit",
	})
	if err != nil {
		return nil, fmt.Errorf("create rate limit store: %w", err)
	}
	return store, nil
}
