package redis

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

// AvailableRidersTTL bounds how stale the cached availability listing can get.
const AvailableRidersTTL = 300 * time.Second

// availableRidersKey is the single slot the listing is cached under. The
// query it caches takes no parameters, so one fixed key is enough.
const availableRidersKey = "available_riders"

// AvailabilityCache holds the serialized available-riders listing in Redis.
// Get/Set/Invalidate are individually atomic; the read-recompute-write cycle
// around them is not, so concurrent misses may each recompute and the last
// write wins.
type AvailabilityCache struct {
	client *redis.Client
}

// NewAvailabilityCache creates a new AvailabilityCache.
func NewAvailabilityCache(client *redis.Client) *AvailabilityCache {
	return &AvailabilityCache{client: client}
}

// Get returns the cached payload, or (nil, nil) on a cache miss.
func (c *AvailabilityCache) Get(ctx context.Context) ([]byte, error) {
	data, err := c.client.Get(ctx, availableRidersKey).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, nil // Cache miss
		}
		return nil, err
	}
	return data, nil
}

// Set stores the payload with the fixed TTL.
func (c *AvailabilityCache) Set(ctx context.Context, payload []byte) error {
	return c.client.Set(ctx, availableRidersKey, payload, AvailableRidersTTL).Err()
}

// Invalidate removes the slot regardless of expiry state.
func (c *AvailabilityCache) Invalidate(ctx context.Context) error {
	return c.client.Del(ctx, availableRidersKey).Err()
}
