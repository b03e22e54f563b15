package redis

import "context"

// AvailabilityCacheInterface defines the cache slot contract used by the
// rider service. Get returns (nil, nil) on a miss.
type AvailabilityCacheInterface interface {
	Get(ctx context.Context) ([]byte, error)
	Set(ctx context.Context, payload []byte) error
	Invalidate(ctx context.Context) error
}

// Ensure concrete types implement interfaces.
var _ AvailabilityCacheInterface = (*AvailabilityCache)(nil)
