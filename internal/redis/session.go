package redis

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	sessionPrefix        = "session:"
	refreshSessionPrefix = "refresh_session:"
)

// SessionStore tracks issued token IDs per user in Redis.
type SessionStore struct {
	client *redis.Client
}

// NewSessionStore creates a new SessionStore.
func NewSessionStore(client *redis.Client) *SessionStore {
	return &SessionStore{client: client}
}

// Record stores the access and refresh token IDs for a user, each expiring
// with its token.
func (s *SessionStore) Record(ctx context.Context, userID, accessJTI, refreshJTI string, accessTTL, refreshTTL time.Duration) error {
	pipe := s.client.Pipeline()
	pipe.Set(ctx, sessionPrefix+userID, accessJTI, accessTTL)
	pipe.Set(ctx, refreshSessionPrefix+userID, refreshJTI, refreshTTL)
	_, err := pipe.Exec(ctx)
	return err
}

// Clear removes both session records for a user.
func (s *SessionStore) Clear(ctx context.Context, userID string) error {
	return s.client.Del(ctx, sessionPrefix+userID, refreshSessionPrefix+userID).Err()
}
