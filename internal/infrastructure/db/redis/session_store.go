package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/dbaops/inventory-api/internal/core/domain"
	"github.com/dbaops/inventory-api/internal/infrastructure/session"
)

// SessionStore keeps sessions in Redis, one key per token.
// Key format: session:<token> → JSON {username, created_at}
type SessionStore struct {
	client *redis.Client
	ttl    time.Duration
}

// NewSessionStore creates a SessionStore wrapping the given Redis client.
// ttl of zero stores sessions without expiry, matching the in-memory
// baseline.
func NewSessionStore(client *redis.Client, ttl time.Duration) *SessionStore {
	return &SessionStore{client: client, ttl: ttl}
}

// Create generates a token for username and records the session.
func (s *SessionStore) Create(ctx context.Context, username string) (string, error) {
	token, err := session.NewToken()
	if err != nil {
		return "", err
	}

	payload, err := json.Marshal(domain.Session{
		Username:  username,
		CreatedAt: time.Now().UTC(),
	})
	if err != nil {
		return "", fmt.Errorf("session store: marshal: %w", err)
	}

	if err := s.client.Set(ctx, s.key(token), payload, s.ttl).Err(); err != nil {
		return "", fmt.Errorf("session store: set: %w", err)
	}
	return token, nil
}

// Lookup resolves a token to its session.
func (s *SessionStore) Lookup(ctx context.Context, token string) (*domain.Session, error) {
	raw, err := s.client.Get(ctx, s.key(token)).Bytes()
	if err == redis.Nil {
		return nil, domain.ErrInvalidToken
	}
	if err != nil {
		return nil, fmt.Errorf("session store: get: %w", err)
	}

	var sess domain.Session
	if err := json.Unmarshal(raw, &sess); err != nil {
		return nil, fmt.Errorf("session store: unmarshal: %w", err)
	}
	sess.Token = token
	return &sess, nil
}

// Revoke removes the session. Deleting an absent key is a no-op.
func (s *SessionStore) Revoke(ctx context.Context, token string) error {
	if err := s.client.Del(ctx, s.key(token)).Err(); err != nil {
		return fmt.Errorf("session store: del: %w", err)
	}
	return nil
}

func (s *SessionStore) key(token string) string {
	return "session:" + token
}
