// Package session provides the in-memory session store. The store is an
// injected dependency owned by the server process, not a module-level
// variable, so it can be swapped for the Redis implementation without
// touching the middleware.
package session

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"fmt"
	"sync"
	"time"

	"github.com/dbaops/inventory-api/internal/core/domain"
)

const tokenBytes = 32

// MemoryStore keeps sessions in a mutex-guarded map. With a zero TTL
// sessions live until Revoke or process restart.
type MemoryStore struct {
	mu       sync.RWMutex
	sessions map[string]domain.Session
	ttl      time.Duration
}

// NewMemoryStore creates a MemoryStore. ttl of zero disables expiry.
func NewMemoryStore(ttl time.Duration) *MemoryStore {
	return &MemoryStore{
		sessions: make(map[string]domain.Session),
		ttl:      ttl,
	}
}

// Create generates a random token for username and records the session.
func (s *MemoryStore) Create(_ context.Context, username string) (string, error) {
	token, err := NewToken()
	if err != nil {
		return "", err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[token] = domain.Session{
		Token:     token,
		Username:  username,
		CreatedAt: time.Now().UTC(),
	}
	return token, nil
}

// Lookup resolves a token to its session.
func (s *MemoryStore) Lookup(_ context.Context, token string) (*domain.Session, error) {
	s.mu.RLock()
	sess, ok := s.sessions[token]
	s.mu.RUnlock()

	if !ok {
		return nil, domain.ErrInvalidToken
	}
	if s.ttl > 0 && time.Since(sess.CreatedAt) > s.ttl {
		// Expired entries are dropped lazily on the next lookup.
		s.mu.Lock()
		delete(s.sessions, token)
		s.mu.Unlock()
		return nil, domain.ErrInvalidToken
	}
	return &sess, nil
}

// Revoke removes the session. Absent tokens are a no-op.
func (s *MemoryStore) Revoke(_ context.Context, token string) error {
	s.mu.Lock()
	delete(s.sessions, token)
	s.mu.Unlock()
	return nil
}

// NewToken returns a fresh opaque token: 32 bytes from crypto/rand,
// base64url-encoded. Collision probability is negligible.
func NewToken() (string, error) {
	buf := make([]byte, tokenBytes)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("session: generate token: %w", err)
	}
	return base64.RawURLEncoding.EncodeToString(buf), nil
}
