package service

import (
	"context"

	"github.com/dbaops/inventory-api/internal/api/metrics"
	"github.com/dbaops/inventory-api/internal/core/domain"
	"github.com/dbaops/inventory-api/internal/core/ports"
)

// AuthService implements login and logout over the credential and
// session stores.
type AuthService struct {
	creds    ports.CredentialStore
	sessions ports.SessionStore
}

func NewAuthService(creds ports.CredentialStore, sessions ports.SessionStore) *AuthService {
	return &AuthService{creds: creds, sessions: sessions}
}

// Login checks the credential pair and opens a session. Field checks run
// before any credential comparison, so a request missing a field never
// reaches the hash check.
func (s *AuthService) Login(ctx context.Context, username, password string) (string, error) {
	if username == "" {
		return "", domain.NewMissingField("username")
	}
	if password == "" {
		return "", domain.NewMissingField("password")
	}

	if !s.creds.Validate(username, password) {
		metrics.AuthFailuresTotal.WithLabelValues("bad_credentials").Inc()
		return "", domain.ErrInvalidCredentials
	}

	token, err := s.sessions.Create(ctx, username)
	if err != nil {
		return "", err
	}
	metrics.SessionsCreatedTotal.Inc()
	return token, nil
}

// Logout revokes the session. Revoking an unknown token is a no-op.
func (s *AuthService) Logout(ctx context.Context, token string) error {
	return s.sessions.Revoke(ctx, token)
}
