package ports

import (
	"context"

	"github.com/dbaops/inventory-api/internal/core/domain"
)

// SessionStore owns the token→session mapping behind the auth middleware.
type SessionStore interface {
	// Create generates a cryptographically random token for username and
	// records the session.
	Create(ctx context.Context, username string) (string, error)
	// Lookup resolves a token. Unknown or expired tokens yield
	// domain.ErrInvalidToken.
	Lookup(ctx context.Context, token string) (*domain.Session, error)
	// Revoke removes the session. Revoking an absent token is a no-op.
	Revoke(ctx context.Context, token string) error
}
