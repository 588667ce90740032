package ports

import "context"

type AuthService interface {
	// Login validates credentials and opens a session, returning the token.
	// Field validation happens before any credential comparison.
	Login(ctx context.Context, username, password string) (string, error)
	// Logout revokes the session behind token.
	Logout(ctx context.Context, token string) error
}
