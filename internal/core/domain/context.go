package domain

import "context"

type contextKey struct{}

var usernameKey contextKey

// WithUsername returns a context carrying the authenticated username,
// set by the auth middleware once the token resolves.
func WithUsername(ctx context.Context, username string) context.Context {
	return context.WithValue(ctx, usernameKey, username)
}

// UsernameFromContext returns the authenticated username, or "" when the
// request came through a whitelisted route.
func UsernameFromContext(ctx context.Context) string {
	username, _ := ctx.Value(usernameKey).(string)
	return username
}
