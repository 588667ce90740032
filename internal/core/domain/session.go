package domain

import "time"

// Session is the server-side state behind one opaque Bearer token.
// A token, while present in the session store, identifies exactly one
// username; tokens are never reused across concurrent sessions.
type Session struct {
	Token     string    `json:"-"`
	Username  string    `json:"username"`
	CreatedAt time.Time `json:"created_at"`
}
