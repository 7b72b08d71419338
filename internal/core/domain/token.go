package domain

import "time"

// BlacklistedToken is a bearer token revoked at logout. Entries are kept
// until the token would have expired anyway.
type BlacklistedToken struct {
	Token     string
	ExpiresAt time.Time
	CreatedAt time.Time
}

// Session is the decoded content of a valid session token.
type Session struct {
	UserID    string
	TokenID   string
	IssuedAt  time.Time
	ExpiresAt time.Time
}
