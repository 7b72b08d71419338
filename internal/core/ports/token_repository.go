package ports

import (
	"context"
	"time"
)

// TokenBlacklist is the durable set of revoked bearer tokens.
type TokenBlacklist interface {
	IsRevoked(ctx context.Context, token string) (bool, error)
	// Revoke stores token until expiresAt. alreadyRevoked is true when the
	// token was present before the call.
	Revoke(ctx context.Context, token string, expiresAt time.Time) (alreadyRevoked bool, err error)
}

// RevocationCache is a best-effort fast path in front of TokenBlacklist.
// Only positive answers are authoritative.
type RevocationCache interface {
	IsRevoked(ctx context.Context, token string) (bool, error)
	Mark(ctx context.Context, token string, expiresAt time.Time) error
}
