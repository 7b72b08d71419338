package redis

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// minTTL keeps a revocation visible briefly even when the token's exp is
// already in the past or a clock is skewed.
const minTTL = time.Minute

// RevocationCache remembers revoked tokens until they expire.
// Key format: revoked:<sha256(token)>
type RevocationCache struct {
	client *redis.Client
	now    func() time.Time
}

// NewRevocationCache creates a RevocationCache wrapping the given Redis client.
func NewRevocationCache(client *redis.Client) *RevocationCache {
	return &RevocationCache{client: client, now: time.Now}
}

// IsRevoked reports whether token has been marked.
func (c *RevocationCache) IsRevoked(ctx context.Context, token string) (bool, error) {
	n, err := c.client.Exists(ctx, c.key(token)).Result()
	if err != nil {
		return false, fmt.Errorf("revocation check: %w", err)
	}
	return n > 0, nil
}

// Mark records token as revoked until expiresAt.
func (c *RevocationCache) Mark(ctx context.Context, token string, expiresAt time.Time) error {
	ttl := expiresAt.Sub(c.now())
	if ttl < minTTL {
		ttl = minTTL
	}
	if err := c.client.Set(ctx, c.key(token), "1", ttl).Err(); err != nil {
		return fmt.Errorf("revocation mark: %w", err)
	}
	return nil
}

func (c *RevocationCache) key(token string) string {
	sum := sha256.Sum256([]byte(token))
	return "revoked:" + hex.EncodeToString(sum[:])
}
