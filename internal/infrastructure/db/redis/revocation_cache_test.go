package redis

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
)

func newTestCache(t *testing.T) (*RevocationCache, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return NewRevocationCache(client), mr
}

func TestRevocationCache_MarkAndCheck(t *testing.T) {
	cache, _ := newTestCache(t)
	ctx := context.Background()

	revoked, err := cache.IsRevoked(ctx, "tok")
	if err != nil || revoked {
		t.Fatalf("fresh token should not be revoked: %v %v", revoked, err)
	}

	if err := cache.Mark(ctx, "tok", time.Now().Add(time.Hour)); err != nil {
		t.Fatalf("mark: %v", err)
	}
	revoked, err = cache.IsRevoked(ctx, "tok")
	if err != nil || !revoked {
		t.Fatalf("marked token should be revoked: %v %v", revoked, err)
	}
	if revoked, _ := cache.IsRevoked(ctx, "other"); revoked {
		t.Fatalf("other tokens must not be affected")
	}
}

func TestRevocationCache_ExpiresWithToken(t *testing.T) {
	cache, mr := newTestCache(t)
	ctx := context.Background()

	if err := cache.Mark(ctx, "tok", time.Now().Add(30*time.Minute)); err != nil {
		t.Fatalf("mark: %v", err)
	}
	key := cache.key("tok")
	if ttl := mr.TTL(key); ttl <= 29*time.Minute || ttl > 30*time.Minute {
		t.Fatalf("ttl should track token expiry, got %v", ttl)
	}

	mr.FastForward(31 * time.Minute)
	if revoked, _ := cache.IsRevoked(ctx, "tok"); revoked {
		t.Fatalf("entry should be gone after the token expired")
	}
}

func TestRevocationCache_MinimumTTL(t *testing.T) {
	cache, mr := newTestCache(t)

	if err := cache.Mark(context.Background(), "tok", time.Now().Add(-time.Hour)); err != nil {
		t.Fatalf("mark: %v", err)
	}
	if ttl := mr.TTL(cache.key("tok")); ttl != minTTL {
		t.Fatalf("expected minimum ttl %v, got %v", minTTL, ttl)
	}
}

func TestRevocationCache_KeyHidesToken(t *testing.T) {
	cache, _ := newTestCache(t)
	key := cache.key("secret.jwt.value")
	if strings.Contains(key, "secret") || !strings.HasPrefix(key, "revoked:") {
		t.Fatalf("unexpected key %q", key)
	}
}

func TestRevocationCache_ServerDown(t *testing.T) {
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("miniredis: %v", err)
	}
	client := redis.NewClient(&redis.Options{Addr: mr.Addr(), MaxRetries: -1})
	defer client.Close()
	cache := NewRevocationCache(client)
	mr.Close()

	if _, err := cache.IsRevoked(context.Background(), "tok"); err == nil {
		t.Fatalf("expected error when redis is unreachable")
	}
}

func TestConnect_NoAddress(t *testing.T) {
	if _, err := Connect(context.Background(), Config{}); err == nil {
		t.Fatalf("expected error for empty address")
	}
}

func TestConnect_Ping(t *testing.T) {
	mr := miniredis.RunT(t)
	client, err := Connect(context.Background(), Config{Addr: mr.Addr()})
	if err != nil {
		t.Fatalf("connect: %v", err)
	}
	_ = client.Close()
}
