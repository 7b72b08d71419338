package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const connectTimeout = 2 * time.Second

// Config holds the revocation cache connection settings.
type Config struct {
	Addr     string
	Password string
	DB       int
	// Timeout bounds dialing, each command and the start-up ping.
	Timeout time.Duration
}

// ErrNoAddr is returned by Connect when the cache is not configured.
var ErrNoAddr = errors.New("redis: no address configured")

// Connect opens a client for the revocation cache and pings it once. The
// cache is a fast path only, so timeouts are short and commands are not
// retried.
func Connect(ctx context.Context, cfg Config) (*redis.Client, error) {
	if cfg.Addr == "" {
		return nil, ErrNoAddr
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = connectTimeout
	}

	client := redis.NewClient(&redis.Options{
		Addr:         cfg.Addr,
		Password:     cfg.Password,
		DB:           cfg.DB,
		DialTimeout:  cfg.Timeout,
		ReadTimeout:  cfg.Timeout,
		WriteTimeout: cfg.Timeout,
		MaxRetries:   -1,
	})

	pingCtx, cancel := context.WithTimeout(ctx, cfg.Timeout)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("redis %s: %w", cfg.Addr, err)
	}
	return client, nil
}
