// Package redis hosts the Redis-backed session store and its connection
// helper. Redis is optional: it only comes up when SESSION_BACKEND=redis.
package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const pingTimeout = 5 * time.Second

// Config captures the settings for the session Redis instance.
type Config struct {
	Addr     string
	Password string
	DB       int
}

// Connect opens a client against cfg and proves connectivity with a
// bounded ping before handing it out. Callers own Close.
func Connect(ctx context.Context, cfg Config) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	pingCtx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()

	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("redis connect %s: %w", cfg.Addr, err)
	}
	return client, nil
}
