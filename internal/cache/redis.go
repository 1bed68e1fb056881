package cache

import (
	"context"
	"fmt"

	"ibraflix/internal/config"
	"ibraflix/internal/logger"

	"github.com/redis/go-redis/v9"
)

// NewClient connects to Redis from R_* settings. It returns nil, nil when no
// host is configured so callers can run without a cache.
func NewClient(ctx context.Context) (*redis.Client, error) {
	host, port, password := config.RedisConfig()
	if host == "" {
		return nil, nil
	}

	client := redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%s", host, port),
		Password: password,
		DB:       0,
	})

	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	logger.Get().Info("Connection to Redis successful")
	return client, nil
}
