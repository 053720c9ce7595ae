package cache

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"comment-insights/infrastructure/configuration"
	"comment-insights/infrastructure/logger"

	"github.com/redis/go-redis/v9"
)

// NewCache connects to Redis using the configured address and verifies the
// connection with a short ping.
func NewCache(cfg configuration.RedisClient) (*redis.Client, error) {
	db := 0
	if cfg.DatabaseName != "" {
		if v, err := strconv.Atoi(cfg.DatabaseName); err == nil {
			db = v
		}
	}
	client := redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%s", cfg.Host, cfg.Port),
		Username: cfg.Username,
		Password: cfg.Password,
		DB:       db,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("ping redis: %w", err)
	}

	logger.GetLogger().WithField("host", cfg.Host).Info("Redis connected")
	return client, nil
}
