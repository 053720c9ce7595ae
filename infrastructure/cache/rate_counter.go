package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// RateCounter is a fixed-window request counter backed by Redis INCR with an
// expiry on the first hit of each window.
type RateCounter struct {
	client *redis.Client
}

func NewRateCounter(client *redis.Client) *RateCounter {
	return &RateCounter{client: client}
}

// Incr bumps the counter for key in the current window and returns the new
// count. The window is encoded into the Redis key so counts reset naturally.
func (r *RateCounter) Incr(ctx context.Context, key string, window time.Duration) (int64, error) {
	bucket := time.Now().Unix() / int64(window.Seconds())
	redisKey := fmt.Sprintf("rate:%s:%d", key, bucket)

	pipe := r.client.TxPipeline()
	incr := pipe.Incr(ctx, redisKey)
	pipe.Expire(ctx, redisKey, window+time.Second)
	if _, err := pipe.Exec(ctx); err != nil {
		return 0, err
	}
	return incr.Val(), nil
}
