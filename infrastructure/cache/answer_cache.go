package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"comment-insights/domain/model"
	"comment-insights/domain/repository"
	"comment-insights/infrastructure/logger"

	"github.com/redis/go-redis/v9"
)

// AnswerCache stores lazily generated chat answers with a TTL so repeated
// questions between syncs skip the generative-AI call.
type AnswerCache struct {
	client *redis.Client
}

func NewAnswerCache(client *redis.Client) repository.IAnswerCache {
	return &AnswerCache{client: client}
}

func answerKey(videoID, key string) string {
	return fmt.Sprintf("answer:%s:%s", videoID, key)
}

func (c *AnswerCache) Get(ctx context.Context, videoID, key string) (*model.CachedAnswer, error) {
	raw, err := c.client.Get(ctx, answerKey(videoID, key)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, err
	}
	var answer model.CachedAnswer
	if err := json.Unmarshal([]byte(raw), &answer); err != nil {
		return nil, err
	}
	return &answer, nil
}

func (c *AnswerCache) Set(ctx context.Context, videoID, key string, answer model.CachedAnswer, ttl time.Duration) error {
	raw, err := json.Marshal(answer)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, answerKey(videoID, key), raw, ttl).Err()
}

func (c *AnswerCache) InvalidateVideo(ctx context.Context, videoID string) error {
	pattern := fmt.Sprintf("answer:%s:*", videoID)
	iter := c.client.Scan(ctx, 0, pattern, 100).Iterator()
	for iter.Next(ctx) {
		if err := c.client.Del(ctx, iter.Val()).Err(); err != nil {
			logger.GetLogger().WithField("error", err).Warn("Failed deleting cached answer")
		}
	}
	return iter.Err()
}
