package repository

import (
	"context"
	"time"

	"comment-insights/domain/model"
)

// IAnswerCache is the short-lived cache for lazily generated chat answers.
// Pre-generated answers live on the video document instead.
type IAnswerCache interface {
	// Get returns the cached answer or (nil, nil) on a miss.
	Get(ctx context.Context, videoID, key string) (*model.CachedAnswer, error)
	Set(ctx context.Context, videoID, key string, answer model.CachedAnswer, ttl time.Duration) error
	// InvalidateVideo drops every cached answer for the video.
	InvalidateVideo(ctx context.Context, videoID string) error
}
