package repository

import (
	"context"
	"time"

	"comment-insights/domain/dto"
	"comment-insights/domain/model"
)

// IVideoPlatform is the read-only view of the video hosting platform.
type IVideoPlatform interface {
	// GetMetadata returns the video's public metadata or
	// model.ErrVideoNotFound when the platform does not know the id.
	GetMetadata(ctx context.Context, videoID string) (*model.VideoMetadata, error)
	// ListComments returns one page of top-level comments. publishedAfter is
	// advisory; callers must still filter, the platform cannot be trusted to.
	// Returns model.ErrCommentsDisabled when the video forbids comments.
	ListComments(ctx context.Context, videoID, pageToken string, publishedAfter time.Time) (*dto.CommentPage, error)
}

// GenerateOptions tunes one generative-AI call.
type GenerateOptions struct {
	Temperature float32
	MaxTokens   int
}

// IGenAI is the text-in/text-out generative-AI collaborator.
type IGenAI interface {
	Generate(ctx context.Context, prompt string, opts GenerateOptions) (string, error)
}

// INotifier delivers out-of-band notifications. Implementations must be
// fire-and-forget: a delivery failure never fails the caller.
type INotifier interface {
	Notify(ctx context.Context, userID, subject string, payload map[string]interface{})
}
