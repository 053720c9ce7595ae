package repository

import (
	"context"
	"time"

	"comment-insights/domain/dto"
	"comment-insights/domain/model"
)

// IComment defines persistence for ingested comments.
type IComment interface {
	// UpsertBatch inserts comments that are not present yet and returns how
	// many were new. Existing documents keep their analysis untouched.
	UpsertBatch(ctx context.Context, comments []model.Comment) (int, error)
	// ListUnanalyzed returns comments with no analysis, oldest first.
	ListUnanalyzed(ctx context.Context, videoID string, limit int) ([]model.Comment, error)
	// SetAnalysis attaches a verdict only if the comment is still
	// unanalyzed, so a concurrent pass never overwrites an earlier one.
	SetAnalysis(ctx context.Context, commentID string, analysis model.Analysis) error
	// ListSince returns comments published at or after since, oldest first.
	ListSince(ctx context.Context, videoID string, since time.Time) ([]model.Comment, error)
	// ListByVideo applies the request filters and returns a page plus total.
	ListByVideo(ctx context.Context, videoID string, req dto.CommentListRequest) ([]model.Comment, int64, error)
	// ListByCategory returns up to limit analyzed comments of one category,
	// most-liked first.
	ListByCategory(ctx context.Context, videoID string, category model.Category, limit int) ([]model.Comment, error)
	CountByVideo(ctx context.Context, videoID string) (int64, error)
	// Aggregate recomputes category counts and average sentiment over all
	// analyzed comments of the video.
	Aggregate(ctx context.Context, videoID string) (model.VideoStats, error)
	DeleteByVideo(ctx context.Context, videoID string) error
}
