package repository

import (
	"context"
	"time"

	"comment-insights/domain/model"
)

// IVideo defines persistence for tracked videos.
type IVideo interface {
	// Get returns the video or model.ErrVideoNotFound.
	Get(ctx context.Context, videoID string) (*model.Video, error)
	// GetForUser returns the video only if it belongs to userID.
	GetForUser(ctx context.Context, videoID, userID string) (*model.Video, error)
	Upsert(ctx context.Context, video *model.Video) error
	// ListByUser returns the user's videos ordered by created_at desc.
	ListByUser(ctx context.Context, userID string, limit, offset int) ([]model.Video, int64, error)
	// UpdateSyncState mirrors the job's state and progress onto the video.
	UpdateSyncState(ctx context.Context, videoID string, state model.SyncState, progress int) error
	// AdvanceWatermark moves the fetch cursor forward; it never regresses.
	AdvanceWatermark(ctx context.Context, videoID string, watermark time.Time) error
	UpdateStats(ctx context.Context, videoID string, stats model.VideoStats, syncedAt time.Time) error
	// SetAnswers replaces the pre-generated answer map in one write.
	SetAnswers(ctx context.Context, videoID string, answers map[string]model.CachedAnswer) error
	Delete(ctx context.Context, videoID, userID string) error
}
