package repository

import (
	"context"

	"comment-insights/domain/model"
)

// ISyncJob defines persistence for sync job records.
type ISyncJob interface {
	Create(ctx context.Context, job *model.SyncJob) error
	// Get returns the job or model.ErrJobNotFound.
	Get(ctx context.Context, jobID string) (*model.SyncJob, error)
	Update(ctx context.Context, job *model.SyncJob) error
	// FindActiveByVideo returns the non-terminal job for the video, if any.
	FindActiveByVideo(ctx context.Context, videoID string) (*model.SyncJob, error)
	// ListByUser returns recent jobs, newest first.
	ListByUser(ctx context.Context, userID string, limit int) ([]model.SyncJob, error)
}
