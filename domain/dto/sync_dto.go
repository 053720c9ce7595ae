package dto

import (
	"time"

	"comment-insights/domain/model"
)

// AnalyzeVideoRequest represents request to start tracking a video.
// URL accepts a full YouTube URL or a bare 11-character video id.
type AnalyzeVideoRequest struct {
	URL string `json:"url" binding:"required"`
}

// SyncJobResponse is the pull-only status view of a sync run.
type SyncJobResponse struct {
	JobID             string     `json:"job_id"`
	VideoID           string     `json:"video_id"`
	Mode              string     `json:"mode"`
	State             string     `json:"state"`
	Progress          int        `json:"progress"`
	TotalComments     int        `json:"total_comments"`
	ProcessedComments int        `json:"processed_comments"`
	Note              string     `json:"note,omitempty"`
	Error             string     `json:"error,omitempty"`
	CreatedAt         time.Time  `json:"created_at"`
	CompletedAt       *time.Time `json:"completed_at,omitempty"`
}

// NewSyncJobResponse maps the stored job to its API shape.
func NewSyncJobResponse(job *model.SyncJob) SyncJobResponse {
	return SyncJobResponse{
		JobID:             job.JobID,
		VideoID:           job.VideoID,
		Mode:              string(job.Mode),
		State:             string(job.State),
		Progress:          job.Progress,
		TotalComments:     job.TotalComments,
		ProcessedComments: job.ProcessedComments,
		Note:              job.Note,
		Error:             job.Error,
		CreatedAt:         job.CreatedAt,
		CompletedAt:       job.CompletedAt,
	}
}

// CommentPage is one page of comments from the video platform.
type CommentPage struct {
	Comments      []model.Comment
	NextPageToken string
}
