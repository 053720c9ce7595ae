package model

import "time"

// SyncState is the lifecycle state of a sync job.
type SyncState string

const (
	SyncStateQueued     SyncState = "queued"
	SyncStateFetching   SyncState = "fetching"
	SyncStateAnalyzing  SyncState = "analyzing"
	SyncStateFinalizing SyncState = "finalizing"
	SyncStateCompleted  SyncState = "completed"
	SyncStateFailed     SyncState = "failed"
)

// Terminal reports whether the state admits no further transitions.
func (s SyncState) Terminal() bool {
	return s == SyncStateCompleted || s == SyncStateFailed
}

// SyncMode selects between a full comment ingest and a watermark-based delta.
type SyncMode string

const (
	SyncModeFull        SyncMode = "full"
	SyncModeIncremental SyncMode = "incremental"
)

// SyncJob is the pull-only status record for one sync run. It is created at
// submission and mutated only by the sync use case; once terminal it is
// never touched again.
type SyncJob struct {
	JobID             string     `bson:"_id" json:"jobId"`
	UserID            string     `bson:"userId" json:"userId"`
	VideoID           string     `bson:"videoId" json:"videoId"`
	Mode              SyncMode   `bson:"mode" json:"mode"`
	State             SyncState  `bson:"state" json:"state"`
	Progress          int        `bson:"progress" json:"progress"`
	TotalComments     int        `bson:"totalComments" json:"totalComments"`
	ProcessedComments int        `bson:"processedComments" json:"processedComments"`
	Note              string     `bson:"note,omitempty" json:"note,omitempty"`
	Error             string     `bson:"error,omitempty" json:"error,omitempty"`
	CreatedAt         time.Time  `bson:"createdAt" json:"createdAt"`
	CompletedAt       *time.Time `bson:"completedAt,omitempty" json:"completedAt,omitempty"`
}
