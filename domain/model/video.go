package model

import "time"

// VideoStats holds the aggregates recomputed at the end of every sync.
type VideoStats struct {
	TotalComments  int            `bson:"totalComments" json:"total_comments"`
	CategoryCounts map[string]int `bson:"categoryCounts" json:"category_counts"`
	AvgSentiment   float64        `bson:"avgSentiment" json:"avg_sentiment"`
}

// Video is the tracked YouTube video together with its sync bookkeeping.
// CommentWatermark is the fetch cursor's authority: the publish timestamp of
// the newest comment ever ingested. It only moves forward.
type Video struct {
	VideoID          string                  `bson:"_id" json:"video_id"`
	UserID           string                  `bson:"userId" json:"user_id"`
	Title            string                  `bson:"title" json:"title"`
	Description      string                  `bson:"description" json:"description"`
	ThumbnailURL     string                  `bson:"thumbnailUrl" json:"thumbnail_url"`
	ChannelName      string                  `bson:"channelName" json:"channel_name"`
	ViewCount        int64                   `bson:"viewCount" json:"view_count"`
	LikeCount        int64                   `bson:"likeCount" json:"like_count"`
	CommentCount     int64                   `bson:"commentCount" json:"comment_count"`
	PublishedAt      time.Time               `bson:"publishedAt" json:"published_at"`
	Duration         string                  `bson:"duration" json:"duration"`
	CommentWatermark time.Time               `bson:"commentWatermark" json:"comment_watermark"`
	Stats            VideoStats              `bson:"stats" json:"stats"`
	// PreGeneratedAnswers is keyed by the md5 of the canonicalized question.
	// Denormalized onto the video so a cache hit is a single document read.
	PreGeneratedAnswers map[string]CachedAnswer `bson:"preGeneratedAnswers,omitempty" json:"pre_generated_answers,omitempty"`
	SyncStatus          SyncState               `bson:"syncStatus" json:"sync_status"`
	SyncProgress        int                     `bson:"syncProgress" json:"sync_progress"`
	LastSyncedAt        *time.Time              `bson:"lastSyncedAt,omitempty" json:"last_synced_at,omitempty"`
	CreatedAt           time.Time               `bson:"createdAt" json:"created_at"`
}

// VideoMetadata is what the video platform returns for a metadata lookup.
type VideoMetadata struct {
	VideoID      string    `json:"video_id"`
	Title        string    `json:"title"`
	Description  string    `json:"description"`
	ThumbnailURL string    `json:"thumbnail_url"`
	ChannelName  string    `json:"channel_name"`
	ViewCount    int64     `json:"view_count"`
	LikeCount    int64     `json:"like_count"`
	CommentCount int64     `json:"comment_count"`
	PublishedAt  time.Time `json:"published_at"`
	Duration     string    `json:"duration"`
}
