package model

import "time"

// AlertKind identifies the detector that raised an alert.
type AlertKind string

const (
	AlertKindSpike         AlertKind = "spike"
	AlertKindSentimentDrop AlertKind = "sentiment_drop"
	AlertKindToxicity      AlertKind = "toxicity"
	AlertKindViral         AlertKind = "viral"
)

// Severity ranks how urgent an alert is.
type Severity string

const (
	SeverityLow      Severity = "low"
	SeverityMedium   Severity = "medium"
	SeverityHigh     Severity = "high"
	SeverityCritical Severity = "critical"
)

// Alert is one detector finding for a video. Evidence carries the numbers
// that justified the alert (rates, averages, sample comments) so the UI can
// show why it fired without re-running the detector.
type Alert struct {
	AlertID   string                 `bson:"_id" json:"alert_id"`
	UserID    string                 `bson:"userId" json:"user_id"`
	VideoID   string                 `bson:"videoId" json:"video_id"`
	Kind      AlertKind              `bson:"kind" json:"kind"`
	Severity  Severity               `bson:"severity" json:"severity"`
	Title     string                 `bson:"title" json:"title"`
	Message   string                 `bson:"message" json:"message"`
	Evidence  map[string]interface{} `bson:"evidence,omitempty" json:"evidence,omitempty"`
	IsRead    bool                   `bson:"isRead" json:"is_read"`
	ReadAt    *time.Time             `bson:"readAt,omitempty" json:"read_at,omitempty"`
	CreatedAt time.Time              `bson:"createdAt" json:"created_at"`
}
