package repository

import (
	"context"
	"time"

	"comment-insights/domain/model"
)

// IAlert defines persistence for detector findings.
type IAlert interface {
	Create(ctx context.Context, alert *model.Alert) error
	// ExistsRecent reports whether the same kind already fired for the
	// video within the window. Used for deduplication.
	ExistsRecent(ctx context.Context, videoID string, kind model.AlertKind, window time.Duration) (bool, error)
	// ListByUser returns alerts newest first; videoID narrows to one video
	// when non-empty, unreadOnly filters read ones.
	ListByUser(ctx context.Context, userID, videoID string, unreadOnly bool, limit int) ([]model.Alert, error)
	// MarkRead flags the alert read; returns model.ErrAlertNotFound when the
	// alert does not exist or belongs to another user.
	MarkRead(ctx context.Context, alertID, userID string) error
	CountUnread(ctx context.Context, userID string) (int64, error)
}
