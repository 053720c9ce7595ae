package persistence

import (
	"context"
	"time"

	"comment-insights/domain/model"
	"comment-insights/domain/repository"
	"comment-insights/infrastructure/logger"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

type AlertRepository struct {
	collection *mongo.Collection
}

func NewAlertRepository(db *mongo.Database) repository.IAlert {
	return &AlertRepository{collection: db.Collection("alerts")}
}

func (r *AlertRepository) Create(ctx context.Context, alert *model.Alert) error {
	_, err := r.collection.InsertOne(ctx, alert)
	return err
}

func (r *AlertRepository) ExistsRecent(ctx context.Context, videoID string, kind model.AlertKind, window time.Duration) (bool, error) {
	// a read alert no longer suppresses a new one of the same kind
	filter := bson.M{
		"videoId":   videoID,
		"kind":      kind,
		"isRead":    false,
		"createdAt": bson.M{"$gte": time.Now().UTC().Add(-window)},
	}
	count, err := r.collection.CountDocuments(ctx, filter, options.Count().SetLimit(1))
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *AlertRepository) ListByUser(ctx context.Context, userID, videoID string, unreadOnly bool, limit int) ([]model.Alert, error) {
	if limit <= 0 {
		limit = 50
	}
	filter := bson.M{"userId": userID}
	if videoID != "" {
		filter["videoId"] = videoID
	}
	if unreadOnly {
		filter["isRead"] = false
	}
	opts := options.Find().
		SetSort(bson.D{{Key: "createdAt", Value: -1}}).
		SetLimit(int64(limit))
	cursor, err := r.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer func(cursor *mongo.Cursor, ctx context.Context) {
		if err := cursor.Close(ctx); err != nil {
			logger.GetLogger().WithField("error", err).Error("Error while closing cursor")
		}
	}(cursor, ctx)

	var alerts []model.Alert
	for cursor.Next(ctx) {
		var alert model.Alert
		if err := cursor.Decode(&alert); err != nil {
			logger.GetLogger().WithField("error", err).Error("Error while decoding alert")
			continue
		}
		alerts = append(alerts, alert)
	}
	return alerts, cursor.Err()
}

func (r *AlertRepository) MarkRead(ctx context.Context, alertID, userID string) error {
	now := time.Now().UTC()
	res, err := r.collection.UpdateOne(ctx,
		bson.M{"_id": alertID, "userId": userID},
		bson.M{"$set": bson.M{"isRead": true, "readAt": now}})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return model.ErrAlertNotFound
	}
	return nil
}

func (r *AlertRepository) CountUnread(ctx context.Context, userID string) (int64, error) {
	return r.collection.CountDocuments(ctx, bson.M{"userId": userID, "isRead": false})
}
