package persistence

import (
	"context"
	"errors"
	"time"

	"comment-insights/domain/model"
	"comment-insights/domain/repository"
	"comment-insights/infrastructure/logger"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

type VideoRepository struct {
	collection *mongo.Collection
}

func NewVideoRepository(db *mongo.Database) repository.IVideo {
	return &VideoRepository{collection: db.Collection("videos")}
}

func (r *VideoRepository) Get(ctx context.Context, videoID string) (*model.Video, error) {
	var video model.Video
	err := r.collection.FindOne(ctx, bson.M{"_id": videoID}).Decode(&video)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, model.ErrVideoNotFound
		}
		return nil, err
	}
	return &video, nil
}

func (r *VideoRepository) GetForUser(ctx context.Context, videoID, userID string) (*model.Video, error) {
	var video model.Video
	err := r.collection.FindOne(ctx, bson.M{"_id": videoID, "userId": userID}).Decode(&video)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, model.ErrVideoNotFound
		}
		return nil, err
	}
	return &video, nil
}

func (r *VideoRepository) Upsert(ctx context.Context, video *model.Video) error {
	_, err := r.collection.UpdateOne(ctx,
		bson.M{"_id": video.VideoID},
		bson.M{"$set": video},
		options.UpdateOne().SetUpsert(true))
	return err
}

func (r *VideoRepository) ListByUser(ctx context.Context, userID string, limit, offset int) ([]model.Video, int64, error) {
	if limit <= 0 {
		limit = 25
	}
	if offset < 0 {
		offset = 0
	}
	filter := bson.M{"userId": userID}
	total, err := r.collection.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, err
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "createdAt", Value: -1}}).
		SetLimit(int64(limit)).
		SetSkip(int64(offset))
	cursor, err := r.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, 0, err
	}
	defer func(cursor *mongo.Cursor, ctx context.Context) {
		if err := cursor.Close(ctx); err != nil {
			logger.GetLogger().WithField("error", err).Error("Error while closing cursor")
		}
	}(cursor, ctx)

	videos := make([]model.Video, 0, limit)
	for cursor.Next(ctx) {
		var video model.Video
		if err := cursor.Decode(&video); err != nil {
			logger.GetLogger().WithField("error", err).Error("Error while decoding video")
			continue
		}
		videos = append(videos, video)
	}
	return videos, total, cursor.Err()
}

func (r *VideoRepository) UpdateSyncState(ctx context.Context, videoID string, state model.SyncState, progress int) error {
	_, err := r.collection.UpdateOne(ctx,
		bson.M{"_id": videoID},
		bson.M{"$set": bson.M{"syncStatus": state, "syncProgress": progress}})
	return err
}

func (r *VideoRepository) AdvanceWatermark(ctx context.Context, videoID string, watermark time.Time) error {
	// $max keeps the stored value when it is already ahead
	_, err := r.collection.UpdateOne(ctx,
		bson.M{"_id": videoID},
		bson.M{"$max": bson.M{"commentWatermark": watermark}})
	return err
}

func (r *VideoRepository) UpdateStats(ctx context.Context, videoID string, stats model.VideoStats, syncedAt time.Time) error {
	_, err := r.collection.UpdateOne(ctx,
		bson.M{"_id": videoID},
		bson.M{"$set": bson.M{"stats": stats, "lastSyncedAt": syncedAt}})
	return err
}

func (r *VideoRepository) SetAnswers(ctx context.Context, videoID string, answers map[string]model.CachedAnswer) error {
	_, err := r.collection.UpdateOne(ctx,
		bson.M{"_id": videoID},
		bson.M{"$set": bson.M{"preGeneratedAnswers": answers}})
	return err
}

func (r *VideoRepository) Delete(ctx context.Context, videoID, userID string) error {
	res, err := r.collection.DeleteOne(ctx, bson.M{"_id": videoID, "userId": userID})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return model.ErrVideoNotFound
	}
	return nil
}
