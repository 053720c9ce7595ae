package persistence

import (
	"context"
	"errors"

	"comment-insights/domain/model"
	"comment-insights/domain/repository"
	"comment-insights/infrastructure/logger"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

type SyncJobRepository struct {
	collection *mongo.Collection
}

func NewSyncJobRepository(db *mongo.Database) repository.ISyncJob {
	return &SyncJobRepository{collection: db.Collection("sync_jobs")}
}

func (r *SyncJobRepository) Create(ctx context.Context, job *model.SyncJob) error {
	_, err := r.collection.InsertOne(ctx, job)
	return err
}

func (r *SyncJobRepository) Get(ctx context.Context, jobID string) (*model.SyncJob, error) {
	var job model.SyncJob
	err := r.collection.FindOne(ctx, bson.M{"_id": jobID}).Decode(&job)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, model.ErrJobNotFound
		}
		return nil, err
	}
	return &job, nil
}

func (r *SyncJobRepository) Update(ctx context.Context, job *model.SyncJob) error {
	_, err := r.collection.ReplaceOne(ctx, bson.M{"_id": job.JobID}, job)
	return err
}

func (r *SyncJobRepository) FindActiveByVideo(ctx context.Context, videoID string) (*model.SyncJob, error) {
	filter := bson.M{
		"videoId": videoID,
		"state":   bson.M{"$nin": bson.A{model.SyncStateCompleted, model.SyncStateFailed}},
	}
	var job model.SyncJob
	err := r.collection.FindOne(ctx, filter).Decode(&job)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, err
	}
	return &job, nil
}

func (r *SyncJobRepository) ListByUser(ctx context.Context, userID string, limit int) ([]model.SyncJob, error) {
	if limit <= 0 {
		limit = 20
	}
	opts := options.Find().
		SetSort(bson.D{{Key: "createdAt", Value: -1}}).
		SetLimit(int64(limit))
	cursor, err := r.collection.Find(ctx, bson.M{"userId": userID}, opts)
	if err != nil {
		return nil, err
	}
	defer func(cursor *mongo.Cursor, ctx context.Context) {
		if err := cursor.Close(ctx); err != nil {
			logger.GetLogger().WithField("error", err).Error("Error while closing cursor")
		}
	}(cursor, ctx)

	var jobs []model.SyncJob
	for cursor.Next(ctx) {
		var job model.SyncJob
		if err := cursor.Decode(&job); err != nil {
			logger.GetLogger().WithField("error", err).Error("Error while decoding sync job")
			continue
		}
		jobs = append(jobs, job)
	}
	return jobs, cursor.Err()
}
