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

type UserProfileRepository struct {
	collection *mongo.Collection
}

func NewUserProfileRepository(db *mongo.Database) repository.IUserProfile {
	return &UserProfileRepository{collection: db.Collection("users")}
}

func (r *UserProfileRepository) Get(ctx context.Context, userID string) (*model.UserProfile, error) {
	var user model.UserProfile
	err := r.collection.FindOne(ctx, bson.M{"_id": userID}).Decode(&user)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, model.ErrUserNotFound
		}
		return nil, err
	}
	return &user, nil
}

func (r *UserProfileRepository) GetOrCreate(ctx context.Context, userID, email string) (*model.UserProfile, error) {
	now := time.Now().UTC()
	update := bson.M{"$setOnInsert": bson.M{
		"email":     email,
		"plan":      model.PlanFree,
		"createdAt": now,
		"updatedAt": now,
	}}
	opts := options.FindOneAndUpdate().
		SetUpsert(true).
		SetReturnDocument(options.After)
	var user model.UserProfile
	err := r.collection.FindOneAndUpdate(ctx, bson.M{"_id": userID}, update, opts).Decode(&user)
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *UserProfileRepository) UpdatePlan(ctx context.Context, userID string, plan model.Plan, expiry *time.Time) error {
	set := bson.M{"plan": plan, "updatedAt": time.Now().UTC()}
	update := bson.M{"$set": set}
	if expiry != nil {
		set["planExpiry"] = *expiry
	} else {
		update["$unset"] = bson.M{"planExpiry": ""}
	}
	res, err := r.collection.UpdateOne(ctx, bson.M{"_id": userID}, update)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return model.ErrUserNotFound
	}
	return nil
}

func (r *UserProfileRepository) ListExpired(ctx context.Context, now time.Time) ([]model.UserProfile, error) {
	filter := bson.M{
		"plan":       bson.M{"$ne": model.PlanFree},
		"planExpiry": bson.M{"$lte": now},
	}
	cursor, err := r.collection.Find(ctx, filter)
	if err != nil {
		return nil, err
	}
	defer func(cursor *mongo.Cursor, ctx context.Context) {
		if err := cursor.Close(ctx); err != nil {
			logger.GetLogger().WithField("error", err).Error("Error while closing cursor")
		}
	}(cursor, ctx)

	var users []model.UserProfile
	for cursor.Next(ctx) {
		var user model.UserProfile
		if err := cursor.Decode(&user); err != nil {
			logger.GetLogger().WithField("error", err).Error("Error while decoding user")
			continue
		}
		users = append(users, user)
	}
	return users, cursor.Err()
}
