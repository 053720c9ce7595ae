package persistence

import (
	"context"
	"errors"
	"time"

	"comment-insights/domain/model"
	"comment-insights/domain/repository"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

type UsageRepository struct {
	collection *mongo.Collection
}

func NewUsageRepository(db *mongo.Database) repository.IUsage {
	return &UsageRepository{collection: db.Collection("usage_counters")}
}

func (r *UsageRepository) GetOrCreate(ctx context.Context, userID string, resetAt time.Time) (*model.UsageCounter, error) {
	update := bson.M{"$setOnInsert": bson.M{
		"used":          bson.M{},
		"carryover":     bson.M{},
		"periodResetAt": resetAt,
	}}
	opts := options.FindOneAndUpdate().
		SetUpsert(true).
		SetReturnDocument(options.After)
	var counter model.UsageCounter
	err := r.collection.FindOneAndUpdate(ctx, bson.M{"_id": userID}, update, opts).Decode(&counter)
	if err != nil {
		return nil, err
	}
	if counter.Used == nil {
		counter.Used = map[model.Feature]int{}
	}
	if counter.Carryover == nil {
		counter.Carryover = map[model.Feature]int{}
	}
	return &counter, nil
}

// ReserveIfUnder is the single consumption path: the comparison against
// limit plus carryover and the increment happen in one FindOneAndUpdate, so
// concurrent reservations can never overspend.
func (r *UsageRepository) ReserveIfUnder(ctx context.Context, userID string, feature model.Feature, limit int) (bool, error) {
	usedField := "$used." + string(feature)
	carryField := "$carryover." + string(feature)
	filter := bson.M{
		"_id": userID,
		"$expr": bson.M{"$lt": bson.A{
			bson.M{"$ifNull": bson.A{usedField, 0}},
			bson.M{"$add": bson.A{limit, bson.M{"$ifNull": bson.A{carryField, 0}}}},
		}},
	}
	update := bson.M{"$inc": bson.M{"used." + string(feature): 1}}
	err := r.collection.FindOneAndUpdate(ctx, filter, update).Err()
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

func (r *UsageRepository) Release(ctx context.Context, userID string, feature model.Feature) error {
	filter := bson.M{"_id": userID, "used." + string(feature): bson.M{"$gt": 0}}
	_, err := r.collection.UpdateOne(ctx, filter, bson.M{"$inc": bson.M{"used." + string(feature): -1}})
	return err
}

func (r *UsageRepository) ResetPeriod(ctx context.Context, userID string, resetAt time.Time) error {
	update := bson.M{"$set": bson.M{
		"used":          bson.M{},
		"carryover":     bson.M{},
		"periodResetAt": resetAt,
	}}
	_, err := r.collection.UpdateOne(ctx, bson.M{"_id": userID}, update)
	return err
}

func (r *UsageRepository) AddCarryover(ctx context.Context, userID string, credits map[model.Feature]int) error {
	if len(credits) == 0 {
		return nil
	}
	inc := bson.M{}
	for f, v := range credits {
		if v > 0 {
			inc["carryover."+string(f)] = v
		}
	}
	if len(inc) == 0 {
		return nil
	}
	_, err := r.collection.UpdateOne(ctx, bson.M{"_id": userID}, bson.M{"$inc": inc})
	return err
}
