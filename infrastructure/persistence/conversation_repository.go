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

type ConversationRepository struct {
	collection *mongo.Collection
}

func NewConversationRepository(db *mongo.Database) repository.IConversation {
	return &ConversationRepository{collection: db.Collection("conversations")}
}

func (r *ConversationRepository) Get(ctx context.Context, conversationID, userID string) (*model.Conversation, error) {
	var conversation model.Conversation
	err := r.collection.FindOne(ctx, bson.M{"_id": conversationID, "userId": userID}).Decode(&conversation)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, err
	}
	return &conversation, nil
}

func (r *ConversationRepository) AppendTurns(ctx context.Context, conversationID, userID, videoID string, turns []model.ConversationTurn) error {
	if len(turns) == 0 {
		return nil
	}
	now := time.Now().UTC()
	update := bson.M{
		"$push": bson.M{"turns": bson.M{"$each": turns}},
		"$set":  bson.M{"updatedAt": now},
		"$setOnInsert": bson.M{
			"userId":    userID,
			"videoId":   videoID,
			"createdAt": now,
		},
	}
	_, err := r.collection.UpdateOne(ctx, bson.M{"_id": conversationID}, update, options.UpdateOne().SetUpsert(true))
	return err
}
