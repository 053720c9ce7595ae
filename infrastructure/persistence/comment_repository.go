package persistence

import (
	"context"
	"errors"
	"time"

	"comment-insights/domain/dto"
	"comment-insights/domain/model"
	"comment-insights/domain/repository"
	"comment-insights/infrastructure/logger"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

type CommentRepository struct {
	collection *mongo.Collection
}

func NewCommentRepository(db *mongo.Database) repository.IComment {
	return &CommentRepository{collection: db.Collection("comments")}
}

// UpsertBatch inserts only comments whose id is not stored yet. $setOnInsert
// leaves existing documents, including their analysis, untouched.
func (r *CommentRepository) UpsertBatch(ctx context.Context, comments []model.Comment) (int, error) {
	if len(comments) == 0 {
		return 0, nil
	}
	models := make([]mongo.WriteModel, 0, len(comments))
	for i := range comments {
		models = append(models, mongo.NewUpdateOneModel().
			SetFilter(bson.M{"_id": comments[i].CommentID}).
			SetUpdate(bson.M{"$setOnInsert": &comments[i]}).
			SetUpsert(true))
	}
	res, err := r.collection.BulkWrite(ctx, models, options.BulkWrite().SetOrdered(false))
	if err != nil {
		return 0, err
	}
	return int(res.UpsertedCount), nil
}

func (r *CommentRepository) ListUnanalyzed(ctx context.Context, videoID string, limit int) ([]model.Comment, error) {
	filter := bson.M{"videoId": videoID, "analysis": nil}
	opts := options.Find().SetSort(bson.D{{Key: "publishedAt", Value: 1}})
	if limit > 0 {
		opts.SetLimit(int64(limit))
	}
	return r.find(ctx, filter, opts)
}

// SetAnalysis only writes when the comment is still unanalyzed; a verdict is
// attached exactly once.
func (r *CommentRepository) SetAnalysis(ctx context.Context, commentID string, analysis model.Analysis) error {
	_, err := r.collection.UpdateOne(ctx,
		bson.M{"_id": commentID, "analysis": nil},
		bson.M{"$set": bson.M{"analysis": analysis}})
	return err
}

func (r *CommentRepository) ListSince(ctx context.Context, videoID string, since time.Time) ([]model.Comment, error) {
	filter := bson.M{"videoId": videoID, "publishedAt": bson.M{"$gte": since}}
	opts := options.Find().SetSort(bson.D{{Key: "publishedAt", Value: 1}})
	return r.find(ctx, filter, opts)
}

func (r *CommentRepository) ListByVideo(ctx context.Context, videoID string, req dto.CommentListRequest) ([]model.Comment, int64, error) {
	filter := bson.M{"videoId": videoID}
	if req.Category != "" {
		filter["analysis.category"] = req.Category
	}
	if req.Search != "" {
		filter["text"] = bson.M{"$regex": req.Search, "$options": "i"}
	}
	if req.MinLikes > 0 {
		filter["likeCount"] = bson.M{"$gte": req.MinLikes}
	}
	switch req.Sentiment {
	case "positive":
		filter["analysis.sentiment"] = bson.M{"$gt": 0.2}
	case "negative":
		filter["analysis.sentiment"] = bson.M{"$lt": -0.2}
	case "neutral":
		filter["analysis.sentiment"] = bson.M{"$gte": -0.2, "$lte": 0.2}
	}

	total, err := r.collection.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, err
	}

	sort := bson.D{{Key: "publishedAt", Value: -1}}
	switch req.Sort {
	case "oldest":
		sort = bson.D{{Key: "publishedAt", Value: 1}}
	case "likes":
		sort = bson.D{{Key: "likeCount", Value: -1}}
	}
	page := req.Page
	if page < 1 {
		page = 1
	}
	pageSize := req.PageSize
	if pageSize <= 0 || pageSize > 100 {
		pageSize = 25
	}
	opts := options.Find().
		SetSort(sort).
		SetLimit(int64(pageSize)).
		SetSkip(int64((page - 1) * pageSize))

	comments, err := r.find(ctx, filter, opts)
	if err != nil {
		return nil, 0, err
	}
	return comments, total, nil
}

func (r *CommentRepository) ListByCategory(ctx context.Context, videoID string, category model.Category, limit int) ([]model.Comment, error) {
	filter := bson.M{"videoId": videoID, "analysis.category": category}
	opts := options.Find().SetSort(bson.D{{Key: "likeCount", Value: -1}})
	if limit > 0 {
		opts.SetLimit(int64(limit))
	}
	return r.find(ctx, filter, opts)
}

func (r *CommentRepository) CountByVideo(ctx context.Context, videoID string) (int64, error) {
	return r.collection.CountDocuments(ctx, bson.M{"videoId": videoID})
}

// Aggregate computes category counts and the average sentiment over all
// analyzed comments in a single pipeline.
func (r *CommentRepository) Aggregate(ctx context.Context, videoID string) (model.VideoStats, error) {
	stats := model.VideoStats{CategoryCounts: map[string]int{}}

	total, err := r.CountByVideo(ctx, videoID)
	if err != nil {
		return stats, err
	}
	stats.TotalComments = int(total)

	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: bson.M{"videoId": videoID, "analysis": bson.M{"$ne": nil}}}},
		{{Key: "$facet", Value: bson.M{
			"categories": mongo.Pipeline{
				{{Key: "$group", Value: bson.M{"_id": "$analysis.category", "count": bson.M{"$sum": 1}}}},
			},
			"sentiment": mongo.Pipeline{
				{{Key: "$group", Value: bson.M{"_id": nil, "avg": bson.M{"$avg": "$analysis.sentiment"}}}},
			},
		}}},
	}
	cursor, err := r.collection.Aggregate(ctx, pipeline)
	if err != nil {
		return stats, err
	}
	defer func(cursor *mongo.Cursor, ctx context.Context) {
		if err := cursor.Close(ctx); err != nil {
			logger.GetLogger().WithField("error", err).Error("Error while closing cursor")
		}
	}(cursor, ctx)

	var result []struct {
		Categories []struct {
			ID    string `bson:"_id"`
			Count int    `bson:"count"`
		} `bson:"categories"`
		Sentiment []struct {
			Avg float64 `bson:"avg"`
		} `bson:"sentiment"`
	}
	if err := cursor.All(ctx, &result); err != nil {
		return stats, err
	}
	if len(result) == 0 {
		return stats, nil
	}
	for _, c := range result[0].Categories {
		stats.CategoryCounts[c.ID] = c.Count
	}
	if len(result[0].Sentiment) > 0 {
		stats.AvgSentiment = result[0].Sentiment[0].Avg
	}
	return stats, nil
}

func (r *CommentRepository) DeleteByVideo(ctx context.Context, videoID string) error {
	_, err := r.collection.DeleteMany(ctx, bson.M{"videoId": videoID})
	return err
}

func (r *CommentRepository) find(ctx context.Context, filter bson.M, opts *options.FindOptionsBuilder) ([]model.Comment, error) {
	cursor, err := r.collection.Find(ctx, filter, opts)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, err
	}
	defer func(cursor *mongo.Cursor, ctx context.Context) {
		if err := cursor.Close(ctx); err != nil {
			logger.GetLogger().WithField("error", err).Error("Error while closing cursor")
		}
	}(cursor, ctx)

	var comments []model.Comment
	for cursor.Next(ctx) {
		var comment model.Comment
		if err := cursor.Decode(&comment); err != nil {
			logger.GetLogger().WithField("error", err).Error("Error while decoding comment")
			continue
		}
		comments = append(comments, comment)
	}
	return comments, cursor.Err()
}
