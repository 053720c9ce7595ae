package model

import "time"

// Category is the single label the classifier assigns to a comment.
type Category string

const (
	CategoryQuestion   Category = "question"
	CategoryPraise     Category = "praise"
	CategoryComplaint  Category = "complaint"
	CategorySpam       Category = "spam"
	CategorySuggestion Category = "suggestion"
	CategoryNeutral    Category = "neutral"
)

// ValidCategory reports whether c is one of the known labels.
func ValidCategory(c Category) bool {
	switch c {
	case CategoryQuestion, CategoryPraise, CategoryComplaint, CategorySpam, CategorySuggestion, CategoryNeutral:
		return true
	}
	return false
}

// Analysis is the classifier verdict attached to a comment. A nil Analysis
// means the comment has not been classified yet.
type Analysis struct {
	Category  Category `bson:"category" json:"category"`
	Sentiment float64  `bson:"sentiment" json:"sentiment"`
	Toxicity  float64  `bson:"toxicity" json:"toxicity"`
	// ExtractedQuestion holds the concrete question being asked, set only
	// for the question category.
	ExtractedQuestion string    `bson:"extractedQuestion,omitempty" json:"extracted_question,omitempty"`
	AnalyzedAt        time.Time `bson:"analyzedAt" json:"analyzed_at"`
}

// Comment is one ingested YouTube comment. The document id is the platform's
// comment id, which is what makes re-ingestion a no-op.
type Comment struct {
	CommentID       string    `bson:"_id" json:"comment_id"`
	VideoID         string    `bson:"videoId" json:"video_id"`
	Author          string    `bson:"author" json:"author"`
	AuthorChannelID string    `bson:"authorChannelId,omitempty" json:"author_channel_id,omitempty"`
	AuthorImage     string    `bson:"authorImage,omitempty" json:"author_image,omitempty"`
	Text            string    `bson:"text" json:"text"`
	LikeCount       int64     `bson:"likeCount" json:"like_count"`
	ReplyCount      int64     `bson:"replyCount" json:"reply_count"`
	PublishedAt     time.Time `bson:"publishedAt" json:"published_at"`
	Analysis        *Analysis `bson:"analysis,omitempty" json:"analysis,omitempty"`
	CreatedAt       time.Time `bson:"createdAt" json:"created_at"`
}
