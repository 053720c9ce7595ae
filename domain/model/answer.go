package model

import "time"

// CachedAnswer is one pre-generated or lazily cached chat answer, keyed in
// storage by the md5 of the canonicalized question.
type CachedAnswer struct {
	Question          string    `bson:"question" json:"question"`
	Answer            string    `bson:"answer" json:"answer"`
	Confidence        float64   `bson:"confidence" json:"confidence"`
	RelatedCommentIDs []string  `bson:"relatedCommentIds,omitempty" json:"related_comment_ids,omitempty"`
	CreatedAt         time.Time `bson:"createdAt" json:"created_at"`
}
