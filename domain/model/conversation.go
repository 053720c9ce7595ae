package model

import "time"

// ConversationTurn is one message in a chat conversation.
type ConversationTurn struct {
	Role      string    `bson:"role" json:"role"`
	Content   string    `bson:"content" json:"content"`
	CreatedAt time.Time `bson:"createdAt" json:"created_at"`
}

// Conversation threads a user's questions about one video so follow-ups can
// reference earlier answers. Only a sliding window of recent turns travels
// with the prompt.
type Conversation struct {
	ConversationID string             `bson:"_id" json:"conversation_id"`
	UserID         string             `bson:"userId" json:"user_id"`
	VideoID        string             `bson:"videoId" json:"video_id"`
	Turns          []ConversationTurn `bson:"turns" json:"turns"`
	CreatedAt      time.Time          `bson:"createdAt" json:"created_at"`
	UpdatedAt      time.Time          `bson:"updatedAt" json:"updated_at"`
}
