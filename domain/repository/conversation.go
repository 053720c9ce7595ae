package repository

import (
	"context"

	"comment-insights/domain/model"
)

// IConversation defines persistence for chat conversation threads.
type IConversation interface {
	// Get returns the conversation or (nil, nil) when it does not exist or
	// belongs to another user.
	Get(ctx context.Context, conversationID, userID string) (*model.Conversation, error)
	// AppendTurns adds turns to the conversation, creating it on first use.
	AppendTurns(ctx context.Context, conversationID, userID, videoID string, turns []model.ConversationTurn) error
}
