package dto

// ChatTurn is one prior exchange passed back by the client to keep the
// conversation coherent. Only the last few turns are used.
type ChatTurn struct {
	Question string `json:"question"`
	Answer   string `json:"answer"`
}

// ChatRequest represents a question about a video's comments. History wins
// over ConversationID when both are given; with only a ConversationID the
// server loads the thread's recent turns itself.
type ChatRequest struct {
	Question       string     `json:"question" binding:"required"`
	ConversationID string     `json:"conversation_id,omitempty"`
	History        []ChatTurn `json:"history,omitempty"`
}

// ChatResponse is the answer together with its provenance.
type ChatResponse struct {
	Answer            string   `json:"answer"`
	Confidence        float64  `json:"confidence"`
	RelatedCommentIDs []string `json:"related_comment_ids,omitempty"`
	Cached            bool     `json:"cached"`
	Intent            string   `json:"intent,omitempty"`
	ConversationID    string   `json:"conversation_id,omitempty"`
}
