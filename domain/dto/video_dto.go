package dto

import "comment-insights/domain/model"

// CommentListRequest represents filters for listing a video's comments.
type CommentListRequest struct {
	Category  string `form:"category"`
	Search    string `form:"search"`
	Sort      string `form:"sort"` // newest, oldest, likes
	Page      int    `form:"page"`
	PageSize  int    `form:"page_size"`
	MinLikes  int    `form:"min_likes"`
	Sentiment string `form:"sentiment"` // positive, negative, neutral
}

// CommentListResponse is one page of comments plus the total for pagination.
type CommentListResponse struct {
	Comments []model.Comment `json:"comments"`
	Total    int64           `json:"total"`
	Page     int             `json:"page"`
	PageSize int             `json:"page_size"`
}
