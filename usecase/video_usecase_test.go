package usecase_test

import (
	"context"
	"testing"

	"comment-insights/domain/dto"
	"comment-insights/domain/model"
	"comment-insights/usecase"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func TestVideoUseCase_ListComments(t *testing.T) {
	ctx := context.Background()

	t.Run("filters pass through and paging defaults apply", func(t *testing.T) {
		videoRepo := new(MockVideoRepository)
		commentRepo := new(MockCommentRepository)

		req := dto.CommentListRequest{Category: "complaint", Sort: "likes"}
		videoRepo.On("GetForUser", mock.Anything, "vid-1", "user-1").
			Return(&model.Video{VideoID: "vid-1", UserID: "user-1"}, nil)
		commentRepo.On("ListByVideo", mock.Anything, "vid-1", req).
			Return(likedComments(3), int64(3), nil)

		videos := usecase.NewVideoUseCase(videoRepo, commentRepo, nil)
		page, err := videos.ListComments(ctx, "user-1", "vid-1", req)

		assert.NoError(t, err)
		assert.Len(t, page.Comments, 3)
		assert.Equal(t, int64(3), page.Total)
		assert.Equal(t, 1, page.Page)
		assert.Equal(t, 25, page.PageSize)
	})

	t.Run("another user's video stays hidden", func(t *testing.T) {
		videoRepo := new(MockVideoRepository)
		commentRepo := new(MockCommentRepository)

		videoRepo.On("GetForUser", mock.Anything, "vid-1", "user-2").Return(nil, model.ErrVideoNotFound)

		videos := usecase.NewVideoUseCase(videoRepo, commentRepo, nil)
		_, err := videos.ListComments(ctx, "user-2", "vid-1", dto.CommentListRequest{})

		assert.ErrorIs(t, err, model.ErrVideoNotFound)
		commentRepo.AssertNotCalled(t, "ListByVideo", mock.Anything, mock.Anything, mock.Anything)
	})
}

func TestVideoUseCase_Delete(t *testing.T) {
	videoRepo := new(MockVideoRepository)
	commentRepo := new(MockCommentRepository)
	answerCache := new(MockAnswerCache)

	videoRepo.On("Delete", mock.Anything, "vid-1", "user-1").Return(nil)
	commentRepo.On("DeleteByVideo", mock.Anything, "vid-1").Return(nil)
	answerCache.On("InvalidateVideo", mock.Anything, "vid-1").Return(nil)

	videos := usecase.NewVideoUseCase(videoRepo, commentRepo, answerCache)
	err := videos.Delete(context.Background(), "user-1", "vid-1")

	assert.NoError(t, err)
	videoRepo.AssertExpectations(t)
	commentRepo.AssertExpectations(t)
	answerCache.AssertExpectations(t)
}
