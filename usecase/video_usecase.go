package usecase

import (
	"context"

	"comment-insights/domain/dto"
	"comment-insights/domain/model"
	"comment-insights/domain/repository"
	"comment-insights/infrastructure/logger"
)

// IVideoUseCase is the read side: listing tracked videos and browsing their
// analyzed comments.
type IVideoUseCase interface {
	List(ctx context.Context, userID string, limit, offset int) ([]model.Video, int64, error)
	Get(ctx context.Context, userID, videoID string) (*model.Video, error)
	ListComments(ctx context.Context, userID, videoID string, req dto.CommentListRequest) (*dto.CommentListResponse, error)
	// Delete removes the video and its comments. Spent quota is not refunded.
	Delete(ctx context.Context, userID, videoID string) error
}

type VideoUseCase struct {
	videoRepository   repository.IVideo
	commentRepository repository.IComment
	answerCache       repository.IAnswerCache
}

func NewVideoUseCase(videoRepository repository.IVideo, commentRepository repository.IComment, answerCache repository.IAnswerCache) IVideoUseCase {
	return &VideoUseCase{
		videoRepository:   videoRepository,
		commentRepository: commentRepository,
		answerCache:       answerCache,
	}
}

func (v *VideoUseCase) List(ctx context.Context, userID string, limit, offset int) ([]model.Video, int64, error) {
	return v.videoRepository.ListByUser(ctx, userID, limit, offset)
}

func (v *VideoUseCase) Get(ctx context.Context, userID, videoID string) (*model.Video, error) {
	return v.videoRepository.GetForUser(ctx, videoID, userID)
}

func (v *VideoUseCase) ListComments(ctx context.Context, userID, videoID string, req dto.CommentListRequest) (*dto.CommentListResponse, error) {
	if _, err := v.videoRepository.GetForUser(ctx, videoID, userID); err != nil {
		return nil, err
	}
	comments, total, err := v.commentRepository.ListByVideo(ctx, videoID, req)
	if err != nil {
		return nil, err
	}
	page := req.Page
	if page < 1 {
		page = 1
	}
	pageSize := req.PageSize
	if pageSize <= 0 || pageSize > 100 {
		pageSize = 25
	}
	return &dto.CommentListResponse{
		Comments: comments,
		Total:    total,
		Page:     page,
		PageSize: pageSize,
	}, nil
}

func (v *VideoUseCase) Delete(ctx context.Context, userID, videoID string) error {
	if err := v.videoRepository.Delete(ctx, videoID, userID); err != nil {
		return err
	}
	if err := v.commentRepository.DeleteByVideo(ctx, videoID); err != nil {
		return err
	}
	if v.answerCache != nil {
		if err := v.answerCache.InvalidateVideo(ctx, videoID); err != nil {
			logger.GetLogger().WithField("error", err).Warn("Failed to invalidate answer cache")
		}
	}
	logger.GetLogger().WithField("videoId", videoID).Info("Video deleted")
	return nil
}
