package http

import (
	"strconv"

	"comment-insights/domain/dto"
	"comment-insights/usecase"

	"github.com/gin-gonic/gin"
)

// IVideoHandler exposes tracked-video reads and deletion.
type IVideoHandler interface {
	List(ctx *gin.Context)
	Get(ctx *gin.Context)
	ListComments(ctx *gin.Context)
	Delete(ctx *gin.Context)
}

type VideoHandler struct {
	videoUseCase usecase.IVideoUseCase
}

func NewVideoHandler(videoUseCase usecase.IVideoUseCase) IVideoHandler {
	return &VideoHandler{videoUseCase: videoUseCase}
}

func (h *VideoHandler) List(ctx *gin.Context) {
	limit, _ := strconv.Atoi(ctx.DefaultQuery("limit", "25"))
	offset, _ := strconv.Atoi(ctx.DefaultQuery("offset", "0"))

	videos, total, err := h.videoUseCase.List(ctx.Request.Context(), ctx.GetString("user_id"), limit, offset)
	if err != nil {
		respondError(ctx, err)
		return
	}
	respondOK(ctx, gin.H{"videos": videos, "total": total})
}

func (h *VideoHandler) Get(ctx *gin.Context) {
	video, err := h.videoUseCase.Get(ctx.Request.Context(), ctx.GetString("user_id"), ctx.Param("videoId"))
	if err != nil {
		respondError(ctx, err)
		return
	}
	respondOK(ctx, video)
}

func (h *VideoHandler) ListComments(ctx *gin.Context) {
	var req dto.CommentListRequest
	if err := ctx.ShouldBindQuery(&req); err != nil {
		respondBadRequest(ctx, err)
		return
	}
	page, err := h.videoUseCase.ListComments(ctx.Request.Context(), ctx.GetString("user_id"), ctx.Param("videoId"), req)
	if err != nil {
		respondError(ctx, err)
		return
	}
	respondOK(ctx, page)
}

func (h *VideoHandler) Delete(ctx *gin.Context) {
	err := h.videoUseCase.Delete(ctx.Request.Context(), ctx.GetString("user_id"), ctx.Param("videoId"))
	if err != nil {
		respondError(ctx, err)
		return
	}
	respondOK(ctx, gin.H{"deleted": true})
}
