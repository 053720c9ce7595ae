package http

import (
	"strconv"

	"comment-insights/usecase"

	"github.com/gin-gonic/gin"
)

// IAlertHandler exposes the alert feed.
type IAlertHandler interface {
	List(ctx *gin.Context)
	MarkRead(ctx *gin.Context)
}

type AlertHandler struct {
	alertUseCase usecase.IAlertUseCase
}

func NewAlertHandler(alertUseCase usecase.IAlertUseCase) IAlertHandler {
	return &AlertHandler{alertUseCase: alertUseCase}
}

func (h *AlertHandler) List(ctx *gin.Context) {
	userID := ctx.GetString("user_id")
	unreadOnly := ctx.Query("unread") == "true"
	videoID := ctx.Query("videoId")
	limit, _ := strconv.Atoi(ctx.DefaultQuery("limit", "50"))

	alerts, err := h.alertUseCase.List(ctx.Request.Context(), userID, videoID, unreadOnly, limit)
	if err != nil {
		respondError(ctx, err)
		return
	}
	unread, err := h.alertUseCase.CountUnread(ctx.Request.Context(), userID)
	if err != nil {
		respondError(ctx, err)
		return
	}
	respondOK(ctx, gin.H{"alerts": alerts, "unread_count": unread})
}

func (h *AlertHandler) MarkRead(ctx *gin.Context) {
	err := h.alertUseCase.MarkRead(ctx.Request.Context(), ctx.GetString("user_id"), ctx.Param("alertId"))
	if err != nil {
		respondError(ctx, err)
		return
	}
	respondOK(ctx, gin.H{"marked": true})
}
