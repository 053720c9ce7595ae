package http

import (
	"comment-insights/domain/dto"
	"comment-insights/domain/model"
	"comment-insights/usecase"

	"github.com/gin-gonic/gin"
)

// IQuotaHandler exposes the usage summary and plan management endpoints.
type IQuotaHandler interface {
	Summary(ctx *gin.Context)
	ChangePlan(ctx *gin.Context)
}

type QuotaHandler struct {
	quotaUseCase usecase.IQuotaUseCase
}

func NewQuotaHandler(quotaUseCase usecase.IQuotaUseCase) IQuotaHandler {
	return &QuotaHandler{quotaUseCase: quotaUseCase}
}

func (h *QuotaHandler) Summary(ctx *gin.Context) {
	summary, err := h.quotaUseCase.Summary(ctx.Request.Context(), ctx.GetString("user_id"))
	if err != nil {
		respondError(ctx, err)
		return
	}
	respondOK(ctx, summary)
}

func (h *QuotaHandler) ChangePlan(ctx *gin.Context) {
	var req dto.PlanChangeRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		respondBadRequest(ctx, err)
		return
	}
	userID := ctx.GetString("user_id")
	if err := h.quotaUseCase.ChangePlan(ctx.Request.Context(), userID, model.Plan(req.Plan)); err != nil {
		respondError(ctx, err)
		return
	}
	summary, err := h.quotaUseCase.Summary(ctx.Request.Context(), userID)
	if err != nil {
		respondError(ctx, err)
		return
	}
	respondOK(ctx, summary)
}
