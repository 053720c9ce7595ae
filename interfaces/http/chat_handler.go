package http

import (
	"comment-insights/domain/dto"
	"comment-insights/usecase"

	"github.com/gin-gonic/gin"
)

// IChatHandler exposes the question-answering endpoint.
type IChatHandler interface {
	Ask(ctx *gin.Context)
}

type ChatHandler struct {
	chatUseCase usecase.IChatUseCase
}

func NewChatHandler(chatUseCase usecase.IChatUseCase) IChatHandler {
	return &ChatHandler{chatUseCase: chatUseCase}
}

func (h *ChatHandler) Ask(ctx *gin.Context) {
	var req dto.ChatRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		respondBadRequest(ctx, err)
		return
	}
	answer, err := h.chatUseCase.Ask(ctx.Request.Context(), ctx.GetString("user_id"), ctx.Param("videoId"), req)
	if err != nil {
		respondError(ctx, err)
		return
	}
	respondOK(ctx, answer)
}
