package http

import (
	"net/http"
	"strconv"

	"comment-insights/domain/dto"
	"comment-insights/usecase"

	"github.com/gin-gonic/gin"
)

// ISyncHandler exposes sync submission and job status endpoints.
type ISyncHandler interface {
	Analyze(ctx *gin.Context)
	Resync(ctx *gin.Context)
	GetJob(ctx *gin.Context)
	ListJobs(ctx *gin.Context)
}

type SyncHandler struct {
	syncUseCase usecase.ISyncUseCase
}

func NewSyncHandler(syncUseCase usecase.ISyncUseCase) ISyncHandler {
	return &SyncHandler{syncUseCase: syncUseCase}
}

func (h *SyncHandler) Analyze(ctx *gin.Context) {
	var req dto.AnalyzeVideoRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		respondBadRequest(ctx, err)
		return
	}
	job, err := h.syncUseCase.Analyze(ctx.Request.Context(), ctx.GetString("user_id"), req)
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusAccepted, gin.H{"success": true, "data": dto.NewSyncJobResponse(job)})
}

func (h *SyncHandler) Resync(ctx *gin.Context) {
	job, err := h.syncUseCase.Resync(ctx.Request.Context(), ctx.GetString("user_id"), ctx.Param("videoId"))
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusAccepted, gin.H{"success": true, "data": dto.NewSyncJobResponse(job)})
}

func (h *SyncHandler) GetJob(ctx *gin.Context) {
	job, err := h.syncUseCase.GetJob(ctx.Request.Context(), ctx.GetString("user_id"), ctx.Param("jobId"))
	if err != nil {
		respondError(ctx, err)
		return
	}
	respondOK(ctx, dto.NewSyncJobResponse(job))
}

func (h *SyncHandler) ListJobs(ctx *gin.Context) {
	limit, _ := strconv.Atoi(ctx.DefaultQuery("limit", "20"))
	jobs, err := h.syncUseCase.ListJobs(ctx.Request.Context(), ctx.GetString("user_id"), limit)
	if err != nil {
		respondError(ctx, err)
		return
	}
	out := make([]dto.SyncJobResponse, 0, len(jobs))
	for i := range jobs {
		out = append(out, dto.NewSyncJobResponse(&jobs[i]))
	}
	respondOK(ctx, out)
}
