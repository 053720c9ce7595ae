package http

import (
	"errors"
	"net/http"

	"comment-insights/domain/model"
	"comment-insights/infrastructure/logger"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// respondError maps domain errors onto HTTP statuses with the shared
// response envelope. Anything unrecognized is internal: its detail goes to
// the log under a reference id and the caller only sees that reference.
func respondError(ctx *gin.Context, err error) {
	status := http.StatusInternalServerError
	switch {
	case model.IsQuotaExceeded(err):
		status = http.StatusForbidden
	case model.IsValidation(err):
		status = http.StatusBadRequest
	case errors.Is(err, model.ErrVideoNotFound),
		errors.Is(err, model.ErrJobNotFound),
		errors.Is(err, model.ErrUserNotFound),
		errors.Is(err, model.ErrAlertNotFound):
		status = http.StatusNotFound
	case errors.Is(err, model.ErrSyncInProgress):
		status = http.StatusConflict
	case errors.Is(err, model.ErrCommentsDisabled):
		status = http.StatusUnprocessableEntity
	}
	if status == http.StatusInternalServerError {
		ref := uuid.NewString()
		logger.GetLogger().WithField("error", err).WithField("ref", ref).Error("Request failed")
		ctx.JSON(status, gin.H{
			"success": false,
			"error":   "something went wrong, please try again later",
			"ref":     ref,
		})
		return
	}
	ctx.JSON(status, gin.H{"success": false, "error": err.Error()})
}

func respondBadRequest(ctx *gin.Context, err error) {
	ctx.JSON(http.StatusBadRequest, gin.H{"success": false, "error": err.Error()})
}

func respondOK(ctx *gin.Context, data interface{}) {
	ctx.JSON(http.StatusOK, gin.H{"success": true, "data": data})
}
