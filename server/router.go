package server

import (
	"net/http"
	"time"

	"comment-insights/domain/repository"
	"comment-insights/infrastructure/realtime"
	httpHandler "comment-insights/interfaces/http"
	"comment-insights/interfaces/middleware"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

func InitiateRouter(
	syncHandler httpHandler.ISyncHandler,
	videoHandler httpHandler.IVideoHandler,
	chatHandler httpHandler.IChatHandler,
	quotaHandler httpHandler.IQuotaHandler,
	alertHandler httpHandler.IAlertHandler,
	userRepository repository.IUserProfile,
	rateCounter middleware.Counter,
	hub *realtime.Hub,
) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"http://localhost:4200", "http://localhost:3000", "https://localhost:4200"},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", "X-Requested-With"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	router.GET("/healthz", func(ctx *gin.Context) {
		ctx.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := router.Group("api")
	api.Use(middleware.Auth(userRepository))
	if rateCounter != nil {
		api.Use(middleware.RateLimit(rateCounter))
	}

	// Sync pipeline
	api.POST("/videos/analyze", syncHandler.Analyze)
	api.POST("/videos/:videoId/resync", syncHandler.Resync)
	api.GET("/sync/jobs", syncHandler.ListJobs)
	api.GET("/sync/jobs/:jobId", syncHandler.GetJob)
	if hub != nil {
		api.GET("/sync/stream", hub.Serve)
	}

	// Tracked videos and comments
	api.GET("/videos", videoHandler.List)
	api.GET("/videos/:videoId", videoHandler.Get)
	api.GET("/videos/:videoId/comments", videoHandler.ListComments)
	api.DELETE("/videos/:videoId", videoHandler.Delete)

	// Question answering
	api.POST("/videos/:videoId/chat", chatHandler.Ask)

	// Quota and plans
	api.GET("/quota", quotaHandler.Summary)
	api.PUT("/quota/plan", quotaHandler.ChangePlan)

	// Alerts
	api.GET("/alerts", alertHandler.List)
	api.PATCH("/alerts/:alertId/read", alertHandler.MarkRead)

	return router
}
