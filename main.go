package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	gcppubsub "cloud.google.com/go/pubsub"

	"comment-insights/domain/repository"
	"comment-insights/infrastructure/cache"
	genaiclient "comment-insights/infrastructure/clients/genai"
	youtubeclient "comment-insights/infrastructure/clients/youtube"
	"comment-insights/infrastructure/configuration"
	"comment-insights/infrastructure/logger"
	"comment-insights/infrastructure/notification"
	"comment-insights/infrastructure/persistence"
	"comment-insights/infrastructure/realtime"
	httpHandler "comment-insights/interfaces/http"
	"comment-insights/interfaces/middleware"
	"comment-insights/server"
	"comment-insights/usecase"

	"golang.org/x/sync/errgroup"
)

var httpServer *http.Server

func recoverPanic() {
	if err := recover(); err != nil {
		logger.GetLogger().WithField("error", err).Error("Application panic recovered")
	}
}

func main() {
	defer recoverPanic()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	interrupt := make(chan os.Signal, 1)
	signal.Notify(interrupt, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(interrupt)

	g, ctx := errgroup.WithContext(ctx)

	// Load env from files (non-destructive; OS env still has precedence)
	configuration.LoadEnvFromFile("config.env", ".env")

	app := configuration.C.App

	mongoClient, err := persistence.NewMongoDb(configuration.C.Database.Mongo)
	if err != nil {
		logger.GetLogger().WithField("error", err).Error("MongoDB initialization failed")
		os.Exit(1)
	}
	db := mongoClient.Database(configuration.C.Database.Mongo.Name)

	redisClient, err := cache.NewCache(configuration.C.RedisClient)
	if err != nil {
		logger.GetLogger().WithField("error", err).Warn("Redis not available - answer caching and rate limiting disabled")
		redisClient = nil
	}

	// Notifications degrade to a logging no-op without a Pub/Sub project
	var notifier repository.INotifier = notification.NewNopNotifier()
	if projectID := configuration.C.Pubsub.ProjectID; projectID != "" {
		pubSubClient, err := gcppubsub.NewClient(ctx, projectID)
		if err != nil {
			logger.GetLogger().WithField("error", err).Warn("Pub/Sub not available - notifications disabled")
		} else {
			topic := configuration.C.Pubsub.Topic
			if topic == "" {
				topic = "notifications"
			}
			notifier = notification.NewPubSubNotifier(pubSubClient, topic)
		}
	}

	videoRepository := persistence.NewVideoRepository(db)
	commentRepository := persistence.NewCommentRepository(db)
	jobRepository := persistence.NewSyncJobRepository(db)
	usageRepository := persistence.NewUsageRepository(db)
	userRepository := persistence.NewUserProfileRepository(db)
	alertRepository := persistence.NewAlertRepository(db)
	conversationRepository := persistence.NewConversationRepository(db)

	var answerCache repository.IAnswerCache
	var rateCounter middleware.Counter
	if redisClient != nil {
		answerCache = cache.NewAnswerCache(redisClient)
		rateCounter = cache.NewRateCounter(redisClient)
	}

	youtubeConfig, err := configuration.GetYouTubeConfig()
	if err != nil {
		logger.GetLogger().WithField("error", err).Error("YouTube configuration failed")
		os.Exit(1)
	}
	platform, err := youtubeclient.NewYouTubeClient(ctx, &youtubeclient.Config{
		ClientID:     youtubeConfig.ClientID,
		ClientSecret: youtubeConfig.ClientSecret,
		RedirectURL:  youtubeConfig.RedirectURL,
		AccessToken:  youtubeConfig.AccessToken,
		RefreshToken: youtubeConfig.RefreshToken,
		APIKey:       youtubeConfig.APIKey,
	})
	if err != nil {
		logger.GetLogger().WithField("error", err).Error("YouTube client initialization failed")
		os.Exit(1)
	}

	genAI, err := genaiclient.NewGenAIClient(&genaiclient.Config{
		APIKey:  configuration.C.GenAI.APIKey,
		Model:   configuration.C.GenAI.Model,
		BaseURL: configuration.C.GenAI.BaseURL,
	})
	if err != nil {
		logger.GetLogger().WithField("error", err).Error("GenAI client initialization failed")
		os.Exit(1)
	}

	hub := realtime.NewSyncHub()

	quotaUseCase := usecase.NewQuotaUseCase(usageRepository, userRepository, notifier)
	classifierUseCase := usecase.NewClassifierUseCase(commentRepository, genAI)
	chatUseCase := usecase.NewChatUseCase(videoRepository, commentRepository, conversationRepository, genAI, quotaUseCase, answerCache)
	alertUseCase := usecase.NewAlertUseCase(alertRepository, commentRepository, notifier)
	syncUseCase := usecase.NewSyncUseCase(videoRepository, commentRepository, jobRepository, platform,
		quotaUseCase, classifierUseCase, chatUseCase, alertUseCase, answerCache, hub)
	videoUseCase := usecase.NewVideoUseCase(videoRepository, commentRepository, answerCache)

	syncHandler := httpHandler.NewSyncHandler(syncUseCase)
	videoHandler := httpHandler.NewVideoHandler(videoUseCase)
	chatHandler := httpHandler.NewChatHandler(chatUseCase)
	quotaHandler := httpHandler.NewQuotaHandler(quotaUseCase)
	alertHandler := httpHandler.NewAlertHandler(alertUseCase)

	router := server.InitiateRouter(syncHandler, videoHandler, chatHandler, quotaHandler, alertHandler,
		userRepository, rateCounter, hub)

	// Hourly sweep that drops lapsed paid plans back to free
	g.Go(func() error {
		ticker := time.NewTicker(time.Hour)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-ticker.C:
				sweepCtx, cancelSweep := context.WithTimeout(ctx, time.Minute)
				if err := quotaUseCase.DowngradeExpired(sweepCtx); err != nil {
					logger.GetLogger().WithField("error", err).Error("Plan expiry sweep failed")
				}
				cancelSweep()
			}
		}
	})

	port := app.Port
	logger.GetLogger().WithField("port", port).Info("Starting application")
	g.Go(func() error {
		httpServer = &http.Server{
			Addr:    fmt.Sprintf(":%d", port),
			Handler: router,
		}
		if err := httpServer.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	select {
	case <-interrupt:
		logger.GetLogger().Info("Application shutdown requested")
	case <-ctx.Done():
	}

	cancel()
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	if httpServer != nil {
		_ = httpServer.Shutdown(shutdownCtx)
	}

	if err := g.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		logger.GetLogger().WithField("error", err).Error("Server returned an error")
		os.Exit(2)
	}
}
