package persistence

import (
	"context"
	"fmt"
	"time"

	"comment-insights/infrastructure/configuration"
	"comment-insights/infrastructure/logger"

	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

// NewMongoDb connects to MongoDB using the configured host and credentials
// and verifies the connection with a short ping.
func NewMongoDb(cfg configuration.Db) (*mongo.Client, error) {
	uri := fmt.Sprintf("mongodb://%s:%s", cfg.Host, cfg.Port)
	if cfg.User != "" {
		uri = fmt.Sprintf("mongodb://%s:%s@%s:%s", cfg.User, cfg.Password, cfg.Host, cfg.Port)
	}

	client, err := mongo.Connect(options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("connect mongo: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx, nil); err != nil {
		return nil, fmt.Errorf("ping mongo: %w", err)
	}

	logger.GetLogger().WithField("host", cfg.Host).Info("MongoDB connected")
	return client, nil
}
