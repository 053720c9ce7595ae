package notification

import (
	"context"
	"encoding/json"
	"time"

	"comment-insights/domain/repository"
	"comment-insights/infrastructure/logger"

	"cloud.google.com/go/pubsub"
)

// PubSubNotifier publishes notification events to a Pub/Sub topic consumed
// by the delivery worker (email, webhooks). Publishing is fire-and-forget:
// failures are logged, never returned.
type PubSubNotifier struct {
	client *pubsub.Client
	topic  string
}

func NewPubSubNotifier(client *pubsub.Client, topic string) repository.INotifier {
	return &PubSubNotifier{client: client, topic: topic}
}

type event struct {
	UserID    string                 `json:"user_id"`
	Subject   string                 `json:"subject"`
	Payload   map[string]interface{} `json:"payload,omitempty"`
	CreatedAt time.Time              `json:"created_at"`
}

func (n *PubSubNotifier) Notify(ctx context.Context, userID, subject string, payload map[string]interface{}) {
	data, err := json.Marshal(event{
		UserID:    userID,
		Subject:   subject,
		Payload:   payload,
		CreatedAt: time.Now().UTC(),
	})
	if err != nil {
		logger.GetLogger().WithField("error", err).Error("Failed to marshal notification")
		return
	}

	topic := n.client.Topic(n.topic)
	exists, err := topic.Exists(ctx)
	if err != nil {
		logger.GetLogger().WithField("error", err).Warn("Failed to check notification topic")
		return
	}
	if !exists {
		if _, err := n.client.CreateTopic(ctx, n.topic); err != nil {
			logger.GetLogger().WithField("error", err).Warn("Failed to create notification topic")
			return
		}
	}

	serverID, err := topic.Publish(ctx, &pubsub.Message{Data: data}).Get(ctx)
	if err != nil {
		logger.GetLogger().WithField("error", err).Warn("Failed to publish notification")
		return
	}
	logger.GetLogger().WithField("serverId", serverID).Debug("Notification published")
}

// NopNotifier is used when Pub/Sub is not configured; notifications are
// logged and dropped.
type NopNotifier struct{}

func NewNopNotifier() repository.INotifier {
	return &NopNotifier{}
}

func (n *NopNotifier) Notify(_ context.Context, userID, subject string, _ map[string]interface{}) {
	logger.GetLogger().WithField("userId", userID).WithField("subject", subject).Info("Notification skipped (no pubsub configured)")
}
