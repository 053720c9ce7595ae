package usecase_test

import (
	"context"
	"testing"
	"time"

	"comment-insights/domain/model"
	"comment-insights/usecase"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func commentAt(id string, publishedAt time.Time, likes int64, analysis *model.Analysis) model.Comment {
	return model.Comment{
		CommentID:   id,
		VideoID:     "vid-1",
		Author:      "viewer",
		Text:        "comment " + id,
		LikeCount:   likes,
		PublishedAt: publishedAt,
		Analysis:    analysis,
	}
}

func detectorDeps(comments []model.Comment) (*MockAlertRepository, *MockCommentRepository, *MockNotifier) {
	alertRepo := new(MockAlertRepository)
	commentRepo := new(MockCommentRepository)
	notifier := new(MockNotifier)
	commentRepo.On("ListSince", mock.Anything, "vid-1", mock.Anything).Return(comments, nil)
	return alertRepo, commentRepo, notifier
}

func capturedAlerts(alertRepo *MockAlertRepository, notifier *MockNotifier) *[]model.Alert {
	var created []model.Alert
	alertRepo.On("ExistsRecent", mock.Anything, "vid-1", mock.Anything, mock.Anything).Return(false, nil)
	alertRepo.On("Create", mock.Anything, mock.Anything).Run(func(args mock.Arguments) {
		created = append(created, *args.Get(1).(*model.Alert))
	}).Return(nil)
	notifier.On("Notify", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return()
	return &created
}

func TestAlertUseCase_DetectForVideo(t *testing.T) {
	ctx := context.Background()
	now := time.Now().UTC()

	t.Run("comment spike at five times the hourly baseline", func(t *testing.T) {
		comments := []model.Comment{
			commentAt("b1", now.Add(-3*time.Hour), 0, nil),
			commentAt("b2", now.Add(-6*time.Hour), 0, nil),
		}
		for i := 0; i < 6; i++ {
			comments = append(comments, commentAt("h"+string(rune('0'+i)), now.Add(-10*time.Minute), 0, nil))
		}
		alertRepo, commentRepo, notifier := detectorDeps(comments)
		created := capturedAlerts(alertRepo, notifier)

		alerts := usecase.NewAlertUseCase(alertRepo, commentRepo, notifier)
		assert.NoError(t, alerts.DetectForVideo(ctx, "user-1", "vid-1"))

		assert.Len(t, *created, 1)
		assert.Equal(t, model.AlertKindSpike, (*created)[0].Kind)
		assert.Equal(t, model.SeverityHigh, (*created)[0].Severity)
	})

	t.Run("a tenfold spike is critical", func(t *testing.T) {
		comments := []model.Comment{
			commentAt("b1", now.Add(-3*time.Hour), 0, nil),
			commentAt("b2", now.Add(-6*time.Hour), 0, nil),
		}
		for i := 0; i < 12; i++ {
			comments = append(comments, commentAt("h"+string(rune('a'+i)), now.Add(-10*time.Minute), 0, nil))
		}
		alertRepo, commentRepo, notifier := detectorDeps(comments)
		created := capturedAlerts(alertRepo, notifier)

		alerts := usecase.NewAlertUseCase(alertRepo, commentRepo, notifier)
		assert.NoError(t, alerts.DetectForVideo(ctx, "user-1", "vid-1"))

		assert.Len(t, *created, 1)
		assert.Equal(t, model.SeverityCritical, (*created)[0].Severity)
	})

	t.Run("a burst over a multi-day baseline still registers", func(t *testing.T) {
		// steady one-per-hour trickle days ago, then a sudden burst
		comments := []model.Comment{
			commentAt("b1", now.Add(-30*time.Hour), 0, nil),
			commentAt("b2", now.Add(-50*time.Hour), 0, nil),
			commentAt("b3", now.Add(-70*time.Hour), 0, nil),
		}
		for i := 0; i < 12; i++ {
			comments = append(comments, commentAt("h"+string(rune('a'+i)), now.Add(-10*time.Minute), 0, nil))
		}
		alertRepo, commentRepo, notifier := detectorDeps(comments)
		created := capturedAlerts(alertRepo, notifier)

		alerts := usecase.NewAlertUseCase(alertRepo, commentRepo, notifier)
		assert.NoError(t, alerts.DetectForVideo(ctx, "user-1", "vid-1"))

		assert.Len(t, *created, 1)
		assert.Equal(t, model.AlertKindSpike, (*created)[0].Kind)
		assert.Equal(t, model.SeverityCritical, (*created)[0].Severity)
	})

	t.Run("no spike without enough baseline buckets", func(t *testing.T) {
		comments := []model.Comment{
			commentAt("b1", now.Add(-3*time.Hour), 0, nil),
		}
		for i := 0; i < 20; i++ {
			comments = append(comments, commentAt("h"+string(rune('a'+i)), now.Add(-10*time.Minute), 0, nil))
		}
		alertRepo, commentRepo, notifier := detectorDeps(comments)
		created := capturedAlerts(alertRepo, notifier)

		alerts := usecase.NewAlertUseCase(alertRepo, commentRepo, notifier)
		assert.NoError(t, alerts.DetectForVideo(ctx, "user-1", "vid-1"))

		assert.Empty(t, *created)
	})

	t.Run("sentiment collapsing below zero is high severity", func(t *testing.T) {
		var comments []model.Comment
		for i := 0; i < 5; i++ {
			comments = append(comments, commentAt("t"+string(rune('0'+i)), now.Add(-2*time.Hour),
				0, &model.Analysis{Category: model.CategoryComplaint, Sentiment: -0.5}))
			comments = append(comments, commentAt("p"+string(rune('0'+i)), now.Add(-30*time.Hour),
				0, &model.Analysis{Category: model.CategoryPraise, Sentiment: 0.5}))
		}
		alertRepo, commentRepo, notifier := detectorDeps(comments)
		created := capturedAlerts(alertRepo, notifier)

		alerts := usecase.NewAlertUseCase(alertRepo, commentRepo, notifier)
		assert.NoError(t, alerts.DetectForVideo(ctx, "user-1", "vid-1"))

		assert.Len(t, *created, 1)
		assert.Equal(t, model.AlertKindSentimentDrop, (*created)[0].Kind)
		assert.Equal(t, model.SeverityHigh, (*created)[0].Severity)
	})

	t.Run("a steep relative drop fires even when sentiment stays positive", func(t *testing.T) {
		// 0.4 to 0.1 is a 75% relative drop
		var comments []model.Comment
		for i := 0; i < 5; i++ {
			comments = append(comments, commentAt("t"+string(rune('0'+i)), now.Add(-2*time.Hour),
				0, &model.Analysis{Category: model.CategoryNeutral, Sentiment: 0.1}))
			comments = append(comments, commentAt("p"+string(rune('0'+i)), now.Add(-30*time.Hour),
				0, &model.Analysis{Category: model.CategoryPraise, Sentiment: 0.4}))
		}
		alertRepo, commentRepo, notifier := detectorDeps(comments)
		created := capturedAlerts(alertRepo, notifier)

		alerts := usecase.NewAlertUseCase(alertRepo, commentRepo, notifier)
		assert.NoError(t, alerts.DetectForVideo(ctx, "user-1", "vid-1"))

		assert.Len(t, *created, 1)
		assert.Equal(t, model.AlertKindSentimentDrop, (*created)[0].Kind)
		assert.Equal(t, model.SeverityHigh, (*created)[0].Severity)
	})

	t.Run("a moderate relative drop is medium severity", func(t *testing.T) {
		// 0.5 to 0.3 is a 40% relative drop
		var comments []model.Comment
		for i := 0; i < 5; i++ {
			comments = append(comments, commentAt("t"+string(rune('0'+i)), now.Add(-2*time.Hour),
				0, &model.Analysis{Category: model.CategoryNeutral, Sentiment: 0.3}))
			comments = append(comments, commentAt("p"+string(rune('0'+i)), now.Add(-30*time.Hour),
				0, &model.Analysis{Category: model.CategoryPraise, Sentiment: 0.5}))
		}
		alertRepo, commentRepo, notifier := detectorDeps(comments)
		created := capturedAlerts(alertRepo, notifier)

		alerts := usecase.NewAlertUseCase(alertRepo, commentRepo, notifier)
		assert.NoError(t, alerts.DetectForVideo(ctx, "user-1", "vid-1"))

		assert.Len(t, *created, 1)
		assert.Equal(t, model.SeverityMedium, (*created)[0].Severity)
	})

	t.Run("a negative baseline cannot drop further", func(t *testing.T) {
		var comments []model.Comment
		for i := 0; i < 5; i++ {
			comments = append(comments, commentAt("t"+string(rune('0'+i)), now.Add(-2*time.Hour),
				0, &model.Analysis{Sentiment: -0.8}))
			comments = append(comments, commentAt("p"+string(rune('0'+i)), now.Add(-30*time.Hour),
				0, &model.Analysis{Sentiment: -0.2}))
		}
		alertRepo, commentRepo, notifier := detectorDeps(comments)
		created := capturedAlerts(alertRepo, notifier)

		alerts := usecase.NewAlertUseCase(alertRepo, commentRepo, notifier)
		assert.NoError(t, alerts.DetectForVideo(ctx, "user-1", "vid-1"))

		assert.Empty(t, *created)
	})

	t.Run("no sentiment alert below the sample minimum", func(t *testing.T) {
		var comments []model.Comment
		for i := 0; i < 3; i++ {
			comments = append(comments, commentAt("t"+string(rune('0'+i)), now.Add(-2*time.Hour),
				0, &model.Analysis{Sentiment: -0.9}))
			comments = append(comments, commentAt("p"+string(rune('0'+i)), now.Add(-30*time.Hour),
				0, &model.Analysis{Sentiment: 0.9}))
		}
		alertRepo, commentRepo, notifier := detectorDeps(comments)
		created := capturedAlerts(alertRepo, notifier)

		alerts := usecase.NewAlertUseCase(alertRepo, commentRepo, notifier)
		assert.NoError(t, alerts.DetectForVideo(ctx, "user-1", "vid-1"))

		assert.Empty(t, *created)
	})

	t.Run("three highly toxic comments raise an alert with samples", func(t *testing.T) {
		var comments []model.Comment
		for i := 0; i < 3; i++ {
			comments = append(comments, commentAt("x"+string(rune('0'+i)), now.Add(-2*time.Hour),
				0, &model.Analysis{Category: model.CategoryComplaint, Toxicity: 0.9}))
		}
		alertRepo, commentRepo, notifier := detectorDeps(comments)
		created := capturedAlerts(alertRepo, notifier)

		alerts := usecase.NewAlertUseCase(alertRepo, commentRepo, notifier)
		assert.NoError(t, alerts.DetectForVideo(ctx, "user-1", "vid-1"))

		assert.Len(t, *created, 1)
		alert := (*created)[0]
		assert.Equal(t, model.AlertKindToxicity, alert.Kind)
		assert.Equal(t, model.SeverityHigh, alert.Severity)
		assert.Len(t, alert.Evidence["samples"], 3)
	})

	t.Run("a comment far above the average likes goes viral", func(t *testing.T) {
		var comments []model.Comment
		for i := 0; i < 20; i++ {
			comments = append(comments, commentAt("q"+string(rune('a'+i)), now.Add(-2*time.Hour), 0, nil))
		}
		comments = append(comments, commentAt("hot", now.Add(-2*time.Hour), 600, nil))

		alertRepo, commentRepo, notifier := detectorDeps(comments)
		created := capturedAlerts(alertRepo, notifier)

		alerts := usecase.NewAlertUseCase(alertRepo, commentRepo, notifier)
		assert.NoError(t, alerts.DetectForVideo(ctx, "user-1", "vid-1"))

		assert.Len(t, *created, 1)
		alert := (*created)[0]
		assert.Equal(t, model.AlertKindViral, alert.Kind)
		assert.Equal(t, model.SeverityMedium, alert.Severity)
		assert.Equal(t, "hot", alert.Evidence["comment_id"])
		// medium severity stays in-app
		notifier.AssertNotCalled(t, "Notify", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("an alert of the same kind within a day is suppressed", func(t *testing.T) {
		var comments []model.Comment
		for i := 0; i < 3; i++ {
			comments = append(comments, commentAt("x"+string(rune('0'+i)), now.Add(-2*time.Hour),
				0, &model.Analysis{Toxicity: 0.9}))
		}
		alertRepo, commentRepo, notifier := detectorDeps(comments)
		alertRepo.On("ExistsRecent", mock.Anything, "vid-1", model.AlertKindToxicity, 24*time.Hour).Return(true, nil)

		alerts := usecase.NewAlertUseCase(alertRepo, commentRepo, notifier)
		assert.NoError(t, alerts.DetectForVideo(ctx, "user-1", "vid-1"))

		alertRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
		notifier.AssertNotCalled(t, "Notify", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("no comments, no detectors", func(t *testing.T) {
		alertRepo, commentRepo, notifier := detectorDeps([]model.Comment{})

		alerts := usecase.NewAlertUseCase(alertRepo, commentRepo, notifier)
		assert.NoError(t, alerts.DetectForVideo(ctx, "user-1", "vid-1"))

		alertRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})
}
