package usecase

import (
	"context"
	"fmt"
	"time"

	"comment-insights/domain/model"
	"comment-insights/domain/repository"
	"comment-insights/infrastructure/logger"

	"github.com/google/uuid"
)

const (
	alertDedupWindow = 24 * time.Hour

	spikeBaselineWindow = 7 * 24 * time.Hour
	spikeHighFactor     = 5.0
	spikeCriticalFactor = 10.0
	spikeMinBuckets     = 2

	sentimentDropMedium  = 0.30
	sentimentDropHigh    = 0.50
	sentimentMinSamples  = 5
	toxicityThreshold    = 0.7
	toxicityMinCount     = 3
	viralMinLikes        = 500
	viralAvgLikesFactor  = 10.0
	alertEvidenceSamples = 3
)

// IAlertUseCase runs the detectors after each sync and serves the alert feed.
type IAlertUseCase interface {
	// DetectForVideo runs every detector over the video's comments. A
	// detector that already fired for the video in the last 24h stays quiet.
	DetectForVideo(ctx context.Context, userID, videoID string) error
	List(ctx context.Context, userID, videoID string, unreadOnly bool, limit int) ([]model.Alert, error)
	MarkRead(ctx context.Context, userID, alertID string) error
	CountUnread(ctx context.Context, userID string) (int64, error)
}

type AlertUseCase struct {
	alertRepository   repository.IAlert
	commentRepository repository.IComment
	notifier          repository.INotifier
}

func NewAlertUseCase(alertRepository repository.IAlert, commentRepository repository.IComment, notifier repository.INotifier) IAlertUseCase {
	return &AlertUseCase{
		alertRepository:   alertRepository,
		commentRepository: commentRepository,
		notifier:          notifier,
	}
}

func (a *AlertUseCase) DetectForVideo(ctx context.Context, userID, videoID string) error {
	comments, err := a.commentRepository.ListSince(ctx, videoID, time.Time{})
	if err != nil {
		return err
	}
	if len(comments) == 0 {
		return nil
	}
	now := time.Now().UTC()

	for _, finding := range []*model.Alert{
		a.detectSpike(comments, now),
		a.detectSentimentDrop(comments, now),
		a.detectToxicity(comments, now),
		a.detectViral(comments),
	} {
		if finding == nil {
			continue
		}
		finding.AlertID = uuid.NewString()
		finding.UserID = userID
		finding.VideoID = videoID
		finding.CreatedAt = now

		exists, err := a.alertRepository.ExistsRecent(ctx, videoID, finding.Kind, alertDedupWindow)
		if err != nil {
			return err
		}
		if exists {
			continue
		}
		if err := a.alertRepository.Create(ctx, finding); err != nil {
			return err
		}
		// only the severities worth interrupting someone for leave the app
		if finding.Severity == model.SeverityHigh || finding.Severity == model.SeverityCritical {
			a.notifier.Notify(ctx, userID, "alert_"+string(finding.Kind), map[string]interface{}{
				"alert_id": finding.AlertID,
				"video_id": videoID,
				"severity": string(finding.Severity),
				"title":    finding.Title,
			})
		}
		logger.GetLogger().
			WithField("videoId", videoID).
			WithField("kind", finding.Kind).
			WithField("severity", finding.Severity).
			Info("Alert raised")
	}
	return nil
}

func (a *AlertUseCase) List(ctx context.Context, userID, videoID string, unreadOnly bool, limit int) ([]model.Alert, error) {
	return a.alertRepository.ListByUser(ctx, userID, videoID, unreadOnly, limit)
}

func (a *AlertUseCase) MarkRead(ctx context.Context, userID, alertID string) error {
	return a.alertRepository.MarkRead(ctx, alertID, userID)
}

func (a *AlertUseCase) CountUnread(ctx context.Context, userID string) (int64, error) {
	return a.alertRepository.CountUnread(ctx, userID)
}

// detectSpike compares the last hour's comment rate against the average
// hourly rate of the preceding seven days. The current hour is excluded from
// the average so a burst cannot dilute its own baseline.
func (a *AlertUseCase) detectSpike(comments []model.Comment, now time.Time) *model.Alert {
	lastHourStart := now.Add(-1 * time.Hour)
	baselineStart := now.Add(-spikeBaselineWindow)

	buckets := map[int64]int{}
	lastHour := 0
	for _, c := range comments {
		if c.PublishedAt.After(lastHourStart) {
			lastHour++
			continue
		}
		if c.PublishedAt.After(baselineStart) {
			buckets[c.PublishedAt.Unix()/3600]++
		}
	}
	if len(buckets) < spikeMinBuckets {
		return nil
	}
	total := 0
	for _, n := range buckets {
		total += n
	}
	avg := float64(total) / float64(len(buckets))
	if avg <= 0 {
		return nil
	}
	factor := float64(lastHour) / avg
	if factor < spikeHighFactor {
		return nil
	}
	severity := model.SeverityHigh
	if factor >= spikeCriticalFactor {
		severity = model.SeverityCritical
	}
	return &model.Alert{
		Kind:     model.AlertKindSpike,
		Severity: severity,
		Title:    "Comment activity spike",
		Message:  fmt.Sprintf("Comments are coming in %.1fx faster than usual (%d in the last hour vs %.1f/hour average).", factor, lastHour, avg),
		Evidence: map[string]interface{}{
			"last_hour_count": lastHour,
			"hourly_average":  avg,
			"factor":          factor,
		},
	}
}

// detectSentimentDrop compares today's average sentiment with yesterday's.
func (a *AlertUseCase) detectSentimentDrop(comments []model.Comment, now time.Time) *model.Alert {
	dayStart := now.Add(-24 * time.Hour)
	prevStart := now.Add(-48 * time.Hour)

	var todaySum, prevSum float64
	var todayN, prevN int
	for _, c := range comments {
		if c.Analysis == nil {
			continue
		}
		switch {
		case c.PublishedAt.After(dayStart):
			todaySum += c.Analysis.Sentiment
			todayN++
		case c.PublishedAt.After(prevStart):
			prevSum += c.Analysis.Sentiment
			prevN++
		}
	}
	if todayN < sentimentMinSamples || prevN < sentimentMinSamples {
		return nil
	}
	todayAvg := todaySum / float64(todayN)
	prevAvg := prevSum / float64(prevN)
	// the drop is relative to yesterday's average; a baseline that was
	// already non-positive has nothing to fall from
	if prevAvg <= 0 {
		return nil
	}
	drop := (prevAvg - todayAvg) / prevAvg
	if drop < sentimentDropMedium {
		return nil
	}
	severity := model.SeverityMedium
	if drop >= sentimentDropHigh {
		severity = model.SeverityHigh
	}
	return &model.Alert{
		Kind:     model.AlertKindSentimentDrop,
		Severity: severity,
		Title:    "Sentiment is dropping",
		Message:  fmt.Sprintf("Average sentiment fell from %.2f to %.2f over the last day.", prevAvg, todayAvg),
		Evidence: map[string]interface{}{
			"previous_average": prevAvg,
			"current_average":  todayAvg,
			"drop":             drop,
			"samples_today":    todayN,
			"samples_before":   prevN,
		},
	}
}

// detectToxicity fires when several highly toxic comments land within 24h,
// attaching sample texts as evidence.
func (a *AlertUseCase) detectToxicity(comments []model.Comment, now time.Time) *model.Alert {
	windowStart := now.Add(-24 * time.Hour)
	var toxic []model.Comment
	for _, c := range comments {
		if c.Analysis != nil && c.Analysis.Toxicity > toxicityThreshold && c.PublishedAt.After(windowStart) {
			toxic = append(toxic, c)
		}
	}
	if len(toxic) < toxicityMinCount {
		return nil
	}
	samples := make([]map[string]interface{}, 0, alertEvidenceSamples)
	for _, c := range toxic {
		if len(samples) == alertEvidenceSamples {
			break
		}
		samples = append(samples, map[string]interface{}{
			"comment_id": c.CommentID,
			"author":     c.Author,
			"text":       c.Text,
			"toxicity":   c.Analysis.Toxicity,
		})
	}
	return &model.Alert{
		Kind:     model.AlertKindToxicity,
		Severity: model.SeverityHigh,
		Title:    "Toxic comments detected",
		Message:  fmt.Sprintf("%d highly toxic comments appeared in the last 24 hours.", len(toxic)),
		Evidence: map[string]interface{}{
			"count":   len(toxic),
			"samples": samples,
		},
	}
}

// detectViral fires when a single comment's likes exceed
// max(500, 10x the average likes across the video).
func (a *AlertUseCase) detectViral(comments []model.Comment) *model.Alert {
	var likesSum int64
	var top *model.Comment
	for i := range comments {
		likesSum += comments[i].LikeCount
		if top == nil || comments[i].LikeCount > top.LikeCount {
			top = &comments[i]
		}
	}
	if top == nil {
		return nil
	}
	avg := float64(likesSum) / float64(len(comments))
	threshold := float64(viralMinLikes)
	if byAvg := avg * viralAvgLikesFactor; byAvg > threshold {
		threshold = byAvg
	}
	if float64(top.LikeCount) <= threshold {
		return nil
	}
	return &model.Alert{
		Kind:     model.AlertKindViral,
		Severity: model.SeverityMedium,
		Title:    "A comment is going viral",
		Message:  fmt.Sprintf("A comment by @%s has %d likes, far above this video's average.", top.Author, top.LikeCount),
		Evidence: map[string]interface{}{
			"comment_id":    top.CommentID,
			"author":        top.Author,
			"text":          top.Text,
			"like_count":    top.LikeCount,
			"average_likes": avg,
			"threshold":     threshold,
		},
	}
}
