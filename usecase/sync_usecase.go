package usecase

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"comment-insights/domain/dto"
	"comment-insights/domain/model"
	"comment-insights/domain/repository"
	"comment-insights/infrastructure/logger"
	"comment-insights/infrastructure/realtime"
	"comment-insights/infrastructure/utils"

	"github.com/google/uuid"
)

const (
	fetchRetryAttempts = 3
	syncRunTimeout     = 30 * time.Minute

	progressQueued     = 0
	progressFetchStart = 10
	progressFetchEnd   = 70
	progressAnalyzeEnd = 95
	progressFinalizing = 95
	progressCompleted  = 100
)

// ISyncUseCase orchestrates comment ingestion: submission, the async
// pipeline, and job status reads.
type ISyncUseCase interface {
	// Analyze starts tracking a video (full sync). Submitting a video that
	// already has an active job returns that job instead of a new one.
	Analyze(ctx context.Context, userID string, req dto.AnalyzeVideoRequest) (*model.SyncJob, error)
	// Resync runs an incremental sync from the comment watermark.
	Resync(ctx context.Context, userID, videoID string) (*model.SyncJob, error)
	GetJob(ctx context.Context, userID, jobID string) (*model.SyncJob, error)
	ListJobs(ctx context.Context, userID string, limit int) ([]model.SyncJob, error)
}

type SyncUseCase struct {
	videoRepository   repository.IVideo
	commentRepository repository.IComment
	jobRepository     repository.ISyncJob
	platform          repository.IVideoPlatform
	quotaUseCase      IQuotaUseCase
	classifier        IClassifierUseCase
	chatUseCase       IChatUseCase
	alertUseCase      IAlertUseCase
	answerCache       repository.IAnswerCache
	hub               *realtime.Hub

	// one mutex per video serializes submission so two requests can never
	// both pass the active-job check
	videoLocks sync.Map
}

func NewSyncUseCase(
	videoRepository repository.IVideo,
	commentRepository repository.IComment,
	jobRepository repository.ISyncJob,
	platform repository.IVideoPlatform,
	quotaUseCase IQuotaUseCase,
	classifier IClassifierUseCase,
	chatUseCase IChatUseCase,
	alertUseCase IAlertUseCase,
	answerCache repository.IAnswerCache,
	hub *realtime.Hub,
) ISyncUseCase {
	return &SyncUseCase{
		videoRepository:   videoRepository,
		commentRepository: commentRepository,
		jobRepository:     jobRepository,
		platform:          platform,
		quotaUseCase:      quotaUseCase,
		classifier:        classifier,
		chatUseCase:       chatUseCase,
		alertUseCase:      alertUseCase,
		answerCache:       answerCache,
		hub:               hub,
	}
}

func (s *SyncUseCase) lockVideo(videoID string) *sync.Mutex {
	mu, _ := s.videoLocks.LoadOrStore(videoID, &sync.Mutex{})
	return mu.(*sync.Mutex)
}

func (s *SyncUseCase) Analyze(ctx context.Context, userID string, req dto.AnalyzeVideoRequest) (*model.SyncJob, error) {
	videoID, ok := utils.ExtractVideoID(req.URL)
	if !ok {
		return nil, &model.ValidationError{Msg: fmt.Sprintf("invalid video url: %s", req.URL)}
	}

	mu := s.lockVideo(videoID)
	mu.Lock()
	defer mu.Unlock()

	if active, err := s.jobRepository.FindActiveByVideo(ctx, videoID); err != nil {
		return nil, err
	} else if active != nil {
		return active, nil
	}

	existing, err := s.videoRepository.Get(ctx, videoID)
	if err != nil && !errors.Is(err, model.ErrVideoNotFound) {
		return nil, err
	}
	isNew := existing == nil

	// only a first-time analysis spends a video credit
	if isNew {
		if err := s.quotaUseCase.Consume(ctx, userID, model.FeatureVideos); err != nil {
			return nil, err
		}
	}

	meta, err := s.platform.GetMetadata(ctx, videoID)
	if err != nil {
		if isNew {
			s.quotaUseCase.Release(ctx, userID, model.FeatureVideos)
		}
		return nil, err
	}

	now := time.Now().UTC()
	video := &model.Video{
		VideoID:      videoID,
		UserID:       userID,
		Title:        meta.Title,
		Description:  meta.Description,
		ThumbnailURL: meta.ThumbnailURL,
		ChannelName:  meta.ChannelName,
		ViewCount:    meta.ViewCount,
		LikeCount:    meta.LikeCount,
		CommentCount: meta.CommentCount,
		PublishedAt:  meta.PublishedAt,
		Duration:     meta.Duration,
		SyncStatus:   model.SyncStateQueued,
		CreatedAt:    now,
	}
	if existing != nil {
		video.CommentWatermark = existing.CommentWatermark
		video.Stats = existing.Stats
		video.PreGeneratedAnswers = existing.PreGeneratedAnswers
		video.LastSyncedAt = existing.LastSyncedAt
		video.CreatedAt = existing.CreatedAt
	}
	if err := s.videoRepository.Upsert(ctx, video); err != nil {
		if isNew {
			s.quotaUseCase.Release(ctx, userID, model.FeatureVideos)
		}
		return nil, err
	}

	return s.startJob(ctx, userID, videoID, model.SyncModeFull)
}

func (s *SyncUseCase) Resync(ctx context.Context, userID, videoID string) (*model.SyncJob, error) {
	mu := s.lockVideo(videoID)
	mu.Lock()
	defer mu.Unlock()

	if _, err := s.videoRepository.GetForUser(ctx, videoID, userID); err != nil {
		return nil, err
	}
	if active, err := s.jobRepository.FindActiveByVideo(ctx, videoID); err != nil {
		return nil, err
	} else if active != nil {
		return nil, model.ErrSyncInProgress
	}

	if err := s.quotaUseCase.Consume(ctx, userID, model.FeatureReSyncs); err != nil {
		return nil, err
	}

	job, err := s.startJob(ctx, userID, videoID, model.SyncModeIncremental)
	if err != nil {
		s.quotaUseCase.Release(ctx, userID, model.FeatureReSyncs)
		return nil, err
	}
	return job, nil
}

func (s *SyncUseCase) GetJob(ctx context.Context, userID, jobID string) (*model.SyncJob, error) {
	job, err := s.jobRepository.Get(ctx, jobID)
	if err != nil {
		return nil, err
	}
	if job.UserID != userID {
		return nil, model.ErrJobNotFound
	}
	return job, nil
}

func (s *SyncUseCase) ListJobs(ctx context.Context, userID string, limit int) ([]model.SyncJob, error) {
	return s.jobRepository.ListByUser(ctx, userID, limit)
}

func (s *SyncUseCase) startJob(ctx context.Context, userID, videoID string, mode model.SyncMode) (*model.SyncJob, error) {
	job := &model.SyncJob{
		JobID:     uuid.NewString(),
		UserID:    userID,
		VideoID:   videoID,
		Mode:      mode,
		State:     model.SyncStateQueued,
		Progress:  progressQueued,
		CreatedAt: time.Now().UTC(),
	}
	if err := s.jobRepository.Create(ctx, job); err != nil {
		return nil, err
	}

	// the pipeline outlives the HTTP request
	go s.run(job)

	return job, nil
}

// run executes the pipeline for one job. Each stage updates the job record
// so clients polling or streaming always see the current position.
func (s *SyncUseCase) run(job *model.SyncJob) {
	ctx, cancel := context.WithTimeout(context.Background(), syncRunTimeout)
	defer cancel()

	mu := s.lockVideo(job.VideoID)
	mu.Lock()
	defer mu.Unlock()

	if err := s.execute(ctx, job); err != nil {
		job.State = model.SyncStateFailed
		job.Error = userFacingSyncError(err)
		s.finishJob(ctx, job)
		logger.GetLogger().WithField("error", err).WithField("jobId", job.JobID).Error("Sync failed")
	}
}

// userFacingSyncError is the message stored on a failed job record. Internal
// detail stays in the log; recognized domain conditions keep their meaning.
func userFacingSyncError(err error) string {
	switch {
	case errors.Is(err, model.ErrVideoNotFound):
		return model.ErrVideoNotFound.Error()
	case errors.Is(err, context.DeadlineExceeded):
		return "the sync took too long and was aborted"
	case model.IsQuotaExceeded(err) || model.IsValidation(err):
		return err.Error()
	default:
		return "comment sync failed, please try again later"
	}
}

func (s *SyncUseCase) execute(ctx context.Context, job *model.SyncJob) error {
	video, err := s.videoRepository.Get(ctx, job.VideoID)
	if err != nil {
		return err
	}
	commentCap, err := s.quotaUseCase.CommentCap(ctx, job.UserID)
	if err != nil {
		return err
	}

	s.transition(ctx, job, model.SyncStateFetching, progressFetchStart)

	newCount, watermark, fetchNote, err := s.fetchComments(ctx, job, video, commentCap)
	if err != nil {
		return err
	}
	job.Note = fetchNote

	if !watermark.IsZero() {
		if err := s.videoRepository.AdvanceWatermark(ctx, job.VideoID, watermark); err != nil {
			return err
		}
	}

	// an incremental pass with nothing new leaves stats and answers alone
	if newCount == 0 && job.Mode == model.SyncModeIncremental && fetchNote == "" {
		s.transition(ctx, job, model.SyncStateFinalizing, progressFinalizing)
		job.State = model.SyncStateCompleted
		job.Progress = progressCompleted
		s.finishJob(ctx, job)
		return nil
	}

	s.transition(ctx, job, model.SyncStateAnalyzing, progressFetchEnd)

	total := job.TotalComments
	processed, failedBatches, err := s.classifier.ClassifyPending(ctx, job.VideoID, func(done int) {
		progress := progressFetchEnd
		if total > 0 {
			progress += (progressAnalyzeEnd - progressFetchEnd) * done / total
		}
		job.ProcessedComments = done
		s.progress(ctx, job, progress)
	})
	if err != nil {
		return err
	}
	job.ProcessedComments = processed
	if failedBatches > 0 {
		job.Note = appendNote(job.Note, fmt.Sprintf("%d comment batches could not be analyzed", failedBatches))
	}

	s.transition(ctx, job, model.SyncStateFinalizing, progressFinalizing)

	stats, err := s.commentRepository.Aggregate(ctx, job.VideoID)
	if err != nil {
		return err
	}
	if err := s.videoRepository.UpdateStats(ctx, job.VideoID, stats, time.Now().UTC()); err != nil {
		return err
	}

	// answers generated against the old comment set are stale now
	if s.answerCache != nil {
		if err := s.answerCache.InvalidateVideo(ctx, job.VideoID); err != nil {
			logger.GetLogger().WithField("error", err).Warn("Failed to invalidate answer cache")
		}
	}
	if s.chatUseCase != nil {
		if err := s.chatUseCase.WarmAnswers(ctx, job.VideoID); err != nil {
			logger.GetLogger().WithField("error", err).Warn("Failed to pre-generate answers")
		}
	}
	if s.alertUseCase != nil {
		if err := s.alertUseCase.DetectForVideo(ctx, job.UserID, job.VideoID); err != nil {
			logger.GetLogger().WithField("error", err).Warn("Alert detection failed")
		}
	}

	job.State = model.SyncStateCompleted
	job.Progress = progressCompleted
	s.finishJob(ctx, job)
	logger.GetLogger().
		WithField("jobId", job.JobID).
		WithField("videoId", job.VideoID).
		WithField("newComments", newCount).
		Info("Sync completed")
	return nil
}

// fetchComments pages through the platform's comment threads, skipping
// already-seen comments on incremental runs, until the pages run out or the
// plan's comment cap is reached. Returns the number of newly stored
// comments, the newest publish time seen, and a user-facing note when the
// fetch ended early.
func (s *SyncUseCase) fetchComments(ctx context.Context, job *model.SyncJob, video *model.Video, limit int) (int, time.Time, string, error) {
	var (
		newCount  int
		stored    int
		watermark = video.CommentWatermark
		pageToken string
		note      string
	)
	since := video.CommentWatermark
	if job.Mode == model.SyncModeFull {
		since = time.Time{}
	}

	for {
		page, err := s.fetchPage(ctx, job.VideoID, pageToken, since)
		if err != nil {
			if errors.Is(err, model.ErrCommentsDisabled) {
				// not fatal: the video simply has nothing to ingest
				note = appendNote(note, "comments are disabled for this video")
				break
			}
			return newCount, watermark, note, err
		}

		fresh := make([]model.Comment, 0, len(page.Comments))
		for _, comment := range page.Comments {
			if !since.IsZero() && !comment.PublishedAt.After(since) {
				continue
			}
			fresh = append(fresh, comment)
			if comment.PublishedAt.After(watermark) {
				watermark = comment.PublishedAt
			}
		}

		if len(fresh) > 0 {
			if limit > 0 && stored+len(fresh) > limit {
				fresh = fresh[:limit-stored]
				note = appendNote(note, fmt.Sprintf("comment limit of %d for your plan reached", limit))
			}
			inserted, err := s.commentRepository.UpsertBatch(ctx, fresh)
			if err != nil {
				return newCount, watermark, note, err
			}
			newCount += inserted
			stored += len(fresh)
		}

		total, err := s.commentRepository.CountByVideo(ctx, job.VideoID)
		if err == nil {
			job.TotalComments = int(total)
		}
		s.progress(ctx, job, fetchProgress(stored, limit, video.CommentCount))

		if page.NextPageToken == "" || (limit > 0 && stored >= limit) {
			break
		}
		pageToken = page.NextPageToken
	}

	total, err := s.commentRepository.CountByVideo(ctx, job.VideoID)
	if err != nil {
		return newCount, watermark, note, err
	}
	job.TotalComments = int(total)
	return newCount, watermark, note, nil
}

// fetchPage retries transient platform errors with exponential backoff.
// Comments-disabled and not-found are permanent and surface immediately.
func (s *SyncUseCase) fetchPage(ctx context.Context, videoID, pageToken string, since time.Time) (*dto.CommentPage, error) {
	var lastErr error
	for attempt := 0; attempt < fetchRetryAttempts; attempt++ {
		if attempt > 0 {
			select {
			case <-time.After(time.Duration(1<<attempt) * time.Second):
			case <-ctx.Done():
				return nil, ctx.Err()
			}
		}
		page, err := s.platform.ListComments(ctx, videoID, pageToken, since)
		if err == nil {
			return page, nil
		}
		if errors.Is(err, model.ErrCommentsDisabled) || errors.Is(err, model.ErrVideoNotFound) {
			return nil, err
		}
		lastErr = err
	}
	return nil, fmt.Errorf("fetching comments after %d attempts: %w", fetchRetryAttempts, lastErr)
}

// fetchProgress maps the fetch position into the 10-70 band using the
// platform's reported comment count as the denominator.
func fetchProgress(stored, limit int, reported int64) int {
	expected := int(reported)
	if limit > 0 && (expected == 0 || expected > limit) {
		expected = limit
	}
	if expected <= 0 {
		return progressFetchStart
	}
	p := progressFetchStart + (progressFetchEnd-progressFetchStart)*stored/expected
	if p > progressFetchEnd {
		p = progressFetchEnd
	}
	return p
}

func (s *SyncUseCase) transition(ctx context.Context, job *model.SyncJob, state model.SyncState, progress int) {
	job.State = state
	s.progress(ctx, job, progress)
}

// progress persists the job, mirrors it onto the video, and broadcasts.
// Progress never moves backwards.
func (s *SyncUseCase) progress(ctx context.Context, job *model.SyncJob, progress int) {
	if progress > job.Progress {
		job.Progress = progress
	}
	if err := s.jobRepository.Update(ctx, job); err != nil {
		logger.GetLogger().WithField("error", err).Warn("Failed to persist job progress")
	}
	if err := s.videoRepository.UpdateSyncState(ctx, job.VideoID, job.State, job.Progress); err != nil {
		logger.GetLogger().WithField("error", err).Warn("Failed to mirror sync state onto video")
	}
	if s.hub != nil {
		s.hub.BroadcastSyncStatus(job)
	}
}

func (s *SyncUseCase) finishJob(ctx context.Context, job *model.SyncJob) {
	now := time.Now().UTC()
	job.CompletedAt = &now
	s.progress(ctx, job, job.Progress)
}

func appendNote(existing, note string) string {
	if existing == "" {
		return note
	}
	if note == "" {
		return existing
	}
	return existing + "; " + note
}
