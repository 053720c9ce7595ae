package usecase_test

import (
	"context"
	"time"

	"comment-insights/domain/dto"
	"comment-insights/domain/model"
	"comment-insights/domain/repository"

	"github.com/stretchr/testify/mock"
)

// Mock implementations

type MockVideoRepository struct {
	mock.Mock
}

func (m *MockVideoRepository) Get(ctx context.Context, videoID string) (*model.Video, error) {
	args := m.Called(ctx, videoID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Video), args.Error(1)
}

func (m *MockVideoRepository) GetForUser(ctx context.Context, videoID, userID string) (*model.Video, error) {
	args := m.Called(ctx, videoID, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Video), args.Error(1)
}

func (m *MockVideoRepository) Upsert(ctx context.Context, video *model.Video) error {
	args := m.Called(ctx, video)
	return args.Error(0)
}

func (m *MockVideoRepository) ListByUser(ctx context.Context, userID string, limit, offset int) ([]model.Video, int64, error) {
	args := m.Called(ctx, userID, limit, offset)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]model.Video), args.Get(1).(int64), args.Error(2)
}

func (m *MockVideoRepository) UpdateSyncState(ctx context.Context, videoID string, state model.SyncState, progress int) error {
	args := m.Called(ctx, videoID, state, progress)
	return args.Error(0)
}

func (m *MockVideoRepository) AdvanceWatermark(ctx context.Context, videoID string, watermark time.Time) error {
	args := m.Called(ctx, videoID, watermark)
	return args.Error(0)
}

func (m *MockVideoRepository) UpdateStats(ctx context.Context, videoID string, stats model.VideoStats, syncedAt time.Time) error {
	args := m.Called(ctx, videoID, stats, syncedAt)
	return args.Error(0)
}

func (m *MockVideoRepository) SetAnswers(ctx context.Context, videoID string, answers map[string]model.CachedAnswer) error {
	args := m.Called(ctx, videoID, answers)
	return args.Error(0)
}

func (m *MockVideoRepository) Delete(ctx context.Context, videoID, userID string) error {
	args := m.Called(ctx, videoID, userID)
	return args.Error(0)
}

type MockCommentRepository struct {
	mock.Mock
}

func (m *MockCommentRepository) UpsertBatch(ctx context.Context, comments []model.Comment) (int, error) {
	args := m.Called(ctx, comments)
	return args.Int(0), args.Error(1)
}

func (m *MockCommentRepository) ListUnanalyzed(ctx context.Context, videoID string, limit int) ([]model.Comment, error) {
	args := m.Called(ctx, videoID, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Comment), args.Error(1)
}

func (m *MockCommentRepository) SetAnalysis(ctx context.Context, commentID string, analysis model.Analysis) error {
	args := m.Called(ctx, commentID, analysis)
	return args.Error(0)
}

func (m *MockCommentRepository) ListSince(ctx context.Context, videoID string, since time.Time) ([]model.Comment, error) {
	args := m.Called(ctx, videoID, since)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Comment), args.Error(1)
}

func (m *MockCommentRepository) ListByVideo(ctx context.Context, videoID string, req dto.CommentListRequest) ([]model.Comment, int64, error) {
	args := m.Called(ctx, videoID, req)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]model.Comment), args.Get(1).(int64), args.Error(2)
}

func (m *MockCommentRepository) ListByCategory(ctx context.Context, videoID string, category model.Category, limit int) ([]model.Comment, error) {
	args := m.Called(ctx, videoID, category, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Comment), args.Error(1)
}

func (m *MockCommentRepository) CountByVideo(ctx context.Context, videoID string) (int64, error) {
	args := m.Called(ctx, videoID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockCommentRepository) Aggregate(ctx context.Context, videoID string) (model.VideoStats, error) {
	args := m.Called(ctx, videoID)
	return args.Get(0).(model.VideoStats), args.Error(1)
}

func (m *MockCommentRepository) DeleteByVideo(ctx context.Context, videoID string) error {
	args := m.Called(ctx, videoID)
	return args.Error(0)
}

type MockSyncJobRepository struct {
	mock.Mock
}

func (m *MockSyncJobRepository) Create(ctx context.Context, job *model.SyncJob) error {
	args := m.Called(ctx, job)
	return args.Error(0)
}

func (m *MockSyncJobRepository) Get(ctx context.Context, jobID string) (*model.SyncJob, error) {
	args := m.Called(ctx, jobID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.SyncJob), args.Error(1)
}

func (m *MockSyncJobRepository) Update(ctx context.Context, job *model.SyncJob) error {
	args := m.Called(ctx, job)
	return args.Error(0)
}

func (m *MockSyncJobRepository) FindActiveByVideo(ctx context.Context, videoID string) (*model.SyncJob, error) {
	args := m.Called(ctx, videoID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.SyncJob), args.Error(1)
}

func (m *MockSyncJobRepository) ListByUser(ctx context.Context, userID string, limit int) ([]model.SyncJob, error) {
	args := m.Called(ctx, userID, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.SyncJob), args.Error(1)
}

type MockUsageRepository struct {
	mock.Mock
}

func (m *MockUsageRepository) GetOrCreate(ctx context.Context, userID string, resetAt time.Time) (*model.UsageCounter, error) {
	args := m.Called(ctx, userID, resetAt)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.UsageCounter), args.Error(1)
}

func (m *MockUsageRepository) ReserveIfUnder(ctx context.Context, userID string, feature model.Feature, limit int) (bool, error) {
	args := m.Called(ctx, userID, feature, limit)
	return args.Bool(0), args.Error(1)
}

func (m *MockUsageRepository) Release(ctx context.Context, userID string, feature model.Feature) error {
	args := m.Called(ctx, userID, feature)
	return args.Error(0)
}

func (m *MockUsageRepository) ResetPeriod(ctx context.Context, userID string, resetAt time.Time) error {
	args := m.Called(ctx, userID, resetAt)
	return args.Error(0)
}

func (m *MockUsageRepository) AddCarryover(ctx context.Context, userID string, credits map[model.Feature]int) error {
	args := m.Called(ctx, userID, credits)
	return args.Error(0)
}

type MockUserProfileRepository struct {
	mock.Mock
}

func (m *MockUserProfileRepository) Get(ctx context.Context, userID string) (*model.UserProfile, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.UserProfile), args.Error(1)
}

func (m *MockUserProfileRepository) GetOrCreate(ctx context.Context, userID, email string) (*model.UserProfile, error) {
	args := m.Called(ctx, userID, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.UserProfile), args.Error(1)
}

func (m *MockUserProfileRepository) UpdatePlan(ctx context.Context, userID string, plan model.Plan, expiry *time.Time) error {
	args := m.Called(ctx, userID, plan, expiry)
	return args.Error(0)
}

func (m *MockUserProfileRepository) ListExpired(ctx context.Context, now time.Time) ([]model.UserProfile, error) {
	args := m.Called(ctx, now)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.UserProfile), args.Error(1)
}

type MockAlertRepository struct {
	mock.Mock
}

func (m *MockAlertRepository) Create(ctx context.Context, alert *model.Alert) error {
	args := m.Called(ctx, alert)
	return args.Error(0)
}

func (m *MockAlertRepository) ExistsRecent(ctx context.Context, videoID string, kind model.AlertKind, window time.Duration) (bool, error) {
	args := m.Called(ctx, videoID, kind, window)
	return args.Bool(0), args.Error(1)
}

func (m *MockAlertRepository) ListByUser(ctx context.Context, userID, videoID string, unreadOnly bool, limit int) ([]model.Alert, error) {
	args := m.Called(ctx, userID, videoID, unreadOnly, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Alert), args.Error(1)
}

func (m *MockAlertRepository) MarkRead(ctx context.Context, alertID, userID string) error {
	args := m.Called(ctx, alertID, userID)
	return args.Error(0)
}

func (m *MockAlertRepository) CountUnread(ctx context.Context, userID string) (int64, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).(int64), args.Error(1)
}

type MockConversationRepository struct {
	mock.Mock
}

func (m *MockConversationRepository) Get(ctx context.Context, conversationID, userID string) (*model.Conversation, error) {
	args := m.Called(ctx, conversationID, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Conversation), args.Error(1)
}

func (m *MockConversationRepository) AppendTurns(ctx context.Context, conversationID, userID, videoID string, turns []model.ConversationTurn) error {
	args := m.Called(ctx, conversationID, userID, videoID, turns)
	return args.Error(0)
}

type MockAnswerCache struct {
	mock.Mock
}

func (m *MockAnswerCache) Get(ctx context.Context, videoID, key string) (*model.CachedAnswer, error) {
	args := m.Called(ctx, videoID, key)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.CachedAnswer), args.Error(1)
}

func (m *MockAnswerCache) Set(ctx context.Context, videoID, key string, answer model.CachedAnswer, ttl time.Duration) error {
	args := m.Called(ctx, videoID, key, answer, ttl)
	return args.Error(0)
}

func (m *MockAnswerCache) InvalidateVideo(ctx context.Context, videoID string) error {
	args := m.Called(ctx, videoID)
	return args.Error(0)
}

type MockVideoPlatform struct {
	mock.Mock
}

func (m *MockVideoPlatform) GetMetadata(ctx context.Context, videoID string) (*model.VideoMetadata, error) {
	args := m.Called(ctx, videoID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.VideoMetadata), args.Error(1)
}

func (m *MockVideoPlatform) ListComments(ctx context.Context, videoID, pageToken string, publishedAfter time.Time) (*dto.CommentPage, error) {
	args := m.Called(ctx, videoID, pageToken, publishedAfter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.CommentPage), args.Error(1)
}

type MockGenAI struct {
	mock.Mock
}

func (m *MockGenAI) Generate(ctx context.Context, prompt string, opts repository.GenerateOptions) (string, error) {
	args := m.Called(ctx, prompt, opts)
	return args.String(0), args.Error(1)
}

type MockNotifier struct {
	mock.Mock
}

func (m *MockNotifier) Notify(ctx context.Context, userID, subject string, payload map[string]interface{}) {
	m.Called(ctx, userID, subject, payload)
}

type MockQuotaUseCase struct {
	mock.Mock
}

func (m *MockQuotaUseCase) Consume(ctx context.Context, userID string, feature model.Feature) error {
	args := m.Called(ctx, userID, feature)
	return args.Error(0)
}

func (m *MockQuotaUseCase) Release(ctx context.Context, userID string, feature model.Feature) {
	m.Called(ctx, userID, feature)
}

func (m *MockQuotaUseCase) Summary(ctx context.Context, userID string) (*dto.QuotaResponse, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.QuotaResponse), args.Error(1)
}

func (m *MockQuotaUseCase) ChangePlan(ctx context.Context, userID string, newPlan model.Plan) error {
	args := m.Called(ctx, userID, newPlan)
	return args.Error(0)
}

func (m *MockQuotaUseCase) CommentCap(ctx context.Context, userID string) (int, error) {
	args := m.Called(ctx, userID)
	return args.Int(0), args.Error(1)
}

func (m *MockQuotaUseCase) DowngradeExpired(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

type MockClassifierUseCase struct {
	mock.Mock
}

func (m *MockClassifierUseCase) ClassifyPending(ctx context.Context, videoID string, onProgress func(processed int)) (int, int, error) {
	args := m.Called(ctx, videoID, onProgress)
	return args.Int(0), args.Int(1), args.Error(2)
}

type MockChatUseCase struct {
	mock.Mock
}

func (m *MockChatUseCase) Ask(ctx context.Context, userID, videoID string, req dto.ChatRequest) (*dto.ChatResponse, error) {
	args := m.Called(ctx, userID, videoID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.ChatResponse), args.Error(1)
}

func (m *MockChatUseCase) WarmAnswers(ctx context.Context, videoID string) error {
	args := m.Called(ctx, videoID)
	return args.Error(0)
}

type MockAlertUseCase struct {
	mock.Mock
}

func (m *MockAlertUseCase) DetectForVideo(ctx context.Context, userID, videoID string) error {
	args := m.Called(ctx, userID, videoID)
	return args.Error(0)
}

func (m *MockAlertUseCase) List(ctx context.Context, userID, videoID string, unreadOnly bool, limit int) ([]model.Alert, error) {
	args := m.Called(ctx, userID, videoID, unreadOnly, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Alert), args.Error(1)
}

func (m *MockAlertUseCase) MarkRead(ctx context.Context, userID, alertID string) error {
	args := m.Called(ctx, userID, alertID)
	return args.Error(0)
}

func (m *MockAlertUseCase) CountUnread(ctx context.Context, userID string) (int64, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).(int64), args.Error(1)
}
