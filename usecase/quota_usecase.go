package usecase

import (
	"context"
	"fmt"
	"time"

	"comment-insights/domain/dto"
	"comment-insights/domain/model"
	"comment-insights/domain/repository"
	"comment-insights/infrastructure/logger"
)

// IQuotaUseCase is the quota ledger: every metered action reserves through
// it before doing work.
type IQuotaUseCase interface {
	// Consume reserves one unit of the feature or returns QuotaExceededError.
	Consume(ctx context.Context, userID string, feature model.Feature) error
	// Release hands back one unit after a downstream failure.
	Release(ctx context.Context, userID string, feature model.Feature)
	Summary(ctx context.Context, userID string) (*dto.QuotaResponse, error)
	ChangePlan(ctx context.Context, userID string, newPlan model.Plan) error
	// CommentCap returns the per-video comment ceiling for the user's plan.
	CommentCap(ctx context.Context, userID string) (int, error)
	// DowngradeExpired moves users with lapsed paid plans back to free.
	DowngradeExpired(ctx context.Context) error
}

type QuotaUseCase struct {
	usageRepository repository.IUsage
	userRepository  repository.IUserProfile
	notifier        repository.INotifier
}

func NewQuotaUseCase(usageRepository repository.IUsage, userRepository repository.IUserProfile, notifier repository.INotifier) IQuotaUseCase {
	return &QuotaUseCase{
		usageRepository: usageRepository,
		userRepository:  userRepository,
		notifier:        notifier,
	}
}

var planRank = map[model.Plan]int{
	model.PlanFree:     0,
	model.PlanStarter:  1,
	model.PlanPro:      2,
	model.PlanBusiness: 3,
}

func (q *QuotaUseCase) Consume(ctx context.Context, userID string, feature model.Feature) error {
	user, err := q.userRepository.Get(ctx, userID)
	if err != nil {
		return err
	}
	// rolls the period over if the reset time has passed
	if _, err := q.currentCounter(ctx, userID); err != nil {
		return err
	}

	limits := model.LimitsFor(user.Plan)
	ok, err := q.usageRepository.ReserveIfUnder(ctx, userID, feature, limits.For(feature))
	if err != nil {
		return err
	}
	if !ok {
		return &model.QuotaExceededError{Feature: feature, Plan: user.Plan, Limit: limits.For(feature)}
	}
	return nil
}

func (q *QuotaUseCase) Release(ctx context.Context, userID string, feature model.Feature) {
	if err := q.usageRepository.Release(ctx, userID, feature); err != nil {
		logger.GetLogger().WithField("error", err).Warn("Failed to release quota reservation")
	}
}

func (q *QuotaUseCase) Summary(ctx context.Context, userID string) (*dto.QuotaResponse, error) {
	user, err := q.userRepository.Get(ctx, userID)
	if err != nil {
		return nil, err
	}
	counter, err := q.currentCounter(ctx, userID)
	if err != nil {
		return nil, err
	}

	limits := model.LimitsFor(user.Plan)
	features := map[string]dto.FeatureUsage{}
	for _, f := range []model.Feature{model.FeatureVideos, model.FeatureAIQuestions, model.FeatureReSyncs} {
		features[string(f)] = dto.FeatureUsage{
			Used:      counter.Used[f],
			Limit:     limits.For(f),
			Carryover: counter.Carryover[f],
			Remaining: counter.Remaining(limits, f),
		}
	}
	return &dto.QuotaResponse{
		Plan:          string(user.Plan),
		PlanExpiry:    user.PlanExpiry,
		PeriodResetAt: counter.PeriodResetAt,
		Features:      features,
	}, nil
}

// ChangePlan switches the subscription tier. On upgrade, the old plan's
// unused allowance becomes carryover credit usable immediately; the monthly
// reset clears it.
func (q *QuotaUseCase) ChangePlan(ctx context.Context, userID string, newPlan model.Plan) error {
	if !model.ValidPlan(newPlan) {
		return &model.ValidationError{Msg: fmt.Sprintf("unknown plan: %s", newPlan)}
	}
	user, err := q.userRepository.Get(ctx, userID)
	if err != nil {
		return err
	}
	if user.Plan == newPlan {
		return nil
	}
	counter, err := q.currentCounter(ctx, userID)
	if err != nil {
		return err
	}

	if planRank[newPlan] > planRank[user.Plan] {
		oldLimits := model.LimitsFor(user.Plan)
		credits := map[model.Feature]int{}
		for _, f := range []model.Feature{model.FeatureVideos, model.FeatureAIQuestions, model.FeatureReSyncs} {
			if unused := oldLimits.For(f) - counter.Used[f]; unused > 0 {
				credits[f] = unused
			}
		}
		if err := q.usageRepository.AddCarryover(ctx, userID, credits); err != nil {
			return err
		}
	}

	var expiry *time.Time
	if newPlan != model.PlanFree {
		t := time.Now().UTC().AddDate(0, 1, 0)
		expiry = &t
	}
	if err := q.userRepository.UpdatePlan(ctx, userID, newPlan, expiry); err != nil {
		return err
	}
	logger.GetLogger().WithField("userId", userID).WithField("plan", newPlan).Info("Plan changed")
	return nil
}

func (q *QuotaUseCase) CommentCap(ctx context.Context, userID string) (int, error) {
	user, err := q.userRepository.Get(ctx, userID)
	if err != nil {
		return 0, err
	}
	return model.LimitsFor(user.Plan).CommentsPerVideo, nil
}

func (q *QuotaUseCase) DowngradeExpired(ctx context.Context) error {
	expired, err := q.userRepository.ListExpired(ctx, time.Now().UTC())
	if err != nil {
		return err
	}
	for _, user := range expired {
		if err := q.userRepository.UpdatePlan(ctx, user.UserID, model.PlanFree, nil); err != nil {
			logger.GetLogger().WithField("error", err).WithField("userId", user.UserID).Error("Failed to downgrade expired plan")
			continue
		}
		q.notifier.Notify(ctx, user.UserID, "plan_expired", map[string]interface{}{
			"previous_plan": string(user.Plan),
		})
		logger.GetLogger().WithField("userId", user.UserID).Info("Expired plan downgraded to free")
	}
	return nil
}

// currentCounter loads the ledger row and rolls the period over when the
// reset time has passed. Rollover zeroes usage and carryover.
func (q *QuotaUseCase) currentCounter(ctx context.Context, userID string) (*model.UsageCounter, error) {
	now := time.Now().UTC()
	counter, err := q.usageRepository.GetOrCreate(ctx, userID, model.NextMonthlyReset(now))
	if err != nil {
		return nil, err
	}
	if !now.Before(counter.PeriodResetAt) {
		resetAt := model.NextMonthlyReset(now)
		if err := q.usageRepository.ResetPeriod(ctx, userID, resetAt); err != nil {
			return nil, err
		}
		counter.Used = map[model.Feature]int{}
		counter.Carryover = map[model.Feature]int{}
		counter.PeriodResetAt = resetAt
	}
	return counter, nil
}
