package model_test

import (
	"testing"
	"time"

	"comment-insights/domain/model"

	"github.com/stretchr/testify/assert"
)

func TestNextMonthlyReset(t *testing.T) {
	reset := model.NextMonthlyReset(time.Date(2026, 8, 15, 13, 45, 0, 0, time.UTC))
	assert.Equal(t, time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC), reset)

	// December rolls into January of the next year
	reset = model.NextMonthlyReset(time.Date(2026, 12, 31, 23, 59, 59, 0, time.UTC))
	assert.Equal(t, time.Date(2027, 1, 1, 0, 0, 0, 0, time.UTC), reset)
}

func TestUsageCounterRemaining(t *testing.T) {
	limits := model.LimitsFor(model.PlanFree)
	counter := model.UsageCounter{
		Used:      map[model.Feature]int{model.FeatureAIQuestions: 2},
		Carryover: map[model.Feature]int{model.FeatureAIQuestions: 1},
	}

	assert.Equal(t, 2, counter.Remaining(limits, model.FeatureAIQuestions))
	assert.Equal(t, 1, counter.Remaining(limits, model.FeatureVideos))

	counter.Used[model.FeatureAIQuestions] = 10
	assert.Equal(t, 0, counter.Remaining(limits, model.FeatureAIQuestions))
}

func TestLimitsFor(t *testing.T) {
	assert.Equal(t, 0, model.LimitsFor(model.PlanFree).ReSyncs)
	assert.True(t, model.LimitsFor(model.PlanPro).AutoSync)
	// unknown plans fall back to the free tier
	assert.Equal(t, model.LimitsFor(model.PlanFree), model.LimitsFor(model.Plan("enterprise")))
}
