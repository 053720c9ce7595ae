package model

// Plan is a subscription tier.
type Plan string

const (
	PlanFree     Plan = "free"
	PlanStarter  Plan = "starter"
	PlanPro      Plan = "pro"
	PlanBusiness Plan = "business"
)

// ValidPlan reports whether p is a known tier.
func ValidPlan(p Plan) bool {
	switch p {
	case PlanFree, PlanStarter, PlanPro, PlanBusiness:
		return true
	}
	return false
}

// Feature is a metered capability charged against the monthly allowance.
type Feature string

const (
	FeatureVideos      Feature = "videos"
	FeatureAIQuestions Feature = "aiQuestions"
	FeatureReSyncs     Feature = "reSyncs"
)

// Limits is the monthly allowance attached to a plan.
type Limits struct {
	Videos           int  `json:"videos"`
	CommentsPerVideo int  `json:"comments_per_video"`
	AIQuestions      int  `json:"ai_questions"`
	ReSyncs          int  `json:"re_syncs"`
	AutoSync         bool `json:"auto_sync"`
}

// For returns the allowance for a metered feature.
func (l Limits) For(f Feature) int {
	switch f {
	case FeatureVideos:
		return l.Videos
	case FeatureAIQuestions:
		return l.AIQuestions
	case FeatureReSyncs:
		return l.ReSyncs
	}
	return 0
}

// PlanLimits is the allowance table. Unknown plans fall back to free.
var PlanLimits = map[Plan]Limits{
	PlanFree:     {Videos: 1, CommentsPerVideo: 500, AIQuestions: 3, ReSyncs: 0},
	PlanStarter:  {Videos: 50, CommentsPerVideo: 5000, AIQuestions: 100, ReSyncs: 20},
	PlanPro:      {Videos: 100, CommentsPerVideo: 10000, AIQuestions: 500, ReSyncs: 50, AutoSync: true},
	PlanBusiness: {Videos: 999, CommentsPerVideo: 50000, AIQuestions: 9999, ReSyncs: 999, AutoSync: true},
}

// LimitsFor returns the plan's allowance, defaulting to the free tier.
func LimitsFor(p Plan) Limits {
	if l, ok := PlanLimits[p]; ok {
		return l
	}
	return PlanLimits[PlanFree]
}
