package dto

import "time"

// FeatureUsage is one metered feature's position in the current period.
type FeatureUsage struct {
	Used      int `json:"used"`
	Limit     int `json:"limit"`
	Carryover int `json:"carryover,omitempty"`
	Remaining int `json:"remaining"`
}

// QuotaResponse is the full usage summary for the authenticated user.
type QuotaResponse struct {
	Plan          string                  `json:"plan"`
	PlanExpiry    *time.Time              `json:"plan_expiry,omitempty"`
	PeriodResetAt time.Time               `json:"period_reset_at"`
	Features      map[string]FeatureUsage `json:"features"`
}

// PlanChangeRequest represents a plan upgrade or downgrade.
type PlanChangeRequest struct {
	Plan string `json:"plan" binding:"required"`
}
