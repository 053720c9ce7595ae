package model

import "time"

// UsageCounter is the per-user quota ledger for the current billing period.
// Used counts consumption; Carryover holds upgrade credits that extend the
// plan limit until the next monthly reset clears them.
type UsageCounter struct {
	UserID        string          `bson:"_id" json:"user_id"`
	Used          map[Feature]int `bson:"used" json:"used"`
	Carryover     map[Feature]int `bson:"carryover,omitempty" json:"carryover,omitempty"`
	PeriodResetAt time.Time       `bson:"periodResetAt" json:"period_reset_at"`
}

// Remaining computes the unspent allowance for one feature under the given
// plan limits, never below zero.
func (u UsageCounter) Remaining(l Limits, f Feature) int {
	limit := l.For(f) + u.Carryover[f]
	rest := limit - u.Used[f]
	if rest < 0 {
		return 0
	}
	return rest
}

// NextMonthlyReset returns the first instant of the month after now, UTC.
func NextMonthlyReset(now time.Time) time.Time {
	now = now.UTC()
	return time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC).AddDate(0, 1, 0)
}
