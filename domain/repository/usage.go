package repository

import (
	"context"
	"time"

	"comment-insights/domain/model"
)

// IUsage defines the quota ledger. ReserveIfUnder is the only consumption
// path and must be atomic: check and increment in a single storage operation.
type IUsage interface {
	// GetOrCreate returns the user's counter, creating a zeroed one with the
	// given reset time when absent.
	GetOrCreate(ctx context.Context, userID string, resetAt time.Time) (*model.UsageCounter, error)
	// ReserveIfUnder increments used[feature] by one only while it is below
	// limit plus carryover. Returns false when the allowance is spent.
	ReserveIfUnder(ctx context.Context, userID string, feature model.Feature, limit int) (bool, error)
	// Release undoes one reservation after a downstream failure.
	Release(ctx context.Context, userID string, feature model.Feature) error
	// ResetPeriod zeroes used and carryover and sets the next reset time.
	ResetPeriod(ctx context.Context, userID string, resetAt time.Time) error
	// AddCarryover adds upgrade credits that extend the limit until reset.
	AddCarryover(ctx context.Context, userID string, credits map[model.Feature]int) error
}
