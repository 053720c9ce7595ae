package repository

import (
	"context"
	"time"

	"comment-insights/domain/model"
)

// IUserProfile defines persistence for subscription records.
type IUserProfile interface {
	// Get returns the profile or model.ErrUserNotFound.
	Get(ctx context.Context, userID string) (*model.UserProfile, error)
	// GetOrCreate returns the profile, creating a free-plan one when absent.
	GetOrCreate(ctx context.Context, userID, email string) (*model.UserProfile, error)
	UpdatePlan(ctx context.Context, userID string, plan model.Plan, expiry *time.Time) error
	// ListExpired returns users whose paid plan expired at or before now.
	ListExpired(ctx context.Context, now time.Time) ([]model.UserProfile, error)
}
