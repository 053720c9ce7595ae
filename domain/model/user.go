package model

import "time"

// UserProfile is the subscription record keyed by the auth subject.
type UserProfile struct {
	UserID     string     `bson:"_id" json:"user_id"`
	Email      string     `bson:"email" json:"email"`
	Name       string     `bson:"name,omitempty" json:"name,omitempty"`
	Plan       Plan       `bson:"plan" json:"plan"`
	PlanExpiry *time.Time `bson:"planExpiry,omitempty" json:"plan_expiry,omitempty"`
	CreatedAt  time.Time  `bson:"createdAt" json:"created_at"`
	UpdatedAt  time.Time  `bson:"updatedAt" json:"updated_at"`
}
