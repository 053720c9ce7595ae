package model

import (
	"errors"
	"fmt"
)

var (
	ErrVideoNotFound    = errors.New("video not found")
	ErrJobNotFound      = errors.New("sync job not found")
	ErrUserNotFound     = errors.New("user not found")
	ErrAlertNotFound    = errors.New("alert not found")
	ErrCommentsDisabled = errors.New("comments are disabled for this video")
	ErrSyncInProgress   = errors.New("a sync is already running for this video")
)

// QuotaExceededError reports which metered feature ran out under which plan.
type QuotaExceededError struct {
	Feature Feature
	Plan    Plan
	Limit   int
}

func (e *QuotaExceededError) Error() string {
	return fmt.Sprintf("quota exceeded for %s on plan %s (limit %d)", e.Feature, e.Plan, e.Limit)
}

// IsQuotaExceeded reports whether err wraps a QuotaExceededError.
func IsQuotaExceeded(err error) bool {
	var qe *QuotaExceededError
	return errors.As(err, &qe)
}

// ValidationError marks a problem with user input. Its message is safe to
// echo back to the caller, unlike internal errors.
type ValidationError struct {
	Msg string
}

func (e *ValidationError) Error() string {
	return e.Msg
}

// IsValidation reports whether err wraps a ValidationError.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
