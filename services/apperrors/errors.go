// Package apperrors defines the typed failure modes of the assessment
// lifecycle so controllers can map each kind to the right HTTP status
// instead of guessing from message strings.
package apperrors

import (
	"fmt"
	"time"
)

// RateLimitError is returned when the fixed-window admission check denies
// a creation attempt. RetryAfter is the remaining wait of the current window.
type RateLimitError struct {
	RetryAfter time.Duration
}

func (e *RateLimitError) Error() string {
	return fmt.Sprintf("rate limit reached, retry after %s", e.RetryAfter)
}

// CooldownError is returned when the clinical eligibility window between
// assessments has not elapsed yet.
type CooldownError struct {
	NextValidTime time.Time
}

func (e *CooldownError) Error() string {
	return fmt.Sprintf("a new assessment is allowed from %s", e.NextValidTime.Format(time.RFC3339))
}

// ExternalServiceError wraps a failed or timed-out call to the scoring service.
type ExternalServiceError struct {
	Op  string
	Err error
}

func (e *ExternalServiceError) Error() string {
	return fmt.Sprintf("external service %s: %v", e.Op, e.Err)
}

func (e *ExternalServiceError) Unwrap() error { return e.Err }

// ValidationError reports a malformed or incomplete submission. Detected
// before any write, so nothing is persisted when it is returned.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

// NotFoundError reports an absent entity or one not owned by the caller.
type NotFoundError struct {
	Resource string
	ID       uint
}

func (e *NotFoundError) Error() string {
	if e.ID == 0 {
		return fmt.Sprintf("%s not found", e.Resource)
	}
	return fmt.Sprintf("%s with id %d not found", e.Resource, e.ID)
}

// ConflictError reports an operation that is invalid in the current
// lifecycle state, e.g. stopping an already-stopped assessment.
type ConflictError struct {
	Message string
}

func (e *ConflictError) Error() string { return e.Message }

// InvalidProtocolError reports a protocol selection outside the suggested set.
type InvalidProtocolError struct {
	ProtocolID uint
	ValidIDs   []uint
}

func (e *InvalidProtocolError) Error() string {
	return fmt.Sprintf("invalid protocol selection %d, valid choices are %v", e.ProtocolID, e.ValidIDs)
}
