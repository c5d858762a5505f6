package registry

import (
	"fmt"
	"strconv"
	"time"

	"onebill/internal/domain"
)

// RateLimitError indicates the registry returned HTTP 429.
type RateLimitError struct {
	Err        error
	RetryAfter time.Duration
}

func (e *RateLimitError) Error() string {
	return fmt.Sprintf("registry rate limited (retry after %s): %v", e.RetryAfter, e.Err)
}

// Unwrap reports the registry as unavailable so callers can match on the domain error.
func (e *RateLimitError) Unwrap() []error {
	return []error{e.Err, domain.ErrRegistryUnavailable}
}

// newRateLimitError creates a RateLimitError from a Retry-After header value.
// A missing or malformed header defaults to 60s.
func newRateLimitError(err error, retryAfter string) *RateLimitError {
	secs, convErr := strconv.Atoi(retryAfter)
	if convErr != nil || secs <= 0 {
		secs = 60
	}
	return &RateLimitError{Err: err, RetryAfter: time.Duration(secs) * time.Second}
}
