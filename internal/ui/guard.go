package ui

import (
	"context"
	"errors"
	"fmt"
	"log"
	"math/rand"
	"time"
)

// RetryPolicy bounds how long Ensure probes for an element before giving up.
type RetryPolicy struct {
	MaxAttempts int
	BaseDelay   time.Duration
}

// DefaultRetryPolicy applies when no policy is configured.
var DefaultRetryPolicy = RetryPolicy{MaxAttempts: 3, BaseDelay: time.Second}

// ElementNotFoundError reports that a referenced element never materialized
// within the retry budget. It is an expected outcome, not a fault: a day
// button that is genuinely absent means that booking path is unavailable.
type ElementNotFoundError struct {
	Description string
}

func (e *ElementNotFoundError) Error() string {
	return fmt.Sprintf("element not found: %s", e.Description)
}

// IsNotFound reports whether err is an ElementNotFoundError.
func IsNotFound(err error) bool {
	var enf *ElementNotFoundError
	return errors.As(err, &enf)
}

// Ensure verifies q matches at least one element before any interaction
// proceeds. It probes Count up to policy.MaxAttempts times with exponential
// backoff plus a little jitter; the final failed attempt returns immediately
// without sleeping. Query errors are retried the same way as empty results.
func Ensure(ctx context.Context, q Query, description string, policy RetryPolicy) (Query, error) {
	if policy.MaxAttempts < 1 {
		policy.MaxAttempts = 1
	}
	var lastErr error
	for attempt := 0; attempt < policy.MaxAttempts; attempt++ {
		n, err := q.Count(ctx)
		if err == nil && n > 0 {
			return q, nil
		}
		lastErr = err

		if attempt == policy.MaxAttempts-1 {
			break
		}
		delay := policy.BaseDelay<<attempt + time.Duration(rand.Int63n(int64(100*time.Millisecond)+1))
		log.Printf("ui: %s not present yet, retrying in %v (attempt %d/%d)",
			description, delay.Round(time.Millisecond), attempt+1, policy.MaxAttempts)
		select {
		case <-time.After(delay):
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	if lastErr != nil {
		log.Printf("ui: %s: last probe error: %v", description, lastErr)
	}
	return nil, &ElementNotFoundError{Description: description}
}
