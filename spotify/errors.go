package spotify

import (
	"errors"
	"fmt"
	"time"
)

var (
	ErrUnauthorized        = errors.New("unauthorized")
	ErrNotFound            = errors.New("resource not found")
	ErrTooManyRequests     = errors.New("too many requests")
	ErrFolderNotFound      = errors.New("folder playlist not found")
	ErrFeaturesUnavailable = errors.New("audio features are unavailable")
)

// TooManyRequestsError is returned for 429 responses. It matches
// ErrTooManyRequests.
type TooManyRequestsError struct {
	RetryAfter time.Duration
}

func (e *TooManyRequestsError) Error() string {
	if e.RetryAfter > 0 {
		return fmt.Sprintf("too many requests, retry after %s", e.RetryAfter)
	}
	return ErrTooManyRequests.Error()
}

func (e *TooManyRequestsError) Is(target error) bool {
	return target == ErrTooManyRequests //nolint:errorlint
}
