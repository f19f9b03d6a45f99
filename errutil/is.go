package errutil

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"
)

func IsAny(err error, target error, targets ...error) (error, bool) {
	if errors.Is(err, target) {
		return target, true
	}
	for _, t := range targets {
		if errors.Is(err, t) {
			return t, true
		}
	}
	return nil, false
}

func IsContext(ctx context.Context) bool {
	err := ctx.Err()
	return nil != err && (errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded))
}

// RetryAfter reads the Retry-After header of a 429 response. Only the
// delay-seconds form is used by the Spotify Web API.
func RetryAfter(resp *http.Response) (time.Duration, bool) {
	v := resp.Header.Get("Retry-After")
	if v == "" {
		return 0, false
	}
	secs, err := strconv.Atoi(v)
	if nil != err || secs < 0 {
		return 0, false
	}
	return time.Duration(secs) * time.Second, true
}
