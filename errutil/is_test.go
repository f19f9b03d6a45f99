package errutil_test

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xeptore/flaw/v8"

	"github.com/xeptore/promptgen/errutil"
)

func TestIsAny(t *testing.T) {
	t.Parallel()

	errA := errors.New("a")
	errB := errors.New("b")

	matched, ok := errutil.IsAny(fmt.Errorf("wrapped: %w", errB), errA, errB)
	require.True(t, ok)
	require.Equal(t, errB, matched)

	_, ok = errutil.IsAny(errors.New("c"), errA, errB)
	require.False(t, ok)
}

func TestIsContext(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(t.Context())
	assert.False(t, errutil.IsContext(ctx))
	cancel()
	assert.True(t, errutil.IsContext(ctx))
}

func TestRetryAfter(t *testing.T) {
	t.Parallel()

	resp := &http.Response{Header: http.Header{}} //nolint:exhaustruct
	_, ok := errutil.RetryAfter(resp)
	assert.False(t, ok)

	resp.Header.Set("Retry-After", "7")
	d, ok := errutil.RetryAfter(resp)
	assert.True(t, ok)
	assert.Equal(t, 7*time.Second, d)

	resp.Header.Set("Retry-After", "Wed, 21 Oct 2015 07:28:00 GMT")
	_, ok = errutil.RetryAfter(resp)
	assert.False(t, ok)
}

func TestFlawToYAML(t *testing.T) {
	t.Parallel()

	f := flaw.From(errors.New("failed to get playlist page")).Append(flaw.P{"playlist_id": "abc"})
	out, err := errutil.FlawToYAML(f)
	require.NoError(t, err)
	assert.Contains(t, string(out), "inner: failed to get playlist page")
	assert.Contains(t, string(out), "playlist_id: abc")
	assert.True(t, errutil.IsFlaw(f))
	assert.False(t, errutil.IsFlaw(errors.New("plain")))
}
