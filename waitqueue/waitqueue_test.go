package waitqueue_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xeptore/promptgen/waitqueue"
)

func noSpacing() time.Duration { return 0 }

func TestSendSingle(t *testing.T) {
	t.Parallel()

	t.Run("WaitsForNextInterval", func(t *testing.T) {
		t.Parallel()

		wq := waitqueue.New(t.Context(), 300*time.Millisecond, 2, noSpacing)
		defer wq.Close()

		start := time.Now()
		var sent int
		for range 3 {
			require.NoError(t, wq.SendSingle(t.Context(), func() error { sent++; return nil }))
		}
		assert.Equal(t, 3, sent)
		assert.GreaterOrEqual(t, time.Since(start), 200*time.Millisecond)
	})

	t.Run("PropagatesError", func(t *testing.T) {
		t.Parallel()

		wq := waitqueue.New(t.Context(), time.Second, 5, noSpacing)
		defer wq.Close()

		errBoom := errors.New("boom")
		require.ErrorIs(t, wq.SendSingle(t.Context(), func() error { return errBoom }), errBoom)
	})

	t.Run("CanceledWhileWaiting", func(t *testing.T) {
		t.Parallel()

		wq := waitqueue.New(t.Context(), time.Hour, 1, noSpacing)
		defer wq.Close()

		require.NoError(t, wq.SendSingle(t.Context(), func() error { return nil }))

		ctx, cancel := context.WithTimeout(t.Context(), 150*time.Millisecond)
		defer cancel()
		err := wq.SendSingle(ctx, func() error { return nil })
		require.ErrorIs(t, err, context.DeadlineExceeded)
	})
}
