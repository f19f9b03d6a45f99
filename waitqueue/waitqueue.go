// Package waitqueue paces outgoing requests so that at most a fixed number of
// them are sent per interval, with a pause between consecutive sends.
package waitqueue

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"time"
)

const capacityPollInterval = 100 * time.Millisecond

type WaitQueue struct {
	timer           *time.Timer
	intervalTicker  *time.Ticker
	intervalCounter atomic.Int32
	capacity        int32
	spacing         func() time.Duration
	sendLock        *sync.Mutex
	cancelTicker    context.CancelFunc
	done            chan struct{}
}

func New(ctx context.Context, interval time.Duration, capacity int32, spacing func() time.Duration) *WaitQueue {
	ctx, cancel := context.WithCancel(ctx)
	wq := &WaitQueue{
		timer:           time.NewTimer(0),
		intervalTicker:  time.NewTicker(interval),
		intervalCounter: atomic.Int32{},
		capacity:        capacity,
		spacing:         spacing,
		sendLock:        &sync.Mutex{},
		cancelTicker:    cancel,
		done:            make(chan struct{}),
	}

	go wq.runTicker(ctx)
	return wq
}

func (w *WaitQueue) runTicker(ctx context.Context) {
	defer close(w.done)
	defer w.intervalTicker.Stop()
	for {
		select {
		case <-w.intervalTicker.C:
			w.intervalCounter.Store(0)
		case <-ctx.Done():
			return
		}
	}
}

func (w *WaitQueue) Close() {
	w.cancelTicker()
	<-w.done
}

func (w *WaitQueue) SendSingle(ctx context.Context, fn func() error) error {
	return w.SendMany(ctx, 1, fn)
}

// SendMany runs fn once there is room for n more requests in the current
// interval. fn counts against the interval even when it fails.
func (w *WaitQueue) SendMany(ctx context.Context, n int32, fn func() error) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-w.timer.C:
	}
	defer w.timer.Reset(w.spacing())

	for {
		err := w.trySend(fn, n)
		if nil == err {
			return nil
		}
		if !errors.Is(err, errIntervalCapReached) {
			return err
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(capacityPollInterval):
		}
	}
}

var errIntervalCapReached = errors.New("wait queue interval capacity has reached, waiting for next interval")

func (w *WaitQueue) trySend(fn func() error, n int32) error {
	w.sendLock.Lock()
	defer w.sendLock.Unlock()

	if c := w.intervalCounter.Load(); w.capacity-c >= n {
		w.intervalCounter.Add(n)
		return fn()
	}
	return errIntervalCapReached
}
