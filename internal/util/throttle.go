package util

import (
	"sync"
	"time"
)

// LatestOnly hands the newest value passed to Execute to fn, at most once per
// interval. Values replaced before the next tick are dropped.
type LatestOnly[T any] struct {
	ticker  *time.Ticker
	fn      func(T)
	latest  T
	hasCall bool
	stopped bool
	mu      sync.Mutex
	stop    chan struct{}
	once    sync.Once
}

func NewLatestOnly[T any](interval time.Duration, fn func(T)) *LatestOnly[T] {
	t := &LatestOnly[T]{
		ticker: time.NewTicker(interval),
		fn:     fn,
		stop:   make(chan struct{}),
	}

	go t.run()
	return t
}

func (t *LatestOnly[T]) run() {
	for {
		select {
		case <-t.stop:
			return
		case <-t.ticker.C:
			t.mu.Lock()
			if t.hasCall && !t.stopped {
				val := t.latest
				t.hasCall = false
				t.mu.Unlock()

				t.fn(val)
			} else {
				t.mu.Unlock()
			}
		}
	}
}

func (t *LatestOnly[T]) Execute(val T) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.stopped {
		return
	}

	t.latest = val
	t.hasCall = true
}

func (t *LatestOnly[T]) Stop() {
	t.once.Do(func() {
		t.mu.Lock()
		t.stopped = true
		t.mu.Unlock()

		close(t.stop)
		t.ticker.Stop()
	})
}
