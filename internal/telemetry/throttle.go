package telemetry

import (
	"context"
	"sync"
	"time"

	"github.com/sisuhud/sisu-hud/internal/model"
)

// Throttle coalesces snapshots and hands the newest one to a consumer at a
// bounded rate. Push may be called from any goroutine.
type Throttle struct {
	interval time.Duration

	mu      sync.Mutex
	latest  model.Snapshot
	pending bool
	signal  chan struct{}
}

// NewThrottle creates a throttle delivering at most fps snapshots per second
func NewThrottle(fps float64) *Throttle {
	if fps <= 0 {
		fps = 1
	}
	return &Throttle{
		interval: time.Duration(float64(time.Second) / fps),
		signal:   make(chan struct{}, 1),
	}
}

// Push records s as the newest snapshot, replacing any undelivered one
func (t *Throttle) Push(s model.Snapshot) {
	t.mu.Lock()
	t.latest = s
	t.pending = true
	t.mu.Unlock()

	select {
	case t.signal <- struct{}{}:
	default:
	}
}

// Run delivers snapshots until ctx is cancelled
func (t *Throttle) Run(ctx context.Context, deliver func(model.Snapshot)) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-t.signal:
		}

		t.mu.Lock()
		s, ok := t.latest, t.pending
		t.pending = false
		t.mu.Unlock()

		if ok {
			deliver(s)
		}

		timer := time.NewTimer(t.interval)
		select {
		case <-ctx.Done():
			timer.Stop()
			return ctx.Err()
		case <-timer.C:
		}
	}
}
