package telemetry

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sisuhud/sisu-hud/internal/model"
)

func TestThrottle_DeliversLatest(t *testing.T) {
	th := NewThrottle(50)
	for i := int64(1); i <= 3; i++ {
		th.Push(model.Snapshot{AthleteID: i})
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	got := make(chan model.Snapshot, 4)
	done := make(chan error, 1)
	go func() {
		done <- th.Run(ctx, func(s model.Snapshot) { got <- s })
	}()

	select {
	case s := <-got:
		assert.Equal(t, int64(3), s.AthleteID)
	case <-time.After(2 * time.Second):
		t.Fatal("no snapshot delivered")
	}

	select {
	case s := <-got:
		t.Fatalf("unexpected second delivery %+v", s)
	case <-time.After(100 * time.Millisecond):
	}

	cancel()
	require.ErrorIs(t, <-done, context.Canceled)
}

func TestThrottle_BoundsRate(t *testing.T) {
	th := NewThrottle(10)

	ctx, cancel := context.WithTimeout(context.Background(), 550*time.Millisecond)
	defer cancel()

	var mu sync.Mutex
	deliveries := 0
	go th.Run(ctx, func(model.Snapshot) {
		mu.Lock()
		deliveries++
		mu.Unlock()
	})

	ticker := time.NewTicker(5 * time.Millisecond)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			mu.Lock()
			defer mu.Unlock()
			assert.LessOrEqual(t, deliveries, 7)
			assert.GreaterOrEqual(t, deliveries, 2)
			return
		case <-ticker.C:
			th.Push(model.Snapshot{})
		}
	}
}

func TestNewThrottle_InvalidFPS(t *testing.T) {
	assert.Equal(t, time.Second, NewThrottle(0).interval)
	assert.Equal(t, 500*time.Millisecond, NewThrottle(2).interval)
}
