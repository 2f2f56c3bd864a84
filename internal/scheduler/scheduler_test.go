package scheduler

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEvery_RunsUntilStopped(t *testing.T) {
	var calls atomic.Int32
	h := Every(context.Background(), 5*time.Millisecond, func(time.Time) {
		calls.Add(1)
	})

	require.Eventually(t, func() bool { return calls.Load() >= 3 }, time.Second, time.Millisecond)
	h.Stop()

	after := calls.Load()
	time.Sleep(20 * time.Millisecond)
	assert.Equal(t, after, calls.Load(), "no calls after Stop returns")
}

func TestEvery_StopsOnContextCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	h := Every(ctx, time.Millisecond, func(time.Time) {})

	cancel()
	select {
	case <-h.Done():
	case <-time.After(time.Second):
		t.Fatal("task did not exit after cancel")
	}
	h.Stop()
}

func TestHandle_StopIsIdempotent(t *testing.T) {
	h := Every(context.Background(), time.Hour, func(time.Time) {})
	h.Stop()
	h.Stop()
}

func TestEvery_NonPositiveInterval(t *testing.T) {
	var calls atomic.Int32
	h := Every(context.Background(), 0, func(time.Time) { calls.Add(1) })
	defer h.Stop()

	require.Eventually(t, func() bool { return calls.Load() >= 1 }, 3*time.Second, 10*time.Millisecond)
}
