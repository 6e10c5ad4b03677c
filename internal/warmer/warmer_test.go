package warmer

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func idleWarmer() *Warmer {
	// An interval far beyond the test duration keeps warmNextTarget from
	// ever firing.
	return &Warmer{
		interval: time.Hour,
		stopChan: make(chan struct{}),
	}
}

func TestStartReportsRunning(t *testing.T) {
	w := idleWarmer()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go w.Start(ctx)

	assert.Eventually(t, func() bool {
		return w.GetStatus()["running"].(bool)
	}, time.Second, 10*time.Millisecond)
}

func TestStartClearsRunningOnContextCancel(t *testing.T) {
	w := idleWarmer()
	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan struct{})
	go func() {
		w.Start(ctx)
		close(done)
	}()

	require.Eventually(t, func() bool {
		return w.GetStatus()["running"].(bool)
	}, time.Second, 10*time.Millisecond)

	cancel()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("warmer did not stop after context cancellation")
	}

	assert.False(t, w.GetStatus()["running"].(bool))
}

func TestStopClearsRunning(t *testing.T) {
	w := idleWarmer()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	done := make(chan struct{})
	go func() {
		w.Start(ctx)
		close(done)
	}()

	require.Eventually(t, func() bool {
		return w.GetStatus()["running"].(bool)
	}, time.Second, 10*time.Millisecond)

	w.Stop()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("warmer did not stop after Stop")
	}

	assert.False(t, w.GetStatus()["running"].(bool))
}
