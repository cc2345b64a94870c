package handlers

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTaskRegistryRunsAndCompletes(t *testing.T) {
	reg := newTaskRegistry()

	done := make(chan struct{})
	ok := reg.Go("k1", func(ctx context.Context) {
		close(done)
	})
	require.True(t, ok)

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("task never ran")
	}

	assert.Eventually(t, func() bool { return !reg.Busy("k1") }, time.Second, 5*time.Millisecond)
}

func TestTaskRegistryRejectsDuplicateKey(t *testing.T) {
	reg := newTaskRegistry()

	release := make(chan struct{})
	require.True(t, reg.Go("k1", func(ctx context.Context) { <-release }))

	assert.False(t, reg.Go("k1", func(ctx context.Context) {}), "one download per key")
	assert.True(t, reg.Go("k2", func(ctx context.Context) { <-release }))
	assert.Equal(t, 2, reg.Active())

	close(release)
	assert.Eventually(t, func() bool { return reg.Active() == 0 }, time.Second, 5*time.Millisecond)
}

func TestTaskRegistryCancelStopsOneTask(t *testing.T) {
	reg := newTaskRegistry()

	canceled := make(chan struct{})
	require.True(t, reg.Go("k1", func(ctx context.Context) {
		<-ctx.Done()
		close(canceled)
	}))
	untouched := make(chan struct{})
	require.True(t, reg.Go("k2", func(ctx context.Context) {
		select {
		case <-ctx.Done():
			t.Error("wrong task canceled")
		case <-untouched:
		}
	}))

	require.True(t, reg.Cancel("k1"))
	select {
	case <-canceled:
	case <-time.After(time.Second):
		t.Fatal("cancel did not reach the task")
	}

	assert.False(t, reg.Cancel("nope"))
	close(untouched)
}

func TestTaskRegistryShutdown(t *testing.T) {
	reg := newTaskRegistry()

	for _, key := range []string{"a", "b", "c"} {
		require.True(t, reg.Go(key, func(ctx context.Context) {
			<-ctx.Done()
		}))
	}

	reg.Shutdown(time.Second)
	assert.Equal(t, 0, reg.Active())
	assert.False(t, reg.Go("d", func(ctx context.Context) {}), "no new work after shutdown")
}
