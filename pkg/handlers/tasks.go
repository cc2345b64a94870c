package handlers

import (
	"context"
	"sync"
	"time"

	"github.com/Laky-64/gologging"
)

// taskRegistry supervises the download workers. Every worker context
// descends from a single base context so a shutdown reaches all of
// them, and each worker is addressable by its session key so a cancel
// button press stops exactly one download.
type taskRegistry struct {
	mu        sync.Mutex
	base      context.Context
	cancelAll context.CancelFunc
	running   map[string]context.CancelFunc
	wg        sync.WaitGroup
}

func newTaskRegistry() *taskRegistry {
	base, cancel := context.WithCancel(context.Background())
	return &taskRegistry{
		base:      base,
		cancelAll: cancel,
		running:   map[string]context.CancelFunc{},
	}
}

// tasks is the process-wide registry of in-flight downloads.
var tasks = newTaskRegistry()

// Go starts fn on its own goroutine under a cancellable child context
// keyed by the session key. It returns false when a download for the
// same key is already in flight or the registry is shutting down.
func (t *taskRegistry) Go(key string, fn func(ctx context.Context)) bool {
	t.mu.Lock()
	if t.base.Err() != nil {
		t.mu.Unlock()
		return false
	}
	if _, busy := t.running[key]; busy {
		t.mu.Unlock()
		return false
	}

	ctx, cancel := context.WithCancel(t.base)
	t.running[key] = cancel
	t.wg.Add(1)
	t.mu.Unlock()

	go func() {
		defer func() {
			t.mu.Lock()
			delete(t.running, key)
			t.mu.Unlock()
			cancel()
			t.wg.Done()
		}()
		fn(ctx)
	}()
	return true
}

// Cancel stops the download registered under key, if one is running.
func (t *taskRegistry) Cancel(key string) bool {
	t.mu.Lock()
	cancel, ok := t.running[key]
	t.mu.Unlock()
	if ok {
		cancel()
	}
	return ok
}

// Busy reports whether a download is in flight for the given key.
func (t *taskRegistry) Busy(key string) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	_, ok := t.running[key]
	return ok
}

// Active returns the number of downloads currently in flight.
func (t *taskRegistry) Active() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.running)
}

// Shutdown cancels every in-flight download and waits for the workers
// to finish, up to the given grace period.
func (t *taskRegistry) Shutdown(grace time.Duration) {
	t.cancelAll()

	done := make(chan struct{})
	go func() {
		t.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(grace):
		gologging.WarnF("Some downloads did not stop within %s.", grace)
	}
}

// Shutdown stops all supervised downloads. It is called once on
// process exit.
func Shutdown(grace time.Duration) {
	tasks.Shutdown(grace)
}
