// Package schedule provides a small recurring-task runner. It exists so the
// visit draft autosave contract can be tested without standing up a server
// or depending on request lifecycle hooks.
package schedule

import (
	"context"
	"sync"
	"time"
)

// Task runs fn on a fixed interval between Start and Stop.
type Task struct {
	interval time.Duration
	fn       func(context.Context)

	mu      sync.Mutex
	cancel  context.CancelFunc
	done    chan struct{}
	running bool
}

// NewTask creates a task that will invoke fn every interval once started.
func NewTask(interval time.Duration, fn func(context.Context)) *Task {
	return &Task{interval: interval, fn: fn}
}

// Start begins ticking. Starting an already-running task is a no-op.
func (t *Task) Start() {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.running {
		return
	}

	ctx, cancel := context.WithCancel(context.Background())
	t.cancel = cancel
	t.done = make(chan struct{})
	t.running = true

	go func(done chan struct{}) {
		defer close(done)
		ticker := time.NewTicker(t.interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				t.fn(ctx)
			}
		}
	}(t.done)
}

// Stop halts ticking and waits for any in-flight invocation to return.
// Stopping a task that is not running is a no-op.
func (t *Task) Stop() {
	t.mu.Lock()
	if !t.running {
		t.mu.Unlock()
		return
	}
	cancel := t.cancel
	done := t.done
	t.running = false
	t.mu.Unlock()

	cancel()
	<-done
}

// Running reports whether the task is currently started.
func (t *Task) Running() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.running
}
