package runner

import (
	"context"
	"time"
)

// Task is a periodic activity with its own cancellation. Its goroutine only
// produces events; the loop that reads C is the one that touches game state.
type Task struct {
	C      <-chan time.Time
	cancel context.CancelFunc
	done   chan struct{}
}

// Every starts a task that fires every d until ctx ends or Stop is called.
func Every(ctx context.Context, d time.Duration) *Task {
	ctx, cancel := context.WithCancel(ctx)
	c := make(chan time.Time)
	t := &Task{C: c, cancel: cancel, done: make(chan struct{})}

	go func() {
		defer close(t.done)
		ticker := time.NewTicker(d)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case now := <-ticker.C:
				select {
				case c <- now:
				case <-ctx.Done():
					return
				}
			}
		}
	}()
	return t
}

// Stop cancels the task and waits for its goroutine to exit. It is safe to
// call more than once.
func (t *Task) Stop() {
	t.cancel()
	<-t.done
}

// Stopped reports whether the task's goroutine has exited.
func (t *Task) Stopped() bool {
	select {
	case <-t.done:
		return true
	default:
		return false
	}
}
