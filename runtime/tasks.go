package runtime

import (
	"context"
	"fmt"
	"sync"
)

// TaskGroup tracks goroutines spawned on behalf of sessions (timer callbacks,
// delayed deletions) and provides a bounded join on shutdown.
type TaskGroup struct {
	mu      sync.Mutex
	closing bool
	wg      sync.WaitGroup
	done    chan struct{}
}

func NewTaskGroup() *TaskGroup {
	return &TaskGroup{done: make(chan struct{})}
}

// Go runs fn in its own goroutine unless the group is closing.
func (g *TaskGroup) Go(fn func()) bool {
	g.mu.Lock()
	if g.closing {
		g.mu.Unlock()
		return false
	}
	g.wg.Add(1)
	g.mu.Unlock()

	go func() {
		defer g.wg.Done()
		fn()
	}()
	return true
}

// Closing is closed once CloseAndWait has been called, so delayed tasks can stop waiting.
func (g *TaskGroup) Closing() <-chan struct{} {
	return g.done
}

func (g *TaskGroup) CloseAndWait(ctx context.Context) error {
	g.mu.Lock()
	if !g.closing {
		g.closing = true
		close(g.done)
	}
	g.mu.Unlock()

	finished := make(chan struct{})
	go func() {
		g.wg.Wait()
		close(finished)
	}()

	select {
	case <-finished:
		return nil
	case <-ctx.Done():
		return fmt.Errorf("session task drain timeout: %w", ctx.Err())
	}
}
