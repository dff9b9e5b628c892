package pipeline

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"
)

// ErrShutdownTimeout is returned by Pool.Shutdown when tasks outlive the grace period.
var ErrShutdownTimeout = errors.New("worker pool shutdown timed out")

// Pool runs tasks on at most size goroutines.
type Pool struct {
	group     errgroup.Group
	ctx       context.Context
	cancel    context.CancelFunc
	grace     time.Duration
	closeOnce sync.Once
	closed    chan struct{}
	done      chan struct{}
}

// NewPool returns a pool whose tasks observe a context derived from parent.
// The context is canceled by Shutdown.
func NewPool(parent context.Context, size int, grace time.Duration) *Pool {
	if size < 1 {
		size = 1
	}
	ctx, cancel := context.WithCancel(parent)
	p := &Pool{
		ctx:    ctx,
		cancel: cancel,
		grace:  grace,
		closed: make(chan struct{}),
		done:   make(chan struct{}),
	}
	p.group.SetLimit(size)
	go func() {
		<-p.closed
		_ = p.group.Wait()
		close(p.done)
	}()
	return p
}

// Go blocks until a worker slot is free and then runs task on it.
// It must not be called after Close.
func (p *Pool) Go(task func(ctx context.Context)) {
	p.group.Go(func() error {
		task(p.ctx)
		return nil
	})
}

// Close marks the end of submissions.
func (p *Pool) Close() {
	p.closeOnce.Do(func() { close(p.closed) })
}

// Shutdown waits up to the grace period for submission to close and running
// tasks to return, then cancels the task context. Tasks still running at that
// point are abandoned and ErrShutdownTimeout is returned.
func (p *Pool) Shutdown() error {
	defer p.cancel()

	timer := time.NewTimer(p.grace)
	defer timer.Stop()
	select {
	case <-p.done:
		return nil
	case <-timer.C:
	}
	select {
	case <-p.done:
		return nil
	default:
		return fmt.Errorf("%w after %s", ErrShutdownTimeout, p.grace)
	}
}
