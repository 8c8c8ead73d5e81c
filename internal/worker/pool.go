// Package worker runs blocking work off the caller's goroutine and hands
// results back through futures.
package worker

import (
	"context"

	"golang.org/x/sync/semaphore"
)

// Pool bounds how many jobs run at once.
type Pool struct {
	sem  *semaphore.Weighted
	size int
}

// NewPool creates a pool running at most size jobs concurrently.
func NewPool(size int) *Pool {
	if size < 1 {
		size = 1
	}
	return &Pool{sem: semaphore.NewWeighted(int64(size)), size: size}
}

// Size returns the concurrency bound.
func (p *Pool) Size() int { return p.size }

// Future is the eventual result of a submitted job.
type Future[T any] struct {
	done  chan struct{}
	value T
	err   error
}

// Done is closed once the result is available.
func (f *Future[T]) Done() <-chan struct{} { return f.done }

// Await blocks until the job finishes or ctx ends. Giving up on a future
// does not stop the job.
func (f *Future[T]) Await(ctx context.Context) (T, error) {
	select {
	case <-f.done:
		return f.value, f.err
	case <-ctx.Done():
		var zero T
		return zero, ctx.Err()
	}
}

// Submit queues fn and returns immediately. fn runs once a slot is free;
// if ctx ends first the future resolves with ctx.Err().
func Submit[T any](p *Pool, ctx context.Context, fn func(context.Context) (T, error)) *Future[T] {
	return SubmitSettled(p, ctx, fn, nil)
}

// SubmitSettled is Submit with a settle step that sees every outcome,
// including a job that never started because ctx ended while it was
// queued. The future resolves with what settle returns.
func SubmitSettled[T any](p *Pool, ctx context.Context, fn func(context.Context) (T, error), settle func(T, error) (T, error)) *Future[T] {
	f := &Future[T]{done: make(chan struct{})}
	go func() {
		defer close(f.done)
		f.value, f.err = run(p, ctx, fn)
		if settle != nil {
			f.value, f.err = settle(f.value, f.err)
		}
	}()
	return f
}

func run[T any](p *Pool, ctx context.Context, fn func(context.Context) (T, error)) (T, error) {
	if err := p.sem.Acquire(ctx, 1); err != nil {
		var zero T
		return zero, err
	}
	defer p.sem.Release(1)
	return fn(ctx)
}

// Resolved returns a future that is already complete.
func Resolved[T any](value T, err error) *Future[T] {
	f := &Future[T]{done: make(chan struct{}), value: value, err: err}
	close(f.done)
	return f
}
