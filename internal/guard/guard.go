// Package guard serializes access to a shared handle. Each guard has its own
// lock, so work on two different guards runs concurrently.
package guard

import (
	"sync"

	"github.com/AlexZinkM/calc-wallet/internal/apperr"
)

// Lazy holds a handle that is built on first use and may be rebuilt at any
// time. It suits stateless handles such as an RPC client.
type Lazy[T any] struct {
	mu    sync.Mutex
	build func() (T, error)
	value T
	ready bool
}

// NewLazy creates a guard that calls build when a handle is first needed.
func NewLazy[T any](build func() (T, error)) *Lazy[T] {
	return &Lazy[T]{build: build}
}

// Do runs fn with exclusive access to the handle, building it first if
// needed. A failed build leaves the guard empty.
func (l *Lazy[T]) Do(fn func(T) error) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if !l.ready {
		v, err := l.build()
		if err != nil {
			return err
		}
		l.value, l.ready = v, true
	}
	return fn(l.value)
}

// Reset drops the handle; the next Do builds a new one.
func (l *Lazy[T]) Reset() {
	l.mu.Lock()
	defer l.mu.Unlock()
	var zero T
	l.value, l.ready = zero, false
}

// Built reports whether a handle currently exists.
func (l *Lazy[T]) Built() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.ready
}

// Explicit holds a handle that only exists between Connect and Disconnect.
// It is never created implicitly; Do fails with NoCalculator while absent.
type Explicit[T any] struct {
	mu    sync.Mutex
	value T
	ready bool
}

// Connect creates the handle with open. Connecting while connected is a no-op.
func (e *Explicit[T]) Connect(open func() (T, error)) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.ready {
		return nil
	}
	v, err := open()
	if err != nil {
		return err
	}
	e.value, e.ready = v, true
	return nil
}

// Disconnect tears the handle down with close. The handle is dropped even
// if close fails.
func (e *Explicit[T]) Disconnect(close func(T) error) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if !e.ready {
		return nil
	}
	err := close(e.value)
	var zero T
	e.value, e.ready = zero, false
	return err
}

// Do runs fn with exclusive access to the handle.
func (e *Explicit[T]) Do(fn func(T) error) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if !e.ready {
		return apperr.New(apperr.NoCalculator, "not connected")
	}
	return fn(e.value)
}

// Connected reports whether the handle exists.
func (e *Explicit[T]) Connected() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.ready
}
