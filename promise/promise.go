package promise

import (
	"context"
	"sync"
)

// Promise is a computation result that is settled asynchronously at a later time.
// A Promise settles exactly once: the first call to [Promise.Resolve] or [Promise.Reject] wins, and subsequent calls do nothing.
// Once settled, the result is cached for any number of [Promise.Await] calls.
//
// The zero value is not usable, use [New].
type Promise[T any] struct {
	settle sync.Once
	done   chan struct{}
	val    T
	err    error
}

// New creates an unsettled [Promise].
func New[T any]() *Promise[T] {
	return &Promise[T]{
		done: make(chan struct{}),
	}
}

// Resolved creates a [Promise] that is already settled with the given value.
func Resolved[T any](val T) *Promise[T] {
	p := New[T]()
	p.Resolve(val)
	return p
}

// Failed creates a [Promise] that is already settled with the given error.
func Failed[T any](err error) *Promise[T] {
	p := New[T]()
	p.Reject(err)
	return p
}

// Go runs fn in a new goroutine and returns a [Promise] settled with its result.
func Go[T any](fn func() (T, error)) *Promise[T] {
	p := New[T]()
	go func() {
		val, err := fn()
		if err != nil {
			p.Reject(err)
			return
		}
		p.Resolve(val)
	}()
	return p
}

// Resolve settles the [Promise] with a value.
// Only the first call to Resolve or [Promise.Reject] will set the result.
func (p *Promise[T]) Resolve(val T) {
	p.settle.Do(func() {
		p.val = val
		close(p.done)
	})
}

// Reject settles the [Promise] with an error.
// Only the first call to Reject or [Promise.Resolve] will set the result.
func (p *Promise[T]) Reject(err error) {
	p.settle.Do(func() {
		p.err = err
		close(p.done)
	})
}

// Done returns a channel that is closed once the [Promise] is settled.
// This is intended for select loops that race a Promise against other completion sources.
func (p *Promise[T]) Done() <-chan struct{} {
	return p.done
}

// Result returns the settled value and error without blocking.
// The boolean reports whether the [Promise] has settled; when false, the other return values are zero.
func (p *Promise[T]) Result() (T, error, bool) {
	select {
	case <-p.done:
		return p.val, p.err, true
	default:
		var zero T
		return zero, nil, false
	}
}

// Await blocks until the [Promise] settles or the context is cancelled.
// On cancellation the context error is returned with the zero value.
func (p *Promise[T]) Await(ctx context.Context) (T, error) {
	select {
	case <-p.done:
		return p.val, p.err
	case <-ctx.Done():
		var zero T
		return zero, ctx.Err()
	}
}
