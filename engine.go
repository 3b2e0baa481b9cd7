package waitx

import (
	"context"
	"io"
	"log/slog"
	"time"

	"github.com/saylorsolutions/waitx/eventx"
	"github.com/saylorsolutions/waitx/promise"
)

// Predicate decides whether a given event payload satisfies a wait condition.
// Returning an error fails the wait immediately with that error.
type Predicate = func(payload any) (bool, error)

// Engine coordinates timed waits over event sources and pending computations.
// Each wait races a small fixed set of completion sources, exactly one of which determines the outcome, and tears down its listener and timer exactly once on every exit path.
type Engine struct {
	log *slog.Logger
}

// Option configures an [Engine] created with [New].
type Option = func(*Engine)

// WithLogger injects the logger used for debug output.
// Without it the [Engine] logs nowhere.
func WithLogger(log *slog.Logger) Option {
	return func(e *Engine) {
		if log != nil {
			e.log = log
		}
	}
}

// New creates an [Engine] with the given options.
func New(opts ...Option) *Engine {
	e := &Engine{
		log: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// WaitForEvent blocks until the next event on src named event satisfies pred, and returns that event's payload.
// A nil pred matches the first event.
//
// The wait has up to four competing completion sources: a matching event, the timeout, the abort promise, and the context.
// A timeout of 0 disables the deadline.
// The abort promise may be nil, meaning no external cancellation; when it settles, the wait fails with its error, or with [ErrAborted] if it settled without one.
// Whichever source fires first determines the outcome, later firings are ignored, and the listener and timer are always released before the outcome is observed by the caller.
func (e *Engine) WaitForEvent(ctx context.Context, src eventx.Source, event string, pred Predicate, timeout time.Duration, abort *promise.Promise[error]) (any, error) {
	if src == nil {
		panic("nil event source")
	}
	if pred == nil {
		pred = func(any) (bool, error) {
			return true, nil
		}
	}
	e.log.Debug("waiting for event", "event", event, "timeout", timeout)

	// Settled exactly once, no matter how many events arrive or how the predicate behaves.
	result := promise.New[any]()
	handler := eventx.Handler(func(payload any) {
		match, err := pred(payload)
		switch {
		case err != nil:
			result.Reject(err)
		case match:
			result.Resolve(payload)
		}
	})
	handles := []Handle{AddListener(src, event, &handler)}
	defer RemoveListeners(&handles)

	var timerC <-chan time.Time
	if timeout > 0 {
		timer := time.NewTimer(timeout)
		defer timer.Stop()
		timerC = timer.C
	}
	var abortC <-chan struct{}
	if abort != nil {
		abortC = abort.Done()
	}

	select {
	case <-result.Done():
		payload, err, _ := result.Result()
		if err != nil {
			e.log.Debug("wait failed", "event", event, "error", err)
			return nil, err
		}
		e.log.Debug("wait resolved", "event", event)
		return payload, nil
	case <-timerC:
		err := &eventTimeoutError{event: event}
		e.log.Debug("wait timed out", "event", event, "timeout", timeout)
		return nil, err
	case <-abortC:
		cause, rejected, _ := abort.Result()
		if cause == nil {
			cause = rejected
		}
		if cause == nil {
			cause = ErrAborted
		}
		e.log.Debug("wait aborted", "event", event, "error", cause)
		return nil, cause
	case <-ctx.Done():
		e.log.Debug("wait cancelled", "event", event, "error", ctx.Err())
		return nil, ctx.Err()
	}
}

// WaitWithTimeout races the pending computation p against the deadline, with the same semantics as the package-level [WaitWithTimeout].
// The task name is embedded in the timeout error message.
func (e *Engine) WaitWithTimeout(ctx context.Context, p *promise.Promise[any], task string, timeout time.Duration) (any, error) {
	e.log.Debug("waiting for task", "task", task, "timeout", timeout)
	val, err := WaitWithTimeout(ctx, p, task, timeout)
	if err != nil {
		e.log.Debug("task wait failed", "task", task, "error", err)
	}
	return val, err
}

// WaitWithTimeout blocks until the pending computation p settles, and returns its result verbatim.
// A timeout > 0 bounds the wait: on expiry the wait fails with a timeout error naming the task, matched by [ErrTimeout].
// A timeout of 0 disables the deadline entirely.
// The timer is released on every exit path, whether p resolved, p failed, the deadline elapsed, or the context was cancelled.
func WaitWithTimeout[T any](ctx context.Context, p *promise.Promise[T], task string, timeout time.Duration) (T, error) {
	var zero T
	if p == nil {
		panic("nil promise")
	}
	var timerC <-chan time.Time
	if timeout > 0 {
		timer := time.NewTimer(timeout)
		defer timer.Stop()
		timerC = timer.C
	}
	select {
	case <-p.Done():
		val, err, _ := p.Result()
		if err != nil {
			return zero, err
		}
		return val, nil
	case <-timerC:
		return zero, &taskTimeoutError{task: task, timeout: timeout}
	case <-ctx.Done():
		return zero, ctx.Err()
	}
}
