/*
Package tracex instruments operations whose failures surface far from their call site.
Wrapping an operation captures the caller's synchronous stack at invocation time, so that when the result eventually fails, the error carries where the operation was started rather than where it completed.

Whether an operation is synchronous or asynchronous is declared by picking [Traced] or [TracedAsync] at the wrap site, it's never detected at runtime.
*/
package tracex

import (
	"context"
	"fmt"
	"log/slog"
	"runtime"
	"strings"

	"github.com/saylorsolutions/waitx/promise"
)

// StackError decorates an operation's failure with the call stack captured when the operation was invoked.
// The wrapped error is available through [errors.Unwrap].
type StackError struct {
	// Op is the name the operation was wrapped with.
	Op string
	// Stack is the formatted call stack of the invocation.
	Stack string
	err   error
}

func (e *StackError) Error() string {
	return fmt.Sprintf("%v\n  -- %s called from:%s", e.err, e.Op, e.Stack)
}

func (e *StackError) Unwrap() error {
	return e.err
}

// Traced wraps a synchronous operation so that, when invoked, the call is logged at debug level and any failure is decorated with a [StackError].
// A nil logger disables call logging.
func Traced[T any](log *slog.Logger, op string, fn func() (T, error)) func() (T, error) {
	return func() (T, error) {
		stack := callStack(3)
		if log != nil {
			log.Debug("invoking operation", "op", op)
		}
		val, err := fn()
		if err != nil {
			return val, &StackError{Op: op, Stack: stack, err: err}
		}
		return val, nil
	}
}

// TracedAsync wraps an operation returning a pending computation.
// The stack is captured synchronously at invocation, and applied to the computation's failure whenever it settles.
func TracedAsync[T any](log *slog.Logger, op string, fn func() *promise.Promise[T]) func() *promise.Promise[T] {
	return func() *promise.Promise[T] {
		stack := callStack(3)
		if log != nil {
			log.Debug("invoking operation", "op", op)
		}
		inner := fn()
		out := promise.New[T]()
		go func() {
			val, err := inner.Await(context.Background())
			if err != nil {
				out.Reject(&StackError{Op: op, Stack: stack, err: err})
				return
			}
			out.Resolve(val)
		}()
		return out
	}
}

func callStack(skip int) string {
	pc := make([]uintptr, 32)
	n := runtime.Callers(skip, pc)
	if n == 0 {
		return "\n    (no stack)"
	}
	var (
		sb     strings.Builder
		frames = runtime.CallersFrames(pc[:n])
	)
	for {
		frame, more := frames.Next()
		fmt.Fprintf(&sb, "\n    at %s (%s:%d)", frame.Function, frame.File, frame.Line)
		if !more {
			break
		}
	}
	return sb.String()
}
