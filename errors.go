package waitx

import (
	"errors"
	"fmt"
	"time"
)

var (
	// ErrTimeout reports that a deadline elapsed before a wait resolved.
	// Timeout failures from [Engine.WaitForEvent] and [WaitWithTimeout] match this with [errors.Is].
	ErrTimeout = errors.New("timeout exceeded")
	// ErrAborted reports that a wait's abort signal fired without supplying its own error.
	ErrAborted = errors.New("wait aborted")
)

type eventTimeoutError struct {
	event string
}

func (e *eventTimeoutError) Error() string {
	return fmt.Sprintf("Timeout exceeded while waiting for %s", e.event)
}

func (e *eventTimeoutError) Unwrap() error {
	return ErrTimeout
}

type taskTimeoutError struct {
	task    string
	timeout time.Duration
}

func (e *taskTimeoutError) Error() string {
	return fmt.Sprintf("waiting for %s failed: timeout %dms exceeded", e.task, e.timeout.Milliseconds())
}

func (e *taskTimeoutError) Unwrap() error {
	return ErrTimeout
}
