package eventx

import (
	"sync"
)

// Handler receives the payload of a dispatched event.
// Handlers are registered by pointer, since function values are not comparable in Go.
type Handler func(payload any)

// Source is an entity capable of dispatching named events to zero or more subscribed handlers.
// Implementations must tolerate unsubscribing a handler that was never subscribed, or was already removed.
type Source interface {
	// Subscribe registers a handler for future events with the given name.
	Subscribe(event string, h *Handler)
	// Unsubscribe removes a previously subscribed handler.
	// Unsubscribing an unknown handler is a no-op.
	Unsubscribe(event string, h *Handler)
}

// Emitter is an in-process [Source].
// It may have arbitrarily many subscribers per event, and is safe for concurrent use.
type Emitter struct {
	mux      sync.RWMutex
	handlers map[string][]*Handler
}

func NewEmitter() *Emitter {
	return &Emitter{
		handlers: map[string][]*Handler{},
	}
}

func (e *Emitter) Subscribe(event string, h *Handler) {
	if h == nil {
		return
	}
	e.mux.Lock()
	defer e.mux.Unlock()
	e.handlers[event] = append(e.handlers[event], h)
}

func (e *Emitter) Unsubscribe(event string, h *Handler) {
	e.mux.Lock()
	defer e.mux.Unlock()
	registered := e.handlers[event]
	for i, reg := range registered {
		if reg == h {
			e.handlers[event] = append(registered[:i], registered[i+1:]...)
			break
		}
	}
	if len(e.handlers[event]) == 0 {
		delete(e.handlers, event)
	}
}

// Emit dispatches an event to all currently subscribed handlers in subscription order.
// Handlers are invoked on the calling goroutine, outside the [Emitter] lock, so a handler removed mid-dispatch may still observe the in-flight event.
func (e *Emitter) Emit(event string, payload any) {
	e.mux.RLock()
	snapshot := make([]*Handler, len(e.handlers[event]))
	copy(snapshot, e.handlers[event])
	e.mux.RUnlock()
	for _, h := range snapshot {
		(*h)(payload)
	}
}

// ListenerCount returns the number of handlers currently subscribed to the given event.
func (e *Emitter) ListenerCount(event string) int {
	e.mux.RLock()
	defer e.mux.RUnlock()
	return len(e.handlers[event])
}
