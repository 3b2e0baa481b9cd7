package waitx

import (
	"github.com/saylorsolutions/waitx/eventx"
)

// Handle identifies one subscription made through [AddListener].
// A Handle is owned by the caller until it's passed to [RemoveListeners], after which it's dead and must not be reused.
type Handle struct {
	Source  eventx.Source
	Event   string
	Handler *eventx.Handler
}

// AddListener subscribes the handler to the named event on the source, and returns a [Handle] capturing the subscription.
// The source will keep invoking the handler on matching events until the handle is removed.
func AddListener(src eventx.Source, event string, h *eventx.Handler) Handle {
	src.Subscribe(event, h)
	return Handle{
		Source:  src,
		Event:   event,
		Handler: h,
	}
}

// RemoveListeners unsubscribes every [Handle] in the batch, then drains the batch in place so that callers sharing the slice see it emptied.
// Each unsubscription is independent, and removing an already-removed handler is a no-op, so a batch may be removed more than once.
// A nil or empty batch is a no-op.
func RemoveListeners(handles *[]Handle) {
	if handles == nil {
		return
	}
	for _, h := range *handles {
		if h.Source == nil {
			continue
		}
		h.Source.Unsubscribe(h.Event, h.Handler)
	}
	*handles = (*handles)[:0]
}
