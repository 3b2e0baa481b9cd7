package waitx

import (
	"testing"

	"github.com/saylorsolutions/waitx/eventx"
	"github.com/stretchr/testify/assert"
)

func TestAddListener(t *testing.T) {
	var (
		em       = eventx.NewEmitter()
		received []any
		handler  = eventx.Handler(func(payload any) {
			received = append(received, payload)
		})
	)
	handle := AddListener(em, "open", &handler)
	assert.Equal(t, em, handle.Source)
	assert.Equal(t, "open", handle.Event)
	assert.Equal(t, &handler, handle.Handler)

	em.Emit("open", "payload")
	assert.Equal(t, []any{"payload"}, received)
}

func TestRemoveListeners(t *testing.T) {
	var (
		em    = eventx.NewEmitter()
		count int
		a     = eventx.Handler(func(any) { count++ })
		b     = eventx.Handler(func(any) { count++ })
	)
	handles := []Handle{
		AddListener(em, "open", &a),
		AddListener(em, "close", &b),
	}
	RemoveListeners(&handles)
	assert.Empty(t, handles, "The batch should be drained in place")
	em.Emit("open", nil)
	em.Emit("close", nil)
	assert.Equal(t, 0, count, "No handler should fire after removal")
}

func TestRemoveListeners_Empty(t *testing.T) {
	assert.NotPanics(t, func() {
		RemoveListeners(nil)
		var empty []Handle
		RemoveListeners(&empty)
		assert.Empty(t, empty)
	})
}

func TestRemoveListeners_Twice(t *testing.T) {
	var (
		em      = eventx.NewEmitter()
		handler = eventx.Handler(func(any) {})
	)
	handles := []Handle{AddListener(em, "open", &handler)}
	RemoveListeners(&handles)
	assert.Empty(t, handles)
	assert.NotPanics(t, func() {
		RemoveListeners(&handles)
	}, "Removing a drained batch should be a no-op")
	assert.Empty(t, handles)
	assert.Equal(t, 0, em.ListenerCount("open"))
}

func TestRemoveListeners_StaleHandle(t *testing.T) {
	var (
		em      = eventx.NewEmitter()
		handler = eventx.Handler(func(any) {})
	)
	handle := AddListener(em, "open", &handler)
	em.Unsubscribe("open", &handler)

	// The underlying source no longer knows the handler, removal must still succeed.
	handles := []Handle{handle}
	assert.NotPanics(t, func() {
		RemoveListeners(&handles)
	})
	assert.Empty(t, handles)
}
