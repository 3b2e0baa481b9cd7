package tracex

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"strings"
	"testing"

	"github.com/saylorsolutions/waitx/promise"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTraced_Success(t *testing.T) {
	wrapped := Traced(nil, "fetch", func() (int, error) {
		return 7, nil
	})
	val, err := wrapped()
	require.NoError(t, err)
	assert.Equal(t, 7, val)
}

func TestTraced_Failure(t *testing.T) {
	boom := errors.New("boom")
	wrapped := Traced(nil, "fetch", func() (int, error) {
		return 0, boom
	})
	_, err := wrapped()
	require.Error(t, err)
	assert.ErrorIs(t, err, boom, "The original failure must stay reachable through Unwrap")
	assert.Contains(t, err.Error(), "boom")
	assert.Contains(t, err.Error(), "fetch called from:")
	assert.Contains(t, err.Error(), "tracex.TestTraced_Failure", "The stack should point at the invocation site")
}

func TestTraced_Logging(t *testing.T) {
	var buf bytes.Buffer
	log := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{
		Level: slog.LevelDebug,
	}))
	wrapped := Traced(log, "fetch", func() (string, error) {
		return "ok", nil
	})
	_, err := wrapped()
	require.NoError(t, err)
	assert.Equal(t, 1, strings.Count(buf.String(), "op=fetch"))
}

func TestTracedAsync_Failure(t *testing.T) {
	boom := errors.New("boom")
	wrapped := TracedAsync(nil, "navigate", func() *promise.Promise[string] {
		return promise.Failed[string](boom)
	})
	_, err := wrapped().Await(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, boom)
	assert.Contains(t, err.Error(), "navigate called from:")
	assert.Contains(t, err.Error(), "tracex.TestTracedAsync_Failure", "The stack should reflect the wrap invocation, not the goroutine that settled the promise")
}

func TestTracedAsync_Success(t *testing.T) {
	wrapped := TracedAsync(nil, "navigate", func() *promise.Promise[string] {
		return promise.Resolved("done")
	})
	val, err := wrapped().Await(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "done", val)
}
