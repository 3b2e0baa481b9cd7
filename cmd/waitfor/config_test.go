package main

import (
	"os"
	"path/filepath"
	"syscall"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "waitfor.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
timeout: 30s
event: shutdown
signals: [SIGTERM, SIGUSR1]
log_file: /tmp/waitfor.log
json_log: true
`), 0600))

	cfg, err := loadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, 30*time.Second, time.Duration(cfg.Timeout))
	assert.Equal(t, "shutdown", cfg.Event)
	assert.Equal(t, []string{"SIGTERM", "SIGUSR1"}, cfg.Signals)
	assert.Equal(t, "/tmp/waitfor.log", cfg.LogFile)
	assert.True(t, cfg.JSONLog)
}

func TestLoadConfig_BadDuration(t *testing.T) {
	path := filepath.Join(t.TempDir(), "waitfor.yaml")
	require.NoError(t, os.WriteFile(path, []byte("timeout: soon\n"), 0600))
	_, err := loadConfig(path)
	assert.ErrorContains(t, err, "invalid duration")
}

func TestParseSignals(t *testing.T) {
	sigs, err := parseSignals(nil)
	require.NoError(t, err)
	assert.Equal(t, []os.Signal{syscall.SIGINT, syscall.SIGTERM}, sigs, "No names should fall back to the interrupt signals")

	sigs, err = parseSignals([]string{"SIGUSR1", "SIGHUP"})
	require.NoError(t, err)
	assert.Equal(t, []os.Signal{syscall.SIGUSR1, syscall.SIGHUP}, sigs)

	_, err = parseSignals([]string{"SIGWAT"})
	assert.ErrorContains(t, err, "unknown signal 'SIGWAT'")
}
