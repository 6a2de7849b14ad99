package logging

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	tests := map[string]slog.Level{
		"debug":   slog.LevelDebug,
		"DEBUG":   slog.LevelDebug,
		"info":    slog.LevelInfo,
		"warn":    slog.LevelWarn,
		"warning": slog.LevelWarn,
		"error":   slog.LevelError,
		"bogus":   slog.LevelInfo,
		"":        slog.LevelInfo,
	}
	for in, want := range tests {
		assert.Equal(t, want, ParseLevel(in), "level %q", in)
	}
}

func TestNewAutoFormat(t *testing.T) {
	var buf bytes.Buffer
	New(&buf, "info", "auto", false).Info("hello", "k", "v")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "hello", entry["msg"])
	assert.Equal(t, "v", entry["k"])

	buf.Reset()
	New(&buf, "info", "auto", true).Info("hello")
	assert.Contains(t, buf.String(), "msg=hello")
}

func TestNewExplicitFormat(t *testing.T) {
	var buf bytes.Buffer
	New(&buf, "info", "text", false).Info("hello")
	assert.Contains(t, buf.String(), "msg=hello")

	buf.Reset()
	New(&buf, "info", "JSON", true).Info("hello")
	assert.True(t, json.Valid(buf.Bytes()))
}

func TestNewLevel(t *testing.T) {
	logger := New(&bytes.Buffer{}, "warn", "text", false)
	assert.False(t, logger.Enabled(context.Background(), slog.LevelInfo))
	assert.True(t, logger.Enabled(context.Background(), slog.LevelWarn))
}
