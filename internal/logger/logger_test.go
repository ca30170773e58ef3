package logger

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLogger_LevelFilter(t *testing.T) {
	var buf bytes.Buffer
	log := New(&buf, LevelWarn, "test", nil)

	log.Info(context.Background(), "dropped")
	log.Warn(context.Background(), "kept")

	out := buf.String()
	assert.NotContains(t, out, "dropped")
	assert.Contains(t, out, "kept")
}

func TestLogger_JSONFields(t *testing.T) {
	var buf bytes.Buffer
	traceFn := func(context.Context) string { return "abc123" }
	log := New(&buf, LevelDebug, "oneinch", traceFn, WithJSON())

	log.Error(context.Background(), "quote failed", "chainId", 1, "error", errors.New("boom"), "dangling")

	var rec map[string]any
	require.NoError(t, json.Unmarshal([]byte(strings.TrimSpace(buf.String())), &rec))
	assert.Equal(t, "quote failed", rec["msg"])
	assert.Equal(t, "oneinch", rec["service"])
	assert.Equal(t, float64(1), rec["chainId"])
	assert.Equal(t, "boom", rec["error"])
	assert.Equal(t, "dangling", rec["!BADKEY"])
	assert.Equal(t, "abc123", rec["trace_id"])
}

func TestParseLevel(t *testing.T) {
	assert.Equal(t, LevelDebug, ParseLevel("debug"))
	assert.Equal(t, LevelWarn, ParseLevel("warn"))
	assert.Equal(t, LevelError, ParseLevel("error"))
	assert.Equal(t, LevelInfo, ParseLevel(""))
}

func TestNewNop(t *testing.T) {
	log := NewNop()
	log.Infoc(context.Background(), 1, "nothing", "k", "v")
}
