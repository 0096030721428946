package logging

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func decodeLines(t *testing.T, buf *bytes.Buffer) []map[string]any {
	t.Helper()
	var out []map[string]any
	for _, line := range strings.Split(strings.TrimSpace(buf.String()), "\n") {
		if line == "" {
			continue
		}
		var m map[string]any
		require.NoError(t, json.Unmarshal([]byte(line), &m))
		out = append(out, m)
	}
	return out
}

func TestNew_JSONToWriter(t *testing.T) {
	var buf bytes.Buffer
	log := New(Config{Level: "debug", Output: &buf})

	log.Debug("hello", zap.Int64("id", 3))

	lines := decodeLines(t, &buf)
	require.Len(t, lines, 1)
	assert.Equal(t, "hello", lines[0]["msg"])
	assert.Equal(t, "debug", lines[0]["level"])
	assert.Equal(t, float64(3), lines[0]["id"])
	assert.Contains(t, lines[0], "timestamp")
}

func TestNew_LevelFilters(t *testing.T) {
	var buf bytes.Buffer
	log := New(Config{Level: "warn", Output: &buf})

	log.Info("dropped")
	log.Warn("kept")

	lines := decodeLines(t, &buf)
	require.Len(t, lines, 1)
	assert.Equal(t, "kept", lines[0]["msg"])
}

func TestNew_UnknownLevelFallsBackToInfo(t *testing.T) {
	var buf bytes.Buffer
	log := New(Config{Level: "chatty", Output: &buf})

	log.Debug("dropped")
	log.Info("kept")

	assert.Len(t, decodeLines(t, &buf), 1)
}

func TestNew_ConsoleEncoding(t *testing.T) {
	var buf bytes.Buffer
	log := New(Config{Encoding: "console", Output: &buf})

	log.Info("plain text")

	assert.Contains(t, buf.String(), "plain text")
	assert.False(t, json.Valid(bytes.TrimSpace(buf.Bytes())))
}

func TestNew_FileGetsJSONWhateverTheEncoding(t *testing.T) {
	var buf bytes.Buffer
	path := filepath.Join(t.TempDir(), "logs", "mindvault.log")
	log := New(Config{Level: "info", Encoding: "console", Output: &buf, File: path})

	log.Debug("dropped")
	log.Info("to both", zap.String("component", "api"))
	require.NoError(t, log.Sync())

	assert.Contains(t, buf.String(), "to both")
	assert.False(t, json.Valid(bytes.TrimSpace(buf.Bytes())))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	lines := decodeLines(t, bytes.NewBuffer(data))
	require.Len(t, lines, 1)
	assert.Equal(t, "to both", lines[0]["msg"])
	assert.Equal(t, "api", lines[0]["component"])
	assert.Contains(t, lines[0], "timestamp")
}

func TestWithRequestID(t *testing.T) {
	var buf bytes.Buffer
	base := New(Config{Output: &buf})

	ctx := ContextWithRequestID(context.Background(), "req-42")
	assert.Equal(t, "req-42", RequestID(ctx))

	WithRequestID(ctx, base).Info("tagged")
	WithRequestID(context.Background(), base).Info("untagged")

	lines := decodeLines(t, &buf)
	require.Len(t, lines, 2)
	assert.Equal(t, "req-42", lines[0]["request_id"])
	assert.NotContains(t, lines[1], "request_id")
}

func TestWithRequestID_NilLogger(t *testing.T) {
	assert.Nil(t, WithRequestID(context.Background(), nil))
}
