package logging

import (
	"bytes"
	"context"
	"errors"
	"testing"

	sonic "github.com/bytedance/sonic"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/trace"
)

func decodeLines(t *testing.T, buf *bytes.Buffer) []map[string]any {
	t.Helper()

	var out []map[string]any
	for _, line := range bytes.Split(bytes.TrimSpace(buf.Bytes()), []byte("\n")) {
		if len(line) == 0 {
			continue
		}
		entry := map[string]any{}
		require.NoError(t, sonic.Unmarshal(line, &entry))
		out = append(out, entry)
	}
	return out
}

func TestLogger_RedactsSensitiveKeys(t *testing.T) {
	var buf bytes.Buffer
	logger := NewWriter(&buf, LevelInfo)

	logger.Info("banking details saved",
		"creator_id", "creator-1",
		"account_number", "0011223344",
		"Authorization", "Bearer abc",
	)

	lines := decodeLines(t, &buf)
	require.Len(t, lines, 1)
	assert.Equal(t, "creator-1", lines[0]["creator_id"])
	assert.Equal(t, redactedValue, lines[0]["account_number"])
	assert.Equal(t, redactedValue, lines[0]["Authorization"])
	assert.NotContains(t, buf.String(), "0011223344")
}

func TestLogger_ContextAddsTraceIDs(t *testing.T) {
	var buf bytes.Buffer
	logger := NewWriter(&buf, LevelDebug)

	traceID, _ := trace.TraceIDFromHex("4bf92f3577b34da6a3ce929d0e0e4736")
	spanID, _ := trace.SpanIDFromHex("00f067aa0ba902b7")
	ctx := trace.ContextWithSpanContext(context.Background(), trace.NewSpanContext(trace.SpanContextConfig{
		TraceID:    traceID,
		SpanID:     spanID,
		TraceFlags: trace.FlagsSampled,
	}))

	logger.DebugContext(ctx, "creator onboarding advanced", "from", 1, "to", 2)
	logger.InfoContext(context.Background(), "no span")

	lines := decodeLines(t, &buf)
	require.Len(t, lines, 2)
	assert.Equal(t, traceID.String(), lines[0]["trace_id"])
	assert.Equal(t, spanID.String(), lines[0]["span_id"])
	assert.NotContains(t, lines[1], "trace_id")
}

func TestLogger_LevelAndFields(t *testing.T) {
	var buf bytes.Buffer
	logger := NewWriter(&buf, LevelWarn).Named("storage").With("bucket", "portfolio")

	logger.Info("dropped")
	logger.Warn("upload failed", "error", errors.New("timeout"), "dangling")

	lines := decodeLines(t, &buf)
	require.Len(t, lines, 1)
	assert.Equal(t, "storage", lines[0]["logger"])
	assert.Equal(t, "portfolio", lines[0]["bucket"])
	assert.Equal(t, "timeout", lines[0]["error"])
	assert.Contains(t, lines[0], "dangling")
}

func TestLogger_NilAndDefault(t *testing.T) {
	var nilLogger *Logger
	nilLogger.Info("ignored")
	assert.NoError(t, nilLogger.Sync())

	original := Default()
	t.Cleanup(func() { SetDefault(original) })

	SetDefault(nil)
	assert.NotNil(t, Default())
}
