package observability_test

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/trace"

	"github.com/Sumatoshi-tech/shapematch/internal/observability"
)

func TestTracingHandler_InjectsTraceContext(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer

	inner := slog.NewJSONHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug})
	handler := observability.NewTracingHandler(inner, "test-svc", "test")
	logger := slog.New(handler)

	traceID, err := trace.TraceIDFromHex("0102030405060708090a0b0c0d0e0f10")
	require.NoError(t, err)

	spanID, err := trace.SpanIDFromHex("0102030405060708")
	require.NoError(t, err)

	sc := trace.NewSpanContext(trace.SpanContextConfig{
		TraceID:    traceID,
		SpanID:     spanID,
		TraceFlags: trace.FlagsSampled,
	})
	ctx := trace.ContextWithSpanContext(context.Background(), sc)

	logger.InfoContext(ctx, "test message")

	var record map[string]any

	err = json.Unmarshal(buf.Bytes(), &record)
	require.NoError(t, err)

	assert.Equal(t, "0102030405060708090a0b0c0d0e0f10", record["trace_id"])
	assert.Equal(t, "0102030405060708", record["span_id"])
	assert.Equal(t, "test-svc", record["service"])
	assert.Equal(t, "test", record["env"])
}

func TestTracingHandler_NoTraceContext(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer

	inner := slog.NewJSONHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug})
	handler := observability.NewTracingHandler(inner, "shapematch", "")
	logger := slog.New(handler)

	logger.InfoContext(context.Background(), "no span")

	var record map[string]any

	err := json.Unmarshal(buf.Bytes(), &record)
	require.NoError(t, err)

	_, hasTraceID := record["trace_id"]
	assert.False(t, hasTraceID)

	assert.Equal(t, "shapematch", record["service"])

	_, hasEnv := record["env"]
	assert.False(t, hasEnv, "empty environment stays out of the record")
}

func TestTracingHandler_WithGroup(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer

	inner := slog.NewJSONHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug})
	handler := observability.NewTracingHandler(inner, "shapematch", "")
	logger := slog.New(handler)

	grouped := logger.WithGroup("match")
	grouped.InfoContext(context.Background(), "done", slog.String("pattern", "Call"))

	var record map[string]any

	err := json.Unmarshal(buf.Bytes(), &record)
	require.NoError(t, err)

	// Service attrs stay at the top level.
	assert.Equal(t, "shapematch", record["service"])

	match, ok := record["match"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "Call", match["pattern"])
}

func TestTracingHandler_WithAttrs(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer

	inner := slog.NewJSONHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug})
	handler := observability.NewTracingHandler(inner, "shapematch", "")
	logger := slog.New(handler)

	withAttrs := logger.With(slog.String("op", "find"))
	withAttrs.InfoContext(context.Background(), "started")

	var record map[string]any

	err := json.Unmarshal(buf.Bytes(), &record)
	require.NoError(t, err)

	assert.Equal(t, "find", record["op"])
	assert.Equal(t, "shapematch", record["service"])
}

func TestParseLevel(t *testing.T) {
	t.Parallel()

	assert.Equal(t, slog.LevelDebug, observability.ParseLevel("debug"))
	assert.Equal(t, slog.LevelWarn, observability.ParseLevel("WARN"))
	assert.Equal(t, slog.LevelWarn, observability.ParseLevel("warning"))
	assert.Equal(t, slog.LevelError, observability.ParseLevel("error"))
	assert.Equal(t, slog.LevelInfo, observability.ParseLevel(""))
	assert.Equal(t, slog.LevelInfo, observability.ParseLevel("bogus"))
}
