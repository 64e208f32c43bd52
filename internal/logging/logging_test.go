package logging

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/trace"
)

func TestNew_Keys(t *testing.T) {
	var buf bytes.Buffer
	loc := time.FixedZone("WAT", 3600)
	l := New(&buf, loc, slog.LevelInfo)

	l.Info("courrier_created", "component", "service", "courrier_id", "c1")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "info", entry["level"])
	assert.Equal(t, "courrier_created", entry["msg"])
	assert.Equal(t, "service", entry["component"])
	assert.Equal(t, "c1", entry["courrier_id"])
	assert.NotContains(t, entry, "time")

	ts, ok := entry["ts"].(string)
	require.True(t, ok)
	parsed, err := time.Parse(time.RFC3339Nano, ts)
	require.NoError(t, err)
	_, offset := parsed.Zone()
	assert.Equal(t, 3600, offset)
}

func TestNew_Level(t *testing.T) {
	var buf bytes.Buffer
	l := New(&buf, nil, slog.LevelWarn)

	l.Info("dropped")
	assert.Zero(t, buf.Len())

	l.Error("kept")
	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "error", entry["level"])
}

func TestParseLevel(t *testing.T) {
	tests := map[string]slog.Level{
		"debug":   slog.LevelDebug,
		"INFO":    slog.LevelInfo,
		"warn":    slog.LevelWarn,
		"warning": slog.LevelWarn,
		"error":   slog.LevelError,
		"":        slog.LevelInfo,
		"verbose": slog.LevelInfo,
	}
	for in, want := range tests {
		assert.Equal(t, want, ParseLevel(in), in)
	}
}

func TestNew_CorrelationIDs(t *testing.T) {
	var buf bytes.Buffer
	l := New(&buf, nil, slog.LevelInfo).With("component", "http")

	ctx := WithRequestID(context.Background(), "req-42")
	traceID, _ := trace.TraceIDFromHex("4bf92f3577b34da6a3ce929d0e0e4736")
	spanID, _ := trace.SpanIDFromHex("00f067aa0ba902b7")
	ctx = trace.ContextWithSpanContext(ctx, trace.NewSpanContext(trace.SpanContextConfig{
		TraceID: traceID, SpanID: spanID, TraceFlags: trace.FlagsSampled,
	}))

	l.InfoContext(ctx, "courrier_transmitted")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "req-42", entry["request_id"])
	assert.Equal(t, "4bf92f3577b34da6a3ce929d0e0e4736", entry["trace_id"])
	assert.Equal(t, "http", entry["component"])
	assert.Equal(t, "req-42", RequestID(ctx))

	buf.Reset()
	l.Info("no_context")
	var plain map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &plain))
	assert.NotContains(t, plain, "trace_id")
	assert.NotContains(t, plain, "request_id")
}
