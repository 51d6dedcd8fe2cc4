package observability

import (
	"bytes"
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/contrib/processors/minsev"
	"go.opentelemetry.io/otel/trace"
)

func TestContextHandler_AddsRequestAndTraceIDs(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(newContextHandler(slog.NewTextHandler(&buf, nil)))

	traceID, err := trace.TraceIDFromHex("4bf92f3577b34da6a3ce929d0e0e4736")
	require.NoError(t, err)
	spanID, err := trace.SpanIDFromHex("00f067aa0ba902b7")
	require.NoError(t, err)

	ctx := trace.ContextWithSpanContext(context.Background(), trace.NewSpanContext(trace.SpanContextConfig{
		TraceID:    traceID,
		SpanID:     spanID,
		TraceFlags: trace.FlagsSampled,
	}))
	ctx = WithRequestID(ctx, "req-1")

	logger.InfoContext(ctx, "converted")

	out := buf.String()
	assert.Contains(t, out, "request_id=req-1")
	assert.Contains(t, out, "trace_id=4bf92f3577b34da6a3ce929d0e0e4736")
	assert.Contains(t, out, "span_id=00f067aa0ba902b7")
}

func TestContextHandler_NoContext(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(newContextHandler(slog.NewTextHandler(&buf, nil)).WithAttrs([]slog.Attr{slog.String("k", "v")}))

	logger.Info("plain")

	assert.NotContains(t, buf.String(), "trace_id")
	assert.NotContains(t, buf.String(), "request_id")
	assert.Contains(t, buf.String(), "k=v")
}

func TestInstrument(t *testing.T) {
	previous := slog.Default()
	t.Cleanup(func() { slog.SetDefault(previous) })

	testCases := []struct {
		name     string
		settings Settings
		wantErr  bool
		want     string
	}{
		{name: "text", settings: Settings{Level: slog.LevelInfo, Format: "text"}, want: "msg=hello"},
		{name: "json", settings: Settings{Level: slog.LevelInfo, Format: "JSON"}, want: `"msg":"hello"`},
		{name: "otel stdout", settings: Settings{Level: slog.LevelInfo, Format: "otel", Exporter: "stdout"}, want: "hello"},
		{name: "unknown format", settings: Settings{Format: "xml"}, wantErr: true},
		{name: "unknown exporter", settings: Settings{Format: "otel", Exporter: "kafka"}, wantErr: true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			var buf bytes.Buffer
			tc.settings.Writer = &buf

			shutdown, err := Instrument(context.Background(), tc.settings)
			require.NotNil(t, shutdown)
			if tc.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)

			slog.Info("hello")
			slog.Debug("filtered")
			require.NoError(t, shutdown(context.Background()))

			assert.Contains(t, buf.String(), tc.want)
			assert.NotContains(t, buf.String(), "filtered")
		})
	}
}

func TestToSeverity(t *testing.T) {
	assert.Equal(t, minsev.SeverityDebug, toSeverity(slog.LevelDebug-4))
	assert.Equal(t, minsev.SeverityDebug, toSeverity(slog.LevelDebug))
	assert.Equal(t, minsev.SeverityInfo, toSeverity(slog.LevelInfo))
	assert.Equal(t, minsev.SeverityWarn, toSeverity(slog.LevelWarn))
	assert.Equal(t, minsev.SeverityError, toSeverity(slog.LevelError))
}
