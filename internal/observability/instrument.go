package observability

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/propagation"
)

// Settings selects how logs are rendered and where they go.
type Settings struct {
	Level slog.Level
	// Format is text, json or otel.
	Format string
	// Exporter selects the OpenTelemetry log exporter when Format is otel:
	// stdout, otlp-http or otlp-grpc.
	Exporter string
	// Writer receives text, json and stdout-exported logs. Defaults to os.Stderr
	// so converted documents written to stdout stay clean.
	Writer io.Writer
}

// Instrument installs the default slog logger and the W3C trace context
// propagator, and returns a shutdown func that flushes buffered records. The
// shutdown func is never nil.
func Instrument(ctx context.Context, settings Settings) (func(context.Context) error, error) {
	if settings.Writer == nil {
		settings.Writer = os.Stderr
	}

	handler, shutdown, err := newHandler(ctx, settings)
	if err != nil {
		return func(context.Context) error { return nil }, err
	}

	slog.SetDefault(slog.New(newContextHandler(handler)))
	otel.SetTextMapPropagator(propagation.NewCompositeTextMapPropagator(
		propagation.TraceContext{},
		propagation.Baggage{},
	))

	return shutdown, nil
}

func newHandler(ctx context.Context, settings Settings) (slog.Handler, func(context.Context) error, error) {
	noop := func(context.Context) error { return nil }

	opts := &slog.HandlerOptions{
		Level: settings.Level,
	}

	switch strings.ToLower(settings.Format) {
	case "json":
		return slog.NewJSONHandler(settings.Writer, opts), noop, nil
	case "text":
		return slog.NewTextHandler(settings.Writer, opts), noop, nil
	case "otel":
		return newOTelHandler(ctx, settings)
	default:
		return nil, noop, fmt.Errorf("unsupported log format %q (expected: text, json, otel)", settings.Format)
	}
}
