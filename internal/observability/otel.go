package observability

import (
	"context"
	"fmt"
	"log/slog"

	"go.opentelemetry.io/contrib/bridges/otelslog"
	"go.opentelemetry.io/contrib/processors/minsev"
	"go.opentelemetry.io/otel/exporters/otlp/otlplog/otlploggrpc"
	"go.opentelemetry.io/otel/exporters/otlp/otlplog/otlploghttp"
	"go.opentelemetry.io/otel/exporters/stdout/stdoutlog"
	sdklog "go.opentelemetry.io/otel/sdk/log"
)

// instrumentationName is the OpenTelemetry scope of every log record.
const instrumentationName = "github.com/florianilch/agency"

// newOTelHandler bridges slog into the OpenTelemetry log SDK. OTLP exporters read
// their endpoint and headers from the standard OTEL_EXPORTER_OTLP_* variables.
func newOTelHandler(ctx context.Context, settings Settings) (slog.Handler, func(context.Context) error, error) {
	noop := func(context.Context) error { return nil }

	var processor sdklog.Processor
	switch settings.Exporter {
	case "", "stdout":
		exporter, err := stdoutlog.New(stdoutlog.WithWriter(settings.Writer))
		if err != nil {
			return nil, noop, fmt.Errorf("create stdout log exporter: %w", err)
		}
		// Synchronous export keeps CLI output ordered.
		processor = sdklog.NewSimpleProcessor(exporter)
	case "otlp-http":
		exporter, err := otlploghttp.New(ctx)
		if err != nil {
			return nil, noop, fmt.Errorf("create otlp http log exporter: %w", err)
		}
		processor = sdklog.NewBatchProcessor(exporter)
	case "otlp-grpc":
		exporter, err := otlploggrpc.New(ctx)
		if err != nil {
			return nil, noop, fmt.Errorf("create otlp grpc log exporter: %w", err)
		}
		processor = sdklog.NewBatchProcessor(exporter)
	default:
		return nil, noop, fmt.Errorf("unsupported log exporter %q (expected: stdout, otlp-http, otlp-grpc)", settings.Exporter)
	}

	provider := sdklog.NewLoggerProvider(
		sdklog.WithProcessor(minsev.NewLogProcessor(processor, toSeverity(settings.Level))),
	)

	handler := otelslog.NewHandler(instrumentationName, otelslog.WithLoggerProvider(provider))
	return handler, provider.Shutdown, nil
}

// toSeverity maps a slog level to the minimum OpenTelemetry severity.
func toSeverity(level slog.Level) minsev.Severity {
	switch {
	case level <= slog.LevelDebug:
		return minsev.SeverityDebug
	case level <= slog.LevelInfo:
		return minsev.SeverityInfo
	case level <= slog.LevelWarn:
		return minsev.SeverityWarn
	default:
		return minsev.SeverityError
	}
}
