// Package commands implements the agency command line.
package commands

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/urfave/cli/v3"

	"github.com/florianilch/agency/internal/config"
	"github.com/florianilch/agency/internal/observability"
)

// flagKeys maps CLI flags to configuration keys. Only flags the user set
// explicitly override lower configuration layers.
var flagKeys = map[string]string{
	"log-level":         "log.level",
	"log-format":        "log.format",
	"log-exporter":      "log.exporter",
	"addr":              "server.addr",
	"max-request-bytes": "server.max_request_bytes",
	"indent":            "convert.indent",
	"concurrency":       "convert.concurrency",
}

// Execute runs the root command with the given context and arguments.
func Execute(ctx context.Context, args []string, version, commit string) error {
	return newRootCommand(version, commit).Run(ctx, args)
}

func newRootCommand(version, commit string) *cli.Command {
	return &cli.Command{
		Name:    "agency",
		Usage:   "Translate chat conversations between OpenAI and Anthropic message schemas",
		Version: fmt.Sprintf("%s (%s)", version, commit),
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "path to a TOML configuration file",
				Sources: cli.EnvVars(config.EnvPrefix + "CONFIG"),
			},
			&cli.StringFlag{
				Name:  "log-level",
				Usage: "log level (debug|info|warn|error)",
				Value: slog.LevelInfo.String(),
			},
			&cli.StringFlag{
				Name:  "log-format",
				Usage: "log format (text|json|otel)",
				Value: "text",
			},
			&cli.StringFlag{
				Name:  "log-exporter",
				Usage: "OpenTelemetry log exporter when log-format is otel (stdout|otlp-http|otlp-grpc)",
				Value: "stdout",
			},
		},
		Commands: []*cli.Command{
			convertCommand(),
			serveCommand(),
		},
	}
}

// setup loads the configuration and installs logging. The returned func flushes
// buffered log records and must be called before the command returns.
func setup(ctx context.Context, cmd *cli.Command) (*config.Config, func(), error) {
	flags := make(map[string]any)
	for name, key := range flagKeys {
		if cmd.IsSet(name) {
			flags[key] = cmd.Value(name)
		}
	}

	cfg, err := config.Load(cmd.String("config"), flags, os.Environ)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load config: %w", err)
	}

	level, err := cfg.Log.SlogLevel()
	if err != nil {
		return nil, nil, err
	}

	shutdown, err := observability.Instrument(ctx, observability.Settings{
		Level:    level,
		Format:   cfg.Log.Format,
		Exporter: cfg.Log.Exporter,
		Writer:   cmd.Root().ErrWriter,
	})
	if err != nil {
		return nil, nil, fmt.Errorf("failed to set up observability layer: %w", err)
	}

	flush := func() {
		// The command context may already be cancelled; flushing must still run.
		if err := shutdown(context.WithoutCancel(ctx)); err != nil && !errors.Is(err, context.Canceled) {
			fmt.Fprintf(cmd.Root().ErrWriter, "failed to flush logs: %v\n", err)
		}
	}

	return cfg, flush, nil
}
