// Package config loads layered configuration: defaults, an optional TOML file,
// AGENCY_* environment variables and explicitly set CLI flags, in that order.
package config

import (
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/knadh/koanf/parsers/toml/v2"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env/v2"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// EnvPrefix prefixes every environment variable. Nested keys use a double
// underscore: AGENCY_SERVER__ADDR sets server.addr.
const EnvPrefix = "AGENCY_"

// Config is the complete application configuration.
type Config struct {
	Log     LogConfig     `koanf:"log"`
	Server  ServerConfig  `koanf:"server"`
	Convert ConvertConfig `koanf:"convert"`
}

// LogConfig selects log level, rendering and export.
type LogConfig struct {
	Level    string `koanf:"level" validate:"oneof=debug info warn error"`
	Format   string `koanf:"format" validate:"oneof=text json otel"`
	Exporter string `koanf:"exporter" validate:"oneof=stdout otlp-http otlp-grpc"`
}

// SlogLevel parses Level. Validation guarantees it succeeds for loaded configs.
func (c LogConfig) SlogLevel() (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(c.Level)); err != nil {
		return level, fmt.Errorf("parse log level: %w", err)
	}
	return level, nil
}

// ServerConfig configures the HTTP translation service.
type ServerConfig struct {
	Addr            string        `koanf:"addr" validate:"required,hostname_port"`
	MaxRequestBytes int64         `koanf:"max_request_bytes" validate:"gt=0"`
	ShutdownTimeout time.Duration `koanf:"shutdown_timeout" validate:"gt=0"`
}

// ConvertConfig configures the batch converter.
type ConvertConfig struct {
	// Indent is auto (indent when stdout is a terminal), always or never.
	Indent      string `koanf:"indent" validate:"oneof=auto always never"`
	Concurrency int    `koanf:"concurrency" validate:"min=1,max=64"`
}

// defaults is the lowest configuration layer.
func defaults() map[string]any {
	return map[string]any{
		"log.level":                "info",
		"log.format":               "text",
		"log.exporter":             "stdout",
		"server.addr":              "127.0.0.1:4100",
		"server.max_request_bytes": int64(10 << 20),
		"server.shutdown_timeout":  "5s",
		"convert.indent":           "auto",
		"convert.concurrency":      4,
	}
}

// Load builds the configuration. path may be empty to skip the file layer; flags
// holds dotted keys of CLI flags the user set explicitly; environ is usually
// os.Environ.
func Load(path string, flags map[string]any, environ func() []string) (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(confmap.Provider(defaults(), "."), nil); err != nil {
		return nil, fmt.Errorf("load defaults: %w", err)
	}

	if path != "" {
		if err := k.Load(file.Provider(path), toml.Parser()); err != nil {
			return nil, fmt.Errorf("load config file %s: %w", path, err)
		}
	}

	envProvider := env.Provider(".", env.Opt{
		Prefix: EnvPrefix,
		TransformFunc: func(key, value string) (string, any) {
			key = strings.ToLower(strings.TrimPrefix(key, EnvPrefix))
			return strings.ReplaceAll(key, "__", "."), value
		},
		EnvironFunc: environ,
	})
	if err := k.Load(envProvider, nil); err != nil {
		return nil, fmt.Errorf("load environment: %w", err)
	}

	if len(flags) > 0 {
		if err := k.Load(confmap.Provider(flags, "."), nil); err != nil {
			return nil, fmt.Errorf("load flags: %w", err)
		}
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks every field against its validate tag.
func (c *Config) Validate() error {
	validate := validator.New(validator.WithRequiredStructEnabled())
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	return nil
}
