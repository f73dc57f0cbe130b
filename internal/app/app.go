package app

import (
	"context"
	"io"
	"log/slog"

	"jetpack/internal/adapters/terminal"
	"jetpack/internal/config"
	"jetpack/internal/domain"
	"jetpack/internal/fileops"
)

// App contains all application dependencies.
type App struct {
	// File operations
	Ops   *fileops.Ops
	Async *fileops.Async

	// Filesystem backing the file operations
	FileSystem domain.FileSystemAdapter

	// I/O dependencies
	Terminal *terminal.Adapter

	// Logging
	Logger *slog.Logger

	// Settings loaded from the config file and environment
	Settings *config.Config

	// Configuration
	Config *Config
}

// Config holds application configuration.
type Config struct {
	LogLevel *slog.Level
	Verbose  bool
	Stdin    io.Reader
	Stdout   io.Writer
}

// Option is a functional option for configuring the App.
type Option func(*Config)

// WithLogLevel overrides the configured logging level.
func WithLogLevel(level slog.Level) Option {
	return func(cfg *Config) {
		cfg.LogLevel = &level
	}
}

// WithVerbose enables verbose logging.
func WithVerbose(verbose bool) Option {
	return func(cfg *Config) {
		cfg.Verbose = verbose
		if verbose {
			level := slog.LevelDebug
			cfg.LogLevel = &level
		}
	}
}

// WithIO sets the streams used for command input and output.
func WithIO(stdin io.Reader, stdout io.Writer) Option {
	return func(cfg *Config) {
		cfg.Stdin = stdin
		cfg.Stdout = stdout
	}
}

// NewApp creates a new App from settings with the given options. Nil
// settings means the built-in defaults.
func NewApp(ctx context.Context, settings *config.Config, opts ...Option) (*App, error) {
	cfg := &Config{}

	// Apply options.
	for _, opt := range opts {
		opt(cfg)
	}

	return NewAppWithConfig(ctx, cfg, settings)
}
