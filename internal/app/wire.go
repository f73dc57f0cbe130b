package app

import (
	"context"
	"io"
	"os"
	"strings"

	"jetpack/internal/adapters/filesystem"
	"jetpack/internal/adapters/terminal"
	"jetpack/internal/config"
	"jetpack/internal/domain"
	"jetpack/internal/fileops"
	"jetpack/internal/logging"
)

// NewAppWithConfig creates a new App with the given configuration, wiring all dependencies.
func NewAppWithConfig(ctx context.Context, cfg *Config, settings *config.Config) (*App, error) {
	var stdin io.Reader = os.Stdin
	if cfg.Stdin != nil {
		stdin = cfg.Stdin
	}
	var stdout io.Writer = os.Stdout
	if cfg.Stdout != nil {
		stdout = cfg.Stdout
	}

	return newApp(ctx, cfg, settings, filesystem.New(), terminal.NewAdapter(stdin, stdout))
}

func newApp(
	ctx context.Context,
	cfg *Config,
	settings *config.Config,
	fs domain.FileSystemAdapter,
	term *terminal.Adapter,
) (*App, error) {
	if settings == nil {
		settings = config.Default()
	}
	if err := settings.Validate(); err != nil {
		return nil, err
	}

	// Create logger.
	logCfg := settings.LoggingConfig()
	if cfg.LogLevel != nil {
		logCfg.Level = logging.LogLevel(strings.ToLower(cfg.LogLevel.String()))
	}
	logger := logging.NewLogger(logCfg).Logger

	// Create file operations.
	ops := fileops.New(fs,
		fileops.WithLogger(logger),
		fileops.WithExtensions(settings.Extensions()),
		fileops.WithDirMode(settings.DirMode()),
	)
	sched := fileops.NewScheduler(settings.SchedulerConfig(), logger)

	logger.DebugContext(ctx, "Initializing jetpack with configuration",
		"logLevel", logCfg.Level,
		"verbose", cfg.Verbose,
		"maxInFlight", settings.Async.MaxInFlight,
		"opsPerSecond", settings.Async.OpsPerSecond)

	return &App{
		Ops:        ops,
		Async:      fileops.NewAsync(ops, sched),
		FileSystem: fs,
		Terminal:   term,
		Logger:     logger,
		Settings:   settings,
		Config:     cfg,
	}, nil
}
