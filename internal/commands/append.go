package commands

import (
	"context"
	"log/slog"

	"jetpack/internal/fileops"
)

// AppendCommand handles appending to a file.
type AppendCommand struct {
	ops    *fileops.Ops
	async  *fileops.Async
	logger *slog.Logger
}

// NewAppendCommand creates a new append command.
func NewAppendCommand(ops *fileops.Ops, async *fileops.Async, logger *slog.Logger) *AppendCommand {
	return &AppendCommand{
		ops:    ops,
		async:  async,
		logger: logger,
	}
}

// AppendRequest contains the parameters for the append command.
type AppendRequest struct {
	Path    string
	Data    any
	Options fileops.AppendOptions
	// Async routes the append through the scheduler, which retries the
	// append after creating a missing directory.
	Async bool
}

// Execute runs the append command.
func (c *AppendCommand) Execute(ctx context.Context, req AppendRequest) error {
	c.logger.DebugContext(ctx, "Appending to file",
		"path", req.Path,
		"encoding", req.Options.Encoding,
		"async", req.Async)

	if req.Async {
		return c.async.Append(ctx, req.Path, req.Data, req.Options).Wait(ctx)
	}
	return c.ops.Append(ctx, req.Path, req.Data, req.Options)
}
