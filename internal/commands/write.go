package commands

import (
	"context"
	"fmt"
	"log/slog"

	"jetpack/internal/errors"
	"jetpack/internal/fileops"
)

// WriteCommand handles writing the same content to one or more files.
type WriteCommand struct {
	ops    *fileops.Ops
	async  *fileops.Async
	logger *slog.Logger
}

// NewWriteCommand creates a new write command.
func NewWriteCommand(ops *fileops.Ops, async *fileops.Async, logger *slog.Logger) *WriteCommand {
	return &WriteCommand{
		ops:    ops,
		async:  async,
		logger: logger,
	}
}

// WriteRequest contains the parameters for the write command.
type WriteRequest struct {
	Paths   []string
	Data    any
	Options fileops.WriteOptions
}

// Execute runs the write command. A single path is written directly;
// several paths are written concurrently and the first failure is returned
// once every write has settled or failed.
func (c *WriteCommand) Execute(ctx context.Context, req WriteRequest) error {
	if len(req.Paths) == 0 {
		return errors.NewValidationError("paths", "", "required", "at least one path is required")
	}

	c.logger.InfoContext(ctx, "Writing files",
		"count", len(req.Paths),
		"safe", req.Options.Safe)

	if len(req.Paths) == 1 {
		return c.ops.Write(ctx, req.Paths[0], req.Data, req.Options)
	}

	futures := make([]fileops.Awaiter, 0, len(req.Paths))
	for _, path := range req.Paths {
		futures = append(futures, c.async.Write(ctx, path, req.Data, req.Options))
	}
	if err := fileops.AwaitAll(ctx, futures...); err != nil {
		c.logger.ErrorContext(ctx, "Error during concurrent write", "error", err)
		return fmt.Errorf("write failed: %w", err)
	}

	c.logger.InfoContext(ctx, "Successfully wrote files", "count", len(req.Paths))
	return nil
}
