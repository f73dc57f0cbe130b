package commands

import (
	"context"
	"log/slog"

	"jetpack/internal/fileops"
)

// ReadCommand handles reading a single file.
type ReadCommand struct {
	ops    *fileops.Ops
	logger *slog.Logger
}

// NewReadCommand creates a new read command.
func NewReadCommand(ops *fileops.Ops, logger *slog.Logger) *ReadCommand {
	return &ReadCommand{
		ops:    ops,
		logger: logger,
	}
}

// ReadRequest contains the parameters for the read command.
type ReadRequest struct {
	Path    string
	Options fileops.ReadOptions
}

// ReadResult holds the decoded content. Found is false when neither the
// file nor, for safe reads, its backup exists.
type ReadResult struct {
	Value any
	Found bool
}

// Execute runs the read command.
func (c *ReadCommand) Execute(ctx context.Context, req ReadRequest) (ReadResult, error) {
	c.logger.DebugContext(ctx, "Reading file",
		"path", req.Path,
		"returnAs", req.Options.ReturnAs,
		"safe", req.Options.Safe)

	value, found, err := c.ops.ReadValue(ctx, req.Path, req.Options)
	if err != nil {
		return ReadResult{}, err
	}

	c.logger.DebugContext(ctx, "Read finished", "path", req.Path, "found", found)
	return ReadResult{Value: value, Found: found}, nil
}
