package fileops

import (
	"context"
	"os"
	"path/filepath"

	apperrors "jetpack/internal/errors"
)

// Write replaces the content of path with data. Strings and byte slices are
// written as-is, nil as an empty file, and any other value as JSON indented
// by opts.JSONIndent. Missing parent directories are created. With
// opts.Safe the replacement goes through a staging file and a backup so the
// file is never observed half-written.
func (o *Ops) Write(ctx context.Context, path string, data any, opts WriteOptions) error {
	payload, err := o.prepareWrite(path, data, opts)
	if err != nil {
		return err
	}
	return o.write(ctx, path, payload, opts)
}

func (o *Ops) prepareWrite(path string, data any, opts WriteOptions) ([]byte, error) {
	if err := validatePath(path); err != nil {
		return nil, err
	}
	if err := opts.validate(); err != nil {
		return nil, err
	}
	return normalizeData(data, opts.JSONIndent)
}

func (o *Ops) write(ctx context.Context, path string, payload []byte, opts WriteOptions) error {
	if opts.Safe {
		return o.safeWrite(ctx, path, payload, opts.Mode)
	}

	mode := fileMode(opts.Mode)
	if err := o.writeEnsuringDir(ctx, path, payload, mode); err != nil {
		return apperrors.NewOperationError("write", "", path, err)
	}
	o.logger.DebugContext(ctx, "File written", "path", path, "bytes", len(payload))
	return nil
}

// writeEnsuringDir writes path and, if its parent directory is missing,
// creates it and retries exactly once.
func (o *Ops) writeEnsuringDir(ctx context.Context, path string, payload []byte, mode os.FileMode) error {
	err := o.fs.WriteFile(path, payload, mode)
	if err == nil || apperrors.Classify(err) != apperrors.KindNotFound {
		return err
	}

	dir := filepath.Dir(path)
	o.logger.DebugContext(ctx, "Parent directory missing, creating it", "path", path, "dir", dir)
	if mkdirErr := o.fs.MkdirAll(dir, o.dirMode); mkdirErr != nil {
		return mkdirErr
	}

	return o.fs.WriteFile(path, payload, mode)
}
