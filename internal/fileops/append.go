package fileops

import (
	"context"
	"path/filepath"

	apperrors "jetpack/internal/errors"
)

// appendRecovery handles an append that failed because the file's directory
// does not exist.
type appendRecovery func(ctx context.Context, path string, payload []byte, opts AppendOptions) error

// Append adds data to the end of path, creating the file and any missing
// parent directories when needed. String data is converted with
// opts.Encoding; other values are normalized as for Write.
func (o *Ops) Append(ctx context.Context, path string, data any, opts AppendOptions) error {
	payload, err := prepareAppend(path, data, opts)
	if err != nil {
		return err
	}
	return o.appendWith(ctx, path, payload, opts, o.recoverByWrite)
}

func prepareAppend(path string, data any, opts AppendOptions) ([]byte, error) {
	if err := validatePath(path); err != nil {
		return nil, err
	}
	if err := opts.validate(); err != nil {
		return nil, err
	}
	return normalizeAppendData(data, opts.Encoding)
}

// appendWith appends once and hands a not-found failure to onMissing. A nil
// onMissing propagates it.
func (o *Ops) appendWith(
	ctx context.Context,
	path string,
	payload []byte,
	opts AppendOptions,
	onMissing appendRecovery,
) error {
	err := o.fs.AppendFile(path, payload, fileMode(opts.Mode))
	if err == nil {
		o.logger.DebugContext(ctx, "Data appended", "path", path, "bytes", len(payload))
		return nil
	}

	if onMissing == nil || apperrors.Classify(err) != apperrors.KindNotFound {
		return apperrors.NewOperationError("append", "", path, err)
	}
	return onMissing(ctx, path, payload, opts)
}

// recoverByWrite creates the file with exactly payload through the
// directory-ensuring write. Nothing existed to append to, so the outcome
// equals an append.
func (o *Ops) recoverByWrite(ctx context.Context, path string, payload []byte, opts AppendOptions) error {
	if err := o.writeEnsuringDir(ctx, path, payload, fileMode(opts.Mode)); err != nil {
		return apperrors.NewOperationError("append", "create", path, err)
	}
	o.logger.DebugContext(ctx, "File created by append", "path", path, "bytes", len(payload))
	return nil
}

// recoverByRetry creates the parent directory and runs the whole append
// again, once. A second not-found failure propagates.
func (o *Ops) recoverByRetry(ctx context.Context, path string, payload []byte, opts AppendOptions) error {
	dir := filepath.Dir(path)
	if err := o.fs.MkdirAll(dir, o.dirMode); err != nil {
		return apperrors.NewOperationError("append", "mkdir", path, err)
	}
	o.logger.DebugContext(ctx, "Created parent directory, retrying append", "path", path, "dir", dir)
	return o.appendWith(ctx, path, payload, opts, nil)
}
