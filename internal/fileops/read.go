package fileops

import (
	"context"

	"jetpack/internal/domain"
	apperrors "jetpack/internal/errors"
)

// Read returns the content of path decoded per opts.ReturnAs: a string for
// utf8, []byte for buf, and the decoded JSON value for json and
// jsonWithDates. A missing file yields (nil, nil).
func (o *Ops) Read(ctx context.Context, path string, opts ReadOptions) (any, error) {
	value, _, err := o.ReadValue(ctx, path, opts)
	return value, err
}

// ReadValue is Read with absence reported through found, which tells a
// missing file apart from a JSON document holding null.
func (o *Ops) ReadValue(ctx context.Context, path string, opts ReadOptions) (value any, found bool, err error) {
	if err := validatePath(path); err != nil {
		return nil, false, err
	}

	data, found, err := o.readRaw(ctx, path, opts)
	if err != nil || !found {
		return nil, false, err
	}

	value, err = decodeContent(path, data, domain.ParseReturnAs(opts.ReturnAs.String()))
	if err != nil {
		return nil, false, err
	}
	return value, true, nil
}

// ReadString reads path as utf8 text. found is false when the file is absent.
func (o *Ops) ReadString(ctx context.Context, path string, opts ReadOptions) (content string, found bool, err error) {
	if err := validatePath(path); err != nil {
		return "", false, err
	}

	data, found, err := o.readRaw(ctx, path, opts)
	if err != nil || !found {
		return "", false, err
	}
	return string(data), true, nil
}

// ReadBytes reads path without decoding. found is false when the file is absent.
func (o *Ops) ReadBytes(ctx context.Context, path string, opts ReadOptions) (content []byte, found bool, err error) {
	if err := validatePath(path); err != nil {
		return nil, false, err
	}
	return o.readRaw(ctx, path, opts)
}

// ReadJSON decodes the JSON content of path into v. opts.ReturnAs is ignored.
// found is false, and v untouched, when the file is absent.
func (o *Ops) ReadJSON(ctx context.Context, path string, v any, opts ReadOptions) (found bool, err error) {
	if err := validatePath(path); err != nil {
		return false, err
	}

	data, found, err := o.readRaw(ctx, path, opts)
	if err != nil || !found {
		return false, err
	}

	if err := DecodeJSON(data, v); err != nil {
		return false, apperrors.NewDecodeError(path, domain.ReturnJSON.String(), err)
	}
	return true, nil
}

func (o *Ops) readRaw(ctx context.Context, path string, opts ReadOptions) ([]byte, bool, error) {
	if opts.Safe {
		return o.readWithFallback(ctx, path, opts.StrictBackup)
	}
	return o.readIfExists(path)
}

// readIfExists reads path, reporting absence as found=false.
func (o *Ops) readIfExists(path string) ([]byte, bool, error) {
	data, err := o.fs.ReadFile(path)
	if err == nil {
		return data, true, nil
	}
	if apperrors.Classify(err) == apperrors.KindNotFound {
		return nil, false, nil
	}
	return nil, false, apperrors.NewOperationError("read", "", path, err)
}

// readWithFallback reads path and, only if it is missing, its backup. A
// backup failure other than not-found counts as absence unless strict.
func (o *Ops) readWithFallback(ctx context.Context, path string, strict bool) ([]byte, bool, error) {
	data, found, err := o.readIfExists(path)
	if err != nil || found {
		return data, found, err
	}

	backup := o.backupPath(path)
	o.logger.DebugContext(ctx, "Primary file missing, trying backup", "path", path, "backup", backup)

	data, err = o.fs.ReadFile(backup)
	switch {
	case err == nil:
		o.logger.InfoContext(ctx, "Read content from backup file", "path", path, "backup", backup)
		return data, true, nil
	case apperrors.Classify(err) == apperrors.KindNotFound:
		return nil, false, nil
	case strict:
		return nil, false, apperrors.NewOperationError("read", "backup", path, err)
	default:
		o.logger.WarnContext(ctx, "Backup file unreadable, treating as absent",
			"path", path,
			"backup", backup,
			"kind", apperrors.Classify(err).String(),
			"error", err)
		return nil, false, nil
	}
}
