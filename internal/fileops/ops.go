// Package fileops implements crash-resistant read, write and append
// primitives on top of a FileSystemAdapter.
//
// A safe write stages new content next to the target, moves the current
// file aside as a backup, promotes the staged file, then deletes the backup.
// At every point after staging, either the old content (under its own name
// or the backup name) or the new content (under its own name) is complete on
// disk. A safe read falls back to the backup when the primary is missing.
//
// Ops is the blocking surface; Async runs the same sequences on a Scheduler
// and returns futures. Neither surface guards against concurrent writers to
// the same path.
package fileops

import (
	"log/slog"
	"os"

	"jetpack/internal/domain"
	"jetpack/internal/logging"
)

const (
	// StagingExt is appended to a path to name the staging file of a safe write.
	StagingExt = ".__new__"
	// BackupExt is appended to a path to name the backup file of a safe write.
	BackupExt = ".__bak__"

	// DefaultFileMode is used for created files when no mode is given.
	DefaultFileMode os.FileMode = 0o644
	// DefaultDirMode is used for directories created on demand.
	DefaultDirMode os.FileMode = 0o755
)

// Extensions names the reserved suffixes used by safe reads and writes.
type Extensions struct {
	Staging string
	Backup  string
}

// DefaultExtensions returns the standard staging and backup suffixes.
func DefaultExtensions() Extensions {
	return Extensions{Staging: StagingExt, Backup: BackupExt}
}

// Ops performs blocking file operations.
type Ops struct {
	fs      domain.FileSystemAdapter
	ext     Extensions
	dirMode os.FileMode
	logger  *slog.Logger
}

// Option is a functional option for configuring Ops.
type Option func(*Ops)

// WithExtensions overrides the staging and backup suffixes.
func WithExtensions(ext Extensions) Option {
	return func(o *Ops) {
		if ext.Staging != "" {
			o.ext.Staging = ext.Staging
		}
		if ext.Backup != "" {
			o.ext.Backup = ext.Backup
		}
	}
}

// WithLogger sets the logger used for step-level diagnostics.
func WithLogger(logger *slog.Logger) Option {
	return func(o *Ops) {
		if logger != nil {
			o.logger = logger
		}
	}
}

// WithDirMode sets the permission bits for directories created on demand.
func WithDirMode(mode os.FileMode) Option {
	return func(o *Ops) {
		if mode != 0 {
			o.dirMode = mode
		}
	}
}

// New creates blocking file operations over fs.
func New(fs domain.FileSystemAdapter, opts ...Option) *Ops {
	o := &Ops{
		fs:      fs,
		ext:     DefaultExtensions(),
		dirMode: DefaultDirMode,
		logger:  logging.NewDiscardLogger(),
	}

	for _, opt := range opts {
		opt(o)
	}

	return o
}

// Extensions returns the suffixes this Ops uses.
func (o *Ops) Extensions() Extensions {
	return o.ext
}

func (o *Ops) stagingPath(path string) string {
	return path + o.ext.Staging
}

func (o *Ops) backupPath(path string) string {
	return path + o.ext.Backup
}
