package fileops

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"jetpack/internal/domain"
	apperrors "jetpack/internal/errors"
)

// ReadOptions configures a read.
type ReadOptions struct {
	// ReturnAs selects the decoding. The zero value reads as utf8 text.
	ReturnAs domain.ReturnAs
	// Safe falls back to the backup file when the primary is missing.
	Safe bool
	// StrictBackup makes a safe read propagate backup read failures other
	// than not-found instead of reporting the file as absent.
	StrictBackup bool
}

// WriteOptions configures a write.
type WriteOptions struct {
	Safe bool
	// Mode is applied when the file is created. Zero means 0o644.
	Mode os.FileMode
	// JSONIndent is the indent width used when data is a structured value.
	// Zero writes compact JSON.
	JSONIndent int
}

// AppendOptions configures an append.
type AppendOptions struct {
	// Mode is applied when the file is created. Zero means 0o644.
	Mode os.FileMode
	// Encoding converts string data to bytes: utf8 (default), hex, base64
	// or latin1.
	Encoding string
}

func fileMode(mode os.FileMode) os.FileMode {
	if mode == 0 {
		return DefaultFileMode
	}
	return mode
}

func validatePath(path string) error {
	if path == "" {
		return apperrors.NewValidationError("path", path, "required", "path must not be empty")
	}
	return nil
}

func (opts WriteOptions) validate() error {
	if opts.JSONIndent < 0 {
		return apperrors.NewValidationError(
			"json_indent",
			strconv.Itoa(opts.JSONIndent),
			"non_negative",
			"json indent must not be negative",
		)
	}
	if opts.Mode&^os.ModePerm != 0 {
		return apperrors.NewValidationError(
			"mode",
			fmt.Sprintf("%#o", uint32(opts.Mode)),
			"permission_bits",
			"mode must only contain permission bits",
		)
	}
	return nil
}

func (opts AppendOptions) validate() error {
	if _, ok := stringEncoders[strings.ToLower(opts.Encoding)]; !ok {
		return apperrors.NewValidationError(
			"encoding",
			opts.Encoding,
			"supported_values",
			"encoding must be one of: utf8, hex, base64, latin1",
		)
	}
	if opts.Mode&^os.ModePerm != 0 {
		return apperrors.NewValidationError(
			"mode",
			fmt.Sprintf("%#o", uint32(opts.Mode)),
			"permission_bits",
			"mode must only contain permission bits",
		)
	}
	return nil
}
