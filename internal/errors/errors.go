// Package errors provides custom error types and utilities for jetpack.
//
// This package provides error handling for the file operations including:
// - Failure classification (not found, permission denied, other)
// - Step-level I/O errors from the read/write/append sequencers
// - Decode errors
// - Validation and configuration errors
package errors

import (
	"errors"
	"fmt"
	"io/fs"
)

// Error categories for jetpack operations
var (
	ErrNotFound         = errors.New("path not found")
	ErrPermissionDenied = errors.New("permission denied")
	ErrInvalidInput     = errors.New("invalid input")
	ErrDecode           = errors.New("decode error")
	ErrConfiguration    = errors.New("configuration error")
)

// FailureKind classifies an underlying filesystem failure.
type FailureKind int

const (
	KindOther FailureKind = iota
	KindNotFound
	KindPermissionDenied
)

func (k FailureKind) String() string {
	switch k {
	case KindNotFound:
		return "not_found"
	case KindPermissionDenied:
		return "permission_denied"
	default:
		return "other"
	}
}

// Classify reports what kind of failure err represents. Absence of the
// addressed path is KindNotFound; every caller decides recovery from this
// result rather than from error strings.
func Classify(err error) FailureKind {
	switch {
	case err == nil:
		return KindOther
	case errors.Is(err, fs.ErrNotExist), errors.Is(err, ErrNotFound):
		return KindNotFound
	case errors.Is(err, fs.ErrPermission), errors.Is(err, ErrPermissionDenied):
		return KindPermissionDenied
	default:
		return KindOther
	}
}

// OperationError represents a failed filesystem step of a read, write or append.
type OperationError struct {
	Op   string
	Step string
	Path string
	Err  error
}

func (e *OperationError) Error() string {
	if e.Step != "" {
		return fmt.Sprintf("%s %s (%s): %v", e.Op, e.Path, e.Step, e.Err)
	}
	return fmt.Sprintf("%s %s: %v", e.Op, e.Path, e.Err)
}

func (e *OperationError) Unwrap() error {
	return e.Err
}

func (e *OperationError) Is(target error) bool {
	switch Classify(e.Err) {
	case KindNotFound:
		return target == ErrNotFound
	case KindPermissionDenied:
		return target == ErrPermissionDenied
	default:
		return false
	}
}

// NewOperationError creates a new operation error
func NewOperationError(op, step, path string, err error) *OperationError {
	return &OperationError{
		Op:   op,
		Step: step,
		Path: path,
		Err:  err,
	}
}

// DecodeError represents content that could not be decoded in the requested mode
type DecodeError struct {
	Path string
	Mode string
	Err  error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("failed to decode %s as %s: %v", e.Path, e.Mode, e.Err)
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}

func (e *DecodeError) Is(target error) bool {
	return target == ErrDecode
}

// NewDecodeError creates a new decode error
func NewDecodeError(path, mode string, err error) *DecodeError {
	return &DecodeError{
		Path: path,
		Mode: mode,
		Err:  err,
	}
}

// ConfigurationError represents configuration-related errors
type ConfigurationError struct {
	Field   string
	Value   string
	Message string
	Err     error
}

func (e *ConfigurationError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("configuration error in field '%s': %s", e.Field, e.Message)
	}
	return fmt.Sprintf("configuration error: %s", e.Message)
}

func (e *ConfigurationError) Unwrap() error {
	return e.Err
}

func (e *ConfigurationError) Is(target error) bool {
	return target == ErrConfiguration
}

// NewConfigurationError creates a new configuration error
func NewConfigurationError(field, value, message string, err error) *ConfigurationError {
	return &ConfigurationError{
		Field:   field,
		Value:   value,
		Message: message,
		Err:     err,
	}
}

// ValidationError represents input validation errors
type ValidationError struct {
	Field   string
	Value   string
	Rule    string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("validation error in field '%s': %s", e.Field, e.Message)
	}
	return fmt.Sprintf("validation error: %s", e.Message)
}

func (e *ValidationError) Is(target error) bool {
	return target == ErrInvalidInput
}

// NewValidationError creates a new validation error
func NewValidationError(field, value, rule, message string) *ValidationError {
	return &ValidationError{
		Field:   field,
		Value:   value,
		Rule:    rule,
		Message: message,
	}
}

// IsNotFound checks if an error represents a "not found" condition
func IsNotFound(err error) bool {
	return Classify(err) == KindNotFound
}

// IsPermissionDenied checks if an error represents a permission failure
func IsPermissionDenied(err error) bool {
	return Classify(err) == KindPermissionDenied
}

// IsDecode checks if an error is a decode failure
func IsDecode(err error) bool {
	return errors.Is(err, ErrDecode)
}

// IsValidation checks if an error is validation-related
func IsValidation(err error) bool {
	return errors.Is(err, ErrInvalidInput)
}

// IsConfiguration checks if an error is configuration-related
func IsConfiguration(err error) bool {
	return errors.Is(err, ErrConfiguration)
}
