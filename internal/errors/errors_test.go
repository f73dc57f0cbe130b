package errors

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"testing"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected FailureKind
	}{
		{"nil", nil, KindOther},
		{"fs not exist", fs.ErrNotExist, KindNotFound},
		{"path error enoent", &fs.PathError{Op: "open", Path: "/x", Err: fs.ErrNotExist}, KindNotFound},
		{"wrapped not exist", fmt.Errorf("read: %w", os.ErrNotExist), KindNotFound},
		{"sentinel not found", ErrNotFound, KindNotFound},
		{"permission", &fs.PathError{Op: "open", Path: "/x", Err: fs.ErrPermission}, KindPermissionDenied},
		{"sentinel permission", ErrPermissionDenied, KindPermissionDenied},
		{"other", errors.New("disk full"), KindOther},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			if got := Classify(test.err); got != test.expected {
				t.Errorf("Expected %s, got %s", test.expected, got)
			}
		})
	}
}

func TestFailureKindString(t *testing.T) {
	if KindNotFound.String() != "not_found" {
		t.Errorf("Expected not_found, got %s", KindNotFound.String())
	}
	if KindPermissionDenied.String() != "permission_denied" {
		t.Errorf("Expected permission_denied, got %s", KindPermissionDenied.String())
	}
	if KindOther.String() != "other" {
		t.Errorf("Expected other, got %s", KindOther.String())
	}
}

func TestOperationError(t *testing.T) {
	cause := &fs.PathError{Op: "rename", Path: "/data/a.txt.__new__", Err: fs.ErrNotExist}
	err := NewOperationError("write", "promote", "/data/a.txt", cause)

	expectedMsg := "write /data/a.txt (promote): rename /data/a.txt.__new__: file does not exist"
	if err.Error() != expectedMsg {
		t.Errorf("Expected error message %q, got %q", expectedMsg, err.Error())
	}

	if !errors.Is(err, ErrNotFound) {
		t.Error("Expected OperationError wrapping ENOENT to match ErrNotFound")
	}

	if !errors.Is(err, fs.ErrNotExist) {
		t.Error("Expected OperationError to unwrap to fs.ErrNotExist")
	}

	if errors.Is(err, ErrPermissionDenied) {
		t.Error("Expected OperationError wrapping ENOENT not to match ErrPermissionDenied")
	}
}

func TestOperationErrorWithoutStep(t *testing.T) {
	err := NewOperationError("read", "", "/data/a.txt", fs.ErrPermission)

	expectedMsg := "read /data/a.txt: permission denied"
	if err.Error() != expectedMsg {
		t.Errorf("Expected error message %q, got %q", expectedMsg, err.Error())
	}

	if !IsPermissionDenied(err) {
		t.Error("Expected OperationError to be identified as permission denied")
	}

	if IsNotFound(err) {
		t.Error("Expected OperationError not to be identified as not found")
	}
}

func TestOperationErrorOtherCause(t *testing.T) {
	cause := errors.New("input/output error")
	err := NewOperationError("append", "", "/data/log", cause)

	if errors.Is(err, ErrNotFound) || errors.Is(err, ErrPermissionDenied) {
		t.Error("Expected generic I/O failure not to match classification sentinels")
	}

	if !errors.Is(err, cause) {
		t.Error("Expected OperationError to wrap the underlying cause")
	}
}

func TestDecodeError(t *testing.T) {
	cause := errors.New("unexpected end of JSON input")
	err := NewDecodeError("/data/a.json", "json", cause)

	expectedMsg := "failed to decode /data/a.json as json: unexpected end of JSON input"
	if err.Error() != expectedMsg {
		t.Errorf("Expected error message %q, got %q", expectedMsg, err.Error())
	}

	if !IsDecode(err) {
		t.Error("Expected DecodeError to be identified as decode error")
	}

	if !errors.Is(err, cause) {
		t.Error("Expected DecodeError to wrap the underlying cause")
	}

	wrapped := fmt.Errorf("read failed: %w", err)
	if !IsDecode(wrapped) {
		t.Error("Expected wrapped DecodeError to be identified as decode error")
	}
}

func TestConfigurationError(t *testing.T) {
	cause := errors.New("file not found")
	err := NewConfigurationError("write.mode", "0999", "invalid file mode", cause)

	expectedMsg := "configuration error in field 'write.mode': invalid file mode"
	if err.Error() != expectedMsg {
		t.Errorf("Expected error message %q, got %q", expectedMsg, err.Error())
	}

	if !IsConfiguration(err) {
		t.Error("Expected ConfigurationError to be identified as configuration error")
	}

	if !errors.Is(err, cause) {
		t.Error("Expected ConfigurationError to wrap the underlying cause")
	}
}

func TestConfigurationErrorWithoutField(t *testing.T) {
	err := NewConfigurationError("", "", "failed to read config file", nil)

	expectedMsg := "configuration error: failed to read config file"
	if err.Error() != expectedMsg {
		t.Errorf("Expected error message %q, got %q", expectedMsg, err.Error())
	}
}

func TestValidationError(t *testing.T) {
	err := NewValidationError("encoding", "utf16", "supported_values", "encoding must be one of: utf8, hex, base64, latin1")

	expectedMsg := "validation error in field 'encoding': encoding must be one of: utf8, hex, base64, latin1"
	if err.Error() != expectedMsg {
		t.Errorf("Expected error message %q, got %q", expectedMsg, err.Error())
	}

	if !IsValidation(err) {
		t.Error("Expected ValidationError to be identified as validation error")
	}

	if !errors.Is(err, ErrInvalidInput) {
		t.Error("Expected ValidationError to match ErrInvalidInput")
	}

	if IsDecode(err) {
		t.Error("Expected ValidationError not to be identified as decode error")
	}
}

func TestErrorsAs(t *testing.T) {
	err := fmt.Errorf("outer: %w", NewOperationError("write", "cleanup", "/a", errors.New("busy")))

	var opErr *OperationError
	if !errors.As(err, &opErr) {
		t.Fatal("Expected errors.As to find OperationError")
	}

	if opErr.Step != "cleanup" {
		t.Errorf("Expected step 'cleanup', got %q", opErr.Step)
	}
}
