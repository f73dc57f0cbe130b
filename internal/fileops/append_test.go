package fileops_test

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"jetpack/internal/adapters/filesystem"
	apperrors "jetpack/internal/errors"
	"jetpack/internal/fileops"
	"jetpack/internal/mocks"
	"jetpack/internal/testutil"
)

func newOps() *fileops.Ops {
	return fileops.New(filesystem.New(), fileops.WithLogger(testutil.Logger()))
}

func TestAppend(t *testing.T) {
	ctx := context.Background()

	t.Run("appends to existing file", func(t *testing.T) {
		dir := t.TempDir()
		path := testutil.WriteFile(t, dir, "log.txt", "abc")

		require.NoError(t, newOps().Append(ctx, path, "def", fileops.AppendOptions{}))

		assert.Equal(t, "abcdef", testutil.ReadFile(t, path))
	})

	t.Run("creates missing file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "log.txt")

		require.NoError(t, newOps().Append(ctx, path, "def", fileops.AppendOptions{}))

		assert.Equal(t, "def", testutil.ReadFile(t, path))
	})

	t.Run("creates missing parent directories", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "logs", "2024", "log.txt")

		require.NoError(t, newOps().Append(ctx, path, "def", fileops.AppendOptions{}))

		assert.Equal(t, "def", testutil.ReadFile(t, path))
	})

	t.Run("mode applies through directory creation", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "logs", "secret.log")

		require.NoError(t, newOps().Append(ctx, path, "x", fileops.AppendOptions{Mode: 0o600}))

		info, err := os.Stat(path)
		require.NoError(t, err)
		assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())
	})

	t.Run("bytes", func(t *testing.T) {
		path := testutil.WriteFile(t, t.TempDir(), "a.bin", "\x01")

		require.NoError(t, newOps().Append(ctx, path, []byte{0x02, 0x03}, fileops.AppendOptions{}))

		assert.Equal(t, "\x01\x02\x03", testutil.ReadFile(t, path))
	})

	t.Run("string encodings", func(t *testing.T) {
		tests := []struct {
			encoding string
			data     string
			expected string
		}{
			{"utf8", "é", "é"},
			{"", "plain", "plain"},
			{"hex", "414243", "ABC"},
			{"base64", "QUJD", "ABC"},
			{"latin1", "é", "\xe9"},
			{"UTF8", "x", "x"},
		}

		for _, test := range tests {
			path := filepath.Join(t.TempDir(), "enc.txt")
			require.NoError(t, newOps().Append(ctx, path, test.data, fileops.AppendOptions{Encoding: test.encoding}),
				"encoding %q", test.encoding)
			assert.Equal(t, test.expected, testutil.ReadFile(t, path), "encoding %q", test.encoding)
		}
	})

	t.Run("unknown encoding is rejected", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "enc.txt")

		err := newOps().Append(ctx, path, "x", fileops.AppendOptions{Encoding: "utf16"})

		require.Error(t, err)
		assert.True(t, apperrors.IsValidation(err))
		assert.False(t, testutil.Exists(path))
	})

	t.Run("malformed hex is rejected before touching disk", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "enc.txt")

		err := newOps().Append(ctx, path, "zz", fileops.AppendOptions{Encoding: "hex"})

		require.Error(t, err)
		assert.False(t, testutil.Exists(path))
	})

	t.Run("structured value appended as JSON", func(t *testing.T) {
		path := testutil.WriteFile(t, t.TempDir(), "events.jsonl", "")

		require.NoError(t, newOps().Append(ctx, path, map[string]any{"n": 1}, fileops.AppendOptions{}))

		assert.Equal(t, `{"n":1}`, testutil.ReadFile(t, path))
	})
}

func TestAppend_MissingDirectoryFallsBackToWrite(t *testing.T) {
	mockFS := mocks.NewMockFileSystemAdapter(t)
	ops := fileops.New(mockFS)

	mockFS.EXPECT().AppendFile("/logs/a.log", []byte("def"), os.FileMode(0o644)).Return(notExist("/logs/a.log")).Once()
	mockFS.EXPECT().WriteFile("/logs/a.log", []byte("def"), os.FileMode(0o644)).Return(notExist("/logs/a.log")).Once()
	mockFS.EXPECT().MkdirAll("/logs", os.FileMode(0o755)).Return(nil).Once()
	mockFS.EXPECT().WriteFile("/logs/a.log", []byte("def"), os.FileMode(0o644)).Return(nil).Once()

	require.NoError(t, ops.Append(context.Background(), "/logs/a.log", "def", fileops.AppendOptions{}))
}

func TestAppend_OtherFailurePropagates(t *testing.T) {
	mockFS := mocks.NewMockFileSystemAdapter(t)
	ops := fileops.New(mockFS)

	denied := &fs.PathError{Op: "open", Path: "/logs/a.log", Err: fs.ErrPermission}
	mockFS.EXPECT().AppendFile("/logs/a.log", mock.Anything, mock.Anything).Return(denied)

	err := ops.Append(context.Background(), "/logs/a.log", "def", fileops.AppendOptions{})

	require.Error(t, err)
	assert.True(t, apperrors.IsPermissionDenied(err))
	mockFS.AssertNotCalled(t, "WriteFile", mock.Anything, mock.Anything, mock.Anything)
	mockFS.AssertNotCalled(t, "MkdirAll", mock.Anything, mock.Anything)
}

func TestAppend_FallbackWriteFailurePropagates(t *testing.T) {
	mockFS := mocks.NewMockFileSystemAdapter(t)
	ops := fileops.New(mockFS)

	ioErr := errors.New("input/output error")
	mockFS.EXPECT().AppendFile("/logs/a.log", mock.Anything, mock.Anything).Return(notExist("/logs/a.log"))
	mockFS.EXPECT().WriteFile("/logs/a.log", mock.Anything, mock.Anything).Return(ioErr)

	err := ops.Append(context.Background(), "/logs/a.log", "def", fileops.AppendOptions{})

	require.ErrorIs(t, err, ioErr)
	var opErr *apperrors.OperationError
	require.ErrorAs(t, err, &opErr)
	assert.Equal(t, "create", opErr.Step)
}
