package domain

import (
	"os"
)

// FileSystemAdapter defines the interface for file operations.
//
// Implementations must return errors that keep the io/fs sentinels
// (fs.ErrNotExist, fs.ErrPermission) reachable through errors.Is.
type FileSystemAdapter interface {
	ReadFile(path string) ([]byte, error)
	WriteFile(path string, data []byte, perm os.FileMode) error
	AppendFile(path string, data []byte, perm os.FileMode) error
	Rename(oldPath, newPath string) error
	Remove(path string) error
	MkdirAll(path string, perm os.FileMode) error
	Chmod(path string, perm os.FileMode) error
}
