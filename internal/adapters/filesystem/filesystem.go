package filesystem

import (
	"errors"
	"os"

	"github.com/spf13/afero"
)

// Adapter provides file system operations backed by an afero.Fs.
type Adapter struct {
	fs afero.Fs
}

// New creates a new filesystem adapter over the host filesystem.
func New() *Adapter {
	return NewWithFs(afero.NewOsFs())
}

// NewWithFs creates a filesystem adapter over the given afero backend.
func NewWithFs(fs afero.Fs) *Adapter {
	return &Adapter{fs: fs}
}

// ReadFile reads a file from disk.
func (a *Adapter) ReadFile(path string) ([]byte, error) {
	return afero.ReadFile(a.fs, path)
}

// WriteFile writes data to a file, truncating it if it exists.
func (a *Adapter) WriteFile(path string, data []byte, perm os.FileMode) error {
	return afero.WriteFile(a.fs, path, data, perm)
}

// AppendFile appends data to a file, creating it if it does not exist.
// The parent directory must already exist.
func (a *Adapter) AppendFile(path string, data []byte, perm os.FileMode) error {
	f, err := a.fs.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, perm)
	if err != nil {
		return err
	}

	_, writeErr := f.Write(data)
	closeErr := f.Close()
	return errors.Join(writeErr, closeErr)
}

// Rename moves oldPath to newPath, replacing newPath if it exists.
func (a *Adapter) Rename(oldPath, newPath string) error {
	return a.fs.Rename(oldPath, newPath)
}

// MkdirAll creates a directory and all necessary parents.
func (a *Adapter) MkdirAll(path string, perm os.FileMode) error {
	return a.fs.MkdirAll(path, perm)
}

// Remove deletes a file.
func (a *Adapter) Remove(path string) error {
	return a.fs.Remove(path)
}

// Chmod changes the file permissions.
func (a *Adapter) Chmod(path string, perm os.FileMode) error {
	return a.fs.Chmod(path, perm)
}
