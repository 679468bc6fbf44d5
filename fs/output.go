package fs

import (
	"io"
	"os"
	"path/filepath"
)

// OutputFile writes a file with atomic replace semantics.
// Create writes to a temporary sibling; Commit renames it over the final
// path; Abort discards it. A failed run never leaves a truncated book behind.
type OutputFile struct {
	path string
	file *os.File
}

// NewOutputFile creates a new OutputFile for the given destination path.
func NewOutputFile(path string) *OutputFile {
	return &OutputFile{path: path}
}

// Path returns the final destination path.
func (f *OutputFile) Path() string {
	return f.path
}

func (f *OutputFile) tempPath() string {
	return f.path + ".tmp"
}

// Create opens the temporary file for writing, creating parent directories.
func (f *OutputFile) Create() (io.Writer, error) {
	if err := os.MkdirAll(filepath.Dir(f.path), 0755); err != nil {
		return nil, err
	}

	file, err := os.Create(f.tempPath())
	if err != nil {
		return nil, err
	}
	f.file = file
	return file, nil
}

// Commit closes the temporary file and moves it to the final path.
// It returns the size of the committed file in bytes.
func (f *OutputFile) Commit() (int64, error) {
	if f.file != nil {
		if err := f.file.Close(); err != nil {
			return 0, err
		}
		f.file = nil
	}

	if err := os.Rename(f.tempPath(), f.path); err != nil {
		return 0, err
	}

	info, err := os.Stat(f.path)
	if err != nil {
		return 0, err
	}
	return info.Size(), nil
}

// Abort closes and removes the temporary file.
func (f *OutputFile) Abort() error {
	if f.file != nil {
		_ = f.file.Close()
		f.file = nil
	}

	if err := os.Remove(f.tempPath()); err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}
