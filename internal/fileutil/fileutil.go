// Package fileutil holds the file writes shared by the site output and the post index.
package fileutil

import (
	"io"
	"os"
	"path/filepath"

	"git.home.luguber.info/inful/factpress/internal/foundation/errors"
)

// WriteAtomic writes data to a temporary file next to path and renames it into
// place, so readers never observe a partial file.
func WriteAtomic(path string, data []byte, perm os.FileMode) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return errors.FileSystemError("failed to create directory").WithCause(err).
			WithContext("path", dir).Build()
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return errors.FileSystemError("failed to create temporary file").WithCause(err).
			WithContext("path", path).Build()
	}
	tmpPath := tmp.Name()
	cleanup := func() { _ = os.Remove(tmpPath) }

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		cleanup()
		return errors.FileSystemError("failed to write temporary file").WithCause(err).
			WithContext("path", tmpPath).Build()
	}
	if err := tmp.Close(); err != nil {
		cleanup()
		return errors.FileSystemError("failed to close temporary file").WithCause(err).
			WithContext("path", tmpPath).Build()
	}
	if err := os.Chmod(tmpPath, perm); err != nil {
		cleanup()
		return errors.FileSystemError("failed to set file mode").WithCause(err).
			WithContext("path", tmpPath).Build()
	}
	if err := os.Rename(tmpPath, path); err != nil {
		cleanup()
		return errors.FileSystemError("failed to replace file").WithCause(err).
			WithContext("path", path).Build()
	}
	return nil
}

// CopyFile copies src to dst byte for byte. A missing src is a not-found error.
func CopyFile(src, dst string) error {
	in, err := os.Open(filepath.Clean(src))
	if err != nil {
		if os.IsNotExist(err) {
			return errors.NotFoundError("source file does not exist").WithCause(err).
				WithContext("path", src).Build()
		}
		return errors.FileSystemError("failed to open source file").WithCause(err).
			WithContext("path", src).Build()
	}
	defer func() { _ = in.Close() }()

	data, err := io.ReadAll(in)
	if err != nil {
		return errors.FileSystemError("failed to read source file").WithCause(err).
			WithContext("path", src).Build()
	}
	return WriteAtomic(dst, data, 0o644)
}
