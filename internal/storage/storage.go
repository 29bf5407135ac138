// Package storage holds the file operations for the managed library tree.
package storage // import "github.com/jebrand/jebman/internal/storage"

import (
	"io"
	"os"

	"github.com/pkg/errors"
)

// CopyFile copies src to dst without overwriting: an existing destination
// is a failure. The destination directory must already exist.
func CopyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return errors.Wrapf(err, "opening %s", src)
	}
	defer in.Close()

	out, err := os.OpenFile(dst, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0644)
	if err != nil {
		return errors.Wrapf(err, "creating %s", dst)
	}

	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		os.Remove(dst)
		return errors.Wrapf(err, "copying to %s", dst)
	}
	if err := out.Close(); err != nil {
		os.Remove(dst)
		return errors.Wrapf(err, "closing %s", dst)
	}
	return nil
}

// EnsureDir creates the directory if it does not exist yet.
func EnsureDir(dir string) error {
	if _, err := os.Stat(dir); err == nil {
		return nil
	} else if !errors.Is(err, os.ErrNotExist) {
		return errors.Wrapf(err, "checking %s", dir)
	}
	return errors.Wrapf(os.MkdirAll(dir, 0755), "creating %s", dir)
}

// RemoveFile deletes the file at path.
func RemoveFile(path string) error {
	return errors.Wrapf(os.Remove(path), "removing %s", path)
}

// PruneEmptyDir removes dir when it holds no entries, e.g. an author
// directory whose last book was just deleted. A non-empty directory is
// left alone.
func PruneEmptyDir(dir string) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return errors.Wrapf(err, "reading %s", dir)
	}
	if len(entries) > 0 {
		return nil
	}
	return errors.Wrapf(os.Remove(dir), "removing %s", dir)
}

// Exists reports whether path exists.
func Exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
