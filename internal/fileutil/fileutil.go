// Package fileutil holds the small file helpers shared by the converter and
// the CLI: existence checks, temp files for the PDF preview, and atomic
// output writes.
package fileutil

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

var (
	ErrExtensionEmpty         = errors.New("extension cannot be empty")
	ErrExtensionPathTraversal = errors.New("extension contains path separator or null byte")
)

const tempPrefix = "md2docx-"

// ValidateExtension accepts a bare extension such as "html".
func ValidateExtension(ext string) error {
	switch {
	case ext == "":
		return ErrExtensionEmpty
	case strings.ContainsAny(ext, "/\\\x00"):
		return ErrExtensionPathTraversal
	}
	return nil
}

// fill runs write against f and closes it. On failure the file is closed
// and the first error is returned.
func fill(f *os.File, write func(io.Writer) error) error {
	if err := write(f); err != nil {
		_ = f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("closing %s: %w", f.Name(), err)
	}
	return nil
}

// WriteTempFile stores content in a new file under the system temp dir and
// returns its path with a cleanup that removes it.
func WriteTempFile(content, ext string) (string, func(), error) {
	if err := ValidateExtension(ext); err != nil {
		return "", nil, err
	}

	f, err := os.CreateTemp("", tempPrefix+"*."+ext)
	if err != nil {
		return "", nil, fmt.Errorf("creating temp file: %w", err)
	}
	path := f.Name()
	cleanup := func() { _ = os.Remove(path) }

	err = fill(f, func(w io.Writer) error {
		_, err := io.WriteString(w, content)
		return err
	})
	if err != nil {
		cleanup()
		return "", nil, fmt.Errorf("writing temp file: %w", err)
	}
	return path, cleanup, nil
}

// WriteFileAtomic streams into a hidden sibling of path and renames it into
// place. The previous file at path survives any failure.
func WriteFileAtomic(path string, perm os.FileMode, write func(io.Writer) error) error {
	f, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	tmp := f.Name()
	defer func() { _ = os.Remove(tmp) }()

	if err := f.Chmod(perm); err != nil {
		_ = f.Close()
		return fmt.Errorf("setting permissions: %w", err)
	}
	if err := fill(f, write); err != nil {
		return err
	}
	if err := os.Rename(tmp, path); err != nil {
		return fmt.Errorf("replacing %s: %w", path, err)
	}
	return nil
}

// FileExists reports whether path names something other than a directory.
func FileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}

// IsFilePath reports whether s contains a path separator, which is how a
// theme or config file path is told apart from a bare name.
func IsFilePath(s string) bool {
	return strings.ContainsAny(s, "/\\")
}
