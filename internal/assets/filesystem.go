package assets

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// FilesystemLoader serves assets from a directory laid out like the
// embedded bundle (themes/*.yaml, styles/*.css).
type FilesystemLoader struct {
	root string
}

// NewFilesystemLoader checks that dir is a readable directory and returns a
// loader rooted at its resolved path.
func NewFilesystemLoader(dir string) (*FilesystemLoader, error) {
	if dir == "" {
		return nil, fmt.Errorf("%w: empty path", ErrInvalidBasePath)
	}

	root, err := filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidBasePath, err)
	}
	if resolved, err := filepath.EvalSymlinks(root); err == nil {
		root = resolved
	}

	switch _, err := os.ReadDir(root); {
	case errors.Is(err, fs.ErrNotExist):
		return nil, fmt.Errorf("%w: %s does not exist", ErrInvalidBasePath, root)
	case err != nil:
		return nil, fmt.Errorf("%w: %s: %v", ErrInvalidBasePath, root, err)
	}

	return &FilesystemLoader{root: root}, nil
}

func (f *FilesystemLoader) read(k kind, name string) ([]byte, error) {
	p := filepath.Join(f.root, filepath.FromSlash(k.rel(name)))
	if err := f.contain(p); err != nil {
		return nil, err
	}

	data, err := os.ReadFile(p) // #nosec G304 -- contained in root
	switch {
	case errors.Is(err, fs.ErrNotExist):
		return nil, k.missing(name)
	case err != nil:
		return nil, fmt.Errorf("%w: %v", ErrAssetRead, err)
	}
	return data, nil
}

// contain fails when p, after following symlinks, lies outside the root.
// Paths that do not resolve are left for the read to report.
func (f *FilesystemLoader) contain(p string) error {
	resolved, err := filepath.EvalSymlinks(p)
	if err != nil {
		return nil
	}
	rel, err := filepath.Rel(f.root, resolved)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return fmt.Errorf("%w: %s", ErrPathTraversal, p)
	}
	return nil
}

func (f *FilesystemLoader) LoadStyle(name string) (string, error) {
	data, err := load(f, styleKind, name)
	return string(data), err
}

func (f *FilesystemLoader) LoadTheme(name string) ([]byte, error) {
	return load(f, themeKind, name)
}

var _ AssetLoader = (*FilesystemLoader)(nil)
