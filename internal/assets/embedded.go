package assets

import (
	"embed"
	"io/fs"
	"slices"
	"strings"
)

//go:embed styles/*.css themes/*.yaml
var bundled embed.FS

// EmbeddedLoader serves the assets compiled into the binary.
type EmbeddedLoader struct {
	fsys fs.FS
}

func NewEmbeddedLoader() *EmbeddedLoader {
	return &EmbeddedLoader{fsys: bundled}
}

func (e *EmbeddedLoader) read(k kind, name string) ([]byte, error) {
	data, err := fs.ReadFile(e.fsys, k.rel(name))
	if err != nil {
		return nil, k.missing(name)
	}
	return data, nil
}

func (e *EmbeddedLoader) LoadStyle(name string) (string, error) {
	data, err := load(e, styleKind, name)
	return string(data), err
}

func (e *EmbeddedLoader) LoadTheme(name string) ([]byte, error) {
	return load(e, themeKind, name)
}

// ThemeNames returns the built-in theme names in sorted order.
func (e *EmbeddedLoader) ThemeNames() []string {
	matches, err := fs.Glob(e.fsys, themeKind.rel("*"))
	if err != nil {
		return nil
	}
	names := make([]string, len(matches))
	for i, m := range matches {
		names[i] = strings.TrimSuffix(strings.TrimPrefix(m, themeKind.dir+"/"), themeKind.ext)
	}
	slices.Sort(names)
	return names
}

var _ AssetLoader = (*EmbeddedLoader)(nil)
