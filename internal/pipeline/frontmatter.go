package pipeline

import (
	"bytes"
	"errors"
	"fmt"
	"strings"

	"github.com/adrg/frontmatter"
)

// FrontMatter is the document metadata a Markdown file may declare in a
// leading YAML block. Empty fields defer to the manifest.
type FrontMatter struct {
	Title    string `yaml:"title"`
	Subtitle string `yaml:"subtitle"`
	Version  string `yaml:"version"`
	Date     string `yaml:"date"`
	Status   string `yaml:"status"`
	Author   string `yaml:"author"`
}

// IsZero reports whether no field was set.
func (f FrontMatter) IsZero() bool {
	return f == FrontMatter{}
}

// ErrFrontMatter reports a leading "---" block that is not YAML metadata.
var ErrFrontMatter = errors.New("front matter is not valid YAML")

// ExtractFrontMatter splits source into its front matter and the remaining
// Markdown body. Input without front matter yields a zero FrontMatter and the
// whole source. When the leading block does not parse, the whole source is
// still returned alongside an ErrFrontMatter error, so callers can carry on
// with it as plain Markdown.
func ExtractFrontMatter(source []byte) (FrontMatter, []byte, error) {
	var meta FrontMatter

	body, err := frontmatter.Parse(bytes.NewReader(source), &meta)
	if err != nil {
		return FrontMatter{}, source, fmt.Errorf("%w: %v", ErrFrontMatter, err)
	}

	meta.Title = strings.TrimSpace(meta.Title)
	meta.Subtitle = strings.TrimSpace(meta.Subtitle)
	meta.Version = strings.TrimSpace(meta.Version)
	meta.Date = strings.TrimSpace(meta.Date)
	meta.Status = strings.TrimSpace(meta.Status)
	meta.Author = strings.TrimSpace(meta.Author)
	return meta, body, nil
}
