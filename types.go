package md2docx

import (
	"fmt"
	"strings"
)

// TOC depth bounds. Only heading levels 1-3 exist in the output.
const (
	MinTOCDepth     = 1
	MaxTOCDepth     = 3
	DefaultTOCDepth = 3
	DefaultTOCTitle = "Table of Contents"
)

// DefaultLogoWidth is the rendered logo width in inches.
const DefaultLogoWidth = 2.0

// maxLogoWidth keeps logos inside a Letter page.
const maxLogoWidth = 8.5

// Input is one document to convert.
type Input struct {
	// Markdown is the source text (required).
	Markdown string
	// SourceDir resolves relative image paths in the HTML preview.
	SourceDir string

	Title    string
	Subtitle string
	// HeaderText is the page header line. Empty falls back to Title.
	HeaderText string
	FooterText string

	// Date accepts a literal or "auto" / "auto:FORMAT".
	Date    string
	Version string
	Status  string
	Author  string

	Logos []Logo
	// TOC emits a Word table of contents field when non-nil.
	TOC *TOC

	// HTML produces a standalone preview page in ConvertResult.HTML.
	HTML bool
	// PDF renders the preview with headless Chrome. Implies HTML.
	PDF bool
}

// Validate checks that required fields are present and nested values are valid.
func (in Input) Validate() error {
	if strings.TrimSpace(in.Markdown) == "" {
		return ErrEmptyMarkdown
	}
	if err := in.TOC.Validate(); err != nil {
		return err
	}
	for i, l := range in.Logos {
		if err := l.Validate(); err != nil {
			return fmt.Errorf("logos[%d]: %w", i, err)
		}
	}
	return nil
}

// TOC configures the generated table of contents.
type TOC struct {
	// Title is shown above the field. Empty means DefaultTOCTitle.
	Title string
	// Depth is the deepest heading level listed, 1-3. Zero means DefaultTOCDepth.
	Depth int
}

// Validate checks the depth range. Returns nil if t is nil.
func (t *TOC) Validate() error {
	if t == nil || t.Depth == 0 {
		return nil
	}
	if t.Depth < MinTOCDepth || t.Depth > MaxTOCDepth {
		return fmt.Errorf("%w: %d (must be %d-%d)", ErrInvalidTOCDepth, t.Depth, MinTOCDepth, MaxTOCDepth)
	}
	return nil
}

func (t *TOC) title() string {
	if t.Title == "" {
		return DefaultTOCTitle
	}
	return t.Title
}

func (t *TOC) depth() int {
	if t.Depth == 0 {
		return DefaultTOCDepth
	}
	return t.Depth
}

// Logo is an image placed above the title. Data wins over Path when set.
type Logo struct {
	Path  string
	Data  []byte
	Width float64 // inches; zero means DefaultLogoWidth
}

// Validate checks that the logo has a source and a sane width.
func (l Logo) Validate() error {
	if l.Path == "" && len(l.Data) == 0 {
		return fmt.Errorf("%w: path or data required", ErrInvalidLogo)
	}
	if l.Width < 0 || l.Width > maxLogoWidth {
		return fmt.Errorf("%w: width %.2f (must be 0-%.1f inches)", ErrInvalidLogo, l.Width, maxLogoWidth)
	}
	return nil
}

func (l Logo) name() string {
	if l.Path != "" {
		return l.Path
	}
	return "logo"
}

func (l Logo) width() float64 {
	if l.Width == 0 {
		return DefaultLogoWidth
	}
	return l.Width
}

// Meta is the resolved document metadata after front matter is applied.
type Meta struct {
	Title    string
	Subtitle string
	Version  string
	Date     string
	Status   string
	Author   string
}

// Stats counts rendered blocks by kind.
type Stats struct {
	Headings   int
	Paragraphs int
	Bullets    int
	Tables     int
	CodeBlocks int
}

// Total returns the number of rendered blocks.
func (s Stats) Total() int {
	return s.Headings + s.Paragraphs + s.Bullets + s.Tables + s.CodeBlocks
}

// ConvertResult holds the outputs of a conversion.
type ConvertResult struct {
	DOCX []byte
	HTML []byte // set when Input.HTML or Input.PDF
	PDF  []byte // set when Input.PDF
	Meta Meta
	// Stats counts body blocks; the title block and TOC are not included.
	Stats Stats
	// MissingLogos lists logos that could not be loaded and were skipped.
	MissingLogos []string
}
