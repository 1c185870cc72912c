package md2docx

import (
	"time"

	"github.com/alnah/go-md2docx/internal/logging"
)

// Parser selects how Markdown is split into blocks.
type Parser string

// Parsers.
const (
	// ParserLine is the line scanner: first matching prefix rule wins.
	ParserLine Parser = "line"
	// ParserGoldmark walks a CommonMark + GFM syntax tree.
	ParserGoldmark Parser = "goldmark"
)

// defaultTimeout bounds PDF export page loads.
const defaultTimeout = 30 * time.Second

// converterConfig holds converter configuration.
type converterConfig struct {
	timeout     time.Duration
	themeName   string
	theme       *Theme
	assetPath   string
	parser      Parser
	noHighlight bool
	style       string
	logger      logging.Logger
	now         func() time.Time
}

// Option configures a Converter.
type Option func(*Converter)

// WithTimeout sets the PDF export timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *Converter) {
		c.cfg.timeout = d
	}
}

// WithTheme selects a theme by built-in name or YAML file path.
func WithTheme(nameOrPath string) Option {
	return func(c *Converter) {
		c.cfg.themeName = nameOrPath
	}
}

// WithThemeValue uses t directly; it takes precedence over WithTheme.
func WithThemeValue(t *Theme) Option {
	return func(c *Converter) {
		c.cfg.theme = t
	}
}

// WithAssetPath looks up themes and preview styles in dir before the
// embedded defaults.
func WithAssetPath(dir string) Option {
	return func(c *Converter) {
		c.cfg.assetPath = dir
	}
}

// WithParser selects the block parser.
func WithParser(p Parser) Option {
	return func(c *Converter) {
		c.cfg.parser = p
	}
}

// WithHighlighting toggles chroma colouring of code blocks. Enabled by default.
func WithHighlighting(enabled bool) Option {
	return func(c *Converter) {
		c.cfg.noHighlight = !enabled
	}
}

// WithPreviewStyle overrides the theme's CSS style for HTML previews.
func WithPreviewStyle(name string) Option {
	return func(c *Converter) {
		c.cfg.style = name
	}
}

// WithLogger sets the diagnostic logger. The default drops everything.
func WithLogger(l logging.Logger) Option {
	return func(c *Converter) {
		c.cfg.logger = l
	}
}

// WithNow sets the clock used for "auto" dates and document properties.
func WithNow(now func() time.Time) Option {
	return func(c *Converter) {
		c.cfg.now = now
	}
}
