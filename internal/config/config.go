package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"github.com/alnah/go-md2docx/internal/fileutil"
	"github.com/alnah/go-md2docx/internal/yamlutil"
)

// Sentinel errors for config operations.
var (
	ErrConfigNotFound  = errors.New("config file not found")
	ErrEmptyConfigName = errors.New("config name cannot be empty")
	ErrConfigParse     = errors.New("failed to parse config")
	ErrFieldTooLong    = errors.New("field exceeds maximum length")
	ErrInvalidConfig   = errors.New("invalid config")
)

// Field length limits.
const (
	MaxPathLength     = 4096
	MaxNameLength     = 100 // theme, parser
	MaxTitleLength    = 200 // document title, subtitle
	MaxStatusLength   = 50  // "Draft", "Final"
	MaxVersionLength  = 50
	MaxDateLength     = 30 // "2026-02-07" or "February 7, 2026"
	MaxTextLength     = 500
	MaxTOCTitleLength = 100
	MaxDocuments      = 200
	MaxLogos          = 10
)

// Parser names.
const (
	ParserLine     = "line"
	ParserGoldmark = "goldmark"
)

// Defaults applied by WithDefaults.
const (
	DefaultInputDir = "docs"
	DefaultTheme    = "default"
	DefaultTOCTitle = "Table of Contents"
	DefaultTOCDepth = 3
	DefaultLogoSize = 2.0 // inches
)

// Config holds everything a batch run needs. It is loaded once and passed
// by value; WithDefaults returns a new copy rather than mutating.
type Config struct {
	Input     InputConfig     `yaml:"input"`
	Output    OutputConfig    `yaml:"output"`
	Theme     string          `yaml:"theme"`
	Assets    AssetsConfig    `yaml:"assets"`
	Parser    string          `yaml:"parser"`    // "line" (default) or "goldmark"
	Highlight *bool           `yaml:"highlight"` // nil = enabled
	Document  DocumentConfig  `yaml:"document"`
	TOC       TOCConfig       `yaml:"toc"`
	Logos     []LogoConfig    `yaml:"logos"`
	Preview   PreviewConfig   `yaml:"preview"`
	Documents []DocumentEntry `yaml:"documents"`
}

// InputConfig locates Markdown sources.
type InputConfig struct {
	Dir string `yaml:"dir"`
}

// OutputConfig locates generated files. Empty Dir writes next to sources.
type OutputConfig struct {
	Dir string `yaml:"dir"`
}

// AssetsConfig defines asset loading options.
type AssetsConfig struct {
	BasePath string `yaml:"basePath"` // Empty = use embedded assets
}

// DocumentConfig holds metadata shared by every generated document.
type DocumentConfig struct {
	Date         string `yaml:"date"` // literal, "auto" or "auto:FORMAT"
	Version      string `yaml:"version"`
	Status       string `yaml:"status"`
	HeaderPrefix string `yaml:"headerPrefix"` // joined with the title in page headers
	FooterText   string `yaml:"footerText"`
}

// TOCConfig defines the generated table of contents field.
type TOCConfig struct {
	Enabled *bool  `yaml:"enabled"` // nil = enabled
	Title   string `yaml:"title"`
	Depth   int    `yaml:"depth"` // 1-3
}

// LogoConfig is one header logo. Path is resolved against the working directory.
type LogoConfig struct {
	Path  string  `yaml:"path"`
	Width float64 `yaml:"width"` // inches
}

// PreviewConfig enables the HTML preview and its PDF export.
type PreviewConfig struct {
	HTML  bool   `yaml:"html"`
	PDF   bool   `yaml:"pdf"`
	Style string `yaml:"style"` // CSS style name for the preview
}

// DocumentEntry is one manifest row.
type DocumentEntry struct {
	Source   string `yaml:"source"` // relative to Input.Dir
	Title    string `yaml:"title"`
	Subtitle string `yaml:"subtitle"`
	Output   string `yaml:"output"` // relative to Output.Dir
}

// HighlightEnabled reports whether code blocks are syntax highlighted.
func (c Config) HighlightEnabled() bool {
	return c.Highlight == nil || *c.Highlight
}

// TOCEnabled reports whether a table of contents field is emitted.
func (c Config) TOCEnabled() bool {
	return c.TOC.Enabled == nil || *c.TOC.Enabled
}

// OutputDir returns the directory outputs are written to.
func (c Config) OutputDir() string {
	if c.Output.Dir != "" {
		return c.Output.Dir
	}
	return c.Input.Dir
}

// SourcePath joins a manifest source with the input directory.
func (c Config) SourcePath(e DocumentEntry) string {
	return filepath.Join(c.Input.Dir, e.Source)
}

// OutputPath joins a manifest output with the output directory.
func (c Config) OutputPath(e DocumentEntry) string {
	return filepath.Join(c.OutputDir(), e.Output)
}

// WithDefaults returns a copy of c with empty fields filled in. A config
// without documents inherits the built-in manifest.
func (c Config) WithDefaults() Config {
	def := DefaultConfig()
	if c.Input.Dir == "" {
		c.Input.Dir = DefaultInputDir
	}
	if c.Theme == "" {
		c.Theme = DefaultTheme
	}
	if c.Parser == "" {
		c.Parser = ParserLine
	}
	if c.TOC.Title == "" {
		c.TOC.Title = DefaultTOCTitle
	}
	if c.TOC.Depth == 0 {
		c.TOC.Depth = DefaultTOCDepth
	}
	if len(c.Documents) == 0 {
		c.Documents = def.Documents
	} else {
		c.Documents = append([]DocumentEntry(nil), c.Documents...)
	}
	logos := make([]LogoConfig, len(c.Logos))
	for i, l := range c.Logos {
		if l.Width == 0 {
			l.Width = DefaultLogoSize
		}
		logos[i] = l
	}
	c.Logos = logos
	return c
}

// Validate checks field lengths, allowed values and the document manifest.
// Called automatically by LoadConfig, but available for callers that build
// a Config in code.
func (c *Config) Validate() error {
	for _, f := range []struct {
		name  string
		value string
		max   int
	}{
		{"input.dir", c.Input.Dir, MaxPathLength},
		{"output.dir", c.Output.Dir, MaxPathLength},
		{"theme", c.Theme, MaxPathLength},
		{"assets.basePath", c.Assets.BasePath, MaxPathLength},
		{"parser", c.Parser, MaxNameLength},
		{"document.date", c.Document.Date, MaxDateLength},
		{"document.version", c.Document.Version, MaxVersionLength},
		{"document.status", c.Document.Status, MaxStatusLength},
		{"document.headerPrefix", c.Document.HeaderPrefix, MaxTitleLength},
		{"document.footerText", c.Document.FooterText, MaxTextLength},
		{"toc.title", c.TOC.Title, MaxTOCTitleLength},
		{"preview.style", c.Preview.Style, MaxNameLength},
	} {
		if err := validateFieldLength(f.name, f.value, f.max); err != nil {
			return err
		}
	}

	err := validation.ValidateStruct(c,
		validation.Field(&c.Parser, validation.In(ParserLine, ParserGoldmark).Error("must be line or goldmark")),
		validation.Field(&c.Logos, validation.Length(0, MaxLogos)),
		validation.Field(&c.Documents, validation.Length(0, MaxDocuments)),
	)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	if err := validation.Validate(c.TOC.Depth, validation.Min(1), validation.Max(3)); err != nil {
		return fmt.Errorf("%w: toc.depth: %v", ErrInvalidConfig, err)
	}

	for i, l := range c.Logos {
		if err := l.validate(); err != nil {
			return fmt.Errorf("%w: logos[%d]: %v", ErrInvalidConfig, i, err)
		}
	}

	outputs := make(map[string]int, len(c.Documents))
	for i, d := range c.Documents {
		if err := d.validate(); err != nil {
			return fmt.Errorf("%w: documents[%d]: %v", ErrInvalidConfig, i, err)
		}
		key := strings.ToLower(filepath.Clean(d.Output))
		if prev, dup := outputs[key]; dup {
			return fmt.Errorf("%w: documents[%d]: output %q already used by documents[%d]", ErrInvalidConfig, i, d.Output, prev)
		}
		outputs[key] = i
	}

	return nil
}

func (l LogoConfig) validate() error {
	return validation.ValidateStruct(&l,
		validation.Field(&l.Path, validation.Required, validation.Length(1, MaxPathLength)),
		validation.Field(&l.Width, validation.Min(0.0), validation.Max(8.5)),
	)
}

func (d DocumentEntry) validate() error {
	return validation.ValidateStruct(&d,
		validation.Field(&d.Source, validation.Required, validation.Length(1, MaxPathLength), validation.By(hasExtension(".md"))),
		validation.Field(&d.Title, validation.Required, validation.Length(1, MaxTitleLength)),
		validation.Field(&d.Subtitle, validation.Length(0, MaxTitleLength)),
		validation.Field(&d.Output, validation.Required, validation.Length(1, MaxPathLength), validation.By(hasExtension(".docx"))),
	)
}

// hasExtension builds an ozzo rule requiring a case-insensitive file
// extension. Empty values pass so Required reports them instead.
func hasExtension(ext string) validation.RuleFunc {
	return func(value any) error {
		s, _ := value.(string)
		if s == "" {
			return nil
		}
		if !strings.EqualFold(filepath.Ext(s), ext) {
			return validation.NewError("validation_extension", "must end in "+ext)
		}
		return nil
	}
}

// validateFieldLength checks if a field exceeds its maximum allowed length.
func validateFieldLength(fieldName, value string, maxLength int) error {
	if len(value) > maxLength {
		return fmt.Errorf("%w: %s (%d chars, max %d)", ErrFieldTooLong, fieldName, len(value), maxLength)
	}
	return nil
}

// DefaultConfig returns the configuration of the ASPR documentation set:
// six manifest entries read from docs/ with the aspr theme and logos.
func DefaultConfig() Config {
	return Config{
		Input:  InputConfig{Dir: DefaultInputDir},
		Theme:  "aspr",
		Parser: ParserLine,
		Document: DocumentConfig{
			Date:         "auto",
			Version:      "1.0",
			Status:       "Draft",
			HeaderPrefix: "ASPR Photo Repository",
			FooterText:   "HHS/ASPR — For Official Use Only | Leidos",
		},
		TOC: TOCConfig{Title: DefaultTOCTitle, Depth: DefaultTOCDepth},
		Logos: []LogoConfig{
			{Path: filepath.Join("public", "aspr-logo-blue.png"), Width: DefaultLogoSize},
			{Path: filepath.Join("public", "leidos-logo.png"), Width: DefaultLogoSize},
		},
		Documents: []DocumentEntry{
			{
				Source:   "01_SRS_Software_Requirements_Specification.md",
				Title:    "Software Requirements Specification",
				Subtitle: "ASPR Photo Repository Application",
				Output:   "01_ASPR_Photos_SRS.docx",
			},
			{
				Source:   "02_SDD_System_Design_Document.md",
				Title:    "System Design Document",
				Subtitle: "ASPR Photo Repository Application",
				Output:   "02_ASPR_Photos_SDD.docx",
			},
			{
				Source:   "03_Security_Plan.md",
				Title:    "Security Plan",
				Subtitle: "ASPR Photo Repository Application",
				Output:   "03_ASPR_Photos_Security_Plan.docx",
			},
			{
				Source:   "04_Deployment_Operations_Guide.md",
				Title:    "Deployment & Operations Guide",
				Subtitle: "ASPR Photo Repository Application",
				Output:   "04_ASPR_Photos_Deployment_Guide.docx",
			},
			{
				Source:   "05_User_Guide.md",
				Title:    "User Guide",
				Subtitle: "ASPR Photo Repository Application",
				Output:   "05_ASPR_Photos_User_Guide.docx",
			},
			{
				Source:   "06_API_Data_Reference.md",
				Title:    "API & Data Reference",
				Subtitle: "ASPR Photo Repository Application",
				Output:   "06_ASPR_Photos_API_Reference.docx",
			},
		},
	}
}

// LoadConfig loads configuration from a file path or config name.
// If nameOrPath contains a path separator, it's treated as a file path.
// Otherwise, it's treated as a config name and searched in standard locations.
// Returns error if the file is not found (no silent fallback). The result
// has not had defaults applied.
func LoadConfig(nameOrPath string) (Config, error) {
	if nameOrPath == "" {
		return Config{}, ErrEmptyConfigName
	}

	configPath := nameOrPath
	if !fileutil.IsFilePath(nameOrPath) {
		var err error
		configPath, err = resolveConfigPath(nameOrPath)
		if err != nil {
			return Config{}, err
		}
	}

	var cfg Config
	if err := yamlutil.UnmarshalFileStrict(configPath, &cfg); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return Config{}, fmt.Errorf("%w: %s", ErrConfigNotFound, configPath)
		}
		return Config{}, fmt.Errorf("%w: %v", ErrConfigParse, err)
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

// SearchPaths lists where a config named name is looked up, in order:
// the current directory, then the user config directory (~/.config/go-md2docx/).
func SearchPaths(name string) []string {
	extensions := []string{".yaml", ".yml"}
	paths := make([]string, 0, len(extensions)*2)
	for _, ext := range extensions {
		paths = append(paths, name+ext)
	}
	if userConfigDir, err := os.UserConfigDir(); err == nil {
		for _, ext := range extensions {
			paths = append(paths, filepath.Join(userConfigDir, "go-md2docx", name+ext))
		}
	}
	return paths
}

// resolveConfigPath returns the first existing file from SearchPaths.
func resolveConfigPath(name string) (string, error) {
	paths := SearchPaths(name)
	for _, p := range paths {
		if fileutil.FileExists(p) {
			return p, nil
		}
	}
	return "", fmt.Errorf("%w: tried %s", ErrConfigNotFound, strings.Join(paths, ", "))
}
