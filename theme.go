package md2docx

import (
	"errors"
	"fmt"
	"regexp"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"github.com/alnah/go-md2docx/internal/assets"
	"github.com/alnah/go-md2docx/internal/docx"
	"github.com/alnah/go-md2docx/internal/fileutil"
	"github.com/alnah/go-md2docx/internal/pipeline"
	"github.com/alnah/go-md2docx/internal/yamlutil"
)

// Font size bounds in points.
const (
	minFontSize = 4.0
	maxFontSize = 72.0
)

var hexColor = regexp.MustCompile(`^[0-9A-Fa-f]{6}$`)

// Theme sets fonts, sizes, and colours of generated documents. Colours are
// six-digit hex values without '#'.
type Theme struct {
	Name           string      `yaml:"name"`
	Font           string      `yaml:"font"`
	FontSize       float64     `yaml:"fontSize"`
	CodeFont       string      `yaml:"codeFont"`
	CodeFontSize   float64     `yaml:"codeFontSize"`
	TableFontSize  float64     `yaml:"tableFontSize"`
	HeaderFontSize float64     `yaml:"headerFontSize"`
	Colors         ThemeColors `yaml:"colors"`
	// HighlightStyle is a chroma style name for code blocks.
	HighlightStyle string `yaml:"highlightStyle"`
	// PreviewStyle is the CSS style used by the HTML preview.
	PreviewStyle string `yaml:"previewStyle"`
}

// ThemeColors is the theme palette.
type ThemeColors struct {
	Heading1        string `yaml:"heading1"`
	Heading2        string `yaml:"heading2"`
	Heading3        string `yaml:"heading3"`
	Title           string `yaml:"title"`
	Subtitle        string `yaml:"subtitle"`
	TableHeaderFill string `yaml:"tableHeaderFill"`
	TableHeaderText string `yaml:"tableHeaderText"`
	// TableStripe shades every other data row. Empty disables striping.
	TableStripe string `yaml:"tableStripe"`
	Code        string `yaml:"code"`
	Header      string `yaml:"header"`
	Footer      string `yaml:"footer"`
	Placeholder string `yaml:"placeholder"`
}

// Validate checks fonts, sizes, and that every colour is hex.
func (t *Theme) Validate() error {
	if t == nil {
		return fmt.Errorf("%w: nil theme", ErrInvalidTheme)
	}
	err := validation.ValidateStruct(t,
		validation.Field(&t.Name, validation.Required, validation.Length(1, 100)),
		validation.Field(&t.Font, validation.Required, validation.Length(1, 100)),
		validation.Field(&t.CodeFont, validation.Required, validation.Length(1, 100)),
		validation.Field(&t.FontSize, validation.Required, validation.Min(minFontSize), validation.Max(maxFontSize)),
		validation.Field(&t.CodeFontSize, validation.Required, validation.Min(minFontSize), validation.Max(maxFontSize)),
		validation.Field(&t.TableFontSize, validation.Required, validation.Min(minFontSize), validation.Max(maxFontSize)),
		validation.Field(&t.HeaderFontSize, validation.Required, validation.Min(minFontSize), validation.Max(maxFontSize)),
	)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidTheme, err)
	}
	if err := t.Colors.validate(); err != nil {
		return fmt.Errorf("%w: colors: %v", ErrInvalidTheme, err)
	}
	return nil
}

func (c ThemeColors) validate() error {
	hex := validation.Match(hexColor).Error("must be a six-digit hex colour")
	return validation.ValidateStruct(&c,
		validation.Field(&c.Heading1, validation.Required, hex),
		validation.Field(&c.Heading2, validation.Required, hex),
		validation.Field(&c.Heading3, validation.Required, hex),
		validation.Field(&c.Title, validation.Required, hex),
		validation.Field(&c.Subtitle, validation.Required, hex),
		validation.Field(&c.TableHeaderFill, validation.Required, hex),
		validation.Field(&c.TableHeaderText, validation.Required, hex),
		validation.Field(&c.TableStripe, hex),
		validation.Field(&c.Code, validation.Required, hex),
		validation.Field(&c.Header, validation.Required, hex),
		validation.Field(&c.Footer, validation.Required, hex),
		validation.Field(&c.Placeholder, validation.Required, hex),
	)
}

// settings maps the theme onto the DOCX style sheet.
func (t *Theme) settings() docx.Settings {
	s := docx.DefaultSettings()
	s.Font = t.Font
	s.FontSize = t.FontSize
	s.CodeFont = t.CodeFont
	s.CodeFontSize = t.CodeFontSize
	s.CodeColor = t.Colors.Code
	s.HeadingColors = [3]string{t.Colors.Heading1, t.Colors.Heading2, t.Colors.Heading3}
	s.TitleColor = t.Colors.Title
	s.SubtitleColor = t.Colors.Subtitle
	return s
}

func (t *Theme) highlightStyle() string {
	if t.HighlightStyle == "" {
		return pipeline.DefaultHighlightStyle
	}
	return t.HighlightStyle
}

func (t *Theme) previewStyle() string {
	if t.PreviewStyle == "" {
		return assets.DefaultStyleName
	}
	return t.PreviewStyle
}

// ParseTheme decodes and validates a YAML theme.
func ParseTheme(data []byte) (*Theme, error) {
	var t Theme
	if err := yamlutil.UnmarshalStrict(data, &t); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidTheme, err)
	}
	if err := t.Validate(); err != nil {
		return nil, err
	}
	return &t, nil
}

// LoadTheme returns a built-in theme by name, or reads one from a YAML file
// when nameOrPath contains a path separator.
func LoadTheme(nameOrPath string) (*Theme, error) {
	return loadTheme(assets.NewEmbeddedLoader(), nameOrPath)
}

// ThemeNames lists the built-in themes.
func ThemeNames() []string {
	return assets.ThemeNames()
}

func loadTheme(loader assets.AssetLoader, nameOrPath string) (*Theme, error) {
	if nameOrPath == "" {
		nameOrPath = assets.DefaultThemeName
	}

	if fileutil.IsFilePath(nameOrPath) {
		var t Theme
		if err := yamlutil.UnmarshalFileStrict(nameOrPath, &t); err != nil {
			if !fileutil.FileExists(nameOrPath) {
				return nil, fmt.Errorf("%w: %s", ErrThemeNotFound, nameOrPath)
			}
			return nil, fmt.Errorf("%w: %s: %v", ErrInvalidTheme, nameOrPath, err)
		}
		if err := t.Validate(); err != nil {
			return nil, fmt.Errorf("%s: %w", nameOrPath, err)
		}
		return &t, nil
	}

	data, err := loader.LoadTheme(nameOrPath)
	if err != nil {
		if errors.Is(err, assets.ErrThemeNotFound) || errors.Is(err, assets.ErrInvalidAssetName) {
			return nil, fmt.Errorf("%w: %q", ErrThemeNotFound, nameOrPath)
		}
		return nil, fmt.Errorf("loading theme %q: %w", nameOrPath, err)
	}
	t, err := ParseTheme(data)
	if err != nil {
		return nil, fmt.Errorf("theme %q: %w", nameOrPath, err)
	}
	return t, nil
}
