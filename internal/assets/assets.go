package assets

import (
	"errors"
	"fmt"
	"path"
	"regexp"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// Built-in asset names.
const (
	DefaultThemeName = "default"
	DefaultStyleName = "default"
)

// AssetLoader loads themes and preview styles by bare name.
// Implementations wrap ErrThemeNotFound or ErrStyleNotFound for missing
// assets and ErrInvalidAssetName for names that fail ValidateAssetName.
type AssetLoader interface {
	LoadStyle(name string) (string, error)
	LoadTheme(name string) ([]byte, error)
}

// kind is one family of assets: a directory, an extension, and the error
// reported when a name has no file.
type kind struct {
	dir      string
	ext      string
	notFound error
}

var (
	styleKind = kind{dir: "styles", ext: ".css", notFound: ErrStyleNotFound}
	themeKind = kind{dir: "themes", ext: ".yaml", notFound: ErrThemeNotFound}
)

// rel returns the slash-separated path of name relative to an asset root.
func (k kind) rel(name string) string {
	return path.Join(k.dir, name+k.ext)
}

func (k kind) missing(name string) error {
	return fmt.Errorf("%w: %q", k.notFound, name)
}

// reader is the single primitive each loader implements. Names reaching it
// are already validated.
type reader interface {
	read(k kind, name string) ([]byte, error)
}

func load(r reader, k kind, name string) ([]byte, error) {
	if err := ValidateAssetName(name); err != nil {
		return nil, err
	}
	return r.read(k, name)
}

func isMissing(err error) bool {
	return errors.Is(err, ErrStyleNotFound) || errors.Is(err, ErrThemeNotFound)
}

var assetNameRules = []validation.Rule{
	validation.Required,
	validation.Match(regexp.MustCompile(`^[A-Za-z0-9_-]+$`)).Error("must contain only letters, digits, '-' or '_'"),
}

// ValidateAssetName rejects names that could leave the asset directory or
// change the file extension.
func ValidateAssetName(name string) error {
	if err := validation.Validate(name, assetNameRules...); err != nil {
		return fmt.Errorf("%w: %q %v", ErrInvalidAssetName, name, err)
	}
	return nil
}

var builtin = NewEmbeddedLoader()

// LoadStyle loads a built-in preview style.
func LoadStyle(name string) (string, error) {
	return builtin.LoadStyle(name)
}

// LoadTheme loads a built-in theme definition.
func LoadTheme(name string) ([]byte, error) {
	return builtin.LoadTheme(name)
}

// ThemeNames lists the built-in themes.
func ThemeNames() []string {
	return builtin.ThemeNames()
}
