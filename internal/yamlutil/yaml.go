// Package yamlutil is the one place that decodes YAML. Configuration and
// theme files go through it so that unknown keys and oversized input are
// rejected the same way everywhere.
package yamlutil

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/goccy/go-yaml"
)

// MaxInputSize caps a single YAML document.
const MaxInputSize = 1 << 20

var (
	ErrEmptyInput    = errors.New("yamlutil: empty input")
	ErrNilTarget     = errors.New("yamlutil: nil decode target")
	ErrInputTooLarge = errors.New("yamlutil: input exceeds maximum size")
)

// UnmarshalStrict decodes data into v and fails on keys v does not declare.
func UnmarshalStrict(data []byte, v any) error {
	switch {
	case v == nil:
		return ErrNilTarget
	case len(data) == 0:
		return ErrEmptyInput
	case len(data) > MaxInputSize:
		return fmt.Errorf("%w: %d bytes (max %d)", ErrInputTooLarge, len(data), MaxInputSize)
	}
	if err := yaml.UnmarshalWithOptions(data, v, yaml.Strict()); err != nil {
		return fmt.Errorf("yamlutil: %w", err)
	}
	return nil
}

// Decode reads at most MaxInputSize+1 bytes from r and decodes them with
// UnmarshalStrict.
func Decode(r io.Reader, v any) error {
	data, err := io.ReadAll(io.LimitReader(r, MaxInputSize+1))
	if err != nil {
		return fmt.Errorf("yamlutil: reading input: %w", err)
	}
	return UnmarshalStrict(data, v)
}

// UnmarshalFileStrict opens path and decodes it. A missing file yields an
// error matching fs.ErrNotExist.
func UnmarshalFileStrict(path string, v any) error {
	f, err := os.Open(path) // #nosec G304 -- user-provided config or theme
	if err != nil {
		return err
	}
	defer f.Close()

	if err := Decode(f, v); err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}
	return nil
}
