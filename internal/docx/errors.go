package docx

import "errors"

// Sentinel errors.
var (
	ErrEmptyImage       = errors.New("image data is empty")
	ErrUnsupportedImage = errors.New("unsupported image format")
)
