package md2docx

import (
	"errors"

	"github.com/alnah/go-md2docx/internal/pipeline"
)

// Sentinel errors for library operations.
var (
	ErrEmptyMarkdown  = errors.New("markdown content cannot be empty")
	ErrDOCXRender     = errors.New("DOCX rendering failed")
	ErrHTMLConversion = pipeline.ErrHTMLConversion
	ErrPDFGeneration  = errors.New("PDF generation failed")
	ErrBrowserConnect = errors.New("failed to connect to browser")
	ErrPageCreate     = errors.New("failed to create browser page")
	ErrPageLoad       = errors.New("failed to load page")

	// Theme errors.
	ErrInvalidTheme  = errors.New("invalid theme")
	ErrThemeNotFound = errors.New("theme not found")

	// Option and input validation errors.
	ErrInvalidAssetPath = errors.New("invalid asset path")
	ErrInvalidParser    = errors.New("invalid parser")
	ErrInvalidTOCDepth  = errors.New("invalid TOC depth")
	ErrInvalidLogo      = errors.New("invalid logo")
	ErrInvalidDate      = errors.New("invalid document date")
)
