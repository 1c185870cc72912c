package main

import (
	"errors"
	"os"

	md2docx "github.com/alnah/go-md2docx"
	"github.com/alnah/go-md2docx/internal/config"
	"github.com/alnah/go-md2docx/internal/logging/gologger"
)

// Exit codes for the md2docx CLI.
// Follows Unix conventions: 0=success, 1=general, 2=usage, and custom codes < 126.
const (
	ExitSuccess = 0 // Batch ran; individual documents may have failed
	ExitGeneral = 1 // General/unexpected error
	ExitUsage   = 2 // Invalid flags, config, or validation
	ExitIO      = 3 // Output directory or file setup failed
	ExitBrowser = 4 // Browser/Chrome errors during PDF export
	ExitPartial = 5 // --strict and at least one document failed
)

// exitCodeFor returns the appropriate exit code for an error.
// It uses errors.Is to check wrapped errors, so callers must use fmt.Errorf("%w", err).
func exitCodeFor(err error) int {
	if err == nil {
		return ExitSuccess
	}

	if errors.Is(err, ErrPartialBatch) {
		return ExitPartial
	}

	// Browser errors (exit 4)
	if errors.Is(err, md2docx.ErrBrowserConnect) ||
		errors.Is(err, md2docx.ErrPageCreate) ||
		errors.Is(err, md2docx.ErrPageLoad) ||
		errors.Is(err, md2docx.ErrPDFGeneration) {
		return ExitBrowser
	}

	// I/O errors (exit 3)
	if errors.Is(err, os.ErrNotExist) ||
		errors.Is(err, os.ErrPermission) ||
		errors.Is(err, ErrOutputDir) ||
		errors.Is(err, ErrWriteOutput) {
		return ExitIO
	}

	// Usage/config/validation errors (exit 2)
	if errors.Is(err, ErrUsage) ||
		errors.Is(err, ErrInvalidTimeout) ||
		errors.Is(err, ErrUnsupportedShell) ||
		errors.Is(err, config.ErrConfigNotFound) ||
		errors.Is(err, config.ErrEmptyConfigName) ||
		errors.Is(err, config.ErrConfigParse) ||
		errors.Is(err, config.ErrFieldTooLong) ||
		errors.Is(err, config.ErrInvalidConfig) ||
		errors.Is(err, gologger.ErrUnsupportedFormat) ||
		errors.Is(err, md2docx.ErrInvalidTheme) ||
		errors.Is(err, md2docx.ErrThemeNotFound) ||
		errors.Is(err, md2docx.ErrInvalidAssetPath) ||
		errors.Is(err, md2docx.ErrInvalidParser) ||
		errors.Is(err, md2docx.ErrInvalidTOCDepth) ||
		errors.Is(err, md2docx.ErrInvalidLogo) ||
		errors.Is(err, md2docx.ErrInvalidDate) {
		return ExitUsage
	}

	return ExitGeneral
}
