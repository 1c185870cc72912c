package main

// Notes:
// - exitCodeFor: we test the sentinel errors of every package the CLI
//   surfaces, plus wrapped errors to verify the errors.Is() chain.
// - Exit code constants: we verify Unix conventions and that custom codes
//   stay below 126.

import (
	"context"
	"errors"
	"fmt"
	"os"
	"testing"

	md2docx "github.com/alnah/go-md2docx"
	"github.com/alnah/go-md2docx/internal/config"
	"github.com/alnah/go-md2docx/internal/logging/gologger"
)

// ---------------------------------------------------------------------------
// TestExitCodeFor - Error to exit code mapping
// ---------------------------------------------------------------------------

func TestExitCodeFor(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		err  error
		want int
	}{
		{"nil error", nil, ExitSuccess},

		// Partial batch (exit 5)
		{"partial batch", ErrPartialBatch, ExitPartial},
		{"wrapped partial batch", fmt.Errorf("%w: 1 of 6", ErrPartialBatch), ExitPartial},

		// Browser errors (exit 4)
		{"browser connect", md2docx.ErrBrowserConnect, ExitBrowser},
		{"page create", md2docx.ErrPageCreate, ExitBrowser},
		{"page load", md2docx.ErrPageLoad, ExitBrowser},
		{"pdf generation", md2docx.ErrPDFGeneration, ExitBrowser},
		{"wrapped browser connect", fmt.Errorf("doc: %w", md2docx.ErrBrowserConnect), ExitBrowser},

		// I/O errors (exit 3)
		{"not exist", os.ErrNotExist, ExitIO},
		{"permission", os.ErrPermission, ExitIO},
		{"output dir", ErrOutputDir, ExitIO},
		{"write output", fmt.Errorf("%w: a.docx", ErrWriteOutput), ExitIO},

		// Usage errors (exit 2)
		{"usage", ErrUsage, ExitUsage},
		{"invalid timeout", ErrInvalidTimeout, ExitUsage},
		{"unsupported shell", ErrUnsupportedShell, ExitUsage},
		{"config not found", config.ErrConfigNotFound, ExitUsage},
		{"empty config name", config.ErrEmptyConfigName, ExitUsage},
		{"config parse", config.ErrConfigParse, ExitUsage},
		{"field too long", config.ErrFieldTooLong, ExitUsage},
		{"invalid config", fmt.Errorf("config: %w", config.ErrInvalidConfig), ExitUsage},
		{"log format", gologger.ErrUnsupportedFormat, ExitUsage},
		{"invalid theme", md2docx.ErrInvalidTheme, ExitUsage},
		{"theme not found", md2docx.ErrThemeNotFound, ExitUsage},
		{"asset path", md2docx.ErrInvalidAssetPath, ExitUsage},
		{"parser", md2docx.ErrInvalidParser, ExitUsage},
		{"toc depth", md2docx.ErrInvalidTOCDepth, ExitUsage},
		{"logo", md2docx.ErrInvalidLogo, ExitUsage},
		{"date", md2docx.ErrInvalidDate, ExitUsage},

		// General errors (exit 1)
		{"unknown", errors.New("boom"), ExitGeneral},
		{"canceled", fmt.Errorf("batch interrupted: %w", context.Canceled), ExitGeneral},
		{"docx render", md2docx.ErrDOCXRender, ExitGeneral},
		{"read markdown", ErrReadMarkdown, ExitGeneral},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := exitCodeFor(tt.err); got != tt.want {
				t.Errorf("exitCodeFor(%v) = %d, want %d", tt.err, got, tt.want)
			}
		})
	}
}

// ---------------------------------------------------------------------------
// TestExitCodeConstants - Unix conventions
// ---------------------------------------------------------------------------

func TestExitCodeConstants(t *testing.T) {
	t.Parallel()

	if ExitSuccess != 0 || ExitGeneral != 1 || ExitUsage != 2 {
		t.Errorf("standard codes = %d/%d/%d, want 0/1/2", ExitSuccess, ExitGeneral, ExitUsage)
	}

	seen := map[int]bool{}
	for _, code := range []int{ExitSuccess, ExitGeneral, ExitUsage, ExitIO, ExitBrowser, ExitPartial} {
		if code >= 126 {
			t.Errorf("exit code %d collides with shell-reserved codes", code)
		}
		if seen[code] {
			t.Errorf("exit code %d used twice", code)
		}
		seen[code] = true
	}
}
