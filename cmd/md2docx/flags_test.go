package main

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	flag "github.com/spf13/pflag"

	"github.com/alnah/go-md2docx/internal/config"
)

// ---------------------------------------------------------------------------
// TestParseGenerateFlags - Flag parsing
// ---------------------------------------------------------------------------

func TestParseGenerateFlags(t *testing.T) {
	t.Parallel()

	t.Run("every flag", func(t *testing.T) {
		t.Parallel()

		args := []string{
			"-c", "team", "-d", "src", "-o", "dist", "--strict", "-q", "-v",
			"--doc-date", "auto:iso", "--theme", "aspr", "--asset-path", "assets",
			"--parser", "goldmark", "--no-highlight", "--no-toc",
			"--html", "--pdf", "-t", "1m", "--log-level", "debug", "--log-format", "json",
		}
		var stderr bytes.Buffer
		got, err := parseGenerateFlags(args, &stderr)
		if err != nil {
			t.Fatalf("parseGenerateFlags() error = %v", err)
		}

		want := &generateFlags{
			common:    commonFlags{config: "team", docsDir: "src", quiet: true, verbose: true},
			outputDir: "dist",
			strict:    true,
			document:  documentFlags{date: "auto:iso"},
			render:    renderFlags{theme: "aspr", assetPath: "assets", parser: "goldmark", noHighlight: true, noTOC: true},
			preview:   previewFlags{html: true, pdf: true, timeout: "1m"},
			log:       logFlags{level: "debug", format: "json"},
		}
		opts := cmp.AllowUnexported(generateFlags{}, commonFlags{}, documentFlags{}, renderFlags{}, previewFlags{}, logFlags{})
		if diff := cmp.Diff(want, got, opts); diff != "" {
			t.Errorf("parseGenerateFlags() mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("help returns ErrHelp and prints usage", func(t *testing.T) {
		t.Parallel()

		var stderr bytes.Buffer
		_, err := parseGenerateFlags([]string{"--help"}, &stderr)
		if !errors.Is(err, flag.ErrHelp) {
			t.Fatalf("parseGenerateFlags(--help) error = %v, want flag.ErrHelp", err)
		}
		if !strings.Contains(stderr.String(), "Usage: md2docx generate") {
			t.Errorf("usage not printed:\n%s", stderr.String())
		}
	})

	t.Run("unknown flag is a usage error", func(t *testing.T) {
		t.Parallel()

		var stderr bytes.Buffer
		_, err := parseGenerateFlags([]string{"--page-size", "a4"}, &stderr)
		if !errors.Is(err, ErrUsage) {
			t.Errorf("parseGenerateFlags() error = %v, want ErrUsage", err)
		}
	})

	t.Run("positional argument is a usage error", func(t *testing.T) {
		t.Parallel()

		var stderr bytes.Buffer
		_, err := parseGenerateFlags([]string{"doc.md"}, &stderr)
		if !errors.Is(err, ErrUsage) {
			t.Errorf("parseGenerateFlags() error = %v, want ErrUsage", err)
		}
	})
}

// ---------------------------------------------------------------------------
// TestMergeFlags - CLI values override config values
// ---------------------------------------------------------------------------

func TestMergeFlags(t *testing.T) {
	t.Parallel()

	f := &generateFlags{
		common:    commonFlags{docsDir: "src"},
		outputDir: "dist",
		document:  documentFlags{date: "2026-01-01"},
		render:    renderFlags{theme: "aspr", assetPath: "assets", parser: "goldmark", noHighlight: true, noTOC: true},
		preview:   previewFlags{html: true},
	}
	cfg := mergeFlags(f, config.DefaultConfig())

	if cfg.Input.Dir != "src" || cfg.Output.Dir != "dist" {
		t.Errorf("dirs = %q/%q, want src/dist", cfg.Input.Dir, cfg.Output.Dir)
	}
	if cfg.Theme != "aspr" || cfg.Assets.BasePath != "assets" || cfg.Parser != "goldmark" {
		t.Errorf("render settings not applied: %+v", cfg)
	}
	if cfg.HighlightEnabled() || cfg.TOCEnabled() {
		t.Error("highlight and TOC should be disabled")
	}
	if cfg.Document.Date != "2026-01-01" {
		t.Errorf("date = %q", cfg.Document.Date)
	}
	if !cfg.Preview.HTML || cfg.Preview.PDF {
		t.Errorf("preview = %+v, want HTML only", cfg.Preview)
	}

	// Unset flags leave config values alone.
	untouched := mergeFlags(&generateFlags{}, config.DefaultConfig())
	if diff := cmp.Diff(config.DefaultConfig(), untouched); diff != "" {
		t.Errorf("mergeFlags() with no flags changed config (-want +got):\n%s", diff)
	}
}
