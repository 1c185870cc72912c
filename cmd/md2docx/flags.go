package main

import (
	"errors"
	"fmt"
	"io"

	flag "github.com/spf13/pflag"
)

// commonFlags holds flags shared across commands.
type commonFlags struct {
	config  string
	docsDir string
	quiet   bool
	verbose bool
}

// documentFlags holds metadata overrides applied to every document.
type documentFlags struct {
	date string
}

// renderFlags holds theme and parsing flags.
type renderFlags struct {
	theme       string
	assetPath   string
	parser      string
	noHighlight bool
	noTOC       bool
}

// previewFlags holds HTML preview and PDF export flags.
type previewFlags struct {
	html    bool
	pdf     bool
	timeout string
}

// logFlags holds diagnostic logging flags.
type logFlags struct {
	level  string
	format string
}

// generateFlags holds all flags for the generate command.
type generateFlags struct {
	common    commonFlags
	outputDir string
	strict    bool
	document  documentFlags
	render    renderFlags
	preview   previewFlags
	log       logFlags
}

// addCommonFlags adds common flags to a FlagSet.
func addCommonFlags(fs *flag.FlagSet, f *commonFlags) {
	fs.StringVarP(&f.config, "config", "c", "", "config file name or path")
	fs.StringVarP(&f.docsDir, "docs-dir", "d", "", "directory holding the Markdown sources")
	fs.BoolVarP(&f.quiet, "quiet", "q", false, "only show errors")
	fs.BoolVarP(&f.verbose, "verbose", "v", false, "show timing and block counts")
}

// addDocumentFlags adds document metadata flags to a FlagSet.
func addDocumentFlags(fs *flag.FlagSet, f *documentFlags) {
	fs.StringVar(&f.date, "doc-date", "", "document date (\"auto\" = today)")
}

// addRenderFlags adds theme and parser flags to a FlagSet.
func addRenderFlags(fs *flag.FlagSet, f *renderFlags) {
	fs.StringVar(&f.theme, "theme", "", "theme name or YAML file path")
	fs.StringVar(&f.assetPath, "asset-path", "", "custom asset directory")
	fs.StringVar(&f.parser, "parser", "", "block parser: line, goldmark")
	fs.BoolVar(&f.noHighlight, "no-highlight", false, "disable code highlighting")
	fs.BoolVar(&f.noTOC, "no-toc", false, "disable table of contents")
}

// addPreviewFlags adds preview flags to a FlagSet.
func addPreviewFlags(fs *flag.FlagSet, f *previewFlags) {
	fs.BoolVar(&f.html, "html", false, "write an HTML preview next to each DOCX")
	fs.BoolVar(&f.pdf, "pdf", false, "write a PDF of the preview (needs Chrome)")
	fs.StringVarP(&f.timeout, "timeout", "t", "", "PDF export timeout (e.g., 30s, 2m)")
}

// addLogFlags adds logging flags to a FlagSet.
func addLogFlags(fs *flag.FlagSet, f *logFlags) {
	fs.StringVar(&f.level, "log-level", "", "diagnostic log level: trace, debug, info, warn, error")
	fs.StringVar(&f.format, "log-format", "", "diagnostic log format: console, json, pretty")
}

// buildGenerateFlagSet registers every generate flag on a new FlagSet.
func buildGenerateFlagSet(f *generateFlags) *flag.FlagSet {
	fs := flag.NewFlagSet("generate", flag.ContinueOnError)

	fs.StringVarP(&f.outputDir, "output-dir", "o", "", "output directory (default: docs dir)")
	fs.BoolVar(&f.strict, "strict", false, "exit 5 when any document fails")

	addCommonFlags(fs, &f.common)
	addDocumentFlags(fs, &f.document)
	addRenderFlags(fs, &f.render)
	addPreviewFlags(fs, &f.preview)
	addLogFlags(fs, &f.log)

	return fs
}

// parseGenerateFlags parses generate command flags. Usage is written to
// stderr on -h or a parse error.
func parseGenerateFlags(args []string, stderr io.Writer) (*generateFlags, error) {
	f := &generateFlags{}
	fs := buildGenerateFlagSet(f)
	fs.SetOutput(stderr)
	fs.Usage = func() { printGenerateUsage(stderr) }

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %v", ErrUsage, err)
	}
	if fs.NArg() > 0 {
		return nil, fmt.Errorf("%w: unexpected argument %q", ErrUsage, fs.Arg(0))
	}
	return f, nil
}
