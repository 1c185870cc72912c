package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	md2docx "github.com/alnah/go-md2docx"
	"github.com/alnah/go-md2docx/internal/assets"
	"github.com/alnah/go-md2docx/internal/config"
	"github.com/alnah/go-md2docx/internal/dateutil"
	"github.com/alnah/go-md2docx/internal/fileutil"
	"github.com/alnah/go-md2docx/internal/hints"
	"github.com/alnah/go-md2docx/internal/logging"
	"github.com/alnah/go-md2docx/internal/logging/gologger"
)

// File permission constants.
const (
	dirPermissions  = 0o750 // rwxr-x---: owner full, group read+execute
	filePermissions = 0o644 // rw-r--r--: owner read+write, others read
)

// Sentinel errors for CLI operations.
var (
	ErrUsage          = errors.New("invalid usage")
	ErrInvalidTimeout = errors.New("invalid timeout")
	ErrOutputDir      = errors.New("failed to create output directory")
	ErrWriteOutput    = errors.New("failed to write output file")
	ErrReadMarkdown   = errors.New("failed to read markdown file")
	ErrPartialBatch   = errors.New("some documents failed")
)

// bannerWidth is the width of the separator lines around the run.
const bannerWidth = 60

// DocumentResult holds the outcome of a single manifest entry.
type DocumentResult struct {
	Entry    config.DocumentEntry
	Source   string
	Output   string
	Size     int
	Stats    md2docx.Stats
	Skipped  bool // source missing
	Err      error
	Duration time.Duration
}

// Failed reports whether the entry counts as an error.
func (r DocumentResult) Failed() bool {
	return r.Skipped || r.Err != nil
}

// errorName is the name listed in the summary: the source for skipped
// entries, the output otherwise.
func (r DocumentResult) errorName() string {
	if r.Skipped {
		return r.Entry.Source
	}
	return r.Entry.Output
}

// batch groups everything shared across the documents of one run.
type batch struct {
	cfg     config.Config
	conv    DocumentConverter
	logos   []md2docx.Logo
	date    string
	logger  logging.Logger
	out     io.Writer // nil when quiet
	errOut  io.Writer
	verbose bool
}

// runGenerate loads configuration, converts every manifest entry in order,
// and prints a summary. Individual document failures do not stop the batch.
func runGenerate(ctx context.Context, args []string, env *Environment) error {
	flags, err := parseGenerateFlags(args, env.Stderr)
	if err != nil {
		return err
	}

	envCfg := loadEnvConfig()
	warnUnknownEnvVars(env.Stderr)

	cfg, err := loadConfig(flags, envCfg)
	if err != nil {
		return err
	}

	timeout, err := resolveTimeout(flags.preview.timeout, envCfg.Timeout)
	if err != nil {
		return err
	}

	provider, err := newLogProvider(flags, envCfg)
	if err != nil {
		return err
	}
	logger := logging.ModuleLogger(provider, "cli")

	// Resolve "auto" date once for the entire batch
	date, err := dateutil.ResolveDate(cfg.Document.Date, env.Now())
	if err != nil {
		return fmt.Errorf("%w: %v", md2docx.ErrInvalidDate, err)
	}

	parser := md2docx.Parser(cfg.Parser)
	opts := []md2docx.Option{
		md2docx.WithTheme(cfg.Theme),
		md2docx.WithAssetPath(cfg.Assets.BasePath),
		md2docx.WithParser(parser),
		md2docx.WithHighlighting(cfg.HighlightEnabled()),
		md2docx.WithPreviewStyle(cfg.Preview.Style),
		md2docx.WithTimeout(timeout),
		md2docx.WithLogger(logging.ModuleLogger(provider, "converter")),
		md2docx.WithNow(env.Now),
	}
	conv, err := env.NewConverter(opts...)
	if err != nil {
		return err
	}
	defer conv.Close()

	b := &batch{
		cfg:     cfg,
		conv:    conv,
		date:    date,
		logger:  logger,
		errOut:  env.Stderr,
		verbose: flags.common.verbose,
	}
	if !flags.common.quiet {
		b.out = env.Stdout
	}

	b.printBanner()
	b.logos = b.loadLogos()

	results, err := b.run(ctx)
	b.printSummary(results)
	if err != nil {
		return err
	}

	failed := countFailed(results)
	logger.Info("batch finished", "documents", len(results), "failed", failed)
	if failed > 0 && flags.strict {
		return fmt.Errorf("%w: %d of %d", ErrPartialBatch, failed, len(results))
	}
	return nil
}

// loadConfig builds the run configuration.
// Priority: CLI flags > env vars > config file > defaults.
func loadConfig(flags *generateFlags, envCfg *envConfig) (config.Config, error) {
	name := flags.common.config
	if name == "" {
		name = envCfg.ConfigPath
	}

	cfg := config.DefaultConfig()
	if name != "" {
		loaded, err := config.LoadConfig(name)
		if err != nil {
			if errors.Is(err, config.ErrConfigNotFound) && !fileutil.IsFilePath(name) {
				return config.Config{}, fmt.Errorf("loading config: %w%s", err, hints.ForConfigNotFound(config.SearchPaths(name)))
			}
			return config.Config{}, fmt.Errorf("loading config: %w", err)
		}
		cfg = loaded
	}

	cfg = applyEnvConfig(envCfg, cfg)
	cfg = mergeFlags(flags, cfg)
	cfg = cfg.WithDefaults()

	if err := cfg.Validate(); err != nil {
		return config.Config{}, fmt.Errorf("config: %w", err)
	}
	return cfg, nil
}

// mergeFlags returns cfg with CLI flags applied. CLI values override config values.
func mergeFlags(flags *generateFlags, cfg config.Config) config.Config {
	if flags.common.docsDir != "" {
		cfg.Input.Dir = flags.common.docsDir
	}
	if flags.outputDir != "" {
		cfg.Output.Dir = flags.outputDir
	}
	if flags.render.theme != "" {
		cfg.Theme = flags.render.theme
	}
	if flags.render.assetPath != "" {
		cfg.Assets.BasePath = flags.render.assetPath
	}
	if flags.render.parser != "" {
		cfg.Parser = flags.render.parser
	}
	if flags.render.noHighlight {
		off := false
		cfg.Highlight = &off
	}
	if flags.render.noTOC {
		off := false
		cfg.TOC.Enabled = &off
	}
	if flags.document.date != "" {
		cfg.Document.Date = flags.document.date
	}
	if flags.preview.html {
		cfg.Preview.HTML = true
	}
	if flags.preview.pdf {
		cfg.Preview.PDF = true
	}
	return cfg
}

// resolveTimeout parses the --timeout flag, falling back to the env value.
// Zero means the converter default.
func resolveTimeout(flagValue string, envValue time.Duration) (time.Duration, error) {
	if flagValue == "" {
		return envValue, nil
	}
	d, err := time.ParseDuration(flagValue)
	if err != nil {
		return 0, fmt.Errorf("%w: %q: %v", ErrInvalidTimeout, flagValue, err)
	}
	if d <= 0 {
		return 0, fmt.Errorf("%w: %q must be positive", ErrInvalidTimeout, flagValue)
	}
	return d, nil
}

// newLogProvider returns the diagnostic log provider, or nil when logging
// is off. Logging stays off unless a level is requested or --verbose is set.
func newLogProvider(flags *generateFlags, envCfg *envConfig) (logging.Provider, error) {
	level := flags.log.level
	if level == "" {
		level = envCfg.LogLevel
	}
	if level == "" && flags.common.verbose {
		level = "debug"
	}
	format := flags.log.format
	if format == "" {
		format = envCfg.LogFormat
	}

	provider, err := gologger.NewProvider(gologger.Config{Level: level, Format: format})
	if err != nil {
		return nil, err
	}
	if level == "" {
		return nil, nil
	}
	return provider, nil
}

// printBanner writes the run header.
func (b *batch) printBanner() {
	if b.out == nil {
		return
	}
	title := "md2docx"
	if b.cfg.Document.HeaderPrefix != "" {
		title = b.cfg.Document.HeaderPrefix
	}
	rule := strings.Repeat("=", bannerWidth)
	fmt.Fprintln(b.out, rule)
	fmt.Fprintf(b.out, "  %s — Document Generation\n", title)
	fmt.Fprintln(b.out, rule)
	fmt.Fprintln(b.out)
}

// loadLogos reports logo availability and reads every logo once for the
// whole batch. Missing logos are skipped.
func (b *batch) loadLogos() []md2docx.Logo {
	if len(b.cfg.Logos) == 0 {
		return nil
	}

	paths := make([]string, len(b.cfg.Logos))
	for i, l := range b.cfg.Logos {
		paths[i] = l.Path
	}

	var logos []md2docx.Logo
	missing := false
	for i, status := range assets.CheckLogos(paths) {
		label := "[!] Not found"
		if status.Found {
			data, err := assets.ReadLogo(status.Path)
			if err == nil {
				label = "[OK] Found"
				logos = append(logos, md2docx.Logo{Path: status.Path, Data: data, Width: b.cfg.Logos[i].Width})
			} else {
				label = "[!] Unreadable"
				b.logger.Warn("logo unreadable", "path", status.Path, "error", err)
			}
		}
		if label != "[OK] Found" {
			missing = true
		}
		b.printf("  Logo %s: %s\n", filepath.Base(status.Path), label)
	}
	if missing && b.out != nil && b.verbose {
		fmt.Fprintln(b.out, strings.TrimPrefix(hints.ForLogo(), "\n"))
	}
	b.printf("\n")
	return logos
}

// run converts each manifest entry in order. It stops early only when the
// context is canceled or the browser cannot be started.
func (b *batch) run(ctx context.Context) ([]DocumentResult, error) {
	results := make([]DocumentResult, 0, len(b.cfg.Documents))
	for _, entry := range b.cfg.Documents {
		if err := ctx.Err(); err != nil {
			return results, fmt.Errorf("batch interrupted: %w", err)
		}

		r := b.generate(ctx, entry)
		results = append(results, r)
		b.printResult(r)

		if r.Err != nil && (errors.Is(r.Err, md2docx.ErrBrowserConnect) || errors.Is(r.Err, context.Canceled)) {
			return results, r.Err
		}
	}
	return results, nil
}

// generate converts one manifest entry and writes its outputs.
func (b *batch) generate(ctx context.Context, entry config.DocumentEntry) (r DocumentResult) {
	start := time.Now()
	r = DocumentResult{
		Entry:  entry,
		Source: b.cfg.SourcePath(entry),
		Output: b.cfg.OutputPath(entry),
	}
	logger := logging.WithDocument(b.logger, r.Source, r.Output)
	defer func() { r.Duration = time.Since(start) }()

	if !fileutil.FileExists(r.Source) {
		r.Skipped = true
		logger.Warn("source not found")
		return r
	}

	content, err := os.ReadFile(r.Source) // #nosec G304 -- manifest path
	if err != nil {
		r.Err = fmt.Errorf("%w: %v", ErrReadMarkdown, err)
		return r
	}

	res, err := b.conv.Convert(ctx, b.input(entry, string(content), filepath.Dir(r.Source)))
	if err != nil {
		logger.Error("conversion failed", "error", err)
		r.Err = err
		return r
	}
	r.Stats = res.Stats
	r.Size = len(res.DOCX)

	if err := writeOutputs(r.Output, res); err != nil {
		r.Err = err
		return r
	}
	logger.Debug("document written", "bytes", r.Size, "blocks", res.Stats.Total())
	return r
}

// input builds the converter input for one entry.
func (b *batch) input(entry config.DocumentEntry, markdown, sourceDir string) md2docx.Input {
	in := md2docx.Input{
		Markdown:   markdown,
		SourceDir:  sourceDir,
		Title:      entry.Title,
		Subtitle:   entry.Subtitle,
		HeaderText: headerText(b.cfg.Document.HeaderPrefix, entry.Title),
		FooterText: b.cfg.Document.FooterText,
		Date:       b.date,
		Version:    b.cfg.Document.Version,
		Status:     b.cfg.Document.Status,
		Logos:      b.logos,
		HTML:       b.cfg.Preview.HTML,
		PDF:        b.cfg.Preview.PDF,
	}
	if b.cfg.TOCEnabled() {
		in.TOC = &md2docx.TOC{Title: b.cfg.TOC.Title, Depth: b.cfg.TOC.Depth}
	}
	return in
}

// headerText joins the configured prefix and the document title.
func headerText(prefix, title string) string {
	if prefix == "" {
		return ""
	}
	if title == "" {
		return prefix
	}
	return prefix + " — " + title
}

// writeOutputs writes the DOCX and any preview files atomically.
func writeOutputs(docxPath string, res *md2docx.ConvertResult) error {
	if err := os.MkdirAll(filepath.Dir(docxPath), dirPermissions); err != nil {
		return fmt.Errorf("%w: %v%s", ErrOutputDir, err, hints.ForOutputDirectory())
	}

	files := []struct {
		path string
		data []byte
	}{
		{docxPath, res.DOCX},
	}
	if res.HTML != nil {
		files = append(files, struct {
			path string
			data []byte
		}{siblingPath(docxPath, ".html"), res.HTML})
	}
	if res.PDF != nil {
		files = append(files, struct {
			path string
			data []byte
		}{siblingPath(docxPath, ".pdf"), res.PDF})
	}

	for _, f := range files {
		err := fileutil.WriteFileAtomic(f.path, filePermissions, func(w io.Writer) error {
			_, err := w.Write(f.data)
			return err
		})
		if err != nil {
			return fmt.Errorf("%w: %s: %v", ErrWriteOutput, f.path, err)
		}
	}
	return nil
}

// siblingPath swaps the extension of path.
func siblingPath(path, ext string) string {
	return strings.TrimSuffix(path, filepath.Ext(path)) + ext
}

// printResult writes the status line of one entry. Failures are always
// shown; quiet mode hides successes.
func (b *batch) printResult(r DocumentResult) {
	failOut := b.out
	if failOut == nil {
		failOut = b.errOut
	}

	switch {
	case r.Skipped:
		fmt.Fprintf(failOut, "  [!] Skipping %s (not found)\n", r.Entry.Source)
	case r.Err != nil:
		fmt.Fprintf(failOut, "  [ERR] Error generating %s: %v\n", r.Entry.Output, r.Err)
	default:
		b.printf("  [OK] %s (%.1f KB)\n", r.Entry.Output, float64(r.Size)/1024)
		if b.verbose {
			b.printf("       %d blocks, %d tables, %d code blocks in %v\n",
				r.Stats.Total(), r.Stats.Tables, r.Stats.CodeBlocks, r.Duration.Round(time.Millisecond))
		}
	}
}

// printSummary writes the totals and the list of failed entries.
func (b *batch) printSummary(results []DocumentResult) {
	if b.out == nil {
		return
	}

	var failed []string
	skipped := false
	for _, r := range results {
		if r.Failed() {
			failed = append(failed, r.errorName())
		}
		skipped = skipped || r.Skipped
	}
	generated := len(results) - len(failed)

	fmt.Fprintln(b.out)
	fmt.Fprintf(b.out, "  Generated: %d documents\n", generated)
	if len(failed) > 0 {
		fmt.Fprintf(b.out, "  Errors:    %d — %s\n", len(failed), strings.Join(failed, ", "))
	}
	if skipped {
		fmt.Fprintln(b.out, strings.TrimPrefix(hints.ForSourceNotFound(b.cfg.Input.Dir), "\n"))
	}
	fmt.Fprintln(b.out)
	if b.cfg.TOCEnabled() {
		fmt.Fprintln(b.out, "  Done! Open documents in Word and right-click TOC > Update Field")
	} else {
		fmt.Fprintln(b.out, "  Done!")
	}
	fmt.Fprintln(b.out, strings.Repeat("=", bannerWidth))
}

func (b *batch) printf(format string, args ...any) {
	if b.out == nil {
		return
	}
	fmt.Fprintf(b.out, format, args...)
}

// countFailed tallies skipped and failed entries.
func countFailed(results []DocumentResult) int {
	n := 0
	for _, r := range results {
		if r.Failed() {
			n++
		}
	}
	return n
}
