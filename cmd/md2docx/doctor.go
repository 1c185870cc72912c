package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"runtime"
	"slices"
	"strings"
	"time"

	"github.com/go-rod/rod/lib/launcher"
	flag "github.com/spf13/pflag"

	"github.com/alnah/go-md2docx/internal/assets"
	"github.com/alnah/go-md2docx/internal/config"
	"github.com/alnah/go-md2docx/internal/fileutil"
)

// Doctor statuses.
const (
	statusReady    = "ready"
	statusWarnings = "warnings"
	statusErrors   = "errors"
)

// doctorResult holds all diagnostic information.
type doctorResult struct {
	Status   string       `json:"status"` // "ready", "warnings", "errors"
	Config   configInfo   `json:"config"`
	Sources  []sourceInfo `json:"sources,omitempty"`
	Logos    []sourceInfo `json:"logos,omitempty"`
	Chrome   *chromeInfo  `json:"chrome,omitempty"` // nil unless PDF export is enabled
	Env      envInfo      `json:"environment"`
	System   systemInfo   `json:"system"`
	Warnings []string     `json:"warnings,omitempty"`
	Errors   []string     `json:"errors,omitempty"`
}

// configInfo describes the configuration doctor resolved.
type configInfo struct {
	Loaded    bool   `json:"loaded"`
	DocsDir   string `json:"docs_dir,omitempty"`
	OutputDir string `json:"output_dir,omitempty"`
	Theme     string `json:"theme,omitempty"`
	Documents int    `json:"documents"`
}

// sourceInfo reports whether one file the batch reads exists.
type sourceInfo struct {
	Path  string `json:"path"`
	Found bool   `json:"found"`
}

// chromeInfo holds Chrome/Chromium detection results.
type chromeInfo struct {
	Found   bool   `json:"found"`
	Path    string `json:"path,omitempty"`
	Version string `json:"version,omitempty"`
	Sandbox bool   `json:"sandbox"`
}

// envInfo holds environment detection results.
type envInfo struct {
	OS            string `json:"os"`
	Arch          string `json:"arch"`
	Container     bool   `json:"container"`
	ContainerHint string `json:"container_hint,omitempty"`
	CI            bool   `json:"ci"`
	NoSandbox     string `json:"rod_no_sandbox"`
	BrowserBin    string `json:"rod_browser_bin"`
}

// systemInfo holds system check results.
type systemInfo struct {
	TempWritable bool `json:"temp_writable"`
}

// doctorFlags holds flags for the doctor command.
type doctorFlags struct {
	config  string
	docsDir string
	json    bool
	pdf     bool
}

// buildDoctorFlagSet registers every doctor flag on a new FlagSet.
func buildDoctorFlagSet(f *doctorFlags) *flag.FlagSet {
	fs := flag.NewFlagSet("doctor", flag.ContinueOnError)
	fs.StringVarP(&f.config, "config", "c", "", "config file name or path")
	fs.StringVarP(&f.docsDir, "docs-dir", "d", "", "directory holding the Markdown sources")
	fs.BoolVar(&f.json, "json", false, "output JSON")
	fs.BoolVar(&f.pdf, "pdf", false, "also check Chrome")
	return fs
}

// runDoctorCmd executes the doctor command and returns an exit code.
// Exit codes: 0 = OK (including warnings), 1 = errors found, 2 = bad flags.
func runDoctorCmd(args []string, env *Environment) int {
	f := &doctorFlags{}
	fs := buildDoctorFlagSet(f)
	fs.SetOutput(env.Stderr)
	fs.Usage = func() { printDoctorUsage(env.Stderr) }

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return ExitSuccess
		}
		return ExitUsage
	}

	result := runDoctor(f)

	if f.json {
		enc := json.NewEncoder(env.Stdout)
		enc.SetIndent("", "  ")
		_ = enc.Encode(result)
	} else {
		printDoctorResult(env.Stdout, result)
	}

	if result.Status == statusErrors {
		return ExitGeneral
	}
	return ExitSuccess
}

// chromeVersionTimeout bounds "chrome --version", which hangs on some
// misconfigured hosts.
const chromeVersionTimeout = 5 * time.Second

var ciVars = []string{"CI", "GITHUB_ACTIONS", "GITLAB_CI", "JENKINS_URL", "CIRCLECI"}

func (r *doctorResult) warn(format string, args ...any) {
	r.Warnings = append(r.Warnings, fmt.Sprintf(format, args...))
}

func (r *doctorResult) fail(format string, args ...any) {
	r.Errors = append(r.Errors, fmt.Sprintf(format, args...))
}

// settle derives Status from the collected findings.
func (r *doctorResult) settle() {
	switch {
	case len(r.Errors) > 0:
		r.Status = statusErrors
	case len(r.Warnings) > 0:
		r.Status = statusWarnings
	default:
		r.Status = statusReady
	}
}

// runDoctor resolves configuration like generate and inspects everything a
// batch would touch. Later checks only run when the config loaded.
func runDoctor(f *doctorFlags) *doctorResult {
	r := &doctorResult{
		Env: envInfo{
			OS:         runtime.GOOS,
			Arch:       runtime.GOARCH,
			NoSandbox:  os.Getenv("ROD_NO_SANDBOX"),
			BrowserBin: os.Getenv("ROD_BROWSER_BIN"),
		},
	}

	if cfg, ok := checkConfig(r, f); ok {
		checkSources(r, cfg)
		checkLogos(r, cfg)
		if cfg.Preview.PDF {
			checkChrome(r)
		}
	}
	checkEnvironment(r)
	checkSystem(r)

	r.settle()
	return r
}

func checkConfig(r *doctorResult, f *doctorFlags) (config.Config, bool) {
	gf := &generateFlags{}
	gf.common.config = f.config
	gf.common.docsDir = f.docsDir
	gf.preview.pdf = f.pdf

	cfg, err := loadConfig(gf, loadEnvConfig())
	if err != nil {
		r.fail("%v", err)
		return config.Config{}, false
	}

	r.Config = configInfo{
		Loaded:    true,
		DocsDir:   cfg.Input.Dir,
		OutputDir: cfg.OutputDir(),
		Theme:     cfg.Theme,
		Documents: len(cfg.Documents),
	}
	return cfg, true
}

// checkSources requires the docs directory. Missing sources only warn
// because generate skips them.
func checkSources(r *doctorResult, cfg config.Config) {
	if info, err := os.Stat(cfg.Input.Dir); err != nil || !info.IsDir() {
		r.fail("Docs directory not found: %s", cfg.Input.Dir)
		return
	}

	for _, entry := range cfg.Documents {
		path := cfg.SourcePath(entry)
		found := fileutil.FileExists(path)
		r.Sources = append(r.Sources, sourceInfo{Path: path, Found: found})
		if !found {
			r.warn("Source not found, will be skipped: %s", path)
		}
	}
}

func checkLogos(r *doctorResult, cfg config.Config) {
	paths := make([]string, len(cfg.Logos))
	for i, l := range cfg.Logos {
		paths[i] = l.Path
	}
	for _, status := range assets.CheckLogos(paths) {
		r.Logos = append(r.Logos, sourceInfo{Path: status.Path, Found: status.Found})
		if !status.Found {
			r.warn("Logo not found, headers will omit it: %s", status.Path)
		}
	}
}


func chromeVersion(bin string) (string, error) {
	ctx, cancel := context.WithTimeout(context.Background(), chromeVersionTimeout)
	defer cancel()

	out, err := exec.CommandContext(ctx, bin, "--version").Output() // #nosec G204 -- rod lookup or ROD_BROWSER_BIN
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(string(out)), nil
}

func checkChrome(r *doctorResult) {
	r.Chrome = &chromeInfo{}

	bin := r.Env.BrowserBin
	if bin == "" {
		var found bool
		if bin, found = launcher.LookPath(); !found {
			r.fail("Chrome/Chromium not found. Install Chrome or set ROD_BROWSER_BIN")
			return
		}
	}
	if !fileutil.FileExists(bin) {
		r.fail("Chrome not found at %s", bin)
		return
	}

	var err error
	r.Chrome.Found = true
	r.Chrome.Path = bin
	r.Chrome.Sandbox = r.Env.NoSandbox != "1"

	if r.Chrome.Version, err = chromeVersion(bin); err != nil {
		r.warn("Could not get Chrome version: %v", err)
	}
}

// checkEnvironment records container and CI detection. The sandbox warning
// only applies when Chrome is going to run.
func checkEnvironment(r *doctorResult) {
	r.Env.Container, r.Env.ContainerHint = isContainer()
	for _, v := range ciVars {
		if os.Getenv(v) != "" {
			r.Env.CI = true
			break
		}
	}

	if r.Chrome != nil && (r.Env.Container || r.Env.CI) && r.Env.NoSandbox != "1" {
		r.warn("Container/CI detected but ROD_NO_SANDBOX not set. Set ROD_NO_SANDBOX=1")
	}
}

// isContainer reports whether we run in a container and which signal said
// so. MD2DOCX_CONTAINER=1 forces detection for images the probes miss.
func isContainer() (bool, string) {
	probes := []struct {
		hint string
		hit  func() bool
	}{
		{envPrefix + "CONTAINER=1", func() bool { return os.Getenv(envPrefix+"CONTAINER") == "1" }},
		{"/.dockerenv", func() bool { return fileutil.FileExists("/.dockerenv") }},
		{"container=" + os.Getenv("container"), func() bool { return os.Getenv("container") != "" }},
		{"KUBERNETES_SERVICE_HOST", func() bool { return os.Getenv("KUBERNETES_SERVICE_HOST") != "" }},
	}
	for _, p := range probes {
		if p.hit() {
			return true, p.hint
		}
	}
	return false, ""
}

// checkSystem makes sure the PDF preview can stage its HTML.
func checkSystem(r *doctorResult) {
	_, cleanup, err := fileutil.WriteTempFile("doctor", "txt")
	if err != nil {
		r.fail("Temp directory not writable: %s", os.TempDir())
		return
	}
	cleanup()
	r.System.TempWritable = true
}

// Report line markers.
const (
	markOK    = "[OK]"
	markWarn  = "[WARN]"
	markError = "[ERROR]"
)

type reportLine struct {
	mark string
	text string
}

type reportSection struct {
	title string
	lines []reportLine
}

func okLine(format string, args ...any) reportLine {
	return reportLine{markOK, fmt.Sprintf(format, args...)}
}

// reportSections lays out the human-readable report. Sections without
// lines are dropped.
func reportSections(r *doctorResult) []reportSection {
	var cfg []reportLine
	if r.Config.Loaded {
		cfg = []reportLine{
			okLine("Docs directory: %s", r.Config.DocsDir),
			okLine("Output directory: %s", r.Config.OutputDir),
			okLine("Theme: %s", r.Config.Theme),
			okLine("Documents: %d", r.Config.Documents),
		}
	} else {
		cfg = []reportLine{{markError, "Not loaded"}}
	}

	var chrome []reportLine
	switch {
	case r.Chrome == nil:
	case !r.Chrome.Found:
		chrome = []reportLine{{markError, "Not found"}}
	default:
		chrome = append(chrome, okLine("Found at %s", r.Chrome.Path))
		if r.Chrome.Version != "" {
			chrome = append(chrome, okLine("Version: %s", r.Chrome.Version))
		}
		if r.Chrome.Sandbox {
			chrome = append(chrome, okLine("Sandbox: enabled"))
		} else {
			chrome = append(chrome, okLine("Sandbox: disabled (ROD_NO_SANDBOX=1)"))
		}
	}

	env := []reportLine{okLine("Platform: %s/%s", r.Env.OS, r.Env.Arch)}
	if r.Env.Container {
		env = append(env, okLine("Container: detected (%s)", r.Env.ContainerHint))
	}
	if r.Env.CI {
		env = append(env, okLine("CI: detected"))
	}

	system := []reportLine{{markError, "Temp directory: not writable"}}
	if r.System.TempWritable {
		system = []reportLine{okLine("Temp directory: writable")}
	}

	sections := []reportSection{
		{"Configuration", cfg},
		{"Sources", fileLines(r.Sources)},
		{"Logos", fileLines(r.Logos)},
		{"Chrome/Chromium", chrome},
		{"Environment", env},
		{"System", system},
		{"Warnings:", markAll(markWarn, r.Warnings)},
		{"Errors:", markAll(markError, r.Errors)},
	}
	return slices.DeleteFunc(sections, func(s reportSection) bool { return len(s.lines) == 0 })
}

func fileLines(files []sourceInfo) []reportLine {
	lines := make([]reportLine, len(files))
	for i, f := range files {
		if f.Found {
			lines[i] = okLine("%s", f.Path)
		} else {
			lines[i] = reportLine{markWarn, f.Path + " (not found)"}
		}
	}
	return lines
}

func markAll(mark string, texts []string) []reportLine {
	lines := make([]reportLine, len(texts))
	for i, t := range texts {
		lines[i] = reportLine{mark, t}
	}
	return lines
}

var statusLines = map[string]string{
	statusReady:    "Status: Ready to generate",
	statusWarnings: "Status: Ready with warnings",
	statusErrors:   "Status: Not ready (see errors above)",
}

func printDoctorResult(w io.Writer, r *doctorResult) {
	fmt.Fprintf(w, "md2docx doctor\n\n")
	for _, s := range reportSections(r) {
		fmt.Fprintln(w, s.title)
		for _, l := range s.lines {
			fmt.Fprintf(w, "  %s %s\n", l.mark, l.text)
		}
		fmt.Fprintln(w)
	}
	fmt.Fprintln(w, statusLines[r.Status])
}
