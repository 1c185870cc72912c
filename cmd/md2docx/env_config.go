package main

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/alnah/go-md2docx/internal/config"
)

// envPrefix marks variables read by the CLI.
const envPrefix = "MD2DOCX_"

// envConfig holds configuration from environment variables.
// Provides CI/CD-friendly overrides without requiring YAML files.
type envConfig struct {
	// Tier 1 - Essential
	ConfigPath string        // MD2DOCX_CONFIG: config file path
	Theme      string        // MD2DOCX_THEME: theme name or path
	Timeout    time.Duration // MD2DOCX_TIMEOUT: PDF export timeout

	// Tier 2 - I/O
	DocsDir   string // MD2DOCX_DOCS_DIR: Markdown source directory
	OutputDir string // MD2DOCX_OUTPUT_DIR: output directory
	AssetPath string // MD2DOCX_ASSET_PATH: custom asset directory

	// Tier 3 - Extended
	Parser     string // MD2DOCX_PARSER: line, goldmark
	DocDate    string // MD2DOCX_DOC_DATE: document date
	DocVersion string // MD2DOCX_DOC_VERSION: document version
	DocStatus  string // MD2DOCX_DOC_STATUS: document status
	LogLevel   string // MD2DOCX_LOG_LEVEL: diagnostic log level
	LogFormat  string // MD2DOCX_LOG_FORMAT: console, json, pretty
}

// knownEnvVars lists valid MD2DOCX_* environment variables.
// Used to detect typos and warn users about unknown variables.
var knownEnvVars = map[string]bool{
	// Tier 1 - Essential
	"MD2DOCX_CONFIG":  true,
	"MD2DOCX_THEME":   true,
	"MD2DOCX_TIMEOUT": true,
	// Tier 2 - I/O
	"MD2DOCX_DOCS_DIR":   true,
	"MD2DOCX_OUTPUT_DIR": true,
	"MD2DOCX_ASSET_PATH": true,
	// Tier 3 - Extended
	"MD2DOCX_PARSER":      true,
	"MD2DOCX_DOC_DATE":    true,
	"MD2DOCX_DOC_VERSION": true,
	"MD2DOCX_DOC_STATUS":  true,
	"MD2DOCX_LOG_LEVEL":   true,
	"MD2DOCX_LOG_FORMAT":  true,
	// Doctor override
	"MD2DOCX_CONTAINER": true,
}

// loadEnvConfig reads configuration from environment variables.
// Returns a struct with all recognized MD2DOCX_* values.
func loadEnvConfig() *envConfig {
	cfg := &envConfig{
		// Tier 1
		ConfigPath: os.Getenv("MD2DOCX_CONFIG"),
		Theme:      os.Getenv("MD2DOCX_THEME"),
		// Tier 2
		DocsDir:   os.Getenv("MD2DOCX_DOCS_DIR"),
		OutputDir: os.Getenv("MD2DOCX_OUTPUT_DIR"),
		AssetPath: os.Getenv("MD2DOCX_ASSET_PATH"),
		// Tier 3
		Parser:     os.Getenv("MD2DOCX_PARSER"),
		DocDate:    os.Getenv("MD2DOCX_DOC_DATE"),
		DocVersion: os.Getenv("MD2DOCX_DOC_VERSION"),
		DocStatus:  os.Getenv("MD2DOCX_DOC_STATUS"),
		LogLevel:   os.Getenv("MD2DOCX_LOG_LEVEL"),
		LogFormat:  os.Getenv("MD2DOCX_LOG_FORMAT"),
	}

	// Parse duration for timeout
	if timeout := os.Getenv("MD2DOCX_TIMEOUT"); timeout != "" {
		if d, err := time.ParseDuration(timeout); err == nil && d > 0 {
			cfg.Timeout = d
		}
	}

	return cfg
}

// warnUnknownEnvVars logs warnings for unrecognized MD2DOCX_* variables.
// Helps catch typos like MD2DOCX_DOC_DIR instead of MD2DOCX_DOCS_DIR.
func warnUnknownEnvVars(w io.Writer) {
	for _, env := range os.Environ() {
		if strings.HasPrefix(env, envPrefix) {
			name, _, _ := strings.Cut(env, "=")
			if !knownEnvVars[name] {
				fmt.Fprintf(w, "warning: unknown environment variable %s (typo?)\n", name)
			}
		}
	}
}

// applyEnvConfig returns cfg with environment values applied.
// Priority: CLI flags > env vars > config file > defaults
// (CLI flags are applied later via mergeFlags).
func applyEnvConfig(env *envConfig, cfg config.Config) config.Config {
	// Tier 1
	if env.Theme != "" {
		cfg.Theme = env.Theme
	}

	// Tier 2
	if env.DocsDir != "" {
		cfg.Input.Dir = env.DocsDir
	}
	if env.OutputDir != "" {
		cfg.Output.Dir = env.OutputDir
	}
	if env.AssetPath != "" {
		cfg.Assets.BasePath = env.AssetPath
	}

	// Tier 3
	if env.Parser != "" {
		cfg.Parser = env.Parser
	}
	if env.DocDate != "" {
		cfg.Document.Date = env.DocDate
	}
	if env.DocVersion != "" {
		cfg.Document.Version = env.DocVersion
	}
	if env.DocStatus != "" {
		cfg.Document.Status = env.DocStatus
	}

	return cfg
}
