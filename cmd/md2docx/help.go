package main

import (
	"fmt"
	"io"
)

// printUsage prints the main usage message.
func printUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: md2docx [command] [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Commands:")
	fmt.Fprintln(w, "  generate     Convert every manifest document to DOCX (default)")
	fmt.Fprintln(w, "  doctor       Check sources, logos, config, and Chrome")
	fmt.Fprintln(w, "  version      Show version information")
	fmt.Fprintln(w, "  completion   Generate shell completion script")
	fmt.Fprintln(w, "  help         Show help for a command")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Run 'md2docx help <command>' for details on a specific command.")
}

// printGenerateUsage prints usage for the generate command.
func printGenerateUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: md2docx generate [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Convert the documents listed in the manifest, in order. A missing source")
	fmt.Fprintln(w, "or a failed conversion is reported and the batch continues.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Input/Output:")
	fmt.Fprintln(w, "  -c, --config <name>       Config file name or path")
	fmt.Fprintln(w, "  -d, --docs-dir <dir>      Directory holding the Markdown sources")
	fmt.Fprintln(w, "  -o, --output-dir <dir>    Output directory (default: docs dir)")
	fmt.Fprintln(w, "      --strict              Exit 5 when any document fails")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Document:")
	fmt.Fprintln(w, "      --doc-date <s>        Date: \"auto\", \"auto:FORMAT\", or literal")
	fmt.Fprintln(w, "                            Tokens: YYYY, YY, MMMM, MMM, MM, M, DD, D")
	fmt.Fprintln(w, "                            Presets (case-insensitive): iso, european, us, long")
	fmt.Fprintln(w, "                            Use [text] to escape literals: [Date]: YYYY")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Rendering:")
	fmt.Fprintln(w, "      --theme <s>           Theme name or YAML file path")
	fmt.Fprintln(w, "      --asset-path <dir>    Custom asset directory")
	fmt.Fprintln(w, "      --parser <s>          Block parser: line, goldmark")
	fmt.Fprintln(w, "      --no-highlight        Disable code highlighting")
	fmt.Fprintln(w, "      --no-toc              Disable table of contents")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Preview:")
	fmt.Fprintln(w, "      --html                Write an HTML preview next to each DOCX")
	fmt.Fprintln(w, "      --pdf                 Write a PDF of the preview (needs Chrome)")
	fmt.Fprintln(w, "  -t, --timeout <d>         PDF export timeout (e.g., 30s, 2m)")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Output Control:")
	fmt.Fprintln(w, "  -q, --quiet               Only show errors")
	fmt.Fprintln(w, "  -v, --verbose             Show timing and block counts")
	fmt.Fprintln(w, "      --log-level <s>       Diagnostic log level: trace, debug, info, warn, error")
	fmt.Fprintln(w, "      --log-format <s>      Diagnostic log format: console, json, pretty")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Exit codes:")
	fmt.Fprintln(w, "  0 success (including partial batches), 1 general, 2 usage/config,")
	fmt.Fprintln(w, "  3 I/O setup, 4 browser, 5 partial batch with --strict")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Environment:")
	fmt.Fprintln(w, "  MD2DOCX_CONFIG, MD2DOCX_THEME, MD2DOCX_TIMEOUT, MD2DOCX_DOCS_DIR,")
	fmt.Fprintln(w, "  MD2DOCX_OUTPUT_DIR, MD2DOCX_ASSET_PATH, MD2DOCX_PARSER, MD2DOCX_DOC_DATE,")
	fmt.Fprintln(w, "  MD2DOCX_DOC_VERSION, MD2DOCX_DOC_STATUS, MD2DOCX_LOG_LEVEL, MD2DOCX_LOG_FORMAT")
}

// printDoctorUsage prints usage for the doctor command.
func printDoctorUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: md2docx doctor [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Check that the docs directory, manifest sources, logos, and config are")
	fmt.Fprintln(w, "usable. Chrome is checked when PDF export is enabled.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Flags:")
	fmt.Fprintln(w, "  -c, --config <name>       Config file name or path")
	fmt.Fprintln(w, "  -d, --docs-dir <dir>      Directory holding the Markdown sources")
	fmt.Fprintln(w, "      --pdf                 Also check Chrome")
	fmt.Fprintln(w, "      --json                Output JSON")
}

// runHelp prints help for a specific command.
func runHelp(args []string, env *Environment) {
	if len(args) == 0 {
		printUsage(env.Stdout)
		return
	}

	switch args[0] {
	case "generate":
		printGenerateUsage(env.Stdout)
	case "doctor":
		printDoctorUsage(env.Stdout)
	case "completion":
		printCompletionUsage(env.Stdout)
	case "version":
		fmt.Fprintln(env.Stdout, "Usage: md2docx version")
		fmt.Fprintln(env.Stdout)
		fmt.Fprintln(env.Stdout, "Show version information.")
	case "help":
		fmt.Fprintln(env.Stdout, "Usage: md2docx help [command]")
		fmt.Fprintln(env.Stdout)
		fmt.Fprintln(env.Stdout, "Show help for a command.")
	default:
		fmt.Fprintf(env.Stderr, "Unknown command: %s\n", args[0])
		printUsage(env.Stderr)
	}
}
