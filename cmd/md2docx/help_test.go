package main

// Notes:
// - Usage printers: we check required content, not exact formatting.
// - runHelp: we test routing to the correct help topic.

import (
	"bytes"
	"strings"
	"testing"
)

func TestPrintUsage(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	printUsage(&buf)

	for _, want := range []string{"Usage: md2docx", "Commands:", "generate", "doctor", "version", "completion", "help"} {
		if !strings.Contains(buf.String(), want) {
			t.Errorf("printUsage output should contain %q", want)
		}
	}
}

func TestPrintGenerateUsage(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	printGenerateUsage(&buf)
	output := buf.String()

	for _, group := range []string{"Input/Output:", "Document:", "Rendering:", "Preview:", "Output Control:", "Exit codes:", "Environment:"} {
		if !strings.Contains(output, group) {
			t.Errorf("generate usage missing group %q", group)
		}
	}

	// Every registered flag is documented.
	fs := buildGenerateFlagSet(&generateFlags{})
	for _, fd := range extractFlagsFromFlagSet(fs) {
		if !strings.Contains(output, "--"+fd.Long) {
			t.Errorf("generate usage missing --%s", fd.Long)
		}
	}

	// Every known env var except the doctor override is documented.
	for name := range knownEnvVars {
		if name == envPrefix+"CONTAINER" {
			continue
		}
		if !strings.Contains(output, name) {
			t.Errorf("generate usage missing %s", name)
		}
	}
}

func TestPrintDoctorUsage(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	printDoctorUsage(&buf)

	for _, fd := range extractFlagsFromFlagSet(buildDoctorFlagSet(&doctorFlags{})) {
		if !strings.Contains(buf.String(), "--"+fd.Long) {
			t.Errorf("doctor usage missing --%s", fd.Long)
		}
	}
}

func TestRunHelp(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		args       []string
		wantStdout string
		wantStderr string
	}{
		{name: "no args", args: nil, wantStdout: "Commands:"},
		{name: "generate", args: []string{"generate"}, wantStdout: "Usage: md2docx generate"},
		{name: "doctor", args: []string{"doctor"}, wantStdout: "Usage: md2docx doctor"},
		{name: "completion", args: []string{"completion"}, wantStdout: "Usage: md2docx completion"},
		{name: "version", args: []string{"version"}, wantStdout: "Usage: md2docx version"},
		{name: "help", args: []string{"help"}, wantStdout: "Usage: md2docx help"},
		{name: "unknown", args: []string{"convert"}, wantStderr: "Unknown command: convert"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			var stdout, stderr bytes.Buffer
			runHelp(tt.args, &Environment{Stdout: &stdout, Stderr: &stderr})

			if tt.wantStdout != "" && !strings.Contains(stdout.String(), tt.wantStdout) {
				t.Errorf("stdout missing %q:\n%s", tt.wantStdout, stdout.String())
			}
			if tt.wantStderr != "" && !strings.Contains(stderr.String(), tt.wantStderr) {
				t.Errorf("stderr missing %q:\n%s", tt.wantStderr, stderr.String())
			}
		})
	}
}
