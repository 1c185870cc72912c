package main

// Notes:
// - runMain: we test dispatch and exit codes. Conversion itself is covered
//   by generate_test.go; here the converter is a mock.
// - hintFor: we test that fatal errors gain the matching hint.

import (
	"bytes"
	"context"
	"fmt"
	"strings"
	"testing"

	md2docx "github.com/alnah/go-md2docx"
)

// ---------------------------------------------------------------------------
// TestRunMain - Command dispatch and exit codes
// ---------------------------------------------------------------------------

func TestRunMain(t *testing.T) {
	t.Parallel()

	cfgPath, _ := setupBatch(t, true, "")

	tests := []struct {
		name       string
		args       []string
		wantCode   int
		wantStdout string
		wantStderr string
	}{
		{name: "version", args: []string{"md2docx", "version"}, wantCode: ExitSuccess, wantStdout: "md2docx dev"},
		{name: "help", args: []string{"md2docx", "help"}, wantCode: ExitSuccess, wantStdout: "Commands:"},
		{name: "generate help", args: []string{"md2docx", "generate", "--help"}, wantCode: ExitSuccess, wantStderr: "Usage: md2docx generate"},
		{name: "unknown command", args: []string{"md2docx", "convert"}, wantCode: ExitUsage, wantStderr: "Unknown command: convert"},
		{name: "generate", args: []string{"md2docx", "generate", "-c", cfgPath}, wantCode: ExitSuccess, wantStdout: "Generated: 2 documents"},
		{name: "flags default to generate", args: []string{"md2docx", "-c", cfgPath}, wantCode: ExitSuccess, wantStdout: "Generated: 2 documents"},
		{name: "bad flag", args: []string{"md2docx", "--bogus"}, wantCode: ExitUsage, wantStderr: "error: invalid usage"},
		{name: "completion", args: []string{"md2docx", "completion", "fish"}, wantCode: ExitSuccess, wantStdout: "complete -c md2docx"},
		{name: "bad shell", args: []string{"md2docx", "completion", "tcsh"}, wantCode: ExitUsage, wantStderr: "unsupported shell"},
		{name: "doctor", args: []string{"md2docx", "doctor", "-c", cfgPath}, wantStdout: "md2docx doctor", wantCode: -1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			env, stdout, stderr := testEnv(&mockConverter{})
			code := runMain(context.Background(), tt.args, env)

			if tt.wantCode >= 0 && code != tt.wantCode {
				t.Errorf("runMain() = %d, want %d\nstderr: %s", code, tt.wantCode, stderr.String())
			}
			if tt.wantStdout != "" && !strings.Contains(stdout.String(), tt.wantStdout) {
				t.Errorf("stdout missing %q:\n%s", tt.wantStdout, stdout.String())
			}
			if tt.wantStderr != "" && !strings.Contains(stderr.String(), tt.wantStderr) {
				t.Errorf("stderr missing %q:\n%s", tt.wantStderr, stderr.String())
			}
		})
	}
}

// ---------------------------------------------------------------------------
// TestRunMain_ErrorHints - Fatal errors print a hint
// ---------------------------------------------------------------------------

func TestRunMain_ErrorHints(t *testing.T) {
	t.Parallel()

	cfgPath, _ := setupBatch(t, true, "")
	env, _, stderr := testEnv(nil)
	env.NewConverter = func(...md2docx.Option) (DocumentConverter, error) {
		return nil, fmt.Errorf("%w: %q", md2docx.ErrThemeNotFound, "corporate")
	}

	code := runMain(context.Background(), []string{"md2docx", "-c", cfgPath}, env)
	if code != ExitUsage {
		t.Errorf("runMain() = %d, want %d", code, ExitUsage)
	}
	if !strings.Contains(stderr.String(), "hint: available: ") {
		t.Errorf("stderr missing theme hint:\n%s", stderr.String())
	}
}

func TestHintFor(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		err  error
		want string
	}{
		{name: "timeout", err: context.DeadlineExceeded, want: "--timeout"},
		{name: "page load", err: fmt.Errorf("x: %w", md2docx.ErrPageLoad), want: "--timeout"},
		{name: "theme", err: md2docx.ErrThemeNotFound, want: "available:"},
		{name: "other", err: fmt.Errorf("plain"), want: ""},
	}

	for _, tt := range tests {
		got := hintFor(tt.err)
		if tt.want == "" {
			if got != "" {
				t.Errorf("%s: hintFor() = %q, want empty", tt.name, got)
			}
			continue
		}
		if !strings.Contains(got, tt.want) {
			t.Errorf("%s: hintFor() = %q, want it to contain %q", tt.name, got, tt.want)
		}
	}
}

// ---------------------------------------------------------------------------
// TestDefaultEnv - Production environment wiring
// ---------------------------------------------------------------------------

func TestDefaultEnv(t *testing.T) {
	t.Parallel()

	env := DefaultEnv()
	if env.Now == nil || env.Stdout == nil || env.Stderr == nil || env.NewConverter == nil {
		t.Fatalf("DefaultEnv() has nil fields: %+v", env)
	}

	conv, err := env.NewConverter(md2docx.WithTheme("aspr"))
	if err != nil {
		t.Fatalf("NewConverter() error = %v", err)
	}
	if err := conv.Close(); err != nil {
		t.Errorf("Close() error = %v", err)
	}

	var buf bytes.Buffer
	env.Stdout = &buf
	if code := runMain(context.Background(), []string{"md2docx", "version"}, env); code != ExitSuccess || buf.Len() == 0 {
		t.Errorf("version via DefaultEnv: code=%d output=%q", code, buf.String())
	}
}
