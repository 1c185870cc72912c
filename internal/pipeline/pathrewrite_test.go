package pipeline

import (
	"path/filepath"
	"strings"
	"testing"
)

func TestResolveImagePaths(t *testing.T) {
	t.Parallel()

	base := t.TempDir()
	tests := []struct {
		name         string
		html         string
		wantContains []string
		wantExcludes []string
	}{
		{
			name:         "relative image rewritten",
			html:         `<html><body><img src="images/logo.png"/></body></html>`,
			wantContains: []string{`src="file://`, "images/logo.png"},
		},
		{
			name:         "dot slash rewritten",
			html:         `<img src="./logo.png">`,
			wantContains: []string{`src="file://`},
		},
		{
			name:         "http unchanged",
			html:         `<img src="https://example.com/a.png">`,
			wantContains: []string{`src="https://example.com/a.png"`},
		},
		{
			name:         "data uri unchanged",
			html:         `<img src="data:image/png;base64,AAAA">`,
			wantContains: []string{`src="data:image/png;base64,AAAA"`},
		},
		{
			name:         "traversal left alone",
			html:         `<img src="../../etc/passwd">`,
			wantContains: []string{`src="../../etc/passwd"`},
		},
		{
			name:         "links untouched",
			html:         `<a href="other.md">x</a>`,
			wantContains: []string{`href="other.md"`},
			wantExcludes: []string{"file://"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := ResolveImagePaths(tt.html, base)
			if err != nil {
				t.Fatalf("ResolveImagePaths() error = %v", err)
			}
			for _, want := range tt.wantContains {
				if !strings.Contains(got, want) {
					t.Errorf("output missing %q\n%s", want, got)
				}
			}
			for _, exclude := range tt.wantExcludes {
				if strings.Contains(got, exclude) {
					t.Errorf("output should not contain %q\n%s", exclude, got)
				}
			}
		})
	}
}

func TestResolveImagePaths_EmptyBase(t *testing.T) {
	t.Parallel()

	in := `<img src="a.png">`
	got, err := ResolveImagePaths(in, "")
	if err != nil {
		t.Fatalf("ResolveImagePaths() error = %v", err)
	}
	if got != in {
		t.Errorf("ResolveImagePaths() = %q, want input unchanged", got)
	}
}

func TestIsPathUnderDir(t *testing.T) {
	t.Parallel()

	dir := filepath.FromSlash("/docs")
	tests := []struct {
		path string
		want bool
	}{
		{filepath.FromSlash("/docs/a.png"), true},
		{filepath.FromSlash("/docs"), true},
		{filepath.FromSlash("/docsx/a.png"), false},
		{filepath.FromSlash("/etc/passwd"), false},
	}

	for _, tt := range tests {
		if got := isPathUnderDir(tt.path, dir); got != tt.want {
			t.Errorf("isPathUnderDir(%q, %q) = %v, want %v", tt.path, dir, got, tt.want)
		}
	}
}
