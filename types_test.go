package md2docx

import (
	"errors"
	"testing"
)

func TestInput_Validate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		input   Input
		wantErr error
	}{
		{name: "valid", input: Input{Markdown: "## A"}},
		{name: "empty", input: Input{}, wantErr: ErrEmptyMarkdown},
		{name: "whitespace", input: Input{Markdown: "\n\n  "}, wantErr: ErrEmptyMarkdown},
		{name: "toc depth zero uses default", input: Input{Markdown: "x", TOC: &TOC{}}},
		{name: "toc depth 1", input: Input{Markdown: "x", TOC: &TOC{Depth: 1}}},
		{name: "toc depth negative", input: Input{Markdown: "x", TOC: &TOC{Depth: -1}}, wantErr: ErrInvalidTOCDepth},
		{name: "toc depth 4", input: Input{Markdown: "x", TOC: &TOC{Depth: 4}}, wantErr: ErrInvalidTOCDepth},
		{name: "logo with data", input: Input{Markdown: "x", Logos: []Logo{{Data: []byte{1}}}}},
		{name: "logo too wide", input: Input{Markdown: "x", Logos: []Logo{{Path: "a.png", Width: 9}}}, wantErr: ErrInvalidLogo},
		{name: "logo negative width", input: Input{Markdown: "x", Logos: []Logo{{Path: "a.png", Width: -1}}}, wantErr: ErrInvalidLogo},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			err := tt.input.Validate()
			if tt.wantErr == nil {
				if err != nil {
					t.Errorf("Validate() unexpected error: %v", err)
				}
				return
			}
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Validate() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestTOC_Defaults(t *testing.T) {
	t.Parallel()

	var nilTOC *TOC
	if err := nilTOC.Validate(); err != nil {
		t.Errorf("nil TOC Validate() = %v", err)
	}

	toc := &TOC{}
	if toc.title() != DefaultTOCTitle || toc.depth() != DefaultTOCDepth {
		t.Errorf("defaults = %q/%d", toc.title(), toc.depth())
	}

	toc = &TOC{Title: "Contents", Depth: 2}
	if toc.title() != "Contents" || toc.depth() != 2 {
		t.Errorf("explicit = %q/%d", toc.title(), toc.depth())
	}
}

func TestLogo_Defaults(t *testing.T) {
	t.Parallel()

	tests := []struct {
		logo      Logo
		wantName  string
		wantWidth float64
	}{
		{logo: Logo{Path: "public/logo.png"}, wantName: "public/logo.png", wantWidth: DefaultLogoWidth},
		{logo: Logo{Data: []byte{1}, Width: 1.5}, wantName: "logo", wantWidth: 1.5},
	}

	for _, tt := range tests {
		if got := tt.logo.name(); got != tt.wantName {
			t.Errorf("name() = %q, want %q", got, tt.wantName)
		}
		if got := tt.logo.width(); got != tt.wantWidth {
			t.Errorf("width() = %v, want %v", got, tt.wantWidth)
		}
	}
}
