package pipeline

import "testing"

func TestNormalizeLineEndings(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input string
		want  string
	}{
		{name: "unix unchanged", input: "a\nb\n", want: "a\nb\n"},
		{name: "windows", input: "a\r\nb\r\n", want: "a\nb\n"},
		{name: "old mac", input: "a\rb\r", want: "a\nb\n"},
		{name: "mixed", input: "a\r\nb\rc\n", want: "a\nb\nc\n"},
		{name: "empty", input: "", want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := NormalizeLineEndings(tt.input); got != tt.want {
				t.Errorf("NormalizeLineEndings(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestPreprocess(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input string
		want  string
	}{
		{name: "drops byte order mark", input: "\ufeff## A\r\n", want: "## A\n"},
		{name: "keeps blank lines", input: "```\na\n\n\n\nb\n```", want: "```\na\n\n\n\nb\n```"},
		{name: "inner byte order mark kept", input: "a\ufeffb", want: "a\ufeffb"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := Preprocess(tt.input); got != tt.want {
				t.Errorf("Preprocess(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}
