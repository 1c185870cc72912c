package hints

import (
	"strings"
	"testing"
)

// envMap is a Getenv backed by a map.
func envMap(m map[string]string) func(string) string {
	return func(k string) string { return m[k] }
}

func TestForBrowserConnect(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name        string
		env         map[string]string
		inContainer bool
		want        []string
		wantNot     []string
	}{
		{
			name: "ci suggests sandbox and binary",
			env:  map[string]string{"CI": "true"},
			want: []string{"ROD_NO_SANDBOX", "ROD_BROWSER_BIN"},
		},
		{
			name:    "github actions counts as ci",
			env:     map[string]string{"GITHUB_ACTIONS": "true", "ROD_BROWSER_BIN": "/usr/bin/chrome"},
			want:    []string{"ROD_NO_SANDBOX"},
			wantNot: []string{"ROD_BROWSER_BIN"},
		},
		{
			name:        "container suggests sandbox",
			inContainer: true,
			want:        []string{"ROD_NO_SANDBOX"},
		},
		{
			name:        "sandbox already disabled",
			env:         map[string]string{"ROD_NO_SANDBOX": "1"},
			inContainer: true,
			want:        []string{"ROD_BROWSER_BIN"},
			wantNot:     []string{"ROD_NO_SANDBOX"},
		},
		{
			name:    "desktop with binary set",
			env:     map[string]string{"ROD_BROWSER_BIN": "/usr/bin/chrome"},
			wantNot: []string{"ROD_NO_SANDBOX", "ROD_BROWSER_BIN"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			hint := ForBrowserConnect(Runtime{Getenv: envMap(tt.env), InContainer: tt.inContainer})
			for _, w := range tt.want {
				if !strings.Contains(hint, w) {
					t.Errorf("hint %q should mention %s", hint, w)
				}
			}
			for _, w := range tt.wantNot {
				if strings.Contains(hint, w) {
					t.Errorf("hint %q should not mention %s", hint, w)
				}
			}
		})
	}
}

func TestForBrowserConnect_FullyConfigured(t *testing.T) {
	t.Parallel()

	hint := ForBrowserConnect(Runtime{
		Getenv:      envMap(map[string]string{"CI": "1", "ROD_NO_SANDBOX": "1", "ROD_BROWSER_BIN": "/bin/chrome"}),
		InContainer: true,
	})
	if hint != "" {
		t.Errorf("ForBrowserConnect() = %q, want empty", hint)
	}
}

func TestForBrowserConnect_NilGetenv(t *testing.T) {
	t.Parallel()

	if hint := ForBrowserConnect(Runtime{}); !strings.Contains(hint, "ROD_BROWSER_BIN") {
		t.Errorf("ForBrowserConnect(Runtime{}) = %q", hint)
	}
}

func TestForConfigNotFound(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		searched []string
		want     string
	}{
		{name: "nothing searched", searched: nil, want: "\n  hint: use --config /path/to/file.yaml"},
		{name: "local only", searched: []string{"./docs.yaml"}, want: "\n  hint: use --config /path/to/file.yaml"},
		{
			name:     "user config dir",
			searched: []string{"./docs.yaml", "/home/me/.config/go-md2docx/docs.yaml"},
			want:     "\n  hint: use --config /path/to/file.yaml or create /home/me/.config/go-md2docx/docs.yaml",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := ForConfigNotFound(tt.searched); got != tt.want {
				t.Errorf("ForConfigNotFound() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestForThemeNotFound(t *testing.T) {
	t.Parallel()

	if got := ForThemeNotFound(nil); got != "" {
		t.Errorf("ForThemeNotFound(nil) = %q, want empty", got)
	}
	if got, want := ForThemeNotFound([]string{"aspr", "default"}), "\n  hint: available: aspr, default"; got != want {
		t.Errorf("ForThemeNotFound() = %q, want %q", got, want)
	}
}

func TestForSourceNotFound(t *testing.T) {
	t.Parallel()

	if got := ForSourceNotFound(""); !strings.Contains(got, "docsDir in the config") {
		t.Errorf("ForSourceNotFound(\"\") = %q", got)
	}
	if got := ForSourceNotFound("/srv/docs"); !strings.Contains(got, "relative to /srv/docs") {
		t.Errorf("ForSourceNotFound() = %q", got)
	}
}

func TestStaticHints(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		hint    string
		mention string
	}{
		{name: "timeout", hint: ForTimeout(), mention: "--timeout"},
		{name: "output directory", hint: ForOutputDirectory(), mention: "parent directory"},
		{name: "logo", hint: ForLogo(), mention: "logos[].path"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if !strings.HasPrefix(tt.hint, prefix) {
				t.Errorf("hint %q lacks prefix", tt.hint)
			}
			if !strings.Contains(tt.hint, tt.mention) {
				t.Errorf("hint %q should mention %q", tt.hint, tt.mention)
			}
		})
	}
}

func TestRender(t *testing.T) {
	t.Parallel()

	if got := render(); got != "" {
		t.Errorf("render() = %q, want empty", got)
	}
	if got := render("", ""); got != "" {
		t.Errorf("render(empty parts) = %q, want empty", got)
	}
	if got, want := render("a", "", "b"), "\n  hint: a; b"; got != want {
		t.Errorf("render() = %q, want %q", got, want)
	}
}
