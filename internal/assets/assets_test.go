package assets

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"testing/fstest"

	"github.com/google/go-cmp/cmp"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}

func TestEmbeddedLoader(t *testing.T) {
	t.Parallel()

	loader := NewEmbeddedLoader()

	tests := []struct {
		name    string
		load    func(t *testing.T) error
		wantErr error
	}{
		{
			name: "default style",
			load: func(t *testing.T) error {
				css, err := loader.LoadStyle(DefaultStyleName)
				if err == nil && !strings.Contains(css, "table") {
					t.Error("default style should style tables")
				}
				return err
			},
		},
		{
			name: "aspr theme",
			load: func(t *testing.T) error {
				y, err := loader.LoadTheme("aspr")
				if err == nil && !strings.Contains(string(y), "062E61") {
					t.Error("aspr theme should carry the brand palette")
				}
				return err
			},
		},
		{
			name:    "missing style",
			load:    func(t *testing.T) error { _, err := loader.LoadStyle("nope"); return err },
			wantErr: ErrStyleNotFound,
		},
		{
			name:    "missing theme",
			load:    func(t *testing.T) error { _, err := loader.LoadTheme("nope"); return err },
			wantErr: ErrThemeNotFound,
		},
		{
			name:    "traversal rejected",
			load:    func(t *testing.T) error { _, err := loader.LoadTheme("../themes/aspr"); return err },
			wantErr: ErrInvalidAssetName,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			err := tt.load(t)
			if tt.wantErr == nil && err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if tt.wantErr != nil && !errors.Is(err, tt.wantErr) {
				t.Errorf("error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestThemeNames(t *testing.T) {
	t.Parallel()

	if diff := cmp.Diff([]string{"aspr", "default"}, ThemeNames()); diff != "" {
		t.Errorf("ThemeNames() mismatch (-want +got):\n%s", diff)
	}
}

func TestEmbeddedLoader_ThemeNamesFromFS(t *testing.T) {
	t.Parallel()

	loader := &EmbeddedLoader{fsys: fstest.MapFS{
		"themes/zeta.yaml":  {Data: []byte("name: zeta\n")},
		"themes/alpha.yaml": {Data: []byte("name: alpha\n")},
		"themes/notes.txt":  {Data: []byte("ignored")},
		"styles/print.css":  {Data: []byte("body{}")},
	}}

	if diff := cmp.Diff([]string{"alpha", "zeta"}, loader.ThemeNames()); diff != "" {
		t.Errorf("ThemeNames() mismatch (-want +got):\n%s", diff)
	}
	if css, err := loader.LoadStyle("print"); err != nil || css != "body{}" {
		t.Errorf("LoadStyle(print) = %q, %v", css, err)
	}
}

func TestNewFilesystemLoader(t *testing.T) {
	t.Parallel()

	t.Run("valid directory", func(t *testing.T) {
		t.Parallel()

		if _, err := NewFilesystemLoader(t.TempDir()); err != nil {
			t.Fatalf("NewFilesystemLoader() error = %v", err)
		}
	})

	t.Run("empty path returns error", func(t *testing.T) {
		t.Parallel()

		_, err := NewFilesystemLoader("")
		if !errors.Is(err, ErrInvalidBasePath) {
			t.Errorf("NewFilesystemLoader(\"\") error = %v, want ErrInvalidBasePath", err)
		}
	})

	t.Run("nonexistent directory returns error", func(t *testing.T) {
		t.Parallel()

		_, err := NewFilesystemLoader("/nonexistent/path/abc123xyz")
		if !errors.Is(err, ErrInvalidBasePath) {
			t.Errorf("NewFilesystemLoader() error = %v, want ErrInvalidBasePath", err)
		}
	})

	t.Run("file instead of directory returns error", func(t *testing.T) {
		t.Parallel()

		filePath := filepath.Join(t.TempDir(), "file.txt")
		writeFile(t, filePath, "test")

		_, err := NewFilesystemLoader(filePath)
		if !errors.Is(err, ErrInvalidBasePath) {
			t.Errorf("NewFilesystemLoader() error = %v, want ErrInvalidBasePath", err)
		}
	})
}

func TestFilesystemLoader_Load(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "themes", "brand.yaml"), "name: brand\n")
	writeFile(t, filepath.Join(dir, "styles", "brand.css"), "body{}")

	loader, err := NewFilesystemLoader(dir)
	if err != nil {
		t.Fatalf("NewFilesystemLoader() error = %v", err)
	}

	theme, err := loader.LoadTheme("brand")
	if err != nil || string(theme) != "name: brand\n" {
		t.Errorf("LoadTheme() = %q, %v", theme, err)
	}
	css, err := loader.LoadStyle("brand")
	if err != nil || css != "body{}" {
		t.Errorf("LoadStyle() = %q, %v", css, err)
	}
	if _, err := loader.LoadTheme("other"); !errors.Is(err, ErrThemeNotFound) {
		t.Errorf("LoadTheme(other) error = %v, want ErrThemeNotFound", err)
	}
}

func TestFilesystemLoader_SymlinkEscape(t *testing.T) {
	t.Parallel()

	outside := t.TempDir()
	writeFile(t, filepath.Join(outside, "secret.yaml"), "name: secret\n")

	dir := t.TempDir()
	if err := os.MkdirAll(filepath.Join(dir, "themes"), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.Symlink(filepath.Join(outside, "secret.yaml"), filepath.Join(dir, "themes", "leak.yaml")); err != nil {
		t.Skipf("symlinks unsupported: %v", err)
	}

	loader, err := NewFilesystemLoader(dir)
	if err != nil {
		t.Fatalf("NewFilesystemLoader() error = %v", err)
	}
	if _, err := loader.LoadTheme("leak"); !errors.Is(err, ErrPathTraversal) {
		t.Errorf("LoadTheme() error = %v, want ErrPathTraversal", err)
	}
}

func TestAssetResolver(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "themes", "aspr.yaml"), "name: custom-aspr\n")

	resolver, err := NewAssetResolver(dir)
	if err != nil {
		t.Fatalf("NewAssetResolver() error = %v", err)
	}
	if !resolver.HasCustomLoader() {
		t.Fatal("expected custom loader")
	}

	t.Run("custom overrides embedded", func(t *testing.T) {
		t.Parallel()

		got, err := resolver.LoadTheme("aspr")
		if err != nil {
			t.Fatalf("LoadTheme() error = %v", err)
		}
		if string(got) != "name: custom-aspr\n" {
			t.Errorf("LoadTheme() = %q, want custom content", got)
		}
	})

	t.Run("falls back to embedded", func(t *testing.T) {
		t.Parallel()

		got, err := resolver.LoadTheme("default")
		if err != nil {
			t.Fatalf("LoadTheme() error = %v", err)
		}
		if !strings.Contains(string(got), "name: default") {
			t.Errorf("LoadTheme() = %q, want embedded default", got)
		}
		if _, err := resolver.LoadStyle(DefaultStyleName); err != nil {
			t.Errorf("LoadStyle() error = %v", err)
		}
	})

	t.Run("invalid name does not fall back", func(t *testing.T) {
		t.Parallel()

		_, err := resolver.LoadTheme("a/b")
		if !errors.Is(err, ErrInvalidAssetName) {
			t.Errorf("LoadTheme() error = %v, want ErrInvalidAssetName", err)
		}
	})

	t.Run("missing everywhere", func(t *testing.T) {
		t.Parallel()

		_, err := resolver.LoadTheme("missing")
		if !errors.Is(err, ErrThemeNotFound) {
			t.Errorf("LoadTheme() error = %v, want ErrThemeNotFound", err)
		}
	})
}

func TestNewAssetResolver_Embedded(t *testing.T) {
	t.Parallel()

	resolver, err := NewAssetResolver("")
	if err != nil {
		t.Fatalf("NewAssetResolver(\"\") error = %v", err)
	}
	if resolver.HasCustomLoader() {
		t.Error("expected no custom loader for empty path")
	}
	if _, err := NewAssetResolver("/nonexistent/path/abc123xyz"); !errors.Is(err, ErrInvalidBasePath) {
		t.Errorf("NewAssetResolver() error = %v, want ErrInvalidBasePath", err)
	}
}

func TestValidateAssetName(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{name: "simple", input: "aspr"},
		{name: "dash", input: "my-theme"},
		{name: "empty", input: "", wantErr: true},
		{name: "slash", input: "a/b", wantErr: true},
		{name: "backslash", input: `a\b`, wantErr: true},
		{name: "dot", input: "a.yaml", wantErr: true},
		{name: "traversal", input: "..", wantErr: true},
		{name: "underscore and digits", input: "brand_v2"},
		{name: "space", input: "my theme", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			err := ValidateAssetName(tt.input)
			if tt.wantErr != (err != nil) {
				t.Errorf("ValidateAssetName(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if err != nil && !errors.Is(err, ErrInvalidAssetName) {
				t.Errorf("error should wrap ErrInvalidAssetName, got %v", err)
			}
		})
	}
}

func TestReadLogo(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	logo := filepath.Join(dir, "logo.png")
	writeFile(t, logo, "png-bytes")

	data, err := ReadLogo(logo)
	if err != nil || string(data) != "png-bytes" {
		t.Errorf("ReadLogo() = %q, %v", data, err)
	}

	if _, err := ReadLogo(filepath.Join(dir, "missing.png")); !errors.Is(err, ErrLogoNotFound) {
		t.Errorf("ReadLogo(missing) error = %v, want ErrLogoNotFound", err)
	}

	got := CheckLogos([]string{logo, filepath.Join(dir, "missing.png"), dir})
	want := []LogoStatus{
		{Path: logo, Found: true},
		{Path: filepath.Join(dir, "missing.png"), Found: false},
		{Path: dir, Found: false},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("CheckLogos() mismatch (-want +got):\n%s", diff)
	}
}
