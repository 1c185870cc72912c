// Package hints builds the short "hint:" suffixes appended to fatal CLI
// errors. Every hint renders as "\n  hint: <text>" or as "" when there is
// nothing useful to add.
package hints

import (
	"path/filepath"
	"strings"
)

const prefix = "\n  hint: "

// render joins the non-empty parts into one hint line.
func render(parts ...string) string {
	kept := parts[:0:0]
	for _, p := range parts {
		if p != "" {
			kept = append(kept, p)
		}
	}
	if len(kept) == 0 {
		return ""
	}
	return prefix + strings.Join(kept, "; ")
}

// Runtime is what the browser hint needs to know about the process
// surroundings. Getenv is usually os.Getenv.
type Runtime struct {
	Getenv      func(string) string
	InContainer bool
}

var ciVars = []string{"CI", "GITHUB_ACTIONS", "GITLAB_CI", "JENKINS_URL"}

func (rt Runtime) inCI() bool {
	for _, v := range ciVars {
		if rt.Getenv(v) != "" {
			return true
		}
	}
	return false
}

// ForBrowserConnect suggests the rod variables that usually fix a failed
// Chrome launch for the PDF preview.
func ForBrowserConnect(rt Runtime) string {
	if rt.Getenv == nil {
		rt.Getenv = func(string) string { return "" }
	}

	var sandbox, bin string
	if (rt.InContainer || rt.inCI()) && rt.Getenv("ROD_NO_SANDBOX") != "1" {
		sandbox = "set ROD_NO_SANDBOX=1 for Docker/CI"
	}
	if rt.Getenv("ROD_BROWSER_BIN") == "" {
		bin = "set ROD_BROWSER_BIN to use custom Chrome"
	}
	return render(sandbox, bin)
}

func ForTimeout() string {
	return render("for large documents, use --timeout flag")
}

// ForConfigNotFound points at --config and, when one of the searched paths
// is in the user config directory, at that file.
func ForConfigNotFound(searched []string) string {
	text := "use --config /path/to/file.yaml"
	for _, p := range searched {
		if strings.Contains(filepath.ToSlash(p), ".config/go-md2docx") {
			text += " or create " + p
			break
		}
	}
	return render(text)
}

func ForOutputDirectory() string {
	return render("check parent directory exists and is writable")
}

// ForThemeNotFound lists the built-in themes.
func ForThemeNotFound(available []string) string {
	if len(available) == 0 {
		return ""
	}
	return render("available: " + strings.Join(available, ", "))
}

func ForLogo() string {
	return render("logos are optional; fix logos[].path in the config or remove the entry (PNG, JPG, GIF)")
}

// ForSourceNotFound reminds that sources resolve against the docs directory.
func ForSourceNotFound(docsDir string) string {
	if docsDir == "" {
		return render("source paths are relative to docsDir in the config")
	}
	return render("source paths are relative to " + docsDir + "; set docsDir or --docs-dir")
}
