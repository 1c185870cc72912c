package pipeline

import (
	"net/url"
	"path/filepath"
	"strings"

	"golang.org/x/net/html"
)

// ResolveImagePaths rewrites relative <img src> values in an HTML document
// to file:// URLs under baseDir, so headless Chrome can load them when the
// preview is printed from a temporary file. URLs, anchors, absolute paths,
// and paths escaping baseDir are left untouched. An empty baseDir returns
// the input unchanged.
func ResolveImagePaths(htmlContent, baseDir string) (string, error) {
	if baseDir == "" {
		return htmlContent, nil
	}

	absBase, err := filepath.Abs(baseDir)
	if err != nil {
		return "", err
	}

	doc, err := html.Parse(strings.NewReader(htmlContent))
	if err != nil {
		return "", err
	}

	var walk func(n *html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode && n.Data == "img" {
			for i, attr := range n.Attr {
				if attr.Key == "src" {
					if resolved, ok := resolveImageSrc(attr.Val, absBase); ok {
						n.Attr[i].Val = resolved
					}
				}
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(doc)

	var buf strings.Builder
	if err := html.Render(&buf, doc); err != nil {
		return "", err
	}
	return buf.String(), nil
}

func resolveImageSrc(src, base string) (string, bool) {
	if !isRelativePath(src) {
		return "", false
	}
	abs := filepath.Join(base, filepath.FromSlash(src))
	if !isPathUnderDir(abs, base) {
		return "", false
	}
	u := url.URL{Scheme: "file", Path: filepath.ToSlash(abs)}
	return u.String(), true
}

func isRelativePath(path string) bool {
	if path == "" || strings.HasPrefix(path, "#") || strings.HasPrefix(path, "//") {
		return false
	}
	if u, err := url.Parse(path); err == nil && u.Scheme != "" {
		return false
	}
	return !filepath.IsAbs(path)
}

// isPathUnderDir checks that absPath is dir itself or below it.
func isPathUnderDir(absPath, dir string) bool {
	cleanDir := filepath.Clean(dir)
	if !strings.HasSuffix(cleanDir, string(filepath.Separator)) {
		cleanDir += string(filepath.Separator)
	}
	return strings.HasPrefix(filepath.Clean(absPath)+string(filepath.Separator), cleanDir)
}
