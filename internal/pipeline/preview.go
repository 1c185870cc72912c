package pipeline

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"html/template"
	"strings"

	chromahtml "github.com/alecthomas/chroma/v2/formatters/html"
	"github.com/yuin/goldmark"
	highlighting "github.com/yuin/goldmark-highlighting/v2"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	gmhtml "github.com/yuin/goldmark/renderer/html"
)

var ErrHTMLConversion = errors.New("HTML conversion failed")

// Page is the input of one preview render.
type Page struct {
	Title    string
	Markdown string

	// CSS is embedded in a <style> element; empty omits it.
	CSS string

	// BaseDir, when set, anchors relative image sources (see
	// ResolveImagePaths).
	BaseDir string
}

// HTMLConverter renders a standalone preview page.
type HTMLConverter interface {
	ToHTML(ctx context.Context, page Page) (string, error)
}

var pageTemplate = template.Must(template.New("page").Parse(`<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>{{.Title}}</title>
{{- if .CSS}}
<style>{{.CSS}}</style>
{{- end}}
</head>
<body>
{{.Body}}
</body>
</html>
`))

type pageData struct {
	Title string
	CSS   template.CSS
	Body  template.HTML
}

// GoldmarkConverter renders previews with GFM, footnotes, and chroma
// highlighting using inline styles so the page needs no extra assets.
// Raw HTML in the Markdown is escaped.
type GoldmarkConverter struct {
	md goldmark.Markdown
}

func NewGoldmarkConverter(highlightStyle string) *GoldmarkConverter {
	if highlightStyle == "" {
		highlightStyle = DefaultHighlightStyle
	}
	return &GoldmarkConverter{md: goldmark.New(
		goldmark.WithExtensions(
			extension.GFM,
			extension.Footnote,
			highlighting.NewHighlighting(
				highlighting.WithStyle(highlightStyle),
				highlighting.WithFormatOptions(chromahtml.TabWidth(4)),
			),
		),
		goldmark.WithParserOptions(parser.WithAutoHeadingID()),
		goldmark.WithRendererOptions(gmhtml.WithXHTML()),
	)}
}

// ToHTML renders page. Goldmark cannot be interrupted, so the render runs
// on its own goroutine and ToHTML returns as soon as ctx is done.
func (c *GoldmarkConverter) ToHTML(ctx context.Context, page Page) (string, error) {
	return withContext(ctx, func() (string, error) { return c.render(page) })
}

func (c *GoldmarkConverter) render(page Page) (string, error) {
	var body bytes.Buffer
	if err := c.md.Convert([]byte(page.Markdown), &body); err != nil {
		return "", fmt.Errorf("%w: %v", ErrHTMLConversion, err)
	}

	var out strings.Builder
	err := pageTemplate.Execute(&out, pageData{
		Title: page.Title,
		CSS:   template.CSS(escapeStyleClose(page.CSS)), // #nosec G203 -- theme stylesheet
		Body:  template.HTML(body.String()),             // #nosec G203 -- goldmark output, raw HTML disabled
	})
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrHTMLConversion, err)
	}

	if page.BaseDir == "" {
		return out.String(), nil
	}
	resolved, err := ResolveImagePaths(out.String(), page.BaseDir)
	if err != nil {
		return "", fmt.Errorf("%w: resolving image paths: %v", ErrHTMLConversion, err)
	}
	return resolved, nil
}

// escapeStyleClose keeps a stylesheet from terminating its <style> element.
func escapeStyleClose(css string) string {
	return strings.ReplaceAll(css, "</", `<\/`)
}

// withContext runs fn in a goroutine and returns its result, or ctx.Err()
// if ctx is done first.
func withContext[T any](ctx context.Context, fn func() (T, error)) (T, error) {
	var zero T
	if err := ctx.Err(); err != nil {
		return zero, err
	}

	type result struct {
		v   T
		err error
	}
	done := make(chan result, 1)
	go func() {
		v, err := fn()
		done <- result{v, err}
	}()

	select {
	case <-ctx.Done():
		return zero, ctx.Err()
	case r := <-done:
		return r.v, r.err
	}
}
