package md2docx

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/alnah/go-md2docx/internal/assets"
	"github.com/alnah/go-md2docx/internal/dateutil"
	"github.com/alnah/go-md2docx/internal/docx"
	"github.com/alnah/go-md2docx/internal/logging"
	"github.com/alnah/go-md2docx/internal/pipeline"
)

var (
	_ pipeline.BlockSource   = pipeline.LineBlockSource{}
	_ pipeline.BlockSource   = (*pipeline.GoldmarkBlockSource)(nil)
	_ pipeline.HTMLConverter = (*pipeline.GoldmarkConverter)(nil)
)

// Converter turns Markdown into DOCX (and optionally HTML and PDF).
// Create with NewConverter, use Convert for conversion, and Close when done.
// A Converter is not safe for concurrent use.
type Converter struct {
	cfg           converterConfig
	assetLoader   assets.AssetLoader
	theme         *Theme
	source        pipeline.BlockSource
	highlighter   *pipeline.Highlighter
	htmlConverter pipeline.HTMLConverter
	previewCSS    string
	pdfConverter  pdfConverter
	logger        logging.Logger
	readLogo      func(Logo) ([]byte, error)
}

// NewConverter creates a Converter. Returns an error if the theme cannot be
// loaded, the asset path is invalid, or the parser is unknown.
func NewConverter(opts ...Option) (*Converter, error) {
	c := &Converter{
		cfg: converterConfig{
			timeout: defaultTimeout,
			parser:  ParserLine,
			now:     time.Now,
		},
		readLogo: readLogo,
	}

	for _, opt := range opts {
		opt(c)
	}

	c.logger = c.cfg.logger
	if c.logger == nil {
		c.logger = logging.NoOp()
	}

	resolver, err := assets.NewAssetResolver(c.cfg.assetPath)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidAssetPath, err)
	}
	c.assetLoader = resolver

	switch c.cfg.parser {
	case ParserLine, "":
		c.source = pipeline.LineBlockSource{}
	case ParserGoldmark:
		c.source = pipeline.NewGoldmarkBlockSource()
	default:
		return nil, fmt.Errorf("%w: %q (use %s or %s)", ErrInvalidParser, c.cfg.parser, ParserLine, ParserGoldmark)
	}

	if c.cfg.theme != nil {
		if err := c.cfg.theme.Validate(); err != nil {
			return nil, err
		}
		c.theme = c.cfg.theme
	} else {
		c.theme, err = loadTheme(c.assetLoader, c.cfg.themeName)
		if err != nil {
			return nil, err
		}
	}

	if !c.cfg.noHighlight {
		c.highlighter = pipeline.NewHighlighter(c.theme.highlightStyle())
	}
	c.htmlConverter = pipeline.NewGoldmarkConverter(c.theme.highlightStyle())

	if c.pdfConverter == nil {
		c.pdfConverter = newChromePDF(c.cfg.timeout, c.theme.settings())
	}

	c.logger.Debug("converter ready", "theme", c.theme.Name, "parser", string(c.cfg.parser), "highlight", c.highlighter != nil)
	return c, nil
}

// Theme returns the theme in use.
func (c *Converter) Theme() *Theme {
	return c.theme
}

// Convert runs the pipeline and returns the DOCX, plus HTML and PDF when
// requested. The context is checked between stages.
// Recovers from internal panics to prevent crashes from propagating to callers.
func (c *Converter) Convert(ctx context.Context, input Input) (result *ConvertResult, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("internal error: %v", r)
		}
	}()

	if err := input.Validate(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	content := pipeline.Preprocess(input.Markdown)
	// A leading "---" block that is not YAML is ordinary preamble; the
	// scanner skips it like any other text before the first section.
	fm, body, err := pipeline.ExtractFrontMatter([]byte(content))
	if err != nil {
		c.logger.Warn("front matter ignored", "error", err)
		fm, body = pipeline.FrontMatter{}, []byte(content)
	}

	meta, err := c.resolveMeta(input, fm)
	if err != nil {
		return nil, err
	}

	markdown := string(body)
	blocks := c.source.Blocks(markdown)
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	c.logger.Debug("blocks scanned", "count", len(blocks))

	r := newRenderer(c.theme, c.highlighter)
	missing := r.logos(input.Logos, c.readLogo, c.logger)
	r.titleBlock(meta)
	if input.TOC != nil {
		if r.doc.Len() > 0 {
			r.doc.AddPageBreak()
		}
		r.toc(input.TOC)
	}
	if r.doc.Len() > 0 {
		r.doc.AddPageBreak()
	}
	for _, b := range blocks {
		r.block(b)
	}

	headerText := input.HeaderText
	if headerText == "" {
		headerText = meta.Title
	}
	r.headerFooter(headerText, input.FooterText)
	r.doc.SetProperties(docx.CoreProperties{
		Title:       meta.Title,
		Subject:     meta.Subtitle,
		Creator:     meta.Author,
		Keywords:    meta.Status,
		Description: versionDescription(meta.Version),
		Created:     c.cfg.now(),
	})

	docxBytes, err := r.doc.Bytes()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDOCXRender, err)
	}

	res := &ConvertResult{
		DOCX:         docxBytes,
		Meta:         meta,
		Stats:        r.stats,
		MissingLogos: missing,
	}

	if !input.HTML && !input.PDF {
		return res, nil
	}

	htmlContent, err := c.preview(ctx, meta.Title, markdown, input.SourceDir)
	if err != nil {
		return nil, err
	}
	res.HTML = []byte(htmlContent)

	if !input.PDF {
		return res, nil
	}

	pdfBytes, err := c.pdfConverter.ToPDF(ctx, htmlContent)
	if err != nil {
		return nil, fmt.Errorf("converting to PDF: %w", err)
	}
	res.PDF = pdfBytes
	return res, nil
}

// Close releases resources (headless Chrome browser).
func (c *Converter) Close() error {
	if c.pdfConverter != nil {
		return c.pdfConverter.Close()
	}
	return nil
}

// resolveMeta merges input metadata with front matter, which wins, and
// resolves "auto" dates.
func (c *Converter) resolveMeta(input Input, fm pipeline.FrontMatter) (Meta, error) {
	meta := Meta{
		Title:    pick(fm.Title, input.Title),
		Subtitle: pick(fm.Subtitle, input.Subtitle),
		Version:  pick(fm.Version, input.Version),
		Date:     pick(fm.Date, input.Date),
		Status:   pick(fm.Status, input.Status),
		Author:   pick(fm.Author, input.Author),
	}

	date, err := dateutil.ResolveDate(meta.Date, c.cfg.now())
	if err != nil {
		return Meta{}, fmt.Errorf("%w: %v", ErrInvalidDate, err)
	}
	meta.Date = date
	return meta, nil
}

// preview renders the HTML preview page with the theme's CSS.
func (c *Converter) preview(ctx context.Context, title, markdown, sourceDir string) (string, error) {
	if c.previewCSS == "" {
		style := pick(c.cfg.style, c.theme.previewStyle())
		css, err := c.assetLoader.LoadStyle(style)
		if err != nil {
			c.logger.Warn("preview style unavailable", "style", style, "error", err)
		}
		c.previewCSS = css
	}

	return c.htmlConverter.ToHTML(ctx, pipeline.Page{
		Title:    title,
		Markdown: markdown,
		CSS:      c.previewCSS,
		BaseDir:  sourceDir,
	})
}

// readLogo returns inline logo data or reads the logo file.
func readLogo(l Logo) ([]byte, error) {
	if len(l.Data) > 0 {
		return l.Data, nil
	}
	return assets.ReadLogo(l.Path)
}

func pick(preferred, fallback string) string {
	if p := strings.TrimSpace(preferred); p != "" {
		return p
	}
	return fallback
}

func versionDescription(version string) string {
	if version == "" {
		return ""
	}
	return "Version " + version
}
