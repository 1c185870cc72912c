package pipeline

import (
	"bytes"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	east "github.com/yuin/goldmark/extension/ast"
	"github.com/yuin/goldmark/text"

	"github.com/alnah/go-md2docx/internal/mdblocks"
)

// BlockSource turns preprocessed Markdown into document blocks.
type BlockSource interface {
	Blocks(markdown string) []mdblocks.Block
}

// LineBlockSource is the line-oriented scanner from mdblocks.
type LineBlockSource struct{}

// Blocks implements BlockSource.
func (LineBlockSource) Blocks(markdown string) []mdblocks.Block {
	return mdblocks.ParseString(markdown)
}

// GoldmarkBlockSource maps a goldmark (GFM) syntax tree onto the same block
// model as LineBlockSource. It applies the same content start and table of
// contents rules, but follows CommonMark for everything else: paragraphs span
// soft line breaks, lists nest to any depth, and inline markup is reduced to
// its text.
type GoldmarkBlockSource struct {
	md goldmark.Markdown
}

// NewGoldmarkBlockSource creates a GoldmarkBlockSource with GFM tables.
func NewGoldmarkBlockSource() *GoldmarkBlockSource {
	return &GoldmarkBlockSource{
		md: goldmark.New(goldmark.WithExtensions(extension.GFM)),
	}
}

// Blocks implements BlockSource.
func (g *GoldmarkBlockSource) Blocks(markdown string) []mdblocks.Block {
	src := []byte(markdown)
	doc := g.md.Parser().Parse(text.NewReader(src))

	w := &astWalker{src: src}
	for n := w.contentStart(doc); n != nil; n = n.NextSibling() {
		w.block(n)
	}
	return w.blocks
}

type astWalker struct {
	src    []byte
	blocks []mdblocks.Block
}

// contentStart returns the first level-2 heading that does not name a table
// of contents, or the first child when there is none.
func (w *astWalker) contentStart(doc ast.Node) ast.Node {
	for n := doc.FirstChild(); n != nil; n = n.NextSibling() {
		h, ok := n.(*ast.Heading)
		if !ok || h.Level != 2 {
			continue
		}
		if mdblocks.IsTOCHeading(w.inline(h)) {
			continue
		}
		return n
	}
	return doc.FirstChild()
}

func (w *astWalker) emit(b mdblocks.Block) {
	w.blocks = append(w.blocks, b)
}

func (w *astWalker) block(n ast.Node) {
	switch n := n.(type) {
	case *ast.Heading:
		level := min(n.Level, 3)
		if t := w.inline(n); t != "" {
			w.emit(mdblocks.Block{Kind: mdblocks.KindHeading, Level: level, Text: t})
		}

	case *ast.Paragraph, *ast.TextBlock:
		w.paragraph(n)

	case *ast.FencedCodeBlock:
		w.emit(mdblocks.Block{
			Kind: mdblocks.KindCode,
			Code: w.lines(n),
			Lang: string(n.Language(w.src)),
		})

	case *ast.CodeBlock:
		w.emit(mdblocks.Block{Kind: mdblocks.KindCode, Code: w.lines(n)})

	case *ast.List:
		w.list(n, 0)

	case *ast.Blockquote:
		for c := n.FirstChild(); c != nil; c = c.NextSibling() {
			w.block(c)
		}

	case *east.Table:
		w.table(n)

	default:
		// thematic breaks, raw HTML blocks
	}
}

func (w *astWalker) paragraph(n ast.Node) {
	t := w.inline(n)
	if t == "" {
		return
	}
	w.emit(mdblocks.Block{Kind: mdblocks.KindParagraph, Text: t, Bold: isStrongOnly(n)})
}

// list emits one bullet per item. Nested lists increase the level; other
// block content inside an item is emitted in order after the item's bullet.
func (w *astWalker) list(l *ast.List, level int) {
	for item := l.FirstChild(); item != nil; item = item.NextSibling() {
		first := true
		for c := item.FirstChild(); c != nil; c = c.NextSibling() {
			switch c := c.(type) {
			case *ast.List:
				w.list(c, level+1)
			case *ast.Paragraph, *ast.TextBlock:
				if first && !w.isTOCLink(c) {
					if t := w.inline(c); t != "" {
						w.emit(mdblocks.Block{Kind: mdblocks.KindBullet, Level: level, Text: t})
					}
				} else if !first {
					w.paragraph(c)
				}
			default:
				w.block(c)
			}
			first = false
		}
	}
}

// isTOCLink reports whether an item starts with a link to an in-page anchor.
func (w *astWalker) isTOCLink(n ast.Node) bool {
	link, ok := n.FirstChild().(*ast.Link)
	return ok && bytes.HasPrefix(link.Destination, []byte("#"))
}

func (w *astWalker) table(t *east.Table) {
	var headers []string
	var rows [][]string
	for r := t.FirstChild(); r != nil; r = r.NextSibling() {
		var cells []string
		for c := r.FirstChild(); c != nil; c = c.NextSibling() {
			cells = append(cells, w.inline(c))
		}
		if _, ok := r.(*east.TableHeader); ok {
			headers = cells
			continue
		}
		rows = append(rows, cells)
	}
	if len(headers) == 0 || len(rows) == 0 {
		return
	}
	w.emit(mdblocks.Block{Kind: mdblocks.KindTable, Headers: headers, Rows: rows})
}

func (w *astWalker) lines(n ast.Node) string {
	var sb strings.Builder
	segs := n.Lines()
	for i := 0; i < segs.Len(); i++ {
		seg := segs.At(i)
		sb.Write(seg.Value(w.src))
	}
	return strings.TrimSuffix(sb.String(), "\n")
}

// inline flattens the inline children of n to plain text.
func (w *astWalker) inline(n ast.Node) string {
	var sb strings.Builder
	w.writeInline(&sb, n)
	return strings.TrimSpace(sb.String())
}

func (w *astWalker) writeInline(sb *strings.Builder, n ast.Node) {
	for c := n.FirstChild(); c != nil; c = c.NextSibling() {
		switch c := c.(type) {
		case *ast.Text:
			sb.Write(c.Segment.Value(w.src))
			if c.SoftLineBreak() || c.HardLineBreak() {
				sb.WriteByte(' ')
			}
		case *ast.String:
			sb.Write(c.Value)
		case *ast.AutoLink:
			sb.Write(c.URL(w.src))
		case *ast.RawHTML:
			// dropped
		default:
			w.writeInline(sb, c)
		}
	}
}

// isStrongOnly reports whether a paragraph consists of a single strong span.
func isStrongOnly(n ast.Node) bool {
	e, ok := n.FirstChild().(*ast.Emphasis)
	return ok && e.Level == 2 && e.NextSibling() == nil
}
