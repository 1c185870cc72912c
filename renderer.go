package md2docx

import (
	"strconv"
	"strings"

	"github.com/alnah/go-md2docx/internal/docx"
	"github.com/alnah/go-md2docx/internal/logging"
	"github.com/alnah/go-md2docx/internal/mdblocks"
	"github.com/alnah/go-md2docx/internal/pipeline"
)

// Fixed layout values in points.
const (
	tocPlaceholderSize  = 10
	headerCellSpacing   = 3
	dataCellSpacing     = 2
	codeSpacing         = 6
	titleSpacingAfter   = 8
	subtitleSpaceAfter  = 24
	tocPlaceholderText  = "[Right-click → Update Field to generate Table of Contents]"
	pageLabel           = "Page "
	footerPageSeparator = "  |  "
	infoSeparator       = "  |  "
)

// renderer writes blocks into a DOCX document using a theme. It keeps
// per-document state and is not reused.
type renderer struct {
	doc   *docx.Document
	theme *Theme
	// hl is nil when highlighting is disabled.
	hl    *pipeline.Highlighter
	stats Stats
}

func newRenderer(theme *Theme, hl *pipeline.Highlighter) *renderer {
	return &renderer{
		doc:   docx.New(theme.settings()),
		theme: theme,
		hl:    hl,
	}
}

// logos embeds each logo in a centred paragraph. Logos that cannot be read
// or decoded are skipped and returned by name.
func (r *renderer) logos(logos []Logo, load func(Logo) ([]byte, error), logger logging.Logger) []string {
	var missing []string
	var runs []docx.Run
	for _, l := range logos {
		data, err := load(l)
		if err == nil {
			var img docx.Image
			img, err = r.doc.AddImage(l.name(), data)
			if err == nil {
				if len(runs) > 0 {
					runs = append(runs, docx.Run{Text: "     "})
				}
				runs = append(runs, docx.Run{Drawing: img.ScaleToWidth(docx.InchToEMU(l.width()))})
				continue
			}
		}
		logger.Warn("logo skipped", "logo", l.name(), "error", err)
		missing = append(missing, l.name())
	}
	if len(runs) > 0 {
		r.doc.AddParagraph(docx.Paragraph{Align: docx.AlignCenter, Runs: runs})
		r.doc.AddParagraph(docx.Paragraph{})
	}
	return missing
}

// titleBlock writes the title, subtitle, and a metadata line.
func (r *renderer) titleBlock(meta Meta) {
	if meta.Title != "" {
		r.doc.AddParagraph(docx.Paragraph{
			Style:   docx.StyleTitle,
			Align:   docx.AlignCenter,
			Spacing: &docx.Spacing{After: titleSpacingAfter},
			Runs:    []docx.Run{{Text: meta.Title, Bold: true}},
		})
	}
	if meta.Subtitle != "" {
		r.doc.AddParagraph(docx.Paragraph{
			Style:   docx.StyleSubtitle,
			Align:   docx.AlignCenter,
			Spacing: &docx.Spacing{After: subtitleSpaceAfter},
			Runs:    []docx.Run{{Text: meta.Subtitle}},
		})
	}

	var info []string
	if meta.Version != "" {
		info = append(info, "Version "+meta.Version)
	}
	if meta.Date != "" {
		info = append(info, meta.Date)
	}
	if meta.Status != "" {
		info = append(info, meta.Status)
	}
	if len(info) > 0 {
		r.doc.AddParagraph(docx.Paragraph{
			Align: docx.AlignCenter,
			Runs:  []docx.Run{{Text: strings.Join(info, infoSeparator), Color: r.theme.Colors.Subtitle}},
		})
	}
	if meta.Author != "" {
		r.doc.AddParagraph(docx.Paragraph{
			Align: docx.AlignCenter,
			Runs:  []docx.Run{{Text: meta.Author, Italic: true, Color: r.theme.Colors.Subtitle}},
		})
	}
}

// toc writes the table of contents heading and field.
func (r *renderer) toc(t *TOC) {
	r.doc.AddParagraph(docx.Paragraph{
		Style: docx.StyleTOCHeading,
		Runs:  []docx.Run{{Text: t.title()}},
	})
	r.doc.AddTOC(docx.TOCField{
		Levels: "1-" + strconv.Itoa(t.depth()),
		Placeholder: docx.Run{
			Text:   tocPlaceholderText,
			Italic: true,
			Color:  r.theme.Colors.Placeholder,
			Size:   tocPlaceholderSize,
		},
	})
}

// headerFooter sets the page header and footer. The footer always carries
// a PAGE field.
func (r *renderer) headerFooter(headerText, footerText string) {
	if headerText != "" {
		r.doc.SetHeader(docx.Part{Paragraphs: []docx.Paragraph{{
			Style: docx.StyleHeader,
			Align: docx.AlignRight,
			Runs: []docx.Run{{
				Text:   headerText,
				Italic: true,
				Size:   r.theme.HeaderFontSize,
				Color:  r.theme.Colors.Header,
			}},
		}}})
	}

	run := func(text string) docx.Run {
		return docx.Run{Text: text, Size: r.theme.HeaderFontSize, Color: r.theme.Colors.Footer}
	}
	var runs []docx.Run
	if footerText != "" {
		runs = append(runs, run(footerText+footerPageSeparator))
	}
	page := run("1")
	page.Field = "PAGE"
	runs = append(runs, run(pageLabel), page)
	r.doc.SetFooter(docx.Part{Paragraphs: []docx.Paragraph{{
		Style: docx.StyleFooter,
		Align: docx.AlignCenter,
		Runs:  runs,
	}}})
}

// block renders one scanned block.
func (r *renderer) block(b mdblocks.Block) {
	switch b.Kind {
	case mdblocks.KindHeading:
		r.doc.AddHeading(b.Level, docx.Run{Text: b.Text})
		r.stats.Headings++
	case mdblocks.KindParagraph:
		r.doc.AddParagraph(docx.Paragraph{Runs: []docx.Run{{Text: b.Text, Bold: b.Bold}}})
		r.stats.Paragraphs++
	case mdblocks.KindBullet:
		r.doc.AddBullet(b.Level, docx.Run{Text: b.Text})
		r.stats.Bullets++
	case mdblocks.KindTable:
		r.doc.AddTable(r.table(b.Headers, b.Rows))
		r.stats.Tables++
	case mdblocks.KindCode:
		r.doc.AddParagraph(docx.Paragraph{
			Style:   docx.StyleCode,
			Spacing: &docx.Spacing{Before: codeSpacing, After: codeSpacing},
			Runs:    r.codeRuns(b.Lang, b.Code),
		})
		r.stats.CodeBlocks++
	}
}

// table builds a striped table with a shaded header row. Data rows are
// truncated or padded to the header width.
func (r *renderer) table(headers []string, rows [][]string) docx.Table {
	c := r.theme.Colors
	size := r.theme.TableFontSize

	head := make([]docx.Cell, len(headers))
	for i, h := range headers {
		head[i] = docx.Cell{
			Fill: c.TableHeaderFill,
			Paragraph: docx.Paragraph{
				Align:   docx.AlignLeft,
				Spacing: &docx.Spacing{Before: headerCellSpacing, After: headerCellSpacing},
				Runs:    []docx.Run{{Text: h, Bold: true, Color: c.TableHeaderText, Size: size}},
			},
		}
	}

	out := make([][]docx.Cell, 0, len(rows)+1)
	out = append(out, head)
	for ri, row := range rows {
		fill := ""
		if ri%2 == 1 {
			fill = c.TableStripe
		}
		cells := make([]docx.Cell, len(headers))
		for ci := range cells {
			text := ""
			if ci < len(row) {
				text = row[ci]
			}
			cells[ci] = docx.Cell{
				Fill: fill,
				Paragraph: docx.Paragraph{
					Spacing: &docx.Spacing{Before: dataCellSpacing, After: dataCellSpacing},
					Runs:    []docx.Run{{Text: text, Size: size}},
				},
			}
		}
		out = append(out, cells)
	}

	return docx.Table{Rows: out, HeaderRows: 1, Align: docx.AlignCenter}
}

// codeRuns returns the runs of a code block, coloured by chroma when
// highlighting is enabled.
func (r *renderer) codeRuns(lang, code string) []docx.Run {
	if r.hl == nil {
		return []docx.Run{{Text: code, Color: r.theme.Colors.Code}}
	}
	spans := r.hl.Tokens(lang, code)
	runs := make([]docx.Run, len(spans))
	for i, s := range spans {
		color := s.Colour
		if color == "" {
			color = r.theme.Colors.Code
		}
		runs[i] = docx.Run{Text: s.Text, Color: color, Bold: s.Bold, Italic: s.Italic}
	}
	return runs
}
