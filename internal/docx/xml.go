package docx

import (
	"encoding/xml"
	"fmt"
	"strings"
)

// xmlWriter accumulates WordprocessingML markup. Drawing IDs are unique
// across every part rendered with the same writer.
type xmlWriter struct {
	sb        strings.Builder
	drawingID int
}

func (w *xmlWriter) String() string {
	return w.sb.String()
}

func (w *xmlWriter) raw(s string) {
	w.sb.WriteString(s)
}

func (w *xmlWriter) rawf(format string, args ...any) {
	fmt.Fprintf(&w.sb, format, args...)
}

// text writes s escaped for element content or attribute values.
func (w *xmlWriter) text(s string) {
	_ = xml.EscapeText(&w.sb, []byte(s))
}

func (w *xmlWriter) reset() string {
	s := w.sb.String()
	w.sb.Reset()
	return s
}

func (w *xmlWriter) paragraph(p Paragraph, listLevel int) {
	w.raw("<w:p>")
	w.paragraphProps(p, listLevel)
	for _, r := range p.Runs {
		w.run(r)
	}
	w.raw("</w:p>")
}

func (w *xmlWriter) paragraphProps(p Paragraph, listLevel int) {
	if p.Style == "" && !p.KeepNext && listLevel < 0 && p.Shading == "" && p.Spacing == nil && p.Align == AlignDefault {
		return
	}
	w.raw("<w:pPr>")
	if p.Style != "" {
		w.raw(`<w:pStyle w:val="`)
		w.text(p.Style)
		w.raw(`"/>`)
	}
	if p.KeepNext {
		w.raw("<w:keepNext/>")
	}
	if listLevel >= 0 {
		w.rawf(`<w:numPr><w:ilvl w:val="%d"/><w:numId w:val="%d"/></w:numPr>`, listLevel, bulletNumID)
	}
	if p.Shading != "" {
		w.shading(p.Shading)
	}
	if p.Spacing != nil {
		w.rawf(`<w:spacing w:before="%d" w:after="%d"/>`,
			pointsToTwips(p.Spacing.Before), pointsToTwips(p.Spacing.After))
	}
	if p.Align != AlignDefault {
		w.rawf(`<w:jc w:val="%s"/>`, p.Align)
	}
	w.raw("</w:pPr>")
}

func (w *xmlWriter) shading(fill string) {
	w.raw(`<w:shd w:val="clear" w:color="auto" w:fill="`)
	w.text(fill)
	w.raw(`"/>`)
}

func (w *xmlWriter) run(r Run) {
	if r.Field != "" {
		w.raw(`<w:fldSimple w:instr=" `)
		w.text(r.Field)
		w.raw(` ">`)
		field := r
		field.Field = ""
		w.run(field)
		w.raw("</w:fldSimple>")
		return
	}

	w.raw("<w:r>")
	w.runProps(r)
	if r.Drawing != nil {
		w.drawing(r.Drawing)
	} else {
		w.runText(r.Text)
	}
	w.raw("</w:r>")
}

func (w *xmlWriter) runProps(r Run) {
	if r.Font == "" && !r.Bold && !r.Italic && r.Color == "" && r.Size <= 0 {
		return
	}
	w.raw("<w:rPr>")
	if r.Font != "" {
		w.raw(`<w:rFonts w:ascii="`)
		w.text(r.Font)
		w.raw(`" w:hAnsi="`)
		w.text(r.Font)
		w.raw(`" w:cs="`)
		w.text(r.Font)
		w.raw(`"/>`)
	}
	if r.Bold {
		w.raw("<w:b/><w:bCs/>")
	}
	if r.Italic {
		w.raw("<w:i/><w:iCs/>")
	}
	if r.Color != "" {
		w.raw(`<w:color w:val="`)
		w.text(r.Color)
		w.raw(`"/>`)
	}
	if r.Size > 0 {
		hp := halfPoints(r.Size)
		w.rawf(`<w:sz w:val="%d"/><w:szCs w:val="%d"/>`, hp, hp)
	}
	w.raw("</w:rPr>")
}

// runText writes s as w:t elements separated by w:br and w:tab.
func (w *xmlWriter) runText(s string) {
	for i, line := range strings.Split(s, "\n") {
		if i > 0 {
			w.raw("<w:br/>")
		}
		for j, seg := range strings.Split(line, "\t") {
			if j > 0 {
				w.raw("<w:tab/>")
			}
			if seg == "" {
				continue
			}
			w.raw(`<w:t xml:space="preserve">`)
			w.text(seg)
			w.raw("</w:t>")
		}
	}
}

func (w *xmlWriter) drawing(d *Drawing) {
	w.drawingID++
	id := w.drawingID
	name := d.Image.name
	if name == "" {
		name = fmt.Sprintf("Picture %d", id)
	}

	w.rawf(`<w:drawing><wp:inline distT="0" distB="0" distL="0" distR="0">`+
		`<wp:extent cx="%d" cy="%d"/><wp:docPr id="%d" name="`, d.Width, d.Height, id)
	w.text(name)
	w.raw(`"/><wp:cNvGraphicFramePr><a:graphicFrameLocks noChangeAspect="1"/></wp:cNvGraphicFramePr>` +
		`<a:graphic><a:graphicData uri="http://schemas.openxmlformats.org/drawingml/2006/picture">` +
		`<pic:pic><pic:nvPicPr>`)
	w.rawf(`<pic:cNvPr id="%d" name="`, id)
	w.text(name)
	w.rawf(`"/><pic:cNvPicPr/></pic:nvPicPr>`+
		`<pic:blipFill><a:blip r:embed="%s"/><a:stretch><a:fillRect/></a:stretch></pic:blipFill>`+
		`<pic:spPr><a:xfrm><a:off x="0" y="0"/><a:ext cx="%d" cy="%d"/></a:xfrm>`+
		`<a:prstGeom prst="rect"><a:avLst/></a:prstGeom></pic:spPr>`+
		`</pic:pic></a:graphicData></a:graphic></wp:inline></w:drawing>`,
		d.Image.relID, d.Width, d.Height)
}

func (w *xmlWriter) table(t Table, width int) {
	cols := 0
	for _, row := range t.Rows {
		cols = max(cols, len(row))
	}
	if cols == 0 {
		return
	}
	colWidth := width / cols

	w.raw(`<w:tbl><w:tblPr><w:tblStyle w:val="TableGrid"/><w:tblW w:w="5000" w:type="pct"/>`)
	if t.Align != AlignDefault {
		w.rawf(`<w:jc w:val="%s"/>`, t.Align)
	}
	w.raw(`<w:tblLook w:val="04A0" w:firstRow="1" w:lastRow="0" w:firstColumn="1" w:lastColumn="0" w:noHBand="0" w:noVBand="1"/></w:tblPr>`)

	w.raw("<w:tblGrid>")
	for range cols {
		w.rawf(`<w:gridCol w:w="%d"/>`, colWidth)
	}
	w.raw("</w:tblGrid>")

	for i, row := range t.Rows {
		w.raw("<w:tr>")
		if i < t.HeaderRows {
			w.raw("<w:trPr><w:tblHeader/></w:trPr>")
		}
		for c := range cols {
			var cell Cell
			if c < len(row) {
				cell = row[c]
			}
			w.rawf(`<w:tc><w:tcPr><w:tcW w:w="%d" w:type="dxa"/>`, colWidth)
			if cell.Fill != "" {
				w.shading(cell.Fill)
			}
			w.raw("</w:tcPr>")
			w.paragraph(cell.Paragraph, -1)
			w.raw("</w:tc>")
		}
		w.raw("</w:tr>")
	}
	w.raw("</w:tbl>")
}

func (w *xmlWriter) toc(f TOCField) {
	w.raw(`<w:p><w:r><w:fldChar w:fldCharType="begin" w:dirty="true"/></w:r>`)
	w.raw(`<w:r><w:instrText xml:space="preserve"> TOC \o "`)
	w.text(f.Levels)
	w.raw(`" \h \z \u </w:instrText></w:r>`)
	w.raw(`<w:r><w:fldChar w:fldCharType="separate"/></w:r>`)
	if f.Placeholder.Text != "" {
		w.run(f.Placeholder)
	}
	w.raw(`<w:r><w:fldChar w:fldCharType="end"/></w:r></w:p>`)
}
