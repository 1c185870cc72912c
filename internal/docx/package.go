package docx

import (
	"archive/zip"
	"bytes"
	"fmt"
	"io"
	"strings"
	"text/template"
	"time"
)

const (
	xmlHeader = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>` + "\n"

	nsMain = `xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main"`
	nsAll  = nsMain +
		` xmlns:r="http://schemas.openxmlformats.org/officeDocument/2006/relationships"` +
		` xmlns:wp="http://schemas.openxmlformats.org/drawingml/2006/wordprocessingDrawing"` +
		` xmlns:a="http://schemas.openxmlformats.org/drawingml/2006/main"` +
		` xmlns:pic="http://schemas.openxmlformats.org/drawingml/2006/picture"`

	relBase = "http://schemas.openxmlformats.org/officeDocument/2006/relationships/"

	bulletNumID = 1
)

// WriteTo writes the complete .docx package to w.
func (d *Document) WriteTo(w io.Writer) (int64, error) {
	cw := &countingWriter{w: w}
	zw := zip.NewWriter(cw)

	parts, err := d.parts()
	if err != nil {
		return cw.n, err
	}

	for _, p := range parts {
		f, err := zw.Create(p.name)
		if err != nil {
			return cw.n, fmt.Errorf("create %s: %w", p.name, err)
		}
		if _, err := f.Write(p.data); err != nil {
			return cw.n, fmt.Errorf("write %s: %w", p.name, err)
		}
	}

	if err := zw.Close(); err != nil {
		return cw.n, fmt.Errorf("close package: %w", err)
	}
	return cw.n, nil
}

// Bytes returns the package as a byte slice.
func (d *Document) Bytes() ([]byte, error) {
	var buf bytes.Buffer
	if _, err := d.WriteTo(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

type part struct {
	name string
	data []byte
}

// parts renders every package part, content types first.
func (d *Document) parts() ([]part, error) {
	w := &xmlWriter{}

	data := packageData{
		Settings:  d.settings,
		Props:     d.props,
		HasHeader: d.header != nil,
		HasFooter: d.footer != nil,
		Images:    make([]Image, len(d.images)),
		BulletLevels: func() []int {
			levels := make([]int, maxListLevel+1)
			for i := range levels {
				levels[i] = i
			}
			return levels
		}(),
	}
	for i, m := range d.images {
		data.Images[i] = m.image
	}

	var out []part
	add := func(name string, tmpl *template.Template) error {
		var buf bytes.Buffer
		buf.WriteString(xmlHeader)
		if err := tmpl.Execute(&buf, data); err != nil {
			return fmt.Errorf("render %s: %w", name, err)
		}
		out = append(out, part{name: name, data: buf.Bytes()})
		return nil
	}

	for _, p := range []struct {
		name string
		tmpl *template.Template
	}{
		{"[Content_Types].xml", contentTypesTmpl},
		{"_rels/.rels", rootRelsTmpl},
		{"docProps/core.xml", coreTmpl},
		{"docProps/app.xml", appTmpl},
		{"word/_rels/document.xml.rels", documentRelsTmpl},
		{"word/styles.xml", stylesTmpl},
		{"word/numbering.xml", numberingTmpl},
		{"word/settings.xml", settingsTmpl},
	} {
		if err := add(p.name, p.tmpl); err != nil {
			return nil, err
		}
	}

	out = append(out, part{name: "word/document.xml", data: d.documentXML(w)})

	if d.header != nil {
		out = append(out,
			part{name: "word/header1.xml", data: partXML(w, "w:hdr", *d.header)},
			part{name: "word/_rels/header1.xml.rels", data: mediaRels(d.images)},
		)
	}
	if d.footer != nil {
		out = append(out,
			part{name: "word/footer1.xml", data: partXML(w, "w:ftr", *d.footer)},
			part{name: "word/_rels/footer1.xml.rels", data: mediaRels(d.images)},
		)
	}

	for _, m := range d.images {
		out = append(out, part{name: "word/" + m.image.target, data: m.data})
	}
	return out, nil
}

func (d *Document) documentXML(w *xmlWriter) []byte {
	w.raw(xmlHeader)
	w.raw("<w:document " + nsAll + "><w:body>")
	for _, e := range d.body {
		e.writeXML(w)
	}
	// Word requires a paragraph between a final table and sectPr.
	if len(d.body) == 0 {
		w.raw("<w:p/>")
	} else if _, ok := d.body[len(d.body)-1].(tableElem); ok {
		w.raw("<w:p/>")
	}

	s := d.settings
	w.raw("<w:sectPr>")
	if d.header != nil {
		w.raw(`<w:headerReference w:type="default" r:id="rIdHeader"/>`)
	}
	if d.footer != nil {
		w.raw(`<w:footerReference w:type="default" r:id="rIdFooter"/>`)
	}
	w.rawf(`<w:pgSz w:w="%d" w:h="%d"/>`, s.PageWidth, s.PageHeight)
	w.rawf(`<w:pgMar w:top="%d" w:right="%d" w:bottom="%d" w:left="%d" w:header="708" w:footer="708" w:gutter="0"/>`,
		s.Margin, s.Margin, s.Margin, s.Margin)
	w.raw("</w:sectPr></w:body></w:document>")
	return []byte(w.reset())
}

// partXML renders a header or footer. Both need at least one paragraph.
func partXML(w *xmlWriter, root string, p Part) []byte {
	w.raw(xmlHeader)
	w.raw("<" + root + " " + nsAll + ">")
	if len(p.Paragraphs) == 0 {
		w.raw("<w:p/>")
	}
	for _, para := range p.Paragraphs {
		w.paragraph(para, -1)
	}
	w.raw("</" + root + ">")
	return []byte(w.reset())
}

func mediaRels(images []mediaFile) []byte {
	var sb strings.Builder
	sb.WriteString(xmlHeader)
	sb.WriteString(`<Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships">`)
	for _, m := range images {
		fmt.Fprintf(&sb, `<Relationship Id="%s" Type="%simage" Target="%s"/>`, m.image.relID, relBase, m.image.target)
	}
	sb.WriteString(`</Relationships>`)
	return []byte(sb.String())
}

type packageData struct {
	Settings     Settings
	Props        CoreProperties
	HasHeader    bool
	HasFooter    bool
	Images       []Image
	BulletLevels []int
}

type countingWriter struct {
	w io.Writer
	n int64
}

func (c *countingWriter) Write(p []byte) (int, error) {
	n, err := c.w.Write(p)
	c.n += int64(n)
	return n, err
}

// W3CDTF formats t for dcterms dates.
func w3cdtf(t time.Time) string {
	return t.UTC().Format("2006-01-02T15:04:05Z")
}
