package docx

import (
	"bytes"
	"fmt"
	"image"
	_ "image/gif"  // register GIF decoder
	_ "image/jpeg" // register JPEG decoder
	_ "image/png"  // register PNG decoder
)

// Style IDs defined in styles.xml.
const (
	StyleNormal     = "Normal"
	StyleTitle      = "Title"
	StyleSubtitle   = "Subtitle"
	StyleListBullet = "ListBullet"
	StyleTOCHeading = "TOCHeading"
	StyleCode       = "Code"
	StyleHeader     = "Header"
	StyleFooter     = "Footer"
)

const (
	maxHeadingLevel = 3
	maxListLevel    = 8
	defaultTOCRange = "1-3"
)

// Document is an in-memory WordprocessingML package. It is not safe for
// concurrent use.
type Document struct {
	settings Settings
	body     []element
	header   *Part
	footer   *Part
	images   []mediaFile
	props    CoreProperties
}

type mediaFile struct {
	image Image
	data  []byte
}

// element is one body-level item of document.xml.
type element interface {
	writeXML(w *xmlWriter)
}

// New creates an empty Document. Zero Settings fields take their defaults.
func New(s Settings) *Document {
	return &Document{settings: s.withDefaults()}
}

// Settings returns the effective settings.
func (d *Document) Settings() Settings {
	return d.settings
}

// Len returns the number of body elements added so far.
func (d *Document) Len() int {
	return len(d.body)
}

// AddParagraph appends a paragraph.
func (d *Document) AddParagraph(p Paragraph) {
	d.body = append(d.body, paragraphElem{p: p, listLevel: -1})
}

// AddHeading appends a heading. Levels outside 1-3 are clamped.
func (d *Document) AddHeading(level int, runs ...Run) {
	level = min(max(level, 1), maxHeadingLevel)
	d.AddParagraph(Paragraph{Style: fmt.Sprintf("Heading%d", level), Runs: runs})
}

// AddBullet appends a bulleted list item. Levels outside 0-8 are clamped.
func (d *Document) AddBullet(level int, runs ...Run) {
	level = min(max(level, 0), maxListLevel)
	d.body = append(d.body, paragraphElem{
		p:         Paragraph{Style: StyleListBullet, Runs: runs},
		listLevel: level,
	})
}

// AddTable appends a table. A table without rows is ignored.
func (d *Document) AddTable(t Table) {
	if len(t.Rows) == 0 {
		return
	}
	d.body = append(d.body, tableElem{t: t, width: d.settings.textWidth()})
}

// AddTOC appends a table of contents field.
func (d *Document) AddTOC(f TOCField) {
	if f.Levels == "" {
		f.Levels = defaultTOCRange
	}
	d.body = append(d.body, tocElem{f: f})
}

// AddPageBreak appends a paragraph holding a page break.
func (d *Document) AddPageBreak() {
	d.body = append(d.body, pageBreakElem{})
}

// SetHeader sets the default page header.
func (d *Document) SetHeader(p Part) {
	d.header = &p
}

// SetFooter sets the default page footer.
func (d *Document) SetFooter(p Part) {
	d.footer = &p
}

// SetProperties sets the core document properties.
func (d *Document) SetProperties(p CoreProperties) {
	d.props = p
}

// AddImage embeds a PNG, JPEG, or GIF image and returns a handle for use in
// a Drawing. The data is not copied; callers must not modify it afterwards.
func (d *Document) AddImage(name string, data []byte) (Image, error) {
	if len(data) == 0 {
		return Image{}, ErrEmptyImage
	}

	cfg, format, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return Image{}, fmt.Errorf("%w: %s: %v", ErrUnsupportedImage, name, err)
	}

	n := len(d.images) + 1
	img := Image{
		relID:  fmt.Sprintf("rIdImg%d", n),
		target: fmt.Sprintf("media/image%d.%s", n, format),
		name:   name,
		Width:  cfg.Width,
		Height: cfg.Height,
	}
	d.images = append(d.images, mediaFile{image: img, data: data})
	return img, nil
}

type paragraphElem struct {
	p         Paragraph
	listLevel int
}

func (e paragraphElem) writeXML(w *xmlWriter) {
	w.paragraph(e.p, e.listLevel)
}

type tableElem struct {
	t     Table
	width int
}

func (e tableElem) writeXML(w *xmlWriter) {
	w.table(e.t, e.width)
}

type tocElem struct {
	f TOCField
}

func (e tocElem) writeXML(w *xmlWriter) {
	w.toc(e.f)
}

type pageBreakElem struct{}

func (pageBreakElem) writeXML(w *xmlWriter) {
	w.raw(`<w:p><w:r><w:br w:type="page"/></w:r></w:p>`)
}
