package docx

import "time"

// Alignment is a paragraph or table justification.
type Alignment string

// Alignments.
const (
	AlignDefault Alignment = ""
	AlignLeft    Alignment = "left"
	AlignCenter  Alignment = "center"
	AlignRight   Alignment = "right"
	AlignBoth    Alignment = "both"
)

// Run is a span of uniformly formatted content. Newlines in Text become line
// breaks and tabs become tab characters.
type Run struct {
	Text   string
	Bold   bool
	Italic bool
	// Color is a six-digit hex value without '#'; empty inherits.
	Color string
	// Font overrides the style font when set.
	Font string
	// Size in points; zero inherits.
	Size float64
	// Field is a simple field instruction (e.g. "PAGE"). Text is shown until
	// the field is updated.
	Field string
	// Drawing places an inline image instead of text.
	Drawing *Drawing
}

// Spacing is the space before and after a paragraph, in points.
type Spacing struct {
	Before float64
	After  float64
}

// Paragraph is a block of runs.
type Paragraph struct {
	Style    string
	Align    Alignment
	Runs     []Run
	Spacing  *Spacing
	Shading  string
	KeepNext bool
}

// Cell is a table cell holding a single paragraph.
type Cell struct {
	Paragraph Paragraph
	Fill      string
}

// Table is a grid of cells. Rows shorter than the widest row are padded with
// empty cells. The first HeaderRows rows repeat on every page.
type Table struct {
	Rows       [][]Cell
	HeaderRows int
	Align      Alignment
}

// TOCField is a Word table of contents field.
type TOCField struct {
	// Levels is the outline range, "1-3" when empty.
	Levels string
	// Placeholder is shown until Word updates the field.
	Placeholder Run
}

// Part is the content of a page header or footer.
type Part struct {
	Paragraphs []Paragraph
}

// CoreProperties is the docProps/core.xml metadata.
type CoreProperties struct {
	Title       string
	Subject     string
	Creator     string
	Keywords    string
	Description string
	Created     time.Time
}

// Image is an embedded media file. Create one with Document.AddImage.
type Image struct {
	relID  string
	target string
	name   string
	// Width and Height are the pixel dimensions.
	Width  int
	Height int
}

// RelID is the relationship ID parts use to reference the image.
func (img Image) RelID() string { return img.relID }

// Target is the image path inside the word/ directory.
func (img Image) Target() string { return img.target }

// ScaleToWidth returns a Drawing of img at the given width, keeping the
// aspect ratio.
func (img Image) ScaleToWidth(widthEMU int64) *Drawing {
	height := widthEMU
	if img.Width > 0 {
		height = widthEMU * int64(img.Height) / int64(img.Width)
	}
	return &Drawing{Image: img, Width: widthEMU, Height: height}
}

// Drawing is an inline image placement, sized in EMU.
type Drawing struct {
	Image  Image
	Width  int64
	Height int64
}
