package docx

// Settings controls the style sheet and page layout.
type Settings struct {
	Font     string
	FontSize float64

	CodeFont     string
	CodeFontSize float64
	CodeColor    string

	// HeadingColors and HeadingSizes apply to Heading1..Heading3.
	HeadingColors [3]string
	HeadingSizes  [3]float64

	TitleColor    string
	TitleSize     float64
	SubtitleColor string
	SubtitleSize  float64

	// SpaceAfter is the default paragraph spacing in points.
	SpaceAfter float64

	// Page size and margins in twips.
	PageWidth  int
	PageHeight int
	Margin     int
}

// DefaultSettings returns US Letter pages with 2.5 cm margins and an
// 11 pt Calibri body.
func DefaultSettings() Settings {
	return Settings{
		Font:          "Calibri",
		FontSize:      11,
		CodeFont:      "Consolas",
		CodeFontSize:  8.5,
		CodeColor:     "333333",
		HeadingColors: [3]string{"062E61", "155197", "AA6404"},
		HeadingSizes:  [3]float64{16, 13, 12},
		TitleColor:    "062E61",
		TitleSize:     26,
		SubtitleColor: "155197",
		SubtitleSize:  18,
		SpaceAfter:    6,
		PageWidth:     12240,
		PageHeight:    15840,
		Margin:        CmToTwips(2.5),
	}
}

// withDefaults fills zero fields from DefaultSettings.
func (s Settings) withDefaults() Settings {
	d := DefaultSettings()
	if s.Font == "" {
		s.Font = d.Font
	}
	if s.FontSize <= 0 {
		s.FontSize = d.FontSize
	}
	if s.CodeFont == "" {
		s.CodeFont = d.CodeFont
	}
	if s.CodeFontSize <= 0 {
		s.CodeFontSize = d.CodeFontSize
	}
	if s.CodeColor == "" {
		s.CodeColor = d.CodeColor
	}
	for i := range s.HeadingColors {
		if s.HeadingColors[i] == "" {
			s.HeadingColors[i] = d.HeadingColors[i]
		}
		if s.HeadingSizes[i] <= 0 {
			s.HeadingSizes[i] = d.HeadingSizes[i]
		}
	}
	if s.TitleColor == "" {
		s.TitleColor = d.TitleColor
	}
	if s.TitleSize <= 0 {
		s.TitleSize = d.TitleSize
	}
	if s.SubtitleColor == "" {
		s.SubtitleColor = d.SubtitleColor
	}
	if s.SubtitleSize <= 0 {
		s.SubtitleSize = d.SubtitleSize
	}
	if s.SpaceAfter <= 0 {
		s.SpaceAfter = d.SpaceAfter
	}
	if s.PageWidth <= 0 || s.PageHeight <= 0 {
		s.PageWidth, s.PageHeight = d.PageWidth, d.PageHeight
	}
	if s.Margin <= 0 {
		s.Margin = d.Margin
	}
	return s
}

// textWidth is the usable line width in twips.
func (s Settings) textWidth() int {
	return max(s.PageWidth-2*s.Margin, TwipsPerInch)
}
