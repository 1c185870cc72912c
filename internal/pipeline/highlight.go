package pipeline

import (
	"strings"

	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/alecthomas/chroma/v2/styles"
)

// DefaultHighlightStyle is the chroma style used when none is configured.
const DefaultHighlightStyle = "github"

// StyledSpan is a run of code text with the colour and weight chroma assigns
// to its token type. Colour is a six-digit hex value without '#', empty when
// the style leaves the token uncoloured.
type StyledSpan struct {
	Text   string
	Colour string
	Bold   bool
	Italic bool
}

// Highlighter splits code into styled spans for a given language.
type Highlighter struct {
	style *chroma.Style
}

// NewHighlighter returns a Highlighter for the named chroma style.
// An empty name selects DefaultHighlightStyle; unknown names get chroma's
// fallback style.
func NewHighlighter(styleName string) *Highlighter {
	if styleName == "" {
		styleName = DefaultHighlightStyle
	}
	return &Highlighter{style: styles.Get(styleName)}
}

// Tokens lexes code as lang. An empty or unknown language, or a lexer error,
// yields a single uncoloured span holding the whole code.
func (h *Highlighter) Tokens(lang, code string) []StyledSpan {
	plain := []StyledSpan{{Text: code}}
	if lang == "" || code == "" {
		return plain
	}

	lexer := lexers.Get(lang)
	if lexer == nil {
		return plain
	}
	lexer = chroma.Coalesce(lexer)

	it, err := lexer.Tokenise(nil, code)
	if err != nil {
		return plain
	}

	var spans []StyledSpan
	for _, tok := range it.Tokens() {
		if tok.Value == "" {
			continue
		}
		entry := h.style.Get(tok.Type)
		span := StyledSpan{
			Text:   tok.Value,
			Bold:   entry.Bold == chroma.Yes,
			Italic: entry.Italic == chroma.Yes,
		}
		if entry.Colour.IsSet() {
			span.Colour = strings.TrimPrefix(entry.Colour.String(), "#")
		}
		if n := len(spans); n > 0 && sameStyle(spans[n-1], span) {
			spans[n-1].Text += span.Text
			continue
		}
		spans = append(spans, span)
	}
	if len(spans) == 0 {
		return plain
	}

	// Lexers append a newline to unterminated input.
	last := &spans[len(spans)-1]
	if !strings.HasSuffix(code, "\n") {
		last.Text = strings.TrimSuffix(last.Text, "\n")
		if last.Text == "" {
			spans = spans[:len(spans)-1]
		}
	}
	return spans
}

func sameStyle(a, b StyledSpan) bool {
	return a.Colour == b.Colour && a.Bold == b.Bold && a.Italic == b.Italic
}
