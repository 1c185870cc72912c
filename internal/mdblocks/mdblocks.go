package mdblocks

import (
	"iter"
	"strings"
)

// Kind identifies the structural type of a Block.
type Kind int

// Block kinds.
const (
	KindHeading Kind = iota + 1
	KindParagraph
	KindBullet
	KindTable
	KindCode
)

// String returns the lowercase name of the kind.
func (k Kind) String() string {
	switch k {
	case KindHeading:
		return "heading"
	case KindParagraph:
		return "paragraph"
	case KindBullet:
		return "bullet"
	case KindTable:
		return "table"
	case KindCode:
		return "code"
	default:
		return "unknown"
	}
}

// Block is one structural unit emitted by the scanner.
// Only the fields relevant to Kind are set.
type Block struct {
	Kind Kind

	// Level is the heading level (2 or 3) or the bullet nesting level (0 or 1).
	Level int

	// Text holds heading, paragraph, and bullet text with "**" markers removed.
	Text string

	// Bold marks a standalone "**...**" paragraph.
	Bold bool

	// Headers and Rows hold table cells. Rows may be shorter or longer
	// than Headers; consumers decide how to reconcile arity.
	Headers []string
	Rows    [][]string

	// Code is the raw fenced content with newlines preserved.
	Code string

	// Lang is the fence info string ("go" in "```go"), empty if absent.
	Lang string
}

// Markers recognized by the scanner.
const (
	h2Prefix       = "## "
	h3Prefix       = "### "
	fence          = "```"
	ruleLine       = "---"
	boldMarker     = "**"
	nestedIndent   = "  "
	tocLinkPrefix  = "- ["
	tocLinkAnchor  = "](#"
	tocHeadingText = "table of contents"
)

// SplitLines splits text into lines on "\n".
// Callers normalize "\r\n" beforehand when they need exact code content.
func SplitLines(text string) []string {
	return strings.Split(text, "\n")
}

// ContentStart returns the index of the first line starting with "## " that
// is not a table of contents heading, or 0 when there is none.
func ContentStart(lines []string) int {
	for i, line := range lines {
		if !strings.HasPrefix(line, h2Prefix) {
			continue
		}
		if IsTOCHeading(line) {
			continue
		}
		return i
	}
	return 0
}

// IsTOCHeading reports whether heading text names a table of contents.
func IsTOCHeading(text string) bool {
	return strings.Contains(strings.ToLower(text), tocHeadingText)
}

// ParseTableRow splits a pipe-delimited row into trimmed cells.
// Leading and trailing pipes are discarded before splitting.
func ParseTableRow(line string) []string {
	trimmed := strings.Trim(strings.TrimSpace(line), "|")
	parts := strings.Split(trimmed, "|")
	cells := make([]string, len(parts))
	for i, p := range parts {
		cells[i] = strings.TrimSpace(p)
	}
	return cells
}

// Scanner walks a line buffer and yields one Block per call to Scan.
// The zero value is not usable; create one with NewScanner.
type Scanner struct {
	lines []string
	pos   int
	block Block
}

// NewScanner returns a Scanner positioned at the content start of lines.
// The slice is read but never modified.
func NewScanner(lines []string) *Scanner {
	return &Scanner{
		lines: lines,
		pos:   ContentStart(lines),
	}
}

// Scan advances to the next block. It returns false once the input is
// exhausted; Block then returns the last block produced.
func (s *Scanner) Scan() bool {
	for s.pos < len(s.lines) {
		if b, ok := s.step(); ok {
			s.block = b
			return true
		}
	}
	return false
}

// Block returns the block produced by the most recent successful Scan.
func (s *Scanner) Block() Block {
	return s.block
}

// step classifies the line at the cursor, advances past every line it
// consumes, and returns the block to emit (if any).
func (s *Scanner) step() (Block, bool) {
	line := s.lines[s.pos]
	stripped := strings.TrimSpace(line)

	switch {
	case stripped == "":
		s.pos++
		return Block{}, false

	case strings.HasPrefix(stripped, tocLinkPrefix) && strings.Contains(stripped, tocLinkAnchor):
		s.pos++
		return Block{}, false

	case strings.HasPrefix(stripped, h3Prefix):
		s.pos++
		return Block{Kind: KindHeading, Level: 3, Text: headingText(stripped[len(h3Prefix):])}, true

	case strings.HasPrefix(stripped, h2Prefix):
		s.pos++
		return Block{Kind: KindHeading, Level: 2, Text: strings.TrimSpace(stripped[len(h2Prefix):])}, true

	case stripped == ruleLine:
		s.pos++
		return Block{}, false

	case s.startsTable(stripped):
		return s.consumeTable()

	case strings.HasPrefix(stripped, fence):
		return s.consumeCode(stripped), true

	case strings.HasPrefix(stripped, "- ") || strings.HasPrefix(stripped, "* "):
		s.pos++
		level := 0
		if strings.HasPrefix(line, nestedIndent) {
			level = 1
		}
		text := strings.ReplaceAll(strings.TrimSpace(stripped[2:]), boldMarker, "")
		return Block{Kind: KindBullet, Level: level, Text: text}, true

	case strings.HasPrefix(stripped, boldMarker) && strings.HasSuffix(stripped, boldMarker):
		s.pos++
		text := strings.TrimSpace(strings.Trim(stripped, "*"))
		if text == "" {
			return Block{}, false
		}
		return Block{Kind: KindParagraph, Text: text, Bold: true}, true

	default:
		s.pos++
		text := strings.ReplaceAll(stripped, boldMarker, "")
		if text == "" {
			return Block{}, false
		}
		return Block{Kind: KindParagraph, Text: text}, true
	}
}

// startsTable reports whether the cursor sits on a table header line,
// i.e. a line with a pipe immediately followed by a separator line.
func (s *Scanner) startsTable(stripped string) bool {
	if !strings.Contains(stripped, "|") || s.pos+1 >= len(s.lines) {
		return false
	}
	return strings.Contains(s.lines[s.pos+1], ruleLine)
}

// consumeTable takes every consecutive line containing a pipe. The first is
// the header row, the second the separator, and the rest data rows.
// A table without data rows is dropped.
func (s *Scanner) consumeTable() (Block, bool) {
	var headers []string
	var rows [][]string
	for n := 0; s.pos < len(s.lines) && strings.Contains(strings.TrimSpace(s.lines[s.pos]), "|"); n++ {
		switch n {
		case 0:
			headers = ParseTableRow(s.lines[s.pos])
		case 1:
			// separator
		default:
			rows = append(rows, ParseTableRow(s.lines[s.pos]))
		}
		s.pos++
	}
	if len(headers) == 0 || len(rows) == 0 {
		return Block{}, false
	}
	return Block{Kind: KindTable, Headers: headers, Rows: rows}, true
}

// consumeCode takes the opening fence, every line up to the next fence, and
// the closing fence. An unterminated fence runs to the end of input.
func (s *Scanner) consumeCode(opening string) Block {
	lang := strings.TrimSpace(opening[len(fence):])
	s.pos++

	var code []string
	for s.pos < len(s.lines) && !strings.HasPrefix(strings.TrimSpace(s.lines[s.pos]), fence) {
		code = append(code, s.lines[s.pos])
		s.pos++
	}
	if s.pos < len(s.lines) {
		s.pos++
	}

	return Block{Kind: KindCode, Code: strings.Join(code, "\n"), Lang: lang}
}

// headingText trims a level-3 heading remainder and drops stray leading
// '#' characters ("### ## Setup" yields "Setup").
func headingText(rest string) string {
	text := strings.TrimSpace(rest)
	if strings.HasPrefix(text, "#") {
		text = strings.TrimSpace(strings.TrimLeft(text, "#"))
	}
	return text
}

// All returns the blocks of lines as a lazy sequence.
func All(lines []string) iter.Seq[Block] {
	return func(yield func(Block) bool) {
		s := NewScanner(lines)
		for s.Scan() {
			if !yield(s.Block()) {
				return
			}
		}
	}
}

// Parse returns every block in lines, in order.
func Parse(lines []string) []Block {
	var blocks []Block
	for b := range All(lines) {
		blocks = append(blocks, b)
	}
	return blocks
}

// ParseString splits text into lines and parses them.
func ParseString(text string) []Block {
	return Parse(SplitLines(text))
}
