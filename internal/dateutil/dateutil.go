// Package dateutil resolves document dates, including "auto" values that
// expand to the generation date.
//
// Formats are written with tokens (YYYY, YY, MMMM, MMM, MM, M, DD, D).
// Text inside brackets is copied verbatim, so "[Rev.] YYYY" yields
// "Rev. 2026". Every other character is a literal as well; unlike Go's
// reference layout, a stray "2" or "Jan" in a format is never reinterpreted.
package dateutil

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// ErrInvalidDateFormat indicates an invalid date format string.
var ErrInvalidDateFormat = errors.New("invalid date format")

// MaxDateFormatLength limits format string length.
const MaxDateFormatLength = 50

// DefaultDateFormat is used when "auto" is specified without a format.
// Title page dates read like "February 7, 2026".
const DefaultDateFormat = "MMMM D, YYYY"

// Presets are named shortcuts for common formats, matched case-insensitively.
var Presets = map[string]string{
	"iso":      "YYYY-MM-DD",
	"european": "DD/MM/YYYY",
	"us":       "MM/DD/YYYY",
	"long":     DefaultDateFormat,
}

// tokens in greedy match order: a longer token always precedes its prefixes.
var tokens = []struct {
	name   string
	render func(time.Time) string
}{
	{"YYYY", func(t time.Time) string { return fmt.Sprintf("%04d", t.Year()) }},
	{"MMMM", func(t time.Time) string { return t.Month().String() }},
	{"MMM", func(t time.Time) string { return t.Month().String()[:3] }},
	{"YY", func(t time.Time) string { return fmt.Sprintf("%02d", t.Year()%100) }},
	{"MM", func(t time.Time) string { return fmt.Sprintf("%02d", int(t.Month())) }},
	{"DD", func(t time.Time) string { return fmt.Sprintf("%02d", t.Day()) }},
	{"M", func(t time.Time) string { return strconv.Itoa(int(t.Month())) }},
	{"D", func(t time.Time) string { return strconv.Itoa(t.Day()) }},
}

// part is either a literal or a token renderer.
type part struct {
	literal string
	render  func(time.Time) string
}

// Layout is a compiled date format.
type Layout struct {
	parts []part
}

// Compile parses a token format into a Layout. It fails on an empty or
// overlong format and on an unclosed bracket.
func Compile(format string) (Layout, error) {
	if format == "" {
		return Layout{}, fmt.Errorf("%w: format cannot be empty", ErrInvalidDateFormat)
	}
	if len(format) > MaxDateFormatLength {
		return Layout{}, fmt.Errorf("%w: format exceeds %d characters", ErrInvalidDateFormat, MaxDateFormatLength)
	}

	var l Layout
	var lit strings.Builder
	flush := func() {
		if lit.Len() > 0 {
			l.parts = append(l.parts, part{literal: lit.String()})
			lit.Reset()
		}
	}

	rest := format
scan:
	for rest != "" {
		if rest[0] == '[' {
			end := strings.IndexByte(rest, ']')
			if end < 0 {
				return Layout{}, fmt.Errorf("%w: unclosed bracket at position %d", ErrInvalidDateFormat, len(format)-len(rest))
			}
			lit.WriteString(rest[1:end])
			rest = rest[end+1:]
			continue
		}
		for _, tok := range tokens {
			if strings.HasPrefix(rest, tok.name) {
				flush()
				l.parts = append(l.parts, part{render: tok.render})
				rest = rest[len(tok.name):]
				continue scan
			}
		}
		lit.WriteByte(rest[0])
		rest = rest[1:]
	}
	flush()
	return l, nil
}

// Format renders t.
func (l Layout) Format(t time.Time) string {
	var b strings.Builder
	for _, p := range l.parts {
		if p.render != nil {
			b.WriteString(p.render(t))
		} else {
			b.WriteString(p.literal)
		}
	}
	return b.String()
}

// FormatDate compiles format (or the preset it names) and renders t.
func FormatDate(format string, t time.Time) (string, error) {
	if preset, ok := Presets[strings.ToLower(format)]; ok {
		format = preset
	}
	l, err := Compile(format)
	if err != nil {
		return "", err
	}
	return l.Format(t), nil
}

// ResolveDate expands "auto" values against now:
//   - "auto" renders DefaultDateFormat
//   - "auto:FORMAT" renders FORMAT, which may name a preset
//
// The "auto" prefix is matched case-insensitively. Any other value is
// returned unchanged.
func ResolveDate(value string, now time.Time) (string, error) {
	if len(value) < 4 || !strings.EqualFold(value[:4], "auto") {
		return value, nil
	}

	rest := value[4:]
	switch {
	case rest == "":
		return FormatDate(DefaultDateFormat, now)
	case rest[0] != ':':
		return "", fmt.Errorf("%w: invalid auto syntax %q, use \"auto\" or \"auto:FORMAT\"", ErrInvalidDateFormat, value)
	case len(rest) == 1:
		return "", fmt.Errorf("%w: format cannot be empty after \"auto:\"", ErrInvalidDateFormat)
	default:
		return FormatDate(rest[1:], now)
	}
}
