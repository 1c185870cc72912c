package pipeline

import (
	"regexp"
	"strings"
)

var crlfOrCR = regexp.MustCompile(`\r\n?`)

const byteOrderMark = "\ufeff"

// NormalizeLineEndings converts \r\n and \r to \n.
func NormalizeLineEndings(content string) string {
	if !strings.ContainsRune(content, '\r') {
		return content
	}
	return crlfOrCR.ReplaceAllString(content, "\n")
}

// Preprocess prepares raw Markdown for block scanning: a leading UTF-8 byte
// order mark is dropped and line endings are normalized. Blank lines are kept
// as-is since fenced code preserves them.
func Preprocess(content string) string {
	return NormalizeLineEndings(strings.TrimPrefix(content, byteOrderMark))
}
