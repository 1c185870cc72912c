// Package mdblocks turns Markdown source lines into a flat sequence of
// structural blocks (headings, paragraphs, bullets, tables, code).
//
// The scan is a single forward pass over an immutable line buffer. A cursor
// only ever moves forward; table and code branches advance it past every
// line they consume in one step. Nothing is retained between scans and no
// input can make the scanner fail: a line that matches no rule becomes a
// plain paragraph.
//
// # Content Start
//
// Everything before the first level-2 heading (title, metadata table, front
// matter) is skipped. A level-2 heading mentioning "table of contents" is not
// accepted as the start, since renderers emit their own field-based table of
// contents. When no qualifying heading exists, scanning starts at line 0.
//
// # Rules
//
// At each position the first matching rule wins:
//
//  1. blank line: skipped
//  2. "- [text](#anchor)": manual TOC entry, skipped
//  3. "### ": heading level 3
//  4. "## ": heading level 2
//  5. "---": rule, skipped
//  6. a line with "|" followed by a line with "---": table block
//  7. "```": fenced code block
//  8. "- " or "* ": bullet (level 1 when indented by two spaces)
//  9. "**...**": bold paragraph
//  10. anything else: paragraph with "**" markers removed
//
// A line made only of asterisks ("**", "****") has no text after marker
// removal and emits nothing rather than an empty bold paragraph.
package mdblocks
