// Package pipeline holds the stages that run around block scanning:
//   - Markdown preprocessing (line endings, front matter)
//   - an alternative block source backed by the goldmark AST
//   - chroma tokenization for coloured code runs
//   - the HTML preview page (goldmark, theme stylesheet, image path resolution)
//
// DOCX rendering lives in the root md2docx package; PDF export of the
// preview uses headless Chrome (go-rod) from the same package.
package pipeline
