// Package md2docx converts project Markdown documentation into branded Word
// (DOCX) documents.
//
// # Quick Start
//
//	conv, err := md2docx.NewConverter(md2docx.WithTheme("aspr"))
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer conv.Close()
//
//	result, err := conv.Convert(ctx, md2docx.Input{
//	    Markdown: content,
//	    Title:    "System Design Document",
//	    Subtitle: "Photo Repository",
//	    TOC:      &md2docx.TOC{},
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	os.WriteFile("sdd.docx", result.DOCX, 0o644)
//
// # Conversion Pipeline
//
//  1. Preprocessing (byte order mark, line endings)
//  2. Front matter extraction (title, subtitle, version, date, status)
//  3. Block scanning: the line scanner (default) or the goldmark AST walker
//  4. DOCX rendering: title block, table of contents field, then every block
//     with theme colours, striped tables and highlighted code
//  5. Optional HTML preview (goldmark + chroma) and PDF export (headless
//     Chrome via go-rod)
//
// Everything before the first level-2 heading is skipped, so a Markdown
// title, metadata table, or hand-written table of contents does not leak
// into the document. The generated table of contents is a Word field: Word
// fills it in when the document is opened (or via Update Field).
//
// # Themes
//
// A theme sets fonts, sizes, and the colour palette. Built-ins are "default"
// and "aspr"; custom themes are YAML files with the same keys, passed by
// path to WithTheme or placed under <asset-path>/themes/.
package md2docx
