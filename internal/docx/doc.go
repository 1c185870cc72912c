// Package docx writes WordprocessingML (.docx) packages.
//
// A Document collects body content (paragraphs, headings, bullets, tables,
// a table of contents field, page breaks), an optional page header and
// footer, embedded images, and core properties. WriteTo serializes the whole
// package as a zip archive that Word and LibreOffice open directly.
//
// The writer covers the subset of the format needed for generated reports:
// one section, one bullet list definition, and a fixed style sheet derived
// from Settings. The table of contents is a Word field; settings.xml asks
// Word to refresh fields when the document is opened.
package docx
