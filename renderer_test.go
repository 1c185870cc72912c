package md2docx

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/alnah/go-md2docx/internal/docx"
	"github.com/alnah/go-md2docx/internal/logging"
	"github.com/alnah/go-md2docx/internal/mdblocks"
	"github.com/alnah/go-md2docx/internal/pipeline"
)

func testTheme(t *testing.T) *Theme {
	t.Helper()

	th, err := LoadTheme("aspr")
	if err != nil {
		t.Fatalf("LoadTheme() error = %v", err)
	}
	return th
}

func cellTexts(rows [][]docx.Cell) [][]string {
	out := make([][]string, len(rows))
	for i, row := range rows {
		out[i] = make([]string, len(row))
		for j, c := range row {
			out[i][j] = c.Paragraph.Runs[0].Text
		}
	}
	return out
}

func TestRenderer_Table(t *testing.T) {
	t.Parallel()

	th := testTheme(t)
	r := newRenderer(th, nil)

	tbl := r.table(
		[]string{"Role", "Access", "Notes"},
		[][]string{
			{"Admin", "Full"},
			{"Viewer", "Read", "Audit", "extra"},
			{"Guest", "None", "-"},
		},
	)

	want := [][]string{
		{"Role", "Access", "Notes"},
		{"Admin", "Full", ""},
		{"Viewer", "Read", "Audit"},
		{"Guest", "None", "-"},
	}
	if diff := cmp.Diff(want, cellTexts(tbl.Rows)); diff != "" {
		t.Errorf("table cells mismatch (-want +got):\n%s", diff)
	}

	if tbl.HeaderRows != 1 || tbl.Align != docx.AlignCenter {
		t.Errorf("HeaderRows = %d, Align = %q", tbl.HeaderRows, tbl.Align)
	}

	head := tbl.Rows[0][0]
	if head.Fill != th.Colors.TableHeaderFill || !head.Paragraph.Runs[0].Bold || head.Paragraph.Runs[0].Color != th.Colors.TableHeaderText {
		t.Errorf("header cell = %+v", head)
	}

	fills := []string{tbl.Rows[1][0].Fill, tbl.Rows[2][0].Fill, tbl.Rows[3][0].Fill}
	if diff := cmp.Diff([]string{"", th.Colors.TableStripe, ""}, fills); diff != "" {
		t.Errorf("row stripes mismatch (-want +got):\n%s", diff)
	}
}

func TestRenderer_CodeRuns(t *testing.T) {
	t.Parallel()

	th := testTheme(t)

	t.Run("plain", func(t *testing.T) {
		t.Parallel()

		r := newRenderer(th, nil)
		want := []docx.Run{{Text: "x := 1\ny := 2", Color: th.Colors.Code}}
		if diff := cmp.Diff(want, r.codeRuns("go", "x := 1\ny := 2")); diff != "" {
			t.Errorf("codeRuns() mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("highlighted keeps text", func(t *testing.T) {
		t.Parallel()

		r := newRenderer(th, pipeline.NewHighlighter("github"))
		code := "func main() {\n\treturn\n}"
		runs := r.codeRuns("go", code)

		var got string
		for _, run := range runs {
			if run.Color == "" {
				t.Errorf("run %q has no colour", run.Text)
			}
			got += run.Text
		}
		if got != code {
			t.Errorf("joined runs = %q, want %q", got, code)
		}
		if len(runs) < 2 {
			t.Errorf("expected several runs, got %d", len(runs))
		}
	})
}

func TestRenderer_Block(t *testing.T) {
	t.Parallel()

	r := newRenderer(testTheme(t), nil)
	blocks := []mdblocks.Block{
		{Kind: mdblocks.KindHeading, Level: 2, Text: "A"},
		{Kind: mdblocks.KindParagraph, Text: "p", Bold: true},
		{Kind: mdblocks.KindBullet, Level: 1, Text: "b"},
		{Kind: mdblocks.KindTable, Headers: []string{"h"}, Rows: [][]string{{"c"}}},
		{Kind: mdblocks.KindCode, Code: "x"},
		{Kind: mdblocks.Kind(0)},
	}
	for _, b := range blocks {
		r.block(b)
	}

	want := Stats{Headings: 1, Paragraphs: 1, Bullets: 1, Tables: 1, CodeBlocks: 1}
	if diff := cmp.Diff(want, r.stats); diff != "" {
		t.Errorf("stats mismatch (-want +got):\n%s", diff)
	}
	if r.doc.Len() != 5 {
		t.Errorf("doc.Len() = %d, want 5", r.doc.Len())
	}
	if want.Total() != 5 {
		t.Errorf("Total() = %d, want 5", want.Total())
	}
}

func TestRenderer_TitleBlock(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		meta Meta
		want int
	}{
		{name: "empty", meta: Meta{}, want: 0},
		{name: "title only", meta: Meta{Title: "T"}, want: 1},
		{name: "info line only", meta: Meta{Date: "today"}, want: 1},
		{name: "everything", meta: Meta{Title: "T", Subtitle: "S", Version: "1", Date: "d", Status: "s", Author: "a"}, want: 4},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			r := newRenderer(testTheme(t), nil)
			r.titleBlock(tt.meta)
			if got := r.doc.Len(); got != tt.want {
				t.Errorf("doc.Len() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestRenderer_Logos(t *testing.T) {
	t.Parallel()

	r := newRenderer(testTheme(t), nil)
	img := pngBytes(t, 10, 10)
	load := func(l Logo) ([]byte, error) {
		if l.Path == "missing.png" {
			return nil, ErrInvalidLogo
		}
		return img, nil
	}

	missing := r.logos([]Logo{{Path: "a.png"}, {Path: "missing.png"}, {Path: "b.png"}}, load, logging.NoOp())

	if diff := cmp.Diff([]string{"missing.png"}, missing); diff != "" {
		t.Errorf("missing mismatch (-want +got):\n%s", diff)
	}
	// logo paragraph plus spacer
	if r.doc.Len() != 2 {
		t.Errorf("doc.Len() = %d, want 2", r.doc.Len())
	}
}

func TestRenderer_LogosNone(t *testing.T) {
	t.Parallel()

	r := newRenderer(testTheme(t), nil)
	load := func(Logo) ([]byte, error) { return nil, ErrInvalidLogo }

	missing := r.logos([]Logo{{Path: "x.png"}}, load, logging.NoOp())
	if len(missing) != 1 || r.doc.Len() != 0 {
		t.Errorf("missing = %v, doc.Len() = %d", missing, r.doc.Len())
	}
}
