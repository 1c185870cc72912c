package md2docx

// Notes:
// - chromeSession.print past the context checks needs a real Chrome; the
//   CLI integration path covers it when a browser is installed.

import (
	"context"
	"errors"
	"net/url"
	"os"
	"testing"
	"time"

	"github.com/go-rod/rod/lib/launcher/flags"
	"github.com/go-rod/rod/lib/proto"
	"github.com/google/go-cmp/cmp"

	"github.com/alnah/go-md2docx/internal/docx"
)

// stubPrinter reads the page it is asked to print so tests can see what
// the converter wrote.
type stubPrinter struct {
	url      string
	html     string
	page     *proto.PagePrintToPDF
	output   []byte
	err      error
	closed   bool
	closeErr error
}

func (p *stubPrinter) print(_ context.Context, pageURL string, page *proto.PagePrintToPDF) ([]byte, error) {
	p.url, p.page = pageURL, page
	u, err := url.Parse(pageURL)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(u.Path)
	if err != nil {
		return nil, err
	}
	p.html = string(data)
	return p.output, p.err
}

func (p *stubPrinter) Close() error {
	p.closed = true
	return p.closeErr
}

// ---------------------------------------------------------------------------
// chromePDF
// ---------------------------------------------------------------------------

func TestChromePDF_ToPDF(t *testing.T) {
	t.Parallel()

	t.Run("prints temp file then removes it", func(t *testing.T) {
		t.Parallel()

		p := &stubPrinter{output: []byte("%PDF-1.7")}
		c := &chromePDF{printer: p, page: printOptions(docx.DefaultSettings())}

		got, err := c.ToPDF(context.Background(), "<h2>Scope</h2>")
		if err != nil {
			t.Fatalf("ToPDF() error = %v", err)
		}
		if string(got) != "%PDF-1.7" {
			t.Errorf("ToPDF() = %q", got)
		}
		if p.html != "<h2>Scope</h2>" {
			t.Errorf("printed %q", p.html)
		}
		if p.page != c.page {
			t.Error("print options not forwarded")
		}

		u, _ := url.Parse(p.url)
		if u.Scheme != "file" {
			t.Errorf("url scheme = %q, want file", u.Scheme)
		}
		if _, err := os.Stat(u.Path); !errors.Is(err, os.ErrNotExist) {
			t.Errorf("temp file %s left behind", u.Path)
		}
	})

	t.Run("printer error is returned", func(t *testing.T) {
		t.Parallel()

		c := &chromePDF{printer: &stubPrinter{err: ErrPageLoad}}
		if _, err := c.ToPDF(context.Background(), "<p/>"); !errors.Is(err, ErrPageLoad) {
			t.Errorf("ToPDF() error = %v, want ErrPageLoad", err)
		}
	})
}

func TestChromePDF_Close(t *testing.T) {
	t.Parallel()

	closeErr := errors.New("close failed")
	p := &stubPrinter{closeErr: closeErr}
	if err := (&chromePDF{printer: p}).Close(); !errors.Is(err, closeErr) || !p.closed {
		t.Errorf("Close() = %v, closed = %v", err, p.closed)
	}
	if err := (&chromePDF{}).Close(); err != nil {
		t.Errorf("Close() without printer = %v", err)
	}
}

// ---------------------------------------------------------------------------
// printOptions
// ---------------------------------------------------------------------------

func TestPrintOptions(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		settings  docx.Settings
		wantPaper [2]float64
		wantEdge  float64
	}{
		{
			name:      "letter with one inch margins",
			settings:  docx.Settings{PageWidth: 12240, PageHeight: 15840, Margin: 1440},
			wantPaper: [2]float64{8.5, 11},
			wantEdge:  1,
		},
		{
			name:      "a4 with half inch margins",
			settings:  docx.Settings{PageWidth: 11906, PageHeight: 16838, Margin: 720},
			wantPaper: [2]float64{11906.0 / 1440, 16838.0 / 1440},
			wantEdge:  0.5,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			opts := printOptions(tt.settings)
			got := []float64{
				*opts.PaperWidth, *opts.PaperHeight,
				*opts.MarginTop, *opts.MarginBottom, *opts.MarginLeft, *opts.MarginRight,
			}
			want := []float64{
				tt.wantPaper[0], tt.wantPaper[1],
				tt.wantEdge, tt.wantEdge, tt.wantEdge, tt.wantEdge,
			}
			if diff := cmp.Diff(want, got); diff != "" {
				t.Errorf("printOptions() mismatch (-want +got):\n%s", diff)
			}
			if !opts.PrintBackground {
				t.Error("PrintBackground should be set")
			}
		})
	}
}

// ---------------------------------------------------------------------------
// chromeSession
// ---------------------------------------------------------------------------

func TestNewLauncher(t *testing.T) {
	t.Parallel()

	env := func(m map[string]string) func(string) string {
		return func(k string) string { return m[k] }
	}

	t.Run("custom binary disables sandbox", func(t *testing.T) {
		t.Parallel()

		l := newLauncher(env(map[string]string{"ROD_BROWSER_BIN": "/opt/chrome/chrome"}))
		if got := l.Get(flags.Bin); got != "/opt/chrome/chrome" {
			t.Errorf("bin = %q", got)
		}
		if !l.Has(flags.NoSandbox) {
			t.Error("sandbox should be disabled with a custom binary")
		}
	})

	t.Run("no sandbox variable", func(t *testing.T) {
		t.Parallel()

		l := newLauncher(env(map[string]string{"ROD_NO_SANDBOX": "1"}))
		if !l.Has(flags.NoSandbox) {
			t.Error("ROD_NO_SANDBOX=1 should disable the sandbox")
		}
	})

	t.Run("ci disables sandbox", func(t *testing.T) {
		t.Parallel()

		if l := newLauncher(env(map[string]string{"CI": "true"})); !l.Has(flags.NoSandbox) {
			t.Error("CI=true should disable the sandbox")
		}
	})
}

func TestChromeSession_ContextChecks(t *testing.T) {
	t.Parallel()

	t.Run("canceled before launch", func(t *testing.T) {
		t.Parallel()

		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		s := &chromeSession{timeout: time.Second, getenv: func(string) string { return "" }}
		if _, err := s.print(ctx, "file:///none.html", nil); !errors.Is(err, context.Canceled) {
			t.Errorf("print() error = %v, want context.Canceled", err)
		}
		if s.launcher != nil || s.browser != nil {
			t.Error("no browser should be launched for a canceled context")
		}
	})

	t.Run("deadline shortens timeout", func(t *testing.T) {
		t.Parallel()

		s := &chromeSession{timeout: time.Hour}
		ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
		defer cancel()

		got, err := s.loadTimeout(ctx)
		if err != nil || got > time.Minute || got <= 0 {
			t.Errorf("loadTimeout() = %v, %v", got, err)
		}
		if got, _ := s.loadTimeout(context.Background()); got != time.Hour {
			t.Errorf("loadTimeout() without deadline = %v, want 1h", got)
		}
	})

	t.Run("close without browser", func(t *testing.T) {
		t.Parallel()

		if err := (&chromeSession{}).Close(); err != nil {
			t.Errorf("Close() error = %v", err)
		}
	})
}
