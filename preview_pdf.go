package md2docx

import (
	"context"
	"fmt"
	"io"
	"net/url"
	"os"
	"path/filepath"
	"time"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/proto"

	"github.com/alnah/go-md2docx/internal/docx"
	"github.com/alnah/go-md2docx/internal/fileutil"
	"github.com/alnah/go-md2docx/internal/process"
)

// pdfConverter prints preview HTML to PDF.
type pdfConverter interface {
	ToPDF(ctx context.Context, htmlContent string) ([]byte, error)
	Close() error
}

// printer prints one page URL. The browser-backed implementation is
// chromeSession; tests substitute their own.
type printer interface {
	print(ctx context.Context, pageURL string, page *proto.PagePrintToPDF) ([]byte, error)
	Close() error
}

var (
	_ pdfConverter = (*chromePDF)(nil)
	_ printer      = (*chromeSession)(nil)
)

// chromePDF writes the preview to a temp file and prints it with the page
// geometry of the DOCX output.
type chromePDF struct {
	printer printer
	page    *proto.PagePrintToPDF
}

func newChromePDF(timeout time.Duration, s docx.Settings) *chromePDF {
	return &chromePDF{
		printer: &chromeSession{timeout: timeout, getenv: os.Getenv},
		page:    printOptions(s),
	}
}

func (c *chromePDF) ToPDF(ctx context.Context, htmlContent string) ([]byte, error) {
	path, cleanup, err := fileutil.WriteTempFile(htmlContent, "html")
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPDFGeneration, err)
	}
	defer cleanup()

	return c.printer.print(ctx, fileURL(path), c.page)
}

func (c *chromePDF) Close() error {
	if c.printer == nil {
		return nil
	}
	return c.printer.Close()
}

// printOptions converts DOCX page settings (twips) to Chrome's inch-based
// print parameters.
func printOptions(s docx.Settings) *proto.PagePrintToPDF {
	inches := func(twips int) *float64 {
		v := float64(twips) / docx.TwipsPerInch
		return &v
	}
	return &proto.PagePrintToPDF{
		PaperWidth:      inches(s.PageWidth),
		PaperHeight:     inches(s.PageHeight),
		MarginTop:       inches(s.Margin),
		MarginBottom:    inches(s.Margin),
		MarginLeft:      inches(s.Margin),
		MarginRight:     inches(s.Margin),
		PrintBackground: true,
	}
}

func fileURL(path string) string {
	if abs, err := filepath.Abs(path); err == nil {
		path = abs
	}
	return (&url.URL{Scheme: "file", Path: filepath.ToSlash(path)}).String()
}

// chromeSession owns one headless Chrome, launched on first use and kept
// for the rest of the batch.
type chromeSession struct {
	timeout time.Duration
	getenv  func(string) string

	launcher *launcher.Launcher
	browser  *rod.Browser
}

// newLauncher honours ROD_BROWSER_BIN and disables the sandbox where Chrome
// cannot create one (CI, ROD_NO_SANDBOX=1, or a custom binary, which in
// practice means a container image).
func newLauncher(getenv func(string) string) *launcher.Launcher {
	l := launcher.New()
	bin := getenv("ROD_BROWSER_BIN")
	if bin != "" {
		l = l.Bin(bin)
	}
	if bin != "" || getenv("CI") == "true" || getenv("ROD_NO_SANDBOX") == "1" {
		l = l.NoSandbox(true)
	}
	return l
}

func (s *chromeSession) connect() error {
	if s.browser != nil {
		return nil
	}

	s.launcher = newLauncher(s.getenv)
	controlURL, err := s.launcher.Launch()
	if err != nil {
		s.launcher = nil
		return fmt.Errorf("%w: %v", ErrBrowserConnect, err)
	}

	b := rod.New().ControlURL(controlURL)
	if err := b.Connect(); err != nil {
		s.stop()
		return fmt.Errorf("%w: %v", ErrBrowserConnect, err)
	}
	s.browser = b
	return nil
}

// loadTimeout is the session timeout, shortened to the context deadline.
func (s *chromeSession) loadTimeout(ctx context.Context) (time.Duration, error) {
	deadline, ok := ctx.Deadline()
	if !ok {
		return s.timeout, nil
	}
	left := time.Until(deadline)
	if left <= 0 {
		return 0, context.DeadlineExceeded
	}
	return min(left, s.timeout), nil
}

func (s *chromeSession) print(ctx context.Context, pageURL string, opts *proto.PagePrintToPDF) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	timeout, err := s.loadTimeout(ctx)
	if err != nil {
		return nil, err
	}
	if err := s.connect(); err != nil {
		return nil, err
	}

	page, err := s.browser.Page(proto.TargetCreateTarget{URL: pageURL})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPageCreate, err)
	}
	defer page.Close()

	if err := page.Timeout(timeout).WaitLoad(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPageLoad, err)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	stream, err := page.PDF(opts)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPDFGeneration, err)
	}
	data, err := io.ReadAll(stream)
	if err != nil {
		return nil, fmt.Errorf("%w: reading PDF stream: %v", ErrPDFGeneration, err)
	}
	return data, nil
}

// Close shuts the browser down and kills any renderer processes it left.
func (s *chromeSession) Close() error {
	var err error
	if s.browser != nil {
		err = s.browser.Close()
		s.browser = nil
	}
	s.stop()
	return err
}

func (s *chromeSession) stop() {
	if s.launcher == nil {
		return
	}
	_ = process.KillTree(s.launcher.PID())
	s.launcher.Kill()
	s.launcher = nil
}
