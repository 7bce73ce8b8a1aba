package cv

import (
	"context"
	"os/exec"
	"strings"
	"time"

	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/chromedp"
)

// PDFContentType is the media type of printed documents.
const PDFContentType = "application/pdf"

// DefaultPDFTimeout bounds a single print.
const DefaultPDFTimeout = 30 * time.Second

// PDFOptions configures the headless browser.
type PDFOptions struct {
	Timeout time.Duration
	// ExecPath overrides the Chrome binary lookup.
	ExecPath string
}

var chromeNames = []string{
	"google-chrome",
	"google-chrome-stable",
	"chromium",
	"chromium-browser",
	"headless-shell",
}

// FindChrome returns the path of a Chrome or Chromium binary on PATH.
func FindChrome() (string, bool) {
	for _, name := range chromeNames {
		if p, err := exec.LookPath(name); err == nil {
			return p, true
		}
	}
	return "", false
}

// PDFFilename swaps the document extension for ".pdf".
func PDFFilename(filename string) string {
	return strings.TrimSuffix(filename, Extension) + ".pdf"
}

// RenderPDF prints doc with headless Chrome. Chrome must be installed.
func RenderPDF(ctx context.Context, doc *Document, opts *PDFOptions) (Artifact, error) {
	if opts == nil {
		opts = &PDFOptions{}
	}
	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = DefaultPDFTimeout
	}

	allocOpts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", true),
		chromedp.Flag("disable-gpu", true),
		chromedp.Flag("no-sandbox", true),
		chromedp.Flag("disable-dev-shm-usage", true),
	)
	if opts.ExecPath != "" {
		allocOpts = append(allocOpts, chromedp.ExecPath(opts.ExecPath))
	}

	allocCtx, cancel := chromedp.NewExecAllocator(ctx, allocOpts...)
	defer cancel()

	browserCtx, cancel := chromedp.NewContext(allocCtx)
	defer cancel()

	browserCtx, cancel = context.WithTimeout(browserCtx, timeout)
	defer cancel()

	var pdf []byte
	err := chromedp.Run(browserCtx,
		chromedp.Navigate("about:blank"),
		chromedp.ActionFunc(func(ctx context.Context) error {
			tree, err := page.GetFrameTree().Do(ctx)
			if err != nil {
				return err
			}
			return page.SetDocumentContent(tree.Frame.ID, doc.Content).Do(ctx)
		}),
		chromedp.WaitReady("body"),
		chromedp.ActionFunc(func(ctx context.Context) error {
			data, _, err := page.PrintToPDF().WithPrintBackground(true).Do(ctx)
			if err != nil {
				return err
			}
			pdf = data
			return nil
		}),
	)
	if err != nil {
		return Artifact{}, &PDFError{Message: "browser print failed", Cause: err}
	}

	return Artifact{
		Filename:    PDFFilename(doc.Filename),
		ContentType: PDFContentType,
		Data:        pdf,
	}, nil
}
