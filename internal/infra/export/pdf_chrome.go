package export

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"time"

	"course_completion_report/internal/domain/report"

	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/chromedp"
)

// ChromePDFRenderer prints the HTML rendering through headless Chrome.
type ChromePDFRenderer struct {
	html    *HTMLRenderer
	timeout time.Duration
	opts    []chromedp.ExecAllocatorOption
}

func NewChromePDFRenderer(timeout time.Duration) *ChromePDFRenderer {
	html := NewHTMLRenderer()
	html.Static = true
	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", true),
		chromedp.DisableGPU,
	)
	return &ChromePDFRenderer{html: html, timeout: timeout, opts: opts}
}

func (r *ChromePDFRenderer) ContentType() string { return "application/pdf" }
func (r *ChromePDFRenderer) Extension() string   { return "pdf" }

func (r *ChromePDFRenderer) Render(ctx context.Context, w io.Writer, rep *report.Report) error {
	var doc bytes.Buffer
	if err := r.html.Render(ctx, &doc, rep); err != nil {
		return err
	}

	if r.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.timeout)
		defer cancel()
	}
	allocCtx, cancelAlloc := chromedp.NewExecAllocator(ctx, r.opts...)
	defer cancelAlloc()
	browserCtx, cancelBrowser := chromedp.NewContext(allocCtx)
	defer cancelBrowser()

	var pdf []byte
	err := chromedp.Run(browserCtx,
		chromedp.Navigate("about:blank"),
		chromedp.ActionFunc(func(ctx context.Context) error {
			tree, err := page.GetFrameTree().Do(ctx)
			if err != nil {
				return err
			}
			return page.SetDocumentContent(tree.Frame.ID, doc.String()).Do(ctx)
		}),
		chromedp.ActionFunc(func(ctx context.Context) error {
			var err error
			pdf, _, err = page.PrintToPDF().
				WithLandscape(true).
				WithPrintBackground(true).
				Do(ctx)
			return err
		}),
	)
	if err != nil {
		return fmt.Errorf("failed to print report in chrome: %w", err)
	}

	if _, err := w.Write(pdf); err != nil {
		return fmt.Errorf("failed to write pdf: %w", err)
	}
	return nil
}
