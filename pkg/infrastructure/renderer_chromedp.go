package infrastructure

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/chromedp"
)

// ChromedpRenderer prints a portfolio snapshot to PDF in headless Chrome.
type ChromedpRenderer struct {
	ChromePath string
	Timeout    time.Duration
	logger     *slog.Logger
}

func NewChromedpRenderer(chromePath string, logger *slog.Logger) *ChromedpRenderer {
	if logger == nil {
		logger = slog.Default()
	}
	return &ChromedpRenderer{ChromePath: chromePath, Timeout: 60 * time.Second, logger: logger}
}

func (r *ChromedpRenderer) RenderHTMLToPDF(ctx context.Context, html string) ([]byte, error) {
	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", true),
		chromedp.Flag("no-sandbox", true),
		chromedp.Flag("disable-gpu", true),
		chromedp.Flag("disable-dev-shm-usage", true),
	)
	if r.ChromePath != "" {
		opts = append(opts, chromedp.ExecPath(r.ChromePath))
	}

	allocCtx, cancel := chromedp.NewExecAllocator(ctx, opts...)
	defer cancel()

	cctx, cancelCtx := chromedp.NewContext(allocCtx)
	defer cancelCtx()

	runCtx, cancelRun := context.WithTimeout(cctx, r.Timeout)
	defer cancelRun()

	tmpDir, err := os.MkdirTemp("", "portfolio-")
	if err != nil {
		return nil, err
	}
	defer os.RemoveAll(tmpDir)

	htmlPath := filepath.Join(tmpDir, "index.html")
	if err := os.WriteFile(htmlPath, []byte(html), 0o644); err != nil {
		return nil, err
	}

	start := time.Now()
	var pdfBuf []byte
	err = chromedp.Run(runCtx,
		chromedp.Navigate("file://"+htmlPath),
		chromedp.WaitReady("body", chromedp.ByQuery),
		chromedp.ActionFunc(func(ctx context.Context) error {
			var err error
			// A4: 210mm x 297mm -> inches: 8.27 x 11.69
			pdfBuf, _, err = page.PrintToPDF().WithPrintBackground(true).
				WithPaperWidth(8.27).
				WithPaperHeight(11.69).
				WithPreferCSSPageSize(true).
				Do(ctx)
			return err
		}),
	)
	if err != nil {
		return nil, fmt.Errorf("print to pdf: %w", err)
	}
	r.logger.Debug("pdf rendered", "bytes", len(pdfBuf), "took", time.Since(start))
	return pdfBuf, nil
}
