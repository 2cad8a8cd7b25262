package pdfgen

import (
	"context"
	"os"
	"path/filepath"
	"time"

	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/chromedp"
	"go.uber.org/zap"

	"github.com/jonathan/resume-builder/internal/layout"
	"github.com/jonathan/resume-builder/internal/preview"
)

// US Letter in inches
const (
	paperWidth  = 8.5
	paperHeight = 11
)

// ChromeEngine prints the HTML preview with headless Chrome
type ChromeEngine struct {
	// ExecPath is the browser binary. CHROME_PATH is used when empty.
	ExecPath string
	Timeout  time.Duration
	Logger   *zap.Logger
}

// Name implements Engine.
func (e *ChromeEngine) Name() string { return EngineChrome }

// Render implements Engine.
func (e *ChromeEngine) Render(ctx context.Context, job Job) ([]byte, error) {
	html, err := preview.PrintHTML(job.Bundle())
	if err != nil {
		return nil, &Error{Message: "failed to render HTML", Cause: err}
	}
	return e.Print(ctx, html, job.Settings.Margins)
}

// Print loads html in a fresh browser and prints it on US Letter paper with the given margins.
func (e *ChromeEngine) Print(ctx context.Context, html string, margins layout.Margins) ([]byte, error) {
	logger := loggerOrNop(e.Logger)

	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", true),
		chromedp.Flag("no-sandbox", true),
		chromedp.Flag("disable-gpu", true),
		chromedp.Flag("disable-dev-shm-usage", true),
	)
	execPath := e.ExecPath
	if execPath == "" {
		execPath = os.Getenv("CHROME_PATH")
	}
	if execPath != "" {
		opts = append(opts, chromedp.ExecPath(execPath))
	}

	allocCtx, cancelAlloc := chromedp.NewExecAllocator(ctx, opts...)
	defer cancelAlloc()

	browserCtx, cancelBrowser := chromedp.NewContext(allocCtx)
	defer cancelBrowser()

	runCtx, cancelRun := context.WithTimeout(browserCtx, timeoutOrDefault(e.Timeout))
	defer cancelRun()

	tmpDir, err := os.MkdirTemp("", "resume-html-")
	if err != nil {
		return nil, &Error{Message: "failed to create temporary directory", Cause: err}
	}
	defer os.RemoveAll(tmpDir)

	htmlPath := filepath.Join(tmpDir, "index.html")
	if err := os.WriteFile(htmlPath, []byte(html), 0o644); err != nil {
		return nil, &Error{Message: "failed to write HTML", Cause: err}
	}

	start := time.Now()
	var buf []byte
	err = chromedp.Run(runCtx,
		chromedp.Navigate("file://"+htmlPath),
		chromedp.WaitReady("body", chromedp.ByQuery),
		chromedp.ActionFunc(func(ctx context.Context) error {
			var err error
			buf, _, err = page.PrintToPDF().
				WithPrintBackground(true).
				WithPaperWidth(paperWidth).
				WithPaperHeight(paperHeight).
				WithMarginTop(margins.Top).
				WithMarginBottom(margins.Bottom).
				WithMarginLeft(margins.Left).
				WithMarginRight(margins.Right).
				Do(ctx)
			return err
		}),
	)
	if err != nil {
		return nil, &Error{Message: "chrome failed to print", Cause: err}
	}

	logger.Debug("printed HTML with chrome", zap.Int("bytes", len(buf)), zap.Duration("elapsed", time.Since(start)))
	return buf, nil
}
