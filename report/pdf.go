package report

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"time"

	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/chromedp"
)

// PrintPDF loads htmlPath in headless Chrome and prints it to pdfPath.
func (b *Builder) PrintPDF(ctx context.Context, htmlPath, pdfPath, chromeBin string) error {
	abs, err := filepath.Abs(htmlPath)
	if err != nil {
		return fmt.Errorf("report: resolve %q: %w", htmlPath, err)
	}

	if chromeBin == "" {
		chromeBin = findChromeBinary()
	}
	b.logger.Info("[report] Using browser binary: %s", chromeBin)

	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", true),
		chromedp.Flag("disable-gpu", true),
		chromedp.Flag("no-sandbox", true),
		chromedp.Flag("disable-dev-shm-usage", true),
		chromedp.Flag("allow-file-access-from-files", true),
	)
	if chromeBin != "" {
		opts = append(opts, chromedp.ExecPath(chromeBin))
	}

	ctx, cancel := context.WithTimeout(ctx, 2*time.Minute)
	defer cancel()

	allocCtx, cancelAlloc := chromedp.NewExecAllocator(ctx, opts...)
	defer cancelAlloc()

	// Suppress chromedp log noise
	tabCtx, cancelTab := chromedp.NewContext(allocCtx, chromedp.WithLogf(func(string, ...interface{}) {}))
	defer cancelTab()

	var pdf []byte
	err = chromedp.Run(tabCtx,
		chromedp.Navigate("file://"+filepath.ToSlash(abs)),
		chromedp.WaitReady("body", chromedp.ByQuery),
		chromedp.ActionFunc(func(ctx context.Context) error {
			var err error
			pdf, _, err = page.PrintToPDF().
				WithPrintBackground(true).
				WithLandscape(true).
				Do(ctx)
			return err
		}),
	)
	if err != nil {
		return fmt.Errorf("report: print pdf: %w", err)
	}

	if err := os.WriteFile(pdfPath, pdf, 0644); err != nil {
		return fmt.Errorf("report: write %q: %w", pdfPath, err)
	}
	b.logger.Info("[report] Wrote %s (%d bytes)", pdfPath, len(pdf))
	return nil
}

// findChromeBinary resolves CHROME_BIN, then the usual browser names on PATH.
// An empty result lets chromedp fall back to its own lookup.
func findChromeBinary() string {
	if bin := os.Getenv("CHROME_BIN"); bin != "" {
		return bin
	}
	for _, name := range []string{"google-chrome-stable", "google-chrome", "chromium", "chromium-browser"} {
		if path, err := exec.LookPath(name); err == nil {
			return path
		}
	}
	return ""
}
