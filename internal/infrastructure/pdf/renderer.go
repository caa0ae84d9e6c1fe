package pdf

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"quotedesk/internal/domain/entities"
	"quotedesk/internal/usecase/interfaces"

	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/chromedp"
)

const defaultRenderTimeout = 30 * time.Second

// A4 paper in inches, portrait.
const (
	paperWidthIn  = 8.27
	paperHeightIn = 11.69
	marginIn      = 0.4
)

// Config controls the chromedp-backed renderer.
type Config struct {
	// Timeout bounds a single render; zero means 30s.
	Timeout time.Duration
	// RemoteURL points at a remote Chrome instance; empty launches a local one.
	RemoteURL string
	// NoSandbox runs Chrome without sandbox (required for Docker/root).
	NoSandbox bool
	// Mock skips Chrome and returns the HTML bytes; for environments
	// without a browser (local dev, CI).
	Mock bool
}

// ChromedpRenderer renders the quote document to PDF through the Chrome
// DevTools protocol. One allocator is shared across renders; each render gets
// its own browser context and deadline.
type ChromedpRenderer struct {
	cfg         Config
	allocCtx    context.Context
	allocCancel context.CancelFunc
}

var _ interfaces.IDocumentRenderer = (*ChromedpRenderer)(nil)

func NewChromedpRenderer(cfg Config) *ChromedpRenderer {
	if cfg.Timeout == 0 {
		cfg.Timeout = defaultRenderTimeout
	}

	r := &ChromedpRenderer{cfg: cfg}
	if cfg.Mock {
		log.Printf("[pdf][renderer] mock mode enabled")
		return r
	}

	if cfg.RemoteURL != "" {
		r.allocCtx, r.allocCancel = chromedp.NewRemoteAllocator(context.Background(), cfg.RemoteURL)
		return r
	}

	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", true),
		chromedp.Flag("disable-gpu", true),
		chromedp.Flag("no-first-run", true),
		chromedp.Flag("disable-extensions", true),
		chromedp.Flag("disable-dev-shm-usage", true), // Important for Docker
	)
	if cfg.NoSandbox {
		opts = append(opts, chromedp.Flag("no-sandbox", true))
	}
	r.allocCtx, r.allocCancel = chromedp.NewExecAllocator(context.Background(), opts...)
	return r
}

// RenderQuote produces the PDF bytes for a quote snapshot and its totals.
func (r *ChromedpRenderer) RenderQuote(ctx context.Context, q entities.Quote, totals entities.Totals) ([]byte, error) {
	html, err := buildQuoteHTML(q, totals)
	if err != nil {
		return nil, fmt.Errorf("building quote document: %w", err)
	}

	if r.cfg.Mock {
		log.Printf("[pdf][renderer] mock render quote_id=%s bytes=%d", q.QuoteID, len(html))
		return []byte(html), nil
	}

	ctx, cancel := context.WithTimeout(ctx, r.cfg.Timeout)
	defer cancel()

	browserCtx, browserCancel := chromedp.NewContext(r.allocCtx)
	defer browserCancel()

	start := time.Now()
	var pdfData []byte
	err = chromedp.Run(browserCtx,
		chromedp.Navigate("about:blank"),
		chromedp.ActionFunc(func(ctx context.Context) error {
			frameTree, err := page.GetFrameTree().Do(ctx)
			if err != nil {
				return err
			}
			return page.SetDocumentContent(frameTree.Frame.ID, html).Do(ctx)
		}),
		chromedp.ActionFunc(func(ctx context.Context) error {
			data, _, err := page.PrintToPDF().
				WithPrintBackground(true).
				WithPaperWidth(paperWidthIn).
				WithPaperHeight(paperHeightIn).
				WithMarginTop(marginIn).
				WithMarginRight(marginIn).
				WithMarginBottom(marginIn).
				WithMarginLeft(marginIn).
				Do(ctx)
			if err != nil {
				return err
			}
			pdfData = data
			return nil
		}),
	)
	if err != nil {
		if errors.Is(ctx.Err(), context.DeadlineExceeded) {
			return nil, fmt.Errorf("pdf rendering timed out after %s: %w", r.cfg.Timeout, err)
		}
		return nil, fmt.Errorf("pdf rendering failed: %w", err)
	}

	log.Printf("[pdf][renderer] render success quote_id=%s bytes=%d duration=%s", q.QuoteID, len(pdfData), time.Since(start))
	return pdfData, nil
}

// Close releases the Chrome allocator.
func (r *ChromedpRenderer) Close() {
	if r.allocCancel != nil {
		r.allocCancel()
	}
}
