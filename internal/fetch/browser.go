package fetch

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/chromedp/chromedp"
)

// renderSettle is how long to wait after load for client-side rendering.
const renderSettle = 2 * time.Second

// WithBrowser renders urlStr in headless Chrome and returns the resulting HTML.
// Requires Chrome/Chromium to be installed on the system.
func WithBrowser(ctx context.Context, urlStr string, timeout time.Duration) (*Result, error) {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	log.Printf("[browser] rendering %s", urlStr)

	allocCtx, cancel := chromedp.NewExecAllocator(ctx,
		append(chromedp.DefaultExecAllocatorOptions[:],
			chromedp.Flag("headless", true),
			chromedp.Flag("disable-gpu", true),
			chromedp.Flag("no-sandbox", true),
			chromedp.Flag("disable-dev-shm-usage", true),
			chromedp.UserAgent(DefaultUserAgent),
		)...,
	)
	defer cancel()

	browserCtx, cancel := chromedp.NewContext(allocCtx)
	defer cancel()

	browserCtx, cancel = context.WithTimeout(browserCtx, timeout)
	defer cancel()

	var html string
	err := chromedp.Run(browserCtx,
		chromedp.Navigate(urlStr),
		chromedp.WaitReady("body"),
		chromedp.Sleep(renderSettle),
		chromedp.OuterHTML("html", &html),
	)
	if err != nil {
		return nil, &Error{
			URL:     urlStr,
			Message: "browser rendering failed",
			Cause:   fmt.Errorf("chromedp: %w", err),
		}
	}

	log.Printf("[browser] rendered %s: %d bytes", urlStr, len(html))
	return &Result{URL: urlStr, HTML: html, ContentType: "text/html"}, nil
}
