package booking

import (
	"context"
	"fmt"
	"runtime"

	"visawatch/pkg/config"
	"visawatch/pkg/logger"

	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/chromedp"

	"go.uber.org/zap"
)

// Session owns one browser instance for the lifetime of a booking
// attempt. The allocator is rooted in the background context so a
// cancelled attempt can still close the browser cleanly.
type Session struct {
	browserCtx    context.Context
	browserCancel context.CancelFunc
	allocCancel   context.CancelFunc
}

// NewSession launches Chrome with the configured profile and strips
// the automation markers the portal checks for.
func NewSession(cfg *config.BookingConfig) (*Session, error) {
	opts := browserOptions(cfg.Headless)
	if path := ChromePathWithFallback(cfg.ChromePath); path != "" {
		logger.Debug("Using Chrome executable", zap.String("path", path))
		opts = append(opts, chromedp.ExecPath(path))
	}

	logger.Debug("Launching browser",
		zap.Bool("headless", cfg.Headless),
		zap.String("platform", runtime.GOOS))

	allocCtx, allocCancel := chromedp.NewExecAllocator(context.Background(), opts...)
	browserCtx, browserCancel := chromedp.NewContext(allocCtx)

	if err := chromedp.Run(browserCtx); err != nil {
		browserCancel()
		allocCancel()
		return nil, fmt.Errorf("%w: %v", ErrBrowserStart, err)
	}

	// navigator.webdriver must read undefined before any portal script
	// runs, so install it for every new document.
	stealth := chromedp.ActionFunc(func(ctx context.Context) error {
		_, err := page.AddScriptToEvaluateOnNewDocument(
			`Object.defineProperty(navigator, 'webdriver', {get: () => undefined})`).Do(ctx)
		return err
	})
	if err := chromedp.Run(browserCtx, stealth); err != nil {
		browserCancel()
		allocCancel()
		return nil, fmt.Errorf("%w: stealth script: %v", ErrBrowserStart, err)
	}

	return &Session{
		browserCtx:    browserCtx,
		browserCancel: browserCancel,
		allocCancel:   allocCancel,
	}, nil
}

// Context returns the chromedp browser context actions run against.
func (s *Session) Context() context.Context {
	return s.browserCtx
}

// Close shuts the browser down.
func (s *Session) Close() {
	s.browserCancel()
	s.allocCancel()
}
