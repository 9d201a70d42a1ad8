package visibility

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/chromedp/chromedp"

	"github.com/yegors/starwatch/internal/config"
	"github.com/yegors/starwatch/internal/failure"
	"github.com/yegors/starwatch/pkg/logger"
)

// Browser is a headless Chrome session driven over the DevTools protocol.
// It is started by NewBrowser and must be released with Close.
type Browser struct {
	ctx         context.Context
	cancel      context.CancelFunc
	allocCancel context.CancelFunc
	loadTimeout time.Duration
	settle      time.Duration
	closeOnce   sync.Once
	logger      *logger.Logger
}

// NewBrowser launches Chrome with the given configuration
func NewBrowser(ctx context.Context, cfg config.BrowserConfig, log *logger.Logger) (*Browser, error) {
	log = log.Named("browser")

	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", cfg.Headless),
		chromedp.NoSandbox,
		chromedp.Flag("disable-dev-shm-usage", true),
	)
	if cfg.ExecPath != "" {
		opts = append(opts, chromedp.ExecPath(cfg.ExecPath))
	}

	allocCtx, allocCancel := chromedp.NewExecAllocator(ctx, opts...)
	sugar := log.Sugar()
	browserCtx, cancel := chromedp.NewContext(allocCtx,
		chromedp.WithLogf(sugar.Debugf),
		chromedp.WithErrorf(sugar.Debugf),
	)

	// The first Run starts the browser. It must not carry a timeout, since
	// cancelling it would kill the browser along with it.
	if err := chromedp.Run(browserCtx); err != nil {
		cancel()
		allocCancel()
		return nil, failure.New(failure.PageLoad, "starting browser", err)
	}

	log.Debug("Browser started",
		logger.Bool("headless", cfg.Headless),
		logger.String("exec_path", cfg.ExecPath),
	)

	return &Browser{
		ctx:         browserCtx,
		cancel:      cancel,
		allocCancel: allocCancel,
		loadTimeout: cfg.PageLoadTimeout(),
		settle:      cfg.SettleDelay(),
		logger:      log,
	}, nil
}

// Render navigates to url and returns the document once client-side
// rendering has had time to settle.
func (b *Browser) Render(ctx context.Context, url string) (string, error) {
	runCtx, cancel := context.WithTimeout(b.ctx, b.loadTimeout)
	defer cancel()
	stop := context.AfterFunc(ctx, cancel)
	defer stop()

	start := time.Now()
	b.logger.Debug("Loading page", logger.String("url", url))

	var document string
	err := chromedp.Run(runCtx,
		chromedp.Navigate(url),
		chromedp.WaitReady("body", chromedp.ByQuery),
		chromedp.Sleep(b.settle),
		chromedp.OuterHTML("html", &document, chromedp.ByQuery),
	)
	if err != nil {
		if errors.Is(runCtx.Err(), context.DeadlineExceeded) {
			err = fmt.Errorf("page did not load within %s: %w", b.loadTimeout, err)
		}
		return "", failure.New(failure.PageLoad, "loading "+url, err)
	}

	b.logger.Debug("Page rendered",
		logger.String("url", url),
		logger.Int("bytes", len(document)),
		logger.Duration("duration", time.Since(start)),
	)

	return document, nil
}

// Close shuts the browser down. It is safe to call more than once.
func (b *Browser) Close() error {
	var err error
	b.closeOnce.Do(func() {
		err = chromedp.Cancel(b.ctx)
		b.cancel()
		b.allocCancel()
		b.logger.Debug("Browser closed")
	})
	return err
}
