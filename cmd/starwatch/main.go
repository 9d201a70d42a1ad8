// Command starwatch prints a notice when Starlink satellites will be visible
// from Madrid in the next 24 hours.
package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/google/uuid"

	"github.com/yegors/starwatch/internal/checker"
	"github.com/yegors/starwatch/internal/config"
	"github.com/yegors/starwatch/internal/failure"
	"github.com/yegors/starwatch/internal/launches"
	"github.com/yegors/starwatch/internal/notify"
	"github.com/yegors/starwatch/internal/visibility"
	"github.com/yegors/starwatch/pkg/logger"
)

func main() {
	if len(os.Args) > 1 {
		fmt.Fprintln(os.Stderr, "usage: starwatch (takes no arguments)")
		os.Exit(2)
	}

	cfg, err := config.Load(config.DefaultPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	log, err := logger.New(logger.Config{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to create logger: %v\n", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	code := run(ctx, cfg, log.WithRunID(uuid.NewString()), os.Stdout, startChrome)
	stop()
	_ = log.Sync()
	os.Exit(code)
}

// session is the browser as a check run uses it
type session interface {
	visibility.Renderer
	Close() error
}

// browserStarter acquires the browser session for one run
type browserStarter func(ctx context.Context, cfg config.BrowserConfig, log *logger.Logger) (session, error)

func startChrome(ctx context.Context, cfg config.BrowserConfig, log *logger.Logger) (session, error) {
	browser, err := visibility.NewBrowser(ctx, cfg, log)
	if err != nil {
		return nil, err
	}
	return browser, nil
}

// run performs one check, writing the notification or error line to out, and
// returns the process exit status. The browser is released before run
// returns, whatever happened.
func run(ctx context.Context, cfg *config.Config, log *logger.Logger, out io.Writer, start browserStarter) int {
	browser, err := start(ctx, cfg.Browser, log)
	if err != nil {
		return fail(log, out, err)
	}
	defer func() {
		if err := browser.Close(); err != nil {
			log.Warn("Failed to close browser cleanly", logger.Error(err))
		}
	}()

	scraper := visibility.NewScraper(browser, cfg.SourceURL, cfg.Location, log)
	launchClient := launches.NewClient(cfg.LaunchAPIURL, cfg.LaunchNameFilter, cfg.HTTPTimeout, log)
	notifier := notify.NewNotifier(out, cfg.SourceURL, log)

	r, err := checker.NewChecker(scraper, launchClient, log).Run(ctx, time.Now().In(cfg.Location))
	if err != nil {
		return fail(log, out, err)
	}

	if err := notifier.Notify(r); err != nil {
		return fail(log, out, err)
	}
	return 0
}

func fail(log *logger.Logger, out io.Writer, err error) int {
	log.Error("Visibility check failed",
		logger.String("kind", failure.KindOf(err).String()),
		logger.Error(err),
	)
	fmt.Fprintln(out, failure.Message(err))
	return 1
}
