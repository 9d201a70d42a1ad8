package checker

import (
	"context"
	"fmt"
	"time"

	"github.com/yegors/starwatch/internal/report"
	"github.com/yegors/starwatch/internal/visibility"
	"github.com/yegors/starwatch/pkg/logger"
)

// PageSource reads visibility predictions for the next 24 hours
type PageSource interface {
	Scrape(ctx context.Context, now time.Time) (*visibility.Page, error)
}

// LaunchSource reports whether a Starlink launch happened in the last 24 hours
type LaunchSource interface {
	LaunchToday(ctx context.Context, now time.Time) (bool, error)
}

// Checker collects the prediction page and launch schedule into one report
type Checker struct {
	pages    PageSource
	launches LaunchSource
	logger   *logger.Logger
}

// NewChecker creates a new checker
func NewChecker(pages PageSource, launches LaunchSource, log *logger.Logger) *Checker {
	return &Checker{
		pages:    pages,
		launches: launches,
		logger:   log.Named("checker"),
	}
}

// Run performs one check relative to now. Any collaborator failure aborts
// the run; no partial report is returned.
func (c *Checker) Run(ctx context.Context, now time.Time) (*report.VisibilityReport, error) {
	c.logger.Debug("Starting visibility check", logger.Time("now", now))

	page, err := c.pages.Scrape(ctx, now)
	if err != nil {
		return nil, fmt.Errorf("checking visibility: %w", err)
	}

	launchToday, err := c.launches.LaunchToday(ctx, now)
	if err != nil {
		return nil, fmt.Errorf("checking launches: %w", err)
	}

	r := &report.VisibilityReport{
		Good:        page.Good,
		Average:     page.Average,
		Visible:     page.Visible,
		LaunchToday: launchToday,
		CheckedAt:   now,
	}

	c.logger.Info("Visibility check complete",
		logger.Bool("visible", r.Visible),
		logger.Int("good_count", len(r.Good)),
		logger.Int("average_count", len(r.Average)),
		logger.Bool("launch_today", r.LaunchToday),
	)

	return r, nil
}
