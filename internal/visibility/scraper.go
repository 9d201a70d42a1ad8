package visibility

import (
	"context"
	"time"

	"github.com/yegors/starwatch/pkg/logger"
)

// Scraper reads visibility predictions from the prediction page
type Scraper struct {
	renderer Renderer
	url      string
	location *time.Location
	logger   *logger.Logger
}

// NewScraper creates a scraper for the page at url whose times are shown in loc
func NewScraper(renderer Renderer, url string, loc *time.Location, log *logger.Logger) *Scraper {
	return &Scraper{
		renderer: renderer,
		url:      url,
		location: loc,
		logger:   log.Named("scraper"),
	}
}

// URL returns the prediction page address
func (s *Scraper) URL() string {
	return s.url
}

// Scrape renders the page and extracts the passes in the next 24 hours from now
func (s *Scraper) Scrape(ctx context.Context, now time.Time) (*Page, error) {
	document, err := s.renderer.Render(ctx, s.url)
	if err != nil {
		return nil, err
	}

	page, err := ParsePage(document, now, s.location)
	if err != nil {
		return nil, err
	}

	s.logger.Debug("Parsed prediction page",
		logger.Bool("visible", page.Visible),
		logger.Int("good_count", len(page.Good)),
		logger.Int("average_count", len(page.Average)),
	)

	return page, nil
}
