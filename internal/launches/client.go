package launches

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/tidwall/gjson"

	"github.com/yegors/starwatch/internal/failure"
	"github.com/yegors/starwatch/internal/window"
	"github.com/yegors/starwatch/pkg/logger"
)

// maxBodyBytes bounds the response read from the launch API
const maxBodyBytes = 8 << 20

// Client queries the launch schedule API
type Client struct {
	httpClient *http.Client
	url        string
	nameFilter string
	logger     *logger.Logger
}

// NewClient creates a launch API client
func NewClient(url, nameFilter string, timeout time.Duration, log *logger.Logger) *Client {
	return &Client{
		httpClient: &http.Client{
			Timeout: timeout,
		},
		url:        url,
		nameFilter: nameFilter,
		logger:     log.Named("launches"),
	}
}

// fetch returns the raw launch listing. ok is false when the API answered
// with a non-2xx status, which callers treat as "no launch data".
func (c *Client) fetch(ctx context.Context) (body []byte, ok bool, err error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.url, nil)
	if err != nil {
		return nil, false, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	c.logger.Debug("Fetching upcoming launches", logger.String("url", c.url))

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, false, failure.New(failure.Transport, "fetching launches", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		c.logger.Warn("Launch API unavailable, skipping launch check",
			logger.Int("status_code", resp.StatusCode),
			logger.String("url", c.url),
		)
		return nil, false, nil
	}

	body, err = io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes+1))
	if err != nil {
		return nil, false, failure.New(failure.Transport, "reading launches response", err)
	}
	if len(body) > maxBodyBytes {
		return nil, false, failure.Newf(failure.Transport, "launches response exceeds %d byte limit", maxBodyBytes)
	}
	// An undecodable body counts as a failed exchange with the API, not a data error
	if !gjson.ValidBytes(body) {
		return nil, false, failure.Newf(failure.Transport, "decoding launches response: body is not valid JSON")
	}

	return body, true, nil
}

// LaunchToday reports whether a matching launch started in the 24 hours before now
func (c *Client) LaunchToday(ctx context.Context, now time.Time) (bool, error) {
	body, ok, err := c.fetch(ctx)
	if err != nil || !ok {
		return false, err
	}

	launch, found, err := MatchLaunchToday(body, c.nameFilter, now)
	if err != nil {
		return false, err
	}
	if found {
		c.logger.Info("Starlink launch in the last 24 hours",
			logger.String("name", launch.Name),
			logger.Time("window_start", launch.WindowStart),
		)
	} else {
		c.logger.Debug("No recent Starlink launch")
	}
	return found, nil
}

// MatchLaunchToday scans a launch listing for the first launch whose name
// contains nameFilter and whose window opened in the 24 hours before now.
// Only matching launches have their window_start decoded.
func MatchLaunchToday(body []byte, nameFilter string, now time.Time) (Launch, bool, error) {
	if !gjson.ValidBytes(body) {
		return Launch{}, false, failure.Newf(failure.Parse, "launches response is not valid JSON")
	}
	results := gjson.GetBytes(body, "results")
	if !results.IsArray() {
		return Launch{}, false, failure.Newf(failure.Parse, "launches response has no results array")
	}

	var match Launch
	var found bool
	var decodeErr error
	results.ForEach(func(_, item gjson.Result) bool {
		name := item.Get("name").String()
		if !strings.Contains(name, nameFilter) {
			return true
		}

		start, err := parseWindowStart(item.Get("window_start").String())
		if err != nil {
			decodeErr = failure.New(failure.Parse, fmt.Sprintf("window_start of %q", name), err)
			return false
		}
		if window.InWindow(now, start, window.Backward) {
			match, found = Launch{Name: name, WindowStart: start}, true
			return false
		}
		return true
	})
	if decodeErr != nil {
		return Launch{}, false, decodeErr
	}

	return match, found, nil
}

func parseWindowStart(raw string) (time.Time, error) {
	t, err := time.Parse(windowStartLayout, raw)
	if err == nil {
		return t, nil
	}
	// Fractional seconds and explicit offsets are valid RFC 3339 too
	if t, rfcErr := time.Parse(time.RFC3339, raw); rfcErr == nil {
		return t, nil
	}
	return time.Time{}, err
}
