package notify

import (
	"fmt"
	"io"
	"strings"

	"github.com/yegors/starwatch/internal/report"
	"github.com/yegors/starwatch/pkg/logger"
)

// Notifier writes visibility notifications as plain text
type Notifier struct {
	out       io.Writer
	sourceURL string
	logger    *logger.Logger
}

// NewNotifier creates a notifier that credits sourceURL in every message
func NewNotifier(out io.Writer, sourceURL string, log *logger.Logger) *Notifier {
	return &Notifier{
		out:       out,
		sourceURL: sourceURL,
		logger:    log.Named("notifier"),
	}
}

// Notify writes the report if it contains any visibility window.
// Nothing is written otherwise.
func (n *Notifier) Notify(r *report.VisibilityReport) error {
	text := Format(r, n.sourceURL)
	if text == "" {
		n.logger.Debug("No visibility windows, nothing to report")
		return nil
	}

	if _, err := io.WriteString(n.out, text); err != nil {
		return fmt.Errorf("failed to write notification: %w", err)
	}

	n.logger.Debug("Notification written",
		logger.Int("good_count", len(r.Good)),
		logger.Int("average_count", len(r.Average)),
		logger.Bool("launch_today", r.LaunchToday),
	)
	return nil
}

// Format renders the notification text, or "" when the report has no timings
func Format(r *report.VisibilityReport, sourceURL string) string {
	if !r.HasTimings() {
		return ""
	}

	var sections []string
	if !r.Visible {
		sections = append(sections, "Starlink Not Visible")
	}

	categories := []struct {
		title   string
		entries []report.TimingEntry
	}{
		{"Good visibility:", r.Good},
		{"Average visibility:", r.Average},
	}
	for _, c := range categories {
		if len(c.entries) == 0 {
			continue
		}
		sections = append(sections, "\n"+c.title)
		for _, e := range c.entries {
			sections = append(sections, fmt.Sprintf("%s\n %s\n %s", e.Date, e.Note, e.Direction))
		}
	}

	if r.LaunchToday {
		sections = append(sections, "\nStarlink satellite launch today!")
	}
	sections = append(sections, "\n"+sourceURL)

	return strings.Join(sections, "\n") + "\n"
}
