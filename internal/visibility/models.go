package visibility

import (
	"context"

	"github.com/yegors/starwatch/internal/report"
)

// Renderer loads a URL in a browser engine and returns the rendered document
type Renderer interface {
	Render(ctx context.Context, url string) (string, error)
}

// Page is what the prediction page says about the next 24 hours
type Page struct {
	Good    []report.TimingEntry
	Average []report.TimingEntry
	Visible bool // false when the "no visibility" nudge is shown
}

// timingGroup names the elements holding one grade of predictions
type timingGroup struct {
	name        string
	containerID string
	errorID     string
}

var (
	goodGroup    = timingGroup{name: "good", containerID: "goodTimings", errorID: "goodTimingsError"}
	averageGroup = timingGroup{name: "average", containerID: "avgTimings", errorID: "avgTimingsError"}
)

// Element identifiers on the prediction page
const (
	noVisibilityID = "noVisibilityReminderNudge"

	entryClass     = ".timingEntry"
	timingClass    = ".entryTiming"
	dimClass       = ".dimLabel"
	bottomClass    = ".timingEntryBottom"
	directionClass = ".bold"
	noteClass      = ".timingNote"

	// DateLayout is how the page renders a pass time, e.g. "7:42 PM, 16 Oct 2026"
	DateLayout = "3:04 PM, 2 Jan 2006"
)
