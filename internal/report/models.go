package report

import "time"

// TimingEntry is one predicted pass as shown on the prediction page
type TimingEntry struct {
	Date       string    `json:"date"`       // As displayed, e.g. "7:42 PM, 16 Oct 2026"
	Brightness string    `json:"brightness"` // Dim label from the page
	Direction  string    `json:"direction"`  // Compass bearings joined by "-"
	Note       string    `json:"note"`       // Visibility note
	At         time.Time `json:"at"`         // Parsed instant of Date
}

// VisibilityReport is the outcome of a single check run
type VisibilityReport struct {
	Good        []TimingEntry `json:"good"`
	Average     []TimingEntry `json:"average"`
	Visible     bool          `json:"visible"`
	LaunchToday bool          `json:"launch_today"`
	CheckedAt   time.Time     `json:"checked_at"`
}

// HasTimings reports whether any visibility window was found
func (r *VisibilityReport) HasTimings() bool {
	return len(r.Good) > 0 || len(r.Average) > 0
}
