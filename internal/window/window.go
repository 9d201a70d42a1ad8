// Package window decides whether an instant falls inside the rolling
// 24-hour window before or after a reference instant.
package window

import "time"

// Span is the width of the rolling window.
const Span = 24 * time.Hour

// Direction selects which side of the reference instant the window covers.
type Direction int

const (
	// Forward covers [reference, reference+span).
	Forward Direction = iota
	// Backward covers [reference-span, reference).
	Backward
)

func (d Direction) String() string {
	switch d {
	case Forward:
		return "forward"
	case Backward:
		return "backward"
	default:
		return "unknown"
	}
}

// Window is a half-open interval of fixed width anchored at a reference instant.
type Window struct {
	Span time.Duration
}

// Contains reports whether candidate lies in the window on the given side
// of reference. Both ends are half-open so a boundary instant belongs to
// exactly one of two adjacent windows. Instants are compared absolutely,
// independent of their locations.
func (w Window) Contains(reference, candidate time.Time, dir Direction) bool {
	var start, end time.Time
	switch dir {
	case Forward:
		start, end = reference, reference.Add(w.Span)
	case Backward:
		start, end = reference.Add(-w.Span), reference
	default:
		return false
	}
	return !candidate.Before(start) && candidate.Before(end)
}

// InWindow applies the default 24-hour window.
func InWindow(reference, candidate time.Time, dir Direction) bool {
	return Window{Span: Span}.Contains(reference, candidate, dir)
}
