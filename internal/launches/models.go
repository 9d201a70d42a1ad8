package launches

import "time"

// Launch is one entry of the upcoming-launch listing
type Launch struct {
	Name        string    `json:"name"`
	WindowStart time.Time `json:"window_start"`
}

// windowStartLayout is the Launch Library 2 timestamp format
const windowStartLayout = "2006-01-02T15:04:05Z"
