package window

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

var ref = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

func TestInWindowForwardBoundaries(t *testing.T) {
	assert.True(t, InWindow(ref, ref, Forward))
	assert.False(t, InWindow(ref, ref.Add(-time.Second), Forward))
	assert.False(t, InWindow(ref, ref.Add(24*time.Hour), Forward))
	assert.True(t, InWindow(ref, ref.Add(24*time.Hour-time.Second), Forward))
}

func TestInWindowBackwardBoundaries(t *testing.T) {
	assert.True(t, InWindow(ref, ref.Add(-24*time.Hour), Backward))
	assert.False(t, InWindow(ref, ref.Add(-24*time.Hour-time.Second), Backward))
	assert.False(t, InWindow(ref, ref, Backward))
	assert.True(t, InWindow(ref, ref.Add(-time.Second), Backward))
}

func TestInWindowScenarios(t *testing.T) {
	tests := []struct {
		name      string
		candidate time.Time
		dir       Direction
		want      bool
	}{
		{"midday tomorrow side", time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC), Forward, true},
		{"one second past the forward edge", time.Date(2024, 1, 2, 0, 0, 1, 0, time.UTC), Forward, false},
		{"one second before reference", time.Date(2023, 12, 31, 23, 59, 59, 0, time.UTC), Backward, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, InWindow(ref, tt.candidate, tt.dir))
		})
	}
}

func TestInWindowIsPure(t *testing.T) {
	c := ref.Add(3 * time.Hour)
	first := InWindow(ref, c, Forward)
	second := InWindow(ref, c, Forward)
	assert.Equal(t, first, second)
}

func TestContainsComparesInstantsAcrossZones(t *testing.T) {
	madrid, err := time.LoadLocation("Europe/Madrid")
	if err != nil {
		t.Skipf("tzdata unavailable: %v", err)
	}
	// 00:30 in Madrid on Jan 1 is 23:30 UTC on Dec 31, before ref.
	c := time.Date(2024, 1, 1, 0, 30, 0, 0, madrid)
	assert.False(t, InWindow(ref, c, Forward))
	assert.True(t, InWindow(ref, c, Backward))
}

func TestCustomSpanAndUnknownDirection(t *testing.T) {
	w := Window{Span: time.Hour}
	assert.True(t, w.Contains(ref, ref.Add(59*time.Minute), Forward))
	assert.False(t, w.Contains(ref, ref.Add(time.Hour), Forward))
	assert.False(t, w.Contains(ref, ref, Direction(7)))
	assert.Equal(t, "unknown", Direction(7).String())
}
