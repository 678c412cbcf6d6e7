package chart

import (
	"strings"
	"testing"
	"time"

	"github.com/carlmjohnson/be"

	"github.com/xtrack/xtracktui/dashboard"
)

func TestSparkline(t *testing.T) {
	tests := []struct {
		name     string
		values   []float64
		expected string
	}{
		{
			name:     "empty",
			values:   nil,
			expected: "",
		},
		{
			name:     "ascending ramp",
			values:   []float64{0, 1, 2, 3, 4, 5, 6, 7},
			expected: "▁▂▃▄▅▆▇█",
		},
		{
			name:     "flat series renders midpoint",
			values:   []float64{5, 5, 5},
			expected: "▅▅▅",
		},
		{
			name:     "min and max hit the extremes",
			values:   []float64{-10, 10},
			expected: "▁█",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			be.Equal(t, tt.expected, Sparkline(tt.values))
		})
	}
}

func TestSparklineDeterministic(t *testing.T) {
	values := []float64{3, 1, 4, 1, 5, 9, 2, 6}
	be.Equal(t, Sparkline(values), Sparkline(values))
}

func TestViewEmptySeries(t *testing.T) {
	m := New()
	be.True(t, strings.Contains(m.View(), "No data available"))
}

func TestViewShowsRangeLabels(t *testing.T) {
	m := New()
	m.SetSeries([]dashboard.SeriesPoint{
		{Timestamp: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), Label: "Jan 1", Balance: 100, PL: 1},
		{Timestamp: time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC), Label: "Jan 2", Balance: 110, PL: -2},
	})

	view := m.View()
	be.True(t, strings.Contains(view, "Equity Curve"))
	be.True(t, strings.Contains(view, "P/L Performance"))
	be.True(t, strings.Contains(view, "Jan 1"))
	be.True(t, strings.Contains(view, "Jan 2"))
}

func TestViewTruncatesToWidth(t *testing.T) {
	m := New()
	m.SetWidth(2)

	series := []dashboard.SeriesPoint{
		{Label: "Jan 1", Balance: 1},
		{Label: "Jan 2", Balance: 2},
		{Label: "Jan 3", Balance: 3},
	}
	m.SetSeries(series)

	view := m.View()
	// Only the most recent samples remain, so the range starts at Jan 2.
	be.True(t, strings.Contains(view, "Jan 2 → Jan 3"))
	be.False(t, strings.Contains(view, "Jan 1"))
}
