package dashboard

import (
	"testing"
	"time"

	"github.com/carlmjohnson/be"
)

func TestResolveWindow(t *testing.T) {
	now := time.Date(2024, 3, 15, 10, 30, 0, 0, time.UTC)

	tests := []struct {
		name     string
		filter   FilterRange
		expected QuerySpec
	}{
		{
			name:     "all time is a bounded recent page",
			filter:   FilterAll,
			expected: QuerySpec{Paged: true, Page: 1, PageSize: 100},
		},
		{
			name:     "seven days back from now",
			filter:   Filter7D,
			expected: QuerySpec{StartDate: "2024-03-08", EndDate: "2024-03-15"},
		},
		{
			name:     "thirty days back from now",
			filter:   Filter30D,
			expected: QuerySpec{StartDate: "2024-02-14", EndDate: "2024-03-15"},
		},
		{
			name:     "unknown filter falls back to the paged window",
			filter:   FilterRange("90d"),
			expected: QuerySpec{Paged: true, Page: 1, PageSize: 100},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			be.Equal(t, tt.expected, resolveWindow(tt.filter, now))
		})
	}
}

func TestResolveWindowCrossesMonthAndYear(t *testing.T) {
	now := time.Date(2024, 1, 3, 23, 59, 59, 0, time.UTC)

	spec := resolveWindow(Filter7D, now)
	be.Equal(t, "2023-12-27", spec.StartDate)
	be.Equal(t, "2024-01-03", spec.EndDate)
}

func TestResolveWindowIsDeterministic(t *testing.T) {
	now := time.Date(2024, 3, 15, 10, 30, 0, 0, time.UTC)
	be.Equal(t, resolveWindow(Filter30D, now), resolveWindow(Filter30D, now))
}

func TestFilterRangeNextCycles(t *testing.T) {
	be.Equal(t, Filter7D, FilterAll.Next())
	be.Equal(t, Filter30D, Filter7D.Next())
	be.Equal(t, FilterAll, Filter30D.Next())
}

func TestFilterRangeLabel(t *testing.T) {
	be.Equal(t, "all time", FilterAll.Label())
	be.Equal(t, "7 days", Filter7D.Label())
	be.Equal(t, "30 days", Filter30D.Label())
}

func TestParseFilter(t *testing.T) {
	for _, valid := range []string{"all", "7d", "30d"} {
		filter, err := ParseFilter(valid)
		be.NilErr(t, err)
		be.Equal(t, FilterRange(valid), filter)
	}

	_, err := ParseFilter("90d")
	be.Nonzero(t, err)
}

func TestFilterQueryMatchesResolveWindow(t *testing.T) {
	now := time.Date(2024, 3, 15, 10, 30, 0, 0, time.UTC)
	be.Equal(t, resolveWindow(Filter7D, now), Filter7D.Query(now))
}
