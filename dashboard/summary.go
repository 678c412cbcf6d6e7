package dashboard

import (
	"slices"
	"time"

	"github.com/xtrack/xtracktui/xtrack"
)

// SeriesPoint is one chart-ready sample derived from a statistic record.
type SeriesPoint struct {
	Timestamp time.Time
	Label     string
	PL        float64
	Balance   float64
}

// NetProfit folds daily P/L over the given records. It is a client-side
// derivation from whatever the current window returned, not a server value.
// Empty input yields 0; order does not matter.
func NetProfit(records []xtrack.Statistic) float64 {
	var total float64
	for _, r := range records {
		total += r.DailyPL
	}
	return total
}

// ChartSeries maps records to chart samples sorted ascending by timestamp.
// The sort is stable so identical input always renders identically, and the
// source slice is never mutated.
func ChartSeries(records []xtrack.Statistic) []SeriesPoint {
	sorted := sortedCopy(records, false)

	points := make([]SeriesPoint, len(sorted))
	for i, r := range sorted {
		points[i] = SeriesPoint{
			Timestamp: r.Timestamp,
			Label:     r.Timestamp.Format("Jan 2"),
			PL:        r.DailyPL,
			Balance:   r.TotalBalance,
		}
	}

	return points
}

// TableRows returns up to limit records sorted descending by timestamp,
// the opposite order from ChartSeries, derived from the same source without
// mutating it. A negative limit means no truncation.
func TableRows(records []xtrack.Statistic, limit int) []xtrack.Statistic {
	sorted := sortedCopy(records, true)
	if limit >= 0 && len(sorted) > limit {
		sorted = sorted[:limit]
	}
	return sorted
}

func sortedCopy(records []xtrack.Statistic, descending bool) []xtrack.Statistic {
	sorted := slices.Clone(records)
	slices.SortStableFunc(sorted, func(a, b xtrack.Statistic) int {
		cmp := a.Timestamp.Compare(b.Timestamp)
		if descending {
			return -cmp
		}
		return cmp
	})
	return sorted
}
