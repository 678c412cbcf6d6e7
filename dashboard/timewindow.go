package dashboard

import (
	"fmt"
	"time"
)

const dateLayout = "2006-01-02"

// FilterRange selects the time window shown on the dashboard.
type FilterRange string

const (
	FilterAll FilterRange = "all"
	Filter7D  FilterRange = "7d"
	Filter30D FilterRange = "30d"
)

// allFilterPageSize caps the "all" window to a recent page rather than the
// full history, bounding the chart payload.
const (
	allFilterPage     = 1
	allFilterPageSize = 100
)

// Next cycles through the available filters in display order.
func (f FilterRange) Next() FilterRange {
	switch f {
	case FilterAll:
		return Filter7D
	case Filter7D:
		return Filter30D
	default:
		return FilterAll
	}
}

// Label returns the human-readable filter name.
func (f FilterRange) Label() string {
	switch f {
	case Filter7D:
		return "7 days"
	case Filter30D:
		return "30 days"
	default:
		return "all time"
	}
}

// ParseFilter maps a user-supplied filter name to a FilterRange.
func ParseFilter(raw string) (FilterRange, error) {
	switch FilterRange(raw) {
	case FilterAll, Filter7D, Filter30D:
		return FilterRange(raw), nil
	default:
		return "", fmt.Errorf("invalid filter: %s (must be all, 7d or 30d)", raw)
	}
}

// Query resolves the filter into a concrete record query anchored at now.
func (f FilterRange) Query(now time.Time) QuerySpec {
	return resolveWindow(f, now)
}

// QuerySpec describes how to fetch records for a window: either a bounded
// recent page or an inclusive calendar-day range.
type QuerySpec struct {
	Paged    bool
	Page     int
	PageSize int
	// StartDate and EndDate are YYYY-MM-DD calendar days, both inclusive.
	StartDate string
	EndDate   string
}

// resolveWindow maps a filter to a concrete query. Deterministic given now.
func resolveWindow(filter FilterRange, now time.Time) QuerySpec {
	switch filter {
	case Filter7D:
		return rangeSpec(now, 7)
	case Filter30D:
		return rangeSpec(now, 30)
	default:
		return QuerySpec{Paged: true, Page: allFilterPage, PageSize: allFilterPageSize}
	}
}

func rangeSpec(now time.Time, days int) QuerySpec {
	return QuerySpec{
		StartDate: now.AddDate(0, 0, -days).Format(dateLayout),
		EndDate:   now.Format(dateLayout),
	}
}
