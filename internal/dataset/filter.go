package dataset

import (
	"sort"
	"time"
)

// maxRangeDays caps a requested date range at ten years
const maxRangeDays = 3650

// FilterRange restricts rows to those whose date falls within the inclusive
// [start, end] bound. start after end always yields an empty result; that is
// the intended outcome, not an error. Pure and deterministic.
func FilterRange(rows []Row, start, end time.Time) []Row {
	var filtered []Row
	for _, row := range rows {
		if row.Date.Before(start) || row.Date.After(end) {
			continue
		}
		filtered = append(filtered, row)
	}
	return filtered
}

// ValidateDateRange reports whether a requested range is logical: start not
// after end and a span of at most ten years. Used at the request boundary
// only; FilterRange itself accepts any bounds.
func ValidateDateRange(start, end time.Time) bool {
	if start.After(end) {
		return false
	}
	return end.Sub(start) <= maxRangeDays*24*time.Hour
}

// Cities returns the distinct cities present in rows, sorted lexicographically
func Cities(rows []Row) []string {
	seen := make(map[string]struct{})
	var cities []string
	for _, row := range rows {
		if _, ok := seen[row.City]; !ok {
			seen[row.City] = struct{}{}
			cities = append(cities, row.City)
		}
	}
	sort.Strings(cities)
	return cities
}
