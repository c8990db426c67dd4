package engine

import (
	"fmt"
	"time"

	"shiftwise/internal/compliance/models"
)

// WeekKey returns the ISO-8601 week bucket for a point in time, formatted as
// "2025-W01". The ISO week-year is used, not the calendar year: late December
// and early January dates can land in each other's years, and a naive
// calendar-week split misclassifies exactly those boundary dates.
func WeekKey(t time.Time) string {
	year, week := t.ISOWeek()
	return fmt.Sprintf("%04d-W%02d", year, week)
}

// weekGroup is one ISO week's slice of the globally sorted interval arena.
// Grouping partitions the sorted slice instead of re-sorting per week, so
// within-group order is inherited from the global sort.
type weekGroup struct {
	key       string
	intervals []models.WorkInterval
}

// groupByWeek buckets sorted intervals by the ISO week of their start time.
// Groups come back in order of first appearance, which is chronological
// because the input is sorted; nothing depends on map iteration order.
func groupByWeek(sorted []models.WorkInterval) []weekGroup {
	var groups []weekGroup
	index := make(map[string]int)
	for _, iv := range sorted {
		key := WeekKey(iv.Start)
		pos, ok := index[key]
		if !ok {
			pos = len(groups)
			index[key] = pos
			groups = append(groups, weekGroup{key: key})
		}
		groups[pos].intervals = append(groups[pos].intervals, iv)
	}
	return groups
}
