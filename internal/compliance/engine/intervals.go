package engine

import (
	"sort"

	"shiftwise/internal/compliance/models"
)

// sortedByStart returns a copy of the intervals in ascending start order.
// The input is never reordered: callers hand the same slice to every checker
// and may reuse it afterwards. Ties break on entry ID so evaluation stays
// deterministic regardless of input order.
func sortedByStart(intervals []models.WorkInterval) []models.WorkInterval {
	out := make([]models.WorkInterval, len(intervals))
	copy(out, intervals)
	sort.SliceStable(out, func(i, j int) bool {
		if !out[i].Start.Equal(out[j].Start) {
			return out[i].Start.Before(out[j].Start)
		}
		return out[i].ID.String() < out[j].ID.String()
	})
	return out
}

// closedOnly filters to intervals with a known end and duration. Open
// intervals never participate in duration or gap computations.
func closedOnly(intervals []models.WorkInterval) []models.WorkInterval {
	out := make([]models.WorkInterval, 0, len(intervals))
	for _, iv := range intervals {
		if iv.Closed() {
			out = append(out, iv)
		}
	}
	return out
}
