package engine

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"shiftwise/internal/compliance/models"
	id "shiftwise/pkg/domain"
)

func TestWeekKey(t *testing.T) {
	tests := []struct {
		name string
		date time.Time
		want string
	}{
		{
			// Tuesday of the week containing Jan 1, 2025: belongs to the
			// new ISO year even though the calendar year is 2024.
			name: "dec 31 2024 belongs to 2025-W01",
			date: time.Date(2024, 12, 31, 10, 0, 0, 0, time.UTC),
			want: "2025-W01",
		},
		{
			name: "jan 1 2025 belongs to 2025-W01",
			date: time.Date(2025, 1, 1, 10, 0, 0, 0, time.UTC),
			want: "2025-W01",
		},
		{
			// Friday Jan 1, 2027 falls in the last week of ISO year 2026.
			name: "jan 1 2027 belongs to 2026-W53",
			date: time.Date(2027, 1, 1, 8, 0, 0, 0, time.UTC),
			want: "2026-W53",
		},
		{
			name: "mid-year monday",
			date: time.Date(2025, 6, 16, 0, 0, 0, 0, time.UTC),
			want: "2025-W25",
		},
		{
			name: "sunday stays in its monday-started week",
			date: time.Date(2025, 6, 22, 23, 59, 0, 0, time.UTC),
			want: "2025-W25",
		},
		{
			name: "single digit week is zero padded",
			date: time.Date(2025, 2, 3, 12, 0, 0, 0, time.UTC),
			want: "2025-W06",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, WeekKey(tt.date))
		})
	}
}

// The year-boundary pair must land in the same bucket, otherwise the weekly
// checkers split one week's intervals across two evaluations.
func TestWeekKey_YearBoundaryPairsDoNotSplit(t *testing.T) {
	dec31 := time.Date(2024, 12, 31, 9, 0, 0, 0, time.UTC)
	jan1 := time.Date(2025, 1, 1, 9, 0, 0, 0, time.UTC)
	assert.Equal(t, WeekKey(dec31), WeekKey(jan1))
}

func TestGroupByWeek(t *testing.T) {
	mk := func(start time.Time) models.WorkInterval {
		end := start.Add(8 * time.Hour)
		dur := 480
		return models.WorkInterval{
			ID:              id.NewEntryID(),
			Start:           start,
			End:             &end,
			DurationMinutes: &dur,
		}
	}

	w1a := mk(time.Date(2025, 6, 16, 9, 0, 0, 0, time.UTC)) // Monday W25
	w1b := mk(time.Date(2025, 6, 18, 9, 0, 0, 0, time.UTC)) // Wednesday W25
	w2 := mk(time.Date(2025, 6, 23, 9, 0, 0, 0, time.UTC))  // Monday W26

	groups := groupByWeek([]models.WorkInterval{w1a, w1b, w2})
	require.Len(t, groups, 2)

	assert.Equal(t, "2025-W25", groups[0].key)
	require.Len(t, groups[0].intervals, 2)
	// Partitioning preserves the global sort order within each group.
	assert.Equal(t, w1a.ID, groups[0].intervals[0].ID)
	assert.Equal(t, w1b.ID, groups[0].intervals[1].ID)

	assert.Equal(t, "2025-W26", groups[1].key)
	require.Len(t, groups[1].intervals, 1)
}

func TestGroupByWeek_Empty(t *testing.T) {
	assert.Empty(t, groupByWeek(nil))
}
