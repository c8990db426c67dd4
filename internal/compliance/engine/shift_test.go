package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"shiftwise/internal/compliance/models"
	"shiftwise/internal/compliance/ruleset"
)

func TestCheckShiftDurations(t *testing.T) {
	cfg := ruleset.EU() // soft cap 480, hard cap 600

	t.Run("601 minutes is a hard cap error without a warning duplicate", func(t *testing.T) {
		iv := closedInterval(day(16, 6), 601)

		got := CheckShiftDurations([]models.WorkInterval{iv}, cfg)
		require.Len(t, got, 1)

		v := got[0]
		assert.Equal(t, models.ViolationShiftDuration, v.Type)
		assert.Equal(t, models.SeverityError, v.Severity)
		assert.Equal(t, "10 Stunden", v.Details.Expected)
		assert.Equal(t, "10.0 Stunden", v.Details.Actual)
		assert.Equal(t, iv.Start, v.PeriodStart)
		assert.Equal(t, *iv.End, v.PeriodEnd)
	})

	t.Run("between caps is a warning", func(t *testing.T) {
		iv := closedInterval(day(16, 6), 540)

		got := CheckShiftDurations([]models.WorkInterval{iv}, cfg)
		require.Len(t, got, 1)
		assert.Equal(t, models.SeverityWarning, got[0].Severity)
		assert.Equal(t, "8 Stunden ohne Ausgleich", got[0].Details.Expected)
		assert.Equal(t, "9.0 Stunden", got[0].Details.Actual)
	})

	t.Run("exactly the soft cap passes", func(t *testing.T) {
		got := CheckShiftDurations([]models.WorkInterval{closedInterval(day(16, 6), 480)}, cfg)
		assert.Empty(t, got)
	})

	t.Run("exactly the hard cap is still only a warning", func(t *testing.T) {
		got := CheckShiftDurations([]models.WorkInterval{closedInterval(day(16, 6), 600)}, cfg)
		require.Len(t, got, 1)
		assert.Equal(t, models.SeverityWarning, got[0].Severity)
	})

	t.Run("open interval is skipped", func(t *testing.T) {
		got := CheckShiftDurations([]models.WorkInterval{openInterval(day(16, 6))}, cfg)
		assert.Empty(t, got)
	})
}
