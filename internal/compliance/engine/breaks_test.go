package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"shiftwise/internal/compliance/models"
	"shiftwise/internal/compliance/ruleset"
	id "shiftwise/pkg/domain"
)

func TestCheckBreaks(t *testing.T) {
	cfg := ruleset.EU() // tier 1: 360 -> 30 min, tier 2: 540 -> 45 min

	t.Run("601 minutes triggers both tiers independently", func(t *testing.T) {
		iv := closedInterval(day(16, 6), 601)

		got := CheckBreaks([]models.WorkInterval{iv}, cfg)
		require.Len(t, got, 2)

		warning := got[0]
		assert.Equal(t, models.ViolationBreakMissing, warning.Type)
		assert.Equal(t, models.SeverityWarning, warning.Severity)
		assert.Equal(t, "30 Minuten Pause", warning.Details.Expected)
		assert.Equal(t, "keine Pause erfasst", warning.Details.Actual)
		assert.Equal(t, []id.EntryID{iv.ID}, warning.Details.AffectedEntries)

		hard := got[1]
		assert.Equal(t, models.SeverityError, hard.Severity)
		assert.Equal(t, "45 Minuten Pause", hard.Details.Expected)
		assert.Equal(t, "unzureichende Pause erfasst", hard.Details.Actual)
	})

	t.Run("exactly the tier 1 threshold requires a break", func(t *testing.T) {
		got := CheckBreaks([]models.WorkInterval{closedInterval(day(16, 6), 360)}, cfg)
		require.Len(t, got, 1)
		assert.Equal(t, models.SeverityWarning, got[0].Severity)
	})

	t.Run("below tier 1 passes", func(t *testing.T) {
		got := CheckBreaks([]models.WorkInterval{closedInterval(day(16, 6), 359)}, cfg)
		assert.Empty(t, got)
	})

	t.Run("missing second tier skips tier 2 evaluation", func(t *testing.T) {
		noTier2 := cfg
		noTier2.BreakRequiredAfterMinutes2 = 0
		noTier2.BreakDurationMinutes2 = 0

		got := CheckBreaks([]models.WorkInterval{closedInterval(day(16, 6), 700)}, noTier2)
		require.Len(t, got, 1)
		assert.Equal(t, models.SeverityWarning, got[0].Severity)
	})

	t.Run("open interval is skipped", func(t *testing.T) {
		got := CheckBreaks([]models.WorkInterval{openInterval(day(16, 6))}, cfg)
		assert.Empty(t, got)
	})
}
