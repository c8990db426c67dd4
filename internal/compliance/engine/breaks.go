package engine

import (
	"fmt"

	id "shiftwise/pkg/domain"

	"shiftwise/internal/compliance/models"
	"shiftwise/internal/compliance/ruleset"
)

// CheckBreaks flags intervals long enough to require a break.
//
// Breaks are never recorded as separate intervals in the data model, so the
// checker always reports the break as missing once the threshold is reached.
// That is a known product limitation, not a heuristic to refine here; it
// changes only if break intervals are introduced upstream.
//
// The two tiers are independent: an interval long enough for the stricter
// tier produces both the tier-1 warning and the tier-2 error.
func CheckBreaks(intervals []models.WorkInterval, cfg ruleset.Config) []models.Violation {
	return checkBreaks(sortedByStart(intervals), cfg)
}

func checkBreaks(sorted []models.WorkInterval, cfg ruleset.Config) []models.Violation {
	var violations []models.Violation
	for _, iv := range closedOnly(sorted) {
		duration := *iv.DurationMinutes

		if duration >= cfg.BreakRequiredAfterMinutes {
			violations = append(violations, breakViolation(iv, models.SeverityWarning,
				cfg.BreakDurationMinutes, "keine Pause erfasst"))
		}
		if cfg.HasSecondBreakTier() && duration >= cfg.BreakRequiredAfterMinutes2 {
			violations = append(violations, breakViolation(iv, models.SeverityError,
				cfg.BreakDurationMinutes2, "unzureichende Pause erfasst"))
		}
	}
	return violations
}

func breakViolation(iv models.WorkInterval, severity models.Severity, requiredMinutes int, actual string) models.Violation {
	return models.Violation{
		Type:        models.ViolationBreakMissing,
		Severity:    severity,
		PeriodStart: iv.Start,
		PeriodEnd:   *iv.End,
		Details: models.ViolationDetails{
			Expected:        fmt.Sprintf("%d Minuten Pause", requiredMinutes),
			Actual:          actual,
			AffectedEntries: []id.EntryID{iv.ID},
		},
	}
}
