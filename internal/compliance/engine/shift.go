package engine

import (
	id "shiftwise/pkg/domain"

	"shiftwise/internal/compliance/models"
	"shiftwise/internal/compliance/ruleset"
)

// CheckShiftDurations classifies each closed interval against the two daily
// working-time caps. The hard cap (with compensation) takes precedence; an
// interval triggers at most one of the two findings.
func CheckShiftDurations(intervals []models.WorkInterval, cfg ruleset.Config) []models.Violation {
	return checkShiftDurations(sortedByStart(intervals), cfg)
}

func checkShiftDurations(sorted []models.WorkInterval, cfg ruleset.Config) []models.Violation {
	var violations []models.Violation
	for _, iv := range closedOnly(sorted) {
		duration := *iv.DurationMinutes

		var severity models.Severity
		var expected string
		switch {
		case duration > cfg.MaxDailyWorkingTimeWithCompensationMinutes:
			severity = models.SeverityError
			expected = formatThresholdHours(cfg.MaxDailyWorkingTimeWithCompensationMinutes)
		case duration > cfg.MaxDailyWorkingTimeMinutes:
			severity = models.SeverityWarning
			expected = formatThresholdHours(cfg.MaxDailyWorkingTimeMinutes) + " ohne Ausgleich"
		default:
			continue
		}

		violations = append(violations, models.Violation{
			Type:        models.ViolationShiftDuration,
			Severity:    severity,
			PeriodStart: iv.Start,
			PeriodEnd:   *iv.End,
			Details: models.ViolationDetails{
				Expected:        expected,
				Actual:          formatObservedHours(float64(duration)),
				AffectedEntries: []id.EntryID{iv.ID},
			},
		})
	}
	return violations
}
