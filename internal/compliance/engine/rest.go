package engine

import (
	id "shiftwise/pkg/domain"

	"shiftwise/internal/compliance/models"
	"shiftwise/internal/compliance/ruleset"
)

// CheckDailyRest detects rest gaps between consecutive work intervals that
// fall short of the daily rest period.
//
// Only adjacent pairs in start order are checked, so a single short gap is
// reported exactly once even when surrounded by longer gaps. A pair whose
// earlier member is still open has no gap start and is skipped. A gap of
// exactly the threshold passes: the comparison is strictly less-than.
func CheckDailyRest(intervals []models.WorkInterval, cfg ruleset.Config) []models.Violation {
	return checkDailyRest(sortedByStart(intervals), cfg)
}

// checkDailyRest assumes intervals are already in ascending start order.
func checkDailyRest(sorted []models.WorkInterval, cfg ruleset.Config) []models.Violation {
	var violations []models.Violation
	for i := 1; i < len(sorted); i++ {
		prev, cur := sorted[i-1], sorted[i]
		if prev.End == nil {
			continue
		}
		gapMinutes := cur.Start.Sub(*prev.End).Minutes()
		if gapMinutes >= float64(cfg.DailyRestPeriodMinutes) {
			continue
		}
		violations = append(violations, models.Violation{
			Type:        models.ViolationRestPeriod,
			Severity:    models.SeverityError,
			PeriodStart: *prev.End,
			PeriodEnd:   cur.Start,
			Details: models.ViolationDetails{
				Expected:        formatThresholdHours(cfg.DailyRestPeriodMinutes),
				Actual:          formatObservedHours(gapMinutes),
				AffectedEntries: []id.EntryID{prev.ID, cur.ID},
			},
		})
	}
	return violations
}
