package engine

import (
	"time"

	id "shiftwise/pkg/domain"

	"shiftwise/internal/compliance/models"
	"shiftwise/internal/compliance/ruleset"
)

// CheckWeeklyRest verifies that every ISO week with at least two closed
// intervals contains one sufficiently long uninterrupted rest gap.
//
// Only the single largest adjacent gap of the week is measured against the
// threshold: one long rest per week satisfies the rule regardless of how
// short the other gaps are. Weeks with fewer than two intervals have no
// gap to evaluate and are skipped.
func CheckWeeklyRest(intervals []models.WorkInterval, cfg ruleset.Config) []models.Violation {
	return checkWeeklyRest(sortedByStart(intervals), cfg)
}

func checkWeeklyRest(sorted []models.WorkInterval, cfg ruleset.Config) []models.Violation {
	var violations []models.Violation
	for _, week := range groupByWeek(closedOnly(sorted)) {
		if len(week.intervals) < 2 {
			continue
		}

		maxGap := -1.0
		var gapStart, gapEnd time.Time
		for i := 1; i < len(week.intervals); i++ {
			prev, cur := week.intervals[i-1], week.intervals[i]
			gap := cur.Start.Sub(*prev.End).Minutes()
			if gap > maxGap {
				maxGap = gap
				gapStart = *prev.End
				gapEnd = cur.Start
			}
		}
		if maxGap >= float64(cfg.WeeklyRestPeriodMinutes) {
			continue
		}

		periodStart, periodEnd := gapStart, gapEnd
		if maxGap <= 0 {
			// Overlapping or back-to-back intervals leave no usable gap;
			// reference the week's whole recorded span instead.
			periodStart = week.intervals[0].Start
			periodEnd = latestEnd(week.intervals)
		}

		violations = append(violations, models.Violation{
			Type:        models.ViolationWeeklyRest,
			Severity:    models.SeverityError,
			PeriodStart: periodStart,
			PeriodEnd:   periodEnd,
			Details: models.ViolationDetails{
				Expected:        formatThresholdHours(cfg.WeeklyRestPeriodMinutes),
				Actual:          formatObservedHours(maxGap),
				AffectedEntries: entryIDs(week.intervals),
			},
		})
	}
	return violations
}

// CheckMaxWeeklyTime flags ISO weeks whose summed closed-interval duration
// exceeds the weekly working-time cap.
func CheckMaxWeeklyTime(intervals []models.WorkInterval, cfg ruleset.Config) []models.Violation {
	return checkMaxWeeklyTime(sortedByStart(intervals), cfg)
}

func checkMaxWeeklyTime(sorted []models.WorkInterval, cfg ruleset.Config) []models.Violation {
	var violations []models.Violation
	for _, week := range groupByWeek(closedOnly(sorted)) {
		total := 0
		for _, iv := range week.intervals {
			total += *iv.DurationMinutes
		}
		if total <= cfg.MaxWeeklyWorkingTimeMinutes {
			continue
		}

		last := week.intervals[len(week.intervals)-1]
		violations = append(violations, models.Violation{
			Type:        models.ViolationMaxWeeklyTime,
			Severity:    models.SeverityError,
			PeriodStart: week.intervals[0].Start,
			PeriodEnd:   *last.End,
			Details: models.ViolationDetails{
				Expected:        formatThresholdHours(cfg.MaxWeeklyWorkingTimeMinutes),
				Actual:          formatObservedHours(float64(total)),
				AffectedEntries: entryIDs(week.intervals),
			},
		})
	}
	return violations
}

func entryIDs(intervals []models.WorkInterval) []id.EntryID {
	ids := make([]id.EntryID, len(intervals))
	for i, iv := range intervals {
		ids[i] = iv.ID
	}
	return ids
}

func latestEnd(intervals []models.WorkInterval) time.Time {
	end := *intervals[0].End
	for _, iv := range intervals[1:] {
		if iv.End.After(end) {
			end = *iv.End
		}
	}
	return end
}
