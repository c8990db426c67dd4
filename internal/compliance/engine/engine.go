// Package engine implements the labor-time compliance rule engine.
//
// Evaluate is a pure function from (intervals, config) to violations: no
// I/O, no shared state, no mutation of the input. It is safe to call
// concurrently for different users since every call works on its own copy
// of the sorted interval arena.
package engine

import (
	"shiftwise/internal/compliance/models"
	"shiftwise/internal/compliance/ruleset"
)

// Evaluate runs all checkers against one entry set and one rule config and
// concatenates their findings in a fixed order: rest, shift duration, break,
// weekly rest, max weekly time. The order exists for output stability; the
// checkers are independent of one another.
//
// Empty input yields an empty list. Malformed intervals (open, missing
// duration) degrade gracefully per checker instead of failing the call.
func Evaluate(intervals []models.WorkInterval, cfg ruleset.Config) []models.Violation {
	// Single global sort; every checker and the week partition inherit this
	// order rather than re-sorting.
	sorted := sortedByStart(intervals)

	violations := make([]models.Violation, 0)
	violations = append(violations, checkDailyRest(sorted, cfg)...)
	violations = append(violations, checkShiftDurations(sorted, cfg)...)
	violations = append(violations, checkBreaks(sorted, cfg)...)
	violations = append(violations, checkWeeklyRest(sorted, cfg)...)
	violations = append(violations, checkMaxWeeklyTime(sorted, cfg)...)
	return violations
}
