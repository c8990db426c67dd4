// Package models defines the value types flowing through the labor-time
// compliance engine. All types are transient pure values: constructed fresh
// per evaluation, never mutated, never cached across calls. Persistence and
// acknowledgement of findings belong to the hosting service.
package models

import (
	"time"

	id "shiftwise/pkg/domain"
)

// Severity distinguishes soft findings from hard regulatory breaches.
type Severity string

const (
	SeverityWarning Severity = "warning"
	SeverityError   Severity = "error"
)

// ViolationType names the regulation a finding refers to.
type ViolationType string

const (
	ViolationRestPeriod    ViolationType = "RestPeriodViolation"
	ViolationShiftDuration ViolationType = "ShiftDurationViolation"
	ViolationBreakMissing  ViolationType = "BreakMissing"
	ViolationWeeklyRest    ViolationType = "WeeklyRestViolation"
	ViolationMaxWeeklyTime ViolationType = "MaxWorkingTimeExceeded"
)

// WorkInterval is a recorded span of work as the checkers consume it.
//
// End is nil while the interval is still open. DurationMinutes is populated
// by the hosting service once End is known and is taken as given, never
// recomputed here. An open interval is excluded from every check that needs
// a duration or a gap endpoint.
type WorkInterval struct {
	ID              id.EntryID
	UserID          id.UserID
	Start           time.Time
	End             *time.Time
	DurationMinutes *int
}

// Closed reports whether the interval has both an end and a duration and may
// therefore participate in duration and gap computations.
func (w WorkInterval) Closed() bool {
	return w.End != nil && w.DurationMinutes != nil
}

// ViolationDetails carries the human-readable threshold/observation pair and
// the source records that produced the finding, in the order that produced it.
type ViolationDetails struct {
	Expected        string       `json:"expected"`
	Actual          string       `json:"actual"`
	AffectedEntries []id.EntryID `json:"affected_entries"`
}

// Violation is one detected breach of a labor-time rule. PeriodStart and
// PeriodEnd bound the concrete span the finding refers to, which is not
// necessarily the whole evaluated range.
type Violation struct {
	Type        ViolationType    `json:"violation_type"`
	Severity    Severity         `json:"severity"`
	PeriodStart time.Time        `json:"period_start"`
	PeriodEnd   time.Time        `json:"period_end"`
	Details     ViolationDetails `json:"details"`
}
